// Copyright 2025 Redpanda Data, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hudi

import (
	"strings"

	"github.com/redpanda-data/benthos/v4/public/service"
)

const (
	msFieldDefaultPartitionName  = "default_partition_name"
	msFieldHiveStylePartitioning = "hive_style_partitioning"
	msFieldMetastoreURIs         = "metastore_uris"
)

// hiveDefaultPartitionName is Hive's sentinel for partitions keyed on a
// column with no value, commonly a NULL-valued partition column.
const hiveDefaultPartitionName = "__HIVE_DEFAULT_PARTITION__"

// MetastoreConfig supplies the single metastore-derived setting the partition
// spec resolution consumes.
type MetastoreConfig interface {
	DefaultPartitionName() string
}

func metastoreConfFields() []*service.ConfigField {
	return []*service.ConfigField{
		service.NewBoolField(msFieldHiveStylePartitioning).
			Description("Whether partition path segments are rendered as `key=value` rather than just `value`.").
			Default(false),
		service.NewStringField(msFieldDefaultPartitionName).
			Description("The sentinel substituted for a partition key that has no explicit value.").
			Default(hiveDefaultPartitionName).
			Advanced(),
		service.NewStringField(msFieldMetastoreURIs).
			Description("A comma-separated list of thrift URIs of a remote Hive metastore. When empty an embedded metastore is assumed.").
			Default("").
			Advanced(),
	}
}

type metastoreConf struct {
	defaultPartitionName  string
	hiveStylePartitioning bool
	uris                  string
}

func metastoreConfFromParsed(conf *service.ParsedConfig) (*metastoreConf, error) {
	c := &metastoreConf{}

	var err error
	if c.defaultPartitionName, err = conf.FieldString(msFieldDefaultPartitionName); err != nil {
		return nil, err
	}
	if c.hiveStylePartitioning, err = conf.FieldBool(msFieldHiveStylePartitioning); err != nil {
		return nil, err
	}
	if c.uris, err = conf.FieldString(msFieldMetastoreURIs); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *metastoreConf) DefaultPartitionName() string {
	return c.defaultPartitionName
}

func (c *metastoreConf) HiveStylePartitioning() bool {
	return c.hiveStylePartitioning
}

// IsEmbeddedMetastore reports whether no remote metastore URI is configured.
func (c *metastoreConf) IsEmbeddedMetastore() bool {
	return strings.TrimSpace(c.uris) == ""
}
