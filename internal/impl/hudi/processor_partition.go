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
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Jeffail/gabs/v2"

	"github.com/redpanda-data/benthos/v4/public/service"
)

const (
	hpFieldCatalog       = "catalog"
	hpFieldDatabase      = "database"
	hpFieldTable         = "table"
	hpFieldPartitionKeys = "partition_keys"
	hpFieldTableOptions  = "table_options"
)

const (
	metaPartitionPath   = "hudi_partition_path"
	metaPartitionValues = "hudi_partition_values"
	metaTable           = "hudi_table"
)

func partitionProcessorConfig() *service.ConfigSpec {
	return service.NewConfigSpec().
		Beta().
		Categories("Parsing").
		Summary("Resolves Apache Hudi partition metadata for each message against a catalog table definition.").
		Description(`
For each message this processor reads the value of every partition key of the
configured table from the structured payload and resolves the partition the
message belongs to, leaving the payload untouched and setting the following
metadata on the message:

- `+"`hudi_partition_path`"+`: the slash-separated partition path.
- `+"`hudi_partition_values`"+`: the partition values ordered by partition key.
- `+"`hudi_table`"+`: the fully qualified table name.

Partition keys are resolved as dot-separated paths into the payload, so nested
fields may serve as partition columns. A key resolving to a null value is
substituted with the configured default partition name, whereas a key missing
from the payload entirely fails the message.`).
		Fields(
			service.NewStringField(hpFieldCatalog).
				Description("The name of the catalog the table belongs to.").
				Default("hudi"),
			service.NewStringField(hpFieldDatabase).
				Description("The database containing the table.").
				Default("default"),
			service.NewStringField(hpFieldTable).
				Description("The name of the table."),
			service.NewStringListField(hpFieldPartitionKeys).
				Description("The partition columns declared by the table, in order. Takes priority over the `partition.path.field` table option.").
				Optional(),
			service.NewStringMapField(hpFieldTableOptions).
				Description("The options of the table. A table with no declared partition columns may name its partition fields with the `partition.path.field` option as a comma-separated list.").
				Optional().
				Advanced(),
		).
		Fields(metastoreConfFields()...).
		Example("Hive style date partitions", `
Annotates order events with Hive style partition paths derived from their
date fields.`, `
pipeline:
  processors:
    - hudi_partition:
        table: orders
        partition_keys: [ year, month ]
        hive_style_partitioning: true
`)
}

func init() {
	err := service.RegisterProcessor(
		"hudi_partition", partitionProcessorConfig(),
		func(conf *service.ParsedConfig, mgr *service.Resources) (service.Processor, error) {
			return newPartitionProcessorFromConfig(conf, mgr)
		})
	if err != nil {
		panic(err)
	}
}

//------------------------------------------------------------------------------

type partitionProcessor struct {
	catalog       string
	tablePath     TablePath
	partitionKeys []string
	conf          *metastoreConf

	log      *service.Logger
	mInvalid *service.MetricCounter
}

func newPartitionProcessorFromConfig(conf *service.ParsedConfig, mgr *service.Resources) (*partitionProcessor, error) {
	p := &partitionProcessor{
		log:      mgr.Logger(),
		mInvalid: mgr.Metrics().NewCounter("partition_spec_invalid"),
	}

	var err error
	if p.catalog, err = conf.FieldString(hpFieldCatalog); err != nil {
		return nil, err
	}
	if p.tablePath.Database, err = conf.FieldString(hpFieldDatabase); err != nil {
		return nil, err
	}
	if p.tablePath.Table, err = conf.FieldString(hpFieldTable); err != nil {
		return nil, err
	}

	var table TableDefinition
	if conf.Contains(hpFieldPartitionKeys) {
		if table.PartitionKeys, err = conf.FieldStringList(hpFieldPartitionKeys); err != nil {
			return nil, err
		}
	}
	if conf.Contains(hpFieldTableOptions) {
		if table.Options, err = conf.FieldStringMap(hpFieldTableOptions); err != nil {
			return nil, err
		}
	}
	p.partitionKeys = GetPartitionKeys(table)

	if p.conf, err = metastoreConfFromParsed(conf); err != nil {
		return nil, err
	}
	if p.conf.IsEmbeddedMetastore() {
		p.log.Debugf("Resolving partitions of table %v against an embedded metastore", p.tablePath)
	} else {
		p.log.Debugf("Resolving partitions of table %v against remote metastore at %v", p.tablePath, p.conf.uris)
	}
	return p, nil
}

func (p *partitionProcessor) Process(ctx context.Context, msg *service.Message) (service.MessageBatch, error) {
	structured, err := msg.AsStructured()
	if err != nil {
		return nil, fmt.Errorf("failed to parse message as structured: %w", err)
	}
	gObj := gabs.Wrap(structured)

	spec := NewPartitionSpec()
	for _, key := range p.partitionKeys {
		if !gObj.ExistsP(key) {
			continue
		}
		if value := gObj.Path(key).Data(); value == nil {
			spec.SetNull(key)
		} else {
			spec.Set(key, partitionValueString(value))
		}
	}

	values, err := GetOrderedPartitionValues(p.catalog, spec, p.partitionKeys, p.tablePath, p.conf.DefaultPartitionName())
	if err != nil {
		p.mInvalid.Incr(1)
		return nil, err
	}

	resolved := NewPartitionSpec()
	valuesAny := make([]any, len(values))
	for i, key := range p.partitionKeys {
		resolved.Set(key, values[i])
		valuesAny[i] = values[i]
	}

	msg.MetaSetMut(metaPartitionPath, InferPartitionPath(p.conf.HiveStylePartitioning(), resolved))
	msg.MetaSetMut(metaPartitionValues, valuesAny)
	msg.MetaSetMut(metaTable, p.tablePath.String())
	return service.MessageBatch{msg}, nil
}

func (p *partitionProcessor) Close(ctx context.Context) error {
	return nil
}

// partitionValueString renders a structured payload value as a partition
// value string.
func partitionValueString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
