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
	"testing"

	"github.com/redpanda-data/benthos/v4/public/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseMetastoreConf(t *testing.T, confYAML string) *metastoreConf {
	t.Helper()

	spec := service.NewConfigSpec().Fields(metastoreConfFields()...)
	pConf, err := spec.ParseYAML(confYAML, service.NewEnvironment())
	require.NoError(t, err)

	conf, err := metastoreConfFromParsed(pConf)
	require.NoError(t, err)
	return conf
}

func TestMetastoreConfDefaults(t *testing.T) {
	conf := parseMetastoreConf(t, "")

	assert.Equal(t, "__HIVE_DEFAULT_PARTITION__", conf.DefaultPartitionName())
	assert.False(t, conf.HiveStylePartitioning())
	assert.True(t, conf.IsEmbeddedMetastore())
}

func TestMetastoreConfRemote(t *testing.T) {
	conf := parseMetastoreConf(t, `
default_partition_name: __NULL__
hive_style_partitioning: true
metastore_uris: thrift://meta-a:9083,thrift://meta-b:9083
`)

	assert.Equal(t, "__NULL__", conf.DefaultPartitionName())
	assert.True(t, conf.HiveStylePartitioning())
	assert.False(t, conf.IsEmbeddedMetastore())
}

func TestMetastoreConfWhitespaceURIsEmbedded(t *testing.T) {
	conf := parseMetastoreConf(t, `metastore_uris: "   "`)

	assert.True(t, conf.IsEmbeddedMetastore())
}
