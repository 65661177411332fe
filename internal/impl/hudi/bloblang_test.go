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

	"github.com/redpanda-data/benthos/v4/public/bloblang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHudiPartitionPathMethod(t *testing.T) {
	tests := []struct {
		name    string
		mapping string
		input   any
		want    any
	}{
		{
			name:    "hive style",
			mapping: `root = this.hudi_partition_path("year,month", hive_style: true)`,
			input:   map[string]any{"year": "2020", "month": "01"},
			want:    "year=2020/month=01",
		},
		{
			name:    "plain style",
			mapping: `root = this.hudi_partition_path("year,month")`,
			input:   map[string]any{"year": "2020", "month": "01"},
			want:    "2020/01",
		},
		{
			name:    "key order follows argument",
			mapping: `root = this.hudi_partition_path("month,year")`,
			input:   map[string]any{"year": "2020", "month": "01"},
			want:    "01/2020",
		},
		{
			name:    "null defaulted",
			mapping: `root = this.hudi_partition_path("year,month", default_partition_name: "__NULL__")`,
			input:   map[string]any{"year": "2020", "month": nil},
			want:    "2020/__NULL__",
		},
		{
			name:    "nested keys",
			mapping: `root = this.hudi_partition_path("created.year", hive_style: true)`,
			input:   map[string]any{"created": map[string]any{"year": "2020"}},
			want:    "created.year=2020",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			exe, err := bloblang.Parse(test.mapping)
			require.NoError(t, err)

			res, err := exe.Query(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.want, res)
		})
	}
}

func TestHudiPartitionPathMethodMissingKey(t *testing.T) {
	exe, err := bloblang.Parse(`root = this.hudi_partition_path("year,month")`)
	require.NoError(t, err)

	_, err = exe.Query(map[string]any{"year": "2020"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `partition key "month" not found`)
}

func TestHudiPartitionValuesMethod(t *testing.T) {
	exe, err := bloblang.Parse(`root = this.hudi_partition_values("month,year")`)
	require.NoError(t, err)

	res, err := exe.Query(map[string]any{"year": "2020", "month": nil})
	require.NoError(t, err)
	assert.Equal(t, []any{"__HIVE_DEFAULT_PARTITION__", "2020"}, res)
}
