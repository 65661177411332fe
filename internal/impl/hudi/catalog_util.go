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
	"fmt"
	"strings"
)

// partitionPathFieldOption is the table option naming the partition path
// fields of a table that doesn't declare partition columns natively. Its
// value is a comma-separated list of field names.
const partitionPathFieldOption = "partition.path.field"

// TablePath identifies a table within a database.
type TablePath struct {
	Database string
	Table    string
}

func (p TablePath) String() string {
	return p.Database + "." + p.Table
}

// TableDefinition carries the partitioning-relevant parts of a catalog table
// definition: the partition columns it declares natively, if any, and its
// table options.
type TableDefinition struct {
	PartitionKeys []string
	Options       map[string]string
}

// IsPartitioned reports whether the table declares partition columns
// natively.
func (t TableDefinition) IsPartitioned() bool {
	return len(t.PartitionKeys) > 0
}

// PartitionSpec is a mapping of partition key names to values identifying a
// single partition. A value may be null, representing a key with no explicit
// value supplied. Entries preserve insertion order, which is significant when
// rendering partition paths.
type PartitionSpec struct {
	keys   []string
	values map[string]*string
}

// PartitionEntry is a single key/value pair of a PartitionSpec. Value is nil
// when no explicit value was supplied for the key.
type PartitionEntry struct {
	Key   string
	Value *string
}

// NewPartitionSpec returns an empty PartitionSpec.
func NewPartitionSpec() *PartitionSpec {
	return &PartitionSpec{
		values: map[string]*string{},
	}
}

// Set assigns a value to a partition key. Setting an existing key replaces
// its value without changing its position.
func (s *PartitionSpec) Set(key, value string) {
	if _, exists := s.values[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.values[key] = &value
}

// SetNull records a partition key with no explicit value.
func (s *PartitionSpec) SetNull(key string) {
	if _, exists := s.values[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.values[key] = nil
}

// Lookup returns the value assigned to a key, and whether the key is present
// at all. A nil value with ok set to true means the key is present but has no
// explicit value.
func (s *PartitionSpec) Lookup(key string) (value *string, ok bool) {
	value, ok = s.values[key]
	return
}

// Len returns the number of entries.
func (s *PartitionSpec) Len() int {
	return len(s.keys)
}

// Entries returns the key/value pairs in insertion order.
func (s *PartitionSpec) Entries() []PartitionEntry {
	entries := make([]PartitionEntry, len(s.keys))
	for i, k := range s.keys {
		entries[i] = PartitionEntry{Key: k, Value: s.values[k]}
	}
	return entries
}

func (s *PartitionSpec) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range s.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteByte('=')
		if v := s.values[k]; v != nil {
			b.WriteString(*v)
		} else {
			b.WriteString("null")
		}
	}
	b.WriteByte('}')
	return b.String()
}

// InvalidPartitionSpecError is returned when a partition spec doesn't match a
// table's partition keys, either because the sizes differ or because a
// required key is missing from the spec.
type InvalidPartitionSpecError struct {
	Catalog       string
	PartitionKeys []string
	TablePath     TablePath
	Spec          *PartitionSpec
}

func (e *InvalidPartitionSpecError) Error() string {
	return fmt.Sprintf("partition spec %v does not match partition keys %v of table %v in catalog %v",
		e.Spec, e.PartitionKeys, e.TablePath, e.Catalog)
}

// GetPartitionKeys returns the partition key list of a table definition.
// Natively declared partition columns always take priority over the
// `partition.path.field` table option. When neither is present the table is
// unpartitioned and the returned list is empty. The option value is split on
// `,` exactly, without trimming or filtering of empty segments, as downstream
// key matching depends on the exact strings.
func GetPartitionKeys(table TableDefinition) []string {
	if table.IsPartitioned() {
		return table.PartitionKeys
	}
	if raw, exists := table.Options[partitionPathFieldOption]; exists {
		return strings.Split(raw, ",")
	}
	return nil
}

// InferPartitionPath renders a partition spec as a slash-separated partition
// path, with each segment rendered as `key=value` when hiveStylePartitioning
// is set and as just `value` otherwise. Entries are rendered in the spec's
// own order; callers wanting path segments in declared partition key order
// must supply a spec built in that order. Keys and values are not escaped, so
// values containing `/` or `=` produce ambiguous paths.
func InferPartitionPath(hiveStylePartitioning bool, spec *PartitionSpec) string {
	segments := make([]string, 0, spec.Len())
	for _, e := range spec.Entries() {
		var value string
		if e.Value != nil {
			value = *e.Value
		}
		if hiveStylePartitioning {
			segments = append(segments, e.Key+"="+value)
		} else {
			segments = append(segments, value)
		}
	}
	return strings.Join(segments, "/")
}

// GetOrderedPartitionValues rearranges the values of a partition spec to
// follow the order of the given partition keys, substituting
// defaultPartitionName for keys with a null value. It returns an
// *InvalidPartitionSpecError if the spec and the key list have different
// sizes, or if any partition key is absent from the spec. The returned list
// always has exactly one value per partition key, in key order.
func GetOrderedPartitionValues(catalogName string, spec *PartitionSpec, partitionKeys []string, tablePath TablePath, defaultPartitionName string) ([]string, error) {
	if spec.Len() != len(partitionKeys) {
		return nil, &InvalidPartitionSpecError{
			Catalog:       catalogName,
			PartitionKeys: partitionKeys,
			TablePath:     tablePath,
			Spec:          spec,
		}
	}

	values := make([]string, 0, spec.Len())
	for _, key := range partitionKeys {
		value, exists := spec.Lookup(key)
		if !exists {
			return nil, &InvalidPartitionSpecError{
				Catalog:       catalogName,
				PartitionKeys: partitionKeys,
				TablePath:     tablePath,
				Spec:          spec,
			}
		}
		if value == nil {
			values = append(values, defaultPartitionName)
		} else {
			values = append(values, *value)
		}
	}
	return values, nil
}
