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

	"github.com/Jeffail/gabs/v2"

	"github.com/redpanda-data/benthos/v4/public/bloblang"
)

func init() {
	pathSpec := bloblang.NewPluginSpec().
		Category("Object & Array Manipulation").
		Description("Maps an object to an Apache Hudi partition path by reading the values of the given partition keys, in order. Keys are specified as a comma-separated list, matching the format of the `partition.path.field` table option, and are resolved as dot-separated paths into the object. A key resolving to null is substituted with the default partition name, whereas a key missing from the object entirely is an error.").
		Param(bloblang.NewStringParam("keys").
			Description("A comma-separated list of partition key names, in order.")).
		Param(bloblang.NewBoolParam("hive_style").
			Description("Whether to render each path segment as `key=value` rather than just `value`.").
			Default(false)).
		Param(bloblang.NewStringParam("default_partition_name").
			Description("The value substituted for keys with a null value.").
			Default(hiveDefaultPartitionName)).
		Example("",
			`root.path = this.hudi_partition_path("year,month", hive_style: true)`,
			[2]string{
				`{"year":"2020","month":"01"}`,
				`{"path":"year=2020/month=01"}`,
			}).
		Example("",
			`root.path = this.hudi_partition_path("year,month")`,
			[2]string{
				`{"year":"2020","month":"01"}`,
				`{"path":"2020/01"}`,
			})

	if err := bloblang.RegisterMethodV2(
		"hudi_partition_path", pathSpec,
		func(args *bloblang.ParsedParams) (bloblang.Method, error) {
			keys, hiveStyle, defaultName, err := partitionMethodArgs(args)
			if err != nil {
				return nil, err
			}
			return func(v any) (any, error) {
				spec, err := partitionSpecOfObject(v, keys, defaultName)
				if err != nil {
					return nil, err
				}
				return InferPartitionPath(hiveStyle, spec), nil
			}, nil
		},
	); err != nil {
		panic(err)
	}

	valuesSpec := bloblang.NewPluginSpec().
		Category("Object & Array Manipulation").
		Description("Maps an object to its Apache Hudi partition values, ordered by the given partition keys. Keys are specified as a comma-separated list and resolved as dot-separated paths into the object. A key resolving to null is substituted with the default partition name, whereas a key missing from the object entirely is an error.").
		Param(bloblang.NewStringParam("keys").
			Description("A comma-separated list of partition key names, in order.")).
		Param(bloblang.NewStringParam("default_partition_name").
			Description("The value substituted for keys with a null value.").
			Default(hiveDefaultPartitionName)).
		Example("",
			`root.values = this.hudi_partition_values("month,year")`,
			[2]string{
				`{"year":"2020","month":"01"}`,
				`{"values":["01","2020"]}`,
			})

	if err := bloblang.RegisterMethodV2(
		"hudi_partition_values", valuesSpec,
		func(args *bloblang.ParsedParams) (bloblang.Method, error) {
			keys, err := args.GetString("keys")
			if err != nil {
				return nil, err
			}
			defaultName, err := args.GetString("default_partition_name")
			if err != nil {
				return nil, err
			}
			keyList := strings.Split(keys, ",")
			return func(v any) (any, error) {
				spec, err := partitionSpecOfObject(v, keyList, defaultName)
				if err != nil {
					return nil, err
				}
				values := make([]any, 0, spec.Len())
				for _, e := range spec.Entries() {
					values = append(values, *e.Value)
				}
				return values, nil
			}, nil
		},
	); err != nil {
		panic(err)
	}
}

func partitionMethodArgs(args *bloblang.ParsedParams) (keys []string, hiveStyle bool, defaultName string, err error) {
	var rawKeys string
	if rawKeys, err = args.GetString("keys"); err != nil {
		return
	}
	if hiveStyle, err = args.GetBool("hive_style"); err != nil {
		return
	}
	if defaultName, err = args.GetString("default_partition_name"); err != nil {
		return
	}
	keys = strings.Split(rawKeys, ",")
	return
}

// partitionSpecOfObject builds a fully valued partition spec from an object's
// fields, in key order, substituting defaultName for null values.
func partitionSpecOfObject(v any, keys []string, defaultName string) (*PartitionSpec, error) {
	gObj := gabs.Wrap(v)

	spec := NewPartitionSpec()
	for _, key := range keys {
		if !gObj.ExistsP(key) {
			return nil, fmt.Errorf("partition key %q not found in object", key)
		}
		if value := gObj.Path(key).Data(); value == nil {
			spec.Set(key, defaultName)
		} else {
			spec.Set(key, partitionValueString(value))
		}
	}
	return spec, nil
}
