// Package formutil materializes the form values stored with a Connection or
// Job (plain map[string]string, per model.FormSet) into the typed
// configuration structs spec.md §4.3 step 2 calls for. The source system
// does this with a generic reflection-driven form/configuration
// materializer (out of scope per spec.md §1); this package is the
// statically-typed replacement spec.md §9 recommends: per-configuration
// decoders driven by a small field-descriptor schema, implemented on top of
// mitchellh/mapstructure.
package formutil

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Materialize decodes values (form field name -> string value, as stored by
// the repository) into dst, a pointer to a connector- or framework-owned
// configuration struct. Struct fields opt into a form field via the
// standard `mapstructure:"field_name"` tag.
func Materialize(values map[string]string, dst any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		WeaklyTypedInput: true, // form values arrive as strings; let ints/bools coerce
		ErrorUnused:      false,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("build form decoder: %w", err)
	}
	if err := decoder.Decode(values); err != nil {
		return fmt.Errorf("materialize form values: %w", err)
	}
	return nil
}

// MaterializeAsMap decodes values into a map copy, used for the
// connector-owned configuration partitions that travel through
// SubmissionRequest as map[string]string rather than typed structs: this
// module does not know the connector's concrete config fields, only the
// connector implementation does (spec.md §1 "out of scope").
func MaterializeAsMap(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}

// FrameworkJobConfig is the framework-owned subset of a job's materialized
// configuration. Unlike the connector-owned partitions, this module does
// define the schema (spec.md §4.3 step 7), so it is decoded through
// Materialize into a typed struct instead of staying a bag of strings.
type FrameworkJobConfig struct {
	OutputDirectory string `mapstructure:"output_directory"`
}
