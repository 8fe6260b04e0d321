package schema

import (
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"
)

// Instance is a raw input reduced to the fields its Schema declares.
type Instance struct {
	schema  *Schema
	values  map[string]any
	unknown []string
}

// Coerce copies every declared field present in raw into a new Instance.
// Keys the schema does not declare are dropped; their names are kept so that
// a strict evaluation can report them. No type conversion happens here.
func (s *Schema) Coerce(raw map[string]any) Instance {
	inst := Instance{
		schema: s,
		values: make(map[string]any, len(s.fields)),
	}
	for _, f := range s.fields {
		if v, ok := raw[f.Name]; ok {
			inst.values[f.Name] = v
		}
	}
	for key := range raw {
		if !s.Has(key) {
			inst.unknown = append(inst.unknown, key)
		}
	}
	sort.Strings(inst.unknown)
	return inst
}

// Schema returns the schema the instance was coerced against.
func (i Instance) Schema() *Schema {
	return i.schema
}

// Get returns the value of a declared field and whether it was present in the input.
func (i Instance) Get(name string) (any, bool) {
	v, ok := i.values[name]
	return v, ok
}

// IsSet reports whether a field was supplied with a non-null value.
func (i Instance) IsSet(name string) bool {
	v, ok := i.values[name]
	return ok && v != nil
}

// Unknown returns the sorted names of input keys the schema does not declare.
func (i Instance) Unknown() []string {
	out := make([]string, len(i.unknown))
	copy(out, i.unknown)
	return out
}

// Map returns a copy of the set (non-null) values keyed by field name.
func (i Instance) Map() map[string]any {
	out := make(map[string]any, len(i.values))
	for k, v := range i.values {
		if v != nil {
			out[k] = v
		}
	}
	return out
}

// Decode copies the instance into dst, a pointer to a struct whose fields are
// matched by their json tags. Call it only after a successful Evaluate.
func (i Instance) Decode(dst any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  dst,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder for %s: %w", i.schemaName(), err)
	}
	if err := dec.Decode(i.Map()); err != nil {
		return fmt.Errorf("failed to decode %s: %w", i.schemaName(), err)
	}
	return nil
}

func (i Instance) schemaName() string {
	if i.schema == nil {
		return "instance"
	}
	return i.schema.name
}
