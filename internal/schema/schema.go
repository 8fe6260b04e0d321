package schema

import "fmt"

// Field is one declared property of a Schema.
type Field struct {
	Name        string
	Constraints []Constraint
}

// Required reports whether the field carries a Required constraint.
func (f Field) Required() bool {
	for _, c := range f.Constraints {
		if c.kind == constraintRequired {
			return true
		}
	}
	return false
}

// Type returns the kind declared by the first TypeIs constraint, if any.
func (f Field) Type() (Kind, bool) {
	for _, c := range f.Constraints {
		if c.kind == constraintType {
			return c.typ, true
		}
	}
	return 0, false
}

// Prop declares a field with the given constraints.
func Prop(name string, constraints ...Constraint) Field {
	return Field{Name: name, Constraints: constraints}
}

// Text declares a required string field, followed by any extra constraints.
func Text(name string, extra ...Constraint) Field {
	cs := append([]Constraint{Required(), TypeIs(String)}, extra...)
	return Field{Name: name, Constraints: cs}
}

// Schema is an ordered, immutable set of field declarations.
type Schema struct {
	name   string
	fields []Field
	index  map[string]int
}

// New builds a Schema. It panics on an empty schema name, an empty field
// name or a duplicated field name, since schemas are declared at startup.
func New(name string, fields ...Field) *Schema {
	if name == "" {
		// ALLOW-PANIC: schemas are static declarations
		panic("schema name cannot be empty")
	}

	s := &Schema{
		name:   name,
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if f.Name == "" {
			// ALLOW-PANIC: schemas are static declarations
			panic(fmt.Sprintf("schema %s: field name cannot be empty", name))
		}
		if _, dup := s.index[f.Name]; dup {
			// ALLOW-PANIC: schemas are static declarations
			panic(fmt.Sprintf("schema %s: duplicate field %q", name, f.Name))
		}
		cs := make([]Constraint, len(f.Constraints))
		copy(cs, f.Constraints)
		for _, c := range cs {
			if c.kind == constraintRule {
				mustParseRule(name, f.Name, c.rule)
			}
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, Field{Name: f.Name, Constraints: cs})
	}
	return s
}

// Name returns the schema name, used in logs and metrics.
func (s *Schema) Name() string {
	return s.name
}

// Fields returns a copy of the declared fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Has reports whether name is a declared field.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// mustParseRule runs a rule tag once against a zero value so that an unknown
// validator tag fails at declaration time instead of on the first request.
func mustParseRule(schemaName, field, tag string) {
	defer func() {
		if r := recover(); r != nil {
			// ALLOW-PANIC: schemas are static declarations
			panic(fmt.Sprintf("schema %s: field %s: invalid rule %q: %v", schemaName, field, tag, r))
		}
	}()
	_ = validate.Var("", tag)
}
