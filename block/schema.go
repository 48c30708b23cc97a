package block

import (
	"github.com/joshuapare/blockkit/internal/buf"
	"github.com/joshuapare/blockkit/pkg/types"
)

// Producer computes a field's raw value from its sibling fields. raw is the
// field's entry in the input (nil when absent). The returned value is wrapped
// by the field's declared type like any other raw input.
//
// Producers may call b.Resolve, b.SizeOf, b.OffsetOf and b.GlobalOffsetOf on
// the same block or, through b.Parent and b.Root, on enclosing blocks. They
// run at most once per field.
type Producer func(b *Block, raw any) (any, error)

// FieldDef declares one named field of a schema.
type FieldDef struct {
	Name     string
	Type     Type
	Producer Producer
}

// Field declares a field that takes its value from the input.
func Field(name string, t Type) FieldDef {
	return FieldDef{Name: name, Type: t}
}

// WithProducer returns a copy of f that computes its value with p.
//
// Example:
//
//	Field("count", U8).WithProducer(func(b *Block, _ any) (any, error) {
//	    return b.SizeOf("items")
//	})
func (f FieldDef) WithProducer(p Producer) FieldDef {
	f.Producer = p
	return f
}

// Schema is an ordered, named list of fields. A *Schema is also a Type: a
// field of schema type is a nested container laid out inline.
//
// Schemas are immutable once created, except for SetProducer which exists so
// that mutually-referencing producers can be attached after construction.
type Schema struct {
	name   string
	fields []FieldDef
	index  map[string]int
}

// NewSchema validates and returns a schema. Field order is layout order.
func NewSchema(name string, fields ...FieldDef) (*Schema, error) {
	if name == "" {
		return nil, types.New(types.ErrKindSchema, "schema name must not be empty")
	}
	s := &Schema{name: name, fields: make([]FieldDef, 0, len(fields)), index: make(map[string]int, len(fields))}
	for _, f := range fields {
		if f.Name == "" {
			return nil, types.Errorf(types.ErrKindSchema, "%s: field name must not be empty", name)
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, types.Errorf(types.ErrKindSchema, "%s: duplicate field %q", name, f.Name)
		}
		if f.Type == nil {
			return nil, types.Errorf(types.ErrKindSchema, "%s: field %q has no type", name, f.Name)
		}
		if v, ok := f.Type.(validator); ok {
			if err := v.validate(); err != nil {
				e := types.From(err)
				e.AddFrame(fieldFrame(name, f.Name))
				return nil, e
			}
		}
		if _, ok := f.Type.(*alignType); ok && f.Producer != nil {
			return nil, types.Errorf(types.ErrKindSchema, "%s: align field %q cannot have a producer", name, f.Name)
		}
		s.index[f.Name] = len(s.fields)
		s.fields = append(s.fields, f)
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error. It is meant for
// package-level schema variables.
func MustSchema(name string, fields ...FieldDef) *Schema {
	s, err := NewSchema(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// SetProducer attaches a producer to an existing field. It must not be called
// while a build using s is running.
func (s *Schema) SetProducer(field string, p Producer) error {
	i, ok := s.index[field]
	if !ok {
		return notFound(s, field)
	}
	if _, ok := s.fields[i].Type.(*alignType); ok {
		return types.Errorf(types.ErrKindSchema, "%s: align field %q cannot have a producer", s.name, field)
	}
	s.fields[i].Producer = p
	return nil
}

func (s *Schema) Name() string { return s.name }

// Fields returns the field declarations in layout order.
func (s *Schema) Fields() []FieldDef {
	out := make([]FieldDef, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field returns the declaration of the named field.
func (s *Schema) Field(name string) (FieldDef, bool) {
	i, ok := s.index[name]
	if !ok {
		return FieldDef{}, false
	}
	return s.fields[i], true
}

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.fields) }

// StaticSize is known when every field has a static size.
func (s *Schema) StaticSize() (int, bool) {
	sizes := make([]int, 0, len(s.fields))
	for _, f := range s.fields {
		n, ok := f.Type.StaticSize()
		if !ok {
			return 0, false
		}
		sizes = append(sizes, n)
	}
	return buf.SumSafe(sizes...)
}

// OffsetOf returns the relative offset of field when every preceding field
// has a static size.
func (s *Schema) OffsetOf(field string) (int, bool) {
	i, ok := s.index[field]
	if !ok {
		return 0, false
	}
	off := 0
	for _, f := range s.fields[:i] {
		n, ok := f.Type.StaticSize()
		if !ok {
			return 0, false
		}
		off += n
	}
	return off, true
}

func (s *Schema) build(at site, raw any) (Value, error) {
	parent := at.owner
	sess := parent.sess
	if parent.depth+1 > sess.opts.MaxDepth {
		return nil, types.Errorf(types.ErrKindSchema, "%s: nesting exceeds maximum depth %d", s.name, sess.opts.MaxDepth)
	}
	m, ok := toMap(raw)
	if !ok {
		return nil, types.Errorf(types.ErrKindTypeMismatch, "expected mapping for %s, received %s", s.name, typeName(raw))
	}
	child := newBlock(s, m, sess, parent, at)
	if err := child.resolveAll(); err != nil {
		return nil, err
	}
	return child, nil
}

func notFound(s *Schema, field string) *types.Error {
	return types.Errorf(types.ErrKindNotFound, "field %q does not exist in %s", field, s.name)
}
