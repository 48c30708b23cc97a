package block

import (
	"github.com/joshuapare/blockkit/pkg/types"
)

// Resolve returns the value of field, computing it on first access.
//
// The value comes from the field's producer when it has one, otherwise from
// the raw input entry. Either way it is wrapped by the declared type. A
// failed resolution leaves the field unresolved.
func (b *Block) Resolve(field string) (Value, error) {
	i, err := b.slotIndex(field)
	if err != nil {
		return nil, err
	}
	v, err := b.resolveSlot(i)
	if err != nil {
		return nil, b.accessorError(field, err)
	}
	return v, nil
}

// IntOf resolves field and returns it as an integer.
func (b *Block) IntOf(field string) (int64, error) {
	v, err := b.Resolve(field)
	if err != nil {
		return 0, err
	}
	n, ok := v.(*Int)
	if !ok {
		err := types.Errorf(types.ErrKindTypeMismatch, "field %q of %s is %s, not an integer", field, b.schema.name, v.Type().Name())
		return 0, b.accessorError(field, err)
	}
	return n.Int(), nil
}

// accessorError frames a failure of an accessor called outside a build.
// Inside a build the field that failed has already framed it.
func (b *Block) accessorError(field string, err error) error {
	e := types.From(err)
	if len(b.sess.stack) == 0 {
		e.AddFrameFor(b, fieldFrame(b.schema.name, field))
	}
	return e
}

// resolveAll resolves every field in declaration order and marks the block
// built.
func (b *Block) resolveAll() error {
	if b.built {
		return nil
	}
	for i := range b.slots {
		if _, err := b.resolveSlot(i); err != nil {
			return err
		}
	}
	b.built = true
	return nil
}

func (b *Block) resolveSlot(i int) (Value, error) {
	s := &b.slots[i]
	switch s.state {
	case resolved:
		return s.value, nil
	case inProgress:
		return nil, b.cycleError(s.def.Name)
	}

	s.state = inProgress
	b.sess.stack = append(b.sess.stack, stackEntry{b: b, field: s.def.Name})
	v, err := b.compute(i)
	b.sess.stack = b.sess.stack[:len(b.sess.stack)-1]
	if err != nil {
		s.state = unresolved
		// The first field of this container to fail names it in the trace.
		e := types.From(err)
		e.AddFrameFor(b, fieldFrame(b.schema.name, s.def.Name))
		return nil, e
	}

	s.value = v
	s.state = resolved
	b.sess.log.Debug("resolved field", "block", b.schema.name, "field", s.def.Name, "type", v.Type().Name(), "size", v.Len())
	return v, nil
}

func (b *Block) compute(i int) (Value, error) {
	def := b.slots[i].def
	at := site{owner: b, field: def.Name}
	raw, hasRaw := b.raw[def.Name]

	if def.Producer != nil {
		b.sess.log.Debug("invoking producer", "block", b.schema.name, "field", def.Name)
		out, err := def.Producer(b, raw)
		if err != nil {
			return nil, types.From(err)
		}
		return def.Type.build(at, out)
	}
	if !hasRaw {
		if _, ok := def.Type.(inputless); !ok {
			return nil, types.Errorf(types.ErrKindMissingField, "no producer or input value found for %q", def.Name)
		}
	}
	return def.Type.build(at, raw)
}

// cycleError reports the fields on the resolution stack from the first
// entry for field back around to field itself.
func (b *Block) cycleError(field string) *types.Error {
	stack := b.sess.stack
	start := 0
	for i, e := range stack {
		if e.b == b && e.field == field {
			start = i
			break
		}
	}
	names := make([]string, 0, len(stack)-start+1)
	for _, e := range stack[start:] {
		names = append(names, b.qualify(e))
	}
	names = append(names, field)
	return &types.Error{
		Kind:  types.ErrKindCircular,
		Msg:   "circular dependency in " + b.schema.name + ": " + joinCycle(names),
		Cycle: names,
	}
}

// qualify names fields of other containers as "Type.field".
func (b *Block) qualify(e stackEntry) string {
	if e.b == b {
		return e.field
	}
	return e.b.schema.name + "." + e.field
}
