package block

import (
	"github.com/joshuapare/blockkit/internal/buf"
	"github.com/joshuapare/blockkit/pkg/types"
)

// SizeOf resolves field and returns its encoded size. Asking for the size
// of a field whose resolution is in progress is a circular dependency, even
// when its type has a fixed width.
func (b *Block) SizeOf(field string) (int, error) {
	i, err := b.slotIndex(field)
	if err != nil {
		return 0, err
	}
	v, err := b.resolveSlot(i)
	if err != nil {
		return 0, b.accessorError(field, err)
	}
	return v.Len(), nil
}

// layoutSize returns the size slot i occupies for offset arithmetic. A
// field with a static size is not resolved, so offsets past fixed-width
// fields (including one whose resolution is in progress) stay available.
func (b *Block) layoutSize(i int) (int, error) {
	s := &b.slots[i]
	if s.state == resolved {
		return s.value.Len(), nil
	}
	if n, ok := s.def.Type.StaticSize(); ok {
		return n, nil
	}
	v, err := b.resolveSlot(i)
	if err != nil {
		return 0, err
	}
	return v.Len(), nil
}

// OffsetOf returns the offset of field relative to the start of b. Preceding
// fields of variable size are resolved on demand; the result is cached.
func (b *Block) OffsetOf(field string) (int, error) {
	i, err := b.slotIndex(field)
	if err != nil {
		return 0, err
	}
	off, err := b.offsetOfSlot(i)
	if err != nil {
		return 0, b.accessorError(field, err)
	}
	return off, nil
}

func (b *Block) offsetOfSlot(i int) (int, error) {
	s := &b.slots[i]
	if s.offsetKnown {
		return s.offset, nil
	}
	off := 0
	start := 0
	// Reuse the nearest cached predecessor.
	for j := i - 1; j >= 0; j-- {
		if b.slots[j].offsetKnown {
			n, err := b.layoutSize(j)
			if err != nil {
				return 0, err
			}
			var ok bool
			if off, ok = buf.AddOverflowSafe(b.slots[j].offset, n); !ok {
				return 0, overflow(b, s.def.Name)
			}
			start = j + 1
			break
		}
	}
	for j := start; j < i; j++ {
		n, err := b.layoutSize(j)
		if err != nil {
			return 0, err
		}
		var ok bool
		if off, ok = buf.AddOverflowSafe(off, n); !ok {
			return 0, overflow(b, s.def.Name)
		}
	}
	s.offset, s.offsetKnown = off, true
	return off, nil
}

// GlobalOffsetOf returns the offset of field relative to the start of the
// root container.
func (b *Block) GlobalOffsetOf(field string) (int, error) {
	rel, err := b.OffsetOf(field)
	if err != nil {
		return 0, err
	}
	base, err := b.GlobalOffset()
	if err != nil {
		return 0, b.accessorError(field, err)
	}
	off, ok := buf.AddOverflowSafe(base, rel)
	if !ok {
		return 0, b.accessorError(field, overflow(b, field))
	}
	return off, nil
}

// Offset returns the offset of b within its parent container, or within
// its array when b is an array element. The root is at offset 0.
func (b *Block) Offset() (int, error) {
	switch {
	case b.at.owner == nil:
		return 0, nil
	case b.at.array != nil:
		return b.at.array.offsetOf(b.at.index), nil
	default:
		return b.at.owner.OffsetOf(b.at.field)
	}
}

// GlobalOffset returns the offset of b relative to the root container.
func (b *Block) GlobalOffset() (int, error) {
	if b.globalKnown {
		return b.globalOff, nil
	}
	off, err := b.at.globalOffset()
	if err != nil {
		return 0, err
	}
	b.globalOff, b.globalKnown = off, true
	return off, nil
}

// globalOffset returns the root-relative offset of the site. Array elements
// sit after the elements built before them.
func (s site) globalOffset() (int, error) {
	switch {
	case s.owner == nil:
		return 0, nil
	case s.array != nil:
		base, err := s.array.at.globalOffset()
		if err != nil {
			return 0, err
		}
		off, ok := buf.AddOverflowSafe(base, s.array.offsetOf(s.index))
		if !ok {
			return 0, overflow(s.owner, s.field)
		}
		return off, nil
	default:
		return s.owner.GlobalOffsetOf(s.field)
	}
}

func overflow(b *Block, field string) *types.Error {
	return types.Errorf(types.ErrKindRange, "offset of %q in %s overflows", field, b.schema.name)
}
