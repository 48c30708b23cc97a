package block

import (
	"github.com/joshuapare/blockkit/pkg/types"
)

// Tree builds b if needed and returns a read-only description of every
// resolved value with its offsets and size.
func (b *Block) Tree() (types.Node, error) {
	if err := b.resolveAll(); err != nil {
		return types.Node{}, err
	}
	off, err := b.Offset()
	if err != nil {
		return types.Node{}, err
	}
	global, err := b.GlobalOffset()
	if err != nil {
		return types.Node{}, err
	}
	return b.node(b.at.field, b.Index(), off, global)
}

func (b *Block) node(name string, index, off, global int) (types.Node, error) {
	n := types.Node{
		Name:         name,
		Index:        index,
		Type:         b.schema.name,
		Kind:         types.KindBlock,
		Offset:       off,
		GlobalOffset: global,
		Size:         b.Len(),
		Children:     make([]types.Node, 0, len(b.slots)),
	}
	for i := range b.slots {
		rel, err := b.offsetOfSlot(i)
		if err != nil {
			return types.Node{}, err
		}
		child, err := valueNode(b.slots[i].def.Name, -1, b.slots[i].value, rel, global+rel)
		if err != nil {
			return types.Node{}, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}

func valueNode(name string, index int, v Value, off, global int) (types.Node, error) {
	switch v := v.(type) {
	case *Block:
		return v.node(name, index, off, global)
	case *Array:
		n := types.Node{
			Name:         name,
			Index:        index,
			Type:         v.Type().Name(),
			Kind:         types.KindArray,
			Offset:       off,
			GlobalOffset: global,
			Size:         v.Len(),
			Children:     make([]types.Node, 0, len(v.elems)),
		}
		rel := 0
		for i, e := range v.elems {
			child, err := valueNode("", i, e, rel, global+rel)
			if err != nil {
				return types.Node{}, err
			}
			n.Children = append(n.Children, child)
			rel += e.Len()
		}
		return n, nil
	}
	kind := types.KindBytes
	switch v.Type().(type) {
	case *Integer:
		kind = types.KindInt
	case *alignType:
		kind = types.KindAlign
	}
	return types.Node{
		Name:         name,
		Index:        index,
		Type:         v.Type().Name(),
		Kind:         kind,
		Offset:       off,
		GlobalOffset: global,
		Size:         v.Len(),
		Data:         v.Bytes(),
	}, nil
}
