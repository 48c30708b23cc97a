package printer

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/joshuapare/blockkit/internal/buf"
	"github.com/joshuapare/blockkit/pkg/types"
)

// jsonNode is the JSON shape of one value. Data is hex so the output stays
// readable; Value is set for integers.
type jsonNode struct {
	Name         string     `json:"name,omitempty"`
	Index        *int       `json:"index,omitempty"`
	Type         string     `json:"type"`
	Kind         string     `json:"kind"`
	Offset       int        `json:"offset"`
	GlobalOffset int        `json:"global_offset"`
	Size         int        `json:"size"`
	Value        any        `json:"value,omitempty"`
	Data         string     `json:"data,omitempty"`
	Truncated    bool       `json:"truncated,omitempty"`
	Children     []jsonNode `json:"children,omitempty"`
}

func (p *Printer) printJSON(root types.Node) error {
	data, err := json.MarshalIndent(p.toJSON(root, 0), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(p.writer, "%s\n", data)
	return err
}

func (p *Printer) toJSON(n types.Node, depth int) jsonNode {
	out := jsonNode{
		Name:         n.Name,
		Type:         n.Type,
		Kind:         string(n.Kind),
		Offset:       n.Offset,
		GlobalOffset: n.GlobalOffset,
		Size:         n.Size,
	}
	if n.Index >= 0 {
		idx := n.Index
		out.Index = &idx
	}

	if n.IsLeaf() {
		if n.Kind == types.KindInt {
			if strings.HasPrefix(n.Type, "I") {
				out.Value = buf.Int(n.Data)
			} else {
				out.Value = buf.Uint(n.Data)
			}
		}
		if p.opts.ShowValues {
			data, truncated := p.truncate(n.Data)
			out.Data = hex.EncodeToString(data)
			out.Truncated = truncated
		}
		return out
	}

	if p.opts.MaxDepth > 0 && depth >= p.opts.MaxDepth {
		return out
	}
	for _, c := range n.Children {
		if p.skip(c) {
			continue
		}
		out.Children = append(out.Children, p.toJSON(c, depth+1))
	}
	return out
}
