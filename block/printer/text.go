package printer

import (
	"fmt"
	"strings"

	"github.com/joshuapare/blockkit/internal/buf"
	"github.com/joshuapare/blockkit/pkg/types"
)

// printText prints nodes in layout order, recursing into blocks and arrays.
func (p *Printer) printText(nodes []types.Node, depth int) error {
	if p.opts.MaxDepth > 0 && depth >= p.opts.MaxDepth {
		return nil
	}
	indent := strings.Repeat(" ", depth*p.opts.IndentSize)

	for _, n := range nodes {
		if p.skip(n) {
			continue
		}
		if n.Index >= 0 && n.Kind == types.KindInt && p.opts.CollapseArrays {
			// Integer elements collapse into one line at the first element.
			if n.Index == 0 {
				if _, err := fmt.Fprintf(p.writer, "%s%#x ...\n", indent, n.GlobalOffset); err != nil {
					return err
				}
			}
			continue
		}

		if _, err := fmt.Fprintf(p.writer, "%s%#x (%#x) %s", indent, n.GlobalOffset, n.Offset, label(n)); err != nil {
			return err
		}
		if p.opts.ShowValues && n.IsLeaf() {
			fmt.Fprintf(p.writer, " = %s", p.formatValue(n))
		}
		fmt.Fprintln(p.writer)

		if !n.IsLeaf() {
			if err := p.printText(n.Children, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// label is "name: Type", with the element count for arrays. Array elements
// have no name.
func label(n types.Node) string {
	typ := n.Type
	if n.Kind == types.KindArray {
		typ = fmt.Sprintf("%s (%d)", typ, len(n.Children))
	}
	if n.Name == "" {
		return typ
	}
	return n.Name + ": " + typ
}

func (p *Printer) formatValue(n types.Node) string {
	switch n.Kind {
	case types.KindInt:
		u := buf.Uint(n.Data)
		if s := buf.Int(n.Data); s < 0 && strings.HasPrefix(n.Type, "I") {
			return fmt.Sprintf("%d", s)
		}
		return fmt.Sprintf("%#x (%d)", u, u)
	default:
		if len(n.Data) == 0 {
			return "<empty>"
		}
		data, truncated := p.truncate(n.Data)
		if truncated {
			return fmt.Sprintf("%X (truncated, %d total bytes)", data, len(n.Data))
		}
		return fmt.Sprintf("%X", data)
	}
}
