package schemafile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/blockkit/block"
)

var builtins = map[string]block.Type{
	"u8":    block.U8,
	"u16":   block.U16,
	"u32":   block.U32,
	"u64":   block.U64,
	"i8":    block.I8,
	"i16":   block.I16,
	"i32":   block.I32,
	"i64":   block.I64,
	"bytes": block.Bytes,
	"file":  block.File,
	"empty": block.Empty,
}

var alignWidths = map[int]block.Type{
	1: block.U8,
	2: block.U16,
	4: block.U32,
	8: block.U64,
}

// parseType turns a type string into a block.Type. Names that are not
// built in are handed to named.
func parseType(s string, named func(name string) (block.Type, error)) (block.Type, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty type")
	}

	open := strings.IndexByte(s, '(')
	if open < 0 {
		if t, ok := builtins[strings.ToLower(s)]; ok {
			return t, nil
		}
		return named(s)
	}
	if !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("type %q: missing closing parenthesis", s)
	}
	head := strings.ToLower(strings.TrimSpace(s[:open]))
	arg := strings.TrimSpace(s[open+1 : len(s)-1])

	switch head {
	case "array":
		elem, err := parseType(arg, named)
		if err != nil {
			return nil, err
		}
		return block.ArrayOf(elem), nil
	case "text":
		return block.Text(strings.Trim(arg, `"'`)), nil
	case "align":
		if w, err := strconv.Atoi(arg); err == nil {
			t, ok := alignWidths[w]
			if !ok {
				return nil, fmt.Errorf("type %q: alignment must be 1, 2, 4 or 8", s)
			}
			return block.Align(t), nil
		}
		of, err := parseType(arg, named)
		if err != nil {
			return nil, err
		}
		return block.Align(of), nil
	default:
		return nil, fmt.Errorf("type %q: unknown type constructor %q", s, head)
	}
}

// typeRefs returns the non-builtin names a type string mentions.
func typeRefs(s string) ([]string, error) {
	var refs []string
	_, err := parseType(s, func(name string) (block.Type, error) {
		refs = append(refs, name)
		return block.Empty, nil
	})
	return refs, err
}
