package source

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// parseHCL turns top-level attributes into entries and blocks into nested
// maps. Repeating a block type yields a list of maps:
//
//	level_id = 3
//	header {
//	  magic = 19542
//	}
//	entry { id = 1 }
//	entry { id = 2 }
//
// Lists of objects can also be written as attributes: entries = [{ id = 1 }].
func parseHCL(data []byte, filename string) (map[string]any, error) {
	file, diags := hclsyntax.ParseConfig(data, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("unexpected HCL body type %T", file.Body)
	}
	return decodeBody(body)
}

func decodeBody(body *hclsyntax.Body) (map[string]any, error) {
	out := make(map[string]any, len(body.Attributes)+len(body.Blocks))
	for name, attr := range body.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		native, err := CtyToNative(val)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[name] = native
	}

	counts := make(map[string]int, len(body.Blocks))
	for _, blk := range body.Blocks {
		counts[blk.Type]++
	}
	for _, blk := range body.Blocks {
		if len(blk.Labels) > 0 {
			return nil, fmt.Errorf("%s: block %q must not have labels", blk.DefRange().String(), blk.Type)
		}
		if _, dup := body.Attributes[blk.Type]; dup {
			return nil, fmt.Errorf("%s: %q is both an attribute and a block", blk.DefRange().String(), blk.Type)
		}
		nested, err := decodeBody(blk.Body)
		if err != nil {
			return nil, err
		}
		if counts[blk.Type] == 1 {
			out[blk.Type] = nested
			continue
		}
		list, _ := out[blk.Type].([]any)
		out[blk.Type] = append(list, nested)
	}
	return out, nil
}
