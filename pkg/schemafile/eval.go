package schemafile

import (
	"errors"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/joshuapare/blockkit/block"
	"github.com/joshuapare/blockkit/pkg/source"
	"github.com/joshuapare/blockkit/pkg/types"
)

// stdFuncs are the cty standard library functions available to value
// expressions.
var stdFuncs = map[string]function.Function{
	"min":    stdlib.MinFunc,
	"max":    stdlib.MaxFunc,
	"abs":    stdlib.AbsoluteFunc,
	"ceil":   stdlib.CeilFunc,
	"floor":  stdlib.FloorFunc,
	"upper":  stdlib.UpperFunc,
	"lower":  stdlib.LowerFunc,
	"format": stdlib.FormatFunc,
	"length": stdlib.LengthFunc,
	"concat": stdlib.ConcatFunc,
}

// exprProducer evaluates expr each time the field is resolved. The engine
// resolves a field once, so in practice expr runs once per block.
func exprProducer(expr hcl.Expression) block.Producer {
	return func(b *block.Block, raw any) (any, error) {
		input, err := source.NativeToCty(raw)
		if err != nil {
			return nil, types.Wrap(types.ErrKindTypeMismatch, err, "input is not representable in expressions")
		}
		ctx := &hcl.EvalContext{
			Variables: map[string]cty.Value{"input": input},
			Functions: blockFuncs(b),
		}
		v, diags := expr.Value(ctx)
		if diags.HasErrors() {
			return nil, diagError(diags)
		}
		return source.CtyToNative(v)
	}
}

// diagError returns the engine error behind a failed function call so its
// kind and cycle survive, or the diagnostics themselves.
func diagError(diags hcl.Diagnostics) error {
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		if extra, ok := hcl.DiagnosticExtra[hclsyntax.FunctionCallDiagExtra](d); ok {
			var e *types.Error
			if err := extra.FunctionCallError(); errors.As(err, &e) {
				return e
			}
		}
	}
	return diags
}

func blockFuncs(b *block.Block) map[string]function.Function {
	funcs := make(map[string]function.Function, len(stdFuncs)+6)
	for name, fn := range stdFuncs {
		funcs[name] = fn
	}

	numberOf := func(query func(*block.Block, string) (int64, error)) function.Function {
		return function.New(&function.Spec{
			Params: []function.Parameter{{Name: "field", Type: cty.String}},
			Type:   function.StaticReturnType(cty.Number),
			Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
				target, field, err := lookup(b, args[0].AsString())
				if err != nil {
					return cty.NilVal, err
				}
				n, err := query(target, field)
				if err != nil {
					return cty.NilVal, err
				}
				return cty.NumberIntVal(n), nil
			},
		})
	}

	funcs["size"] = numberOf(func(t *block.Block, f string) (int64, error) {
		n, err := t.SizeOf(f)
		return int64(n), err
	})
	funcs["offset"] = numberOf(func(t *block.Block, f string) (int64, error) {
		n, err := t.OffsetOf(f)
		return int64(n), err
	})
	funcs["global_offset"] = numberOf(func(t *block.Block, f string) (int64, error) {
		n, err := t.GlobalOffsetOf(f)
		return int64(n), err
	})
	funcs["int"] = numberOf(func(t *block.Block, f string) (int64, error) {
		return t.IntOf(f)
	})
	funcs["count"] = numberOf(func(t *block.Block, f string) (int64, error) {
		v, err := t.Resolve(f)
		if err != nil {
			return 0, err
		}
		arr, ok := v.(*block.Array)
		if !ok {
			return 0, types.Errorf(types.ErrKindTypeMismatch, "count(%q): %s is not an array", f, v.Type().Name())
		}
		return int64(arr.Count()), nil
	})
	funcs["has"] = function.New(&function.Spec{
		Params: []function.Parameter{{Name: "field", Type: cty.String}},
		Type:   function.StaticReturnType(cty.Bool),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			target, field, err := lookup(b, args[0].AsString())
			if err != nil {
				return cty.NilVal, err
			}
			return cty.BoolVal(target.Has(field)), nil
		},
	})
	return funcs
}

// lookup follows a field reference: "name", "../name" or "child.name".
func lookup(b *block.Block, ref string) (*block.Block, string, error) {
	for strings.HasPrefix(ref, "../") {
		if b.Parent() == nil {
			return nil, "", types.Errorf(types.ErrKindNotFound, "%s has no enclosing block", b.Schema().Name())
		}
		b = b.Parent()
		ref = ref[len("../"):]
	}
	parts := strings.Split(ref, ".")
	for _, name := range parts[:len(parts)-1] {
		v, err := b.Resolve(name)
		if err != nil {
			return nil, "", err
		}
		child, ok := v.(*block.Block)
		if !ok {
			return nil, "", types.Errorf(types.ErrKindTypeMismatch, "field %q of %s is %s, not a block", name, b.Schema().Name(), v.Type().Name())
		}
		b = child
	}
	return b, parts[len(parts)-1], nil
}
