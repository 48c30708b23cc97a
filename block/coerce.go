package block

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strings"
)

// toBigInt accepts the integer shapes that decoders and producers hand out:
// native ints, integral floats (JSON/YAML), json.Number, numeric strings with
// an optional 0x/0o/0b prefix and already-built *Int values.
func toBigInt(raw any) (*big.Int, error) {
	switch v := raw.(type) {
	case nil:
		return nil, fmt.Errorf("received nil")
	case *Int:
		if v.neg {
			return big.NewInt(int64(v.u)), nil
		}
		return new(big.Int).SetUint64(v.u), nil
	case *big.Int:
		return new(big.Int).Set(v), nil
	case int:
		return big.NewInt(int64(v)), nil
	case int8:
		return big.NewInt(int64(v)), nil
	case int16:
		return big.NewInt(int64(v)), nil
	case int32:
		return big.NewInt(int64(v)), nil
	case int64:
		return big.NewInt(v), nil
	case uint:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(v)), nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case float32:
		return floatToBig(float64(v))
	case float64:
		return floatToBig(v)
	case json.Number:
		return parseInt(string(v))
	case string:
		return parseInt(v)
	case bool:
		return nil, fmt.Errorf("received bool")
	}
	return nil, fmt.Errorf("received %s", typeName(raw))
}

func floatToBig(f float64) (*big.Int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return nil, fmt.Errorf("received non-integral number %v", f)
	}
	n, _ := big.NewFloat(f).Int(nil)
	return n, nil
}

func parseInt(s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(strings.ReplaceAll(strings.TrimSpace(s), "_", ""), 0)
	if !ok {
		return nil, fmt.Errorf("received non-numeric string %q", s)
	}
	return n, nil
}

// toSlice returns the items of any slice or array value. []byte is not a
// sequence of integers here; it is only accepted by byte types.
func toSlice(raw any) ([]any, bool) {
	switch v := raw.(type) {
	case nil:
		return nil, false
	case []any:
		return v, true
	case *Array:
		out := make([]any, len(v.elems))
		for i, e := range v.elems {
			out[i] = e
		}
		return out, true
	case []byte, string:
		return nil, false
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// toMap returns raw as a string-keyed map. Maps with non-string keys (as
// produced by some YAML decoders) are converted with fmt.Sprint keys.
func toMap(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case nil:
		return map[string]any{}, true
	case map[string]any:
		return v, true
	case *Block:
		return v.raw, true
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	rv := reflect.ValueOf(raw)
	if rv.Kind() != reflect.Map {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[fmt.Sprint(iter.Key().Interface())] = iter.Value().Interface()
	}
	return out, true
}

func typeName(raw any) string {
	if raw == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", raw)
}
