package block

import (
	"fmt"
	"math/big"
	"path/filepath"

	"golang.org/x/text/encoding"

	"github.com/joshuapare/blockkit/internal/format"
	"github.com/joshuapare/blockkit/internal/textenc"
	"github.com/joshuapare/blockkit/pkg/types"
)

// Type describes how a field's value is built from raw input and measured.
//
// The set of variants is closed: integers, byte sequences (Bytes, Text, File,
// Empty, Custom), ArrayOf, Align and *Schema. Custom is the extension point
// for user-defined encodings.
type Type interface {
	// Name is used in type names shown to users, e.g. "U16" or "Array[U16]".
	Name() string
	// StaticSize returns the encoded size when it is known without input.
	StaticSize() (int, bool)

	build(at site, raw any) (Value, error)
}

// validator is implemented by types that can reject a schema declaration.
type validator interface {
	validate() error
}

// inputless is implemented by types whose value never comes from raw input.
type inputless interface {
	inputless()
}

// -----------------------------------------------------------------------------
// Integers
// -----------------------------------------------------------------------------

// Integer is a fixed-width integer encoded big-endian.
type Integer struct {
	name   string
	width  int
	signed bool
}

// Unsigned integer types. Like the format they model, they also accept
// negative values down to -2^(bits-1) and store them in two's complement.
var (
	U8  = &Integer{name: "U8", width: format.Width8}
	U16 = &Integer{name: "U16", width: format.Width16}
	U32 = &Integer{name: "U32", width: format.Width32}
	U64 = &Integer{name: "U64", width: format.Width64}
)

// Signed integer types. They only accept the signed range of their width.
var (
	I8  = &Integer{name: "I8", width: format.Width8, signed: true}
	I16 = &Integer{name: "I16", width: format.Width16, signed: true}
	I32 = &Integer{name: "I32", width: format.Width32, signed: true}
	I64 = &Integer{name: "I64", width: format.Width64, signed: true}
)

func (t *Integer) Name() string            { return t.name }
func (t *Integer) StaticSize() (int, bool) { return t.width, true }

// Width returns the encoded size in bytes.
func (t *Integer) Width() int { return t.width }

// Bounds returns the inclusive range of values t accepts.
func (t *Integer) Bounds() (lo, hi *big.Int) {
	bits := uint(t.width * 8)
	lo = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), bits-1))
	if t.signed {
		hi = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), bits-1), big.NewInt(1))
	} else {
		hi = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), bits), big.NewInt(1))
	}
	return lo, hi
}

func (t *Integer) validate() error {
	if !format.ValidWidth(t.width) {
		return types.Errorf(types.ErrKindSchema, "integer type %s has unsupported width %d", t.name, t.width)
	}
	return nil
}

func (t *Integer) build(_ site, raw any) (Value, error) {
	n, err := toBigInt(raw)
	if err != nil {
		return nil, types.Errorf(types.ErrKindTypeMismatch, "expected integer for %s, %v", t.name, err)
	}
	lo, hi := t.Bounds()
	if n.Cmp(lo) < 0 || n.Cmp(hi) > 0 {
		return nil, types.Errorf(types.ErrKindRange, "value %d outside of range, must be %d to %d", n, lo, hi)
	}
	if n.Sign() < 0 {
		return &Int{typ: t, u: uint64(n.Int64()), neg: true}, nil
	}
	return &Int{typ: t, u: n.Uint64()}, nil
}

// -----------------------------------------------------------------------------
// Byte sequences
// -----------------------------------------------------------------------------

// textType builds byte sequences from raw bytes or from text.
type textType struct {
	name  string
	label string
	enc   encoding.Encoding
	err   error
}

// Bytes is a variable-length byte sequence. Raw []byte is used as-is; a
// string is encoded as UTF-8 followed by a single zero terminator.
var Bytes Type = &textType{name: "Bytes", label: textenc.DefaultLabel}

// Text is like Bytes but encodes strings with the named encoding (see
// internal/textenc for labels, e.g. "utf-16le", "latin1", "shift_jis"). The
// terminator is still a single zero byte. Unknown labels are rejected when
// the schema is created.
func Text(label string) Type {
	enc, err := textenc.Lookup(label)
	return &textType{name: "Text(" + label + ")", label: label, enc: enc, err: err}
}

func (t *textType) Name() string            { return t.name }
func (t *textType) StaticSize() (int, bool) { return 0, false }

func (t *textType) validate() error {
	if t.err != nil {
		return types.Wrap(types.ErrKindSchema, t.err, "invalid text type")
	}
	return nil
}

func (t *textType) build(_ site, raw any) (Value, error) {
	switch v := raw.(type) {
	case string:
		data, err := textenc.Encode(t.enc, v)
		if err != nil {
			return nil, types.Wrap(types.ErrKindTypeMismatch, err, fmt.Sprintf("cannot encode text as %s", t.label))
		}
		return &ByteSeq{typ: t, data: data}, nil
	case []byte:
		return &ByteSeq{typ: t, data: append([]byte(nil), v...)}, nil
	case *ByteSeq:
		return &ByteSeq{typ: t, data: v.data}, nil
	default:
		return nil, types.Errorf(types.ErrKindTypeMismatch, "expected bytes or string for %s, received %s", t.name, typeName(raw))
	}
}

// fileType reads its bytes through Options.ReadFile.
type fileType struct{}

// File is a byte sequence whose raw value is a file path. Relative paths are
// resolved against Options.BaseDir. The contents are inserted as-is, without
// a terminator.
var File Type = fileType{}

func (fileType) Name() string            { return "File" }
func (fileType) StaticSize() (int, bool) { return 0, false }

func (t fileType) build(at site, raw any) (Value, error) {
	switch v := raw.(type) {
	case []byte:
		return &ByteSeq{typ: t, data: append([]byte(nil), v...)}, nil
	case *ByteSeq:
		return &ByteSeq{typ: t, data: v.data}, nil
	case string:
		sess := at.session()
		path := v
		if !filepath.IsAbs(path) && sess.opts.BaseDir != "" {
			path = filepath.Join(sess.opts.BaseDir, path)
		}
		data, err := sess.opts.ReadFile(path)
		if err != nil {
			return nil, types.Wrap(types.ErrKindIO, err, "file read error: "+path)
		}
		sess.log.Debug("read file", "path", path, "size", len(data))
		return &ByteSeq{typ: t, data: data}, nil
	default:
		return nil, types.Errorf(types.ErrKindTypeMismatch, "expected file path for File, received %s", typeName(raw))
	}
}

// emptyType never produces bytes.
type emptyType struct{}

// Empty has size 0 and never generates output. It needs no input.
var Empty Type = emptyType{}

func (emptyType) Name() string            { return "Empty" }
func (emptyType) StaticSize() (int, bool) { return 0, true }
func (emptyType) inputless()              {}

func (t emptyType) build(site, any) (Value, error) {
	return &ByteSeq{typ: t}, nil
}

// EncodeFunc turns a raw input value into bytes for a Custom type.
type EncodeFunc func(raw any) ([]byte, error)

type customType struct {
	name   string
	width  int
	encode EncodeFunc
}

// Custom declares a user-defined type. A width >= 0 fixes the encoded size
// (and makes it statically known); a negative width means variable size.
func Custom(name string, width int, encode EncodeFunc) Type {
	return &customType{name: name, width: width, encode: encode}
}

func (t *customType) Name() string { return t.name }

func (t *customType) StaticSize() (int, bool) {
	if t.width < 0 {
		return 0, false
	}
	return t.width, true
}

func (t *customType) validate() error {
	if t.name == "" || t.encode == nil {
		return types.New(types.ErrKindSchema, "custom type needs a name and an encode function")
	}
	return nil
}

func (t *customType) build(_ site, raw any) (Value, error) {
	data, err := t.encode(raw)
	if err != nil {
		if e, ok := err.(*types.Error); ok {
			return nil, e
		}
		return nil, types.Wrap(types.ErrKindTypeMismatch, err, "")
	}
	if t.width >= 0 && len(data) != t.width {
		return nil, types.Errorf(types.ErrKindTypeMismatch, "%s encoded %d bytes, want %d", t.name, len(data), t.width)
	}
	return &ByteSeq{typ: t, data: data}, nil
}

// -----------------------------------------------------------------------------
// Composites
// -----------------------------------------------------------------------------

type alignType struct {
	of Type
}

// Align pads with zero bytes up to the next multiple of the width of of,
// measured from the start of the root container. of must be an integer type.
// Align fields take no input and cannot have a producer.
//
// Example:
//
//	Align(U32) at absolute offset 5 -> 3 zero bytes
func Align(of Type) Type {
	return &alignType{of: of}
}

func (t *alignType) Name() string            { return "Align[" + t.of.Name() + "]" }
func (t *alignType) StaticSize() (int, bool) { return 0, false }
func (t *alignType) inputless()              {}

func (t *alignType) validate() error {
	if i, isInt := t.of.(*Integer); t.of == nil || (isInt && i == nil) {
		return types.New(types.ErrKindSchema, "align type argument is nil")
	}
	if _, ok := t.of.(*Integer); !ok {
		return types.Errorf(types.ErrKindSchema, "%s: align argument must be an integer type with a statically-known size", t.Name())
	}
	return nil
}

func (t *alignType) build(at site, _ any) (Value, error) {
	off, err := at.globalOffset()
	if err != nil {
		return nil, err
	}
	boundary, _ := t.of.StaticSize()
	return &ByteSeq{typ: t, data: make([]byte, format.Pad(off, boundary))}, nil
}

type arrayType struct {
	elem Type
}

// ArrayOf declares an array of elem. The element count comes from the raw
// input sequence; an empty sequence is allowed.
func ArrayOf(elem Type) Type {
	return &arrayType{elem: elem}
}

func (t *arrayType) Name() string            { return "Array[" + t.elem.Name() + "]" }
func (t *arrayType) StaticSize() (int, bool) { return 0, false }

// Elem returns the element type.
func (t *arrayType) Elem() Type { return t.elem }

func (t *arrayType) validate() error {
	if t.elem == nil {
		return types.New(types.ErrKindSchema, "array element type is nil")
	}
	if v, ok := t.elem.(validator); ok {
		return v.validate()
	}
	return nil
}

func (t *arrayType) build(at site, raw any) (Value, error) {
	items, ok := toSlice(raw)
	if !ok {
		return nil, types.Errorf(types.ErrKindTypeMismatch, "expected sequence for %s, received %s", t.Name(), typeName(raw))
	}
	arr := &Array{typ: t, at: at, elems: make([]Value, 0, len(items))}
	for i, item := range items {
		v, err := t.elem.build(site{owner: at.owner, field: at.field, array: arr, index: i}, item)
		if err != nil {
			e := types.From(err)
			e.AddFrame(elementFrame(t, i))
			return nil, e
		}
		arr.elems = append(arr.elems, v)
	}
	return arr, nil
}
