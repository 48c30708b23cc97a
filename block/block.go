package block

import (
	"log/slog"
)

type slotState uint8

const (
	unresolved slotState = iota
	inProgress
	resolved
)

// slot is the per-field resolution state of one Block.
type slot struct {
	def         *FieldDef
	state       slotState
	value       Value
	offset      int
	offsetKnown bool
}

// session is shared by every Block of one build tree.
type session struct {
	opts  *Options
	log   *slog.Logger
	stack []stackEntry
}

// stackEntry is one field whose resolution is in progress.
type stackEntry struct {
	b     *Block
	field string
}

// site is the position a value occupies: field of owner, or element index of
// array when array is set. The zero site is the root.
type site struct {
	owner *Block
	field string
	array *Array
	index int
}

func (s site) session() *session {
	if s.owner == nil {
		return nil
	}
	return s.owner.sess
}

// Block is a container instance: a schema bound to its raw input, resolving
// fields lazily and at most once.
//
// A Block is also the Value of a nested-container field, so producers can
// walk into children through Resolve and out to ancestors through Parent.
//
// Thread Safety: a Block tree is not safe for concurrent use. Producers run
// synchronously on the goroutine that called Build or Resolve.
type Block struct {
	schema *Schema
	raw    map[string]any
	sess   *session
	parent *Block
	at     site
	depth  int
	slots  []slot

	globalOff   int
	globalKnown bool
	built       bool
}

// New binds s to raw without resolving anything. Fields are resolved on
// first access or by Build. A nil opts uses DefaultOptions.
//
// Example:
//
//	b := block.New(level, map[string]any{"level_id": 3, "setting": 2, "name": "Example Level"}, nil)
//	n, err := b.SizeOf("name") // 14
func New(s *Schema, raw map[string]any, opts *Options) *Block {
	o := opts.withDefaults()
	sess := &session{opts: o, log: o.Logger}
	if raw == nil {
		raw = map[string]any{}
	}
	return newBlock(s, raw, sess, nil, site{})
}

// Build resolves s against raw and returns the serialized bytes. On failure
// no bytes are returned.
func Build(s *Schema, raw map[string]any, opts *Options) ([]byte, error) {
	return New(s, raw, opts).Build()
}

func newBlock(s *Schema, raw map[string]any, sess *session, parent *Block, at site) *Block {
	b := &Block{
		schema: s,
		raw:    raw,
		sess:   sess,
		parent: parent,
		at:     at,
		slots:  make([]slot, len(s.fields)),
	}
	if parent != nil {
		b.depth = parent.depth + 1
	}
	for i := range s.fields {
		b.slots[i].def = &s.fields[i]
	}
	return b
}

// Schema returns the schema the block was built from.
func (b *Block) Schema() *Schema { return b.schema }

// Parent returns the enclosing container, or nil for the root.
func (b *Block) Parent() *Block { return b.parent }

// Root returns the outermost container.
func (b *Block) Root() *Block {
	r := b
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Depth returns the nesting level: 0 for the root, 1 for its children.
func (b *Block) Depth() int { return b.depth }

// FieldName returns the name of the field holding b in its parent ("" for
// the root).
func (b *Block) FieldName() string { return b.at.field }

// Index returns the element index when b is an array element, or -1.
func (b *Block) Index() int {
	if b.at.array == nil {
		return -1
	}
	return b.at.index
}

// BaseDir returns the directory relative File paths are resolved against.
func (b *Block) BaseDir() string { return b.sess.opts.BaseDir }

// Logger returns the logger of the build.
func (b *Block) Logger() *slog.Logger { return b.sess.log }

// Raw returns the raw input entry for field.
func (b *Block) Raw(field string) (any, bool) {
	v, ok := b.raw[field]
	return v, ok
}

// Has reports whether the raw input has an entry for field.
func (b *Block) Has(field string) bool {
	_, ok := b.raw[field]
	return ok
}

// Built reports whether every field has been resolved by Build.
func (b *Block) Built() bool { return b.built }

func (b *Block) slotIndex(field string) (int, error) {
	i, ok := b.schema.index[field]
	if !ok {
		return 0, notFound(b.schema, field)
	}
	return i, nil
}

// Type implements Value.
func (b *Block) Type() Type { return b.schema }

// Len implements Value. It sums the sizes of resolved fields, so it equals
// the container size once the block is built.
func (b *Block) Len() int {
	n := 0
	for i := range b.slots {
		if b.slots[i].value != nil {
			n += b.slots[i].value.Len()
		}
	}
	return n
}

// AppendTo implements Value; fields are written in declaration order.
func (b *Block) AppendTo(dst []byte) []byte {
	for i := range b.slots {
		if b.slots[i].value != nil {
			dst = b.slots[i].value.AppendTo(dst)
		}
	}
	return dst
}

// Bytes implements Value.
func (b *Block) Bytes() []byte { return b.AppendTo(make([]byte, 0, b.Len())) }

// Build resolves every field reachable from b and returns the serialized
// container. Calling Build again returns the same bytes.
func (b *Block) Build() ([]byte, error) {
	if err := b.resolveAll(); err != nil {
		return nil, err
	}
	out := b.Bytes()
	b.sess.log.Debug("built block", "block", b.schema.name, "size", len(out))
	return out, nil
}

var _ Value = (*Block)(nil)
