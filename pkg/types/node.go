package types

// NodeKind tells a consumer how to interpret a Node.
type NodeKind string

const (
	KindBlock NodeKind = "block" // nested container; Children are its fields
	KindArray NodeKind = "array" // Children are the elements, Name is empty
	KindInt   NodeKind = "int"   // fixed-width integer; Data holds its bytes
	KindBytes NodeKind = "bytes" // byte sequence, file contents or custom data
	KindAlign NodeKind = "align" // zero padding
)

// Node is a read-only description of one resolved value in a built file.
// Offsets and sizes are in bytes.
type Node struct {
	// Name is the field name, empty for array elements and the root.
	Name string `json:"name,omitempty"`
	// Index is the element index when the node lives in an array, else -1.
	Index int `json:"index"`
	// Type is the declared type name, e.g. "U16", "Array[Sample]", "Level".
	Type string   `json:"type"`
	Kind NodeKind `json:"kind"`
	// Offset is relative to the immediately enclosing container or array.
	Offset int `json:"offset"`
	// GlobalOffset is relative to the start of the root container.
	GlobalOffset int `json:"global_offset"`
	Size         int `json:"size"`
	// Data holds the encoded bytes of leaf nodes.
	Data     []byte `json:"data,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// IsLeaf reports whether n has no children by construction.
func (n Node) IsLeaf() bool {
	return n.Kind != KindBlock && n.Kind != KindArray
}

// Walk calls fn for n and every descendant in layout order. Returning false
// from fn skips the node's children.
func (n Node) Walk(fn func(Node, int) bool) {
	n.walk(fn, 0)
}

func (n Node) walk(fn func(Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}
