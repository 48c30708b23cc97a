package schemafile

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/joshuapare/blockkit/block"
	"github.com/joshuapare/blockkit/pkg/types"
)

// hclFile is the top-level structure of a schema file for decoding.
type hclFile struct {
	Root   string     `hcl:"root,optional"`
	Blocks []hclBlock `hcl:"block,block"`
}

type hclBlock struct {
	Name   string     `hcl:"name,label"`
	Fields []hclField `hcl:"field,block"`
	Range  hcl.Range  `hcl:",def_range"`
}

type hclField struct {
	Name  string         `hcl:"name,label"`
	Type  string         `hcl:"type"`
	Value hcl.Expression `hcl:"value,optional"`
	Range hcl.Range      `hcl:",def_range"`
}

// File is a parsed schema file.
type File struct {
	// Path is the file the schemas were read from.
	Path string
	// Root names the schema to build.
	Root string

	schemas map[string]*block.Schema
	order   []string
}

// Schema returns the named schema.
func (f *File) Schema(name string) (*block.Schema, bool) {
	s, ok := f.schemas[name]
	return s, ok
}

// RootSchema returns the schema named by Root.
func (f *File) RootSchema() (*block.Schema, error) {
	s, ok := f.schemas[f.Root]
	if !ok {
		return nil, types.Errorf(types.ErrKindNotFound, "%s: root block %q is not declared", f.Path, f.Root)
	}
	return s, nil
}

// Names returns the declared block names in declaration order.
func (f *File) Names() []string {
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}

// Parser reads schema files. Types registered on the parser can be named in
// field type strings.
type Parser struct {
	parser *hclparse.Parser
	types  map[string]block.Type
}

// NewParser returns a parser that knows only the built-in types.
func NewParser() *Parser {
	return &Parser{parser: hclparse.NewParser(), types: map[string]block.Type{}}
}

// Register makes t available under name. Registered names shadow blocks of
// the same name.
func (p *Parser) Register(name string, t block.Type) {
	p.types[name] = t
}

// Load parses the schema file at path with a fresh Parser.
func Load(path string) (*File, error) {
	return NewParser().ParseFile(path)
}

// ParseFile parses the schema file at path.
func (p *Parser) ParseFile(path string) (*File, error) {
	file, diags := p.parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, types.Wrap(types.ErrKindSchema, diags, "failed to parse schema file "+path)
	}
	return p.decode(file, path)
}

// Parse parses schema source held in memory. filename is used in
// diagnostics.
func (p *Parser) Parse(data []byte, filename string) (*File, error) {
	file, diags := p.parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, types.Wrap(types.ErrKindSchema, diags, "failed to parse schema file "+filename)
	}
	return p.decode(file, filename)
}

func (p *Parser) decode(file *hcl.File, path string) (*File, error) {
	var parsed hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, types.Wrap(types.ErrKindSchema, diags, "failed to decode schema file "+path)
	}
	if len(parsed.Blocks) == 0 {
		return nil, types.Errorf(types.ErrKindSchema, "%s: no blocks declared", path)
	}

	decls := make(map[string]*hclBlock, len(parsed.Blocks))
	out := &File{Path: path, Root: parsed.Root, schemas: map[string]*block.Schema{}}
	for i := range parsed.Blocks {
		b := &parsed.Blocks[i]
		if prev, dup := decls[b.Name]; dup {
			return nil, types.Errorf(types.ErrKindSchema, "%s: block %q already declared at %s", b.Range, b.Name, prev.Range)
		}
		decls[b.Name] = b
		out.order = append(out.order, b.Name)
	}
	if out.Root == "" {
		out.Root = out.order[len(out.order)-1]
	}

	order, err := p.buildOrder(decls, out.order)
	if err != nil {
		return nil, err
	}
	for _, name := range order {
		s, err := p.buildSchema(decls[name], out.schemas)
		if err != nil {
			return nil, err
		}
		out.schemas[name] = s
	}
	return out, nil
}

// buildOrder sorts blocks so every block comes after the blocks its fields
// reference, rejecting reference cycles.
func (p *Parser) buildOrder(decls map[string]*hclBlock, names []string) ([]string, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(decls))
	order := make([]string, 0, len(decls))
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			start := 0
			for i, n := range path {
				if n == name {
					start = i
					break
				}
			}
			cycle := append(append([]string(nil), path[start:]...), name)
			return &types.Error{
				Kind:  types.ErrKindCircular,
				Msg:   "block reference cycle: " + strings.Join(cycle, " -> "),
				Cycle: cycle,
			}
		}
		state[name] = visiting
		path = append(path, name)

		decl := decls[name]
		for _, f := range decl.Fields {
			refs, err := typeRefs(f.Type)
			if err != nil {
				return types.Errorf(types.ErrKindSchema, "%s: field %q: %v", f.Range, f.Name, err)
			}
			for _, ref := range refs {
				if _, ok := p.types[ref]; ok {
					continue
				}
				if _, ok := decls[ref]; !ok {
					return types.Errorf(types.ErrKindSchema, "%s: field %q: unknown type %q", f.Range, f.Name, ref)
				}
				if err := visit(ref); err != nil {
					return err
				}
			}
		}

		path = path[:len(path)-1]
		state[name] = done
		order = append(order, name)
		return nil
	}

	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func (p *Parser) buildSchema(decl *hclBlock, built map[string]*block.Schema) (*block.Schema, error) {
	named := func(name string) (block.Type, error) {
		if t, ok := p.types[name]; ok {
			return t, nil
		}
		if s, ok := built[name]; ok {
			return s, nil
		}
		return nil, fmt.Errorf("unknown type %q", name)
	}

	fields := make([]block.FieldDef, 0, len(decl.Fields))
	for _, f := range decl.Fields {
		t, err := parseType(f.Type, named)
		if err != nil {
			return nil, types.Errorf(types.ErrKindSchema, "%s: field %q: %v", f.Range, f.Name, err)
		}
		def := block.Field(f.Name, t)
		if hasExpr(f.Value) {
			def = def.WithProducer(exprProducer(f.Value))
		}
		fields = append(fields, def)
	}

	s, err := block.NewSchema(decl.Name, fields...)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// hasExpr reports whether a value attribute was written. gohcl fills absent
// optional expressions with a static null.
func hasExpr(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	if len(expr.Variables()) > 0 {
		return true
	}
	v, diags := expr.Value(nil)
	return diags.HasErrors() || !v.IsNull() || v.Type() != cty.DynamicPseudoType
}
