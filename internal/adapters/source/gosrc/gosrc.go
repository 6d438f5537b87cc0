// Package gosrc extracts function declarations from Go source for the
// doc-structure check
//
// Design choices:
// - go/parser with ParseComments; the core never sees an AST, only parameter
//   names in declaration order plus the doc comment's byte range.
// - Only pure line-comment ("//") doc groups are checkable. A block-comment
//   doc marks the declaration unverifiable and it is skipped, same as a
//   malformed range.
// - Unnamed and blank parameters surface as "_" so positions stay aligned
//   with the signature
package gosrc

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"doclint/internal/core/docline"
)

// Marker is the comment marker stripped from checkable doc lines
const Marker = "//"

// DocKind classifies a declaration's attached documentation
type DocKind int

const (
	// DocNone means the declaration has no doc comment at all
	DocNone DocKind = iota
	// DocLine is a contiguous group of // comments, checkable
	DocLine
	// DocOther is a doc group containing block comments, skipped
	DocOther
)

// Decl is one function or method declaration with just enough context to
// run the structural check and localize a finding
type Decl struct {
	// Name is the function name, receiver-qualified for methods
	// ("Reader.Fetch")
	Name string

	// Params holds parameter names in declaration order, grouped fields
	// expanded ("a, b int" contributes both)
	Params []string

	// Offset is the byte offset of the declaration itself, the finding
	// anchor when no doc comment exists
	Offset int

	// Doc is the attached doc comment's byte range; zero unless Kind is
	// DocLine or DocOther
	DocOffset int
	DocLen    int
	Kind      DocKind
}

// File is one parsed source file: its declarations plus the line table
// the core slices doc ranges against
type File struct {
	Path  string
	Table *docline.Table
	Decls []Decl
}

// Position converts a byte offset into 1-based line and column, for
// reporting. Offsets outside the file map to line 0
func (f *File) Position(off int) (line, col int) {
	i := f.Table.LineIndex(off)
	if i < 0 {
		return 0, 0
	}
	return i + 1, off - f.Table.Start(i) + 1
}

// ParseFile parses src and collects every func declaration. A syntax
// error fails the whole file; callers skip it and move on
func ParseFile(path string, src []byte) (*File, error) {
	fset := token.NewFileSet()
	astf, err := parser.ParseFile(fset, path, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}

	out := &File{Path: path, Table: docline.NewTable(src)}
	for _, d := range astf.Decls {
		fn, ok := d.(*ast.FuncDecl)
		if !ok {
			continue
		}
		decl := Decl{
			Name:   declName(fn),
			Params: paramNames(fn.Type),
			Offset: fset.Position(fn.Pos()).Offset,
		}
		if fn.Doc != nil {
			decl.Kind = docKind(fn.Doc)
			decl.DocOffset = fset.Position(fn.Doc.Pos()).Offset
			decl.DocLen = fset.Position(fn.Doc.End()).Offset - decl.DocOffset
		}
		out.Decls = append(out.Decls, decl)
	}
	return out, nil
}

// declName qualifies methods by their receiver's base type
func declName(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return fn.Name.Name
	}
	if base := baseTypeName(fn.Recv.List[0].Type); base != "" {
		return base + "." + fn.Name.Name
	}
	return fn.Name.Name
}

// baseTypeName unwraps pointers and type parameters down to the named type
func baseTypeName(e ast.Expr) string {
	for {
		switch t := e.(type) {
		case *ast.StarExpr:
			e = t.X
		case *ast.IndexExpr:
			e = t.X
		case *ast.IndexListExpr:
			e = t.X
		case *ast.Ident:
			return t.Name
		default:
			return ""
		}
	}
}

// paramNames expands grouped fields so the slice length equals the
// signature's arity. Unnamed parameters appear as "_"
func paramNames(ft *ast.FuncType) []string {
	if ft.Params == nil {
		return nil
	}
	var out []string
	for _, field := range ft.Params.List {
		if len(field.Names) == 0 {
			out = append(out, "_")
			continue
		}
		for _, n := range field.Names {
			out = append(out, n.Name)
		}
	}
	return out
}

// docKind demotes any group containing a block comment to DocOther
func docKind(g *ast.CommentGroup) DocKind {
	for _, c := range g.List {
		if !strings.HasPrefix(c.Text, Marker) {
			return DocOther
		}
	}
	return DocLine
}
