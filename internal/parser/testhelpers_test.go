package parser

import (
	"fmt"
	"strings"
	"testing"

	"tint/internal/ast"
	"tint/internal/diag"
	"tint/internal/lexer"
	"tint/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseSource(t *testing.T, input string) (*ast.Builder, *ast.File, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.wgsl", []byte(input)))
	bag := diag.NewBag(100)
	rep := diag.BagReporter{Bag: bag}
	arenas := ast.NewBuilder(ast.Hints{})
	res := ParseFile(lexer.New(file, lexer.Options{Reporter: rep}), arenas, Options{Reporter: rep})
	return arenas, arenas.Files.Get(res.File), bag
}

func mustParse(t *testing.T, input string) (*ast.Builder, *ast.File) {
	t.Helper()
	arenas, file, bag := parseSource(t, input)
	if bag.Len() != 0 {
		t.Fatalf("%q: unexpected diagnostics: %s", input, diagnosticsSummary(bag))
	}
	return arenas, file
}

// render prints an expression fully parenthesized.
func render(b *ast.Builder, id ast.ExprID) string {
	e := b.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprIdent:
		d, _ := b.Exprs.Ident(id)
		return d.Name
	case ast.ExprLit:
		d, _ := b.Exprs.Literal(id)
		return d.Value
	case ast.ExprGroup:
		d, _ := b.Exprs.Group(id)
		return render(b, d.Inner)
	case ast.ExprUnary:
		d, _ := b.Exprs.Unary(id)
		return "(" + d.Op.String() + render(b, d.Operand) + ")"
	case ast.ExprBinary:
		d, _ := b.Exprs.Binary(id)
		return "(" + render(b, d.Left) + " " + d.Op.String() + " " + render(b, d.Right) + ")"
	case ast.ExprIndex:
		d, _ := b.Exprs.Index(id)
		return render(b, d.Target) + "[" + render(b, d.Index) + "]"
	case ast.ExprMember:
		d, _ := b.Exprs.Member(id)
		return render(b, d.Target) + "." + d.Field
	case ast.ExprCall:
		d, _ := b.Exprs.Call(id)
		args := make([]string, len(d.Args))
		for i, a := range d.Args {
			args[i] = render(b, a)
		}
		return renderType(b, d.Target) + "(" + strings.Join(args, ", ") + ")"
	}
	return "?"
}

func renderType(b *ast.Builder, id ast.TypeID) string {
	te := b.Types.Get(id)
	if !te.Templated() {
		return te.Name
	}
	args := make([]string, 0, len(te.Args)+1)
	for _, a := range te.Args {
		args = append(args, renderType(b, a))
	}
	if te.Size.IsValid() {
		args = append(args, render(b, te.Size))
	}
	return te.Name + "<" + strings.Join(args, ", ") + ">"
}
