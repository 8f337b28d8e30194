package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"stylecheck/internal/ast"
	"stylecheck/internal/source"
)

const exprSummaryWidth = 60

type FieldOutput struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind"`
	Line     int             `json:"line,omitempty"`
	Fields   []FieldOutput   `json:"fields,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

type astDumper struct {
	b    *ast.Builder
	file *source.File
}

// FormatASTPretty печатает дерево модуля в виде ├─/└─. file (может быть nil)
// нужен для текста выражений.
func FormatASTPretty(w io.Writer, mod *ast.Module, file *source.File) error {
	root, err := BuildASTOutput(mod, file)
	if err != nil {
		return err
	}
	header := "File"
	if file != nil {
		header = source.DisplayPath(file.Path)
	}
	if _, err := fmt.Fprintf(w, "%s (%d statements)\n", header, len(root.Children)); err != nil {
		return err
	}
	return writeNodes(w, root.Children, "")
}

func FormatASTJSON(w io.Writer, mod *ast.Module, file *source.File) error {
	root, err := BuildASTOutput(mod, file)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(root)
}

// BuildASTOutput строит независимое от формата представление дерева.
func BuildASTOutput(mod *ast.Module, file *source.File) (ASTNodeOutput, error) {
	if mod == nil || mod.Builder == nil || mod.Builder.Files.Get(mod.File) == nil {
		return ASTNodeOutput{}, fmt.Errorf("file not found")
	}
	d := astDumper{b: mod.Builder, file: file}
	return ASTNodeOutput{
		Type:     "File",
		Kind:     "Module",
		Children: d.stmts(mod.Body()),
	}, nil
}

func writeNodes(w io.Writer, nodes []ASTNodeOutput, prefix string) error {
	for i, n := range nodes {
		last := i == len(nodes)-1
		marker, childPrefix := "├─", prefix+"│  "
		if last {
			marker, childPrefix = "└─", prefix+"   "
		}
		label := fmt.Sprintf("%s[%d]: %s", n.Type, i, n.Kind)
		if n.Line > 0 {
			label += fmt.Sprintf(" (line %d)", n.Line)
		}
		if _, err := fmt.Fprintf(w, "%s%s %s\n", prefix, marker, label); err != nil {
			return err
		}
		for j, f := range n.Fields {
			fm := "├─"
			if j == len(n.Fields)-1 && len(n.Children) == 0 {
				fm = "└─"
			}
			if _, err := fmt.Fprintf(w, "%s%s %s: %s\n", childPrefix, fm, f.Name, f.Value); err != nil {
				return err
			}
		}
		if err := writeNodes(w, n.Children, childPrefix); err != nil {
			return err
		}
	}
	return nil
}

func (d astDumper) stmts(ids []ast.StmtID) []ASTNodeOutput {
	out := make([]ASTNodeOutput, 0, len(ids))
	for _, id := range ids {
		out = append(out, d.stmt(id))
	}
	return out
}

// block оборачивает тело в именованный узел; пустое тело опускается.
func (d astDumper) block(name string, ids []ast.StmtID) []ASTNodeOutput {
	if len(ids) == 0 {
		return nil
	}
	return []ASTNodeOutput{{Type: "Block", Kind: name, Children: d.stmts(ids)}}
}

func (d astDumper) stmt(id ast.StmtID) ASTNodeOutput {
	st := d.b.Stmts.Get(id)
	if st == nil {
		return ASTNodeOutput{Type: "Stmt", Kind: "<nil>"}
	}
	n := ASTNodeOutput{Type: "Stmt", Kind: st.Kind.String(), Line: st.Line}
	field := func(name, value string) {
		if value != "" {
			n.Fields = append(n.Fields, FieldOutput{Name: name, Value: value})
		}
	}
	stmts := d.b.Stmts

	switch st.Kind {
	case ast.StmtExpr, ast.StmtReturn, ast.StmtRaise, ast.StmtDel, ast.StmtAssert:
		if data, ok := stmts.ExprList(id); ok {
			field("Values", d.exprs(data.Values))
		}
	case ast.StmtAssign:
		if data, ok := stmts.Assign(id); ok {
			field("Targets", d.exprs(data.Targets))
			field("Value", d.expr(data.Value))
		}
	case ast.StmtAnnAssign:
		if data, ok := stmts.AnnAssign(id); ok {
			field("Target", d.expr(data.Target))
			field("Annotation", d.expr(data.Annotation))
			field("Value", d.expr(data.Value))
		}
	case ast.StmtAugAssign:
		if data, ok := stmts.AugAssign(id); ok {
			field("Target", d.expr(data.Target))
			field("Op", data.Op.String())
			field("Value", d.expr(data.Value))
		}
	case ast.StmtImport, ast.StmtFromImport, ast.StmtGlobal, ast.StmtNonlocal, ast.StmtTypeAlias:
		if data, ok := stmts.NameList(id); ok {
			field("Module", data.Module)
			field("Names", strings.Join(data.Names, ", "))
		}
	case ast.StmtFuncDef:
		if fn, ok := stmts.FuncDef(id); ok {
			field("Name", fn.Name)
			if fn.IsAsync {
				field("Async", "true")
			}
			field("Decorators", d.exprs(fn.Decorators))
			field("Params", d.params(fn.Params))
			field("Returns", d.expr(fn.Returns))
			n.Children = d.block("Body", fn.Body)
		}
	case ast.StmtClassDef:
		if cls, ok := stmts.ClassDef(id); ok {
			field("Name", cls.Name)
			field("Decorators", d.exprs(cls.Decorators))
			bases := make([]string, 0, len(cls.Bases))
			for _, a := range cls.Bases {
				bases = append(bases, d.callArg(a))
			}
			field("Bases", strings.Join(bases, ", "))
			n.Children = d.block("Body", cls.Body)
		}
	case ast.StmtIf, ast.StmtWhile, ast.StmtFor, ast.StmtWith:
		if blk, ok := stmts.Block(id); ok {
			if blk.IsAsync {
				field("Async", "true")
			}
			field("Test", d.expr(blk.Test))
			field("Target", d.expr(blk.Target))
			field("Items", d.exprs(blk.Items))
			n.Children = append(d.block("Body", blk.Body), d.block("Else", blk.Orelse)...)
		}
	case ast.StmtTry:
		if t, ok := stmts.Try(id); ok {
			n.Children = d.block("Body", t.Body)
			for _, h := range t.Handlers {
				hn := ASTNodeOutput{Type: "Handler", Kind: "Except", Line: h.Line, Children: d.stmts(h.Body)}
				if h.Star {
					hn.Kind = "Except*"
				}
				if v := d.expr(h.Type); v != "" {
					hn.Fields = append(hn.Fields, FieldOutput{Name: "Type", Value: v})
				}
				if h.Name != "" {
					hn.Fields = append(hn.Fields, FieldOutput{Name: "Name", Value: h.Name})
				}
				n.Children = append(n.Children, hn)
			}
			n.Children = append(n.Children, d.block("Else", t.Orelse)...)
			n.Children = append(n.Children, d.block("Finally", t.Finalbody)...)
		}
	case ast.StmtMatch:
		if m, ok := stmts.Match(id); ok {
			field("Subject", d.expr(m.Subject))
			for _, c := range m.Cases {
				n.Children = append(n.Children, ASTNodeOutput{Type: "Case", Kind: "Case", Line: c.Line, Children: d.stmts(c.Body)})
			}
		}
	}
	return n
}

func (d astDumper) params(params []ast.Param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		s := p.Name
		switch p.Kind {
		case ast.ParamVarArgs:
			s = "*" + s
		case ast.ParamVarKw:
			s = "**" + s
		}
		if p.Default.IsValid() {
			s += "=" + d.expr(p.Default)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

func (d astDumper) callArg(a ast.CallArg) string {
	v := strings.Repeat("*", int(a.Star)) + d.expr(a.Value)
	if a.Name != "" {
		return a.Name + "=" + v
	}
	return v
}

func (d astDumper) exprs(ids []ast.ExprID) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, d.expr(id))
	}
	return strings.Join(parts, ", ")
}

// expr даёт краткое описание выражения: текст исходника, если он есть, иначе вид.
func (d astDumper) expr(id ast.ExprID) string {
	if !id.IsValid() {
		return ""
	}
	e := d.b.Exprs.Get(id)
	if e == nil {
		return "<nil>"
	}
	if d.file == nil || int(e.Span.End) > len(d.file.Content) || e.Span.Start > e.Span.End {
		return e.Kind.String()
	}
	text := strings.Join(strings.Fields(string(d.file.Content[e.Span.Start:e.Span.End])), " ")
	return runewidth.Truncate(text, exprSummaryWidth, "…")
}
