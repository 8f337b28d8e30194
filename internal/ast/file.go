package ast

import (
	"stylecheck/internal/source"
)

// File: корень дерева одного модуля.
type File struct {
	Span source.Span
	Body []StmtID
}

type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	return &Files{
		Arena: NewArena[File](capHint),
	}
}

func (f *Files) New(sp source.Span) FileID {
	return FileID(f.Arena.Allocate(File{
		Span: sp,
		Body: make([]StmtID, 0),
	}))
}

func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}

// Module: разобранный файл вместе с аренами, в которых живут его узлы.
type Module struct {
	Builder *Builder
	File    FileID
}

// Body returns the top-level statements.
func (m *Module) Body() []StmtID {
	if f := m.Builder.Files.Get(m.File); f != nil {
		return f.Body
	}
	return nil
}

// Inspect walks every statement of the module in source order.
func (m *Module) Inspect(fn func(id StmtID, st *Stmt) bool) {
	m.Builder.InspectFile(m.File, fn)
}
