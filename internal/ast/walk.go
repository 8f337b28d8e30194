package ast

// Children returns the nested statement lists of a compound statement in
// source order. Simple statements have none.
func (b *Builder) Children(id StmtID) [][]StmtID {
	st := b.Stmts.Get(id)
	if st == nil {
		return nil
	}
	switch st.Kind {
	case StmtFuncDef:
		fn, _ := b.Stmts.FuncDef(id)
		return [][]StmtID{fn.Body}
	case StmtClassDef:
		cls, _ := b.Stmts.ClassDef(id)
		return [][]StmtID{cls.Body}
	case StmtIf, StmtWhile, StmtFor, StmtWith:
		blk, _ := b.Stmts.Block(id)
		return [][]StmtID{blk.Body, blk.Orelse}
	case StmtTry:
		t, _ := b.Stmts.Try(id)
		out := make([][]StmtID, 0, len(t.Handlers)+3)
		out = append(out, t.Body)
		for _, h := range t.Handlers {
			out = append(out, h.Body)
		}
		return append(out, t.Orelse, t.Finalbody)
	case StmtMatch:
		m, _ := b.Stmts.Match(id)
		out := make([][]StmtID, 0, len(m.Cases))
		for _, c := range m.Cases {
			out = append(out, c.Body)
		}
		return out
	}
	return nil
}

// Inspect обходит инструкции в глубину в порядке исходника. Если fn возвращает
// false, вложенные инструкции узла пропускаются.
func (b *Builder) Inspect(stmts []StmtID, fn func(id StmtID, st *Stmt) bool) {
	for _, id := range stmts {
		st := b.Stmts.Get(id)
		if st == nil {
			continue
		}
		if !fn(id, st) {
			continue
		}
		for _, body := range b.Children(id) {
			b.Inspect(body, fn)
		}
	}
}

// InspectFile обходит все инструкции файла.
func (b *Builder) InspectFile(file FileID, fn func(id StmtID, st *Stmt) bool) {
	f := b.Files.Get(file)
	if f == nil {
		return
	}
	b.Inspect(f.Body, fn)
}
