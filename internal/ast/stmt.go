package ast

import (
	"stylecheck/internal/source"
	"stylecheck/internal/token"
)

type StmtKind uint8

const (
	StmtExpr StmtKind = iota
	StmtAssign
	StmtAnnAssign
	StmtAugAssign
	StmtPass
	StmtBreak
	StmtContinue
	StmtReturn
	StmtRaise
	StmtDel
	StmtAssert
	StmtGlobal
	StmtNonlocal
	StmtImport
	StmtFromImport
	StmtFuncDef
	StmtClassDef
	StmtIf
	StmtWhile
	StmtFor
	StmtWith
	StmtTry
	StmtMatch
	StmtTypeAlias
)

var stmtKindNames = [...]string{
	StmtExpr:       "Expr",
	StmtAssign:     "Assign",
	StmtAnnAssign:  "AnnAssign",
	StmtAugAssign:  "AugAssign",
	StmtPass:       "Pass",
	StmtBreak:      "Break",
	StmtContinue:   "Continue",
	StmtReturn:     "Return",
	StmtRaise:      "Raise",
	StmtDel:        "Delete",
	StmtAssert:     "Assert",
	StmtGlobal:     "Global",
	StmtNonlocal:   "Nonlocal",
	StmtImport:     "Import",
	StmtFromImport: "ImportFrom",
	StmtFuncDef:    "FunctionDef",
	StmtClassDef:   "ClassDef",
	StmtIf:         "If",
	StmtWhile:      "While",
	StmtFor:        "For",
	StmtWith:       "With",
	StmtTry:        "Try",
	StmtMatch:      "Match",
	StmtTypeAlias:  "TypeAlias",
}

func (k StmtKind) String() string {
	if int(k) < len(stmtKindNames) && stmtKindNames[k] != "" {
		return stmtKindNames[k]
	}
	return "Stmt?"
}

// Stmt: заголовок инструкции. Line - строка ключевого слова (для def - строка
// `def`, не декоратора).
type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Line    int
	Payload PayloadID
}

// ParamKind: вид параметра функции.
type ParamKind uint8

const (
	ParamPosOnly ParamKind = iota
	ParamRegular
	ParamVarArgs
	ParamKwOnly
	ParamVarKw
)

var paramKindNames = [...]string{
	ParamPosOnly: "posonly",
	ParamRegular: "regular",
	ParamVarArgs: "varargs",
	ParamKwOnly:  "kwonly",
	ParamVarKw:   "varkw",
}

func (k ParamKind) String() string {
	if int(k) < len(paramKindNames) {
		return paramKindNames[k]
	}
	return "param?"
}

type Param struct {
	Name       string
	Kind       ParamKind
	Line       int
	Annotation ExprID
	Default    ExprID
}

// StmtExprsData: общий payload для expr/return/raise/del/assert.
// Для raise X from Y: Values = [X, Y].
type StmtExprsData struct {
	Values []ExprID
}

// StmtAssignData: a = b = value → Targets [a, b].
type StmtAssignData struct {
	Targets []ExprID
	Value   ExprID
}

type StmtAnnAssignData struct {
	Target     ExprID
	Annotation ExprID
	Value      ExprID
}

type StmtAugAssignData struct {
	Target ExprID
	Op     token.Kind
	Value  ExprID
}

// StmtNamesData: global/nonlocal/import/from-import, а также имя type-алиаса.
type StmtNamesData struct {
	Module string // только для from-import, вместе с ведущими точками
	Names  []string
}

type StmtFuncDefData struct {
	Name       string
	IsAsync    bool
	Decorators []ExprID
	Params     []Param
	Returns    ExprID
	Body       []StmtID
}

type StmtClassDefData struct {
	Name       string
	Decorators []ExprID
	Bases      []CallArg
	Body       []StmtID
}

// StmtBlockData: if/while/for/with. Для if/while Test - условие; для for
// Target/Test: цель и итерируемое; для with Items - контекстные выражения.
type StmtBlockData struct {
	IsAsync bool
	Test    ExprID
	Target  ExprID
	Items   []ExprID
	Body    []StmtID
	Orelse  []StmtID
}

type ExceptHandler struct {
	Line int
	Type ExprID
	Name string
	Star bool
	Body []StmtID
}

type StmtTryData struct {
	Body      []StmtID
	Handlers  []ExceptHandler
	Orelse    []StmtID
	Finalbody []StmtID
}

type MatchCase struct {
	Line int
	Body []StmtID
}

type StmtMatchData struct {
	Subject ExprID
	Cases   []MatchCase
}

type Stmts struct {
	Arena      *Arena[Stmt]
	Exprs      *Arena[StmtExprsData]
	Assigns    *Arena[StmtAssignData]
	AnnAssigns *Arena[StmtAnnAssignData]
	AugAssigns *Arena[StmtAugAssignData]
	Names      *Arena[StmtNamesData]
	FuncDefs   *Arena[StmtFuncDefData]
	ClassDefs  *Arena[StmtClassDefData]
	Blocks     *Arena[StmtBlockData]
	Trys       *Arena[StmtTryData]
	Matches    *Arena[StmtMatchData]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint / 4
	return &Stmts{
		Arena:      NewArena[Stmt](capHint),
		Exprs:      NewArena[StmtExprsData](small),
		Assigns:    NewArena[StmtAssignData](small),
		AnnAssigns: NewArena[StmtAnnAssignData](small),
		AugAssigns: NewArena[StmtAugAssignData](small),
		Names:      NewArena[StmtNamesData](small),
		FuncDefs:   NewArena[StmtFuncDefData](small),
		ClassDefs:  NewArena[StmtClassDefData](small),
		Blocks:     NewArena[StmtBlockData](small),
		Trys:       NewArena[StmtTryData](small),
		Matches:    NewArena[StmtMatchData](small),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, line int, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Line:    line,
		Payload: PayloadID(payload),
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kinds ...StmtKind) (uint32, bool) {
	st := s.Get(id)
	if st == nil {
		return 0, false
	}
	for _, k := range kinds {
		if st.Kind == k {
			return uint32(st.Payload), true
		}
	}
	return 0, false
}

// NewSimple создаёт pass/break/continue без payload.
func (s *Stmts) NewSimple(kind StmtKind, span source.Span, line int) StmtID {
	return s.new(kind, span, line, 0)
}

// NewExprs создаёт expr/return/raise/del/assert.
func (s *Stmts) NewExprs(kind StmtKind, span source.Span, line int, values []ExprID) StmtID {
	return s.new(kind, span, line, s.Exprs.Allocate(StmtExprsData{Values: values}))
}

func (s *Stmts) ExprList(id StmtID) (*StmtExprsData, bool) {
	p, ok := s.payload(id, StmtExpr, StmtReturn, StmtRaise, StmtDel, StmtAssert)
	if !ok {
		return nil, false
	}
	return s.Exprs.Get(p), true
}

func (s *Stmts) NewAssign(span source.Span, line int, targets []ExprID, value ExprID) StmtID {
	return s.new(StmtAssign, span, line, s.Assigns.Allocate(StmtAssignData{Targets: targets, Value: value}))
}

func (s *Stmts) Assign(id StmtID) (*StmtAssignData, bool) {
	p, ok := s.payload(id, StmtAssign)
	if !ok {
		return nil, false
	}
	return s.Assigns.Get(p), true
}

func (s *Stmts) NewAnnAssign(span source.Span, line int, data StmtAnnAssignData) StmtID {
	return s.new(StmtAnnAssign, span, line, s.AnnAssigns.Allocate(data))
}

func (s *Stmts) AnnAssign(id StmtID) (*StmtAnnAssignData, bool) {
	p, ok := s.payload(id, StmtAnnAssign)
	if !ok {
		return nil, false
	}
	return s.AnnAssigns.Get(p), true
}

func (s *Stmts) NewAugAssign(span source.Span, line int, data StmtAugAssignData) StmtID {
	return s.new(StmtAugAssign, span, line, s.AugAssigns.Allocate(data))
}

func (s *Stmts) AugAssign(id StmtID) (*StmtAugAssignData, bool) {
	p, ok := s.payload(id, StmtAugAssign)
	if !ok {
		return nil, false
	}
	return s.AugAssigns.Get(p), true
}

func (s *Stmts) NewNames(kind StmtKind, span source.Span, line int, data StmtNamesData) StmtID {
	return s.new(kind, span, line, s.Names.Allocate(data))
}

func (s *Stmts) NameList(id StmtID) (*StmtNamesData, bool) {
	p, ok := s.payload(id, StmtGlobal, StmtNonlocal, StmtImport, StmtFromImport, StmtTypeAlias)
	if !ok {
		return nil, false
	}
	return s.Names.Get(p), true
}

func (s *Stmts) NewFuncDef(span source.Span, line int, data StmtFuncDefData) StmtID {
	return s.new(StmtFuncDef, span, line, s.FuncDefs.Allocate(data))
}

func (s *Stmts) FuncDef(id StmtID) (*StmtFuncDefData, bool) {
	p, ok := s.payload(id, StmtFuncDef)
	if !ok {
		return nil, false
	}
	return s.FuncDefs.Get(p), true
}

func (s *Stmts) NewClassDef(span source.Span, line int, data StmtClassDefData) StmtID {
	return s.new(StmtClassDef, span, line, s.ClassDefs.Allocate(data))
}

func (s *Stmts) ClassDef(id StmtID) (*StmtClassDefData, bool) {
	p, ok := s.payload(id, StmtClassDef)
	if !ok {
		return nil, false
	}
	return s.ClassDefs.Get(p), true
}

// NewBlock создаёт if/while/for/with.
func (s *Stmts) NewBlock(kind StmtKind, span source.Span, line int, data StmtBlockData) StmtID {
	return s.new(kind, span, line, s.Blocks.Allocate(data))
}

func (s *Stmts) Block(id StmtID) (*StmtBlockData, bool) {
	p, ok := s.payload(id, StmtIf, StmtWhile, StmtFor, StmtWith)
	if !ok {
		return nil, false
	}
	return s.Blocks.Get(p), true
}

func (s *Stmts) NewTry(span source.Span, line int, data StmtTryData) StmtID {
	return s.new(StmtTry, span, line, s.Trys.Allocate(data))
}

func (s *Stmts) Try(id StmtID) (*StmtTryData, bool) {
	p, ok := s.payload(id, StmtTry)
	if !ok {
		return nil, false
	}
	return s.Trys.Get(p), true
}

func (s *Stmts) NewMatch(span source.Span, line int, data StmtMatchData) StmtID {
	return s.new(StmtMatch, span, line, s.Matches.Allocate(data))
}

func (s *Stmts) Match(id StmtID) (*StmtMatchData, bool) {
	p, ok := s.payload(id, StmtMatch)
	if !ok {
		return nil, false
	}
	return s.Matches.Get(p), true
}
