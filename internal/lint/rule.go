package lint

import (
	"fmt"

	"stylecheck/internal/diag"
	"stylecheck/internal/source"
)

// RuleKind различает источник данных правила.
type RuleKind uint8

const (
	// LineRule смотрит только на физическую строку (и буфер строк для lookback).
	LineRule RuleKind = iota
	// SyntaxRule смотрит на запись syntaxindex для текущей строки.
	SyntaxRule
)

func (k RuleKind) String() string {
	switch k {
	case LineRule:
		return "line"
	case SyntaxRule:
		return "syntax"
	}
	return "unknown"
}

// LineFunc проверяет одну строку; не более одной находки.
type LineFunc func(p *Pass, ln source.SourceLine) (diag.Diagnostic, bool)

// SyntaxFunc проверяет запись индекса на строке line и может выдать
// несколько находок (S012 - по одной на каждый default).
type SyntaxFunc func(p *Pass, line int, r diag.Reporter)

// Rule: одно правило. Ровно одно из Line/Syntax задано.
type Rule struct {
	Code   diag.Code
	Name   string
	Doc    string
	Kind   RuleKind
	Line   LineFunc
	Syntax SyntaxFunc
}

func (r *Rule) validate() error {
	switch r.Kind {
	case LineRule:
		if r.Line == nil || r.Syntax != nil {
			return fmt.Errorf("rule %s: line rule needs exactly a Line func", r.Code)
		}
	case SyntaxRule:
		if r.Syntax == nil || r.Line != nil {
			return fmt.Errorf("rule %s: syntax rule needs exactly a Syntax func", r.Code)
		}
	default:
		return fmt.Errorf("rule %s: unknown kind %d", r.Code, r.Kind)
	}
	return nil
}

// Set: упорядоченный набор правил. Порядок добавления = порядок запуска.
type Set struct {
	rules []*Rule
	byID  map[diag.Code]*Rule
}

func NewSet() *Set {
	return &Set{byID: make(map[diag.Code]*Rule)}
}

// Add registers r. Codes must be unique within a set.
func (s *Set) Add(r *Rule) error {
	if err := r.validate(); err != nil {
		return err
	}
	if _, dup := s.byID[r.Code]; dup {
		return fmt.Errorf("rule %s registered twice", r.Code)
	}
	s.rules = append(s.rules, r)
	s.byID[r.Code] = r
	return nil
}

func (s *Set) mustAdd(r *Rule) {
	if err := s.Add(r); err != nil {
		panic(err)
	}
}

// Rules returns the registered rules in run order.
func (s *Set) Rules() []*Rule {
	return s.rules
}

func (s *Set) Lookup(code diag.Code) (*Rule, bool) {
	r, ok := s.byID[code]
	return r, ok
}

var defaultSet = buildDefaultSet()

// Default returns the built-in rule set: S001..S008 line rules followed by
// S009..S012 syntax rules. The returned set is shared; do not Add to it.
func Default() *Set {
	return defaultSet
}

func buildDefaultSet() *Set {
	s := NewSet()
	for _, r := range lineRules() {
		s.mustAdd(r)
	}
	for _, r := range syntaxRules() {
		s.mustAdd(r)
	}
	return s
}
