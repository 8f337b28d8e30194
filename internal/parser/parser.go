package parser

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"stylecheck/internal/ast"
	"stylecheck/internal/lexer"
	"stylecheck/internal/source"
	"stylecheck/internal/token"
)

const defaultMaxDepth = 200

type Options struct {
	// MaxDepth ограничивает вложенность выражений и блоков; 0 - 200.
	MaxDepth int
}

type Result struct {
	File ast.FileID
	Err  *SyntaxError
}

// SyntaxError: первая синтаксическая (или лексическая) ошибка файла.
// Разбор на ней останавливается: частичного дерева нет.
type SyntaxError struct {
	Line int
	Col  int
	Msg  string

	span source.Span // фрагмент, на котором споткнулся парсер
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Col, e.Msg)
}

// bailout используется для раскрутки стека на первой ошибке.
type bailout struct{}

// Parser: состояние парсера на один файл
type Parser struct {
	file   *source.File
	arenas *ast.Builder
	toks   []token.Token // всегда заканчивается EOF
	pos    int
	opts   Options
	depth  int
	err    *SyntaxError
}

// ParseFile: входная точка для разбора одного файла.
func ParseFile(file *source.File, arenas *ast.Builder, opts Options) (res Result) {
	if opts.MaxDepth == 0 {
		opts.MaxDepth = defaultMaxDepth
	}
	end, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		panic(fmt.Errorf("file content overflow: %w", err))
	}
	res.File = arenas.NewFile(source.Span{File: file.ID, Start: 0, End: end})

	lexErrs := &lexer.ErrorList{File: file}
	toks := lexer.New(file, lexer.Options{Reporter: lexErrs}).All()
	// Поток токенов разбирается и при лексических ошибках: побеждает та
	// ошибка, которая встретилась раньше.
	defer func() {
		if len(lexErrs.Errors) > 0 && !parsedBefore(res.Err, lexErrs.Errors[0]) {
			first := lexErrs.Errors[0]
			res.Err = &SyntaxError{Line: first.Line, Col: first.Col, Msg: first.Msg, span: first.Span}
		}
	}()

	p := &Parser{
		file:   file,
		arenas: arenas,
		toks:   toks,
		opts:   opts,
	}
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			res.Err = p.err
		}
	}()
	p.parseFile(res.File)
	return res
}

// parsedBefore сообщает, что парсер упал целиком до точки, где лексер
// обнаружил ошибку. Токен, содержащий лексическую ошибку, её не перекрывает.
func parsedBefore(perr *SyntaxError, lexErr lexer.Error) bool {
	if perr == nil {
		return false
	}
	return perr.span.Start < lexErr.Detected && perr.span.End <= lexErr.Detected
}

// Parse разбирает файл в новом Builder. Ошибка - всегда *SyntaxError.
func Parse(file *source.File) (*ast.Module, error) {
	b := ast.NewBuilder(ast.Hints{})
	res := ParseFile(file, b, Options{})
	if res.Err != nil {
		return nil, res.Err
	}
	return &ast.Module{Builder: b, File: res.File}, nil
}

// parseFile: основной цикл верхнего уровня.
func (p *Parser) parseFile(file ast.FileID) {
	for !p.at(token.EOF) {
		if p.eat(token.Newline) {
			continue
		}
		for _, id := range p.parseStatement() {
			p.arenas.PushStmt(file, id)
		}
	}
}

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

// peekN смотрит на n токенов вперёд; за концом потока - EOF.
func (p *Parser) peekN(n int) token.Token {
	if i := p.pos + n; i < len(p.toks) {
		return p.toks[i]
	}
	return p.toks[len(p.toks)-1]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

func (p *Parser) atSoft(name string) bool {
	return p.peek().IsSoft(name)
}
