package driver

import (
	"stylecheck/internal/ast"
	"stylecheck/internal/lexer"
	"stylecheck/internal/parser"
	"stylecheck/internal/source"
	"stylecheck/internal/token"
)

// TokenizeResult: токены одного файла для отладочной команды.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Errors  []lexer.Error
}

// Tokenize loads path and runs the lexer to EOF. Lexical errors do not stop it.
func Tokenize(path string) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, loadError(path, err)
	}
	file := fs.Get(fileID)

	errs := &lexer.ErrorList{File: file}
	tokens := lexer.New(file, lexer.Options{Reporter: errs}).All()
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Errors:  errs.Errors,
	}, nil
}

// ParseResult: дерево одного файла для отладочной команды.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Module  *ast.Module
}

// Parse loads and parses path. Load failures and syntax errors come back as
// *InputError.
func Parse(path string) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, loadError(path, err)
	}
	file := fs.Get(fileID)

	mod, err := parser.Parse(file)
	if err != nil {
		return nil, &InputError{Path: file.Path, Kind: InputSyntax, Err: err}
	}
	return &ParseResult{FileSet: fs, File: file, Module: mod}, nil
}
