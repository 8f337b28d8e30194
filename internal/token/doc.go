// Package token defines lexical token kinds for Python source.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly.
//   - Comments and blank lines never appear in the token stream.
//   - Newline/Indent/Dedent carry empty or whitespace Text; Dedent spans are empty.
//   - Soft keywords (match, case, type) are identifiers.
package token
