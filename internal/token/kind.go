package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline ends a logical line.
	Newline
	// Indent opens a deeper indentation level.
	Indent
	// Dedent closes an indentation level.
	Dedent

	// Ident represents an identifier token.
	Ident
	IntLit
	FloatLit
	ImagLit
	StringLit
	BytesLit
	FStringLit

	keywordBegin
	KwFalse
	KwNone
	KwTrue
	KwAnd
	KwAs
	KwAssert
	KwAsync
	KwAwait
	KwBreak
	KwClass
	KwContinue
	KwDef
	KwDel
	KwElif
	KwElse
	KwExcept
	KwFinally
	KwFor
	KwFrom
	KwGlobal
	KwIf
	KwImport
	KwIn
	KwIs
	KwLambda
	KwNonlocal
	KwNot
	KwOr
	KwPass
	KwRaise
	KwReturn
	KwTry
	KwWhile
	KwWith
	KwYield
	keywordEnd

	Plus          // +
	Minus         // -
	Star          // *
	StarStar      // **
	Slash         // /
	SlashSlash    // //
	Percent       // %
	At            // @
	Shl           // <<
	Shr           // >>
	Amp           // &
	Pipe          // |
	Caret         // ^
	Tilde         // ~
	Walrus        // :=
	Lt            // <
	Gt            // >
	LtEq          // <=
	GtEq          // >=
	EqEq          // ==
	BangEq        // !=
	LParen        // (
	RParen        // )
	LBracket      // [
	RBracket      // ]
	LBrace        // {
	RBrace        // }
	Comma         // ,
	Colon         // :
	Dot           // .
	Ellipsis      // ...
	Semicolon     // ;
	Assign        // =
	Arrow         // ->
	Bang          // ! (only valid inside f-string replacement fields)
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	FloorAssign   // //=
	PercentAssign // %=
	AtAssign      // @=
	AmpAssign     // &=
	PipeAssign    // |=
	CaretAssign   // ^=
	ShrAssign     // >>=
	ShlAssign     // <<=
	PowAssign     // **=
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Newline:       "NEWLINE",
	Indent:        "INDENT",
	Dedent:        "DEDENT",
	Ident:         "NAME",
	IntLit:        "INT",
	FloatLit:      "FLOAT",
	ImagLit:       "IMAG",
	StringLit:     "STRING",
	BytesLit:      "BYTES",
	FStringLit:    "FSTRING",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	StarStar:      "**",
	Slash:         "/",
	SlashSlash:    "//",
	Percent:       "%",
	At:            "@",
	Shl:           "<<",
	Shr:           ">>",
	Amp:           "&",
	Pipe:          "|",
	Caret:         "^",
	Tilde:         "~",
	Walrus:        ":=",
	Lt:            "<",
	Gt:            ">",
	LtEq:          "<=",
	GtEq:          ">=",
	EqEq:          "==",
	BangEq:        "!=",
	LParen:        "(",
	RParen:        ")",
	LBracket:      "[",
	RBracket:      "]",
	LBrace:        "{",
	RBrace:        "}",
	Comma:         ",",
	Colon:         ":",
	Dot:           ".",
	Ellipsis:      "...",
	Semicolon:     ";",
	Assign:        "=",
	Arrow:         "->",
	Bang:          "!",
	PlusAssign:    "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	FloorAssign:   "//=",
	PercentAssign: "%=",
	AtAssign:      "@=",
	AmpAssign:     "&=",
	PipeAssign:    "|=",
	CaretAssign:   "^=",
	ShrAssign:     ">>=",
	ShlAssign:     "<<=",
	PowAssign:     "**=",
}

func (k Kind) String() string {
	if k.IsKeyword() {
		return keywordText[k]
	}
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k > keywordBegin && k < keywordEnd
}

// IsAugAssign reports whether k is an augmented assignment operator (+=, -=, ...).
func (k Kind) IsAugAssign() bool {
	return k >= PlusAssign && k <= PowAssign
}
