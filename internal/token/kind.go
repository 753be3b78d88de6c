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
	// Indent opens a block.
	Indent
	// Dedent closes a block.
	Dedent

	// Ident represents an identifier token.
	Ident

	KwFalse    // False
	KwNone     // None
	KwTrue     // True
	KwAnd      // and
	KwAs       // as
	KwAssert   // assert
	KwAsync    // async
	KwAwait    // await
	KwBreak    // break
	KwClass    // class
	KwContinue // continue
	KwDef      // def
	KwDel      // del
	KwElif     // elif
	KwElse     // else
	KwExcept   // except
	KwFinally  // finally
	KwFor      // for
	KwFrom     // from
	KwGlobal   // global
	KwIf       // if
	KwImport   // import
	KwIn       // in
	KwIs       // is
	KwLambda   // lambda
	KwNonlocal // nonlocal
	KwNot      // not
	KwOr       // or
	KwPass     // pass
	KwRaise    // raise
	KwReturn   // return
	KwTry      // try
	KwWhile    // while
	KwWith     // with
	KwYield    // yield

	// IntLit represents an integer literal (any base).
	IntLit
	// FloatLit represents a float literal.
	FloatLit
	// ImagLit represents an imaginary literal (1j).
	ImagLit
	// StringLit represents a str literal, including raw and triple-quoted forms.
	StringLit
	// BytesLit represents a bytes literal (b"...").
	BytesLit
	// FStringLit represents a formatted string literal; its contents are opaque.
	FStringLit

	Plus              // +
	Minus             // -
	Star              // *
	DoubleStar        // **
	Slash             // /
	DoubleSlash       // //
	Percent           // %
	At                // @
	Shl               // <<
	Shr               // >>
	Amp               // &
	Pipe              // |
	Caret             // ^
	Tilde             // ~
	Walrus            // :=
	Lt                // <
	Gt                // >
	LtEq              // <=
	GtEq              // >=
	EqEq              // ==
	NotEq             // !=
	LParen            // (
	RParen            // )
	LBracket          // [
	RBracket          // ]
	LBrace            // {
	RBrace            // }
	Comma             // ,
	Colon             // :
	Dot               // .
	Semicolon         // ;
	Assign            // =
	Arrow             // ->
	PlusAssign        // +=
	MinusAssign       // -=
	StarAssign        // *=
	SlashAssign       // /=
	DoubleSlashAssign // //=
	PercentAssign     // %=
	AtAssign          // @=
	AmpAssign         // &=
	PipeAssign        // |=
	CaretAssign       // ^=
	ShrAssign         // >>=
	ShlAssign         // <<=
	DoubleStarAssign  // **=
	Ellipsis          // ...
)

var kindNames = [...]string{
	Invalid: "Invalid",
	EOF:     "EOF",
	Newline: "Newline",
	Indent:  "Indent",
	Dedent:  "Dedent",
	Ident:   "Ident",

	KwFalse:    "KwFalse",
	KwNone:     "KwNone",
	KwTrue:     "KwTrue",
	KwAnd:      "KwAnd",
	KwAs:       "KwAs",
	KwAssert:   "KwAssert",
	KwAsync:    "KwAsync",
	KwAwait:    "KwAwait",
	KwBreak:    "KwBreak",
	KwClass:    "KwClass",
	KwContinue: "KwContinue",
	KwDef:      "KwDef",
	KwDel:      "KwDel",
	KwElif:     "KwElif",
	KwElse:     "KwElse",
	KwExcept:   "KwExcept",
	KwFinally:  "KwFinally",
	KwFor:      "KwFor",
	KwFrom:     "KwFrom",
	KwGlobal:   "KwGlobal",
	KwIf:       "KwIf",
	KwImport:   "KwImport",
	KwIn:       "KwIn",
	KwIs:       "KwIs",
	KwLambda:   "KwLambda",
	KwNonlocal: "KwNonlocal",
	KwNot:      "KwNot",
	KwOr:       "KwOr",
	KwPass:     "KwPass",
	KwRaise:    "KwRaise",
	KwReturn:   "KwReturn",
	KwTry:      "KwTry",
	KwWhile:    "KwWhile",
	KwWith:     "KwWith",
	KwYield:    "KwYield",

	IntLit:     "IntLit",
	FloatLit:   "FloatLit",
	ImagLit:    "ImagLit",
	StringLit:  "StringLit",
	BytesLit:   "BytesLit",
	FStringLit: "FStringLit",

	Plus:              "Plus",
	Minus:             "Minus",
	Star:              "Star",
	DoubleStar:        "DoubleStar",
	Slash:             "Slash",
	DoubleSlash:       "DoubleSlash",
	Percent:           "Percent",
	At:                "At",
	Shl:               "Shl",
	Shr:               "Shr",
	Amp:               "Amp",
	Pipe:              "Pipe",
	Caret:             "Caret",
	Tilde:             "Tilde",
	Walrus:            "Walrus",
	Lt:                "Lt",
	Gt:                "Gt",
	LtEq:              "LtEq",
	GtEq:              "GtEq",
	EqEq:              "EqEq",
	NotEq:             "NotEq",
	LParen:            "LParen",
	RParen:            "RParen",
	LBracket:          "LBracket",
	RBracket:          "RBracket",
	LBrace:            "LBrace",
	RBrace:            "RBrace",
	Comma:             "Comma",
	Colon:             "Colon",
	Dot:               "Dot",
	Semicolon:         "Semicolon",
	Assign:            "Assign",
	Arrow:             "Arrow",
	PlusAssign:        "PlusAssign",
	MinusAssign:       "MinusAssign",
	StarAssign:        "StarAssign",
	SlashAssign:       "SlashAssign",
	DoubleSlashAssign: "DoubleSlashAssign",
	PercentAssign:     "PercentAssign",
	AtAssign:          "AtAssign",
	AmpAssign:         "AmpAssign",
	PipeAssign:        "PipeAssign",
	CaretAssign:       "CaretAssign",
	ShrAssign:         "ShrAssign",
	ShlAssign:         "ShlAssign",
	DoubleStarAssign:  "DoubleStarAssign",
	Ellipsis:          "Ellipsis",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
