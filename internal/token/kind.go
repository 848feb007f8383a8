package token

import "fmt"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident

	// KwConst represents the 'const' keyword.
	KwConst // const
	// KwConstAssert represents the 'const_assert' keyword.
	KwConstAssert // const_assert
	// KwStruct represents the 'struct' keyword.
	KwStruct // struct
	// KwAlias represents the 'alias' keyword.
	KwAlias // alias
	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwFalse represents the 'false' keyword.
	KwFalse // false

	// IntLit represents an integer literal, with an optional i or u suffix.
	IntLit
	// FloatLit represents a float literal, with an optional f or h suffix.
	FloatLit

	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Percent   // %
	Assign    // =
	EqEq      // ==
	Bang      // !
	BangEq    // !=
	Lt        // <
	LtEq      // <=
	Gt        // >
	GtEq      // >=
	Shl       // <<
	Shr       // >>
	Amp       // &
	Pipe      // |
	Caret     // ^
	Tilde     // ~
	AndAnd    // &&
	OrOr      // ||
	Colon     // :
	Semicolon // ;
	Comma     // ,
	Dot       // .
	Arrow     // ->
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	At        // @
)

var kindNames = [...]string{
	Invalid:       "invalid",
	EOF:           "end of file",
	Ident:         "identifier",
	KwConst:       "'const'",
	KwConstAssert: "'const_assert'",
	KwStruct:      "'struct'",
	KwAlias:       "'alias'",
	KwTrue:        "'true'",
	KwFalse:       "'false'",
	IntLit:        "integer literal",
	FloatLit:      "float literal",
	Plus:          "'+'",
	Minus:         "'-'",
	Star:          "'*'",
	Slash:         "'/'",
	Percent:       "'%'",
	Assign:        "'='",
	EqEq:          "'=='",
	Bang:          "'!'",
	BangEq:        "'!='",
	Lt:            "'<'",
	LtEq:          "'<='",
	Gt:            "'>'",
	GtEq:          "'>='",
	Shl:           "'<<'",
	Shr:           "'>>'",
	Amp:           "'&'",
	Pipe:          "'|'",
	Caret:         "'^'",
	Tilde:         "'~'",
	AndAnd:        "'&&'",
	OrOr:          "'||'",
	Colon:         "':'",
	Semicolon:     "';'",
	Comma:         "','",
	Dot:           "'.'",
	Arrow:         "'->'",
	LParen:        "'('",
	RParen:        "')'",
	LBrace:        "'{'",
	RBrace:        "'}'",
	LBracket:      "'['",
	RBracket:      "']'",
	At:            "'@'",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}
