package lexer

import "fmt"

// TokenType represents the type of a token in a permutest specification
type TokenType int

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Keywords
	TITLE // title
	LET   // let
	OR    // or
	WHEN  // when
	THEN  // then

	// Structure
	EQUALS    // =
	SEMICOLON // ;
	LBRACE    // {
	RBRACE    // }

	// Literals and content
	IDENTIFIER // titles, variable names, result names
	VALUE      // opaque value expression in a value list
	CODE       // opaque code block content between braces

	// Comments
	COMMENT           // // line comment
	MULTILINE_COMMENT // /* */
)

var tokenNames = [...]string{
	EOF:               "EOF",
	ILLEGAL:           "ILLEGAL",
	TITLE:             "TITLE",
	LET:               "LET",
	OR:                "OR",
	WHEN:              "WHEN",
	THEN:              "THEN",
	EQUALS:            "EQUALS",
	SEMICOLON:         "SEMICOLON",
	LBRACE:            "LBRACE",
	RBRACE:            "RBRACE",
	IDENTIFIER:        "IDENTIFIER",
	VALUE:             "VALUE",
	CODE:              "CODE",
	COMMENT:           "COMMENT",
	MULTILINE_COMMENT: "MULTILINE_COMMENT",
}

func (t TokenType) String() string {
	if int(t) >= 0 && int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Keywords maps keyword text to its token type. Keyword recognition only
// applies in spec mode; inside value expressions and code blocks all text is
// opaque.
var Keywords = map[string]TokenType{
	"title": TITLE,
	"let":   LET,
	"or":    OR,
	"when":  WHEN,
	"then":  THEN,
}

// KeywordNames lists the keyword spellings, used for suggestions on
// unrecognized input.
var KeywordNames = []string{"title", "let", "or", "when", "then"}

// Position represents a position in the source text
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a single lexical token
type Token struct {
	Type  TokenType
	Value string
	Pos   Position
}

// Display returns the token text as shown in error messages: the value for
// content-bearing tokens, the symbol or keyword otherwise.
func (t Token) Display() string {
	switch t.Type {
	case EOF:
		return "end of input"
	case EQUALS:
		return "'='"
	case SEMICOLON:
		return "';'"
	case LBRACE:
		return "'{'"
	case RBRACE:
		return "'}'"
	default:
		return "'" + t.Value + "'"
	}
}
