package lexer

import (
	"unicode"
	"unicode/utf8"
)

// ASCII character lookup tables for fast classification
var (
	isWhitespace [128]bool // Only ASCII range
	isDigit      [128]bool
	isIdentStart [128]bool
	isIdentPart  [128]bool
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)
		isWhitespace[i] = ch == ' ' || ch == '\t' || ch == '\r' || ch == '\f' || ch == '\n'
		isDigit[i] = '0' <= ch && ch <= '9'
		isIdentStart[i] = ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
		isIdentPart[i] = isIdentStart[i] || isDigit[i]
	}
}

// Mode represents the lexer's parsing modes
type Mode int

const (
	// SpecMode handles the structural surface: keywords, identifiers and
	// punctuation between clauses.
	SpecMode Mode = iota
	// ValueMode captures opaque value expressions inside a value list,
	// delimited by top-level 'or' and ';'.
	ValueMode
	// CodeMode captures an opaque brace-balanced code block verbatim.
	CodeMode
)

// Lexer tokenizes one specification file using three context-free modes.
// Value expressions and code blocks are captured as opaque text; the lexer
// never interprets host-language content beyond what brace and quote
// balancing requires.
type Lexer struct {
	input    string
	position int  // Current position (byte offset)
	readPos  int  // Next reading position (byte offset)
	ch       rune // Current rune under examination
	line     int
	column   int

	mode     Mode
	afterLet bool // Inside a 'let' declaration; '=' switches to ValueMode

	// Loop guard for malformed input
	lastPosition int
	lastMode     Mode
}

// New creates a Lexer over the given specification source
func New(input string) *Lexer {
	l := &Lexer{
		input:        input,
		line:         1,
		column:       0, // Incremented to 1 by the initial readChar
		mode:         SpecMode,
		lastPosition: -1,
	}
	l.readChar()
	return l
}

// TokenizeToSlice tokenizes the entire input, EOF token included
func (l *Lexer) TokenizeToSlice() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == EOF {
			break
		}
	}
	return tokens
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	if l.position == l.lastPosition && l.mode == l.lastMode {
		// No progress since the last call - force EOF rather than spin
		return l.token(EOF, "", l.pos())
	}
	l.lastPosition = l.position
	l.lastMode = l.mode

	switch l.mode {
	case ValueMode:
		return l.lexValueMode()
	case CodeMode:
		return l.lexCodeMode()
	default:
		return l.lexSpecMode()
	}
}

func (l *Lexer) readChar() {
	l.position = l.readPos
	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
	} else {
		var size int
		l.ch, size = utf8.DecodeRuneInString(l.input[l.readPos:])
		if l.ch == utf8.RuneError && size == 1 {
			l.ch = rune(l.input[l.readPos])
		}
		l.readPos += size
	}

	if l.ch == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	ch, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return ch
}

func (l *Lexer) pos() Position {
	return Position{Line: l.line, Column: l.column, Offset: l.position}
}

func (l *Lexer) token(tokenType TokenType, value string, pos Position) Token {
	return Token{Type: tokenType, Value: value, Pos: pos}
}

func (l *Lexer) skipWhitespace() {
	for l.ch != 0 {
		if l.ch < 128 && isWhitespace[l.ch] {
			l.readChar()
		} else if l.ch >= 128 && unicode.IsSpace(l.ch) {
			l.readChar()
		} else {
			break
		}
	}
}

// lexSpecMode handles the structural tokens between clauses
func (l *Lexer) lexSpecMode() Token {
	l.skipWhitespace()
	start := l.pos()

	switch l.ch {
	case 0:
		return l.token(EOF, "", start)

	case '=':
		l.readChar()
		if l.afterLet {
			l.mode = ValueMode
		}
		return l.token(EQUALS, "=", start)

	case ';':
		l.readChar()
		l.afterLet = false
		return l.token(SEMICOLON, ";", start)

	case '{':
		l.readChar()
		l.mode = CodeMode
		return l.token(LBRACE, "{", start)

	case '}':
		l.readChar()
		return l.token(RBRACE, "}", start)

	case '/':
		if l.peekChar() == '/' {
			return l.lexLineComment(start)
		}
		if l.peekChar() == '*' {
			return l.lexMultilineComment(start)
		}
		ch := string(l.ch)
		l.readChar()
		return l.token(ILLEGAL, ch, start)

	default:
		if (l.ch < 128 && isIdentStart[l.ch]) || (l.ch >= 128 && unicode.IsLetter(l.ch)) {
			return l.lexIdentifierOrKeyword(start)
		}
		ch := string(l.ch)
		l.readChar()
		return l.token(ILLEGAL, ch, start)
	}
}

// lexIdentifierOrKeyword reads an identifier and classifies keywords
func (l *Lexer) lexIdentifierOrKeyword(start Position) Token {
	for {
		if l.ch < 128 && l.ch != 0 && isIdentPart[l.ch] {
			l.readChar()
		} else if l.ch >= 128 && (unicode.IsLetter(l.ch) || unicode.IsDigit(l.ch)) {
			l.readChar()
		} else {
			break
		}
	}

	value := l.input[start.Offset:l.position]
	if keyword, ok := Keywords[value]; ok {
		if keyword == LET {
			l.afterLet = true
		}
		return l.token(keyword, value, start)
	}
	return l.token(IDENTIFIER, value, start)
}

// lexValueMode captures opaque value expressions. A value ends at a
// top-level 'or' keyword or ';'; parentheses, brackets, braces and string
// quotes group, so compound expressions survive intact.
func (l *Lexer) lexValueMode() Token {
	l.skipWhitespace()
	start := l.pos()

	switch l.ch {
	case 0:
		return l.token(EOF, "", start)

	case ';':
		l.readChar()
		l.mode = SpecMode
		l.afterLet = false
		return l.token(SEMICOLON, ";", start)
	}

	// A bare 'or' word at the top level is the value separator
	if l.isWordBoundaryOr() {
		l.readChar() // o
		l.readChar() // r
		return l.token(OR, "or", start)
	}

	return l.lexValueExpr(start)
}

// isWordBoundaryOr reports whether the input at the current position is the
// standalone word "or"
func (l *Lexer) isWordBoundaryOr() bool {
	if l.ch != 'o' || l.peekChar() != 'r' {
		return false
	}
	after := l.readPos + 1
	if after >= len(l.input) {
		return true
	}
	next, _ := utf8.DecodeRuneInString(l.input[after:])
	if next < 128 {
		return !isIdentPart[next]
	}
	return !unicode.IsLetter(next) && !unicode.IsDigit(next)
}

// lexValueExpr scans one opaque value expression
func (l *Lexer) lexValueExpr(start Position) Token {
	depth := 0
	var quote rune // Active string/char quote, 0 when outside

	for l.ch != 0 {
		if quote != 0 {
			if l.ch == '\\' && quote != '`' {
				l.readChar()
				if l.ch != 0 {
					l.readChar()
				}
				continue
			}
			if l.ch == quote {
				quote = 0
			}
			l.readChar()
			continue
		}

		switch l.ch {
		case '"', '\'', '`':
			quote = l.ch
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ';':
			if depth <= 0 {
				return l.valueToken(start)
			}
		}

		if depth <= 0 && l.isWordBoundaryOr() && l.position > start.Offset {
			// Standalone 'or' only separates values at a word boundary:
			// "color" must not split
			prev, _ := utf8.DecodeLastRuneInString(l.input[:l.position])
			boundary := true
			if prev < 128 {
				boundary = !isIdentPart[prev]
			} else {
				boundary = !unicode.IsLetter(prev) && !unicode.IsDigit(prev)
			}
			if boundary {
				return l.valueToken(start)
			}
		}

		l.readChar()
	}

	if quote != 0 {
		return l.token(ILLEGAL, "unterminated string in value expression", start)
	}
	return l.valueToken(start)
}

// valueToken emits the captured expression with trailing whitespace trimmed
func (l *Lexer) valueToken(start Position) Token {
	text := l.input[start.Offset:l.position]
	end := len(text)
	for end > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:end])
		if !unicode.IsSpace(r) {
			break
		}
		end -= size
	}
	return l.token(VALUE, text[:end], start)
}

// lexCodeMode captures the content of a brace-balanced code block verbatim.
// String literals, rune literals and comments are tracked only so that
// braces inside them do not affect balancing; the text itself is opaque.
func (l *Lexer) lexCodeMode() Token {
	start := l.pos()

	if l.ch == 0 {
		return l.token(EOF, "", start)
	}
	if l.ch == '}' {
		l.readChar()
		l.mode = SpecMode
		return l.token(RBRACE, "}", start)
	}

	depth := 0
	for l.ch != 0 {
		switch l.ch {
		case '"', '\'':
			l.skipQuoted(l.ch)
			continue
		case '`':
			l.skipRawString()
			continue
		case '/':
			if l.peekChar() == '/' {
				l.skipToLineEnd()
				continue
			}
			if l.peekChar() == '*' {
				l.skipBlockComment()
				continue
			}
		case '{':
			depth++
		case '}':
			if depth == 0 {
				// Matching close brace of the block: leave it for the
				// RBRACE token
				return l.token(CODE, l.input[start.Offset:l.position], start)
			}
			depth--
		}
		l.readChar()
	}

	return l.token(ILLEGAL, "unterminated code block", start)
}

func (l *Lexer) skipQuoted(quote rune) {
	l.readChar() // Opening quote
	for l.ch != 0 && l.ch != quote && l.ch != '\n' {
		if l.ch == '\\' {
			l.readChar()
			if l.ch == 0 {
				return
			}
		}
		l.readChar()
	}
	if l.ch == quote {
		l.readChar()
	}
}

func (l *Lexer) skipRawString() {
	l.readChar() // Opening backtick
	for l.ch != 0 && l.ch != '`' {
		l.readChar()
	}
	if l.ch == '`' {
		l.readChar()
	}
}

func (l *Lexer) skipToLineEnd() {
	for l.ch != 0 && l.ch != '\n' {
		l.readChar()
	}
}

func (l *Lexer) skipBlockComment() {
	l.readChar() // /
	l.readChar() // *
	for l.ch != 0 {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return
		}
		l.readChar()
	}
}

// lexLineComment reads a // comment to end of line
func (l *Lexer) lexLineComment(start Position) Token {
	for l.ch != 0 && l.ch != '\n' {
		l.readChar()
	}
	return l.token(COMMENT, l.input[start.Offset:l.position], start)
}

// lexMultilineComment reads a /* */ comment
func (l *Lexer) lexMultilineComment(start Position) Token {
	l.readChar() // /
	l.readChar() // *
	for {
		if l.ch == 0 {
			return l.token(ILLEGAL, "unterminated comment", start)
		}
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			break
		}
		l.readChar()
	}
	return l.token(MULTILINE_COMMENT, l.input[start.Offset:l.position], start)
}
