package parser

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/permutest/permutest/pkgs/lexer"
)

// ErrorKind distinguishes structural (grammar) failures from semantic ones
type ErrorKind int

const (
	// SyntaxError means the token sequence violates the grammar
	SyntaxError ErrorKind = iota
	// SemanticError means the grammar was satisfied but the specification
	// is invalid (duplicate names, empty value list, missing clause)
	SemanticError
)

// ParseError represents an error that occurred during parsing. Any parse
// error is fatal: no partial File is ever returned.
type ParseError struct {
	Kind    ErrorKind
	Line    int    // 1-based line where the error occurred
	Column  int    // 1-based column where the error occurred
	Message string
	Context string // The source line containing the error
}

// Error formats the parse error with visual context
func (e *ParseError) Error() string {
	if e.Context == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}

	// Arrow pointing at the offending column
	col := e.Column - 1
	if col < 0 {
		col = 0
	}
	pointer := strings.Repeat(" ", col) + "^"

	return fmt.Sprintf("line %d: %s\n%s\n%s", e.Line, e.Message, e.Context, pointer)
}

// IsSemanticError reports whether err is a semantic parse error
func IsSemanticError(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.Kind == SemanticError
}

// IsSyntaxError reports whether err is a structural parse error
func IsSyntaxError(err error) bool {
	pe, ok := err.(*ParseError)
	return ok && pe.Kind == SyntaxError
}

func (p *parser) errorAt(kind ErrorKind, pos lexer.Position, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Kind:    kind,
		Line:    pos.Line,
		Column:  pos.Column,
		Message: fmt.Sprintf(format, args...),
		Context: p.contextLine(pos.Line),
	}
}

func (p *parser) syntaxError(pos lexer.Position, format string, args ...interface{}) *ParseError {
	return p.errorAt(SyntaxError, pos, format, args...)
}

func (p *parser) semanticError(pos lexer.Position, format string, args ...interface{}) *ParseError {
	return p.errorAt(SemanticError, pos, format, args...)
}

// contextLine returns the source line for error display, or "" when out of
// range
func (p *parser) contextLine(line int) string {
	if line > 0 && line <= len(p.lines) {
		return p.lines[line-1]
	}
	return ""
}

// suggestKeyword returns a close keyword spelling for an unrecognized word,
// or "" when nothing is close enough to be worth suggesting
func suggestKeyword(word string) string {
	best := ""
	bestDistance := 3 // Anything further than 2 edits is noise
	for _, candidate := range lexer.KeywordNames {
		d := fuzzy.LevenshteinDistance(strings.ToLower(word), candidate)
		if d < bestDistance {
			bestDistance = d
			best = candidate
		}
	}
	return best
}

// keywordMessage builds the "found X" part of an expectation failure,
// attaching a did-you-mean suggestion for near-miss identifiers
func keywordMessage(expected string, tok lexer.Token) string {
	msg := fmt.Sprintf("expected %s, found %s", expected, tok.Display())
	if tok.Type == lexer.IDENTIFIER {
		if s := suggestKeyword(tok.Value); s != "" {
			msg += fmt.Sprintf(" (did you mean '%s'?)", s)
		}
	}
	return msg
}
