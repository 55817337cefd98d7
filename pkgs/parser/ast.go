package parser

import (
	"github.com/permutest/permutest/pkgs/lexer"
)

// File represents one parsed specification file. A file may contain several
// specifications; each expands independently.
type File struct {
	Specs []Spec
	Lines []string // Original source lines for error reporting
}

// Spec is the declarative description of one parameterized scenario
type Spec struct {
	Title    string
	TitlePos lexer.Position

	// Variables in declaration order. Order is significant: the first
	// declared variable varies slowest during expansion.
	Variables []VariableDecl

	// ResultName is the identifier the run block's value is captured
	// under, in scope for the check block.
	ResultName string
	ResultPos  lexer.Position

	Run   CodeBlock
	Check CodeBlock
}

// VariableDecl declares one variable and its ordered value set
type VariableDecl struct {
	Name    string
	NamePos lexer.Position
	Values  []ValueExpr
}

// ValueExpr is one opaque value expression from a value list. The text is
// never evaluated; its lexical identity drives test naming.
type ValueExpr struct {
	Text string
	Pos  lexer.Position
}

// CodeBlock is an opaque run or check block, reproduced verbatim during
// generation
type CodeBlock struct {
	Text string
	Pos  lexer.Position
}

// UnitCount returns the number of test units this specification expands to:
// the product of all value set sizes.
func (s *Spec) UnitCount() int {
	count := 1
	for _, v := range s.Variables {
		count *= len(v.Values)
	}
	return count
}
