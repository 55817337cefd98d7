package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// tokenExpectation represents an expected token with type and value
type tokenExpectation struct {
	Type  TokenType
	Value string
}

// assertTokens compares actual tokens with expected, ignoring positions
func assertTokens(t *testing.T, name string, input string, expected []tokenExpectation) {
	t.Helper()

	tokens := New(input).TokenizeToSlice()

	actual := make([]tokenExpectation, len(tokens))
	for i, tok := range tokens {
		actual[i] = tokenExpectation{Type: tok.Type, Value: tok.Value}
	}

	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("%s: token mismatch (-want +got):\n%s", name, diff)
		t.Logf("Input: %q", input)
		return
	}

	// Position validation only when tokens match
	for i, tok := range tokens {
		if tok.Pos.Line <= 0 || tok.Pos.Column <= 0 {
			t.Errorf("%s: token[%d] %s has invalid position %d:%d",
				name, i, tok.Type, tok.Pos.Line, tok.Pos.Column)
		}
	}
}

func TestSpecStructure(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tokenExpectation
	}{
		{
			name:  "title declaration",
			input: `title doubles_example;`,
			expected: []tokenExpectation{
				{TITLE, "title"},
				{IDENTIFIER, "doubles_example"},
				{SEMICOLON, ";"},
				{EOF, ""},
			},
		},
		{
			name:  "single value declaration",
			input: `let a = A1;`,
			expected: []tokenExpectation{
				{LET, "let"},
				{IDENTIFIER, "a"},
				{EQUALS, "="},
				{VALUE, "A1"},
				{SEMICOLON, ";"},
				{EOF, ""},
			},
		},
		{
			name:  "value alternatives",
			input: `let a = A1 or A2 or A3;`,
			expected: []tokenExpectation{
				{LET, "let"},
				{IDENTIFIER, "a"},
				{EQUALS, "="},
				{VALUE, "A1"},
				{OR, "or"},
				{VALUE, "A2"},
				{OR, "or"},
				{VALUE, "A3"},
				{SEMICOLON, ";"},
				{EOF, ""},
			},
		},
		{
			name:  "when clause with code block",
			input: `when result = { return f(a) }`,
			expected: []tokenExpectation{
				{WHEN, "when"},
				{IDENTIFIER, "result"},
				{EQUALS, "="},
				{LBRACE, "{"},
				{CODE, " return f(a) "},
				{RBRACE, "}"},
				{EOF, ""},
			},
		},
		{
			name:  "then clause with empty block",
			input: `then {}`,
			expected: []tokenExpectation{
				{THEN, "then"},
				{LBRACE, "{"},
				{RBRACE, "}"},
				{EOF, ""},
			},
		},
		{
			name:  "line comment",
			input: "// note\ntitle t;",
			expected: []tokenExpectation{
				{COMMENT, "// note"},
				{TITLE, "title"},
				{IDENTIFIER, "t"},
				{SEMICOLON, ";"},
				{EOF, ""},
			},
		},
		{
			name:  "multiline comment",
			input: "/* a\nb */ title t;",
			expected: []tokenExpectation{
				{MULTILINE_COMMENT, "/* a\nb */"},
				{TITLE, "title"},
				{IDENTIFIER, "t"},
				{SEMICOLON, ";"},
				{EOF, ""},
			},
		},
		{
			name:  "misplaced keyword lexes as keyword token",
			input: `let title = x;`,
			expected: []tokenExpectation{
				{LET, "let"},
				{TITLE, "title"},
				{EQUALS, "="},
				{VALUE, "x"},
				{SEMICOLON, ";"},
				{EOF, ""},
			},
		},
		{
			name:  "stray punctuation is illegal",
			input: `title t; @`,
			expected: []tokenExpectation{
				{TITLE, "title"},
				{IDENTIFIER, "t"},
				{SEMICOLON, ";"},
				{ILLEGAL, "@"},
				{EOF, ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTokens(t, tt.name, tt.input, tt.expected)
		})
	}
}

func TestValueExpressions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tokenExpectation
	}{
		{
			name:  "or inside identifier does not split",
			input: `let c = color or colorless;`,
			expected: []tokenExpectation{
				{LET, "let"},
				{IDENTIFIER, "c"},
				{EQUALS, "="},
				{VALUE, "color"},
				{OR, "or"},
				{VALUE, "colorless"},
				{SEMICOLON, ";"},
				{EOF, ""},
			},
		},
		{
			name:  "compound expression with call",
			input: `let x = New(1, 2) or Default();`,
			expected: []tokenExpectation{
				{LET, "let"},
				{IDENTIFIER, "x"},
				{EQUALS, "="},
				{VALUE, "New(1, 2)"},
				{OR, "or"},
				{VALUE, "Default()"},
				{SEMICOLON, ";"},
				{EOF, ""},
			},
		},
		{
			name:  "semicolon inside parentheses does not terminate",
			input: `let x = f("a;b") or g;`,
			expected: []tokenExpectation{
				{LET, "let"},
				{IDENTIFIER, "x"},
				{EQUALS, "="},
				{VALUE, `f("a;b")`},
				{OR, "or"},
				{VALUE, "g"},
				{SEMICOLON, ";"},
				{EOF, ""},
			},
		},
		{
			name:  "or inside string stays in value",
			input: `let s = "this or that" or "neither";`,
			expected: []tokenExpectation{
				{LET, "let"},
				{IDENTIFIER, "s"},
				{EQUALS, "="},
				{VALUE, `"this or that"`},
				{OR, "or"},
				{VALUE, `"neither"`},
				{SEMICOLON, ";"},
				{EOF, ""},
			},
		},
		{
			name:  "or inside brackets stays in value",
			input: `let v = []int{1, 2} or nil;`,
			expected: []tokenExpectation{
				{LET, "let"},
				{IDENTIFIER, "v"},
				{EQUALS, "="},
				{VALUE, "[]int{1, 2}"},
				{OR, "or"},
				{VALUE, "nil"},
				{SEMICOLON, ";"},
				{EOF, ""},
			},
		},
		{
			name:  "negative and numeric values",
			input: `let n = -1 or 0 or 300;`,
			expected: []tokenExpectation{
				{LET, "let"},
				{IDENTIFIER, "n"},
				{EQUALS, "="},
				{VALUE, "-1"},
				{OR, "or"},
				{VALUE, "0"},
				{OR, "or"},
				{VALUE, "300"},
				{SEMICOLON, ";"},
				{EOF, ""},
			},
		},
		{
			name:  "unterminated string is illegal",
			input: `let s = "open;`,
			expected: []tokenExpectation{
				{LET, "let"},
				{IDENTIFIER, "s"},
				{EQUALS, "="},
				{ILLEGAL, "unterminated string in value expression"},
				{EOF, ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTokens(t, tt.name, tt.input, tt.expected)
		})
	}
}

func TestCodeBlocks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []tokenExpectation
	}{
		{
			name:  "nested braces balance",
			input: `then { if ok { x() } }`,
			expected: []tokenExpectation{
				{THEN, "then"},
				{LBRACE, "{"},
				{CODE, " if ok { x() } "},
				{RBRACE, "}"},
				{EOF, ""},
			},
		},
		{
			name:  "brace inside string ignored",
			input: `then { s := "}" }`,
			expected: []tokenExpectation{
				{THEN, "then"},
				{LBRACE, "{"},
				{CODE, ` s := "}" `},
				{RBRACE, "}"},
				{EOF, ""},
			},
		},
		{
			name:  "brace inside rune literal ignored",
			input: `then { r := '}' }`,
			expected: []tokenExpectation{
				{THEN, "then"},
				{LBRACE, "{"},
				{CODE, ` r := '}' `},
				{RBRACE, "}"},
				{EOF, ""},
			},
		},
		{
			name:  "brace inside line comment ignored",
			input: "then {\n\t// closing }\n\tx()\n}",
			expected: []tokenExpectation{
				{THEN, "then"},
				{LBRACE, "{"},
				{CODE, "\n\t// closing }\n\tx()\n"},
				{RBRACE, "}"},
				{EOF, ""},
			},
		},
		{
			name:  "brace inside block comment ignored",
			input: `then { /* } */ x() }`,
			expected: []tokenExpectation{
				{THEN, "then"},
				{LBRACE, "{"},
				{CODE, " /* } */ x() "},
				{RBRACE, "}"},
				{EOF, ""},
			},
		},
		{
			name:  "brace inside raw string ignored",
			input: "then { s := `}` }",
			expected: []tokenExpectation{
				{THEN, "then"},
				{LBRACE, "{"},
				{CODE, " s := `}` "},
				{RBRACE, "}"},
				{EOF, ""},
			},
		},
		{
			name:  "unterminated block is illegal",
			input: `when result = { return f(`,
			expected: []tokenExpectation{
				{WHEN, "when"},
				{IDENTIFIER, "result"},
				{EQUALS, "="},
				{LBRACE, "{"},
				{ILLEGAL, "unterminated code block"},
				{EOF, ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertTokens(t, tt.name, tt.input, tt.expected)
		})
	}
}

func TestFullSpecification(t *testing.T) {
	input := `title doubles_example;
let a = A1 or A2;
let b = B10;
when result = {
	return someCode(a, b)
}
then {
	check(result)
}`

	assertTokens(t, "full specification", input, []tokenExpectation{
		{TITLE, "title"},
		{IDENTIFIER, "doubles_example"},
		{SEMICOLON, ";"},
		{LET, "let"},
		{IDENTIFIER, "a"},
		{EQUALS, "="},
		{VALUE, "A1"},
		{OR, "or"},
		{VALUE, "A2"},
		{SEMICOLON, ";"},
		{LET, "let"},
		{IDENTIFIER, "b"},
		{EQUALS, "="},
		{VALUE, "B10"},
		{SEMICOLON, ";"},
		{WHEN, "when"},
		{IDENTIFIER, "result"},
		{EQUALS, "="},
		{LBRACE, "{"},
		{CODE, "\n\treturn someCode(a, b)\n"},
		{RBRACE, "}"},
		{THEN, "then"},
		{LBRACE, "{"},
		{CODE, "\n\tcheck(result)\n"},
		{RBRACE, "}"},
		{EOF, ""},
	})
}

func TestTokenPositions(t *testing.T) {
	input := "title t;\nlet a = A1;"
	tokens := New(input).TokenizeToSlice()

	want := []Position{
		{Line: 1, Column: 1, Offset: 0},  // title
		{Line: 1, Column: 7, Offset: 6},  // t
		{Line: 1, Column: 8, Offset: 7},  // ;
		{Line: 2, Column: 1, Offset: 9},  // let
		{Line: 2, Column: 5, Offset: 13}, // a
		{Line: 2, Column: 7, Offset: 15}, // =
		{Line: 2, Column: 9, Offset: 17}, // A1
	}
	if len(tokens) < len(want) {
		t.Fatalf("expected at least %d tokens, got %d", len(want), len(tokens))
	}
	for i, pos := range want {
		if diff := cmp.Diff(pos, tokens[i].Pos); diff != "" {
			t.Errorf("token[%d] %s position mismatch (-want +got):\n%s", i, tokens[i].Type, diff)
		}
	}
}
