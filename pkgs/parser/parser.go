// Package parser turns permutest specification text into its structured
// form. Parsing is all-or-nothing: any structural or semantic error aborts
// the whole invocation and no partial File is returned, so nothing is ever
// generated from invalid input.
package parser

import (
	"strings"

	"github.com/permutest/permutest/pkgs/lexer"
)

type parser struct {
	tokens []lexer.Token
	pos    int
	lines  []string
}

// Parse parses specification source into a File containing one or more
// specifications
func Parse(input string) (*File, error) {
	all := lexer.New(input).TokenizeToSlice()

	// Comments carry no structure
	tokens := make([]lexer.Token, 0, len(all))
	for _, tok := range all {
		if tok.Type == lexer.COMMENT || tok.Type == lexer.MULTILINE_COMMENT {
			continue
		}
		tokens = append(tokens, tok)
	}

	p := &parser{tokens: tokens, lines: strings.Split(input, "\n")}

	file := &File{Lines: p.lines}
	for p.cur().Type != lexer.EOF {
		spec, err := p.parseSpec()
		if err != nil {
			return nil, err
		}
		file.Specs = append(file.Specs, *spec)
	}

	if len(file.Specs) == 0 {
		return nil, p.semanticError(lexer.Position{Line: 1, Column: 1},
			"input contains no specification")
	}

	if err := p.validate(file); err != nil {
		return nil, err
	}

	return file, nil
}

func (p *parser) cur() lexer.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return lexer.Token{Type: lexer.EOF}
}

func (p *parser) advance() lexer.Token {
	tok := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes a token of the given type or fails with a positioned
// syntax error
func (p *parser) expect(tokenType lexer.TokenType, expected string) (lexer.Token, *ParseError) {
	tok := p.cur()
	if tok.Type == lexer.ILLEGAL {
		return tok, p.syntaxError(tok.Pos, "%s", tok.Value)
	}
	if tok.Type != tokenType {
		return tok, p.syntaxError(tok.Pos, "%s", keywordMessage(expected, tok))
	}
	return p.advance(), nil
}

// parseSpec parses one specification:
//
//	title Identifier ;
//	let Identifier = value (or value)* ;  (one or more)
//	when Identifier = { ... }
//	then { ... }
func (p *parser) parseSpec() (*Spec, error) {
	if _, err := p.expect(lexer.TITLE, "'title' keyword"); err != nil {
		return nil, err
	}

	titleTok, err := p.expect(lexer.IDENTIFIER, "specification title")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.SEMICOLON, "';' after specification title"); err != nil {
		return nil, err
	}

	spec := &Spec{Title: titleTok.Value, TitlePos: titleTok.Pos}

	for p.cur().Type == lexer.LET {
		decl, err := p.parseVarDecl(spec)
		if err != nil {
			return nil, err
		}
		spec.Variables = append(spec.Variables, *decl)
	}

	if len(spec.Variables) == 0 {
		if p.cur().Type == lexer.WHEN {
			return nil, p.semanticError(titleTok.Pos,
				"specification '%s' declares no variables", spec.Title)
		}
		if _, err := p.expect(lexer.LET, "'let' declaration"); err != nil {
			return nil, err
		}
	}

	if err := p.parseWhenClause(spec); err != nil {
		return nil, err
	}
	if err := p.parseThenClause(spec); err != nil {
		return nil, err
	}

	return spec, nil
}

// parseVarDecl parses one 'let name = v1 or v2 or ... ;' declaration
func (p *parser) parseVarDecl(spec *Spec) (*VariableDecl, error) {
	p.advance() // let

	nameTok, err := p.expect(lexer.IDENTIFIER, "variable name after 'let'")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.EQUALS, "'=' after variable name '"+nameTok.Value+"'"); err != nil {
		return nil, err
	}

	decl := &VariableDecl{Name: nameTok.Value, NamePos: nameTok.Pos}

	for {
		tok := p.cur()
		switch tok.Type {
		case lexer.VALUE:
			p.advance()
			decl.Values = append(decl.Values, ValueExpr{Text: tok.Value, Pos: tok.Pos})
		case lexer.OR:
			if len(decl.Values) == 0 {
				return nil, p.syntaxError(tok.Pos, "expected value expression, found 'or'")
			}
			p.advance()
			if p.cur().Type != lexer.VALUE {
				return nil, p.syntaxError(p.cur().Pos,
					"expected value expression after 'or', found %s", p.cur().Display())
			}
		case lexer.SEMICOLON:
			p.advance()
			if len(decl.Values) == 0 {
				return nil, p.semanticError(nameTok.Pos,
					"variable '%s' in specification '%s' has an empty value list",
					decl.Name, spec.Title)
			}
			return decl, nil
		case lexer.ILLEGAL:
			return nil, p.syntaxError(tok.Pos, "%s", tok.Value)
		default:
			return nil, p.syntaxError(tok.Pos,
				"expected 'or' or ';' in value list of '%s', found %s",
				decl.Name, tok.Display())
		}
	}
}

// parseWhenClause parses 'when result = { ... }'
func (p *parser) parseWhenClause(spec *Spec) error {
	tok := p.cur()
	if tok.Type != lexer.WHEN {
		if tok.Type == lexer.EOF || tok.Type == lexer.THEN {
			return p.semanticError(spec.TitlePos,
				"specification '%s' is missing its 'when' clause", spec.Title)
		}
		return p.syntaxError(tok.Pos, "%s", keywordMessage("'when' clause", tok))
	}
	p.advance()

	resultTok, err := p.expect(lexer.IDENTIFIER, "result identifier after 'when'")
	if err != nil {
		return err
	}
	spec.ResultName = resultTok.Value
	spec.ResultPos = resultTok.Pos

	if _, err := p.expect(lexer.EQUALS, "'=' after result identifier"); err != nil {
		return err
	}

	block, err := p.parseCodeBlock("run")
	if err != nil {
		return err
	}
	spec.Run = *block
	return nil
}

// parseThenClause parses 'then { ... }'
func (p *parser) parseThenClause(spec *Spec) error {
	tok := p.cur()
	if tok.Type != lexer.THEN {
		if tok.Type == lexer.EOF || tok.Type == lexer.TITLE {
			return p.semanticError(spec.TitlePos,
				"specification '%s' is missing its 'then' clause", spec.Title)
		}
		return p.syntaxError(tok.Pos, "%s", keywordMessage("'then' clause", tok))
	}
	p.advance()

	block, err := p.parseCodeBlock("check")
	if err != nil {
		return err
	}
	spec.Check = *block
	return nil
}

// parseCodeBlock parses a brace-delimited opaque block. The content token is
// optional: '{}' is a legal, empty block.
func (p *parser) parseCodeBlock(kind string) (*CodeBlock, *ParseError) {
	open, err := p.expect(lexer.LBRACE, "'{' to open the "+kind+" block")
	if err != nil {
		return nil, err
	}

	block := &CodeBlock{Pos: open.Pos}
	if p.cur().Type == lexer.CODE {
		block.Text = p.advance().Value
	}

	if tok := p.cur(); tok.Type == lexer.ILLEGAL {
		return nil, p.syntaxError(tok.Pos, "%s", tok.Value)
	}
	if _, err := p.expect(lexer.RBRACE, "'}' to close the "+kind+" block"); err != nil {
		return nil, err
	}
	return block, nil
}

// validate performs specification-scope semantic checks after the whole file
// parsed structurally
func (p *parser) validate(file *File) error {
	titles := make(map[string]int)

	for i := range file.Specs {
		spec := &file.Specs[i]

		if line, exists := titles[spec.Title]; exists {
			return p.semanticError(spec.TitlePos,
				"duplicate specification title '%s' (previously defined at line %d)",
				spec.Title, line)
		}
		titles[spec.Title] = spec.TitlePos.Line

		vars := make(map[string]int)
		for _, decl := range spec.Variables {
			if line, exists := vars[decl.Name]; exists {
				return p.semanticError(decl.NamePos,
					"duplicate variable '%s' in specification '%s' (previously declared at line %d)",
					decl.Name, spec.Title, line)
			}
			vars[decl.Name] = decl.NamePos.Line
		}

		// The result binding would shadow the variable in every
		// generated unit
		if _, exists := vars[spec.ResultName]; exists {
			return p.semanticError(spec.ResultPos,
				"result identifier '%s' conflicts with a variable of the same name in specification '%s'",
				spec.ResultName, spec.Title)
		}
	}

	return nil
}
