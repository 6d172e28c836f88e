package wgsl

import (
	"fmt"
)

// Parser parses WGSL tokens into an AST.
type Parser struct {
	source  string
	tokens  []Token
	current int
	errors  []ParseError
}

// ParseError represents a parsing error.
type ParseError struct {
	Message string
	Token   Token
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Token.Line, e.Token.Column, e.Message)
}

// Parse tokenizes and parses WGSL source into a Module.
func Parse(source string) (*Module, error) {
	lexer := NewLexer(source)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return nil, err
	}
	p := &Parser{source: source, tokens: tokens}
	module, err := p.parseModule()
	if err != nil {
		return nil, err
	}
	module.Comments = lexer.Comments()
	module.Source = source
	return module, nil
}

func (p *Parser) parseModule() (*Module, error) {
	module := &Module{}

	for !p.isAtEnd() {
		decl, err := p.declaration()
		if err != nil {
			p.errors = append(p.errors, *err)
			p.synchronize()
			continue
		}
		if decl != nil {
			module.Decls = append(module.Decls, decl)
		}
	}

	if len(p.errors) > 0 {
		return nil, fmt.Errorf("parsing failed with %d error(s): %w", len(p.errors), p.errors[0])
	}

	return module, nil
}

// declaration parses a top-level declaration.
func (p *Parser) declaration() (Decl, *ParseError) {
	attrs, err := p.attributes()
	if err != nil {
		return nil, err
	}

	switch {
	case p.check(TokenFn):
		return p.functionDecl(attrs)
	case p.check(TokenStruct):
		return p.structDecl(attrs)
	case p.check(TokenVar):
		return p.varDecl(attrs)
	case p.check(TokenConst):
		return p.valueDecl(KindConst, attrs)
	case p.check(TokenLet):
		return p.valueDecl(KindLet, attrs)
	case p.check(TokenOverride):
		return p.valueDecl(KindOverride, attrs)
	case p.check(TokenAlias):
		return p.aliasDecl()
	case p.check(TokenEnable):
		return p.enableDirective()
	case p.check(TokenRequires):
		return p.requiresDirective()
	case p.check(TokenDiagnostic):
		return p.diagnosticDirective()
	case p.check(TokenConstAssert):
		return p.constAssert()
	case p.check(TokenSemicolon):
		p.advance()
		return nil, nil
	case p.check(TokenEOF):
		return nil, nil
	default:
		tok := p.peek()
		return nil, &ParseError{
			Message: fmt.Sprintf("unexpected token %s, expected declaration", tok.Kind),
			Token:   tok,
		}
	}
}

// attributes parses a list of attributes (@location(0), @vertex, ...).
func (p *Parser) attributes() ([]Attribute, *ParseError) {
	var attrs []Attribute

	for p.check(TokenAt) {
		start := p.advance() // consume @

		name := p.peek()
		if name.Kind != TokenIdent && name.Kind != TokenDiagnostic && name.Kind != TokenConst {
			return nil, &ParseError{Message: "expected attribute name", Token: name}
		}
		p.advance()

		attr := Attribute{
			Name: name.Lexeme,
			Span: Span{Start: start.Start, End: name.End},
		}

		if p.match(TokenLeftParen) {
			for !p.check(TokenRightParen) && !p.isAtEnd() {
				arg, err := p.expression()
				if err != nil {
					return nil, err
				}
				attr.Args = append(attr.Args, arg)
				if !p.match(TokenComma) {
					break
				}
			}
			if err := p.expect(TokenRightParen); err != nil {
				return nil, err
			}
			attr.Span.End = p.previous().End
		}

		attrs = append(attrs, attr)
	}

	return attrs, nil
}

func (p *Parser) functionDecl(attrs []Attribute) (*FunctionDecl, *ParseError) {
	start := p.advance() // consume 'fn'
	if len(attrs) > 0 {
		start.Start = attrs[0].Span.Start
	}

	name, err := p.expectIdent("function name")
	if err != nil {
		return nil, err
	}

	if err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}

	var params []*Parameter
	for !p.check(TokenRightParen) && !p.isAtEnd() {
		paramAttrs, err := p.attributes()
		if err != nil {
			return nil, err
		}
		pname, err := p.expectIdent("parameter name")
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenColon); err != nil {
			return nil, err
		}
		ptype, err := p.typeSpec()
		if err != nil {
			return nil, err
		}
		params = append(params, &Parameter{
			Name:       pname.Lexeme,
			Type:       ptype,
			Attributes: paramAttrs,
			Span:       Span{Start: pname.Start, End: p.previous().End},
		})
		if !p.match(TokenComma) {
			break
		}
	}
	if err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}

	var returnType Type
	var returnAttrs []Attribute
	if p.match(TokenArrow) {
		returnAttrs, err = p.attributes()
		if err != nil {
			return nil, err
		}
		returnType, err = p.typeSpec()
		if err != nil {
			return nil, err
		}
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &FunctionDecl{
		Name:        name.Lexeme,
		Params:      params,
		ReturnType:  returnType,
		ReturnAttrs: returnAttrs,
		Attributes:  attrs,
		Body:        body,
		Span:        Span{Start: start.Start, End: body.Span.End},
	}, nil
}

func (p *Parser) structDecl(attrs []Attribute) (*StructDecl, *ParseError) {
	start := p.advance() // consume 'struct'
	if len(attrs) > 0 {
		start.Start = attrs[0].Span.Start
	}

	name, err := p.expectIdent("struct name")
	if err != nil {
		return nil, err
	}

	if err := p.expect(TokenLeftBrace); err != nil {
		return nil, err
	}

	var members []*StructMember
	for !p.check(TokenRightBrace) && !p.isAtEnd() {
		memberAttrs, err := p.attributes()
		if err != nil {
			return nil, err
		}
		mname, err := p.expectIdent("member name")
		if err != nil {
			return nil, err
		}
		if err := p.expect(TokenColon); err != nil {
			return nil, err
		}
		mtype, err := p.typeSpec()
		if err != nil {
			return nil, err
		}
		members = append(members, &StructMember{
			Name:       mname.Lexeme,
			Type:       mtype,
			Attributes: memberAttrs,
			Span:       Span{Start: mname.Start, End: p.previous().End},
		})
		if !p.match(TokenComma) {
			break
		}
	}
	if err := p.expect(TokenRightBrace); err != nil {
		return nil, err
	}

	return &StructDecl{
		Name:       name.Lexeme,
		Members:    members,
		Attributes: attrs,
		Span:       Span{Start: start.Start, End: p.previous().End},
	}, nil
}

// varDecl parses a var declaration, with optional <address_space, access>
// qualifiers, at module or function scope.
func (p *Parser) varDecl(attrs []Attribute) (*VarDecl, *ParseError) {
	start := p.advance() // consume 'var'
	if len(attrs) > 0 {
		start.Start = attrs[0].Span.Start
	}

	decl := &VarDecl{Kind: KindVar, Attributes: attrs}

	if p.match(TokenLess) {
		space, err := p.expectIdent("address space")
		if err != nil {
			return nil, err
		}
		decl.AddressSpace = space.Lexeme
		if p.match(TokenComma) {
			access, err := p.expectIdent("access mode")
			if err != nil {
				return nil, err
			}
			decl.AccessMode = access.Lexeme
		}
		if err := p.expect(TokenGreater); err != nil {
			return nil, err
		}
	}

	name, err := p.expectIdent("variable name")
	if err != nil {
		return nil, err
	}
	decl.Name = name.Lexeme

	if p.match(TokenColon) {
		t, err := p.typeSpec()
		if err != nil {
			return nil, err
		}
		decl.Type = t
	}

	if p.match(TokenEqual) {
		init, err := p.expression()
		if err != nil {
			return nil, err
		}
		decl.Init = init
	}

	p.match(TokenSemicolon)
	decl.Span = Span{Start: start.Start, End: p.previous().End}
	return decl, nil
}

// valueDecl parses let, const, and override declarations. Only override may
// omit the initializer.
func (p *Parser) valueDecl(kind VarKind, attrs []Attribute) (*VarDecl, *ParseError) {
	start := p.advance() // consume keyword
	if len(attrs) > 0 {
		start.Start = attrs[0].Span.Start
	}

	name, err := p.expectIdent("declaration name")
	if err != nil {
		return nil, err
	}

	decl := &VarDecl{Kind: kind, Name: name.Lexeme, Attributes: attrs}

	if p.match(TokenColon) {
		t, err := p.typeSpec()
		if err != nil {
			return nil, err
		}
		decl.Type = t
	}

	if p.match(TokenEqual) {
		init, err := p.expression()
		if err != nil {
			return nil, err
		}
		decl.Init = init
	} else if kind != KindOverride {
		return nil, &ParseError{
			Message: fmt.Sprintf("%s declaration requires an initializer", kind),
			Token:   p.peek(),
		}
	}

	p.match(TokenSemicolon)
	decl.Span = Span{Start: start.Start, End: p.previous().End}
	return decl, nil
}

func (p *Parser) aliasDecl() (*AliasDecl, *ParseError) {
	start := p.advance() // consume 'alias'

	name, err := p.expectIdent("alias name")
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenEqual); err != nil {
		return nil, err
	}
	t, err := p.typeSpec()
	if err != nil {
		return nil, err
	}
	p.match(TokenSemicolon)

	return &AliasDecl{
		Name: name.Lexeme,
		Type: t,
		Span: Span{Start: start.Start, End: p.previous().End},
	}, nil
}

func (p *Parser) enableDirective() (*EnableDirective, *ParseError) {
	start := p.advance() // consume 'enable'
	exts, err := p.identList("extension name")
	if err != nil {
		return nil, err
	}
	p.match(TokenSemicolon)
	return &EnableDirective{
		Extensions: exts,
		Span:       Span{Start: start.Start, End: p.previous().End},
	}, nil
}

func (p *Parser) requiresDirective() (*RequiresDirective, *ParseError) {
	start := p.advance() // consume 'requires'
	exts, err := p.identList("language feature name")
	if err != nil {
		return nil, err
	}
	p.match(TokenSemicolon)
	return &RequiresDirective{
		Extensions: exts,
		Span:       Span{Start: start.Start, End: p.previous().End},
	}, nil
}

func (p *Parser) identList(what string) ([]string, *ParseError) {
	var names []string
	for {
		name, err := p.expectIdent(what)
		if err != nil {
			return nil, err
		}
		names = append(names, name.Lexeme)
		if !p.match(TokenComma) {
			break
		}
	}
	return names, nil
}

func (p *Parser) diagnosticDirective() (*DiagnosticDirective, *ParseError) {
	start := p.advance() // consume 'diagnostic'

	if err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}
	severity, err := p.expectIdent("diagnostic severity")
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenComma); err != nil {
		return nil, err
	}
	// Rule names may be dotted: derivative_uniformity or chromium.unreachable_code
	rule, err := p.expectIdent("diagnostic rule")
	if err != nil {
		return nil, err
	}
	ruleName := rule.Lexeme
	if p.match(TokenDot) {
		sub, err := p.expectIdent("diagnostic rule")
		if err != nil {
			return nil, err
		}
		ruleName += "." + sub.Lexeme
	}
	if err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}
	p.match(TokenSemicolon)

	return &DiagnosticDirective{
		Severity: severity.Lexeme,
		Rule:     ruleName,
		Span:     Span{Start: start.Start, End: p.previous().End},
	}, nil
}

func (p *Parser) constAssert() (*ConstAssert, *ParseError) {
	start := p.advance() // consume 'const_assert'
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	p.match(TokenSemicolon)
	return &ConstAssert{
		Expr: expr,
		Span: Span{Start: start.Start, End: p.previous().End},
	}, nil
}

// Types

// typeGenerators are the predefined names that take template parameters or
// otherwise denote types when used in constructor position.
var typeGenerators = map[string]bool{
	"bool": true, "f16": true, "f32": true, "i32": true, "u32": true,
	"vec2": true, "vec3": true, "vec4": true,
	"vec2f": true, "vec3f": true, "vec4f": true,
	"vec2i": true, "vec3i": true, "vec4i": true,
	"vec2u": true, "vec3u": true, "vec4u": true,
	"vec2h": true, "vec3h": true, "vec4h": true,
	"mat2x2": true, "mat2x3": true, "mat2x4": true,
	"mat3x2": true, "mat3x3": true, "mat3x4": true,
	"mat4x2": true, "mat4x3": true, "mat4x4": true,
	"mat2x2f": true, "mat2x3f": true, "mat2x4f": true,
	"mat3x2f": true, "mat3x3f": true, "mat3x4f": true,
	"mat4x2f": true, "mat4x3f": true, "mat4x4f": true,
	"mat2x2h": true, "mat2x3h": true, "mat2x4h": true,
	"mat3x2h": true, "mat3x3h": true, "mat3x4h": true,
	"mat4x2h": true, "mat4x3h": true, "mat4x4h": true,
	"array": true, "atomic": true, "ptr": true,
	"sampler": true, "sampler_comparison": true,
	"texture_1d": true, "texture_2d": true, "texture_2d_array": true,
	"texture_3d": true, "texture_cube": true, "texture_cube_array": true,
	"texture_multisampled_2d": true, "texture_external": true,
	"texture_storage_1d": true, "texture_storage_2d": true,
	"texture_storage_2d_array": true, "texture_storage_3d": true,
	"texture_depth_2d": true, "texture_depth_2d_array": true,
	"texture_depth_cube": true, "texture_depth_cube_array": true,
	"texture_depth_multisampled_2d": true,
}

// typeSpec parses a type expression.
func (p *Parser) typeSpec() (Type, *ParseError) {
	name, err := p.expectIdent("type name")
	if err != nil {
		return nil, err
	}

	switch name.Lexeme {
	case "array":
		return p.arrayType(name)
	case "ptr":
		return p.ptrType(name)
	}

	t := &NamedType{Name: name.Lexeme, Span: Span{Start: name.Start, End: name.End}}

	if p.check(TokenLess) {
		p.advance()
		for !p.check(TokenGreater) && !p.isAtEnd() {
			param, err := p.typeSpec()
			if err != nil {
				return nil, err
			}
			t.TypeParams = append(t.TypeParams, param)
			if !p.match(TokenComma) {
				break
			}
		}
		end, err := p.expectGreater()
		if err != nil {
			return nil, err
		}
		t.Span.End = end
	}

	return t, nil
}

func (p *Parser) arrayType(name Token) (*ArrayType, *ParseError) {
	t := &ArrayType{Span: Span{Start: name.Start, End: name.End}}

	if p.match(TokenLess) {
		elem, err := p.typeSpec()
		if err != nil {
			return nil, err
		}
		t.Element = elem
		if p.match(TokenComma) {
			size, err := p.expression()
			if err != nil {
				return nil, err
			}
			t.Size = size
		}
		end, err := p.expectGreater()
		if err != nil {
			return nil, err
		}
		t.Span.End = end
	}

	return t, nil
}

func (p *Parser) ptrType(name Token) (*PtrType, *ParseError) {
	if err := p.expect(TokenLess); err != nil {
		return nil, err
	}
	space, err := p.expectIdent("address space")
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenComma); err != nil {
		return nil, err
	}
	pointee, perr := p.typeSpec()
	if perr != nil {
		return nil, perr
	}
	t := &PtrType{
		AddressSpace: space.Lexeme,
		Pointee:      pointee,
		Span:         Span{Start: name.Start},
	}
	if p.match(TokenComma) {
		access, err := p.expectIdent("access mode")
		if err != nil {
			return nil, err
		}
		t.AccessMode = access.Lexeme
	}
	end, gerr := p.expectGreater()
	if gerr != nil {
		return nil, gerr
	}
	t.Span.End = end
	return t, nil
}

// Statements

func (p *Parser) block() (*BlockStmt, *ParseError) {
	start := p.peek()
	if err := p.expect(TokenLeftBrace); err != nil {
		return nil, err
	}

	stmts := make([]Stmt, 0, 4)
	for !p.check(TokenRightBrace) && !p.isAtEnd() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}

	if err := p.expect(TokenRightBrace); err != nil {
		return nil, err
	}

	return &BlockStmt{
		Statements: stmts,
		Span:       Span{Start: start.Start, End: p.previous().End},
	}, nil
}

func (p *Parser) statement() (Stmt, *ParseError) {
	switch {
	case p.check(TokenReturn):
		return p.returnStmt()
	case p.check(TokenIf):
		return p.ifStmt()
	case p.check(TokenFor):
		return p.forStmt()
	case p.check(TokenWhile):
		return p.whileStmt()
	case p.check(TokenLoop):
		return p.loopStmt()
	case p.check(TokenBreak):
		return p.breakStmt()
	case p.check(TokenContinue):
		return p.continueStmt()
	case p.check(TokenDiscard):
		return p.discardStmt()
	case p.check(TokenSwitch):
		return p.switchStmt()
	case p.check(TokenVar):
		return p.varDecl(nil)
	case p.check(TokenLet):
		return p.valueDecl(KindLet, nil)
	case p.check(TokenConst):
		return p.valueDecl(KindConst, nil)
	case p.check(TokenConstAssert):
		return p.constAssert()
	case p.check(TokenLeftBrace):
		return p.block()
	case p.check(TokenSemicolon):
		p.advance()
		return nil, nil
	default:
		return p.exprOrAssignStmt()
	}
}

func (p *Parser) returnStmt() (*ReturnStmt, *ParseError) {
	start := p.advance() // consume 'return'

	var value Expr
	if !p.check(TokenSemicolon) && !p.check(TokenRightBrace) {
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		value = e
	}

	p.match(TokenSemicolon)

	return &ReturnStmt{
		Value: value,
		Span:  Span{Start: start.Start, End: p.previous().End},
	}, nil
}

func (p *Parser) ifStmt() (*IfStmt, *ParseError) {
	start := p.advance() // consume 'if'

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	stmt := &IfStmt{Condition: cond, Body: body}

	if p.match(TokenElse) {
		var elseStmt Stmt
		if p.check(TokenIf) {
			elseStmt, err = p.ifStmt()
		} else {
			elseStmt, err = p.block()
		}
		if err != nil {
			return nil, err
		}
		stmt.Else = elseStmt
	}

	stmt.Span = Span{Start: start.Start, End: p.previous().End}
	return stmt, nil
}

func (p *Parser) forStmt() (*ForStmt, *ParseError) {
	start := p.advance() // consume 'for'

	if err := p.expect(TokenLeftParen); err != nil {
		return nil, err
	}

	var init Stmt
	if !p.check(TokenSemicolon) {
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		init = s
	} else {
		p.advance()
	}

	var cond Expr
	if !p.check(TokenSemicolon) {
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		cond = e
	}
	p.match(TokenSemicolon)

	var update Stmt
	if !p.check(TokenRightParen) {
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		update = s
	}

	if err := p.expect(TokenRightParen); err != nil {
		return nil, err
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &ForStmt{
		Init:      init,
		Condition: cond,
		Update:    update,
		Body:      body,
		Span:      Span{Start: start.Start, End: body.Span.End},
	}, nil
}

func (p *Parser) whileStmt() (*WhileStmt, *ParseError) {
	start := p.advance() // consume 'while'

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}

	return &WhileStmt{
		Condition: cond,
		Body:      body,
		Span:      Span{Start: start.Start, End: body.Span.End},
	}, nil
}

func (p *Parser) loopStmt() (*LoopStmt, *ParseError) {
	start := p.advance() // consume 'loop'

	if err := p.expect(TokenLeftBrace); err != nil {
		return nil, err
	}

	stmt := &LoopStmt{Body: &BlockStmt{}}
	bodyStart := p.previous()

	for !p.check(TokenRightBrace) && !p.isAtEnd() {
		if p.check(TokenContinuing) {
			p.advance()
			continuing, err := p.block()
			if err != nil {
				return nil, err
			}
			stmt.Continuing = continuing
			break
		}
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		if s != nil {
			stmt.Body.Statements = append(stmt.Body.Statements, s)
		}
	}

	if err := p.expect(TokenRightBrace); err != nil {
		return nil, err
	}

	stmt.Body.Span = Span{Start: bodyStart.Start, End: p.previous().End}
	stmt.Span = Span{Start: start.Start, End: p.previous().End}
	return stmt, nil
}

func (p *Parser) switchStmt() (*SwitchStmt, *ParseError) {
	start := p.advance() // consume 'switch'

	selector, err := p.expression()
	if err != nil {
		return nil, err
	}

	if err := p.expect(TokenLeftBrace); err != nil {
		return nil, err
	}

	var cases []*CaseClause
	for !p.check(TokenRightBrace) && !p.isAtEnd() {
		clause, err := p.caseClause()
		if err != nil {
			return nil, err
		}
		cases = append(cases, clause)
	}

	if err := p.expect(TokenRightBrace); err != nil {
		return nil, err
	}

	return &SwitchStmt{
		Selector: selector,
		Cases:    cases,
		Span:     Span{Start: start.Start, End: p.previous().End},
	}, nil
}

func (p *Parser) caseClause() (*CaseClause, *ParseError) {
	start := p.peek()
	clause := &CaseClause{}

	if p.match(TokenDefault) {
		clause.IsDefault = true
	} else if p.match(TokenCase) {
		// Comma-separated selectors: case 1, 2, 3:
		for {
			if p.check(TokenDefault) {
				// `default` may appear in a selector list
				p.advance()
				clause.IsDefault = true
			} else {
				expr, err := p.expression()
				if err != nil {
					return nil, err
				}
				clause.Selectors = append(clause.Selectors, expr)
			}
			if !p.match(TokenComma) {
				break
			}
		}
	} else {
		return nil, &ParseError{Message: "expected 'case' or 'default'", Token: start}
	}

	// The colon is optional in current WGSL; accept either form.
	p.match(TokenColon)

	body, err := p.block()
	if err != nil {
		return nil, err
	}
	clause.Body = body
	clause.Span = Span{Start: start.Start, End: body.Span.End}
	return clause, nil
}

func (p *Parser) breakStmt() (*BreakStmt, *ParseError) {
	start := p.advance() // consume 'break'

	stmt := &BreakStmt{}
	if p.match(TokenIf) {
		cond, err := p.expression()
		if err != nil {
			return nil, err
		}
		stmt.If = cond
	}
	p.match(TokenSemicolon)
	stmt.Span = Span{Start: start.Start, End: p.previous().End}
	return stmt, nil
}

func (p *Parser) continueStmt() (*ContinueStmt, *ParseError) {
	start := p.advance() // consume 'continue'
	p.match(TokenSemicolon)
	return &ContinueStmt{Span: Span{Start: start.Start, End: p.previous().End}}, nil
}

func (p *Parser) discardStmt() (*DiscardStmt, *ParseError) {
	start := p.advance() // consume 'discard'
	p.match(TokenSemicolon)
	return &DiscardStmt{Span: Span{Start: start.Start, End: p.previous().End}}, nil
}

func (p *Parser) exprOrAssignStmt() (Stmt, *ParseError) {
	start := p.peek()
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	if p.check(TokenPlusPlus) || p.check(TokenMinusMinus) {
		op := p.advance()
		p.match(TokenSemicolon)
		return &IncDecStmt{
			Target: expr,
			Op:     op.Kind,
			Span:   Span{Start: start.Start, End: p.previous().End},
		}, nil
	}

	if isAssignOp(p.peek().Kind) {
		op := p.advance()
		right, err := p.expression()
		if err != nil {
			return nil, err
		}
		p.match(TokenSemicolon)
		return &AssignStmt{
			Left:  expr,
			Op:    op.Kind,
			Right: right,
			Span:  Span{Start: start.Start, End: p.previous().End},
		}, nil
	}

	p.match(TokenSemicolon)
	return &ExprStmt{
		Expr: expr,
		Span: Span{Start: start.Start, End: p.previous().End},
	}, nil
}

// Expressions, precedence climbing from loosest to tightest.

func (p *Parser) expression() (Expr, *ParseError) {
	return p.logicalOr()
}

func (p *Parser) logicalOr() (Expr, *ParseError) {
	return p.binaryLevel(p.logicalAnd, TokenPipePipe)
}

func (p *Parser) logicalAnd() (Expr, *ParseError) {
	return p.binaryLevel(p.bitwiseOr, TokenAmpAmp)
}

func (p *Parser) bitwiseOr() (Expr, *ParseError) {
	return p.binaryLevel(p.bitwiseXor, TokenPipe)
}

func (p *Parser) bitwiseXor() (Expr, *ParseError) {
	return p.binaryLevel(p.bitwiseAnd, TokenCaret)
}

func (p *Parser) bitwiseAnd() (Expr, *ParseError) {
	return p.binaryLevel(p.equality, TokenAmpersand)
}

func (p *Parser) equality() (Expr, *ParseError) {
	return p.binaryLevel(p.comparison, TokenEqualEqual, TokenBangEqual)
}

func (p *Parser) comparison() (Expr, *ParseError) {
	return p.binaryLevel(p.shift, TokenLess, TokenGreater, TokenLessEqual, TokenGreaterEqual)
}

func (p *Parser) shift() (Expr, *ParseError) {
	return p.binaryLevel(p.additive, TokenLessLess, TokenGreaterGreater)
}

func (p *Parser) additive() (Expr, *ParseError) {
	return p.binaryLevel(p.multiplicative, TokenPlus, TokenMinus)
}

func (p *Parser) multiplicative() (Expr, *ParseError) {
	return p.binaryLevel(p.unary, TokenStar, TokenSlash, TokenPercent)
}

func (p *Parser) binaryLevel(next func() (Expr, *ParseError), ops ...TokenKind) (Expr, *ParseError) {
	left, err := next()
	if err != nil {
		return nil, err
	}

	for p.checkAny(ops...) {
		op := p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{
			Left:  left,
			Op:    op.Kind,
			Right: right,
			Span:  left.Pos().Extend(right.Pos()),
		}
	}

	return left, nil
}

func (p *Parser) unary() (Expr, *ParseError) {
	if p.check(TokenMinus) || p.check(TokenBang) || p.check(TokenTilde) ||
		p.check(TokenAmpersand) || p.check(TokenStar) {
		op := p.advance()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{
			Op:      op.Kind,
			Operand: operand,
			Span:    Span{Start: op.Start, End: operand.Pos().End},
		}, nil
	}

	return p.postfix()
}

func (p *Parser) postfix() (Expr, *ParseError) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		if p.check(TokenLeftParen) {
			switch callee := expr.(type) {
			case *Ident:
				args, end, err := p.argumentList()
				if err != nil {
					return nil, err
				}
				expr = &CallExpr{
					Func: callee,
					Args: args,
					Span: Span{Start: callee.Span.Start, End: end},
				}
			case *ConstructExpr:
				args, end, err := p.argumentList()
				if err != nil {
					return nil, err
				}
				callee.Args = args
				callee.Span.End = end
				expr = callee
			default:
				return nil, &ParseError{Message: "expression is not callable", Token: p.peek()}
			}
		} else if p.match(TokenLeftBracket) {
			index, err := p.expression()
			if err != nil {
				return nil, err
			}
			if err := p.expect(TokenRightBracket); err != nil {
				return nil, err
			}
			expr = &IndexExpr{
				Expr:  expr,
				Index: index,
				Span:  Span{Start: expr.Pos().Start, End: p.previous().End},
			}
		} else if p.match(TokenDot) {
			member, err := p.expectIdent("member name")
			if err != nil {
				return nil, err
			}
			expr = &MemberExpr{
				Expr:   expr,
				Member: member.Lexeme,
				Span:   Span{Start: expr.Pos().Start, End: member.End},
			}
		} else {
			break
		}
	}

	return expr, nil
}

func (p *Parser) argumentList() ([]Expr, int, *ParseError) {
	if err := p.expect(TokenLeftParen); err != nil {
		return nil, 0, err
	}
	args := make([]Expr, 0, 4)
	for !p.check(TokenRightParen) && !p.isAtEnd() {
		arg, err := p.expression()
		if err != nil {
			return nil, 0, err
		}
		args = append(args, arg)
		if !p.match(TokenComma) {
			break
		}
	}
	if err := p.expect(TokenRightParen); err != nil {
		return nil, 0, err
	}
	return args, p.previous().End, nil
}

func (p *Parser) primary() (Expr, *ParseError) {
	tok := p.peek()

	switch tok.Kind {
	case TokenIntLiteral, TokenFloatLiteral, TokenBoolLiteral:
		p.advance()
		return &Literal{
			Kind:  tok.Kind,
			Value: tok.Lexeme,
			Span:  Span{Start: tok.Start, End: tok.End},
		}, nil

	case TokenBitcast:
		p.advance()
		if err := p.expect(TokenLess); err != nil {
			return nil, err
		}
		target, err := p.typeSpec()
		if err != nil {
			return nil, err
		}
		if _, gerr := p.expectGreater(); gerr != nil {
			return nil, gerr
		}
		if lerr := p.expect(TokenLeftParen); lerr != nil {
			return nil, lerr
		}
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if rerr := p.expect(TokenRightParen); rerr != nil {
			return nil, rerr
		}
		return &BitcastExpr{
			Type: target,
			Expr: inner,
			Span: Span{Start: tok.Start, End: p.previous().End},
		}, nil

	case TokenIdent:
		// Predefined type names followed by a template list or call are
		// constructors; everything else is a plain identifier.
		if typeGenerators[tok.Lexeme] && (p.peekNext().Kind == TokenLess || p.peekNext().Kind == TokenLeftParen) {
			typeExpr, err := p.typeSpec()
			if err != nil {
				return nil, err
			}
			return &ConstructExpr{
				Type: typeExpr,
				Span: typeExpr.Pos(),
			}, nil
		}
		p.advance()
		return &Ident{
			Name: tok.Lexeme,
			Span: Span{Start: tok.Start, End: tok.End},
		}, nil

	case TokenLeftParen:
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if perr := p.expect(TokenRightParen); perr != nil {
			return nil, perr
		}
		return &ParenExpr{
			Expr: expr,
			Span: Span{Start: tok.Start, End: p.previous().End},
		}, nil

	default:
		return nil, &ParseError{
			Message: fmt.Sprintf("unexpected token %s in expression", tok.Kind),
			Token:   tok,
		}
	}
}

// Helper methods

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) peekNext() Token {
	if p.current+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current+1]
}

func (p *Parser) previous() Token {
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == TokenEOF
}

func (p *Parser) check(kind TokenKind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) checkAny(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

func (p *Parser) match(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind TokenKind) *ParseError {
	if p.check(kind) {
		p.advance()
		return nil
	}
	return &ParseError{
		Message: fmt.Sprintf("expected %s, got %s", kind, p.peek().Kind),
		Token:   p.peek(),
	}
}

// expectGreater consumes a closing > in template position and returns the
// byte offset just past it. Adjacent closers lex as >> (and a closer followed
// by = lexes as >=); those tokens are split in place so nested template lists
// like vec2<vec2<f32>> parse correctly.
func (p *Parser) expectGreater() (int, *ParseError) {
	tok := p.peek()
	switch tok.Kind {
	case TokenGreater:
		p.advance()
		return tok.End, nil
	case TokenGreaterGreater:
		p.tokens[p.current] = Token{
			Kind: TokenGreater, Lexeme: ">",
			Start: tok.Start + 1, End: tok.End,
			Line: tok.Line, Column: tok.Column + 1,
		}
		return tok.Start + 1, nil
	case TokenGreaterEqual:
		p.tokens[p.current] = Token{
			Kind: TokenEqual, Lexeme: "=",
			Start: tok.Start + 1, End: tok.End,
			Line: tok.Line, Column: tok.Column + 1,
		}
		return tok.Start + 1, nil
	case TokenGreaterGreaterEqual:
		p.tokens[p.current] = Token{
			Kind: TokenGreaterEqual, Lexeme: ">=",
			Start: tok.Start + 1, End: tok.End,
			Line: tok.Line, Column: tok.Column + 1,
		}
		return tok.Start + 1, nil
	}
	return 0, &ParseError{
		Message: fmt.Sprintf("expected >, got %s", tok.Kind),
		Token:   tok,
	}
}

func (p *Parser) expectIdent(what string) (Token, *ParseError) {
	if p.check(TokenIdent) {
		return p.advance(), nil
	}
	return Token{}, &ParseError{
		Message: fmt.Sprintf("expected %s", what),
		Token:   p.peek(),
	}
}

func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == TokenSemicolon {
			return
		}
		switch p.peek().Kind {
		case TokenFn, TokenStruct, TokenVar, TokenConst, TokenLet, TokenAlias, TokenOverride:
			return
		}
		p.advance()
	}
}

func isAssignOp(kind TokenKind) bool {
	switch kind {
	case TokenEqual, TokenPlusEqual, TokenMinusEqual, TokenStarEqual,
		TokenSlashEqual, TokenPercentEqual, TokenAmpEqual, TokenPipeEqual,
		TokenCaretEqual, TokenLessLessEqual, TokenGreaterGreaterEqual:
		return true
	}
	return false
}
