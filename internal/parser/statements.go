package parser

import (
	"strings"

	"github.com/typedframes/framecheck/internal/ast"
	"github.com/typedframes/framecheck/internal/diagnostics"
	"github.com/typedframes/framecheck/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.CLASS:
		return p.parseClassDef(nil)
	case token.DEF:
		return p.parseFunctionDef(nil)
	case token.ASYNC:
		return p.parseAsyncStatement()
	case token.AT:
		return p.parseDecorated()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.PASS:
		return p.terminate(&ast.PassStatement{Token: p.curToken})
	case token.BREAK:
		return p.terminate(&ast.BreakStatement{Token: p.curToken})
	case token.CONTINUE:
		return p.terminate(&ast.ContinueStatement{Token: p.curToken})
	case token.IMPORT:
		return p.parseImportStatement()
	case token.FROM:
		return p.parseFromImportStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.WITH:
		return p.parseWithStatement()
	case token.TRY:
		return p.parseTryStatement()
	case token.RAISE:
		return p.parseRaiseStatement()
	case token.ASSERT:
		return p.parseAssertStatement()
	case token.DEL:
		return p.parseDeleteStatement()
	case token.GLOBAL, token.NONLOCAL:
		return p.parseScopeStatement()
	case token.ILLEGAL:
		// Already reported by the lexer stage.
		return nil
	default:
		return p.parseExpressionOrAssignment()
	}
}

// parseAsyncStatement parses the def, for, or with statement behind an
// async keyword. The coroutine marker itself carries no checking weight.
func (p *Parser) parseAsyncStatement() ast.Statement {
	p.nextToken()
	switch p.curToken.Type {
	case token.DEF:
		return p.parseFunctionDef(nil)
	case token.FOR:
		return p.parseForStatement()
	case token.WITH:
		return p.parseWithStatement()
	}
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
		diagnostics.ErrP001,
		p.curToken,
		"expected def, for, or with after async",
	))
	return nil
}

// terminate consumes the statement terminator after a keyword-only
// statement such as pass.
func (p *Parser) terminate(stmt ast.Statement) ast.Statement {
	p.endSimpleStatement()
	return stmt
}

// endSimpleStatement positions curToken on the statement's terminator.
// DEDENT and EOF are left in peek for the enclosing block to see.
func (p *Parser) endSimpleStatement() {
	if p.peekTokenIs(token.NEWLINE) || p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
		return
	}
	if p.peekTokenIs(token.DEDENT) || p.peekTokenIs(token.EOF) {
		return
	}
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
		diagnostics.ErrP001,
		p.peekToken,
		"unexpected "+describeToken(p.peekToken)+" after statement",
	))
	p.skipLine()
}

// parseBlock parses the suite after a compound statement's ':'. On entry
// curToken is the colon. A multi-line suite ends with curToken on the
// DEDENT, a single-line suite on its trailing NEWLINE.
func (p *Parser) parseBlock() []ast.Statement {
	var stmts []ast.Statement

	if p.peekTokenIs(token.NEWLINE) {
		p.nextToken() // consume NEWLINE
		if !p.peekTokenIs(token.INDENT) {
			p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
				diagnostics.ErrP003,
				p.peekToken,
				"expected an indented block",
			))
			return stmts
		}
		p.nextToken()
		p.nextToken()
		for !p.curTokenIs(token.DEDENT) && !p.curTokenIs(token.EOF) {
			if p.curTokenIs(token.NEWLINE) || p.curTokenIs(token.SEMICOLON) {
				p.nextToken()
				continue
			}
			stmt := p.parseStatement()
			if stmt != nil {
				stmts = append(stmts, stmt)
			} else {
				p.skipLine()
			}
			p.nextToken()
		}
		return stmts
	}

	// Single-line suite: if cond: stmt; stmt
	for {
		p.nextToken()
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		} else {
			p.skipLine()
			return stmts
		}
		if !p.curTokenIs(token.SEMICOLON) {
			return stmts
		}
		if p.peekTokenIs(token.NEWLINE) {
			p.nextToken()
			return stmts
		}
	}
}

func (p *Parser) parseDecorated() ast.Statement {
	var decorators []ast.Expression
	for p.curTokenIs(token.AT) {
		p.nextToken()
		dec := p.parseExpression(LOWEST)
		if dec == nil {
			return nil
		}
		decorators = append(decorators, dec)
		if !p.expectPeek(token.NEWLINE) {
			return nil
		}
		p.nextToken()
		for p.curTokenIs(token.NEWLINE) {
			p.nextToken()
		}
	}

	switch p.curToken.Type {
	case token.DEF:
		return p.parseFunctionDef(decorators)
	case token.ASYNC:
		if p.peekTokenIs(token.DEF) {
			p.nextToken()
			return p.parseFunctionDef(decorators)
		}
	case token.CLASS:
		return p.parseClassDef(decorators)
	}
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
		diagnostics.ErrP001,
		p.curToken,
		"expected function or class definition after decorator",
	))
	return nil
}

func (p *Parser) parseClassDef(decorators []ast.Expression) ast.Statement {
	cd := &ast.ClassDef{Token: p.curToken, Decorators: decorators}

	if !p.expectPeek(token.NAME) {
		return nil
	}
	cd.Name = p.curToken.Lexeme

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		for !p.peekTokenIs(token.RPAREN) {
			p.nextToken()
			if p.curTokenIs(token.NAME) && p.peekTokenIs(token.ASSIGN) {
				kw := &ast.Keyword{Token: p.curToken, Name: p.curToken.Lexeme}
				p.nextToken()
				p.nextToken()
				kw.Value = p.parseExpression(LOWEST)
				cd.Keywords = append(cd.Keywords, kw)
			} else {
				base := p.parseExpression(LOWEST)
				if base == nil {
					return nil
				}
				cd.Bases = append(cd.Bases, base)
			}
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
			}
		}
		p.nextToken() // consume RPAREN
	}

	if !p.expectPeek(token.COLON) {
		return nil
	}
	cd.Body = p.parseBlock()
	return cd
}

func (p *Parser) parseFunctionDef(decorators []ast.Expression) ast.Statement {
	fd := &ast.FunctionDef{Token: p.curToken, Decorators: decorators}

	if !p.expectPeek(token.NAME) {
		return nil
	}
	fd.Name = p.curToken.Lexeme

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	fd.Params = p.parseParams()

	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		fd.Returns = p.parseExpression(LOWEST)
	}

	if !p.expectPeek(token.COLON) {
		return nil
	}
	fd.Body = p.parseBlock()
	return fd
}

// parseParams parses a parameter list. On entry curToken is '(';
// on exit it is ')'.
func (p *Parser) parseParams() []*ast.Param {
	var params []*ast.Param

	for !p.peekTokenIs(token.RPAREN) && !p.peekTokenIs(token.EOF) {
		p.nextToken()

		star := ""
		switch p.curToken.Type {
		case token.ASTERISK:
			star = "*"
			if !p.peekTokenIs(token.NAME) {
				// Bare '*' keyword-only separator.
				if p.peekTokenIs(token.COMMA) {
					p.nextToken()
				}
				continue
			}
			p.nextToken()
		case token.POWER:
			star = "**"
			if !p.expectPeek(token.NAME) {
				return params
			}
		case token.SLASH:
			// Positional-only marker.
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
			}
			continue
		}

		if !p.curTokenIs(token.NAME) {
			p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
				diagnostics.ErrP001,
				p.curToken,
				"expected parameter name, got "+describeToken(p.curToken),
			))
			return params
		}

		param := &ast.Param{Token: p.curToken, Name: p.curToken.Lexeme, Star: star}
		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.nextToken()
			param.Annotation = p.parseExpression(LOWEST)
		}
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			param.Default = p.parseExpression(LOWEST)
		}
		params = append(params, param)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}

	p.nextToken() // consume RPAREN
	return params
}

func (p *Parser) parseReturnStatement() ast.Statement {
	rs := &ast.ReturnStatement{Token: p.curToken}
	if p.peekTokenIs(token.NEWLINE) || p.peekTokenIs(token.SEMICOLON) || p.peekTokenIs(token.DEDENT) || p.peekTokenIs(token.EOF) {
		p.endSimpleStatement()
		return rs
	}
	p.nextToken()
	rs.Value = p.parseExpressionList()
	p.endSimpleStatement()
	return rs
}

func (p *Parser) parseImportStatement() ast.Statement {
	is := &ast.ImportStatement{Token: p.curToken}

	for {
		if !p.expectPeek(token.NAME) {
			return nil
		}
		alias := ast.ImportAlias{Name: p.parseDottedName()}
		if p.peekTokenIs(token.AS) {
			p.nextToken()
			if !p.expectPeek(token.NAME) {
				return nil
			}
			alias.Alias = p.curToken.Lexeme
		}
		is.Names = append(is.Names, alias)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	p.endSimpleStatement()
	return is
}

// parseDottedName reads a.b.c starting from the NAME in curToken.
func (p *Parser) parseDottedName() string {
	var sb strings.Builder
	sb.WriteString(p.curToken.Lexeme)
	for p.peekTokenIs(token.DOT) {
		p.nextToken()
		if !p.expectPeek(token.NAME) {
			break
		}
		sb.WriteString(".")
		sb.WriteString(p.curToken.Lexeme)
	}
	return sb.String()
}

func (p *Parser) parseFromImportStatement() ast.Statement {
	fis := &ast.FromImportStatement{Token: p.curToken}

	var module strings.Builder
	for p.peekTokenIs(token.DOT) {
		p.nextToken()
		module.WriteString(".")
	}
	if p.peekTokenIs(token.NAME) {
		p.nextToken()
		module.WriteString(p.parseDottedName())
	}
	fis.Module = module.String()

	if !p.expectPeek(token.IMPORT) {
		return nil
	}

	if p.peekTokenIs(token.ASTERISK) {
		p.nextToken()
		fis.Star = true
		p.endSimpleStatement()
		return fis
	}

	parenthesized := false
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		parenthesized = true
	}

	for {
		if parenthesized && p.peekTokenIs(token.RPAREN) {
			break
		}
		if !p.expectPeek(token.NAME) {
			return nil
		}
		alias := ast.ImportAlias{Name: p.curToken.Lexeme}
		if p.peekTokenIs(token.AS) {
			p.nextToken()
			if !p.expectPeek(token.NAME) {
				return nil
			}
			alias.Alias = p.curToken.Lexeme
		}
		fis.Names = append(fis.Names, alias)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if parenthesized && !p.expectPeek(token.RPAREN) {
		return nil
	}
	p.endSimpleStatement()
	return fis
}

func (p *Parser) parseIfStatement() ast.Statement {
	is := &ast.IfStatement{Token: p.curToken}

	p.nextToken()
	is.Cond = p.parseExpression(LOWEST)
	if is.Cond == nil {
		return nil
	}
	if !p.expectPeek(token.COLON) {
		return nil
	}
	is.Body = p.parseBlock()

	if p.peekTokenIs(token.ELIF) {
		p.nextToken()
		arm := p.parseIfStatement()
		if arm != nil {
			is.OrElse = []ast.Statement{arm}
		}
	} else if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		if !p.expectPeek(token.COLON) {
			return is
		}
		is.OrElse = p.parseBlock()
	}
	return is
}

func (p *Parser) parseForStatement() ast.Statement {
	fs := &ast.ForStatement{Token: p.curToken}

	p.nextToken()
	fs.Target = p.parseTargetList()
	if fs.Target == nil {
		return nil
	}
	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken()
	fs.Iter = p.parseExpressionList()
	if !p.expectPeek(token.COLON) {
		return nil
	}
	fs.Body = p.parseBlock()

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		if !p.expectPeek(token.COLON) {
			return fs
		}
		fs.OrElse = p.parseBlock()
	}
	return fs
}

// parseTargetList parses a for-loop target: a name or a tuple of names,
// stopping before 'in'.
func (p *Parser) parseTargetList() ast.Expression {
	first := p.parseExpression(COMPARISON)
	if first == nil {
		return nil
	}
	if !p.peekTokenIs(token.COMMA) {
		return first
	}
	tuple := &ast.TupleLiteral{Token: first.GetToken(), Elements: []ast.Expression{first}}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if p.peekTokenIs(token.IN) {
			break
		}
		p.nextToken()
		el := p.parseExpression(COMPARISON)
		if el == nil {
			return tuple
		}
		tuple.Elements = append(tuple.Elements, el)
	}
	return tuple
}

func (p *Parser) parseWhileStatement() ast.Statement {
	ws := &ast.WhileStatement{Token: p.curToken}

	p.nextToken()
	ws.Cond = p.parseExpression(LOWEST)
	if ws.Cond == nil {
		return nil
	}
	if !p.expectPeek(token.COLON) {
		return nil
	}
	ws.Body = p.parseBlock()

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		if !p.expectPeek(token.COLON) {
			return ws
		}
		ws.OrElse = p.parseBlock()
	}
	return ws
}

func (p *Parser) parseWithStatement() ast.Statement {
	ws := &ast.WithStatement{Token: p.curToken}

	for {
		p.nextToken()
		item := ast.WithItem{Context: p.parseExpression(LOWEST)}
		if item.Context == nil {
			return nil
		}
		if p.peekTokenIs(token.AS) {
			p.nextToken()
			p.nextToken()
			item.As = p.parseExpression(LOWEST)
		}
		ws.Items = append(ws.Items, item)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(token.COLON) {
		return nil
	}
	ws.Body = p.parseBlock()
	return ws
}

func (p *Parser) parseTryStatement() ast.Statement {
	ts := &ast.TryStatement{Token: p.curToken}

	if !p.expectPeek(token.COLON) {
		return nil
	}
	ts.Body = p.parseBlock()

	for p.peekTokenIs(token.EXCEPT) {
		p.nextToken()
		handler := &ast.ExceptHandler{Token: p.curToken}
		if !p.peekTokenIs(token.COLON) {
			p.nextToken()
			handler.Type = p.parseExpression(LOWEST)
			if p.peekTokenIs(token.AS) {
				p.nextToken()
				if !p.expectPeek(token.NAME) {
					return ts
				}
				handler.Name = p.curToken.Lexeme
			}
		}
		if !p.expectPeek(token.COLON) {
			return ts
		}
		handler.Body = p.parseBlock()
		ts.Handlers = append(ts.Handlers, handler)
	}

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		if !p.expectPeek(token.COLON) {
			return ts
		}
		ts.OrElse = p.parseBlock()
	}
	if p.peekTokenIs(token.FINALLY) {
		p.nextToken()
		if !p.expectPeek(token.COLON) {
			return ts
		}
		ts.Final = p.parseBlock()
	}
	return ts
}

func (p *Parser) parseRaiseStatement() ast.Statement {
	rs := &ast.RaiseStatement{Token: p.curToken}
	if p.peekTokenIs(token.NEWLINE) || p.peekTokenIs(token.SEMICOLON) || p.peekTokenIs(token.DEDENT) || p.peekTokenIs(token.EOF) {
		p.endSimpleStatement()
		return rs
	}
	p.nextToken()
	rs.Exc = p.parseExpression(LOWEST)
	if p.peekTokenIs(token.FROM) {
		p.nextToken()
		p.nextToken()
		rs.From = p.parseExpression(LOWEST)
	}
	p.endSimpleStatement()
	return rs
}

func (p *Parser) parseAssertStatement() ast.Statement {
	as := &ast.AssertStatement{Token: p.curToken}
	p.nextToken()
	as.Test = p.parseExpression(LOWEST)
	if p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		as.Msg = p.parseExpression(LOWEST)
	}
	p.endSimpleStatement()
	return as
}

func (p *Parser) parseDeleteStatement() ast.Statement {
	ds := &ast.DeleteStatement{Token: p.curToken}
	for {
		p.nextToken()
		target := p.parseExpression(LOWEST)
		if target == nil {
			return nil
		}
		ds.Targets = append(ds.Targets, target)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	p.endSimpleStatement()
	return ds
}

func (p *Parser) parseScopeStatement() ast.Statement {
	ss := &ast.ScopeStatement{Token: p.curToken}
	for {
		if !p.expectPeek(token.NAME) {
			return nil
		}
		ss.Names = append(ss.Names, p.curToken.Lexeme)
		if !p.peekTokenIs(token.COMMA) {
			break
		}
		p.nextToken()
	}
	p.endSimpleStatement()
	return ss
}

var augAssignOps = map[token.TokenType]string{
	token.PLUS_ASSIGN:     "+=",
	token.MINUS_ASSIGN:    "-=",
	token.ASTERISK_ASSIGN: "*=",
	token.SLASH_ASSIGN:    "/=",
	token.PERCENT_ASSIGN:  "%=",
	token.POWER_ASSIGN:    "**=",
}

// parseExpressionOrAssignment handles whatever is left: plain expression
// statements, assignments (possibly chained), annotated assignments and
// augmented assignments.
func (p *Parser) parseExpressionOrAssignment() ast.Statement {
	firstTok := p.curToken
	first := p.parseExpressionList()
	if first == nil {
		return nil
	}

	if p.peekTokenIs(token.COLON) {
		aa := &ast.AnnAssign{Token: firstTok, Target: first}
		p.nextToken()
		p.nextToken()
		aa.Annotation = p.parseExpression(LOWEST)
		if aa.Annotation == nil {
			return nil
		}
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			aa.Value = p.parseExpressionList()
		}
		p.endSimpleStatement()
		return aa
	}

	if p.peekTokenIs(token.ASSIGN) {
		a := &ast.Assign{Token: firstTok, Targets: []ast.Expression{first}}
		for p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			value := p.parseExpressionList()
			if value == nil {
				return nil
			}
			if p.peekTokenIs(token.ASSIGN) {
				a.Targets = append(a.Targets, value)
				continue
			}
			a.Value = value
		}
		p.endSimpleStatement()
		return a
	}

	if op, ok := augAssignOps[p.peekToken.Type]; ok {
		aa := &ast.AugAssign{Target: first, Op: op}
		p.nextToken()
		aa.Token = p.curToken
		p.nextToken()
		aa.Value = p.parseExpressionList()
		p.endSimpleStatement()
		return aa
	}

	p.endSimpleStatement()
	return &ast.ExpressionStatement{Token: firstTok, Expression: first}
}

// parseExpressionList parses expr {',' expr}, yielding a TupleLiteral when
// more than one element is present.
func (p *Parser) parseExpressionList() ast.Expression {
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}
	if !p.peekTokenIs(token.COMMA) {
		return first
	}

	tuple := &ast.TupleLiteral{Token: first.GetToken(), Elements: []ast.Expression{first}}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if !p.isExpressionStart(p.peekToken.Type) {
			break
		}
		p.nextToken()
		el := p.parseExpression(LOWEST)
		if el == nil {
			break
		}
		tuple.Elements = append(tuple.Elements, el)
	}
	return tuple
}

func (p *Parser) isExpressionStart(t token.TokenType) bool {
	if _, ok := p.prefixParseFns[t]; ok {
		return true
	}
	return false
}
