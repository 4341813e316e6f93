package parser

import (
	"strconv"
	"strings"

	"github.com/typedframes/framecheck/internal/ast"
	"github.com/typedframes/framecheck/internal/diagnostics"
	"github.com/typedframes/framecheck/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxRecursionDepth {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP005,
			p.curToken,
			"expression nesting too deep",
		))
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError()
		return nil
	}
	leftExp := prefix()

	for leftExp != nil && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
	}

	return leftExp
}

func (p *Parser) noPrefixParseFnError() {
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
		diagnostics.ErrP001,
		p.curToken,
		"unexpected "+describeToken(p.curToken),
	))
}

func (p *Parser) parseName() ast.Expression {
	return &ast.Name{Token: p.curToken, Value: p.curToken.Lexeme}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, err := strconv.ParseInt(p.curToken.Literal, 0, 64)
	if err != nil {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP004,
			p.curToken,
			"could not parse "+strconv.Quote(p.curToken.Lexeme)+" as integer",
		))
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
			diagnostics.ErrP004,
			p.curToken,
			"could not parse "+strconv.Quote(p.curToken.Lexeme)+" as float",
		))
		return nil
	}
	return &ast.FloatLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	prefix := ""
	if i := strings.IndexAny(p.curToken.Lexeme, `"'`); i > 0 {
		prefix = strings.ToLower(p.curToken.Lexeme[:i])
	}
	sl := &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal, Prefix: prefix}

	// Adjacent string literals concatenate implicitly.
	for p.peekTokenIs(token.STRING) {
		p.nextToken()
		sl.Value += p.curToken.Literal
	}
	return sl
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNoneLiteral() ast.Expression {
	return &ast.NoneLiteral{Token: p.curToken}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	pe := &ast.PrefixExpression{Token: p.curToken, Operator: p.curToken.Lexeme}
	prec := UNARY
	if p.curTokenIs(token.NOT) {
		prec = NOT_PREC
	}
	p.nextToken()
	pe.Right = p.parseExpression(prec)
	return pe
}

func (p *Parser) parseYieldExpression() ast.Expression {
	ye := &ast.YieldExpression{Token: p.curToken}
	if p.peekTokenIs(token.FROM) {
		ye.From = true
		p.nextToken()
		p.nextToken()
		ye.Value = p.parseExpression(LOWEST)
		return ye
	}
	// A bare yield ends at the statement or enclosing-expression boundary.
	if !p.isExpressionStart(p.peekToken.Type) {
		return ye
	}
	p.nextToken()
	ye.Value = p.parseExpression(LOWEST)
	return ye
}

func (p *Parser) parseStarExpression() ast.Expression {
	se := &ast.StarExpression{Token: p.curToken, Op: p.curToken.Lexeme}
	p.nextToken()
	se.Value = p.parseExpression(UNARY)
	return se
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	ie := &ast.InfixExpression{Token: p.curToken, Left: left, Operator: p.curToken.Lexeme}
	precedence := p.curPrecedence()
	p.nextToken()
	ie.Right = p.parseExpression(precedence)
	return ie
}

// parseIsExpression handles 'is' and 'is not'.
func (p *Parser) parseIsExpression(left ast.Expression) ast.Expression {
	ie := &ast.InfixExpression{Token: p.curToken, Left: left, Operator: "is"}
	if p.peekTokenIs(token.NOT) {
		p.nextToken()
		ie.Operator = "is not"
	}
	p.nextToken()
	ie.Right = p.parseExpression(COMPARISON)
	return ie
}

// parseNotInExpression handles 'not in' in infix position.
func (p *Parser) parseNotInExpression(left ast.Expression) ast.Expression {
	ie := &ast.InfixExpression{Token: p.curToken, Left: left, Operator: "not in"}
	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken()
	ie.Right = p.parseExpression(COMPARISON)
	return ie
}

func (p *Parser) parseConditionalExpression(body ast.Expression) ast.Expression {
	ce := &ast.ConditionalExpression{Token: p.curToken, Body: body}
	p.nextToken()
	ce.Cond = p.parseExpression(TERNARY)
	if !p.expectPeek(token.ELSE) {
		return nil
	}
	p.nextToken()
	ce.OrElse = p.parseExpression(LOWEST)
	return ce
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	tok := p.curToken

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return &ast.TupleLiteral{Token: tok}
	}

	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}

	if p.peekTokenIs(token.FOR) {
		// Generator expression: keep the element, skip the clauses.
		p.skipComprehension()
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return first
	}

	if p.peekTokenIs(token.COMMA) {
		tuple := &ast.TupleLiteral{Token: tok, Elements: []ast.Expression{first}}
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			if p.peekTokenIs(token.RPAREN) {
				break
			}
			p.nextToken()
			el := p.parseExpression(LOWEST)
			if el == nil {
				return nil
			}
			tuple.Elements = append(tuple.Elements, el)
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return tuple
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return first
}

func (p *Parser) parseListLiteral() ast.Expression {
	ll := &ast.ListLiteral{Token: p.curToken}

	for !p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		el := p.parseExpression(LOWEST)
		if el == nil {
			return nil
		}
		ll.Elements = append(ll.Elements, el)
		if p.peekTokenIs(token.FOR) {
			// List comprehension: keep the element, skip the clauses.
			p.skipComprehension()
			break
		}
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		} else {
			break
		}
	}

	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return ll
}

// parseBraceLiteral parses a dict or set display.
func (p *Parser) parseBraceLiteral() ast.Expression {
	tok := p.curToken

	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return &ast.DictLiteral{Token: tok}
	}

	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}

	if p.peekTokenIs(token.COLON) {
		dl := &ast.DictLiteral{Token: tok}
		dl.Keys = append(dl.Keys, first)
		p.nextToken()
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		dl.Values = append(dl.Values, value)

		if p.peekTokenIs(token.FOR) {
			p.skipComprehension()
			if !p.expectPeek(token.RBRACE) {
				return nil
			}
			return dl
		}

		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			if p.peekTokenIs(token.RBRACE) {
				break
			}
			p.nextToken()
			key := p.parseExpression(LOWEST)
			if key == nil {
				return nil
			}
			if !p.expectPeek(token.COLON) {
				return nil
			}
			p.nextToken()
			value := p.parseExpression(LOWEST)
			if value == nil {
				return nil
			}
			dl.Keys = append(dl.Keys, key)
			dl.Values = append(dl.Values, value)
		}
		if !p.expectPeek(token.RBRACE) {
			return nil
		}
		return dl
	}

	sl := &ast.SetLiteral{Token: tok, Elements: []ast.Expression{first}}
	if p.peekTokenIs(token.FOR) {
		p.skipComprehension()
		if !p.expectPeek(token.RBRACE) {
			return nil
		}
		return sl
	}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if p.peekTokenIs(token.RBRACE) {
			break
		}
		p.nextToken()
		el := p.parseExpression(LOWEST)
		if el == nil {
			return nil
		}
		sl.Elements = append(sl.Elements, el)
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return sl
}

// skipComprehension discards the for/if clauses of a comprehension up to
// (but not including) the closing bracket of the enclosing display.
func (p *Parser) skipComprehension() {
	depth := 0
	for {
		switch p.peekToken.Type {
		case token.LPAREN, token.LBRACKET, token.LBRACE:
			depth++
		case token.RPAREN, token.RBRACKET, token.RBRACE:
			if depth == 0 {
				return
			}
			depth--
		case token.EOF:
			return
		}
		p.nextToken()
	}
}

func (p *Parser) parseLambdaLiteral() ast.Expression {
	ll := &ast.LambdaLiteral{Token: p.curToken}

	for !p.peekTokenIs(token.COLON) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		star := ""
		if p.curTokenIs(token.ASTERISK) {
			star = "*"
			p.nextToken()
		} else if p.curTokenIs(token.POWER) {
			star = "**"
			p.nextToken()
		}
		if !p.curTokenIs(token.NAME) {
			p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
				diagnostics.ErrP001,
				p.curToken,
				"expected parameter name, got "+describeToken(p.curToken),
			))
			return nil
		}
		param := &ast.Param{Token: p.curToken, Name: p.curToken.Lexeme, Star: star}
		if p.peekTokenIs(token.ASSIGN) {
			p.nextToken()
			p.nextToken()
			param.Default = p.parseExpression(LOWEST)
		}
		ll.Params = append(ll.Params, param)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}

	if !p.expectPeek(token.COLON) {
		return nil
	}
	p.nextToken()
	ll.Body = p.parseExpression(LOWEST)
	return ll
}

func (p *Parser) parseCallExpression(fn ast.Expression) ast.Expression {
	call := &ast.Call{Token: p.curToken, Func: fn}

	for !p.peekTokenIs(token.RPAREN) && !p.peekTokenIs(token.EOF) {
		p.nextToken()

		if p.curTokenIs(token.NAME) && p.peekTokenIs(token.ASSIGN) {
			kw := &ast.Keyword{Token: p.curToken, Name: p.curToken.Lexeme}
			p.nextToken()
			p.nextToken()
			kw.Value = p.parseExpression(LOWEST)
			if kw.Value == nil {
				return nil
			}
			call.Keywords = append(call.Keywords, kw)
		} else {
			arg := p.parseExpression(LOWEST)
			if arg == nil {
				return nil
			}
			if p.peekTokenIs(token.FOR) {
				// Generator argument: keep the element expression.
				p.skipComprehension()
			}
			call.Args = append(call.Args, arg)
		}

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		} else {
			break
		}
	}

	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return call
}

func (p *Parser) parseAttributeExpression(value ast.Expression) ast.Expression {
	if !p.expectPeek(token.NAME) {
		return nil
	}
	return &ast.Attribute{Token: p.curToken, Value: value, Attr: p.curToken.Lexeme}
}

func (p *Parser) parseSubscriptExpression(value ast.Expression) ast.Expression {
	sub := &ast.Subscript{Token: p.curToken, Value: value}

	p.nextToken()
	first := p.parseSliceItem()
	if first == nil {
		return nil
	}

	if p.peekTokenIs(token.COMMA) {
		tuple := &ast.TupleLiteral{Token: first.GetToken(), Elements: []ast.Expression{first}}
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			if p.peekTokenIs(token.RBRACKET) {
				break
			}
			p.nextToken()
			el := p.parseSliceItem()
			if el == nil {
				return nil
			}
			tuple.Elements = append(tuple.Elements, el)
		}
		sub.Index = tuple
	} else {
		sub.Index = first
	}

	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return sub
}

// parseSliceItem parses one subscript element, which may be a plain
// expression or a lower:upper:step slice with any part omitted.
func (p *Parser) parseSliceItem() ast.Expression {
	var lower ast.Expression

	if !p.curTokenIs(token.COLON) {
		lower = p.parseExpression(LOWEST)
		if lower == nil {
			return nil
		}
		if !p.peekTokenIs(token.COLON) {
			return lower
		}
		p.nextToken()
	}

	se := &ast.SliceExpression{Token: p.curToken, Lower: lower}
	if p.isExpressionStart(p.peekToken.Type) {
		p.nextToken()
		se.Upper = p.parseExpression(LOWEST)
	}
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		if p.isExpressionStart(p.peekToken.Type) {
			p.nextToken()
			se.Step = p.parseExpression(LOWEST)
		}
	}
	return se
}
