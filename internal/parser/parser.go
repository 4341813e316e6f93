package parser

import (
	"fmt"

	"github.com/typedframes/framecheck/internal/ast"
	"github.com/typedframes/framecheck/internal/diagnostics"
	"github.com/typedframes/framecheck/internal/pipeline"
	"github.com/typedframes/framecheck/internal/token"
)

// MaxRecursionDepth bounds expression nesting so pathological input cannot
// blow the stack.
const MaxRecursionDepth = 500

const (
	_ int = iota
	LOWEST
	TERNARY    // x if c else y
	OR         // or
	AND        // and
	NOT_PREC   // not x
	COMPARISON // == != < > <= >= in is
	BITOR      // |
	BITXOR     // ^
	BITAND     // &
	SHIFT      // << >>
	SUM        // + -
	PRODUCT    // * / // % @
	UNARY      // -x ~x
	POWER      // **
	CALL       // f(x) x[i] x.y
)

var precedences = map[token.TokenType]int{
	token.WALRUS:      TERNARY,
	token.IF:          TERNARY,
	token.OR:          OR,
	token.AND:         AND,
	token.EQ:          COMPARISON,
	token.NOT_EQ:      COMPARISON,
	token.LT:          COMPARISON,
	token.GT:          COMPARISON,
	token.LT_EQ:       COMPARISON,
	token.GT_EQ:       COMPARISON,
	token.IN:          COMPARISON,
	token.IS:          COMPARISON,
	token.NOT:         COMPARISON, // a not in b
	token.PIPE:        BITOR,
	token.CARET:       BITXOR,
	token.AMPERSAND:   BITAND,
	token.SHL:         SHIFT,
	token.SHR:         SHIFT,
	token.PLUS:        SUM,
	token.MINUS:       SUM,
	token.ASTERISK:    PRODUCT,
	token.SLASH:       PRODUCT,
	token.DOUBLESLASH: PRODUCT,
	token.PERCENT:     PRODUCT,
	token.AT:          PRODUCT,
	token.POWER:       POWER,
	token.LPAREN:      CALL,
	token.LBRACKET:    CALL,
	token.DOT:         CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	tokens    []token.Token
	pos       int
	curToken  token.Token
	peekToken token.Token

	ctx   *pipeline.PipelineContext
	depth int

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(tokens []token.Token, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{tokens: tokens, ctx: ctx}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.NAME:     p.parseName,
		token.INT:      p.parseIntegerLiteral,
		token.FLOAT:    p.parseFloatLiteral,
		token.STRING:   p.parseStringLiteral,
		token.TRUE:     p.parseBooleanLiteral,
		token.FALSE:    p.parseBooleanLiteral,
		token.NONE:     p.parseNoneLiteral,
		token.NOT:      p.parsePrefixExpression,
		token.MINUS:    p.parsePrefixExpression,
		token.PLUS:     p.parsePrefixExpression,
		token.TILDE:    p.parsePrefixExpression,
		token.ASTERISK: p.parseStarExpression,
		token.POWER:    p.parseStarExpression,
		token.LPAREN:   p.parseGroupedExpression,
		token.LBRACKET: p.parseListLiteral,
		token.LBRACE:   p.parseBraceLiteral,
		token.LAMBDA:   p.parseLambdaLiteral,
		token.YIELD:    p.parseYieldExpression,
		token.AWAIT:    p.parsePrefixExpression,
	}

	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.IF:          p.parseConditionalExpression,
		token.WALRUS:      p.parseInfixExpression,
		token.OR:          p.parseInfixExpression,
		token.AND:         p.parseInfixExpression,
		token.EQ:          p.parseInfixExpression,
		token.NOT_EQ:      p.parseInfixExpression,
		token.LT:          p.parseInfixExpression,
		token.GT:          p.parseInfixExpression,
		token.LT_EQ:       p.parseInfixExpression,
		token.GT_EQ:       p.parseInfixExpression,
		token.IN:          p.parseInfixExpression,
		token.IS:          p.parseIsExpression,
		token.NOT:         p.parseNotInExpression,
		token.PIPE:        p.parseInfixExpression,
		token.CARET:       p.parseInfixExpression,
		token.AMPERSAND:   p.parseInfixExpression,
		token.SHL:         p.parseInfixExpression,
		token.SHR:         p.parseInfixExpression,
		token.PLUS:        p.parseInfixExpression,
		token.MINUS:       p.parseInfixExpression,
		token.ASTERISK:    p.parseInfixExpression,
		token.SLASH:       p.parseInfixExpression,
		token.DOUBLESLASH: p.parseInfixExpression,
		token.PERCENT:     p.parseInfixExpression,
		token.AT:          p.parseInfixExpression,
		token.POWER:       p.parseInfixExpression,
		token.LPAREN:      p.parseCallExpression,
		token.LBRACKET:    p.parseSubscriptExpression,
		token.DOT:         p.parseAttributeExpression,
	}

	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	} else {
		p.peekToken = token.Token{Type: token.EOF, Line: p.curToken.Line, Column: p.curToken.Column}
	}
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.TokenType) {
	p.ctx.Errors = append(p.ctx.Errors, diagnostics.NewError(
		diagnostics.ErrP002,
		p.peekToken,
		fmt.Sprintf("expected %s, got %s", t, describeToken(p.peekToken)),
	))
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func describeToken(tok token.Token) string {
	switch tok.Type {
	case token.NEWLINE:
		return "end of line"
	case token.INDENT:
		return "indent"
	case token.DEDENT:
		return "dedent"
	case token.EOF:
		return "end of file"
	case token.NAME, token.INT, token.FLOAT, token.STRING:
		return fmt.Sprintf("%s %q", tok.Type, tok.Lexeme)
	}
	return fmt.Sprintf("%q", string(tok.Type))
}

// ParseProgram parses the whole token stream into a Program, accumulating
// any errors on the pipeline context.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case token.NEWLINE, token.SEMICOLON, token.INDENT, token.DEDENT:
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		} else {
			p.skipLine()
		}
		p.nextToken()
	}

	return program
}

// skipLine recovers from a parse error by discarding the rest of the
// logical line.
func (p *Parser) skipLine() {
	for !p.curTokenIs(token.NEWLINE) && !p.curTokenIs(token.EOF) {
		p.nextToken()
	}
}
