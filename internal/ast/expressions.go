package ast

import (
	"github.com/typedframes/framecheck/internal/token"
)

// Name is a bare identifier reference.
type Name struct {
	Token token.Token
	Value string
}

func (n *Name) expressionNode()      {}
func (n *Name) TokenLiteral() string { return n.Token.Lexeme }
func (n *Name) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Token
}

// Attribute represents value.attr access.
type Attribute struct {
	Token token.Token // The attribute name token
	Value Expression
	Attr  string
}

func (a *Attribute) expressionNode()      {}
func (a *Attribute) TokenLiteral() string { return a.Token.Lexeme }
func (a *Attribute) GetToken() token.Token {
	if a == nil {
		return token.Token{}
	}
	return a.Token
}

// Subscript represents value[index].
type Subscript struct {
	Token token.Token // The '[' token
	Value Expression
	Index Expression
}

func (s *Subscript) expressionNode()      {}
func (s *Subscript) TokenLiteral() string { return s.Token.Lexeme }
func (s *Subscript) GetToken() token.Token {
	if s == nil {
		return token.Token{}
	}
	return s.Token
}

// SliceExpression represents lower:upper:step inside a subscript.
type SliceExpression struct {
	Token token.Token // The ':' token
	Lower Expression
	Upper Expression
	Step  Expression
}

func (se *SliceExpression) expressionNode()      {}
func (se *SliceExpression) TokenLiteral() string { return se.Token.Lexeme }
func (se *SliceExpression) GetToken() token.Token {
	if se == nil {
		return token.Token{}
	}
	return se.Token
}

// Keyword is a name=value argument in a call (name empty for **kwargs).
type Keyword struct {
	Token token.Token
	Name  string
	Value Expression
}

// Call represents func(args, kw=value).
type Call struct {
	Token    token.Token // The '(' token
	Func     Expression
	Args     []Expression
	Keywords []*Keyword
}

func (c *Call) expressionNode()      {}
func (c *Call) TokenLiteral() string { return c.Token.Lexeme }
func (c *Call) GetToken() token.Token {
	if c == nil {
		return token.Token{}
	}
	return c.Token
}

// KeywordArg returns the value of the named keyword argument, or nil.
func (c *Call) KeywordArg(name string) Expression {
	for _, kw := range c.Keywords {
		if kw.Name == name {
			return kw.Value
		}
	}
	return nil
}

// StringLiteral holds a string with quotes stripped and prefix recorded.
type StringLiteral struct {
	Token  token.Token
	Value  string
	Prefix string // "", "f", "r", "b", ...
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token {
	if sl == nil {
		return token.Token{}
	}
	return sl.Token
}

// IntegerLiteral holds an integer literal.
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token {
	if il == nil {
		return token.Token{}
	}
	return il.Token
}

// FloatLiteral holds a floating point literal.
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()      {}
func (fl *FloatLiteral) TokenLiteral() string { return fl.Token.Lexeme }
func (fl *FloatLiteral) GetToken() token.Token {
	if fl == nil {
		return token.Token{}
	}
	return fl.Token
}

// BooleanLiteral holds True or False.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Lexeme }
func (bl *BooleanLiteral) GetToken() token.Token {
	if bl == nil {
		return token.Token{}
	}
	return bl.Token
}

// NoneLiteral holds None.
type NoneLiteral struct {
	Token token.Token
}

func (nl *NoneLiteral) expressionNode()      {}
func (nl *NoneLiteral) TokenLiteral() string { return nl.Token.Lexeme }
func (nl *NoneLiteral) GetToken() token.Token {
	if nl == nil {
		return token.Token{}
	}
	return nl.Token
}

// ListLiteral represents [a, b, c].
type ListLiteral struct {
	Token    token.Token // The '[' token
	Elements []Expression
}

func (ll *ListLiteral) expressionNode()      {}
func (ll *ListLiteral) TokenLiteral() string { return ll.Token.Lexeme }
func (ll *ListLiteral) GetToken() token.Token {
	if ll == nil {
		return token.Token{}
	}
	return ll.Token
}

// TupleLiteral represents (a, b) or a bare a, b expression list.
type TupleLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (tl *TupleLiteral) expressionNode()      {}
func (tl *TupleLiteral) TokenLiteral() string { return tl.Token.Lexeme }
func (tl *TupleLiteral) GetToken() token.Token {
	if tl == nil {
		return token.Token{}
	}
	return tl.Token
}

// DictLiteral represents {k: v, ...}.
type DictLiteral struct {
	Token  token.Token // The '{' token
	Keys   []Expression
	Values []Expression
}

func (dl *DictLiteral) expressionNode()      {}
func (dl *DictLiteral) TokenLiteral() string { return dl.Token.Lexeme }
func (dl *DictLiteral) GetToken() token.Token {
	if dl == nil {
		return token.Token{}
	}
	return dl.Token
}

// SetLiteral represents {a, b, c}.
type SetLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (sl *SetLiteral) expressionNode()      {}
func (sl *SetLiteral) TokenLiteral() string { return sl.Token.Lexeme }
func (sl *SetLiteral) GetToken() token.Token {
	if sl == nil {
		return token.Token{}
	}
	return sl.Token
}

// PrefixExpression represents a unary operation such as -x or not x.
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()      {}
func (pe *PrefixExpression) TokenLiteral() string { return pe.Token.Lexeme }
func (pe *PrefixExpression) GetToken() token.Token {
	if pe == nil {
		return token.Token{}
	}
	return pe.Token
}

// InfixExpression represents a binary operation such as a + b or a == b.
type InfixExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) expressionNode()      {}
func (ie *InfixExpression) TokenLiteral() string { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token {
	if ie == nil {
		return token.Token{}
	}
	return ie.Token
}

// ConditionalExpression represents body if cond else orelse.
type ConditionalExpression struct {
	Token  token.Token // The 'if' token
	Body   Expression
	Cond   Expression
	OrElse Expression
}

func (ce *ConditionalExpression) expressionNode()      {}
func (ce *ConditionalExpression) TokenLiteral() string { return ce.Token.Lexeme }
func (ce *ConditionalExpression) GetToken() token.Token {
	if ce == nil {
		return token.Token{}
	}
	return ce.Token
}

// LambdaLiteral represents lambda params: body.
type LambdaLiteral struct {
	Token  token.Token
	Params []*Param
	Body   Expression
}

func (ll *LambdaLiteral) expressionNode()      {}
func (ll *LambdaLiteral) TokenLiteral() string { return ll.Token.Lexeme }
func (ll *LambdaLiteral) GetToken() token.Token {
	if ll == nil {
		return token.Token{}
	}
	return ll.Token
}

// StarExpression represents *args or **kwargs in a call or target list.
type StarExpression struct {
	Token token.Token
	Op    string // "*" or "**"
	Value Expression
}

func (se *StarExpression) expressionNode()      {}
func (se *StarExpression) TokenLiteral() string { return se.Token.Lexeme }
func (se *StarExpression) GetToken() token.Token {
	if se == nil {
		return token.Token{}
	}
	return se.Token
}

// YieldExpression represents yield, yield value, or yield from iterable.
type YieldExpression struct {
	Token token.Token
	Value Expression
	From  bool
}

func (ye *YieldExpression) expressionNode()      {}
func (ye *YieldExpression) TokenLiteral() string { return ye.Token.Lexeme }
func (ye *YieldExpression) GetToken() token.Token {
	if ye == nil {
		return token.Token{}
	}
	return ye.Token
}
