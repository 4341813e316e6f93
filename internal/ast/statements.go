package ast

import (
	"github.com/typedframes/framecheck/internal/token"
)

// ClassDef represents a class definition.
// class Name(Base1, Base2): body
type ClassDef struct {
	Token      token.Token // The 'class' token
	Name       string
	Bases      []Expression
	Keywords   []*Keyword // metaclass=..., etc.
	Decorators []Expression
	Body       []Statement
}

func (cd *ClassDef) statementNode()       {}
func (cd *ClassDef) TokenLiteral() string { return cd.Token.Lexeme }
func (cd *ClassDef) GetToken() token.Token {
	if cd == nil {
		return token.Token{}
	}
	return cd.Token
}

// Param is a single function parameter with optional annotation and default.
type Param struct {
	Token      token.Token // The parameter name token
	Name       string
	Annotation Expression
	Default    Expression
	Star       string // "", "*" or "**"
}

// FunctionDef represents a function definition.
// def name(params) -> Returns: body
type FunctionDef struct {
	Token      token.Token // The 'def' token
	Name       string
	Params     []*Param
	Returns    Expression // nil when no return annotation
	Decorators []Expression
	Body       []Statement
}

func (fd *FunctionDef) statementNode()       {}
func (fd *FunctionDef) TokenLiteral() string { return fd.Token.Lexeme }
func (fd *FunctionDef) GetToken() token.Token {
	if fd == nil {
		return token.Token{}
	}
	return fd.Token
}

// Assign represents a plain assignment, possibly chained.
// a = b = value
type Assign struct {
	Token   token.Token // The first target's token
	Targets []Expression
	Value   Expression
}

func (a *Assign) statementNode()       {}
func (a *Assign) TokenLiteral() string { return a.Token.Lexeme }
func (a *Assign) GetToken() token.Token {
	if a == nil {
		return token.Token{}
	}
	return a.Token
}

// AnnAssign represents an annotated assignment.
// target: annotation = value (value optional)
type AnnAssign struct {
	Token      token.Token // The target's token
	Target     Expression
	Annotation Expression
	Value      Expression // nil when bare annotation
}

func (aa *AnnAssign) statementNode()       {}
func (aa *AnnAssign) TokenLiteral() string { return aa.Token.Lexeme }
func (aa *AnnAssign) GetToken() token.Token {
	if aa == nil {
		return token.Token{}
	}
	return aa.Token
}

// AugAssign represents an augmented assignment such as x += 1.
type AugAssign struct {
	Token  token.Token // The operator token
	Target Expression
	Op     string
	Value  Expression
}

func (aa *AugAssign) statementNode()       {}
func (aa *AugAssign) TokenLiteral() string { return aa.Token.Lexeme }
func (aa *AugAssign) GetToken() token.Token {
	if aa == nil {
		return token.Token{}
	}
	return aa.Token
}

// ExpressionStatement wraps an expression used as a statement.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token {
	if es == nil {
		return token.Token{}
	}
	return es.Token
}

// ReturnStatement represents a return with an optional value.
type ReturnStatement struct {
	Token token.Token // The 'return' token
	Value Expression
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token {
	if rs == nil {
		return token.Token{}
	}
	return rs.Token
}

// PassStatement represents the pass statement.
type PassStatement struct {
	Token token.Token
}

func (ps *PassStatement) statementNode()       {}
func (ps *PassStatement) TokenLiteral() string { return ps.Token.Lexeme }
func (ps *PassStatement) GetToken() token.Token {
	if ps == nil {
		return token.Token{}
	}
	return ps.Token
}

// BreakStatement represents the break statement.
type BreakStatement struct {
	Token token.Token
}

func (bs *BreakStatement) statementNode()       {}
func (bs *BreakStatement) TokenLiteral() string { return bs.Token.Lexeme }
func (bs *BreakStatement) GetToken() token.Token {
	if bs == nil {
		return token.Token{}
	}
	return bs.Token
}

// ContinueStatement represents the continue statement.
type ContinueStatement struct {
	Token token.Token
}

func (cs *ContinueStatement) statementNode()       {}
func (cs *ContinueStatement) TokenLiteral() string { return cs.Token.Lexeme }
func (cs *ContinueStatement) GetToken() token.Token {
	if cs == nil {
		return token.Token{}
	}
	return cs.Token
}

// ImportAlias is one name in an import list, with its optional alias.
type ImportAlias struct {
	Name  string
	Alias string // empty when no 'as'
}

// ImportStatement represents "import a.b as c, d".
type ImportStatement struct {
	Token token.Token
	Names []ImportAlias
}

func (is *ImportStatement) statementNode()       {}
func (is *ImportStatement) TokenLiteral() string { return is.Token.Lexeme }
func (is *ImportStatement) GetToken() token.Token {
	if is == nil {
		return token.Token{}
	}
	return is.Token
}

// FromImportStatement represents "from a.b import c as d, e".
type FromImportStatement struct {
	Token  token.Token
	Module string
	Names  []ImportAlias
	Star   bool // from x import *
}

func (fis *FromImportStatement) statementNode()       {}
func (fis *FromImportStatement) TokenLiteral() string { return fis.Token.Lexeme }
func (fis *FromImportStatement) GetToken() token.Token {
	if fis == nil {
		return token.Token{}
	}
	return fis.Token
}

// IfStatement represents an if/elif/else chain. Elif arms are nested
// IfStatements in OrElse.
type IfStatement struct {
	Token  token.Token // The 'if' or 'elif' token
	Cond   Expression
	Body   []Statement
	OrElse []Statement
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Lexeme }
func (is *IfStatement) GetToken() token.Token {
	if is == nil {
		return token.Token{}
	}
	return is.Token
}

// ForStatement represents "for target in iter: body" with optional else.
type ForStatement struct {
	Token  token.Token
	Target Expression
	Iter   Expression
	Body   []Statement
	OrElse []Statement
}

func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Lexeme }
func (fs *ForStatement) GetToken() token.Token {
	if fs == nil {
		return token.Token{}
	}
	return fs.Token
}

// WhileStatement represents "while cond: body" with optional else.
type WhileStatement struct {
	Token  token.Token
	Cond   Expression
	Body   []Statement
	OrElse []Statement
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Lexeme }
func (ws *WhileStatement) GetToken() token.Token {
	if ws == nil {
		return token.Token{}
	}
	return ws.Token
}

// WithItem is one context manager in a with statement.
type WithItem struct {
	Context Expression
	As      Expression // nil when no 'as'
}

// WithStatement represents "with ctx as name: body".
type WithStatement struct {
	Token token.Token
	Items []WithItem
	Body  []Statement
}

func (ws *WithStatement) statementNode()       {}
func (ws *WithStatement) TokenLiteral() string { return ws.Token.Lexeme }
func (ws *WithStatement) GetToken() token.Token {
	if ws == nil {
		return token.Token{}
	}
	return ws.Token
}

// ExceptHandler is one except clause of a try statement.
type ExceptHandler struct {
	Token token.Token
	Type  Expression // nil for bare except
	Name  string     // empty when no 'as'
	Body  []Statement
}

// TryStatement represents try/except/else/finally.
type TryStatement struct {
	Token    token.Token
	Body     []Statement
	Handlers []*ExceptHandler
	OrElse   []Statement
	Final    []Statement
}

func (ts *TryStatement) statementNode()       {}
func (ts *TryStatement) TokenLiteral() string { return ts.Token.Lexeme }
func (ts *TryStatement) GetToken() token.Token {
	if ts == nil {
		return token.Token{}
	}
	return ts.Token
}

// RaiseStatement represents "raise" with an optional exception expression.
type RaiseStatement struct {
	Token token.Token
	Exc   Expression
	From  Expression
}

func (rs *RaiseStatement) statementNode()       {}
func (rs *RaiseStatement) TokenLiteral() string { return rs.Token.Lexeme }
func (rs *RaiseStatement) GetToken() token.Token {
	if rs == nil {
		return token.Token{}
	}
	return rs.Token
}

// AssertStatement represents "assert test, msg".
type AssertStatement struct {
	Token token.Token
	Test  Expression
	Msg   Expression
}

func (as *AssertStatement) statementNode()       {}
func (as *AssertStatement) TokenLiteral() string { return as.Token.Lexeme }
func (as *AssertStatement) GetToken() token.Token {
	if as == nil {
		return token.Token{}
	}
	return as.Token
}

// DeleteStatement represents "del target, ...".
type DeleteStatement struct {
	Token   token.Token
	Targets []Expression
}

func (ds *DeleteStatement) statementNode()       {}
func (ds *DeleteStatement) TokenLiteral() string { return ds.Token.Lexeme }
func (ds *DeleteStatement) GetToken() token.Token {
	if ds == nil {
		return token.Token{}
	}
	return ds.Token
}

// ScopeStatement represents "global a, b" or "nonlocal a, b".
type ScopeStatement struct {
	Token token.Token // The 'global' or 'nonlocal' token
	Names []string
}

func (ss *ScopeStatement) statementNode()       {}
func (ss *ScopeStatement) TokenLiteral() string { return ss.Token.Lexeme }
func (ss *ScopeStatement) GetToken() token.Token {
	if ss == nil {
		return token.Token{}
	}
	return ss.Token
}
