package diagnostics

import (
	"fmt"

	"github.com/typedframes/framecheck/internal/token"
)

type ErrorCode string

const (
	// Lexer
	ErrL001 ErrorCode = "L001" // illegal character
	ErrL002 ErrorCode = "L002" // unterminated string
	ErrL003 ErrorCode = "L003" // inconsistent indentation

	// Parser
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // expected token
	ErrP003 ErrorCode = "P003" // expected indented block
	ErrP004 ErrorCode = "P004" // invalid expression
	ErrP005 ErrorCode = "P005" // recursion depth exceeded
	ErrP006 ErrorCode = "P006" // no token stream

	// Checker
	ErrC001 ErrorCode = "C001" // unknown column access
	ErrC002 ErrorCode = "C002" // unknown column write (mutation tracking)
	ErrC003 ErrorCode = "C003" // column shadows reserved accessor
)

// DiagnosticError is the single diagnostic type carried through the
// pipeline. Parse errors and checker findings share it so that the CLI
// and the LSP render everything the same way.
type DiagnosticError struct {
	Code    ErrorCode
	Token   token.Token
	File    string
	Message string
}

func NewError(code ErrorCode, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: message}
}

func (e *DiagnosticError) Error() string {
	return fmt.Sprintf("[%s] line %d, column %d: %s", e.Code, e.Token.Line, e.Token.Column, e.Message)
}

// IsWarning reports whether the diagnostic is advisory rather than an
// error. Shadowing findings warn; everything else fails the check.
func (e *DiagnosticError) IsWarning() bool {
	return e.Code == ErrC003
}

// IsParseFailure reports whether the diagnostic came from the lexer or
// parser. A file with any parse failure is reported as failed, never as
// clean.
func (e *DiagnosticError) IsParseFailure() bool {
	switch e.Code {
	case ErrL001, ErrL002, ErrL003, ErrP001, ErrP002, ErrP003, ErrP004, ErrP005, ErrP006:
		return true
	}
	return false
}
