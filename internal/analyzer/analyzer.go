// Package analyzer implements the column checker: it collects schema
// declarations, tracks which schema each variable is bound to, and
// validates every attribute and subscript access against the bound
// schema's columns.
//
// The analysis is a single flow-insensitive pass in declaration order.
// There is no scoping: one flat binding table covers the whole file, and
// later assignments overwrite earlier ones. Branches and loops are not
// modeled.
package analyzer

import (
	"github.com/typedframes/framecheck/internal/ast"
	"github.com/typedframes/framecheck/internal/diagnostics"
	"github.com/typedframes/framecheck/internal/token"
)

// Schema is a named, ordered set of column identifiers. Columns are sorted
// and deduplicated at declaration; mutation tracking may append more later.
type Schema struct {
	Name    string
	Columns []string
	Line    int // declaration line
}

func (s *Schema) Has(column string) bool {
	for _, c := range s.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// Binding records which schema a variable carries and where the binding
// was established.
type Binding struct {
	Schema string
	Line   int
}

type Analyzer struct {
	schemas   map[string]*Schema
	bindings  map[string]Binding
	functions map[string]string // function name -> return schema name
	reserved  map[string]struct{}
	frames    map[string]struct{}

	errors []*diagnostics.DiagnosticError
}

func New(extraReserved, extraFrameTypes []string) *Analyzer {
	a := &Analyzer{
		schemas:   make(map[string]*Schema),
		bindings:  make(map[string]Binding),
		functions: make(map[string]string),
		reserved:  make(map[string]struct{}, len(reservedAccessors)+len(extraReserved)),
		frames:    make(map[string]struct{}, len(frameTypes)+len(extraFrameTypes)),
	}
	for _, name := range reservedAccessors {
		a.reserved[name] = struct{}{}
	}
	for _, name := range extraReserved {
		a.reserved[name] = struct{}{}
	}
	for _, name := range frameTypes {
		a.frames[name] = struct{}{}
	}
	for _, name := range extraFrameTypes {
		a.frames[name] = struct{}{}
	}
	return a
}

// Analyze runs the single pass over the program and returns its findings.
func (a *Analyzer) Analyze(program *ast.Program) []*diagnostics.DiagnosticError {
	for _, stmt := range program.Statements {
		a.visitStatement(stmt)
	}
	return a.errors
}

func (a *Analyzer) visitStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ClassDef:
		a.collectClass(s)
	case *ast.FunctionDef:
		if schema := a.schemaFromAnnotation(s.Returns); schema != "" {
			a.functions[s.Name] = schema
		}
		for _, body := range s.Body {
			a.visitStatement(body)
		}
	case *ast.Assign:
		a.trackAssign(s)
	case *ast.AnnAssign:
		a.trackAnnAssign(s)
	case *ast.ReturnStatement:
		a.validateExpr(s.Value)
	case *ast.ExpressionStatement:
		a.validateExpr(s.Expression)
	}
}

func (a *Analyzer) report(code diagnostics.ErrorCode, tok token.Token, message string) {
	a.errors = append(a.errors, diagnostics.NewError(code, tok, message))
}

func (a *Analyzer) isReserved(name string) bool {
	_, ok := a.reserved[name]
	return ok
}

func (a *Analyzer) isFrameType(name string) bool {
	_, ok := a.frames[name]
	return ok
}
