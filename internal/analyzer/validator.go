package analyzer

import (
	"fmt"

	"github.com/typedframes/framecheck/internal/ast"
	"github.com/typedframes/framecheck/internal/diagnostics"
)

// validateExpr checks every attribute and subscript access in the
// expression tree against the bound schemas.
func (a *Analyzer) validateExpr(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Attribute:
		a.checkAccess(e, e.Attr)
		a.validateExpr(e.Value)
	case *ast.Subscript:
		if col, ok := stringLiteral(e.Index); ok {
			a.checkAccess(e, col)
		}
		a.validateExpr(e.Value)
		a.validateExpr(e.Index)
	case *ast.Call:
		for _, arg := range e.Args {
			a.validateExpr(arg)
		}
		for _, kw := range e.Keywords {
			a.validateExpr(kw.Value)
		}
		a.validateExpr(e.Func)
	case *ast.InfixExpression:
		a.validateExpr(e.Left)
		a.validateExpr(e.Right)
	case *ast.PrefixExpression:
		a.validateExpr(e.Right)
	case *ast.StarExpression:
		a.validateExpr(e.Value)
	case *ast.YieldExpression:
		a.validateExpr(e.Value)
	case *ast.ConditionalExpression:
		a.validateExpr(e.Body)
		a.validateExpr(e.Cond)
		a.validateExpr(e.OrElse)
	case *ast.ListLiteral:
		for _, el := range e.Elements {
			a.validateExpr(el)
		}
	case *ast.TupleLiteral:
		for _, el := range e.Elements {
			a.validateExpr(el)
		}
	case *ast.SetLiteral:
		for _, el := range e.Elements {
			a.validateExpr(el)
		}
	case *ast.DictLiteral:
		for _, key := range e.Keys {
			a.validateExpr(key)
		}
		for _, value := range e.Values {
			a.validateExpr(value)
		}
	case *ast.SliceExpression:
		a.validateExpr(e.Lower)
		a.validateExpr(e.Upper)
		a.validateExpr(e.Step)
	}
}

// checkAccess reports an unknown column on var.col or var["col"] when the
// variable carries a known schema and col is neither a column nor a
// reserved accessor.
func (a *Analyzer) checkAccess(access ast.Expression, col string) {
	var value ast.Expression
	switch e := access.(type) {
	case *ast.Attribute:
		value = e.Value
	case *ast.Subscript:
		value = e.Value
	default:
		return
	}

	name, ok := value.(*ast.Name)
	if !ok {
		return
	}
	binding, ok := a.bindings[name.Value]
	if !ok {
		return
	}
	schema := a.schemas[binding.Schema]
	if schema == nil {
		return
	}
	if schema.Has(col) || a.isReserved(col) {
		return
	}

	message := fmt.Sprintf("Column '%s' does not exist in %s (defined at line %d)", col, binding.Schema, binding.Line)
	if match := findBestMatch(col, schema.Columns); match != "" {
		message += fmt.Sprintf(" (did you mean '%s'?)", match)
	}
	a.report(diagnostics.ErrC001, access.GetToken(), message)
}
