package analyzer

import (
	"fmt"
	"sort"

	"github.com/typedframes/framecheck/internal/ast"
	"github.com/typedframes/framecheck/internal/diagnostics"
)

// collectClass registers a class as a schema when one of its bases is a
// schema marker or an already-collected schema. Bodies of ordinary classes
// are not descended into.
func (a *Analyzer) collectClass(cd *ast.ClassDef) {
	isSchema := false
	for _, base := range cd.Bases {
		switch b := base.(type) {
		case *ast.Attribute:
			if isSchemaBase(b.Attr) {
				isSchema = true
			}
		case *ast.Name:
			if isSchemaBase(b.Value) || a.schemas[b.Value] != nil {
				isSchema = true
			}
		}
	}
	if !isSchema {
		return
	}

	// Parent schemas contribute their columns first.
	var columns []string
	for _, base := range cd.Bases {
		if n, ok := base.(*ast.Name); ok {
			if parent := a.schemas[n.Value]; parent != nil {
				columns = append(columns, parent.Columns...)
			}
		}
	}

	for _, stmt := range cd.Body {
		switch s := stmt.(type) {
		case *ast.AnnAssign:
			if n, ok := s.Target.(*ast.Name); ok {
				columns = append(columns, memberColumns(n.Value, s.Value)...)
			}
		case *ast.Assign:
			for _, target := range s.Targets {
				if n, ok := target.(*ast.Name); ok {
					columns = append(columns, memberColumns(n.Value, s.Value)...)
				}
			}
		}
	}

	// Inheritance may bring overlapping columns; order is made
	// deterministic here and mutation tracking appends at the end later.
	sort.Strings(columns)
	columns = dedupSorted(columns)

	for _, col := range columns {
		if a.isReserved(col) {
			a.report(diagnostics.ErrC003, cd.Token, fmt.Sprintf(
				"Column name '%s' in %s conflicts with a pandas/polars method. This will shadow the method when accessed via attribute syntax (df.%s). Consider renaming to '%s_value' or similar.",
				col, cd.Name, col, col,
			))
		}
	}

	a.schemas[cd.Name] = &Schema{Name: cd.Name, Columns: columns, Line: cd.Token.Line}
}

// memberColumns expands one class-body member into the column names it
// declares. A Column(alias="...") call renames the member; an alias given
// as a bare name (the deferred-alias sentinel) falls back to the member
// name. ColumnSet/ColumnGroup contribute the member plus every listed
// member name.
func memberColumns(member string, value ast.Expression) []string {
	call, ok := value.(*ast.Call)
	if !ok {
		return []string{member}
	}

	switch callFuncName(call.Func) {
	case "Column":
		if alias, ok := stringLiteral(call.KeywordArg("alias")); ok {
			return []string{alias}
		}
		return []string{member}
	case "ColumnSet", "ColumnGroup":
		columns := []string{member}
		if list, ok := call.KeywordArg("members").(*ast.ListLiteral); ok {
			for _, el := range list.Elements {
				if s, ok := stringLiteral(el); ok {
					columns = append(columns, s)
				} else if n, ok := el.(*ast.Name); ok {
					columns = append(columns, n.Value)
				}
			}
		}
		return columns
	}
	return []string{member}
}

// callFuncName returns the called name for f(...) and o.f(...) shapes.
func callFuncName(fn ast.Expression) string {
	switch f := fn.(type) {
	case *ast.Name:
		return f.Value
	case *ast.Attribute:
		return f.Attr
	}
	return ""
}

func stringLiteral(expr ast.Expression) (string, bool) {
	if s, ok := expr.(*ast.StringLiteral); ok {
		return s.Value, true
	}
	return "", false
}

func dedupSorted(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || sorted[i-1] != s {
			out = append(out, s)
		}
	}
	return out
}
