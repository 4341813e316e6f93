package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/typedframes/framecheck/internal/ast"
	"github.com/typedframes/framecheck/internal/diagnostics"
)

// trackAssign processes one plain assignment: mutation writes first, then
// the recognized binding patterns on the right-hand side, then validation
// of the targets. Assignments matching no pattern leave bindings untouched.
func (a *Analyzer) trackAssign(st *ast.Assign) {
	line := st.Token.Line

	// df["new_col"] = ... on a bound variable is a mutation: report the
	// unknown column once and append it so later accesses are accepted.
	for _, target := range st.Targets {
		sub, ok := target.(*ast.Subscript)
		if !ok {
			continue
		}
		name, ok := sub.Value.(*ast.Name)
		if !ok {
			continue
		}
		binding, bound := a.bindings[name.Value]
		if !bound {
			continue
		}
		col, ok := stringLiteral(sub.Index)
		if !ok {
			continue
		}
		if schema := a.schemas[binding.Schema]; schema != nil && !schema.Has(col) {
			a.report(diagnostics.ErrC002, st.Token, fmt.Sprintf(
				"Column '%s' does not exist in %s (mutation tracking)", col, binding.Schema,
			))
			schema.Columns = append(schema.Columns, col)
		}
	}

	if call, ok := st.Value.(*ast.Call); ok {
		a.trackCallBinding(st.Targets, call, line)
	}

	for _, target := range st.Targets {
		a.validateExpr(target)
	}
}

// trackCallBinding applies the binding patterns for an assignment whose
// right-hand side is a call.
func (a *Analyzer) trackCallBinding(targets []ast.Expression, call *ast.Call, line int) {
	switch fn := call.Func.(type) {
	case *ast.Attribute:
		switch {
		case fn.Attr == "merge":
			left, ok := fn.Value.(*ast.Name)
			if !ok {
				return
			}
			leftBinding, ok := a.bindings[left.Value]
			if !ok || len(call.Args) == 0 {
				return
			}
			right, ok := call.Args[0].(*ast.Name)
			if !ok {
				return
			}
			rightBinding, ok := a.bindings[right.Value]
			if !ok {
				return
			}
			a.bindCombined(targets, leftBinding.Schema, rightBinding.Schema, line)

		case fn.Attr == "concat":
			if s1, s2, ok := a.concatOperands(call); ok {
				a.bindCombined(targets, s1, s2, line)
			}

		case isFactoryMethod(fn.Attr):
			a.trackFactory(targets, fn, call, line)
		}

	case *ast.Subscript:
		// DataFrame[Schema](...)
		if schema := a.schemaFromFrameSubscript(fn); schema != "" {
			a.bindTargets(targets, schema, line)
		}

	case *ast.Name:
		if fn.Value == "concat" {
			if s1, s2, ok := a.concatOperands(call); ok {
				a.bindCombined(targets, s1, s2, line)
			}
			return
		}
		if schema, ok := a.functions[fn.Value]; ok {
			a.bindTargets(targets, schema, line)
		}
	}
}

// trackFactory handles the constructor-like method shapes:
//
//	PandasFrame.from_schema(df, Schema)
//	pkg.PolarsFrame.from_schema(df, Schema)
//	Schema.from_pandas(df)
//	Schema().read_csv(path)
//	DataFrame[Schema].read_parquet(path)
func (a *Analyzer) trackFactory(targets []ast.Expression, fn *ast.Attribute, call *ast.Call, line int) {
	switch recv := fn.Value.(type) {
	case *ast.Name:
		if a.isFrameType(recv.Value) {
			if len(call.Args) >= 2 {
				if schema, ok := call.Args[1].(*ast.Name); ok {
					a.bindTargets(targets, schema.Value, line)
				}
			}
			return
		}
		if a.schemas[recv.Value] != nil {
			a.bindTargets(targets, recv.Value, line)
		}
	case *ast.Attribute:
		if a.isFrameType(recv.Attr) && len(call.Args) >= 2 {
			if schema, ok := call.Args[1].(*ast.Name); ok {
				a.bindTargets(targets, schema.Value, line)
			}
		}
	case *ast.Call:
		if n, ok := recv.Func.(*ast.Name); ok && a.schemas[n.Value] != nil {
			a.bindTargets(targets, n.Value, line)
		}
	case *ast.Subscript:
		if schema := a.schemaFromFrameSubscript(recv); schema != "" {
			a.bindTargets(targets, schema, line)
		}
	}
}

// concatOperands extracts the first two bound operands of a concat call,
// from its first positional list or an objs= keyword list. Operands past
// the first two are ignored.
func (a *Analyzer) concatOperands(call *ast.Call) (string, string, bool) {
	var list *ast.ListLiteral
	if len(call.Args) > 0 {
		list, _ = call.Args[0].(*ast.ListLiteral)
	}
	if list == nil {
		list, _ = call.KeywordArg("objs").(*ast.ListLiteral)
	}
	if list == nil {
		return "", "", false
	}

	var schemas []string
	for _, el := range list.Elements {
		if n, ok := el.(*ast.Name); ok {
			if binding, ok := a.bindings[n.Value]; ok {
				schemas = append(schemas, binding.Schema)
			}
		}
	}
	if len(schemas) < 2 {
		return "", "", false
	}
	return schemas[0], schemas[1], true
}

// bindCombined registers the synthetic union schema for s1 and s2 and
// binds the targets to it. Re-combining the same pair rebuilds the same
// schema.
func (a *Analyzer) bindCombined(targets []ast.Expression, s1, s2 string, line int) {
	var columns []string
	if schema := a.schemas[s1]; schema != nil {
		columns = append(columns, schema.Columns...)
	}
	if schema := a.schemas[s2]; schema != nil {
		columns = append(columns, schema.Columns...)
	}
	sort.Strings(columns)
	columns = dedupSorted(columns)

	name := s1 + "_" + s2
	a.schemas[name] = &Schema{Name: name, Columns: columns, Line: line}
	a.bindTargets(targets, name, line)
}

func (a *Analyzer) bindTargets(targets []ast.Expression, schema string, line int) {
	for _, target := range targets {
		if n, ok := target.(*ast.Name); ok {
			a.bindings[n.Value] = Binding{Schema: schema, Line: line}
		}
	}
}

// trackAnnAssign processes an annotated assignment: a frame-typed
// annotation (structured or quoted) binds the target, and a constructor
// call on the right-hand side binds it as well.
func (a *Analyzer) trackAnnAssign(st *ast.AnnAssign) {
	line := st.Token.Line
	targets := []ast.Expression{st.Target}

	if call, ok := st.Value.(*ast.Call); ok {
		a.trackCallBinding(targets, call, line)
	}

	switch ann := st.Annotation.(type) {
	case *ast.Subscript:
		typeName := subscriptTypeName(ann)
		switch {
		case a.isFrameType(typeName):
			if schema, ok := ann.Index.(*ast.Name); ok {
				a.bindTargets(targets, schema.Value, line)
			}
		case typeName == "Annotated":
			if schema := a.schemaFromAnnotatedTuple(ann); schema != "" {
				a.bindTargets(targets, schema, line)
			}
		}
	case *ast.StringLiteral:
		if schema := a.schemaFromQuotedHint(ann.Value); schema != "" {
			a.bindTargets(targets, schema, line)
		}
	}

	a.validateExpr(st.Target)
	if st.Value != nil {
		a.validateExpr(st.Value)
	}
}

// subscriptTypeName names the wrapper of T[...] for T a name or a dotted
// attribute (pd.DataFrame).
func subscriptTypeName(sub *ast.Subscript) string {
	switch v := sub.Value.(type) {
	case *ast.Name:
		return v.Value
	case *ast.Attribute:
		return v.Attr
	}
	return ""
}

// schemaFromFrameSubscript extracts Schema from FrameType[Schema].
func (a *Analyzer) schemaFromFrameSubscript(sub *ast.Subscript) string {
	if !a.isFrameType(subscriptTypeName(sub)) {
		return ""
	}
	if schema, ok := sub.Index.(*ast.Name); ok {
		return schema.Value
	}
	return ""
}

// schemaFromAnnotatedTuple extracts Schema from Annotated[Frame, Schema]
// when the first tuple element looks like a dataframe marker.
func (a *Analyzer) schemaFromAnnotatedTuple(ann *ast.Subscript) string {
	tuple, ok := ann.Index.(*ast.TupleLiteral)
	if !ok || len(tuple.Elements) < 2 {
		return ""
	}

	isFrame := false
	switch first := tuple.Elements[0].(type) {
	case *ast.Name:
		isFrame = a.isFrameType(first.Value) || strings.Contains(first.Value, "DataFrame")
	case *ast.Attribute:
		isFrame = first.Attr == "DataFrame" || a.isFrameType(first.Attr)
	}
	if !isFrame {
		return ""
	}

	if schema, ok := tuple.Elements[1].(*ast.Name); ok {
		return schema.Value
	}
	return ""
}

// schemaFromQuotedHint extracts a schema name from a forward-reference
// string annotation such as "DataFrame[UserSchema]" or
// "Annotated[pl.DataFrame, UserSchema]". This is a textual heuristic over
// a narrow set of shapes, not a second parse.
func (a *Analyzer) schemaFromQuotedHint(s string) string {
	for frame := range a.frames {
		if !strings.Contains(s, frame+"[") {
			continue
		}
		start := strings.Index(s, "[")
		end := strings.LastIndex(s, "]")
		if start < 0 || end < start {
			return ""
		}
		inner := s[start+1 : end]
		// Nested generics: the schema is the last comma segment.
		if i := strings.LastIndex(inner, ","); i >= 0 {
			inner = inner[i+1:]
		}
		return strings.TrimSpace(inner)
	}

	if strings.Contains(s, "Annotated[") && strings.Contains(s, "DataFrame") {
		start := strings.Index(s, "Annotated[")
		inner := s[start+len("Annotated["):]
		end := strings.LastIndex(inner, "]")
		if end < 0 {
			return ""
		}
		parts := strings.Split(inner[:end], ",")
		if len(parts) >= 2 {
			return strings.TrimSpace(parts[1])
		}
	}
	return ""
}

// schemaFromAnnotation resolves a function return annotation to a schema
// name: FrameType[Schema] structurally, or its quoted single-name form.
func (a *Analyzer) schemaFromAnnotation(expr ast.Expression) string {
	switch ann := expr.(type) {
	case *ast.Subscript:
		return a.schemaFromFrameSubscript(ann)
	case *ast.StringLiteral:
		text := ann.Value
		for frame := range a.frames {
			if !strings.Contains(text, frame+"[") {
				continue
			}
			start := strings.Index(text, "[")
			end := strings.LastIndex(text, "]")
			if start < 0 || end < start {
				return ""
			}
			schema := strings.TrimSpace(text[start+1 : end])
			if schema != "" && !strings.Contains(schema, ",") {
				return schema
			}
			return ""
		}
	}
	return ""
}
