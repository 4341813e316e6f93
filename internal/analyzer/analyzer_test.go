package analyzer

import (
	"testing"

	"github.com/typedframes/framecheck/internal/ast"
	"github.com/typedframes/framecheck/internal/diagnostics"
	"github.com/typedframes/framecheck/internal/lexer"
	"github.com/typedframes/framecheck/internal/parser"
	"github.com/typedframes/framecheck/internal/pipeline"
)

func parseSource(t *testing.T, source string) *ast.Program {
	t.Helper()
	ctx := pipeline.NewPipelineContext(source)
	p := parser.New(lexer.Tokenize(source), ctx)
	program := p.ParseProgram()
	if len(ctx.Errors) != 0 {
		t.Fatalf("Unexpected parse errors: %v", ctx.Errors)
	}
	return program
}

func analyze(t *testing.T, source string) (*Analyzer, []*diagnostics.DiagnosticError) {
	t.Helper()
	a := New(nil, nil)
	errs := a.Analyze(parseSource(t, source))
	return a, errs
}

func requireBinding(t *testing.T, a *Analyzer, name, schema string) {
	t.Helper()
	binding, ok := a.bindings[name]
	if !ok {
		t.Fatalf("Expected binding for %q, have %v", name, a.bindings)
	}
	if binding.Schema != schema {
		t.Fatalf("Expected %q bound to %q, got %q", name, schema, binding.Schema)
	}
}

func requireNoErrors(t *testing.T, errs []*diagnostics.DiagnosticError) {
	t.Helper()
	if len(errs) != 0 {
		t.Fatalf("Expected no diagnostics, got %v", errs)
	}
}

const userSchema = "class UserSchema(BaseSchema):\n" +
	"    email = Column()\n" +
	"    age = Column()\n" +
	"\n"
