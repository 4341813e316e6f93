package parser

import (
	"testing"

	"github.com/typedframes/framecheck/internal/ast"
	"github.com/typedframes/framecheck/internal/lexer"
	"github.com/typedframes/framecheck/internal/pipeline"
)

func parseProgram(t *testing.T, source string) *ast.Program {
	t.Helper()
	ctx := pipeline.NewPipelineContext(source)
	p := New(lexer.Tokenize(source), ctx)
	program := p.ParseProgram()
	if len(ctx.Errors) != 0 {
		t.Fatalf("Unexpected parse errors: %v", ctx.Errors)
	}
	return program
}

func nameValue(t *testing.T, expr ast.Expression) string {
	t.Helper()
	name, ok := expr.(*ast.Name)
	if !ok {
		t.Fatalf("Expected *ast.Name, got %T", expr)
	}
	return name.Value
}

func TestClassDef(t *testing.T) {
	program := parseProgram(t, "class UserSchema(BaseSchema):\n    email = Column()\n    age = Column()\n")

	if len(program.Statements) != 1 {
		t.Fatalf("Expected 1 statement, got %d", len(program.Statements))
	}
	cls, ok := program.Statements[0].(*ast.ClassDef)
	if !ok {
		t.Fatalf("Expected *ast.ClassDef, got %T", program.Statements[0])
	}
	if cls.Name != "UserSchema" {
		t.Errorf("Wrong class name: %q", cls.Name)
	}
	if len(cls.Bases) != 1 || nameValue(t, cls.Bases[0]) != "BaseSchema" {
		t.Errorf("Wrong bases: %v", cls.Bases)
	}
	if len(cls.Body) != 2 {
		t.Errorf("Expected 2 body statements, got %d", len(cls.Body))
	}
}

func TestClassDefKeywordBase(t *testing.T) {
	program := parseProgram(t, "class Model(Base, metaclass=Meta):\n    pass\n")

	cls := program.Statements[0].(*ast.ClassDef)
	if len(cls.Bases) != 1 {
		t.Fatalf("Expected 1 base, got %d", len(cls.Bases))
	}
	if len(cls.Keywords) != 1 || cls.Keywords[0].Name != "metaclass" {
		t.Errorf("Wrong keywords: %v", cls.Keywords)
	}
}

func TestFunctionDef(t *testing.T) {
	program := parseProgram(t, "def load(path: str, *, strict=False) -> DataFrame[UserSchema]:\n    return read(path)\n")

	fn, ok := program.Statements[0].(*ast.FunctionDef)
	if !ok {
		t.Fatalf("Expected *ast.FunctionDef, got %T", program.Statements[0])
	}
	if fn.Name != "load" {
		t.Errorf("Wrong function name: %q", fn.Name)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("Expected 2 params, got %d", len(fn.Params))
	}
	if fn.Params[0].Name != "path" || fn.Params[0].Annotation == nil {
		t.Errorf("Wrong first param: %+v", fn.Params[0])
	}
	if fn.Params[1].Name != "strict" || fn.Params[1].Default == nil {
		t.Errorf("Wrong second param: %+v", fn.Params[1])
	}
	if _, ok := fn.Returns.(*ast.Subscript); !ok {
		t.Errorf("Expected subscript return annotation, got %T", fn.Returns)
	}
	if len(fn.Body) != 1 {
		t.Errorf("Expected 1 body statement, got %d", len(fn.Body))
	}
}

func TestDecorators(t *testing.T) {
	program := parseProgram(t, "@lru_cache\n@app.route(\"/\")\ndef handler():\n    pass\n")

	fn := program.Statements[0].(*ast.FunctionDef)
	if len(fn.Decorators) != 2 {
		t.Fatalf("Expected 2 decorators, got %d", len(fn.Decorators))
	}
	if nameValue(t, fn.Decorators[0]) != "lru_cache" {
		t.Errorf("Wrong first decorator")
	}
	if _, ok := fn.Decorators[1].(*ast.Call); !ok {
		t.Errorf("Expected call decorator, got %T", fn.Decorators[1])
	}
}

func TestAssignments(t *testing.T) {
	program := parseProgram(t, "x = 1\na = b = 2\nx += 3\n")

	if len(program.Statements) != 3 {
		t.Fatalf("Expected 3 statements, got %d", len(program.Statements))
	}

	simple := program.Statements[0].(*ast.Assign)
	if len(simple.Targets) != 1 || nameValue(t, simple.Targets[0]) != "x" {
		t.Errorf("Wrong simple assign targets: %v", simple.Targets)
	}

	chained := program.Statements[1].(*ast.Assign)
	if len(chained.Targets) != 2 {
		t.Errorf("Expected 2 chained targets, got %d", len(chained.Targets))
	}

	if _, ok := program.Statements[2].(*ast.AugAssign); !ok {
		t.Errorf("Expected *ast.AugAssign, got %T", program.Statements[2])
	}
}

func TestAnnAssign(t *testing.T) {
	program := parseProgram(t, "df: DataFrame[UserSchema] = load()\nbare: int\n")

	ann := program.Statements[0].(*ast.AnnAssign)
	if nameValue(t, ann.Target) != "df" {
		t.Errorf("Wrong target")
	}
	sub, ok := ann.Annotation.(*ast.Subscript)
	if !ok {
		t.Fatalf("Expected subscript annotation, got %T", ann.Annotation)
	}
	if nameValue(t, sub.Value) != "DataFrame" {
		t.Errorf("Wrong annotation base")
	}
	if ann.Value == nil {
		t.Errorf("Expected assigned value")
	}

	bare := program.Statements[1].(*ast.AnnAssign)
	if bare.Value != nil {
		t.Errorf("Expected no value on bare annotation")
	}
}

func TestAttributeChain(t *testing.T) {
	program := parseProgram(t, "df.user.email\n")

	stmt := program.Statements[0].(*ast.ExpressionStatement)
	outer, ok := stmt.Expression.(*ast.Attribute)
	if !ok {
		t.Fatalf("Expected *ast.Attribute, got %T", stmt.Expression)
	}
	if outer.Attr != "email" {
		t.Errorf("Wrong outer attr: %q", outer.Attr)
	}
	inner := outer.Value.(*ast.Attribute)
	if inner.Attr != "user" || nameValue(t, inner.Value) != "df" {
		t.Errorf("Wrong inner attribute chain")
	}
}

func TestSubscript(t *testing.T) {
	program := parseProgram(t, "df[\"email\"]\n")

	stmt := program.Statements[0].(*ast.ExpressionStatement)
	sub := stmt.Expression.(*ast.Subscript)
	str, ok := sub.Index.(*ast.StringLiteral)
	if !ok {
		t.Fatalf("Expected string index, got %T", sub.Index)
	}
	if str.Value != "email" {
		t.Errorf("Wrong index value: %q", str.Value)
	}
}

func TestSlice(t *testing.T) {
	program := parseProgram(t, "xs[1:10:2]\nys[:5]\n")

	first := program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.Subscript)
	sl, ok := first.Index.(*ast.SliceExpression)
	if !ok {
		t.Fatalf("Expected slice, got %T", first.Index)
	}
	if sl.Lower == nil || sl.Upper == nil || sl.Step == nil {
		t.Errorf("Expected all three slice parts")
	}

	second := program.Statements[1].(*ast.ExpressionStatement).Expression.(*ast.Subscript)
	sl2 := second.Index.(*ast.SliceExpression)
	if sl2.Lower != nil || sl2.Upper == nil {
		t.Errorf("Expected open lower bound")
	}
}

func TestCallArguments(t *testing.T) {
	program := parseProgram(t, "concat([a, b], axis=1)\n")

	call := program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.Call)
	if nameValue(t, call.Func) != "concat" {
		t.Errorf("Wrong callee")
	}
	if len(call.Args) != 1 {
		t.Fatalf("Expected 1 positional arg, got %d", len(call.Args))
	}
	if _, ok := call.Args[0].(*ast.ListLiteral); !ok {
		t.Errorf("Expected list arg, got %T", call.Args[0])
	}
	if len(call.Keywords) != 1 || call.Keywords[0].Name != "axis" {
		t.Errorf("Wrong keywords: %v", call.Keywords)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	program := parseProgram(t, "a + b * c\n")

	infix := program.Statements[0].(*ast.ExpressionStatement).Expression.(*ast.InfixExpression)
	if infix.Operator != "+" {
		t.Fatalf("Expected + at root, got %q", infix.Operator)
	}
	right := infix.Right.(*ast.InfixExpression)
	if right.Operator != "*" {
		t.Errorf("Expected * on the right, got %q", right.Operator)
	}
}

func TestComparisonChainsParse(t *testing.T) {
	parseProgram(t, "x is not None\ny not in xs\na < b <= c\n")
}

func TestConditionalExpression(t *testing.T) {
	program := parseProgram(t, "x = a if cond else b\n")

	assign := program.Statements[0].(*ast.Assign)
	cond, ok := assign.Value.(*ast.ConditionalExpression)
	if !ok {
		t.Fatalf("Expected conditional, got %T", assign.Value)
	}
	if nameValue(t, cond.Body) != "a" || nameValue(t, cond.OrElse) != "b" {
		t.Errorf("Wrong conditional branches")
	}
}

func TestIfElifElse(t *testing.T) {
	program := parseProgram(t, "if a:\n    x = 1\nelif b:\n    x = 2\nelse:\n    x = 3\n")

	ifStmt := program.Statements[0].(*ast.IfStatement)
	if len(ifStmt.Body) != 1 {
		t.Errorf("Wrong if body")
	}
	if len(ifStmt.OrElse) != 1 {
		t.Fatalf("Expected nested elif in orelse, got %d statements", len(ifStmt.OrElse))
	}
	nested, ok := ifStmt.OrElse[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("Expected nested if for elif, got %T", ifStmt.OrElse[0])
	}
	if len(nested.OrElse) != 1 {
		t.Errorf("Expected else branch on elif")
	}
}

func TestForAndWhile(t *testing.T) {
	program := parseProgram(t, "for k, v in items:\n    use(k)\nwhile x:\n    x -= 1\n")

	forStmt := program.Statements[0].(*ast.ForStatement)
	if _, ok := forStmt.Target.(*ast.TupleLiteral); !ok {
		t.Errorf("Expected tuple target, got %T", forStmt.Target)
	}
	if _, ok := program.Statements[1].(*ast.WhileStatement); !ok {
		t.Errorf("Expected while statement")
	}
}

func TestWithStatement(t *testing.T) {
	program := parseProgram(t, "with open(p) as f, lock:\n    f.read()\n")

	with := program.Statements[0].(*ast.WithStatement)
	if len(with.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(with.Items))
	}
	if with.Items[0].As == nil {
		t.Errorf("Expected as-binding on first item")
	}
}

func TestTryExceptFinally(t *testing.T) {
	program := parseProgram(t, "try:\n    risky()\nexcept ValueError as e:\n    handle(e)\nfinally:\n    cleanup()\n")

	try := program.Statements[0].(*ast.TryStatement)
	if len(try.Handlers) != 1 {
		t.Fatalf("Expected 1 handler, got %d", len(try.Handlers))
	}
	if try.Handlers[0].Name != "e" {
		t.Errorf("Wrong handler name: %q", try.Handlers[0].Name)
	}
	if len(try.Final) != 1 {
		t.Errorf("Expected finally body")
	}
}

func TestImports(t *testing.T) {
	program := parseProgram(t, "import pandas as pd\nfrom typing import Annotated, Optional\nfrom . import utils\n")

	imp := program.Statements[0].(*ast.ImportStatement)
	if len(imp.Names) != 1 || imp.Names[0].Name != "pandas" || imp.Names[0].Alias != "pd" {
		t.Errorf("Wrong import: %+v", imp.Names)
	}

	from := program.Statements[1].(*ast.FromImportStatement)
	if from.Module != "typing" || len(from.Names) != 2 {
		t.Errorf("Wrong from-import: %+v", from)
	}
}

func TestComprehensionsAreSkipped(t *testing.T) {
	program := parseProgram(t, "xs = [df.email for df in frames]\nys = {k: v for k, v in items}\n")

	// The element expression survives; the for-clause is dropped.
	assign := program.Statements[0].(*ast.Assign)
	list, ok := assign.Value.(*ast.ListLiteral)
	if !ok {
		t.Fatalf("Expected list literal, got %T", assign.Value)
	}
	if len(list.Elements) != 1 {
		t.Fatalf("Expected 1 element, got %d", len(list.Elements))
	}
	if _, ok := list.Elements[0].(*ast.Attribute); !ok {
		t.Errorf("Expected attribute element, got %T", list.Elements[0])
	}
}

func TestSingleLineSuite(t *testing.T) {
	program := parseProgram(t, "if x: a = 1; b = 2\n")

	ifStmt := program.Statements[0].(*ast.IfStatement)
	if len(ifStmt.Body) != 2 {
		t.Errorf("Expected 2 statements in single-line suite, got %d", len(ifStmt.Body))
	}
}

func TestLambda(t *testing.T) {
	program := parseProgram(t, "f = lambda x, y=1: x + y\n")

	assign := program.Statements[0].(*ast.Assign)
	lam, ok := assign.Value.(*ast.LambdaLiteral)
	if !ok {
		t.Fatalf("Expected lambda, got %T", assign.Value)
	}
	if len(lam.Params) != 2 {
		t.Errorf("Expected 2 params, got %d", len(lam.Params))
	}
}

func TestTupleAssignment(t *testing.T) {
	program := parseProgram(t, "a, b = 1, 2\n")

	assign := program.Statements[0].(*ast.Assign)
	if _, ok := assign.Targets[0].(*ast.TupleLiteral); !ok {
		t.Errorf("Expected tuple target, got %T", assign.Targets[0])
	}
	if _, ok := assign.Value.(*ast.TupleLiteral); !ok {
		t.Errorf("Expected tuple value, got %T", assign.Value)
	}
}

func TestStringConcatenation(t *testing.T) {
	program := parseProgram(t, "s = \"a\" \"b\"\n")

	assign := program.Statements[0].(*ast.Assign)
	str, ok := assign.Value.(*ast.StringLiteral)
	if !ok {
		t.Fatalf("Expected string literal, got %T", assign.Value)
	}
	if str.Value != "ab" {
		t.Errorf("Expected concatenated value, got %q", str.Value)
	}
}

func TestYieldStatements(t *testing.T) {
	program := parseProgram(t, "def gen():\n    yield\n    yield 1\n    yield a, b\n    yield from items\n")

	fn := program.Statements[0].(*ast.FunctionDef)
	if len(fn.Body) != 4 {
		t.Fatalf("Expected 4 body statements, got %d", len(fn.Body))
	}

	bare := fn.Body[0].(*ast.ExpressionStatement).Expression.(*ast.YieldExpression)
	if bare.Value != nil || bare.From {
		t.Errorf("Expected bare yield, got value=%v from=%v", bare.Value, bare.From)
	}

	single := fn.Body[1].(*ast.ExpressionStatement).Expression.(*ast.YieldExpression)
	if _, ok := single.Value.(*ast.IntegerLiteral); !ok {
		t.Errorf("Expected integer yield value, got %T", single.Value)
	}

	from := fn.Body[3].(*ast.ExpressionStatement).Expression.(*ast.YieldExpression)
	if !from.From {
		t.Error("Expected yield from to set From")
	}
	if nameValue(t, from.Value) != "items" {
		t.Errorf("Expected yield from items, got %v", from.Value)
	}
}

func TestYieldAsAssignmentValue(t *testing.T) {
	program := parseProgram(t, "def gen():\n    received = yield counter\n")

	fn := program.Statements[0].(*ast.FunctionDef)
	assign := fn.Body[0].(*ast.Assign)
	ye, ok := assign.Value.(*ast.YieldExpression)
	if !ok {
		t.Fatalf("Expected yield value, got %T", assign.Value)
	}
	if nameValue(t, ye.Value) != "counter" {
		t.Errorf("Expected yielded counter, got %v", ye.Value)
	}
}

func TestWalrusExpression(t *testing.T) {
	program := parseProgram(t, "while (chunk := reader.next()):\n    pass\n")

	loop := program.Statements[0].(*ast.WhileStatement)
	walrus, ok := loop.Cond.(*ast.InfixExpression)
	if !ok {
		t.Fatalf("Expected infix condition, got %T", loop.Cond)
	}
	if walrus.Operator != ":=" {
		t.Errorf("Expected := operator, got %q", walrus.Operator)
	}
	if nameValue(t, walrus.Left) != "chunk" {
		t.Errorf("Expected chunk target, got %v", walrus.Left)
	}
	if _, ok := walrus.Right.(*ast.Call); !ok {
		t.Errorf("Expected call on walrus right side, got %T", walrus.Right)
	}
}

func TestAsyncStatements(t *testing.T) {
	program := parseProgram(t, "async def fetch():\n    async with session.get(url) as resp:\n        pass\n    async for row in cursor:\n        pass\n    return await resp.json()\n")

	fn, ok := program.Statements[0].(*ast.FunctionDef)
	if !ok {
		t.Fatalf("Expected *ast.FunctionDef, got %T", program.Statements[0])
	}
	if fn.Name != "fetch" {
		t.Errorf("Expected fetch, got %s", fn.Name)
	}
	if len(fn.Body) != 3 {
		t.Fatalf("Expected 3 body statements, got %d", len(fn.Body))
	}
	if _, ok := fn.Body[0].(*ast.WithStatement); !ok {
		t.Errorf("Expected with statement, got %T", fn.Body[0])
	}
	if _, ok := fn.Body[1].(*ast.ForStatement); !ok {
		t.Errorf("Expected for statement, got %T", fn.Body[1])
	}
	ret := fn.Body[2].(*ast.ReturnStatement)
	await, ok := ret.Value.(*ast.PrefixExpression)
	if !ok || await.Operator != "await" {
		t.Fatalf("Expected await prefix, got %T", ret.Value)
	}
}

func TestDecoratedAsyncDef(t *testing.T) {
	program := parseProgram(t, "@app.route('/users')\nasync def handler():\n    pass\n")

	fn, ok := program.Statements[0].(*ast.FunctionDef)
	if !ok {
		t.Fatalf("Expected *ast.FunctionDef, got %T", program.Statements[0])
	}
	if len(fn.Decorators) != 1 {
		t.Errorf("Expected 1 decorator, got %d", len(fn.Decorators))
	}
}
