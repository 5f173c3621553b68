package interpreter

import (
	"math/big"
	"testing"

	"sol25/pkg/ast"
	"sol25/pkg/runtime"
)

func newTestEvaluator(t *testing.T) *Evaluator {
	reg := runtime.NewRegistry()
	if err := RegisterBuiltins(reg); err != nil {
		t.Fatalf("RegisterBuiltins: %v", err)
	}
	eval, err := New(reg, func() (string, bool) { return "", false }, func(string) {})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	eval.Global = runtime.NewEnvironment(nil)
	return eval
}

func intLiteral(s string) *ast.Literal { return ast.NewLiteral("Integer", s) }

func runtimeRegistryWithBuiltins(t *testing.T) *runtime.Registry {
	t.Helper()
	reg := runtime.NewRegistry()
	if err := RegisterBuiltins(reg); err != nil {
		t.Fatalf("RegisterBuiltins: %v", err)
	}
	return reg
}

func globalEnv() *runtime.Environment {
	return runtime.NewEnvironment(nil)
}

func TestEvalExpressionIntegerLiteral(t *testing.T) {
	eval := newTestEvaluator(t)
	env := eval.Global.Extend()
	v, err := eval.EvalExpression(intLiteral("42"), env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, ok := asInt(v)
	if !ok || n.String() != "42" {
		t.Fatalf("expected Integer 42, got %#v", v)
	}
}

func TestEvalExpressionUndefinedVariable(t *testing.T) {
	eval := newTestEvaluator(t)
	env := eval.Global.Extend()
	_, err := eval.EvalExpression(ast.NewVariable("ghost"), env)
	if err == nil {
		t.Fatalf("expected an error for an undefined variable")
	}
	if runtime.CategoryOf(err) != runtime.UndefinedClass {
		t.Fatalf("expected UndefinedClass, got %v", runtime.CategoryOf(err))
	}
}

func TestEvalBlockArityMismatch(t *testing.T) {
	eval := newTestEvaluator(t)
	block := ast.NewBlock([]string{"a", "b"}, nil)
	_, err := eval.EvalBlock(block, eval.nilValue(), []*runtime.Value{eval.nilValue()}, eval.Global)
	if err == nil {
		t.Fatalf("expected an arity mismatch error")
	}
	if runtime.CategoryOf(err) != runtime.TypeMismatch {
		t.Fatalf("expected TypeMismatch, got %v", runtime.CategoryOf(err))
	}
}

func TestEvalBlockEmptyReturnsNil(t *testing.T) {
	eval := newTestEvaluator(t)
	block := ast.NewBlock(nil, nil)
	v, err := eval.EvalBlock(block, eval.nilValue(), nil, eval.Global)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Class.Name != "Nil" {
		t.Fatalf("expected Nil, got class %q", v.Class.Name)
	}
}

func TestDispatchSendsToIntegerBuiltin(t *testing.T) {
	eval := newTestEvaluator(t)
	env := eval.Global.Extend()
	send := ast.NewSend(intLiteral("1"), "plus:", []ast.Expression{intLiteral("2")})
	v, err := eval.EvalExpression(send, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, ok := asInt(v)
	if !ok || n.String() != "3" {
		t.Fatalf("expected 3, got %#v", v)
	}
}

func TestDispatchDoesNotUnderstand(t *testing.T) {
	eval := newTestEvaluator(t)
	env := eval.Global.Extend()
	send := ast.NewSend(intLiteral("1"), "foo", nil)
	_, err := eval.EvalExpression(send, env)
	if err == nil {
		t.Fatalf("expected an error")
	}
	if runtime.CategoryOf(err) != runtime.DoesNotUnderstand {
		t.Fatalf("expected DoesNotUnderstand, got %v", runtime.CategoryOf(err))
	}
}

// TestAttributeFallbackRoundTrip exercises the self-attribute-access
// dispatch rule directly: writing `self x: 42` then reading `self x`.
func TestAttributeFallbackRoundTrip(t *testing.T) {
	eval := newTestEvaluator(t)
	plainClass := &runtime.Class{Name: "C", Parent: nil, Selector: map[string]*runtime.Method{}}
	eval.Registry.Register(plainClass)

	instance := runtime.NewObject(plainClass)
	frame := eval.Global.Extend()
	frame.Set("self", instance)

	write := ast.NewSend(ast.NewVariable("self"), "x:", []ast.Expression{intLiteral("42")})
	if _, err := eval.EvalExpression(write, frame); err != nil {
		t.Fatalf("unexpected error writing attribute: %v", err)
	}

	read := ast.NewSend(ast.NewVariable("self"), "x", nil)
	v, err := eval.EvalExpression(read, frame)
	if err != nil {
		t.Fatalf("unexpected error reading attribute: %v", err)
	}
	n, ok := asInt(v)
	if !ok || n.String() != "42" {
		t.Fatalf("expected attribute x to read back 42, got %#v", v)
	}
}

func TestBlockClosureCapturesDefiningEnvironment(t *testing.T) {
	eval := newTestEvaluator(t)
	outer := eval.Global.Extend()
	outer.Set("self", eval.nilValue())
	outer.Set("captured", mustIntValue(t, 99))

	blockAST := ast.NewBlock(nil, []*ast.Statement{
		ast.NewStatement("result", ast.NewVariable("captured")),
	})
	blockLit := ast.NewBlockLiteral(blockAST)

	blockValue, err := eval.EvalExpression(blockLit, outer)
	if err != nil {
		t.Fatalf("unexpected error reifying block: %v", err)
	}

	// InvokeBlock resolves 'self' and every free variable through the
	// block's own closure, never through whatever environment happens
	// to be calling it.
	result, err := eval.InvokeBlock(blockValue, nil)
	if err != nil {
		t.Fatalf("unexpected error invoking block: %v", err)
	}
	n, ok := asInt(result)
	if !ok || n.String() != "99" {
		t.Fatalf("expected the closure to resolve 'captured' to 99, got %#v", result)
	}
}

func mustIntValue(t *testing.T, n int64) *runtime.Value {
	t.Helper()
	return &runtime.Value{Class: &runtime.Class{Name: "Integer"}, Payload: runtime.IntPayload{Val: big.NewInt(n)}}
}
