package interpreter

import (
	"testing"

	"sol25/pkg/ast"
	"sol25/pkg/runtime"
)

func evalSendResult(t *testing.T, eval *Evaluator, receiver ast.Expression, selector string, args ...ast.Expression) *runtime.Value {
	t.Helper()
	env := eval.Global.Extend()
	env.Set("self", eval.nilValue())
	send := ast.NewSend(receiver, selector, args)
	v, err := eval.EvalExpression(send, env)
	if err != nil {
		t.Fatalf("unexpected error evaluating %s: %v", selector, err)
	}
	return v
}

func TestIntegerArithmetic(t *testing.T) {
	eval := newTestEvaluator(t)
	v := evalSendResult(t, eval, intLiteral("10"), "minus:", intLiteral("3"))
	n, _ := asInt(v)
	if n.String() != "7" {
		t.Fatalf("expected 7, got %s", n.String())
	}
}

func TestIntegerPlusRejectsNonInteger(t *testing.T) {
	eval := newTestEvaluator(t)
	env := eval.Global.Extend()
	env.Set("self", eval.nilValue())
	send := ast.NewSend(intLiteral("1"), "plus:", []ast.Expression{ast.NewLiteral("String", "x")})
	_, err := eval.EvalExpression(send, env)
	if err == nil || runtime.CategoryOf(err) != runtime.TypeMismatch {
		t.Fatalf("expected TypeMismatch, got %v", err)
	}
}

func TestIntegerDivByZero(t *testing.T) {
	eval := newTestEvaluator(t)
	env := eval.Global.Extend()
	env.Set("self", eval.nilValue())
	send := ast.NewSend(intLiteral("10"), "divBy:", []ast.Expression{intLiteral("0")})
	_, err := eval.EvalExpression(send, env)
	if err == nil || runtime.CategoryOf(err) != runtime.ValueError {
		t.Fatalf("expected ValueError, got %v", err)
	}
}

// TestIntegerDivByTruncatesTowardZero covers the boundary case of a
// negative dividend: truncated division rounds toward zero, not
// toward negative infinity.
func TestIntegerDivByTruncatesTowardZero(t *testing.T) {
	eval := newTestEvaluator(t)
	v := evalSendResult(t, eval, intLiteral("-7"), "divBy:", intLiteral("2"))
	n, _ := asInt(v)
	if n.String() != "-3" {
		t.Fatalf("expected -3 (truncation toward zero), got %s", n.String())
	}
}

func TestIntegerEqualToDegradesToFalseOnTypeMismatch(t *testing.T) {
	eval := newTestEvaluator(t)
	v := evalSendResult(t, eval, intLiteral("1"), "equalTo:", ast.NewLiteral("String", "1"))
	if v.Class.Name != "False" {
		t.Fatalf("expected False, got %s", v.Class.Name)
	}
}

func TestIntegerAsStringCanonicalFormatting(t *testing.T) {
	eval := newTestEvaluator(t)
	v := evalSendResult(t, eval, intLiteral("-042"), "asString")
	s, ok := asString(v)
	if !ok || s != "-42" {
		t.Fatalf("expected canonical '-42', got %q", s)
	}
}
