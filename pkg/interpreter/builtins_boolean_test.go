package interpreter

import (
	"testing"

	"sol25/pkg/ast"
)

func boolLiteral(b bool) *ast.Literal {
	if b {
		return ast.NewLiteral("True", "")
	}
	return ast.NewLiteral("False", "")
}

func TestNotNotIsIdentity(t *testing.T) {
	eval := newTestEvaluator(t)
	for _, b := range []bool{true, false} {
		env := eval.Global.Extend()
		env.Set("self", eval.nilValue())
		send := ast.NewSend(ast.NewSend(boolLiteral(b), "not", nil), "not", nil)
		v, err := eval.EvalExpression(send, env)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := "False"
		if b {
			want = "True"
		}
		if v.Class.Name != want {
			t.Fatalf("not-not(%v): expected %s, got %s", b, want, v.Class.Name)
		}
	}
}

// TestFalseAndShortCircuits verifies the argument block is never
// invoked when the receiver is False: the block sends an unknown
// selector, so invoking it would fail with DoesNotUnderstand.
func TestFalseAndShortCircuits(t *testing.T) {
	eval := newTestEvaluator(t)
	env := eval.Global.Extend()
	env.Set("self", eval.nilValue())

	body := ast.NewBlock(nil, []*ast.Statement{ast.NewStatement("r", ast.NewSend(intLiteral("1"), "foo", nil))})
	blockLit := ast.NewBlockLiteral(body)

	send := ast.NewSend(boolLiteral(false), "and:", []ast.Expression{blockLit})
	v, err := eval.EvalExpression(send, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Class.Name != "False" {
		t.Fatalf("expected False, got %s", v.Class.Name)
	}
}

func TestTrueAndCoercesNonBooleanResultToFalse(t *testing.T) {
	eval := newTestEvaluator(t)
	env := eval.Global.Extend()
	env.Set("self", eval.nilValue())

	body := ast.NewBlock(nil, []*ast.Statement{ast.NewStatement("r", intLiteral("1"))})
	blockLit := ast.NewBlockLiteral(body)

	send := ast.NewSend(boolLiteral(true), "and:", []ast.Expression{blockLit})
	v, err := eval.EvalExpression(send, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Class.Name != "False" {
		t.Fatalf("expected True and: to coerce a non-Boolean block result to False, got %s", v.Class.Name)
	}
}

func TestFalseOrReturnsUncoercedBlockResult(t *testing.T) {
	eval := newTestEvaluator(t)
	env := eval.Global.Extend()
	env.Set("self", eval.nilValue())

	body := ast.NewBlock(nil, []*ast.Statement{ast.NewStatement("r", intLiteral("5"))})
	blockLit := ast.NewBlockLiteral(body)

	send := ast.NewSend(boolLiteral(false), "or:", []ast.Expression{blockLit})
	v, err := eval.EvalExpression(send, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Class.Name != "Integer" {
		t.Fatalf("expected or: to pass through the raw Integer result, got %s", v.Class.Name)
	}
}

func TestIfTrueIfFalseSelectsCorrectBranch(t *testing.T) {
	eval := newTestEvaluator(t)
	env := eval.Global.Extend()
	env.Set("self", eval.nilValue())

	thenBlock := ast.NewBlockLiteral(ast.NewBlock(nil, []*ast.Statement{ast.NewStatement("r", intLiteral("1"))}))
	elseBlock := ast.NewBlockLiteral(ast.NewBlock(nil, []*ast.Statement{ast.NewStatement("r", intLiteral("2"))}))

	send := ast.NewSend(boolLiteral(true), "ifTrue:ifFalse:", []ast.Expression{thenBlock, elseBlock})
	v, err := eval.EvalExpression(send, env)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n, _ := asInt(v)
	if n.String() != "1" {
		t.Fatalf("expected the then-branch result 1, got %s", n.String())
	}
}
