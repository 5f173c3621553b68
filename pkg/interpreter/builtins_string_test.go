package interpreter

import (
	"testing"

	"sol25/pkg/ast"
)

func TestStringConcatenateWith(t *testing.T) {
	eval := newTestEvaluator(t)
	v := evalSendResult(t, eval, ast.NewLiteral("String", "hello "), "concatenateWith:", ast.NewLiteral("String", "world"))
	s, _ := asString(v)
	if s != "hello world" {
		t.Fatalf("expected 'hello world', got %q", s)
	}
}

func TestStringConcatenateWithNonStringYieldsNil(t *testing.T) {
	eval := newTestEvaluator(t)
	v := evalSendResult(t, eval, ast.NewLiteral("String", "hello"), "concatenateWith:", intLiteral("1"))
	if v.Class.Name != "Nil" {
		t.Fatalf("expected Nil, got %s", v.Class.Name)
	}
}

func TestStringAsIntegerStrictDecimal(t *testing.T) {
	eval := newTestEvaluator(t)
	v := evalSendResult(t, eval, ast.NewLiteral("String", "-17"), "asInteger")
	n, ok := asInt(v)
	if !ok || n.String() != "-17" {
		t.Fatalf("expected -17, got %#v", v)
	}
}

func TestStringAsIntegerRejectsGarbage(t *testing.T) {
	eval := newTestEvaluator(t)
	v := evalSendResult(t, eval, ast.NewLiteral("String", "12x"), "asInteger")
	if v.Class.Name != "Nil" {
		t.Fatalf("expected Nil for a non-decimal string, got %s", v.Class.Name)
	}
}

// TestStringStartsWithEndsBeforeEmptyBoundary covers the boundary case
// where start equals end: the result must be an empty string, not Nil.
func TestStringStartsWithEndsBeforeEmptyBoundary(t *testing.T) {
	eval := newTestEvaluator(t)
	v := evalSendResult(t, eval, ast.NewLiteral("String", "hello"), "startsWith:endsBefore:", intLiteral("3"), intLiteral("3"))
	s, ok := asString(v)
	if !ok || s != "" {
		t.Fatalf("expected an empty string, got %#v", v)
	}
}

func TestStringStartsWithEndsBeforeSlice(t *testing.T) {
	eval := newTestEvaluator(t)
	v := evalSendResult(t, eval, ast.NewLiteral("String", "hello"), "startsWith:endsBefore:", intLiteral("2"), intLiteral("5"))
	s, _ := asString(v)
	if s != "ell" {
		t.Fatalf("expected 'ell', got %q", s)
	}
}

func TestStringEqualToFalseOnNonString(t *testing.T) {
	eval := newTestEvaluator(t)
	v := evalSendResult(t, eval, ast.NewLiteral("String", "x"), "equalTo:", intLiteral("1"))
	if v.Class.Name != "False" {
		t.Fatalf("expected False, got %s", v.Class.Name)
	}
}

func TestStringPrintWritesVerbatim(t *testing.T) {
	reg := runtimeRegistryWithBuiltins(t)
	var written string
	eval, err := New(reg, func() (string, bool) { return "", false }, func(s string) { written += s })
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	eval.Global = globalEnv()

	evalSendResult(t, eval, ast.NewLiteral("String", "hi"), "print")
	if written != "hi" {
		t.Fatalf("expected stdout to receive 'hi' verbatim, got %q", written)
	}
}

func TestStringReadReturnsNextLine(t *testing.T) {
	reg := runtimeRegistryWithBuiltins(t)
	lines := []string{"first line"}
	idx := 0
	eval, err := New(reg, func() (string, bool) {
		if idx >= len(lines) {
			return "", false
		}
		line := lines[idx]
		idx++
		return line, true
	}, func(string) {})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	eval.Global = globalEnv()

	v := evalSendResult(t, eval, ast.NewLiteral("String", ""), "read")
	s, _ := asString(v)
	if s != "first line" {
		t.Fatalf("expected 'first line', got %q", s)
	}
}
