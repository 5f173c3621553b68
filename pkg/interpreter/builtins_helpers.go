package interpreter

import (
	"math/big"

	"sol25/pkg/ast"
	"sol25/pkg/runtime"
)

// asInt extracts the arbitrary-precision integer a value carries, if
// any. Subclass-aware: any value presenting an IntPayload qualifies,
// regardless of its exact class — see DESIGN.md.
func asInt(v *runtime.Value) (*big.Int, bool) {
	p, ok := v.Payload.(runtime.IntPayload)
	if !ok {
		return nil, false
	}
	return p.Val, true
}

func asString(v *runtime.Value) (string, bool) {
	p, ok := v.Payload.(runtime.StringPayload)
	if !ok {
		return "", false
	}
	return p.Val, true
}

func asBlock(v *runtime.Value) (*ast.Block, bool) {
	p, ok := v.Payload.(runtime.BlockPayload)
	if !ok {
		return nil, false
	}
	return p.Block, true
}

func requireInt(v *runtime.Value, context string) (*big.Int, error) {
	n, ok := asInt(v)
	if !ok {
		return nil, runtime.NewError(runtime.TypeMismatch, "%s requires an Integer argument, got %s", context, v.Class.Name)
	}
	return n, nil
}

func requireString(v *runtime.Value, context string) (string, error) {
	s, ok := asString(v)
	if !ok {
		return "", runtime.NewError(runtime.TypeMismatch, "%s requires a String argument, got %s", context, v.Class.Name)
	}
	return s, nil
}

// requireNullaryBlock validates that v is a Block value whose underlying
// block takes zero parameters, as True/False#ifTrue:ifFalse: and
// Block#whileTrue: both demand of their block-valued arguments.
func requireNullaryBlock(v *runtime.Value, context string) (*ast.Block, error) {
	b, ok := asBlock(v)
	if !ok {
		return nil, runtime.NewError(runtime.TypeMismatch, "%s requires a Block argument, got %s", context, v.Class.Name)
	}
	if len(b.ParamNames) != 0 {
		return nil, runtime.NewError(runtime.TypeMismatch, "%s requires a zero-parameter Block, got %d parameter(s)", context, len(b.ParamNames))
	}
	return b, nil
}

func isTrueValue(v *runtime.Value) bool {
	return v.Class.Name == "True"
}
