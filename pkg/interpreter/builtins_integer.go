package interpreter

import (
	"math/big"

	"sol25/pkg/runtime"
)

func registerIntegerMethods(integer *runtime.Class) {
	integer.Selector["plus:"] = runtime.NewNativeMethod("plus:", intPlus)
	integer.Selector["minus:"] = runtime.NewNativeMethod("minus:", intMinus)
	integer.Selector["multiplyBy:"] = runtime.NewNativeMethod("multiplyBy:", intMultiplyBy)
	integer.Selector["divBy:"] = runtime.NewNativeMethod("divBy:", intDivBy)
	integer.Selector["greaterThan:"] = runtime.NewNativeMethod("greaterThan:", intGreaterThan)
	integer.Selector["equalTo:"] = runtime.NewNativeMethod("equalTo:", intEqualTo)
	integer.Selector["asString"] = runtime.NewNativeMethod("asString", intAsString)
	integer.Selector["isNumber"] = runtime.NewNativeMethod("isNumber", constTrue)
}

func constTrue(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	return boolResult(ctx, true)
}

func intReceiver(receiver *runtime.Value) (*big.Int, error) {
	n, ok := asInt(receiver)
	if !ok {
		return nil, runtime.NewError(runtime.InternalError, "Integer method invoked on non-Integer receiver")
	}
	return n, nil
}

func binaryIntArg(context string, args []*runtime.Value) (*big.Int, error) {
	if len(args) != 1 {
		return nil, runtime.NewError(runtime.TypeMismatch, "%s expects exactly one argument", context)
	}
	return requireInt(args[0], context)
}

func intPlus(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	a, err := intReceiver(receiver)
	if err != nil {
		return nil, err
	}
	b, err := binaryIntArg("plus:", args)
	if err != nil {
		return nil, err
	}
	return intClassValue(ctx, new(big.Int).Add(a, b))
}

func intMinus(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	a, err := intReceiver(receiver)
	if err != nil {
		return nil, err
	}
	b, err := binaryIntArg("minus:", args)
	if err != nil {
		return nil, err
	}
	return intClassValue(ctx, new(big.Int).Sub(a, b))
}

func intMultiplyBy(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	a, err := intReceiver(receiver)
	if err != nil {
		return nil, err
	}
	b, err := binaryIntArg("multiplyBy:", args)
	if err != nil {
		return nil, err
	}
	return intClassValue(ctx, new(big.Int).Mul(a, b))
}

// intDivBy implements truncated (round-toward-zero) integer division, as
// opposed to big.Int's Div/Mod which are Euclidean. Go's Quo/Rem truncate
// toward zero, matching the required semantics directly.
func intDivBy(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	a, err := intReceiver(receiver)
	if err != nil {
		return nil, err
	}
	b, err := binaryIntArg("divBy:", args)
	if err != nil {
		return nil, err
	}
	if b.Sign() == 0 {
		return nil, runtime.NewError(runtime.ValueError, "division by zero")
	}
	return intClassValue(ctx, new(big.Int).Quo(a, b))
}

func intGreaterThan(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	a, err := intReceiver(receiver)
	if err != nil {
		return nil, err
	}
	b, err := binaryIntArg("greaterThan:", args)
	if err != nil {
		return nil, err
	}
	return boolResult(ctx, a.Cmp(b) > 0)
}

// intEqualTo degrades gracefully to False for a non-Integer argument
// rather than raising TypeMismatch, matching equalTo:'s role as a safe
// comparison any receiver can answer.
func intEqualTo(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	a, err := intReceiver(receiver)
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, runtime.NewError(runtime.TypeMismatch, "equalTo: expects exactly one argument")
	}
	b, ok := asInt(args[0])
	if !ok {
		return boolResult(ctx, false)
	}
	return boolResult(ctx, a.Cmp(b) == 0)
}

func intAsString(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	a, err := intReceiver(receiver)
	if err != nil {
		return nil, err
	}
	return stringClassValue(ctx, a.String())
}
