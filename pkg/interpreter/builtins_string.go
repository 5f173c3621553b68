package interpreter

import (
	"math/big"
	"strings"

	"sol25/pkg/runtime"
)

func registerStringMethods(stringClass *runtime.Class) {
	stringClass.Selector["equalTo:"] = runtime.NewNativeMethod("equalTo:", stringEqualTo)
	stringClass.Selector["concatenateWith:"] = runtime.NewNativeMethod("concatenateWith:", stringConcatenateWith)
	stringClass.Selector["asInteger"] = runtime.NewNativeMethod("asInteger", stringAsInteger)
	stringClass.Selector["startsWith:endsBefore:"] = runtime.NewNativeMethod("startsWith:endsBefore:", stringStartsWithEndsBefore)
	stringClass.Selector["print"] = runtime.NewNativeMethod("print", stringPrint)
	stringClass.Selector["read"] = runtime.NewNativeMethod("read", stringRead)
	stringClass.Selector["isString"] = runtime.NewNativeMethod("isString", constTrue)
}

func stringReceiver(receiver *runtime.Value) (string, error) {
	s, ok := asString(receiver)
	if !ok {
		return "", runtime.NewError(runtime.InternalError, "String method invoked on non-String receiver")
	}
	return s, nil
}

// stringEqualTo answers False for any non-String argument rather than
// raising, matching equalTo:'s role as a safe comparison.
func stringEqualTo(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	s, err := stringReceiver(receiver)
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, runtime.NewError(runtime.TypeMismatch, "equalTo: expects exactly one argument")
	}
	other, ok := asString(args[0])
	if !ok {
		return boolResult(ctx, false)
	}
	return boolResult(ctx, s == other)
}

// stringConcatenateWith answers Nil, rather than raising, when the
// argument is not a String — matching the domain's convention of Nil as
// a non-fatal "no result" signal for operations whose argument type
// can't be relied on to come from trusted call sites.
func stringConcatenateWith(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	s, err := stringReceiver(receiver)
	if err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, runtime.NewError(runtime.TypeMismatch, "concatenateWith: expects exactly one argument")
	}
	other, ok := asString(args[0])
	if !ok {
		return nilClassValue(ctx)
	}
	return stringClassValue(ctx, s+other)
}

// stringAsInteger parses a strict decimal integer, an optional leading
// "-" followed by one or more digits, with no surrounding whitespace.
// Anything else yields Nil rather than a fatal error.
func stringAsInteger(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	s, err := stringReceiver(receiver)
	if err != nil {
		return nil, err
	}
	digits := s
	if strings.HasPrefix(digits, "-") {
		digits = digits[1:]
	}
	if digits == "" {
		return nilClassValue(ctx)
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return nilClassValue(ctx)
		}
	}
	n := new(big.Int)
	if _, ok := n.SetString(s, 10); !ok {
		return nilClassValue(ctx)
	}
	return intClassValue(ctx, n)
}

// stringStartsWithEndsBefore implements a 1-based, half-open substring
// slice: characters at positions [start, end). Both bounds must be
// positive Integers; an end at or before start yields the empty string
// rather than an error. Any other rule violation (non-Integer argument,
// non-positive bound, bounds outside the receiver) yields Nil.
func stringStartsWithEndsBefore(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	s, err := stringReceiver(receiver)
	if err != nil {
		return nil, err
	}
	if len(args) != 2 {
		return nil, runtime.NewError(runtime.TypeMismatch, "startsWith:endsBefore: expects exactly two arguments")
	}
	start, ok := asInt(args[0])
	if !ok || start.Sign() <= 0 {
		return nilClassValue(ctx)
	}
	end, ok := asInt(args[1])
	if !ok || end.Sign() <= 0 {
		return nilClassValue(ctx)
	}
	startIdx := int(start.Int64())
	endIdx := int(end.Int64())
	if endIdx <= startIdx {
		return stringClassValue(ctx, "")
	}
	runes := []rune(s)
	if startIdx-1 < 0 || endIdx-1 > len(runes) {
		return nilClassValue(ctx)
	}
	return stringClassValue(ctx, string(runes[startIdx-1:endIdx-1]))
}

func stringPrint(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	s, err := stringReceiver(receiver)
	if err != nil {
		return nil, err
	}
	ctx.Stdout(s)
	return receiver, nil
}

// stringRead consumes exactly one line from standard input, stripping
// the trailing newline the way Stdin's LineReader contract promises. At
// EOF with nothing left to read it answers the empty String rather than
// raising.
func stringRead(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	line, _ := ctx.Stdin()
	return stringClassValue(ctx, line)
}
