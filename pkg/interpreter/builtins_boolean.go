package interpreter

import "sol25/pkg/runtime"

func registerTrueMethods(trueClass *runtime.Class) {
	trueClass.Selector["not"] = runtime.NewNativeMethod("not", func(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return boolResult(ctx, false)
	})
	trueClass.Selector["and:"] = runtime.NewNativeMethod("and:", trueAnd)
	trueClass.Selector["or:"] = runtime.NewNativeMethod("or:", trueOr)
	trueClass.Selector["ifTrue:ifFalse:"] = runtime.NewNativeMethod("ifTrue:ifFalse:", ifTrueIfFalse)
}

func registerFalseMethods(falseClass *runtime.Class) {
	falseClass.Selector["not"] = runtime.NewNativeMethod("not", func(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		return boolResult(ctx, true)
	})
	falseClass.Selector["and:"] = runtime.NewNativeMethod("and:", falseAnd)
	falseClass.Selector["or:"] = runtime.NewNativeMethod("or:", falseOr)
	falseClass.Selector["ifTrue:ifFalse:"] = runtime.NewNativeMethod("ifTrue:ifFalse:", ifTrueIfFalse)
}

func oneBlockArg(context string, args []*runtime.Value) (*runtime.Value, error) {
	if len(args) != 1 {
		return nil, runtime.NewError(runtime.TypeMismatch, "%s expects exactly one argument", context)
	}
	if _, err := requireNullaryBlock(args[0], context); err != nil {
		return nil, err
	}
	return args[0], nil
}

// trueAnd invokes the argument block and coerces its result to a
// Boolean: True only if the block's result is itself of class True.
func trueAnd(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	block, err := oneBlockArg("and:", args)
	if err != nil {
		return nil, err
	}
	result, err := ctx.Invoke(block, nil)
	if err != nil {
		return nil, err
	}
	return boolResult(ctx, isTrueValue(result))
}

// falseAnd short-circuits: the argument block is never invoked.
func falseAnd(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	if _, err := oneBlockArg("and:", args); err != nil {
		return nil, err
	}
	return boolResult(ctx, false)
}

// trueOr short-circuits: the argument block is never invoked.
func trueOr(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	if _, err := oneBlockArg("or:", args); err != nil {
		return nil, err
	}
	return boolResult(ctx, true)
}

// falseOr invokes the argument block and answers its result verbatim,
// uncoerced — unlike and:, or: does not force the result to a Boolean.
func falseOr(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	block, err := oneBlockArg("or:", args)
	if err != nil {
		return nil, err
	}
	return ctx.Invoke(block, nil)
}

func ifTrueIfFalse(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	if len(args) != 2 {
		return nil, runtime.NewError(runtime.TypeMismatch, "ifTrue:ifFalse: expects exactly two arguments")
	}
	if _, err := requireNullaryBlock(args[0], "ifTrue:ifFalse:"); err != nil {
		return nil, err
	}
	if _, err := requireNullaryBlock(args[1], "ifTrue:ifFalse:"); err != nil {
		return nil, err
	}
	if isTrueValue(receiver) {
		return ctx.Invoke(args[0], nil)
	}
	return ctx.Invoke(args[1], nil)
}
