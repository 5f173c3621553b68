package interpreter

import "sol25/pkg/runtime"

func registerBlockMethods(block *runtime.Class) {
	block.Selector["value"] = runtime.NewNativeMethod("value", blockValue)
	block.Selector["value:"] = runtime.NewNativeMethod("value:", blockValue)
	block.Selector["value:value:"] = runtime.NewNativeMethod("value:value:", blockValue)
	block.Selector["whileTrue:"] = runtime.NewNativeMethod("whileTrue:", blockWhileTrue)
	block.Selector["isBlock"] = runtime.NewNativeMethod("isBlock", constTrue)
}

// blockValue backs value, value:, and value:value: uniformly: the
// selector names the arity, and InvokeBlock itself enforces that it
// matches the block's own parameter count.
func blockValue(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	return ctx.Invoke(receiver, args)
}

// blockWhileTrue requires both the receiver and the argument to be
// zero-parameter blocks; it repeats invoking the argument for as long
// as invoking the receiver answers a value of class True. The loop
// itself always answers Nil.
func blockWhileTrue(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	if _, err := requireNullaryBlock(receiver, "whileTrue:"); err != nil {
		return nil, err
	}
	if len(args) != 1 {
		return nil, runtime.NewError(runtime.TypeMismatch, "whileTrue: expects exactly one argument")
	}
	if _, err := requireNullaryBlock(args[0], "whileTrue:"); err != nil {
		return nil, err
	}
	for {
		cond, err := ctx.Invoke(receiver, nil)
		if err != nil {
			return nil, err
		}
		if !isTrueValue(cond) {
			return nilClassValue(ctx)
		}
		if _, err := ctx.Invoke(args[0], nil); err != nil {
			return nil, err
		}
	}
}
