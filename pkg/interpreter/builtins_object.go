package interpreter

import (
	"math/big"

	"sol25/pkg/runtime"
)

// registerObjectMethods installs the methods every SOL25 value inherits
// by default, whether or not its own class overrides them.
func registerObjectMethods(object *runtime.Class) {
	object.Selector["new"] = runtime.NewNativeMethod("new", objectNew)
	object.Selector["from:"] = runtime.NewNativeMethod("from:", objectFrom)
	object.Selector["identicalTo:"] = runtime.NewNativeMethod("identicalTo:", objectIdenticalTo)
	object.Selector["equalTo:"] = runtime.NewNativeMethod("equalTo:", objectEqualTo)
	object.Selector["asString"] = runtime.NewNativeMethod("asString", objectAsString)
	object.Selector["isNumber"] = runtime.NewNativeMethod("isNumber", constFalse)
	object.Selector["isString"] = runtime.NewNativeMethod("isString", constFalse)
	object.Selector["isBlock"] = runtime.NewNativeMethod("isBlock", constFalse)
	object.Selector["isNil"] = runtime.NewNativeMethod("isNil", constFalse)
}

func objectNew(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	return runtime.NewObject(receiver.Class), nil
}

func objectFrom(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	if len(args) != 1 {
		return nil, runtime.NewError(runtime.TypeMismatch, "from: expects exactly one argument")
	}
	return runtime.NewValue(receiver.Class, clonePayload(args[0].Payload)), nil
}

func clonePayload(p runtime.Payload) runtime.Payload {
	switch v := p.(type) {
	case runtime.IntPayload:
		return runtime.IntPayload{Val: runtime.CloneBigInt(v.Val)}
	case nil:
		return nil
	default:
		// StringPayload and BlockPayload are immutable value copies;
		// no aliasing concern in either case.
		return p
	}
}

func objectIdenticalTo(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	if len(args) != 1 {
		return nil, runtime.NewError(runtime.TypeMismatch, "identicalTo: expects exactly one argument")
	}
	return boolResult(ctx, runtime.IdenticalTo(receiver, args[0]))
}

func objectEqualTo(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	if len(args) != 1 {
		return nil, runtime.NewError(runtime.TypeMismatch, "equalTo: expects exactly one argument")
	}
	other := args[0]
	if receiver.Payload == nil && other.Payload == nil {
		return boolResult(ctx, runtime.IdenticalTo(receiver, other))
	}
	return boolResult(ctx, payloadEqual(receiver.Payload, other.Payload))
}

func payloadEqual(a, b runtime.Payload) bool {
	switch av := a.(type) {
	case runtime.IntPayload:
		bv, ok := b.(runtime.IntPayload)
		return ok && av.Val.Cmp(bv.Val) == 0
	case runtime.StringPayload:
		bv, ok := b.(runtime.StringPayload)
		return ok && av.Val == bv.Val
	default:
		return a == nil && b == nil
	}
}

func objectAsString(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	return stringClassValue(ctx, "")
}

func constFalse(ctx *runtime.NativeContext, receiver *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	return boolResult(ctx, false)
}

// boolResult and stringClassValue need the registry to look up the
// True/False/String classes; native methods only ever receive the
// class they're dispatched on, not the cached evaluator, so they look
// the singleton classes up through ctx.Registry each time.
func boolResult(ctx *runtime.NativeContext, b bool) (*runtime.Value, error) {
	name := "False"
	if b {
		name = "True"
	}
	class, err := ctx.Registry.Find(name)
	if err != nil {
		return nil, err
	}
	return runtime.NewSingleton(class), nil
}

func stringClassValue(ctx *runtime.NativeContext, s string) (*runtime.Value, error) {
	class, err := ctx.Registry.Find("String")
	if err != nil {
		return nil, err
	}
	return runtime.NewValue(class, runtime.StringPayload{Val: s}), nil
}

func nilClassValue(ctx *runtime.NativeContext) (*runtime.Value, error) {
	class, err := ctx.Registry.Find("Nil")
	if err != nil {
		return nil, err
	}
	return runtime.NewSingleton(class), nil
}

func intClassValue(ctx *runtime.NativeContext, n *big.Int) (*runtime.Value, error) {
	class, err := ctx.Registry.Find("Integer")
	if err != nil {
		return nil, err
	}
	return runtime.NewValue(class, runtime.IntPayload{Val: n}), nil
}
