package interpreter

import "sol25/pkg/runtime"

// RegisterBuiltins constructs the seven built-in classes and wires their
// native method tables into a fresh Registry. It must run before any
// user classes are merged in, since every user class's ultimate
// ancestor is Object.
func RegisterBuiltins(reg *runtime.Registry) error {
	object := &runtime.Class{Name: "Object", Selector: map[string]*runtime.Method{}}
	registerObjectMethods(object)
	if err := reg.Register(object); err != nil {
		return err
	}

	integer := &runtime.Class{Name: "Integer", Parent: object, Selector: map[string]*runtime.Method{}}
	registerIntegerMethods(integer)
	if err := reg.Register(integer); err != nil {
		return err
	}

	stringClass := &runtime.Class{Name: "String", Parent: object, Selector: map[string]*runtime.Method{}}
	registerStringMethods(stringClass)
	if err := reg.Register(stringClass); err != nil {
		return err
	}

	trueClass := &runtime.Class{Name: "True", Parent: object, Selector: map[string]*runtime.Method{}}
	registerTrueMethods(trueClass)
	if err := reg.Register(trueClass); err != nil {
		return err
	}

	falseClass := &runtime.Class{Name: "False", Parent: object, Selector: map[string]*runtime.Method{}}
	registerFalseMethods(falseClass)
	if err := reg.Register(falseClass); err != nil {
		return err
	}

	nilClass := &runtime.Class{Name: "Nil", Parent: object, Selector: map[string]*runtime.Method{}}
	nilClass.Selector["isNil"] = runtime.NewNativeMethod("isNil", constTrue)
	if err := reg.Register(nilClass); err != nil {
		return err
	}

	block := &runtime.Class{Name: "Block", Parent: object, Selector: map[string]*runtime.Method{}}
	registerBlockMethods(block)
	if err := reg.Register(block); err != nil {
		return err
	}

	return nil
}
