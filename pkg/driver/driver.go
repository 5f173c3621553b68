package driver

import (
	"sol25/pkg/ast"
	"sol25/pkg/interpreter"
	"sol25/pkg/runtime"
)

// BuildRegistry bootstraps the built-in class library and merges in the
// user classes parsed from program, in two passes so that a class may
// name a parent declared later in the source. It fails with
// StructureError on a name collision (including a collision with a
// built-in class name) and with UndefinedClass if a parent name
// resolves to nothing.
func BuildRegistry(program *ast.Program) (*runtime.Registry, error) {
	reg := runtime.NewRegistry()
	if err := interpreter.RegisterBuiltins(reg); err != nil {
		return nil, err
	}

	userClasses := make(map[string]*runtime.Class, len(program.Classes))
	for _, c := range program.Classes {
		if reg.Has(c.Name) {
			return nil, runtime.NewError(runtime.StructureError, "class '%s' collides with a built-in class", c.Name)
		}
		if _, dup := userClasses[c.Name]; dup {
			return nil, runtime.NewError(runtime.StructureError, "class '%s' is already defined", c.Name)
		}
		userClasses[c.Name] = &runtime.Class{Name: c.Name, Selector: map[string]*runtime.Method{}}
	}

	for _, c := range program.Classes {
		class := userClasses[c.Name]
		parent, err := resolveParent(reg, userClasses, c.ParentName)
		if err != nil {
			return nil, err
		}
		class.Parent = parent
		for _, m := range c.Methods {
			class.Selector[m.Selector] = runtime.NewUserMethod(m.Selector, m.Body)
		}
	}

	for _, c := range program.Classes {
		if err := reg.Register(userClasses[c.Name]); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func resolveParent(reg *runtime.Registry, userClasses map[string]*runtime.Class, parentName string) (*runtime.Class, error) {
	if parentName == "" {
		return nil, nil
	}
	if c, ok := userClasses[parentName]; ok {
		return c, nil
	}
	return reg.Find(parentName)
}

// Run bootstraps a registry from program, locates Main's parameterless
// run method, instantiates Main, and executes it. It returns the
// result value on success and a *runtime.RuntimeError on any failure —
// front-end, bootstrap, or evaluation.
func Run(program *ast.Program, opts RunOptions) (*runtime.Value, error) {
	reg, err := BuildRegistry(program)
	if err != nil {
		return nil, err
	}

	mainClass, err := reg.Find("Main")
	if err != nil {
		return nil, runtime.NewError(runtime.UndefinedClass, "program defines no Main class")
	}
	if !reg.HasMethod(mainClass, "run") {
		return nil, runtime.NewError(runtime.UndefinedClass, "Main does not define 'run'")
	}
	method, _, err := reg.FindMethod(mainClass, "run")
	if err != nil {
		return nil, err
	}
	if method.Kind != runtime.MethodUser {
		return nil, runtime.NewError(runtime.InternalError, "Main#run resolved to a native method")
	}
	if len(method.Body.ParamNames) != 0 {
		return nil, runtime.NewError(runtime.StructureError, "Main#run must take no parameters")
	}

	eval, err := interpreter.New(reg, opts.Stdin, opts.Stdout)
	if err != nil {
		return nil, err
	}
	eval.Trace = opts.Trace
	eval.MaxSends = opts.MaxSends

	global := runtime.NewEnvironment(nil)
	eval.Global = global

	mainInstance := runtime.NewObject(mainClass)
	return eval.EvalBlock(method.Body, mainInstance, nil, global)
}

// RunOptions carries the ambient behavior a caller wants the run to
// have, mirroring RunConfig but decoupled from YAML so callers built
// entirely from command-line flags don't need a config file.
type RunOptions struct {
	Stdin    interpreter.LineSource
	Stdout   interpreter.StringSink
	Trace    func(receiverClass, selector string, argCount int)
	MaxSends int
}
