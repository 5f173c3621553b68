// Package interpreter implements the SOL25 evaluator: the recursive
// block/statement/expression walker and the message-dispatch core that
// ties user code to the built-in library (see builtins_*.go).
package interpreter

import (
	"math/big"

	"sol25/pkg/ast"
	"sol25/pkg/runtime"
)

// Evaluator drives evaluation of a SOL25 AST against a class Registry.
// The registry is populated once during bootstrap and treated as
// read-only from here on; it is held as an explicit field rather than
// package-level state so a process can in principle run more than one
// program without sharing mutable globals between them.
type Evaluator struct {
	Registry *runtime.Registry
	Global   *runtime.Environment

	Stdin  LineSource
	Stdout StringSink

	// Trace, when set, is called before every dispatched send with the
	// receiver's class name, the selector, and the argument count —
	// ambient diagnostics, not a debugger: it observes, it cannot alter
	// control flow or step execution.
	Trace func(receiverClass, selector string, argCount int)

	// MaxSends bounds the number of steps (message sends plus block
	// invocations through InvokeBlock) a single run may perform before
	// the evaluator gives up with InternalError, guarding an embedding
	// host against a runaway program. Zero means unbounded.
	MaxSends int
	sends    int

	classObject *runtime.Class
	classInt    *runtime.Class
	classString *runtime.Class
	classTrue   *runtime.Class
	classFalse  *runtime.Class
	classNil    *runtime.Class
	classBlock  *runtime.Class
}

// LineSource reads one line of input, mirroring String#read. The bool
// result is false only on EOF with nothing read.
type LineSource func() (string, bool)

// StringSink writes text verbatim, mirroring String#print.
type StringSink func(string)

// New builds an Evaluator over a bootstrapped registry. It fails if any
// of the seven built-in classes is missing — that would mean bootstrap
// ran incompletely, an internal defect rather than a program error.
func New(registry *runtime.Registry, stdin LineSource, stdout StringSink) (*Evaluator, error) {
	e := &Evaluator{Registry: registry, Stdin: stdin, Stdout: stdout}
	var err error
	for name, slot := range map[string]**runtime.Class{
		"Object":  &e.classObject,
		"Integer": &e.classInt,
		"String":  &e.classString,
		"True":    &e.classTrue,
		"False":   &e.classFalse,
		"Nil":     &e.classNil,
		"Block":   &e.classBlock,
	} {
		*slot, err = registry.Find(name)
		if err != nil {
			return nil, runtime.NewError(runtime.InternalError, "bootstrap incomplete: built-in class %q missing", name)
		}
	}
	return e, nil
}

func (e *Evaluator) nilValue() *runtime.Value   { return runtime.NewSingleton(e.classNil) }
func (e *Evaluator) trueValue() *runtime.Value  { return runtime.NewSingleton(e.classTrue) }
func (e *Evaluator) falseValue() *runtime.Value { return runtime.NewSingleton(e.classFalse) }

func (e *Evaluator) boolValue(b bool) *runtime.Value {
	if b {
		return e.trueValue()
	}
	return e.falseValue()
}

// EvalBlock constructs a fresh frame linked to callerEnv, binds the
// formal parameters to args positionally, binds self to receiver, and
// executes the block's statements in order. An empty block returns Nil.
func (e *Evaluator) EvalBlock(block *ast.Block, receiver *runtime.Value, args []*runtime.Value, callerEnv *runtime.Environment) (*runtime.Value, error) {
	if len(args) != len(block.ParamNames) {
		return nil, runtime.NewError(runtime.TypeMismatch, "arity mismatch: block expects %d argument(s), got %d", len(block.ParamNames), len(args))
	}
	frame := callerEnv.Extend()
	for i, name := range block.ParamNames {
		frame.Set(name, args[i])
	}
	frame.Set("self", receiver)

	result := e.nilValue()
	for _, stmt := range block.Statements {
		v, err := e.EvalStatement(stmt, frame)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// EvalStatement evaluates stmt's expression, writes the result into
// env's current frame under stmt's target name, and returns that value.
func (e *Evaluator) EvalStatement(stmt *ast.Statement, env *runtime.Environment) (*runtime.Value, error) {
	v, err := e.EvalExpression(stmt.Expr, env)
	if err != nil {
		return nil, err
	}
	env.Set(stmt.Target, v)
	return v, nil
}

// EvalExpression dispatches on the closed four-shape Expression union.
func (e *Evaluator) EvalExpression(expr ast.Expression, env *runtime.Environment) (*runtime.Value, error) {
	switch n := expr.(type) {
	case *ast.Literal:
		return e.evalLiteral(n)
	case *ast.Variable:
		v, ok := env.Get(n.Name)
		if !ok {
			return nil, runtime.NewError(runtime.UndefinedClass, "undefined variable '%s'", n.Name)
		}
		return v, nil
	case *ast.BlockLiteral:
		return runtime.NewValue(e.classBlock, runtime.BlockPayload{Block: n.Body, Closure: env}), nil
	case *ast.Send:
		return e.evalSend(n, env)
	default:
		return nil, runtime.NewError(runtime.InternalError, "unsupported expression type: %s", expr.NodeType())
	}
}

func (e *Evaluator) evalLiteral(lit *ast.Literal) (*runtime.Value, error) {
	switch lit.ClassName {
	case "Integer":
		n := new(big.Int)
		if _, ok := n.SetString(lit.RawValue, 10); !ok {
			return nil, runtime.NewError(runtime.StructureError, "malformed integer literal %q", lit.RawValue)
		}
		return runtime.NewValue(e.classInt, runtime.IntPayload{Val: n}), nil
	case "String":
		return runtime.NewValue(e.classString, runtime.StringPayload{Val: lit.RawValue}), nil
	case "True":
		return e.trueValue(), nil
	case "False":
		return e.falseValue(), nil
	case "Nil":
		return e.nilValue(), nil
	case "class":
		class, err := e.Registry.Find(lit.RawValue)
		if err != nil {
			return nil, err
		}
		return runtime.NewObject(class), nil
	default:
		return nil, runtime.NewError(runtime.StructureError, "unknown literal class %q", lit.ClassName)
	}
}

func (e *Evaluator) evalSend(send *ast.Send, env *runtime.Environment) (*runtime.Value, error) {
	receiver, err := e.EvalExpression(send.Receiver, env)
	if err != nil {
		return nil, err
	}
	args := make([]*runtime.Value, len(send.Args))
	for i, argExpr := range send.Args {
		v, err := e.EvalExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return e.dispatch(receiver, send.Selector, args, env)
}

// dispatch implements the evaluator's core dispatch rule: attribute
// fallback on self when the selector is not a method anywhere in self's
// hierarchy, otherwise ordinary method lookup and invocation.
func (e *Evaluator) dispatch(receiver *runtime.Value, selector string, args []*runtime.Value, env *runtime.Environment) (*runtime.Value, error) {
	if e.MaxSends > 0 {
		e.sends++
		if e.sends > e.MaxSends {
			return nil, runtime.NewError(runtime.InternalError, "exceeded message-send budget (%d)", e.MaxSends)
		}
	}
	if e.Trace != nil {
		e.Trace(receiver.Class.Name, selector, len(args))
	}

	if self, ok := env.Get("self"); ok && runtime.IdenticalTo(receiver, self) && !e.Registry.HasMethod(receiver.Class, selector) {
		return e.attributeAccess(receiver, selector, args)
	}

	method, _, err := e.Registry.FindMethod(receiver.Class, selector)
	if err != nil {
		return nil, err
	}
	if method.Kind == runtime.MethodNative {
		ctx := e.nativeContext()
		return method.Native(ctx, receiver, args)
	}
	methodEnv := e.Global.Extend()
	return e.EvalBlock(method.Body, receiver, args, methodEnv)
}

func (e *Evaluator) attributeAccess(self *runtime.Value, selector string, args []*runtime.Value) (*runtime.Value, error) {
	if ast.ArityOf(selector) == 1 && len(args) == 1 && selector[len(selector)-1] == ':' {
		if self.Attrs == nil {
			return nil, runtime.NewError(runtime.DoesNotUnderstand, "%s has no attributes to assign", self.Class.Name)
		}
		name := selector[:len(selector)-1]
		self.Attrs[name] = args[0]
		return self, nil
	}
	if self.Attrs != nil {
		if v, ok := self.Attrs[selector]; ok {
			return v, nil
		}
	}
	return nil, runtime.NewError(runtime.DoesNotUnderstand, "%s does not understand '%s'", self.Class.Name, selector)
}

// InvokeBlock re-enters block evaluation for a Block value: it looks up
// self through the block's captured environment (self never rebinds
// across a closure boundary) and runs the block body in that
// environment, enforcing that args matches the block's parameter count.
func (e *Evaluator) InvokeBlock(block *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
	if e.MaxSends > 0 {
		e.sends++
		if e.sends > e.MaxSends {
			return nil, runtime.NewError(runtime.InternalError, "exceeded message-send budget (%d)", e.MaxSends)
		}
	}
	payload, ok := block.Payload.(runtime.BlockPayload)
	if !ok {
		return nil, runtime.NewError(runtime.TypeMismatch, "%s is not a Block", block.Class.Name)
	}
	self, ok := payload.Closure.Get("self")
	if !ok {
		return nil, runtime.NewError(runtime.InternalError, "closure missing 'self' binding")
	}
	return e.EvalBlock(payload.Block, self, args, payload.Closure)
}

func (e *Evaluator) nativeContext() *runtime.NativeContext {
	return &runtime.NativeContext{
		Registry: e.Registry,
		Invoke:   e.InvokeBlock,
		Stdin:    runtime.LineReader(e.Stdin),
		Stdout:   runtime.Writer(e.Stdout),
	}
}
