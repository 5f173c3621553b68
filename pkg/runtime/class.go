package runtime

import "sol25/pkg/ast"

// MethodKind distinguishes the two Method variants the data model
// allows: a user method carrying a Block, or a native method carrying a
// handle to a built-in procedure.
type MethodKind int

const (
	MethodUser MethodKind = iota
	MethodNative
)

// NativeFn is the shape of a built-in procedure handle. It closes over
// whatever runtime context it needs (the registry, the evaluator, for
// native methods like whileTrue: that must re-invoke blocks) by taking
// one explicitly, rather than reaching for implicit global state — see
// NativeContext.
type NativeFn func(ctx *NativeContext, receiver *Value, args []*Value) (*Value, error)

// NativeContext is threaded explicitly through every native method call
// so built-ins can construct result values, re-enter block invocation,
// and perform the two permitted stdio operations.
type NativeContext struct {
	Registry *Registry
	Invoke   BlockInvoker
	Stdin    LineReader
	Stdout   Writer
}

// BlockInvoker lets a native method re-enter the evaluator to invoke a
// Block value (e.g. True#ifTrue:ifFalse:, Block#whileTrue:) without
// pkg/runtime importing pkg/interpreter.
type BlockInvoker func(block *Value, args []*Value) (*Value, error)

// LineReader abstracts the single blocking read SOL25 exposes
// (String read: one line, trailing newline stripped).
type LineReader func() (string, bool)

// Writer abstracts the single blocking write SOL25 exposes
// (String print: verbatim, no trailing newline).
type Writer func(string)

// Method is immutable once constructed and is addressed only through
// its owning Class's selector table.
type Method struct {
	Selector string
	Kind     MethodKind
	Body     *ast.Block // set when Kind == MethodUser
	Native   NativeFn   // set when Kind == MethodNative
}

func NewUserMethod(selector string, body *ast.Block) *Method {
	return &Method{Selector: selector, Kind: MethodUser, Body: body}
}

func NewNativeMethod(selector string, fn NativeFn) *Method {
	return &Method{Selector: selector, Kind: MethodNative, Native: fn}
}

// Class is immutable after registration: a name, an optional parent, and
// a selector->Method table.
type Class struct {
	Name     string
	Parent   *Class
	Selector map[string]*Method
}

// HasOwn reports whether this class (not an ancestor) defines selector.
func (c *Class) HasOwn(selector string) bool {
	_, ok := c.Selector[selector]
	return ok
}

// Registry is the name->Class table plus inheritance-aware lookup. It is
// populated once during bootstrap and treated as read-only afterward;
// it is passed explicitly to the evaluator and to every native method
// rather than held as a package-level singleton.
type Registry struct {
	classes map[string]*Class
}

func NewRegistry() *Registry {
	return &Registry{classes: make(map[string]*Class)}
}

// Register adds class to the table. It fails if a class with the same
// name is already registered.
func (r *Registry) Register(class *Class) error {
	if _, exists := r.classes[class.Name]; exists {
		return &RuntimeError{Category: StructureError, Message: "class '" + class.Name + "' is already defined"}
	}
	r.classes[class.Name] = class
	return nil
}

// Find looks up a class by name, failing with UndefinedClass if absent.
func (r *Registry) Find(name string) (*Class, error) {
	c, ok := r.classes[name]
	if !ok {
		return nil, &RuntimeError{Category: UndefinedClass, Message: "undefined class '" + name + "'"}
	}
	return c, nil
}

// Has reports whether name is registered, without producing an error.
func (r *Registry) Has(name string) bool {
	_, ok := r.classes[name]
	return ok
}

// HasMethod reports whether class or any ancestor defines selector.
func (r *Registry) HasMethod(class *Class, selector string) bool {
	for c := class; c != nil; c = c.Parent {
		if c.HasOwn(selector) {
			return true
		}
	}
	return false
}

// FindMethod walks class's parent chain and returns the first match,
// along with the class that actually defines it. It fails with DoesNotUnderstand if no ancestor defines selector.
func (r *Registry) FindMethod(class *Class, selector string) (*Method, *Class, error) {
	for c := class; c != nil; c = c.Parent {
		if m, ok := c.Selector[selector]; ok {
			return m, c, nil
		}
	}
	return nil, nil, &RuntimeError{
		Category: DoesNotUnderstand,
		Message:  class.Name + " does not understand '" + selector + "'",
	}
}

// IsSubclass is reflexive: a class is always a subclass of itself.
func (r *Registry) IsSubclass(class *Class, ancestorName string) bool {
	for c := class; c != nil; c = c.Parent {
		if c.Name == ancestorName {
			return true
		}
	}
	return false
}

// Classes returns every registered class, for driver bootstrap checks
// and diagnostics. Order is unspecified.
func (r *Registry) Classes() []*Class {
	out := make([]*Class, 0, len(r.classes))
	for _, c := range r.classes {
		out = append(out, c)
	}
	return out
}
