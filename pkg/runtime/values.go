package runtime

import (
	"math/big"

	"sol25/pkg/ast"
)

// Value is the uniform runtime object representation: every SOL25 value,
// built-in or user-defined, carries a class pointer, a per-instance
// attribute map, and an optional payload. Integer, String and Block
// values carry one; a value of any other class has one only when it was
// built with Object#from:, which copies its argument's payload.
//
// A single concrete struct (rather than one Go type per built-in kind)
// is used here because the data model mandates a uniform object
// representation rather than a closed value hierarchy — see DESIGN.md.
type Value struct {
	Class   *Class
	Attrs   map[string]*Value
	Payload Payload
}

// Payload is the optional internal state carried by built-in values.
// It is nil for True, False, Nil, and for Object and user-defined
// instances created with new. The concrete type distinguishes the three
// payload kinds from each other; callers type-switch on it rather than on
// Value.Class, since a payload's shape is what built-in methods operate
// on.
type Payload interface {
	payload()
}

// IntPayload holds an Integer value's arbitrary-precision signed integer.
type IntPayload struct {
	Val *big.Int
}

func (IntPayload) payload() {}

// StringPayload holds a String value's byte payload.
type StringPayload struct {
	Val string
}

func (StringPayload) payload() {}

// BlockPayload couples a Block AST node with the environment active when
// the block literal was evaluated — the closure. The environment must
// outlive every invocation of the resulting Value.
type BlockPayload struct {
	Block   *ast.Block
	Closure *Environment
}

func (BlockPayload) payload() {}

// NewObject allocates a fresh Value of the given class with an empty
// attribute map and no payload — the shape every Object#new returns.
func NewObject(class *Class) *Value {
	return &Value{Class: class, Attrs: make(map[string]*Value)}
}

// NewValue allocates a fresh Value of the given class carrying payload.
// Built-ins that construct values (literal evaluation, arithmetic
// results, string operations, block reification) go through this rather
// than NewObject so the attribute map is still present and mutable even
// though ordinary built-in usage never populates it.
func NewValue(class *Class, payload Payload) *Value {
	return &Value{Class: class, Attrs: make(map[string]*Value), Payload: payload}
}

// NewSingleton allocates a Value with no attribute map at all: the shape
// required for True, False, and Nil, whose instances carry no payload
// and accept no attribute assignment — writing an undefined-selector
// attribute on one of these three is a DoesNotUnderstand, never a
// silent success.
func NewSingleton(class *Class) *Value {
	return &Value{Class: class}
}

// CloneBigInt copies the provided big.Int pointer, tolerating nil.
func CloneBigInt(src *big.Int) *big.Int {
	if src == nil {
		return nil
	}
	return new(big.Int).Set(src)
}

// IdenticalTo reports whether two values are the same object identity —
// the same allocation, not merely an equal payload.
func IdenticalTo(a, b *Value) bool {
	return a == b
}
