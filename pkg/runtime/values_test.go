package runtime

import (
	"math/big"
	"testing"
)

func TestNewSingletonHasNoAttributeMap(t *testing.T) {
	class := &Class{Name: "True"}
	v := NewSingleton(class)
	if v.Attrs != nil {
		t.Fatalf("expected NewSingleton to leave Attrs nil, got %#v", v.Attrs)
	}
}

func TestNewObjectHasEmptyMutableAttributeMap(t *testing.T) {
	class := &Class{Name: "C"}
	v := NewObject(class)
	if v.Attrs == nil {
		t.Fatalf("expected NewObject to allocate an attribute map")
	}
	v.Attrs["x"] = NewObject(class)
	if len(v.Attrs) != 1 {
		t.Fatalf("expected the attribute write to stick")
	}
}

func TestIdenticalToIsAllocationIdentity(t *testing.T) {
	class := &Class{Name: "Integer"}
	a := NewValue(class, IntPayload{Val: big.NewInt(1)})
	b := NewValue(class, IntPayload{Val: big.NewInt(1)})

	if IdenticalTo(a, a) == false {
		t.Fatalf("expected a value to be identical to itself")
	}
	if IdenticalTo(a, b) {
		t.Fatalf("did not expect two separately allocated equal values to be identical")
	}
}

func TestCloneBigIntCopiesRatherThanAliases(t *testing.T) {
	original := big.NewInt(7)
	clone := CloneBigInt(original)
	clone.Add(clone, big.NewInt(1))

	if original.Cmp(big.NewInt(7)) != 0 {
		t.Fatalf("expected CloneBigInt to not alias the source, original became %v", original)
	}
	if clone.Cmp(big.NewInt(8)) != 0 {
		t.Fatalf("expected clone to reflect its own mutation, got %v", clone)
	}
}
