package runtime

import "testing"

func TestCategoryOfDefaultsToInternalError(t *testing.T) {
	if got := CategoryOf(nil); got != InternalError {
		t.Fatalf("expected a nil error to classify as InternalError, got %v", got)
	}
}

func TestCategoryOfExtractsRuntimeErrorCategory(t *testing.T) {
	err := NewError(ValueError, "division by zero")
	if got := CategoryOf(err); got != ValueError {
		t.Fatalf("expected ValueError, got %v", got)
	}
}

func TestErrorCategoryStringNames(t *testing.T) {
	cases := map[ErrorCategory]string{
		StructureError:    "StructureError",
		UndefinedClass:    "UndefinedClass",
		DoesNotUnderstand: "DoesNotUnderstand",
		TypeMismatch:      "TypeMismatch",
		ValueError:        "ValueError",
		InternalError:     "InternalError",
	}
	for category, want := range cases {
		if got := category.String(); got != want {
			t.Fatalf("category %d: expected %q, got %q", category, want, got)
		}
	}
}
