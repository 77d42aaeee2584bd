package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("adding movement: %w", Validation("amount", "must be greater than zero"))

	if !errors.Is(err, ErrValidation) {
		t.Fatalf("Expected errors.Is(err, ErrValidation) to be true")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected errors.As to find a *ValidationError")
	}
	if verr.Field != "amount" {
		t.Errorf("Expected field 'amount', got %q", verr.Field)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	withField := Validation("code", "already exists")
	if got := withField.Error(); got != "validation failed: code: already exists" {
		t.Errorf("Unexpected message: %q", got)
	}

	withoutField := Validation("", "vault is empty")
	if got := withoutField.Error(); got != "validation failed: vault is empty" {
		t.Errorf("Unexpected message: %q", got)
	}
}

func TestIsUnlockFailure(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"Authentication", fmt.Errorf("load: %w", ErrAuthentication), true},
		{"IdentityMismatch", fmt.Errorf("load: %w", ErrIdentityMismatch), true},
		{"InvalidEnvelope", ErrInvalidEnvelope, true},
		{"MalformedData", ErrMalformedData, true},
		{"Validation", Validation("name", "required"), false},
		{"SlotNotFound", ErrSlotNotFound, false},
		{"Nil", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUnlockFailure(tc.err); got != tc.want {
				t.Errorf("IsUnlockFailure(%v) = %t, want %t", tc.err, got, tc.want)
			}
		})
	}
}
