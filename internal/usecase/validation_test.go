package usecase

import (
	"errors"
	"strings"
	"testing"

	domainErrors "github.com/polkiloo/ticketing/internal/domain/errors"
	"github.com/polkiloo/ticketing/internal/domain/model"
)

func TestValidateStructReportsFields(t *testing.T) {
	err := validateStruct(model.PlaceOrderInput{TicketID: "x", Quantity: 0})
	if !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "TicketID") || !strings.Contains(err.Error(), "Quantity must satisfy gt=0") {
		t.Fatalf("expected field details, got %v", err)
	}

	if err := validateStruct(model.PlaceOrderInput{TicketID: "6f1c1f8e-9a55-4d5b-8c1e-0d2a8d1b2c3d", Quantity: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := validateStruct(42); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for non-struct, got %v", err)
	}
}

func TestPersistenceError(t *testing.T) {
	if err := persistenceError(domainErrors.ErrNotFound); err != domainErrors.ErrNotFound {
		t.Fatalf("expected domain error to pass through, got %v", err)
	}
	raw := errors.New("socket closed")
	err := persistenceError(raw)
	if !errors.Is(err, domainErrors.ErrPersistence) || !errors.Is(err, raw) {
		t.Fatalf("expected wrapped persistence error, got %v", err)
	}
}

func TestNewOrderCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code, err := NewOrderCode()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.HasPrefix(code, orderCodePrefix) || len(code) != len(orderCodePrefix)+orderCodeLength {
			t.Fatalf("unexpected code format: %s", code)
		}
		if _, dup := seen[code]; dup {
			t.Fatalf("duplicate code %s", code)
		}
		seen[code] = struct{}{}
	}
}
