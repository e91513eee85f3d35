// Package voucher issues admission vouchers and renders them as signed QR codes.
package voucher

import (
	"fmt"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/ticketing/internal/domain/errors"
	"github.com/polkiloo/ticketing/internal/domain/model"
)

// Issuer produces fresh vouchers for a completed order.
type Issuer interface {
	Issue(quantity int) ([]model.Voucher, error)
}

// UUIDIssuer assigns random version 4 identifiers.
type UUIDIssuer struct {
	newID func() (uuid.UUID, error)
}

// NewUUIDIssuer builds UUIDIssuer.
func NewUUIDIssuer() *UUIDIssuer {
	return &UUIDIssuer{newID: uuid.NewRandom}
}

// Issue returns quantity unprinted vouchers with distinct identifiers.
func (i *UUIDIssuer) Issue(quantity int) ([]model.Voucher, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: voucher quantity must be positive", domainErrors.ErrValidation)
	}
	vouchers := make([]model.Voucher, 0, quantity)
	for n := 0; n < quantity; n++ {
		id, err := i.newID()
		if err != nil {
			return nil, fmt.Errorf("generate voucher id: %w", err)
		}
		vouchers = append(vouchers, model.Voucher{ID: id, IsPrint: false})
	}
	return vouchers, nil
}
