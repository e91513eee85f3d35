package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/ticketing/internal/domain/errors"
	"github.com/polkiloo/ticketing/internal/domain/model"
	"github.com/polkiloo/ticketing/internal/domain/repository"
	"github.com/polkiloo/ticketing/internal/pkg/voucher"
)

// VoucherUseCase renders vouchers of completed orders and verifies scanned ones.
type VoucherUseCase struct {
	orders repository.OrderRepository
	signer *voucher.Signer
}

// NewVoucherUseCase constructs VoucherUseCase.
func NewVoucherUseCase(orders repository.OrderRepository, signer *voucher.Signer) *VoucherUseCase {
	return &VoucherUseCase{orders: orders, signer: signer}
}

// QRCode returns a PNG QR code carrying the signed voucher payload.
func (u *VoucherUseCase) QRCode(ctx context.Context, code, rawVoucherID string, identity model.Identity, size int) ([]byte, error) {
	if code == "" || identity.ID == "" {
		return nil, fmt.Errorf("%w: order code and caller are required", domainErrors.ErrValidation)
	}
	voucherID, err := uuid.Parse(rawVoucherID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid voucher id %q", domainErrors.ErrValidation, rawVoucherID)
	}

	var order *model.Order
	if scope := ownerScope(identity); scope != "" {
		order, err = u.orders.FindByCodeAndBuyer(ctx, code, scope)
	} else {
		order, err = u.orders.FindByCode(ctx, code)
	}
	if err != nil {
		return nil, persistenceError(err)
	}
	if _, ok := findVoucher(order, voucherID); !ok {
		return nil, domainErrors.ErrNotFound
	}

	return voucher.RenderQR(u.signer.Payload(order.Code, voucherID), size)
}

// Verify checks a scanned payload against the stored order. Admin only.
func (u *VoucherUseCase) Verify(ctx context.Context, identity model.Identity, payload string) (*model.VoucherCheck, error) {
	if !identity.IsAdmin() {
		return nil, domainErrors.ErrForbidden
	}
	code, voucherID, err := u.signer.Verify(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainErrors.ErrValidation, err)
	}
	order, err := u.orders.FindByCode(ctx, code)
	if err != nil {
		return nil, persistenceError(err)
	}
	v, ok := findVoucher(order, voucherID)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &model.VoucherCheck{OrderCode: order.Code, Voucher: v, BuyerID: order.BuyerID, TicketID: order.TicketID}, nil
}

// findVoucher only matches vouchers of completed orders.
func findVoucher(order *model.Order, id uuid.UUID) (model.Voucher, bool) {
	if order.Status != model.OrderStatusCompleted {
		return model.Voucher{}, false
	}
	for _, v := range order.Vouchers {
		if v.ID == id {
			return v, true
		}
	}
	return model.Voucher{}, false
}
