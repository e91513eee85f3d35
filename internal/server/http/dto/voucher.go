package dto

import "github.com/google/uuid"

// VerifyVoucherRequest carries a scanned QR payload.
type VerifyVoucherRequest struct {
	Payload string `json:"payload"`
}

// VoucherCheckResponse describes a verified voucher.
type VoucherCheckResponse struct {
	OrderCode string          `json:"order_code"`
	BuyerID   string          `json:"buyer_id"`
	TicketID  uuid.UUID       `json:"ticket_id"`
	Voucher   VoucherResponse `json:"voucher"`
}
