package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/ticketing/internal/server/http/dto"
)

// VoucherHandler serves voucher QR codes and verification.
type VoucherHandler struct {
	facade VoucherFacade
}

// NewVoucherHandler constructs VoucherHandler.
func NewVoucherHandler(facade VoucherFacade) *VoucherHandler {
	return &VoucherHandler{facade: facade}
}

// QR handles GET /api/orders/:code/vouchers/:voucher/qr.
func (h *VoucherHandler) QR(c *gin.Context) {
	size := 0
	if raw := c.Query("size"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "size must be an integer")
			return
		}
		size = v
	}

	png, err := h.facade.VoucherQR(c.Request.Context(), c.Param("code"), c.Param("voucher"), CurrentIdentity(c), size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

// Verify handles POST /api/admin/vouchers/verify.
func (h *VoucherHandler) Verify(c *gin.Context) {
	var req dto.VerifyVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Payload == "" {
		badRequest(c, "payload is required")
		return
	}

	check, err := h.facade.VerifyVoucher(c.Request.Context(), CurrentIdentity(c), req.Payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.VoucherCheckResponse{
		OrderCode: check.OrderCode,
		BuyerID:   check.BuyerID,
		TicketID:  check.TicketID,
		Voucher:   toVoucherResponse(check.Voucher),
	})
}
