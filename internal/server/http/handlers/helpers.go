package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/ticketing/internal/domain/errors"
	"github.com/polkiloo/ticketing/internal/domain/model"
	"github.com/polkiloo/ticketing/internal/server/http/dto"
	"github.com/polkiloo/ticketing/internal/server/http/middleware"
)

// CurrentIdentity extracts the authenticated caller from context.
func CurrentIdentity(c *gin.Context) model.Identity {
	val, ok := c.Get(middleware.IdentityContextKey)
	if !ok {
		return model.Identity{}
	}
	identity, _ := val.(model.Identity)
	return identity
}

// respondError maps domain errors onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	status, kind := http.StatusInternalServerError, "internal_error"
	switch {
	case errors.Is(err, domainErrors.ErrValidation):
		status, kind = http.StatusBadRequest, "validation_error"
	case errors.Is(err, domainErrors.ErrNotFound):
		status, kind = http.StatusNotFound, "not_found"
	case errors.Is(err, domainErrors.ErrInsufficientStock):
		status, kind = http.StatusConflict, "insufficient_stock"
	case errors.Is(err, domainErrors.ErrAlreadyCompleted):
		status, kind = http.StatusConflict, "already_completed"
	case errors.Is(err, domainErrors.ErrOrderCancelled):
		status, kind = http.StatusConflict, "order_cancelled"
	case errors.Is(err, domainErrors.ErrForbidden):
		status, kind = http.StatusForbidden, "forbidden"
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = "internal server error"
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: kind, Message: message})
}

func badRequest(c *gin.Context, message string) {
	respondError(c, fmt.Errorf("%w: %s", domainErrors.ErrValidation, message))
}

// orderFilterFromQuery reads status, buyer, ticket, search, page and limit.
func orderFilterFromQuery(c *gin.Context) (model.OrderFilter, error) {
	filter := model.OrderFilter{
		BuyerID: c.Query("buyer"),
		Status:  model.OrderStatus(c.Query("status")),
		Search:  c.Query("search"),
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return filter, fmt.Errorf("%w: unknown status %q", domainErrors.ErrValidation, filter.Status)
	}
	if raw := c.Query("ticket"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid ticket id %q", domainErrors.ErrValidation, raw)
		}
		filter.TicketID = &id
	}
	var err error
	if filter.Page, err = intQuery(c, "page"); err != nil {
		return filter, err
	}
	if filter.Limit, err = intQuery(c, "limit"); err != nil {
		return filter, err
	}
	return filter, nil
}

func intQuery(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domainErrors.ErrValidation, key)
	}
	return v, nil
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	vouchers := make([]dto.VoucherResponse, 0, len(order.Vouchers))
	for _, v := range order.Vouchers {
		vouchers = append(vouchers, toVoucherResponse(v))
	}
	return dto.OrderResponse{
		Code:      order.Code,
		BuyerID:   order.BuyerID,
		TicketID:  order.TicketID,
		Quantity:  order.Quantity,
		Total:     order.Total,
		Status:    string(order.Status),
		Vouchers:  vouchers,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}

func toVoucherResponse(v model.Voucher) dto.VoucherResponse {
	return dto.VoucherResponse{VoucherID: v.ID, IsPrint: v.IsPrint}
}

func toTicketResponse(t model.Ticket) dto.TicketResponse {
	return dto.TicketResponse{
		ID:        t.ID,
		EventID:   t.EventID,
		Name:      t.Name,
		Price:     t.Price,
		Quantity:  t.Quantity,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
