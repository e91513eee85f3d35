package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/ticketing/internal/domain/model"
	"github.com/polkiloo/ticketing/internal/server/http/dto"
)

// OrderHandler manages order-related endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Place handles POST /api/orders.
func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed order payload")
		return
	}

	order, err := h.facade.PlaceOrder(c.Request.Context(), CurrentIdentity(c), model.PlaceOrderInput{
		TicketID: req.TicketID,
		Quantity: req.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// Get handles GET /api/orders/:code.
func (h *OrderHandler) Get(c *gin.Context) {
	h.respond(c, h.facade.Order)
}

// Complete handles POST /api/orders/:code/complete.
func (h *OrderHandler) Complete(c *gin.Context) {
	h.respond(c, h.facade.CompleteOrder)
}

// Cancel handles POST /api/orders/:code/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	h.respond(c, h.facade.CancelOrder)
}

// MarkPending handles POST /api/orders/:code/pending.
func (h *OrderHandler) MarkPending(c *gin.Context) {
	h.respond(c, h.facade.MarkOrderPending)
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	h.page(c, h.facade.Orders)
}

// ListOwn handles GET /api/member/orders.
func (h *OrderHandler) ListOwn(c *gin.Context) {
	h.page(c, h.facade.MemberOrders)
}

type orderAction func(ctx context.Context, code string, identity model.Identity) (*model.Order, error)

type pageAction func(ctx context.Context, identity model.Identity, filter model.OrderFilter) (model.OrderPage, error)

func (h *OrderHandler) respond(c *gin.Context, action orderAction) {
	order, err := action(c.Request.Context(), c.Param("code"), CurrentIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(*order))
}

func (h *OrderHandler) page(c *gin.Context, action pageAction) {
	filter, err := orderFilterFromQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	page, err := action(c.Request.Context(), CurrentIdentity(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	items := make([]dto.OrderResponse, 0, len(page.Items))
	for _, o := range page.Items {
		items = append(items, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, dto.OrderPageResponse{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	})
}
