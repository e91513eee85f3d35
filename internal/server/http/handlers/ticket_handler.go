package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/ticketing/internal/domain/model"
	"github.com/polkiloo/ticketing/internal/server/http/dto"
)

// TicketHandler manages ticket inventory endpoints.
type TicketHandler struct {
	facade TicketFacade
}

// NewTicketHandler constructs TicketHandler.
func NewTicketHandler(facade TicketFacade) *TicketHandler {
	return &TicketHandler{facade: facade}
}

// Get handles GET /api/tickets/:id.
func (h *TicketHandler) Get(c *gin.Context) {
	ticket, err := h.facade.Ticket(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTicketResponse(*ticket))
}

// Create handles POST /api/admin/tickets.
func (h *TicketHandler) Create(c *gin.Context) {
	var req dto.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed ticket payload")
		return
	}

	ticket, err := h.facade.CreateTicket(c.Request.Context(), CurrentIdentity(c), model.NewTicket{
		EventID:  req.EventID,
		Name:     req.Name,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTicketResponse(*ticket))
}

// Update handles PATCH /api/admin/tickets/:id.
func (h *TicketHandler) Update(c *gin.Context) {
	var req dto.UpdateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "malformed ticket payload")
		return
	}

	ticket, err := h.facade.UpdateTicket(c.Request.Context(), CurrentIdentity(c), c.Param("id"), model.TicketUpdate{
		Name:     req.Name,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTicketResponse(*ticket))
}
