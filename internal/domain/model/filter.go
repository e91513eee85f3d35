package model

import "github.com/google/uuid"

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// OrderFilter selects orders for listing. Zero values match everything.
type OrderFilter struct {
	BuyerID  string
	Status   OrderStatus
	TicketID *uuid.UUID
	// Search matches a case-insensitive substring of the order code.
	Search string
	Page   int
	Limit  int
}

// Normalize applies paging defaults and bounds.
func (f OrderFilter) Normalize() OrderFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		f.Limit = MaxPageLimit
	}
	return f
}

// Offset returns how many rows precede the requested page.
func (f OrderFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// OrderPage is one page of a filtered listing.
type OrderPage struct {
	Items      []Order `json:"items"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"total_pages"`
}

// NewOrderPage assembles a page for the normalized filter f.
func NewOrderPage(items []Order, total int, f OrderFilter) OrderPage {
	pages := 0
	if f.Limit > 0 {
		pages = (total + f.Limit - 1) / f.Limit
	}
	if items == nil {
		items = []Order{}
	}
	return OrderPage{Items: items, Total: total, Page: f.Page, Limit: f.Limit, TotalPages: pages}
}
