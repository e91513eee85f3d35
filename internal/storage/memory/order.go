package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/ticketing/internal/domain/errors"
	"github.com/polkiloo/ticketing/internal/domain/model"
)

func (r *orderRepository) Create(ctx context.Context, no model.NewOrder) (*model.Order, error) {
	s := r.storage
	defer s.lock(ctx)()

	if _, exists := s.orders[no.Code]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	s.nextID++
	now := s.now()
	order := model.Order{
		ID:        s.nextID,
		Code:      no.Code,
		BuyerID:   no.BuyerID,
		TicketID:  no.TicketID,
		Quantity:  no.Quantity,
		Total:     no.Total,
		Status:    model.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.orders[order.Code] = order
	s.recordUndo(ctx, func() { delete(s.orders, no.Code) })
	return cloneOrder(order), nil
}

func (r *orderRepository) FindByCode(ctx context.Context, code string) (*model.Order, error) {
	s := r.storage
	defer s.lock(ctx)()
	return r.find(code, "")
}

func (r *orderRepository) FindByCodeAndBuyer(ctx context.Context, code, buyerID string) (*model.Order, error) {
	s := r.storage
	defer s.lock(ctx)()
	return r.find(code, buyerID)
}

// find expects the lock to be held. Empty buyerID matches any owner.
func (r *orderRepository) find(code, buyerID string) (*model.Order, error) {
	order, ok := r.storage.orders[code]
	if !ok || (buyerID != "" && order.BuyerID != buyerID) {
		return nil, domainErrors.ErrNotFound
	}
	return cloneOrder(order), nil
}

func (r *orderRepository) TransitionToCompleted(ctx context.Context, code, buyerID string, vouchers []model.Voucher) (*model.Order, error) {
	return r.transition(ctx, code, buyerID, func(o *model.Order) {
		o.Status = model.OrderStatusCompleted
		o.Vouchers = append([]model.Voucher(nil), vouchers...)
	})
}

func (r *orderRepository) TransitionToCancelled(ctx context.Context, code, buyerID string) (*model.Order, error) {
	return r.transition(ctx, code, buyerID, func(o *model.Order) {
		o.Status = model.OrderStatusCancelled
	})
}

func (r *orderRepository) transition(ctx context.Context, code, buyerID string, apply func(*model.Order)) (*model.Order, error) {
	s := r.storage
	defer s.lock(ctx)()

	current, err := r.find(code, buyerID)
	if err != nil {
		return nil, err
	}
	switch current.Status {
	case model.OrderStatusPending:
	case model.OrderStatusCompleted:
		return nil, domainErrors.ErrAlreadyCompleted
	case model.OrderStatusCancelled:
		return nil, domainErrors.ErrOrderCancelled
	default:
		return nil, fmt.Errorf("order %s left in status %q", code, current.Status)
	}

	previous := s.orders[code]
	next := *current
	apply(&next)
	next.UpdatedAt = s.now()
	s.orders[code] = next
	s.recordUndo(ctx, func() { s.orders[code] = previous })
	return cloneOrder(next), nil
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, int, error) {
	filter = filter.Normalize()
	s := r.storage
	defer s.lock(ctx)()

	search := strings.ToLower(filter.Search)
	var matched []model.Order
	for _, o := range s.orders {
		if filter.BuyerID != "" && o.BuyerID != filter.BuyerID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.TicketID != nil && o.TicketID != *filter.TicketID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(o.Code), search) {
			continue
		}
		matched = append(matched, *cloneOrder(o))
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	start := filter.Offset()
	if start >= total {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *orderRepository) ListPendingBefore(ctx context.Context, before time.Time, limit int) ([]model.Order, error) {
	s := r.storage
	defer s.lock(ctx)()

	var result []model.Order
	for _, o := range s.orders {
		if o.Status == model.OrderStatusPending && o.CreatedAt.Before(before) {
			result = append(result, *cloneOrder(o))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
