package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/ticketing/internal/domain/errors"
	"github.com/polkiloo/ticketing/internal/domain/model"
)

const orderColumns = `id, code, buyer_id, ticket_id, quantity, total, status, vouchers, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o        model.Order
		vouchers []byte
	)
	if err := row.Scan(&o.ID, &o.Code, &o.BuyerID, &o.TicketID, &o.Quantity, &o.Total, &o.Status, &vouchers, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	if len(vouchers) > 0 {
		if err := json.Unmarshal(vouchers, &o.Vouchers); err != nil {
			return nil, fmt.Errorf("decode vouchers: %w", err)
		}
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, no model.NewOrder) (*model.Order, error) {
	const query = `INSERT INTO orders (code, buyer_id, ticket_id, quantity, total, status) VALUES ($1, $2, $3, $4, $5, $6)
                   ON CONFLICT (code) DO NOTHING
                   RETURNING id, created_at, updated_at`
	order := model.Order{
		Code:     no.Code,
		BuyerID:  no.BuyerID,
		TicketID: no.TicketID,
		Quantity: no.Quantity,
		Total:    no.Total,
		Status:   model.OrderStatusPending,
	}
	err := r.storage.conn(ctx).QueryRow(ctx, query, no.Code, no.BuyerID, no.TicketID, no.Quantity, no.Total, model.OrderStatusPending).
		Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByCode(ctx context.Context, code string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE code=$1`
	return r.findOne(ctx, query, code)
}

func (r *orderRepository) FindByCodeAndBuyer(ctx context.Context, code, buyerID string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE code=$1 AND buyer_id=$2`
	return r.findOne(ctx, query, code, buyerID)
}

func (r *orderRepository) findOne(ctx context.Context, query string, args ...any) (*model.Order, error) {
	order, err := scanOrder(r.storage.conn(ctx).QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) TransitionToCompleted(ctx context.Context, code, buyerID string, vouchers []model.Voucher) (*model.Order, error) {
	payload, err := json.Marshal(vouchers)
	if err != nil {
		return nil, fmt.Errorf("encode vouchers: %w", err)
	}
	const query = `UPDATE orders SET status=$3, vouchers=$4, updated_at=NOW()
                   WHERE code=$1 AND buyer_id=$2 AND status=$5
                   RETURNING ` + orderColumns
	order, err := scanOrder(r.storage.conn(ctx).QueryRow(ctx, query, code, buyerID, model.OrderStatusCompleted, payload, model.OrderStatusPending))
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return nil, r.transitionConflict(ctx, code, buyerID)
}

func (r *orderRepository) TransitionToCancelled(ctx context.Context, code, buyerID string) (*model.Order, error) {
	const query = `UPDATE orders SET status=$3, updated_at=NOW()
                   WHERE code=$1 AND ($2::text = '' OR buyer_id=$2) AND status=$4
                   RETURNING ` + orderColumns
	order, err := scanOrder(r.storage.conn(ctx).QueryRow(ctx, query, code, buyerID, model.OrderStatusCancelled, model.OrderStatusPending))
	if err == nil {
		return order, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return nil, r.transitionConflict(ctx, code, buyerID)
}

// transitionConflict explains why a guarded status update matched no row.
func (r *orderRepository) transitionConflict(ctx context.Context, code, buyerID string) error {
	var (
		current *model.Order
		err     error
	)
	if buyerID == "" {
		current, err = r.FindByCode(ctx, code)
	} else {
		current, err = r.FindByCodeAndBuyer(ctx, code, buyerID)
	}
	if err != nil {
		return err
	}
	switch current.Status {
	case model.OrderStatusCompleted:
		return domainErrors.ErrAlreadyCompleted
	case model.OrderStatusCancelled:
		return domainErrors.ErrOrderCancelled
	default:
		return fmt.Errorf("order %s left in status %q", code, current.Status)
	}
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, int, error) {
	filter = filter.Normalize()

	var (
		conditions []string
		args       []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}
	if filter.BuyerID != "" {
		add("buyer_id=$%d", filter.BuyerID)
	}
	if filter.Status != "" {
		add("status=$%d", filter.Status)
	}
	if filter.TicketID != nil {
		add("ticket_id=$%d", *filter.TicketID)
	}
	if filter.Search != "" {
		add("code ILIKE $%d", containsPattern(filter.Search))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	conn := r.storage.conn(ctx)

	var total int
	if err := conn.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM orders%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, len(args)+1, len(args)+2)
	rows, err := conn.Query(ctx, query, append(args, filter.Limit, filter.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) ListPendingBefore(ctx context.Context, before time.Time, limit int) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders
                   WHERE status=$1 AND created_at < $2
                   ORDER BY created_at
                   LIMIT $3`
	// LIMIT NULL returns every row.
	var rowLimit any
	if limit > 0 {
		rowLimit = limit
	}
	rows, err := r.storage.conn(ctx).Query(ctx, query, model.OrderStatusPending, before, rowLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// containsPattern builds an ILIKE pattern matching search as a literal substring.
func containsPattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}

func collectOrders(rows pgx.Rows) ([]model.Order, error) {
	var result []model.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
