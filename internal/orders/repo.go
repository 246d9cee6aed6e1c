package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariefcatur/heritage-market/internal/auth"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo owns carts, orders and order lines. Every mutation that touches more
// than one row runs in a single transaction.
type Repo struct{ DB *pgxpool.Pool }

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// inTx runs fn in a READ COMMITTED transaction and rolls back on any error.
func inTx(ctx context.Context, db *pgxpool.Pool, fn func(pgx.Tx) error) error {
	tx, err := db.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type Page struct {
	Limit  int
	Offset int
}

func (p Page) normalize() Page {
	if p.Limit <= 0 || p.Limit > 100 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

const orderColumns = `o.id, o.user_id, o.total_amount, o.status, o.shipping_address,
	o.payment_method, o.notes, o.created_at, o.updated_at`

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	err := row.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.ShippingAddress,
		&o.PaymentMethod, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func collectOrders(rows pgx.Rows) ([]Order, error) {
	defer rows.Close()
	out := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// sellerInvolved reports whether the order holds at least one line for a
// product owned by sellerID.
func sellerInvolved(ctx context.Context, q querier, orderID, sellerID string) (bool, error) {
	var ok bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM order_items oi
			JOIN products p ON p.id = oi.product_id
			WHERE oi.order_id = $1 AND p.seller_id = $2
		)`, orderID, sellerID).Scan(&ok)
	return ok, err
}

// canSee applies the read rule: buyers see their own orders, sellers see
// orders containing their products, admins see everything.
func canSee(ctx context.Context, q querier, actor auth.Principal, o Order) (bool, error) {
	switch actor.Role {
	case auth.RoleAdmin:
		return true, nil
	case auth.RoleBuyer:
		return o.UserID == actor.UserID, nil
	case auth.RoleSeller:
		return sellerInvolved(ctx, q, o.ID, actor.UserID)
	}
	return false, nil
}

func (r *Repo) GetOrder(ctx context.Context, actor auth.Principal, orderID string) (*Order, error) {
	if _, err := uuid.Parse(orderID); err != nil {
		return nil, notFound("order", orderID)
	}
	o, err := r.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	ok, err := canSee(ctx, r.DB, actor, *o)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound("order", orderID)
	}
	return o, nil
}

// load reads an order and its lines without any visibility check.
func (r *Repo) load(ctx context.Context, orderID string) (*Order, error) {
	o, err := scanOrder(r.DB.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders o WHERE o.id = $1`, orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("order", orderID)
	}
	if err != nil {
		return nil, err
	}
	if o.Items, err = loadItems(ctx, r.DB, o.ID); err != nil {
		return nil, err
	}
	return &o, nil
}

func loadItems(ctx context.Context, q querier, orderID string) ([]OrderItem, error) {
	rows, err := q.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, p.title, oi.quantity, oi.price
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Title, &it.Quantity, &it.Price); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *Repo) ListBuyerOrders(ctx context.Context, buyerID string, p Page) ([]Order, error) {
	p = p.normalize()
	rows, err := r.DB.Query(ctx, `
		SELECT `+orderColumns+` FROM orders o
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC, o.id
		LIMIT $2 OFFSET $3`, buyerID, p.Limit, p.Offset)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *Repo) ListSellerOrders(ctx context.Context, sellerID string, p Page) ([]Order, error) {
	p = p.normalize()
	rows, err := r.DB.Query(ctx, `
		SELECT `+orderColumns+` FROM orders o
		WHERE EXISTS (
			SELECT 1 FROM order_items oi
			JOIN products p ON p.id = oi.product_id
			WHERE oi.order_id = o.id AND p.seller_id = $1
		)
		ORDER BY o.created_at DESC, o.id
		LIMIT $2 OFFSET $3`, sellerID, p.Limit, p.Offset)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

// ListOrders is the admin view; an empty status lists every order.
func (r *Repo) ListOrders(ctx context.Context, status Status, p Page) ([]Order, error) {
	p = p.normalize()
	if status != "" && !status.Valid() {
		return nil, invalid("status", "unknown order status")
	}
	rows, err := r.DB.Query(ctx, `
		SELECT `+orderColumns+` FROM orders o
		WHERE ($1 = '' OR o.status = $1)
		ORDER BY o.created_at DESC, o.id
		LIMIT $2 OFFSET $3`, string(status), p.Limit, p.Offset)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *Repo) History(ctx context.Context, actor auth.Principal, orderID string) ([]HistoryEntry, error) {
	if _, err := r.GetOrder(ctx, actor, orderID); err != nil {
		return nil, err
	}
	rows, err := r.DB.Query(ctx, `
		SELECT id, order_id, from_status, to_status, actor_id, actor_role, created_at
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var (
			h    HistoryEntry
			from *string
		)
		if err := rows.Scan(&h.ID, &h.OrderID, &from, &h.To, &h.ActorID, &h.ActorRole, &h.CreatedAt); err != nil {
			return nil, err
		}
		if from != nil {
			h.From = Status(*from)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func recordHistory(ctx context.Context, q querier, orderID string, from *Status, to Status, actor auth.Principal) error {
	var fromArg any
	if from != nil {
		fromArg = string(*from)
	}
	_, err := q.Exec(ctx, `
		INSERT INTO order_status_history(order_id, from_status, to_status, actor_id, actor_role)
		VALUES ($1, $2, $3, $4, $5)`, orderID, fromArg, string(to), actor.UserID, string(actor.Role))
	return err
}
