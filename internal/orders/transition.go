package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariefcatur/heritage-market/internal/auth"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TransitionResult struct {
	Order     *Order
	From      Status
	Restocked bool
}

// Transition moves an order to status to on behalf of actor.
//
// The order row is locked for the whole transaction and the update is
// conditional on the status read under that lock, so a buyer cancel racing a
// seller advance resolves to exactly one winner. Cancelling always returns
// every line's quantity to stock in the same transaction; because cancelled
// is terminal, the restock can happen at most once per order.
func (r *Repo) Transition(ctx context.Context, actor auth.Principal, orderID string, to Status) (*TransitionResult, error) {
	if _, err := uuid.Parse(orderID); err != nil {
		return nil, notFound("order", orderID)
	}
	if !to.Valid() {
		return nil, invalid("status", "unknown order status")
	}

	var res TransitionResult
	err := inTx(ctx, r.DB, func(tx pgx.Tx) error {
		o, err := scanOrder(tx.QueryRow(ctx,
			`SELECT `+orderColumns+` FROM orders o WHERE o.id = $1 FOR UPDATE`, orderID))
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound("order", orderID)
		}
		if err != nil {
			return fmt.Errorf("lock order: %w", err)
		}

		ok, err := canSee(ctx, tx, actor, o)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("order", orderID)
		}
		if !Allowed(actor.Role, o.Status, to) {
			return &TransitionError{OrderID: orderID, From: o.Status, To: to, Role: actor.Role}
		}

		ct, err := tx.Exec(ctx, `
			UPDATE orders SET status = $2, updated_at = now()
			WHERE id = $1 AND status = $3`, orderID, string(to), string(o.Status))
		if err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		if ct.RowsAffected() != 1 {
			return &TransitionError{OrderID: orderID, From: o.Status, To: to, Role: actor.Role}
		}

		if to == StatusCancelled {
			if err := restock(ctx, tx, orderID); err != nil {
				return fmt.Errorf("restock: %w", err)
			}
			res.Restocked = true
		}

		from := o.Status
		if err := recordHistory(ctx, tx, orderID, &from, to, actor); err != nil {
			return fmt.Errorf("record history: %w", err)
		}
		res.From = from
		return nil
	})
	if err != nil {
		return nil, err
	}

	o, err := r.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	res.Order = o
	return &res, nil
}

// restock returns every line of an order to stock. Product rows are locked
// in id order first, matching lockCart, so a cancel and a checkout touching
// the same products cannot deadlock.
func restock(ctx context.Context, tx pgx.Tx, orderID string) error {
	if _, err := tx.Exec(ctx, `
		SELECT p.id FROM products p
		JOIN order_items oi ON oi.product_id = p.id
		WHERE oi.order_id = $1
		ORDER BY p.id
		FOR UPDATE OF p`, orderID); err != nil {
		return err
	}
	_, err := tx.Exec(ctx, `
		UPDATE products p
		SET stock = p.stock + oi.quantity, updated_at = now()
		FROM order_items oi
		WHERE oi.order_id = $1 AND p.id = oi.product_id`, orderID)
	return err
}

// Cancel is the buyer's self-service cancellation, allowed only while the
// order is still pending.
func (r *Repo) Cancel(ctx context.Context, buyer auth.Principal, orderID string) (*TransitionResult, error) {
	return r.Transition(ctx, buyer, orderID, StatusCancelled)
}

// Advance moves an order one step along the fulfilment path on behalf of a
// seller with a line in it.
func (r *Repo) Advance(ctx context.Context, seller auth.Principal, orderID string, to Status) (*TransitionResult, error) {
	return r.Transition(ctx, seller, orderID, to)
}

// ForceCancel is the admin emergency cancel. It restocks like every other
// cancellation.
func (r *Repo) ForceCancel(ctx context.Context, admin auth.Principal, orderID string) (*TransitionResult, error) {
	return r.Transition(ctx, admin, orderID, StatusCancelled)
}
