package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariefcatur/heritage-market/internal/auth"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type ReviewRepo struct{ DB *pgxpool.Pool }

// Submit stores one review per (buyer, product, order). The order row is held
// FOR SHARE while the preconditions are checked so a concurrent cancel cannot
// slip in between the check and the insert.
func (r *ReviewRepo) Submit(ctx context.Context, buyer auth.Principal, in ReviewInput) (*Review, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	rv := Review{
		ProductID: in.ProductID,
		UserID:    buyer.UserID,
		OrderID:   in.OrderID,
		Rating:    in.Rating,
		Comment:   in.Comment,
		Status:    ReviewActive,
	}
	err = inTx(ctx, r.DB, func(tx pgx.Tx) error {
		var (
			owner  string
			status Status
		)
		err := tx.QueryRow(ctx, `SELECT user_id, status FROM orders WHERE id = $1 FOR SHARE`, in.OrderID).
			Scan(&owner, &status)
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound("order", in.OrderID)
		}
		if err != nil {
			return fmt.Errorf("lock order: %w", err)
		}
		if owner != buyer.UserID {
			return fmt.Errorf("%w: order %s", ErrNotPurchased, in.OrderID)
		}

		var hasLine bool
		err = tx.QueryRow(ctx, `
			SELECT EXISTS (SELECT 1 FROM order_items WHERE order_id = $1 AND product_id = $2)`,
			in.OrderID, in.ProductID).Scan(&hasLine)
		if err != nil {
			return err
		}
		if !hasLine {
			return fmt.Errorf("%w: product %s not in order %s", ErrNotPurchased, in.ProductID, in.OrderID)
		}
		if !status.IsFulfilled() {
			return fmt.Errorf("%w: order %s is %s", ErrOrderNotFulfilled, in.OrderID, status)
		}

		err = tx.QueryRow(ctx, `
			INSERT INTO reviews(product_id, user_id, order_id, rating, comment, status)
			VALUES ($1, $2, $3, $4, $5, 'active')
			ON CONFLICT (user_id, product_id, order_id) DO NOTHING
			RETURNING id, created_at`,
			rv.ProductID, rv.UserID, rv.OrderID, rv.Rating, rv.Comment).Scan(&rv.ID, &rv.CreatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: product %s in order %s", ErrAlreadyReviewed, in.ProductID, in.OrderID)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// Rating aggregates active reviews on every call; nothing is kept running.
func (r *ReviewRepo) Rating(ctx context.Context, productID string) (Rating, error) {
	out := Rating{ProductID: productID, Average: decimal.Zero}
	if err := checkID("product_id", productID); err != nil {
		return out, err
	}
	var avg *decimal.Decimal
	err := r.DB.QueryRow(ctx, `
		SELECT round(avg(rating)::numeric, 2), count(*)
		FROM reviews
		WHERE product_id = $1 AND status = 'active'`, productID).Scan(&avg, &out.Count)
	if err != nil {
		return out, err
	}
	if avg != nil {
		out.Average = *avg
	}
	return out, nil
}

func (r *ReviewRepo) ListForProduct(ctx context.Context, productID string, p Page) ([]Review, error) {
	if err := checkID("product_id", productID); err != nil {
		return nil, err
	}
	p = p.normalize()
	rows, err := r.DB.Query(ctx, `
		SELECT id, product_id, user_id, order_id, rating, comment, status, created_at
		FROM reviews
		WHERE product_id = $1 AND status = 'active'
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`, productID, p.Limit, p.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Review{}
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.OrderID, &rv.Rating, &rv.Comment, &rv.Status, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

// Moderate changes a review's visibility. Only active reviews count towards
// a product's rating.
func (r *ReviewRepo) Moderate(ctx context.Context, reviewID int64, status ReviewStatus) error {
	if !status.Valid() {
		return invalid("status", "must be one of active, flagged, removed")
	}
	ct, err := r.DB.Exec(ctx, `UPDATE reviews SET status = $2 WHERE id = $1`, reviewID, string(status))
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return notFound("review", fmt.Sprint(reviewID))
	}
	return nil
}
