package orders

import (
	"context"
	"fmt"

	"github.com/ariefcatur/heritage-market/internal/auth"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type cartLine struct {
	productID string
	title     string
	qty       int
	price     decimal.Decimal
	stock     int
	approved  bool
}

// Checkout turns the buyer's cart into a pending order.
//
// Cart rows and their products are locked FOR UPDATE in product-id order, so
// two checkouts racing for the last units serialise on the product rows and
// the loser sees the reduced stock. The decrement itself is still conditional
// on stock >= qty. Any failure rolls back: no order, no lines, stock and cart
// untouched.
func (r *Repo) Checkout(ctx context.Context, buyer auth.Principal, in CheckoutInput) (*Order, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}

	var order *Order
	err = inTx(ctx, r.DB, func(tx pgx.Tx) error {
		lines, err := lockCart(ctx, tx, buyer.UserID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return invalid("cart", "cart is empty")
		}
		if err := checkLines(lines); err != nil {
			return err
		}

		total := decimal.Zero
		for _, l := range lines {
			total = total.Add(l.price.Mul(decimal.NewFromInt(int64(l.qty))))
		}

		o := Order{
			ID:              uuid.NewString(),
			UserID:          buyer.UserID,
			TotalAmount:     total,
			Status:          StatusPending,
			ShippingAddress: in.ShippingAddress,
			PaymentMethod:   in.PaymentMethod,
			Notes:           in.Notes,
		}
		err = tx.QueryRow(ctx, `
			INSERT INTO orders(id, user_id, total_amount, status, shipping_address, payment_method, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING created_at, updated_at`,
			o.ID, o.UserID, o.TotalAmount, string(o.Status), o.ShippingAddress, string(o.PaymentMethod), o.Notes,
		).Scan(&o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return fmt.Errorf("insert order: %w", err)
		}

		for _, l := range lines {
			it := OrderItem{OrderID: o.ID, ProductID: l.productID, Title: l.title, Quantity: l.qty, Price: l.price}
			err := tx.QueryRow(ctx, `
				INSERT INTO order_items(order_id, product_id, quantity, price)
				VALUES ($1, $2, $3, $4)
				RETURNING id`, o.ID, l.productID, l.qty, l.price).Scan(&it.ID)
			if err != nil {
				return fmt.Errorf("insert order item: %w", err)
			}

			ct, err := tx.Exec(ctx, `
				UPDATE products SET stock = stock - $2, updated_at = now()
				WHERE id = $1 AND stock >= $2`, l.productID, l.qty)
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
			if ct.RowsAffected() != 1 {
				return &InsufficientStockError{Shortages: []StockShortage{{
					ProductID: l.productID, Title: l.title, Requested: l.qty, Available: l.stock,
				}}}
			}
			o.Items = append(o.Items, it)
		}

		if err := clearCart(ctx, tx, buyer.UserID, lines); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		if err := recordHistory(ctx, tx, o.ID, nil, StatusPending, buyer); err != nil {
			return fmt.Errorf("record history: %w", err)
		}
		order = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func lockCart(ctx context.Context, tx pgx.Tx, userID string) ([]cartLine, error) {
	rows, err := tx.Query(ctx, `
		SELECT c.product_id, p.title, c.qty, p.price, p.stock, p.status = 'approved'
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.product_id
		FOR UPDATE OF c, p`, userID)
	if err != nil {
		return nil, fmt.Errorf("lock cart: %w", err)
	}
	defer rows.Close()

	var lines []cartLine
	for rows.Next() {
		var l cartLine
		if err := rows.Scan(&l.productID, &l.title, &l.qty, &l.price, &l.stock, &l.approved); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// clearCart deletes only the lines that were ordered. A row added after
// lockCart is not locked by this transaction and must survive it.
func clearCart(ctx context.Context, tx pgx.Tx, userID string, lines []cartLine) error {
	ids := make([]string, len(lines))
	for i, l := range lines {
		ids[i] = l.productID
	}
	_, err := tx.Exec(ctx, `
		DELETE FROM cart_items
		WHERE user_id = $1 AND product_id = ANY($2::text[]::uuid[])`, userID, ids)
	return err
}

// checkLines reports every unavailable product, or failing that every line
// that asks for more than is in stock.
func checkLines(lines []cartLine) error {
	var unavailable []string
	var short []StockShortage
	for _, l := range lines {
		if !l.approved {
			unavailable = append(unavailable, l.productID)
			continue
		}
		if l.qty > l.stock {
			short = append(short, StockShortage{
				ProductID: l.productID, Title: l.title, Requested: l.qty, Available: l.stock,
			})
		}
	}
	if len(unavailable) > 0 {
		return &UnavailableError{ProductIDs: unavailable}
	}
	if len(short) > 0 {
		return &InsufficientStockError{Shortages: short}
	}
	return nil
}
