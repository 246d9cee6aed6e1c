package orders

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// AddItem puts qty units of a product in the buyer's cart, adding to any
// quantity already there. Stock is not checked until checkout.
func (r *Repo) AddItem(ctx context.Context, userID, productID string, qty int) error {
	if err := checkID("product_id", productID); err != nil {
		return err
	}
	if err := checkQty(qty); err != nil {
		return err
	}
	ct, err := r.DB.Exec(ctx, `
		INSERT INTO cart_items(user_id, product_id, qty)
		SELECT $1::uuid, p.id, $3::int FROM products p
		WHERE p.id = $2 AND p.status = 'approved'
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET qty = cart_items.qty + EXCLUDED.qty, updated_at = now()
		WHERE cart_items.qty + EXCLUDED.qty <= $4`,
		userID, productID, qty, MaxLineQty)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		// either the product is not buyable or the increment hit the cap
		var inCart bool
		err := r.DB.QueryRow(ctx, `
			SELECT EXISTS (SELECT 1 FROM cart_items c JOIN products p ON p.id = c.product_id
			WHERE c.user_id = $1 AND c.product_id = $2 AND p.status = 'approved')`,
			userID, productID).Scan(&inCart)
		if err != nil {
			return err
		}
		if inCart {
			return invalid("qty", fmt.Sprintf("line would exceed %d", MaxLineQty))
		}
		return notFound("product", productID)
	}
	return nil
}

// UpdateQuantity sets an absolute quantity. Zero or less removes the line.
func (r *Repo) UpdateQuantity(ctx context.Context, userID, productID string, qty int) error {
	if err := checkID("product_id", productID); err != nil {
		return err
	}
	if qty <= 0 {
		return r.RemoveItem(ctx, userID, productID)
	}
	if err := checkQty(qty); err != nil {
		return err
	}
	ct, err := r.DB.Exec(ctx, `
		UPDATE cart_items SET qty = $3, updated_at = now()
		WHERE user_id = $1 AND product_id = $2`, userID, productID, qty)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return notFound("cart item", productID)
	}
	return nil
}

// RemoveItem is idempotent.
func (r *Repo) RemoveItem(ctx context.Context, userID, productID string) error {
	if err := checkID("product_id", productID); err != nil {
		return err
	}
	_, err := r.DB.Exec(ctx, `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`, userID, productID)
	return err
}

// ListItems returns the visible cart. Lines whose product is no longer
// approved are left in place but not shown; checkout refuses them.
func (r *Repo) ListItems(ctx context.Context, userID string) (*Cart, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT c.product_id, c.qty, p.title, p.price, p.stock, p.image_url, c.created_at
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1 AND p.status = 'approved'
		ORDER BY c.created_at, c.product_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cart := &Cart{Items: []CartItem{}, Total: decimal.Zero}
	for rows.Next() {
		var it CartItem
		if err := rows.Scan(&it.ProductID, &it.Qty, &it.Title, &it.Price, &it.Stock, &it.ImageURL, &it.AddedAt); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, it)
		cart.Total = cart.Total.Add(it.Subtotal())
	}
	return cart, rows.Err()
}
