package orders

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ariefcatur/heritage-market/internal/auth"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ModerationStatus is shared by products and sellers: both start pending and
// are approved or rejected once by an admin.
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationRejected ModerationStatus = "rejected"
)

func (s ModerationStatus) decision() bool {
	return s == ModerationApproved || s == ModerationRejected
}

type Product struct {
	ID          string           `json:"id"`
	SellerID    string           `json:"seller_id"`
	CategoryID  *int64           `json:"category_id,omitempty"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Price       decimal.Decimal  `json:"price"`
	Stock       int              `json:"stock"`
	Status      ModerationStatus `json:"status"`
	ImageURL    string           `json:"image_url,omitempty"`
	Rating      *Rating          `json:"rating,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type ProductInput struct {
	CategoryID  *int64          `json:"category_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	ImageURL    string          `json:"image_url"`
}

func (in ProductInput) normalize() (ProductInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	switch {
	case in.Title == "":
		return in, invalid("title", "required")
	case !in.Price.IsPositive():
		return in, invalid("price", "must be greater than zero")
	case !in.Price.Equal(in.Price.Round(2)):
		return in, invalid("price", "at most two decimal places")
	case in.Stock < 0:
		return in, invalid("stock", "must not be negative")
	}
	return in, nil
}

const productColumns = `p.id, p.seller_id, p.category_id, p.title, p.description, p.price,
	p.stock, p.status, p.image_url, p.created_at, p.updated_at`

func scanProduct(row pgx.Row, extra ...any) (Product, error) {
	var p Product
	dest := []any{&p.ID, &p.SellerID, &p.CategoryID, &p.Title, &p.Description, &p.Price,
		&p.Stock, &p.Status, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt}
	err := row.Scan(append(dest, extra...)...)
	return p, err
}

// CreateProduct lists a new product for an approved seller. It stays hidden
// from buyers until an admin approves it.
func (r *Repo) CreateProduct(ctx context.Context, seller auth.Principal, in ProductInput) (*Product, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	var sellerStatus ModerationStatus
	err = r.DB.QueryRow(ctx, `SELECT status FROM sellers WHERE user_id = $1`, seller.UserID).Scan(&sellerStatus)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("seller", seller.UserID)
	}
	if err != nil {
		return nil, err
	}
	if sellerStatus != ModerationApproved {
		return nil, invalid("seller", "seller account is "+string(sellerStatus))
	}

	p, err := scanProduct(r.DB.QueryRow(ctx, `
		INSERT INTO products AS p (id, seller_id, category_id, title, description, price, stock, status, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 'pending', $8)
		RETURNING `+productColumns,
		uuid.NewString(), seller.UserID, in.CategoryID, in.Title, in.Description, in.Price, in.Stock, in.ImageURL))
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProducts returns approved products with their current rating.
func (r *Repo) ListProducts(ctx context.Context, categoryID *int64, pg Page) ([]Product, error) {
	pg = pg.normalize()
	rows, err := r.DB.Query(ctx, `
		SELECT `+productColumns+`,
			coalesce(round(avg(rv.rating)::numeric, 2), 0), count(rv.id)
		FROM products p
		LEFT JOIN reviews rv ON rv.product_id = p.id AND rv.status = 'active'
		WHERE p.status = 'approved' AND ($1::bigint IS NULL OR p.category_id = $1)
		GROUP BY p.id
		ORDER BY p.created_at DESC, p.id
		LIMIT $2 OFFSET $3`, categoryID, pg.Limit, pg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		var rt Rating
		p, err := scanProduct(rows, &rt.Average, &rt.Count)
		if err != nil {
			return nil, err
		}
		rt.ProductID = p.ID
		p.Rating = &rt
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetProduct returns an approved product. Sellers also see their own
// unapproved products and admins see everything.
func (r *Repo) GetProduct(ctx context.Context, viewer *auth.Principal, productID string) (*Product, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return nil, notFound("product", productID)
	}
	p, err := scanProduct(r.DB.QueryRow(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1`, productID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("product", productID)
	}
	if err != nil {
		return nil, err
	}
	if p.Status != ModerationApproved {
		if viewer == nil || !(viewer.Is(auth.RoleAdmin) || viewer.UserID == p.SellerID) {
			return nil, notFound("product", productID)
		}
	}
	return &p, nil
}

// ModerateProduct decides a pending product. A product is decided once.
func (r *Repo) ModerateProduct(ctx context.Context, productID string, to ModerationStatus) error {
	if _, err := uuid.Parse(productID); err != nil {
		return notFound("product", productID)
	}
	return r.moderate(ctx, "product", `products`, `id`, productID, to)
}

// ModerateSeller decides a pending seller application.
func (r *Repo) ModerateSeller(ctx context.Context, sellerID string, to ModerationStatus) error {
	if _, err := uuid.Parse(sellerID); err != nil {
		return notFound("seller", sellerID)
	}
	return r.moderate(ctx, "seller", `sellers`, `user_id`, sellerID, to)
}

func (r *Repo) moderate(ctx context.Context, entity, table, key, id string, to ModerationStatus) error {
	if !to.decision() {
		return invalid("status", "must be approved or rejected")
	}
	ct, err := r.DB.Exec(ctx,
		`UPDATE `+table+` SET status = $2, updated_at = now() WHERE `+key+` = $1 AND status = 'pending'`,
		id, string(to))
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 1 {
		return nil
	}
	var current string
	err = r.DB.QueryRow(ctx, `SELECT status FROM `+table+` WHERE `+key+` = $1`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound(entity, id)
	}
	if err != nil {
		return err
	}
	return &ModerationError{Entity: entity, ID: id, From: ModerationStatus(current), To: to}
}
