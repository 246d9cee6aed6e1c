package httpx

import (
	"context"

	"github.com/ariefcatur/heritage-market/internal/auth"
	"github.com/ariefcatur/heritage-market/internal/orders"
)

//go:generate mockgen -source=market.go -destination=mock/market_mock.go -package=mock_httpx

// Market is what the HTTP layer needs from the order lifecycle engine.
// *orders.Service implements it.
type Market interface {
	Cart(ctx context.Context, p auth.Principal) (*orders.Cart, error)
	AddToCart(ctx context.Context, p auth.Principal, productID string, qty int) error
	UpdateCartItem(ctx context.Context, p auth.Principal, productID string, qty int) error
	RemoveFromCart(ctx context.Context, p auth.Principal, productID string) error

	Checkout(ctx context.Context, p auth.Principal, in orders.CheckoutInput, key string) (*orders.Order, bool, error)

	GetOrder(ctx context.Context, p auth.Principal, orderID string) (*orders.Order, error)
	OrderStatus(ctx context.Context, p auth.Principal, orderID string) (orders.StatusView, error)
	ListOrders(ctx context.Context, p auth.Principal, status orders.Status, pg orders.Page) ([]orders.Order, error)
	History(ctx context.Context, p auth.Principal, orderID string) ([]orders.HistoryEntry, error)
	CancelOrder(ctx context.Context, p auth.Principal, orderID string) (*orders.Order, error)
	AdvanceOrder(ctx context.Context, p auth.Principal, orderID string, to orders.Status) (*orders.Order, error)

	SubmitReview(ctx context.Context, p auth.Principal, in orders.ReviewInput) (*orders.Review, error)
	ProductReviews(ctx context.Context, productID string, pg orders.Page) ([]orders.Review, error)
	ProductRating(ctx context.Context, productID string) (orders.Rating, error)
	ModerateReview(ctx context.Context, p auth.Principal, reviewID int64, status orders.ReviewStatus) error

	ListProducts(ctx context.Context, categoryID *int64, pg orders.Page) ([]orders.Product, error)
	GetProduct(ctx context.Context, viewer *auth.Principal, productID string) (*orders.Product, error)
	CreateProduct(ctx context.Context, p auth.Principal, in orders.ProductInput) (*orders.Product, error)
	ModerateProduct(ctx context.Context, p auth.Principal, productID string, to orders.ModerationStatus) error
	ModerateSeller(ctx context.Context, p auth.Principal, sellerID string, to orders.ModerationStatus) error
}

var _ Market = (*orders.Service)(nil)

// TokenParser turns a bearer token into a principal. *auth.Tokens implements it.
type TokenParser interface {
	Parse(raw string) (auth.Principal, error)
}
