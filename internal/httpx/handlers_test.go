package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ariefcatur/heritage-market/internal/auth"
	mock_httpx "github.com/ariefcatur/heritage-market/internal/httpx/mock"
	"github.com/ariefcatur/heritage-market/internal/orders"
	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	buyer  = auth.Principal{UserID: "b0000000-0000-0000-0000-000000000001", Role: auth.RoleBuyer}
	seller = auth.Principal{UserID: "50000000-0000-0000-0000-000000000001", Role: auth.RoleSeller}
	admin  = auth.Principal{UserID: "a0000000-0000-0000-0000-000000000001", Role: auth.RoleAdmin}
)

const orderID = "0e000000-0000-0000-0000-000000000001"

func newTestServer(t *testing.T) (*httptest.Server, *mock_httpx.MockMarket) {
	t.Helper()
	ctrl := gomock.NewController(t)
	market := mock_httpx.NewMockMarket(ctrl)
	tokens := mock_httpx.NewMockTokenParser(ctrl)
	tokens.EXPECT().Parse("buyer-token").Return(buyer, nil).AnyTimes()
	tokens.EXPECT().Parse("seller-token").Return(seller, nil).AnyTimes()
	tokens.EXPECT().Parse("admin-token").Return(admin, nil).AnyTimes()
	tokens.EXPECT().Parse(gomock.Any()).Return(auth.Principal{}, auth.ErrInvalidToken).AnyTimes()

	srv := httptest.NewServer(NewRouter(Deps{Market: market, Tokens: tokens, Log: zerolog.Nop()}))
	t.Cleanup(srv.Close)
	return srv, market
}

func do(t *testing.T, srv *httptest.Server, method, path, token, body string, headers ...string) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, rd)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, b
}

func decodeProblem(t *testing.T, b []byte) problem {
	t.Helper()
	var p problem
	require.NoError(t, json.Unmarshal(b, &p), string(b))
	return p
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	res, body := do(t, srv, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "ok", string(body))
}

func TestAuthentication(t *testing.T) {
	srv, _ := newTestServer(t)

	res, body := do(t, srv, http.MethodGet, "/api/v1/cart", "", "")
	require.Equal(t, http.StatusUnauthorized, res.StatusCode)
	require.Equal(t, "unauthenticated", decodeProblem(t, body).Error)

	res, _ = do(t, srv, http.MethodGet, "/api/v1/cart", "forged", "")
	require.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, body = do(t, srv, http.MethodGet, "/api/v1/cart", "seller-token", "")
	require.Equal(t, http.StatusForbidden, res.StatusCode)
	require.Equal(t, "forbidden", decodeProblem(t, body).Error)

	res, _ = do(t, srv, http.MethodPost, "/api/v1/admin/orders/"+orderID+"/cancel", "buyer-token", "")
	require.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestCartEndpoints(t *testing.T) {
	srv, market := newTestServer(t)
	productID := "9f000000-0000-0000-0000-000000000001"
	cart := &orders.Cart{
		Items: []orders.CartItem{{ProductID: productID, Qty: 3, Title: "Kente cloth", Price: decimal.RequireFromString("40.00")}},
		Total: decimal.RequireFromString("120.00"),
	}

	gomock.InOrder(
		market.EXPECT().AddToCart(gomock.Any(), buyer, productID, 2).Return(nil),
		market.EXPECT().Cart(gomock.Any(), buyer).Return(cart, nil),
	)
	res, body := do(t, srv, http.MethodPost, "/api/v1/cart/items", "buyer-token",
		fmt.Sprintf(`{"product_id":%q,"qty":2}`, productID))
	require.Equal(t, http.StatusOK, res.StatusCode)
	var got orders.Cart
	require.NoError(t, json.Unmarshal(body, &got))
	require.True(t, got.Total.Equal(decimal.NewFromInt(120)))

	market.EXPECT().AddToCart(gomock.Any(), buyer, productID, 0).
		Return(&orders.ValidationError{Field: "qty", Reason: "must be at least 1"})
	res, body = do(t, srv, http.MethodPost, "/api/v1/cart/items", "buyer-token",
		fmt.Sprintf(`{"product_id":%q,"qty":0}`, productID))
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	p := decodeProblem(t, body)
	require.Equal(t, "validation", p.Error)
	require.Equal(t, map[string]any{"field": "qty", "reason": "must be at least 1"}, p.Details)

	market.EXPECT().RemoveFromCart(gomock.Any(), buyer, productID).Return(nil)
	res, _ = do(t, srv, http.MethodDelete, "/api/v1/cart/items/"+productID, "buyer-token", "")
	require.Equal(t, http.StatusNoContent, res.StatusCode)

	res, _ = do(t, srv, http.MethodPost, "/api/v1/cart/items", "buyer-token", "{not json")
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestCheckout(t *testing.T) {
	srv, market := newTestServer(t)
	in := orders.CheckoutInput{ShippingAddress: "12 Market St, Accra", PaymentMethod: orders.PaymentMobileMoney}
	o := &orders.Order{ID: orderID, UserID: buyer.UserID, Status: orders.StatusPending, TotalAmount: decimal.NewFromInt(80)}
	body := `{"shipping_address":"12 Market St, Accra","payment_method":"mobile_money"}`

	market.EXPECT().Checkout(gomock.Any(), buyer, in, "key-1").Return(o, false, nil)
	res, b := do(t, srv, http.MethodPost, "/api/v1/checkout", "buyer-token", body, "Idempotency-Key", "key-1")
	require.Equal(t, http.StatusCreated, res.StatusCode)
	var got checkoutResp
	require.NoError(t, json.Unmarshal(b, &got))
	require.Equal(t, orderID, got.Order.ID)
	require.False(t, got.Idempotent)

	market.EXPECT().Checkout(gomock.Any(), buyer, in, "key-1").Return(o, true, nil)
	res, b = do(t, srv, http.MethodPost, "/api/v1/checkout", "buyer-token", body, "Idempotency-Key", "key-1")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.Unmarshal(b, &got))
	require.True(t, got.Idempotent)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	srv, market := newTestServer(t)
	short := &orders.InsufficientStockError{Shortages: []orders.StockShortage{
		{ProductID: "p-1", Title: "Mask", Requested: 2, Available: 1},
	}}
	market.EXPECT().Checkout(gomock.Any(), buyer, gomock.Any(), "").Return(nil, false, short)

	res, b := do(t, srv, http.MethodPost, "/api/v1/checkout", "buyer-token",
		`{"shipping_address":"x","payment_method":"bank_transfer"}`)
	require.Equal(t, http.StatusConflict, res.StatusCode)
	p := decodeProblem(t, b)
	require.Equal(t, "insufficient_stock", p.Error)
	details, ok := p.Details.([]any)
	require.True(t, ok)
	require.Len(t, details, 1)
	require.Equal(t, float64(1), details[0].(map[string]any)["available"])
}

func TestOrderTransitions(t *testing.T) {
	srv, market := newTestServer(t)
	cancelled := &orders.Order{ID: orderID, Status: orders.StatusCancelled}

	market.EXPECT().CancelOrder(gomock.Any(), buyer, orderID).Return(cancelled, nil)
	res, _ := do(t, srv, http.MethodPost, "/api/v1/orders/"+orderID+"/cancel", "buyer-token", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	market.EXPECT().CancelOrder(gomock.Any(), buyer, orderID).Return(nil,
		&orders.TransitionError{OrderID: orderID, From: orders.StatusCancelled, To: orders.StatusCancelled, Role: auth.RoleBuyer})
	res, b := do(t, srv, http.MethodPost, "/api/v1/orders/"+orderID+"/cancel", "buyer-token", "")
	require.Equal(t, http.StatusConflict, res.StatusCode)
	require.Equal(t, "invalid_transition", decodeProblem(t, b).Error)

	market.EXPECT().CancelOrder(gomock.Any(), admin, orderID).Return(cancelled, nil)
	res, _ = do(t, srv, http.MethodPost, "/api/v1/admin/orders/"+orderID+"/cancel", "admin-token", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	market.EXPECT().AdvanceOrder(gomock.Any(), seller, orderID, orders.StatusShipped).
		Return(&orders.Order{ID: orderID, Status: orders.StatusShipped}, nil)
	res, b = do(t, srv, http.MethodPost, "/api/v1/seller/orders/"+orderID+"/status", "seller-token", `{"status":"shipped"}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	var o orders.Order
	require.NoError(t, json.Unmarshal(b, &o))
	require.Equal(t, orders.StatusShipped, o.Status)
}

func TestOrderReads(t *testing.T) {
	srv, market := newTestServer(t)

	market.EXPECT().ListOrders(gomock.Any(), admin, orders.StatusPending, orders.Page{Limit: 5, Offset: 10}).
		Return([]orders.Order{{ID: orderID}}, nil)
	res, _ := do(t, srv, http.MethodGet, "/api/v1/admin/orders?status=pending&limit=5&offset=10", "admin-token", "")
	require.Equal(t, http.StatusOK, res.StatusCode)

	market.EXPECT().GetOrder(gomock.Any(), seller, orderID).Return(nil, &orders.NotFoundError{Entity: "order", ID: orderID})
	res, b := do(t, srv, http.MethodGet, "/api/v1/orders/"+orderID, "seller-token", "")
	require.Equal(t, http.StatusNotFound, res.StatusCode)
	require.Equal(t, "not_found", decodeProblem(t, b).Error)

	market.EXPECT().OrderStatus(gomock.Any(), buyer, orderID).
		Return(orders.StatusView{OrderID: orderID, Status: orders.StatusProcessing}, nil)
	res, b = do(t, srv, http.MethodGet, "/api/v1/orders/"+orderID+"/status", "buyer-token", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Contains(t, string(b), `"status":"processing"`)

	market.EXPECT().History(gomock.Any(), buyer, orderID).Return([]orders.HistoryEntry{{To: orders.StatusPending}}, nil)
	res, _ = do(t, srv, http.MethodGet, "/api/v1/orders/"+orderID+"/history", "buyer-token", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func TestSubmitReviewErrors(t *testing.T) {
	srv, market := newTestServer(t)
	body := fmt.Sprintf(`{"order_id":%q,"product_id":"p","rating":5,"comment":"lovely"}`, orderID)

	cases := []struct {
		err  error
		code int
		kind string
	}{
		{fmt.Errorf("%w: again", orders.ErrAlreadyReviewed), http.StatusConflict, "already_reviewed"},
		{fmt.Errorf("%w: not yours", orders.ErrNotPurchased), http.StatusForbidden, "not_purchased"},
		{fmt.Errorf("%w: still shipped", orders.ErrOrderNotFulfilled), http.StatusConflict, "order_not_fulfilled"},
	}
	for _, tc := range cases {
		market.EXPECT().SubmitReview(gomock.Any(), buyer, gomock.Any()).Return(nil, tc.err)
		res, b := do(t, srv, http.MethodPost, "/api/v1/reviews", "buyer-token", body)
		require.Equal(t, tc.code, res.StatusCode)
		require.Equal(t, tc.kind, decodeProblem(t, b).Error)
	}

	market.EXPECT().SubmitReview(gomock.Any(), buyer, orders.ReviewInput{OrderID: orderID, ProductID: "p", Rating: 5, Comment: "lovely"}).
		Return(&orders.Review{ID: 7, Rating: 5}, nil)
	res, _ := do(t, srv, http.MethodPost, "/api/v1/reviews", "buyer-token", body)
	require.Equal(t, http.StatusCreated, res.StatusCode)
}

func TestPublicProduct(t *testing.T) {
	srv, market := newTestServer(t)
	pid := "9f000000-0000-0000-0000-000000000002"

	market.EXPECT().GetProduct(gomock.Any(), (*auth.Principal)(nil), pid).
		Return(&orders.Product{ID: pid, Title: "Beaded necklace", Price: decimal.NewFromInt(15)}, nil)
	market.EXPECT().ProductRating(gomock.Any(), pid).
		Return(orders.Rating{ProductID: pid, Average: decimal.RequireFromString("4.5"), Count: 2}, nil)

	res, b := do(t, srv, http.MethodGet, "/api/v1/products/"+pid, "", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	var got struct {
		Title  string `json:"title"`
		Rating struct {
			Average decimal.Decimal `json:"average"`
			Count   int             `json:"count"`
		} `json:"rating"`
	}
	require.NoError(t, json.Unmarshal(b, &got))
	require.Equal(t, "Beaded necklace", got.Title)
	require.Equal(t, 2, got.Rating.Count)
	require.True(t, got.Rating.Average.Equal(decimal.RequireFromString("4.5")))

	res, _ = do(t, srv, http.MethodGet, "/api/v1/products?category_id=abc", "", "")
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestModeration(t *testing.T) {
	srv, market := newTestServer(t)
	pid := "9f000000-0000-0000-0000-000000000003"

	market.EXPECT().ModerateProduct(gomock.Any(), admin, pid, orders.ModerationApproved).Return(nil)
	res, _ := do(t, srv, http.MethodPost, "/api/v1/admin/products/"+pid+"/moderation", "admin-token", `{"status":"approved"}`)
	require.Equal(t, http.StatusNoContent, res.StatusCode)

	market.EXPECT().ModerateSeller(gomock.Any(), admin, seller.UserID, orders.ModerationRejected).
		Return(&orders.ModerationError{Entity: "seller", ID: seller.UserID, From: orders.ModerationApproved, To: orders.ModerationRejected})
	res, _ = do(t, srv, http.MethodPost, "/api/v1/admin/sellers/"+seller.UserID+"/moderation", "admin-token", `{"status":"rejected"}`)
	require.Equal(t, http.StatusConflict, res.StatusCode)

	market.EXPECT().ModerateReview(gomock.Any(), admin, int64(42), orders.ReviewFlagged).Return(nil)
	res, _ = do(t, srv, http.MethodPost, "/api/v1/admin/reviews/42/moderation", "admin-token", `{"status":"flagged"}`)
	require.Equal(t, http.StatusNoContent, res.StatusCode)

	res, _ = do(t, srv, http.MethodPost, "/api/v1/admin/reviews/abc/moderation", "admin-token", `{"status":"flagged"}`)
	require.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestInternalErrorIsNotLeaked(t *testing.T) {
	srv, market := newTestServer(t)
	market.EXPECT().Cart(gomock.Any(), buyer).Return(nil, errors.New("dial tcp 10.0.0.7:5432: connection refused"))

	res, b := do(t, srv, http.MethodGet, "/api/v1/cart", "buyer-token", "")
	require.Equal(t, http.StatusInternalServerError, res.StatusCode)
	p := decodeProblem(t, b)
	require.Equal(t, "internal", p.Error)
	require.NotContains(t, p.Message, "10.0.0.7")
}
