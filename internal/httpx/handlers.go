package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ariefcatur/heritage-market/internal/auth"
	"github.com/ariefcatur/heritage-market/internal/orders"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const maxBody = 1 << 20

type Handler struct {
	Market Market
	Log    zerolog.Logger
}

type addItemReq struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

type qtyReq struct {
	Qty int `json:"qty"`
}

type statusReq struct {
	Status string `json:"status"`
}

type checkoutResp struct {
	Order      *orders.Order `json:"order"`
	Idempotent bool          `json:"idempotent"`
}

type productResp struct {
	*orders.Product
	Rating orders.Rating `json:"rating"`
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(v); err != nil {
		writeProblem(w, http.StatusBadRequest, "validation", "invalid json", nil)
		return false
	}
	return true
}

// principal is only called behind requireRole, which guarantees one exists.
func principal(r *http.Request) auth.Principal {
	p, _ := auth.FromContext(r.Context())
	return p
}

func page(r *http.Request) orders.Page {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	return orders.Page{Limit: limit, Offset: offset}
}

// ---- catalog ----

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	var category *int64
	if s := r.URL.Query().Get("category_id"); s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			writeProblem(w, http.StatusBadRequest, "validation", "category_id must be an integer", nil)
			return
		}
		category = &id
	}
	ps, err := h.Market.ListProducts(r.Context(), category, page(r))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	var viewer *auth.Principal
	if p, err := auth.FromContext(r.Context()); err == nil {
		viewer = &p
	}
	id := chi.URLParam(r, "id")
	p, err := h.Market.GetProduct(r.Context(), viewer, id)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	rt, err := h.Market.ProductRating(r.Context(), id)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, productResp{Product: p, Rating: rt})
}

func (h *Handler) productReviews(w http.ResponseWriter, r *http.Request) {
	rs, err := h.Market.ProductReviews(r.Context(), chi.URLParam(r, "id"), page(r))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, rs)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var in orders.ProductInput
	if !decode(w, r, &in) {
		return
	}
	p, err := h.Market.CreateProduct(r.Context(), principal(r), in)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// ---- cart ----

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	c, err := h.Market.Cart(r.Context(), principal(r))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemReq
	if !decode(w, r, &req) {
		return
	}
	if err := h.Market.AddToCart(r.Context(), principal(r), req.ProductID, req.Qty); err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.getCart(w, r)
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req qtyReq
	if !decode(w, r, &req) {
		return
	}
	if err := h.Market.UpdateCartItem(r.Context(), principal(r), chi.URLParam(r, "productID"), req.Qty); err != nil {
		writeError(w, h.Log, err)
		return
	}
	h.getCart(w, r)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	if err := h.Market.RemoveFromCart(r.Context(), principal(r), chi.URLParam(r, "productID")); err != nil {
		writeError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- checkout and orders ----

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var in orders.CheckoutInput
	if !decode(w, r, &in) {
		return
	}
	o, replayed, err := h.Market.Checkout(r.Context(), principal(r), in, r.Header.Get("Idempotency-Key"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	code := http.StatusCreated
	if replayed {
		code = http.StatusOK
	}
	writeJSON(w, code, checkoutResp{Order: o, Idempotent: replayed})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	status := orders.Status(r.URL.Query().Get("status"))
	list, err := h.Market.ListOrders(r.Context(), principal(r), status, page(r))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.Market.GetOrder(r.Context(), principal(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) orderStatus(w http.ResponseWriter, r *http.Request) {
	v, err := h.Market.OrderStatus(r.Context(), principal(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) orderHistory(w http.ResponseWriter, r *http.Request) {
	hs, err := h.Market.History(r.Context(), principal(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, hs)
}

// cancelOrder serves both the buyer route and the admin emergency route;
// the service decides what the caller's role allows.
func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.Market.CancelOrder(r.Context(), principal(r), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) advanceOrder(w http.ResponseWriter, r *http.Request) {
	var req statusReq
	if !decode(w, r, &req) {
		return
	}
	o, err := h.Market.AdvanceOrder(r.Context(), principal(r), chi.URLParam(r, "id"), orders.Status(req.Status))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// ---- reviews ----

func (h *Handler) submitReview(w http.ResponseWriter, r *http.Request) {
	var in orders.ReviewInput
	if !decode(w, r, &in) {
		return
	}
	rv, err := h.Market.SubmitReview(r.Context(), principal(r), in)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusCreated, rv)
}

// ---- moderation ----

func (h *Handler) moderateProduct(w http.ResponseWriter, r *http.Request) {
	var req statusReq
	if !decode(w, r, &req) {
		return
	}
	err := h.Market.ModerateProduct(r.Context(), principal(r), chi.URLParam(r, "id"), orders.ModerationStatus(req.Status))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) moderateSeller(w http.ResponseWriter, r *http.Request) {
	var req statusReq
	if !decode(w, r, &req) {
		return
	}
	err := h.Market.ModerateSeller(r.Context(), principal(r), chi.URLParam(r, "id"), orders.ModerationStatus(req.Status))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) moderateReview(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusNotFound, "not_found", "review not found", nil)
		return
	}
	var req statusReq
	if !decode(w, r, &req) {
		return
	}
	if err := h.Market.ModerateReview(r.Context(), principal(r), id, orders.ReviewStatus(req.Status)); err != nil {
		writeError(w, h.Log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
