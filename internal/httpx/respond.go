package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ariefcatur/heritage-market/internal/auth"
	"github.com/ariefcatur/heritage-market/internal/orders"
	"github.com/rs/zerolog"
)

type problem struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeProblem(w http.ResponseWriter, code int, kind, msg string, details any) {
	writeJSON(w, code, problem{Error: kind, Message: msg, Details: details})
}

var statusByKind = map[string]int{
	"validation":          http.StatusBadRequest,
	"not_found":           http.StatusNotFound,
	"forbidden":           http.StatusForbidden,
	"not_purchased":       http.StatusForbidden,
	"insufficient_stock":  http.StatusConflict,
	"product_unavailable": http.StatusConflict,
	"invalid_transition":  http.StatusConflict,
	"already_reviewed":    http.StatusConflict,
	"order_not_fulfilled": http.StatusConflict,
}

// writeError maps an error kind to a status code. Anything unrecognised is a
// 500 whose cause is logged but not echoed to the client.
func writeError(w http.ResponseWriter, log zerolog.Logger, err error) {
	kind := orders.Kind(err)
	code, ok := statusByKind[kind]
	if !ok {
		if errors.Is(err, context.DeadlineExceeded) {
			writeProblem(w, http.StatusGatewayTimeout, "timeout", "request timed out", nil)
			return
		}
		log.Error().Err(err).Msg("internal error")
		writeProblem(w, http.StatusInternalServerError, "internal", "internal server error", nil)
		return
	}

	var details any
	var (
		stock *orders.InsufficientStockError
		gone  *orders.UnavailableError
		ve    *orders.ValidationError
	)
	switch {
	case errors.As(err, &stock):
		details = stock.Shortages
	case errors.As(err, &gone):
		details = map[string]any{"product_ids": gone.ProductIDs}
	case errors.As(err, &ve):
		details = map[string]string{"field": ve.Field, "reason": ve.Reason}
	}
	writeProblem(w, code, kind, err.Error(), details)
}

type slotKey struct{}

// The access logger runs outside authentication, so it hands down a slot
// that authenticate fills with the caller.
func withPrincipalSlot(ctx context.Context, p *auth.Principal) context.Context {
	return context.WithValue(ctx, slotKey{}, p)
}

func principalSlot(ctx context.Context) *auth.Principal {
	p, _ := ctx.Value(slotKey{}).(*auth.Principal)
	return p
}
