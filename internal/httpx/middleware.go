package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/ariefcatur/heritage-market/internal/auth"
	"github.com/ariefcatur/heritage-market/internal/orders"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// accessLog writes one line per request once the response is done.
func accessLog(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			// authenticate runs deeper in the chain; it fills this in.
			var p auth.Principal
			r = r.WithContext(withPrincipalSlot(r.Context(), &p))

			next.ServeHTTP(ww, r)

			ev := log.Info()
			if ww.Status() >= http.StatusInternalServerError {
				ev = log.Error()
			}
			ev.Str("request_id", middleware.GetReqID(r.Context())).
				Str("user_id", p.UserID).
				Str("role", string(p.Role)).
				Str("method", r.Method).
				Str("url", r.URL.String()).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Msg("request completed")
		})
	}
}

// authenticate attaches the bearer's principal to the request. Requests
// without a token pass through anonymous; a bad token is rejected outright.
func authenticate(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := orders.WithTraceID(r.Context(), middleware.GetReqID(r.Context()))
			h := r.Header.Get("Authorization")
			if h == "" {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
			fields := strings.Fields(h)
			if len(fields) != 2 || !strings.EqualFold(fields[0], "bearer") {
				writeProblem(w, http.StatusUnauthorized, "unauthenticated", "invalid authorization header format", nil)
				return
			}
			p, err := tokens.Parse(fields[1])
			if err != nil {
				writeProblem(w, http.StatusUnauthorized, "unauthenticated", "invalid or expired token", nil)
				return
			}
			if slot := principalSlot(ctx); slot != nil {
				*slot = p
			}
			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(ctx, p)))
		})
	}
}

func requireRole(roles ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, err := auth.FromContext(r.Context())
			if err != nil {
				writeProblem(w, http.StatusUnauthorized, "unauthenticated", "authentication required", nil)
				return
			}
			for _, role := range roles {
				if p.Is(role) {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeProblem(w, http.StatusForbidden, "forbidden", "role "+string(p.Role)+" may not use this endpoint", nil)
		})
	}
}
