package orders

import (
	"context"
	"strings"
	"time"

	"github.com/ariefcatur/heritage-market/internal/auth"
	"github.com/ariefcatur/heritage-market/internal/kafka"
	"github.com/ariefcatur/heritage-market/internal/metrics"
	"github.com/ariefcatur/heritage-market/internal/redisx"
	"github.com/rs/zerolog"
	kafkago "github.com/segmentio/kafka-go"
)

// Publisher queues an event for delivery. *kafka.Producer satisfies it.
type Publisher interface {
	Publish(topic string, key, value []byte, headers ...kafkago.Header)
}

type StatusCache interface {
	Get(ctx context.Context, orderID string) (redisx.CachedStatus, bool, error)
	Put(ctx context.Context, orderID string, cs redisx.CachedStatus) error
}

type Idempotency interface {
	Lookup(ctx context.Context, userID, key string) (string, bool, error)
	Remember(ctx context.Context, userID, key, orderID string) error
}

const maxIdempotencyKeyLen = 128

// Service is the role-aware entry point used by the HTTP API and marketctl.
// Postgres is the only source of truth: events, cache and idempotency keys
// are written after commit and their failures are logged, never returned.
type Service struct {
	Orders  *Repo
	Reviews *ReviewRepo

	Events  Publisher   // optional
	Cache   StatusCache // optional
	Idem    Idempotency // optional
	Metrics *metrics.Metrics
	Log     zerolog.Logger
	Name    string // producer name in event envelopes
}

type traceKey struct{}

// WithTraceID tags ctx so events published on its behalf carry id.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceKey{}, id)
}

func traceID(ctx context.Context) string {
	id, _ := ctx.Value(traceKey{}).(string)
	return id
}

// ---- cart ----

func (s *Service) Cart(ctx context.Context, p auth.Principal) (*Cart, error) {
	if !p.Is(auth.RoleBuyer) {
		return nil, forbidden(p, "use a cart")
	}
	return s.Orders.ListItems(ctx, p.UserID)
}

func (s *Service) AddToCart(ctx context.Context, p auth.Principal, productID string, qty int) error {
	if !p.Is(auth.RoleBuyer) {
		return forbidden(p, "use a cart")
	}
	err := s.Orders.AddItem(ctx, p.UserID, productID, qty)
	s.Metrics.CartOp("add", Kind(err))
	return err
}

func (s *Service) UpdateCartItem(ctx context.Context, p auth.Principal, productID string, qty int) error {
	if !p.Is(auth.RoleBuyer) {
		return forbidden(p, "use a cart")
	}
	err := s.Orders.UpdateQuantity(ctx, p.UserID, productID, qty)
	s.Metrics.CartOp("update", Kind(err))
	return err
}

func (s *Service) RemoveFromCart(ctx context.Context, p auth.Principal, productID string) error {
	if !p.Is(auth.RoleBuyer) {
		return forbidden(p, "use a cart")
	}
	err := s.Orders.RemoveItem(ctx, p.UserID, productID)
	s.Metrics.CartOp("remove", Kind(err))
	return err
}

// ---- checkout ----

// Checkout places an order from the buyer's cart. With a non-empty key a
// retried request returns the order the first attempt produced; replayed
// reports whether that happened.
func (s *Service) Checkout(ctx context.Context, p auth.Principal, in CheckoutInput, key string) (o *Order, replayed bool, err error) {
	if !p.Is(auth.RoleBuyer) {
		return nil, false, forbidden(p, "check out")
	}
	key = strings.TrimSpace(key)
	if len(key) > maxIdempotencyKeyLen {
		return nil, false, invalid("idempotency_key", "too long")
	}

	if key != "" && s.Idem != nil {
		id, ok, err := s.Idem.Lookup(ctx, p.UserID, key)
		if err != nil {
			s.Log.Warn().Err(err).Str("user_id", p.UserID).Msg("idempotency lookup")
		} else if ok {
			o, err := s.Orders.GetOrder(ctx, p, id)
			if err == nil {
				s.Metrics.Checkout("replayed", 0)
				return o, true, nil
			}
			s.Log.Warn().Err(err).Str("order_id", id).Msg("idempotent order unreadable, checking out again")
		}
	}

	o, err = s.Orders.Checkout(ctx, p, in)
	if err != nil {
		s.Metrics.Checkout(Kind(err), 0)
		return nil, false, err
	}
	amount, _ := o.TotalAmount.Float64()
	s.Metrics.Checkout("ok", amount)
	s.Log.Info().Str("order_id", o.ID).Str("user_id", p.UserID).
		Str("total", o.TotalAmount.StringFixed(2)).Int("lines", len(o.Items)).Msg("order placed")

	if key != "" && s.Idem != nil {
		if err := s.Idem.Remember(ctx, p.UserID, key, o.ID); err != nil {
			s.Log.Warn().Err(err).Str("order_id", o.ID).Msg("remember idempotency key")
		}
	}
	s.cacheStatus(ctx, o)
	s.publish(ctx, TopicOrderPlaced, EventOrderPlaced, o.ID, placedPayload(o))
	return o, false, nil
}

// ---- orders ----

func (s *Service) GetOrder(ctx context.Context, p auth.Principal, orderID string) (*Order, error) {
	return s.Orders.GetOrder(ctx, p, orderID)
}

type StatusView struct {
	OrderID   string    `json:"order_id"`
	Status    Status    `json:"status"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderStatus answers from the cache when the entry belongs to the caller,
// otherwise from Postgres with the usual visibility rule.
func (s *Service) OrderStatus(ctx context.Context, p auth.Principal, orderID string) (StatusView, error) {
	if s.Cache != nil && (p.Is(auth.RoleBuyer) || p.Is(auth.RoleAdmin)) {
		cs, ok, err := s.Cache.Get(ctx, orderID)
		if err != nil {
			s.Log.Warn().Err(err).Str("order_id", orderID).Msg("status cache read")
		}
		if ok && (p.Is(auth.RoleAdmin) || cs.UserID == p.UserID) {
			return StatusView{OrderID: orderID, Status: Status(cs.Status), UpdatedAt: cs.UpdatedAt}, nil
		}
	}
	o, err := s.Orders.GetOrder(ctx, p, orderID)
	if err != nil {
		return StatusView{}, err
	}
	s.cacheStatus(ctx, o)
	return StatusView{OrderID: o.ID, Status: o.Status, UpdatedAt: o.UpdatedAt}, nil
}

// ListOrders lists what the caller may see: own orders for buyers, orders
// with their products for sellers, everything (optionally by status) for
// admins.
func (s *Service) ListOrders(ctx context.Context, p auth.Principal, status Status, pg Page) ([]Order, error) {
	switch p.Role {
	case auth.RoleBuyer:
		return s.Orders.ListBuyerOrders(ctx, p.UserID, pg)
	case auth.RoleSeller:
		return s.Orders.ListSellerOrders(ctx, p.UserID, pg)
	case auth.RoleAdmin:
		return s.Orders.ListOrders(ctx, status, pg)
	}
	return nil, forbidden(p, "list orders")
}

func (s *Service) History(ctx context.Context, p auth.Principal, orderID string) ([]HistoryEntry, error) {
	return s.Orders.History(ctx, p, orderID)
}

// CancelOrder cancels for a buyer (own pending order) or an admin
// (any non-terminal order). Either way the stock comes back.
func (s *Service) CancelOrder(ctx context.Context, p auth.Principal, orderID string) (*Order, error) {
	switch p.Role {
	case auth.RoleBuyer:
		return s.transition(ctx, p, orderID, StatusCancelled, s.Orders.Cancel)
	case auth.RoleAdmin:
		return s.transition(ctx, p, orderID, StatusCancelled, s.Orders.ForceCancel)
	}
	return nil, forbidden(p, "cancel orders")
}

// AdvanceOrder moves an order one step along the fulfilment path for a
// seller involved in it.
func (s *Service) AdvanceOrder(ctx context.Context, p auth.Principal, orderID string, to Status) (*Order, error) {
	if !p.Is(auth.RoleSeller) {
		return nil, forbidden(p, "advance orders")
	}
	advance := func(ctx context.Context, p auth.Principal, id string) (*TransitionResult, error) {
		return s.Orders.Advance(ctx, p, id, to)
	}
	return s.transition(ctx, p, orderID, to, advance)
}

type transitionFunc func(ctx context.Context, p auth.Principal, orderID string) (*TransitionResult, error)

func (s *Service) transition(ctx context.Context, p auth.Principal, orderID string, to Status, fn transitionFunc) (*Order, error) {
	res, err := fn(ctx, p, orderID)
	s.Metrics.Transition(string(to), string(p.Role), Kind(err))
	if err != nil {
		return nil, err
	}
	o := res.Order
	s.Log.Info().Str("order_id", o.ID).Str("from", string(res.From)).Str("to", string(o.Status)).
		Str("actor_id", p.UserID).Str("actor_role", string(p.Role)).Bool("restocked", res.Restocked).
		Msg("order status changed")

	s.cacheStatus(ctx, o)
	s.publish(ctx, TopicOrderStatus, EventOrderStatusChanged, o.ID, OrderStatusChangedPayload{
		OrderID:   o.ID,
		UserID:    o.UserID,
		From:      res.From,
		To:        o.Status,
		ActorID:   p.UserID,
		ActorRole: string(p.Role),
		Restocked: res.Restocked,
		ChangedAt: o.UpdatedAt,
	})
	return o, nil
}

// ---- reviews ----

func (s *Service) SubmitReview(ctx context.Context, p auth.Principal, in ReviewInput) (*Review, error) {
	if !p.Is(auth.RoleBuyer) {
		return nil, forbidden(p, "review products")
	}
	rv, err := s.Reviews.Submit(ctx, p, in)
	s.Metrics.Review(Kind(err))
	if err != nil {
		return nil, err
	}
	s.Log.Info().Int64("review_id", rv.ID).Str("product_id", rv.ProductID).Str("order_id", rv.OrderID).
		Int("rating", rv.Rating).Msg("review submitted")
	s.publish(ctx, TopicReviewSubmitted, EventReviewSubmitted, rv.OrderID, ReviewSubmittedPayload{
		ReviewID:  rv.ID,
		ProductID: rv.ProductID,
		OrderID:   rv.OrderID,
		UserID:    rv.UserID,
		Rating:    rv.Rating,
	})
	return rv, nil
}

func (s *Service) ProductReviews(ctx context.Context, productID string, pg Page) ([]Review, error) {
	return s.Reviews.ListForProduct(ctx, productID, pg)
}

func (s *Service) ProductRating(ctx context.Context, productID string) (Rating, error) {
	return s.Reviews.Rating(ctx, productID)
}

func (s *Service) ModerateReview(ctx context.Context, p auth.Principal, reviewID int64, status ReviewStatus) error {
	if !p.Is(auth.RoleAdmin) {
		return forbidden(p, "moderate reviews")
	}
	if err := s.Reviews.Moderate(ctx, reviewID, status); err != nil {
		return err
	}
	s.Log.Info().Int64("review_id", reviewID).Str("status", string(status)).Str("admin_id", p.UserID).Msg("review moderated")
	return nil
}

// ---- catalog ----

func (s *Service) ListProducts(ctx context.Context, categoryID *int64, pg Page) ([]Product, error) {
	return s.Orders.ListProducts(ctx, categoryID, pg)
}

func (s *Service) GetProduct(ctx context.Context, viewer *auth.Principal, productID string) (*Product, error) {
	return s.Orders.GetProduct(ctx, viewer, productID)
}

func (s *Service) CreateProduct(ctx context.Context, p auth.Principal, in ProductInput) (*Product, error) {
	if !p.Is(auth.RoleSeller) {
		return nil, forbidden(p, "list products")
	}
	pr, err := s.Orders.CreateProduct(ctx, p, in)
	if err != nil {
		return nil, err
	}
	s.Log.Info().Str("product_id", pr.ID).Str("seller_id", p.UserID).Msg("product submitted for moderation")
	return pr, nil
}

func (s *Service) ModerateProduct(ctx context.Context, p auth.Principal, productID string, to ModerationStatus) error {
	if !p.Is(auth.RoleAdmin) {
		return forbidden(p, "moderate products")
	}
	if err := s.Orders.ModerateProduct(ctx, productID, to); err != nil {
		return err
	}
	s.Log.Info().Str("product_id", productID).Str("status", string(to)).Str("admin_id", p.UserID).Msg("product moderated")
	return nil
}

func (s *Service) ModerateSeller(ctx context.Context, p auth.Principal, sellerID string, to ModerationStatus) error {
	if !p.Is(auth.RoleAdmin) {
		return forbidden(p, "moderate sellers")
	}
	if err := s.Orders.ModerateSeller(ctx, sellerID, to); err != nil {
		return err
	}
	s.Log.Info().Str("seller_id", sellerID).Str("status", string(to)).Str("admin_id", p.UserID).Msg("seller moderated")
	return nil
}

// ---- side effects ----

func (s *Service) cacheStatus(ctx context.Context, o *Order) {
	if s.Cache == nil {
		return
	}
	err := s.Cache.Put(ctx, o.ID, redisx.CachedStatus{Status: string(o.Status), UserID: o.UserID, UpdatedAt: o.UpdatedAt})
	if err != nil {
		s.Log.Warn().Err(err).Str("order_id", o.ID).Msg("status cache write")
	}
}

func (s *Service) publish(ctx context.Context, topic, eventType, orderID string, payload any) {
	if s.Events == nil {
		return
	}
	env, err := NewEnvelope(eventType, s.Name, traceID(ctx), orderID, payload)
	if err != nil {
		s.Metrics.Event("out", eventType, "error")
		s.Log.Warn().Err(err).Str("event_type", eventType).Msg("build envelope")
		return
	}
	s.Events.Publish(topic, PartitionKey(orderID), kafka.MustMarshal(env),
		kafkago.Header{Key: kafka.HeaderEventType, Value: []byte(eventType)})
	s.Metrics.Event("out", eventType, "queued")
}
