// Package projector keeps the Redis order-status view in step with the
// lifecycle events the API publishes.
package projector

import (
	"context"
	"fmt"
	"time"

	kafkax "github.com/ariefcatur/heritage-market/internal/kafka"
	"github.com/ariefcatur/heritage-market/internal/metrics"
	"github.com/ariefcatur/heritage-market/internal/orders"
	"github.com/ariefcatur/heritage-market/internal/redisx"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	kafkago "github.com/segmentio/kafka-go"
)

// Topics the projector subscribes to.
var Topics = []string{orders.TopicOrderPlaced, orders.TopicOrderStatus}

type Deduper interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

// RedisDedup remembers processed event ids for redisx.TTLDedup.
type RedisDedup struct {
	RDB     redis.Cmdable
	Service string
}

func (d RedisDedup) key(eventID string) string { return fmt.Sprintf(redisx.KeyDedup, d.Service, eventID) }

func (d RedisDedup) Seen(ctx context.Context, eventID string) (bool, error) {
	return redisx.Exists(ctx, d.RDB, d.key(eventID))
}

func (d RedisDedup) Mark(ctx context.Context, eventID string) error {
	_, err := redisx.MarkOnce(ctx, d.RDB, d.key(eventID), redisx.TTLDedup)
	return err
}

type Service struct {
	Cache   orders.StatusCache
	Dedup   Deduper
	Metrics *metrics.Metrics
	Log     zerolog.Logger
}

// Handle is the consumer handler. Returning an error leaves the offset
// uncommitted; malformed messages are logged and skipped so they cannot
// wedge a partition.
func (s *Service) Handle(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := kafkax.UnmarshalEnvelope(m.Value, &env); err != nil {
		s.Log.Warn().Err(err).Str("topic", m.Topic).Int64("offset", m.Offset).Msg("skip malformed message")
		s.Metrics.Event("in", "unknown", "malformed")
		return nil
	}

	seen, err := s.Dedup.Seen(ctx, env.EventID)
	if err != nil {
		return fmt.Errorf("dedup check: %w", err)
	}
	if seen {
		s.Metrics.Event("in", env.EventType, "duplicate")
		return nil
	}

	var cs redisx.CachedStatus
	var orderID string
	switch env.EventType {
	case orders.EventOrderPlaced:
		p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
		if err != nil {
			return s.skip(env, err)
		}
		orderID = p.OrderID
		cs = redisx.CachedStatus{Status: string(orders.StatusPending), UserID: p.UserID, UpdatedAt: placedAt(p, env)}
	case orders.EventOrderStatusChanged:
		p, err := kafkax.UnwrapPayload[orders.OrderStatusChangedPayload](env.Payload)
		if err != nil {
			return s.skip(env, err)
		}
		orderID = p.OrderID
		cs = redisx.CachedStatus{Status: string(p.To), UserID: p.UserID, UpdatedAt: p.ChangedAt}
		if p.Restocked {
			s.Log.Info().Str("order_id", p.OrderID).Str("actor_role", p.ActorRole).Msg("order cancelled, stock returned")
		}
	default:
		s.Metrics.Event("in", env.EventType, "ignored")
		return nil
	}

	if err := s.Cache.Put(ctx, orderID, cs); err != nil {
		s.Metrics.Event("in", env.EventType, "error")
		return fmt.Errorf("cache status: %w", err)
	}
	if err := s.Dedup.Mark(ctx, env.EventID); err != nil {
		// The write above is idempotent, so a redelivery is harmless.
		s.Log.Warn().Err(err).Str("event_id", env.EventID).Msg("dedup mark")
	}
	s.Metrics.Event("in", env.EventType, "ok")
	s.Log.Debug().Str("event_id", env.EventID).Str("order_id", orderID).Str("status", cs.Status).Msg("status projected")
	return nil
}

func (s *Service) skip(env orders.Envelope, err error) error {
	s.Log.Warn().Err(err).Str("event_id", env.EventID).Str("event_type", env.EventType).Msg("skip undecodable payload")
	s.Metrics.Event("in", env.EventType, "malformed")
	return nil
}

func placedAt(p orders.OrderPlacedPayload, env orders.Envelope) time.Time {
	if p.PlacedAt.IsZero() {
		return env.OccurredAt
	}
	return p.PlacedAt
}
