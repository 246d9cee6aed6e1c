package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

func TestProducerFlushesOnClose(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, 8, zerolog.Nop())
	p.Start()

	p.Publish("order.placed", []byte("o-1"), []byte(`{"a":1}`))
	p.Publish("order.status", []byte("o-1"), []byte(`{"a":2}`))
	p.Close()
	p.WaitClosed()

	require.True(t, w.closed)
	require.Len(t, w.msgs, 2)
	require.Equal(t, "order.placed", w.msgs[0].Topic)
	require.Equal(t, "order.status", w.msgs[1].Topic)
	require.Equal(t, []byte("o-1"), w.msgs[1].Key)
}

func TestProducerReportsFailures(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := newProducer(w, 8, zerolog.Nop())

	var mu sync.Mutex
	var failed []string
	p.OnError(func(m kafka.Message, err error) {
		mu.Lock()
		failed = append(failed, m.Topic+"/"+EventType(m))
		mu.Unlock()
	})
	p.Start()
	p.Publish("order.placed", nil, []byte("{}"),
		kafka.Header{Key: HeaderEventType, Value: []byte("OrderPlaced")})
	p.Publish("order.status", nil, []byte("{}"))
	p.Close()
	p.WaitClosed()

	require.Equal(t, []string{"order.placed/OrderPlaced", "order.status/unknown"}, failed)
}

func TestProducerDropsWhenFull(t *testing.T) {
	p := newProducer(&fakeWriter{}, 1, zerolog.Nop())
	var got []error
	p.OnError(func(_ kafka.Message, err error) { got = append(got, err) })

	// not started: the second message has nowhere to go
	p.Publish("t", nil, nil)
	p.Publish("t", nil, nil)
	require.Len(t, got, 1)
	require.ErrorIs(t, got[0], ErrBufferFull)

	p.Close()
	p.Close()
	p.Publish("t", nil, nil)
	require.ErrorIs(t, got[1], ErrClosed)
}

func TestLaneIsStable(t *testing.T) {
	require.Equal(t, 0, lane([]byte("anything"), 1))
	a := lane([]byte("order-a"), 4)
	for i := 0; i < 10; i++ {
		require.Equal(t, a, lane([]byte("order-a"), 4))
	}
	for _, k := range []string{"x", "y", "z", "order-b"} {
		l := lane([]byte(k), 4)
		require.GreaterOrEqual(t, l, 0)
		require.Less(t, l, 4)
	}
}

func TestUnwrapPayload(t *testing.T) {
	type env struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	var e env
	require.NoError(t, UnmarshalEnvelope([]byte(`{"type":"x","payload":{"order_id":"o-1"}}`), &e))

	p, err := UnwrapPayload[struct {
		OrderID string `json:"order_id"`
	}](e.Payload)
	require.NoError(t, err)
	require.Equal(t, "o-1", p.OrderID)

	_, err = UnwrapPayload[int](json.RawMessage(`"nope"`))
	require.Error(t, err)
	require.Error(t, UnmarshalEnvelope([]byte("{"), &e))
}
