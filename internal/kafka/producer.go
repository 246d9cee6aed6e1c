package kafka

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the producer needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer buffers messages in memory and writes them from one goroutine.
// Publish never blocks on the broker; when the buffer is full the message is
// dropped and counted as a failure.
type Producer struct {
	w       messageWriter
	log     zerolog.Logger
	inbox   chan kafka.Message
	done    chan struct{}
	once    sync.Once
	onError func(m kafka.Message, err error)
}

func NewProducer(brokers []string, buf int, log zerolog.Logger) *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           20 * time.Millisecond,
	}
	return newProducer(w, buf, log)
}

func newProducer(w messageWriter, buf int, log zerolog.Logger) *Producer {
	if buf <= 0 {
		buf = 256
	}
	return &Producer{
		w:     w,
		log:   log.With().Str("component", "producer").Logger(),
		inbox: make(chan kafka.Message, buf),
		done:  make(chan struct{}),
	}
}

// OnError registers a callback for failed or dropped messages. Call before Start.
func (p *Producer) OnError(fn func(m kafka.Message, err error)) { p.onError = fn }

func (p *Producer) Start() {
	go func() {
		defer close(p.done)
		for m := range p.inbox {
			p.write(m)
		}
		if err := p.w.Close(); err != nil {
			p.log.Warn().Err(err).Msg("close writer")
		}
	}()
}

func (p *Producer) write(m kafka.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := p.w.WriteMessages(ctx, m); err != nil {
		p.log.Error().Err(err).Str("topic", m.Topic).Str("key", string(m.Key)).Msg("publish failed")
		p.fail(m, err)
	}
}

func (p *Producer) fail(m kafka.Message, err error) {
	if p.onError != nil {
		p.onError(m, err)
	}
}

// Publish queues one message for topic.
func (p *Producer) Publish(topic string, key, value []byte, headers ...kafka.Header) {
	m := kafka.Message{
		Topic:   topic,
		Key:     key,
		Value:   value,
		Time:    time.Now(),
		Headers: headers,
	}
	defer func() {
		// Publish after Close lands here; the event is lost either way.
		if recover() != nil {
			p.fail(m, ErrClosed)
		}
	}()
	select {
	case p.inbox <- m:
	default:
		p.log.Warn().Str("topic", topic).Msg("producer buffer full, dropping message")
		p.fail(m, ErrBufferFull)
	}
}

// Close stops accepting messages; queued ones are still flushed.
func (p *Producer) Close() { p.once.Do(func() { close(p.inbox) }) }

// WaitClosed blocks until the queue is flushed and the writer closed.
func (p *Producer) WaitClosed() { <-p.done }
