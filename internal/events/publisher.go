package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"superapp-be/internal/logger"
	"superapp-be/internal/metrics"
	"superapp-be/internal/order"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher forwards ledger events out of process. Implementations must not
// block the caller for long: they run right after a store mutation.
type Publisher interface {
	Publish(ctx context.Context, userID string, e order.Event)
	Close() error
}

// Attach forwards every event of ledger to pub, tagged with userID.
func Attach(ledger order.Service, userID string, pub Publisher) (unsubscribe func()) {
	return ledger.Subscribe(func(e order.Event) {
		pub.Publish(context.Background(), userID, e)
	})
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, order.Event) {}
func (NopPublisher) Close() error                                 { return nil }

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher queues messages on a buffered inbox drained by one
// goroutine. A full inbox drops the event with a warning.
type KafkaPublisher struct {
	w     MessageWriter
	inbox chan kafka.Message
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
	once   sync.Once
}

func NewKafkaPublisher(brokers []string, topic string, buf int) *KafkaPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}, buf)
}

func newKafkaPublisher(w MessageWriter, buf int) *KafkaPublisher {
	if buf <= 0 {
		buf = 1024
	}
	return &KafkaPublisher{
		w:     w,
		inbox: make(chan kafka.Message, buf),
		done:  make(chan struct{}),
	}
}

// Start runs the write loop until Close drains the inbox.
func (p *KafkaPublisher) Start() {
	go func() {
		defer close(p.done)
		for m := range p.inbox {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := p.w.WriteMessages(ctx, m); err != nil {
				metrics.EventsDropped.Inc()
				logger.L().Error("kafka write failed",
					zap.String("key", string(m.Key)),
					zap.Error(err),
				)
			} else {
				metrics.EventsPublished.Inc()
			}
			cancel()
		}
	}()
}

func (p *KafkaPublisher) Publish(ctx context.Context, userID string, e order.Event) {
	env, err := NewEnvelope(userID, e)
	if err != nil {
		logger.FromCtx(ctx).Error("encode event", zap.String("event_type", string(e.Type)), zap.Error(err))
		return
	}
	value, err := json.Marshal(env)
	if err != nil {
		logger.FromCtx(ctx).Error("encode envelope", zap.String("event_id", env.EventID), zap.Error(err))
		return
	}

	// keyed by user so one user's events stay ordered within a partition
	msg := kafka.Message{
		Key:   []byte(userID),
		Value: value,
		Time:  env.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(env.EventType)},
			{Key: "event_id", Value: []byte(env.EventID)},
		},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return
	}
	select {
	case p.inbox <- msg:
	default:
		metrics.EventsDropped.Inc()
		logger.FromCtx(ctx).Warn("event inbox full, dropping event",
			zap.String("event_id", env.EventID),
			zap.String("event_type", env.EventType),
		)
	}
}

// Close stops accepting events, flushes the queued ones and closes the
// writer. Start must have been called.
func (p *KafkaPublisher) Close() error {
	var err error
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.inbox)
		p.mu.Unlock()

		<-p.done
		err = p.w.Close()
	})
	return err
}
