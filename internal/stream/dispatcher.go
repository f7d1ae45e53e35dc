// =====================================
// File: internal/stream/dispatcher.go
// =====================================

// Package stream fans decoded AMM events out to subscribers and feeds
// them from program log lines.
package stream

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/pumpswap-go/pumpswap"
)

// Record is one decoded event together with the transaction signature it
// came from. Feeds that read bare log lines leave the signature empty.
type Record struct {
	Signature string
	Event     pumpswap.Event
}

// Kind returns the kind of the wrapped event.
func (r *Record) Kind() pumpswap.EventKind {
	return r.Event.Kind()
}

// Handler processes records of a specific event kind.
type Handler interface {
	// Handle processes a record. Should not block.
	Handle(ctx context.Context, record *Record) error
}

// HandlerFunc is an adapter to allow the use of ordinary functions as
// record handlers.
type HandlerFunc func(ctx context.Context, record *Record) error

// Handle calls f(ctx, record).
func (f HandlerFunc) Handle(ctx context.Context, record *Record) error {
	return f(ctx, record)
}

// Subscription represents a subscription to records.
type Subscription interface {
	// Unsubscribe removes the subscription.
	Unsubscribe()
}

type subscription struct {
	id         string
	dispatcher *Dispatcher
	kind       pumpswap.EventKind
}

// Unsubscribe removes this subscription from the dispatcher.
func (s *subscription) Unsubscribe() {
	s.dispatcher.unsubscribe(s.id, s.kind)
}

// Dispatcher is an in-memory fan-out for decoded events. A single
// delivery worker keeps records in publish order.
type Dispatcher struct {
	mu         sync.RWMutex
	handlers   map[pumpswap.EventKind]map[string]Handler
	logger     *zap.Logger
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	recordChan chan *Record
	bufferSize int
}

// NewDispatcher creates a dispatcher and starts its delivery loop.
func NewDispatcher(logger *zap.Logger, bufferSize int) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())
	d := &Dispatcher{
		handlers:   make(map[pumpswap.EventKind]map[string]Handler),
		logger:     logger.Named("dispatcher"),
		ctx:        ctx,
		cancel:     cancel,
		recordChan: make(chan *Record, bufferSize),
		bufferSize: bufferSize,
	}

	d.wg.Add(1)
	go d.deliver()

	return d
}

// Subscribe registers a handler for a specific event kind.
func (d *Dispatcher) Subscribe(kind pumpswap.EventKind, handler Handler) Subscription {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := uuid.New().String()

	if d.handlers[kind] == nil {
		d.handlers[kind] = make(map[string]Handler)
	}
	d.handlers[kind][id] = handler

	d.logger.Debug("handler subscribed",
		zap.String("kind", string(kind)),
		zap.String("subscription_id", id))

	return &subscription{
		id:         id,
		dispatcher: d,
		kind:       kind,
	}
}

// SubscribeFunc is a convenience method for subscribing with a function.
func (d *Dispatcher) SubscribeFunc(kind pumpswap.EventKind, fn func(context.Context, *Record) error) Subscription {
	return d.Subscribe(kind, HandlerFunc(fn))
}

// Publish queues a record for asynchronous delivery. Records are dropped
// when the buffer is full so a slow consumer cannot stall the feed.
func (d *Dispatcher) Publish(record *Record) error {
	select {
	case <-d.ctx.Done():
		return fmt.Errorf("dispatcher is shutting down")
	case d.recordChan <- record:
		return nil
	default:
		d.logger.Warn("record buffer full, dropping event",
			zap.String("kind", string(record.Kind())))
		return fmt.Errorf("record buffer full")
	}
}

// PublishSync delivers a record to all handlers of its kind without
// going through the buffer.
func (d *Dispatcher) PublishSync(ctx context.Context, record *Record) error {
	d.mu.RLock()
	registered := d.handlers[record.Kind()]
	// Copy so the lock is not held during handler execution.
	handlers := make(map[string]Handler, len(registered))
	for id, h := range registered {
		handlers[id] = h
	}
	d.mu.RUnlock()

	if len(handlers) == 0 {
		return nil
	}

	var errs []error
	for id, handler := range handlers {
		if err := handler.Handle(ctx, record); err != nil {
			d.logger.Error("handler error",
				zap.String("kind", string(record.Kind())),
				zap.String("handler_id", id),
				zap.Error(err))
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("handlers failed: %v", errs)
	}
	return nil
}

// deliver is the delivery loop.
func (d *Dispatcher) deliver() {
	defer d.wg.Done()

	for {
		select {
		case <-d.ctx.Done():
			// Drain whatever is still buffered.
			for {
				select {
				case record := <-d.recordChan:
					_ = d.PublishSync(context.Background(), record)
				default:
					return
				}
			}
		case record := <-d.recordChan:
			if err := d.PublishSync(d.ctx, record); err != nil {
				d.logger.Error("failed to deliver record",
					zap.String("kind", string(record.Kind())),
					zap.Error(err))
			}
		}
	}
}

// unsubscribe removes a handler subscription.
func (d *Dispatcher) unsubscribe(id string, kind pumpswap.EventKind) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if handlers, ok := d.handlers[kind]; ok {
		delete(handlers, id)
		if len(handlers) == 0 {
			delete(d.handlers, kind)
		}
	}

	d.logger.Debug("handler unsubscribed",
		zap.String("kind", string(kind)),
		zap.String("subscription_id", id))
}

// Shutdown stops the delivery loop after draining buffered records.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.logger.Info("shutting down dispatcher")

	d.cancel()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		d.logger.Warn("dispatcher shutdown timeout")
		return ctx.Err()
	}
}

// Stats returns statistics about the dispatcher.
func (d *Dispatcher) Stats() map[string]interface{} {
	d.mu.RLock()
	defer d.mu.RUnlock()

	stats := make(map[string]interface{})
	stats["buffer_size"] = d.bufferSize
	stats["pending_records"] = len(d.recordChan)
	stats["event_kinds"] = len(d.handlers)

	perKind := make(map[string]int)
	for kind, handlers := range d.handlers {
		perKind[string(kind)] = len(handlers)
	}
	stats["handlers_per_kind"] = perKind

	return stats
}
