package events

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/Layr-Labs/crosslayer-greeter-go/pkg/types"
	"go.uber.org/zap"
)

// LoggingSink writes every event to a zap logger
type LoggingSink struct {
	logger *zap.Logger
}

var _ IEventSink = (*LoggingSink)(nil)

func NewLoggingSink(logger *zap.Logger) *LoggingSink {
	return &LoggingSink{logger: logger}
}

func (s *LoggingSink) Emit(ctx context.Context, event *types.CrossLayerMessageCreated) error {
	s.logger.Sugar().Infow(types.CrossLayerMessageCreatedEventName,
		"emitter", event.Emitter.Hex(),
		"messageId", event.MessageId.String(),
		"destination", event.Destination.Hex(),
		"selector", event.Selector.Hex(),
	)
	return nil
}

// MemorySink keeps emitted events in order until drained
type MemorySink struct {
	mu     sync.Mutex
	events []*types.CrossLayerMessageCreated
}

var _ IEventSink = (*MemorySink)(nil)

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Emit(ctx context.Context, event *types.CrossLayerMessageCreated) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, copyEvent(event))
	return nil
}

// Events returns a copy of the recorded events
func (s *MemorySink) Events() []*types.CrossLayerMessageCreated {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*types.CrossLayerMessageCreated, 0, len(s.events))
	for _, e := range s.events {
		out = append(out, copyEvent(e))
	}
	return out
}

// Drain returns the recorded events and clears the sink
func (s *MemorySink) Drain() []*types.CrossLayerMessageCreated {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.events
	s.events = nil
	return out
}

// MultiSink fans an event out to every sink. All sinks are tried; their
// errors are joined.
type MultiSink struct {
	sinks []IEventSink
}

var _ IEventSink = (*MultiSink)(nil)

func NewMultiSink(sinks ...IEventSink) *MultiSink {
	nonNil := make([]IEventSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			nonNil = append(nonNil, s)
		}
	}
	return &MultiSink{sinks: nonNil}
}

func (m *MultiSink) Emit(ctx context.Context, event *types.CrossLayerMessageCreated) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Emit(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func copyEvent(e *types.CrossLayerMessageCreated) *types.CrossLayerMessageCreated {
	c := *e
	if e.MessageId != nil {
		c.MessageId = new(big.Int).Set(e.MessageId)
	}
	return &c
}
