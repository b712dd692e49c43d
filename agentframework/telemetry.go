// Copyright (c) Microsoft. All rights reserved.

package agentframework

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// LoggingStore wraps a [MessageStore] and logs every operation with its
// duration using slog. Close is forwarded when next implements io.Closer.
func LoggingStore(next MessageStore, logger *slog.Logger) MessageStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &loggingStore{next: next, logger: logger}
}

type loggingStore struct {
	next   MessageStore
	logger *slog.Logger
}

func (s *loggingStore) log(ctx context.Context, op string, start time.Time, err error, attrs ...any) {
	attrs = append(attrs, "operation", op, "duration", time.Since(start))
	if err != nil {
		s.logger.ErrorContext(ctx, "message store operation failed", append(attrs, "error", err)...)
		return
	}
	s.logger.DebugContext(ctx, "message store operation completed", attrs...)
}

func (s *loggingStore) ListMessages(ctx context.Context) ([]Message, error) {
	start := time.Now()
	msgs, err := s.next.ListMessages(ctx)
	s.log(ctx, "list_messages", start, err, "message_count", len(msgs))
	return msgs, err
}

func (s *loggingStore) AddMessages(ctx context.Context, msgs []Message) error {
	start := time.Now()
	err := s.next.AddMessages(ctx, msgs)
	s.log(ctx, "add_messages", start, err, "message_count", len(msgs))
	return err
}

func (s *loggingStore) SerializeState(ctx context.Context, extra map[string]any) (any, error) {
	start := time.Now()
	state, err := s.next.SerializeState(ctx, extra)
	s.log(ctx, "serialize_state", start, err)
	return state, err
}

func (s *loggingStore) DeserializeState(ctx context.Context, state any) error {
	start := time.Now()
	err := s.next.DeserializeState(ctx, state)
	s.log(ctx, "deserialize_state", start, err)
	return err
}

func (s *loggingStore) Close() error {
	if c, ok := s.next.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
