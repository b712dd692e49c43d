// Copyright (c) Microsoft. All rights reserved.

package agentframework

import (
	"context"
	"encoding/json"
	"fmt"
)

// MessageStore holds the message history of a [Thread] and can checkpoint it
// to, and restore it from, a serializable state.
type MessageStore interface {
	// ListMessages returns all stored messages in order.
	ListMessages(ctx context.Context) ([]Message, error)

	// AddMessages appends messages to the store.
	AddMessages(ctx context.Context, msgs []Message) error

	// SerializeState checkpoints the store and returns a value that can later
	// be passed to DeserializeState. extra carries store-specific fields to
	// persist alongside the messages.
	SerializeState(ctx context.Context, extra map[string]any) (any, error)

	// DeserializeState restores messages from a value produced by
	// SerializeState, possibly after a JSON round trip.
	DeserializeState(ctx context.Context, state any) error
}

// InMemoryStore is a simple in-memory [MessageStore]. Its serialized state
// carries the messages themselves.
type InMemoryStore struct {
	messages []Message
}

// NewInMemoryStore creates an empty [InMemoryStore].
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

var _ MessageStore = (*InMemoryStore)(nil)

func (s *InMemoryStore) ListMessages(_ context.Context) ([]Message, error) {
	cp := make([]Message, len(s.messages))
	copy(cp, s.messages)
	return cp, nil
}

func (s *InMemoryStore) AddMessages(_ context.Context, msgs []Message) error {
	s.messages = append(s.messages, msgs...)
	return nil
}

// SerializeState returns a map with a "messages" key plus any extra fields.
func (s *InMemoryStore) SerializeState(_ context.Context, extra map[string]any) (any, error) {
	state := make(map[string]any, len(extra)+1)
	for k, v := range extra {
		state[k] = v
	}
	msgs := make([]Message, len(s.messages))
	copy(msgs, s.messages)
	state["messages"] = msgs
	return state, nil
}

// DeserializeState appends the messages found in state to the store.
func (s *InMemoryStore) DeserializeState(_ context.Context, state any) error {
	if state == nil {
		return fmt.Errorf("%w: nil in-memory store state", ErrValidation)
	}
	data, ok := state.([]byte)
	if !ok {
		var err error
		if data, err = json.Marshal(state); err != nil {
			return fmt.Errorf("%w: encode in-memory store state: %w", ErrValidation, err)
		}
	}
	var decoded struct {
		Messages []Message `json:"messages"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("%w: decode in-memory store state: %w", ErrValidation, err)
	}
	s.messages = append(s.messages, decoded.Messages...)
	return nil
}
