// Copyright (c) Microsoft. All rights reserved.

package agentframework

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Thread is one conversation. Its message history lives in a [MessageStore];
// the thread can be serialized to a [ThreadState] and resumed later from it.
//
// A Thread is not safe for concurrent use.
type Thread struct {
	id    string
	store MessageStore
}

// ThreadState is the serializable form of a [Thread].
type ThreadState struct {
	ID string `json:"id"`

	// StoreState is the value returned by the store's SerializeState.
	StoreState any `json:"chat_message_store_state,omitempty"`
}

// ThreadOption configures a [Thread].
type ThreadOption func(*Thread)

// WithMessageStore sets the message store for the thread.
func WithMessageStore(store MessageStore) ThreadOption {
	return func(t *Thread) { t.store = store }
}

// WithThreadID sets the thread's identifier instead of generating one.
func WithThreadID(id string) ThreadOption {
	return func(t *Thread) { t.id = id }
}

// NewThread creates a Thread. Without options it gets a generated ID and an
// [InMemoryStore].
func NewThread(opts ...ThreadOption) *Thread {
	t := &Thread{}
	for _, opt := range opts {
		opt(t)
	}
	if t.id == "" {
		t.id = NewID()
	}
	if t.store == nil {
		t.store = NewInMemoryStore()
	}
	return t
}

// DeserializeThread creates a Thread from opts and restores state into it.
func DeserializeThread(ctx context.Context, state *ThreadState, opts ...ThreadOption) (*Thread, error) {
	t := NewThread(opts...)
	if err := t.Deserialize(ctx, state); err != nil {
		return nil, err
	}
	return t, nil
}

// ID returns the thread's unique identifier.
func (t *Thread) ID() string { return t.id }

// Store returns the thread's message store.
func (t *Thread) Store() MessageStore { return t.store }

// AddMessages appends messages to the thread's store.
func (t *Thread) AddMessages(ctx context.Context, msgs ...Message) error {
	return t.store.AddMessages(ctx, msgs)
}

// Messages returns the thread's history in order.
func (t *Thread) Messages(ctx context.Context) ([]Message, error) {
	return t.store.ListMessages(ctx)
}

// Serialize checkpoints the store and returns the thread state.
// extra is forwarded to the store's SerializeState.
func (t *Thread) Serialize(ctx context.Context, extra map[string]any) (*ThreadState, error) {
	storeState, err := t.store.SerializeState(ctx, extra)
	if err != nil {
		return nil, fmt.Errorf("serialize store: %w", err)
	}
	return &ThreadState{ID: t.id, StoreState: storeState}, nil
}

// Deserialize restores the thread's ID and store contents from state.
func (t *Thread) Deserialize(ctx context.Context, state *ThreadState) error {
	if state == nil {
		return fmt.Errorf("%w: nil thread state", ErrThread)
	}
	if state.StoreState != nil {
		if err := t.store.DeserializeState(ctx, state.StoreState); err != nil {
			return fmt.Errorf("deserialize store: %w", err)
		}
	}
	if state.ID != "" {
		t.id = state.ID
	}
	return nil
}

// Close releases the store if it implements [io.Closer].
func (t *Thread) Close() error {
	if c, ok := t.store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// NewID returns a random UUID string.
func NewID() string { return uuid.NewString() }
