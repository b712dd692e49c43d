// Copyright (c) Microsoft. All rights reserved.

package cosmos

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	af "github.com/microsoft/agent-framework-cosmos/go/agentframework"
)

// Operation names reported in [af.StoreError] and as the metrics label.
const (
	opOpenDatabase    = "open database"
	opReadDatabase    = "read database"
	opCreateDatabase  = "create database"
	opOpenContainer   = "open container"
	opReadContainer   = "read container"
	opCreateContainer = "create container"
	opReadItem        = "read item"
	opWriteItem       = "write item"
)

// ChatMessageStore is an [af.MessageStore] that keeps one thread's messages in
// memory and persists them as a single Cosmos DB document whose id and
// partition key are the thread id.
//
// Messages are written on SerializeState, or after every AddMessages when
// SaveEveryMessage is set. The store is not safe for concurrent use; callers
// sharing an instance must serialize access.
type ChatMessageStore struct {
	client   Client
	settings Settings
	logger   *slog.Logger
	metrics  *Metrics

	threadID   string
	messages   []af.Message
	properties *Properties

	// createPending is set until the database and container have been
	// ensured once.
	createPending bool
}

var _ af.MessageStore = (*ChatMessageStore)(nil)

// NewChatMessageStore creates a store backed by client. The client is borrowed
// for the store's lifetime and closed by [ChatMessageStore.Close].
//
// Settings are validated here; no network call is made. Invalid settings
// return an error matching [af.ErrConfiguration].
//
//	store, err := cosmos.NewChatMessageStore(client,
//	    cosmos.WithThreadID(threadID),
//	    cosmos.WithCreateResources(true),
//	)
func NewChatMessageStore(client Client, opts ...Option) (*ChatMessageStore, error) {
	cfg := &storeConfig{settings: DefaultSettings()}
	for _, o := range opts {
		o(cfg)
	}
	if client == nil {
		return nil, fmt.Errorf("%w: cosmos client is required", af.ErrConfiguration)
	}
	if err := cfg.settings.Validate(); err != nil {
		return nil, err
	}
	if cfg.settings.ThreadID == "" {
		cfg.settings.ThreadID = af.NewID()
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	return &ChatMessageStore{
		client:        client,
		settings:      cfg.settings,
		logger:        cfg.logger,
		metrics:       cfg.metrics,
		threadID:      cfg.settings.ThreadID,
		properties:    NewProperties(),
		createPending: cfg.settings.CreateResources,
	}, nil
}

// ThreadID returns the identifier of the thread this store persists.
func (s *ChatMessageStore) ThreadID() string { return s.threadID }

// Settings returns the settings the store was created with.
func (s *ChatMessageStore) Settings() Settings { return s.settings }

// ListMessages returns a copy of the in-memory messages. It does no I/O.
func (s *ChatMessageStore) ListMessages(_ context.Context) ([]af.Message, error) {
	cp := make([]af.Message, len(s.messages))
	copy(cp, s.messages)
	return cp, nil
}

// AddMessages appends msgs in order. With SaveEveryMessage set the thread is
// persisted before returning.
func (s *ChatMessageStore) AddMessages(ctx context.Context, msgs []af.Message) error {
	s.messages = append(s.messages, msgs...)
	if !s.settings.SaveEveryMessage {
		return nil
	}
	_, err := s.Checkpoint(ctx, nil)
	return err
}

// SerializeState persists the thread and returns its id as a string.
// It satisfies [af.MessageStore]; see [ChatMessageStore.Checkpoint].
func (s *ChatMessageStore) SerializeState(ctx context.Context, extra map[string]any) (any, error) {
	return s.Checkpoint(ctx, extra)
}

// Checkpoint upserts the thread document and returns the thread id, which
// can later be passed to DeserializeState. extra is merged into the
// document's additional_properties for this write.
//
// On the first call with CreateResources set, the database and container are
// created if they do not exist.
func (s *ChatMessageStore) Checkpoint(ctx context.Context, extra map[string]any) (string, error) {
	if s.createPending {
		if err := s.ensureResources(ctx); err != nil {
			return "", err
		}
		s.createPending = false
	}

	props := NewProperties()
	mergeProperties(props, s.properties)
	mergeMap(props, extra)
	doc, err := json.Marshal(NewStoreState(s.threadID, s.messages, props))
	if err != nil {
		return "", fmt.Errorf("%w: encode thread %q: %w", af.ErrValidation, s.threadID, err)
	}

	container, err := s.container()
	if err != nil {
		return "", err
	}
	start := time.Now()
	err = container.UpsertItem(ctx, s.threadID, doc)
	s.metrics.observe(opWriteItem, start, err)
	if err != nil {
		return "", s.persistenceError(opWriteItem, s.itemPath(s.threadID), err)
	}

	s.logger.DebugContext(ctx, "persisted thread",
		"thread_id", s.threadID,
		"message_count", len(s.messages),
		"database", s.settings.DatabaseName,
		"container", s.settings.ContainerName,
	)
	return s.threadID, nil
}

// DeserializeState loads the thread referenced by state and appends its
// messages to the in-memory ones. state may be anything [ParseStoreState]
// accepts, typically the thread id returned by SerializeState.
//
// A thread that was never persisted yields an error matching
// [af.ErrNotFound]; other read failures match [af.ErrPersistence].
func (s *ChatMessageStore) DeserializeState(ctx context.Context, state any) error {
	ref, err := ParseStoreState(state)
	if err != nil {
		return err
	}

	container, err := s.container()
	if err != nil {
		return err
	}
	path := s.itemPath(ref.ThreadID)
	start := time.Now()
	data, err := container.ReadItem(ctx, ref.ThreadID, ref.ThreadID)
	s.metrics.observe(opReadItem, start, err)
	if err != nil {
		if IsNotFound(err) {
			return &af.StoreError{Kind: af.ErrNotFound, Op: opReadItem, Resource: path, Err: err}
		}
		return s.persistenceError(opReadItem, path, err)
	}

	stored, err := ParseStoreState(data)
	if err != nil {
		return fmt.Errorf("stored item %q: %w", path, err)
	}

	s.threadID = stored.ThreadID
	s.messages = append(s.messages, stored.Messages...)
	mergeProperties(s.properties, stored.AdditionalProperties)

	s.logger.DebugContext(ctx, "loaded thread",
		"thread_id", s.threadID,
		"loaded_messages", len(stored.Messages),
		"message_count", len(s.messages),
	)
	return nil
}

// Close closes the client. Call it once, when the store is no longer used.
func (s *ChatMessageStore) Close() error {
	return s.client.Close()
}

func (s *ChatMessageStore) database() (Database, error) {
	db, err := s.client.Database(s.settings.DatabaseName)
	if err != nil {
		return nil, s.persistenceError(opOpenDatabase, s.settings.DatabaseName, err)
	}
	return db, nil
}

func (s *ChatMessageStore) container() (Container, error) {
	db, err := s.database()
	if err != nil {
		return nil, err
	}
	c, err := db.Container(s.settings.ContainerName)
	if err != nil {
		return nil, s.persistenceError(opOpenContainer, s.containerPath(), err)
	}
	return c, nil
}

func (s *ChatMessageStore) containerPath() string {
	return s.settings.DatabaseName + "/" + s.settings.ContainerName
}

func (s *ChatMessageStore) itemPath(id string) string {
	return s.containerPath() + "/" + id
}

func (s *ChatMessageStore) persistenceError(op, resource string, err error) error {
	return &af.StoreError{Kind: af.ErrPersistence, Op: op, Resource: resource, Err: err}
}
