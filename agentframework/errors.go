// Copyright (c) Microsoft. All rights reserved.

package agentframework

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is.
var (
	// ErrStore is the base error for message store failures.
	ErrStore = errors.New("message store error")

	// ErrConfiguration indicates invalid or missing store settings.
	// It is returned at construction time, before any network call.
	ErrConfiguration = fmt.Errorf("%w: configuration", ErrStore)

	// ErrPersistence indicates an unexpected failure from the backing store
	// while checking, creating, reading or writing resources.
	ErrPersistence = fmt.Errorf("%w: persistence", ErrStore)

	// ErrNotFound indicates that the requested thread has no stored state.
	// It does not match ErrPersistence.
	ErrNotFound = fmt.Errorf("%w: not found", ErrStore)

	// ErrValidation indicates serialized state that cannot be coerced into
	// the store's canonical shape.
	ErrValidation = fmt.Errorf("%w: validation", ErrStore)

	// ErrThread is the base error for thread lifecycle failures.
	ErrThread = errors.New("thread error")
)

// StoreError provides context for a failed backing store operation.
// Use errors.As to extract it from a wrapped error chain; errors.Is matches
// both Kind and the underlying cause.
type StoreError struct {
	// Kind is one of ErrPersistence or ErrNotFound.
	Kind error
	// Op names the failing operation, e.g. "create database" or "write item".
	Op string
	// Resource identifies the database, container or item involved.
	Resource string
	Err      error
}

func (e *StoreError) Error() string {
	msg := fmt.Sprintf("%s %q", e.Op, e.Resource)
	if e.Kind != nil {
		msg = e.Kind.Error() + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StoreError) Unwrap() []error { return []error{e.Kind, e.Err} }
