// Copyright (c) Microsoft. All rights reserved.

// Package agentframework provides the conversation abstractions that message
// store backends plug into: messages with polymorphic content, the
// [MessageStore] interface, and [Thread], which owns a store and can be
// serialized and resumed.
//
// # Threads
//
// A thread buffers its history in a store. Serialize checkpoints it:
//
//	thread := agentframework.NewThread(agentframework.WithMessageStore(store))
//	_ = thread.AddMessages(ctx, agentframework.NewUserMessage("Hello!"))
//	state, err := thread.Serialize(ctx, map[string]any{"user_id": "user123"})
//
// The state can be saved anywhere and used later to resume the conversation:
//
//	thread, err := agentframework.DeserializeThread(ctx, state,
//	    agentframework.WithMessageStore(store),
//	)
//
// # Stores
//
// [InMemoryStore] keeps messages in memory and serializes them inline. Backends
// such as the cosmos package persist messages externally and serialize only a
// reference to them.
//
// # Errors
//
// Store failures match one of [ErrConfiguration], [ErrPersistence],
// [ErrNotFound] or [ErrValidation] with errors.Is. Backend failures carry a
// [*StoreError] naming the failing operation.
package agentframework
