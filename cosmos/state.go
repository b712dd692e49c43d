// Copyright (c) Microsoft. All rights reserved.

package cosmos

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	af "github.com/microsoft/agent-framework-cosmos/go/agentframework"
)

// Properties is an ordered map of store-specific extension data. It is
// persisted as a JSON object with its keys in insertion order.
type Properties = orderedmap.OrderedMap[string, any]

// NewProperties returns an empty [Properties].
func NewProperties() *Properties {
	return orderedmap.New[string, any]()
}

// StoreState is the document persisted for one thread. Field names are the
// storage contract shared with other readers of the container.
//
// ID always equals ThreadID for documents written by [ChatMessageStore]; an
// empty ID is filled from ThreadID when the state is encoded or decoded.
type StoreState struct {
	ID                   string       `json:"id"`
	ThreadID             string       `json:"thread_id"`
	AdditionalProperties *Properties  `json:"additional_properties"`
	Messages             []af.Message `json:"messages"`
}

// NewStoreState builds the document for threadID. props may be nil.
func NewStoreState(threadID string, messages []af.Message, props *Properties) *StoreState {
	if props == nil {
		props = NewProperties()
	}
	return &StoreState{
		ID:                   threadID,
		ThreadID:             threadID,
		AdditionalProperties: props,
		Messages:             messages,
	}
}

// MarshalJSON writes empty properties as {} and empty messages as [].
func (s StoreState) MarshalJSON() ([]byte, error) {
	type wire StoreState
	w := wire(s)
	if w.ID == "" {
		w.ID = w.ThreadID
	}
	if w.AdditionalProperties == nil {
		w.AdditionalProperties = NewProperties()
	}
	if w.Messages == nil {
		w.Messages = []af.Message{}
	}
	return json.Marshal(w)
}

func (s *StoreState) UnmarshalJSON(data []byte) error {
	type wire StoreState
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*s = StoreState(w)
	if s.ID == "" {
		s.ID = s.ThreadID
	}
	return nil
}

// ParseStoreState coerces v into a [StoreState]. It accepts a StoreState or
// pointer to one, a thread id string, JSON bytes (object or string), and any
// value that encodes to a JSON object with a thread_id, such as a
// map[string]any. Errors match [af.ErrValidation].
func ParseStoreState(v any) (*StoreState, error) {
	var state StoreState
	switch t := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil store state", af.ErrValidation)
	case StoreState:
		state = t
	case *StoreState:
		if t == nil {
			return nil, fmt.Errorf("%w: nil store state", af.ErrValidation)
		}
		state = *t
	case string:
		state = StoreState{ThreadID: t}
	case []byte:
		if err := decodeStoreState(t, &state); err != nil {
			return nil, err
		}
	case json.RawMessage:
		if err := decodeStoreState(t, &state); err != nil {
			return nil, err
		}
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: encode store state %T: %w", af.ErrValidation, v, err)
		}
		if err := decodeStoreState(data, &state); err != nil {
			return nil, err
		}
	}

	if state.ThreadID == "" {
		return nil, fmt.Errorf("%w: store state has no thread_id", af.ErrValidation)
	}
	if state.ID == "" {
		state.ID = state.ThreadID
	}
	if state.AdditionalProperties == nil {
		state.AdditionalProperties = NewProperties()
	}
	return &state, nil
}

func decodeStoreState(data []byte, state *StoreState) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var threadID string
		if err := json.Unmarshal(data, &threadID); err != nil {
			return fmt.Errorf("%w: decode thread id: %w", af.ErrValidation, err)
		}
		*state = StoreState{ThreadID: threadID}
		return nil
	}
	if err := json.Unmarshal(data, state); err != nil {
		return fmt.Errorf("%w: decode store state: %w", af.ErrValidation, err)
	}
	return nil
}

// mergeProperties copies src into dst in src order; later keys win.
func mergeProperties(dst, src *Properties) {
	if src == nil {
		return
	}
	for pair := src.Oldest(); pair != nil; pair = pair.Next() {
		dst.Set(pair.Key, pair.Value)
	}
}

// mergeMap copies m into dst with keys in sorted order.
func mergeMap(dst *Properties, m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		dst.Set(k, m[k])
	}
}
