// Copyright (c) Microsoft. All rights reserved.

package agentframework

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// contentFactories maps each discriminator to a constructor for its concrete type.
var contentFactories = map[ContentType]func() Content{
	ContentTypeText:           func() Content { return &TextContent{} },
	ContentTypeTextReasoning:  func() Content { return &TextReasoningContent{} },
	ContentTypeData:           func() Content { return &DataContent{} },
	ContentTypeURI:            func() Content { return &URIContent{} },
	ContentTypeError:          func() Content { return &ErrorContent{} },
	ContentTypeFunctionCall:   func() Content { return &FunctionCallContent{} },
	ContentTypeFunctionResult: func() Content { return &FunctionResultContent{} },
	ContentTypeUsage:          func() Content { return &UsageContent{} },
}

// MarshalContentJSON encodes c as a JSON object whose first member is the
// "$type" discriminator, followed by the fields of the concrete type.
func MarshalContentJSON(c Content) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("marshal content: nil content")
	}
	if _, ok := contentFactories[c.Type()]; !ok {
		return nil, fmt.Errorf("unknown content type: %T", c)
	}
	body, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal %s content: %w", c.Type(), err)
	}
	tag, err := json.Marshal(string(c.Type()))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString(`{"$type":`)
	buf.Write(tag)
	if fields := bytes.TrimSpace(body[1 : len(body)-1]); len(fields) > 0 {
		buf.WriteByte(',')
		buf.Write(fields)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalContentJSON decodes a single Content value from its JSON envelope.
func UnmarshalContentJSON(data []byte) (Content, error) {
	var env struct {
		Type ContentType `json:"$type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshal content envelope: %w", err)
	}
	newContent, ok := contentFactories[env.Type]
	if !ok {
		return nil, fmt.Errorf("unknown content $type: %q", env.Type)
	}
	c := newContent()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("unmarshal %s content: %w", env.Type, err)
	}
	return c, nil
}

// Contents is a typed slice enabling JSON marshal/unmarshal of polymorphic Content arrays.
type Contents []Content

// MarshalJSON serializes each Content item using its $type discriminator.
func (cs Contents) MarshalJSON() ([]byte, error) {
	items := make([]json.RawMessage, len(cs))
	for i, c := range cs {
		b, err := MarshalContentJSON(c)
		if err != nil {
			return nil, fmt.Errorf("marshal content[%d]: %w", i, err)
		}
		items[i] = b
	}
	return json.Marshal(items)
}

// UnmarshalJSON deserializes a JSON array of Content items using the $type discriminator.
func (cs *Contents) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	result := make(Contents, len(raw))
	for i, r := range raw {
		c, err := UnmarshalContentJSON(r)
		if err != nil {
			return fmt.Errorf("unmarshal content[%d]: %w", i, err)
		}
		result[i] = c
	}
	*cs = result
	return nil
}
