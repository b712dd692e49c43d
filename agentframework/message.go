// Copyright (c) Microsoft. All rights reserved.

package agentframework

import "strings"

// Role identifies the author of a [Message].
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
)

// Message represents one turn of a conversation. Messages are stored and
// persisted in conversation order.
type Message struct {
	Role       Role     `json:"role"`
	Contents   Contents `json:"contents,omitempty"`
	AuthorName string   `json:"authorName,omitempty"`
	MessageID  string   `json:"messageId,omitempty"`

	// AdditionalProperties holds caller metadata persisted with the message.
	AdditionalProperties map[string]any `json:"additionalProperties,omitempty"`
}

// Text returns the concatenated text of all [TextContent] items in this message.
func (m *Message) Text() string {
	var b strings.Builder
	for _, c := range m.Contents {
		if tc, ok := c.(*TextContent); ok {
			b.WriteString(tc.Text)
		}
	}
	return b.String()
}

func newTextMessage(role Role, text string) Message {
	return Message{
		Role:     role,
		Contents: Contents{&TextContent{Text: text}},
	}
}

// NewUserMessage creates a user-role [Message] from a text string.
func NewUserMessage(text string) Message { return newTextMessage(RoleUser, text) }

// NewAssistantMessage creates an assistant-role [Message] from a text string.
func NewAssistantMessage(text string) Message { return newTextMessage(RoleAssistant, text) }

// NewSystemMessage creates a system-role [Message] from a text string.
func NewSystemMessage(text string) Message { return newTextMessage(RoleSystem, text) }

// NewToolMessage creates a tool-role [Message] with a function result.
func NewToolMessage(callID string, result any) Message {
	return Message{
		Role: RoleTool,
		Contents: Contents{&FunctionResultContent{
			CallID: callID,
			Result: result,
		}},
	}
}

// NormalizeMessages converts flexible input forms into a []Message slice.
// Accepted inputs: string (becomes user message), Message, []Message.
// Other values are ignored.
func NormalizeMessages(inputs ...any) []Message {
	var msgs []Message
	for _, input := range inputs {
		switch v := input.(type) {
		case string:
			msgs = append(msgs, NewUserMessage(v))
		case Message:
			msgs = append(msgs, v)
		case []Message:
			msgs = append(msgs, v...)
		}
	}
	return msgs
}
