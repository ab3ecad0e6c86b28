package providers

import "fmt"

// Role tags who a message is from.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleSystem, RoleUser, RoleAssistant:
		return true
	}
	return false
}

// Message is one finished message of a conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SystemMessage returns a system message.
func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// UserMessage returns a user message.
func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// AssistantMessage returns an assistant message.
func AssistantMessage(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// Conversation is an ordered list of messages in which a system message,
// if present, comes first.
type Conversation []Message

// NewConversation checks the ordering of msgs and returns them as a Conversation.
func NewConversation(msgs ...Message) (Conversation, error) {
	if err := ValidateOrder(msgs); err != nil {
		return nil, err
	}
	return Conversation(msgs), nil
}

// ValidateOrder returns an error if msgs is empty, has an unknown role, or
// has a system message after a non-system one.
func ValidateOrder(msgs []Message) error {
	if len(msgs) == 0 {
		return fmt.Errorf("at least one message is required")
	}
	seenOther := false
	for i, m := range msgs {
		if !m.Role.Valid() {
			return fmt.Errorf("message %d: unknown role %q", i, m.Role)
		}
		if m.Role == RoleSystem {
			if seenOther {
				return fmt.Errorf("message %d: system message must precede all other messages", i)
			}
			continue
		}
		seenOther = true
	}
	return nil
}
