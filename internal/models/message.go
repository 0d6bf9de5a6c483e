package models

// Role identifies the author of a message in a conversation.
type Role string

const (
	// RoleUser represents a message typed by the person chatting.
	RoleUser Role = "user"
	// RoleAssistant represents a completion produced by the model provider.
	RoleAssistant Role = "assistant"
	// RoleSystem represents an instruction message prepended to the conversation.
	RoleSystem Role = "system"
	// RoleFunction represents a canned tool reply produced locally, without
	// calling the model provider.
	RoleFunction Role = "function"
)

// Message is a single entry in a conversation. The ordered slice of messages
// sent per request is the whole conversation; the server keeps no state
// between requests. Name is only set on function-role messages and carries
// the tool identifier.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name,omitempty"`
}

// LastContent returns the content of the most recent message, or the empty
// string for an empty conversation.
func LastContent(messages []Message) string {
	if len(messages) == 0 {
		return ""
	}
	return messages[len(messages)-1].Content
}
