package models

// ReplyEnvelope is the normalized response returned to the chat view. Exactly
// one of Reply or Error is set; the two constructors below are the only way
// envelopes are built.
type ReplyEnvelope struct {
	Reply *Message `json:"reply,omitempty"`
	Error string   `json:"error,omitempty"`
}

// ReplyTo wraps a message in a success envelope.
func ReplyTo(msg Message) ReplyEnvelope {
	return ReplyEnvelope{Reply: &msg}
}

// ErrorReply wraps a user-facing error string in a failure envelope.
func ErrorReply(msg string) ReplyEnvelope {
	return ReplyEnvelope{Error: msg}
}
