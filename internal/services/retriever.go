package services

import "strings"

// DefaultDocuments is the built-in knowledge corpus used when the config does
// not provide one.
var DefaultDocuments = []string{
	"How to use the chatbot",
	"Groq API Guide",
	"Common image use cases",
	"Helpful doc about multimodal AI",
}

// Retriever performs a naive keyword match of the last utterance against a
// small fixed document list. There is no ranking or scoring; the result is
// injected verbatim into the conversation's system message.
type Retriever struct {
	documents []string
}

// NewRetriever creates a Retriever over the given document titles, falling
// back to DefaultDocuments when the list is empty.
func NewRetriever(documents []string) Retriever {
	if len(documents) == 0 {
		documents = DefaultDocuments
	}
	return Retriever{documents: documents}
}

// Retrieve returns the newline-joined subset of document titles relevant to
// the utterance. A title matches when it contains the whole lowercased
// utterance, or when any of its whitespace-delimited tokens appears in the
// utterance. Pure function of the utterance and the configured corpus; an
// empty result is valid.
func (r Retriever) Retrieve(lastUtterance string) string {
	lower := strings.ToLower(lastUtterance)

	var matches []string
	for _, doc := range r.documents {
		if matchesUtterance(strings.ToLower(doc), lower) {
			matches = append(matches, doc)
		}
	}
	return strings.Join(matches, "\n")
}

func matchesUtterance(lowerTitle, lowerUtterance string) bool {
	if lowerUtterance == "" {
		return false
	}
	if strings.Contains(lowerTitle, lowerUtterance) {
		return true
	}
	for _, token := range strings.Fields(lowerTitle) {
		if strings.Contains(lowerUtterance, token) {
			return true
		}
	}
	return false
}
