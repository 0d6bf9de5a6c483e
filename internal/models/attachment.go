package models

import "strings"

// Attachment holds an uploaded file for the duration of a single request. It
// is never persisted beyond the OCR pass.
type Attachment struct {
	Data        []byte
	ContentType string
	Filename    string
}

// IsImage reports whether the declared media type indicates an image. Only
// image attachments are accepted by the chat pipeline.
func (a Attachment) IsImage() bool {
	return strings.HasPrefix(a.ContentType, "image/")
}
