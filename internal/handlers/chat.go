package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/msreeharshitha/multimodal-chatbot/internal/models"
	"github.com/msreeharshitha/multimodal-chatbot/internal/services"
)

const (
	// attachmentField is the canonical multipart field name for uploads.
	attachmentField = "file"

	maxUploadBytes = 10 << 20

	noTextPlaceholder = "Image uploaded but no text was detected."
)

// HandleChat processes one chat turn through an HTTP POST request. It accepts
// a multipart form with a required "messages" field holding the JSON-encoded
// conversation so far, and an optional "file" field with an image attachment.
//
// The pipeline runs sequentially: OCR over the attachment (failures absorbed,
// a placeholder message substituted), local tool dispatch on the last
// utterance (terminal on match), keyword context retrieval, conversation
// assembly, and finally the provider call. The response body always contains
// exactly one of "reply" or "error".
func (m Main) HandleChat(w http.ResponseWriter, r *http.Request) {
	logger := m.logger.With(slog.String("requestID", uuid.New().String()))

	if r.Method != http.MethodPost {
		logger.Error("Method not allowed", slog.String("method", r.Method))
		m.respondError(w, logger, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		logger.Error("Failed to parse multipart form", slog.String(errLoggerKey, err.Error()))
		m.respondError(w, logger, http.StatusBadRequest, "invalid multipart form")
		return
	}

	messagesStr := r.FormValue("messages")
	if messagesStr == "" {
		logger.Error("Messages field is required")
		m.respondError(w, logger, http.StatusBadRequest, "messages field is required")
		return
	}

	var messages []models.Message
	if err := json.Unmarshal([]byte(messagesStr), &messages); err != nil {
		logger.Error("Failed to decode messages", slog.String(errLoggerKey, err.Error()))
		m.respondError(w, logger, http.StatusBadRequest, "messages field is not valid JSON")
		return
	}

	attachment, hasAttachment, err := formAttachment(r)
	if err != nil {
		logger.Error("Failed to read attachment", slog.String(errLoggerKey, err.Error()))
		m.respondError(w, logger, http.StatusBadRequest, "failed to read attachment")
		return
	}

	if hasAttachment {
		// Media type is validated before any extraction work happens.
		if !attachment.IsImage() {
			logger.Error("Unsupported attachment type",
				slog.String("contentType", attachment.ContentType),
				slog.String("filename", attachment.Filename))
			m.respondError(w, logger, http.StatusBadRequest,
				fmt.Sprintf("unsupported attachment type: %s", attachment.ContentType))
			return
		}

		messages = append(messages, models.Message{
			Role:    models.RoleUser,
			Content: m.extractAttachmentText(r, attachment, logger),
		})
	}

	if reply, ok := m.dispatcher.Dispatch(models.LastContent(messages)); ok {
		logger.Info("Tool dispatched", slog.String("tool", reply.Name))
		m.respondReply(w, logger, reply)
		return
	}

	knowledge := m.retriever.Retrieve(models.LastContent(messages))
	conversation := assemble(messages, knowledge)

	reply, err := m.completer.Complete(r.Context(), conversation)
	if err != nil {
		m.respondCompletionError(w, logger, err)
		return
	}

	m.respondReply(w, logger, reply)
}

// extractAttachmentText runs OCR over the attachment and formats the result
// as a user message. Extraction failure is absorbed here: the cause is logged
// so operators can tell "no text present" apart from a crashed recognizer,
// and the placeholder sentence is substituted.
func (m Main) extractAttachmentText(r *http.Request, attachment models.Attachment, logger *slog.Logger) string {
	text, err := m.extractor.Extract(r.Context(), attachment)
	if err != nil {
		logger.Error("OCR extraction failed",
			slog.String("filename", attachment.Filename),
			slog.String(errLoggerKey, err.Error()))
		text = ""
	}

	if text == "" {
		return noTextPlaceholder
	}
	return "Text from image: " + text
}

// assemble merges the history (with any attachment-derived message already
// appended) and the retrieved knowledge into the conversation sent upstream.
// The knowledge is prepended as a system message ahead of all other messages,
// even when empty.
func assemble(history []models.Message, knowledge string) []models.Message {
	conversation := make([]models.Message, 0, len(history)+1)
	conversation = append(conversation, models.Message{
		Role:    models.RoleSystem,
		Content: "Use this knowledge:\n" + knowledge,
	})
	return append(conversation, history...)
}

func formAttachment(r *http.Request) (models.Attachment, bool, error) {
	file, header, err := r.FormFile(attachmentField)
	if errors.Is(err, http.ErrMissingFile) {
		return models.Attachment{}, false, nil
	}
	if err != nil {
		return models.Attachment{}, false, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return models.Attachment{}, false, err
	}

	return models.Attachment{
		Data:        data,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
	}, true, nil
}

func (m Main) respondCompletionError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var upstream *services.UpstreamError

	switch {
	case errors.Is(err, services.ErrMissingCredential):
		logger.Error("Provider credential is missing")
		m.respondError(w, logger, http.StatusInternalServerError, "provider api key is missing")
	case errors.As(err, &upstream):
		logger.Error("Provider returned an error status",
			slog.Int("statusCode", upstream.StatusCode),
			slog.String("body", upstream.Body))
		m.respondError(w, logger, http.StatusBadGateway, "upstream provider error")
	case errors.Is(err, services.ErrEmptyCompletion):
		logger.Error("Provider returned an empty completion")
		m.respondError(w, logger, http.StatusInternalServerError, "provider returned an empty completion")
	default:
		logger.Error("Completion failed", slog.String(errLoggerKey, err.Error()))
		m.respondError(w, logger, http.StatusInternalServerError, "internal server error")
	}
}

func (m Main) respondReply(w http.ResponseWriter, logger *slog.Logger, reply models.Message) {
	m.respondEnvelope(w, logger, http.StatusOK, models.ReplyTo(reply))
}

func (m Main) respondError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	m.respondEnvelope(w, logger, status, models.ErrorReply(msg))
}

func (m Main) respondEnvelope(w http.ResponseWriter, logger *slog.Logger, status int, envelope models.ReplyEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		logger.Error("Failed to encode envelope", slog.String(errLoggerKey, err.Error()))
	}
}
