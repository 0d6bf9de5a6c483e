package services

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/msreeharshitha/multimodal-chatbot/internal/models"
)

// ExtractionCache stores OCR results keyed by the digest of the image bytes.
// A nil cache disables caching.
type ExtractionCache interface {
	Extraction(digest []byte) (string, bool, error)
	PutExtraction(digest []byte, text string) error
}

// Tesseract provides an implementation of the Extractor interface backed by
// the Tesseract OCR engine. The engine only reads from disk, so the uploaded
// bytes are spooled to a uniquely named temporary file that is removed before
// Extract returns, whether recognition succeeded or not.
type Tesseract struct {
	languages []string
	cache     ExtractionCache

	logger *slog.Logger
}

// NewTesseract creates a new Tesseract instance with the specified recognition
// languages and an optional extraction cache. An empty language list defaults
// to English.
func NewTesseract(languages []string, cache ExtractionCache, logger *slog.Logger) Tesseract {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return Tesseract{
		languages: languages,
		cache:     cache,
		logger:    logger.With(slog.String("module", "tesseract")),
	}
}

// Extract runs the OCR engine over the attachment bytes and returns the
// recognized text trimmed by the engine. Cache hits bypass recognition; cache
// write failures are logged and ignored since the cache is an optimization.
func (t Tesseract) Extract(ctx context.Context, attachment models.Attachment) (string, error) {
	digest := sha256.Sum256(attachment.Data)

	if t.cache != nil {
		text, found, err := t.cache.Extraction(digest[:])
		if err != nil {
			t.logger.Warn("Failed to read extraction cache", slog.String("err", err.Error()))
		} else if found {
			t.logger.Debug("Extraction cache hit", slog.String("filename", attachment.Filename))
			return text, nil
		}
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp("", "chatbot-attachment-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(attachment.Data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.languages...); err != nil {
		return "", fmt.Errorf("failed to set languages: %w", err)
	}
	if err := client.SetImage(tmp.Name()); err != nil {
		return "", fmt.Errorf("failed to load image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognition failed: %w", err)
	}
	text = strings.TrimSpace(text)

	if t.cache != nil {
		if err := t.cache.PutExtraction(digest[:], text); err != nil {
			t.logger.Warn("Failed to write extraction cache", slog.String("err", err.Error()))
		}
	}

	return text, nil
}
