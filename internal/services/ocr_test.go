package services_test

import (
	"context"
	"crypto/sha256"
	"testing"

	"github.com/msreeharshitha/multimodal-chatbot/internal/models"
	"github.com/msreeharshitha/multimodal-chatbot/internal/services"
)

type stubCache struct {
	entries map[string]string
	puts    int
}

func (s *stubCache) Extraction(digest []byte) (string, bool, error) {
	text, ok := s.entries[string(digest)]
	return text, ok, nil
}

func (s *stubCache) PutExtraction(digest []byte, text string) error {
	s.puts++
	s.entries[string(digest)] = text
	return nil
}

// A cache hit must short-circuit before the OCR engine is touched, so this
// test runs without tesseract installed.
func TestTesseractExtractCacheHit(t *testing.T) {
	data := []byte("fake-png")
	digest := sha256.Sum256(data)

	cache := &stubCache{entries: map[string]string{
		string(digest[:]): "hello world",
	}}

	tess := services.NewTesseract(nil, cache, testLogger())

	text, err := tess.Extract(context.Background(), models.Attachment{
		Data:        data,
		ContentType: "image/png",
		Filename:    "note.png",
	})
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if text != "hello world" {
		t.Errorf("Extract() = %q, want cached %q", text, "hello world")
	}
	if cache.puts != 0 {
		t.Errorf("cache received %d writes on a hit, want 0", cache.puts)
	}
}

func TestTesseractExtractHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tess := services.NewTesseract(nil, nil, testLogger())

	if _, err := tess.Extract(ctx, models.Attachment{Data: []byte("x")}); err == nil {
		t.Fatal("Extract() expected an error for a cancelled context")
	}
}
