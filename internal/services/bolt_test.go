package services_test

import (
	"crypto/sha256"
	"path/filepath"
	"testing"

	"github.com/msreeharshitha/multimodal-chatbot/internal/services"
)

func TestBoltDBExtractionRoundtrip(t *testing.T) {
	db, err := services.NewBoltDB(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("NewBoltDB() error = %v", err)
	}
	defer db.Close()

	digest := sha256.Sum256([]byte("fake-png"))

	if _, found, err := db.Extraction(digest[:]); err != nil || found {
		t.Fatalf("Extraction() before put = (found=%v, err=%v), want miss", found, err)
	}

	if err := db.PutExtraction(digest[:], "hello world"); err != nil {
		t.Fatalf("PutExtraction() error = %v", err)
	}

	text, found, err := db.Extraction(digest[:])
	if err != nil {
		t.Fatalf("Extraction() error = %v", err)
	}
	if !found || text != "hello world" {
		t.Errorf("Extraction() = (%q, %v), want (%q, true)", text, found, "hello world")
	}
}

func TestBoltDBCachesEmptyExtraction(t *testing.T) {
	db, err := services.NewBoltDB(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("NewBoltDB() error = %v", err)
	}
	defer db.Close()

	digest := sha256.Sum256([]byte("blank-image"))

	// An image with no text is still a valid, cacheable result.
	if err := db.PutExtraction(digest[:], ""); err != nil {
		t.Fatalf("PutExtraction() error = %v", err)
	}

	text, found, err := db.Extraction(digest[:])
	if err != nil {
		t.Fatalf("Extraction() error = %v", err)
	}
	if !found || text != "" {
		t.Errorf("Extraction() = (%q, %v), want empty hit", text, found)
	}
}
