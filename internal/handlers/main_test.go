package handlers_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewMain(t *testing.T) {
	m := newMain(t, &mockCompleter{}, &mockExtractor{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	m.HandleHome(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("HandleHome() status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "How can I help you today") {
		t.Errorf("HandleHome() body should contain the greeting, got %s", w.Body.String())
	}
}

func TestHandleHomeNotFound(t *testing.T) {
	m := newMain(t, &mockCompleter{}, &mockExtractor{})

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	w := httptest.NewRecorder()
	m.HandleHome(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("HandleHome() status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
