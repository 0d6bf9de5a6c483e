package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/msreeharshitha/multimodal-chatbot/internal/models"
	"github.com/msreeharshitha/multimodal-chatbot/internal/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGroqComplete(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Hi there  "}}]}`))
	}))
	defer srv.Close()

	g := services.NewGroq("test-key", "llama3-8b-8192", 0.7, srv.URL, testLogger())

	reply, err := g.Complete(context.Background(), []models.Message{
		{Role: models.RoleUser, Content: "hello"},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if reply.Role != models.RoleAssistant {
		t.Errorf("reply role = %q, want assistant", reply.Role)
	}
	if reply.Content != "Hi there" {
		t.Errorf("reply content = %q, want trimmed %q", reply.Content, "Hi there")
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("authorization header = %q, want bearer token", gotAuth)
	}
	if gotBody["model"] != "llama3-8b-8192" {
		t.Errorf("request model = %v, want llama3-8b-8192", gotBody["model"])
	}
	if gotBody["temperature"] != 0.7 {
		t.Errorf("request temperature = %v, want 0.7", gotBody["temperature"])
	}
}

func TestGroqCompleteErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		checkErr func(t *testing.T, err error)
	}{
		{
			name:   "non-2xx status",
			status: http.StatusInternalServerError,
			body:   `{"error":"server exploded"}`,
			checkErr: func(t *testing.T, err error) {
				var upstream *services.UpstreamError
				if !errors.As(err, &upstream) {
					t.Fatalf("error = %v, want *UpstreamError", err)
				}
				if upstream.StatusCode != http.StatusInternalServerError {
					t.Errorf("status code = %d, want 500", upstream.StatusCode)
				}
			},
		},
		{
			name:   "empty completion content",
			status: http.StatusOK,
			body:   `{"choices":[{"message":{"role":"assistant","content":"   "}}]}`,
			checkErr: func(t *testing.T, err error) {
				if !errors.Is(err, services.ErrEmptyCompletion) {
					t.Errorf("error = %v, want ErrEmptyCompletion", err)
				}
			},
		},
		{
			name:   "no choices",
			status: http.StatusOK,
			body:   `{"choices":[]}`,
			checkErr: func(t *testing.T, err error) {
				if !errors.Is(err, services.ErrEmptyCompletion) {
					t.Errorf("error = %v, want ErrEmptyCompletion", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			g := services.NewGroq("test-key", "llama3-8b-8192", 0.7, srv.URL, testLogger())

			_, err := g.Complete(context.Background(), []models.Message{
				{Role: models.RoleUser, Content: "hello"},
			})
			if err == nil {
				t.Fatal("Complete() expected an error")
			}
			tt.checkErr(t, err)
		})
	}
}

func TestGroqCompleteMissingCredential(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		calls++
	}))
	defer srv.Close()

	g := services.NewGroq("", "llama3-8b-8192", 0.7, srv.URL, testLogger())

	_, err := g.Complete(context.Background(), []models.Message{
		{Role: models.RoleUser, Content: "hello"},
	})
	if !errors.Is(err, services.ErrMissingCredential) {
		t.Fatalf("error = %v, want ErrMissingCredential", err)
	}
	if calls != 0 {
		t.Errorf("server received %d calls, want 0", calls)
	}
}
