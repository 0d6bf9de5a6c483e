package handlers

import (
	"log/slog"
	"net/http"

	"github.com/msreeharshitha/multimodal-chatbot/internal/models"
)

type homePageData struct {
	Messages []models.Message
}

// HandleHome renders the chat page with the initial greeting. The page's
// JavaScript keeps the conversation in browser memory and talks to the
// pipeline through POST /api/chat; the server holds no session state.
func (m Main) HandleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := homePageData{
		Messages: []models.Message{
			{
				Role:    models.RoleAssistant,
				Content: "👋 Hi! I'm your AI assistant. How can I help you today?",
			},
		},
	}

	if err := m.templates.ExecuteTemplate(w, "home.html", data); err != nil {
		m.logger.Error("Failed to execute home template", slog.String(errLoggerKey, err.Error()))
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
