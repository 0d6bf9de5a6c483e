package handlers

import (
	"context"
	"html/template"
	"log/slog"

	multimodalchatbot "github.com/msreeharshitha/multimodal-chatbot"
	"github.com/msreeharshitha/multimodal-chatbot/internal/models"
)

// Completer mediates calls to a chat completion provider. It accepts the full
// ordered conversation and returns a single assistant message, or one of the
// provider errors defined in the services package.
type Completer interface {
	Complete(ctx context.Context, messages []models.Message) (models.Message, error)
}

// Extractor turns an image attachment into plain text. Implementations report
// failures through the error return; the pipeline decides what to do with
// them.
type Extractor interface {
	Extract(ctx context.Context, attachment models.Attachment) (string, error)
}

// ToolDispatcher inspects the most recent user utterance and may answer it
// locally with a canned reply instead of calling the provider.
type ToolDispatcher interface {
	Dispatch(lastUtterance string) (models.Message, bool)
}

// ContextRetriever produces the knowledge blob injected as the conversation's
// system message.
type ContextRetriever interface {
	Retrieve(lastUtterance string) string
}

// Main handles the core functionality of the chat application, wiring the
// request pipeline (extraction, tool dispatch, retrieval, assembly, provider
// call) behind the HTTP endpoints.
type Main struct {
	templates *template.Template

	completer  Completer
	extractor  Extractor
	dispatcher ToolDispatcher
	retriever  ContextRetriever

	logger *slog.Logger
}

const errLoggerKey = "err"

// NewMain creates a new Main instance with the provided pipeline components.
// It parses the required HTML templates from the embedded filesystem.
func NewMain(
	completer Completer,
	extractor Extractor,
	dispatcher ToolDispatcher,
	retriever ContextRetriever,
	logger *slog.Logger,
) (Main, error) {
	// We parse templates from three distinct directories to separate layout, pages, and partial views
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"markdown": renderMarkdown,
	}).ParseFS(
		multimodalchatbot.TemplateFS,
		"templates/layout/*.html",
		"templates/pages/*.html",
		"templates/partials/*.html",
	)
	if err != nil {
		return Main{}, err
	}

	return Main{
		templates:  tmpl,
		completer:  completer,
		extractor:  extractor,
		dispatcher: dispatcher,
		retriever:  retriever,
		logger:     logger.With(slog.String("module", "handlers")),
	}, nil
}
