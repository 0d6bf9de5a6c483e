package main

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	multimodalchatbot "github.com/msreeharshitha/multimodal-chatbot"
	"github.com/msreeharshitha/multimodal-chatbot/internal/handlers"
	"github.com/msreeharshitha/multimodal-chatbot/internal/services"
)

func main() {
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      logLevel(),
		TimeFormat: time.Kitchen,
	}))

	// Credentials may live in a local .env file; a missing file is fine.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("Failed to load .env file", slog.String("err", err.Error()))
	}

	cfgPath := os.Getenv("CHATBOT_CONFIG")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("Failed to load config", slog.String("err", err.Error()))
		os.Exit(1)
	}

	completer, err := cfg.LLM.completer(logger)
	if err != nil {
		logger.Error("Failed to build provider", slog.String("err", err.Error()))
		os.Exit(1)
	}

	var cache services.ExtractionCache
	if cfg.CachePath != "" {
		boltDB, err := services.NewBoltDB(cfg.CachePath)
		if err != nil {
			logger.Error("Failed to open extraction cache", slog.String("err", err.Error()))
			os.Exit(1)
		}
		defer boltDB.Close()
		cache = boltDB
	}

	extractor := services.NewTesseract(cfg.OCRLanguages, cache, logger)
	dispatcher := services.NewDispatcher()
	retriever := services.NewRetriever(cfg.Documents)

	m, err := handlers.NewMain(completer, extractor, dispatcher, retriever, logger)
	if err != nil {
		logger.Error("Failed to build handlers", slog.String("err", err.Error()))
		os.Exit(1)
	}

	// Serve static files
	staticFS, err := fs.Sub(multimodalchatbot.StaticFS, "static")
	if err != nil {
		logger.Error("Failed to open static assets", slog.String("err", err.Error()))
		os.Exit(1)
	}
	fileServer := http.FileServer(http.FS(staticFS))

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", fileServer))
	mux.HandleFunc("/", m.HandleHome)
	mux.HandleFunc("/api/chat", m.HandleChat)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Channel to listen for errors coming from the listener
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt/terminate signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Blocking select waiting for either interrupt or server error
	select {
	case err := <-serverErrors:
		logger.Error("Server error", slog.String("err", err.Error()))

	case sig := <-shutdown:
		logger.Info("Start shutdown", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Graceful shutdown failed", slog.String("err", err.Error()))
			if err := srv.Close(); err != nil {
				logger.Error("Forcing server close", slog.String("err", err.Error()))
			}
		}
	}
}

func logLevel() slog.Level {
	if os.Getenv("CHATBOT_DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
