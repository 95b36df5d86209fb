package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/okayfine/billsplit/internal/config"
	"github.com/okayfine/billsplit/internal/extraction"
	"github.com/okayfine/billsplit/internal/service"
	"github.com/okayfine/billsplit/pkg/logging"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	logging.Setup()

	cfg, err := config.Load(getEnv("CONFIG_PATH", "./config/config.yaml"))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	extractor := extraction.NewClient(
		cfg.Extraction.BaseURL,
		time.Duration(cfg.Extraction.TimeoutSeconds)*time.Second,
	)
	svc := service.NewLedgerService(extractor)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	// h2c enables HTTP/2 without TLS for clients that speak it.
	handler := h2c.NewHandler(c.Handler(routes(svc)), &http2.Server{})

	srv := &http.Server{
		Addr:        cfg.Server.Address,
		Handler:     handler,
		IdleTimeout: time.Minute,
		ReadTimeout: 30 * time.Second,
		// Uploads block on the extraction service, so the write
		// timeout must outlast the extraction timeout.
		WriteTimeout: time.Duration(cfg.Extraction.TimeoutSeconds+30) * time.Second,
	}

	slog.Info("server starting",
		"address", cfg.Server.Address,
		"extraction_url", cfg.Extraction.BaseURL,
	)
	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
