package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/forPelevin/momento/internal/logging"
	"github.com/forPelevin/momento/internal/store"
	"github.com/forPelevin/momento/internal/types"
)

// Processor runs the clip pipeline for one stored upload.
type Processor interface {
	Process(ctx context.Context, mediaPath, requestID string) (types.Result, error)
}

type ServerConfig struct {
	Port      int
	Store     *store.Store
	Processor Processor
	Logger    *slog.Logger
	StartTime time.Time
}

func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))
	r.Post("/api/process", processHandler(cfg))
	r.Get("/api/media/{filename}", mediaHandler(cfg))

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: "0.1.0",
			UptimeS: int64(time.Since(cfg.StartTime).Seconds()),
		})
	}
}

func processHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID, _ := r.Context().Value(RequestIDKey).(string)
		log := logging.WithRequestID(cfg.Logger, requestID)

		file, header, err := r.FormFile("file")
		if err != nil {
			WriteError(w, http.StatusBadRequest, "no file uploaded", "NO_INPUT")
			return
		}
		defer file.Close()

		name, mediaPath, size, err := cfg.Store.Save(requestID, header.Filename, file)
		if err != nil {
			log.Error("failed to store upload", "error", err)
			WriteError(w, http.StatusInternalServerError, "failed to store upload", "INTERNAL_ERROR")
			return
		}
		log.Info("upload received", "name", name, "bytes", size)

		res, err := cfg.Processor.Process(r.Context(), mediaPath, requestID)
		if err != nil {
			writeProcessError(w, log, err)
			return
		}

		WriteJSON(w, http.StatusOK, ResultToResponse(res))
	}
}

// writeProcessError maps pipeline failures onto the HTTP surface. The
// credential error deliberately stays generic so nothing about the
// configuration leaks to the client.
func writeProcessError(w http.ResponseWriter, log *slog.Logger, err error) {
	var ue *types.UpstreamError
	switch {
	case errors.Is(err, types.ErrNoInput):
		WriteError(w, http.StatusBadRequest, "no file uploaded", "NO_INPUT")
	case errors.Is(err, types.ErrMissingAPIKey):
		log.Error("processing aborted by configuration error", "error", err)
		WriteError(w, http.StatusInternalServerError, "server configuration error", "CONFIGURATION_ERROR")
	case errors.As(err, &ue):
		log.Error("upstream failure", "stage", ue.Stage, "status", ue.Status, "error", err)
		WriteError(w, http.StatusBadGateway, fmt.Sprintf("processing failed: %v", err), "UPSTREAM_ERROR")
	default:
		log.Error("processing failed", "error", err)
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("processing failed: %v", err), "PROCESSING_ERROR")
	}
}

func mediaHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filename := chi.URLParam(r, "filename")
		if filename == "" {
			WriteError(w, http.StatusBadRequest, "filename is required", "NO_INPUT")
			return
		}

		path, err := cfg.Store.Resolve(filename)
		if err != nil {
			WriteError(w, http.StatusNotFound, "file not found", "NOT_FOUND")
			return
		}

		f, err := os.Open(path)
		if err != nil {
			WriteError(w, http.StatusNotFound, "file not found", "NOT_FOUND")
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
			return
		}

		w.Header().Set("Content-Type", store.ContentType(path))
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.WriteHeader(http.StatusOK)
		io.Copy(w, f)
	}
}
