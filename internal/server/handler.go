// SPDX-License-Identifier: EPL-2.0

package server

import (
	"crypto/subtle"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ik5/audspoof/detect"
	"github.com/ik5/audspoof/internal/metrics"
)

// Version is reported by the root endpoint.
const Version = "2.0.0 - Base64 Input"

// APIKeyHeader carries the shared secret on POST /detect.
const APIKeyHeader = "X-API-Key"

// Detector is the part of detect.Detector the handler needs.
type Detector interface {
	Detect(r io.Reader, format string) (detect.Report, error)
}

// Options configures a Handler.
type Options struct {
	Detector Detector
	// APIKey guards POST /detect. Must not be empty.
	APIKey string
	// MaxUploadBytes caps the request body; 0 disables the cap.
	MaxUploadBytes int64
	// Metrics is optional; GET /metrics is only routed when set.
	Metrics *metrics.Metrics
	Logger  *slog.Logger
	// FFmpegAvailable is reported by GET /health.
	FFmpegAvailable bool
}

// Handler manages the HTTP interface of the detector.
type Handler struct {
	det      Detector
	apiKey   []byte
	maxBytes int64
	metrics  *metrics.Metrics
	logger   *slog.Logger
	ffmpeg   bool

	router *http.ServeMux
	chain  http.Handler
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	h := &Handler{
		det:      opts.Detector,
		apiKey:   []byte(opts.APIKey),
		maxBytes: opts.MaxUploadBytes,
		metrics:  opts.Metrics,
		logger:   logger,
		ffmpeg:   opts.FFmpegAvailable,
		router:   http.NewServeMux(),
	}

	h.routes()
	h.chain = h.instrument(h.router)

	return h
}

// ServeHTTP satisfies the http.Handler interface.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.chain.ServeHTTP(w, r)
}

func (h *Handler) routes() {
	h.router.HandleFunc("GET /{$}", h.Root)
	h.router.HandleFunc("GET /health", h.Health)
	h.router.HandleFunc("POST /detect", h.Detect)

	if h.metrics != nil {
		h.router.Handle("GET /metrics", h.metrics.Handler())
	}
}

// authorize compares the X-API-Key header in constant time.
func (h *Handler) authorize(r *http.Request) error {
	key := r.Header.Get(APIKeyHeader)
	if key == "" || len(h.apiKey) == 0 {
		return ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(key), h.apiKey) != 1 {
		return ErrUnauthorized
	}
	return nil
}

// Health reports readiness. There is no model to load, so it is always
// ready once the process is serving.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:           "healthy",
		ModelLoaded:      true,
		DetectionMethod:  "feature-based",
		InputType:        "base64",
		SupportedFormats: detect.SupportedFormats,
		FFmpegAvailable:  h.ffmpeg,
		Message:          "Ready",
	})
}

// Root describes the service and how to call it.
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":           "Audio Spoof Detection API",
		"version":           Version,
		"detection_method":  "Audio feature analysis (ZCR, spectral features, energy patterns)",
		"input_type":        "Base64-encoded audio",
		"supported_formats": detect.SupportedFormats,
		"endpoints": map[string]string{
			"detect": "POST /detect - Analyze audio (requires X-API-Key header)",
			"health": "GET /health - Health check",
		},
		"example_request": map[string]string{
			"language":    "English",
			"audioFormat": "mp3",
			"audioBase64": "BASE64_ENCODED_AUDIO_DATA_HERE",
		},
	})
}

func supportedList() string {
	return strings.Join(detect.SupportedFormats, ", ")
}
