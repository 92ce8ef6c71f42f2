// SPDX-License-Identifier: EPL-2.0

package server

import (
	"encoding/json"
	"net/http"
)

// DetectResponse is the success body of POST /detect.
type DetectResponse struct {
	Status          string  `json:"status"`
	Language        string  `json:"language"`
	Classification  string  `json:"classification"`
	ConfidenceScore float64 `json:"confidenceScore"`
	Explanation     string  `json:"explanation"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status           string   `json:"status"`
	ModelLoaded      bool     `json:"model_loaded"`
	DetectionMethod  string   `json:"detection_method"`
	InputType        string   `json:"input_type"`
	SupportedFormats []string `json:"supported_formats"`
	FFmpegAvailable  bool     `json:"ffmpeg_available"`
	Message          string   `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Status: "error", Message: msg})
}
