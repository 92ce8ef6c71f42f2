// SPDX-License-Identifier: EPL-2.0

package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/ik5/audspoof/classify"
	"github.com/ik5/audspoof/detect"
)

// DetectRequest is the JSON body of POST /detect.
type DetectRequest struct {
	Language    string `json:"language"`
	AudioFormat string `json:"audioFormat"`
	AudioBase64 string `json:"audioBase64"`
}

// upload is a parsed request in either encoding.
type upload struct {
	language string
	format   string
	audio    []byte
	// multipart is set for file uploads; it changes the wording of the
	// unsupported format message.
	multipart bool
}

// Detect handles POST /detect. The API key is checked before the body is
// read. The body is either JSON (DetectRequest) or multipart/form-data with
// an "audio" (or "file") part plus "language" and optional "audioFormat"
// fields; the format of a file part defaults to its extension.
func (h *Handler) Detect(w http.ResponseWriter, r *http.Request) {
	if err := h.authorize(r); err != nil {
		h.fail(w, r, err)
		return
	}

	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}

	up, err := h.parse(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	format, err := detect.ValidateFormat(up.format)
	if err != nil {
		msg := "Unsupported audio format. Supported: " + supportedList()
		if up.multipart {
			msg = "Invalid file type. " + msg
		}
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	start := time.Now()
	rep, err := h.det.Detect(bytes.NewReader(up.audio), format)
	took := time.Since(start)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.ObserveDetection(string(rep.Classification), took)
	}

	h.logger.Info("detection",
		slog.String("request_id", RequestID(r.Context())),
		slog.String("format", format),
		slog.String("language", up.language),
		slog.String("classification", string(rep.Classification)),
		slog.Float64("confidence", rep.Confidence),
		slog.Duration("took", took))

	writeJSON(w, http.StatusOK, DetectResponse{
		Status:          "success",
		Language:        up.language,
		Classification:  string(rep.Classification),
		ConfidenceScore: classify.Round2(rep.Confidence),
		Explanation:     rep.Explanation,
	})
}

func (h *Handler) parse(r *http.Request) (upload, error) {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		ct = ""
	}

	if ct == "multipart/form-data" {
		return h.parseMultipart(r)
	}
	return parseJSON(r.Body)
}

func parseJSON(body io.Reader) (upload, error) {
	var req DetectRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return upload{}, err
		}
		return upload{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	switch {
	case req.Language == "":
		return upload{}, fmt.Errorf("%w: language", ErrMissingField)
	case req.AudioFormat == "":
		return upload{}, fmt.Errorf("%w: audioFormat", ErrMissingField)
	case req.AudioBase64 == "":
		return upload{}, fmt.Errorf("%w: audioBase64", ErrMissingField)
	}

	data, err := decodeBase64(req.AudioBase64)
	if err != nil {
		return upload{}, err
	}

	return upload{language: req.Language, format: req.AudioFormat, audio: data}, nil
}

// decodeBase64 accepts standard encoding, with or without padding, and
// ignores surrounding whitespace and a data URI prefix.
func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, ";base64,"); i >= 0 && strings.HasPrefix(s, "data:") {
		s = s[i+len(";base64,"):]
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(s, "="))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBase64, err)
	}
	return data, nil
}

func (h *Handler) parseMultipart(r *http.Request) (upload, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return upload{}, err
		}
		return upload{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	defer r.MultipartForm.RemoveAll()

	file, hdr, err := r.FormFile("audio")
	if errors.Is(err, http.ErrMissingFile) {
		file, hdr, err = r.FormFile("file")
	}
	if err != nil {
		return upload{}, fmt.Errorf("%w: audio", ErrMissingField)
	}
	defer file.Close()

	language := r.FormValue("language")
	if language == "" {
		return upload{}, fmt.Errorf("%w: language", ErrMissingField)
	}

	format := r.FormValue("audioFormat")
	if format == "" {
		format = detect.FormatFromPath(hdr.Filename)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return upload{}, fmt.Errorf("%w: %w", ErrBadRequest, err)
	}

	return upload{language: language, format: format, audio: data, multipart: true}, nil
}

// fail maps an error to a status and writes it.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var maxErr *http.MaxBytesError

	switch {
	case errors.Is(err, ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Invalid API key or malformed request")
	case errors.As(err, &maxErr):
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Request body exceeds %d bytes", maxErr.Limit))
	case errors.Is(err, ErrMissingField):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrInvalidBase64):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, detect.ErrUnsupportedFormat):
		writeError(w, http.StatusBadRequest, "Unsupported audio format. Supported: "+supportedList())
	default:
		h.logger.Error("detection failed",
			slog.String("request_id", RequestID(r.Context())),
			slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Error processing audio: "+err.Error())
	}
}
