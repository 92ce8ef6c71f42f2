// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/audspoof/detect"
	"github.com/ik5/audspoof/internal/config"
	"github.com/ik5/audspoof/internal/server"
)

var (
	clientURL      string
	clientAPIKey   string
	clientLanguage string
	clientFormat   string
	clientBase64   bool
	clientDelay    time.Duration
	clientTimeout  time.Duration
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Call a running audspoof server",
	Long: `Client for a running server.

Commands:
  client detect <file>...  POST /detect
  client health            GET /health`,
}

var clientDetectCmd = &cobra.Command{
	Use:   "detect <file>...",
	Short: "Send clips to POST /detect",
	Long: `Send one or more clips to POST /detect and print each JSON answer.

Each clip is sent as multipart/form-data, or as base64 JSON with --base64.
With several files the requests are sent one after another, --delay apart,
and a failure does not stop the batch. The API key defaults to
AUDSPOOF_API_KEY.

Examples:
  audspoof client detect clip.mp3 --api-key secret
  audspoof client detect clip.wav --base64 --language Tamil
  audspoof client detect *.mp3 --delay 1s`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := clientAPIKey
		if key == "" {
			key = globalConfig.APIKey
		}
		if key == "" {
			return fmt.Errorf("api key is required, use --api-key or %s", config.EnvAPIKey)
		}

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		batch := len(args) > 1

		var errs []error
		for i, path := range args {
			if i > 0 && clientDelay > 0 {
				select {
				case <-ctx.Done():
					return errors.Join(append(errs, ctx.Err())...)
				case <-time.After(clientDelay):
				}
			}

			if batch {
				fmt.Fprintf(out, "==> %s\n", path)
			}
			if err := detectFile(ctx, out, path, key); err != nil {
				if !batch {
					return err
				}
				fmt.Fprintf(out, "error: %v\n", err)
				errs = append(errs, fmt.Errorf("%s: %w", path, err))
			}
		}

		if len(errs) > 0 {
			return fmt.Errorf("%d of %d requests failed: %w", len(errs), len(args), errors.Join(errs...))
		}
		return nil
	},
}

// detectFile sends one clip and prints the answer.
func detectFile(ctx context.Context, out io.Writer, path, key string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}

	format := clientFormat
	if format == "" {
		format = detect.FormatFromPath(path)
	}

	var req *http.Request
	if clientBase64 {
		req, err = newJSONDetectRequest(ctx, clientURL, data, format, clientLanguage)
	} else {
		req, err = newMultipartDetectRequest(ctx, clientURL, filepath.Base(path), data, format, clientLanguage)
	}
	if err != nil {
		return err
	}
	req.Header.Set(server.APIKeyHeader, key)

	return doRequest(out, req)
}

var clientHealthCmd = &cobra.Command{
	Use:   "health",
	Short: "Query GET /health",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, endpoint(clientURL, "/health"), nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		return doRequest(cmd.OutOrStdout(), req)
	},
}

func init() {
	clientCmd.PersistentFlags().StringVar(&clientURL, "url", "http://localhost:8000", "server base URL")
	clientCmd.PersistentFlags().DurationVar(&clientTimeout, "timeout", 2*time.Minute, "request timeout")

	clientDetectCmd.Flags().StringVar(&clientAPIKey, "api-key", "", "X-API-Key value")
	clientDetectCmd.Flags().StringVar(&clientLanguage, "language", "English", "spoken language label")
	clientDetectCmd.Flags().StringVar(&clientFormat, "format", "", "audio format (default: file extension)")
	clientDetectCmd.Flags().BoolVar(&clientBase64, "base64", false, "send base64 JSON instead of multipart")
	clientDetectCmd.Flags().DurationVar(&clientDelay, "delay", 500*time.Millisecond, "pause between requests when sending several files")

	clientCmd.AddCommand(clientDetectCmd)
	clientCmd.AddCommand(clientHealthCmd)
	rootCmd.AddCommand(clientCmd)
}

func endpoint(base, path string) string {
	return strings.TrimRight(base, "/") + path
}

func newJSONDetectRequest(ctx context.Context, base string, data []byte, format, language string) (*http.Request, error) {
	body, err := json.Marshal(server.DetectRequest{
		Language:    language,
		AudioFormat: format,
		AudioBase64: base64.StdEncoding.EncodeToString(data),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint(base, "/detect"), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func newMultipartDetectRequest(ctx context.Context, base, filename string, data []byte, format, language string) (*http.Request, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("audio", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write form file: %w", err)
	}
	if err := mw.WriteField("language", language); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	if err := mw.WriteField("audioFormat", format); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint(base, "/detect"), &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req, nil
}

// doRequest prints the indented JSON answer and fails on a non-2xx status.
func doRequest(out io.Writer, req *http.Request) error {
	client := &http.Client{Timeout: clientTimeout}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var pretty bytes.Buffer
	if json.Indent(&pretty, raw, "", "  ") == nil {
		raw = pretty.Bytes()
	}
	fmt.Fprintln(out, strings.TrimSpace(string(raw)))

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}
