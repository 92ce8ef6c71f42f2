// SPDX-License-Identifier: EPL-2.0

package detect

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/ik5/audspoof/audio"
	"github.com/ik5/audspoof/formats/ffmpeg"
	"github.com/ik5/audspoof/formats/flac"
	"github.com/ik5/audspoof/formats/mp3"
	"github.com/ik5/audspoof/formats/vorbis"
	"github.com/ik5/audspoof/formats/wav"
)

// SupportedFormats lists the accepted format names in canonical lower case.
var SupportedFormats = []string{"mp3", "wav", "m4a", "ogg", "flac", "aac"}

// ValidateFormat returns the canonical (lower case) form of format, or
// ErrUnsupportedFormat. Matching is case-insensitive but otherwise exact:
// surrounding whitespace is not trimmed.
func ValidateFormat(format string) (string, error) {
	f := strings.ToLower(format)
	if !slices.Contains(SupportedFormats, f) {
		return "", fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, format, strings.Join(SupportedFormats, ", "))
	}
	return f, nil
}

// FormatFromPath derives a format name from a file extension, without
// validating it.
func FormatFromPath(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// FFmpegConfig controls the external converter used for m4a and aac.
type FFmpegConfig struct {
	Bin     string
	TempDir string
	Timeout time.Duration
}

// NewRegistry returns a registry with a decoder for every supported format.
func NewRegistry(ffmpegBin, tempDir string) *audio.Registry {
	return NewRegistryWith(FFmpegConfig{Bin: ffmpegBin, TempDir: tempDir})
}

// NewRegistryWith is NewRegistry with a conversion timeout.
func NewRegistryWith(cfg FFmpegConfig) *audio.Registry {
	reg := audio.NewRegistry()

	reg.Register("wav", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("flac", flac.Decoder{})

	for _, ext := range []string{"m4a", "aac"} {
		reg.Register(ext, ffmpeg.Decoder{
			Bin:     cfg.Bin,
			TempDir: cfg.TempDir,
			Ext:     ext,
			Timeout: cfg.Timeout,
		})
	}

	return reg
}
