// SPDX-License-Identifier: EPL-2.0

package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/ik5/audspoof/audio"
	"github.com/ik5/audspoof/formats/wav"
)

// DefaultBin is used when Decoder.Bin is empty.
const DefaultBin = "ffmpeg"

// Decoder converts any container ffmpeg understands into 16-bit PCM WAV and
// decodes that. It is registered for m4a and aac.
//
// Each Decode call owns a private directory under TempDir that is removed
// before Decode returns, whatever the outcome.
type Decoder struct {
	// Bin is the ffmpeg executable, looked up on PATH.
	Bin string
	// TempDir is the parent of the per-call scratch directory
	// (os.TempDir when empty).
	TempDir string
	// Ext is the input file extension passed to ffmpeg as a hint.
	Ext string
	// Timeout bounds a single conversion. Zero means no limit.
	Timeout time.Duration
}

func (d Decoder) bin() string {
	if d.Bin == "" {
		return DefaultBin
	}
	return d.Bin
}

// Available reports whether the configured binary can be found.
func (d Decoder) Available() bool {
	_, err := exec.LookPath(d.bin())
	return err == nil
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	bin, err := exec.LookPath(d.bin())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFFmpegNotFound, err)
	}

	dir, err := os.MkdirTemp(d.TempDir, "audspoof-*")
	if err != nil {
		return nil, fmt.Errorf("creating scratch dir: %w", err)
	}
	defer os.RemoveAll(dir)

	ext := strings.TrimPrefix(d.Ext, ".")
	if ext == "" {
		ext = "bin"
	}
	in := filepath.Join(dir, "input."+ext)
	out := filepath.Join(dir, "output.wav")

	if err := writeInput(in, r); err != nil {
		return nil, err
	}

	if err := d.convert(bin, in, out); err != nil {
		return nil, err
	}

	pcm, err := os.ReadFile(out)
	if err != nil {
		return nil, fmt.Errorf("%w: reading output: %w", ErrConversionFailed, err)
	}
	if len(pcm) == 0 {
		return nil, fmt.Errorf("%w: empty output", ErrConversionFailed)
	}

	src, err := wav.Decoder{}.Decode(bytes.NewReader(pcm))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}
	return src, nil
}

func writeInput(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating input file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("writing input file: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing input file: %w", err)
	}
	return nil
}

func (d Decoder) convert(bin, in, out string) error {
	ctx := context.Background()
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, bin,
		"-hide_banner", "-loglevel", "error", "-nostdin", "-y",
		"-i", in,
		"-vn", "-c:a", "pcm_s16le", "-f", "wav",
		out)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: timed out after %s", ErrConversionFailed, d.Timeout)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return fmt.Errorf("%w: %s", ErrConversionFailed, msg)
	}
	return nil
}
