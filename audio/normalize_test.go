// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"math"
	"testing"

	"github.com/ik5/audspoof/internal/audiotest"
)

func TestNormalize_DownmixConstants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rate   int
		values []float32
		want   float64
	}{
		{"native rate", 16000, []float32{0.2, 0.6}, 0.4},
		{"native rate negative", 16000, []float32{-0.5, 0.25}, -0.125},
		{"resampled", 44100, []float32{0.2, 0.6}, 0.4},
		{"resampled three channels", 44100, []float32{0.1, 0.2, 0.3}, 0.2},
		{"upsampled", 8000, []float32{0.2, 0.6}, 0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewChannelSource(tt.rate, tt.rate, tt.values...)
			sig, err := Normalize(src, 16000, 1024)
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}

			// Every sample, edges included.
			for i := range sig.Samples {
				if math.Abs(sig.Samples[i]-tt.want) > 1e-5 {
					t.Fatalf("Samples[%d] = %v, want %v", i, sig.Samples[i], tt.want)
				}
			}
		})
	}
}

func TestNormalize_RateAndLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		rate, channels, frames int
	}{
		{16000, 1, 16000},
		{44100, 2, 44100},
		{48000, 1, 24000},
		{8000, 2, 8000},
		{22050, 6, 2205},
	}

	for _, tt := range tests {
		src := audiotest.NewSineSource(tt.rate, tt.channels, tt.frames, 300)
		sig, err := Normalize(src, 16000, 4096)
		if err != nil {
			t.Fatalf("rate %d: Normalize() error = %v", tt.rate, err)
		}

		if sig.SampleRate != 16000 {
			t.Errorf("rate %d: SampleRate = %d, want 16000", tt.rate, sig.SampleRate)
		}

		want := float64(tt.frames) * 16000 / float64(tt.rate)
		if math.Abs(float64(len(sig.Samples))-want) > 2 {
			t.Errorf("rate %d: len = %d, want ≈%.1f", tt.rate, len(sig.Samples), want)
		}
	}
}

func TestNormalize_NativeRateIsExact(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(16000, 1, 1000, 440)
	sig, err := Normalize(src, 16000, 100)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	ref := audiotest.NewSineSource(16000, 1, 1000, 440)
	buf := make([]float32, 1000)
	_, _ = ref.ReadSamples(buf)

	for i, v := range buf {
		if sig.Samples[i] != float64(v) {
			t.Fatalf("Samples[%d] = %v, want %v", i, sig.Samples[i], v)
		}
	}
}

func TestNormalize_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("read failed")
	failing := audiotest.NewSineSource(16000, 1, 1000, 440)
	failing.ReadErr = boom

	tests := []struct {
		name   string
		src    Source
		target int
		want   error
	}{
		{"empty", audiotest.NewSilentSource(16000, 1, 0), 16000, ErrEmptySignal},
		{"empty resampled", audiotest.NewSilentSource(44100, 2, 0), 16000, ErrEmptySignal},
		{"bad target", audiotest.NewSilentSource(16000, 1, 10), 0, ErrInvalidRate},
		{"bad source rate", audiotest.NewSilentSource(0, 1, 10), 16000, ErrInvalidRate},
		{"no channels", audiotest.NewSilentSource(16000, 0, 10), 16000, ErrNoChannels},
		{"read error", failing, 16000, boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Normalize(tt.src, tt.target, 256)
			if !errors.Is(err, tt.want) {
				t.Errorf("Normalize() error = %v, want %v", err, tt.want)
			}
		})
	}
}
