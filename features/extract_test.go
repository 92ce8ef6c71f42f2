// SPDX-License-Identifier: EPL-2.0

package features

import (
	"errors"
	"math"
	"testing"
)

func sine(freq float64, sampleRate, n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return x
}

func TestZeroCrossingRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		samples []float64
		want    float64
	}{
		{"empty", nil, 0},
		{"single", []float64{0.5}, 0},
		{"zeros", make([]float64, 100), 0},
		{"constant", []float64{0.3, 0.3, 0.3}, 0},
		{"alternating", []float64{1, -1, 1, -1, 1}, 2},
		{"into zero", []float64{1, 0, -1}, 1},
		{"one flip", []float64{1, 1, -1, -1, -1}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ZeroCrossingRate(tt.samples); got != tt.want {
				t.Errorf("ZeroCrossingRate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpectralCentroid_Sine(t *testing.T) {
	t.Parallel()

	for _, freq := range []float64{440, 1000, 3000} {
		got := SpectralCentroid(sine(freq, 16000, 16000), 16000)
		if math.Abs(got-freq) > 5 {
			t.Errorf("SpectralCentroid(%v Hz) = %v", freq, got)
		}
	}
}

func TestSpectralFlatness(t *testing.T) {
	t.Parallel()

	tone := SpectralFlatness(sine(440, 16000, 16000))
	if tone > 0.01 {
		t.Errorf("SpectralFlatness(sine) = %v, want near 0", tone)
	}

	// Deterministic pseudo-noise.
	noise := make([]float64, 16000)
	seed := uint32(12345)
	for i := range noise {
		seed = seed*1664525 + 1013904223
		noise[i] = float64(seed)/float64(math.MaxUint32)*2 - 1
	}
	if got := SpectralFlatness(noise); got < 0.4 || got > 1 {
		t.Errorf("SpectralFlatness(noise) = %v, want in [0.4, 1]", got)
	}

	if got := SpectralFlatness(make([]float64, 100)); math.Abs(got-1) > 1e-9 {
		t.Errorf("SpectralFlatness(zeros) = %v, want 1", got)
	}
}

func TestEnergyStd(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		samples []float64
		rate    int
		want    float64
	}{
		{"empty", nil, 16000, 0},
		{"shorter than frame", make([]float64, 399), 16000, 0},
		{"exactly one frame", make([]float64, 400), 16000, 0},
		{"constant", constant(0.5, 16000), 16000, 0},
		{"tiny rate", constant(1, 100), 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := EnergyStd(tt.samples, tt.rate); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("EnergyStd() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnergyStd_TwoLevels(t *testing.T) {
	t.Parallel()

	// Frames at i=0 and i=160 fit in 561 samples; the first is all zero and
	// the second covers 240 zeros then 160 ones.
	x := make([]float64, 561)
	for i := 400; i < len(x); i++ {
		x[i] = 1
	}

	// Energies 0 and 160: population std is 80.
	if got := EnergyStd(x, 16000); math.Abs(got-80) > 1e-9 {
		t.Errorf("EnergyStd() = %v, want 80", got)
	}
}

func TestExtract_Silence(t *testing.T) {
	t.Parallel()

	v, err := Extract(make([]float64, 16000), 16000)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	if v.ZCR != 0 || v.SpectralCentroid != 0 || v.EnergyStd != 0 {
		t.Errorf("Extract(silence) = %+v", v)
	}
	if math.Abs(v.SpectralFlatness-1) > 1e-9 {
		t.Errorf("SpectralFlatness = %v, want 1", v.SpectralFlatness)
	}
}

func TestExtract_Deterministic(t *testing.T) {
	t.Parallel()

	x := sine(440, 16000, 16001)
	a, errA := Extract(x, 16000)
	b, errB := Extract(x, 16000)
	if errA != nil || errB != nil {
		t.Fatalf("Extract() errors = %v, %v", errA, errB)
	}
	if a != b {
		t.Errorf("Extract() not deterministic: %+v != %+v", a, b)
	}
}

func TestExtract_TooShort(t *testing.T) {
	t.Parallel()

	for _, x := range [][]float64{nil, {0.5}} {
		_, err := Extract(x, 16000)
		if !errors.Is(err, ErrFeatureExtraction) {
			t.Errorf("Extract(len %d) error = %v, want ErrFeatureExtraction", len(x), err)
		}
	}
}

func TestExtract_NonFinite(t *testing.T) {
	t.Parallel()

	x := sine(440, 16000, 1000)
	x[10] = math.Inf(1)

	if _, err := Extract(x, 16000); !errors.Is(err, ErrFeatureExtraction) {
		t.Errorf("Extract() error = %v, want ErrFeatureExtraction", err)
	}
}

func constant(v float64, n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = v
	}
	return x
}

func BenchmarkExtract(b *testing.B) {
	x := sine(440, 16000, 16000)
	b.ReportAllocs()
	for b.Loop() {
		_, _ = Extract(x, 16000)
	}
}
