// SPDX-License-Identifier: EPL-2.0

package features

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	eps = 1e-10

	frameSeconds = 0.025
	hopSeconds   = 0.010
)

// Vector holds the features of one signal. Every field is finite.
type Vector struct {
	ZCR              float64 `json:"zcr"`
	SpectralCentroid float64 `json:"spectral_centroid"`
	SpectralFlatness float64 `json:"spectral_flatness"`
	EnergyStd        float64 `json:"energy_std"`
}

// Extract computes all features of a mono signal sampled at sampleRate.
//
// A signal shorter than two samples has an empty half spectrum and fails
// with ErrFeatureExtraction.
func Extract(samples []float64, sampleRate int) (Vector, error) {
	mag := halfSpectrum(samples)

	v := Vector{
		ZCR:              ZeroCrossingRate(samples),
		SpectralCentroid: spectralCentroid(mag, len(samples), sampleRate),
		SpectralFlatness: spectralFlatness(mag),
		EnergyStd:        EnergyStd(samples, sampleRate),
	}

	checks := []struct {
		name  string
		value float64
	}{
		{"zcr", v.ZCR},
		{"spectral_centroid", v.SpectralCentroid},
		{"spectral_flatness", v.SpectralFlatness},
		{"energy_std", v.EnergyStd},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return Vector{}, fmt.Errorf("%w: %s is %v", ErrFeatureExtraction, c.name, c.value)
		}
	}

	return v, nil
}

// ZeroCrossingRate is the mean absolute difference of consecutive sample
// signs. A sign flip from -1 to 1 counts 2. Fewer than two samples give 0.
func ZeroCrossingRate(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}

	sum := 0.0
	prev := sign(samples[0])
	for _, x := range samples[1:] {
		s := sign(x)
		sum += math.Abs(s - prev)
		prev = s
	}
	return sum / float64(len(samples)-1)
}

// SpectralCentroid returns the magnitude-weighted mean frequency in Hz.
func SpectralCentroid(samples []float64, sampleRate int) float64 {
	return spectralCentroid(halfSpectrum(samples), len(samples), sampleRate)
}

// SpectralFlatness returns the geometric mean over the arithmetic mean of
// the half-spectrum magnitudes. Near 1 for noise, near 0 for pure tones.
func SpectralFlatness(samples []float64) float64 {
	return spectralFlatness(halfSpectrum(samples))
}

// EnergyStd returns the population standard deviation of frame energies.
// Frames are 25 ms long and start every 10 ms while a full frame plus one
// sample still fits. No frames gives 0.
func EnergyStd(samples []float64, sampleRate int) float64 {
	frame := int(frameSeconds * float64(sampleRate))
	hop := int(hopSeconds * float64(sampleRate))
	if frame <= 0 || hop <= 0 {
		return 0
	}

	var energies []float64
	for i := 0; i < len(samples)-frame; i += hop {
		w := samples[i : i+frame]
		energies = append(energies, floats.Dot(w, w))
	}
	if len(energies) == 0 {
		return 0
	}

	return stat.PopStdDev(energies, nil)
}

func spectralCentroid(mag []float64, n, sampleRate int) float64 {
	if len(mag) == 0 {
		return math.NaN()
	}

	binHz := float64(sampleRate) / float64(n)
	weighted := 0.0
	for i, m := range mag {
		weighted += float64(i) * binHz * m
	}
	return weighted / (floats.Sum(mag) + eps)
}

func spectralFlatness(mag []float64) float64 {
	if len(mag) == 0 {
		return math.NaN()
	}

	logSum := 0.0
	for _, m := range mag {
		logSum += math.Log(m + eps)
	}
	geo := math.Exp(logSum / float64(len(mag)))
	return geo / (stat.Mean(mag, nil) + eps)
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
