// SPDX-License-Identifier: EPL-2.0

// Package classify turns a feature vector into a label, a confidence and a
// short explanation using fixed weights. There is no trained model.
package classify

import (
	"math"

	"github.com/ik5/audspoof/features"
)

// Label is the outcome of a classification.
type Label string

const (
	AIGenerated Label = "AI_GENERATED"
	Human       Label = "HUMAN"
)

// Weights and thresholds. These are heuristic placeholders, kept stable so
// results are reproducible.
const (
	zcrScale    = 0.5
	energyScale = 10000.0

	zcrWeight      = 0.3
	spectralWeight = 0.4
	energyWeight   = 0.3

	// AIThreshold is exclusive: a score equal to it is HUMAN.
	AIThreshold   = 0.6
	MaxConfidence = 0.95
)

// Result is the classifier output. Confidence is in [0, MaxConfidence].
type Result struct {
	Label      Label
	Confidence float64
	Score      float64
}

// Score returns the weighted AI score of v, in [0, 1] for finite input.
func Score(v features.Vector) float64 {
	zcr := math.Min(v.ZCR/zcrScale, 1)
	spectral := 1 - math.Min(v.SpectralFlatness, 1)
	energy := 1 - math.Min(v.EnergyStd/energyScale, 1)

	return zcrWeight*zcr + spectralWeight*spectral + energyWeight*energy
}

// Classify labels v.
func Classify(v features.Vector) Result {
	score := Score(v)

	if score > AIThreshold {
		return Result{Label: AIGenerated, Confidence: clamp(score), Score: score}
	}
	return Result{Label: Human, Confidence: clamp(1 - score), Score: score}
}

// Round2 rounds x to two decimals.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func clamp(c float64) float64 {
	return math.Max(0, math.Min(c, MaxConfidence))
}
