// SPDX-License-Identifier: EPL-2.0

package classify

type band int

const (
	bandWeak band = iota
	bandModerate
	bandStrong
)

const (
	strongAt   = 0.85
	moderateAt = 0.70
)

var explanations = map[Label][3]string{
	AIGenerated: {
		bandWeak:     "Possible synthetic characteristics detected (some unnatural spectral features)",
		bandModerate: "Moderate synthetic artifacts detected (artificial harmonics and phase inconsistencies)",
		bandStrong:   "Strong synthetic patterns detected (unnatural pitch consistency and robotic speech patterns)",
	},
	Human: {
		bandWeak:     "Mostly natural characteristics detected (human-like vocal patterns)",
		bandModerate: "Moderate natural speech patterns (typical human vocal characteristics)",
		bandStrong:   "Strong natural speech characteristics (organic pitch variations and human breathing patterns)",
	},
}

// Explain returns the sentence for label at the given confidence. Any label
// other than AIGenerated reads as Human.
func Explain(label Label, confidence float64) string {
	row, ok := explanations[label]
	if !ok {
		row = explanations[Human]
	}
	return row[bandOf(confidence)]
}

// Explanations lists every sentence Explain can return.
func Explanations() []string {
	out := make([]string, 0, 6)
	for _, l := range []Label{AIGenerated, Human} {
		row := explanations[l]
		out = append(out, row[:]...)
	}
	return out
}

func bandOf(confidence float64) band {
	switch {
	case confidence >= strongAt:
		return bandStrong
	case confidence >= moderateAt:
		return bandModerate
	default:
		return bandWeak
	}
}
