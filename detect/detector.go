// SPDX-License-Identifier: EPL-2.0

package detect

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ik5/audspoof/audio"
	"github.com/ik5/audspoof/classify"
	"github.com/ik5/audspoof/features"
)

// TargetRate is the sample rate every signal is normalized to before
// feature extraction.
const TargetRate = 16000

// Report is the full outcome of one detection.
type Report struct {
	Classification classify.Label  `json:"classification"`
	Confidence     float64         `json:"confidence"`
	Score          float64         `json:"score"`
	Explanation    string          `json:"explanation"`
	Features       features.Vector `json:"features"`
	SampleRate     int             `json:"sample_rate"`
	Samples        int             `json:"samples"`
	Duration       float64         `json:"duration"` // seconds
}

// Detector runs decode, normalize, extract, classify and explain. It holds
// no per-call state and is safe for concurrent use.
type Detector struct {
	reg     *audio.Registry
	logger  *slog.Logger
	bufSize int
}

type Option func(*Detector)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(d *Detector) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithBufferSize sets the read chunk size used while normalizing.
func WithBufferSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.bufSize = n
		}
	}
}

// New returns a Detector over reg. A nil reg gets NewRegistry("", "").
func New(reg *audio.Registry, opts ...Option) *Detector {
	if reg == nil {
		reg = NewRegistry("", "")
	}

	d := &Detector{
		reg:     reg,
		logger:  slog.Default(),
		bufSize: 4096,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Detect classifies the audio in r, declared as format.
//
// The format is checked before r is touched. Errors wrap ErrUnsupportedFormat,
// ErrDecode, audio.ErrEmptySignal or features.ErrFeatureExtraction.
func (d *Detector) Detect(r io.Reader, format string) (Report, error) {
	f, err := ValidateFormat(format)
	if err != nil {
		return Report{}, err
	}

	dec, ok := d.reg.Get(f)
	if !ok {
		return Report{}, fmt.Errorf("%w: no decoder registered for %q", ErrUnsupportedFormat, f)
	}

	src, err := dec.Decode(r)
	if err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer src.Close()

	d.logger.Debug("decoded audio",
		slog.String("format", f),
		slog.Int("sample_rate", src.SampleRate()),
		slog.Int("channels", src.Channels()))

	sig, err := audio.Normalize(src, TargetRate, d.bufSize)
	if err != nil {
		if errors.Is(err, audio.ErrEmptySignal) {
			return Report{}, err
		}
		return Report{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return d.analyze(sig)
}

// DetectSignal classifies an already normalized mono signal.
func (d *Detector) DetectSignal(sig audio.Signal) (Report, error) {
	if len(sig.Samples) == 0 {
		return Report{}, audio.ErrEmptySignal
	}
	return d.analyze(sig)
}

func (d *Detector) analyze(sig audio.Signal) (Report, error) {
	vec, err := features.Extract(sig.Samples, sig.SampleRate)
	if err != nil {
		return Report{}, err
	}

	res := classify.Classify(vec)
	rep := Report{
		Classification: res.Label,
		Confidence:     res.Confidence,
		Score:          res.Score,
		Explanation:    classify.Explain(res.Label, res.Confidence),
		Features:       vec,
		SampleRate:     sig.SampleRate,
		Samples:        len(sig.Samples),
		Duration:       sig.Duration(),
	}

	d.logger.Debug("classified audio",
		slog.Float64("zcr", vec.ZCR),
		slog.Float64("spectral_centroid", vec.SpectralCentroid),
		slog.Float64("spectral_flatness", vec.SpectralFlatness),
		slog.Float64("energy_std", vec.EnergyStd),
		slog.String("classification", string(res.Label)),
		slog.Float64("score", res.Score),
		slog.Float64("confidence", res.Confidence))

	return rep, nil
}
