// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample-level plumbing between a decoder and
// feature extraction.
//
// # Source
//
// Every decoder returns a Source: a pull-based stream of interleaved
// float32 samples in [-1, 1].
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadSamples returns io.EOF once the stream is drained. Any other error
// is terminal.
//
// # Normalization
//
// Normalize drains a Source into a mono Signal at a fixed rate:
//
//	sig, err := audio.Normalize(src, 16000, 4096)
//	if errors.Is(err, audio.ErrEmptySignal) {
//	    // nothing decoded
//	}
//
// Internally it chains a MonoMixer (arithmetic mean of all channels) and,
// when the native rate differs, a Resampler. Both are exported for callers
// that want to build their own pipeline.
//
// # Resampling
//
// The Resampler uses Catmull-Rom cubic interpolation. When downsampling it
// first runs the input through a 63-tap Blackman windowed-sinc low-pass at
// 0.45 of the destination rate, with the filter delay compensated so the
// output stays aligned with the input. A source of L frames at rate R
// produces ceil(L*T/R) frames at rate T.
//
// # Registry
//
// A Registry maps format names (case-insensitive) to Decoders and is safe
// for concurrent use:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	dec, ok := reg.Get("WAV")
package audio
