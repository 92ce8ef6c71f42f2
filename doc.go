// SPDX-License-Identifier: EPL-2.0

// Package audspoof classifies a short speech clip as AI-generated or human
// using a fixed signal-processing heuristic. There is no trained model:
// four acoustic features go through a weighted rule.
//
// # Quick Start
//
//	rep, err := audspoof.Detect(data, "mp3")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(rep.Classification, rep.Confidence, rep.Explanation)
//
// # Pipeline
//
//	decode (formats/*) -> mono 16 kHz (audio) -> features -> classify
//
//   - formats/wav, formats/mp3, formats/vorbis, formats/flac decode natively
//   - formats/ffmpeg handles m4a and aac through the ffmpeg binary
//   - audio.Normalize downmixes and resamples to 16 kHz
//   - features.Extract computes zero-crossing rate, spectral centroid,
//     spectral flatness and frame-energy standard deviation
//   - classify.Classify and classify.Explain produce the label, a confidence
//     capped at 0.95 and a one-line explanation
//
// The detect package ties these together and is what the HTTP server and
// the CLI (cmd/audspoof) use.
//
// # Supported Formats
//
// mp3, wav, m4a, ogg, flac and aac, case-insensitive. Anything else fails
// with detect.ErrUnsupportedFormat before any decoding.
package audspoof
