// SPDX-License-Identifier: EPL-2.0

// Package wav decodes RIFF/WAVE PCM audio and writes mono 16-bit WAV.
//
// Decoding is done by github.com/go-audio/wav, so files with extra chunks
// (LIST, fact, bext, ...) and WAVE_FORMAT_EXTENSIBLE headers are accepted.
// Supported bit depths are 8 (unsigned), 16, 24 and 32; any channel count
// and sample rate.
//
//	src, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not RIFF/WAVE
//	}
//
// A non-seekable reader is buffered in memory first, since the RIFF parser
// seeks between chunks.
//
// WriteWAV16 and WriteMono produce a canonical 44-byte header followed by
// little-endian samples; they work on any io.Writer.
package wav
