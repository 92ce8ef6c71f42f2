// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 through github.com/hajimehoshi/go-mp3.
//
// go-mp3 always emits 16-bit stereo, so mono files come out as two equal
// channels; the downmix in audio.Normalize turns them back into the
// original signal. Sample rate is whatever the stream declares.
package mp3
