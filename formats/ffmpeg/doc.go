// SPDX-License-Identifier: EPL-2.0

// Package ffmpeg decodes formats without a native Go decoder (m4a, aac) by
// running the external ffmpeg binary:
//
//	ffmpeg -hide_banner -loglevel error -nostdin -y -i input.<ext> -vn -c:a pcm_s16le -f wav output.wav
//
// Input and output live in a scratch directory created per call and
// removed on every exit path. The resulting WAV is read into memory and
// handed to formats/wav, so the returned Source keeps the file's native
// rate and channel layout.
package ffmpeg
