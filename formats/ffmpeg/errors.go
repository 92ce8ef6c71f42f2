// SPDX-License-Identifier: EPL-2.0

package ffmpeg

import "errors"

var (
	// ErrFFmpegNotFound indicates the ffmpeg binary is not on PATH.
	ErrFFmpegNotFound = errors.New("ffmpeg not found")

	// ErrConversionFailed indicates ffmpeg exited non-zero or produced no
	// output. The wrapped message carries ffmpeg's stderr.
	ErrConversionFailed = errors.New("ffmpeg conversion failed")
)
