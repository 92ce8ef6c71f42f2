// SPDX-License-Identifier: EPL-2.0

package detect

import "errors"

var (
	// ErrUnsupportedFormat is returned before any decoding when the declared
	// format is not one of SupportedFormats.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrDecode wraps a decoder failure: corrupt input, missing ffmpeg,
	// failed conversion.
	ErrDecode = errors.New("failed to decode audio")
)
