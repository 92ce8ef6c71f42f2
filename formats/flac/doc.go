// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC through github.com/mewkiz/flac, one audio
// frame at a time. Samples are scaled by the STREAMINFO bit depth, so 16-
// and 24-bit files both land in [-1, 1).
package flac
