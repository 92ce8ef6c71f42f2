// SPDX-License-Identifier: EPL-2.0

// Package utils holds small numeric helpers shared by the decoders and the
// resampler: PCM scaling and cubic interpolation.
package utils
