// SPDX-License-Identifier: EPL-2.0

// Package features computes the four acoustic features the classifier
// consumes from a mono signal:
//
//   - zero-crossing rate: mean |diff(sign(x))|, so in [0, 2]
//   - spectral centroid: magnitude-weighted mean frequency of the half spectrum
//   - spectral flatness: geometric over arithmetic mean of the magnitudes
//   - energy std: population standard deviation of 25 ms frame energies
//     taken every 10 ms
//
// All functions are pure and deterministic. The DFT is gonum's mixed-radix
// FFT; lengths with a large prime factor go through Bluestein's algorithm
// so every length is O(N log N).
package features
