// SPDX-License-Identifier: EPL-2.0

package features

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// bluesteinThreshold is the largest prime factor handed to gonum directly.
// Above it the generic radix pass is quadratic in that factor.
const bluesteinThreshold = 64

// halfSpectrum returns |X_i| for i in [0, n/2) where X is the DFT of x.
func halfSpectrum(x []float64) []float64 {
	n := len(x)
	half := n / 2
	if half == 0 {
		return nil
	}

	mag := make([]float64, half)

	if largestPrimeFactor(n) <= bluesteinThreshold {
		coeffs := fourier.NewFFT(n).Coefficients(nil, x)
		for i := range mag {
			mag[i] = cmplx.Abs(coeffs[i])
		}
		return mag
	}

	coeffs := bluestein(x)
	for i := range mag {
		mag[i] = cmplx.Abs(coeffs[i])
	}
	return mag
}

// bluestein computes the full DFT of x through a power-of-two circular
// convolution (chirp-z transform).
func bluestein(x []float64) []complex128 {
	n := len(x)
	m := 1
	for m < 2*n-1 {
		m <<= 1
	}

	// chirp[j] = exp(-i*pi*j^2/n); j^2 is reduced mod 2n to keep the angle small.
	chirp := make([]complex128, n)
	for j := range n {
		k := (j * j) % (2 * n)
		chirp[j] = cmplx.Rect(1, -math.Pi*float64(k)/float64(n))
	}

	a := make([]complex128, m)
	for j := range n {
		a[j] = complex(x[j], 0) * chirp[j]
	}

	b := make([]complex128, m)
	b[0] = cmplx.Conj(chirp[0])
	for j := 1; j < n; j++ {
		b[j] = cmplx.Conj(chirp[j])
		b[m-j] = b[j]
	}

	fft := fourier.NewCmplxFFT(m)
	fa := fft.Coefficients(nil, a)
	fb := fft.Coefficients(nil, b)
	for i := range fa {
		fa[i] = cmplx.Conj(fa[i] * fb[i])
	}

	// Inverse via conj(FFT(conj(X))) / m.
	conv := fft.Coefficients(nil, fa)
	scale := complex(1/float64(m), 0)

	out := make([]complex128, n)
	for k := range n {
		out[k] = chirp[k] * cmplx.Conj(conv[k]) * scale
	}
	return out
}

func largestPrimeFactor(n int) int {
	largest := 1
	for p := 2; p*p <= n; p++ {
		for n%p == 0 {
			largest = p
			n /= p
		}
	}
	if n > 1 {
		largest = n
	}
	return largest
}
