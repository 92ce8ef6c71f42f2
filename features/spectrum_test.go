// SPDX-License-Identifier: EPL-2.0

package features

import (
	"math"
	"math/cmplx"
	"testing"
)

// naiveDFT is the O(n^2) reference transform.
func naiveDFT(x []float64) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for k := range n {
		var acc complex128
		for j := range n {
			angle := -2 * math.Pi * float64((j*k)%n) / float64(n)
			acc += complex(x[j], 0) * cmplx.Rect(1, angle)
		}
		out[k] = acc
	}
	return out
}

func testSignal(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(0.37*float64(i)) + 0.25*math.Cos(1.9*float64(i)+0.3)
	}
	return x
}

func TestBluestein_MatchesNaiveDFT(t *testing.T) {
	t.Parallel()

	for _, n := range []int{2, 3, 67, 127, 131, 257, 1000} {
		x := testSignal(n)
		got := bluestein(x)
		want := naiveDFT(x)

		for k := range want {
			if cmplx.Abs(got[k]-want[k]) > 1e-8*float64(n) {
				t.Fatalf("n=%d: X[%d] = %v, want %v", n, k, got[k], want[k])
			}
		}
	}
}

func TestHalfSpectrum_MatchesNaiveDFT(t *testing.T) {
	t.Parallel()

	// Cover both the direct and the Bluestein path.
	for _, n := range []int{2, 10, 64, 100, 127, 134, 1024, 1031} {
		x := testSignal(n)
		got := halfSpectrum(x)
		want := naiveDFT(x)

		if len(got) != n/2 {
			t.Fatalf("n=%d: len = %d, want %d", n, len(got), n/2)
		}
		for k := range got {
			if math.Abs(got[k]-cmplx.Abs(want[k])) > 1e-8*float64(n) {
				t.Fatalf("n=%d: |X[%d]| = %v, want %v", n, k, got[k], cmplx.Abs(want[k]))
			}
		}
	}
}

func TestHalfSpectrum_Empty(t *testing.T) {
	t.Parallel()

	if got := halfSpectrum(nil); got != nil {
		t.Errorf("halfSpectrum(nil) = %v, want nil", got)
	}
	if got := halfSpectrum([]float64{1}); got != nil {
		t.Errorf("halfSpectrum(1 sample) = %v, want nil", got)
	}
}

func TestLargestPrimeFactor(t *testing.T) {
	t.Parallel()

	tests := []struct{ n, want int }{
		{1, 1},
		{2, 2},
		{16000, 5},
		{16001, 16001},
		{44100, 7},
		{2 * 127, 127},
		{97 * 97, 97},
	}

	for _, tt := range tests {
		if got := largestPrimeFactor(tt.n); got != tt.want {
			t.Errorf("largestPrimeFactor(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func BenchmarkHalfSpectrum_16000(b *testing.B) {
	x := testSignal(16000)
	b.ReportAllocs()
	for b.Loop() {
		halfSpectrum(x)
	}
}

func BenchmarkHalfSpectrum_Prime(b *testing.B) {
	x := testSignal(16001)
	b.ReportAllocs()
	for b.Loop() {
		halfSpectrum(x)
	}
}
