// SPDX-License-Identifier: EPL-2.0

package features_test

import (
	"fmt"
	"math"

	"github.com/ik5/audspoof/features"
)

func ExampleExtract() {
	const rate = 16000

	x := make([]float64, rate)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * 440 * float64(i) / rate)
	}

	v, err := features.Extract(x, rate)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("centroid %.0f Hz\n", v.SpectralCentroid)
	fmt.Printf("flatness below 0.01: %v\n", v.SpectralFlatness < 0.01)
	// Output:
	// centroid 440 Hz
	// flatness below 0.01: true
}

func ExampleZeroCrossingRate() {
	fmt.Println(features.ZeroCrossingRate([]float64{0.5, -0.5, 0.5, 0.5}))
	// Output:
	// 1.3333333333333333
}
