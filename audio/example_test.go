// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"

	"github.com/ik5/audspoof/audio"
	"github.com/ik5/audspoof/internal/audiotest"
)

func ExampleNormalize() {
	// One second of stereo at 44.1kHz, left 0.2 and right 0.6.
	src := audiotest.NewChannelSource(44100, 44100, 0.2, 0.6)

	sig, err := audio.Normalize(src, 16000, 4096)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(sig.SampleRate, len(sig.Samples))
	fmt.Printf("%.2f %.2f %.2f\n", sig.Samples[0], sig.Samples[len(sig.Samples)/2], sig.Samples[len(sig.Samples)-1])
	// Output:
	// 16000 16000
	// 0.40 0.40 0.40
}

func ExampleNewMonoMixer() {
	src := audiotest.NewChannelSource(8000, 4, 1, 0, 0, 0)
	mono := audio.NewMonoMixer(src)

	buf := make([]float32, 4)
	n, _ := mono.ReadSamples(buf)
	fmt.Println(mono.Channels(), buf[:n])
	// Output:
	// 1 [0.25 0.25 0.25 0.25]
}

func ExampleRegistry() {
	reg := audio.NewRegistry()
	reg.Register("wav", nil)
	reg.Register("MP3", nil)

	_, ok := reg.Get("Wav")
	fmt.Println(ok, reg.Formats())
	// Output:
	// true [mp3 wav]
}
