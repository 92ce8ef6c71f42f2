// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"
)

// lowPassTaps is the FIR length. Odd, so the group delay is a whole number
// of samples.
const lowPassTaps = 63

// lowPass is a linear-phase FIR low-pass filter over a Source. The filter's
// group delay is compensated: the first (taps-1)/2 outputs are dropped and
// the same number of frames are fed after EOF, so output length equals
// input length.
//
// The edges are padded by repeating the first and last frames, so a DC
// signal passes unchanged up to the very first and last sample.
type lowPass struct {
	src      Source
	in       *frameReader
	channels int

	taps []float64
	hist [][]float64 // per-channel ring buffer, len(taps)
	head int

	frame  []float32
	seeded bool
	skip   int
	flush  int
}

func newLowPass(src Source, cutoffHz float64) *lowPass {
	channels := src.Channels()
	delay := (lowPassTaps - 1) / 2

	hist := make([][]float64, channels)
	for c := range hist {
		hist[c] = make([]float64, lowPassTaps)
	}

	return &lowPass{
		src:      src,
		in:       newFrameReader(src, channels),
		channels: channels,
		taps:     designLowPass(lowPassTaps, cutoffHz/float64(src.SampleRate())),
		hist:     hist,
		frame:    make([]float32, channels),
		skip:     delay,
		flush:    delay,
	}
}

// designLowPass returns a Blackman-windowed sinc kernel with unity DC gain.
// cutoff is in cycles per sample (0, 0.5).
func designLowPass(n int, cutoff float64) []float64 {
	taps := make([]float64, n)
	m := float64(n - 1)
	sum := 0.0

	for i := range n {
		x := float64(i) - m/2
		var sinc float64
		if x == 0 {
			sinc = 2 * cutoff
		} else {
			sinc = math.Sin(2*math.Pi*cutoff*x) / (math.Pi * x)
		}
		w := 0.42 - 0.5*math.Cos(2*math.Pi*float64(i)/m) + 0.08*math.Cos(4*math.Pi*float64(i)/m)
		taps[i] = sinc * w
		sum += taps[i]
	}

	for i := range taps {
		taps[i] /= sum
	}
	return taps
}

func (f *lowPass) SampleRate() int { return f.src.SampleRate() }
func (f *lowPass) Channels() int   { return f.channels }
func (f *lowPass) BufSize() int    { return f.src.BufSize() }

func (f *lowPass) Close() error {
	if err := f.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// nextInput loads the next input frame into f.frame. Once the source is
// drained the last frame is left in place and repeated.
func (f *lowPass) nextInput() error {
	ok, err := f.in.next(f.frame)
	if err != nil {
		return err
	}
	if ok {
		if !f.seeded {
			f.seed()
		}
		return nil
	}
	if f.flush == 0 {
		return io.EOF
	}
	f.flush--
	return nil
}

// seed fills the history with the first frame.
func (f *lowPass) seed() {
	for c, h := range f.hist {
		for i := range h {
			h[i] = float64(f.frame[c])
		}
	}
	f.seeded = true
}

func (f *lowPass) ReadSamples(dst []float32) (int, error) {
	if len(dst)%f.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	written := 0
	framesNeeded := len(dst) / f.channels

	for written < framesNeeded {
		if err := f.nextInput(); err != nil {
			return written * f.channels, err
		}

		for c := range f.channels {
			f.hist[c][f.head] = float64(f.frame[c])
		}

		if f.skip > 0 {
			f.skip--
			f.head = (f.head + 1) % len(f.taps)
			continue
		}

		for c := range f.channels {
			h := f.hist[c]
			acc := 0.0
			idx := f.head
			for _, t := range f.taps {
				acc += t * h[idx]
				idx--
				if idx < 0 {
					idx = len(h) - 1
				}
			}
			dst[written*f.channels+c] = float32(acc)
		}

		f.head = (f.head + 1) % len(f.taps)
		written++
	}

	return written * f.channels, nil
}
