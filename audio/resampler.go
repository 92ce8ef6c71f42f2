// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audspoof/utils"
)

// antiAliasCutoff is the low-pass cutoff used when downsampling, as a
// fraction of the destination rate.
const antiAliasCutoff = 0.45

// Resampler streams from src to target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// When downsampling, src is first passed through a windowed-sinc low-pass
// filter so nothing above the destination Nyquist folds back.
//
// For a source of L frames the resampler emits ceil(L * dst / src) frames.
type Resampler struct {
	src      Source
	in       *frameReader
	dstRate  int
	ratio    float64 // srcRate / dstRate - how many source samples per output sample
	channels int

	// Window of 4 frames for cubic interpolation
	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames   [4][]float32
	hasFrame [4]bool
	primed   bool

	// Sticky terminal error (io.EOF once drained)
	err error

	// Fractional position between frames[1] and frames[2]
	pos float64
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	if ratio > 1.0 {
		src = newLowPass(src, antiAliasCutoff*float64(dstRate))
	}

	r := &Resampler{
		src:      src,
		in:       newFrameReader(src, channels),
		dstRate:  dstRate,
		ratio:    ratio,
		channels: channels,
	}

	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	err := r.src.Close()
	if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// prime fills the interpolation window. The first frame is duplicated into
// the t-1 slot so output starts exactly at the first source frame.
func (r *Resampler) prime() error {
	ok, err := r.in.next(r.frames[1])
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}
	copy(r.frames[0], r.frames[1])
	r.hasFrame[0], r.hasFrame[1] = true, true

	for i := 2; i < 4; i++ {
		ok, err := r.in.next(r.frames[i])
		if err != nil {
			return err
		}
		r.hasFrame[i] = ok
	}

	r.primed = true
	return nil
}

// advance shifts the window by one source frame.
func (r *Resampler) advance() error {
	copy(r.frames[0], r.frames[1])
	copy(r.frames[1], r.frames[2])
	copy(r.frames[2], r.frames[3])
	r.hasFrame[0] = r.hasFrame[1]
	r.hasFrame[1] = r.hasFrame[2]
	r.hasFrame[2] = r.hasFrame[3]

	ok, err := r.in.next(r.frames[3])
	if err != nil {
		return err
	}
	r.hasFrame[3] = ok

	if !r.hasFrame[1] {
		return io.EOF
	}
	return nil
}

// ReadSamples produces dst samples at r.dstRate.
// dst length should be a multiple of r.channels.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if r.err != nil {
		return 0, r.err
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			r.err = err
			return 0, err
		}
	}

	written := 0
	framesNeeded := len(dst) / r.channels

	for written < framesNeeded {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				r.err = err
				return written * r.channels, err
			}
		}

		alpha := float32(r.pos)

		for c := range r.channels {
			y0 := r.frames[0][c]
			y1 := r.frames[1][c]

			// Hold the last frame past the end of the stream
			y2 := y1
			if r.hasFrame[2] {
				y2 = r.frames[2][c]
			}
			y3 := y2
			if r.hasFrame[3] {
				y3 = r.frames[3][c]
			}

			dst[written*r.channels+c] = utils.CubicInterpolate(y0, y1, y2, y3, alpha)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
