// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// Normalize drains src into a mono Signal at targetRate.
//
// Multi-channel input is downmixed with a MonoMixer first, then resampled
// only when the native rate differs from targetRate. bufSize is the read
// chunk size (4096 when <= 0). src is not closed.
//
// Returns ErrEmptySignal when the pipeline yields no samples.
func Normalize(src Source, targetRate int, bufSize int) (Signal, error) {
	if targetRate <= 0 || src.SampleRate() <= 0 {
		return Signal{}, ErrInvalidRate
	}
	if src.Channels() < 1 {
		return Signal{}, ErrNoChannels
	}
	if bufSize <= 0 {
		bufSize = 4096
	}

	var pipeline Source = src
	if src.Channels() > 1 {
		pipeline = NewMonoMixer(pipeline)
	}
	if pipeline.SampleRate() != targetRate {
		pipeline = NewResampler(pipeline, targetRate)
	}

	samples := make([]float64, 0, targetRate)
	buf := make([]float32, bufSize)
	empty := 0

	for {
		n, err := pipeline.ReadSamples(buf)
		for i := range n {
			samples = append(samples, float64(buf[i]))
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return Signal{}, fmt.Errorf("%w", err)
		}

		if n == 0 {
			empty++
			if empty >= maxEmptyReads {
				return Signal{}, io.ErrNoProgress
			}
		} else {
			empty = 0
		}
	}

	if len(samples) == 0 {
		return Signal{}, ErrEmptySignal
	}

	return Signal{Samples: samples, SampleRate: targetRate}, nil
}
