// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// maxEmptyReads bounds how many consecutive (0, nil) reads are tolerated
// from a source before giving up with io.ErrNoProgress.
const maxEmptyReads = 64

// frameReader hands out one interleaved frame at a time from a Source,
// refilling an internal chunk buffer as needed.
type frameReader struct {
	src      Source
	channels int
	buf      []float32
	pos, n   int
	eof      bool
}

func newFrameReader(src Source, channels int) *frameReader {
	size := 4096 / channels * channels
	if size == 0 {
		size = channels
	}
	return &frameReader{
		src:      src,
		channels: channels,
		buf:      make([]float32, size),
	}
}

// next copies the next frame into dst. It reports false once the source is
// exhausted.
func (f *frameReader) next(dst []float32) (bool, error) {
	empty := 0
	for f.pos >= f.n {
		if f.eof {
			return false, nil
		}
		n, err := f.src.ReadSamples(f.buf)
		f.pos, f.n = 0, n-n%f.channels
		if err == io.EOF {
			f.eof = true
		} else if err != nil {
			return false, fmt.Errorf("%w", err)
		}
		if f.n == 0 && !f.eof {
			empty++
			if empty >= maxEmptyReads {
				return false, io.ErrNoProgress
			}
		}
	}

	copy(dst, f.buf[f.pos:f.pos+f.channels])
	f.pos += f.channels
	return true, nil
}
