// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audspoof/audio"
	"github.com/ik5/audspoof/utils"
	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"
)

var (
	// ErrNotFLAC wraps any failure to read the fLaC signature or STREAMINFO.
	ErrNotFLAC = errors.New("not a FLAC stream")

	// ErrChannelMismatch indicates a frame whose channel count differs from
	// STREAMINFO.
	ErrChannelMismatch = errors.New("FLAC frame channel count mismatch")
)

// frameParser is the part of flac.Stream the source uses.
type frameParser interface {
	ParseNext() (*frame.Frame, error)
}

type source struct {
	stream     frameParser
	closer     io.Closer
	sampleRate int
	channels   int
	bitDepth   int

	cur *frame.Frame
	pos int // next sample index inside cur
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return 4096 }

func (s *source) Close() error {
	if s.closer == nil {
		return nil
	}
	if err := s.closer.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// ReadSamples interleaves decoded subframes into dst, pulling new frames as
// needed. Only whole frames are written.
func (s *source) ReadSamples(dst []float32) (int, error) {
	framesWanted := len(dst) / s.channels
	written := 0

	for written < framesWanted {
		if s.cur == nil || s.pos >= len(s.cur.Subframes[0].Samples) {
			f, err := s.stream.ParseNext()
			if err == io.EOF {
				return written * s.channels, io.EOF
			}
			if err != nil {
				return written * s.channels, fmt.Errorf("%w", err)
			}
			if len(f.Subframes) != s.channels {
				return written * s.channels, fmt.Errorf("%w: %d != %d", ErrChannelMismatch, len(f.Subframes), s.channels)
			}
			s.cur, s.pos = f, 0
			continue
		}

		n := min(framesWanted-written, len(s.cur.Subframes[0].Samples)-s.pos)
		for c, sub := range s.cur.Subframes {
			for i := range n {
				dst[(written+i)*s.channels+c] = utils.PCMToFloat32(int(sub.Samples[s.pos+i]), s.bitDepth)
			}
		}
		written += n
		s.pos += n
	}

	return written * s.channels, nil
}

// Decoder decodes FLAC at any bit depth and channel count.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	stream, err := flac.New(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFLAC, err)
	}

	info := stream.Info
	if info == nil || info.NChannels == 0 || info.SampleRate == 0 {
		return nil, fmt.Errorf("%w: invalid STREAMINFO", ErrNotFLAC)
	}

	return &source{
		stream:     stream,
		closer:     stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		bitDepth:   int(info.BitsPerSample),
	}, nil
}
