// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audspoof/audio"
	"github.com/ik5/audspoof/utils"
)

// ErrNotMP3 wraps any failure to find a valid MPEG audio frame.
var ErrNotMP3 = errors.New("not an MP3 stream")

// go-mp3 always produces interleaved stereo, 16-bit little-endian.
const (
	channels       = 2
	bytesPerSample = 2
	frameBytes     = channels * bytesPerSample
)

// pcmStream is the part of gomp3.Decoder the source uses.
type pcmStream interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec  pcmStream
	buf  []byte
	tail []byte // partial frame carried to the next read
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / bytesPerSample }

// ReadSamples only ever returns whole stereo frames. A partial frame left
// at the end of the stream is dropped.
func (s *source) ReadSamples(dst []float32) (int, error) {
	need := (len(dst) / channels) * frameBytes
	if need == 0 {
		return 0, nil
	}

	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	carried := copy(s.buf, s.tail)
	s.tail = s.tail[:0]

	n, err := s.dec.Read(s.buf[carried:])
	n += carried

	whole := n - n%frameBytes
	s.tail = append(s.tail, s.buf[whole:n]...)

	samples := whole / bytesPerSample
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[i*bytesPerSample:]))
		dst[i] = utils.Int16ToFloat32(v)
	}

	switch {
	case err == nil || err == io.EOF:
		return samples, err
	default:
		return samples, fmt.Errorf("%w", err)
	}
}

// Decoder decodes MPEG-1/2 Layer III.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3, err)
	}

	return &source{
		dec: dec,
		buf: make([]byte, 8192),
	}, nil
}
