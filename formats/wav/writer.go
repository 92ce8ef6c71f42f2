// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/audspoof/utils"
)

const (
	headerSize = 44
	writeChunk = 8192 // samples per Write call
)

// monoHeader is the canonical RIFF/WAVE header of a mono 16-bit PCM clip.
// Its binary encoding is exactly headerSize bytes.
type monoHeader struct {
	RIFF       [4]byte
	RIFFSize   uint32
	WAVE       [4]byte
	Fmt        [4]byte
	FmtSize    uint32
	Format     uint16
	Channels   uint16
	SampleRate uint32
	ByteRate   uint32
	BlockAlign uint16
	Bits       uint16
	Data       [4]byte
	DataSize   uint32
}

func newMonoHeader(sampleRate, samples int) monoHeader {
	dataSize := uint32(samples * 2)
	return monoHeader{
		RIFF:       [4]byte{'R', 'I', 'F', 'F'},
		RIFFSize:   headerSize - 8 + dataSize,
		WAVE:       [4]byte{'W', 'A', 'V', 'E'},
		Fmt:        [4]byte{'f', 'm', 't', ' '},
		FmtSize:    16,
		Format:     formatPCM,
		Channels:   1,
		SampleRate: uint32(sampleRate),
		ByteRate:   uint32(sampleRate * 2),
		BlockAlign: 2,
		Bits:       16,
		Data:       [4]byte{'d', 'a', 't', 'a'},
		DataSize:   dataSize,
	}
}

// WriteMono writes float samples in [-1, 1] as a mono 16-bit PCM WAV.
// Values outside the range are clipped. w does not need to seek.
func WriteMono(w io.Writer, sampleRate int, samples []float32) error {
	if err := binary.Write(w, binary.LittleEndian, newMonoHeader(sampleRate, len(samples))); err != nil {
		return fmt.Errorf("%w", err)
	}

	pcm := make([]int16, min(len(samples), writeChunk))
	for len(samples) > 0 {
		n := utils.FloatsToInt16(pcm, samples)
		if err := binary.Write(w, binary.LittleEndian, pcm[:n]); err != nil {
			return fmt.Errorf("%w", err)
		}
		samples = samples[n:]
	}

	return nil
}

// WriteWAV16 is WriteMono for samples that are already 16-bit, written
// unchanged. Tests use it to build exact fixtures.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	if err := binary.Write(w, binary.LittleEndian, newMonoHeader(sampleRate, len(samples))); err != nil {
		return fmt.Errorf("%w", err)
	}

	for i := 0; i < len(samples); i += writeChunk {
		chunk := samples[i:min(i+writeChunk, len(samples))]
		if err := binary.Write(w, binary.LittleEndian, chunk); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}
