// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
)

// encodeFile writes interleaved PCM ints with the go-audio encoder and
// returns the file contents.
func encodeFile(t *testing.T, rate, bitDepth, channels int, data []int) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "in.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}

	enc := gowav.NewEncoder(f, rate, bitDepth, channels, formatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func readAll(t *testing.T, r io.Reader) ([]float32, int, int) {
	t.Helper()

	src, err := Decoder{}.Decode(r)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	defer src.Close()

	var out []float32
	buf := make([]float32, 7) // deliberately odd
	for range 10000 {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out, src.SampleRate(), src.Channels()
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
	t.Fatal("ReadSamples() never returned io.EOF")
	return nil, 0, 0
}

func TestDecoder_BitDepths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bitDepth int
		data     []int
		want     []float32
	}{
		{16, []int{0, 16384, -16384, -32768}, []float32{0, 0.5, -0.5, -1}},
		{24, []int{0, 4194304, -8388608, 2097152}, []float32{0, 0.5, -1, 0.25}},
		{32, []int{0, 1 << 30, math.MinInt32, -(1 << 29)}, []float32{0, 0.5, -1, -0.25}},
	}

	for _, tt := range tests {
		raw := encodeFile(t, 22050, tt.bitDepth, 1, tt.data)

		got, rate, channels := readAll(t, bytes.NewReader(raw))
		if rate != 22050 || channels != 1 {
			t.Errorf("%d-bit: rate=%d channels=%d", tt.bitDepth, rate, channels)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("%d-bit: got %d samples, want %d", tt.bitDepth, len(got), len(tt.want))
		}
		for i := range got {
			if math.Abs(float64(got[i]-tt.want[i])) > 1e-6 {
				t.Errorf("%d-bit: sample %d = %v, want %v", tt.bitDepth, i, got[i], tt.want[i])
			}
		}
	}
}

func TestDecoder_Stereo(t *testing.T) {
	t.Parallel()

	raw := encodeFile(t, 44100, 16, 2, []int{1000, -1000, 2000, -2000, 3000, -3000})

	got, rate, channels := readAll(t, bytes.NewReader(raw))
	if rate != 44100 || channels != 2 {
		t.Fatalf("rate=%d channels=%d, want 44100/2", rate, channels)
	}
	if len(got) != 6 {
		t.Fatalf("got %d samples, want 6", len(got))
	}
	for i := 0; i < len(got); i += 2 {
		if got[i] != -got[i+1] {
			t.Errorf("frame %d: L=%v R=%v, want mirrored", i/2, got[i], got[i+1])
		}
	}
}

func TestDecoder_NonSeekableReader(t *testing.T) {
	t.Parallel()

	var wavBuf bytes.Buffer
	if err := WriteWAV16(&wavBuf, 16000, []int16{100, 200, 300}); err != nil {
		t.Fatal(err)
	}

	// io.MultiReader hides Seek.
	got, rate, _ := readAll(t, io.MultiReader(&wavBuf))
	if rate != 16000 || len(got) != 3 {
		t.Fatalf("rate=%d len=%d, want 16000/3", rate, len(got))
	}
	if math.Abs(float64(got[2])-300.0/32768) > 1e-7 {
		t.Errorf("sample 2 = %v", got[2])
	}
}

func TestDecoder_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrNotWavFile},
		{"text", []byte("This is not WAV data at all, not even close."), ErrNotWavFile},
		{"riff but not wave", append([]byte("RIFF\x24\x00\x00\x00AVI "), make([]byte, 32)...), ErrNotWavFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decoder{}.Decode(bytes.NewReader(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want %v", err, tt.want)
			}
		})
	}
}

// fakePCM feeds fixed ints through the pcmReader seam.
type fakePCM struct {
	data []int
	pos  int
	err  error
}

func (f *fakePCM) Format() *goaudio.Format {
	return &goaudio.Format{NumChannels: 1, SampleRate: 8000}
}

func (f *fakePCM) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	n := copy(buf.Data, f.data[f.pos:])
	f.pos += n
	return n, nil
}

func TestSource_EightBitIsUnsigned(t *testing.T) {
	t.Parallel()

	dec := &fakePCM{data: []int{128, 255, 0, 192}}
	src := newSource(dec, dec.Format(), 8)

	buf := make([]float32, 8)
	n, err := src.ReadSamples(buf)
	if err != nil || n != 4 {
		t.Fatalf("ReadSamples() = %d, %v", n, err)
	}

	want := []float32{0, 127.0 / 128, -1, 0.5}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, buf[i], want[i])
		}
	}

	if n, err := src.ReadSamples(buf); n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() at end = %d, %v, want 0, io.EOF", n, err)
	}
}

func TestSource_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk on fire")
	dec := &fakePCM{err: boom}
	src := newSource(dec, dec.Format(), 16)

	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want %v", err, boom)
	}
}

func TestSource_EmptyBuffer(t *testing.T) {
	t.Parallel()

	dec := &fakePCM{data: []int{1, 2, 3}}
	src := newSource(dec, dec.Format(), 16)

	if n, err := src.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v, want 0, nil", n, err)
	}
	if src.BufSize() != 4096 {
		t.Errorf("BufSize() = %d before first read, want 4096", src.BufSize())
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	data := make([]int, 16000)
	for i := range data {
		data[i] = i % 32768
	}
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for b.Loop() {
		dec := &fakePCM{data: data}
		src := newSource(dec, dec.Format(), 16)
		for {
			if _, err := src.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
