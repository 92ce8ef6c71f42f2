// SPDX-License-Identifier: EPL-2.0

package commands

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/audspoof/formats/wav"
)

var (
	toneFreq      float64
	toneDuration  float64
	toneRate      int
	toneAmplitude float64
)

var toneCmd = &cobra.Command{
	Use:   "tone <out.wav>",
	Short: "Write a sine test clip",
	Long: `Write a mono 16-bit WAV containing a pure sine tone.

Example:
  audspoof tone a440.wav --freq 440 --duration 1 --rate 16000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		samples, err := sine(toneFreq, toneDuration, toneRate, toneAmplitude)
		if err != nil {
			return err
		}

		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", args[0], err)
		}

		if err := wav.WriteMono(f, toneRate, samples); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", args[0], err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d samples, %d Hz)\n", args[0], len(samples), toneRate)
		return nil
	},
}

func init() {
	toneCmd.Flags().Float64Var(&toneFreq, "freq", 440, "tone frequency in Hz")
	toneCmd.Flags().Float64Var(&toneDuration, "duration", 1, "length in seconds")
	toneCmd.Flags().IntVar(&toneRate, "rate", 16000, "sample rate")
	toneCmd.Flags().Float64Var(&toneAmplitude, "amplitude", 0.5, "peak amplitude in (0, 1]")

	rootCmd.AddCommand(toneCmd)
}

func sine(freq, seconds float64, rate int, amp float64) ([]float32, error) {
	switch {
	case rate <= 0:
		return nil, errors.New("rate must be positive")
	case seconds <= 0:
		return nil, errors.New("duration must be positive")
	case freq <= 0 || freq >= float64(rate)/2:
		return nil, fmt.Errorf("freq must be in (0, %d)", rate/2)
	case amp <= 0 || amp > 1:
		return nil, errors.New("amplitude must be in (0, 1]")
	}

	n := int(math.Round(seconds * float64(rate)))
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(amp * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return out, nil
}
