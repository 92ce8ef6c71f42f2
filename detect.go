// SPDX-License-Identifier: EPL-2.0

package audspoof

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/ik5/audspoof/detect"
)

var defaultDetector = sync.OnceValue(func() *detect.Detector {
	return detect.New(detect.NewRegistry("", ""))
})

// Detect classifies an in-memory clip declared as format (mp3, wav, m4a,
// ogg, flac or aac, any case) using the default decoders. m4a and aac need
// ffmpeg on PATH.
func Detect(data []byte, format string) (detect.Report, error) {
	return defaultDetector().Detect(bytes.NewReader(data), format)
}

// DetectFile is Detect on a file, with the format taken from its extension.
func DetectFile(path string) (detect.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return detect.Report{}, fmt.Errorf("%w", err)
	}
	defer f.Close()

	return defaultDetector().Detect(f, detect.FormatFromPath(path))
}
