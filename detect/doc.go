// SPDX-License-Identifier: EPL-2.0

// Package detect wires the decoders, the normalizer, feature extraction and
// the classifier into a single call:
//
//	d := detect.New(detect.NewRegistry("ffmpeg", ""))
//	rep, err := d.Detect(file, "wav")
//	switch {
//	case errors.Is(err, detect.ErrUnsupportedFormat):
//	    // client error
//	case err != nil:
//	    // decode or processing failure
//	}
//	fmt.Println(rep.Classification, rep.Confidence, rep.Explanation)
//
// Every call decodes into its own buffers; the registry is the only shared
// state and is read-only once built.
package detect
