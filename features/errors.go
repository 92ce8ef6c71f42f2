// SPDX-License-Identifier: EPL-2.0

package features

import "errors"

// ErrFeatureExtraction is returned when a feature evaluates to NaN or Inf.
// The wrapped message names the feature.
var ErrFeatureExtraction = errors.New("feature extraction failed")
