// SPDX-License-Identifier: EPL-2.0

package commands

import "fmt"

// formatDuration formats duration in seconds to human readable format
func formatDuration(seconds float64) string {
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	mins := int(seconds / 60)
	secs := int(seconds) % 60
	return fmt.Sprintf("%dm%ds", mins, secs)
}
