// SPDX-License-Identifier: EPL-2.0

// Command audspoof classifies speech clips as AI_GENERATED or HUMAN.
//
// Usage:
//
//	audspoof [flags] <command> [args]
//
// Commands:
//
//	serve    - run the HTTP API
//	analyze  - classify local files
//	client   - call a running server
//	tone     - write a sine test clip
//	config   - print the effective configuration
package main

import (
	"fmt"
	"os"

	"github.com/ik5/audspoof/cmd/audspoof/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
