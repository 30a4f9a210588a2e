// Command smeilc runs the validator pipeline over a JSON-encoded module
// description and reports the resulting diagnostics or dependency schedule.
package main

import (
	"os"

	"github.com/smeil-lang/smeilc/cmd/smeilc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(2)
	}
}
