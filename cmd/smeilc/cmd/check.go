package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/smeil-lang/smeilc/internal/loader"
	"github.com/smeil-lang/smeilc/internal/semantic"
	"github.com/spf13/cobra"
)

var topNetwork string

var checkCmd = &cobra.Command{
	Use:   "check <module.json> [-- arg...]",
	Short: "Validate a module (and print its process schedule with --verbose)",
	Long: `check loads a JSON module description, runs the full validator
pipeline against it, and binds any trailing arguments to the top-level
network's formal parameters.

Examples:
  smeilc check adder.json
  smeilc check adder.json --top Adder -- 8 1`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVar(&topNetwork, "top", "", "name of the top-level network (default: the module's only network)")
}

func runCheck(_ *cobra.Command, args []string) error {
	path := args[0]
	topArgs := args[1:]

	mod, err := loader.Load(path)
	if err != nil {
		exitWithError("%v", err)
		return err
	}

	ctx, diag := semantic.Compile(mod, topNetwork, topArgs)
	if diag != nil {
		fmt.Fprintln(os.Stderr, diag.Error())
		os.Exit(3)
		return nil
	}

	fmt.Printf("%s: ok\n", path)
	if verbose {
		printSchedule(ctx)
	}
	return nil
}

func printSchedule(ctx *semantic.Context) {
	for i, wave := range ctx.Schedule {
		names := make([]string, 0, len(wave))
		for _, p := range wave {
			names = append(names, p.Name)
		}
		fmt.Printf("wave %d: %s\n", i, strings.Join(names, ", "))
	}
}
