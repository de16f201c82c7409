// promptrunner runs a scripted session against an interactive
// command-line tool: launch the tool, feed it the commands declared
// in a YAML session script, synchronizing on its prompt, and
// optionally hand the session to the operator when the script is
// done.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "promptrunner",
	Short: "Drive an interactive command-line tool through its prompts",
	Long: `promptrunner launches a prompt-driven tool (a debugger, an
interactive database shell), sends it scripted commands one prompt at
a time, and can hand the live session over to you afterwards.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
