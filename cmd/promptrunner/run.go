package main

import (
	"fmt"
	"os"

	"github.com/monopole/promptrunner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var runCmd = &cobra.Command{
	Use:   "run <script.yaml>",
	Short: "Run the session described by a YAML script",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		script, err := loadScript(args[0])
		if err != nil {
			return err
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			promptrunner.VerboseLoggingEnable()
		}
		interactive := script.interactiveOrDefault(
			term.IsTerminal(int(os.Stdin.Fd())))
		return runSession(script, interactive)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolP("verbose", "v", false, "Log the plumbing in detail")
}

// runSession builds the action table and controller from the script
// and executes it.
func runSession(script *sessionScript, interactive bool) error {
	actions, err := script.actionSet()
	if err != nil {
		return err
	}
	params, err := script.parameters()
	if err != nil {
		return err
	}
	ctl := promptrunner.NewController(actions, params)
	for _, inv := range script.Invoke {
		if err = ctl.Invoke(inv.Action, inv.Args...); err != nil {
			return fmt.Errorf("queueing action %q; %w", inv.Action, err)
		}
	}
	if err = ctl.Execute(interactive); err != nil {
		return err
	}
	if !interactive {
		// Nothing more scripted; end the session rather than leak
		// the subprocess.
		return ctl.Close()
	}
	return nil
}
