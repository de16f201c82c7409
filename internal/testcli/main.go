// tdb is a fake interactive debugger that exists to drive tests of
// the promptrunner module.  It reads commands from stdin, prints a
// prompt to stdout when ready for the next one, and misbehaves on
// request (stderr floods, startup failure, exit on error).
package main

import (
	"flag"
	"fmt"
	"os"
)

type argSack struct {
	prompt        string
	stderrFlood   int
	disableBanner bool
	exitOnError   bool
	failOnStartup bool
}

//goland:noinspection GoUnhandledErrorResult
func main() {
	var args argSack
	flag.StringVar(
		&args.prompt, "prompt", defaultPrompt,
		"The input-ready prompt, printed without a trailing newline.")
	flag.IntVar(
		&args.stderrFlood, "stderr-flood", 0,
		"Write this many bytes to stderr before the first prompt.")
	flag.BoolVar(
		&args.disableBanner, "disable-banner", false,
		"Skip the startup banner line.")
	flag.BoolVar(
		&args.exitOnError, "exit-on-error", false,
		"Exit on a command error, else keep accepting commands.")
	flag.BoolVar(
		&args.failOnStartup, "fail-on-startup", false,
		"Exit with an error before processing any commands.")
	flag.Parse()
	if args.failOnStartup {
		fmt.Fprintln(os.Stderr, "tdb: ordered to fail on startup")
		os.Exit(1)
	}
	if err := newShell(&args).run(); err != nil {
		os.Exit(1)
	}
}
