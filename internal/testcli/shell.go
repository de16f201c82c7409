package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPrompt = "(tdb) "
	version       = "v0.9.1"
)

// All individual commands.
const (
	cmdGreet   = "greet"
	cmdEcho    = "echo"
	cmdVersion = "version"
	cmdSleep   = "sleep"
	cmdNoise   = "noise"
	cmdConfirm = "y"
	cmdRun     = "run"
	cmdQuit    = "quit"
	cmdBye     = "bye"
)

// shell parses stdin, executing anything that validates as a command.
type shell struct {
	args    *argSack
	stdOut  io.Writer
	stdErr  io.Writer
	scanner *bufio.Scanner
}

func newShell(args *argSack) *shell {
	return &shell{
		args:    args,
		stdOut:  os.Stdout,
		stdErr:  os.Stderr,
		scanner: bufio.NewScanner(os.Stdin),
	}
}

// run drains stdin, one prompt per command.
//
//goland:noinspection GoUnhandledErrorResult
func (s *shell) run() error {
	if s.args.stderrFlood > 0 {
		s.flood(s.args.stderrFlood)
	}
	if !s.args.disableBanner {
		fmt.Fprintf(s.stdOut, "tdb debugger %s\n", version)
	}
	s.showPrompt()
	for s.scanner.Scan() {
		done, err := s.handleCommand(strings.TrimSpace(s.scanner.Text()))
		if err != nil {
			fmt.Fprintln(s.stdErr, err.Error())
			if s.args.exitOnError {
				return err
			}
		}
		if done {
			return nil
		}
		s.showPrompt()
	}
	return nil
}

func (s *shell) showPrompt() {
	fmt.Fprint(s.stdOut, s.args.prompt)
}

// flood writes n bytes of line-shaped junk to stderr, to exercise
// concurrent draining in the parent.
func (s *shell) flood(n int) {
	const lineLen = 64
	var line bytes.Buffer
	for line.Len() < lineLen-1 {
		line.WriteByte('e')
	}
	line.WriteByte('\n')
	for written := 0; written < n; written += line.Len() {
		_, _ = s.stdErr.Write(line.Bytes())
	}
}

//goland:noinspection GoUnhandledErrorResult
func (s *shell) handleCommand(cmd string) (done bool, err error) {
	switch {
	case cmd == "":
		// Ignore empty commands.
	case cmd == cmdQuit || cmd == cmdBye:
		done = true
	case cmd == cmdGreet:
		fmt.Fprintln(s.stdOut, "hello")
	case cmd == cmdVersion:
		fmt.Fprintln(s.stdOut, version)
	case cmd == cmdConfirm:
		fmt.Fprintln(s.stdOut, "confirmed")
	case cmd == cmdRun:
		fmt.Fprintln(s.stdOut, "running target")
		fmt.Fprintln(s.stdOut, "hit breakpoint 1")
	case strings.HasPrefix(cmd, cmdEcho+" "):
		fmt.Fprintln(s.stdOut, cmd[len(cmdEcho)+1:])
	case strings.HasPrefix(cmd, cmdSleep+" "):
		var d time.Duration
		if d, err = time.ParseDuration(cmd[len(cmdSleep)+1:]); err == nil {
			<-time.After(d)
		}
	case strings.HasPrefix(cmd, cmdNoise+" "):
		var n int
		if n, err = strconv.Atoi(cmd[len(cmdNoise)+1:]); err == nil {
			s.flood(n)
		}
	default:
		err = fmt.Errorf("unrecognized command: %q", cmd)
	}
	return
}
