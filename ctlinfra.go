package promptrunner

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/monopole/promptrunner/pumper"
)

// processMakerF can be mocked in tests with a hand-built Process
// (bare channels not associated with a real subprocess).
type processMakerF func() (*pumper.Process, error)

// ctlInfra holds Controller infrastructure shared by all states.
type ctlInfra struct {
	// actions is the immutable registration table this controller
	// renders commands from.
	actions *ActionSet

	// params configures the subprocess and the session.
	params Parameters

	// queue holds rendered command lines awaiting execution, FIFO.
	queue []string

	// procMaker spawns the subprocess on Execute.
	procMaker processMakerF

	// proc is the live handle; nil before launch.
	proc *pumper.Process

	// drainOut and drainErr own the two output streams.
	drainOut *StreamDrainer
	drainErr *StreamDrainer

	// syncr runs the per-command prompt waits.
	syncr *Synchronizer
}

// enqueue renders the named action and appends it to the queue.
func (inf *ctlInfra) enqueue(name string, args []string) error {
	cmd, err := inf.actions.Render(name, args)
	if err != nil {
		return err
	}
	logger.Printf("infra; enqueueing %q", cmd)
	inf.queue = append(inf.queue, cmd)
	return nil
}

// infraLaunch spawns the subprocess, wires the drainers and the
// synchronizer, and performs the banner wait (the subprocess'
// startup output ending in its first prompt).
func (inf *ctlInfra) infraLaunch() error {
	if inf.params.Prompt == nil {
		return fmt.Errorf("cannot launch; %w", ErrNoPrompt)
	}
	proc, err := inf.procMaker()
	if err != nil {
		return err
	}
	inf.proc = proc
	inf.drainOut = NewStreamDrainer("stdOut", proc.Out)
	inf.drainErr = NewStreamDrainer("stdErr", proc.Err)
	inf.syncr = NewSynchronizer(
		inf.drainOut, inf.drainErr,
		inf.params.SinkOut, inf.params.SinkErr,
		proc.Fault)
	logger.Printf("infra; launched pid %d, awaiting banner prompt", proc.Pid())
	res, err := inf.syncr.Wait(inf.params.Prompt, inf.params.PromptTimeout)
	if err != nil {
		inf.abandon()
		return err
	}
	if res.OutEOS {
		// The subprocess died during startup; its parting output
		// already reached the sinks.
		inf.abandon()
		return fmt.Errorf("stdOut closed before first prompt")
	}
	return nil
}

// runQueue drains the queue in FIFO order, one prompt wait per
// command.  A command that signals a halt discards whatever is left;
// either way the queue is empty afterwards - commands are never
// retried, since commands sent to an interactive tool are not safely
// re-sendable.
func (inf *ctlInfra) runQueue() error {
	defer func() { inf.queue = nil }()
	for len(inf.queue) > 0 {
		cmd := inf.queue[0]
		inf.queue = inf.queue[1:]
		halt, err := inf.runCommand(cmd)
		if err != nil {
			return err
		}
		if halt {
			logger.Printf(
				"infra; halt after %q, discarding %d queued command(s)",
				cmd, len(inf.queue))
			return nil
		}
	}
	return nil
}

// runCommand sends one command line to the subprocess and waits for
// the next prompt.  It reports halt=true when the subprocess' stdout
// reached end-of-stream (it exited) or the Halt policy says to stop.
func (inf *ctlInfra) runCommand(cmd string) (halt bool, err error) {
	logger.Printf("infra; sending %q", cmd)
	if _, err = inf.proc.StdIn.Write(pumper.AssureLineTermination(cmd)); err != nil {
		return true, fmt.Errorf("sending command %q; %w", cmd, err)
	}
	res, err := inf.syncr.Wait(inf.params.Prompt, inf.params.PromptTimeout)
	if err != nil {
		return true, fmt.Errorf("after command %q; %w", cmd, err)
	}
	if res.OutEOS {
		logger.Printf("infra; stdOut closed after %q", cmd)
		return true, nil
	}
	if inf.params.Halt != nil && inf.params.Halt(cmd) {
		return true, nil
	}
	return false, nil
}

// userSession hands control to the operator: one line read, one
// command run, one prompt wait, until the subprocess' output stream
// closes or the operator sends EOF.
func (inf *ctlInfra) userSession() error {
	scanner := bufio.NewScanner(inf.params.Input)
	for !inf.drainOut.EOS() {
		logger.Printf("infra; awaiting operator input")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading operator input; %w", err)
			}
			logger.Printf("infra; operator closed input")
			return nil
		}
		halt, err := inf.runCommand(scanner.Text())
		if err != nil {
			return err
		}
		if halt {
			return nil
		}
	}
	return nil
}

// shutdown gracefully ends the subprocess: optional exit command,
// stdin close, reap.  Everything is best effort against a child that
// may already be gone.
func (inf *ctlInfra) shutdown() error {
	if inf.params.ExitCommand != "" && !inf.drainOut.EOS() {
		logger.Printf("infra; sending exit command %q", inf.params.ExitCommand)
		line := pumper.AssureLineTermination(inf.params.ExitCommand)
		if _, err := inf.proc.StdIn.Write(line); err != nil {
			logger.Printf("infra; exit command not delivered: %s", err.Error())
		}
	}
	if err := inf.proc.StdIn.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		logger.Printf("infra; closing stdIn: %s", err.Error())
	}
	// One last drain so the subprocess' parting output reaches the
	// sinks.  If it neither prompts nor exits in time, it's hung;
	// kill it rather than block the reap forever.
	if !inf.drainOut.EOS() {
		if _, err := inf.syncr.Wait(
			inf.params.Prompt, inf.params.PromptTimeout); err != nil {
			logger.Printf("infra; final drain: %s", err.Error())
			inf.proc.Kill()
		}
	}
	return inf.proc.Reap()
}

// abandon gives up on a subprocess that misbehaved (e.g. a prompt
// wait timed out, so it may be hung).  No reap; the kill guards
// against leaving a wedged child behind.
func (inf *ctlInfra) abandon() {
	if inf.proc == nil {
		return
	}
	logger.Printf("infra; abandoning pid %d", inf.proc.Pid())
	_ = inf.proc.StdIn.Close()
	inf.proc.Kill()
}
