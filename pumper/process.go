package pumper

import (
	"io"
	"os/exec"
	"strings"
	"sync"
)

// Process holds the live handle to a spawned interactive subprocess.
//
// StdIn is written only by whatever single goroutine controls the
// process.  Out and Err carry raw byte chunks pumped from the
// subprocess' stdout and stderr respectively; each channel is closed
// when its stream reaches end-of-stream.  Fault carries unrecoverable
// pump read errors (anything other than a clean end-of-stream).
type Process struct {
	// StdIn is the subprocess' input stream.
	StdIn io.WriteCloser
	// Out delivers raw chunks from the subprocess' stdout.
	Out <-chan []byte
	// Err delivers raw chunks from the subprocess' stderr.
	Err <-chan []byte
	// Fault delivers fatal pump read errors.
	Fault <-chan error

	cmd      *exec.Cmd
	pid      int
	reapOnce sync.Once
	reapErr  error
}

// Pid returns the subprocess' process id, or zero if the Process
// was built without a real subprocess (as in tests).
func (p *Process) Pid() int { return p.pid }

// Reap waits on the subprocess to collect its exit status.
// It is idempotent: waiting on an already-reaped child is an
// expected race and is not an error.  A non-zero exit status is
// remembered and returned by every call.
func (p *Process) Reap() error {
	if p.cmd == nil {
		return nil
	}
	p.reapOnce.Do(func() {
		err := p.cmd.Wait()
		if err == nil {
			return
		}
		if isReapRace(err) {
			logger.Printf("reap; child already reaped: %s", err.Error())
			return
		}
		p.reapErr = err
	})
	return p.reapErr
}

// Kill forcibly terminates the subprocess.  It's the last resort for
// a child that is hung or ignoring its closed stdin; errors (e.g. the
// process already being gone) are deliberately dropped.
func (p *Process) Kill() {
	if p.cmd == nil || p.cmd.Process == nil {
		return
	}
	logger.Printf("kill; terminating pid %d", p.pid)
	_ = p.cmd.Process.Kill()
}

// isReapRace recognizes the already-reaped conditions: a second Wait
// on the same exec.Cmd, or a wait syscall finding no such child.
func isReapRace(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Wait was already called") ||
		strings.Contains(msg, "no child process")
}
