package promptrunner_test

import (
	"bytes"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/monopole/promptrunner/pumper"
)

const (
	timeOutLong = 2 * time.Second
	// timeOutShort is a "short" timeout, for happy cases.
	timeOutShort = 800 * time.Millisecond
	timeOutTiny  = 30 * time.Millisecond
)

func assertNoErr(err error) {
	if err != nil {
		panic("example failure: unexpected err: " + err.Error())
	}
}

// fakeChild emulates a prompt-driven subprocess without spawning one.
// Bytes written to it (it plays the child's stdin) are assembled into
// command lines; each line is answered by the respond function, whose
// output lands on the same channels a real pumper.Process would use.
type fakeChild struct {
	chOut chan []byte
	chErr chan []byte

	// respond answers one command; returning true means the child
	// exits (both streams close).
	respond func(cmd string, out, errOut chan<- []byte) (exit bool)

	mu       sync.Mutex
	pending  bytes.Buffer
	received []string
	dead     bool
}

func newFakeChild(
	respond func(cmd string, out, errOut chan<- []byte) bool) *fakeChild {
	return &fakeChild{
		// Big buffers; a test child never produces enough to block.
		chOut:   make(chan []byte, 10000),
		chErr:   make(chan []byte, 10000),
		respond: respond,
	}
}

// process wraps the fake child in the handle shape the controller
// expects.  There's no real subprocess behind it, so Reap and Kill
// are no-ops.
func (f *fakeChild) process() *pumper.Process {
	return &pumper.Process{
		StdIn: f,
		Out:   f.chOut,
		Err:   f.chErr,
	}
}

// emitOut pushes raw bytes onto the child's stdout, e.g. a banner.
func (f *fakeChild) emitOut(s string) {
	f.chOut <- []byte(s)
}

// emitErr pushes raw bytes onto the child's stderr.
func (f *fakeChild) emitErr(s string) {
	f.chErr <- []byte(s)
}

// commands returns every command line received so far, in order.
func (f *fakeChild) commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.received...)
}

// Write is the child's stdin.  Writing to an exited child fails the
// way a closed pipe does.
func (f *fakeChild) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dead {
		return 0, os.ErrClosed
	}
	f.pending.Write(p)
	for {
		data := f.pending.String()
		i := strings.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		cmd := data[:i]
		f.pending.Next(i + 1)
		f.received = append(f.received, cmd)
		if f.respond(cmd, f.chOut, f.chErr) {
			f.exitLocked()
			break
		}
	}
	return len(p), nil
}

func (f *fakeChild) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.dead {
		f.exitLocked()
	}
	return nil
}

func (f *fakeChild) exitLocked() {
	f.dead = true
	close(f.chOut)
	close(f.chErr)
}
