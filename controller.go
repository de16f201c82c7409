package promptrunner

import (
	"regexp"
	"sync"

	"github.com/monopole/promptrunner/pumper"
)

// Controller drives one interactive subprocess through its prompts.
//
// Instead of a state variable and branching, each state has a
// distinct implementation behind a mutex, the states sharing common
// code via ctlInfra.  The mutex makes a Controller safe to use from
// multiple goroutines, though one controlling goroutine is the
// intended shape: only it writes to the subprocess' stdin.
type Controller struct {
	infra *ctlInfra
	state ctlState
	mutex sync.Mutex
}

// NewController returns a Controller in the unlaunched state over the
// given action table.  The subprocess described by the Parameters is
// not spawned until Execute.
func NewController(actions *ActionSet, p Parameters) *Controller {
	return NewControllerRaw(
		actions, p,
		func() (*pumper.Process, error) {
			if err := p.Validate(); err != nil {
				return nil, err
			}
			return pumper.Start(&p.Params)
		})
}

// NewControllerRaw is NewController with an injected process maker,
// which tests swap for hand-built channels not attached to a real
// subprocess.
func NewControllerRaw(
	actions *ActionSet, p Parameters, f processMakerF) *Controller {
	p.setDefaults()
	infra := &ctlInfra{
		actions:   actions,
		params:    p,
		procMaker: f,
	}
	return &Controller{
		infra: infra,
		state: &ctlStateUnlaunched{infra: infra},
	}
}

// Invoke renders the named action (aliases resolve here, at call
// time) and enqueues the command.  Before launch that is all; after
// launch the queue is drained immediately, so the call blocks until
// the subprocess prompts again.
func (c *Controller) Invoke(name string, args ...string) (err error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.state, err = c.state.subInvoke(name, args)
	return
}

// Action returns the named action as a callable, for call sites that
// prefer fn("arg") over Invoke("name", "arg").
func (c *Controller) Action(name string) func(args ...string) error {
	return func(args ...string) error {
		return c.Invoke(name, args...)
	}
}

// Execute spawns the subprocess, waits for its banner prompt, and
// drains the queued actions.  With wait true it then hands control
// to the operator and blocks until the subprocess exits; with wait
// false it returns immediately after the queue drains, leaving a
// live handle for further Invoke calls.
func (c *Controller) Execute(wait bool) (err error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.state, err = c.state.subExecute(wait)
	return
}

// Close gracefully ends a launched subprocess: the ExitCommand (if
// configured), stdin closure, and an idempotent reap.  Closing an
// unlaunched or already-exited controller is a no-op.
func (c *Controller) Close() (err error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.state, err = c.state.subClose()
	return
}

// SetPrompt replaces the prompt pattern.  Set it before Execute;
// changing it afterwards affects subsequent waits.
func (c *Controller) SetPrompt(prompt *regexp.Regexp) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.infra.params.Prompt = prompt
}

// Prompt returns the current prompt pattern.
func (c *Controller) Prompt() *regexp.Regexp {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.infra.params.Prompt
}

// ProcessRunner exposes the live subprocess handle for callers doing
// manual, out-of-band sequencing after Execute(false).  It's nil
// before launch.
func (c *Controller) ProcessRunner() *pumper.Process {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.infra.proc
}

// QueuedCommands returns a copy of the commands awaiting execution.
func (c *Controller) QueuedCommands() []string {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return append([]string(nil), c.infra.queue...)
}
