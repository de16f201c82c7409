package promptrunner

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"time"

	"github.com/monopole/promptrunner/pumper"
)

// Parameters is a bag of parameters for a Controller instance.
// See individual fields for their explanation.
type Parameters struct {
	pumper.Params

	// Prompt matches the subprocess' input-ready signal, e.g.
	// `\(fdb\) $`.  It may be an alternation covering several prompt
	// forms (a normal prompt and a yes/no confirmation prompt).
	// It must be set before Execute; a controller with no prompt
	// pattern would wait forever, so Validate rejects it.
	Prompt *regexp.Regexp

	// PromptTimeout bounds each individual prompt wait.
	// Zero means wait indefinitely, which is the right choice for a
	// debugger session where a command may legitimately run for hours.
	PromptTimeout time.Duration

	// ExitCommand, if non-empty, is sent to the subprocess during
	// graceful shutdown, before its stdin is closed.
	// Example: "quit"
	ExitCommand string

	// SinkOut receives the stdout captured during each prompt wait,
	// as one block write per wait.  Defaults to os.Stdout.
	SinkOut io.Writer

	// SinkErr is like SinkOut, for stderr.  Defaults to os.Stderr.
	SinkErr io.Writer

	// Input is where operator commands come from during the
	// interactive handoff.  Defaults to os.Stdin.
	Input io.Reader

	// Halt, if non-nil, is consulted after every successfully
	// synchronized command; returning true stops queue processing
	// and the remaining queued commands are discarded.
	Halt func(command string) bool
}

// Validate returns an error if there's a problem in the Parameters.
func (p *Parameters) Validate() error {
	p.setDefaults()
	if err := p.Params.Validate(); err != nil {
		return err
	}
	if p.Prompt == nil {
		return fmt.Errorf("problem in Parameters; %w", ErrNoPrompt)
	}
	return nil
}

func (p *Parameters) setDefaults() {
	if p.SinkOut == nil {
		p.SinkOut = os.Stdout
	}
	if p.SinkErr == nil {
		p.SinkErr = os.Stderr
	}
	if p.Input == nil {
		p.Input = os.Stdin
	}
}
