package promptrunner

import (
	"fmt"
	"io"
	"regexp"
	"time"
)

// SyncResult holds the output captured during one prompt wait,
// attributed to its stream of origin.
type SyncResult struct {
	Out    []byte
	Err    []byte
	OutEOS bool
}

// Synchronizer runs one prompt wait at a time: a worker draining
// stderr with no stop pattern, concurrently with a worker draining
// stdout until the prompt matches.  Draining both streams at once is
// what keeps a chatty subprocess from deadlocking the parent; a tool
// that fills its stderr pipe before prompting on stdout would block
// forever against a parent reading only stdout.
//
// The sinks are injected rather than taken from package globals so
// the whole thing is testable without capturing real process output.
type Synchronizer struct {
	drainOut *StreamDrainer
	drainErr *StreamDrainer
	sinkOut  io.Writer
	sinkErr  io.Writer
	fault    <-chan error
}

// NewSynchronizer returns a Synchronizer over the two drainers.
// The fault channel may be nil when there's no pump behind the
// drainers (as in tests with bare channels).
func NewSynchronizer(
	drainOut, drainErr *StreamDrainer,
	sinkOut, sinkErr io.Writer,
	fault <-chan error,
) *Synchronizer {
	return &Synchronizer{
		drainOut: drainOut,
		drainErr: drainErr,
		sinkOut:  sinkOut,
		sinkErr:  sinkErr,
		fault:    fault,
	}
}

// Wait blocks until the subprocess' stdout matches the prompt (or
// ends, or the timeout passes; zero means wait forever).  Only then
// is the stderr worker cancelled and joined, so the reported stderr
// is a complete snapshot taken after the prompt was seen.  Captures
// are flushed to the sinks - stderr first, then stdout, each as one
// block write - even on the timeout and fault paths, so operators
// see the subprocess' last words.
func (s *Synchronizer) Wait(
	prompt *regexp.Regexp, timeout time.Duration) (SyncResult, error) {
	var res SyncResult
	if prompt == nil {
		return res, ErrNoPrompt
	}

	cancelErr := make(chan struct{})
	chErrRes := make(chan Result, 1)
	go func() { chErrRes <- s.drainErr.Drain(nil, cancelErr) }()

	cancelOut := make(chan struct{})
	chOutRes := make(chan Result, 1)
	go func() { chOutRes <- s.drainOut.Drain(prompt, cancelOut) }()

	var chTick <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		chTick = timer.C
	}

	var err error
	logger.Printf("sync; awaiting prompt %q", prompt)
	select {
	case rOut := <-chOutRes:
		res.Out, res.OutEOS = rOut.Text, rOut.EOS
		if rOut.Matched {
			logger.Printf("sync; got prompt")
		} else {
			logger.Printf("sync; stdOut ended before prompt")
		}
	case fault := <-s.fault:
		logger.Printf("sync; pump fault: %s", fault.Error())
		err = fault
		close(cancelOut)
		rOut := <-chOutRes
		res.Out, res.OutEOS = rOut.Text, rOut.EOS
	case <-chTick:
		logger.Printf("sync; no prompt after %s", timeout)
		err = fmt.Errorf(
			"%w; no prompt matching %q after %s", ErrPromptTimeout, prompt, timeout)
		close(cancelOut)
		rOut := <-chOutRes
		res.Out, res.OutEOS = rOut.Text, rOut.EOS
	}

	// The stderr worker is joined only after the stdout worker is done.
	close(cancelErr)
	rErr := <-chErrRes
	res.Err = rErr.Text

	if reportErr := s.report(&res); reportErr != nil && err == nil {
		err = reportErr
	}
	return res, err
}

// report forwards the captures to the process-wide sinks.
func (s *Synchronizer) report(res *SyncResult) error {
	if len(res.Err) > 0 && s.sinkErr != nil {
		if _, err := s.sinkErr.Write(res.Err); err != nil {
			return fmt.Errorf("forwarding stdErr capture; %w", err)
		}
	}
	if len(res.Out) > 0 && s.sinkOut != nil {
		if _, err := s.sinkOut.Write(res.Out); err != nil {
			return fmt.Errorf("forwarding stdOut capture; %w", err)
		}
	}
	return nil
}
