package promptrunner

import (
	"errors"
	"fmt"
)

// ErrNoPrompt means a prompt wait was attempted with no prompt
// pattern configured.  Waiting without a pattern would hang forever,
// so it's rejected up front.
var ErrNoPrompt = errors.New("no prompt pattern configured")

// ErrPromptTimeout means the subprocess emitted no matching prompt
// within the configured PromptTimeout.
var ErrPromptTimeout = errors.New("prompt wait timed out")

// DuplicateActionError means an action (or alias) name was defined
// twice on the same ActionSet.
type DuplicateActionError struct {
	Name string
}

func (e *DuplicateActionError) Error() string {
	return fmt.Sprintf("action %q already defined", e.Name)
}

// UnknownActionError means an invocation (or an alias target,
// resolved at call time) named an action that was never defined.
type UnknownActionError struct {
	Name string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("no action named %q", e.Name)
}
