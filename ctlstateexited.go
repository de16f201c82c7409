package promptrunner

import (
	"fmt"
)

// ctlStateExited implements the terminal state: the subprocess is
// gone and the controller cannot be relaunched.
type ctlStateExited struct {
	infra *ctlInfra
}

func (st *ctlStateExited) subInvoke(
	_ string, _ []string) (ctlState, error) {
	return st, fmt.Errorf("invoke called, but subprocess has exited")
}

func (st *ctlStateExited) subExecute(_ bool) (ctlState, error) {
	return st, fmt.Errorf("execute called, but subprocess has exited")
}

func (st *ctlStateExited) subClose() (ctlState, error) {
	// Closing twice is fine; the reap already happened or the
	// process was abandoned.
	return st, nil
}
