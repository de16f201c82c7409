package promptrunner

import (
	"fmt"
)

// ctlStateLaunched implements the state with a live subprocess.
// Action invocations run immediately.
type ctlStateLaunched struct {
	infra *ctlInfra
}

func (st *ctlStateLaunched) subInvoke(
	name string, args []string) (ctlState, error) {
	if err := st.infra.enqueue(name, args); err != nil {
		return st, err
	}
	if err := st.infra.runQueue(); err != nil {
		st.infra.abandon()
		return &ctlStateExited{infra: st.infra}, err
	}
	return st, nil
}

func (st *ctlStateLaunched) subExecute(_ bool) (ctlState, error) {
	return st, fmt.Errorf("execute called, but controller already launched")
}

func (st *ctlStateLaunched) subClose() (ctlState, error) {
	return &ctlStateExited{infra: st.infra}, st.infra.shutdown()
}

// finishSession runs the interactive handoff and then shuts the
// subprocess down, landing in the exited state either way.
func (st *ctlStateLaunched) finishSession() (ctlState, error) {
	if err := st.infra.userSession(); err != nil {
		st.infra.abandon()
		return &ctlStateExited{infra: st.infra}, err
	}
	return &ctlStateExited{infra: st.infra}, st.infra.shutdown()
}
