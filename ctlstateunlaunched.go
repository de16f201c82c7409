package promptrunner

// ctlStateUnlaunched implements the state before the subprocess is
// spawned.  Action invocations merely enqueue.
type ctlStateUnlaunched struct {
	infra *ctlInfra
}

func (st *ctlStateUnlaunched) subInvoke(
	name string, args []string) (ctlState, error) {
	return st, st.infra.enqueue(name, args)
}

func (st *ctlStateUnlaunched) subExecute(wait bool) (ctlState, error) {
	if err := st.infra.infraLaunch(); err != nil {
		return st, err
	}
	launched := &ctlStateLaunched{infra: st.infra}
	if err := st.infra.runQueue(); err != nil {
		st.infra.abandon()
		return &ctlStateExited{infra: st.infra}, err
	}
	if !wait {
		// Fire-and-forget: the caller keeps a live handle and issues
		// actions over time.
		return launched, nil
	}
	return launched.finishSession()
}

func (st *ctlStateUnlaunched) subClose() (ctlState, error) {
	// Nothing running; nothing to do.
	return st, nil
}
