package promptrunner

// ctlState is the internal representation of Controller state.
// Every Controller state must implement ctlState.
type ctlState interface {
	subInvoke(name string, args []string) (ctlState, error)
	subExecute(wait bool) (ctlState, error)
	subClose() (ctlState, error)
}
