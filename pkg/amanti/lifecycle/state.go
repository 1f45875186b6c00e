package lifecycle

// State is one of Idle, Requesting, Success or Failed. Loading and the result
// modal are derived from it, so they can never be true at the same time.
type State interface {
	Name() string
	isState()
}

type Idle struct{}

type Requesting struct{}

type Success struct {
	Text string
}

type Failed struct {
	Err error
}

func (Idle) Name() string       { return "idle" }
func (Requesting) Name() string { return "requesting" }
func (Success) Name() string    { return "success" }
func (Failed) Name() string     { return "failed" }

func (Idle) isState()       {}
func (Requesting) isState() {}
func (Success) isState()    {}
func (Failed) isState()     {}
