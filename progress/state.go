package progress

// State is the lifecycle position of a progress run.
type State int

const (
	StateNone State = iota
	StatePlay
	StatePause
	StateCancel
	StateEnd
)

func (s State) String() string {
	switch s {
	case StateNone:
		return "none"
	case StatePlay:
		return "play"
	case StatePause:
		return "pause"
	case StateCancel:
		return "cancel"
	case StateEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Running reports whether a run is in flight (playing or paused).
func (s State) Running() bool {
	return s == StatePlay || s == StatePause
}
