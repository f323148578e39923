package pipeline

// State is a stage of a conversion run
type State int

const (
	StateIdle State = iota
	StateExtracting
	StateReflowing
	StateAnnotating
	StateRendering
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateIdle:       "idle",
	StateExtracting: "extracting",
	StateReflowing:  "reflowing",
	StateAnnotating: "annotating",
	StateRendering:  "rendering",
	StateDone:       "done",
	StateFailed:     "failed",
}

// String returns the lowercase state name
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transition can happen
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// next is the state that follows s on success
func (s State) next() State {
	switch s {
	case StateIdle:
		return StateExtracting
	case StateExtracting:
		return StateReflowing
	case StateReflowing:
		return StateAnnotating
	case StateAnnotating:
		return StateRendering
	case StateRendering:
		return StateDone
	default:
		return s
	}
}
