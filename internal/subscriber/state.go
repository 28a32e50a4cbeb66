package subscriber

// State is the connection lifecycle state.
type State int

const (
	// StateConnecting means a transport dial is in progress.
	StateConnecting State = iota
	// StateConnected means the transport is open and messages flow.
	StateConnected
	// StateDisconnected means the transport dropped and a reconnect is pending.
	StateDisconnected
	// StateClosed is terminal and reachable only through Close.
	StateClosed
)

func getStateStrings() map[State]string {
	return map[State]string{
		StateConnecting:   "connecting",
		StateConnected:    "connected",
		StateDisconnected: "disconnected",
		StateClosed:       "closed",
	}
}

// String returns the string representation of the state.
func (s State) String() string {
	if name, ok := getStateStrings()[s]; ok {
		return name
	}
	return "unknown"
}

// canTransition is the authoritative transition table. Closed accepts no
// successor; every other transition follows the connect/disconnect cycle.
func canTransition(from, to State) bool {
	if from == StateClosed {
		return false
	}
	if to == StateClosed {
		return true
	}

	switch from {
	case StateConnecting:
		return to == StateConnected || to == StateDisconnected
	case StateConnected:
		return to == StateDisconnected
	case StateDisconnected:
		return to == StateConnecting
	default:
		return false
	}
}
