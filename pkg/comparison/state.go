package comparison

// State describes where the current view came from.
type State int

const (
	// StateUnloaded means Load has not run yet.
	StateUnloaded State = iota
	// StateSynced means the last Load returned the remote copy.
	StateSynced
	// StateLocalOnly means the last Load fell back to the local copy.
	StateLocalOnly
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateSynced:
		return "synced"
	case StateLocalOnly:
		return "local_only"
	default:
		return "unloaded"
	}
}

// Loaded reports whether Load has run at least once.
func (s State) Loaded() bool {
	return s != StateUnloaded
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name. Unknown names decode as StateUnloaded.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "synced":
		*s = StateSynced
	case "local_only":
		*s = StateLocalOnly
	default:
		*s = StateUnloaded
	}
	return nil
}
