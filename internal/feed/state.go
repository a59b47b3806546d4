package feed

import "fmt"

// State is a Feed's position in its lifecycle.
type State int

const (
	StateLoading State = iota
	StateLoaded
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// MarshalText encodes the state as its lowercase name.
func (s State) MarshalText() ([]byte, error) {
	switch s {
	case StateLoading, StateLoaded, StateError:
		return []byte(s.String()), nil
	default:
		return nil, fmt.Errorf("invalid feed state %d", int(s))
	}
}
