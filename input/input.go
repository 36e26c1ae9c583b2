package input

type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyShoot
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyShoot:
		return "shoot"
	default:
		return "none"
	}
}

// KeyEvent is a key-down (Down true) or key-up coming from the keyboard source
type KeyEvent struct {
	Key  Key
	Down bool
}

// State tracks the movement keys currently held. It is mutated by key handlers
// and read once per frame.
type State struct {
	Up   bool
	Down bool
}

// Apply updates the held flags and reports whether the event changed them.
// Keys other than up/down are ignored.
func (s *State) Apply(ev KeyEvent) bool {
	switch ev.Key {
	case KeyUp:
		changed := s.Up != ev.Down
		s.Up = ev.Down
		return changed
	case KeyDown:
		changed := s.Down != ev.Down
		s.Down = ev.Down
		return changed
	}
	return false
}

func (s State) Any() bool {
	return s.Up || s.Down
}

// Direction is -1 for up, +1 for down, 0 when nothing or both are held
func (s State) Direction() float64 {
	dir := 0.0
	if s.Up {
		dir--
	}
	if s.Down {
		dir++
	}
	return dir
}

func (s *State) Release() {
	s.Up = false
	s.Down = false
}
