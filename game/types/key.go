package types

// KeyCode classifies a key read from the terminal.
type KeyCode int

const (
	KeyNone KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyRune
)

// Key is the result of a bounded-wait key read.
type Key struct {
	Code KeyCode
	Rune rune
}

// NoKey is returned when the read timed out.
var NoKey = Key{Code: KeyNone}

// RuneKey builds a character key.
func RuneKey(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

// Direction maps arrow keys onto a direction.
func (k Key) Direction() (Direction, bool) {
	switch k.Code {
	case KeyUp:
		return Up, true
	case KeyDown:
		return Down, true
	case KeyLeft:
		return Left, true
	case KeyRight:
		return Right, true
	default:
		return 0, false
	}
}

// Is reports whether k is one of the given characters.
func (k Key) Is(runes ...rune) bool {
	if k.Code != KeyRune {
		return false
	}
	for _, r := range runes {
		if k.Rune == r {
			return true
		}
	}
	return false
}
