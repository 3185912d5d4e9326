package maze

import "fmt"

// Symbol is the content of one grid cell.
type Symbol uint8

const (
	Open Symbol = iota
	Wall
	Start
	End
)

// UnknownPolicy decides what the parser does with characters outside o/x/s/e.
type UnknownPolicy uint8

const (
	// UnknownReject fails the parse with ErrMalformedMazeFile.
	UnknownReject UnknownPolicy = iota
	// UnknownAsWall stores the cell as Wall.
	UnknownAsWall
)

// ParseUnknownPolicy maps a config value ("reject", "wall") to a policy.
func ParseUnknownPolicy(s string) (UnknownPolicy, error) {
	switch s {
	case "", "reject":
		return UnknownReject, nil
	case "wall":
		return UnknownAsWall, nil
	default:
		return UnknownReject, fmt.Errorf("unknown symbol policy %q (want reject or wall)", s)
	}
}

func (p UnknownPolicy) String() string {
	if p == UnknownAsWall {
		return "wall"
	}
	return "reject"
}

// SymbolFromRune maps a file character to a Symbol.
func SymbolFromRune(r rune) (Symbol, bool) {
	switch r {
	case 'x':
		return Open, true
	case 'o':
		return Wall, true
	case 's':
		return Start, true
	case 'e':
		return End, true
	}
	return Open, false
}

// Rune returns the file character for s.
func (s Symbol) Rune() rune {
	switch s {
	case Wall:
		return 'o'
	case Start:
		return 's'
	case End:
		return 'e'
	default:
		return 'x'
	}
}

// IsOpen reports whether the cell can be walked through. Start and End are open.
func (s Symbol) IsOpen() bool { return s != Wall }

// Marker returns the endpoint marker carried by s, or NoMarker.
func (s Symbol) Marker() EndpointKind {
	switch s {
	case Start:
		return MarkerStart
	case End:
		return MarkerEnd
	}
	return NoMarker
}

func (s Symbol) String() string {
	switch s {
	case Wall:
		return "wall"
	case Start:
		return "start"
	case End:
		return "end"
	default:
		return "open"
	}
}
