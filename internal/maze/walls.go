package maze

import "strings"

// Side indexes a WallMask. The order is positional and renderers rely on it.
type Side int

const (
	SideRowMinus Side = iota // neighbor (i-1, j)
	SideRowPlus              // neighbor (i+1, j)
	SideColMinus             // neighbor (i, j-1)
	SideColPlus              // neighbor (i, j+1)
)

// NumSides is the number of sides of a cell.
const NumSides = 4

// Sides lists every side in mask order.
var Sides = [NumSides]Side{SideRowMinus, SideRowPlus, SideColMinus, SideColPlus}

// Offset returns the (row, col) step toward the neighbor on side s.
func (s Side) Offset() (dr, dc int) {
	switch s {
	case SideRowMinus:
		return -1, 0
	case SideRowPlus:
		return 1, 0
	case SideColMinus:
		return 0, -1
	default:
		return 0, 1
	}
}

// Opposite returns the side facing back from the neighbor.
func (s Side) Opposite() Side {
	return s ^ 1
}

func (s Side) String() string {
	switch s {
	case SideRowMinus:
		return "-row"
	case SideRowPlus:
		return "+row"
	case SideColMinus:
		return "-col"
	default:
		return "+col"
	}
}

// WallMask holds one flag per side: true is a solid wall, false an open
// passage to the neighbor.
type WallMask [NumSides]bool

func (m WallMask) Has(s Side) bool { return m[s] }

// Count returns the number of solid sides.
func (m WallMask) Count() int {
	n := 0
	for _, w := range m {
		if w {
			n++
		}
	}
	return n
}

// String renders the mask as four digits in side order, e.g. "1010".
func (m WallMask) String() string {
	var b strings.Builder
	for _, w := range m {
		if w {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// ResolveWalls computes the wall mask of the cell at (row, col). A side is open
// only when a neighbor exists on that side and is not a Wall.
func ResolveWalls(g *Grid, row, col int) WallMask {
	m := WallMask{true, true, true, true}
	for _, s := range Sides {
		dr, dc := s.Offset()
		r, c := row+dr, col+dc
		if g.InBounds(r, c) && g.At(r, c).IsOpen() {
			m[s] = false
		}
	}
	return m
}

// Edge returns the floor-plane segment shared by the cell at p and its
// neighbor on side s, in world units where cell centers sit on integer
// coordinates.
func (s Side) Edge(p Position) (x0, z0, x1, z1 float64) {
	dr, dc := s.Offset()
	cx := float64(p.Row) + float64(dr)/2
	cz := float64(p.Col) + float64(dc)/2
	if dr != 0 {
		return cx, cz - 0.5, cx, cz + 0.5
	}
	return cx - 0.5, cz, cx + 0.5, cz
}
