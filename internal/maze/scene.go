package maze

// EndpointKind tags a cell that carries a start or end marker.
type EndpointKind uint8

const (
	NoMarker EndpointKind = iota
	MarkerStart
	MarkerEnd
)

func (k EndpointKind) String() string {
	switch k {
	case MarkerStart:
		return "start"
	case MarkerEnd:
		return "end"
	}
	return ""
}

// CellDescriptor is one renderable open cell. Row and Col double as the world
// offset of the cell (unit cell size).
type CellDescriptor struct {
	Position
	Walls  WallMask
	Marker EndpointKind
}

// HasMarker reports whether the cell carries a start or end marker.
func (c CellDescriptor) HasMarker() bool { return c.Marker != NoMarker }

// Scene is the read-only set of open cells of a loaded maze.
type Scene struct {
	Rows, Cols int

	cells  []CellDescriptor

	start  Position
	end    Position
	hasEnd bool
	index  map[Position]int
}

// Build walks g in row-major order and emits a descriptor for every non-wall
// cell. Exactly one start marker and at most one end marker are accepted.
func Build(g *Grid) (*Scene, error) {
	s := &Scene{
		Rows:  g.Rows(),
		Cols:  g.Cols(),
		cells: make([]CellDescriptor, 0, g.Rows()*g.Cols()),
		index: make(map[Position]int),
	}

	var starts, ends []Position
	for i := 0; i < g.Rows(); i++ {
		for j := 0; j < g.Cols(); j++ {
			sym := g.At(i, j)
			if !sym.IsOpen() {
				continue
			}
			pos := Position{Row: i, Col: j}
			cell := CellDescriptor{
				Position: pos,
				Walls:    ResolveWalls(g, i, j),
				Marker:   sym.Marker(),
			}
			switch cell.Marker {
			case MarkerStart:
				starts = append(starts, pos)
			case MarkerEnd:
				ends = append(ends, pos)
			}
			s.index[pos] = len(s.cells)
			s.cells = append(s.cells, cell)
		}
	}

	switch {
	case len(starts) == 0:
		return nil, &MarkerError{Kind: MarkerStart, Wrapped: ErrNoStartMarker}
	case len(starts) > 1:
		return nil, &MarkerError{Kind: MarkerStart, Positions: starts, Wrapped: ErrMultipleStartMarkers}
	case len(ends) > 1:
		return nil, &MarkerError{Kind: MarkerEnd, Positions: ends, Wrapped: ErrMultipleEndMarkers}
	}

	s.start = starts[0]
	if len(ends) == 1 {
		s.end, s.hasEnd = ends[0], true
	}
	return s, nil
}

// LoadScene loads the maze file at path and builds its scene.
func LoadScene(path string, opts ...Option) (*Scene, error) {
	g, err := Load(path, opts...)
	if err != nil {
		return nil, err
	}
	return Build(g)
}

// Start returns the coordinates of the start cell. Navigation begins there.
func (s *Scene) Start() Position { return s.start }

// End returns the end cell, if the maze has one.
func (s *Scene) End() (Position, bool) { return s.end, s.hasEnd }

// Cell looks up the descriptor at p. Wall cells are absent.
func (s *Scene) Cell(p Position) (CellDescriptor, bool) {
	i, ok := s.index[p]
	if !ok {
		return CellDescriptor{}, false
	}
	return s.cells[i], true
}

// IsOpen reports whether p is a walkable cell of the scene.
func (s *Scene) IsOpen(p Position) bool {
	_, ok := s.index[p]
	return ok
}

// Cells returns a copy of the descriptors in row-major order.
func (s *Scene) Cells() []CellDescriptor {
	out := make([]CellDescriptor, len(s.cells))
	copy(out, s.cells)
	return out
}

func (s *Scene) Len() int { return len(s.cells) }
