package maze

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const maxLineBytes = 1 << 20

// Position addresses a grid cell. Row is the stored (reversed) row index.
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Grid is an immutable rows x cols array of symbols. Row 0 is the last maze
// line of the source file.
type Grid struct {
	rows, cols int
	cells      [][]Symbol
}

// NewGrid copies rows into a Grid. rows[0] is grid row 0. Every row must have
// the same non-zero length.
func NewGrid(rows [][]Symbol) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: grid must have at least one row and one column", ErrMalformedMazeFile)
	}
	cols := len(rows[0])
	cells := make([][]Symbol, len(rows))
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrMalformedMazeFile, i, len(r), cols)
		}
		cells[i] = append([]Symbol(nil), r...)
	}
	return &Grid{rows: len(rows), cols: cols, cells: cells}, nil
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether (row, col) lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// At returns the symbol at (row, col). It panics outside the grid.
func (g *Grid) At(row, col int) Symbol {
	return g.cells[row][col]
}

type options struct {
	unknown UnknownPolicy
}

// Option configures Parse and Load.
type Option func(*options)

// WithUnknownSymbols sets the policy for characters outside o/x/s/e.
func WithUnknownSymbols(p UnknownPolicy) Option {
	return func(o *options) { o.unknown = p }
}

// Load opens path and parses it. Open and read failures wrap ErrMazeFileUnavailable.
func Load(path string, opts ...Option) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMazeFileUnavailable, err)
	}
	defer f.Close()

	g, err := Parse(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Parse reads the maze file format from r.
//
// The first maze line becomes the highest row index: rows are stored reversed
// so that increasing row index moves consistently along world X.
func Parse(r io.Reader, opts ...Option) (*Grid, error) {
	o := options{unknown: UnknownReject}
	for _, opt := range opts {
		opt(&o)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)
	line := 0

	next := func() (string, bool, error) {
		if !sc.Scan() {
			err := sc.Err()
			if errors.Is(err, bufio.ErrTooLong) {
				return "", false, malformed(line+1, "line longer than %d bytes", maxLineBytes)
			}
			if err != nil {
				return "", false, fmt.Errorf("%w: %v", ErrMazeFileUnavailable, err)
			}
			return "", false, nil
		}
		line++
		return strings.TrimSuffix(sc.Text(), "\r"), true, nil
	}

	dim := func(name string) (int, error) {
		text, ok, err := next()
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, malformed(line+1, "missing %s", name)
		}
		n, err := strconv.Atoi(strings.TrimSpace(text))
		if err != nil {
			return 0, malformed(line, "%s %q is not an integer", name, text)
		}
		if n <= 0 {
			return 0, malformed(line, "%s must be positive, got %d", name, n)
		}
		return n, nil
	}

	rows, err := dim("row count")
	if err != nil {
		return nil, err
	}
	cols, err := dim("column count")
	if err != nil {
		return nil, err
	}

	// Grown as rows arrive: the declared count is not trusted for allocation.
	var cells [][]Symbol
	for k := 0; k < rows; k++ {
		text, ok, err := next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, malformed(line+1, "expected %d maze rows, found %d", rows, k)
		}
		runes := []rune(text)
		if len(runes) < cols {
			return nil, malformed(line, "row has %d characters, want %d", len(runes), cols)
		}

		row := make([]Symbol, cols)
		for j := 0; j < cols; j++ {
			sym, known := SymbolFromRune(runes[j])
			if !known {
				if o.unknown == UnknownReject {
					return nil, malformed(line, "unknown symbol %q at column %d", runes[j], j)
				}
				sym = Wall
			}
			row[j] = sym
		}
		cells = append(cells, row)
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}

	return &Grid{rows: rows, cols: cols, cells: cells}, nil
}

// WriteTo serializes g in the file format Parse reads.
func (g *Grid) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64
	write := func(s string) error {
		m, err := bw.WriteString(s)
		n += int64(m)
		return err
	}

	if err := write(fmt.Sprintf("%d\n%d\n", g.rows, g.cols)); err != nil {
		return n, err
	}
	buf := make([]rune, g.cols)
	for i := g.rows - 1; i >= 0; i-- {
		for j, s := range g.cells[i] {
			buf[j] = s.Rune()
		}
		if err := write(string(buf) + "\n"); err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// Format returns the file representation of g.
func (g *Grid) Format() string {
	var b strings.Builder
	g.WriteTo(&b)
	return b.String()
}
