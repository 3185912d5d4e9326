package maze_test

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing/iotest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mazesim/internal/maze"
)

const sample = "3\n3\nxxx\nxox\nsxe\n"

func randomGrid(rng *rand.Rand) *maze.Grid {
	rows, cols := 1+rng.Intn(8), 1+rng.Intn(8)
	syms := []maze.Symbol{maze.Open, maze.Wall, maze.Start, maze.End}
	cells := make([][]maze.Symbol, rows)
	for i := range cells {
		cells[i] = make([]maze.Symbol, cols)
		for j := range cells[i] {
			cells[i][j] = syms[rng.Intn(len(syms))]
		}
	}
	g, err := maze.NewGrid(cells)
	Expect(err).NotTo(HaveOccurred())
	return g
}

var _ = Describe("Parse", func() {
	It("stores rows bottom-up", func() {
		g, err := maze.Parse(strings.NewReader(sample))
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Rows()).To(Equal(3))
		Expect(g.Cols()).To(Equal(3))

		Expect(g.At(0, 0)).To(Equal(maze.Start))
		Expect(g.At(0, 1)).To(Equal(maze.Open))
		Expect(g.At(0, 2)).To(Equal(maze.End))
		Expect(g.At(1, 1)).To(Equal(maze.Wall))
		Expect(g.At(2, 0)).To(Equal(maze.Open))
	})

	It("accepts CRLF line endings and padded dimensions", func() {
		g, err := maze.Parse(strings.NewReader(" 2 \r\n2\r\nso\r\nxe\r\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(g.At(1, 0)).To(Equal(maze.Start))
		Expect(g.At(0, 1)).To(Equal(maze.End))
	})

	It("ignores characters past the declared width and trailing lines", func() {
		g, err := maze.Parse(strings.NewReader("1\n2\nsxoooo\nnot a row\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Cols()).To(Equal(2))
		Expect(g.At(0, 1)).To(Equal(maze.Open))
	})

	DescribeTable("rejects malformed input",
		func(input string) {
			_, err := maze.Parse(strings.NewReader(input))
			Expect(err).To(MatchError(maze.ErrMalformedMazeFile))

			var pe *maze.ParseError
			Expect(errors.As(err, &pe)).To(BeTrue())
			Expect(pe.Line).To(BeNumerically(">", 0))
		},
		Entry("empty input", ""),
		Entry("non-integer rows", "three\n3\nxxx\n"),
		Entry("non-integer cols", "1\nx\nxxx\n"),
		Entry("missing column line", "1\n"),
		Entry("zero rows", "0\n3\n"),
		Entry("negative cols", "1\n-2\nxx\n"),
		Entry("short row", "2\n3\nsxx\nxx\n"),
		Entry("missing row", "3\n3\nsxx\nxxx\n"),
		Entry("blank row", "2\n2\nsx\n\n"),
		Entry("unknown symbol", "1\n3\nsx?\n"),
		Entry("row count far beyond the rows present", "4000000000\n1\nx\n"),
		Entry("row longer than the line limit", "1\n1\n"+strings.Repeat("x", 1<<20+1)+"\n"),
	)

	It("treats unknown symbols as walls when asked", func() {
		g, err := maze.Parse(strings.NewReader("1\n3\nsx#\n"), maze.WithUnknownSymbols(maze.UnknownAsWall))
		Expect(err).NotTo(HaveOccurred())
		Expect(g.At(0, 2)).To(Equal(maze.Wall))
	})

	It("reports read failures as unavailable", func() {
		_, err := maze.Parse(iotest.ErrReader(errors.New("disk gone")))
		Expect(err).To(MatchError(maze.ErrMazeFileUnavailable))
	})

	It("round-trips generated grids", func() {
		rng := rand.New(rand.NewSource(7))
		for n := 0; n < 200; n++ {
			g := randomGrid(rng)
			back, err := maze.Parse(strings.NewReader(g.Format()))
			Expect(err).NotTo(HaveOccurred())
			Expect(back).To(Equal(g))
		}
	})

	It("writes the topmost row first", func() {
		g, err := maze.Parse(strings.NewReader(sample))
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Format()).To(Equal(sample))
	})
})

var _ = Describe("Load", func() {
	It("wraps missing files as unavailable", func() {
		_, err := maze.Load(filepath.Join(GinkgoT().TempDir(), "nope.txt"))
		Expect(err).To(MatchError(maze.ErrMazeFileUnavailable))
	})

	It("reads a file from disk", func() {
		path := filepath.Join(GinkgoT().TempDir(), "maze.txt")
		Expect(os.WriteFile(path, []byte(sample), 0644)).To(Succeed())

		g, err := maze.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.At(0, 0)).To(Equal(maze.Start))
	})

	It("keeps the malformed sentinel through the path prefix", func() {
		path := filepath.Join(GinkgoT().TempDir(), "bad.txt")
		Expect(os.WriteFile(path, []byte("2\n2\nsx\n"), 0644)).To(Succeed())

		_, err := maze.Load(path)
		Expect(err).To(MatchError(maze.ErrMalformedMazeFile))
		Expect(err.Error()).To(ContainSubstring("bad.txt"))
	})
})

var _ = Describe("NewGrid", func() {
	It("rejects ragged rows", func() {
		_, err := maze.NewGrid([][]maze.Symbol{{maze.Open, maze.Open}, {maze.Open}})
		Expect(err).To(MatchError(maze.ErrMalformedMazeFile))
	})

	It("rejects an empty grid", func() {
		_, err := maze.NewGrid(nil)
		Expect(err).To(HaveOccurred())
	})
})
