package maze_test

import (
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mazesim/internal/maze"
)

func mustGrid(text string) *maze.Grid {
	g, err := maze.Parse(strings.NewReader(text))
	Expect(err).NotTo(HaveOccurred())
	return g
}

var _ = Describe("Build", func() {
	It("emits one descriptor per open cell", func() {
		s, err := maze.Build(mustGrid(sample))
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Len()).To(Equal(8))

		seen := map[maze.Position]bool{}
		for _, c := range s.Cells() {
			Expect(seen[c.Position]).To(BeFalse(), "duplicate %v", c.Position)
			seen[c.Position] = true
		}
		Expect(s.IsOpen(maze.Position{Row: 1, Col: 1})).To(BeFalse())
	})

	It("hands out copies of its descriptors", func() {
		s, err := maze.Build(mustGrid(sample))
		Expect(err).NotTo(HaveOccurred())

		cells := s.Cells()
		cells[0].Marker = maze.MarkerEnd
		cells[0].Walls = maze.WallMask{}

		c, ok := s.Cell(s.Start())
		Expect(ok).To(BeTrue())
		Expect(c.Marker).To(Equal(maze.MarkerStart))
		Expect(s.Cells()[0]).To(Equal(c))
	})

	It("marks the endpoints and reports the start", func() {
		s, err := maze.Build(mustGrid(sample))
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Start()).To(Equal(maze.Position{Row: 0, Col: 0}))

		end, ok := s.End()
		Expect(ok).To(BeTrue())
		Expect(end).To(Equal(maze.Position{Row: 0, Col: 2}))

		c, ok := s.Cell(s.Start())
		Expect(ok).To(BeTrue())
		Expect(c.Marker).To(Equal(maze.MarkerStart))
		Expect(c.Walls).To(Equal(maze.WallMask{true, false, true, false}))

		starts := 0
		for _, c := range s.Cells() {
			if c.Marker == maze.MarkerStart {
				starts++
			}
		}
		Expect(starts).To(Equal(1))
	})

	It("allows a maze without an end", func() {
		s, err := maze.Build(mustGrid("1\n2\nsx\n"))
		Expect(err).NotTo(HaveOccurred())
		_, ok := s.End()
		Expect(ok).To(BeFalse())
	})

	It("fails without a start instead of defaulting to the origin", func() {
		_, err := maze.Build(mustGrid("1\n2\nxe\n"))
		Expect(err).To(MatchError(maze.ErrNoStartMarker))
	})

	It("lists every start when there are several", func() {
		_, err := maze.Build(mustGrid("2\n2\nsx\nxs\n"))
		Expect(err).To(MatchError(maze.ErrMultipleStartMarkers))

		var me *maze.MarkerError
		Expect(errors.As(err, &me)).To(BeTrue())
		Expect(me.Positions).To(ConsistOf(
			maze.Position{Row: 0, Col: 1},
			maze.Position{Row: 1, Col: 0},
		))
	})

	It("rejects more than one end", func() {
		_, err := maze.Build(mustGrid("1\n3\nese\n"))
		Expect(err).To(MatchError(maze.ErrMultipleEndMarkers))
	})
})

var _ = Describe("bundled layouts", func() {
	It("loads the default maze", func() {
		scene, err := maze.LoadScene("../../mazes/maze_layout_1.txt")
		Expect(err).NotTo(HaveOccurred())
		Expect(scene.Rows).To(Equal(9))
		Expect(scene.Cols).To(Equal(9))
		Expect(scene.Start()).To(Equal(maze.Position{Row: 0, Col: 1}))

		end, ok := scene.End()
		Expect(ok).To(BeTrue())
		Expect(end).To(Equal(maze.Position{Row: 7, Col: 7}))
	})

	It("loads the corridor", func() {
		scene, err := maze.LoadScene("../../mazes/corridor.txt")
		Expect(err).NotTo(HaveOccurred())
		Expect(scene.Len()).To(Equal(7))
		Expect(scene.Start()).To(Equal(maze.Position{Row: 1, Col: 0}))
	})
})
