package maze_test

import (
	"math/rand"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mazesim/internal/maze"
)

var _ = Describe("ResolveWalls", func() {
	var g *maze.Grid

	BeforeEach(func() {
		var err error
		g, err = maze.Parse(strings.NewReader(sample))
		Expect(err).NotTo(HaveOccurred())
	})

	DescribeTable("derives each side from its neighbor",
		func(row, col int, want maze.WallMask) {
			Expect(maze.ResolveWalls(g, row, col)).To(Equal(want))
		},
		Entry("start corner", 0, 0, maze.WallMask{true, false, true, false}),
		Entry("bottom middle", 0, 1, maze.WallMask{true, true, false, false}),
		Entry("end corner", 0, 2, maze.WallMask{true, false, false, true}),
		Entry("left of pillar", 1, 0, maze.WallMask{false, false, true, true}),
		Entry("right of pillar", 1, 2, maze.WallMask{false, false, true, true}),
		Entry("top left", 2, 0, maze.WallMask{false, true, true, false}),
		Entry("top middle", 2, 1, maze.WallMask{true, true, false, false}),
		Entry("top right", 2, 2, maze.WallMask{false, true, false, true}),
	)

	It("closes every side of an isolated cell", func() {
		single, err := maze.NewGrid([][]maze.Symbol{{maze.Start}})
		Expect(err).NotTo(HaveOccurred())
		Expect(maze.ResolveWalls(single, 0, 0)).To(Equal(maze.WallMask{true, true, true, true}))
	})

	It("is mutual between adjacent open cells", func() {
		rng := rand.New(rand.NewSource(11))
		for n := 0; n < 100; n++ {
			rg := randomGrid(rng)
			for i := 0; i < rg.Rows(); i++ {
				for j := 0; j < rg.Cols(); j++ {
					if !rg.At(i, j).IsOpen() {
						continue
					}
					m := maze.ResolveWalls(rg, i, j)
					for _, s := range maze.Sides {
						dr, dc := s.Offset()
						r, c := i+dr, j+dc
						if !rg.InBounds(r, c) {
							Expect(m.Has(s)).To(BeTrue(), "off-grid side %v of (%d,%d)", s, i, j)
							continue
						}
						if !rg.At(r, c).IsOpen() {
							Expect(m.Has(s)).To(BeTrue())
							continue
						}
						other := maze.ResolveWalls(rg, r, c)
						Expect(other.Has(s.Opposite())).To(Equal(m.Has(s)))
					}
				}
			}
		}
	})
})

var _ = Describe("WallMask", func() {
	It("formats in side order", func() {
		Expect(maze.WallMask{true, false, true, false}.String()).To(Equal("1010"))
	})

	It("counts solid sides", func() {
		Expect(maze.WallMask{true, true, false, true}.Count()).To(Equal(3))
	})

	It("pairs opposite sides", func() {
		Expect(maze.SideRowMinus.Opposite()).To(Equal(maze.SideRowPlus))
		Expect(maze.SideColPlus.Opposite()).To(Equal(maze.SideColMinus))
	})
})

var _ = Describe("Side.Edge", func() {
	p := maze.Position{Row: 2, Col: 3}

	DescribeTable("places the shared edge halfway to the neighbor",
		func(s maze.Side, x0, z0, x1, z1 float64) {
			a, b, c, d := s.Edge(p)
			Expect([]float64{a, b, c, d}).To(Equal([]float64{x0, z0, x1, z1}))
		},
		Entry("-row", maze.SideRowMinus, 1.5, 2.5, 1.5, 3.5),
		Entry("+row", maze.SideRowPlus, 2.5, 2.5, 2.5, 3.5),
		Entry("-col", maze.SideColMinus, 1.5, 2.5, 2.5, 2.5),
		Entry("+col", maze.SideColPlus, 1.5, 3.5, 2.5, 3.5),
	)
})
