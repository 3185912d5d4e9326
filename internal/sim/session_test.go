package sim_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mazesim/internal/camera"
	"github.com/san-kum/mazesim/internal/maze"
	"github.com/san-kum/mazesim/internal/sim"
)

const corridor = "3\n3\nxxx\nxox\nsxe\n"

const frame = 16 * time.Millisecond

func newSession(text string) *sim.Session {
	g, err := maze.Parse(strings.NewReader(text))
	Expect(err).NotTo(HaveOccurred())
	scene, err := maze.Build(g)
	Expect(err).NotTo(HaveOccurred())
	s, err := sim.New(scene, sim.DefaultConfig())
	Expect(err).NotTo(HaveOccurred())
	return s
}

type counter struct{ steps []int64 }

func (c *counter) OnStep(_ camera.State, step int64) { c.steps = append(c.steps, step) }

var _ = Describe("Session", func() {
	It("starts the camera on the start marker", func() {
		s := newSession("2\n3\nxxe\nxsx\n")
		start, ok := s.Scene().Cell(s.Scene().Start())
		Expect(ok).To(BeTrue())
		Expect(start.Marker).To(Equal(maze.MarkerStart))

		cam := s.Camera()
		Expect(cam.X).To(Equal(float64(start.Row)))
		Expect(cam.Z).To(Equal(float64(start.Col)))
		Expect(cam.Heading).To(BeZero())
	})

	It("runs at least one step per frame", func() {
		s := newSession(corridor)
		obs := &counter{}
		s.AddObserver(obs)

		s.Step(camera.Intent{Forward: true}, 0)
		Expect(obs.steps).To(Equal([]int64{1}))
		Expect(s.Camera().Z).To(BeNumerically("~", camera.DefaultMoveSpeed, 1e-12))
	})

	It("catches up whole intervals and caps long stalls", func() {
		s := newSession(corridor)
		obs := &counter{}
		s.AddObserver(obs)

		s.Step(camera.Intent{}, 3*frame)
		Expect(obs.steps).To(HaveLen(3))

		s.Step(camera.Intent{}, 10*time.Second)
		Expect(obs.steps).To(HaveLen(13))
		Expect(s.SimulationTime()).To(Equal(int64(13)))
	})

	It("only forwards changed signals so last press wins", func() {
		s := newSession(corridor)

		st := s.Step(camera.Intent{Forward: true}, frame)
		Expect(st.ForwardSpeed).To(Equal(camera.DefaultMoveSpeed))

		st = s.Step(camera.Intent{Forward: true, Backward: true}, frame)
		Expect(st.ForwardSpeed).To(Equal(-camera.DefaultMoveSpeed))

		st = s.Step(camera.Intent{Backward: true}, frame)
		Expect(st.ForwardSpeed).To(BeZero(), "releasing forward stops even while backward is held")
	})

	It("resolves simultaneous presses in favor of backward and right", func() {
		s := newSession(corridor)
		st := s.Step(camera.Intent{Forward: true, Backward: true, Left: true, Right: true}, frame)
		Expect(st.ForwardSpeed).To(Equal(-camera.DefaultMoveSpeed))
		Expect(st.TurnRate).To(Equal(-camera.DefaultTurnRate))
	})

	It("resets to the start and is idempotent", func() {
		s := newSession(corridor)
		for i := 0; i < 40; i++ {
			s.Step(camera.Intent{Forward: true, Left: i%2 == 0}, frame)
		}

		once := s.Reset()
		twice := s.Reset()
		Expect(twice).To(Equal(once))
		Expect(once.X).To(BeZero())
		Expect(once.Z).To(BeZero())
		Expect(once.Heading).To(BeZero())
		Expect(once.ForwardSpeed).To(Equal(camera.DefaultMoveSpeed))
	})

	It("is deterministic for a fixed frame sequence", func() {
		frames := make([]sim.Frame, 0, 300)
		for i := 0; i < 300; i++ {
			frames = append(frames, sim.Frame{
				Intent: camera.Intent{Forward: i%5 != 0, Left: i%3 == 0, Right: i%7 == 0},
				Delta:  time.Duration(10+i%25) * time.Millisecond,
			})
		}

		a, err := newSession(corridor).Run(context.Background(), frames)
		Expect(err).NotTo(HaveOccurred())
		b, err := newSession(corridor).Run(context.Background(), frames)
		Expect(err).NotTo(HaveOccurred())

		Expect(a.States).To(Equal(b.States))
		Expect(a.StepsTaken).To(Equal(b.StepsTaken))
	})

	It("tracks the cell under the camera", func() {
		s := newSession(corridor)
		Expect(s.InCell()).To(Equal(maze.Position{Row: 0, Col: 0}))
		Expect(s.AtEnd()).To(BeFalse())

		// Two cells along +Z at 0.03 per step.
		for i := 0; i < 67; i++ {
			s.Step(camera.Intent{Forward: true}, frame)
		}
		Expect(s.InCell()).To(Equal(maze.Position{Row: 0, Col: 2}))
		Expect(s.AtEnd()).To(BeTrue())
	})
})

var _ = Describe("Run", func() {
	It("records one entry per frame plus the initial pose", func() {
		s := newSession(corridor)
		res, err := s.Run(context.Background(), []sim.Frame{
			{Intent: camera.Intent{Forward: true}, Delta: frame},
			{Intent: camera.Intent{Forward: true}, Delta: 2 * frame},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.States).To(HaveLen(3))
		Expect(res.Steps).To(Equal([]int{0, 1, 2}))
		Expect(res.StepsTaken).To(Equal(int64(3)))
		Expect(res.Times[2]).To(Equal(3 * frame))
	})

	It("resets before stepping a reset frame", func() {
		s := newSession(corridor)
		res, err := s.Run(context.Background(), []sim.Frame{
			{Intent: camera.Intent{Forward: true}, Delta: 10 * frame},
			{Intent: camera.Intent{Forward: true}, Delta: frame, Reset: true},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.States[1].Z).To(BeNumerically("~", 10*camera.DefaultMoveSpeed, 1e-9))
		Expect(res.States[2].Z).To(BeNumerically("~", camera.DefaultMoveSpeed, 1e-9))
	})

	It("stops when the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newSession(corridor).Run(ctx, []sim.Frame{{Delta: frame}})
		Expect(err).To(MatchError(context.Canceled))
	})

	It("rejects negative deltas", func() {
		_, err := newSession(corridor).Run(context.Background(), []sim.Frame{{Delta: -frame}})
		var se sim.SimError
		Expect(err).To(BeAssignableToTypeOf(se))
	})
})

var _ = Describe("Load", func() {
	It("surfaces file errors", func() {
		_, err := sim.Load(filepath.Join(GinkgoT().TempDir(), "missing"), sim.DefaultConfig())
		Expect(err).To(MatchError(maze.ErrMazeFileUnavailable))
	})

	It("rejects an invalid config before touching the file", func() {
		cfg := sim.DefaultConfig()
		cfg.MaxCatchUp = 0
		_, err := sim.Load("does-not-matter", cfg)
		Expect(err).To(HaveOccurred())
		Expect(err).NotTo(MatchError(maze.ErrMazeFileUnavailable))
	})

	It("loads a scene from disk", func() {
		path := filepath.Join(GinkgoT().TempDir(), "m.txt")
		Expect(os.WriteFile(path, []byte(corridor), 0644)).To(Succeed())

		s, err := sim.Load(path, sim.DefaultConfig())
		Expect(err).NotTo(HaveOccurred())
		Expect(s.Scene().Len()).To(Equal(8))
	})
})

var _ = Describe("Ensemble", func() {
	It("runs sessions independently", func() {
		frames := []sim.Frame{{Intent: camera.Intent{Forward: true}, Delta: 5 * frame}}
		e := sim.NewEnsemble(newSession(corridor), newSession("1\n3\nxsx\n"))

		results, err := e.Run(context.Background(), frames)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(2))
		Expect(results[0].States[1].Z).To(BeNumerically("~", 5*camera.DefaultMoveSpeed, 1e-9))
		Expect(results[1].States[1].Z).To(BeNumerically("~", 1+5*camera.DefaultMoveSpeed, 1e-9))
	})
})
