package gui

import (
	"fmt"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/mazesim/internal/camera"
	"github.com/san-kum/mazesim/internal/maze"
	"github.com/san-kum/mazesim/internal/metrics"
	"github.com/san-kum/mazesim/internal/sim"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColWall    = rl.NewColor(178, 92, 62, 255)
	ColWallEdg = rl.NewColor(90, 40, 28, 255)
	ColFloor   = rl.NewColor(48, 44, 40, 255)
	ColCeiling = rl.NewColor(28, 28, 34, 255)
	ColStart   = rl.Yellow
	ColEnd     = rl.Green
	ColText    = rl.NewColor(200, 200, 200, 255)
	ColTextDim = rl.NewColor(90, 90, 90, 255)
)

type Options struct {
	Title  string
	Width  int
	Height int
	FPS    int
	FOV    float64
}

// App is a windowed first-person walkthrough of one session.
type App struct {
	Session *sim.Session
	Camera  rl.Camera3D
	Opts    Options
	Intent  camera.Intent

	cells []maze.CellDescriptor
	goal  *metrics.ReachedEnd
	last  time.Time
}

// initWindow opens the window, caps the frame rate and frees Escape for quit
// handling inside the loop.
func initWindow(o Options) {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(o.Width), int32(o.Height), o.Title)
	rl.SetTargetFPS(int32(o.FPS))
	rl.SetExitKey(0)
}

func NewApp(s *sim.Session, o Options) *App {
	if o.FOV <= 0 {
		o.FOV = 75
	}
	goal := metrics.NewReachedEnd(s.Scene())
	s.AddMetric(goal)

	a := &App{Session: s, Opts: o, cells: s.Scene().Cells(), goal: goal}
	a.Camera = rl.NewCamera3D(
		rl.NewVector3(0, 0, 0),
		rl.NewVector3(0, 0, 1),
		rl.NewVector3(0, 1, 0),
		float32(o.FOV),
		rl.CameraPerspective,
	)
	a.syncCamera(s.Camera())
	return a
}

// Run opens a window on the session and blocks until it is closed.
func Run(s *sim.Session, o Options) {
	initWindow(o)
	defer rl.CloseWindow()
	NewApp(s, o).RunLoop()
}

func (a *App) RunLoop() {
	a.last = time.Now()
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// readIntent samples the held movement keys. Arrow keys and WASD both steer.
func readIntent() camera.Intent {
	return camera.Intent{
		Forward:  rl.IsKeyDown(rl.KeyUp) || rl.IsKeyDown(rl.KeyW),
		Backward: rl.IsKeyDown(rl.KeyDown) || rl.IsKeyDown(rl.KeyS),
		Left:     rl.IsKeyDown(rl.KeyLeft) || rl.IsKeyDown(rl.KeyA),
		Right:    rl.IsKeyDown(rl.KeyRight) || rl.IsKeyDown(rl.KeyD),
	}
}

// Update advances the session by the real time since the last frame. It
// returns false when the user asked to quit.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return false
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Session.Reset()
		a.goal.Reset()
	}

	now := time.Now()
	delta := now.Sub(a.last)
	a.last = now

	a.Intent = readIntent()
	a.syncCamera(a.Session.Step(a.Intent, delta))
	return true
}

// syncCamera places the eye at the camera position on the floor plane and
// aims it one unit ahead.
func (a *App) syncCamera(st camera.State) {
	look := st.LookAt()
	a.Camera.Position = rl.NewVector3(float32(st.X), 0, float32(st.Z))
	a.Camera.Target = rl.NewVector3(float32(look.X), 0, float32(look.Z))
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode3D(a.Camera)
	a.drawScene()
	rl.EndMode3D()

	a.DrawHUD()
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	st := a.Session.Camera()
	deg := math.Mod(st.Heading*180/math.Pi, 360)
	if deg < 0 {
		deg += 360
	}

	rl.DrawText(a.Opts.Title, 20, 20, 20, ColText)
	rl.DrawText(fmt.Sprintf("cell %s  heading %.0f  steps %d", a.Session.InCell(), deg, a.Session.SimulationTime()), 20, 46, 14, ColTextDim)
	if _, ok := a.goal.Step(); ok {
		rl.DrawText("END REACHED", 20, 68, 18, ColEnd)
	}

	h := int32(rl.GetScreenHeight())
	rl.DrawText("ARROWS/WASD: MOVE  R: RESET  Q: QUIT", 20, h-30, 14, ColTextDim)
	rl.DrawFPS(int32(rl.GetScreenWidth())-90, h-30)
}
