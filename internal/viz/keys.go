package viz

import "github.com/san-kum/mazesim/internal/camera"

// ApplyKey folds a key press into the held intent. Terminals report presses
// only, so each direction latches until pressed again. Pressing against a
// held opposite direction releases it first, which stops that axis; space
// releases everything. handled is false for keys that do not steer.
func ApplyKey(in camera.Intent, key string) (out camera.Intent, handled bool) {
	switch key {
	case "up", "w":
		in.Forward, in.Backward = latch(in.Forward, in.Backward)
	case "down", "s":
		in.Backward, in.Forward = latch(in.Backward, in.Forward)
	case "left", "a":
		in.Left, in.Right = latch(in.Left, in.Right)
	case "right", "d":
		in.Right, in.Left = latch(in.Right, in.Left)
	case " ":
		in = camera.Intent{}
	default:
		return in, false
	}
	return in, true
}

func latch(self, opposite bool) (bool, bool) {
	if opposite {
		return false, false
	}
	return !self, false
}
