// Package camera integrates a first-person camera over a planar maze floor.
//
// The [Controller] owns a [State] and advances it once per simulation step
// with explicit Euler integration:
//
//	heading += turnRate
//	x       += forwardSpeed * sin(heading)
//	z       += forwardSpeed * cos(heading)
//
// Forward speed and turn rate are set from discrete press/release signals.
// Each setter overwrites its variable, so the most recent press wins and any
// release stops motion on that axis.
//
// # Thread Safety
//
// Controller is NOT thread-safe. It is owned by the single update/render loop.
package camera
