// Package maze turns a textual maze description into a renderable scene.
//
// The pipeline runs one way:
//
//   - [Parse] / [Load]: text to a validated [Grid] of symbols
//   - [ResolveWalls]: per-cell [WallMask] from neighbor occupancy
//   - [Build]: a [Scene] of [CellDescriptor] values, one per open cell
//
// # File format
//
//	<rowCount>
//	<colCount>
//	<row rowCount-1>
//	...
//	<row 0>
//
// The first maze line in the file is the highest grid row. The parser stores
// rows reversed so that grid row i sits at world X = i; skipping the reversal
// mirrors the maze.
//
// # Symbols
//
//	o  wall
//	x  open
//	s  start (open, carries a marker)
//	e  end (open, carries a marker)
package maze
