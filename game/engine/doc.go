// Package engine provides the core game logic for Dragons Aside.
//
// The engine package implements the game mechanics including:
//   - Tiles with a 4-bit road connection mask and clockwise rotation
//   - The shuffled draw pile of roads and dragons
//   - The 6x8 board: placement, selection and the valid drop targets
//   - Reachability from the start corner and toward the finish corner
//   - Dragon landings and the equipment that cancels them
//
// Core Types:
//
// Board owns the grid, the draw pile and both reachability sets. GameEngine
// sequences a game on top of it: draw a tile, rotate and place it, resolve
// dragons, recompute reachability and check for a win. Randomness comes from
// an injected RandomSource so a fixed seed replays a whole game, and every
// action is recorded in an owned EventLog.
//
// Usage:
//
//	eng := engine.NewEngineWithSeed(42)
//
//	tile, err := eng.DrawNext()
//	if err != nil {
//		log.Fatal(err)
//	}
//	if tile.Type == engine.Road {
//		eng.RotateHand()
//		if err := eng.PlaceTile(0, 7); err != nil {
//			log.Println(err)
//		}
//	}
//	state := eng.Snapshot()
//
// Game Rules:
//
// The player builds a road from the bottom-left corner to the top-right one.
// Roads are drawn from the pile and placed on empty or equipment cells;
// placing on equipment collects it. Drawing a dragon spends one collected
// equipment, or drops the dragon on a random empty cell where it blocks the
// way. The game is won when the cells reachable from the start meet the cells
// that lead to the finish, and ends without a win when the pile runs out.
package engine
