package engine

import "fmt"

// Board is the fixed Width x Height grid together with the draw pile, the
// selection, the valid-move set and the two reachability sets.
type Board struct {
	tiles    [BoardSize]Tile
	pile     DrawPile
	selected *Position

	validMoves []Position

	fromStart [BoardSize]bool
	toFinish  [BoardSize]bool
}

// NewBoard returns an empty board with reachability computed
func NewBoard() *Board {
	b := &Board{}
	for i := range b.tiles {
		b.tiles[i] = Tile{Type: Empty}
	}
	b.validMoves = append(b.validMoves, Start, Finish)
	b.Recompute()
	return b
}

// NewGame resets every cell to empty, seeds the equipment, rebuilds the pile and
// resets the valid moves to the two corners.
func (b *Board) NewGame(rng RandomSource) {
	b.validMoves = b.validMoves[:0]
	b.selected = nil
	for i := range b.tiles {
		b.tiles[i] = Tile{Type: Empty}
	}

	// Equipment goes on interior rows only; redraw on collisions so exactly
	// EquipmentCount cells carry it.
	for placed := 0; placed < EquipmentCount; {
		p := Position{X: rng.IntN(Width), Y: 1 + rng.IntN(Height-2)}
		cell := &b.tiles[p.Index()]
		if cell.Type == Equipment {
			continue
		}
		cell.Place(Equipment, 0)
		placed++
	}

	b.pile.Build(CanonicalRecipe, rng)

	b.validMoves = append(b.validMoves, Start, Finish)
	b.Recompute()
}

// Pile returns the draw pile
func (b *Board) Pile() *DrawPile {
	return &b.pile
}

// Tile returns a copy of the tile at x,y
func (b *Board) Tile(x, y int) (Tile, error) {
	p := Position{X: x, Y: y}
	if !p.InBounds() {
		return Tile{}, fmt.Errorf("tile (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	return b.tiles[p.Index()], nil
}

// at returns the cell at an in-bounds position
func (b *Board) at(p Position) *Tile {
	return &b.tiles[p.Index()]
}

// Cells returns a row-major copy of every tile
func (b *Board) Cells() []Tile {
	cells := make([]Tile, BoardSize)
	copy(cells, b.tiles[:])
	return cells
}

// SetTile overwrites a cell without placement rules. Intended for building
// fixtures and scenarios; it recomputes reachability.
func (b *Board) SetTile(x, y int, tile Tile) error {
	p := Position{X: x, Y: y}
	if !p.InBounds() {
		return fmt.Errorf("set tile (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	selected := b.tiles[p.Index()].Selected
	b.tiles[p.Index()] = tile
	b.tiles[p.Index()].Selected = selected
	b.Recompute()
	return nil
}

// PlaceTile puts tile on x,y. The target must be empty or equipment. The tile
// previously on the cell is returned so callers can account for collected
// equipment.
func (b *Board) PlaceTile(x, y int, tile Tile) (Tile, error) {
	p := Position{X: x, Y: y}
	if !p.InBounds() {
		return Tile{}, fmt.Errorf("place (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	cell := b.at(p)
	if !cell.IsOpenGround() {
		return Tile{}, fmt.Errorf("place (%d,%d) on %s: %w", x, y, cell.Type, ErrOccupiedCell)
	}

	previous := *cell
	cell.Place(tile.Type, tile.Connections)

	b.UpdateValidMoves()
	if tile.Type == Road {
		b.AddValidMovesFromTile(x, y)
	}
	b.Recompute()

	return previous, nil
}

// Select highlights a single cell, clearing any previous selection
func (b *Board) Select(x, y int) error {
	p := Position{X: x, Y: y}
	if !p.InBounds() {
		return fmt.Errorf("select (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	b.Deselect()
	b.at(p).Selected = true
	b.selected = &p
	return nil
}

// Deselect clears the selection
func (b *Board) Deselect() {
	if b.selected == nil {
		return
	}
	b.at(*b.selected).Selected = false
	b.selected = nil
}

// Selected returns the selected position, if any
func (b *Board) Selected() (Position, bool) {
	if b.selected == nil {
		return Position{}, false
	}
	return *b.selected, true
}

// RotateSelected rotates the selected cell and refreshes the valid moves it
// opens toward. No-op without a selection.
func (b *Board) RotateSelected() {
	if b.selected == nil {
		return
	}
	p := *b.selected
	cell := b.at(p)
	cell.Rotate()

	b.UpdateValidMoves()
	if cell.Type == Road {
		b.AddValidMovesFromTile(p.X, p.Y)
	}
	b.Recompute()
}

// Recompute refreshes both reachability sets
func (b *Board) Recompute() {
	b.RecomputeReachableFromStart()
	b.RecomputeReachableToFinish()
}

// expand queues the neighbours a cell can be left through. Roads only leave
// through open connections; open ground leaves in every direction.
func (b *Board) expand(queue []Position, p Position, tile Tile) []Position {
	for _, d := range Directions {
		if tile.Type == Road && !tile.HasConnection(d) {
			continue
		}
		next := p.Step(d)
		if next.InBounds() {
			queue = append(queue, next)
		}
	}
	return queue
}

// RecomputeReachableFromStart walks from the start corner. Open ground expands
// freely, roads only through their connections, and dragons stop the walk and
// are left out of the set.
func (b *Board) RecomputeReachableFromStart() {
	var visited [BoardSize]bool
	b.fromStart = [BoardSize]bool{}

	queue := []Position{Start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		idx := p.Index()
		if visited[idx] {
			continue
		}
		visited[idx] = true

		tile := b.tiles[idx]
		if tile.Type == Dragon {
			continue
		}
		b.fromStart[idx] = true
		queue = b.expand(queue, p, tile)
	}
}

// RecomputeReachableToFinish walks from the finish corner. Open ground is
// recorded and not expanded, roads are expanded and not recorded, dragons are
// neither.
func (b *Board) RecomputeReachableToFinish() {
	var visited [BoardSize]bool
	b.toFinish = [BoardSize]bool{}

	queue := []Position{Finish}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		idx := p.Index()
		if visited[idx] {
			continue
		}
		visited[idx] = true

		tile := b.tiles[idx]
		switch tile.Type {
		case Empty, Equipment:
			b.toFinish[idx] = true
		case Road:
			queue = b.expand(queue, p, tile)
		}
	}
}

// ReachableFromStart returns the forward set in row-major order
func (b *Board) ReachableFromStart() []Position {
	return collect(&b.fromStart)
}

// ReachableToFinish returns the backward set in row-major order
func (b *Board) ReachableToFinish() []Position {
	return collect(&b.toFinish)
}

// IsReachableFromStart reports membership in the forward set
func (b *Board) IsReachableFromStart(p Position) bool {
	return p.InBounds() && b.fromStart[p.Index()]
}

// IsReachableToFinish reports membership in the backward set
func (b *Board) IsReachableToFinish(p Position) bool {
	return p.InBounds() && b.toFinish[p.Index()]
}

func collect(set *[BoardSize]bool) []Position {
	var out []Position
	for i, ok := range set {
		if ok {
			out = append(out, Position{X: i % Width, Y: i / Width})
		}
	}
	return out
}

// CanReachEnd reports whether the forward and backward sets share a cell
func (b *Board) CanReachEnd() bool {
	for i := range b.fromStart {
		if b.fromStart[i] && b.toFinish[i] {
			return true
		}
	}
	return false
}

// ValidMoves returns a copy of the tracked drop targets
func (b *Board) ValidMoves() []Position {
	out := make([]Position, len(b.validMoves))
	copy(out, b.validMoves)
	return out
}

// IsValidMove reports whether p is a tracked drop target
func (b *Board) IsValidMove(p Position) bool {
	for _, m := range b.validMoves {
		if m == p {
			return true
		}
	}
	return false
}

// UpdateValidMoves prunes tracked targets that are now occupied or that no
// neighbouring road points into. The two corners are never pruned.
func (b *Board) UpdateValidMoves() {
	kept := b.validMoves[:0]
	for _, p := range b.validMoves {
		if p == Start || p == Finish {
			kept = append(kept, p)
			continue
		}
		if !b.at(p).IsOpenGround() {
			continue
		}
		if b.hasRoadPointingInto(p) {
			kept = append(kept, p)
		}
	}
	b.validMoves = kept
}

func (b *Board) hasRoadPointingInto(p Position) bool {
	for _, d := range Directions {
		n := p.Step(d)
		if n.InBounds() && b.at(n).HasConnection(d.Opposite()) {
			return true
		}
	}
	return false
}

// AddValidMovesFromTile tracks every open-ground neighbour the tile at x,y
// opens toward.
func (b *Board) AddValidMovesFromTile(x, y int) {
	p := Position{X: x, Y: y}
	if !p.InBounds() {
		return
	}
	tile := b.at(p)
	for _, d := range Directions {
		if !tile.HasConnection(d) {
			continue
		}
		n := p.Step(d)
		if !n.InBounds() || !b.at(n).IsOpenGround() || b.IsValidMove(n) {
			continue
		}
		b.validMoves = append(b.validMoves, n)
	}
}

// OpenCells returns every empty cell, excluding the two corners, in row-major order
func (b *Board) OpenCells() []Position {
	var out []Position
	for i, t := range b.tiles {
		p := Position{X: i % Width, Y: i / Width}
		if t.Type == Empty && p != Start && p != Finish {
			out = append(out, p)
		}
	}
	return out
}

// CountType returns how many cells hold the given tile type
func (b *Board) CountType(tileType TileType) int {
	n := 0
	for _, t := range b.tiles {
		if t.Type == tileType {
			n++
		}
	}
	return n
}
