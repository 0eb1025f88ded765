package engine

// RecipeEntry is one line of a draw pile recipe
type RecipeEntry struct {
	Tile  Tile
	Count int
}

// CanonicalRecipe is the fixed pile composition dealt every new game:
// 21 roads (1 dead end, 7 straights, 7 T-junctions, 4 turns, 2 crossroads)
// and 16 dragons. Equipment starts on the board, not in the pile.
var CanonicalRecipe = []RecipeEntry{
	{Tile: NewRoad(Up), Count: 1},
	{Tile: NewRoad(Up, Down), Count: 7},
	{Tile: NewRoad(Up, Down, Left), Count: 7},
	{Tile: NewRoad(Up, Left), Count: 4},
	{Tile: NewRoad(Up, Right, Down, Left), Count: 2},
	{Tile: NewDragon(), Count: DragonCount},
}

// DrawPile is the shuffled supply of unplaced tiles. The last element is on top.
type DrawPile struct {
	tiles []Tile
}

// Build clears the pile, refills it from the recipe and shuffles it.
func (p *DrawPile) Build(recipe []RecipeEntry, rng RandomSource) {
	p.tiles = p.tiles[:0]
	for _, entry := range recipe {
		for i := 0; i < entry.Count; i++ {
			p.tiles = append(p.tiles, entry.Tile)
		}
	}
	p.shuffle(rng)
}

// shuffle applies a Fisher-Yates permutation
func (p *DrawPile) shuffle(rng RandomSource) {
	for i := len(p.tiles) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		p.tiles[i], p.tiles[j] = p.tiles[j], p.tiles[i]
	}
}

// Draw removes and returns the top tile
func (p *DrawPile) Draw() (Tile, error) {
	if len(p.tiles) == 0 {
		return Tile{}, ErrEmptyPile
	}
	top := p.tiles[len(p.tiles)-1]
	p.tiles = p.tiles[:len(p.tiles)-1]
	return top, nil
}

// Peek returns the top tile without removing it
func (p *DrawPile) Peek() (Tile, bool) {
	if len(p.tiles) == 0 {
		return Tile{}, false
	}
	return p.tiles[len(p.tiles)-1], true
}

// Len returns the number of tiles remaining
func (p *DrawPile) Len() int {
	return len(p.tiles)
}

// IsEmpty reports whether no tiles remain
func (p *DrawPile) IsEmpty() bool {
	return len(p.tiles) == 0
}

// Count returns how many remaining tiles have the given type
func (p *DrawPile) Count(tileType TileType) int {
	n := 0
	for _, t := range p.tiles {
		if t.Type == tileType {
			n++
		}
	}
	return n
}
