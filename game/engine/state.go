package engine

// Snapshot is a self-contained copy of everything a presentation layer reads
type Snapshot struct {
	GameID        string     `json:"game_id"`
	Seed          int64      `json:"seed"`
	Width         int        `json:"width"`
	Height        int        `json:"height"`
	Grid          [][]Tile   `json:"grid"`
	Start         Position   `json:"start"`
	Finish        Position   `json:"finish"`
	Selected      *Position  `json:"selected,omitempty"`
	Hand          *Tile      `json:"hand,omitempty"`
	PileSize      int        `json:"pile_size"`
	PileRoads     int        `json:"pile_roads"`
	PileDragons   int        `json:"pile_dragons"`
	EquipmentHeld int        `json:"equipment_held"`
	FromStart     []Position `json:"reachable_from_start"`
	ToFinish      []Position `json:"reachable_to_finish"`
	ValidMoves    []Position `json:"valid_moves"`
	CanReachEnd   bool       `json:"can_reach_end"`
	Phase         Phase      `json:"phase"`
	GameOver      bool       `json:"game_over"`
	Victory       bool       `json:"victory"`
	Placed        int        `json:"placed"`
	LastEventSeq  int        `json:"last_event_seq"`
}

// Snapshot copies the current game state
func (e *GameEngine) Snapshot() *Snapshot {
	b := e.board
	grid := make([][]Tile, Height)
	cells := b.Cells()
	for y := 0; y < Height; y++ {
		grid[y] = cells[y*Width : (y+1)*Width : (y+1)*Width]
	}

	s := &Snapshot{
		GameID:        e.id,
		Seed:          e.rng.Seed(),
		Width:         Width,
		Height:        Height,
		Grid:          grid,
		Start:         Start,
		Finish:        Finish,
		PileSize:      b.Pile().Len(),
		PileRoads:     b.Pile().Count(Road),
		PileDragons:   b.Pile().Count(Dragon),
		EquipmentHeld: e.equipment,
		FromStart:     b.ReachableFromStart(),
		ToFinish:      b.ReachableToFinish(),
		ValidMoves:    b.ValidMoves(),
		CanReachEnd:   b.CanReachEnd(),
		Phase:         e.phase,
		GameOver:      e.IsGameOver(),
		Victory:       e.IsVictory(),
		Placed:        e.placed,
		LastEventSeq:  e.log.LastSeq(),
	}
	if pos, ok := b.Selected(); ok {
		s.Selected = &pos
	}
	if hand, ok := e.Hand(); ok {
		s.Hand = &hand
	}
	return s
}

// At returns the tile at p from the snapshot grid
func (s *Snapshot) At(p Position) Tile {
	if !p.InBounds() || p.Y >= len(s.Grid) || p.X >= len(s.Grid[p.Y]) {
		return Tile{}
	}
	return s.Grid[p.Y][p.X]
}

// Contains reports whether p is in the set
func Contains(set []Position, p Position) bool {
	for _, q := range set {
		if q == p {
			return true
		}
	}
	return false
}
