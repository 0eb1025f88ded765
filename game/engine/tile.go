package engine

// Tile represents a single board cell or an unplaced tile from the pile
type Tile struct {
	Type        TileType  `json:"type"`
	Connections Direction `json:"connections,omitempty"` // Road only
	Selected    bool      `json:"selected,omitempty"`
}

// NewRoad returns a road tile open toward the given directions
func NewRoad(dirs ...Direction) Tile {
	var mask Direction
	for _, d := range dirs {
		mask |= d
	}
	return Tile{Type: Road, Connections: mask}
}

// NewDragon returns a dragon tile
func NewDragon() Tile {
	return Tile{Type: Dragon}
}

// HasConnection reports whether the tile is a road open toward d.
// Non-road tiles never have connections.
func (t Tile) HasConnection(d Direction) bool {
	return t.Type == Road && t.Connections&d != 0
}

// Rotate turns the connection mask 90 degrees clockwise.
func (t *Tile) Rotate() {
	var rotated Direction
	for _, d := range Directions {
		if t.Connections&d == 0 {
			continue
		}
		switch d {
		case Up:
			rotated |= Right
		case Right:
			rotated |= Down
		case Down:
			rotated |= Left
		case Left:
			rotated |= Up
		}
	}
	t.Connections = rotated
}

// Place assigns the tile type, keeping the mask only for roads
func (t *Tile) Place(tileType TileType, mask Direction) {
	t.Type = tileType
	if tileType == Road {
		t.Connections = mask & AllDirections
	} else {
		t.Connections = 0
	}
}

// IsOpenGround reports whether the cell is free to build on (empty or equipment)
func (t Tile) IsOpenGround() bool {
	return t.Type == Empty || t.Type == Equipment
}

// ConnectionCount returns the number of open road connections
func (t Tile) ConnectionCount() int {
	if t.Type != Road {
		return 0
	}
	n := 0
	for _, d := range Directions {
		if t.Connections&d != 0 {
			n++
		}
	}
	return n
}

// Shape names the road piece formed by the connection mask
func (t Tile) Shape() string {
	switch t.ConnectionCount() {
	case 1:
		return "dead-end"
	case 2:
		if t.Connections == Up|Down || t.Connections == Left|Right {
			return "straight"
		}
		return "turn"
	case 3:
		return "t-junction"
	case 4:
		return "crossroads"
	}
	return "none"
}

// String returns a short description for logs and events
func (t Tile) String() string {
	if t.Type == Road {
		return string(Road) + " " + t.Shape() + " " + t.ConnectionList()
	}
	return string(t.Type)
}

// ConnectionList renders the open directions as "[up down]"
func (t Tile) ConnectionList() string {
	s := "["
	first := true
	for _, d := range Directions {
		if t.Connections&d == 0 {
			continue
		}
		if !first {
			s += " "
		}
		s += d.String()
		first = false
	}
	return s + "]"
}
