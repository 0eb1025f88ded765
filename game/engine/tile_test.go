package engine

import "testing"

func TestTile_HasConnection(t *testing.T) {
	tests := []struct {
		name string
		tile Tile
		dir  Direction
		want bool
	}{
		{"road open up", NewRoad(Up, Down), Up, true},
		{"road closed left", NewRoad(Up, Down), Left, false},
		{"crossroads right", NewRoad(Up, Right, Down, Left), Right, true},
		{"empty never connects", Tile{Type: Empty, Connections: AllDirections}, Up, false},
		{"dragon never connects", Tile{Type: Dragon, Connections: AllDirections}, Down, false},
		{"equipment never connects", Tile{Type: Equipment, Connections: Left}, Left, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tile.HasConnection(tt.dir); got != tt.want {
				t.Errorf("HasConnection(%s) = %v, want %v", tt.dir, got, tt.want)
			}
		})
	}
}

func TestTile_RotateClockwise(t *testing.T) {
	tests := []struct {
		from Direction
		to   Direction
	}{
		{Up, Right},
		{Right, Down},
		{Down, Left},
		{Left, Up},
		{Up | Down, Right | Left},
		{Up | Left, Up | Right},
		{Up | Down | Left, Up | Right | Left},
		{AllDirections, AllDirections},
	}

	for _, tt := range tests {
		tile := Tile{Type: Road, Connections: tt.from}
		tile.Rotate()
		if tile.Connections != tt.to {
			t.Errorf("Rotate(%04b) = %04b, want %04b", tt.from, tile.Connections, tt.to)
		}
	}
}

func TestTile_RotateFourTimesIsIdentity(t *testing.T) {
	types := []TileType{Empty, Equipment, Dragon, Road}
	for _, tileType := range types {
		for mask := Direction(0); mask <= AllDirections; mask++ {
			tile := Tile{Type: tileType, Connections: mask}
			for i := 0; i < 4; i++ {
				tile.Rotate()
			}
			if tile.Connections != mask {
				t.Errorf("%s mask %04b after 4 rotations = %04b", tileType, mask, tile.Connections)
			}
		}
	}
}

func TestTile_Place(t *testing.T) {
	tile := NewRoad(Up, Left)

	tile.Place(Dragon, Up)
	if tile.Type != Dragon || tile.Connections != 0 {
		t.Errorf("Expected dragon with no mask, got %s %04b", tile.Type, tile.Connections)
	}

	tile.Place(Road, Right|Down)
	if tile.Type != Road || tile.Connections != Right|Down {
		t.Errorf("Expected road right|down, got %s %04b", tile.Type, tile.Connections)
	}

	tile.Place(Equipment, AllDirections)
	if tile.Connections != 0 {
		t.Errorf("Expected equipment to clear stale mask, got %04b", tile.Connections)
	}
}

func TestTile_Shape(t *testing.T) {
	tests := []struct {
		tile Tile
		want string
	}{
		{NewRoad(Up), "dead-end"},
		{NewRoad(Up, Down), "straight"},
		{NewRoad(Left, Right), "straight"},
		{NewRoad(Up, Left), "turn"},
		{NewRoad(Up, Down, Left), "t-junction"},
		{NewRoad(Up, Right, Down, Left), "crossroads"},
		{NewDragon(), "none"},
	}

	for _, tt := range tests {
		if got := tt.tile.Shape(); got != tt.want {
			t.Errorf("Shape(%04b) = %s, want %s", tt.tile.Connections, got, tt.want)
		}
	}
}

func TestDirection_Opposite(t *testing.T) {
	for _, d := range Directions {
		if d.Opposite().Opposite() != d {
			t.Errorf("Opposite of opposite of %s is not %s", d, d)
		}
		p := Position{X: 2, Y: 2}
		if p.Step(d).Step(d.Opposite()) != p {
			t.Errorf("Stepping %s and back did not return to start", d)
		}
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, ok := ParseDirection(d.String())
		if !ok || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), got, ok)
		}
	}
	if _, ok := ParseDirection("sideways"); ok {
		t.Error("Expected unknown direction to fail")
	}
}
