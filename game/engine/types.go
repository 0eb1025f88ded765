package engine

// TileType represents the kind of tile occupying a board cell
type TileType string

const (
	Empty     TileType = "empty"
	Equipment TileType = "equipment"
	Dragon    TileType = "dragon"
	Road      TileType = "road"
)

// Direction is a single road connection bit
type Direction uint8

const (
	Up    Direction = 1 << 0
	Right Direction = 1 << 1
	Down  Direction = 1 << 2
	Left  Direction = 1 << 3

	// AllDirections is the crossroads mask
	AllDirections = Up | Right | Down | Left
)

// Directions lists the four cardinal directions in clockwise order starting at Up.
var Directions = [4]Direction{Up, Right, Down, Left}

// Board and recipe constants
const (
	Width          = 6
	Height         = 8
	BoardSize      = Width * Height
	EquipmentCount = 3
	PileSize       = 37
	RoadTileCount  = 21
	DragonCount    = 16
	EventLogLimit  = 256
)

// Position represents x,y grid coordinates
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

var (
	// Start is the entry corner (bottom-left).
	Start = Position{X: 0, Y: Height - 1}
	// Finish is the exit corner (top-right).
	Finish = Position{X: Width - 1, Y: 0}
)

// String returns the direction name
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return "none"
}

// Opposite returns the direction pointing back
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Right:
		return Left
	case Down:
		return Up
	case Left:
		return Right
	}
	return 0
}

// Delta returns the grid offset of a step in direction d
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	}
	return 0, 0
}

// ParseDirection converts a direction name to a Direction
func ParseDirection(name string) (Direction, bool) {
	switch name {
	case "up", "u":
		return Up, true
	case "right", "r":
		return Right, true
	case "down", "d":
		return Down, true
	case "left", "l":
		return Left, true
	}
	return 0, false
}

// InBounds reports whether the position lies on the board
func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < Width && p.Y >= 0 && p.Y < Height
}

// Step returns the neighbouring position in direction d
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Index returns the row-major cell index
func (p Position) Index() int {
	return p.Y*Width + p.X
}
