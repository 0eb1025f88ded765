package engine

// Rect is a rectangle expressed in fractions of a cell (0..1) or in pixels,
// depending on where it is used.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Color is an 8-bit RGBA colour
type Color struct {
	R, G, B, A uint8
}

// ConnectionShapes maps each road direction to the strip drawn for it, as
// fractions of the cell. A renderer scales these by the cell rect.
var ConnectionShapes = map[Direction]Rect{
	Up:    {X: 0.25, Y: 0, W: 0.5, H: 0.75},
	Right: {X: 0.25, Y: 0.25, W: 0.75, H: 0.5},
	Down:  {X: 0.25, Y: 0.25, W: 0.5, H: 0.75},
	Left:  {X: 0, Y: 0.25, W: 0.75, H: 0.5},
}

// TileStyle is the fill used for a tile type
type TileStyle struct {
	Fill   Color
	Filled bool
	Glyph  rune // text renderers
}

var (
	RoadSurface = Color{R: 0xF3, G: 0xD9, B: 0xAB, A: 0xFF}
	CellBorder  = Color{R: 0x18, G: 0x18, B: 0x18, A: 0xFF}
)

// TypeStyles maps each tile type to how it is drawn
var TypeStyles = map[TileType]TileStyle{
	Empty:     {Glyph: '.'},
	Equipment: {Fill: Color{R: 0x00, G: 0xAA, B: 0x7F, A: 0xFF}, Filled: true, Glyph: 'E'},
	Dragon:    {Fill: Color{R: 0xFF, G: 0x00, B: 0x7F, A: 0xFF}, Filled: true, Glyph: 'D'},
	Road:      {Fill: Color{R: 0x1F, G: 0x5F, B: 0x26, A: 0xFF}, Filled: true, Glyph: '+'},
}

// DrawShape is one filled rectangle of a tile, in fractions of the cell
type DrawShape struct {
	Rect  Rect
	Color Color
}

// ShapesFor returns the rectangles needed to draw a tile, background first.
func ShapesFor(t Tile) []DrawShape {
	style := TypeStyles[t.Type]
	var shapes []DrawShape
	if style.Filled {
		shapes = append(shapes, DrawShape{Rect: Rect{W: 1, H: 1}, Color: style.Fill})
	}
	for _, d := range Directions {
		if t.HasConnection(d) {
			shapes = append(shapes, DrawShape{Rect: ConnectionShapes[d], Color: RoadSurface})
		}
	}
	return shapes
}

// Layout holds the pixel geometry of the board inside a viewport
type Layout struct {
	CellSize float64 `json:"cell_size"`
	Origin   Rect    `json:"origin"` // only X,Y used
	Board    Rect    `json:"board"`
}

const layoutMargin = 50

// NewLayout fits the board into a canvas, leaving a margin on the short axis
// and centring on the long one.
func NewLayout(canvasWidth, canvasHeight int) Layout {
	var l Layout
	if canvasWidth > canvasHeight {
		l.CellSize = float64(canvasHeight-2*layoutMargin) / Height
		l.Origin = Rect{X: float64(canvasWidth)/2 - Width*l.CellSize/2, Y: layoutMargin}
	} else {
		l.CellSize = float64(canvasWidth-2*layoutMargin) / Width
		l.Origin = Rect{X: layoutMargin, Y: float64(canvasHeight)/2 - Height*l.CellSize/2}
	}
	l.Board = Rect{X: l.Origin.X, Y: l.Origin.Y, W: Width * l.CellSize, H: Height * l.CellSize}
	return l
}

// CellRect returns the pixel rect of a cell
func (l Layout) CellRect(p Position) Rect {
	return Rect{
		X: l.Origin.X + float64(p.X)*l.CellSize,
		Y: l.Origin.Y + float64(p.Y)*l.CellSize,
		W: l.CellSize,
		H: l.CellSize,
	}
}

// CellAt maps a pixel to the cell under it
func (l Layout) CellAt(px, py float64) (Position, bool) {
	if l.CellSize <= 0 {
		return Position{}, false
	}
	if px < l.Board.X || py < l.Board.Y || px >= l.Board.X+l.Board.W || py >= l.Board.Y+l.Board.H {
		return Position{}, false
	}
	p := Position{
		X: int((px - l.Origin.X) / l.CellSize),
		Y: int((py - l.Origin.Y) / l.CellSize),
	}
	return p, p.InBounds()
}
