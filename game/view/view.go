// Package view renders game snapshots as text for terminals and MCP replies.
package view

import (
	"fmt"
	"strings"

	"github.com/wricardo/dragons-aside/game/engine"
)

// blockSize is the number of characters per cell side
const blockSize = 3

// Options controls which overlays RenderBoard draws
type Options struct {
	Overlays bool // reachability and valid-move markers in cell corners
}

// Overlay markers, one per block corner
const (
	markFromStart = 's' // top-left
	markToFinish  = 'f' // top-right
	markValidMove = '*' // bottom-left
	markSelected  = '#' // bottom-right
)

// Block rasterises a tile into a 3x3 character block from the engine shape table
func Block(t engine.Tile) [blockSize][blockSize]rune {
	var b [blockSize][blockSize]rune
	for row := range b {
		for col := range b[row] {
			b[row][col] = ' '
		}
	}

	style := engine.TypeStyles[t.Type]
	for _, shape := range engine.ShapesFor(t) {
		for row := 0; row < blockSize; row++ {
			for col := 0; col < blockSize; col++ {
				fx := (float64(col) + 0.5) / blockSize
				fy := (float64(row) + 0.5) / blockSize
				if !covers(shape.Rect, fx, fy) {
					continue
				}
				switch {
				case shape.Color == engine.RoadSurface:
					b[row][col] = surfaceRune(row, col)
				case t.Type == engine.Road:
					b[row][col] = ' '
				default:
					b[row][col] = style.Glyph
				}
			}
		}
	}
	if !style.Filled && style.Glyph != 0 {
		b[1][1] = style.Glyph
	}
	return b
}

func covers(r engine.Rect, x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func surfaceRune(row, col int) rune {
	switch {
	case row == 1 && col == 1:
		return '+'
	case row == 1:
		return '-'
	default:
		return '|'
	}
}

// RenderTile draws a single tile, used for the hand preview
func RenderTile(t engine.Tile) string {
	b := Block(t)
	var sb strings.Builder
	for _, row := range b {
		sb.WriteString(string(row[:]))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// RenderBoard draws the whole grid with column and row labels
func RenderBoard(s *engine.Snapshot, opts Options) string {
	var sb strings.Builder

	sb.WriteString("   ")
	for x := 0; x < s.Width; x++ {
		fmt.Fprintf(&sb, " %-*d", blockSize, x)
	}
	sb.WriteByte('\n')

	for y := 0; y < s.Height; y++ {
		blocks := make([][blockSize][blockSize]rune, s.Width)
		for x := 0; x < s.Width; x++ {
			p := engine.Position{X: x, Y: y}
			blocks[x] = decorate(s, p, opts)
		}

		for row := 0; row < blockSize; row++ {
			if row == 1 {
				fmt.Fprintf(&sb, "%2d ", y)
			} else {
				sb.WriteString("   ")
			}
			for x := range blocks {
				sb.WriteByte('|')
				sb.WriteString(string(blocks[x][row][:]))
			}
			sb.WriteString("|\n")
		}
	}
	return sb.String()
}

// decorate adds the corner labels and overlays to a cell block
func decorate(s *engine.Snapshot, p engine.Position, opts Options) [blockSize][blockSize]rune {
	t := s.At(p)
	b := Block(t)

	if t.Type == engine.Empty {
		switch p {
		case s.Start:
			b[1][1] = 'S'
		case s.Finish:
			b[1][1] = 'F'
		}
	}

	if opts.Overlays {
		last := blockSize - 1
		if engine.Contains(s.FromStart, p) {
			b[0][0] = markFromStart
		}
		if engine.Contains(s.ToFinish, p) {
			b[0][last] = markToFinish
		}
		if engine.Contains(s.ValidMoves, p) {
			b[last][0] = markValidMove
		}
	}
	if t.Selected {
		b[blockSize-1][blockSize-1] = markSelected
	}
	return b
}

// RenderStatus summarises the turn state on one line
func RenderStatus(s *engine.Snapshot) string {
	hand := "none"
	if s.Hand != nil {
		hand = s.Hand.String()
	}

	path := "blocked"
	if s.CanReachEnd {
		path = "open"
	}

	status := fmt.Sprintf("Phase: %s | Pile: %d (%d roads, %d dragons) | Equipment: %d | Hand: %s | Placed: %d | Path: %s",
		s.Phase, s.PileSize, s.PileRoads, s.PileDragons, s.EquipmentHeld, hand, s.Placed, path)

	switch {
	case s.Victory:
		status += " | VICTORY"
	case s.GameOver:
		status += " | GAME OVER"
	}
	return status
}

// RenderLegend explains the board glyphs
func RenderLegend(opts Options) string {
	legend := "S start  F finish  . empty  E equipment  D dragon  -|+ road  # selected"
	if opts.Overlays {
		legend += "\ns reachable from start  f reaches finish  * valid move"
	}
	return legend
}

// RenderEvents lists events one per line
func RenderEvents(events []engine.Event) string {
	var sb strings.Builder
	for _, e := range events {
		fmt.Fprintf(&sb, "#%d %s: %s\n", e.Seq, e.Type, e.Message)
	}
	return sb.String()
}

// Render combines board, status and hand preview
func Render(s *engine.Snapshot, opts Options) string {
	var sb strings.Builder
	sb.WriteString(RenderBoard(s, opts))
	sb.WriteString(RenderStatus(s))
	sb.WriteByte('\n')
	if s.Hand != nil {
		sb.WriteString("Hand:\n")
		sb.WriteString(RenderTile(*s.Hand))
	}
	return sb.String()
}
