package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// Phase is the turn state of a game
type Phase string

const (
	PhaseAwaitingDraw Phase = "awaiting_draw"
	PhasePlacing      Phase = "placing"
	PhaseWon          Phase = "won"
	PhaseExhausted    Phase = "exhausted"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game lifecycle
	NewGame()
	Phase() Phase
	IsGameOver() bool
	IsVictory() bool
	GameID() string

	// Input surface
	DrawNext() (Tile, error)
	RotateHand() error
	PlaceTile(x, y int) error
	Select(x, y int) error
	Deselect()
	RotateSelected()

	// Queries
	Board() *Board
	Hand() (Tile, bool)
	EquipmentHeld() int
	Snapshot() *Snapshot
	Events() *EventLog
}

// GameEngine sequences a single game: draw a tile, place or rotate it, resolve
// dragons, recompute reachability and check for a win.
type GameEngine struct {
	id        string
	board     *Board
	rng       RandomSource
	log       *EventLog
	phase     Phase
	hand      *Tile
	equipment int
	placed    int
}

var _ Engine = (*GameEngine)(nil)

// NewGameEngine creates an engine that owns rng and log, and deals a new game
func NewGameEngine(rng RandomSource, log *EventLog) *GameEngine {
	if log == nil {
		log = NewEventLog(0)
	}
	e := &GameEngine{
		board: NewBoard(),
		rng:   rng,
		log:   log,
	}
	e.NewGame()
	return e
}

// NewEngineWithSeed creates an engine with a deterministic source
func NewEngineWithSeed(seed int64) *GameEngine {
	return NewGameEngine(NewRandomSource(seed), NewEventLog(0))
}

// NewGame resets the board, pile, hand and inventory
func (e *GameEngine) NewGame() {
	e.id = uuid.NewString()
	e.board.NewGame(e.rng)
	e.phase = PhaseAwaitingDraw
	e.hand = nil
	e.equipment = 0
	e.placed = 0
	e.emit(EventNewGame, nil, "New game dealt (seed %d): %d tiles in pile, %d equipment on board",
		e.rng.Seed(), e.board.Pile().Len(), e.board.CountType(Equipment))
}

// GameID returns the identifier of the current game
func (e *GameEngine) GameID() string {
	return e.id
}

// Phase returns the current turn state
func (e *GameEngine) Phase() Phase {
	return e.phase
}

// IsGameOver returns whether no further moves are possible
func (e *GameEngine) IsGameOver() bool {
	return e.phase == PhaseWon || e.phase == PhaseExhausted
}

// IsVictory returns whether the player has won
func (e *GameEngine) IsVictory() bool {
	return e.phase == PhaseWon
}

// Board returns the game board
func (e *GameEngine) Board() *Board {
	return e.board
}

// Events returns the event log
func (e *GameEngine) Events() *EventLog {
	return e.log
}

// Hand returns the tile waiting to be placed
func (e *GameEngine) Hand() (Tile, bool) {
	if e.hand == nil {
		return Tile{}, false
	}
	return *e.hand, true
}

// EquipmentHeld returns the collected equipment not yet spent on dragons
func (e *GameEngine) EquipmentHeld() int {
	return e.equipment
}

// DrawNext takes the top tile from the pile. Roads go to the hand; dragons
// resolve immediately.
func (e *GameEngine) DrawNext() (Tile, error) {
	if e.IsGameOver() {
		return Tile{}, ErrGameOver
	}
	if e.hand != nil {
		return Tile{}, ErrTileInHand
	}

	tile, err := e.board.Pile().Draw()
	if err != nil {
		e.exhaust()
		return Tile{}, fmt.Errorf("draw: %w", err)
	}

	switch tile.Type {
	case Dragon:
		e.emit(EventDraw, nil, "Drew a dragon (%d left)", e.board.Pile().Len())
		e.resolveDragon()
		e.afterTurn()
	default:
		e.hand = &tile
		e.phase = PhasePlacing
		e.emit(EventDraw, nil, "Drew %s (%d left)", tile, e.board.Pile().Len())
	}
	return tile, nil
}

// RotateHand turns the held tile clockwise
func (e *GameEngine) RotateHand() error {
	if e.hand == nil {
		return ErrNoTileInHand
	}
	e.hand.Rotate()
	e.emit(EventRotate, nil, "Rotated hand to %s", e.hand.ConnectionList())
	return nil
}

// PlaceTile puts the held tile on x,y
func (e *GameEngine) PlaceTile(x, y int) error {
	if e.IsGameOver() {
		return ErrGameOver
	}
	if e.hand == nil {
		return ErrNoTileInHand
	}

	previous, err := e.board.PlaceTile(x, y, *e.hand)
	if err != nil {
		return err
	}

	pos := Position{X: x, Y: y}
	e.emit(EventPlace, &pos, "Placed %s at (%d,%d)", e.hand, x, y)
	e.hand = nil
	e.placed++

	if previous.Type == Equipment {
		e.equipment++
		e.emit(EventEquipmentCollected, &pos, "Equipment collected at (%d,%d) (%d held)", x, y, e.equipment)
	}

	if e.board.CanReachEnd() {
		e.phase = PhaseWon
		e.emit(EventVictory, nil, "The road reaches the exit after %d placements", e.placed)
		return nil
	}
	e.afterTurn()
	return nil
}

// Select highlights a board cell
func (e *GameEngine) Select(x, y int) error {
	return e.board.Select(x, y)
}

// Deselect clears the board highlight
func (e *GameEngine) Deselect() {
	e.board.Deselect()
}

// RotateSelected rotates the selected board cell. Turning a road can join the
// two reachable sets, so the win is checked again. Ignored once the game is over.
func (e *GameEngine) RotateSelected() {
	if e.IsGameOver() {
		return
	}
	pos, ok := e.board.Selected()
	if !ok {
		return
	}
	e.board.RotateSelected()
	e.emit(EventRotate, &pos, "Rotated cell (%d,%d)", pos.X, pos.Y)

	if tile, _ := e.board.Tile(pos.X, pos.Y); tile.Type == Road && e.board.CanReachEnd() {
		e.phase = PhaseWon
		e.hand = nil
		e.emit(EventVictory, nil, "The road reaches the exit after %d placements", e.placed)
	}
}

// resolveDragon spends one equipment to cancel the landing, otherwise drops
// the dragon on a random empty cell.
func (e *GameEngine) resolveDragon() {
	if e.equipment > 0 {
		e.equipment--
		e.emit(EventDragonRepelled, nil, "Equipment repels the dragon (%d held)", e.equipment)
		return
	}

	open := e.board.OpenCells()
	if len(open) == 0 {
		e.emit(EventDragonDiscarded, nil, "The dragon finds nowhere to land")
		return
	}

	target := open[e.rng.IntN(len(open))]
	if _, err := e.board.PlaceTile(target.X, target.Y, NewDragon()); err != nil {
		e.emit(EventDragonDiscarded, nil, "The dragon could not land: %v", err)
		return
	}
	e.emit(EventDragonLanded, &target, "A dragon lands at (%d,%d)", target.X, target.Y)
}

// afterTurn moves back to the draw phase, or ends the game if nothing is left
func (e *GameEngine) afterTurn() {
	if e.board.Pile().IsEmpty() {
		e.exhaust()
		return
	}
	e.phase = PhaseAwaitingDraw
}

func (e *GameEngine) exhaust() {
	if e.phase == PhaseExhausted {
		return
	}
	e.phase = PhaseExhausted
	e.emit(EventPileExhausted, nil, "The draw pile is empty")
}

func (e *GameEngine) emit(eventType EventType, pos *Position, format string, args ...any) {
	e.log.Append(Event{
		GameID:   e.id,
		Type:     eventType,
		Message:  fmt.Sprintf(format, args...),
		Position: pos,
	})
}
