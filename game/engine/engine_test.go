package engine

import (
	"errors"
	"reflect"
	"testing"
)

// newTestEngine returns an engine on an empty board with the given pile (top last)
func newTestEngine(t *testing.T, pile ...Tile) *GameEngine {
	t.Helper()
	e := NewEngineWithSeed(1)
	for i := range e.board.tiles {
		e.board.tiles[i] = Tile{Type: Empty}
	}
	e.board.pile.tiles = append([]Tile(nil), pile...)
	e.board.Recompute()
	return e
}

func TestNewGameEngine(t *testing.T) {
	e := NewEngineWithSeed(42)

	if e.Phase() != PhaseAwaitingDraw {
		t.Errorf("expected phase %s, got %s", PhaseAwaitingDraw, e.Phase())
	}
	if e.IsGameOver() || e.IsVictory() {
		t.Error("expected a fresh game not to be over")
	}
	if e.Board().Pile().Len() != PileSize {
		t.Errorf("expected %d tiles in pile, got %d", PileSize, e.Board().Pile().Len())
	}
	if e.Board().CountType(Equipment) != EquipmentCount {
		t.Errorf("expected %d equipment on board", EquipmentCount)
	}
	if _, ok := e.Hand(); ok {
		t.Error("expected empty hand")
	}
	if e.GameID() == "" {
		t.Error("expected a game id")
	}

	events := e.Events().Events()
	if len(events) != 1 || events[0].Type != EventNewGame {
		t.Errorf("expected a single new_game event, got %+v", events)
	}
}

func TestEngine_NewGameResets(t *testing.T) {
	e := newTestEngine(t, NewRoad(Up))
	firstID := e.GameID()
	if _, err := e.DrawNext(); err != nil {
		t.Fatal(err)
	}
	e.equipment = 2

	e.NewGame()

	if _, ok := e.Hand(); ok {
		t.Error("expected new game to clear the hand")
	}
	if e.EquipmentHeld() != 0 {
		t.Error("expected new game to clear equipment")
	}
	if e.GameID() == firstID {
		t.Error("expected a new game id")
	}
	if e.Board().Pile().Len() != PileSize {
		t.Errorf("expected rebuilt pile, got %d", e.Board().Pile().Len())
	}
}

func TestEngine_DrawRoadGoesToHand(t *testing.T) {
	e := newTestEngine(t, NewDragon(), NewRoad(Up, Down))

	tile, err := e.DrawNext()
	if err != nil {
		t.Fatalf("DrawNext failed: %v", err)
	}
	if tile.Type != Road {
		t.Fatalf("expected road on top, got %s", tile.Type)
	}
	if e.Phase() != PhasePlacing {
		t.Errorf("expected phase placing, got %s", e.Phase())
	}
	hand, ok := e.Hand()
	if !ok || hand.Connections != Up|Down {
		t.Errorf("expected up|down in hand, got %v %v", hand, ok)
	}

	if _, err := e.DrawNext(); !errors.Is(err, ErrTileInHand) {
		t.Errorf("expected ErrTileInHand, got %v", err)
	}
}

func TestEngine_PlaceWithoutHand(t *testing.T) {
	e := newTestEngine(t, NewRoad(Up))
	if err := e.PlaceTile(0, 7); !errors.Is(err, ErrNoTileInHand) {
		t.Errorf("expected ErrNoTileInHand, got %v", err)
	}
	if err := e.RotateHand(); !errors.Is(err, ErrNoTileInHand) {
		t.Errorf("expected ErrNoTileInHand from RotateHand, got %v", err)
	}
}

func TestEngine_RotateHand(t *testing.T) {
	e := newTestEngine(t, NewRoad(Up, Left))
	if _, err := e.DrawNext(); err != nil {
		t.Fatal(err)
	}
	if err := e.RotateHand(); err != nil {
		t.Fatal(err)
	}
	hand, _ := e.Hand()
	if hand.Connections != Up|Right {
		t.Errorf("expected up|right after rotation, got %s", hand.ConnectionList())
	}
}

func TestEngine_FailedPlacementKeepsHand(t *testing.T) {
	e := newTestEngine(t, NewRoad(Up))
	e.board.tiles[Position{X: 2, Y: 2}.Index()] = NewDragon()
	if _, err := e.DrawNext(); err != nil {
		t.Fatal(err)
	}

	if err := e.PlaceTile(2, 2); !errors.Is(err, ErrOccupiedCell) {
		t.Fatalf("expected ErrOccupiedCell, got %v", err)
	}
	if err := e.PlaceTile(9, 9); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	if _, ok := e.Hand(); !ok {
		t.Error("expected the tile to stay in hand")
	}
	if e.Phase() != PhasePlacing {
		t.Errorf("expected phase placing, got %s", e.Phase())
	}
}

func TestEngine_PlacementWins(t *testing.T) {
	e := newTestEngine(t, NewRoad(Up), NewRoad(Up, Down))
	if _, err := e.DrawNext(); err != nil {
		t.Fatal(err)
	}
	if err := e.PlaceTile(Start.X, Start.Y); err != nil {
		t.Fatal(err)
	}

	if !e.IsVictory() || e.Phase() != PhaseWon {
		t.Fatalf("expected a win once start and finish connect, phase %s", e.Phase())
	}
	if _, err := e.DrawNext(); !errors.Is(err, ErrGameOver) {
		t.Errorf("expected ErrGameOver after winning, got %v", err)
	}

	events := e.Events().Events()
	if events[len(events)-1].Type != EventVictory {
		t.Errorf("expected last event victory, got %s", events[len(events)-1].Type)
	}
}

func TestEngine_PlacementWithoutWin(t *testing.T) {
	e := newTestEngine(t, NewRoad(Up), NewRoad(Left))
	e.board.tiles[Position{X: 4, Y: 0}.Index()] = NewDragon()
	e.board.tiles[Position{X: 5, Y: 1}.Index()] = NewDragon()
	e.board.Recompute()

	if _, err := e.DrawNext(); err != nil {
		t.Fatal(err)
	}
	if err := e.PlaceTile(Start.X, Start.Y); err != nil {
		t.Fatal(err)
	}

	if e.IsGameOver() {
		t.Fatal("expected the game to continue with the finish walled off")
	}
	if e.Phase() != PhaseAwaitingDraw {
		t.Errorf("expected phase awaiting_draw, got %s", e.Phase())
	}
}

func TestEngine_EquipmentCollectedAndSpent(t *testing.T) {
	e := newTestEngine(t, NewDragon(), NewRoad(Up))
	e.board.tiles[Finish.Index()] = NewDragon() // keep the game going
	e.board.tiles[Position{X: 2, Y: 3}.Index()] = Tile{Type: Equipment}
	e.board.Recompute()

	if _, err := e.DrawNext(); err != nil {
		t.Fatal(err)
	}
	if err := e.PlaceTile(2, 3); err != nil {
		t.Fatal(err)
	}
	if e.EquipmentHeld() != 1 {
		t.Fatalf("expected 1 equipment held, got %d", e.EquipmentHeld())
	}

	tile, err := e.DrawNext()
	if err != nil {
		t.Fatal(err)
	}
	if tile.Type != Dragon {
		t.Fatalf("expected dragon, got %s", tile.Type)
	}
	if e.EquipmentHeld() != 0 {
		t.Errorf("expected equipment spent, got %d", e.EquipmentHeld())
	}
	if got := e.Board().CountType(Dragon); got != 1 {
		t.Errorf("expected the repelled dragon not to land, %d dragons on board", got)
	}

	types := eventTypes(e.Events().Events())
	for _, want := range []EventType{EventEquipmentCollected, EventDragonRepelled, EventPileExhausted} {
		if !containsType(types, want) {
			t.Errorf("expected event %s in %v", want, types)
		}
	}
	if e.Phase() != PhaseExhausted {
		t.Errorf("expected phase exhausted, got %s", e.Phase())
	}
}

func TestEngine_DragonLandsOnOpenCell(t *testing.T) {
	e := newTestEngine(t, NewRoad(Up), NewDragon())

	tile, err := e.DrawNext()
	if err != nil {
		t.Fatal(err)
	}
	if tile.Type != Dragon {
		t.Fatalf("expected dragon, got %s", tile.Type)
	}
	if got := e.Board().CountType(Dragon); got != 1 {
		t.Fatalf("expected one dragon on board, got %d", got)
	}

	for i, cell := range e.Board().Cells() {
		p := Position{X: i % Width, Y: i / Width}
		if cell.Type == Dragon && (p == Start || p == Finish) {
			t.Errorf("dragon landed on corner %v", p)
		}
	}
	if e.Phase() != PhaseAwaitingDraw {
		t.Errorf("expected phase awaiting_draw, got %s", e.Phase())
	}
	if _, ok := e.Hand(); ok {
		t.Error("dragons must never reach the hand")
	}
}

func TestEngine_DragonDiscardedWhenBoardFull(t *testing.T) {
	e := newTestEngine(t, NewRoad(Up), NewDragon())
	for i := range e.board.tiles {
		p := Position{X: i % Width, Y: i / Width}
		if p != Start && p != Finish {
			e.board.tiles[i] = NewRoad(Up)
		}
	}
	e.board.Recompute()

	if _, err := e.DrawNext(); err != nil {
		t.Fatal(err)
	}
	if e.Board().CountType(Dragon) != 0 {
		t.Error("expected no dragon to land")
	}
	if !containsType(eventTypes(e.Events().Events()), EventDragonDiscarded) {
		t.Error("expected dragon_discarded event")
	}
}

func TestEngine_EmptyPileIsTerminal(t *testing.T) {
	e := newTestEngine(t)

	if _, err := e.DrawNext(); !errors.Is(err, ErrEmptyPile) {
		t.Fatalf("expected ErrEmptyPile, got %v", err)
	}
	if e.Phase() != PhaseExhausted || !e.IsGameOver() {
		t.Errorf("expected exhausted game, phase %s", e.Phase())
	}
	if _, err := e.DrawNext(); !errors.Is(err, ErrGameOver) {
		t.Errorf("expected ErrGameOver, got %v", err)
	}
}

func TestEngine_SelectAndRotateSelected(t *testing.T) {
	e := newTestEngine(t, NewRoad(Left))
	if _, err := e.DrawNext(); err != nil {
		t.Fatal(err)
	}
	// Block the finish so the placement does not win.
	e.board.tiles[Finish.Index()] = NewDragon()
	if err := e.PlaceTile(3, 4); err != nil {
		t.Fatal(err)
	}

	e.RotateSelected()
	if got, _ := e.Board().Tile(3, 4); got.Connections != Left {
		t.Fatal("rotate without selection must not change the board")
	}

	if err := e.Select(3, 4); err != nil {
		t.Fatal(err)
	}
	e.RotateSelected()
	if got, _ := e.Board().Tile(3, 4); got.Connections != Up {
		t.Errorf("expected left to rotate to up, got %s", got.ConnectionList())
	}
	e.Deselect()
	if _, ok := e.Board().Selected(); ok {
		t.Error("expected no selection")
	}
}

func TestEngine_RotateSelectedCanWin(t *testing.T) {
	e := newTestEngine(t, NewRoad(Left), NewRoad(Up))
	e.board.tiles[Position{X: 4, Y: 0}.Index()] = NewDragon()
	e.board.Recompute()

	if _, err := e.DrawNext(); err != nil {
		t.Fatal(err)
	}
	// A road on the finish pointing off the board keeps the exit closed.
	if err := e.PlaceTile(Finish.X, Finish.Y); err != nil {
		t.Fatal(err)
	}
	if e.IsGameOver() {
		t.Fatalf("expected the game to continue, phase %s", e.Phase())
	}
	if err := e.Select(Finish.X, Finish.Y); err != nil {
		t.Fatal(err)
	}

	e.RotateSelected()
	if e.IsGameOver() {
		t.Fatal("expected no win with the finish road pointing right")
	}

	e.RotateSelected()
	if !e.IsVictory() {
		t.Fatalf("expected a win once the finish road turns down, phase %s", e.Phase())
	}
	events := e.Events().Events()
	if events[len(events)-1].Type != EventVictory {
		t.Errorf("expected last event victory, got %s", events[len(events)-1].Type)
	}

	e.RotateSelected()
	if got, _ := e.Board().Tile(Finish.X, Finish.Y); got.Connections != Down {
		t.Errorf("expected rotation ignored after the game ends, got %s", got.ConnectionList())
	}
}

func TestEngine_SeedReplaysGame(t *testing.T) {
	play := func(seed int64) ([]string, *Snapshot) {
		e := NewEngineWithSeed(seed)
		for i := 0; i < 200 && !e.IsGameOver(); i++ {
			if _, err := e.DrawNext(); err != nil {
				break
			}
			if _, ok := e.Hand(); !ok {
				continue
			}
			for _, p := range e.Board().OpenCells() {
				if err := e.PlaceTile(p.X, p.Y); err == nil {
					break
				}
			}
		}
		var messages []string
		for _, ev := range e.Events().Events() {
			messages = append(messages, ev.Message)
		}
		return messages, e.Snapshot()
	}

	msgA, snapA := play(2024)
	msgB, snapB := play(2024)

	if !reflect.DeepEqual(msgA, msgB) {
		t.Error("expected identical event messages for the same seed")
	}
	if !reflect.DeepEqual(snapA.Grid, snapB.Grid) {
		t.Error("expected identical boards for the same seed")
	}
	if snapA.Phase != snapB.Phase {
		t.Errorf("expected identical phases, got %s and %s", snapA.Phase, snapB.Phase)
	}
}

func TestEngine_Snapshot(t *testing.T) {
	e := newTestEngine(t, NewRoad(Up, Down))
	if _, err := e.DrawNext(); err != nil {
		t.Fatal(err)
	}
	if err := e.Select(1, 1); err != nil {
		t.Fatal(err)
	}

	s := e.Snapshot()
	if s.Width != Width || s.Height != Height || len(s.Grid) != Height || len(s.Grid[0]) != Width {
		t.Fatalf("unexpected snapshot dimensions %dx%d", s.Width, s.Height)
	}
	if s.Hand == nil || s.Hand.Connections != Up|Down {
		t.Errorf("expected hand in snapshot, got %v", s.Hand)
	}
	if s.Selected == nil || *s.Selected != (Position{1, 1}) {
		t.Errorf("expected selection (1,1), got %v", s.Selected)
	}
	if !s.At(Position{1, 1}).Selected {
		t.Error("expected selected flag on grid cell")
	}
	if !Contains(s.FromStart, Start) || !Contains(s.ToFinish, Finish) {
		t.Error("expected corners in their reachability sets")
	}
	if s.Phase != PhasePlacing {
		t.Errorf("expected placing phase, got %s", s.Phase)
	}

	// Snapshots are copies.
	s.Grid[0][0] = NewDragon()
	if got, _ := e.Board().Tile(0, 0); got.Type == Dragon {
		t.Error("mutating the snapshot must not touch the board")
	}
}

func eventTypes(events []Event) []EventType {
	types := make([]EventType, 0, len(events))
	for _, ev := range events {
		types = append(types, ev.Type)
	}
	return types
}

func containsType(types []EventType, want EventType) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}
