package engine

import "errors"

var (
	ErrOutOfBounds  = errors.New("position out of bounds")
	ErrOccupiedCell = errors.New("cell is occupied")
	ErrEmptyPile    = errors.New("draw pile is empty")
	ErrNoTileInHand = errors.New("no tile in hand")
	ErrTileInHand   = errors.New("a tile is already in hand")
	ErrGameOver     = errors.New("game is over")
)
