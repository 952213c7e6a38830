package game

import "errors"

var (
	ErrInventoryFull = errors.New("inventory is full")
	ErrSlotOccupied  = errors.New("slot is occupied")
	ErrItemNotFound  = errors.New("item not found")
	ErrInvalidValue  = errors.New("invalid value")
)
