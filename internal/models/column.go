package models

import "time"

// Column represents an ordered lane of cards (e.g., "Todo", "In Progress").
// Position is the board-wide sort key; only relative order matters, values
// are not required to be contiguous.
type Column struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Position  int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
}
