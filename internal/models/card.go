package models

import "time"

// Status is the tri-state card marker rendered as a colored dot
type Status string

const (
	StatusGray  Status = "gray"  // issue
	StatusRed   Status = "red"   // incomplete
	StatusGreen Status = "green" // done
)

// ValidStatus reports whether s is one of the three known states
func ValidStatus(s Status) bool {
	return s == StatusGray || s == StatusRed || s == StatusGreen
}

// Card is a single task unit. It belongs to exactly one column and carries a
// denormalized snapshot of its author's display fields, refreshed only when
// the author's profile is edited. Position is scoped to the card's column;
// after a completed reorder the positions in a column are exactly 0..N-1.
type Card struct {
	ID            string    `json:"id"`
	ColumnID      string    `json:"columnId"`
	CreatorID     string    `json:"creatorId"`
	CreatorName   string    `json:"creatorName"`
	CreatorColor  string    `json:"creatorColor"`
	CreatorAvatar string    `json:"creatorAvatar"`
	Status        Status    `json:"status"`
	Content       string    `json:"content"`
	Position      int       `json:"order"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// DeletedCard is the immutable archival copy of a card taken at the moment of
// deletion. The application never mutates or removes these records.
type DeletedCard struct {
	ID            string    `json:"id"`
	OriginalID    string    `json:"originalId"`
	ColumnID      string    `json:"columnId"`
	CreatorID     string    `json:"creatorId"`
	CreatorName   string    `json:"creatorName"`
	CreatorColor  string    `json:"creatorColor"`
	CreatorAvatar string    `json:"creatorAvatar"`
	Status        Status    `json:"status"`
	Content       string    `json:"content"`
	Position      int       `json:"order"`
	DeletedAt     time.Time `json:"deletedAt"`
}
