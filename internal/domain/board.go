package domain

import "time"

// Defaults for the board created alongside every new user.
const (
	DefaultBoardName        = "My Kanban Board"
	DefaultBoardDescription = "Default board"
	DefaultBoardColor       = "#667eea"
)

type Board struct {
	Id          BoardId   `json:"id"`
	UserId      UserId    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	IsDefault   bool      `json:"is_default"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// to iterate thru layers: handler -> service -> storage
type BoardCreationData struct {
	Name        string
	Description string
	Color       string
	IsDefault   bool
}

// BoardPatch carries a partial update. Nil fields are left untouched.
type BoardPatch struct {
	Name        *string
	Description *string
	Color       *string
	IsDefault   *bool
}

// Empty reports whether the patch would change nothing.
func (p BoardPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Color == nil && p.IsDefault == nil
}

// BoardStats is a derived read view, recomputed on every request.
type BoardStats struct {
	Board
	CardCount       int `json:"card_count"`
	TodoCount       int `json:"todo_count"`
	InProgressCount int `json:"in_progress_count"`
	DoneCount       int `json:"done_count"`
}
