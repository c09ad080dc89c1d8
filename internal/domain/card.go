package domain

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// CardStatus is a closed enumeration persisted as a postgres enum.
// The enum declaration order (todo < in_progress < done) drives card sorting.
type CardStatus string

const (
	StatusTodo       CardStatus = "todo"
	StatusInProgress CardStatus = "in_progress"
	StatusDone       CardStatus = "done"
)

func (s CardStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Scan implements sql.Scanner. lib/pq hands enum values over as []byte.
func (s *CardStatus) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		*s = CardStatus(v)
	case string:
		*s = CardStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into CardStatus", src)
	}
	if !s.Valid() {
		return fmt.Errorf("invalid card status %q", *s)
	}
	return nil
}

func (s CardStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid card status %q", s)
	}
	return string(s), nil
}

type Card struct {
	Id          CardId     `json:"id"`
	BoardId     BoardId    `json:"board_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      CardStatus `json:"status"`
	Priority    int        `json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CardCreationData struct {
	Title       string
	Description string
	Status      CardStatus
	Priority    int
}

// CardPatch carries a partial update. Nil fields are left untouched.
type CardPatch struct {
	Title       *string
	Description *string
	Status      *CardStatus
	Priority    *int
}

func (p CardPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.Priority == nil
}
