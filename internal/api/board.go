package api

import "kanban/internal/domain"

// Request DTOs

type CreateBoardRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	IsDefault   bool   `json:"is_default,omitempty"`
}

// UpdateBoardRequest is a partial update: absent fields stay untouched.
type UpdateBoardRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	IsDefault   *bool   `json:"is_default,omitempty"`
}

func (r UpdateBoardRequest) Patch() domain.BoardPatch {
	return domain.BoardPatch{
		Name:        r.Name,
		Description: r.Description,
		Color:       r.Color,
		IsDefault:   r.IsDefault,
	}
}

// Response DTOs

type BoardResponse struct {
	domain.Board
}

type BoardListResponse struct {
	Boards []domain.Board `json:"boards"`
}

type BoardStatsResponse struct {
	domain.BoardStats
}

type DeleteBoardResponse struct {
	Message string `json:"message"`
}
