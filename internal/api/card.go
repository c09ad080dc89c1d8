package api

import "kanban/internal/domain"

// Request DTOs

type CreateCardRequest struct {
	Title       string            `json:"title" validate:"required,min=1,max=255"`
	Description string            `json:"description,omitempty"`
	Status      domain.CardStatus `json:"status,omitempty" validate:"omitempty,oneof=todo in_progress done"`
	Priority    int               `json:"priority,omitempty" validate:"gte=0"`
}

// UpdateCardRequest is a partial update: absent fields stay untouched.
type UpdateCardRequest struct {
	Title       *string            `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string            `json:"description,omitempty"`
	Status      *domain.CardStatus `json:"status,omitempty" validate:"omitempty,oneof=todo in_progress done"`
	Priority    *int               `json:"priority,omitempty" validate:"omitempty,gte=0"`
}

func (r UpdateCardRequest) Patch() domain.CardPatch {
	return domain.CardPatch{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Priority:    r.Priority,
	}
}

// Response DTOs

type CardResponse struct {
	domain.Card
}

type CardListResponse struct {
	Cards []domain.Card `json:"cards"`
}

type DeleteCardResponse struct {
	Message string `json:"message"`
}
