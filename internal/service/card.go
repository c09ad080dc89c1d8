package service

import (
	"kanban/internal/domain"
	"kanban/internal/errors"
)

// to mock service in tests
type CardService interface {
	List(boardId domain.BoardId, userId domain.UserId, offset, limit int) ([]domain.Card, error)
	Get(cardId domain.CardId, userId domain.UserId) (domain.Card, error)
	Create(boardId domain.BoardId, userId domain.UserId, data domain.CardCreationData) (domain.Card, error)
	Update(cardId domain.CardId, userId domain.UserId, patch domain.CardPatch) (domain.Card, error)
	Delete(cardId domain.CardId, userId domain.UserId) error
}

type Card struct {
	storage   CardStorage
	pageLimit int
}

type CardStorage interface {
	Cards(boardId domain.BoardId, userId domain.UserId, offset, limit int) ([]domain.Card, error)
	Card(cardId domain.CardId, userId domain.UserId) (domain.Card, error)
	CreateCard(boardId domain.BoardId, userId domain.UserId, data domain.CardCreationData) (domain.Card, error)
	UpdateCard(cardId domain.CardId, userId domain.UserId, patch domain.CardPatch) (domain.Card, error)
	DeleteCard(cardId domain.CardId, userId domain.UserId) error
}

func NewCard(storage CardStorage, pageLimit int) *Card {
	return &Card{storage, pageLimit}
}

func validateTitle(title string) error {
	if len(title) < 1 || len(title) > 255 {
		return errors.BadRequest("Card title must be 1-255 characters")
	}
	return nil
}

func (c *Card) List(boardId domain.BoardId, userId domain.UserId, offset, limit int) ([]domain.Card, error) {
	offset = max(0, offset)
	if limit <= 0 || limit > c.pageLimit {
		limit = c.pageLimit
	}
	return c.storage.Cards(boardId, userId, offset, limit)
}

func (c *Card) Get(cardId domain.CardId, userId domain.UserId) (domain.Card, error) {
	return c.storage.Card(cardId, userId)
}

func (c *Card) Create(boardId domain.BoardId, userId domain.UserId, data domain.CardCreationData) (domain.Card, error) {
	if err := validateTitle(data.Title); err != nil {
		return domain.Card{}, err
	}
	if data.Status == "" {
		data.Status = domain.StatusTodo
	}
	if !data.Status.Valid() {
		return domain.Card{}, errors.BadRequest("Invalid card status")
	}
	if data.Priority < 0 {
		return domain.Card{}, errors.BadRequest("Priority must be non-negative")
	}
	return c.storage.CreateCard(boardId, userId, data)
}

func (c *Card) Update(cardId domain.CardId, userId domain.UserId, patch domain.CardPatch) (domain.Card, error) {
	if patch.Title != nil {
		if err := validateTitle(*patch.Title); err != nil {
			return domain.Card{}, err
		}
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return domain.Card{}, errors.BadRequest("Invalid card status")
	}
	if patch.Priority != nil && *patch.Priority < 0 {
		return domain.Card{}, errors.BadRequest("Priority must be non-negative")
	}
	if patch.Empty() {
		return c.storage.Card(cardId, userId)
	}
	return c.storage.UpdateCard(cardId, userId, patch)
}

func (c *Card) Delete(cardId domain.CardId, userId domain.UserId) error {
	return c.storage.DeleteCard(cardId, userId)
}
