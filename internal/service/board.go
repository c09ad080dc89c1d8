package service

import (
	"regexp"

	"kanban/internal/domain"
	"kanban/internal/errors"
)

// to mock service in tests
type BoardService interface {
	List(userId domain.UserId) ([]domain.Board, error)
	Get(boardId domain.BoardId, userId domain.UserId) (domain.Board, error)
	Default(userId domain.UserId) (domain.Board, error)
	Create(userId domain.UserId, data domain.BoardCreationData) (domain.Board, error)
	Update(boardId domain.BoardId, userId domain.UserId, patch domain.BoardPatch) (domain.Board, error)
	Delete(boardId domain.BoardId, userId domain.UserId) error
	Stats(boardId domain.BoardId, userId domain.UserId) (domain.BoardStats, error)
}

type Board struct {
	storage BoardStorage
}

type BoardStorage interface {
	Boards(userId domain.UserId) ([]domain.Board, error)
	Board(boardId domain.BoardId, userId domain.UserId) (domain.Board, error)
	DefaultBoard(userId domain.UserId) (domain.Board, error)
	CreateBoard(userId domain.UserId, data domain.BoardCreationData) (domain.Board, error)
	UpdateBoard(boardId domain.BoardId, userId domain.UserId, patch domain.BoardPatch) (domain.Board, error)
	DeleteBoard(boardId domain.BoardId, userId domain.UserId) error
	BoardWithStats(boardId domain.BoardId, userId domain.UserId) (domain.BoardStats, error)
}

func NewBoard(storage BoardStorage) *Board {
	return &Board{storage}
}

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func validateBoardName(name string) error {
	if len(name) < 1 || len(name) > 255 {
		return errors.BadRequest("Board name must be 1-255 characters")
	}
	return nil
}

func validateColor(color string) error {
	if !colorPattern.MatchString(color) {
		return errors.BadRequest("Color must be a #RRGGBB hex code")
	}
	return nil
}

func (b *Board) List(userId domain.UserId) ([]domain.Board, error) {
	return b.storage.Boards(userId)
}

func (b *Board) Get(boardId domain.BoardId, userId domain.UserId) (domain.Board, error) {
	return b.storage.Board(boardId, userId)
}

func (b *Board) Default(userId domain.UserId) (domain.Board, error) {
	return b.storage.DefaultBoard(userId)
}

func (b *Board) Create(userId domain.UserId, data domain.BoardCreationData) (domain.Board, error) {
	if err := validateBoardName(data.Name); err != nil {
		return domain.Board{}, err
	}
	if data.Color == "" {
		data.Color = domain.DefaultBoardColor
	}
	if err := validateColor(data.Color); err != nil {
		return domain.Board{}, err
	}
	return b.storage.CreateBoard(userId, data)
}

func (b *Board) Update(boardId domain.BoardId, userId domain.UserId, patch domain.BoardPatch) (domain.Board, error) {
	if patch.Name != nil {
		if err := validateBoardName(*patch.Name); err != nil {
			return domain.Board{}, err
		}
	}
	if patch.Color != nil {
		if err := validateColor(*patch.Color); err != nil {
			return domain.Board{}, err
		}
	}
	if patch.Empty() {
		// nothing to change, return the current state
		return b.storage.Board(boardId, userId)
	}
	return b.storage.UpdateBoard(boardId, userId, patch)
}

func (b *Board) Delete(boardId domain.BoardId, userId domain.UserId) error {
	return b.storage.DeleteBoard(boardId, userId)
}

func (b *Board) Stats(boardId domain.BoardId, userId domain.UserId) (domain.BoardStats, error) {
	return b.storage.BoardWithStats(boardId, userId)
}
