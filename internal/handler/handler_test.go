package handler

import (
	"context"
	"net/http"

	"kanban/internal/config"
	"kanban/internal/domain"
	mw "kanban/internal/middleware"
)

// Shared helpers and service mocks for handler tests.

func testConfig() *config.Config {
	return &config.Config{Public: config.Public{JwtTTLSeconds: 1800, CardsPageLimit: 100}}
}

// withUser injects a principal the way the auth middleware would.
func withUser(r *http.Request, user *domain.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), mw.UserClaimsKey, user))
}

type MockAuthService struct {
	MockRegister func(creds domain.Credentials) (domain.User, error)
	MockLogin    func(username domain.Username, password domain.Password) (string, error)
	MockMe       func(username domain.Username) (domain.User, error)
}

func (m *MockAuthService) Register(creds domain.Credentials) (domain.User, error) {
	if m.MockRegister != nil {
		return m.MockRegister(creds)
	}
	return domain.User{}, nil
}

func (m *MockAuthService) Login(username domain.Username, password domain.Password) (string, error) {
	if m.MockLogin != nil {
		return m.MockLogin(username, password)
	}
	return "token", nil
}

func (m *MockAuthService) Me(username domain.Username) (domain.User, error) {
	if m.MockMe != nil {
		return m.MockMe(username)
	}
	return domain.User{Username: username}, nil
}

type MockBoardService struct {
	MockList    func(userId domain.UserId) ([]domain.Board, error)
	MockGet     func(boardId domain.BoardId, userId domain.UserId) (domain.Board, error)
	MockDefault func(userId domain.UserId) (domain.Board, error)
	MockCreate  func(userId domain.UserId, data domain.BoardCreationData) (domain.Board, error)
	MockUpdate  func(boardId domain.BoardId, userId domain.UserId, patch domain.BoardPatch) (domain.Board, error)
	MockDelete  func(boardId domain.BoardId, userId domain.UserId) error
	MockStats   func(boardId domain.BoardId, userId domain.UserId) (domain.BoardStats, error)
}

func (m *MockBoardService) List(userId domain.UserId) ([]domain.Board, error) {
	if m.MockList != nil {
		return m.MockList(userId)
	}
	return []domain.Board{}, nil
}

func (m *MockBoardService) Get(boardId domain.BoardId, userId domain.UserId) (domain.Board, error) {
	if m.MockGet != nil {
		return m.MockGet(boardId, userId)
	}
	return domain.Board{Id: boardId, UserId: userId}, nil
}

func (m *MockBoardService) Default(userId domain.UserId) (domain.Board, error) {
	if m.MockDefault != nil {
		return m.MockDefault(userId)
	}
	return domain.Board{UserId: userId, IsDefault: true}, nil
}

func (m *MockBoardService) Create(userId domain.UserId, data domain.BoardCreationData) (domain.Board, error) {
	if m.MockCreate != nil {
		return m.MockCreate(userId, data)
	}
	return domain.Board{UserId: userId, Name: data.Name}, nil
}

func (m *MockBoardService) Update(boardId domain.BoardId, userId domain.UserId, patch domain.BoardPatch) (domain.Board, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(boardId, userId, patch)
	}
	return domain.Board{Id: boardId, UserId: userId}, nil
}

func (m *MockBoardService) Delete(boardId domain.BoardId, userId domain.UserId) error {
	if m.MockDelete != nil {
		return m.MockDelete(boardId, userId)
	}
	return nil
}

func (m *MockBoardService) Stats(boardId domain.BoardId, userId domain.UserId) (domain.BoardStats, error) {
	if m.MockStats != nil {
		return m.MockStats(boardId, userId)
	}
	return domain.BoardStats{}, nil
}

type MockCardService struct {
	MockList   func(boardId domain.BoardId, userId domain.UserId, offset, limit int) ([]domain.Card, error)
	MockGet    func(cardId domain.CardId, userId domain.UserId) (domain.Card, error)
	MockCreate func(boardId domain.BoardId, userId domain.UserId, data domain.CardCreationData) (domain.Card, error)
	MockUpdate func(cardId domain.CardId, userId domain.UserId, patch domain.CardPatch) (domain.Card, error)
	MockDelete func(cardId domain.CardId, userId domain.UserId) error
}

func (m *MockCardService) List(boardId domain.BoardId, userId domain.UserId, offset, limit int) ([]domain.Card, error) {
	if m.MockList != nil {
		return m.MockList(boardId, userId, offset, limit)
	}
	return []domain.Card{}, nil
}

func (m *MockCardService) Get(cardId domain.CardId, userId domain.UserId) (domain.Card, error) {
	if m.MockGet != nil {
		return m.MockGet(cardId, userId)
	}
	return domain.Card{Id: cardId}, nil
}

func (m *MockCardService) Create(boardId domain.BoardId, userId domain.UserId, data domain.CardCreationData) (domain.Card, error) {
	if m.MockCreate != nil {
		return m.MockCreate(boardId, userId, data)
	}
	return domain.Card{BoardId: boardId, Title: data.Title}, nil
}

func (m *MockCardService) Update(cardId domain.CardId, userId domain.UserId, patch domain.CardPatch) (domain.Card, error) {
	if m.MockUpdate != nil {
		return m.MockUpdate(cardId, userId, patch)
	}
	return domain.Card{Id: cardId}, nil
}

func (m *MockCardService) Delete(cardId domain.CardId, userId domain.UserId) error {
	if m.MockDelete != nil {
		return m.MockDelete(cardId, userId)
	}
	return nil
}
