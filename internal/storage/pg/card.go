package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"kanban/internal/domain"
	internal_errors "kanban/internal/errors"
)

const (
	cardColumns = "id, board_id, title, description, status, priority, created, updated"
	// same list qualified for queries that join boards
	cardColumnsC = "c.id, c.board_id, c.title, c.description, c.status, c.priority, c.created, c.updated"
)

var cardNotFound = &internal_errors.ErrorWithStatusCode{Message: "Card not found", StatusCode: http.StatusNotFound}

func scanCard(row rowScanner) (domain.Card, error) {
	var c domain.Card
	err := row.Scan(&c.Id, &c.BoardId, &c.Title, &c.Description, &c.Status, &c.Priority, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Cards lists the cards of a board owned by the user, ordered by status
// (enum order todo < in_progress < done), then priority descending, then
// creation time ascending. A board that is absent or owned by someone else
// yields an empty slice.
func (s *Storage) Cards(boardId domain.BoardId, userId domain.UserId, offset, limit int) ([]domain.Card, error) {
	rows, err := s.db.Query(`
        SELECT `+cardColumnsC+`
        FROM cards c
        JOIN boards b ON b.id = c.board_id
        WHERE c.board_id = $1 AND b.user_id = $2
        ORDER BY c.status ASC, c.priority DESC, c.created ASC
        OFFSET $3 LIMIT $4`, boardId, userId, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	cards := []domain.Card{}
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// Card resolves a card by walking the ownership chain back to the user.
func (s *Storage) Card(cardId domain.CardId, userId domain.UserId) (domain.Card, error) {
	return s.card(s.db, cardId, userId)
}

// CreateCard inserts a card under the board. Ownership verification and the
// insert are a single statement, so a board cannot change hands (or vanish)
// between the check and the write.
func (s *Storage) CreateCard(boardId domain.BoardId, userId domain.UserId, data domain.CardCreationData) (domain.Card, error) {
	ctx, cancel := opCtx()
	defer cancel()

	status := data.Status
	if status == "" {
		status = domain.StatusTodo
	}

	var card domain.Card
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		card, err = scanCard(tx.QueryRow(`
            INSERT INTO cards(board_id, title, description, status, priority)
            SELECT b.id, $3, $4, $5, $6
            FROM boards b
            WHERE b.id = $1 AND b.user_id = $2
            RETURNING `+cardColumns,
			boardId, userId, data.Title, data.Description, status, data.Priority))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return boardNotFound
			}
			return fmt.Errorf("failed to insert card: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Card{}, err
	}
	return card, nil
}

// UpdateCard applies a partial update; the ownership chain is re-checked in
// the same statement that mutates the row.
func (s *Storage) UpdateCard(cardId domain.CardId, userId domain.UserId, patch domain.CardPatch) (domain.Card, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var card domain.Card
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		set := []string{"updated = now()"}
		args := []any{cardId, userId}
		arg := func(v any) string {
			args = append(args, v)
			return fmt.Sprintf("$%d", len(args))
		}
		if patch.Title != nil {
			set = append(set, "title = "+arg(*patch.Title))
		}
		if patch.Description != nil {
			set = append(set, "description = "+arg(*patch.Description))
		}
		if patch.Status != nil {
			set = append(set, "status = "+arg(*patch.Status))
		}
		if patch.Priority != nil {
			set = append(set, "priority = "+arg(*patch.Priority))
		}

		query := fmt.Sprintf(`
            UPDATE cards c SET %s
            FROM boards b
            WHERE c.id = $1 AND b.id = c.board_id AND b.user_id = $2
            RETURNING %s`, strings.Join(set, ", "), cardColumnsC)

		var err error
		card, err = scanCard(tx.QueryRow(query, args...))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return cardNotFound
			}
			return fmt.Errorf("failed to update card: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Card{}, err
	}
	return card, nil
}

// DeleteCard removes the card when it is reachable through the user's
// ownership chain.
func (s *Storage) DeleteCard(cardId domain.CardId, userId domain.UserId) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.Exec(`
            DELETE FROM cards c
            USING boards b
            WHERE c.id = $1 AND b.id = c.board_id AND b.user_id = $2`, cardId, userId)
		if err != nil {
			return fmt.Errorf("failed to delete card: %w", err)
		}
		deleted, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check affected rows for card deletion: %w", err)
		}
		if deleted == 0 {
			return cardNotFound
		}
		return nil
	})
}

func (s *Storage) card(q Querier, cardId domain.CardId, userId domain.UserId) (domain.Card, error) {
	card, err := scanCard(q.QueryRow(`
        SELECT `+cardColumnsC+`
        FROM cards c
        JOIN boards b ON b.id = c.board_id
        WHERE c.id = $1 AND b.user_id = $2`, cardId, userId))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Card{}, cardNotFound
		}
		return domain.Card{}, fmt.Errorf("failed to query card: %w", err)
	}
	return card, nil
}
