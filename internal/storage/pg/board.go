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

const boardColumns = "id, user_id, name, description, color, is_default, created, updated"

var boardNotFound = &internal_errors.ErrorWithStatusCode{Message: "Board not found", StatusCode: http.StatusNotFound}

// lastBoardError guards invariant B: a user always keeps at least one board.
var lastBoardError = &internal_errors.ErrorWithStatusCode{Message: "Cannot delete the only board", StatusCode: http.StatusUnprocessableEntity}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBoard(row rowScanner) (domain.Board, error) {
	var b domain.Board
	err := row.Scan(&b.Id, &b.UserId, &b.Name, &b.Description, &b.Color, &b.IsDefault, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// Boards returns every board of the user, default board first, then oldest
// first. A user without boards yields an empty slice, not an error.
func (s *Storage) Boards(userId domain.UserId) ([]domain.Board, error) {
	rows, err := s.db.Query(`
        SELECT `+boardColumns+`
        FROM boards
        WHERE user_id = $1
        ORDER BY is_default DESC, created ASC`, userId)
	if err != nil {
		return nil, fmt.Errorf("failed to query boards: %w", err)
	}
	defer rows.Close()

	boards := []domain.Board{}
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

// Board resolves a board only through its owner. A board that exists but
// belongs to a different user is reported as not found.
func (s *Storage) Board(boardId domain.BoardId, userId domain.UserId) (domain.Board, error) {
	return s.board(s.db, boardId, userId)
}

func (s *Storage) DefaultBoard(userId domain.UserId) (domain.Board, error) {
	board, err := scanBoard(s.db.QueryRow(`
        SELECT `+boardColumns+`
        FROM boards
        WHERE user_id = $1 AND is_default`, userId))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Board{}, boardNotFound
		}
		return domain.Board{}, fmt.Errorf("failed to query default board: %w", err)
	}
	return board, nil
}

// CreateBoard inserts a board for the user. When the new board is flagged
// default, the flag is cleared on the user's other boards inside the same
// transaction, so exactly one default is observable at any point.
func (s *Storage) CreateBoard(userId domain.UserId, data domain.BoardCreationData) (domain.Board, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var board domain.Board
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		board, err = s.createBoard(tx, userId, data)
		return err
	})
	if err != nil {
		return domain.Board{}, err
	}
	return board, nil
}

// UpdateBoard applies a partial update. Setting is_default=true clears the
// flag on every other board of the same user first, within one transaction.
func (s *Storage) UpdateBoard(boardId domain.BoardId, userId domain.UserId, patch domain.BoardPatch) (domain.Board, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var board domain.Board
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		board, err = s.updateBoard(tx, boardId, userId, patch)
		return err
	})
	if err != nil {
		return domain.Board{}, err
	}
	return board, nil
}

// DeleteBoard removes the board and, via ON DELETE CASCADE, all of its cards.
// Deleting the user's only board is rejected; the user's board rows are
// locked first so two concurrent deletes cannot both pass the count check.
func (s *Storage) DeleteBoard(boardId domain.BoardId, userId domain.UserId) error {
	ctx, cancel := opCtx()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var count int
		err := tx.QueryRow(`
            SELECT count(*) FROM (
                SELECT id FROM boards WHERE user_id = $1 FOR UPDATE
            ) locked`, userId).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to count boards: %w", err)
		}

		result, err := tx.Exec("DELETE FROM boards WHERE id = $1 AND user_id = $2 AND $3 > 1", boardId, userId, count)
		if err != nil {
			return fmt.Errorf("failed to delete board: %w", err)
		}
		deleted, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check affected rows for board deletion: %w", err)
		}
		if deleted == 0 {
			// Distinguish "not yours / absent" from "your last board"
			if _, err := s.board(tx, boardId, userId); err != nil {
				return err
			}
			return lastBoardError
		}
		return nil
	})
}

// BoardWithStats returns the board together with per-status card counts,
// computed in a single query.
func (s *Storage) BoardWithStats(boardId domain.BoardId, userId domain.UserId) (domain.BoardStats, error) {
	var stats domain.BoardStats
	err := s.db.QueryRow(`
        SELECT b.id, b.user_id, b.name, b.description, b.color, b.is_default, b.created, b.updated,
               count(c.id) AS card_count,
               count(c.id) FILTER (WHERE c.status = 'todo') AS todo_count,
               count(c.id) FILTER (WHERE c.status = 'in_progress') AS in_progress_count,
               count(c.id) FILTER (WHERE c.status = 'done') AS done_count
        FROM boards b
        LEFT JOIN cards c ON c.board_id = b.id
        WHERE b.id = $1 AND b.user_id = $2
        GROUP BY b.id`, boardId, userId,
	).Scan(&stats.Id, &stats.UserId, &stats.Name, &stats.Description, &stats.Color, &stats.IsDefault,
		&stats.CreatedAt, &stats.UpdatedAt,
		&stats.CardCount, &stats.TodoCount, &stats.InProgressCount, &stats.DoneCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.BoardStats{}, boardNotFound
		}
		return domain.BoardStats{}, fmt.Errorf("failed to query board stats: %w", err)
	}
	return stats, nil
}

func (s *Storage) board(q Querier, boardId domain.BoardId, userId domain.UserId) (domain.Board, error) {
	board, err := scanBoard(q.QueryRow(`
        SELECT `+boardColumns+`
        FROM boards
        WHERE id = $1 AND user_id = $2`, boardId, userId))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Board{}, boardNotFound
		}
		return domain.Board{}, fmt.Errorf("failed to query board: %w", err)
	}
	return board, nil
}

func (s *Storage) createBoard(q Querier, userId domain.UserId, data domain.BoardCreationData) (domain.Board, error) {
	if data.IsDefault {
		if err := s.clearDefault(q, userId, 0); err != nil {
			return domain.Board{}, err
		}
	}
	color := data.Color
	if color == "" {
		color = domain.DefaultBoardColor
	}
	board, err := scanBoard(q.QueryRow(`
        INSERT INTO boards(user_id, name, description, color, is_default)
        VALUES($1, $2, $3, $4, $5)
        RETURNING `+boardColumns,
		userId, data.Name, data.Description, color, data.IsDefault))
	if err != nil {
		return domain.Board{}, fmt.Errorf("failed to insert board: %w", err)
	}
	return board, nil
}

func (s *Storage) updateBoard(q Querier, boardId domain.BoardId, userId domain.UserId, patch domain.BoardPatch) (domain.Board, error) {
	if patch.IsDefault != nil && *patch.IsDefault {
		if err := s.clearDefault(q, userId, boardId); err != nil {
			return domain.Board{}, err
		}
	}

	// Explicit field-by-field merge; absent fields never reach the SET list.
	set := []string{"updated = now()"}
	args := []any{boardId, userId}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if patch.Name != nil {
		set = append(set, "name = "+arg(*patch.Name))
	}
	if patch.Description != nil {
		set = append(set, "description = "+arg(*patch.Description))
	}
	if patch.Color != nil {
		set = append(set, "color = "+arg(*patch.Color))
	}
	if patch.IsDefault != nil {
		set = append(set, "is_default = "+arg(*patch.IsDefault))
	}

	query := fmt.Sprintf(`
        UPDATE boards SET %s
        WHERE id = $1 AND user_id = $2
        RETURNING %s`, strings.Join(set, ", "), boardColumns)

	board, err := scanBoard(q.QueryRow(query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Board{}, boardNotFound
		}
		return domain.Board{}, fmt.Errorf("failed to update board: %w", err)
	}
	return board, nil
}

// clearDefault unsets is_default on every board of the user except keepId
// (0 keeps nothing, used on insert).
func (s *Storage) clearDefault(q Querier, userId domain.UserId, keepId domain.BoardId) error {
	_, err := q.Exec(`
        UPDATE boards SET is_default = FALSE, updated = now()
        WHERE user_id = $1 AND is_default AND id <> $2`, userId, keepId)
	if err != nil {
		return fmt.Errorf("failed to clear default boards: %w", err)
	}
	return nil
}
