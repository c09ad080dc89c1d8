package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"kanban/internal/domain"
	internal_errors "kanban/internal/errors"
)

// SaveUser inserts a new user together with their default board in a single
// transaction, so no registered user is ever observable without a default
// board. The unique constraints on email and username are the authoritative
// duplicate check.
func (s *Storage) SaveUser(user domain.User) (domain.User, error) {
	ctx, cancel := opCtx()
	defer cancel()

	var saved domain.User
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		saved, err = s.saveUser(tx, user)
		if err != nil {
			return err
		}
		board := domain.BoardCreationData{
			Name:        domain.DefaultBoardName,
			Description: domain.DefaultBoardDescription,
			Color:       domain.DefaultBoardColor,
			IsDefault:   true,
		}
		_, err = s.createBoard(tx, saved.Id, board)
		return err
	})
	if err != nil {
		return domain.User{}, err
	}
	return saved, nil
}

// UserByEmail is a public, read-only lookup on the connection pool.
func (s *Storage) UserByEmail(email domain.Email) (domain.User, error) {
	return s.userBy(s.db, "email", email)
}

// UserByUsername is a public, read-only lookup on the connection pool.
func (s *Storage) UserByUsername(username domain.Username) (domain.User, error) {
	return s.userBy(s.db, "username", username)
}

func (s *Storage) saveUser(q Querier, user domain.User) (domain.User, error) {
	var saved domain.User
	err := q.QueryRow(`
        INSERT INTO users(email, username, password_hash)
        VALUES($1, $2, $3)
        RETURNING id, email, username, password_hash, is_active, created, updated`,
		user.Email, user.Username, user.PassHash,
	).Scan(&saved.Id, &saved.Email, &saved.Username, &saved.PassHash, &saved.IsActive, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "Email already registered", StatusCode: http.StatusConflict}
		}
		if isUniqueViolation(err, "users_username_key") {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "Username already taken", StatusCode: http.StatusConflict}
		}
		return domain.User{}, fmt.Errorf("failed to insert user: %w", err)
	}
	return saved, nil
}

func (s *Storage) userBy(q Querier, column string, value string) (domain.User, error) {
	// column is one of the two constants above, never caller input
	query := fmt.Sprintf(`
        SELECT id, email, username, password_hash, is_active, created, updated
        FROM users WHERE %s = $1`, column)

	var user domain.User
	err := q.QueryRow(query, value).Scan(
		&user.Id, &user.Email, &user.Username, &user.PassHash, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, &internal_errors.ErrorWithStatusCode{Message: "User not found", StatusCode: http.StatusNotFound}
		}
		return domain.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}
