package service

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"kanban/internal/domain"
	"kanban/internal/errors"
	"kanban/internal/logger"
)

// to mock service in tests
type AuthService interface {
	Register(creds domain.Credentials) (domain.User, error)
	Login(username domain.Username, password domain.Password) (string, error)
	Me(username domain.Username) (domain.User, error)
}

type Auth struct {
	storage AuthStorage
	jwt     Jwt
}

type AuthStorage interface {
	SaveUser(user domain.User) (domain.User, error)
	UserByEmail(email domain.Email) (domain.User, error)
	UserByUsername(username domain.Username) (domain.User, error)
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

func NewAuth(storage AuthStorage, jwt Jwt) *Auth {
	return &Auth{storage, jwt}
}

// Register creates a new user account together with its default board.
// The storage-level unique constraints are the authoritative duplicate
// check; the lookups below only produce friendlier errors and cannot be
// relied on under concurrent registrations.
func (a *Auth) Register(creds domain.Credentials) (domain.User, error) {
	email := strings.ToLower(creds.Email)

	if _, err := a.storage.UserByEmail(email); err == nil {
		return domain.User{}, errors.Conflict("Email already registered")
	} else if !errors.IsNotFound(err) {
		return domain.User{}, err
	}
	if _, err := a.storage.UserByUsername(creds.Username); err == nil {
		return domain.User{}, errors.Conflict("Username already taken")
	} else if !errors.IsNotFound(err) {
		return domain.User{}, err
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.User{}, err
	}

	user, err := a.storage.SaveUser(domain.User{Email: email, Username: creds.Username, PassHash: string(passHash)})
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Login checks the credentials and returns an access token.
// Unknown username and wrong password collapse into the same 401 so login
// attempts cannot probe for existing accounts.
func (a *Auth) Login(username domain.Username, password domain.Password) (string, error) {
	user, err := a.storage.UserByUsername(username)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", errors.Unauthorized("Invalid credentials")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(password)); err != nil {
		return "", errors.Unauthorized("Invalid credentials")
	}

	if !user.IsActive {
		return "", errors.Unauthorized("Account is inactive")
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to create jwt token", "user_id", user.Id, "error", err)
		return "", err
	}

	return token, nil
}

// Me returns the fresh account record for the authenticated principal.
func (a *Auth) Me(username domain.Username) (domain.User, error) {
	return a.storage.UserByUsername(username)
}
