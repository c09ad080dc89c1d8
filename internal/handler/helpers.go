package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"kanban/internal/domain"
	mw "kanban/internal/middleware"
)

// parseIdParam parses a numeric URL parameter and returns a meaningful error
func parseIdParam(r *http.Request, name string) (int64, error) {
	val, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", name)
	}
	return val, nil
}

// parseIntQuery parses an optional integer query parameter, falling back to def.
func parseIntQuery(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", name)
	}
	return val, nil
}

// currentUser returns the principal resolved by the auth middleware.
// Writes 401 and returns nil when the request carries no principal.
func currentUser(w http.ResponseWriter, r *http.Request) *domain.User {
	user := mw.GetUserFromContext(r)
	if user == nil {
		http.Error(w, "Not authorized", http.StatusUnauthorized)
	}
	return user
}
