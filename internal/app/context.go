package app

import (
	"context"
	"net/http"

	"github.com/Den2856/sturdy-octo-happiness/internal/domain"
	"github.com/google/uuid"
)

type contextKey string

const (
	userIdContextKey   = contextKey("userID")
	userRoleContextKey = contextKey("userRole")
)

func (app *Application) contextSetUser(r *http.Request, id uuid.UUID, role domain.Role) *http.Request {
	ctx := context.WithValue(r.Context(), userIdContextKey, id)
	ctx = context.WithValue(ctx, userRoleContextKey, role)

	return r.WithContext(ctx)
}

// contextGetUserId panics when called outside requireAuthentication.
func (app *Application) contextGetUserId(r *http.Request) uuid.UUID {
	userId, ok := r.Context().Value(userIdContextKey).(uuid.UUID)
	if !ok {
		panic("missing user id from context")
	}

	return userId
}

func (app *Application) contextGetRole(r *http.Request) domain.Role {
	role, ok := r.Context().Value(userRoleContextKey).(domain.Role)
	if !ok {
		return ""
	}

	return role
}

func (app *Application) contextIsAuthenticated(r *http.Request) bool {
	_, ok := r.Context().Value(userIdContextKey).(uuid.UUID)
	return ok
}
