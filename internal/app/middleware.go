package app

import (
	"net/http"
	"strings"

	"github.com/Den2856/sturdy-octo-happiness/internal/domain"
)

// authenticate reads an optional bearer token. Requests without one pass
// through anonymously; a malformed or expired token is rejected.
func (app *Application) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		claims, err := app.tokens.Parse(token)
		if err != nil {
			app.contextGetLogger(r).Warn("rejected bearer token", "error", err)
			app.unauthorizedAccessResponse(w, r)
			return
		}

		userId, err := claims.UserID()
		if err != nil {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		next.ServeHTTP(w, app.contextSetUser(r, userId, claims.Role))
	})
}

func (app *Application) requireAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !app.contextIsAuthenticated(r) {
			app.unauthorizedAccessResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (app *Application) requireAdmin(next http.Handler) http.Handler {
	return app.requireAuthentication(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.contextGetRole(r) != domain.RoleAdmin {
			app.forbiddenResponse(w, r)
			return
		}

		next.ServeHTTP(w, r)
	}))
}
