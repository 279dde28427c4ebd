package app

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Den2856/sturdy-octo-happiness/internal/jsonutil"
	"github.com/Den2856/sturdy-octo-happiness/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var errInvalidId = errors.New("invalid id parameter")

func (app *Application) writeJSON(w http.ResponseWriter, status int, data any, headers http.Header) error {
	return jsonutil.WriteJSON(w, status, data, headers)
}

func (app *Application) readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return jsonutil.ReadJSON(w, r, dst)
}

func (app *Application) contextGetLogger(r *http.Request) *slog.Logger {
	return middleware.Logger(r.Context(), app.logger)
}

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, errInvalidId
	}

	return id, nil
}

// queryString returns nil for an absent or empty query parameter.
func queryString(r *http.Request, key string) *string {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return nil
	}

	return &v
}

// queryInt returns nil for an absent parameter and an error for one that is
// not a number.
func queryInt(r *http.Request, key string) (*int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, errors.New(key + " must be an integer")
	}

	return &n, nil
}

// fieldPath drops the root struct name from the validator namespace, so
// nested errors read like "orderData.seats[1]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}

	return fe.Field()
}

// background runs fn in its own goroutine and logs a panic instead of
// crashing the server. Shutdown waits for these tasks through app.wg.
func (app *Application) background(logger *slog.Logger, fn func()) {
	app.wg.Add(1)

	go func() {
		defer app.wg.Done()
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic in background task", "panic", err)
			}
		}()

		fn()
	}()
}
