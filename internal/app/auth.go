package app

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Den2856/sturdy-octo-happiness/api"
	"github.com/Den2856/sturdy-octo-happiness/internal/domain"
)

func (app *Application) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var input api.RegisterRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	input.Email = normalizeEmail(input.Email)

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	app.register(w, r, input.Email, input.Password, input.Name, domain.RoleUser)
}

func (app *Application) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.AdminRegisterRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	input.Email = normalizeEmail(input.Email)

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	if !app.validInvite(input.Invite) {
		logger.Warn("admin registration with invalid invite code")
		app.forbiddenResponse(w, r)
		return
	}

	app.register(w, r, input.Email, input.Password, input.Name, domain.RoleAdmin)
}

// validInvite rejects every code when no invite code is configured.
func (app *Application) validInvite(code string) bool {
	expected := app.config.AdminInviteCode
	if expected == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(code), []byte(expected)) == 1
}

func (app *Application) register(w http.ResponseWriter, r *http.Request, email, password, name string, role domain.Role) {
	logger := app.contextGetLogger(r)

	user := domain.User{
		Email: email,
		Name:  strings.TrimSpace(name),
		Role:  role,
	}

	err := user.Password.Set(password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.userRepo.Create(r.Context(), &user)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			logger.Warn("registration attempt for existing email")
			app.conflictResponse(w, r, err)
		default:
			logger.Error("failed to create user", "error", err)
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.writeToken(w, r, http.StatusCreated, &user)
}

func (app *Application) Login(w http.ResponseWriter, r *http.Request) {
	user, ok := app.authenticateCredentials(w, r)
	if !ok {
		return
	}

	app.writeToken(w, r, http.StatusOK, user)
}

func (app *Application) AdminLogin(w http.ResponseWriter, r *http.Request) {
	user, ok := app.authenticateCredentials(w, r)
	if !ok {
		return
	}

	// Customers get the same answer as a wrong password.
	if !user.IsAdmin() {
		app.contextGetLogger(r).Warn("admin login attempt by non-admin user")
		app.invalidCredentialsResponse(w, r)
		return
	}

	app.writeToken(w, r, http.StatusOK, user)
}

// authenticateCredentials writes the error response itself and reports
// whether the caller may continue.
func (app *Application) authenticateCredentials(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	logger := app.contextGetLogger(r)

	var input api.LoginRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return nil, false
	}

	input.Email = normalizeEmail(input.Email)

	err = app.validator.Struct(input)
	if err != nil {
		logger.Warn("login validation failed")
		app.invalidCredentialsResponse(w, r)
		return nil, false
	}

	user, err := app.userRepo.GetByEmail(r.Context(), input.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			logger.Warn("login attempt for non-existent user")
			app.invalidCredentialsResponse(w, r)
		default:
			logger.Error("failed to get user by email during login", "error", err)
			app.serverErrorResponse(w, r, err)
		}

		return nil, false
	}

	match, err := user.Password.Matches(input.Password)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return nil, false
	}

	if !match {
		logger.Warn("login failed due to incorrect password")
		app.invalidCredentialsResponse(w, r)
		return nil, false
	}

	return user, true
}

func (app *Application) writeToken(w http.ResponseWriter, r *http.Request, status int, user *domain.User) {
	token, err := app.tokens.NewToken(user.ID, user.Role)
	if err != nil {
		app.serverErrorResponse(w, r, fmt.Errorf("issue token: %w", err))
		return
	}

	role := api.Role(user.Role)
	resp := api.TokenResponse{
		Token: token,
		Role:  &role,
	}

	err = app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	user, err := app.userRepo.GetById(r.Context(), userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.contextGetLogger(r).Warn("token subject not found", "user_id", userId)
			app.unauthorizedAccessResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toUserResponse(user), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
