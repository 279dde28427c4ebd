package app

import (
	"errors"
	"net/http"

	"github.com/Den2856/sturdy-octo-happiness/api"
	"github.com/Den2856/sturdy-octo-happiness/internal/domain"
	"github.com/Den2856/sturdy-octo-happiness/internal/verification"
)

const codeSentMessage = "Verification code sent to your email"

// SendVerificationCode answers an unknown email exactly like a known one,
// so the endpoint cannot be used to probe for accounts.
func (app *Application) SendVerificationCode(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.SendCodeRequest

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

	err = app.gate.Issue(r.Context(), input.Email)
	if err != nil {
		var cooldown *verification.CooldownError

		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			logger.Warn("verification code requested for unknown email")
		case errors.As(err, &cooldown):
			logger.Warn("verification code requested during cooldown", "retry_after", cooldown.RetryAfter)
			app.rateLimitExceededResponse(w, r, cooldown.RetryAfter)
			return
		default:
			logger.Error("failed to issue verification code", "error", err)
			app.serverErrorResponse(w, r, err)
			return
		}
	} else {
		app.metrics.codesIssued.Add(r.Context(), 1)
		logger.Info("verification code sent")
	}

	err = app.writeJSON(w, http.StatusOK, api.MessageResponse{Message: codeSentMessage}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
