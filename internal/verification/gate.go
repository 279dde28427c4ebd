// Package verification implements the one-time email code that gates order
// creation. A code is six digits, lives for a limited time, and is consumed
// by the first successful check.
package verification

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Den2856/sturdy-octo-happiness/internal/domain"
	"github.com/Den2856/sturdy-octo-happiness/internal/mailer"
)

const codeTemplate = "verification_code.tmpl"

// CodeStore persists the hash of the pending code against the user's email.
type CodeStore interface {
	SetVerificationCode(ctx context.Context, email string, codeHash []byte, expiry time.Time) error
	ConsumeVerificationCode(ctx context.Context, email string, codeHash []byte, now time.Time) error
}

// Throttle limits how often a code may be issued for one email.
type Throttle interface {
	Acquire(ctx context.Context, email string) (retryAfter time.Duration, err error)
	Release(ctx context.Context, email string) error
}

// AttemptLimiter counts wrong codes per email and refuses checks once the
// limit is reached.
type AttemptLimiter interface {
	Blocked(ctx context.Context, email string) (bool, error)
	Failed(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// CooldownError is returned by Issue when a code was sent too recently.
type CooldownError struct {
	RetryAfter time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("verification code already sent, retry in %s", e.RetryAfter.Round(time.Second))
}

type Gate struct {
	store    CodeStore
	mailer   mailer.Mailer
	throttle Throttle
	attempts AttemptLimiter
	logger   *slog.Logger
	ttl      time.Duration
	now      func() time.Time
	random   io.Reader
}

type Option func(*Gate)

func WithTTL(ttl time.Duration) Option {
	return func(g *Gate) { g.ttl = ttl }
}

func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

// WithRandom replaces the crypto/rand source used for codes.
func WithRandom(r io.Reader) Option {
	return func(g *Gate) { g.random = r }
}

func WithThrottle(t Throttle) Option {
	return func(g *Gate) { g.throttle = t }
}

// WithAttemptLimiter caps wrong guesses per email. A new code starts a fresh
// count.
func WithAttemptLimiter(l AttemptLimiter) Option {
	return func(g *Gate) { g.attempts = l }
}

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) { g.logger = logger }
}

func NewGate(store CodeStore, m mailer.Mailer, opts ...Option) *Gate {
	g := &Gate{
		store:  store,
		mailer: m,
		logger: slog.New(slog.DiscardHandler),
		ttl:    domain.VerificationCodeTTL,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Issue generates a new code for email, replacing any pending one, and mails
// it. It returns domain.ErrRecordNotFound when no user has that email and a
// *CooldownError when the throttle refuses.
func (g *Gate) Issue(ctx context.Context, email string) error {
	if g.throttle != nil {
		retryAfter, err := g.throttle.Acquire(ctx, email)
		switch {
		case err != nil:
			g.logger.WarnContext(ctx, "resend throttle unavailable, issuing without cooldown", "error", err)
		case retryAfter > 0:
			return &CooldownError{RetryAfter: retryAfter}
		}
	}

	code, err := domain.GenerateVerificationCode(g.random, email, g.now(), g.ttl)
	if err != nil {
		return fmt.Errorf("generate verification code: %w", err)
	}

	err = g.store.SetVerificationCode(ctx, email, code.Hash, code.Expiry)
	if err != nil {
		return err
	}

	data := map[string]any{
		"code":             code.Plaintext,
		"expiresInMinutes": int(g.ttl.Minutes()),
	}

	err = g.mailer.Send(email, codeTemplate, data)
	if err != nil {
		g.release(ctx, email)
		return fmt.Errorf("send verification code: %w", err)
	}

	g.resetAttempts(ctx, email)

	return nil
}

func (g *Gate) release(ctx context.Context, email string) {
	if g.throttle == nil {
		return
	}

	if err := g.throttle.Release(ctx, email); err != nil {
		g.logger.WarnContext(ctx, "failed to release resend throttle", "error", err)
	}
}

// Check consumes the pending code for email if it matches and has not
// expired. Every failure, including a wrong, expired, reused or missing code,
// is reported as domain.ErrInvalidVerificationCode.
func (g *Gate) Check(ctx context.Context, email, code string) error {
	code = strings.TrimSpace(code)
	if !wellFormed(code) {
		return domain.ErrInvalidVerificationCode
	}

	if g.attempts != nil {
		blocked, err := g.attempts.Blocked(ctx, email)
		switch {
		case err != nil:
			g.logger.WarnContext(ctx, "attempt limiter unavailable, checking without limit", "error", err)
		case blocked:
			g.logger.WarnContext(ctx, "verification check refused after too many wrong codes")
			return domain.ErrInvalidVerificationCode
		}
	}

	err := g.store.ConsumeVerificationCode(ctx, email, domain.HashVerificationCode(code), g.now())
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			g.failedAttempt(ctx, email)
			return domain.ErrInvalidVerificationCode
		}

		return err
	}

	g.resetAttempts(ctx, email)

	return nil
}

func (g *Gate) failedAttempt(ctx context.Context, email string) {
	if g.attempts == nil {
		return
	}

	if err := g.attempts.Failed(ctx, email); err != nil {
		g.logger.WarnContext(ctx, "failed to count wrong verification code", "error", err)
	}
}

func (g *Gate) resetAttempts(ctx context.Context, email string) {
	if g.attempts == nil {
		return
	}

	if err := g.attempts.Reset(ctx, email); err != nil {
		g.logger.WarnContext(ctx, "failed to reset verification attempts", "error", err)
	}
}

func wellFormed(code string) bool {
	if len(code) != 6 {
		return false
	}

	for _, ch := range code {
		if ch < '0' || ch > '9' {
			return false
		}
	}

	return true
}
