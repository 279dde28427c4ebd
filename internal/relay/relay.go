// Package relay reads and writes the booking wizard slots that the browser
// keeps between pages. Each slot is a cookie holding URI-encoded JSON.
//
// The slots are client state and are never trusted: the server only uses
// them to assemble an order request, which is then validated like any other
// request body.
package relay

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Slot names shared with the web client.
const (
	MovieData     = "movieData"
	SelectedSeats = "selectedSeats"
	OrderSummary  = "orderSummary"
	OrderData     = "orderData"
)

// DefaultMaxAge matches the client's multi-day default.
const DefaultMaxAge = 7 * 24 * time.Hour

// WizardSlots are cleared after an order has been created.
var WizardSlots = []string{MovieData, SelectedSeats, OrderSummary}

var (
	ErrSlotMissing   = errors.New("slot missing")
	ErrSlotMalformed = errors.New("slot malformed")
)

// SlotError names the slot that could not be read.
type SlotError struct {
	Slot string
	Err  error
}

func (e *SlotError) Error() string {
	return fmt.Sprintf("%s: %s", e.Slot, e.Err)
}

func (e *SlotError) Unwrap() error {
	return e.Err
}

// Read decodes the named slot into dst.
func Read(r *http.Request, name string, dst any) error {
	cookie, err := r.Cookie(name)
	if err != nil || cookie.Value == "" {
		return &SlotError{Slot: name, Err: ErrSlotMissing}
	}

	raw, err := url.PathUnescape(cookie.Value)
	if err != nil {
		return &SlotError{Slot: name, Err: ErrSlotMalformed}
	}

	err = json.Unmarshal([]byte(raw), dst)
	if err != nil {
		return &SlotError{Slot: name, Err: ErrSlotMalformed}
	}

	return nil
}

// Write stores v in the named slot.
func Write(w http.ResponseWriter, name string, v any, maxAge time.Duration) error {
	js, err := json.Marshal(v)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    url.PathEscape(string(js)),
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Clear expires the named slots.
func Clear(w http.ResponseWriter, names ...string) {
	for _, name := range names {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			SameSite: http.SameSiteLaxMode,
		})
	}
}
