package domain

import "errors"

var (
	ErrUserAlreadyExists       = errors.New("user already exists")
	ErrRecordNotFound          = errors.New("record not found")
	ErrEditConflict            = errors.New("edit conflict")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrInvalidVerificationCode = errors.New("invalid or expired verification code")
	ErrSeatAlreadyExists       = errors.New("seat already exists in theater")
	ErrUnknownSeat             = errors.New("seat does not exist in theater")
	ErrTheaterClosed           = errors.New("theater is closed")
	ErrDateOutsideSchedule     = errors.New("selected date is outside the movie schedule")
)
