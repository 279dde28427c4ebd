// Package api holds the JSON wire types of the booking API. The types follow
// the document in openapi.yaml.
package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

type SeatType string

const (
	Regular SeatType = "Regular"
	Premium SeatType = "Premium"
	VIP     SeatType = "VIP"
)

type MovieStatus string

const (
	Draft     MovieStatus = "draft"
	Published MovieStatus = "published"
)

type TheaterStatus string

const (
	Open   TheaterStatus = "open"
	Closed TheaterStatus = "closed"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,password"`
	Name     string `json:"name" validate:"omitempty,max=100"`
}

type AdminRegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,password"`
	Name     string `json:"name" validate:"omitempty,max=100"`
	Invite   string `json:"invite" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
	Role  *Role  `json:"role,omitempty"`
}

type UserResponse struct {
	Id        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,password"`
	Name     string `json:"name" validate:"omitempty,max=100"`
	Role     Role   `json:"role" validate:"omitempty,oneof=user admin"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email,max=254"`
	Password *string `json:"password" validate:"omitempty,password"`
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Role     *Role   `json:"role" validate:"omitempty,oneof=user admin"`
}

type MovieRequest struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Year        *int            `json:"year" validate:"omitempty,min=1888,max=2100"`
	Status      MovieStatus     `json:"status" validate:"omitempty,oneof=draft published"`
	CoverUrl    string          `json:"coverUrl" validate:"omitempty,url"`
	BackdropUrl string          `json:"backdropUrl" validate:"omitempty,url"`
	Description string          `json:"description" validate:"omitempty,max=5000"`
	Genres      []string        `json:"genres" validate:"omitempty,max=10,dive,required,max=50"`
	Runtime     string          `json:"runtime" validate:"omitempty,max=20"`
	Rating      *float64        `json:"rating" validate:"omitempty,min=0,max=10"`
	StartDate   *types.Date     `json:"startDate"`
	EndDate     *types.Date     `json:"endDate"`
	Price       decimal.Decimal `json:"price" validate:"gt=0"`
}

type MovieResponse struct {
	Id          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Year        *int            `json:"year,omitempty"`
	Status      MovieStatus     `json:"status"`
	CoverUrl    string          `json:"coverUrl"`
	BackdropUrl string          `json:"backdropUrl"`
	Description string          `json:"description"`
	Genres      []string        `json:"genres"`
	Runtime     string          `json:"runtime"`
	Rating      *float64        `json:"rating,omitempty"`
	StartDate   *types.Date     `json:"startDate,omitempty"`
	EndDate     *types.Date     `json:"endDate,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type MovieListResponse struct {
	Items []MovieResponse `json:"items"`
	Total int             `json:"total"`
}

type GetMoviesParams struct {
	Q      *string      `validate:"omitempty,max=100"`
	Page   *int         `validate:"omitempty,min=1,max=10000"`
	Limit  *int         `validate:"omitempty,min=1,max=100"`
	Status *MovieStatus `validate:"omitempty,oneof=draft published"`
}

type TheaterRequest struct {
	Name   string        `json:"name" validate:"required,max=100"`
	Status TheaterStatus `json:"status" validate:"omitempty,oneof=open closed"`
}

type TheaterResponse struct {
	Id        uuid.UUID     `json:"id"`
	Name      string        `json:"name"`
	Status    TheaterStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}

type SeatRequest struct {
	Name      string   `json:"name" validate:"required,seatname"`
	Type      SeatType `json:"type" validate:"required,oneof=Regular Premium VIP"`
	TheaterId string   `json:"theaterId" validate:"required,uuid"`
}

type SeatResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Type      SeatType  `json:"type"`
	TheaterId uuid.UUID `json:"theaterId"`
}

type QuoteRequest struct {
	MovieId   string   `json:"movieId" validate:"required,uuid"`
	TheaterId string   `json:"theaterId" validate:"required,uuid"`
	Seats     []string `json:"seats" validate:"required,min=1,max=10,unique,dive,seatname"`
}

type QuotedSeat struct {
	Name  string          `json:"name"`
	Type  SeatType        `json:"type"`
	Price decimal.Decimal `json:"price"`
}

type QuoteResponse struct {
	BasePrice  decimal.Decimal `json:"basePrice"`
	Seats      []QuotedSeat    `json:"seats"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	ServiceFee decimal.Decimal `json:"serviceFee"`
	Total      decimal.Decimal `json:"total"`
	Currency   string          `json:"currency"`
}

type SendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// OrderData is the booking wizard state submitted with the verification code.
type OrderData struct {
	MovieId   string           `json:"movieId" validate:"required,uuid"`
	TheaterId string           `json:"theaterId" validate:"required,uuid"`
	Date      string           `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string           `json:"time,omitempty" validate:"omitempty,datetime=15:04"`
	Seats     []string         `json:"seats" validate:"required,min=1,max=10,unique,dive,seatname"`
	Total     *decimal.Decimal `json:"total,omitempty"`
}

type VerifyOrderRequest struct {
	Email     string     `json:"email" validate:"required,email"`
	Code      string     `json:"code" validate:"required"`
	OrderData *OrderData `json:"orderData,omitempty" validate:"-"`
}

type CreatedOrder struct {
	Id    uuid.UUID       `json:"id"`
	Movie string          `json:"movie"`
	Date  types.Date      `json:"date"`
	Time  string          `json:"time,omitempty"`
	Seats []string        `json:"seats"`
	Price decimal.Decimal `json:"price"`
}

type CreateOrderResponse struct {
	Message string       `json:"message"`
	Order   CreatedOrder `json:"order"`
}

type GetOrdersParams struct {
	Email *string `validate:"omitempty,email"`
}

type OrderResponse struct {
	Id           uuid.UUID       `json:"id"`
	UserId       uuid.UUID       `json:"userId"`
	UserEmail    string          `json:"userEmail"`
	UserName     string          `json:"userName"`
	MovieId      uuid.UUID       `json:"movieId"`
	TheaterId    uuid.UUID       `json:"theaterId"`
	TheaterName  string          `json:"theaterName"`
	Title        string          `json:"title"`
	CoverUrl     string          `json:"coverUrl"`
	Price        decimal.Decimal `json:"price"`
	SelectedDate types.Date      `json:"selectedDate"`
	SelectedTime string          `json:"selectedTime,omitempty"`
	Seats        []string        `json:"seats"`
	BookingInfo  string          `json:"bookingInfo"`
	CreatedAt    time.Time       `json:"createdAt"`
}
