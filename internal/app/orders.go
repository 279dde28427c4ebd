package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Den2856/sturdy-octo-happiness/api"
	"github.com/Den2856/sturdy-octo-happiness/internal/domain"
	"github.com/Den2856/sturdy-octo-happiness/internal/events"
	"github.com/Den2856/sturdy-octo-happiness/internal/relay"
	"github.com/Den2856/sturdy-octo-happiness/internal/ticket"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

const (
	orderCreatedMessage    = "Order created successfully"
	orderConfirmationEmail = "order_confirmation.tmpl"
)

var errBookingExpired = errors.New("booking details are missing or expired, please start the booking again")

// orderRequest wraps the wizard data so validation errors are reported
// under the orderData prefix.
type orderRequest struct {
	OrderData api.OrderData `json:"orderData"`
}

// VerifyOrder checks the verification code and writes the order. Every step
// is a guard: the first failure is answered and nothing after it runs.
func (app *Application) VerifyOrder(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.VerifyOrderRequest

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

	var data api.OrderData
	if input.OrderData != nil {
		data = *input.OrderData
	} else {
		data, err = relay.Assemble(r)
		if err != nil {
			logger.Warn("order request without wizard state", "error", err)
			app.badRequestResponse(w, r, errBookingExpired)
			return
		}
	}

	err = app.validator.Struct(orderRequest{OrderData: data})
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	selection := toSelection(data)
	email := input.Email

	err = app.gate.Check(r.Context(), email, input.Code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidVerificationCode):
			app.metrics.verificationChecked(r.Context(), "invalid")
			logger.Warn("order verification failed")
			app.badRequestResponse(w, r, err)
		default:
			app.metrics.verificationChecked(r.Context(), "error")
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.metrics.verificationChecked(r.Context(), "verified")

	user, err := app.userRepo.GetByEmail(r.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusNotFound, "user not found")
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	movie, ok := app.movieById(w, r, selection.MovieID)
	if !ok {
		return
	}

	theater, ok := app.theaterById(w, r, selection.TheaterID)
	if !ok {
		return
	}

	catalog, err := app.seatRepo.GetByTheater(r.Context(), theater.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = selection.CheckAgainst(movie, theater, catalog)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	price := domain.NewQuote(movie.Price, selection.Seats, catalog).DisplayTotal()
	if selection.ClientTotal != nil && !selection.ClientTotal.Round(2).Equal(price) {
		logger.Warn("client total differs from server price",
			"client_total", selection.ClientTotal.String(),
			"server_total", price.String())
	}

	order, err := domain.NewOrder(user, movie, theater, selection, price)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.orderRepo.Create(r.Context(), order)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			logger.Error("failed to create order", "error", err)
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.metrics.ordersCreated.Add(r.Context(), 1)
	logger.Info("order created", "order_id", order.ID, "seats", len(order.Seats))

	app.publishOrderCreated(r.Context(), order)
	app.sendOrderConfirmation(r.Context(), user, theater, order)

	created := toCreatedOrder(order)

	relay.Clear(w, relay.WizardSlots...)
	err = relay.Write(w, relay.OrderData, created, relay.DefaultMaxAge)
	if err != nil {
		logger.Warn("failed to write order snapshot cookie", "error", err)
	}

	resp := api.CreateOrderResponse{
		Message: orderCreatedMessage,
		Order:   created,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// publishOrderCreated does not fail the request; the order is already stored.
func (app *Application) publishOrderCreated(ctx context.Context, order *domain.Order) {
	err := app.publisher.PublishOrderCreated(ctx, events.NewOrderCreated(order))
	if err != nil {
		app.logger.ErrorContext(ctx, "failed to publish order created event", "order_id", order.ID, "error", err)
	}
}

func (app *Application) sendOrderConfirmation(ctx context.Context, user *domain.User, theater *domain.Theater, order *domain.Order) {
	logger := app.logger.With("order_id", order.ID)

	data := map[string]any{
		"name":     firstNonEmpty(user.Name, user.Email),
		"title":    order.Title,
		"theater":  theater.Name,
		"date":     order.SelectedDate.Format(domain.DateLayout),
		"time":     order.SelectedTime,
		"seats":    strings.Join(order.Seats, ", "),
		"price":    order.Price.StringFixed(2),
		"currency": domain.DefaultCurrency,
		"orderId":  order.ID.String(),
	}

	app.background(logger, func() {
		err := app.mailer.Send(user.Email, orderConfirmationEmail, data)
		if err != nil {
			logger.ErrorContext(ctx, "failed to send order confirmation", "error", err)
			return
		}

		logger.InfoContext(ctx, "order confirmation sent")
	})
}

func (app *Application) GetOrders(w http.ResponseWriter, r *http.Request) {
	filters := domain.OrderFilters{}

	if app.contextGetRole(r) == domain.RoleAdmin {
		params := api.GetOrdersParams{Email: queryString(r, "email")}
		if params.Email != nil {
			*params.Email = normalizeEmail(*params.Email)
		}

		err := app.validator.Struct(params)
		if err != nil {
			app.failedValidationResponse(w, r, err)
			return
		}

		if params.Email != nil {
			filters.UserEmail = *params.Email
		}
	} else {
		userId := app.contextGetUserId(r)
		filters.UserID = &userId
	}

	orders, err := app.orderRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]api.OrderResponse, len(orders))
	for i := range orders {
		resp[i] = toOrderResponse(&orders[i])
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.orderRepo.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetOrderTicket renders the e-ticket of an order for its owner or an admin.
func (app *Application) GetOrderTicket(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	order, err := app.orderRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if app.contextGetRole(r) != domain.RoleAdmin && order.UserID != app.contextGetUserId(r) {
		app.forbiddenResponse(w, r)
		return
	}

	pdf, err := ticket.Render(order)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+ticket.Filename(order)+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// toSelection expects data that already passed validation.
func toSelection(data api.OrderData) domain.Selection {
	date, _ := time.Parse(domain.DateLayout, data.Date)

	seats := make([]string, len(data.Seats))
	copy(seats, data.Seats)

	var total *decimal.Decimal
	if data.Total != nil {
		t := *data.Total
		total = &t
	}

	return domain.Selection{
		MovieID:     uuid.MustParse(data.MovieId),
		TheaterID:   uuid.MustParse(data.TheaterId),
		Date:        date,
		Time:        data.Time,
		Seats:       seats,
		ClientTotal: total,
	}
}

func toCreatedOrder(order *domain.Order) api.CreatedOrder {
	return api.CreatedOrder{
		Id:    order.ID,
		Movie: order.Title,
		Date:  types.Date{Time: order.SelectedDate},
		Time:  order.SelectedTime,
		Seats: order.Seats,
		Price: order.Price,
	}
}

func toOrderResponse(order *domain.OrderDetails) api.OrderResponse {
	return api.OrderResponse{
		Id:           order.ID,
		UserId:       order.UserID,
		UserEmail:    order.UserEmail,
		UserName:     order.UserName,
		MovieId:      order.MovieID,
		TheaterId:    order.TheaterID,
		TheaterName:  order.TheaterName,
		Title:        order.Title,
		CoverUrl:     order.CoverUrl,
		Price:        order.Price,
		SelectedDate: types.Date{Time: order.SelectedDate},
		SelectedTime: order.SelectedTime,
		Seats:        order.Seats,
		BookingInfo:  order.BookingInfo,
		CreatedAt:    order.CreatedAt,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
