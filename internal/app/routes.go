package app

import (
	"net/http"

	"github.com/Den2856/sturdy-octo-happiness/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(middleware.NotFoundHandler)
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestLogger(app.logger))
	r.Use(chimiddleware.Logger)
	r.Use(middleware.RecoverPanic(app.logger))
	r.Use(app.authenticate)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", app.GetHealth)
		r.Get("/openapi.yaml", app.GetOpenAPIDocument)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", app.RegisterUser)
			r.Post("/login", app.Login)
			r.With(app.requireAuthentication).Get("/me", app.GetCurrentUser)
		})

		r.Route("/admin/auth", func(r chi.Router) {
			r.Post("/register", app.RegisterAdmin)
			r.Post("/login", app.AdminLogin)
			r.With(app.requireAdmin).Get("/me", app.GetCurrentUser)
		})

		r.Get("/movies", app.GetMovies)
		r.Get("/movies/{id}", app.GetMovie)

		r.With(app.requireAdmin).Route("/admin/movies", func(r chi.Router) {
			r.Get("/", app.GetAdminMovies)
			r.Post("/", app.CreateMovie)
			r.Get("/{id}", app.GetAdminMovie)
			r.Put("/{id}", app.UpdateMovie)
			r.Delete("/{id}", app.DeleteMovie)
		})

		r.Route("/theaters", func(r chi.Router) {
			r.Get("/", app.GetTheaters)
			r.With(app.requireAdmin).Post("/", app.CreateTheater)
			r.With(app.requireAdmin).Put("/{id}", app.UpdateTheater)
			r.With(app.requireAdmin).Delete("/{id}", app.DeleteTheater)
		})

		r.Route("/seats", func(r chi.Router) {
			r.Get("/", app.GetSeats)
			r.With(app.requireAdmin).Post("/", app.CreateSeat)
			r.With(app.requireAdmin).Delete("/{id}", app.DeleteSeat)
		})

		r.With(app.requireAdmin).Route("/users", func(r chi.Router) {
			r.Get("/", app.GetUsers)
			r.Post("/", app.CreateUser)
			r.Get("/{id}", app.GetUser)
			r.Put("/{id}", app.UpdateUser)
			r.Delete("/{id}", app.DeleteUser)
		})

		r.Post("/pricing/quote", app.QuotePrice)

		r.Post("/email/send-code", app.SendVerificationCode)
		r.Post("/order/verify", app.VerifyOrder)

		r.With(app.requireAuthentication).Route("/orders", func(r chi.Router) {
			r.Get("/", app.GetOrders)
			r.Get("/{id}/ticket", app.GetOrderTicket)
			r.With(app.requireAdmin).Delete("/{id}", app.DeleteOrder)
		})
	})

	return r
}
