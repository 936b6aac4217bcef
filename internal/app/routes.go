package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(app.recoverPanic)

	r.Get("/healthcheck", app.healthcheckHandler)

	r.Route("/shows/{showID}", func(r chi.Router) {
		r.Get("/seats", app.showSeatsHandler)
		r.Post("/seats/lock", app.lockSeatsHandler)
		r.Post("/seats/release", app.releaseSeatsHandler)
		r.Post("/tickets", app.bookTicketHandler)
	})

	r.Route("/tickets/{ticketID}", func(r chi.Router) {
		r.Get("/", app.getTicketHandler)
		r.Delete("/", app.cancelTicketHandler)
	})

	r.Get("/users/{userID}/tickets", app.userTicketsHandler)

	return r
}
