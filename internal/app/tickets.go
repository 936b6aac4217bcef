package app

import (
	"net/http"

	"github.com/yigitentrk/show-booking-system/api"
)

func (app *application) bookTicketHandler(w http.ResponseWriter, r *http.Request) {
	showID, err := app.readIDParam(r, "showID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.BookTicketRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	ticket, err := app.bookings.BookTicket(r.Context(), showID, input.UserID, input.Seats)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toTicketResponse(ticket), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getTicketHandler(w http.ResponseWriter, r *http.Request) {
	ticketID, err := app.readIDParam(r, "ticketID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ticket, err := app.bookings.TicketByID(r.Context(), ticketID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toTicketResponse(ticket), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) userTicketsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := app.readIDParam(r, "userID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	tickets, err := app.bookings.TicketsByUser(r.Context(), userID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	resp := api.TicketListResponse{
		Tickets: make([]api.TicketResponse, 0, len(tickets)),
	}

	for i := range tickets {
		resp.Tickets = append(resp.Tickets, toTicketResponse(&tickets[i]))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) cancelTicketHandler(w http.ResponseWriter, r *http.Request) {
	ticketID, err := app.readIDParam(r, "ticketID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.CancelTicketRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	result, err := app.bookings.CancelTicket(r.Context(), ticketID, input.UserID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	resp := api.CancelTicketResponse{
		Message:       result.Message,
		RefundPercent: result.Tier.Percent(),
		RefundAmount:  result.RefundAmount,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
