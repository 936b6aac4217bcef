package app

import (
	"fmt"
	"net/http"

	"github.com/yigitentrk/show-booking-system/api"
	"github.com/yigitentrk/show-booking-system/internal/domain"
)

func (app *application) showSeatsHandler(w http.ResponseWriter, r *http.Request) {
	showID, err := app.readIDParam(r, "showID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	seats, err := app.bookings.SeatsByShow(r.Context(), showID)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	resp := api.ShowSeatsResponse{
		ShowID: showID,
		Seats:  make([]api.ShowSeatInfo, 0, len(seats)),
	}

	for i := range seats {
		if seats[i].IsAvailable() {
			resp.AvailableSeats++
		}

		resp.Seats = append(resp.Seats, api.ShowSeatInfo{
			SeatNo:   seats[i].SeatNo,
			SeatType: string(seats[i].SeatType),
			Price:    seats[i].Price,
			Status:   string(seats[i].Status),
		})
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) lockSeatsHandler(w http.ResponseWriter, r *http.Request) {
	showID, err := app.readIDParam(r, "showID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.SeatLockRequest

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

	result, err := app.bookings.LockSeats(r.Context(), showID, input.UserID, input.Seats)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	resp := api.SeatLockResponse{
		LockedSeats: result.LockedSeats,
		TotalPrice:  result.TotalPrice,
		LockedAt:    result.LockedAt,
		ExpiresAt:   result.ExpiresAt,
		Message:     fmt.Sprintf("Seats locked successfully. Please complete booking before %s.", result.ExpiresAt.Format("15:04:05")),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) releaseSeatsHandler(w http.ResponseWriter, r *http.Request) {
	showID, err := app.readIDParam(r, "showID")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.SeatReleaseRequest

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

	err = app.bookings.ReleaseSeats(r.Context(), showID, input.UserID, input.Seats)
	if err != nil {
		app.domainErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toTicketResponse(ticket *domain.Ticket) api.TicketResponse {
	return api.TicketResponse{
		TicketID:    ticket.ID,
		ShowID:      ticket.ShowID,
		UserID:      ticket.UserID,
		BookedSeats: ticket.BookedSeats,
		TotalPrice:  ticket.TotalPrice,
		BookedAt:    ticket.BookedAt,
	}
}
