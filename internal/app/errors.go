package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/yigitentrk/show-booking-system/api"
	"github.com/yigitentrk/show-booking-system/internal/domain"
	appvalidator "github.com/yigitentrk/show-booking-system/internal/validator"
)

func (app *application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	message := "The server encountered a problem and could not process your request"
	app.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "The requested resource not found"
	app.errorResponse(w, r, http.StatusNotFound, message)
}

func (app *application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := "The method is not supported for this resource"
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		app.serverErrorResponse(w, r, err)
		return
	}

	fieldErrors := make([]api.ValidationError, 0, len(validationErrors))
	for _, fe := range validationErrors {
		fieldErrors = append(fieldErrors, api.ValidationError{
			Field: fe.Field(),
			Issue: appvalidator.ValidationMessage(fe),
		})
	}

	resp := api.ValidationErrorResponse{
		Message:          "The request contains invalid fields",
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: fieldErrors,
	}

	writeErr := app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if writeErr != nil {
		app.logError(r, writeErr)
		w.WriteHeader(500)
	}
}

// domainErrorResponse maps booking core errors to HTTP status codes. Unknown
// errors fall through to a 500.
func (app *application) domainErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrShowNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrSeatsNotFound),
		errors.Is(err, domain.ErrRecordNotFound):
		app.errorResponse(w, r, http.StatusNotFound, err.Error())

	case errors.Is(err, domain.ErrSeatsUnavailable),
		errors.Is(err, domain.ErrSeatNotLocked),
		errors.Is(err, domain.ErrSeatLockedByOther),
		errors.Is(err, domain.ErrEditConflict):
		app.errorResponse(w, r, http.StatusConflict, err.Error())

	case errors.Is(err, domain.ErrNotAuthorized):
		app.errorResponse(w, r, http.StatusForbidden, err.Error())

	case errors.Is(err, domain.ErrPastShow),
		errors.Is(err, domain.ErrCancellationWindowClosed):
		app.errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, domain.ErrTransientStore):
		app.errorResponse(w, r, http.StatusServiceUnavailable, "The booking store is briefly unavailable, please retry")

	default:
		app.serverErrorResponse(w, r, err)
	}
}
