package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/metinatakli/theatre-booking-system/api"
	"github.com/metinatakli/theatre-booking-system/internal/domain"
	appvalidator "github.com/metinatakli/theatre-booking-system/internal/validator"
)

const (
	ErrInternalServer        = "The server encountered a problem and could not process your request"
	ErrNotFound              = "The requested resource not found"
	ErrMethodNotAllowed      = "The method is not supported for this resource"
	ErrValidationFailed      = "One or more fields have invalid values"
	ErrUnauthorized          = "You must be logged in to access this resource"
	ErrInvalidCredentials    = "Invalid authentication credentials"
	ErrSeatNoLongerAvailable = "seat no longer available"
	ErrServiceUnavailable    = "The service is temporarily unavailable, please try again later"
)

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.contextGetLogger(r).Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
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

func (app *Application) validationErrorResponse(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	message string,
	validationErrors []api.ValidationError) {

	resp := api.ValidationErrorResponse{
		Message:          message,
		RequestId:        middleware.GetReqID(r.Context()),
		Timestamp:        time.Now(),
		ValidationErrors: validationErrors,
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, ErrNotFound)
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, ErrMethodNotAllowed)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) invalidParamResponse(w http.ResponseWriter, r *http.Request, err error) {
	var paramErr *api.InvalidParamFormatError
	if errors.As(err, &paramErr) {
		app.errorResponse(w, r, http.StatusBadRequest, fmt.Sprintf("invalid %s parameter", paramErr.ParamName))
		return
	}

	app.badRequestResponse(w, r, err)
}

func (app *Application) unauthorizedAccessResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusUnauthorized, ErrUnauthorized)
}

func (app *Application) invalidCredentialsResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusUnauthorized, ErrInvalidCredentials)
}

func (app *Application) editConflictResponseWithErr(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusConflict, err.Error())
}

func (app *Application) storageUnavailableResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	w.Header().Set("Retry-After", "5")
	app.errorResponse(w, r, http.StatusServiceUnavailable, ErrServiceUnavailable)
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		app.badRequestResponse(w, r, err)
		return
	}

	validationErrors := make([]api.ValidationError, len(validationErrs))
	for i, e := range validationErrs {
		validationErrors[i] = api.ValidationError{
			Field: appvalidator.FieldPath(e),
			Issue: appvalidator.ValidationMessage(e),
		}
	}

	app.validationErrorResponse(w, r, http.StatusUnprocessableEntity, ErrValidationFailed, validationErrors)
}

func (app *Application) fieldValidationResponse(w http.ResponseWriter, r *http.Request, field, issue string) {
	app.validationErrorResponse(w, r, http.StatusUnprocessableEntity, ErrValidationFailed, []api.ValidationError{
		{Field: field, Issue: issue},
	})
}

// reservationRejectedResponse reports every rejected ticket by its position
// in the request. A seat taken by another reservation is a conflict, any
// other rejection is a validation failure.
func (app *Application) reservationRejectedResponse(
	w http.ResponseWriter,
	r *http.Request,
	rejected *domain.ReservationError) {

	var validationErrors []api.ValidationError

	for _, ticketErr := range rejected.Tickets {
		seatErrs := domain.SeatErrors(ticketErr)
		if len(seatErrs) == 0 {
			validationErrors = append(validationErrors, api.ValidationError{
				Field: fmt.Sprintf("tickets[%d]", ticketErr.Index),
				Issue: ticketErr.Err.Error(),
			})
			continue
		}

		for _, seatErr := range seatErrs {
			validationErrors = append(validationErrors, api.ValidationError{
				Field: fmt.Sprintf("tickets[%d].%s", ticketErr.Index, seatErr.Field()),
				Issue: seatErr.Error(),
			})
		}
	}

	if errors.Is(rejected, domain.ErrSeatAlreadyBooked) {
		app.validationErrorResponse(w, r, http.StatusConflict, ErrSeatNoLongerAvailable, validationErrors)
		return
	}

	app.validationErrorResponse(w, r, http.StatusUnprocessableEntity, ErrValidationFailed, validationErrors)
}
