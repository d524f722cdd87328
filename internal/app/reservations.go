package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/theatre-booking-system/api"
	"github.com/metinatakli/theatre-booking-system/internal/domain"
)

const reservationConfirmationTemplate = "reservation_confirmation.tmpl"

func (app *Application) CreateReservation(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)
	userId := app.contextGetUserId(r)

	var input api.CreateReservationRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	requests := make([]domain.TicketRequest, len(input.Tickets))
	for i, t := range input.Tickets {
		requests[i] = domain.TicketRequest{
			PerformanceID: t.PerformanceId,
			Row:           t.Row,
			Seat:          t.Seat,
		}
	}

	reservation, err := app.bookings.CreateReservation(r.Context(), userId, requests)
	if err != nil {
		var rejected *domain.ReservationError

		switch {
		case errors.As(err, &rejected):
			logger.Warn("reservation rejected", "error", err)
			app.reservationRejectedResponse(w, r, rejected)
		case errors.Is(err, domain.ErrEmptyReservation):
			app.fieldValidationResponse(w, r, "tickets", err.Error())
		case errors.Is(err, domain.ErrStorageUnavailable):
			app.storageUnavailableResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	logger.Info("reservation created", "reservation_id", reservation.ID, "code", reservation.Code)

	app.sendReservationConfirmation(userId, *reservation)

	err = app.writeJSON(w, http.StatusCreated, toReservationResponse(*reservation), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) ListReservations(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	reservations, err := app.reservationRepo.GetAllByUserId(r.Context(), userId)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ReservationListResponse{
		Reservations: make([]api.ReservationResponse, len(reservations)),
	}

	for i, reservation := range reservations {
		resp.Reservations[i] = toReservationResponse(reservation)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetReservationById(w http.ResponseWriter, r *http.Request, id int) {
	userId := app.contextGetUserId(r)

	reservation, err := app.reservationRepo.GetByIdAndUserId(r.Context(), id, userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toReservationResponse(*reservation), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) sendReservationConfirmation(userId int, reservation domain.Reservation) {
	app.background(func() {
		ctx, cancel := backgroundContext()
		defer cancel()

		user, err := app.userRepo.GetById(ctx, userId)
		if err != nil {
			app.logger.Error("failed to get user for reservation confirmation",
				"user_id", userId, "reservation_id", reservation.ID, "error", err)
			return
		}

		data := map[string]any{
			"firstName": user.FirstName,
			"code":      reservation.Code,
			"tickets":   reservation.Tickets,
		}

		err = app.mailer.Send(user.Email, reservationConfirmationTemplate, data)
		if err != nil {
			app.logger.Error("failed to send reservation confirmation",
				"user_id", userId, "reservation_id", reservation.ID, "error", err)
		}
	})
}

func toReservationResponse(reservation domain.Reservation) api.ReservationResponse {
	resp := api.ReservationResponse{
		Id:        reservation.ID,
		Code:      reservation.Code,
		CreatedAt: reservation.CreatedAt,
		Tickets:   make([]api.TicketResponse, len(reservation.Tickets)),
	}

	for i, ticket := range reservation.Tickets {
		resp.Tickets[i] = api.TicketResponse{
			Id:            ticket.ID,
			PerformanceId: ticket.PerformanceID,
			PlayTitle:     ticket.PlayTitle,
			ShowTime:      ticket.ShowTime,
			Row:           ticket.Row,
			Seat:          ticket.Seat,
		}
	}

	return resp
}
