package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/theatre-booking-system/api"
	"github.com/metinatakli/theatre-booking-system/internal/domain"
)

func (app *Application) ListPerformances(w http.ResponseWriter, r *http.Request) {
	performances, err := app.performanceRepo.GetAllWithAvailability(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.PerformanceListResponse{
		Performances: make([]api.PerformanceSummary, len(performances)),
	}

	for i, p := range performances {
		resp.Performances[i] = api.PerformanceSummary{
			Id:               p.ID,
			PlayId:           p.PlayID,
			PlayTitle:        p.PlayTitle,
			TheatreHallId:    p.HallID,
			TheatreHallName:  p.HallName,
			ShowTime:         p.ShowTime,
			Capacity:         p.Hall.Capacity(),
			TicketsAvailable: p.TicketsAvailable,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreatePerformance(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CreatePerformanceRequest

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

	performance := domain.Performance{
		PlayID:   input.PlayId,
		HallID:   input.TheatreHallId,
		ShowTime: input.ShowTime,
	}

	err = app.performanceRepo.Create(r.Context(), &performance)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			logger.Warn("performance references missing play or hall",
				"play_id", input.PlayId, "theatre_hall_id", input.TheatreHallId)
			app.fieldValidationResponse(w, r, "playId", "play or theatre hall does not exist")
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.PerformanceResponse{
		Id:              performance.ID,
		PlayId:          performance.PlayID,
		PlayTitle:       performance.PlayTitle,
		TheatreHallId:   performance.HallID,
		TheatreHallName: performance.HallName,
		ShowTime:        performance.ShowTime,
		Capacity:        performance.Hall.Capacity(),
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetPerformanceById(w http.ResponseWriter, r *http.Request, id int) {
	performance, err := app.catalog.Performance(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownPerformance):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	taken, err := app.catalog.TicketsFor(r.Context(), id)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	available, err := app.catalog.AvailableSeats(r.Context(), id)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	positions := taken.Positions()

	resp := api.PerformanceDetailResponse{
		Id:               performance.ID,
		PlayId:           performance.PlayID,
		PlayTitle:        performance.PlayTitle,
		TheatreHallId:    performance.HallID,
		TheatreHallName:  performance.HallName,
		ShowTime:         performance.ShowTime,
		Rows:             performance.Hall.Rows,
		SeatsInRow:       performance.Hall.SeatsInRow,
		Capacity:         performance.Hall.Capacity(),
		TicketsAvailable: available,
		TakenPlaces:      make([]api.SeatPosition, len(positions)),
	}

	for i, seat := range positions {
		resp.TakenPlaces[i] = api.SeatPosition{Row: seat.Row, Seat: seat.Seat}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
