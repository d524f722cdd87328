package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/theatre-booking-system/api"
	"github.com/metinatakli/theatre-booking-system/internal/domain"
)

func (app *Application) ListTheatreHalls(w http.ResponseWriter, r *http.Request) {
	halls, err := app.hallRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.TheatreHallListResponse{
		TheatreHalls: make([]api.TheatreHallResponse, len(halls)),
	}

	for i, hall := range halls {
		resp.TheatreHalls[i] = toTheatreHallResponse(hall)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateTheatreHall(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input api.CreateTheatreHallRequest

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

	geometry, err := domain.NewHallGeometry(input.Rows, input.SeatsInRow)
	if err != nil {
		app.fieldValidationResponse(w, r, "rows", err.Error())
		return
	}

	hall := domain.TheatreHall{
		Name:     input.Name,
		Geometry: geometry,
	}

	err = app.hallRepo.Create(r.Context(), &hall)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrHallAlreadyExists):
			logger.Warn("theatre hall name already taken", "name", input.Name)
			app.editConflictResponseWithErr(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	logger.Info("theatre hall created", "hall_id", hall.ID, "capacity", hall.Geometry.Capacity())

	err = app.writeJSON(w, http.StatusCreated, toTheatreHallResponse(hall), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetTheatreHallById(w http.ResponseWriter, r *http.Request, id int) {
	hall, err := app.hallRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toTheatreHallResponse(*hall), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toTheatreHallResponse(hall domain.TheatreHall) api.TheatreHallResponse {
	return api.TheatreHallResponse{
		Id:         hall.ID,
		Name:       hall.Name,
		Rows:       hall.Geometry.Rows,
		SeatsInRow: hall.Geometry.SeatsInRow,
		Capacity:   hall.Geometry.Capacity(),
	}
}
