package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/theatre-booking-system/api"
	"github.com/metinatakli/theatre-booking-system/internal/domain"
)

func (app *Application) ListPlays(w http.ResponseWriter, r *http.Request) {
	plays, err := app.playRepo.GetAll(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.PlayListResponse{
		Plays: make([]api.PlayResponse, len(plays)),
	}

	for i, play := range plays {
		resp.Plays[i] = toPlayResponse(play)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreatePlay(w http.ResponseWriter, r *http.Request) {
	var input api.CreatePlayRequest

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

	play := domain.Play{
		Title: input.Title,
	}

	if input.Description != nil {
		play.Description = *input.Description
	}
	if input.GenreIds != nil {
		for _, id := range *input.GenreIds {
			play.Genres = append(play.Genres, domain.Genre{ID: id})
		}
	}
	if input.ActorIds != nil {
		for _, id := range *input.ActorIds {
			play.Actors = append(play.Actors, domain.Actor{ID: id})
		}
	}

	err = app.playRepo.Create(r.Context(), &play)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnknownGenre):
			app.fieldValidationResponse(w, r, "genreIds", err.Error())
		case errors.Is(err, domain.ErrUnknownActor):
			app.fieldValidationResponse(w, r, "actorIds", err.Error())
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toPlayResponse(play), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetPlayById(w http.ResponseWriter, r *http.Request, id int) {
	play, err := app.playRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toPlayResponse(*play), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toPlayResponse(play domain.Play) api.PlayResponse {
	return api.PlayResponse{
		Id:          play.ID,
		Title:       play.Title,
		Description: play.Description,
		Genres:      toGenreResponses(play.Genres),
		Actors:      toActorResponses(play.Actors),
	}
}
