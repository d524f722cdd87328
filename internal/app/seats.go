package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/theatre-booking-system/api"
	"github.com/metinatakli/theatre-booking-system/internal/domain"
)

func (app *Application) GetPerformanceSeatMap(w http.ResponseWriter, r *http.Request, id int) {
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

	resp := api.SeatMapResponse{
		PerformanceId:   performance.ID,
		TheatreHallId:   performance.HallID,
		TheatreHallName: performance.HallName,
		SeatRows:        toSeatRows(performance.Hall, taken),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func toSeatRows(hall domain.HallGeometry, taken domain.SeatSet) []api.SeatRow {
	rows := make([]api.SeatRow, hall.Rows)

	for i := range rows {
		row := i + 1
		seats := make([]api.Seat, hall.SeatsInRow)

		for j := range seats {
			seat := j + 1
			seats[j] = api.Seat{
				Row:       row,
				Seat:      seat,
				Available: !taken.Contains(domain.SeatPosition{Row: row, Seat: seat}),
			}
		}

		rows[i] = api.SeatRow{Row: row, Seats: seats}
	}

	return rows
}
