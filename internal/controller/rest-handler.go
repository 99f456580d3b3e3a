package controller

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	roomRepo "github.com/listenroom/server/internal/repository/room"
	"github.com/listenroom/server/pkg/rest"
)

func (c controller) healthz(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"status": "ok"})
}

func (c controller) listRooms(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, rest.Envelope{
		"rooms": c.roomService.GetRooms(r.Context()),
	})
}

func (c controller) getRoom(w http.ResponseWriter, r *http.Request) {
	state, err := c.roomService.GetRoomState(r.Context(), chi.URLParam(r, "roomId"))
	if err != nil {
		c.writeRESTError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"room": state})
}

func (c controller) getRoomStats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.roomService.GetRoomStats(r.Context(), chi.URLParam(r, "roomId"))
	if err != nil {
		c.writeRESTError(w, r, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"stats": stats})
}

func (c controller) writeRESTError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, roomRepo.ErrRoomNotFound) {
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		c.logger.ErrorContext(r.Context(), "request failed", "error", err)
	}

	rest.WriteJSON(w, status, rest.Envelope{"error": userMessage(err)})
}
