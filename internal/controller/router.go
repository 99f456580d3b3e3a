package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (c controller) GetRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(c.requestIdMiddleware)
	r.Use(c.loggingMiddleware)
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", c.healthz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/rooms", c.listRooms)
		r.Get("/rooms/{roomId}", c.getRoom)
		r.Get("/rooms/{roomId}/stats", c.getRoomStats)
		r.Get("/ws", c.serveWS)
	})

	return r
}
