package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthHandler reports liveness and which backing stores are active.
type HealthHandler struct {
	UpstreamURL string
	CartStore   string // "redis" or "memory"
	RoomStore   string // "mysql" or "memory"
	Events      bool
}

// Health always answers 200; it does not call the upstream.
func (h HealthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "ok",
		"upstream":  h.UpstreamURL,
		"cartStore": h.CartStore,
		"roomStore": h.RoomStore,
		"events":    h.Events,
	})
}
