package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/palm-beach-resort/internal/logging"
	"github.com/iliyamo/palm-beach-resort/internal/model"
	"github.com/iliyamo/palm-beach-resort/internal/repository"
	"github.com/iliyamo/palm-beach-resort/internal/validation"
)

// AdminHandler serves the admin panel: bookings and menu items live in
// the backend, rooms in the local room store.
type AdminHandler struct {
	Upstream
	Rooms repository.RoomStore
}

// ListBookings returns all bookings, optionally filtered by ?status=.
func (h *AdminHandler) ListBookings(c echo.Context) error {
	api, ctx, cancel := h.api(c)
	defer cancel()
	bookings, err := api.ListBookings(ctx)
	if err != nil {
		return respondError(c, err)
	}
	status := strings.TrimSpace(c.QueryParam("status"))
	out := make([]model.Booking, 0, len(bookings))
	for _, b := range bookings {
		if status == "" || strings.EqualFold(b.Status, status) {
			out = append(out, b)
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

func (h *AdminHandler) GetBooking(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	api, ctx, cancel := h.api(c)
	defer cancel()
	b, err := api.AdminGetBooking(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// UpdateBookingStatus changes a booking's status (PENDING, CONFIRMED,
// CANCELLED, CHECKED_IN, CHECKED_OUT).
func (h *AdminHandler) UpdateBookingStatus(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var req model.StatusUpdate
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := validation.ValidateBookingStatus(req.Status); err != nil {
		return respondError(c, err)
	}
	api, ctx, cancel := h.api(c)
	defer cancel()
	b, err := api.UpdateBookingStatus(ctx, id, strings.ToUpper(strings.TrimSpace(req.Status)))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

// UpdateBooking replaces a booking's guest details, dates and status.
func (h *AdminHandler) UpdateBooking(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var req model.Booking
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	req.ID = id
	req.Status = strings.ToUpper(strings.TrimSpace(req.Status))
	if err := validation.ValidateBookingUpdate(req); err != nil {
		return respondError(c, err)
	}
	api, ctx, cancel := h.api(c)
	defer cancel()
	b, err := api.UpdateBooking(ctx, id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *AdminHandler) DeleteBooking(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	api, ctx, cancel := h.api(c)
	defer cancel()
	if err := api.DeleteBooking(ctx, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- room store -----

func roomStoreError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrRoomNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	case errors.Is(err, repository.ErrRoomNumberExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "room number already exists"})
	}
	logging.FromContext(c.Request().Context()).Error().Err(err).Msg("room store failed")
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

func (h *AdminHandler) ListRooms(c echo.Context) error {
	rooms, err := h.Rooms.List(c.Request().Context())
	if err != nil {
		return roomStoreError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rooms})
}

func (h *AdminHandler) GetRoom(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	room, err := h.Rooms.Get(c.Request().Context(), id)
	if err != nil {
		return roomStoreError(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

func (h *AdminHandler) CreateRoom(c echo.Context) error {
	var req model.Room
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := validation.ValidateRoom(req); err != nil {
		return respondError(c, err)
	}
	room, err := h.Rooms.Create(c.Request().Context(), req)
	if err != nil {
		return roomStoreError(c, err)
	}
	return c.JSON(http.StatusCreated, room)
}

func (h *AdminHandler) UpdateRoom(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var req model.Room
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := validation.ValidateRoom(req); err != nil {
		return respondError(c, err)
	}
	room, err := h.Rooms.Update(c.Request().Context(), id, req)
	if err != nil {
		return roomStoreError(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

func (h *AdminHandler) DeleteRoom(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.Rooms.Delete(c.Request().Context(), id); err != nil {
		return roomStoreError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- menu -----

func (h *AdminHandler) CreateMenuItem(c echo.Context) error {
	var req model.MenuItem
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := validation.ValidateMenuItem(req); err != nil {
		return respondError(c, err)
	}
	api, ctx, cancel := h.api(c)
	defer cancel()
	item, err := api.CreateMenuItem(ctx, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *AdminHandler) UpdateMenuItem(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var req model.MenuItem
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := validation.ValidateMenuItem(req); err != nil {
		return respondError(c, err)
	}
	api, ctx, cancel := h.api(c)
	defer cancel()
	item, err := api.UpdateMenuItem(ctx, id, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *AdminHandler) DeleteMenuItem(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	api, ctx, cancel := h.api(c)
	defer cancel()
	if err := api.DeleteMenuItem(ctx, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
