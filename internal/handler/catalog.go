package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/palm-beach-resort/internal/model"
	"github.com/iliyamo/palm-beach-resort/internal/validation"
)

// CatalogHandler serves the public room and menu listings.
type CatalogHandler struct {
	Upstream
}

// roomQuote is a room with the price of the requested stay.
type roomQuote struct {
	model.Room
	Nights         int         `json:"nights"`
	EstimatedTotal model.Money `json:"estimatedTotal"`
}

// ListRooms returns every room. Optional ?type= and ?status= filter the
// list case-insensitively.
func (h *CatalogHandler) ListRooms(c echo.Context) error {
	api, ctx, cancel := h.api(c)
	defer cancel()
	rooms, err := api.ListRooms(ctx)
	if err != nil {
		return respondError(c, err)
	}
	typ := strings.TrimSpace(c.QueryParam("type"))
	status := strings.TrimSpace(c.QueryParam("status"))
	out := make([]model.Room, 0, len(rooms))
	for _, r := range rooms {
		if typ != "" && !strings.EqualFold(r.Type, typ) {
			continue
		}
		if status != "" && !strings.EqualFold(r.Status, status) {
			continue
		}
		out = append(out, r)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

func (h *CatalogHandler) GetRoom(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	api, ctx, cancel := h.api(c)
	defer cancel()
	room, err := api.GetRoom(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, room)
}

// Availability lists rooms free for ?checkIn=&checkOut=[&guests=] with the
// estimated price of the stay.
func (h *CatalogHandler) Availability(c echo.Context) error {
	q := model.Availability{
		CheckIn:  strings.TrimSpace(c.QueryParam("checkIn")),
		CheckOut: strings.TrimSpace(c.QueryParam("checkOut")),
	}
	if g := c.QueryParam("guests"); g != "" {
		n, err := strconv.Atoi(g)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "guests must be a positive number"})
		}
		q.Guests = n
	}
	if err := validation.ValidateStayDates(q.CheckIn, q.CheckOut); err != nil {
		return respondError(c, err)
	}
	nights, _ := validation.Nights(q.CheckIn, q.CheckOut)

	api, ctx, cancel := h.api(c)
	defer cancel()
	rooms, err := api.RoomAvailability(ctx, q)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]roomQuote, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, roomQuote{Room: r, Nights: nights, EstimatedTotal: stayPrice(r.PricePerNight, nights)})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"checkIn":  q.CheckIn,
		"checkOut": q.CheckOut,
		"nights":   nights,
		"items":    out,
	})
}

// ListMenuItems returns the menu, optionally limited to ?category=.
func (h *CatalogHandler) ListMenuItems(c echo.Context) error {
	api, ctx, cancel := h.api(c)
	defer cancel()
	items, err := api.ListMenuItems(ctx, strings.TrimSpace(c.QueryParam("category")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

func (h *CatalogHandler) GetMenuItem(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	api, ctx, cancel := h.api(c)
	defer cancel()
	item, err := api.GetMenuItem(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

func stayPrice(perNight model.Money, nights int) model.Money {
	return perNight.Mul(decimal.NewFromInt(int64(nights)))
}
