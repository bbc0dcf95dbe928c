package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/palm-beach-resort/internal/apiclient"
	"github.com/iliyamo/palm-beach-resort/internal/invoice"
	"github.com/iliyamo/palm-beach-resort/internal/logging"
	"github.com/iliyamo/palm-beach-resort/internal/model"
	"github.com/iliyamo/palm-beach-resort/internal/queue"
	"github.com/iliyamo/palm-beach-resort/internal/validation"
)

const publishTimeout = 3 * time.Second

// BookingHandler serves the guest booking form and the billing page.
type BookingHandler struct {
	Upstream
	Events queue.Publisher
	Now    func() time.Time
}

// bookingView is a booking with its stay length and price estimate.
type bookingView struct {
	model.Booking
	Nights         int         `json:"nights"`
	EstimatedTotal model.Money `json:"estimatedTotal"`
}

// Create validates the booking form, forwards it and publishes a
// booking.created event. Event failures are logged only.
func (h *BookingHandler) Create(c echo.Context) error {
	var req model.BookingRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody(c)
	}
	if err := validation.ValidateBooking(req); err != nil {
		return respondError(c, err)
	}

	api, ctx, cancel := h.api(c)
	defer cancel()
	b, err := api.CreateBooking(ctx, req)
	if err != nil {
		return respondError(c, err)
	}
	view := h.view(ctx, api, b)
	h.publish(c, view)
	return c.JSON(http.StatusCreated, view)
}

func (h *BookingHandler) Get(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	api, ctx, cancel := h.api(c)
	defer cancel()
	b, err := api.GetBooking(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, h.view(ctx, api, b))
}

// Invoice returns the billing view: room charges and food/room-service
// charges summed separately next to the backend's totals.
func (h *BookingHandler) Invoice(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	api, ctx, cancel := h.api(c)
	defer cancel()
	inv, err := api.GetInvoice(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, invoice.Summarize(inv))
}

// view adds nights and an estimate. The backend's totalPrice wins; when it
// is missing the room rate is looked up.
func (h *BookingHandler) view(ctx context.Context, api *apiclient.Client, b model.Booking) bookingView {
	v := bookingView{Booking: b, EstimatedTotal: b.TotalPrice}
	nights, err := validation.Nights(b.CheckIn, b.CheckOut)
	if err != nil {
		return v
	}
	v.Nights = nights
	if b.TotalPrice.IsZero() && b.RoomID > 0 {
		if room, err := api.GetRoom(ctx, b.RoomID); err == nil {
			v.EstimatedTotal = stayPrice(room.PricePerNight, nights)
		}
	}
	return v
}

func (h *BookingHandler) publish(c echo.Context, v bookingView) {
	if h.Events == nil {
		return
	}
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	ev := queue.NewBookingCreated(v.Booking, v.Nights, now())
	ev.TotalPrice = v.EstimatedTotal

	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request().Context()), publishTimeout)
	defer cancel()
	if err := h.Events.PublishBookingCreated(ctx, ev); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Int64("booking_id", v.ID).Msg("publish booking.created failed")
	}
}
