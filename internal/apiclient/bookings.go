package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iliyamo/palm-beach-resort/internal/model"
)

// Only the admin booking calls may fall back to fixtures. Guest lookups
// always hit the backend.

// ListBookings returns all bookings (admin).
func (c *Client) ListBookings(ctx context.Context) ([]model.Booking, error) {
	return getList[model.Booking](ctx, c, call{method: http.MethodGet, path: "/api/bookings", fallback: true})
}

// GetBooking returns one booking to its guest.
func (c *Client) GetBooking(ctx context.Context, id int64) (model.Booking, error) {
	return getOne[model.Booking](ctx, c, call{path: fmt.Sprintf("/api/bookings/%d", id)})
}

// AdminGetBooking returns one booking for the admin panel.
func (c *Client) AdminGetBooking(ctx context.Context, id int64) (model.Booking, error) {
	return getOne[model.Booking](ctx, c, call{path: fmt.Sprintf("/api/bookings/%d", id), fallback: true})
}

// CreateBooking submits the booking form.
func (c *Client) CreateBooking(ctx context.Context, req model.BookingRequest) (model.Booking, error) {
	var out model.Booking
	err := c.do(ctx, call{method: http.MethodPost, path: "/api/bookings", body: req}, &out)
	return out, err
}

// UpdateBooking replaces a booking (admin).
func (c *Client) UpdateBooking(ctx context.Context, id int64, b model.Booking) (model.Booking, error) {
	var out model.Booking
	err := c.do(ctx, call{method: http.MethodPut, path: fmt.Sprintf("/api/bookings/%d", id), body: b, fallback: true}, &out)
	return out, err
}

// UpdateBookingStatus changes the status of a booking (admin).
func (c *Client) UpdateBookingStatus(ctx context.Context, id int64, status string) (model.Booking, error) {
	var out model.Booking
	cl := call{
		method:   http.MethodPut,
		path:     fmt.Sprintf("/api/bookings/%d/status", id),
		body:     model.StatusUpdate{Status: status},
		fallback: true,
	}
	err := c.do(ctx, cl, &out)
	return out, err
}

// DeleteBooking cancels and removes a booking (admin).
func (c *Client) DeleteBooking(ctx context.Context, id int64) error {
	return c.do(ctx, call{method: http.MethodDelete, path: fmt.Sprintf("/api/bookings/%d", id), fallback: true}, nil)
}

// GetInvoice returns the invoice of a booking.
func (c *Client) GetInvoice(ctx context.Context, bookingID int64) (model.Invoice, error) {
	return getOne[model.Invoice](ctx, c, call{path: fmt.Sprintf("/api/bookings/%d/invoice", bookingID)})
}
