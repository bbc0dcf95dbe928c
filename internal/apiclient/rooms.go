package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/iliyamo/palm-beach-resort/internal/model"
)

// ListRooms returns every room.
func (c *Client) ListRooms(ctx context.Context) ([]model.Room, error) {
	return getList[model.Room](ctx, c, call{method: http.MethodGet, path: "/api/rooms"})
}

// GetRoom returns one room.
func (c *Client) GetRoom(ctx context.Context, id int64) (model.Room, error) {
	return getOne[model.Room](ctx, c, call{path: fmt.Sprintf("/api/rooms/%d", id)})
}

// RoomAvailability lists rooms free for the stay. Transport failures and
// 5xx answers are retried with exponential backoff.
func (c *Client) RoomAvailability(ctx context.Context, q model.Availability) ([]model.Room, error) {
	query := url.Values{}
	query.Set("checkIn", q.CheckIn)
	query.Set("checkOut", q.CheckOut)
	if q.Guests > 0 {
		query.Set("guests", strconv.Itoa(q.Guests))
	}
	cl := call{method: http.MethodGet, path: "/api/rooms/availability", query: query}

	var rooms []model.Room
	err := withRetry(ctx, c.retry, "room availability", func() error {
		var err error
		rooms, err = getList[model.Room](ctx, c, cl)
		return err
	})
	return rooms, err
}

// CreateRoom adds a room (admin).
func (c *Client) CreateRoom(ctx context.Context, r model.Room) (model.Room, error) {
	var out model.Room
	err := c.do(ctx, call{method: http.MethodPost, path: "/api/rooms", body: r}, &out)
	return out, err
}

// UpdateRoom replaces a room (admin).
func (c *Client) UpdateRoom(ctx context.Context, id int64, r model.Room) (model.Room, error) {
	var out model.Room
	err := c.do(ctx, call{method: http.MethodPut, path: fmt.Sprintf("/api/rooms/%d", id), body: r}, &out)
	return out, err
}

// DeleteRoom removes a room (admin).
func (c *Client) DeleteRoom(ctx context.Context, id int64) error {
	return c.do(ctx, call{method: http.MethodDelete, path: fmt.Sprintf("/api/rooms/%d", id)}, nil)
}
