package repository

import (
	"context"

	"github.com/iliyamo/palm-beach-resort/internal/model"
)

// RoomStore is the CRUD store behind the room admin page. Rooms are
// listed by number.
type RoomStore interface {
	List(ctx context.Context) ([]model.Room, error)
	Get(ctx context.Context, id int64) (model.Room, error)
	Create(ctx context.Context, r model.Room) (model.Room, error)
	Update(ctx context.Context, id int64, r model.Room) (model.Room, error)
	Delete(ctx context.Context, id int64) error
}
