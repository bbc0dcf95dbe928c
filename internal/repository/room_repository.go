package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/palm-beach-resort/internal/model"
)

const mysqlDuplicateEntry = 1062

// MySQLRoomRepo stores admin rooms in the admin_rooms table.
type MySQLRoomRepo struct{ DB *sql.DB }

func NewMySQLRoomRepo(db *sql.DB) *MySQLRoomRepo { return &MySQLRoomRepo{DB: db} }

const roomColumns = "id, number, name, type, COALESCE(description, ''), price_per_night, capacity, status, image_url"

func scanRoom(row interface{ Scan(...any) error }) (model.Room, error) {
	var r model.Room
	err := row.Scan(&r.ID, &r.Number, &r.Name, &r.Type, &r.Description, &r.PricePerNight, &r.Capacity, &r.Status, &r.ImageURL)
	return r, err
}

// List returns every room ordered by number.
func (r *MySQLRoomRepo) List(ctx context.Context) ([]model.Room, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+roomColumns+" FROM admin_rooms ORDER BY number")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, rows.Err()
}

// Get fetches a room by id.
func (r *MySQLRoomRepo) Get(ctx context.Context, id int64) (model.Room, error) {
	room, err := scanRoom(r.DB.QueryRowContext(ctx, "SELECT "+roomColumns+" FROM admin_rooms WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Room{}, ErrRoomNotFound
	}
	return room, err
}

// Create inserts a room and returns it with its new id.
func (r *MySQLRoomRepo) Create(ctx context.Context, room model.Room) (model.Room, error) {
	normalize(&room)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO admin_rooms (number, name, type, description, price_per_night, capacity, status, image_url) VALUES (?,?,?,?,?,?,?,?)",
		room.Number, room.Name, room.Type, room.Description, room.PricePerNight, room.Capacity, room.Status, room.ImageURL)
	if err != nil {
		return model.Room{}, translate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Room{}, err
	}
	room.ID = id
	return room, nil
}

// Update overwrites a room.
func (r *MySQLRoomRepo) Update(ctx context.Context, id int64, room model.Room) (model.Room, error) {
	normalize(&room)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE admin_rooms SET number=?, name=?, type=?, description=?, price_per_night=?, capacity=?, status=?, image_url=? WHERE id=?",
		room.Number, room.Name, room.Type, room.Description, room.PricePerNight, room.Capacity, room.Status, room.ImageURL, id)
	if err != nil {
		return model.Room{}, translate(err)
	}
	// MySQL reports 0 affected rows for an unchanged row, so check existence separately.
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.Get(ctx, id); err != nil {
			return model.Room{}, err
		}
	}
	room.ID = id
	return room, nil
}

// Delete removes a room.
func (r *MySQLRoomRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM admin_rooms WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

func translate(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
		return ErrRoomNumberExists
	}
	return err
}

func normalize(r *model.Room) {
	r.Number = strings.TrimSpace(r.Number)
	r.Type = strings.ToUpper(strings.TrimSpace(r.Type))
	r.Status = strings.ToUpper(strings.TrimSpace(r.Status))
	if r.Status == "" {
		r.Status = model.RoomAvailable
	}
}
