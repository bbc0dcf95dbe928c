// Package repository defines the admin room store and the error values
// shared by its implementations. Handlers translate ErrRoomNotFound into
// 404 and ErrRoomNumberExists into 409.
package repository

import "errors"

// ErrRoomNotFound is returned when no room has the requested ID.
var ErrRoomNotFound = errors.New("room not found")

// ErrRoomNumberExists is returned when another room already uses the number.
var ErrRoomNumberExists = errors.New("room number already exists")
