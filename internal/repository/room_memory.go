package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/iliyamo/palm-beach-resort/internal/model"
)

// MemoryRoomRepo is the in-process RoomStore used when no database is
// configured. It mirrors the browser-storage store of the admin page.
type MemoryRoomRepo struct {
	mu     sync.RWMutex
	nextID int64
	rooms  map[int64]model.Room
}

// NewMemoryRoomRepo returns a store seeded with rooms. Seed IDs are kept.
func NewMemoryRoomRepo(seed ...model.Room) *MemoryRoomRepo {
	m := &MemoryRoomRepo{rooms: make(map[int64]model.Room)}
	for _, r := range seed {
		normalize(&r)
		m.rooms[r.ID] = r
		if r.ID > m.nextID {
			m.nextID = r.ID
		}
	}
	return m
}

func (m *MemoryRoomRepo) List(_ context.Context) ([]model.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (m *MemoryRoomRepo) Get(_ context.Context, id int64) (model.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	if !ok {
		return model.Room{}, ErrRoomNotFound
	}
	return r, nil
}

func (m *MemoryRoomRepo) Create(_ context.Context, r model.Room) (model.Room, error) {
	normalize(&r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.numberTaken(r.Number, 0) {
		return model.Room{}, ErrRoomNumberExists
	}
	m.nextID++
	r.ID = m.nextID
	m.rooms[r.ID] = r
	return r, nil
}

func (m *MemoryRoomRepo) Update(_ context.Context, id int64, r model.Room) (model.Room, error) {
	normalize(&r)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rooms[id]; !ok {
		return model.Room{}, ErrRoomNotFound
	}
	if m.numberTaken(r.Number, id) {
		return model.Room{}, ErrRoomNumberExists
	}
	r.ID = id
	m.rooms[id] = r
	return r, nil
}

func (m *MemoryRoomRepo) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rooms[id]; !ok {
		return ErrRoomNotFound
	}
	delete(m.rooms, id)
	return nil
}

func (m *MemoryRoomRepo) numberTaken(number string, except int64) bool {
	for id, r := range m.rooms {
		if id != except && strings.EqualFold(r.Number, number) {
			return true
		}
	}
	return false
}
