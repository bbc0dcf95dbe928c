package mockdata

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/iliyamo/palm-beach-resort/internal/model"
)

var (
	bookingPath       = regexp.MustCompile(`^/api/bookings/(\d+)$`)
	bookingStatusPath = regexp.MustCompile(`^/api/bookings/(\d+)/status$`)
)

// Backend answers the admin booking calls from an in-memory copy of the
// fixture bookings. Edits, status changes and deletes act on that copy so
// the admin pages behave.
type Backend struct {
	mu       sync.Mutex
	bookings []model.Booking
}

// NewBackend returns a Backend seeded with the fixture bookings.
func NewBackend() *Backend {
	return &Backend{bookings: Bookings()}
}

// Lookup returns the JSON answer for method and path, or false when no
// fixture covers the request.
func (b *Backend) Lookup(method, path string, body []byte) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	path = strings.TrimRight(path, "/")
	if method == http.MethodGet && path == "/api/bookings" {
		return encode(b.bookings)
	}
	if m := bookingStatusPath.FindStringSubmatch(path); m != nil && method == http.MethodPut {
		var upd model.StatusUpdate
		if err := json.Unmarshal(body, &upd); err != nil {
			return nil, false
		}
		i := b.bookingIndex(atoi(m[1]))
		if i < 0 {
			return nil, false
		}
		b.bookings[i].Status = strings.ToUpper(upd.Status)
		return encode(b.bookings[i])
	}
	if m := bookingPath.FindStringSubmatch(path); m != nil {
		i := b.bookingIndex(atoi(m[1]))
		if i < 0 {
			return nil, false
		}
		switch method {
		case http.MethodGet:
			return encode(b.bookings[i])
		case http.MethodPut:
			var upd model.Booking
			if err := json.Unmarshal(body, &upd); err != nil {
				return nil, false
			}
			upd.ID = b.bookings[i].ID
			b.bookings[i] = upd
			return encode(upd)
		case http.MethodDelete:
			b.bookings = append(b.bookings[:i], b.bookings[i+1:]...)
			return []byte{}, true
		}
	}
	return nil, false
}

func (b *Backend) bookingIndex(id int64) int {
	for i, bk := range b.bookings {
		if bk.ID == id {
			return i
		}
	}
	return -1
}

func encode(v any) ([]byte, bool) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}
	return raw, true
}

func atoi(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}
