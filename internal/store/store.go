// Package store keeps an in-process snapshot of the caller's bookings
// on top of the API client.  It refreshes on an interval and applies
// status actions optimistically: the server call runs first, and on
// success the local copy mutates in place so callers see the new
// status without waiting for the next refresh.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/driveloop/vehicle-rental/internal/booking"
	"github.com/driveloop/vehicle-rental/internal/client"
)

// DefaultRefreshInterval is how often Run polls the API.
const DefaultRefreshInterval = 30 * time.Second

// Side selects which booking list the store mirrors.
type Side int

const (
	// RenterSide mirrors the caller's own bookings.
	RenterSide Side = iota
	// OwnerSide mirrors bookings against the caller's vehicles.
	OwnerSide
)

// Store is safe for concurrent use.  Each local mutation is stamped
// with a logical clock; a refresh only overwrites entries whose stamp
// is not newer than the clock value at the moment the snapshot was
// requested, so an action applied while a refresh is in flight wins
// over the stale snapshot.
type Store struct {
	api  *client.Client
	side Side

	mu       sync.Mutex
	clock    uint64
	bookings map[uint64]client.Booking
	stamps   map[uint64]uint64
}

// New returns a Store mirroring one side of the booking relationship.
func New(api *client.Client, side Side) *Store {
	return &Store{
		api:      api,
		side:     side,
		bookings: make(map[uint64]client.Booking),
		stamps:   make(map[uint64]uint64),
	}
}

// Bookings returns the current snapshot, optionally narrowed to one
// status, newest booking first.  The result is a copy.
func (s *Store) Bookings(statusFilter string) []client.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]client.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return booking.FilterByStatus(out, statusFilter)
}

// Get returns one booking by id.
func (s *Store) Get(id uint64) (client.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	return b, ok
}

// Refresh replaces the snapshot with the server's current state.
// Entries mutated locally after the snapshot was requested keep their
// local copy until the next refresh observes the server catching up.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	requestedAt := s.clock
	s.mu.Unlock()

	var (
		remote []client.Booking
		err    error
	)
	if s.side == OwnerSide {
		remote, err = s.api.OwnerBookings(ctx, "")
	} else {
		remote, err = s.api.MyBookings(ctx, "")
	}
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[uint64]client.Booking, len(remote))
	stamps := make(map[uint64]uint64, len(remote))
	for _, b := range remote {
		if stamp, ok := s.stamps[b.ID]; ok && stamp > requestedAt {
			// Local write happened after the snapshot was requested.
			next[b.ID] = s.bookings[b.ID]
			stamps[b.ID] = stamp
			continue
		}
		next[b.ID] = b
	}
	// Locally-newer entries the snapshot no longer contains survive
	// one more cycle rather than vanishing mid-action.
	for id, stamp := range s.stamps {
		if stamp > requestedAt {
			if _, seen := next[id]; !seen {
				next[id] = s.bookings[id]
				stamps[id] = stamp
			}
		}
	}
	s.bookings = next
	s.stamps = stamps
	return nil
}

// Action is a status change the store can apply.
type Action func(ctx context.Context, id uint64) (client.Booking, error)

// Apply runs a status action against the server and, only on success,
// mutates the local copy in place.  A failed call leaves the snapshot
// untouched and returns the server's typed error.
func (s *Store) Apply(ctx context.Context, id uint64, act Action) (client.Booking, error) {
	updated, err := act(ctx, id)
	if err != nil {
		return client.Booking{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock++
	s.bookings[updated.ID] = updated
	s.stamps[updated.ID] = s.clock
	return updated, nil
}

// Accept confirms a pending request (owner side).
func (s *Store) Accept(ctx context.Context, id uint64) (client.Booking, error) {
	return s.Apply(ctx, id, s.api.AcceptBooking)
}

// Decline declines a pending request (owner side).
func (s *Store) Decline(ctx context.Context, id uint64) (client.Booking, error) {
	return s.Apply(ctx, id, s.api.DeclineBooking)
}

// Cancel withdraws the caller's own pending request (renter side).
func (s *Store) Cancel(ctx context.Context, id uint64) (client.Booking, error) {
	return s.Apply(ctx, id, s.api.CancelBooking)
}

// Run refreshes immediately and then on every tick until the context
// is cancelled.  Refresh errors are reported through onError when it
// is non-nil and never stop the loop.
func (s *Store) Run(ctx context.Context, interval time.Duration, onError func(error)) {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if err := s.Refresh(ctx); err != nil && onError != nil {
		onError(err)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil && onError != nil {
				onError(err)
			}
		}
	}
}
