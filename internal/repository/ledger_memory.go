package repository

import (
	"context"
	"sync"
	"time"

	"github.com/Domenick1991/staybooking/internal/apperrors"
	"github.com/Domenick1991/staybooking/internal/domain"
)

// MemoryLedger keeps records in process memory. Records are lost on restart.
type MemoryLedger struct {
	mu         sync.RWMutex
	bookings   []domain.Booking
	users      []domain.User
	emails     map[string]struct{}
	bookingIDs *Sequence
	userIDs    *Sequence
	now        func() time.Time
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		emails:     make(map[string]struct{}),
		bookingIDs: NewSequence(0),
		userIDs:    NewSequence(0),
		now:        time.Now,
	}
}

func (r *MemoryLedger) AppendBooking(_ context.Context, draft domain.BookingDraft) (*domain.Booking, error) {
	b, err := newBooking(draft)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = r.bookingIDs.Next()
	b.CreatedAt = r.now().UTC()
	r.bookings = append(r.bookings, b)
	return &b, nil
}

func (r *MemoryLedger) ListBookings(_ context.Context) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return reversed(r.bookings), nil
}

func (r *MemoryLedger) RegisterUser(_ context.Context, draft domain.UserDraft) (*domain.User, error) {
	u, err := newUser(draft)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.emails[u.Email]; exists {
		return nil, apperrors.Conflict("User already exists")
	}
	u.ID = r.userIDs.Next()
	u.CreatedAt = r.now().UTC()
	r.emails[u.Email] = struct{}{}
	r.users = append(r.users, u)
	return &u, nil
}

func (r *MemoryLedger) ListUsers(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *MemoryLedger) Close() error {
	return nil
}

var _ LedgerStore = (*MemoryLedger)(nil)
