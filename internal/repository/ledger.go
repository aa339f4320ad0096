package repository

import (
	"context"
	"sync"
	"time"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/validation"
)

const requiredFieldsMessage = "All fields are required"

// LedgerStore is the append-only record keeper for bookings and users. Implementations
// must serialize each append so that N successful concurrent appends persist N records,
// and must not report success before the record is recoverable by a later list call.
type LedgerStore interface {
	AppendBooking(ctx context.Context, draft domain.BookingDraft) (*domain.Booking, error)
	// ListBookings returns bookings newest first.
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	RegisterUser(ctx context.Context, draft domain.UserDraft) (*domain.User, error)
	// ListUsers returns users in registration order.
	ListUsers(ctx context.Context) ([]domain.User, error)
	Close() error
}

// Sequence hands out time-derived ids: next = max(unix millis, last+1).
type Sequence struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// NewSequence continues after last, typically the highest id already persisted.
func NewSequence(last int64) *Sequence {
	return &Sequence{last: last, now: time.Now}
}

func (s *Sequence) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

// newBooking validates the draft. ID and CreatedAt are stamped by the store while it
// holds its write lock, so id order matches insertion order.
func newBooking(draft domain.BookingDraft) (domain.Booking, error) {
	if err := validation.Struct(draft, requiredFieldsMessage); err != nil {
		return domain.Booking{}, err
	}
	return domain.Booking{
		ListingID:  draft.ListingID,
		GuestName:  draft.GuestName,
		GuestEmail: draft.GuestEmail,
		StayDate:   draft.StayDate,
	}, nil
}

func newUser(draft domain.UserDraft) (domain.User, error) {
	if err := validation.Struct(draft, requiredFieldsMessage); err != nil {
		return domain.User{}, err
	}
	return domain.User{
		Name:       draft.Name,
		Email:      draft.Email,
		Credential: draft.Credential,
	}, nil
}

func reversed(bookings []domain.Booking) []domain.Booking {
	out := make([]domain.Booking, len(bookings))
	for i, b := range bookings {
		out[len(bookings)-1-i] = b
	}
	return out
}
