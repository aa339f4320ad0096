package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Domenick1991/staybooking/internal/apperrors"
	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/logger"
	"github.com/Domenick1991/staybooking/internal/metrics"
	"github.com/Domenick1991/staybooking/internal/notify"
	"github.com/Domenick1991/staybooking/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
)

const defaultNotifyTimeout = 10 * time.Second

type BookingUseCase interface {
	CreateBooking(ctx context.Context, draft domain.BookingDraft) (*domain.Booking, error)
	ListBookingsEnriched(ctx context.Context) ([]domain.EnrichedBooking, error)
}

type ListingLookup interface {
	Get(id int64) (domain.Listing, bool)
}

type BookingService struct {
	ledger        repository.LedgerStore
	listings      ListingLookup
	notifier      notify.Notifier
	notifyTimeout time.Duration
	log           *logger.Logger
	metrics       *metrics.Metrics
	inflight      sync.WaitGroup
}

type BookingServiceOption func(*BookingService)

func WithNotifier(n notify.Notifier) BookingServiceOption {
	return func(s *BookingService) {
		s.notifier = n
	}
}

func WithNotifyTimeout(d time.Duration) BookingServiceOption {
	return func(s *BookingService) {
		s.notifyTimeout = d
	}
}

func WithLogger(log *logger.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.log = log
	}
}

func WithMetrics(m *metrics.Metrics) BookingServiceOption {
	return func(s *BookingService) {
		s.metrics = m
	}
}

func NewBookingService(ledger repository.LedgerStore, listings ListingLookup, opts ...BookingServiceOption) *BookingService {
	s := &BookingService{
		ledger:        ledger,
		listings:      listings,
		notifyTimeout: defaultNotifyTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.metrics == nil {
		s.metrics = metrics.New(prometheus.NewRegistry())
	}
	return s
}

// CreateBooking records the booking and then hands it to the notifier in the background.
// Notification failures are logged and never affect the result.
func (s *BookingService) CreateBooking(ctx context.Context, draft domain.BookingDraft) (*domain.Booking, error) {
	b, err := s.ledger.AppendBooking(ctx, draft)
	if err != nil {
		if apperrors.Is(err, apperrors.CodePersistence) {
			s.metrics.LedgerErrors.WithLabelValues("append_booking").Inc()
			s.log.Error("booking not recorded", "listing_id", draft.ListingID, "error", err)
		}
		return nil, err
	}
	s.metrics.BookingsCreated.Inc()
	s.log.Info("booking recorded", "booking_id", b.ID, "listing_id", b.ListingID)

	s.notifyAsync(ctx, *b)
	return b, nil
}

func (s *BookingService) notifyAsync(ctx context.Context, b domain.Booking) {
	if s.notifier == nil {
		return
	}

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		defer func() {
			if r := recover(); r != nil {
				s.metrics.NotificationFailures.Inc()
				s.log.Error("booking notifier panicked", "booking_id", b.ID, "panic", fmt.Sprint(r))
			}
		}()

		// The request may finish before delivery does.
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
		defer cancel()

		if err := s.notifier.NotifyBookingConfirmed(nctx, b); err != nil {
			s.metrics.NotificationFailures.Inc()
			s.log.Warn("booking confirmation not delivered",
				"booking_id", b.ID,
				"error", apperrors.Notification(err, "notify booking confirmed"),
			)
		}
	}()
}

// Wait blocks until background notifications have finished.
func (s *BookingService) Wait() {
	s.inflight.Wait()
}

// ListBookingsEnriched joins every booking to its listing, newest first. Bookings whose
// listing is not in the catalog get placeholder name and locality.
func (s *BookingService) ListBookingsEnriched(ctx context.Context) ([]domain.EnrichedBooking, error) {
	bookings, err := s.ledger.ListBookings(ctx)
	if err != nil {
		if apperrors.Is(err, apperrors.CodePersistence) {
			s.metrics.LedgerErrors.WithLabelValues("list_bookings").Inc()
		}
		return nil, err
	}

	enriched := make([]domain.EnrichedBooking, 0, len(bookings))
	for _, b := range bookings {
		e := domain.EnrichedBooking{
			Booking:         b,
			ListingName:     domain.UnknownListingName,
			ListingLocality: domain.UnknownListingLocality,
		}
		if l, ok := s.listings.Get(b.ListingID); ok {
			e.ListingName = l.Name
			e.ListingLocality = l.Locality
		}
		enriched = append(enriched, e)
	}
	return enriched, nil
}

var _ BookingUseCase = (*BookingService)(nil)
