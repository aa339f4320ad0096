package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/Domenick1991/staybooking/internal/apperrors"
	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingDraft(n int) domain.BookingDraft {
	return domain.BookingDraft{
		ListingID:  int64(n%50 + 1),
		GuestName:  fmt.Sprintf("Guest %d", n),
		GuestEmail: fmt.Sprintf("guest%d@example.com", n),
		StayDate:   "2025-01-01",
	}
}

// runLedgerSuite checks the LedgerStore contract against any medium.
func runLedgerSuite(t *testing.T, open func(t *testing.T) LedgerStore) {
	ctx := context.Background()

	t.Run("append then list shows newest first", func(t *testing.T) {
		store := open(t)

		first, err := store.AppendBooking(ctx, bookingDraft(1))
		require.NoError(t, err)
		second, err := store.AppendBooking(ctx, domain.BookingDraft{ListingID: 7, GuestName: "Alice", GuestEmail: "a@x.com", StayDate: "2025-01-01"})
		require.NoError(t, err)

		assert.Greater(t, second.ID, first.ID)
		assert.False(t, second.CreatedAt.IsZero())

		bookings, err := store.ListBookings(ctx)
		require.NoError(t, err)
		require.Len(t, bookings, 2)
		assert.Equal(t, second.ID, bookings[0].ID)
		assert.Equal(t, "Alice", bookings[0].GuestName)
		assert.Equal(t, int64(7), bookings[0].ListingID)
		assert.Equal(t, first.ID, bookings[1].ID)
	})

	t.Run("empty store lists nothing", func(t *testing.T) {
		store := open(t)

		bookings, err := store.ListBookings(ctx)
		require.NoError(t, err)
		assert.Empty(t, bookings)

		users, err := store.ListUsers(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("invalid booking draft is rejected and not stored", func(t *testing.T) {
		store := open(t)

		drafts := []domain.BookingDraft{
			{GuestName: "A", GuestEmail: "a@x.com", StayDate: "2025-01-01"},
			{ListingID: 1, GuestEmail: "a@x.com", StayDate: "2025-01-01"},
			{ListingID: 1, GuestName: "A", GuestEmail: " ", StayDate: "2025-01-01"},
			{ListingID: 1, GuestName: "A", GuestEmail: "a@x.com"},
		}
		for _, d := range drafts {
			_, err := store.AppendBooking(ctx, d)
			assert.True(t, apperrors.Is(err, apperrors.CodeValidation), "draft %+v", d)
		}

		bookings, err := store.ListBookings(ctx)
		require.NoError(t, err)
		assert.Empty(t, bookings)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		store := open(t)

		first, err := store.RegisterUser(ctx, domain.UserDraft{Name: "Bob", Email: "bob@x.com", Credential: "secret"})
		require.NoError(t, err)
		assert.Equal(t, "secret", first.Credential)

		_, err = store.RegisterUser(ctx, domain.UserDraft{Name: "Bobby", Email: "bob@x.com", Credential: "other"})
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.CodeConflict))

		// Exact match only.
		_, err = store.RegisterUser(ctx, domain.UserDraft{Name: "Bob", Email: "BOB@x.com", Credential: "secret"})
		require.NoError(t, err)

		users, err := store.ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "bob@x.com", users[0].Email)
		assert.Equal(t, "Bob", users[0].Name)
		assert.Equal(t, "BOB@x.com", users[1].Email)
	})

	t.Run("invalid user draft is rejected", func(t *testing.T) {
		store := open(t)

		_, err := store.RegisterUser(ctx, domain.UserDraft{Name: "Bob", Email: "bob@x.com"})
		assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
	})

	t.Run("concurrent appends are all kept", func(t *testing.T) {
		store := open(t)
		const k = 64

		var wg sync.WaitGroup
		errs := make(chan error, k)
		for i := 0; i < k; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				if _, err := store.AppendBooking(ctx, bookingDraft(n)); err != nil {
					errs <- err
				}
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		bookings, err := store.ListBookings(ctx)
		require.NoError(t, err)
		require.Len(t, bookings, k)

		ids := make(map[int64]struct{}, k)
		names := make(map[string]struct{}, k)
		for i, b := range bookings {
			ids[b.ID] = struct{}{}
			names[b.GuestName] = struct{}{}
			if i > 0 {
				assert.Less(t, b.ID, bookings[i-1].ID)
			}
		}
		assert.Len(t, ids, k)
		assert.Len(t, names, k)
	})

	t.Run("concurrent registrations of one email keep exactly one", func(t *testing.T) {
		store := open(t)
		const k = 16

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			ok        int
			conflicts int
		)
		for i := 0; i < k; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				_, err := store.RegisterUser(ctx, domain.UserDraft{Name: fmt.Sprintf("U%d", n), Email: "same@x.com", Credential: "pw"})
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					ok++
				case apperrors.Is(err, apperrors.CodeConflict):
					conflicts++
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 1, ok)
		assert.Equal(t, k-1, conflicts)

		users, err := store.ListUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})
}
