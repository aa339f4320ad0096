package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Domenick1991/staybooking/internal/apperrors"
	"github.com/Domenick1991/staybooking/internal/domain"
)

const (
	bookingsFileName = "bookings.jsonl"
	usersFileName    = "users.jsonl"
)

// FileLedger persists each stream as JSON lines in its own file. Every append writes one
// complete line and fsyncs it under the ledger's lock before returning; an in-memory
// mirror of both files serves reads.
type FileLedger struct {
	mu           sync.RWMutex
	bookingsFile *os.File
	usersFile    *os.File
	bookings     []domain.Booking
	users        []domain.User
	emails       map[string]struct{}
	bookingIDs   *Sequence
	userIDs      *Sequence
	now          func() time.Time
}

// OpenFileLedger loads existing records from dir, creating the directory and files if needed.
// A trailing partial line left by an interrupted write is cut off; a complete line that
// does not decode is reported as corruption.
func OpenFileLedger(dir string) (*FileLedger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.Persistence(err, "create ledger directory")
	}

	r := &FileLedger{emails: make(map[string]struct{}), now: time.Now}

	var err error
	if r.bookingsFile, err = openStream(filepath.Join(dir, bookingsFileName), func(line []byte) error {
		var b domain.Booking
		if err := json.Unmarshal(line, &b); err != nil {
			return err
		}
		r.bookings = append(r.bookings, b)
		return nil
	}); err != nil {
		return nil, err
	}

	if r.usersFile, err = openStream(filepath.Join(dir, usersFileName), func(line []byte) error {
		var u domain.User
		if err := json.Unmarshal(line, &u); err != nil {
			return err
		}
		r.users = append(r.users, u)
		r.emails[u.Email] = struct{}{}
		return nil
	}); err != nil {
		_ = r.bookingsFile.Close()
		return nil, err
	}

	var lastBooking, lastUser int64
	for _, b := range r.bookings {
		lastBooking = max(lastBooking, b.ID)
	}
	for _, u := range r.users {
		lastUser = max(lastUser, u.ID)
	}
	r.bookingIDs = NewSequence(lastBooking)
	r.userIDs = NewSequence(lastUser)

	return r, nil
}

func openStream(path string, decode func(line []byte) error) (*os.File, error) {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, apperrors.Persistence(err, "read "+filepath.Base(path))
	}

	complete := bytes.LastIndexByte(data, '\n') + 1
	for n, line := range bytes.Split(data[:complete], []byte{'\n'}) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		if err := decode(line); err != nil {
			return nil, apperrors.Persistence(err, fmt.Sprintf("decode %s line %d", filepath.Base(path), n+1))
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, apperrors.Persistence(err, "open "+filepath.Base(path))
	}
	if complete < len(data) {
		if err := f.Truncate(int64(complete)); err != nil {
			_ = f.Close()
			return nil, apperrors.Persistence(err, "truncate partial record in "+filepath.Base(path))
		}
	}
	return f, nil
}

// appendLine writes v as one line and syncs it. On failure the file is cut back to its
// previous size so no partial record survives.
func appendLine(f *os.File, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Truncate(info.Size())
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Truncate(info.Size())
		return err
	}
	return nil
}

func (r *FileLedger) AppendBooking(_ context.Context, draft domain.BookingDraft) (*domain.Booking, error) {
	b, err := newBooking(draft)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = r.bookingIDs.Next()
	b.CreatedAt = r.now().UTC()
	if err := appendLine(r.bookingsFile, b); err != nil {
		return nil, apperrors.Persistence(err, "write booking")
	}
	r.bookings = append(r.bookings, b)
	return &b, nil
}

func (r *FileLedger) ListBookings(_ context.Context) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return reversed(r.bookings), nil
}

func (r *FileLedger) RegisterUser(_ context.Context, draft domain.UserDraft) (*domain.User, error) {
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
	if err := appendLine(r.usersFile, u); err != nil {
		return nil, apperrors.Persistence(err, "write user")
	}
	r.emails[u.Email] = struct{}{}
	r.users = append(r.users, u)
	return &u, nil
}

func (r *FileLedger) ListUsers(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *FileLedger) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	bErr := r.bookingsFile.Close()
	uErr := r.usersFile.Close()
	if bErr != nil {
		return bErr
	}
	return uErr
}

var _ LedgerStore = (*FileLedger)(nil)
