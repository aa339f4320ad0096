package repository

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/Domenick1991/staybooking/internal/apperrors"
	"github.com/Domenick1991/staybooking/internal/domain"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS bookings (
		id          INTEGER PRIMARY KEY,
		listing_id  INTEGER NOT NULL,
		guest_name  TEXT NOT NULL,
		guest_email TEXT NOT NULL,
		stay_date   TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id          INTEGER PRIMARY KEY,
		name        TEXT NOT NULL,
		email       TEXT NOT NULL UNIQUE,
		credential  TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,
}

// SQLiteLedger stores both streams in one embedded database file. The pool is limited to
// a single connection so writes are serialized by database/sql itself.
type SQLiteLedger struct {
	db         *sql.DB
	bookingIDs *Sequence
	userIDs    *Sequence
	now        func() time.Time
}

func OpenSQLiteLedger(ctx context.Context, path string) (*SQLiteLedger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, apperrors.Persistence(err, "create ledger directory")
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(FULL)")
	if err != nil {
		return nil, apperrors.Persistence(err, "open sqlite ledger")
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, apperrors.Persistence(err, "create ledger schema")
		}
	}

	var lastBooking, lastUser int64
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) FROM bookings`).Scan(&lastBooking); err != nil {
		_ = db.Close()
		return nil, apperrors.Persistence(err, "read last booking id")
	}
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) FROM users`).Scan(&lastUser); err != nil {
		_ = db.Close()
		return nil, apperrors.Persistence(err, "read last user id")
	}

	return &SQLiteLedger{
		db:         db,
		bookingIDs: NewSequence(lastBooking),
		userIDs:    NewSequence(lastUser),
		now:        time.Now,
	}, nil
}

func (r *SQLiteLedger) AppendBooking(ctx context.Context, draft domain.BookingDraft) (*domain.Booking, error) {
	b, err := newBooking(draft)
	if err != nil {
		return nil, err
	}
	b.ID = r.bookingIDs.Next()
	b.CreatedAt = r.now().UTC()

	if _, err := r.db.ExecContext(ctx, `INSERT INTO bookings (id, listing_id, guest_name, guest_email, stay_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`, b.ID, b.ListingID, b.GuestName, b.GuestEmail, b.StayDate, b.CreatedAt.Format(time.RFC3339Nano)); err != nil {
		return nil, apperrors.Persistence(err, "insert booking")
	}
	return &b, nil
}

func (r *SQLiteLedger) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, listing_id, guest_name, guest_email, stay_date, created_at FROM bookings ORDER BY id DESC`)
	if err != nil {
		return nil, apperrors.Persistence(err, "query bookings")
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var (
			b         domain.Booking
			createdAt string
		)
		if err := rows.Scan(&b.ID, &b.ListingID, &b.GuestName, &b.GuestEmail, &b.StayDate, &createdAt); err != nil {
			return nil, apperrors.Persistence(err, "scan booking")
		}
		if b.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, apperrors.Persistence(err, "parse booking created_at")
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Persistence(err, "read bookings")
	}
	return bookings, nil
}

func (r *SQLiteLedger) RegisterUser(ctx context.Context, draft domain.UserDraft) (*domain.User, error) {
	u, err := newUser(draft)
	if err != nil {
		return nil, err
	}
	u.ID = r.userIDs.Next()
	u.CreatedAt = r.now().UTC()

	_, err = r.db.ExecContext(ctx, `INSERT INTO users (id, name, email, credential, created_at)
		VALUES (?, ?, ?, ?, ?)`, u.ID, u.Name, u.Email, u.Credential, u.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		var sqliteErr *sqlite.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
			return nil, apperrors.Conflict("User already exists")
		}
		return nil, apperrors.Persistence(err, "insert user")
	}
	return &u, nil
}

func (r *SQLiteLedger) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, email, credential, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, apperrors.Persistence(err, "query users")
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var (
			u         domain.User
			createdAt string
		)
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Credential, &createdAt); err != nil {
			return nil, apperrors.Persistence(err, "scan user")
		}
		if u.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, apperrors.Persistence(err, "parse user created_at")
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Persistence(err, "read users")
	}
	return users, nil
}

func (r *SQLiteLedger) Close() error {
	return r.db.Close()
}

var _ LedgerStore = (*SQLiteLedger)(nil)
