package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/staybooking/internal/apperrors"
	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgUniqueViolation = "23505"

var pgSchema = []string{
	`CREATE TABLE IF NOT EXISTS bookings (
		id          BIGINT PRIMARY KEY,
		listing_id  BIGINT NOT NULL,
		guest_name  TEXT NOT NULL,
		guest_email TEXT NOT NULL,
		stay_date   TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id          BIGINT PRIMARY KEY,
		name        TEXT NOT NULL,
		email       TEXT NOT NULL UNIQUE,
		credential  TEXT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL
	)`,
}

// PGLedger stores both streams in Postgres. Each append is a single INSERT, so the
// database serializes concurrent writers and the UNIQUE constraint on users.email
// decides duplicate registrations.
type PGLedger struct {
	db         *pgxpool.Pool
	bookingIDs *Sequence
	userIDs    *Sequence
	now        func() time.Time
}

func NewPGLedger(db *pgxpool.Pool) *PGLedger {
	return &PGLedger{
		db:         db,
		bookingIDs: NewSequence(0),
		userIDs:    NewSequence(0),
		now:        time.Now,
	}
}

// Migrate creates the tables and continues the id sequences after the stored maximum.
func (r *PGLedger) Migrate(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return apperrors.Persistence(err, "begin migration")
	}
	defer tx.Rollback(ctx)

	for _, stmt := range pgSchema {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return apperrors.Persistence(err, "create ledger schema")
		}
	}

	var lastBooking, lastUser int64
	if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) FROM bookings`).Scan(&lastBooking); err != nil {
		return apperrors.Persistence(err, "read last booking id")
	}
	if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) FROM users`).Scan(&lastUser); err != nil {
		return apperrors.Persistence(err, "read last user id")
	}
	if err := tx.Commit(ctx); err != nil {
		return apperrors.Persistence(err, "commit migration")
	}

	r.bookingIDs = NewSequence(lastBooking)
	r.userIDs = NewSequence(lastUser)
	return nil
}

func (r *PGLedger) AppendBooking(ctx context.Context, draft domain.BookingDraft) (*domain.Booking, error) {
	b, err := newBooking(draft)
	if err != nil {
		return nil, err
	}
	b.ID = r.bookingIDs.Next()
	b.CreatedAt = r.now().UTC()

	if _, err := r.db.Exec(ctx, `INSERT INTO bookings (id, listing_id, guest_name, guest_email, stay_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`, b.ID, b.ListingID, b.GuestName, b.GuestEmail, b.StayDate, b.CreatedAt); err != nil {
		return nil, apperrors.Persistence(err, "insert booking")
	}
	return &b, nil
}

func (r *PGLedger) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT id, listing_id, guest_name, guest_email, stay_date, created_at FROM bookings ORDER BY id DESC`)
	if err != nil {
		return nil, apperrors.Persistence(err, "query bookings")
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.ListingID, &b.GuestName, &b.GuestEmail, &b.StayDate, &b.CreatedAt); err != nil {
			return nil, apperrors.Persistence(err, "scan booking")
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Persistence(err, "read bookings")
	}
	return bookings, nil
}

func (r *PGLedger) RegisterUser(ctx context.Context, draft domain.UserDraft) (*domain.User, error) {
	u, err := newUser(draft)
	if err != nil {
		return nil, err
	}
	u.ID = r.userIDs.Next()
	u.CreatedAt = r.now().UTC()

	_, err = r.db.Exec(ctx, `INSERT INTO users (id, name, email, credential, created_at)
		VALUES ($1, $2, $3, $4, $5)`, u.ID, u.Name, u.Email, u.Credential, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperrors.Conflict("User already exists")
		}
		return nil, apperrors.Persistence(err, "insert user")
	}
	return &u, nil
}

func (r *PGLedger) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, email, credential, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, apperrors.Persistence(err, "query users")
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Credential, &u.CreatedAt); err != nil {
			return nil, apperrors.Persistence(err, "scan user")
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Persistence(err, "read users")
	}
	return users, nil
}

// Close is a no-op; the pool belongs to the caller.
func (r *PGLedger) Close() error {
	return nil
}

var _ LedgerStore = (*PGLedger)(nil)
