package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lithammer/shortuuid/v3"

	"github.com/gfragi/book-seat-pay/internal/data/entity"
	"github.com/gfragi/book-seat-pay/pkg/database"
)

// PostgresStore keeps the booking table in Postgres for deployments that
// outgrow the CSV file. The position column preserves table order, which
// payment codes and exports depend on.
type PostgresStore struct {
	db database.PgxIface
}

func NewPostgresStore(db database.PgxIface) *PostgresStore {
	return &PostgresStore{db: db}
}

// Init creates the schema when it is not there yet.
func (s *PostgresStore) Init(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS bookings (
			position        INT PRIMARY KEY,
			recorded_at     TIMESTAMP NOT NULL,
			parent_name     TEXT NOT NULL,
			email           TEXT NOT NULL,
			child_class     TEXT NOT NULL DEFAULT '',
			child_tickets   INT NOT NULL DEFAULT 0,
			adult_tickets   INT NOT NULL DEFAULT 0,
			total_tickets   INT NOT NULL DEFAULT 0,
			total_amount    DOUBLE PRECISION NOT NULL DEFAULT 0,
			payment_method  TEXT NOT NULL DEFAULT '',
			payment_code    TEXT NOT NULL DEFAULT '',
			payment_status  TEXT NOT NULL,
			category        TEXT NOT NULL,
			priority_number INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS bookings_archive (
			archive_ref     TEXT NOT NULL,
			position        INT NOT NULL,
			recorded_at     TIMESTAMP NOT NULL,
			parent_name     TEXT NOT NULL,
			email           TEXT NOT NULL,
			child_class     TEXT NOT NULL DEFAULT '',
			child_tickets   INT NOT NULL DEFAULT 0,
			adult_tickets   INT NOT NULL DEFAULT 0,
			total_tickets   INT NOT NULL DEFAULT 0,
			total_amount    DOUBLE PRECISION NOT NULL DEFAULT 0,
			payment_method  TEXT NOT NULL DEFAULT '',
			payment_code    TEXT NOT NULL DEFAULT '',
			payment_status  TEXT NOT NULL,
			category        TEXT NOT NULL,
			priority_number INT NOT NULL DEFAULT 0,
			PRIMARY KEY (archive_ref, position)
		)`,
	}
	for _, q := range queries {
		if _, err := s.db.Exec(ctx, q); err != nil {
			return &StorageError{Op: "init", Err: err}
		}
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) ([]entity.Booking, error) {
	query := `
		SELECT recorded_at, parent_name, email, child_class,
		       child_tickets, adult_tickets, total_tickets, total_amount,
		       payment_method, payment_code, payment_status, category,
		       priority_number
		FROM bookings
		ORDER BY position`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, &StorageError{Op: "load", Err: err}
	}
	defer rows.Close()

	var records []entity.Booking
	for rows.Next() {
		var r entity.Booking
		err := rows.Scan(
			&r.Timestamp, &r.ParentName, &r.Email, &r.ChildClass,
			&r.ChildTickets, &r.AdultTickets, &r.TotalTickets, &r.TotalAmount,
			&r.PaymentMethod, &r.PaymentCode, &r.PaymentStatus, &r.Category,
			&r.PriorityNumber,
		)
		if err != nil {
			return nil, &StorageError{Op: "load", Err: err}
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "load", Err: err}
	}
	return records, nil
}

func (s *PostgresStore) Save(ctx context.Context, records []entity.Booking) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return &StorageError{Op: "save", Err: err}
	}
	defer tx.Rollback(ctx)

	if err := replaceAll(ctx, tx, records); err != nil {
		return &StorageError{Op: "save", Err: err}
	}
	if err := tx.Commit(ctx); err != nil {
		return &StorageError{Op: "save", Err: err}
	}
	return nil
}

func (s *PostgresStore) Replace(ctx context.Context, records []entity.Booking) (string, error) {
	ref := fmt.Sprintf("%s-%s", time.Now().Format("20060102-150405"), shortuuid.New())

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return "", &StorageError{Op: "replace", Err: err}
	}
	defer tx.Rollback(ctx)

	archive := `
		INSERT INTO bookings_archive (archive_ref, position, recorded_at,
			parent_name, email, child_class, child_tickets, adult_tickets,
			total_tickets, total_amount, payment_method, payment_code,
			payment_status, category, priority_number)
		SELECT $1, position, recorded_at, parent_name, email, child_class,
			child_tickets, adult_tickets, total_tickets, total_amount,
			payment_method, payment_code, payment_status, category,
			priority_number
		FROM bookings`
	if _, err := tx.Exec(ctx, archive, ref); err != nil {
		return "", &StorageError{Op: "replace", Err: err}
	}

	if err := replaceAll(ctx, tx, records); err != nil {
		return "", &StorageError{Op: "replace", Err: err}
	}
	if err := tx.Commit(ctx); err != nil {
		return "", &StorageError{Op: "replace", Err: err}
	}
	return ref, nil
}

// replaceAll swaps the table contents inside the caller's transaction.
// The table is a few dozen rows, so plain inserts beat the ceremony of a
// copy protocol here.
func replaceAll(ctx context.Context, tx pgx.Tx, records []entity.Booking) error {
	if _, err := tx.Exec(ctx, `DELETE FROM bookings`); err != nil {
		return fmt.Errorf("clear table: %w", err)
	}

	insert := `
		INSERT INTO bookings (position, recorded_at, parent_name, email,
			child_class, child_tickets, adult_tickets, total_tickets,
			total_amount, payment_method, payment_code, payment_status,
			category, priority_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	for i, r := range records {
		_, err := tx.Exec(ctx, insert,
			i, r.Timestamp, r.ParentName, r.Email,
			r.ChildClass, r.ChildTickets, r.AdultTickets, r.TotalTickets,
			r.TotalAmount, string(r.PaymentMethod), r.PaymentCode, string(r.PaymentStatus),
			string(r.Category), r.PriorityNumber,
		)
		if err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	return nil
}
