package calls

import (
	"context"
	"database/sql"

	"coaching-calendar/pkg/utils"
)

// PostgresRepo stores calls in Postgres via database/sql (pgx stdlib driver).
//
// Assumed schema:
//   CREATE TABLE calls (
//     id           TEXT PRIMARY KEY,
//     client_id    TEXT NOT NULL,
//     client_name  TEXT NOT NULL,
//     client_phone TEXT NOT NULL,
//     date         TEXT NOT NULL,        -- YYYY-MM-DD
//     time         TEXT NOT NULL,        -- HH:MM, a grid member
//     type         TEXT NOT NULL,
//     recurring    BOOLEAN NOT NULL,
//     day_of_week  INT NOT NULL DEFAULT 0,
//     created_at   TIMESTAMPTZ NOT NULL
//   );

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

const selectCalls = `
SELECT id, client_id, client_name, client_phone, date, time, type, recurring, day_of_week, created_at
FROM calls
ORDER BY created_at, id
`

func (r *PostgresRepo) List(ctx context.Context) ([]Call, error) {
	rows, err := r.db.QueryContext(ctx, selectCalls)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCalls(rows)
}

// Create inserts the call after re-running the availability check inside a
// transaction. Bookings that could collide share an effective weekday, so a
// transaction-scoped advisory lock on the weekday serializes them; the
// re-check then sees every committed competitor (spec'd check-then-act race
// closed at the write).
func (r *PostgresRepo) Create(ctx context.Context, c Call) error {
	weekday, err := Weekday(c.Date)
	if err != nil {
		return err
	}

	return utils.WithTx(ctx, r.db, nil, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1, $2)`, advisoryLockClass, weekday); err != nil {
			return err
		}

		rows, err := tx.QueryContext(ctx, selectCalls)
		if err != nil {
			return err
		}
		all, err := scanCalls(rows)
		rows.Close()
		if err != nil {
			return err
		}

		day, err := ForDate(all, c.Date)
		if err != nil {
			return err
		}
		avail, err := CheckAvailability(c.Time, c.Type, day)
		if err != nil {
			return err
		}
		if !avail.Available {
			return &ConflictError{Conflicts: avail.Conflicts}
		}

		const insert = `
INSERT INTO calls (id, client_id, client_name, client_phone, date, time, type, recurring, day_of_week, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
`
		_, err = tx.ExecContext(ctx, insert,
			c.ID,
			c.ClientID,
			c.ClientName,
			c.ClientPhone,
			c.Date,
			c.Time,
			c.Type,
			c.Recurring,
			c.DayOfWeek,
			c.CreatedAt,
		)
		return err
	})
}

// advisoryLockClass namespaces this table's advisory locks.
const advisoryLockClass = 7421

func (r *PostgresRepo) Delete(ctx context.Context, id string) error {
	// No rows affected is fine; deletes are idempotent.
	_, err := r.db.ExecContext(ctx, `DELETE FROM calls WHERE id = $1`, id)
	return err
}

func scanCalls(rows *sql.Rows) ([]Call, error) {
	var out []Call
	for rows.Next() {
		var c Call
		if err := rows.Scan(
			&c.ID,
			&c.ClientID,
			&c.ClientName,
			&c.ClientPhone,
			&c.Date,
			&c.Time,
			&c.Type,
			&c.Recurring,
			&c.DayOfWeek,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
