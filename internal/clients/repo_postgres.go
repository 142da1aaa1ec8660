package clients

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresDirectory reads the clients table.
//
// Assumed schema:
//   CREATE TABLE clients (
//     id    TEXT PRIMARY KEY,
//     name  TEXT NOT NULL,
//     phone TEXT NOT NULL
//   );

type PostgresDirectory struct {
	db *sql.DB
}

func NewPostgresDirectory(db *sql.DB) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

func (d *PostgresDirectory) Get(ctx context.Context, id string) (Client, error) {
	const q = `SELECT id, name, phone FROM clients WHERE id = $1`
	var c Client
	if err := d.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.Phone); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Client{}, ErrNotFound
		}
		return Client{}, err
	}
	return c, nil
}

func (d *PostgresDirectory) List(ctx context.Context) ([]Client, error) {
	const q = `SELECT id, name, phone FROM clients ORDER BY name`
	rows, err := d.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
