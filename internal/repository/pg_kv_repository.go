package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createKVTable = `
	CREATE TABLE IF NOT EXISTS client_kv (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

type PostgresKVRepository struct {
	conn *pgxpool.Pool
}

func NewPostgresKVRepository(conn *pgxpool.Pool) *PostgresKVRepository {
	return &PostgresKVRepository{conn: conn}
}

func (r *PostgresKVRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.conn.Exec(ctx, createKVTable)
	return err
}

func (r *PostgresKVRepository) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrBlankKey
	}
	var value string
	err := r.conn.QueryRow(ctx,
		"SELECT value FROM client_kv WHERE key = $1",
		key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrKeyNotFound
	} else if err != nil {
		return "", mapPgError(err)
	}

	return value, nil
}

func (r *PostgresKVRepository) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return ErrBlankKey
	}
	_, err := r.conn.Exec(ctx,
		`INSERT INTO client_kv (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value,
	)
	return mapPgError(err)
}

func (r *PostgresKVRepository) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrBlankKey
	}
	_, err := r.conn.Exec(ctx, "DELETE FROM client_kv WHERE key = $1", key)
	return mapPgError(err)
}

func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
		return ErrSchemaNotReady
	}
	return err
}
