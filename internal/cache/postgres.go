package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

const createTable = `CREATE TABLE IF NOT EXISTS fairtrip_cache (
	key        TEXT PRIMARY KEY,
	data       BYTEA NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL
)`

// Postgres shares cached provider responses between processes.
type Postgres struct {
	db  *sql.DB
	now func() time.Time
}

func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres cache: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres cache: %w", err)
	}
	p := NewPostgres(db)
	if err := p.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return p, nil
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db, now: time.Now}
}

func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("migrate postgres cache: %w", err)
	}
	return nil
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, bool) {
	data, _, ok := p.GetWithExpiry(ctx, key)
	return data, ok
}

func (p *Postgres) GetWithExpiry(ctx context.Context, key string) ([]byte, time.Time, bool) {
	var (
		data      []byte
		expiresAt time.Time
	)
	err := p.db.QueryRowContext(ctx,
		`SELECT data, expires_at FROM fairtrip_cache WHERE key = $1 AND expires_at > $2`,
		key, p.now().UTC(),
	).Scan(&data, &expiresAt)
	if err != nil {
		return nil, time.Time{}, false
	}
	return data, expiresAt, true
}

func (p *Postgres) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO fairtrip_cache (key, data, expires_at) VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, expires_at = EXCLUDED.expires_at`,
		key, data, p.now().Add(ttl).UTC(),
	)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (p *Postgres) Clear(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM fairtrip_cache`); err != nil {
		return fmt.Errorf("cache clear: %w", err)
	}
	return nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
