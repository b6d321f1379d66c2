package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"           // postgres driver
	_ "github.com/mattn/go-sqlite3" // sqlite driver

	"github.com/lexigrad/lexigrad/internal/repository"
)

const createKVTable = `CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`

// SQLKV stores blobs in a single key/value table. One implementation covers
// both supported drivers; only the placeholder style differs.
type SQLKV struct {
	db       *sql.DB
	postgres bool
}

// OpenSQLKV opens (and if needed initializes) a KV table on the given driver
// ("sqlite" or "postgres") and DSN. The returned cleanup closes the pool.
func OpenSQLKV(driver, dsn string) (*SQLKV, func(), error) {
	driver = strings.TrimSpace(strings.ToLower(driver))
	var driverName string
	switch driver {
	case "sqlite", "sqlite3":
		driverName = "sqlite3"
	case "postgres", "postgresql":
		driverName = "postgres"
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver: %q", driver)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s storage: %w", driver, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("ping %s storage: %w", driver, err)
	}
	if _, err := db.ExecContext(ctx, createKVTable); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("init kv table: %w", err)
	}

	kv := &SQLKV{db: db, postgres: driverName == "postgres"}
	return kv, func() { db.Close() }, nil
}

func (s *SQLKV) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.bind(`SELECT value FROM kv WHERE key = ?`), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return []byte(value), nil
}

func (s *SQLKV) Set(ctx context.Context, key string, value []byte) error {
	query := s.bind(`INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT (key) DO UPDATE SET value = excluded.value`)
	if _, err := s.db.ExecContext(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *SQLKV) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.bind(`DELETE FROM kv WHERE key = ?`), key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// bind rewrites ? placeholders to the $n style postgres expects.
func (s *SQLKV) bind(query string) string {
	if !s.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
