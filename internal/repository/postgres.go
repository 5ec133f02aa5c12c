package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/shorturlproject/shorturl/internal/storage"
)

const schema = `
	CREATE TABLE IF NOT EXISTS kv_strings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS kv_lists (
		id    BIGSERIAL PRIMARY KEY,
		key   TEXT NOT NULL,
		value TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS kv_lists_key_id ON kv_lists (key, id DESC);
	CREATE TABLE IF NOT EXISTS kv_sets (
		key    TEXT NOT NULL,
		member TEXT NOT NULL,
		PRIMARY KEY (key, member)
	);`

const (
	getQuery      = `SELECT value FROM kv_strings WHERE key = $1;`
	setQuery      = `INSERT INTO kv_strings (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value;`
	delStrQuery   = `DELETE FROM kv_strings WHERE key = $1;`
	delListQuery  = `DELETE FROM kv_lists WHERE key = $1;`
	delSetQuery   = `DELETE FROM kv_sets WHERE key = $1;`
	incrQuery     = `INSERT INTO kv_strings (key, value) VALUES ($1, '1') ON CONFLICT (key) DO UPDATE SET value = ((kv_strings.value)::bigint + 1)::text RETURNING value;`
	lpushQuery    = `WITH ins AS (INSERT INTO kv_lists (key, value) VALUES ($1, $2) RETURNING id) SELECT count(*) + 1 FROM kv_lists WHERE key = $1;`
	lrangeQuery   = `SELECT value FROM kv_lists WHERE key = $1 ORDER BY id DESC OFFSET $2`
	saddQuery     = `INSERT INTO kv_sets (key, member) VALUES ($1, $2) ON CONFLICT DO NOTHING;`
	sremQuery     = `DELETE FROM kv_sets WHERE key = $1 AND member = $2;`
	smembersQuery = `SELECT member FROM kv_sets WHERE key = $1 ORDER BY member;`
	keysQuery     = `SELECT key FROM kv_strings WHERE starts_with(key, $1) ORDER BY key;`
)

// InitDB opens a PostgreSQL connection through the pgx driver and makes sure
// the key-value tables exist.
func InitDB(ctx context.Context, dsn string, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, wrapPG("ping", "", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create kv tables: %w", err)
	}

	logger.Info("Database connected and tables ready.")
	return db, nil
}

// PostgresKV implements storage.KV on top of three plain tables, for
// deployments that already run PostgreSQL instead of Redis.
type PostgresKV struct {
	db     *sql.DB
	logger *zap.Logger
}

func CreatePostgresKV(db *sql.DB, logger *zap.Logger) *PostgresKV {
	return &PostgresKV{
		db:     db,
		logger: logger,
	}
}

func (r *PostgresKV) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := r.db.QueryRowContext(ctx, getQuery, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrNotFound
		}
		return "", wrapPG("get", key, err)
	}
	return v, nil
}

func (r *PostgresKV) Set(ctx context.Context, key, value string) error {
	if _, err := r.db.ExecContext(ctx, setQuery, key, value); err != nil {
		return wrapPG("set", key, err)
	}
	return nil
}

func (r *PostgresKV) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapPG("del", keys[0], err)
	}

	for _, k := range keys {
		for _, q := range []string{delStrQuery, delListQuery, delSetQuery} {
			if _, err := tx.ExecContext(ctx, q, k); err != nil {
				if rbErr := tx.Rollback(); rbErr != nil {
					r.logger.Error("rollback failed", zap.Error(rbErr))
				}
				return wrapPG("del", k, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapPG("del", keys[0], err)
	}
	return nil
}

func (r *PostgresKV) Incr(ctx context.Context, key string) (int64, error) {
	var v string
	if err := r.db.QueryRowContext(ctx, incrQuery, key).Scan(&v); err != nil {
		return 0, wrapPG("incr", key, err)
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("incr %s: %w", key, err)
	}
	return n, nil
}

func (r *PostgresKV) LPush(ctx context.Context, key, value string) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, lpushQuery, key, value).Scan(&n); err != nil {
		return 0, wrapPG("lpush", key, err)
	}
	return n, nil
}

func (r *PostgresKV) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	if start < 0 {
		start = 0
	}

	query := lrangeQuery + ";"
	args := []any{key, start}
	if stop >= 0 {
		if stop < start {
			return []string{}, nil
		}
		query = lrangeQuery + " LIMIT $3;"
		args = append(args, stop-start+1)
	}

	return r.queryStrings(ctx, "lrange", key, query, args...)
}

func (r *PostgresKV) SAdd(ctx context.Context, key, member string) error {
	if _, err := r.db.ExecContext(ctx, saddQuery, key, member); err != nil {
		return wrapPG("sadd", key, err)
	}
	return nil
}

func (r *PostgresKV) SRem(ctx context.Context, key, member string) error {
	if _, err := r.db.ExecContext(ctx, sremQuery, key, member); err != nil {
		return wrapPG("srem", key, err)
	}
	return nil
}

func (r *PostgresKV) SMembers(ctx context.Context, key string) ([]string, error) {
	return r.queryStrings(ctx, "smembers", key, smembersQuery, key)
}

func (r *PostgresKV) Keys(ctx context.Context, prefix string) ([]string, error) {
	return r.queryStrings(ctx, "keys", prefix, keysQuery, prefix)
}

func (r *PostgresKV) PingContext(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return wrapPG("ping", "", err)
	}
	return nil
}

func (r *PostgresKV) Close() error {
	return r.db.Close()
}

func (r *PostgresKV) queryStrings(ctx context.Context, op, key, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapPG(op, key, err)
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, wrapPG(op, key, err)
		}
		out = append(out, v)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapPG(op, key, err)
	}
	return out, nil
}

// wrapPG marks connection-level failures as storage.ErrUnavailable so callers
// can tell an outage from a bad query.
func wrapPG(op, key string, err error) error {
	var pgErr *pgconn.PgError
	var connErr *pgconn.ConnectError
	var netErr net.Error
	transient := errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.As(err, &connErr) ||
		errors.As(err, &netErr) ||
		(errors.As(err, &pgErr) && (pgerrcode.IsConnectionException(pgErr.Code) || pgerrcode.IsOperatorIntervention(pgErr.Code)))

	if transient {
		return fmt.Errorf("postgres %s %s: %w: %w", op, key, storage.ErrUnavailable, err)
	}
	return fmt.Errorf("postgres %s %s: %w", op, key, err)
}
