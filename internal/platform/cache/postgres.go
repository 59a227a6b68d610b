package cache

import (
	"context"
	"database/sql"
	"net/url"
	"regexp"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/match-analysis/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const maxTracedQueryLength = 512

var queryWhitespaceRegex = regexp.MustCompile(`\s+`)

// PostgresStore keeps entries in the cache_entries table created by
// migrations/000001_create_cache_entries. Expired rows are filtered on read and
// overwritten on write.
type PostgresStore struct {
	db         *sqlx.DB
	prefix     string
	defaultTTL time.Duration
	logger     *logging.Logger
}

func NewPostgresStore(ctx context.Context, dsn, prefix string, defaultTTL time.Duration, logger *logging.Logger) (*PostgresStore, error) {
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatQueryForTrace),
	)
	if err != nil {
		return nil, crerr.Wrap(err, "open postgres cache")
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, crerr.Wrap(err, "ping postgres cache")
	}

	return NewPostgresStoreFromDB(db, prefix, defaultTTL, logger), nil
}

func NewPostgresStoreFromDB(db *sqlx.DB, prefix string, defaultTTL time.Duration, logger *logging.Logger) *PostgresStore {
	if logger == nil {
		logger = logging.Default()
	}
	return &PostgresStore{
		db:         db,
		prefix:     prefix,
		defaultTTL: defaultTTL,
		logger:     logger,
	}
}

func (s *PostgresStore) Backend() string {
	return BackendPostgres
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool) {
	if key == "" {
		return nil, false
	}

	var value []byte
	err := s.db.GetContext(ctx, &value,
		`SELECT value FROM cache_entries WHERE key = $1 AND expires_at > NOW()`,
		s.prefix+key,
	)
	if err != nil {
		if !isNoRows(err) {
			s.logger.WarnContext(ctx, "postgres cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return value, true
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	if key == "" {
		return false
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cache_entries (key, value, expires_at, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at, updated_at = NOW()`,
		s.prefix+key, value, time.Now().UTC().Add(ttl),
	)
	if err != nil {
		s.logger.WarnContext(ctx, "postgres cache set failed", "key", key, "error", err)
		return false
	}
	return true
}

func (s *PostgresStore) Delete(ctx context.Context, key string) bool {
	if key == "" {
		return false
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE key = $1`, s.prefix+key)
	if err != nil {
		s.logger.WarnContext(ctx, "postgres cache delete failed", "key", key, "error", err)
		return false
	}
	affected, err := res.RowsAffected()
	return err == nil && affected > 0
}

func (s *PostgresStore) Exists(ctx context.Context, key string) bool {
	if key == "" {
		return false
	}
	var found bool
	err := s.db.GetContext(ctx, &found,
		`SELECT EXISTS (SELECT 1 FROM cache_entries WHERE key = $1 AND expires_at > NOW())`,
		s.prefix+key,
	)
	if err != nil {
		s.logger.WarnContext(ctx, "postgres cache exists failed", "key", key, "error", err)
		return false
	}
	return found
}

func (s *PostgresStore) Clear(ctx context.Context) bool {
	_, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE key LIKE $1`, escapeLike(s.prefix)+"%")
	if err != nil {
		s.logger.WarnContext(ctx, "postgres cache clear failed", "prefix", s.prefix, "error", err)
		return false
	}
	return true
}

// PurgeExpired removes rows past their TTL and returns how many were deleted.
func (s *PostgresStore) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, crerr.Wrap(err, "purge expired cache entries")
	}
	return res.RowsAffected()
}

func isNoRows(err error) bool {
	return crerr.Is(err, sql.ErrNoRows)
}

func escapeLike(v string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(v)
}

func formatQueryForTrace(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	normalized := queryWhitespaceRegex.ReplaceAllString(query, " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}

func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	parsed, err := url.Parse(trimmed)
	if err == nil && parsed != nil && parsed.Scheme != "" {
		name := strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
		if name != "" {
			return name
		}
	}

	for _, token := range strings.Fields(trimmed) {
		if !strings.HasPrefix(token, "dbname=") {
			continue
		}
		name := strings.Trim(strings.TrimSpace(strings.TrimPrefix(token, "dbname=")), `"'`)
		if name != "" {
			return name
		}
	}
	return ""
}
