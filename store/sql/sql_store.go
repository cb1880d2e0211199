// Package sql provides SQL-based store implementations for MySQL,
// PostgreSQL, and TiDB.
package sql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	adskip "github.com/heibot/adskip"
	"github.com/heibot/adskip/utils"
)

// Dialect represents the SQL dialect.
type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
	DialectTiDB     Dialect = "tidb"
)

// Config holds the configuration for SQL store.
type Config struct {
	Dialect         Dialect
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns the default SQL store configuration.
func DefaultConfig() Config {
	return Config{
		Dialect:         DialectMySQL,
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// Store implements the store.Store interface using a SQL database.
//
// Schema:
//
//	ad_range_cache(video_id PK, start_time, end_time, advertiser, created_at)
//	keyword_rule(id PK, keyword UNIQUE, pattern, hit_count, added_at)
type Store struct {
	db      *sql.DB
	dialect Dialect
	idGen   *utils.IDGenerator
}

// rebind converts MySQL-style placeholders (?) to the appropriate format for the dialect.
// For PostgreSQL, converts ? to $1, $2, etc.
// For MySQL/TiDB, returns the query unchanged.
func (s *Store) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}

	var result []byte
	paramIndex := 1
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			result = append(result, '$')
			result = append(result, []byte(fmt.Sprintf("%d", paramIndex))...)
			paramIndex++
		} else {
			result = append(result, query[i])
		}
	}
	return string(result)
}

// New creates a new SQL store.
func New(cfg Config) (*Store, error) {
	db, err := sql.Open(string(cfg.Dialect), cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{
		db:      db,
		dialect: cfg.Dialect,
		idGen:   utils.NewIDGenerator(),
	}, nil
}

// NewWithDB creates a new SQL store with an existing database connection.
func NewWithDB(db *sql.DB, dialect Dialect) *Store {
	return &Store{
		db:      db,
		dialect: dialect,
		idGen:   utils.NewIDGenerator(),
	}
}

// GetCachedRange gets the cached detection result for a video.
func (s *Store) GetCachedRange(ctx context.Context, videoID string) (*adskip.CacheEntry, error) {
	query := s.rebind(`SELECT start_time, end_time, advertiser, created_at
              FROM ad_range_cache WHERE video_id = ?`)

	var entry adskip.CacheEntry
	var advertiser sql.NullString
	err := s.db.QueryRowContext(ctx, query, videoID).Scan(
		&entry.StartTime, &entry.EndTime, &advertiser, &entry.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, adskip.ErrCacheMiss
	}
	if err != nil {
		return nil, adskip.NewStoreError("get", "ad_range_cache", err)
	}
	entry.Advertiser = advertiser.String

	return &entry, nil
}

// SetCachedRange stores a detection result, replacing any previous entry
// for the video.
func (s *Store) SetCachedRange(ctx context.Context, videoID string, entry adskip.CacheEntry) error {
	if entry.CreatedAt == 0 {
		entry.CreatedAt = time.Now().Unix()
	}

	query := s.getUpsertCacheQuery()
	_, err := s.db.ExecContext(ctx, query,
		videoID, entry.StartTime, entry.EndTime, entry.Advertiser, entry.CreatedAt)
	if err != nil {
		return adskip.NewStoreError("upsert", "ad_range_cache", err)
	}

	return nil
}

func (s *Store) getUpsertCacheQuery() string {
	switch s.dialect {
	case DialectPostgres:
		return `INSERT INTO ad_range_cache (video_id, start_time, end_time, advertiser, created_at)
                VALUES ($1, $2, $3, $4, $5)
                ON CONFLICT (video_id) DO UPDATE SET
                start_time = $2, end_time = $3, advertiser = $4, created_at = $5`
	default: // MySQL, TiDB
		return `INSERT INTO ad_range_cache (video_id, start_time, end_time, advertiser, created_at)
                VALUES (?, ?, ?, ?, ?)
                ON DUPLICATE KEY UPDATE
                start_time = VALUES(start_time), end_time = VALUES(end_time),
                advertiser = VALUES(advertiser), created_at = VALUES(created_at)`
	}
}

// PruneCacheOlderThan removes cache entries created before now-ttl.
func (s *Store) PruneCacheOlderThan(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := time.Now().Add(-ttl).Unix()

	query := s.rebind(`DELETE FROM ad_range_cache WHERE created_at < ?`)
	result, err := s.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, adskip.NewStoreError("delete", "ad_range_cache", err)
	}

	affected, _ := result.RowsAffected()
	return int(affected), nil
}

// GetRules returns all learned keyword rules, oldest first.
func (s *Store) GetRules(ctx context.Context) ([]adskip.KeywordRule, error) {
	query := s.rebind(`SELECT keyword, pattern, hit_count, added_at
              FROM keyword_rule ORDER BY added_at ASC, id ASC`)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, adskip.NewStoreError("list", "keyword_rule", err)
	}
	defer rows.Close()

	var rules []adskip.KeywordRule
	for rows.Next() {
		var r adskip.KeywordRule
		if err := rows.Scan(&r.Keyword, &r.Pattern, &r.HitCount, &r.AddedAt); err != nil {
			return nil, adskip.NewStoreError("scan", "keyword_rule", err)
		}
		rules = append(rules, r)
	}

	return rules, nil
}

// SetRules replaces the learned rule set atomically.
func (s *Store) SetRules(ctx context.Context, rules []adskip.KeywordRule) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, s.rebind(`DELETE FROM keyword_rule`)); err != nil {
		tx.Rollback()
		return adskip.NewStoreError("delete", "keyword_rule", err)
	}

	insert := s.rebind(`INSERT INTO keyword_rule (id, keyword, pattern, hit_count, added_at)
              VALUES (?, ?, ?, ?, ?)`)
	for _, r := range rules {
		id := s.idGen.Generate()
		if _, err := tx.ExecContext(ctx, insert, id, r.Keyword, r.Pattern, r.HitCount, r.AddedAt); err != nil {
			tx.Rollback()
			return adskip.NewStoreError("create", "keyword_rule", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}

	return nil
}

// Now returns the current time.
func (s *Store) Now() time.Time {
	return time.Now()
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
