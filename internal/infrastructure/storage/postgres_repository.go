package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"GovtJobsScanner/internal/domain"
	"GovtJobsScanner/internal/ports"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresRepository stores each partition as its own table.
type PostgresRepository struct {
	db      *sql.DB
	mu      sync.Mutex
	created map[string]bool
}

var _ ports.RecordStore = (*PostgresRepository)(nil)

// OpenPostgres opens and pings a lib/pq connection pool.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// NewPostgresRepository wires a sql.DB implementation.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db, created: map[string]bool{}}
}

// Exists runs the equality query on title and link.
func (r *PostgresRepository) Exists(ctx context.Context, partition string, key domain.RecordKey) (bool, error) {
	if err := r.ensureTable(ctx, partition); err != nil {
		return false, err
	}

	query, args, err := existsQuery(partition, key)
	if err != nil {
		return false, fmt.Errorf("build exists query: %w", err)
	}

	var one int
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: query %s: %v", domain.ErrPersistence, partition, err)
	}
	return true, nil
}

// Insert writes a new row; ingested_at defaults to the server clock.
func (r *PostgresRepository) Insert(ctx context.Context, partition string, record domain.Record) error {
	if err := r.ensureTable(ctx, partition); err != nil {
		return err
	}

	query, args, err := insertQuery(partition, record)
	if err != nil {
		return fmt.Errorf("build insert query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insert into %s: %v", domain.ErrPersistence, partition, err)
	}
	return nil
}

func existsQuery(partition string, key domain.RecordKey) (string, []interface{}, error) {
	return psql.Select("1").
		From(pq.QuoteIdentifier(partition)).
		Where(sq.And{sq.Eq{"title": key.Title}, sq.Eq{"link": key.Link}}).
		Limit(1).
		ToSql()
}

func insertQuery(partition string, record domain.Record) (string, []interface{}, error) {
	var deadline interface{}
	if record.Deadline != nil {
		deadline = record.Deadline.Format("2006-01-02")
	}

	var videoID, channel, channelID, publishedAt, description, thumbnail interface{}
	if v := record.Video; v != nil {
		videoID, channel, channelID = v.VideoID, v.Channel, v.ChannelID
		publishedAt = v.PublishedAt.UTC()
		description = nullable(v.Description)
		thumbnail = nullable(v.Thumbnail)
	}

	return psql.Insert(pq.QuoteIdentifier(partition)).
		Columns("title", "link", "category", "source_name", "deadline",
			"video_id", "channel", "channel_id", "published_at", "description", "thumbnail").
		Values(record.Title, record.Link, string(record.Category), string(record.Source), deadline,
			videoID, channel, channelID, publishedAt, description, thumbnail).
		ToSql()
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// createTableStatements has no unique constraint on (title, link); duplicates
// are filtered by the pipeline's read-then-write check.
func createTableStatements(partition string) []string {
	table := pq.QuoteIdentifier(partition)
	index := pq.QuoteIdentifier(partition + "_title_link_idx")
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			link TEXT NOT NULL,
			category TEXT NOT NULL,
			source_name TEXT NOT NULL,
			deadline DATE,
			video_id TEXT,
			channel TEXT,
			channel_id TEXT,
			published_at TIMESTAMPTZ,
			description TEXT,
			thumbnail TEXT,
			ingested_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (title, link)`, index, table),
		// partitions created before video metadata existed
		fmt.Sprintf(`ALTER TABLE %s
			ADD COLUMN IF NOT EXISTS video_id TEXT,
			ADD COLUMN IF NOT EXISTS channel TEXT,
			ADD COLUMN IF NOT EXISTS channel_id TEXT,
			ADD COLUMN IF NOT EXISTS published_at TIMESTAMPTZ,
			ADD COLUMN IF NOT EXISTS description TEXT,
			ADD COLUMN IF NOT EXISTS thumbnail TEXT`, table),
	}
}

func (r *PostgresRepository) ensureTable(ctx context.Context, partition string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.created[partition] {
		return nil
	}
	for _, stmt := range createTableStatements(partition) {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: create %s: %v", domain.ErrPersistence, partition, err)
		}
	}
	r.created[partition] = true
	return nil
}
