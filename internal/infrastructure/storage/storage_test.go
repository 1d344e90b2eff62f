package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GovtJobsScanner/internal/domain"
)

func TestMemoryRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryRepository()
	fixed := time.Date(2026, time.October, 1, 8, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	rec := domain.Record{
		Title:    "Bihar Police Constable Recruitment",
		Link:     "https://example.org/a",
		Category: domain.CategoryBihar,
		Video:    &domain.VideoMeta{VideoID: "v1", Channel: "Govt Jobs Adda247"},
	}
	exists, err := repo.Exists(ctx, "govt_jobs_bihar", rec.Key())
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.Insert(ctx, "govt_jobs_bihar", rec))

	exists, err = repo.Exists(ctx, "govt_jobs_bihar", rec.Key())
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, "govt_jobs_all", rec.Key())
	require.NoError(t, err)
	assert.False(t, exists, "partitions are disjoint")

	exists, err = repo.Exists(ctx, "govt_jobs_bihar", domain.RecordKey{Title: rec.Title, Link: "https://example.org/b"})
	require.NoError(t, err)
	assert.False(t, exists, "same title with another link is a new record")

	stored := repo.Records("govt_jobs_bihar")
	require.Len(t, stored, 1)
	assert.Equal(t, fixed, stored[0].IngestedAt)
	require.NotNil(t, stored[0].Video)
	assert.Equal(t, "Govt Jobs Adda247", stored[0].Video.Channel)
	assert.Equal(t, 1, repo.Count())
}

func TestExistsQuery(t *testing.T) {
	t.Parallel()

	query, args, err := existsQuery("govt_jobs_odisha", domain.RecordKey{Title: "T", Link: "L"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, `SELECT 1 FROM "govt_jobs_odisha" WHERE`), query)
	assert.Contains(t, query, "title = $1")
	assert.Contains(t, query, "link = $2")
	assert.Contains(t, query, "LIMIT 1")
	assert.Equal(t, []interface{}{"T", "L"}, args)
}

func TestInsertQuery(t *testing.T) {
	t.Parallel()

	deadline := time.Date(2026, time.December, 15, 0, 0, 0, 0, time.UTC)
	query, args, err := insertQuery("govt_jobs_all", domain.Record{
		Title:    "SSC CGL Notification 2026",
		Link:     "https://example.org/ssc",
		Category: domain.CategoryAll,
		Source:   domain.SourceSarkariResult,
		Deadline: &deadline,
	})
	require.NoError(t, err)

	assert.Equal(t, `INSERT INTO "govt_jobs_all" (title,link,category,source_name,deadline,video_id,channel,channel_id,published_at,description,thumbnail) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`, query)
	assert.Equal(t, []interface{}{"SSC CGL Notification 2026", "https://example.org/ssc", "all", "sarkariresult", "2026-12-15", nil, nil, nil, nil, nil, nil}, args)

	_, args, err = insertQuery("govt_jobs_all", domain.Record{Title: "x", Link: "y"})
	require.NoError(t, err)
	assert.Nil(t, args[4])
}

func TestInsertQueryWithVideo(t *testing.T) {
	t.Parallel()

	published := time.Date(2026, time.October, 9, 10, 0, 0, 0, time.UTC)
	_, args, err := insertQuery("govt_job_videos", domain.Record{
		Title:    "SSC GD 2026 Notification Out",
		Link:     "https://www.youtube.com/watch?v=abc123",
		Category: domain.CategoryAll,
		Source:   domain.SourceYouTube,
		Video: &domain.VideoMeta{
			VideoID:     "abc123",
			Channel:     "SSC Adda247",
			ChannelID:   "UCAyYBPzFioHUxvVZEn4rMJA",
			PublishedAt: published,
			Description: "Vacancy details",
		},
	})
	require.NoError(t, err)
	require.Len(t, args, 11)
	assert.Equal(t, []interface{}{"abc123", "SSC Adda247", "UCAyYBPzFioHUxvVZEn4rMJA", published, "Vacancy details", nil}, args[5:])
}

func TestCreateTableHasNoUniqueConstraint(t *testing.T) {
	t.Parallel()

	for _, stmt := range createTableStatements("govt_jobs_delhi") {
		assert.NotContains(t, strings.ToUpper(stmt), "UNIQUE")
		assert.Contains(t, stmt, `"govt_jobs_delhi"`)
	}
}
