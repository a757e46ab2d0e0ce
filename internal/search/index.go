// Package search maintains a full-text index over transcript segments,
// backed by SQLite FTS5. The index is derived data: it is rebuilt wholesale
// from the record store and can be deleted at any time.
package search

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"scriba/internal/media"
)

// Index is a SQLite-backed full-text index over segments.
type Index struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the index database.
func Open(path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	const schema = `CREATE VIRTUAL TABLE IF NOT EXISTS segments USING fts5(
        video_id UNINDEXED,
        video_title,
        group_label,
        text,
        offset_ms UNINDEXED
    )`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create index schema: %w", err)
	}

	return &Index{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (i *Index) Close() error {
	if i == nil || i.db == nil {
		return nil
	}
	return i.db.Close()
}

// Rebuild replaces the entire index with the given records in one
// transaction, so readers never observe a half-built index.
func (i *Index) Rebuild(ctx context.Context, recs []media.Record) error {
	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rebuild: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM segments"); err != nil {
		return fmt.Errorf("clear index: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO segments (video_id, video_title, group_label, text, offset_ms) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, rec := range recs {
		for _, seg := range rec.Segments {
			if seg.Text == "" {
				continue
			}
			if _, err := stmt.ExecContext(ctx,
				rec.Item.ID, rec.Item.Title, rec.Item.GroupLabel, seg.Text, seg.OffsetMS); err != nil {
				return fmt.Errorf("index segment for %s: %w", rec.Item.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rebuild: %w", err)
	}
	return nil
}

// Hit is one matched segment with enough context to display and link.
type Hit struct {
	VideoID    string
	VideoTitle string
	GroupLabel string
	Text       string
	OffsetMS   int64
}

// Search runs an FTS5 match against segment text, best matches first.
func (i *Index) Search(ctx context.Context, query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := i.db.QueryContext(ctx,
		`SELECT video_id, video_title, group_label, text, offset_ms
         FROM segments WHERE segments MATCH ? ORDER BY rank LIMIT ?`,
		query, limit)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	defer func() { _ = rows.Close() }()

	var hits []Hit
	for rows.Next() {
		var hit Hit
		if err := rows.Scan(&hit.VideoID, &hit.VideoTitle, &hit.GroupLabel, &hit.Text, &hit.OffsetMS); err != nil {
			return nil, fmt.Errorf("scan hit: %w", err)
		}
		hits = append(hits, hit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hits: %w", err)
	}
	return hits, nil
}

// Count reports the number of indexed segments.
func (i *Index) Count(ctx context.Context) (int, error) {
	var count int
	if err := i.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM segments").Scan(&count); err != nil {
		return 0, fmt.Errorf("count segments: %w", err)
	}
	return count, nil
}
