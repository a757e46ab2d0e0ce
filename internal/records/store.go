package records

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"scriba/internal/fileutil"
	"scriba/internal/media"
)

// Store reads and writes per-item record files under a single directory,
// named <id>.json.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created lazily
// on first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the record file path for an item id.
func (s *Store) Path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Exists reports whether a record file exists for id.
func (s *Store) Exists(id string) bool {
	return fileutil.Exists(s.Path(id))
}

// Write persists a record as a whole-file atomic overwrite.
func (s *Store) Write(rec media.Record) error {
	if strings.TrimSpace(rec.Item.ID) == "" {
		return fmt.Errorf("write record: item id required")
	}
	media.SortSegments(rec.Segments)
	return fileutil.WriteJSON(s.Path(rec.Item.ID), rec)
}

// Read loads the record for id.
func (s *Store) Read(id string) (media.Record, error) {
	var rec media.Record
	if err := fileutil.ReadJSON(s.Path(id), &rec); err != nil {
		return media.Record{}, err
	}
	return rec, nil
}

// SetPublishedAt fills in the publish date on an existing record without
// touching its segments or fetch timestamp.
func (s *Store) SetPublishedAt(id, date string) error {
	rec, err := s.Read(id)
	if err != nil {
		return err
	}
	rec.PublishedAt = date
	return fileutil.WriteJSON(s.Path(id), rec)
}

// List loads every record in the store, sorted by item id.
func (s *Store) List() ([]media.Record, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read records directory %s: %w", s.dir, err)
	}

	recs := make([]media.Record, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		rec, err := s.Read(id)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Item.ID < recs[j].Item.ID })
	return recs, nil
}

// Count returns the number of record files without loading them.
func (s *Store) Count() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read records directory %s: %w", s.dir, err)
	}
	count := 0
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			count++
		}
	}
	return count, nil
}
