package watcher

import (
	"context"
	"sync"

	"github.com/henrykdz/pathment/internal/models"
	"github.com/henrykdz/pathment/internal/scanner"
)

// Change is the difference between two scans of one file.
type Change struct {
	Path    string
	Added   []models.PathmentRecord
	Removed []models.PathmentRecord
	Err     error
}

// Empty reports whether the change carries nothing to show.
func (c Change) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && c.Err == nil
}

// Tracker remembers the records of each watched file so that a re-scan can
// be reduced to what was added and removed.
type Tracker struct {
	scanner *scanner.Scanner
	mu      sync.Mutex
	known   map[string]map[string]models.PathmentRecord
}

// NewTracker creates a Tracker scanning through s.
func NewTracker(s *scanner.Scanner) *Tracker {
	return &Tracker{
		scanner: s,
		known:   make(map[string]map[string]models.PathmentRecord),
	}
}

// Prime records the current state of files without reporting changes.
func (t *Tracker) Prime(ctx context.Context, files []string) {
	summary := t.scanner.ScanFiles(ctx, files)
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, doc := range summary.Documents {
		if doc.Error == "" {
			t.known[doc.Source] = index(doc.Records)
		}
	}
}

// Rescan scans path again and reports the difference to the last scan.
func (t *Tracker) Rescan(ctx context.Context, path string) Change {
	summary := t.scanner.ScanFiles(ctx, []string{path})
	doc := summary.Documents[0]
	if doc.Error != "" {
		return Change{Path: path, Err: &scanError{msg: doc.Error}}
	}

	current := index(doc.Records)

	t.mu.Lock()
	previous := t.known[path]
	t.known[path] = current
	t.mu.Unlock()

	change := Change{Path: path}
	for _, r := range doc.Records {
		if _, ok := previous[r.Key()]; !ok {
			change.Added = append(change.Added, r)
		}
	}
	for key, r := range previous {
		if _, ok := current[key]; !ok {
			change.Removed = append(change.Removed, r)
		}
	}
	models.SortRecords(change.Removed)
	return change
}

// Forget drops a removed file and reports all its records as removed.
func (t *Tracker) Forget(path string) Change {
	t.mu.Lock()
	previous := t.known[path]
	delete(t.known, path)
	t.mu.Unlock()

	change := Change{Path: path}
	for _, r := range previous {
		change.Removed = append(change.Removed, r)
	}
	models.SortRecords(change.Removed)
	return change
}

func index(records []models.PathmentRecord) map[string]models.PathmentRecord {
	m := make(map[string]models.PathmentRecord, len(records))
	for _, r := range records {
		m[r.Key()] = r
	}
	return m
}

type scanError struct {
	msg string
}

func (e *scanError) Error() string {
	return e.msg
}
