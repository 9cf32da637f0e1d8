// Package repository keeps the ingested matches in memory as immutable,
// versioned snapshots.
package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/futalgo/internal/models"
)

// ErrNotLoaded is returned before the first successful load
var ErrNotLoaded = errors.New("match store not loaded")

// MatchRepository defines access to the match store
type MatchRepository interface {
	Replace(ctx context.Context, matches []models.Match) (*Snapshot, LoadStats, error)
	Snapshot() *Snapshot
	Ping(ctx context.Context) error
}

// LoadStats reports what a Replace did with its input
type LoadStats struct {
	Results    int
	Fixtures   int
	Duplicates int
}

// MemoryStore is a MatchRepository holding one snapshot at a time. Readers keep
// the snapshot they obtained while a refresh installs the next one.
type MemoryStore struct {
	mu      sync.RWMutex
	current *Snapshot
	version uint64
	now     func() time.Time
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// Replace installs a new snapshot built from matches. Matches that repeat the
// date, competition and teams of an earlier one are dropped as duplicates.
func (s *MemoryStore) Replace(ctx context.Context, matches []models.Match) (*Snapshot, LoadStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, LoadStats{}, fmt.Errorf("failed to replace matches: %w", err)
	}

	var stats LoadStats
	seen := make(map[string]bool, len(matches))
	kept := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		key := matchKey(&m)
		if seen[key] {
			stats.Duplicates++
			continue
		}
		seen[key] = true
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		kept = append(kept, m)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Before(&kept[j])
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	s.version++
	snap := newSnapshot(s.version, s.now(), kept)
	s.current = snap

	stats.Results = len(snap.results)
	stats.Fixtures = len(snap.fixtures)
	return snap, stats, nil
}

// Snapshot returns the current snapshot, nil before the first load
func (s *MemoryStore) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Ping reports whether a snapshot with results is available
func (s *MemoryStore) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ErrNotLoaded
	}
	if len(s.current.results) == 0 {
		return models.ErrNoMatches
	}
	return nil
}

func matchKey(m *models.Match) string {
	return strings.Join([]string{
		m.Date.Format("2006-01-02"),
		m.Competition,
		m.HomeTeam,
		m.AwayTeam,
	}, "|")
}
