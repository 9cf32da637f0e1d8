package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/futalgo/internal/models"
)

func day(d int) time.Time {
	return time.Date(2024, 10, d, 0, 0, 0, 0, time.UTC)
}

func result(seq, d int, home, away string) models.Match {
	return models.Match{
		Sequence:    seq,
		Date:        day(d),
		HomeTeam:    home,
		AwayTeam:    away,
		Competition: "Bundesliga",
		HalfTimeRaw: "(1-0)",
		FullTimeRaw: "2-0",
		HalfTime:    models.Score{Home: 1},
		FullTime:    models.Score{Home: 2},
	}
}

func fixture(seq, d int, home, away string) models.Match {
	m := result(seq, d, home, away)
	m.HalfTimeRaw = ""
	m.FullTimeRaw = ""
	m.HalfTime = models.Score{}
	m.FullTime = models.Score{}
	return m
}

func TestMemoryStoreReplace(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.ErrorIs(t, store.Ping(ctx), ErrNotLoaded)
	assert.Nil(t, store.Snapshot())

	snap, stats, err := store.Replace(ctx, []models.Match{
		result(2, 5, "Bayern", "Dortmund"),
		result(1, 3, "Leipzig", "Mainz"),
		result(3, 5, "Bayern", "Dortmund"),
		fixture(4, 20, "Mainz", "Bayern"),
	})
	require.NoError(t, err)
	require.NoError(t, store.Ping(ctx))

	assert.Equal(t, LoadStats{Results: 2, Fixtures: 1, Duplicates: 1}, stats)
	assert.Equal(t, uint64(1), snap.Version)
	require.Len(t, snap.Results(), 2)
	assert.Equal(t, "Leipzig", snap.Results()[0].HomeTeam)
	assert.NotEqual(t, uuid.Nil, snap.Results()[0].ID)
	assert.Equal(t, []string{"Bundesliga"}, snap.Competitions())
	assert.True(t, snap.HasTeam("Mainz"))
	assert.False(t, snap.HasTeam("Köln"))
	assert.Equal(t, Overview{Matches: 2, Fixtures: 1, Competitions: 1, Teams: 4}, snap.Overview())
}

func TestMemoryStoreOrderTieBreak(t *testing.T) {
	store := NewMemoryStore()
	snap, _, err := store.Replace(context.Background(), []models.Match{
		result(9, 5, "Bayern", "Dortmund"),
		result(2, 5, "Leipzig", "Mainz"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Leipzig", snap.Results()[0].HomeTeam)
}

func TestMemoryStoreVersionsAndIsolation(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first, _, err := store.Replace(ctx, []models.Match{result(1, 3, "Bayern", "Dortmund")})
	require.NoError(t, err)
	second, _, err := store.Replace(ctx, []models.Match{
		result(1, 3, "Bayern", "Dortmund"),
		result(2, 4, "Leipzig", "Mainz"),
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(2), second.Version)
	assert.Len(t, first.Results(), 1)
	assert.Same(t, second, store.Snapshot())
}

func TestMemoryStorePingWithoutResults(t *testing.T) {
	store := NewMemoryStore()
	_, _, err := store.Replace(context.Background(), []models.Match{fixture(1, 20, "Mainz", "Bayern")})
	require.NoError(t, err)
	assert.ErrorIs(t, store.Ping(context.Background()), models.ErrNoMatches)
}

func TestMemoryStoreCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := NewMemoryStore()
	_, _, err := store.Replace(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, store.Snapshot())
}

func TestMemoryStoreSnapshotBeforeLoad(t *testing.T) {
	store := NewMemoryStore()
	assert.Nil(t, store.Snapshot())
	assert.ErrorIs(t, store.Ping(context.Background()), ErrNotLoaded)

	snap, _, err := store.Replace(context.Background(), nil)
	require.NoError(t, err)
	require.NotNil(t, store.Snapshot())
	assert.Same(t, snap, store.Snapshot())
	assert.Equal(t, uint64(1), snap.Version)
	assert.Empty(t, snap.Results())
}

func TestSnapshotUpcoming(t *testing.T) {
	store := NewMemoryStore()
	snap, _, err := store.Replace(context.Background(), []models.Match{
		fixture(1, 9, "A", "B"),
		fixture(2, 10, "C", "D"),
		fixture(3, 12, "E", "F"),
		fixture(4, 13, "G", "H"),
	})
	require.NoError(t, err)

	from := time.Date(2024, 10, 10, 18, 30, 0, 0, time.UTC)
	upcoming := snap.Upcoming(from, 3)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "C", upcoming[0].HomeTeam)
	assert.Equal(t, "E", upcoming[1].HomeTeam)
}
