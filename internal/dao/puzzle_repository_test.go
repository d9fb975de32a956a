package dao

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gmkornilov/pgn-puzzle-book/pkg/puzzles"
)

func newRecord(t *testing.T, id string, moves ...string) *puzzles.Record {
	t.Helper()
	if len(moves) == 0 {
		moves = []string{"e2e4", "e7e5"}
	}
	rec, err := puzzles.NewRecord(id, "8/8/8/8/8/8/8/8 w - - 0 1", moves, puzzles.Attributes{})
	require.NoError(t, err)
	return rec
}

func ids(records []*puzzles.Record) []string {
	res := make([]string, 0, len(records))
	for _, rec := range records {
		res = append(res, rec.PuzzleID())
	}
	return res
}

func TestPuzzleRepository_Empty(t *testing.T) {
	repo := NewPuzzleRepository()

	assert.Empty(t, repo.All())
	assert.Equal(t, 0, repo.Len())
	_, ok := repo.FindByID("p1")
	assert.False(t, ok)
	assert.Empty(t, repo.FindBySorted([]string{"p1"}))
}

func TestPuzzleRepository_FindByID(t *testing.T) {
	repo := NewPuzzleRepository()
	repo.Load([]*puzzles.Record{newRecord(t, "p1"), newRecord(t, "7"), newRecord(t, "p3")})

	rec, ok := repo.FindByID("p3")
	require.True(t, ok)
	assert.Equal(t, "p3", rec.PuzzleID())

	rec, ok = repo.FindByID(strconv.Itoa(7))
	require.True(t, ok)
	assert.Equal(t, "7", rec.PuzzleID())

	rec, ok = repo.FindByID("p9")
	assert.False(t, ok)
	assert.Nil(t, rec)
}

func TestPuzzleRepository_FindByID_FirstMatchWins(t *testing.T) {
	repo := NewPuzzleRepository()
	first := newRecord(t, "dup", "a2a3", "b7b6")
	second := newRecord(t, "dup", "h2h3", "g7g6")
	repo.Load([]*puzzles.Record{first, second})

	rec, ok := repo.FindByID("dup")
	require.True(t, ok)
	assert.Same(t, first, rec)
}

func TestPuzzleRepository_FindBySorted(t *testing.T) {
	repo := NewPuzzleRepository()
	repo.Load([]*puzzles.Record{newRecord(t, "p1"), newRecord(t, "p2"), newRecord(t, "p3")})

	res := repo.FindBySorted([]string{"p3", "p1", "p9", "p1"})
	assert.Equal(t, []string{"p3", "p1"}, ids(res))
}

func TestPuzzleRepository_FindBySorted_KeepsDuplicates(t *testing.T) {
	repo := NewPuzzleRepository()
	first := newRecord(t, "dup", "a2a3", "b7b6")
	second := newRecord(t, "dup", "h2h3", "g7g6")
	repo.Load([]*puzzles.Record{first, newRecord(t, "p2"), second})

	res := repo.FindBySorted([]string{"p2", "dup"})
	require.Len(t, res, 3)
	assert.Equal(t, "p2", res[0].PuzzleID())
	assert.Same(t, first, res[1])
	assert.Same(t, second, res[2])
}

func TestPuzzleRepository_FindBySorted_NoMatches(t *testing.T) {
	repo := NewPuzzleRepository()
	repo.Load([]*puzzles.Record{newRecord(t, "p1")})

	assert.Empty(t, repo.FindBySorted(nil))
	assert.Empty(t, repo.FindBySorted([]string{"x", "y"}))
}

func TestPuzzleRepository_LoadReplaces(t *testing.T) {
	repo := NewPuzzleRepository()
	repo.Load([]*puzzles.Record{newRecord(t, "old1"), newRecord(t, "old2")})
	old := repo.All()

	repo.Load([]*puzzles.Record{newRecord(t, "new1")})

	assert.Equal(t, []string{"new1"}, ids(repo.All()))
	assert.Equal(t, 1, repo.Len())
	_, ok := repo.FindByID("old1")
	assert.False(t, ok)
	// previously returned views are stale snapshots, not live
	assert.Equal(t, []string{"old1", "old2"}, ids(old))
}

func TestPuzzleRepository_AllIsACopy(t *testing.T) {
	repo := NewPuzzleRepository()
	input := []*puzzles.Record{newRecord(t, "p1"), newRecord(t, "p2")}
	repo.Load(input)
	input[0] = newRecord(t, "changed")

	all := repo.All()
	all[1] = nil

	assert.Equal(t, []string{"p1", "p2"}, ids(repo.All()))
}

func TestPuzzleRepository_ConcurrentLoad(t *testing.T) {
	repo := NewPuzzleRepository()
	setA := []*puzzles.Record{newRecord(t, "a1"), newRecord(t, "a2"), newRecord(t, "a3")}
	setB := []*puzzles.Record{newRecord(t, "b1"), newRecord(t, "b2"), newRecord(t, "b3")}
	repo.Load(setA)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if (i+j)%2 == 0 {
					repo.Load(setA)
				} else {
					repo.Load(setB)
				}
			}
		}(i)
	}

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				got := ids(repo.All())
				if !assert.Len(t, got, 3) {
					return
				}
				prefix := got[0][:1]
				for _, id := range got {
					assert.Equal(t, prefix, id[:1], "mixed snapshot %v", got)
				}
			}
		}()
	}
	wg.Wait()
}
