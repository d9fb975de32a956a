package dao

import (
	"sort"
	"sync"

	"github.com/gmkornilov/pgn-puzzle-book/pkg/puzzles"
)

// PuzzleRepository holds the currently loaded puzzle collection. Load replaces
// the whole collection; readers always see either the old or the new one.
type PuzzleRepository interface {
	Load(records []*puzzles.Record)

	FindByID(id string) (*puzzles.Record, bool)

	FindBySorted(ids []string) []*puzzles.Record

	All() []*puzzles.Record

	Len() int
}

type snapshot struct {
	records []*puzzles.Record
	// first record index per id
	byID map[string]int
}

type puzzleRepository struct {
	mu   sync.RWMutex
	snap *snapshot
}

func NewPuzzleRepository() PuzzleRepository {
	return &puzzleRepository{snap: newSnapshot(nil)}
}

func newSnapshot(records []*puzzles.Record) *snapshot {
	s := &snapshot{
		records: make([]*puzzles.Record, len(records)),
		byID:    make(map[string]int, len(records)),
	}
	copy(s.records, records)
	for ind, rec := range s.records {
		if _, exists := s.byID[rec.PuzzleID()]; !exists {
			s.byID[rec.PuzzleID()] = ind
		}
	}
	return s
}

func (p *puzzleRepository) current() *snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

func (p *puzzleRepository) Load(records []*puzzles.Record) {
	snap := newSnapshot(records)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.snap = snap
}

func (p *puzzleRepository) FindByID(id string) (*puzzles.Record, bool) {
	snap := p.current()
	ind, ok := snap.byID[id]
	if !ok {
		return nil, false
	}
	return snap.records[ind], true
}

// FindBySorted returns every loaded record whose id is in ids, ordered by the
// first position of its id in ids. Unknown ids are skipped.
func (p *puzzleRepository) FindBySorted(ids []string) []*puzzles.Record {
	order := make(map[string]int, len(ids))
	for ind, id := range ids {
		if _, seen := order[id]; !seen {
			order[id] = ind
		}
	}

	snap := p.current()
	res := make([]*puzzles.Record, 0)
	for _, rec := range snap.records {
		if _, ok := order[rec.PuzzleID()]; ok {
			res = append(res, rec)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		return order[res[i].PuzzleID()] < order[res[j].PuzzleID()]
	})
	return res
}

func (p *puzzleRepository) All() []*puzzles.Record {
	snap := p.current()
	res := make([]*puzzles.Record, len(snap.records))
	copy(res, snap.records)
	return res
}

func (p *puzzleRepository) Len() int {
	return len(p.current().records)
}
