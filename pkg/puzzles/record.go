package puzzles

import (
	"encoding/json"
	"fmt"
)

// Puzzle is implemented by every puzzle source served to game modes.
type Puzzle interface {
	PuzzleID() string
	InitialMove() string
	IsReportable() bool
	Export() Export
}

// Record is a puzzle loaded from a PGN file. It is immutable once built:
// the lines tree is computed by NewRecord and always matches the moves.
type Record struct {
	id              string
	initialFEN      string
	moves           []string
	lines           Lines
	rating          *int
	ratingDeviation *int
	popularity      *int
	numPlays        *int
	themes          []string
}

// Attributes holds the optional metadata of a Record. Nil numbers mean the
// tag was absent.
type Attributes struct {
	Rating          *int
	RatingDeviation *int
	Popularity      *int
	NumPlays        *int
	Themes          []string
}

func NewRecord(id string, initialFEN string, moves []string, attrs Attributes) (*Record, error) {
	lines, err := BuildLines(moves)
	if err != nil {
		return nil, fmt.Errorf("puzzle %s: %w", id, err)
	}

	themes := make([]string, len(attrs.Themes))
	copy(themes, attrs.Themes)
	ownMoves := make([]string, len(moves))
	copy(ownMoves, moves)

	return &Record{
		id:              id,
		initialFEN:      initialFEN,
		moves:           ownMoves,
		lines:           lines,
		rating:          copyInt(attrs.Rating),
		ratingDeviation: copyInt(attrs.RatingDeviation),
		popularity:      copyInt(attrs.Popularity),
		numPlays:        copyInt(attrs.NumPlays),
		themes:          themes,
	}, nil
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func (r *Record) PuzzleID() string { return r.id }

func (r *Record) InitialFEN() string { return r.initialFEN }

// Moves returns a copy of the moves in UCI notation, setup move first.
func (r *Record) Moves() []string {
	res := make([]string, len(r.moves))
	copy(res, r.moves)
	return res
}

// Lines returns a copy of the lines tree.
func (r *Record) Lines() Lines { return r.lines.Clone() }

// InitialMove is the opponent's setup move.
func (r *Record) InitialMove() string { return r.moves[0] }

// IsReportable is always false: PGN puzzles can't be reported by players.
func (r *Record) IsReportable() bool { return false }

var _ Puzzle = (*Record)(nil)

type UCIMove struct {
	UCI string `json:"uci"`
}

// CompactView is the puzzle format used by fast game modes.
type CompactView struct {
	ID          string  `json:"id"`
	FEN         string  `json:"fen"`
	Lines       Lines   `json:"lines"`
	InitialMove UCIMove `json:"initialMove"`
}

// PuzzleData is the puzzle format used by puzzle pages.
type PuzzleData struct {
	InitialFEN     string `json:"initial_fen"`
	InitialMoveUCI string `json:"initial_move_uci"`
	Lines          Lines  `json:"lines"`
}

type Metadata struct {
	Rating          *int     `json:"rating"`
	RatingDeviation *int     `json:"rating_deviation"`
	Popularity      *int     `json:"popularity"`
	NumPlays        *int     `json:"num_plays"`
	Themes          []string `json:"themes"`
}

type Export struct {
	PuzzleData PuzzleData `json:"puzzle_data"`
	Metadata   Metadata   `json:"metadata"`
}

func (r *Record) Compact() CompactView {
	return CompactView{
		ID:          r.id,
		FEN:         r.initialFEN,
		Lines:       r.Lines(),
		InitialMove: UCIMove{UCI: r.InitialMove()},
	}
}

func (r *Record) PuzzleData() PuzzleData {
	return PuzzleData{
		InitialFEN:     r.initialFEN,
		InitialMoveUCI: r.InitialMove(),
		Lines:          r.Lines(),
	}
}

func (r *Record) Metadata() Metadata {
	themes := make([]string, len(r.themes))
	copy(themes, r.themes)
	return Metadata{
		Rating:          copyInt(r.rating),
		RatingDeviation: copyInt(r.ratingDeviation),
		Popularity:      copyInt(r.popularity),
		NumPlays:        copyInt(r.numPlays),
		Themes:          themes,
	}
}

func (r *Record) Export() Export {
	return Export{
		PuzzleData: r.PuzzleData(),
		Metadata:   r.Metadata(),
	}
}

func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Export())
}

func (r *Record) String() string {
	j, _ := json.MarshalIndent(r.Export(), "", "\t")
	return string(j)
}
