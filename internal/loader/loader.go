package loader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/gmkornilov/pgn-puzzle-book/internal/dao"
	"github.com/gmkornilov/pgn-puzzle-book/internal/pgn"
	"github.com/gmkornilov/pgn-puzzle-book/pkg/puzzles"
)

const (
	TagPuzzleID        = "PuzzleID"
	TagFEN             = "FEN"
	TagRating          = "Rating"
	TagRatingDeviation = "RatingDeviation"
	TagPopularity      = "Popularity"
	TagNumPlays        = "NumPlays"
	TagThemes          = "Themes"
)

var ErrInvalidTag = errors.New("invalid tag value")

// PuzzleLoader converts PGN games into puzzle records and installs them into
// the repository.
type PuzzleLoader struct {
	repo dao.PuzzleRepository
	log  *zap.SugaredLogger
}

func NewPuzzleLoader(repo dao.PuzzleRepository, log *zap.SugaredLogger) *PuzzleLoader {
	return &PuzzleLoader{
		repo: repo,
		log:  log,
	}
}

// LoadFile replaces the loaded puzzles with the ones from the PGN file at path.
func (l *PuzzleLoader) LoadFile(path string) ([]*puzzles.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	l.log.Infow("Loading puzzles", "path", path)
	return l.LoadReader(file)
}

// LoadReader replaces the loaded puzzles with the ones read from r. The
// repository is left untouched if any game can't be converted.
func (l *PuzzleLoader) LoadReader(r io.Reader) ([]*puzzles.Record, error) {
	games, err := pgn.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse pgn: %w", err)
	}
	return l.Load(games)
}

func (l *PuzzleLoader) Load(games []pgn.Game) ([]*puzzles.Record, error) {
	records, err := FromGames(games)
	if err != nil {
		l.log.Errorw("Failed to load puzzles", "games", len(games), "error", err)
		return nil, err
	}
	l.repo.Load(records)
	l.log.Infow("Loaded puzzles", "count", len(records))
	return records, nil
}

// FromGames converts every game into a record, in order.
func FromGames(games []pgn.Game) ([]*puzzles.Record, error) {
	records := make([]*puzzles.Record, 0, len(games))
	for ind, game := range games {
		rec, err := FromGame(ind, game)
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", ind, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// FromGame converts the game at position ind of its file. ind is the puzzle
// id when the game has no PuzzleID tag.
func FromGame(ind int, game pgn.Game) (*puzzles.Record, error) {
	id, ok := game.Tag(TagPuzzleID)
	if !ok {
		id = strconv.Itoa(ind)
	}

	fen, ok := game.Tag(TagFEN)
	if !ok {
		fen = game.InitialFEN
	}

	var attrs puzzles.Attributes
	var err error
	if attrs.Rating, err = intTag(game, TagRating); err != nil {
		return nil, err
	}
	if attrs.RatingDeviation, err = intTag(game, TagRatingDeviation); err != nil {
		return nil, err
	}
	if attrs.Popularity, err = intTag(game, TagPopularity); err != nil {
		return nil, err
	}
	if attrs.NumPlays, err = intTag(game, TagNumPlays); err != nil {
		return nil, err
	}
	themes, _ := game.Tag(TagThemes)
	attrs.Themes = SplitThemes(themes)

	return puzzles.NewRecord(id, fen, game.Moves, attrs)
}

func intTag(game pgn.Game, key string) (*int, error) {
	value, ok := game.Tag(key)
	value = strings.TrimSpace(value)
	// blank tags are treated as missing
	if !ok || value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q", ErrInvalidTag, key, value)
	}
	return &n, nil
}

// SplitThemes splits a comma separated Themes tag. Empty entries between
// commas are kept, trailing ones are dropped.
func SplitThemes(value string) []string {
	themes := strings.Split(value, ",")
	for len(themes) > 0 && themes[len(themes)-1] == "" {
		themes = themes[:len(themes)-1]
	}
	return themes
}
