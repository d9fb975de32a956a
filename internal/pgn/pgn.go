// Package pgn turns PGN files into games with tags and UCI moves using notnil/chess.
package pgn

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/notnil/chess"
)

// Game is a parsed PGN game: its tag pairs, the FEN of the position the game
// starts from and its moves in UCI notation in playing order.
type Game struct {
	Tags       map[string]string
	InitialFEN string
	Moves      []string
}

// Tag returns the value of tag key and whether the game has it.
func (g Game) Tag(key string) (string, bool) {
	v, ok := g.Tags[key]
	return v, ok
}

// gameTerminator ends the last game; the scanner only emits a game once it
// sees blank lines after its movetext.
const gameTerminator = "\n\n"

// Parse reads every game from r. Blank chunks between or after games are
// skipped.
func Parse(r io.Reader) ([]Game, error) {
	scanner := chess.NewScanner(io.MultiReader(r, strings.NewReader(gameTerminator)))
	games := make([]Game, 0)
	for scanner.Scan() {
		g := scanner.Next()
		if isBlank(g) {
			continue
		}
		game, err := convertGame(g)
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", len(games), err)
		}
		games = append(games, game)
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("game %d: %w", len(games), err)
	}
	return games, nil
}

func isBlank(g *chess.Game) bool {
	return g == nil || (len(g.TagPairs()) == 0 && len(g.Moves()) == 0)
}

func convertGame(g *chess.Game) (Game, error) {
	tags := make(map[string]string)
	for _, tp := range g.TagPairs() {
		tags[tp.Key] = tp.Value
	}

	positions := g.Positions()
	if len(positions) == 0 {
		return Game{}, errors.New("game has no initial position")
	}

	moves := g.Moves()
	uci := make([]string, 0, len(moves))
	for i, move := range moves {
		uci = append(uci, chess.UCINotation{}.Encode(positions[i], move))
	}

	return Game{
		Tags:       tags,
		InitialFEN: positions[0].String(),
		Moves:      uci,
	}, nil
}
