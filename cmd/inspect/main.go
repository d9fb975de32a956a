package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/gmkornilov/pgn-puzzle-book/internal/dao"
	"github.com/gmkornilov/pgn-puzzle-book/internal/loader"
)

func main() {
	path := flag.String("pgn", "", "PGN file with puzzles")
	compact := flag.Bool("compact", false, "print the compact game-mode format")
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(2)
	}

	repo := dao.NewPuzzleRepository()
	if _, err := loader.NewPuzzleLoader(repo, zap.NewNop().Sugar()).LoadFile(*path); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Failed to load %s: %v", *path, err))
		os.Exit(1)
	}

	records := repo.All()
	if ids := flag.Args(); len(ids) > 0 {
		records = repo.FindBySorted(ids)
		for _, id := range ids {
			if _, ok := repo.FindByID(id); !ok {
				fmt.Fprintln(os.Stderr, color.YellowString("puzzle %s not found", id))
			}
		}
	}

	out := make([]interface{}, 0, len(records))
	for _, rec := range records {
		if *compact {
			out = append(out, rec.Compact())
		} else {
			out = append(out, rec.Export())
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "\t")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Failed to encode puzzles: %v", err))
		os.Exit(1)
	}
	fmt.Fprintln(os.Stderr, color.GreenString("%d of %d puzzles", len(records), repo.Len()))
}
