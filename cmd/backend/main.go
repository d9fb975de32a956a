package main

import (
	"github.com/gin-gonic/gin"

	"github.com/gmkornilov/pgn-puzzle-book/internal/api"
	"github.com/gmkornilov/pgn-puzzle-book/internal/config"
	"github.com/gmkornilov/pgn-puzzle-book/internal/dao"
	"github.com/gmkornilov/pgn-puzzle-book/internal/loader"
	"github.com/gmkornilov/pgn-puzzle-book/internal/logger"
)

func main() {
	cfg, err := config.InitConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	puzzleRepo := dao.NewPuzzleRepository()
	puzzleLoader := loader.NewPuzzleLoader(puzzleRepo, log)
	if cfg.Puzzles.Path != "" {
		if _, err := puzzleLoader.LoadFile(cfg.Puzzles.Path); err != nil {
			log.Fatalw("Failed to load puzzles", "path", cfg.Puzzles.Path, "error", err)
		}
	}

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	api.NewPuzzleApi(puzzleRepo, puzzleLoader, cfg.Puzzles.Path, log).Register(r)

	log.Infow("Server is running", "addr", cfg.Addr(), "puzzles", puzzleRepo.Len())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalw("Failed to start server", "error", err)
	}
}
