package api

import (
	"crypto/md5"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gmkornilov/pgn-puzzle-book/internal/dao"
	"github.com/gmkornilov/pgn-puzzle-book/internal/loader"
	"github.com/gmkornilov/pgn-puzzle-book/pkg/puzzles"
)

type PuzzleApi struct {
	PuzzleRepository dao.PuzzleRepository
	Loader           *loader.PuzzleLoader
	// PGN file reloaded when no file is uploaded
	DefaultPath string

	log        *zap.SugaredLogger
	activeJobs map[string]loader.Worker
	totalJobs  int
	mu         sync.RWMutex
}

func NewPuzzleApi(repo dao.PuzzleRepository, l *loader.PuzzleLoader, defaultPath string, log *zap.SugaredLogger) *PuzzleApi {
	return &PuzzleApi{
		PuzzleRepository: repo,
		Loader:           l,
		DefaultPath:      defaultPath,
		log:              log,
		activeJobs:       make(map[string]loader.Worker),
	}
}

func (p *PuzzleApi) Register(r gin.IRouter) {
	r.GET("/puzzles", p.All)
	r.GET("/puzzles/sorted", p.Sorted)
	r.GET("/puzzles/:id", p.Puzzle)
	r.GET("/puzzles/:id/compact", p.Compact)
	r.POST("/puzzles/reload", p.StartReload)
	r.GET("/jobs/:job_id", p.GetJobStatus)
}

func exports(records []*puzzles.Record) []puzzles.Export {
	res := make([]puzzles.Export, 0, len(records))
	for _, rec := range records {
		res = append(res, rec.Export())
	}
	return res
}

func (p *PuzzleApi) All(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, exports(p.PuzzleRepository.All()))
}

func (p *PuzzleApi) find(ctx *gin.Context) (*puzzles.Record, bool) {
	id := ctx.Param("id")
	rec, ok := p.PuzzleRepository.FindByID(id)
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error": fmt.Sprintf("puzzle %s not found", id),
		})
	}
	return rec, ok
}

func (p *PuzzleApi) Puzzle(ctx *gin.Context) {
	rec, ok := p.find(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, rec.Export())
}

func (p *PuzzleApi) Compact(ctx *gin.Context) {
	rec, ok := p.find(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, rec.Compact())
}

// Sorted returns compact puzzles in the order of the ids query parameter,
// given either comma separated or repeated.
func (p *PuzzleApi) Sorted(ctx *gin.Context) {
	ids := make([]string, 0)
	for _, value := range ctx.QueryArray("ids") {
		for _, id := range strings.Split(value, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	records := p.PuzzleRepository.FindBySorted(ids)
	res := make([]puzzles.CompactView, 0, len(records))
	for _, rec := range records {
		res = append(res, rec.Compact())
	}
	ctx.JSON(http.StatusOK, res)
}

func (p *PuzzleApi) StartReload(ctx *gin.Context) {
	var worker *loader.ReloadWorker
	fileHeader, err := ctx.FormFile("file")
	switch {
	case err == nil:
		body, err := readUpload(fileHeader)
		if err != nil {
			p.log.Errorw("Failed to read upload", "error", err)
			ctx.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
			return
		}
		worker = p.Loader.NewUploadReloadWorker(body)
	case p.DefaultPath != "":
		worker = p.Loader.NewFileReloadWorker(p.DefaultPath)
	default:
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error": "no file uploaded and no default pgn path configured",
		})
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.totalJobs++
	byteValue := []byte(strconv.Itoa(p.totalJobs))
	id := fmt.Sprintf("%x", md5.Sum(byteValue))
	p.activeJobs[id] = worker
	worker.StartWork()
	ctx.JSON(http.StatusOK, gin.H{
		"job_id": id,
	})
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(file)
}

func (p *PuzzleApi) GetJobStatus(ctx *gin.Context) {
	id := ctx.Param("job_id")
	p.mu.Lock()
	defer p.mu.Unlock()
	worker, ok := p.activeJobs[id]
	if !ok {
		ctx.AbortWithStatus(http.StatusNotFound)
		return
	}
	done := worker.Done()
	if !done {
		ctx.JSON(http.StatusOK, gin.H{
			"done": done,
		})
		return
	}

	delete(p.activeJobs, id)
	if worker.Error() != nil {
		ctx.JSON(http.StatusOK, gin.H{
			"done":  done,
			"error": worker.Error().Error(),
		})
	} else {
		ctx.JSON(http.StatusOK, gin.H{
			"done":   done,
			"result": worker.Result(),
		})
	}
}
