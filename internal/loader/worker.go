package loader

import (
	"bytes"
	"sync"

	"go.uber.org/zap"

	"github.com/gmkornilov/pgn-puzzle-book/pkg/puzzles"
)

type Worker interface {
	StartWork()
	Result() interface{}
	Done() bool
	Error() error
}

// ReloadWorker reloads the puzzles in the background, either from an uploaded
// PGN body or from a file path.
type ReloadWorker struct {
	mu      sync.Mutex
	count   int
	err     error
	done    bool
	started bool

	loader *PuzzleLoader
	path   string
	body   []byte
	log    *zap.SugaredLogger
}

func (l *PuzzleLoader) NewFileReloadWorker(path string) *ReloadWorker {
	return &ReloadWorker{loader: l, path: path, log: l.log}
}

func (l *PuzzleLoader) NewUploadReloadWorker(body []byte) *ReloadWorker {
	return &ReloadWorker{loader: l, body: body, log: l.log}
}

func (w *ReloadWorker) StartWork() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return
	}
	w.started = true
	go w.Reload()
}

func (w *ReloadWorker) Reload() {
	var records []*puzzles.Record
	var err error
	if w.body != nil {
		records, err = w.loader.LoadReader(bytes.NewReader(w.body))
	} else {
		records, err = w.loader.LoadFile(w.path)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.log.Errorw("Reload failed", "path", w.path, "error", err)
		w.err = err
	} else {
		w.count = len(records)
	}
	w.done = true
}

// Result is the number of loaded puzzles.
func (w *ReloadWorker) Result() interface{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

func (w *ReloadWorker) Done() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.done
}

func (w *ReloadWorker) Error() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}
