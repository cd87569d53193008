package whisper

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/kbukum/nativebridge/logger"
)

// Handle is a reference-counted loaded model. The cell holds one reference;
// every Snapshot adds one and must be paired with Release. The model is
// closed when the count reaches zero.
type Handle struct {
	model    Model
	path     string
	loadedAt time.Time
	refs     atomic.Int64
	log      *logger.Logger
}

func newHandle(model Model, path string, log *logger.Logger) *Handle {
	h := &Handle{model: model, path: path, loadedAt: time.Now(), log: log}
	h.refs.Store(1)
	return h
}

// Path returns the model file the handle was loaded from.
func (h *Handle) Path() string { return h.path }

// LoadedAt returns when the model finished loading.
func (h *Handle) LoadedAt() time.Time { return h.loadedAt }

// Model returns the loaded model.
func (h *Handle) Model() Model { return h.model }

// Release drops one reference. The last release closes the model; a close
// failure is logged since the releasing caller may be an unrelated request.
func (h *Handle) Release() {
	if h.refs.Add(-1) != 0 {
		return
	}
	if err := h.model.Close(); err != nil {
		h.log.Warn("model close failed", logger.MergeWithError(logger.Fields(logger.FieldModelPath, h.path), err))
	}
}

// Cell is a mutex-guarded slot holding the current Handle. It only offers
// wholesale replacement and shared snapshots; the handle itself is never
// mutated through it.
type Cell struct {
	mu sync.Mutex
	h  *Handle
}

// Replace installs h and drops the cell's reference to the previous handle.
// Transcriptions still holding the old handle keep it alive until they finish.
func (c *Cell) Replace(h *Handle) {
	c.mu.Lock()
	old := c.h
	c.h = h
	c.mu.Unlock()
	if old != nil {
		old.Release()
	}
}

// Snapshot returns the current handle with an extra reference, or false
// when nothing has been loaded.
func (c *Cell) Snapshot() (*Handle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.h == nil {
		return nil, false
	}
	c.h.refs.Add(1)
	return c.h, true
}

// Loaded reports whether the cell holds a handle, and its path.
func (c *Cell) Loaded() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.h == nil {
		return "", false
	}
	return c.h.path, true
}
