package dataset

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

const reloadKey = "datasets"

// Holder publishes the current snapshot. Readers never block; a reload
// replaces the snapshot wholesale once it completes. Concurrent reload
// requests share one load.
type Holder struct {
	loader  *Loader
	current atomic.Pointer[Snapshot]
	group   singleflight.Group
}

func NewHolder(loader *Loader) *Holder {
	h := &Holder{loader: loader}
	h.current.Store(&Snapshot{})
	return h
}

// Snapshot returns the most recent snapshot; empty before the first load.
func (h *Holder) Snapshot() *Snapshot {
	return h.current.Load()
}

// Loaded reports whether at least one load has completed.
func (h *Holder) Loaded() bool {
	return h.Snapshot().Loaded()
}

// Reload loads synchronously, joining a load already in flight.
func (h *Holder) Reload(ctx context.Context) *Snapshot {
	v, _, _ := h.group.Do(reloadKey, func() (any, error) {
		return h.load(ctx), nil
	})
	return v.(*Snapshot)
}

// Refresh starts a background load unless one is running. The returned
// channel yields the result and may be ignored.
func (h *Holder) Refresh() <-chan *Snapshot {
	done := make(chan *Snapshot, 1)
	ch := h.group.DoChan(reloadKey, func() (any, error) {
		return h.load(context.Background()), nil
	})
	go func() {
		res := <-ch
		done <- res.Val.(*Snapshot)
	}()
	return done
}

func (h *Holder) load(ctx context.Context) *Snapshot {
	snap := h.loader.Load(ctx)
	h.current.Store(snap)
	return snap
}
