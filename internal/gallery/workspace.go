package gallery

import (
	"context"
	"sync"
	"time"

	"artvista/internal/appearance"
	"artvista/internal/auth"
	"artvista/internal/cart"
	"artvista/internal/checkout"
	"artvista/internal/events"
	"artvista/internal/metrics"
)

// Workspace is the store set bound to one browser.
type Workspace struct {
	ID         string
	Session    *auth.Store
	Cart       *cart.Store
	Appearance *appearance.Store

	checkout *checkout.Service
	metrics  *metrics.Recorder
	feed     feed

	// unsubscribe detaches the workspace from the shared catalogue once it is evicted.
	unsubscribe []func()

	themeMu sync.RWMutex
	theme   string
}

// Subscribe registers l for every change visible to the workspace, including changes
// to the shared catalogue.
func (w *Workspace) Subscribe(l events.Listener) func() {
	return w.feed.hub.Subscribe(l)
}

// Checkout pays for the workspace cart.
func (w *Workspace) Checkout(ctx context.Context) (checkout.Receipt, error) {
	start := time.Now()
	receipt, err := w.checkout.Checkout(ctx, w.ID, w.Cart)
	w.metrics.Checkout(time.Since(start), err)
	return receipt, err
}

// AppliedTheme returns the theme last applied to the presentation layer.
func (w *Workspace) AppliedTheme() string {
	w.themeMu.RLock()
	defer w.themeMu.RUnlock()
	return w.theme
}

func (w *Workspace) setTheme(theme string) {
	w.themeMu.Lock()
	w.theme = theme
	w.themeMu.Unlock()
}

func (w *Workspace) close() {
	for _, fn := range w.unsubscribe {
		fn()
	}
	w.unsubscribe = nil
}

type feed struct {
	hub events.Hub
}

func (f *feed) forward(e events.Event) {
	f.hub.Publish(e.Store, e.Kind)
}
