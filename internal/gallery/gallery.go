// Package gallery wires the gallery stores together. The catalogue and the registered
// users are shared; every browser workspace gets its own session, cart and appearance.
package gallery

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"artvista/internal/appearance"
	"artvista/internal/auth"
	"artvista/internal/cart"
	"artvista/internal/catalog"
	"artvista/internal/checkout"
	applog "artvista/internal/log"
	"artvista/internal/metrics"
	"artvista/internal/payment"
	"artvista/internal/storage"
)

// Options configure a Gallery.
type Options struct {
	Staff       auth.StaffTable
	HashCost    int
	LegacyLogin auth.LegacyAdmin
	Gateway     checkout.Gateway
	Metrics     *metrics.Recorder
	Catalog     []catalog.Option
	// MaxWorkspaces bounds the workspaces kept in memory. The least recently used one is
	// dropped beyond it; its state stays in storage and is reloaded on the next visit.
	MaxWorkspaces int
}

// DefaultMaxWorkspaces is used when Options.MaxWorkspaces is not positive.
const DefaultMaxWorkspaces = 4096

// Gallery owns the shared stores and the workspaces opened so far.
type Gallery struct {
	kv        storage.Store
	opts      Options
	catalog   *catalog.Store
	directory *auth.Directory
	checkout  *checkout.Service

	guest      *Workspace
	workspaces *lru.Cache[string, *Workspace]
	opening    singleflight.Group
}

// New loads the shared catalogue and returns a Gallery over kv.
func New(ctx context.Context, kv storage.Store, opts Options) (*Gallery, error) {
	if opts.Gateway == nil {
		opts.Gateway = payment.NewMockGateway(1500*time.Millisecond, time.Second)
	}

	var dirOpts []auth.DirectoryOption
	if opts.Staff != nil {
		dirOpts = append(dirOpts, auth.WithStaff(opts.Staff))
	}
	if opts.HashCost > 0 {
		dirOpts = append(dirOpts, auth.WithHashCost(opts.HashCost))
	}

	if opts.MaxWorkspaces <= 0 {
		opts.MaxWorkspaces = DefaultMaxWorkspaces
	}

	g := &Gallery{
		kv:        kv,
		opts:      opts,
		catalog:   catalog.NewStore(kv, opts.Catalog...),
		directory: auth.NewDirectory(kv, dirOpts...),
		checkout:  checkout.NewService(opts.Gateway),
	}
	cache, err := lru.NewWithEvict(opts.MaxWorkspaces, g.evicted)
	if err != nil {
		return nil, fmt.Errorf("workspace cache: %w", err)
	}
	g.workspaces = cache

	if err := g.catalog.Load(ctx); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	g.catalog.Subscribe(opts.Metrics.Listener())

	guest, err := g.newWorkspace(ctx, "", storage.NewMemory())
	if err != nil {
		return nil, fmt.Errorf("guest workspace: %w", err)
	}
	g.guest = guest
	return g, nil
}

// Guest returns the shared, signed-out workspace used to answer read-only requests from
// browsers that have no workspace yet. It is never persisted and must not be mutated.
func (g *Gallery) Guest() *Workspace {
	return g.guest
}

// Catalog returns the shared catalogue.
func (g *Gallery) Catalog() *catalog.Store {
	return g.catalog
}

// Directory returns the registered-users table.
func (g *Gallery) Directory() *auth.Directory {
	return g.directory
}

// NewWorkspaceID mints an id for a browser that has none yet.
func NewWorkspaceID() string {
	return uuid.NewString()
}

// Workspace returns the workspace for id, loading it from storage on first use.
func (g *Gallery) Workspace(ctx context.Context, id string) (*Workspace, error) {
	if id == "" {
		return nil, fmt.Errorf("workspace id must not be empty")
	}

	if ws, ok := g.workspaces.Get(id); ok {
		return ws, nil
	}

	v, err, _ := g.opening.Do(id, func() (any, error) {
		if existing, ok := g.workspaces.Get(id); ok {
			return existing, nil
		}

		ws, err := g.open(ctx, id)
		if err != nil {
			return nil, err
		}
		g.opts.Metrics.WorkspaceOpened()
		g.workspaces.Add(id, ws)
		return ws, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Workspace), nil
}

// OpenWorkspaces returns how many workspaces are held in memory.
func (g *Gallery) OpenWorkspaces() int {
	return g.workspaces.Len()
}

func (g *Gallery) evicted(id string, ws *Workspace) {
	ws.close()
	g.opts.Metrics.WorkspaceClosed()
	applog.Debug(context.Background(), "workspace evicted", "workspace", id)
}

func (g *Gallery) open(ctx context.Context, id string) (*Workspace, error) {
	ws, err := g.newWorkspace(ctx, id, storage.Prefixed(g.kv, storage.WorkspacePrefix(id)))
	if err != nil {
		return nil, err
	}

	ws.unsubscribe = append(ws.unsubscribe, g.catalog.Subscribe(ws.feed.forward))
	applog.Debug(ctx, "workspace opened", "workspace", id)
	return ws, nil
}

func (g *Gallery) newWorkspace(ctx context.Context, id string, kv storage.Store) (*Workspace, error) {
	var sessionOpts []auth.Option
	if g.opts.LegacyLogin.Enabled {
		sessionOpts = append(sessionOpts, auth.WithLegacyLogin(g.opts.LegacyLogin))
	}

	ws := &Workspace{
		ID:       id,
		Session:  auth.NewStore(kv, g.directory, sessionOpts...),
		Cart:     cart.NewStore(kv),
		checkout: g.checkout,
		metrics:  g.opts.Metrics,
	}
	ws.Appearance = appearance.NewStore(kv, appearance.WithApplier(appearance.ApplierFunc(ws.setTheme)))

	if err := ws.Session.Load(ctx); err != nil {
		// A corrupt session record signs the workspace out rather than locking it.
		applog.Warn(ctx, "discarding unreadable session", "workspace", id, "error", err)
	}
	if err := ws.Cart.Load(ctx); err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if err := ws.Appearance.Load(ctx); err != nil {
		return nil, fmt.Errorf("load appearance: %w", err)
	}

	record := g.opts.Metrics.Listener()
	ws.Session.Subscribe(record)
	ws.Cart.Subscribe(record)
	ws.Appearance.Subscribe(record)

	ws.Session.Subscribe(ws.feed.forward)
	ws.Cart.Subscribe(ws.feed.forward)
	ws.Appearance.Subscribe(ws.feed.forward)
	return ws, nil
}
