package selection

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/danieljhkim/reposel/internal/nav"
	"github.com/danieljhkim/reposel/internal/route"
	"github.com/danieljhkim/reposel/internal/state"
	"github.com/danieljhkim/reposel/internal/workspace"
)

// Service resolves and records repository selections for one workspace.
// It is the API surface called by the CLI.
type Service struct {
	source workspace.Source
	store  *state.Store
	logger *zap.Logger
}

// NewService creates a Service with the given dependencies.
func NewService(source workspace.Source, store *state.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source: source,
		store:  store,
		logger: logger,
	}
}

// View is everything the navigation section needs for one route.
type View struct {
	Path    string         `json:"path"`
	Address *route.Address `json:"address,omitempty"`
	Known   int            `json:"known"`
	Active  Active         `json:"active"`
	Links   []nav.Link     `json:"links"`
}

// Known returns the known repository set. A failed query is logged and
// reported as an empty set; the navigation renders nothing until it succeeds.
func (s *Service) Known(ctx context.Context) []workspace.Repository {
	repos, err := s.source.Fetch(ctx)
	if err != nil {
		s.logger.Warn("workspace query failed; treating known set as empty", zap.Error(err))
		return []workspace.Repository{}
	}
	return repos
}

// State returns the persisted selection. Storage failures are logged and
// read as absent state.
func (s *Service) State(ctx context.Context) *state.SelectionState {
	st, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("failed to load selection state; treating as absent", zap.Error(err))
		return state.NewSelectionState()
	}
	return st
}

// View resolves the active repository for path and derives its links. It
// never writes state: a repository named by the route is authoritative for
// the current view only.
func (s *Service) View(ctx context.Context, path string) *View {
	known := s.Known(ctx)

	var addr *route.Address
	if a, ok := route.ParsePath(path); ok {
		addr = &a
		if workspace.Find(known, a.Key()) == nil {
			s.logger.Debug("route names unknown repository", zap.String("key", a.Key().String()))
		}
	}

	active := Resolve(known, addr, s.State(ctx))
	s.logger.Debug("resolved active repository",
		zap.String("path", path),
		zap.String("key", active.Key().String()),
		zap.String("reason", string(active.Reason)),
	)

	return &View{
		Path:    path,
		Address: addr,
		Known:   len(known),
		Active:  active,
		Links:   nav.Links(active.Repository),
	}
}

// Select records an explicit user choice of key. The key must belong to the
// known set.
func (s *Service) Select(ctx context.Context, key workspace.Key) (*state.SelectionState, error) {
	repos, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch workspace: %w", err)
	}
	if workspace.Find(repos, key) == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRepository, key)
	}

	st, err := s.store.RecordSelection(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to record selection: %w", err)
	}
	s.logger.Info("repository selected", zap.String("key", key.String()))
	return st, nil
}

// Forget removes key from the persisted selection. Keys no longer served by
// the workspace can be forgotten too.
func (s *Service) Forget(ctx context.Context, key workspace.Key) error {
	removed, err := s.store.Forget(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to forget selection: %w", err)
	}
	if !removed {
		return fmt.Errorf("%w: %s", ErrNotSelected, key)
	}
	return nil
}

// Clear removes all persisted selection state.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear selection state: %w", err)
	}
	return nil
}
