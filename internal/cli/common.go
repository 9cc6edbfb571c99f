package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/danieljhkim/reposel/internal/config"
	"github.com/danieljhkim/reposel/internal/fsops"
	"github.com/danieljhkim/reposel/internal/selection"
	"github.com/danieljhkim/reposel/internal/state"
	"github.com/danieljhkim/reposel/internal/workspace"
)

// app bundles the wired dependencies a command needs.
type app struct {
	svc   *selection.Service
	cfg   *config.Config
	paths *config.Paths

	// watchPaths are the on-disk inputs of a resolution.
	watchPaths []string

	closeFn func() error
}

func (a *app) Close() error {
	if a.closeFn == nil {
		return nil
	}
	return a.closeFn()
}

// loadConfig resolves config.yaml, environment and flags, in increasing
// precedence.
func loadConfig(paths *config.Paths) (*config.Config, error) {
	path, required := configPath, true
	if path == "" {
		path, required = paths.Config, false
	}

	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, err
	}

	if endpointFlag != "" {
		cfg.Endpoint = endpointFlag
		cfg.WorkspaceFile = ""
	}
	if workspaceFlag != "" {
		cfg.WorkspaceFile = workspaceFlag
		cfg.Endpoint = ""
	}
	if storageFlag != "" {
		cfg.Storage = storageFlag
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newApp creates the selection service with real implementations of all
// dependencies.
func newApp(ctx context.Context) (*app, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	cfg, err := loadConfig(paths)
	if err != nil {
		return nil, err
	}

	fs := fsops.NewRealFS()
	a := &app{cfg: cfg, paths: paths}

	var source workspace.Source
	switch {
	case cfg.Endpoint != "":
		source = workspace.NewGraphQLSource(cfg.Endpoint,
			workspace.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
			workspace.WithMaxElapsed(cfg.Retry.MaxElapsed),
			workspace.WithLogger(logger),
		)
	case cfg.WorkspaceFile != "":
		source = workspace.NewFileSource(fs, cfg.WorkspaceFile)
		a.watchPaths = append(a.watchPaths, cfg.WorkspaceFile)
	default:
		return nil, fmt.Errorf("%w: pass --endpoint or --workspace-file, or set one in %s", workspace.ErrNoSource, paths.Config)
	}

	var kv state.KV
	switch cfg.Storage {
	case config.StorageSQLite:
		db, err := state.OpenSQLiteKV(ctx, paths.Database)
		if err != nil {
			return nil, err
		}
		kv = db
		a.closeFn = db.Close
		a.watchPaths = append(a.watchPaths, paths.Database)
	default:
		kv = state.NewFileKV(fs, paths.State)
		a.watchPaths = append(a.watchPaths, paths.State)
	}

	store := state.NewStore(kv, cfg.KeyPrefix, state.ScopeID(cfg.SourceDescriptor()), logger)
	a.svc = selection.NewService(source, store, logger)
	return a, nil
}

// parseKeyArg validates a "name:location" argument.
func parseKeyArg(arg string) (workspace.Key, error) {
	key, err := workspace.ParseKey(arg)
	if err != nil {
		return "", fmt.Errorf("%w (expected <repository>:<location>)", err)
	}
	return key, nil
}

// outputJSON writes a value as JSON to the command's output.
func outputJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
