package app

import (
	"context"
	"fmt"

	"vitrine/internal/config"
	"vitrine/internal/prefs"
	"vitrine/internal/product"
	"vitrine/internal/state"
	"vitrine/internal/ui"
)

// Options configure the vitrine application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/vitrine/prefs.toml
	APIBase    string // overrides the configured catalog API address
}

// Run boots the vitrine TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.APIBase != "" {
		cfg.APIBase = opts.APIBase
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := product.NewClient(cfg.APIBase, cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("init catalog client: %w", err)
	}

	store := state.New(client)

	return ui.Run(ui.Options{
		Context:   ctx,
		Client:    client,
		Store:     store,
		ThemeName: userPrefs.Theme,
		PageSize:  userPrefs.PageSize,
		PrefsPath: opts.PrefsPath,
	})
}
