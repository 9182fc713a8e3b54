package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/five82/prlogs/internal/config"
	"github.com/five82/prlogs/internal/github"
	"github.com/five82/prlogs/internal/prefs"
	"github.com/five82/prlogs/internal/replay"
	"github.com/five82/prlogs/internal/state"
	"github.com/five82/prlogs/internal/ui"
)

// ErrNoTarget is returned when neither a pull request nor a snapshot file
// was given.
var ErrNoTarget = errors.New("a PR number or URL is required (or --file)")

// Options configure the prlogs application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/prlogs/prefs.toml
	Repo       string // -R; overrides the config and the current directory
	Target     string // PR number, #number or pull request URL
	File       string // snapshot to show instead of fetching
	Watch      bool   // reload File when it changes
}

// Run boots the prlogs TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	userPrefs, _ := prefs.Load(opts.PrefsPath)

	if opts.Watch && opts.File == "" {
		return errors.New("--watch requires --file")
	}
	fetcher, number, source, err := newFetcher(cfg, opts)
	if err != nil {
		return err
	}

	store := &state.Store{}
	loader := NewLoader(store, fetcher, number, cfg.RefreshInterval)
	loader.Start(ctx)

	if opts.Watch {
		go func() {
			if err := replay.Watch(ctx, opts.File, replay.DefaultDebounce, loader.Reload); err != nil {
				log.Error("watch snapshot", "path", opts.File, "err", err)
			}
		}()
	}

	log.Info("starting", "source", source, "pr", number, "refresh", cfg.RefreshInterval)
	return ui.Run(ui.Options{
		Context:        ctx,
		Store:          store,
		Reload:         loader.Reload,
		Panel:          cfg.PanelOptions(),
		Source:         source,
		ThemeName:      userPrefs.Theme,
		ShowTimestamps: userPrefs.ShowTimestamps,
		PrefsPath:      opts.PrefsPath,
	})
}

// Dump fetches the build logs once and writes them to a snapshot file.
func Dump(ctx context.Context, opts Options, out string) error {
	if strings.TrimSpace(out) == "" {
		return errors.New("an output file is required")
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	fetcher, number, source, err := newFetcher(cfg, opts)
	if err != nil {
		return err
	}
	res, err := fetcher.FetchBuildLogs(ctx, number)
	if err != nil {
		return fmt.Errorf("fetch build logs: %w", err)
	}
	if err := replay.Save(out, res); err != nil {
		return err
	}
	log.Info("snapshot written", "source", source, "pr", res.PR.Number, "jobs", len(res.Jobs), "path", out)
	return nil
}

// newFetcher picks the snapshot file or GitHub, resolving the repository
// from the PR URL, -R, the config file or the working directory in that
// order.
func newFetcher(cfg config.Config, opts Options) (github.Fetcher, int, string, error) {
	if opts.File != "" {
		return replay.NewSource(opts.File), 0, opts.File, nil
	}
	if strings.TrimSpace(opts.Target) == "" {
		return nil, 0, "", ErrNoTarget
	}

	target, err := github.ParseTarget(opts.Target)
	if err != nil {
		return nil, 0, "", err
	}
	repo := target.Repo
	if repo == "" {
		repo = opts.Repo
	}
	if repo == "" {
		repo = cfg.Repo
	}
	repo, err = github.ResolveRepo(repo)
	if err != nil {
		return nil, 0, "", err
	}

	client, err := github.NewClient(repo, github.WithConcurrency(cfg.FetchConcurrency))
	if err != nil {
		return nil, 0, "", fmt.Errorf("init github client: %w", err)
	}
	return client, target.Number, repo, nil
}
