package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/CyberAustin/AFSCbot/internal/afsc"
	"github.com/CyberAustin/AFSCbot/internal/config"
	"github.com/CyberAustin/AFSCbot/internal/dataset"
	"github.com/CyberAustin/AFSCbot/internal/infrastructure/reddit"
	"github.com/CyberAustin/AFSCbot/internal/infrastructure/storage"
	"github.com/CyberAustin/AFSCbot/internal/infrastructure/wiki"
	"github.com/CyberAustin/AFSCbot/internal/logging"
	"github.com/CyberAustin/AFSCbot/internal/pidfile"
	"github.com/CyberAustin/AFSCbot/internal/usecase"
)

// Application wires configs to the stream loop and owns process lifecycle.
type Application struct {
	cfg    config.Config
	logger *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.File)
	}
	return &Application{cfg: cfg, logger: baseLogger}
}

// Run acquires the single-instance lock, loads the reference dataset,
// opens the ledger, logs in, and drives the stream loop until ctx is
// cancelled. All handles are released on the way out regardless of how
// the loop terminates.
func (a *Application) Run(ctx context.Context) error {
	a.logger.Info("starting AFSCbot", "subreddit", a.cfg.Reddit.Subreddit)

	lock, err := pidfile.Acquire(a.cfg.PIDFile)
	if err != nil {
		return fmt.Errorf("acquire instance lock: %w", err)
	}
	defer func() {
		if err := lock.Release(); err != nil {
			a.logger.Error("release instance lock", "error", err)
		}
	}()

	ref, err := dataset.Load(a.cfg.Dataset)
	if err != nil {
		return fmt.Errorf("load reference dataset: %w", err)
	}
	a.logger.Info("reference dataset loaded",
		"enlisted_bases", len(ref.Enlisted.Bases),
		"officer_bases", len(ref.Officer.Bases))

	ledger, err := storage.Open(a.cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open comment ledger: %w", err)
	}
	defer func() {
		if err := ledger.Close(); err != nil {
			a.logger.Error("close comment ledger", "error", err)
		}
	}()

	source := reddit.NewClient(a.cfg.Reddit, a.logger.With("component", "reddit"))
	if err := source.Authenticate(ctx); err != nil {
		return fmt.Errorf("reddit login: %w", err)
	}

	// The wiki link table is a best-effort decoration; run without it
	// when the fetch fails.
	var links map[string]string
	linkSource := wiki.NewLinkTable(a.cfg.Wiki.IndexURL, a.cfg.Reddit.UserAgent, nil)
	if fetched, err := linkSource.Links(ctx); err != nil {
		a.logger.Warn("wiki link table unavailable", "error", err)
	} else {
		links = fetched
		a.logger.Info("wiki link table loaded", "links", len(links))
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:  source,
		Ledger:  ledger,
		Builder: afsc.NewBuilder(ref, links),
		BotUser: a.cfg.Reddit.Username,
		Logger:  a.logger.With("component", "pipeline"),
	})

	a.logger.Info("starting processing loop", "subreddit", a.cfg.Reddit.Subreddit)
	return pipeline.Run(ctx)
}
