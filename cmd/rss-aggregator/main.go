// Command rss-aggregator runs the terminal RSS aggregator: it loads the
// configuration, starts the background poller, and hands the screen to
// the view.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/EgorUlitin/rss-aggregator/internal/application/state"
	"github.com/EgorUlitin/rss-aggregator/internal/application/usecase"
	"github.com/EgorUlitin/rss-aggregator/internal/config"
	feedclient "github.com/EgorUlitin/rss-aggregator/internal/infrastructure/feed"
	"github.com/EgorUlitin/rss-aggregator/internal/infrastructure/identity"
	"github.com/EgorUlitin/rss-aggregator/internal/logging"
	"github.com/EgorUlitin/rss-aggregator/internal/presentation/tui"
)

var cli struct {
	Config string `kong:"help='Path to config file',type='path'"`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("rss-aggregator"),
		kong.Description("Aggregate RSS/Atom feeds in the terminal."),
	)

	if err := run(); err != nil {
		kctx.FatalIfErrorf(err)
	}
}

func run() error {
	cfg, err := config.LoadConfig(cli.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closeLog, err := logging.Open(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	st := state.New()
	ids := identity.UUID{}
	fetcher := feedclient.NewFetcher(cfg.ProxyHost, cfg.FetchTimeout())
	submit := usecase.NewSubmissionService(fetcher, st, ids, logger)
	poller := usecase.NewPoller(fetcher, st, ids, cfg.PollInterval(), logger)

	binder := tui.NewBinder()
	st.Subscribe(binder)

	// Feeds named in the config are submitted as the session starts.
	go func() {
		for _, url := range cfg.Feeds {
			if err := submit.Submit(context.Background(), url); err != nil {
				logger.Warn("startup feed skipped", "url", url, "err", err)
			}
		}
	}()

	poller.Start()
	defer poller.Stop()

	model := tui.NewModel(cfg.Settings, submit, st, binder)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(os.Stdout))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
