package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/SusanLiu63/PRNeko/internal/tui"
)

// runDashboard starts the interactive dashboard. In mock mode it seeds
// demo data and never touches GitHub; otherwise it starts the poller and
// restores the watchlist in the background.
func runDashboard() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a := buildApp(cfg)

	if cfg.Mock {
		a.LoadMockData()
		return tui.NewDashboard(a, cfg.QuietHours).Run()
	}

	creds, err := requireLogin(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitNotLoggedIn)
	}
	a.SetCredentials(creds)

	a.StartPolling(cfg.PollInterval)
	defer a.StopPolling()

	go func() {
		if err := a.LoadWatchlist(context.Background()); err != nil {
			// Shown through the dashboard's error line via LastError.
			return
		}
	}()

	return tui.NewDashboard(a, cfg.QuietHours).Run()
}
