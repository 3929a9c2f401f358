// Package cli wires the prneko commands.
package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/SusanLiu63/PRNeko/internal/app"
	"github.com/SusanLiu63/PRNeko/internal/auth"
	"github.com/SusanLiu63/PRNeko/internal/config"
	"github.com/SusanLiu63/PRNeko/internal/github"
	"github.com/SusanLiu63/PRNeko/internal/watchlist"
)

// Exit codes
const (
	ExitOK            = 0
	ExitNotLoggedIn   = 2
	ExitFetchError    = 3
	ExitInternalError = 10
)

// GlobalOptions holds options shared across all commands.
type GlobalOptions struct {
	Mock bool
	JSON bool
}

var globalOpts = &GlobalOptions{}

// rootCmd runs the dashboard when invoked without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "prneko",
	Short: "A mascot for your pull requests",
	Long: `prneko keeps an eye on your GitHub pull requests and reflects their
state through a small cat: anxious when something is blocked, excited when
a PR is ready to merge, hungry when reviews are waiting on you.

Run without arguments to open the dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&globalOpts.Mock, "mock", false, "Seed demo data instead of calling GitHub (or set PRNEKO_MOCK=1)")
	rootCmd.PersistentFlags().BoolVar(&globalOpts.JSON, "json", false, "Output in JSON format where supported")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newWatchCmd())
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitInternalError)
	}
}

// loadConfig loads configuration and applies global flags on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if globalOpts.Mock {
		cfg.Mock = true
	}
	return cfg, nil
}

// buildApp assembles the orchestrator with its real collaborators.
func buildApp(cfg *config.Config) *app.App {
	source := github.NewClient(nil)
	store := watchlist.NewFileStore(cfg.WatchlistPath())
	return app.New(source, store, openLogger(cfg))
}

// openLogger returns a file-backed logger for background activity. Falls
// back to a silent logger when the log file cannot be opened.
func openLogger(cfg *config.Config) *log.Logger {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return log.New(io.Discard, "", 0)
	}
	f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return log.New(io.Discard, "", 0)
	}
	return log.New(f, "", log.LstdFlags)
}

// credentialStore returns the credential store for cfg.
func credentialStore(cfg *config.Config) *auth.CredentialStore {
	return auth.NewCredentialStore(cfg.CredentialsPath())
}

// requireLogin loads stored credentials or fails with a login hint.
func requireLogin(cfg *config.Config) (auth.Credentials, error) {
	creds, ok, err := credentialStore(cfg).Load()
	if err != nil {
		return auth.Credentials{}, err
	}
	if !ok {
		return auth.Credentials{}, fmt.Errorf("not logged in, run: prneko login")
	}
	return creds, nil
}
