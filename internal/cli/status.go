package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SusanLiu63/PRNeko/internal/app"
	"github.com/SusanLiu63/PRNeko/internal/model"
	"github.com/SusanLiu63/PRNeko/internal/queue"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Fetch once and print the queues and mood",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context())
		},
	}
}

func runStatus(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a := buildApp(cfg)

	if cfg.Mock {
		a.LoadMockData()
		return printStatus(a)
	}

	creds, err := requireLogin(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitNotLoggedIn)
	}
	a.SetCredentials(creds)

	// Watchlist failures are partial by design: report and keep going.
	if err := a.LoadWatchlist(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	if err := a.RefreshAuthored(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fetch failed: %v\n", err)
		os.Exit(ExitFetchError)
	}
	return printStatus(a)
}

func printStatus(a *app.App) error {
	snap := a.Snapshot()
	mood := queue.Mood(snap)

	if globalOpts.JSON {
		out := struct {
			Mood             model.Mood   `json:"mood"`
			Total            int          `json:"total"`
			PendingReviews   []model.Item `json:"pendingReviews"`
			WaitingForReview []model.Item `json:"waitingForReview"`
			MergeReady       []model.Item `json:"mergeReady"`
			Blocked          []model.Item `json:"blocked"`
		}{mood, snap.Total(), snap.PendingReviews, snap.WaitingForReview, snap.MergeReady, snap.Blocked}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("%s  %s · %d open items\n", mood.Face(), mood.Label(), snap.Total())
	for _, q := range model.Queues {
		items := snap.Items(q)
		fmt.Printf("\n%s (%d)\n", q.Title(), len(items))
		for _, item := range items {
			fmt.Printf("  %s %-50s %s · %s\n", item.Status.Glyph(), item.Title, item.Repo, item.Age())
		}
	}
	return nil
}
