package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SusanLiu63/PRNeko/internal/github"
	"github.com/SusanLiu63/PRNeko/internal/watchlist"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Manage the list of PRs you are reviewing",
	}
	cmd.AddCommand(newWatchAddCmd())
	cmd.AddCommand(newWatchRmCmd())
	cmd.AddCommand(newWatchLsCmd())
	return cmd
}

func newWatchAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add URL",
		Short: "Add a PR to the pending-reviews watchlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// Validate before persisting so typos never enter the list.
			if _, _, _, err := github.ParsePRURL(args[0]); err != nil {
				return err
			}

			// With stored credentials the PR is fetched right away; without
			// them the URL is still persisted and loads on next login.
			if creds, ok, _ := credentialStore(cfg).Load(); ok {
				a := buildApp(cfg)
				a.SetCredentials(creds)
				if err := a.AddPendingByURL(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Println("Added and fetched.")
				return nil
			}

			store := watchlist.NewFileStore(cfg.WatchlistPath())
			added, err := watchlist.Add(store, args[0])
			if err != nil {
				return err
			}
			if added {
				fmt.Println("Added. It will be fetched after you log in.")
			} else {
				fmt.Println("Already on the watchlist.")
			}
			return nil
		},
	}
}

func newWatchRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm URL",
		Aliases: []string{"remove"},
		Short:   "Remove a PR from the watchlist",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store := watchlist.NewFileStore(cfg.WatchlistPath())
			removed, err := watchlist.Remove(store, args[0])
			if err != nil {
				return err
			}
			if removed {
				fmt.Println("Removed.")
			} else {
				fmt.Println("Not on the watchlist.")
			}
			return nil
		},
	}
}

func newWatchLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List watchlist URLs",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store := watchlist.NewFileStore(cfg.WatchlistPath())
			urls, err := store.Load()
			if err != nil {
				return err
			}
			if len(urls) == 0 {
				fmt.Println("Watchlist is empty.")
				return nil
			}
			for _, u := range urls {
				fmt.Println(u)
			}
			return nil
		},
	}
}
