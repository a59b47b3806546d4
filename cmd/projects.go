package cmd

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/gede-cahya/portfolio/internal/feed"
)

var projectsCmd = &cobra.Command{
	Use:     "projects",
	Aliases: []string{"ls"},
	Short:   "List the projects the site would show",
	Long:    "Run one feed activation against GitHub and print the resulting project cards as a table.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ui.VerboseLog("Listing repositories for %s", cfg.Account)
		start := time.Now()

		snap := feed.New(newLister(cfg.GitHubToken), cfg.FeedOptions(), nil).Load(cmd.Context())
		ui.VerboseLog("Feed finished in %s with state %s", time.Since(start).Round(time.Millisecond), snap.State)

		if snap.State == feed.StateError {
			ui.Error("%s", feed.ErrorMessage)
			return errors.New("feed activation failed")
		}
		if len(snap.Projects) == 0 {
			ui.Info("No projects to show for %s", cfg.Account)
			return nil
		}
		if err := ui.Projects(snap.Projects); err != nil {
			return err
		}
		ui.Success("%d of %s's repositories shown", len(snap.Projects), cfg.Account)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}
