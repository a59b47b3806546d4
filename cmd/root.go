// Package cmd contains the portfolio CLI commands, built with cobra.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gede-cahya/portfolio/internal/config"
	"github.com/gede-cahya/portfolio/internal/feed"
	"github.com/gede-cahya/portfolio/internal/github"
	"github.com/gede-cahya/portfolio/internal/output"
)

// Package-level shared dependencies, initialized in cobra.OnInitialize.
var (
	ui      *output.UI
	verbose bool
)

// newLister builds the repository source. Tests replace it with a stub.
var newLister = func(token string) feed.Lister {
	return github.NewClient(token)
}

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio site with a live GitHub project feed",
	Long: `portfolio serves a single-page personal portfolio: bio, services,
a project grid loaded from the owner's public GitHub repositories, and a
contact form that opens a pre-filled email in the visitor's mail client.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
}

// Execute is the main entry point called from main.go.
func Execute(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initDeps)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output and debug logging")
	rootCmd.PersistentFlags().String("config", "", "Config file (YAML)")
	rootCmd.PersistentFlags().String("account", "", "GitHub account whose repositories are shown")
	rootCmd.PersistentFlags().Int("max-projects", 0, "Maximum number of project cards")

	_ = viper.BindPFlag("github.account", rootCmd.PersistentFlags().Lookup("account"))
	_ = viper.BindPFlag("feed.max_projects", rootCmd.PersistentFlags().Lookup("max-projects"))
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: reading config %s: %v\n", cfgFile, err)
			os.Exit(1)
		}
	}
}

func initDeps() {
	ui = output.New()
	ui.Verbose = verbose
}

// loadConfig resolves configuration and installs the default slog logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.LogLevel = slog.LevelDebug
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
	return cfg, nil
}
