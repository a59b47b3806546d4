// Package config resolves application configuration from flags, environment
// variables (including a .env file) and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/gede-cahya/portfolio/internal/feed"
)

// EnvPrefix prefixes every environment variable, e.g. PORTFOLIO_GITHUB_ACCOUNT.
const EnvPrefix = "PORTFOLIO"

// GitHub's listing endpoint caps per_page at 100.
const maxPerPage = 100

// Config holds the resolved application configuration.
type Config struct {
	Port        int
	Mode        string
	LogLevel    slog.Level
	Account     string
	GitHubToken string
	PerPage     int
	MaxProjects int
	ProfilePath string
}

// ListenAddr is the address the HTTP server binds.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// FeedOptions returns the repository feed settings.
func (c *Config) FeedOptions() feed.Options {
	return feed.Options{
		Account:     c.Account,
		PerPage:     c.PerPage,
		MaxProjects: c.MaxProjects,
	}
}

// HasGitHubToken reports whether listing requests are authenticated.
func (c *Config) HasGitHubToken() bool {
	return c.GitHubToken != ""
}

// SetDefaults registers defaults and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("port", 8080)
	v.SetDefault("mode", "release")
	v.SetDefault("log_level", "info")
	v.SetDefault("github.account", feed.DefaultAccount)
	v.SetDefault("github.token", "")
	v.SetDefault("feed.per_page", feed.DefaultPerPage)
	v.SetDefault("feed.max_projects", feed.DefaultMaxProjects)
	v.SetDefault("profile_path", "")

	// Hosting platforms set PORT; a personal token is usually exported as GITHUB_TOKEN.
	_ = v.BindEnv("port", EnvPrefix+"_PORT", "PORT")
	_ = v.BindEnv("github.token", EnvPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN")
}

// Load reads and validates configuration from v. SetDefaults must have been
// called on v first.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:        v.GetInt("port"),
		Mode:        strings.ToLower(v.GetString("mode")),
		Account:     strings.TrimSpace(v.GetString("github.account")),
		GitHubToken: v.GetString("github.token"),
		PerPage:     v.GetInt("feed.per_page"),
		MaxProjects: v.GetInt("feed.max_projects"),
		ProfilePath: v.GetString("profile_path"),
	}

	var errs []error

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("log_level"))); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", cfg.Port))
	}
	switch cfg.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("mode %q must be debug, release or test", cfg.Mode))
	}
	if cfg.Account == "" {
		errs = append(errs, errors.New("github.account is required"))
	}
	if cfg.PerPage < 1 || cfg.PerPage > maxPerPage {
		errs = append(errs, fmt.Errorf("feed.per_page %d must be between 1 and %d", cfg.PerPage, maxPerPage))
	}
	if cfg.MaxProjects < 1 {
		errs = append(errs, fmt.Errorf("feed.max_projects %d must be at least 1", cfg.MaxProjects))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
