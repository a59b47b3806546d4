// Package feed turns a GitHub account's public repository listing into the short
// list of project cards shown in the portfolio grid.
package feed

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
)

// ErrorMessage is the only text a visitor sees when the listing cannot be loaded.
const ErrorMessage = "Failed to load projects from GitHub."

const (
	// DefaultAccount is the GitHub account whose repositories are listed.
	DefaultAccount = "gede-cahya"
	// DefaultPerPage is the page size requested from the listing endpoint.
	DefaultPerPage = 10
	// DefaultMaxProjects is the number of cards the two-column grid shows.
	DefaultMaxProjects = 4

	placeholderDescription = "No description provided."
	fallbackCategory       = "Development"
	fallbackTag            = "Code"
	maxTags                = 3
)

var accents = []string{
	"bg-gradient-to-br from-indigo-600 to-blue-500",
	"bg-gradient-to-br from-pink-600 to-rose-500",
	"bg-gradient-to-br from-red-600 to-orange-500",
	"bg-gradient-to-br from-emerald-600 to-teal-500",
	"bg-gradient-to-br from-purple-600 to-indigo-500",
	"bg-gradient-to-br from-orange-600 to-yellow-500",
}

// RemoteRepository is one entry of the listing endpoint's response.
// Optional string fields are empty when the endpoint sends null.
type RemoteRepository struct {
	Fork        bool
	Name        string
	Description string
	Language    string
	Topics      []string
	Homepage    string
	HTMLURL     string
	Stars       int
}

// Project is a repository prepared for display in the portfolio grid.
type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	SourceURL   string   `json:"source_url"`
	DemoURL     string   `json:"demo_url"`
	Stars       int      `json:"stars"`
	Accent      string   `json:"accent"`
}

// Lister fetches an account's repositories, most recently updated first.
type Lister interface {
	ListRepositories(ctx context.Context, account string, perPage int) ([]RemoteRepository, error)
}

// Options configures a Feed.
type Options struct {
	Account     string
	PerPage     int
	MaxProjects int
}

func (o Options) withDefaults() Options {
	if o.Account == "" {
		o.Account = DefaultAccount
	}
	if o.PerPage <= 0 {
		o.PerPage = DefaultPerPage
	}
	if o.MaxProjects <= 0 {
		o.MaxProjects = DefaultMaxProjects
	}
	return o
}

// Snapshot is the observable state of a Feed.
type Snapshot struct {
	State    State     `json:"state"`
	Projects []Project `json:"projects"`
	Error    string    `json:"error,omitempty"`
}

// Feed loads the project list at most once. Loading is the initial state;
// Loaded and Error are terminal.
type Feed struct {
	lister Lister
	opts   Options
	logger *slog.Logger

	once sync.Once
	mu   sync.RWMutex
	snap Snapshot
}

// New creates a Feed in the Loading state. A nil logger uses slog.Default().
func New(lister Lister, opts Options, logger *slog.Logger) *Feed {
	if logger == nil {
		logger = slog.Default()
	}
	return &Feed{
		lister: lister,
		opts:   opts.withDefaults(),
		logger: logger,
		snap:   Snapshot{State: StateLoading, Projects: []Project{}},
	}
}

// Load issues the listing request on the first call and blocks until it
// completes. Every later or concurrent call returns the same terminal snapshot
// without touching the network.
func (f *Feed) Load(ctx context.Context) Snapshot {
	f.once.Do(func() {
		next := f.fetch(ctx)

		f.mu.Lock()
		f.snap = next
		f.mu.Unlock()
	})
	return f.Snapshot()
}

// Snapshot returns the current state without triggering a load.
func (f *Feed) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()

	snap := f.snap
	snap.Projects = make([]Project, len(f.snap.Projects))
	copy(snap.Projects, f.snap.Projects)
	return snap
}

func (f *Feed) fetch(ctx context.Context) Snapshot {
	repos, err := f.lister.ListRepositories(ctx, f.opts.Account, f.opts.PerPage)
	if err != nil {
		level := slog.LevelError
		if errors.Is(err, context.Canceled) {
			// The requesting page was torn down.
			level = slog.LevelDebug
		}
		f.logger.Log(ctx, level, "error fetching projects",
			"account", f.opts.Account,
			"error", err,
		)
		return Snapshot{State: StateError, Projects: []Project{}, Error: ErrorMessage}
	}

	projects := Shape(repos, f.opts.MaxProjects)
	f.logger.Debug("projects loaded",
		"account", f.opts.Account,
		"received", len(repos),
		"shown", len(projects),
	)
	return Snapshot{State: StateLoaded, Projects: projects}
}

// Shape drops forks, keeps at most limit entries in the given order, and maps
// each one to a Project. The result is never nil.
func Shape(repos []RemoteRepository, limit int) []Project {
	limit = max(limit, 0)
	projects := make([]Project, 0, min(len(repos), limit))
	for _, repo := range repos {
		if len(projects) >= limit {
			break
		}
		if repo.Fork {
			continue
		}
		projects = append(projects, ToProject(repo, len(projects)))
	}
	return projects
}

// ToProject maps a repository to its card. index is the card's position in
// the grid and only selects the accent gradient.
func ToProject(repo RemoteRepository, index int) Project {
	description := repo.Description
	if description == "" {
		description = placeholderDescription
	}

	category := repo.Language
	if category == "" {
		category = fallbackCategory
	}

	tags := []string{fallbackTag}
	switch {
	case len(repo.Topics) > 0:
		tags = append([]string(nil), repo.Topics[:min(len(repo.Topics), maxTags)]...)
	case repo.Language != "":
		tags = []string{repo.Language}
	}

	demo := repo.Homepage
	if demo == "" {
		demo = repo.HTMLURL
	}

	return Project{
		Title:       FormatTitle(repo.Name),
		Description: description,
		Category:    category,
		Tags:        tags,
		SourceURL:   repo.HTMLURL,
		DemoURL:     demo,
		Stars:       repo.Stars,
		Accent:      accents[index%len(accents)],
	}
}

// FormatTitle turns a repository name like "go-mail_client" into "go mail client".
func FormatTitle(name string) string {
	return strings.NewReplacer("-", " ", "_", " ").Replace(name)
}
