// Package site holds the portfolio owner's page content.
package site

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed profile.yaml
var defaultProfile []byte

const (
	defaultRoleInterval    = 3000
	defaultScrollThreshold = 50
)

// Link is a labeled navigation or social link.
type Link struct {
	Name string `yaml:"name"`
	Href string `yaml:"href"`
}

// Service is one card of the services grid.
type Service struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Accent      string `yaml:"accent"`
	Wide        bool   `yaml:"wide"`
}

// Contact is the owner's public contact information.
type Contact struct {
	Email    string `yaml:"email"`
	Location string `yaml:"location"`
	Phone    string `yaml:"phone"`
	Blurb    string `yaml:"blurb"`
}

// Profile is everything on the page that is not loaded at request time.
type Profile struct {
	Owner             string    `yaml:"owner"`
	Greeting          string    `yaml:"greeting"`
	Headline          string    `yaml:"headline"`
	Bio               string    `yaml:"bio"`
	Roles             []string  `yaml:"roles"`
	RoleIntervalMS    int       `yaml:"role_interval_ms"`
	ScrollThresholdPX int       `yaml:"scroll_threshold_px"`
	Nav               []Link    `yaml:"nav"`
	Socials           []Link    `yaml:"socials"`
	Services          []Service `yaml:"services"`
	Contact           Contact   `yaml:"contact"`
	RepositoriesURL   string    `yaml:"repositories_url"`
}

// Default returns the embedded profile.
func Default() (*Profile, error) {
	return Parse(defaultProfile)
}

// Load reads a profile from path, or the embedded profile when path is empty.
func Load(path string) (*Profile, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes and validates a YAML profile.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}

	if p.RoleIntervalMS <= 0 {
		p.RoleIntervalMS = defaultRoleInterval
	}
	if p.ScrollThresholdPX <= 0 {
		p.ScrollThresholdPX = defaultScrollThreshold
	}

	if err := p.validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Profile) validate() error {
	var errs []error
	if p.Owner == "" {
		errs = append(errs, errors.New("owner is required"))
	}
	if p.Contact.Email == "" {
		errs = append(errs, errors.New("contact.email is required"))
	}
	if len(p.Roles) == 0 {
		errs = append(errs, errors.New("at least one role is required"))
	}
	return errors.Join(errs...)
}

// RoleInterval is how long each role stays on screen.
func (p *Profile) RoleInterval() time.Duration {
	return time.Duration(p.RoleIntervalMS) * time.Millisecond
}

// RoleAt returns the role at index i modulo the number of roles.
func (p *Profile) RoleAt(i int) string {
	n := len(p.Roles)
	return p.Roles[((i%n)+n)%n]
}
