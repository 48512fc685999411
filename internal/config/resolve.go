package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// BaseURLEnvVar overrides the profile's base URL
	BaseURLEnvVar = "CUSTDESK_API_URL"

	// DefaultBaseURL is used when nothing else is configured
	DefaultBaseURL = "http://localhost:8080/customerapi"
)

// Source names where a resolved base URL came from
type Source string

const (
	SourceFlag    Source = "flag"
	SourceEnv     Source = "env"
	SourceProfile Source = "profile"
	SourceDefault Source = "default"
)

// Overrides carries command-line values that take precedence over the file.
type Overrides struct {
	BaseURL string
	Profile string
	Timeout time.Duration
}

// Settings is the effective configuration for one run.
type Settings struct {
	BaseURL  string
	Source   Source
	Profile  string
	Timeout  time.Duration
	LogLevel string
	Registry *Registry
}

// LoadDotEnv loads variables from the given .env files, or ./.env when none
// are given. Existing environment variables win. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Resolve picks the base URL: flag, then CUSTDESK_API_URL, then the selected
// profile, then DefaultBaseURL.
func Resolve(registry *Registry, o Overrides) (*Settings, error) {
	if registry == nil {
		registry = NewRegistry()
	}

	s := &Settings{
		Profile:  o.Profile,
		Timeout:  o.Timeout,
		Registry: registry,
	}
	if s.Profile == "" {
		s.Profile = registry.ActiveProfileName()
	}

	if registry.Preferences != nil {
		if s.Timeout == 0 && registry.Preferences.TimeoutSec > 0 {
			s.Timeout = time.Duration(registry.Preferences.TimeoutSec) * time.Second
		}
		s.LogLevel = registry.Preferences.LogLevel
	}

	profile := registry.GetProfile(s.Profile)
	if o.Profile != "" && profile == nil {
		return nil, fmt.Errorf("unknown profile %q", o.Profile)
	}

	switch {
	case o.BaseURL != "":
		s.BaseURL, s.Source = o.BaseURL, SourceFlag
	case os.Getenv(BaseURLEnvVar) != "":
		s.BaseURL, s.Source = os.Getenv(BaseURLEnvVar), SourceEnv
	case profile != nil && profile.BaseURL != "":
		s.BaseURL, s.Source = profile.BaseURL, SourceProfile
	default:
		s.BaseURL, s.Source = DefaultBaseURL, SourceDefault
	}

	if err := ValidateBaseURL(s.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL from %s: %w", s.Source, err)
	}
	s.BaseURL = strings.TrimRight(s.BaseURL, "/")

	return s, nil
}

// ValidateBaseURL checks that raw is an absolute http(s) URL.
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}
	return nil
}
