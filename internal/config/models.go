package config

import (
	"fmt"
	"sort"
	"time"
)

// DefaultProfileName is the profile used when none is selected
const DefaultProfileName = "default"

// Registry represents the entire user configuration file.
type Registry struct {
	Version     int                 `yaml:"version"`
	Profiles    map[string]*Profile `yaml:"profiles,omitempty"` // Keyed by profile name
	Preferences *Preferences        `yaml:"preferences,omitempty"`
}

// Profile is a named customer service endpoint.
type Profile struct {
	BaseURL  string    `yaml:"base_url"`            // Collection URL, e.g. "http://localhost:8080/customerapi"
	Note     string    `yaml:"note,omitempty"`      // Free text shown by "config show"
	LastUsed time.Time `yaml:"last_used,omitempty"` // Last time the screen connected with this profile
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	ActiveProfile string `yaml:"active_profile"`      // Profile used when --profile is not given
	LogLevel      string `yaml:"log_level,omitempty"` // Used when neither flag nor env sets a level
	TimeoutSec    int    `yaml:"timeout_sec"`         // HTTP timeout; 0 keeps the transport default
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:  1,
		Profiles: make(map[string]*Profile),
		Preferences: &Preferences{
			ActiveProfile: DefaultProfileName,
		},
	}
}

// GetProfile retrieves a profile by name.
// Returns nil if the profile doesn't exist.
func (r *Registry) GetProfile(name string) *Profile {
	return r.Profiles[name]
}

// SetProfileURL creates or updates a profile's base URL.
func (r *Registry) SetProfileURL(name, baseURL string) *Profile {
	if r.Profiles == nil {
		r.Profiles = make(map[string]*Profile)
	}

	profile, ok := r.Profiles[name]
	if !ok {
		profile = &Profile{}
		r.Profiles[name] = profile
	}
	profile.BaseURL = baseURL
	return profile
}

// UseProfile makes name the active profile. The profile must exist.
func (r *Registry) UseProfile(name string) error {
	if _, ok := r.Profiles[name]; !ok {
		return fmt.Errorf("unknown profile %q", name)
	}
	r.ensurePreferences()
	r.Preferences.ActiveProfile = name
	return nil
}

// ActiveProfileName returns the selected profile name.
func (r *Registry) ActiveProfileName() string {
	if r.Preferences == nil || r.Preferences.ActiveProfile == "" {
		return DefaultProfileName
	}
	return r.Preferences.ActiveProfile
}

// TouchProfile records that a profile was just used.
func (r *Registry) TouchProfile(name string) {
	if p := r.Profiles[name]; p != nil {
		p.LastUsed = time.Now()
	}
}

// ProfileNames returns profile names sorted alphabetically.
func (r *Registry) ProfileNames() []string {
	names := make([]string, 0, len(r.Profiles))
	for name := range r.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ensurePreferences() {
	if r.Preferences == nil {
		r.Preferences = &Preferences{ActiveProfile: DefaultProfileName}
	}
}
