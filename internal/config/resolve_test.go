package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestResolve_Precedence(t *testing.T) {
	reg := NewRegistry()
	reg.SetProfileURL("default", "http://profile-host/customerapi")
	reg.SetProfileURL("other", "http://other-host/customerapi")

	tests := []struct {
		name       string
		env        string
		overrides  Overrides
		wantURL    string
		wantSource Source
	}{
		{
			name:       "flag wins",
			env:        "http://env-host/customerapi",
			overrides:  Overrides{BaseURL: "http://flag-host/customerapi/"},
			wantURL:    "http://flag-host/customerapi",
			wantSource: SourceFlag,
		},
		{
			name:       "env beats profile",
			env:        "http://env-host/customerapi",
			wantURL:    "http://env-host/customerapi",
			wantSource: SourceEnv,
		},
		{
			name:       "active profile",
			wantURL:    "http://profile-host/customerapi",
			wantSource: SourceProfile,
		},
		{
			name:       "named profile",
			overrides:  Overrides{Profile: "other"},
			wantURL:    "http://other-host/customerapi",
			wantSource: SourceProfile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(BaseURLEnvVar, tt.env)

			s, err := Resolve(reg, tt.overrides)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if s.BaseURL != tt.wantURL {
				t.Errorf("BaseURL = %v, want %v", s.BaseURL, tt.wantURL)
			}
			if s.Source != tt.wantSource {
				t.Errorf("Source = %v, want %v", s.Source, tt.wantSource)
			}
		})
	}
}

func TestResolve_Default(t *testing.T) {
	t.Setenv(BaseURLEnvVar, "")

	s, err := Resolve(nil, Overrides{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if s.BaseURL != DefaultBaseURL || s.Source != SourceDefault {
		t.Errorf("Resolve() = %v (%v), want default", s.BaseURL, s.Source)
	}
	if s.Timeout != 0 {
		t.Errorf("Timeout = %v, want 0", s.Timeout)
	}
}

func TestResolve_Errors(t *testing.T) {
	t.Setenv(BaseURLEnvVar, "")

	if _, err := Resolve(NewRegistry(), Overrides{Profile: "nope"}); err == nil {
		t.Error("Resolve() should fail for unknown profile")
	}
	if _, err := Resolve(NewRegistry(), Overrides{BaseURL: "ftp://host/x"}); err == nil {
		t.Error("Resolve() should reject non-http scheme")
	}
	if _, err := Resolve(NewRegistry(), Overrides{BaseURL: "http://"}); err == nil {
		t.Error("Resolve() should reject missing host")
	}
}

func TestResolve_Preferences(t *testing.T) {
	t.Setenv(BaseURLEnvVar, "")

	reg := NewRegistry()
	reg.Preferences.TimeoutSec = 3
	reg.Preferences.LogLevel = "debug"

	s, err := Resolve(reg, Overrides{})
	if err != nil {
		t.Fatal(err)
	}
	if s.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", s.Timeout)
	}
	if s.LogLevel != "debug" {
		t.Errorf("LogLevel = %v, want debug", s.LogLevel)
	}

	s, err = Resolve(reg, Overrides{Timeout: time.Second})
	if err != nil {
		t.Fatal(err)
	}
	if s.Timeout != time.Second {
		t.Errorf("flag Timeout = %v, want 1s", s.Timeout)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte(BaseURLEnvVar+"=http://dotenv-host/customerapi\n"), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(BaseURLEnvVar, "")
	os.Unsetenv(BaseURLEnvVar)

	if err := LoadDotEnv(envFile, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv(BaseURLEnvVar); got != "http://dotenv-host/customerapi" {
		t.Errorf("%s = %q, want value from .env", BaseURLEnvVar, got)
	}
}
