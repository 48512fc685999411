package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	if !strings.Contains(configDir, "custdesk") {
		t.Errorf("GetConfigDir() = %v, should contain 'custdesk'", configDir)
	}

	if runtime.GOOS == "linux" && os.Getenv("XDG_CONFIG_HOME") == "" && !strings.Contains(configDir, ".config") {
		t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
	}
}

func TestGetConfigDir_XDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only applies on Linux")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}
	if configDir != filepath.Join("/tmp/xdg-test", "custdesk") {
		t.Errorf("GetConfigDir() = %v, want /tmp/xdg-test/custdesk", configDir)
	}
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}
	if reg.Profiles == nil {
		t.Error("NewRegistry().Profiles should not be nil")
	}
	if reg.ActiveProfileName() != DefaultProfileName {
		t.Errorf("ActiveProfileName() = %v, want %v", reg.ActiveProfileName(), DefaultProfileName)
	}
}

func TestRegistryProfiles(t *testing.T) {
	reg := NewRegistry()

	p1 := reg.SetProfileURL("staging", "http://staging:8080/customerapi")
	p2 := reg.SetProfileURL("staging", "http://staging:9090/customerapi")
	if p1 != p2 {
		t.Error("SetProfileURL() should update the existing profile")
	}
	if reg.GetProfile("staging").BaseURL != "http://staging:9090/customerapi" {
		t.Errorf("BaseURL = %v", reg.GetProfile("staging").BaseURL)
	}

	reg.SetProfileURL("alpha", "http://alpha/customerapi")
	names := reg.ProfileNames()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "staging" {
		t.Errorf("ProfileNames() = %v, want [alpha staging]", names)
	}

	if err := reg.UseProfile("missing"); err == nil {
		t.Error("UseProfile() should fail for unknown profile")
	}
	if err := reg.UseProfile("staging"); err != nil {
		t.Fatalf("UseProfile() error = %v", err)
	}
	if reg.ActiveProfileName() != "staging" {
		t.Errorf("ActiveProfileName() = %v, want staging", reg.ActiveProfileName())
	}
}

func TestRegistryTouchProfile(t *testing.T) {
	reg := NewRegistry()
	reg.SetProfileURL("default", "http://localhost:8080/customerapi")

	before := time.Now()
	reg.TouchProfile("default")
	reg.TouchProfile("missing")

	if reg.GetProfile("default").LastUsed.Before(before) {
		t.Error("TouchProfile() should set LastUsed")
	}
}

func TestRegistrySaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	reg := NewRegistry()
	reg.SetProfileURL("local", "http://localhost:8080/customerapi").Note = "dev server"
	if err := reg.UseProfile("local"); err != nil {
		t.Fatal(err)
	}
	reg.Preferences.TimeoutSec = 7

	if err := reg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# custdesk configuration file") {
		t.Error("saved file should start with the header comment")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should be renamed away")
	}

	loaded, err := LoadRegistryFrom(path)
	if err != nil {
		t.Fatalf("LoadRegistryFrom() error = %v", err)
	}
	if loaded.ActiveProfileName() != "local" {
		t.Errorf("ActiveProfileName() = %v, want local", loaded.ActiveProfileName())
	}
	if p := loaded.GetProfile("local"); p == nil || p.Note != "dev server" {
		t.Errorf("GetProfile(local) = %+v", p)
	}
	if loaded.Preferences.TimeoutSec != 7 {
		t.Errorf("TimeoutSec = %v, want 7", loaded.Preferences.TimeoutSec)
	}
}

func TestLoadRegistryFrom_Missing(t *testing.T) {
	reg, err := LoadRegistryFrom(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadRegistryFrom() error = %v", err)
	}
	if reg.Version != 1 {
		t.Errorf("Version = %v, want 1", reg.Version)
	}
}

func TestLoadRegistryFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "version: [unclosed"},
		{"wrong version", "version: 2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadRegistryFrom(path); err == nil {
				t.Error("LoadRegistryFrom() should fail")
			}
		})
	}
}

func TestLoadRegistryFrom_FillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("version: 1\n"), 0600); err != nil {
		t.Fatal(err)
	}

	reg, err := LoadRegistryFrom(path)
	if err != nil {
		t.Fatalf("LoadRegistryFrom() error = %v", err)
	}
	if reg.Profiles == nil || reg.Preferences == nil {
		t.Error("missing sections should be initialised")
	}
}
