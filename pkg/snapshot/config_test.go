package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mwaltz/sitesnap/pkg/errors"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Output != "gh-pages" {
		t.Errorf("Output = %q", cfg.Output)
	}
	if cfg.ReferenceLanguage != "en" {
		t.Errorf("ReferenceLanguage = %q", cfg.ReferenceLanguage)
	}
	if cfg.HTTP.RetryAttempts != 5 {
		t.Errorf("RetryAttempts = %d", cfg.HTTP.RetryAttempts)
	}
	if len(cfg.AUR.Packages) != 1 || cfg.AUR.Packages[0] != "sunshine" {
		t.Errorf("AUR.Packages = %v", cfg.AUR.Packages)
	}
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitesnap.toml")
	content := `
output = "out"
reference_language = "de"

[http]
timeout_seconds = 30
insecure_coverage = true

[aur]
packages = ["sunshine", "moonlight"]

[endpoints]
codecov = "https://codecov.internal"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Output != "out" || cfg.ReferenceLanguage != "de" {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.HTTP.InsecureCoverage {
		t.Error("InsecureCoverage not set")
	}
	if len(cfg.AUR.Packages) != 2 {
		t.Errorf("AUR.Packages = %v", cfg.AUR.Packages)
	}
	if cfg.Endpoint("codecov") != "https://codecov.internal" {
		t.Errorf("Endpoint(codecov) = %q", cfg.Endpoint("codecov"))
	}
	if cfg.Endpoint("aur") != "" {
		t.Errorf("Endpoint(aur) = %q, want empty", cfg.Endpoint("aur"))
	}
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("not [valid"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfig(path)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}
