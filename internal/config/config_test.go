package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultsAreValid(t *testing.T) {
	_, res := NormalizeAndValidate(Default())
	if !res.OK() {
		t.Fatalf("default config invalid: %v", res.Errors)
	}
}

func TestEnsureUserConfigWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	path, err := EnsureUserConfig(dir)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Listing.MaxPageSize != 100 || cfg.App.Port != Default().App.Port {
		t.Fatalf("cfg = %+v", cfg)
	}

	// second call keeps the existing file
	if err := os.WriteFile(path, []byte("app:\n  port: 9000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := EnsureUserConfig(dir); err != nil {
		t.Fatal(err)
	}
	cfg, _ = Load(path)
	if cfg.App.Port != 9000 || cfg.Listing.DefaultPageSize != 10 {
		t.Fatalf("overlay on defaults failed: %+v", cfg)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("JB_TEST_SECRET", "abcdefghijklmnopqrstuvwxyz")
	path := filepath.Join(t.TempDir(), "config.yml")
	body := "auth:\n  jwt_secret: ${JB_TEST_SECRET}\n  keyring_account: ${JB_TEST_UNSET}\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Auth.JWTSecret != "abcdefghijklmnopqrstuvwxyz" {
		t.Fatalf("secret = %q", cfg.Auth.JWTSecret)
	}
	if cfg.Auth.KeyringAccount != "${JB_TEST_UNSET}" {
		t.Fatalf("unset var = %q", cfg.Auth.KeyringAccount)
	}
}

func TestNormalizeAndValidate(t *testing.T) {
	cfg := Default()
	cfg.App.AllowedOrigins = []string{" http://a.test/ ", "http://A.test", ""}
	cfg.Listing.DefaultPageSize = 200
	cfg.Auth.JWTSecret = "short"

	out, res := NormalizeAndValidate(cfg)
	if len(out.App.AllowedOrigins) != 1 || out.App.AllowedOrigins[0] != "http://a.test" {
		t.Fatalf("origins = %v", out.App.AllowedOrigins)
	}
	joined := strings.Join(res.Errors, "\n")
	if !strings.Contains(joined, "default_page_size") || !strings.Contains(joined, "jwt_secret") {
		t.Fatalf("errors = %v", res.Errors)
	}
	if err := SaveAtomic(filepath.Join(t.TempDir(), "c.yml"), cfg); err == nil {
		t.Fatal("SaveAtomic accepted an invalid config")
	}
}
