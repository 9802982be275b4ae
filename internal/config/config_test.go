package config

import (
	"os"
	"path/filepath"
	"testing"
)

func useTempConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("FINPORTAL_WAREHOUSE_DRIVER", "")
	t.Setenv("FINPORTAL_WAREHOUSE_TABLE", "")
	t.Setenv("FINPORTAL_SQLITE_PATH", "")
	SetPath("")
	return dir
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	useTempConfig(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Warehouse.Table != "financial_submissions" {
		t.Errorf("Table = %q", cfg.Warehouse.Table)
	}
	if cfg.CacheTTL().Seconds() != 30 {
		t.Errorf("CacheTTL = %s, want 30s", cfg.CacheTTL())
	}
	if len(cfg.Form.BusinessUnits) != 6 || cfg.Form.BusinessUnits[0] != "Sales" {
		t.Errorf("BusinessUnits = %v", cfg.Form.BusinessUnits)
	}
	if Exists() {
		t.Error("Exists() = true with no file on disk")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	useTempConfig(t)

	cfg := DefaultConfig()
	cfg.Warehouse.Driver = "databricks"
	cfg.Cache.TTLSec = 45
	cfg.Form.BusinessUnits = []string{"Sales", "Legal"}
	if err := Save(cfg); err != nil {
		t.Fatal(err)
	}

	got, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.Warehouse.Driver != "databricks" || got.Cache.TTLSec != 45 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if len(got.Form.BusinessUnits) != 2 || got.Form.BusinessUnits[1] != "Legal" {
		t.Fatalf("BusinessUnits = %v", got.Form.BusinessUnits)
	}
}

func TestLoadNormalizesZeroValues(t *testing.T) {
	useTempConfig(t)

	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		t.Fatal(err)
	}
	raw := "[cache]\nttl_sec = 0\n[warehouse]\ndriver = \"\"\n"
	if err := os.WriteFile(Path(), []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.TTLSec != 30 || cfg.Warehouse.Driver != "sqlite" {
		t.Fatalf("normalize did not restore defaults: %+v", cfg)
	}
}

func TestEnvOverridesDriver(t *testing.T) {
	useTempConfig(t)
	t.Setenv("FINPORTAL_WAREHOUSE_DRIVER", "Databricks")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Warehouse.Driver != "databricks" {
		t.Fatalf("Driver = %q, want databricks", cfg.Warehouse.Driver)
	}
}

func TestSetPath(t *testing.T) {
	useTempConfig(t)
	custom := filepath.Join(t.TempDir(), "alt.toml")
	SetPath(custom)
	defer SetPath("")

	if Path() != custom {
		t.Fatalf("Path = %q, want %q", Path(), custom)
	}
	if SecretsPath() != filepath.Join(filepath.Dir(custom), "secrets.toml") {
		t.Fatalf("SecretsPath = %q", SecretsPath())
	}
}

func TestSecretsFileThenEnv(t *testing.T) {
	useTempConfig(t)
	for _, k := range []string{
		"FINPORTAL_WAREHOUSE_HOST", "DATABRICKS_HOST",
		"FINPORTAL_WAREHOUSE_HTTP_PATH", "DATABRICKS_HTTP_PATH",
		"FINPORTAL_WAREHOUSE_TOKEN", "DATABRICKS_TOKEN",
	} {
		t.Setenv(k, "")
	}

	err := SaveSecrets(Secrets{Host: "adb-1.azuredatabricks.net", HTTPPath: "/sql/1.0/warehouses/abc", Token: "dapi-file"})
	if err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(SecretsPath())
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("secrets mode = %v, want 0600", info.Mode().Perm())
	}

	t.Setenv("DATABRICKS_TOKEN", "dapi-env")

	s, err := LoadSecrets()
	if err != nil {
		t.Fatal(err)
	}
	if s.Host != "adb-1.azuredatabricks.net" || s.HTTPPath != "/sql/1.0/warehouses/abc" {
		t.Fatalf("file values lost: %+v", s)
	}
	if s.Token != "dapi-env" {
		t.Fatalf("Token = %q, want env override", s.Token)
	}
	if !s.Complete() {
		t.Fatal("Complete() = false")
	}
}

func TestMask(t *testing.T) {
	tests := map[string]string{
		"":                         "(not set)",
		"abc":                      "****",
		"abcdef":                   "ab...",
		"dapi0123456789abcdef0123": "dapi01...0123",
	}
	for in, want := range tests {
		if got := Mask(in); got != want {
			t.Errorf("Mask(%q) = %q, want %q", in, got, want)
		}
	}
}
