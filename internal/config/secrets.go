package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Secrets are the three warehouse credentials. They are never written to
// config.toml.
type Secrets struct {
	Host     string
	HTTPPath string
	Token    string
}

type secretsFile struct {
	Databricks struct {
		Host     string `toml:"host"`
		HTTPPath string `toml:"http_path"`
		Token    string `toml:"token"`
	} `toml:"databricks"`
}

// SecretsPath returns the location of secrets.toml.
func SecretsPath() string {
	return filepath.Join(Dir(), "secrets.toml")
}

// LoadSecrets resolves credentials from secrets.toml, then a .env file in
// the working directory, then the process environment. Later sources win.
func LoadSecrets() (Secrets, error) {
	var s Secrets

	data, err := os.ReadFile(SecretsPath())
	switch {
	case err == nil:
		var f secretsFile
		if err := toml.Unmarshal(data, &f); err != nil {
			return s, fmt.Errorf("parsing secrets: %w", err)
		}
		s.Host = f.Databricks.Host
		s.HTTPPath = f.Databricks.HTTPPath
		s.Token = f.Databricks.Token
	case !os.IsNotExist(err):
		return s, fmt.Errorf("reading secrets: %w", err)
	}

	// .env is optional; existing env vars are not overwritten.
	_ = godotenv.Load()

	s.Host = firstEnv(s.Host, "FINPORTAL_WAREHOUSE_HOST", "DATABRICKS_HOST")
	s.HTTPPath = firstEnv(s.HTTPPath, "FINPORTAL_WAREHOUSE_HTTP_PATH", "DATABRICKS_HTTP_PATH")
	s.Token = firstEnv(s.Token, "FINPORTAL_WAREHOUSE_TOKEN", "DATABRICKS_TOKEN")
	return s, nil
}

// SaveSecrets writes secrets.toml with owner-only permissions.
func SaveSecrets(s Secrets) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	var f secretsFile
	f.Databricks.Host = s.Host
	f.Databricks.HTTPPath = s.HTTPPath
	f.Databricks.Token = s.Token

	out, err := os.OpenFile(SecretsPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating secrets file: %w", err)
	}
	defer out.Close()

	return toml.NewEncoder(out).Encode(f)
}

// Complete reports whether all three credentials are present.
func (s Secrets) Complete() bool {
	return s.Host != "" && s.HTTPPath != "" && s.Token != ""
}

// Mask hides all but the edges of a credential for display.
func Mask(v string) string {
	if v == "" {
		return "(not set)"
	}
	if len(v) > 16 {
		return v[:6] + "..." + v[len(v)-4:]
	}
	if len(v) > 4 {
		return v[:2] + "..."
	}
	return "****"
}

func firstEnv(fallback string, keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return fallback
}
