package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleConfig = `
server:
  port: 8080
  logJson: true
database:
  driver: mysql
  host: localhost
  port: 3306
  user: app
  password: secret
  name: streamfit
openai:
  apiKey: sk-test
  model: gpt-4o-mini
twitch:
  dataBaseUrl: https://data.example.com
  searchBaseUrl: https://search.example.com
auth:
  apiKeys:
    user-1: key-1
rateLimit:
  capacity: 10
  refillRate: 2
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 || !cfg.Server.LogJSON {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Errorf("model = %s", cfg.OpenAI.Model)
	}
	if cfg.Auth.APIKeys["user-1"] != "key-1" {
		t.Errorf("apiKeys = %v", cfg.Auth.APIKeys)
	}
	if cfg.RateLimit.Capacity != 10 {
		t.Errorf("rateLimit = %+v", cfg.RateLimit)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestMySQLDSN(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatal(err)
	}
	want := "app:secret@tcp(localhost:3306)/streamfit?parseTime=true&charset=utf8mb4&loc=UTC"
	if got := cfg.MySQLDSN(); got != want {
		t.Errorf("dsn = %s, want %s", got, want)
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatal(err)
	}
	want := "host=localhost port=3306 user=app password=secret dbname=streamfit sslmode=disable"
	if got := cfg.PostgresDSN(); got != want {
		t.Errorf("dsn = %s, want %s", got, want)
	}
}
