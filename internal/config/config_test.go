package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func envMap(values map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func requiredEnv() map[string]string {
	return map[string]string{
		"DATABASE_URI":           "postgres://localhost/tijara",
		"QUOTE_RENDERER_ADDRESS": "http://renderer.local",
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(nil, envMap(requiredEnv()))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.RunAddress != ":8080" {
		t.Errorf("RunAddress = %q, want :8080", cfg.RunAddress)
	}
	if cfg.Currency != "JOD" {
		t.Errorf("Currency = %q, want JOD", cfg.Currency)
	}
	if cfg.QuotePollInterval != 15*time.Second {
		t.Errorf("QuotePollInterval = %v, want 15s", cfg.QuotePollInterval)
	}
	if cfg.WorkerPoolSize != 2 {
		t.Errorf("WorkerPoolSize = %d, want 2", cfg.WorkerPoolSize)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 10s", cfg.ShutdownTimeout)
	}
	if cfg.MaxQuoteBatch != 16 {
		t.Errorf("MaxQuoteBatch = %d, want 16", cfg.MaxQuoteBatch)
	}
}

func TestLoadRequired(t *testing.T) {
	env := requiredEnv()
	delete(env, "DATABASE_URI")
	if _, err := load(nil, envMap(env)); err == nil {
		t.Error("expected error without database URI")
	}

	env = requiredEnv()
	delete(env, "QUOTE_RENDERER_ADDRESS")
	if _, err := load(nil, envMap(env)); err == nil {
		t.Error("expected error without renderer address")
	}
}

func TestLoadEnv(t *testing.T) {
	env := requiredEnv()
	env["RUN_ADDRESS"] = ":9090"
	env["CURRENCY"] = "USD"
	env["QUOTE_POLL_INTERVAL"] = "30s"
	env["WORKER_POOL_SIZE"] = "8"
	env["QUOTE_BATCH_SIZE"] = "50"
	env["STORE_NAME"] = "Tijara Security"
	env["STORE_PHONE"] = "+96265551234"

	cfg, err := load(nil, envMap(env))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.RunAddress != ":9090" {
		t.Errorf("RunAddress = %q", cfg.RunAddress)
	}
	if cfg.Currency != "USD" {
		t.Errorf("Currency = %q", cfg.Currency)
	}
	if cfg.QuotePollInterval != 30*time.Second {
		t.Errorf("QuotePollInterval = %v", cfg.QuotePollInterval)
	}
	if cfg.WorkerPoolSize != 8 {
		t.Errorf("WorkerPoolSize = %d", cfg.WorkerPoolSize)
	}
	if cfg.MaxQuoteBatch != 50 {
		t.Errorf("MaxQuoteBatch = %d", cfg.MaxQuoteBatch)
	}
	if cfg.Store.Name != "Tijara Security" || cfg.Store.Phone != "+96265551234" {
		t.Errorf("store metadata not loaded: %+v", cfg.Store)
	}
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	env := requiredEnv()
	env["RUN_ADDRESS"] = ":9090"

	args := []string{
		"-a", ":7070",
		"-d", "postgres://flaghost/tijara",
		"-r", "http://flag-renderer.local",
		"-currency", "USD",
		"-poll-interval", "1m",
		"-worker-pool", "4",
	}
	cfg, err := load(args, envMap(env))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.RunAddress != ":7070" {
		t.Errorf("RunAddress = %q, want flag value", cfg.RunAddress)
	}
	if cfg.DatabaseURI != "postgres://flaghost/tijara" {
		t.Errorf("DatabaseURI = %q", cfg.DatabaseURI)
	}
	if cfg.RendererAddress != "http://flag-renderer.local" {
		t.Errorf("RendererAddress = %q", cfg.RendererAddress)
	}
	if cfg.Currency != "USD" {
		t.Errorf("Currency = %q", cfg.Currency)
	}
	if cfg.QuotePollInterval != time.Minute {
		t.Errorf("QuotePollInterval = %v", cfg.QuotePollInterval)
	}
	if cfg.WorkerPoolSize != 4 {
		t.Errorf("WorkerPoolSize = %d", cfg.WorkerPoolSize)
	}
}

func TestLoadInvalidDurations(t *testing.T) {
	if _, err := load([]string{"-poll-interval", "often"}, envMap(requiredEnv())); err == nil {
		t.Error("expected error for invalid poll interval")
	}
	if _, err := load([]string{"-shutdown-timeout", "never"}, envMap(requiredEnv())); err == nil {
		t.Error("expected error for invalid shutdown timeout")
	}
}

func TestLoadJWTSecretFile(t *testing.T) {
	secretPath := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(secretPath, []byte("file-secret"), 0o600); err != nil {
		t.Fatalf("write secret: %v", err)
	}

	env := requiredEnv()
	env["JWT_SECRET"] = "env-secret"
	env["JWT_SECRET_FILE"] = secretPath

	cfg, err := load(nil, envMap(env))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.JWTSecret != "file-secret" {
		t.Errorf("JWTSecret = %q, want file content to win", cfg.JWTSecret)
	}

	env["JWT_SECRET_FILE"] = filepath.Join(t.TempDir(), "missing")
	if _, err := load(nil, envMap(env)); err == nil {
		t.Error("expected error for unreadable secret file")
	}
}

func TestLoadClampsNonPositive(t *testing.T) {
	env := requiredEnv()
	env["WORKER_POOL_SIZE"] = "-3"
	env["QUOTE_BATCH_SIZE"] = "0"

	cfg, err := load([]string{"-poll-interval", "-5s"}, envMap(env))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.WorkerPoolSize != 2 {
		t.Errorf("WorkerPoolSize = %d, want default", cfg.WorkerPoolSize)
	}
	if cfg.MaxQuoteBatch != 16 {
		t.Errorf("MaxQuoteBatch = %d, want default", cfg.MaxQuoteBatch)
	}
	if cfg.QuotePollInterval != 15*time.Second {
		t.Errorf("QuotePollInterval = %v, want default", cfg.QuotePollInterval)
	}
}
