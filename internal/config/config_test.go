package config

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid config",
			config: Config{
				Port:         "8080",
				SQLiteDBPath: "./test.db",
				BackupDir:    "./backups",
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:         "abc",
				SQLiteDBPath: "./test.db",
				BackupDir:    "./backups",
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range low",
			config: Config{
				Port:         "0",
				SQLiteDBPath: "./test.db",
				BackupDir:    "./backups",
			},
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name: "invalid port - out of range high",
			config: Config{
				Port:         "70000",
				SQLiteDBPath: "./test.db",
				BackupDir:    "./backups",
			},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name: "empty sqlite path",
			config: Config{
				Port:      "8080",
				BackupDir: "./backups",
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "empty backup dir",
			config: Config{
				Port:         "8080",
				SQLiteDBPath: "./test.db",
			},
			wantErr:     true,
			errorString: "backup directory cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("expected error containing %q, got %q", tt.errorString, err.Error())
				}
			} else if err != nil {
				t.Fatalf("expected ok, got %v", err)
			}
		})
	}
}

func TestConfig_ValidateCreatesDBDirectory(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Port:         "8080",
		SQLiteDBPath: filepath.Join(dir, "nested", "data", "test.db"),
		BackupDir:    "./backups",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	// Blank env values fall back to defaults.
	t.Setenv("PORT", "")
	t.Setenv("SQLITE_DB_PATH", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("default port = %s", cfg.Port)
	}
	if cfg.SQLiteDBPath != "./data/mototrack.db" {
		t.Fatalf("default db path = %s", cfg.SQLiteDBPath)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("default log level = %v", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SQLITE_DB_PATH", "/tmp/other.db")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("port = %s", cfg.Port)
	}
	if cfg.SQLiteDBPath != "/tmp/other.db" {
		t.Fatalf("db path = %s", cfg.SQLiteDBPath)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("log level = %v", cfg.LogLevel)
	}
}
