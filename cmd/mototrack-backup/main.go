// Command mototrack-backup exports or imports a backup of the transaction
// database as a versioned JSON file.
//
// Usage:
//
//	mototrack-backup -export [path]   write a backup (default: dated file in BACKUP_DIR)
//	mototrack-backup -import <path>   replace the database with a backup file
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mototrack/internal/backup"
	"mototrack/internal/cli"
	"mototrack/internal/config"
)

func main() {
	exportFlag := flag.Bool("export", false, "export the database to a backup file")
	importFlag := flag.Bool("import", false, "replace the database with a backup file")
	flag.Parse()

	if *exportFlag == *importFlag {
		fmt.Fprintln(os.Stderr, "exactly one of -export or -import is required")
		flag.Usage()
		os.Exit(2)
	}

	cli.LoadEnvFile()

	cfg := config.Load()
	logger := cli.SetupLogger(cfg.LogLevel, "backup")
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	ctx := context.Background()

	if *exportFlag {
		path := flag.Arg(0)
		if path == "" {
			path = filepath.Join(cfg.BackupDir, backup.DefaultFileName(time.Now()))
		}
		written, err := backup.ExportToFile(ctx, repo, path)
		if err != nil {
			logger.Error("Export failed", "error", err, "path", path)
			os.Exit(1)
		}
		fmt.Println(written)
		return
	}

	path := flag.Arg(0)
	if path == "" {
		fmt.Fprintln(os.Stderr, "-import requires a backup file path")
		os.Exit(2)
	}
	if err := backup.ImportFromFile(ctx, repo, path); err != nil {
		logger.Error("Import failed", "error", err, "path", path)
		os.Exit(1)
	}
	logger.Info("Backup imported", "path", path)
}
