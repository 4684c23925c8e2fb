package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/bizadmin/backend/internal/infrastructure/config"
	"github.com/bizadmin/backend/internal/infrastructure/logger"
	"github.com/bizadmin/backend/internal/infrastructure/migration"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const defaultMigrationsPath = "migrations"

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: migrate [flags] <command>

Commands:
  up              Apply all pending migrations
  down            Roll back all migrations
  steps <n>       Apply n migrations (negative rolls back)
  version         Print current migration version
  force <v>       Force version without running migrations

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	path := flag.String("path", defaultMigrationsPath, "directory containing migration files")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	migrator, err := migration.New(db, *path, log)
	if err != nil {
		log.Fatal("Failed to initialize migrator", zap.Error(err))
	}
	defer func() {
		_ = migrator.Close()
	}()

	switch cmd := flag.Arg(0); cmd {
	case "up":
		err = migrator.Up()
	case "down":
		err = migrator.Down()
	case "steps":
		if flag.NArg() < 2 {
			log.Fatal("steps requires a count")
		}
		n, parseErr := strconv.Atoi(flag.Arg(1))
		if parseErr != nil {
			log.Fatal("Invalid step count", zap.String("arg", flag.Arg(1)))
		}
		err = migrator.Steps(n)
	case "version":
		v, dirty, verErr := migrator.Version()
		if verErr != nil {
			log.Fatal("Failed to read version", zap.Error(verErr))
		}
		log.Info("Migration version", zap.Uint("version", v), zap.Bool("dirty", dirty))
	case "force":
		if flag.NArg() < 2 {
			log.Fatal("force requires a version")
		}
		v, parseErr := strconv.Atoi(flag.Arg(1))
		if parseErr != nil {
			log.Fatal("Invalid version", zap.String("arg", flag.Arg(1)))
		}
		err = migrator.Force(v)
	default:
		log.Fatal("Unknown command", zap.String("command", cmd))
	}

	if err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}
	log.Info("Done")
}
