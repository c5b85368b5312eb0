package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/banshee-data/minehint/internal/config"
	"github.com/banshee-data/minehint/internal/db"
)

func migrateCommand(args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: minehint migrate <up|down|status|version N> [-db path]")
	}
	action, args := args[0], args[1:]

	var target uint
	if action == "version" {
		if len(args) < 1 {
			return fmt.Errorf("usage: minehint migrate version <version_number>")
		}
		v, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version number %q: %w", args[0], err)
		}
		target, args = uint(v), args[1:]
	}

	fs, flags := newFlagSet("migrate", stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := flags.resolve(fs)
	if err != nil {
		return err
	}
	path := cfg.GetDBPath()
	if path == "" {
		path = config.DefaultDBPath
	}

	database, err := db.OpenDB(path)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	migrations, err := db.MigrationsFS()
	if err != nil {
		return err
	}

	switch action {
	case "up":
		if err := database.MigrateUp(migrations); err != nil {
			return err
		}
	case "down":
		if err := database.MigrateDown(migrations); err != nil {
			return err
		}
	case "version":
		if err := database.MigrateTo(migrations, target); err != nil {
			return err
		}
	case "status":
	default:
		return fmt.Errorf("unknown migrate action: %s", action)
	}

	version, dirty, err := database.MigrateVersion(migrations)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s: schema version %d", path, version)
	if dirty {
		fmt.Fprint(stdout, " (dirty)")
	}
	fmt.Fprintln(stdout)
	return nil
}
