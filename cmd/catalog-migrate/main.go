package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/iyhunko/catalog-service/internal/config"
	"github.com/iyhunko/catalog-service/internal/logger"
	"github.com/iyhunko/catalog-service/internal/repository/sql"
)

const migrationsPathFlag = "migrations-path"

// Schema operations, replaced in tests.
var (
	runMigrations      = sql.RunMigrations
	rollbackMigrations = sql.RollbackMigrations
	migrationVersion   = sql.MigrationVersion
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	// built per command tree: cobraflags binds each flag value once
	flags := map[string]cobraflags.Flag{
		migrationsPathFlag: &cobraflags.StringFlag{
			Name:       migrationsPathFlag,
			Value:      "",
			Usage:      "Directory with migration files (overrides MIGRATIONS_PATH)",
			Persistent: true,
		},
	}

	rootCmd := &cobra.Command{
		Use:          "catalog-migrate",
		Short:        "Manage the catalog database schema",
		SilenceUsage: true,
	}
	cobraflags.RegisterMap(rootCmd, flags)

	loadDBConfig := func() (config.DB, error) {
		conf, err := config.LoadFromEnv()
		if err != nil {
			return config.DB{}, err
		}
		slog.SetDefault(logger.InitJSONLogger(conf.DebugMode))

		if path := flags[migrationsPathFlag].GetString(); path != "" {
			conf.Database.MigrationsPath = path
		}
		return conf.Database, nil
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return upCommand(cmd, loadDBConfig)
			},
		},
		&cobra.Command{
			Use:   "down [steps]",
			Short: "Roll back applied migrations (default 1)",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return downCommand(cmd, args, loadDBConfig)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the applied schema version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return versionCommand(cmd, loadDBConfig)
			},
		},
	)
	return rootCmd
}

func upCommand(cmd *cobra.Command, loadDBConfig func() (config.DB, error)) error {
	dbConf, err := loadDBConfig()
	if err != nil {
		return err
	}
	if err := runMigrations(dbConf); err != nil {
		return err
	}
	cmd.Println("migrations applied")
	return nil
}

func downCommand(cmd *cobra.Command, args []string, loadDBConfig func() (config.DB, error)) error {
	steps := 1
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid steps %q: %w", args[0], err)
		}
		steps = n
	}

	dbConf, err := loadDBConfig()
	if err != nil {
		return err
	}
	if err := rollbackMigrations(dbConf, steps); err != nil {
		return err
	}
	cmd.Printf("rolled back %d migration(s)\n", steps)
	return nil
}

func versionCommand(cmd *cobra.Command, loadDBConfig func() (config.DB, error)) error {
	dbConf, err := loadDBConfig()
	if err != nil {
		return err
	}
	version, dirty, ok, err := migrationVersion(dbConf)
	if err != nil {
		return err
	}
	if !ok {
		cmd.Println("no migrations applied")
		return nil
	}
	cmd.Printf("version %d (dirty: %t)\n", version, dirty)
	return nil
}
