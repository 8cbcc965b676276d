package main

import (
	"fmt"

	"github.com/listerdale/chatbot/internal/infrastructure/config"
	"github.com/listerdale/chatbot/internal/infrastructure/storage"
	"github.com/spf13/cobra"
)

func newMigrateCmd(cfgFn func() *config.Config) *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply (or roll back) the database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := cfgFn()
			db, err := storage.OpenDB(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			out := cmd.OutOrStdout()
			if down {
				if err := storage.MigrateDown(db); err != nil {
					return err
				}
				fmt.Fprintf(out, "Rolled back all migrations on %s\n", cfg.Database.Path)
				return nil
			}

			version, err := storage.Migrate(db)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Database %s at schema version %d\n", cfg.Database.Path, version)
			return nil
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "Roll back all migrations")
	return cmd
}
