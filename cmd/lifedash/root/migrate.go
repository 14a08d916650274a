package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/madspljoensson/life-dashboard/internal/config"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			ctx := context.Background()
			_, cleanup, err := openDB(ctx, cfg.DBPath)
			if err != nil {
				return err
			}
			defer cleanup()

			fmt.Println("schema up to date")
			return nil
		},
	}
}
