package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/prudhvinik1/boxfleet/internal/database"
)

func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Create the users, boxes, sensors and measurements tables",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if databaseURL == "" {
				databaseURL = os.Getenv("DATABASE_URL")
			}
			if databaseURL == "" {
				return errors.New("DATABASE_URL is required")
			}

			log := rootOpts.logger(cmd, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
			ctx := cmd.Context()

			pool, err := database.NewPostgresPool(ctx, databaseURL, log)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := database.Migrate(ctx, database.NewPoolBeginner(pool)); err != nil {
				return err
			}
			log.Info("schema is up to date")
			return nil
		},
	}

	cmd.Flags().StringVar(&databaseURL, "database-url", "", "postgres URL, defaults to DATABASE_URL")

	return cmd
}
