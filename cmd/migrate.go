package cmd

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	config "realestate-crm.com/realestate-crm/internal/configs"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := bootstrap()

		db, err := config.OpenDatabase(cfg.DatabaseDriver, cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		if err := config.Migrate(db); err != nil {
			return err
		}

		log.WithField("driver", cfg.DatabaseDriver).Info("schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
