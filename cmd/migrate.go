package cmd

import (
	"contract-manager/core/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	Long:  `Runs gorm auto-migration for profiles, clients, client contacts and contracts. Existing columns are never dropped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		db, err := connect(cfg, logg, false)
		if err != nil {
			return err
		}

		models := schemaModels()
		if err := database.Migrate(db, models...); err != nil {
			return err
		}
		logg.Info("Migration completed", zap.String("driver", cfg.Database.Driver), zap.Int("tables", len(models)))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
