package cmd

import (
	"fmt"

	"contract-manager/core/storage"
	"contract-manager/feature/backup"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export a database snapshot to storage",
	Long:  `Writes profiles, clients with their contacts and contracts as one JSON object to the backup folder of the bucket, then prunes old snapshots.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newBackupService()
		if err != nil {
			return err
		}

		res, err := svc.Export(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%d bytes, %d clients, %d contracts)\n", res.Key, res.Size, res.Clients, res.Contracts)
		return nil
	},
}

// backupListCmd represents the backup list command
var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newBackupService()
		if err != nil {
			return err
		}

		keys, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Fprintln(cmd.OutOrStdout(), k)
		}
		return nil
	},
}

func newBackupService() (*backup.Service, error) {
	cfg, logg, err := bootstrap()
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, err
	}

	// Listing needs no database
	db, _ := connect(cfg, logg, true)
	logg.Debug("Backup target", zap.String("bucket", cfg.Storage.Bucket), zap.String("prefix", cfg.Backup.Prefix))
	return backup.NewService(db, client, cfg.Storage.Bucket, cfg.Backup, logg), nil
}

func init() {
	RootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupListCmd)
}
