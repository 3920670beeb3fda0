package cmd

import (
	"fmt"
	"os"

	"contract-manager/core/config"
	"contract-manager/core/database"
	"contract-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "contract-manager",
	Short: "Contract Manager Service",
	Long: `Contract Manager keeps the client registry, client contacts and the
contract pipeline of the sales agents. It validates VAT numbers and IBANs and
exports snapshots to S3 compatible storage.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Console encoding with ISO8601 timestamps reads better on a terminal
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

// bootstrap loads the configuration and builds the logger every command needs.
func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logg, nil
}

// connect opens the database. With optional set a failure is only logged.
func connect(cfg *config.Config, logg *zap.Logger, optional bool) (*gorm.DB, error) {
	db, err := database.Connect(cfg.Database)
	if err == nil {
		return db, nil
	}
	if !optional {
		return nil, fmt.Errorf("database connection required: %w", err)
	}
	logg.Warn("Optional database connection failed", zap.Error(err))
	return nil, nil
}
