package cmd

import (
	"encoding/json"
	"fmt"

	"contract-manager/core/storage"
	"contract-manager/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check storage folders and database schema",
	Long:  `Runs the storage structure check and the schema check concurrently and prints the combined report as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newIntegrityService(true)
		if err != nil {
			return err
		}

		report := svc.CheckAll(cmd.Context())
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))

		if !report.Healthy() {
			logg.Warn("Integrity issues found")
			return fmt.Errorf("integrity check failed")
		}
		return nil
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the bucket folder structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, logg, err := newIntegrityService(true)
		if err != nil {
			return err
		}

		logg.Info("Checking folder structure...")
		missing, err := svc.CheckStructure(ctx)
		if err != nil {
			return fmt.Errorf("structure check failed: %w", err)
		}
		if len(missing) == 0 {
			logg.Info("Structure is intact.")
			return nil
		}

		logg.Warn("Missing folders detected", zap.Strings("missing", missing))
		if !fixFlag {
			logg.Info("Run with --fix to create missing folders.")
			return nil
		}
		if err := svc.FixStructure(ctx, missing); err != nil {
			return fmt.Errorf("failed to fix structure: %w", err)
		}
		logg.Info("Structure fixed successfully.")
		return nil
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Compare the database tables with the models",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, logg, err := newIntegrityService(false)
		if err != nil {
			return err
		}

		report, err := svc.CheckSchema()
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}
		if report.Matched {
			logg.Info("Schema matches the models.")
			return nil
		}

		for table, tbl := range report.Tables {
			if tbl.Status == "ok" {
				continue
			}
			if len(tbl.MissingColumns) > 0 {
				logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
			}
			if len(tbl.TypeMismatches) > 0 {
				logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tbl.TypeMismatches))
			}
		}
		for _, e := range report.Errors {
			logg.Error("Inspection Error", zap.String("error", e))
		}
		return fmt.Errorf("schema mismatches found")
	},
}

func newIntegrityService(optionalDB bool) (*integrity.Service, *zap.Logger, error) {
	cfg, logg, err := bootstrap()
	if err != nil {
		return nil, nil, err
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	db, err := connect(cfg, logg, optionalDB)
	if err != nil {
		return nil, nil, err
	}
	return integrity.NewService(client, cfg.Storage.Bucket, logg, db, schemaModels()...), logg, nil
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, schemaCmd)

	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing folders")
}
