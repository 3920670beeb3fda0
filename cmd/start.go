package cmd

import (
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"contract-manager/core/database"
	"contract-manager/core/loader"
	"contract-manager/core/logger"
	"contract-manager/core/middleware/actor"
	"contract-manager/core/middleware/auth"
	"contract-manager/core/middleware/rayid"
	"contract-manager/core/reconcile"
	"contract-manager/core/storage"

	"contract-manager/feature/agents"
	"contract-manager/feature/backup"
	"contract-manager/feature/clients"
	"contract-manager/feature/contracts"
	"contract-manager/feature/integrity"
	"contract-manager/feature/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "contract-manager/docs/swagger"
)

// @title Contract Manager API
// @version 1.0
// @description API for managing clients, their contacts and contracts.
// @host localhost:8080
// @BasePath /

var autoMigrate bool

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the contract manager server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Configuration and logger
		cfg, logg, err := bootstrap()
		if err != nil {
			log.Fatal(err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if !cfg.Server.IsValidEnvironment() {
			logg.Fatal("Unknown environment", zap.String("environment", cfg.Server.Environment))
		}

		policy, err := reconcile.ParsePolicy(cfg.Clients.OnContactDeleteFailure)
		if err != nil {
			logg.Fatal("Invalid clients configuration", zap.Error(err))
		}

		// 2. Database (optional, data features stay disabled without it)
		db, _ := connect(cfg, logg, true)
		if db != nil {
			logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
			if autoMigrate {
				if err := database.Migrate(db, schemaModels()...); err != nil {
					logg.Fatal("Migration failed", zap.Error(err))
				}
			}
		}

		// 3. Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           cfg.Server.ReadTimeout(),
		})

		// 4. Features
		mgr := loader.NewManager()
		mgr.Register(validation.NewFeature())
		mgr.Register(agents.NewFeature(db, logg))
		clientsFeature := clients.NewFeature(db, policy, logg)
		mgr.Register(clientsFeature)
		if clientsFeature.IsEnabled() {
			logg.Info("Contact delete failure policy", zap.String("policy", string(clientsFeature.Service().Policy())))
		}
		mgr.Register(contracts.NewFeature(db, logg))
		mgr.Register(integrity.NewFeature(store, cfg.Storage.Bucket, logg, db, schemaModels()...))
		mgr.Register(backup.NewFeature(db, store, cfg.Storage.Bucket, cfg.Backup, logg))

		// 5. Middleware. RayID goes first so every log line can be traced.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger stays public
		app.Get("/swagger/*", swagger.HandlerDefault)

		apiKey := cfg.Server.ApiKey
		if !cfg.Server.RequiresApiKey() {
			apiKey = ""
		} else if apiKey == "" {
			logg.Fatal("SERVER_API_KEY is required in production")
		}
		app.Use(auth.New(auth.Config{
			ApiKey: apiKey,
			Skip: func(c *fiber.Ctx) bool {
				return strings.HasPrefix(c.Path(), "/swagger")
			},
		}))
		app.Use(actor.New())

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Serve
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port), zap.String("environment", cfg.Server.Environment))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
	startCmd.Flags().BoolVar(&autoMigrate, "migrate", false, "Create or update tables before serving")
}
