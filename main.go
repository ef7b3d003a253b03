package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"github.com/velog-io/velog-api/config"
	"github.com/velog-io/velog-api/internal/auth"
	"github.com/velog-io/velog-api/internal/database"
	"github.com/velog-io/velog-api/internal/repository"
	"github.com/velog-io/velog-api/server"
)

func main() {
	app := &cli.App{
		Name:  config.AppName,
		Usage: "velog GraphQL API",
		Commands: []*cli.Command{
			{
				Name:   "migrate",
				Usage:  "Run database migrations",
				Action: migrate,
			},
			{
				Name:   "server",
				Usage:  "Start the application server",
				Action: runServer,
			},
			{
				Name:  "token",
				Usage: "Mint an access token for a user, for local development",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "user-id", Usage: "id of the user to sign in as", Required: true},
				},
				Action: mintToken,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.InitConfig()
	if err != nil {
		return nil, fmt.Errorf("config initialization failed: %w", err)
	}
	if cfg == nil {
		return nil, fmt.Errorf("config is empty")
	}
	return cfg, nil
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	velogDB, err := database.InitVelogDatabase(cfg.DatabaseConfig)
	if err != nil {
		return nil, fmt.Errorf("database initialization failed: %w", err)
	}
	return velogDB, nil
}

func migrate(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	velogDB, err := openDatabase(cfg)
	if err != nil {
		return err
	}

	if err := repository.MigrateDB(cfg.DatabaseConfig, velogDB); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}
	log.Println("Database migration completed successfully")
	return nil
}

func runServer(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	velogDB, err := openDatabase(cfg)
	if err != nil {
		return err
	}

	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("velog-api starting up...")

	srv, err := server.NewServer(cfg, velogDB)
	if err != nil {
		return fmt.Errorf("server setup failed: %w", err)
	}

	if err := srv.Run(); err != nil {
		return fmt.Errorf("server startup failed: %w", err)
	}

	log.Println("Shutdown complete")
	return nil
}

func mintToken(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	token, err := auth.NewTokenManager(cfg.AuthConfig).Generate(c.String("user-id"))
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
