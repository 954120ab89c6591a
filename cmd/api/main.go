package main

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yigit/launchpad/internal/pkg/logger"
	"github.com/yigit/launchpad/internal/server"
)

// @title Launchpad API
// @version 1.0
// @description API for the Launchpad startup marketplace

// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	configFlag := &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Value:   "configs/config.yaml",
		Usage:   "path to the YAML configuration file",
		EnvVars: []string{"LAUNCHPAD_CONFIG"},
	}

	app := &cli.App{
		Name:  "launchpad",
		Usage: "startup marketplace API",
		Flags: []cli.Flag{configFlag},
		// Serving is the default when no command is given.
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run migrations and start the HTTP server",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "apply pending database migrations and exit",
				Action: func(c *cli.Context) error {
					if err := server.Migrate(c.Context, c.String("config")); err != nil {
						return err
					}
					logger.Info().Msg("Migrations finished.")
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error().Err(err).Msg("Application failed")
		os.Exit(1)
	}
}

func serve(c *cli.Context) error {
	srv, err := server.NewServer(c.String("config"))
	if err != nil {
		return err
	}

	if err := srv.Run(); err != nil {
		return err
	}

	logger.Info().Msg("Application finished gracefully.")
	return nil
}
