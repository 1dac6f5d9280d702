package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Black-And-White-Club/belote-bot/app"
	leaderboardservice "github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard/application"
	leaderboarddb "github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard/infrastructure/repositories"
	leaderboardterminal "github.com/Black-And-White-Club/belote-bot/app/modules/leaderboard/infrastructure/terminal"
	"github.com/Black-And-White-Club/belote-bot/config"
	"github.com/Black-And-White-Club/belote-bot/pkg/jwt"
	"github.com/Black-And-White-Club/belote-bot/pkg/observability"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	cliApp := &cli.App{
		Name:  "belote-bot",
		Usage: "Belote score keeping service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_FILE"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			tokenCommand(),
			leaderboardCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API and the event consumers",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Usage: "log at debug level", EnvVars: []string{"DEBUG"}},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			obs := observability.New(observability.Config{
				Environment: cfg.Observability.Environment,
				Debug:       c.Bool("debug"),
			})

			ctx, stop := app.WithShutdownSignals(c.Context)
			defer stop()

			application, err := app.NewApp(ctx, cfg, obs)
			if err != nil {
				return err
			}
			defer func() {
				if err := application.Close(); err != nil {
					obs.Logger.Error("Shutdown finished with errors", "error", err)
				}
			}()

			return application.Run(ctx)
		},
	}
}

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "issue an API token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "subject", Value: "cli", Usage: "who the token is for"},
			&cli.StringFlag{Name: "role", Value: string(jwt.RoleScorer), Usage: "scorer or admin"},
			&cli.DurationFlag{Name: "ttl", Value: 30 * 24 * time.Hour, Usage: "token lifetime"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if cfg.JWT.Secret == "" {
				return fmt.Errorf("JWT secret is not configured")
			}
			role, err := jwt.ParseRole(c.String("role"))
			if err != nil {
				return err
			}
			token, err := jwt.NewService(cfg.JWT.Secret).GenerateToken(c.String("subject"), role, c.Duration("ttl"))
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}
			fmt.Fprintln(c.App.Writer, token)
			return nil
		},
	}
}

func leaderboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "leaderboard",
		Usage: "print the current standings",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			db := app.OpenDB(cfg.Postgres.DSN)
			defer db.Close()

			obs := observability.NewNoop(slog.New(slog.NewTextHandler(io.Discard, nil)))
			service := leaderboardservice.NewLeaderboardService(leaderboarddb.NewRepository(), obs.Logger, obs.Metrics, obs.Tracer, db)

			standings, err := service.Standings(c.Context)
			if err != nil {
				return err
			}
			fmt.Fprint(c.App.Writer, leaderboardterminal.RenderStandings(standings))
			return nil
		},
	}
}
