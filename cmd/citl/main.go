package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/uptrace/bun"
	"github.com/urfave/cli/v2"

	"github.com/Black-And-White-Club/citl/app"
	"github.com/Black-And-White-Club/citl/config"
	"github.com/Black-And-White-Club/citl/internal/database"
	"github.com/Black-And-White-Club/citl/internal/observability"
	"github.com/Black-And-White-Club/citl/pkg/jwt"
)

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:  "citl",
		Usage: "league scorekeeper",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CITL_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			tokenCommand(),
		},
	}
}

// setup loads the config and builds logging and metrics.
func setup(c *cli.Context) (*config.Config, observability.Observability, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, observability.Observability{}, fmt.Errorf("failed to load config: %w", err)
	}
	obs, err := observability.New(observability.Config{
		Environment:    cfg.Observability.Environment,
		LogLevel:       cfg.Observability.LogLevel,
		MetricsEnabled: cfg.Observability.MetricsEnabled,
	}, os.Stdout)
	if err != nil {
		return nil, observability.Observability{}, err
	}
	return cfg, obs, nil
}

func openDB(c *cli.Context) (*bun.DB, observability.Observability, *config.Config, error) {
	cfg, obs, err := setup(c)
	if err != nil {
		return nil, obs, nil, err
	}
	db, err := database.Open(cfg.Database.Driver, cfg.Database.DSN, obs.Logger)
	if err != nil {
		return nil, obs, nil, err
	}
	return db, obs, cfg, nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the web server and event consumers",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "migrate", Usage: "apply pending migrations before serving"},
		},
		Action: func(c *cli.Context) error {
			db, obs, cfg, err := openDB(c)
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			if c.Bool("migrate") {
				if err := database.Migrate(ctx, db); err != nil {
					return err
				}
			}

			application, err := app.Initialize(ctx, cfg, obs, db)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			defer func() {
				if err := application.Close(); err != nil {
					obs.Logger.Error("Shutdown incomplete", "error", err)
				}
			}()

			return application.Run(ctx)
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: withMigrators(func(c *cli.Context, migrators []database.ModuleMigrator) error {
					// Every module shares the bun_migrations table.
					return migrators[0].Migrator.Init(c.Context)
				}),
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: withMigrators(func(c *cli.Context, migrators []database.ModuleMigrator) error {
					for _, m := range migrators {
						group, err := m.Migrator.Migrate(c.Context)
						if err != nil {
							return fmt.Errorf("module %s: %w", m.Name, err)
						}
						if group.IsZero() {
							fmt.Printf("No new migrations to run for module: %s\n", m.Name)
						} else {
							fmt.Printf("Migrated module: %s to %s\n", m.Name, group)
						}
					}
					return nil
				}),
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: withMigrators(func(c *cli.Context, migrators []database.ModuleMigrator) error {
					// Reverse order so dependent tables go first.
					for i := len(migrators) - 1; i >= 0; i-- {
						m := migrators[i]
						group, err := m.Migrator.Rollback(c.Context)
						if err != nil {
							return fmt.Errorf("module %s: %w", m.Name, err)
						}
						if group.IsZero() {
							fmt.Printf("No groups to roll back for module: %s\n", m.Name)
						} else {
							fmt.Printf("Rolled back module: %s to %s\n", m.Name, group)
						}
					}
					return nil
				}),
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: withMigrators(func(c *cli.Context, migrators []database.ModuleMigrator) error {
					for _, m := range migrators {
						ms, err := m.Migrator.MigrationsWithStatus(c.Context)
						if err != nil {
							return fmt.Errorf("module %s: %w", m.Name, err)
						}
						fmt.Printf("%s: migrations %s\n", m.Name, ms)
						fmt.Printf("%s: unapplied %s\n", m.Name, ms.Unapplied())
						fmt.Printf("%s: last group %s\n", m.Name, ms.LastGroup())
					}
					return nil
				}),
			},
			{
				Name:      "create_go",
				Usage:     "create Go migration",
				ArgsUsage: "<module> <name...>",
				Action: withMigrators(func(c *cli.Context, migrators []database.ModuleMigrator) error {
					module := c.Args().First()
					for _, m := range migrators {
						if m.Name != module {
							continue
						}
						mf, err := m.Migrator.CreateGoMigration(c.Context, strings.Join(c.Args().Tail(), "_"))
						if err != nil {
							return err
						}
						fmt.Printf("Created migration for module %s: %s (%s)\n", module, mf.Name, mf.Path)
						return nil
					}
					return fmt.Errorf("invalid module name: %q", module)
				}),
			},
		},
	}
}

func withMigrators(fn func(c *cli.Context, migrators []database.ModuleMigrator) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		db, _, _, err := openDB(c)
		if err != nil {
			return err
		}
		defer db.Close()
		return fn(c, database.Migrators(db))
	}
}

func tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "mint a bearer token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "subject", Value: "admin", Usage: "token subject"},
			&cli.StringFlag{Name: "role", Value: string(jwt.RoleLeagueAdmin), Usage: "league_admin or viewer"},
			&cli.DurationFlag{Name: "ttl", Usage: "lifetime; zero uses the configured default"},
		},
		Action: func(c *cli.Context) error {
			cfg, _, err := setup(c)
			if err != nil {
				return err
			}
			tok, err := mintToken(cfg.JWT, c.String("subject"), c.String("role"), c.Duration("ttl"))
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, tok)
			return nil
		},
	}
}

func mintToken(cfg config.JWTConfig, subject, role string, ttl time.Duration) (string, error) {
	if len(cfg.Secret) < config.MinJWTSecretLength {
		return "", config.ErrWeakJWTSecret
	}
	switch r := jwt.Role(role); r {
	case jwt.RoleLeagueAdmin, jwt.RoleViewer:
		return jwt.NewService(cfg.Secret, cfg.Issuer, cfg.DefaultTTL).GenerateToken(subject, r, ttl)
	}
	return "", fmt.Errorf("unknown role %q", role)
}
