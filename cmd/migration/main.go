package main

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/riskibarqy/esports-hub/internal/config"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "migration",
		Usage: "manage the esports-hub database schema",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-file",
				Usage:   "optional dotenv file loaded before reading the environment",
				Value:   ".env",
				EnvVars: []string{"APP_ENV_FILE"},
			},
			&cli.StringFlag{
				Name:    "db-url",
				Usage:   "postgres connection url",
				EnvVars: []string{"DB_URL"},
			},
			&cli.StringFlag{
				Name:    "dir",
				Usage:   "migrations directory",
				EnvVars: []string{"MIGRATIONS_DIR", "MIGRATIONS_PATH"},
			},
		},
		Before: func(c *cli.Context) error {
			return config.LoadDotEnv(c.String("env-file"))
		},
		Commands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply all pending migrations",
				Action: withMigrator(func(c *cli.Context, m *migrate.Migrate) error {
					if err := ignoreNoChange(m.Up()); err != nil {
						return err
					}
					log.Printf("migrations applied")
					return nil
				}),
			},
			{
				Name:  "down",
				Usage: "roll back migrations",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "steps", Usage: "number of migrations to roll back", Value: 1},
				},
				Action: withMigrator(func(c *cli.Context, m *migrate.Migrate) error {
					steps, err := parseSteps(c.Int("steps"))
					if err != nil {
						return err
					}
					if err := ignoreNoChange(m.Steps(-steps)); err != nil {
						return err
					}
					log.Printf("rolled back %d migration(s)", steps)
					return nil
				}),
			},
			{
				Name:  "version",
				Usage: "print the current schema version",
				Action: withMigrator(func(c *cli.Context, m *migrate.Migrate) error {
					version, dirty, err := m.Version()
					if errors.Is(err, migrate.ErrNilVersion) {
						fmt.Fprintln(c.App.Writer, "version: none")
						fmt.Fprintln(c.App.Writer, "dirty: false")
						return nil
					}
					if err != nil {
						return fmt.Errorf("read version: %w", err)
					}
					fmt.Fprintf(c.App.Writer, "version: %d\n", version)
					fmt.Fprintf(c.App.Writer, "dirty: %t\n", dirty)
					return nil
				}),
			},
			{
				Name:      "force",
				Usage:     "set the schema version without running migrations",
				ArgsUsage: "<version>",
				Action: withMigrator(func(c *cli.Context, m *migrate.Migrate) error {
					if c.NArg() < 1 {
						return fmt.Errorf("force requires a version argument")
					}
					version, err := parseVersion(c.Args().First())
					if err != nil {
						return err
					}
					if err := m.Force(version); err != nil {
						return fmt.Errorf("force version %d: %w", version, err)
					}
					log.Printf("forced version to %d", version)
					return nil
				}),
			},
			{
				Name:      "goto",
				Aliases:   []string{"migrate"},
				Usage:     "migrate up or down to a target version",
				ArgsUsage: "<version>",
				Action: withMigrator(func(c *cli.Context, m *migrate.Migrate) error {
					if c.NArg() < 1 {
						return fmt.Errorf("goto requires a target version argument")
					}
					target, err := parseTarget(c.Args().First())
					if err != nil {
						return err
					}
					if err := ignoreNoChange(m.Migrate(target)); err != nil {
						return err
					}
					log.Printf("migrated to version %d", target)
					return nil
				}),
			},
			{
				Name:      "create",
				Usage:     "create an empty up/down migration pair",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					dir, err := resolveMigrationsDir(c.String("dir"))
					if err != nil {
						return err
					}
					up, down, err := createMigration(dir, c.Args().First(), time.Now())
					if err != nil {
						return err
					}
					log.Printf("created %s", up)
					log.Printf("created %s", down)
					return nil
				},
			},
		},
	}
}

func withMigrator(fn func(c *cli.Context, m *migrate.Migrate) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		dbURL := strings.TrimSpace(c.String("db-url"))
		if dbURL == "" {
			// DB_URL may come from the env file, which is loaded after flags are parsed.
			dbURL = strings.TrimSpace(os.Getenv("DB_URL"))
		}
		if dbURL == "" {
			return fmt.Errorf("DB_URL is required")
		}

		migrationsDir, err := resolveMigrationsDir(c.String("dir"))
		if err != nil {
			return fmt.Errorf("resolve migrations dir: %w", err)
		}

		sourceURL := "file://" + filepath.ToSlash(migrationsDir)
		m, err := migrate.New(sourceURL, normalizeDBURL(dbURL))
		if err != nil {
			return fmt.Errorf("create migrator: %w", err)
		}
		defer closeMigrator(m)

		log.Printf("migration source: %s", sourceURL)
		return fn(c, m)
	}
}

func parseSteps(steps int) (int, error) {
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("version must be >= 0")
	}
	if value > int64(^uint(0)>>1) {
		return 0, fmt.Errorf("version is too large for this platform")
	}

	return int(value), nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(value), nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		log.Printf("no migration changes")
		return nil
	}
	return err
}

func closeMigrator(m *migrate.Migrate) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		log.Printf("close migration source: %v", srcErr)
	}
	if dbErr != nil {
		log.Printf("close migration db: %v", dbErr)
	}
}

func resolveMigrationsDir(explicit string) (string, error) {
	candidates := []string{
		strings.TrimSpace(explicit),
		"./db/migrations",
		"/app/db/migrations",
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			continue
		}
		return abs, nil
	}

	return "", fmt.Errorf("migration directory not found (checked --dir, MIGRATIONS_DIR, MIGRATIONS_PATH, ./db/migrations, /app/db/migrations)")
}

var migrationNameSanitizer = regexp.MustCompile(`[^a-z0-9]+`)

// createMigration writes <unix>_<name>.up.sql and .down.sql into dir.
func createMigration(dir, name string, now time.Time) (string, string, error) {
	slug := strings.Trim(migrationNameSanitizer.ReplaceAllString(strings.ToLower(name), "_"), "_")
	if slug == "" {
		return "", "", fmt.Errorf("migration name is required")
	}

	base := filepath.Join(dir, fmt.Sprintf("%d_%s", now.Unix(), slug))
	up, down := base+".up.sql", base+".down.sql"
	for _, path := range []string{up, down} {
		if err := os.WriteFile(path, []byte("BEGIN;\n\nCOMMIT;\n"), 0o644); err != nil {
			return "", "", fmt.Errorf("write %s: %w", path, err)
		}
	}
	return up, down, nil
}

// normalizeDBURL defaults sslmode for local URLs that omit it.
func normalizeDBURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed == nil || parsed.Scheme == "" {
		return raw
	}

	query := parsed.Query()
	if query.Get("sslmode") == "" && isLocalHost(parsed.Hostname()) {
		query.Set("sslmode", "disable")
		parsed.RawQuery = query.Encode()
	}

	return parsed.String()
}

func isLocalHost(host string) bool {
	switch strings.ToLower(host) {
	case "localhost", "127.0.0.1", "::1", "postgres", "db":
		return true
	default:
		return false
	}
}
