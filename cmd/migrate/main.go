// Command migrate brings the storefront database schema up to date with
// migrations/001_initial_schema.sql using the atlas CLI, then loads the seed
// promotions. It expects the atlas binary on PATH.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"toy-rental-storefront/internal/infra/db"
	"toy-rental-storefront/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
)

const migrateTimeout = 2 * time.Minute

func main() {
	dir := flag.String("dir", "migrations", "directory holding the schema and seed files")
	devURL := flag.String("dev-url", "docker://postgres/17/dev", "atlas dev database used to compute the diff")
	atlasBin := flag.String("atlas", "atlas", "path to the atlas binary")
	seed := flag.Bool("seed", true, "load seed promotions after applying the schema")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	if err := applySchema(ctx, cfg.DB, *atlasBin, *dir, *devURL); err != nil {
		slog.Error("schema apply failed", "error", err)
		os.Exit(1)
	}

	if *seed {
		if err := loadSeed(ctx, cfg.DB, filepath.Join(*dir, "002_seed_promotions.sql")); err != nil {
			slog.Error("seed failed", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("migration completed")
}

func applySchema(ctx context.Context, cfg config.DBConfig, atlasBin, dir, devURL string) error {
	schemaPath, err := filepath.Abs(filepath.Join(dir, "001_initial_schema.sql"))
	if err != nil {
		return err
	}

	client, err := atlasexec.NewClient(".", atlasBin)
	if err != nil {
		return err
	}

	res, err := client.SchemaApply(ctx, &atlasexec.SchemaApplyParams{
		URL:         cfg.BuildDSN(),
		To:          "file://" + schemaPath,
		DevURL:      devURL,
		AutoApprove: true,
	})
	if err != nil {
		return err
	}

	slog.Info("schema applied", "statements", len(res.Changes.Applied))
	return nil
}

func loadSeed(ctx context.Context, cfg config.DBConfig, path string) error {
	sqlContent, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	pool, cleanup, err := db.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := pool.Exec(ctx, string(sqlContent)); err != nil {
		return err
	}

	slog.Info("seed loaded", "file", path)
	return nil
}
