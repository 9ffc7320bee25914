// Package cmd provides common initialization functions for
// command-line applications.
package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/persistence"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/persistence/file"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/persistence/postgresql"
)

// NewPersistence selects a persistence backend from the database URL
// scheme. postgres:// and postgresql:// select PostgreSQL; everything
// else is treated as a file-persistence root directory.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) persistence.Persistence {
	switch parseProvider(databaseURL) {
	case "postgresql":
		p, err := postgresql.NewPersistence(ctx, logger, databaseURL)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to initialize PostgreSQL persistence", "error", err)
			panic(err)
		}

		return p
	default:
		return file.NewPersistence(databaseURL)
	}
}

func parseProvider(databaseURL string) string {
	scheme, _, found := strings.Cut(databaseURL, "://")
	if !found {
		return "file"
	}

	switch scheme {
	case "postgres", "postgresql":
		return "postgresql"
	default:
		return "file"
	}
}
