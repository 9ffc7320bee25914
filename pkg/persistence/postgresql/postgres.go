// Package postgresql provides PostgreSQL persistence for procedure
// definitions, the variable catalog, statuses, and cases.
package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	// Registers the "postgres" database/sql driver.
	_ "github.com/lib/pq"

	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/persistence"
	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/persistence/sqlbase"
)

// Persistence implements the persistence layer for PostgreSQL.
type Persistence struct {
	db           *sql.DB
	logger       *slog.Logger
	workflowRepo *WorkflowRepository
	variableRepo *VariableRepository
	statusRepo   *StatusRepository
	caseRepo     *CaseRepository
}

// NewPersistence opens a connection, runs migrations, and returns the
// persistence layer.
func NewPersistence(ctx context.Context, logger *slog.Logger, databaseURL string) (*Persistence, error) {
	database, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	err = database.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	migrationManager := sqlbase.NewMigrationManager(logger, database, migrations())

	err = migrationManager.RunMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Persistence{
		db:           database,
		logger:       logger,
		workflowRepo: &WorkflowRepository{db: database, logger: logger},
		variableRepo: &VariableRepository{db: database, logger: logger},
		statusRepo:   &StatusRepository{db: database, logger: logger},
		caseRepo:     &CaseRepository{db: database, logger: logger},
	}, nil
}

// Close closes the database connection.
func (p *Persistence) Close(_ context.Context) error {
	if p.db != nil {
		err := p.db.Close()
		if err != nil {
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}

	return nil
}

// HealthCheck verifies the database connection is healthy.
func (p *Persistence) HealthCheck(ctx context.Context) error {
	err := p.db.PingContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	return nil
}

func (p *Persistence) WorkflowRepository() persistence.WorkflowRepository {
	return p.workflowRepo
}

func (p *Persistence) VariableRepository() persistence.VariableRepository {
	return p.variableRepo
}

func (p *Persistence) StatusRepository() persistence.StatusRepository {
	return p.statusRepo
}

func (p *Persistence) CaseRepository() persistence.CaseRepository {
	return p.caseRepo
}
