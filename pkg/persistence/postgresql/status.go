package postgresql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/models"
)

// StatusRepository handles status-category rows.
type StatusRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func (r *StatusRepository) GetAll(ctx context.Context) ([]*models.StatusCategory, error) {
	query := "SELECT id, name, color, workflow_id FROM statuses ORDER BY name ASC"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query statuses: %w", err)
	}

	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	statuses := make([]*models.StatusCategory, 0)

	for rows.Next() {
		var status models.StatusCategory

		err := rows.Scan(&status.ID, &status.Name, &status.Color, &status.WorkflowID)
		if err != nil {
			return nil, fmt.Errorf("failed to scan status: %w", err)
		}

		statuses = append(statuses, &status)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statuses: %w", err)
	}

	return statuses, nil
}

func (r *StatusRepository) GetByID(ctx context.Context, id string) (*models.StatusCategory, error) {
	query := "SELECT id, name, color, workflow_id FROM statuses WHERE id = $1"

	var status models.StatusCategory

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&status.ID, &status.Name, &status.Color, &status.WorkflowID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to fetch status %s: %w", id, err)
	}

	return &status, nil
}

func (r *StatusRepository) Save(ctx context.Context, status *models.StatusCategory) error {
	query := `
		INSERT INTO statuses (id, name, color, workflow_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			color = EXCLUDED.color,
			workflow_id = EXCLUDED.workflow_id
	`

	_, err := r.db.ExecContext(ctx, query, status.ID, status.Name, status.Color, status.WorkflowID)
	if err != nil {
		return fmt.Errorf("failed to save status %s: %w", status.ID, err)
	}

	return nil
}

func (r *StatusRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM statuses WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete status %s: %w", id, err)
	}

	return nil
}
