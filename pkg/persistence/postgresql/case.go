package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/models"
)

// CaseRepository handles running-case rows.
type CaseRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func (r *CaseRepository) GetAll(ctx context.Context) ([]*models.Case, error) {
	query := `
		SELECT id, workflow_id, history, created_at, updated_at
		FROM cases
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cases: %w", err)
	}

	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	cases := make([]*models.Case, 0)

	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan case: %w", err)
		}

		cases = append(cases, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cases: %w", err)
	}

	return cases, nil
}

func (r *CaseRepository) GetByID(ctx context.Context, id string) (*models.Case, error) {
	query := `
		SELECT id, workflow_id, history, created_at, updated_at
		FROM cases
		WHERE id = $1
	`

	c, err := scanCase(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to fetch case %s: %w", id, err)
	}

	return c, nil
}

func (r *CaseRepository) Save(ctx context.Context, c *models.Case) error {
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}

	c.UpdatedAt = now

	history, err := json.Marshal(c.History)
	if err != nil {
		return fmt.Errorf("failed to marshal history for case %s: %w", c.ID, err)
	}

	query := `
		INSERT INTO cases (id, workflow_id, history, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			workflow_id = EXCLUDED.workflow_id,
			history = EXCLUDED.history,
			updated_at = EXCLUDED.updated_at
	`

	_, err = r.db.ExecContext(ctx, query, c.ID, c.WorkflowID, history, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save case %s: %w", c.ID, err)
	}

	return nil
}

func (r *CaseRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM cases WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete case %s: %w", id, err)
	}

	return nil
}

func scanCase(row rowScanner) (*models.Case, error) {
	var (
		c       models.Case
		history []byte
	)

	err := row.Scan(&c.ID, &c.WorkflowID, &history, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(history, &c.History); err != nil {
		return nil, fmt.Errorf("failed to unmarshal history: %w", err)
	}

	return &c, nil
}
