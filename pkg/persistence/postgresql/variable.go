package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cuongthieu-itme/product-workflow-sub003/pkg/models"
)

// VariableRepository handles catalog-variable rows.
type VariableRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

const variableColumns = `
			id
		  , name
		  , description
		  , source
		  , type
		  , options
		  , default_value
		  , is_required
		  , user_source
`

func (r *VariableRepository) GetAll(ctx context.Context) ([]*models.AvailableVariable, error) {
	query := "SELECT " + variableColumns + " FROM variables ORDER BY name ASC"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query variables: %w", err)
	}

	defer func() {
		if err := rows.Close(); err != nil {
			r.logger.ErrorContext(ctx, "failed to close rows", "error", err)
		}
	}()

	variables := make([]*models.AvailableVariable, 0)

	for rows.Next() {
		variable, err := scanVariable(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan variable: %w", err)
		}

		variables = append(variables, variable)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating variables: %w", err)
	}

	return variables, nil
}

func (r *VariableRepository) GetByID(ctx context.Context, id string) (*models.AvailableVariable, error) {
	query := "SELECT " + variableColumns + " FROM variables WHERE id = $1"

	variable, err := scanVariable(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to fetch variable %s: %w", id, err)
	}

	return variable, nil
}

func (r *VariableRepository) Save(ctx context.Context, variable *models.AvailableVariable) error {
	options, err := json.Marshal(variable.Options)
	if err != nil {
		return fmt.Errorf("failed to marshal options for variable %s: %w", variable.ID, err)
	}

	query := `
		INSERT INTO variables (id, name, description, source, type, options, default_value, is_required, user_source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			source = EXCLUDED.source,
			type = EXCLUDED.type,
			options = EXCLUDED.options,
			default_value = EXCLUDED.default_value,
			is_required = EXCLUDED.is_required,
			user_source = EXCLUDED.user_source
	`

	_, err = r.db.ExecContext(ctx, query,
		variable.ID, variable.Name, variable.Description,
		string(variable.Source), string(variable.Type), options,
		variable.DefaultValue, variable.IsRequired, string(variable.UserSource),
	)
	if err != nil {
		return fmt.Errorf("failed to save variable %s: %w", variable.ID, err)
	}

	return nil
}

func (r *VariableRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM variables WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete variable %s: %w", id, err)
	}

	return nil
}

func scanVariable(row rowScanner) (*models.AvailableVariable, error) {
	var (
		variable models.AvailableVariable
		options  []byte
	)

	err := row.Scan(
		&variable.ID, &variable.Name, &variable.Description,
		&variable.Source, &variable.Type, &options,
		&variable.DefaultValue, &variable.IsRequired, &variable.UserSource,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(options, &variable.Options); err != nil {
		return nil, fmt.Errorf("failed to unmarshal options: %w", err)
	}

	return &variable, nil
}
