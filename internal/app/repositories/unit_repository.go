package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/notehive/notehive-server/internal/app/models"
	"github.com/notehive/notehive-server/internal/pkg/apperrors"
	"github.com/notehive/notehive-server/internal/pkg/dberrors"
)

// UnitRepository handles database operations for teaching units
type UnitRepository struct {
	db *pgxpool.Pool
}

// NewUnitRepository creates a new unit repository
func NewUnitRepository(db *pgxpool.Pool) *UnitRepository {
	return &UnitRepository{
		db: db,
	}
}

// Create creates a new unit
func (r *UnitRepository) Create(ctx context.Context, unit *models.Unit) error {
	query := `
		INSERT INTO units (year_id, lecturer_id, name, code, description, semester, credit_hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		unit.YearID, unit.LecturerID, unit.Name, unit.Code,
		unit.Description, unit.Semester, unit.CreditHours,
	).Scan(&unit.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "units_code_key") {
			return apperrors.ErrResourceAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.ErrYearNotFound
		}
		return fmt.Errorf("error creating unit: %w", err)
	}

	return nil
}

// GetByID retrieves a unit by ID
func (r *UnitRepository) GetByID(ctx context.Context, id int64) (*models.Unit, error) {
	query := `
		SELECT id, year_id, lecturer_id, name, code, description, semester, credit_hours
		FROM units
		WHERE id = $1
	`

	var unit models.Unit
	err := r.db.QueryRow(ctx, query, id).Scan(
		&unit.ID,
		&unit.YearID,
		&unit.LecturerID,
		&unit.Name,
		&unit.Code,
		&unit.Description,
		&unit.Semester,
		&unit.CreditHours,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUnitNotFound
		}
		return nil, fmt.Errorf("error retrieving unit: %w", err)
	}

	return &unit, nil
}

// GetAll retrieves all units in display order
func (r *UnitRepository) GetAll(ctx context.Context) ([]models.Unit, error) {
	query := `
		SELECT id, year_id, lecturer_id, name, code, description, semester, credit_hours
		FROM units
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	units := make([]models.Unit, 0)
	for rows.Next() {
		var unit models.Unit
		err := rows.Scan(
			&unit.ID,
			&unit.YearID,
			&unit.LecturerID,
			&unit.Name,
			&unit.Code,
			&unit.Description,
			&unit.Semester,
			&unit.CreditHours,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning unit: %w", err)
		}
		units = append(units, unit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return units, nil
}
