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

// YearRepository handles database operations for academic years
type YearRepository struct {
	db *pgxpool.Pool
}

// NewYearRepository creates a new year repository
func NewYearRepository(db *pgxpool.Pool) *YearRepository {
	return &YearRepository{
		db: db,
	}
}

// Create creates a new academic year
func (r *YearRepository) Create(ctx context.Context, year *models.Year) error {
	query := `
		INSERT INTO years (year_number, name, description)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, year.YearNumber, year.Name, year.Description).Scan(&year.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "years_year_number_key") {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating year: %w", err)
	}

	return nil
}

// GetByID retrieves an academic year by ID
func (r *YearRepository) GetByID(ctx context.Context, id int64) (*models.Year, error) {
	query := `
		SELECT id, year_number, name, description
		FROM years
		WHERE id = $1
	`

	var year models.Year
	err := r.db.QueryRow(ctx, query, id).Scan(&year.ID, &year.YearNumber, &year.Name, &year.Description)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrYearNotFound
		}
		return nil, fmt.Errorf("error retrieving year: %w", err)
	}

	return &year, nil
}

// GetAll retrieves all academic years in programme order
func (r *YearRepository) GetAll(ctx context.Context) ([]models.Year, error) {
	query := `
		SELECT id, year_number, name, description
		FROM years
		ORDER BY year_number
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	years := make([]models.Year, 0)
	for rows.Next() {
		var year models.Year
		if err := rows.Scan(&year.ID, &year.YearNumber, &year.Name, &year.Description); err != nil {
			return nil, fmt.Errorf("error scanning year: %w", err)
		}
		years = append(years, year)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return years, nil
}
