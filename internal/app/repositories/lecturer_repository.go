package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/notehive/notehive-server/internal/app/models"
	"github.com/notehive/notehive-server/internal/pkg/apperrors"
)

// LecturerRepository handles database operations for lecturers
type LecturerRepository struct {
	db *pgxpool.Pool
}

// NewLecturerRepository creates a new lecturer repository
func NewLecturerRepository(db *pgxpool.Pool) *LecturerRepository {
	return &LecturerRepository{
		db: db,
	}
}

// Create creates a new lecturer
func (r *LecturerRepository) Create(ctx context.Context, lecturer *models.Lecturer) error {
	query := `
		INSERT INTO lecturers (name, title, specialization)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, lecturer.Name, lecturer.Title, lecturer.Specialization).Scan(&lecturer.ID)
	if err != nil {
		return fmt.Errorf("error creating lecturer: %w", err)
	}

	return nil
}

// GetByID retrieves a lecturer by ID
func (r *LecturerRepository) GetByID(ctx context.Context, id int64) (*models.Lecturer, error) {
	query := `
		SELECT id, name, title, specialization
		FROM lecturers
		WHERE id = $1
	`

	var lecturer models.Lecturer
	err := r.db.QueryRow(ctx, query, id).Scan(&lecturer.ID, &lecturer.Name, &lecturer.Title, &lecturer.Specialization)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrLecturerNotFound
		}
		return nil, fmt.Errorf("error retrieving lecturer: %w", err)
	}

	return &lecturer, nil
}

// GetAll retrieves all lecturers in display order
func (r *LecturerRepository) GetAll(ctx context.Context) ([]models.Lecturer, error) {
	query := `
		SELECT id, name, title, specialization
		FROM lecturers
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lecturers := make([]models.Lecturer, 0)
	for rows.Next() {
		var lecturer models.Lecturer
		if err := rows.Scan(&lecturer.ID, &lecturer.Name, &lecturer.Title, &lecturer.Specialization); err != nil {
			return nil, fmt.Errorf("error scanning lecturer: %w", err)
		}
		lecturers = append(lecturers, lecturer)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return lecturers, nil
}
