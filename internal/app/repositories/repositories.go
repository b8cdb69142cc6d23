package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/notehive/notehive-server/internal/app/catalog"
)

// Repositories holds all the repository instances
type Repositories struct {
	NoteRepository     *NoteRepository
	UnitRepository     *UnitRepository
	YearRepository     *YearRepository
	LecturerRepository *LecturerRepository
	AdminRepository    *AdminRepository
	TokenRepository    *TokenRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		NoteRepository:     NewNoteRepository(db),
		UnitRepository:     NewUnitRepository(db),
		YearRepository:     NewYearRepository(db),
		LecturerRepository: NewLecturerRepository(db),
		AdminRepository:    NewAdminRepository(db),
		TokenRepository:    NewTokenRepository(db),
	}
}

// LoadCatalog implements catalog.Loader by reading the catalogue tables in
// full. The catalog swaps snapshots atomically, so the four reads do not need
// to share a transaction; a refresh follows every mutation anyway.
func (r *Repositories) LoadCatalog(ctx context.Context) (*catalog.Data, error) {
	notes, err := r.NoteRepository.GetAllNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading notes: %w", err)
	}
	units, err := r.UnitRepository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading units: %w", err)
	}
	years, err := r.YearRepository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading years: %w", err)
	}
	lecturers, err := r.LecturerRepository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading lecturers: %w", err)
	}

	return &catalog.Data{
		Notes:     notes,
		Units:     units,
		Years:     years,
		Lecturers: lecturers,
	}, nil
}
