package services

import (
	"context"

	"github.com/notehive/notehive-server/internal/app/catalog"
	"github.com/notehive/notehive-server/internal/app/models"
	"github.com/notehive/notehive-server/internal/app/models/dto"
	"github.com/notehive/notehive-server/internal/pkg/apperrors"
)

// DirectoryService serves the browse structure: academic years, their units
// and the lecturer directory. Everything comes from the catalog snapshot, so
// the counts shown next to each entry match the listings students actually
// see.
type DirectoryService struct {
	catalog *catalog.Catalog
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(cat *catalog.Catalog) *DirectoryService {
	return &DirectoryService{catalog: cat}
}

// ListYears returns every academic year with its published note count
func (s *DirectoryService) ListYears(_ context.Context) (*dto.YearListResponse, error) {
	snap := s.catalog.Snapshot()
	counts := publishedCounts(snap)

	years := make([]dto.YearResponse, 0, len(snap.Years))
	for _, y := range snap.Years {
		years = append(years, dto.YearResponse{
			ID:          y.ID,
			YearNumber:  y.YearNumber,
			Name:        y.Name,
			Description: y.Description,
			NoteCount:   counts.byYear[y.ID],
		})
	}

	return &dto.YearListResponse{Years: years}, nil
}

// GetYear returns one academic year together with its units
func (s *DirectoryService) GetYear(_ context.Context, id int64) (*dto.YearDetailResponse, error) {
	snap := s.catalog.Snapshot()

	year, ok := snap.YearByID(id)
	if !ok {
		return nil, apperrors.ErrYearNotFound
	}

	counts := publishedCounts(snap)
	units := snap.UnitsForYear(id)

	resp := &dto.YearDetailResponse{
		YearResponse: dto.YearResponse{
			ID:          year.ID,
			YearNumber:  year.YearNumber,
			Name:        year.Name,
			Description: year.Description,
			NoteCount:   counts.byYear[year.ID],
		},
		Units: make([]dto.UnitResponse, 0, len(units)),
	}
	for _, u := range units {
		resp.Units = append(resp.Units, newUnitResponse(snap, u, counts))
	}

	return resp, nil
}

// ListUnits returns the units, optionally narrowed to one academic year.
// Year zero means all years.
func (s *DirectoryService) ListUnits(_ context.Context, yearID int64) (*dto.UnitListResponse, error) {
	snap := s.catalog.Snapshot()
	counts := publishedCounts(snap)

	var units []models.Unit
	if yearID != 0 {
		if _, ok := snap.YearByID(yearID); !ok {
			return nil, apperrors.ErrYearNotFound
		}
		units = snap.UnitsForYear(yearID)
	} else {
		units = snap.Units
	}

	resp := &dto.UnitListResponse{Units: make([]dto.UnitResponse, 0, len(units))}
	for _, u := range units {
		resp.Units = append(resp.Units, newUnitResponse(snap, u, counts))
	}

	return resp, nil
}

// ListLecturers returns the lecturer directory with published note counts
func (s *DirectoryService) ListLecturers(_ context.Context) (*dto.LecturerListResponse, error) {
	snap := s.catalog.Snapshot()
	counts := publishedCounts(snap)

	lecturers := make([]dto.LecturerResponse, 0, len(snap.Lecturers))
	for _, l := range snap.Lecturers {
		lecturers = append(lecturers, dto.LecturerResponse{
			ID:             l.ID,
			Name:           l.Name,
			Title:          l.Title,
			Specialization: l.Specialization,
			NoteCount:      counts.byLecturer[l.ID],
		})
	}

	return &dto.LecturerListResponse{Lecturers: lecturers}, nil
}

// noteCounts holds published note tallies per directory dimension
type noteCounts struct {
	byYear     map[int64]int
	byUnit     map[int64]int
	byLecturer map[int64]int
}

// publishedCounts tallies the published notes of one snapshot. Drafts never
// count, so the numbers agree with what a student can open.
func publishedCounts(snap *catalog.Snapshot) noteCounts {
	counts := noteCounts{
		byYear:     make(map[int64]int),
		byUnit:     make(map[int64]int),
		byLecturer: make(map[int64]int),
	}
	for _, n := range snap.Notes {
		if !n.IsPublished {
			continue
		}
		counts.byYear[n.YearID]++
		counts.byUnit[n.UnitID]++
		if n.LecturerID != nil {
			counts.byLecturer[*n.LecturerID]++
		}
	}
	return counts
}

func newUnitResponse(snap *catalog.Snapshot, u models.Unit, counts noteCounts) dto.UnitResponse {
	resp := dto.UnitResponse{
		ID:          u.ID,
		YearID:      u.YearID,
		Name:        u.Name,
		Code:        u.Code,
		Description: u.Description,
		Semester:    u.Semester,
		CreditHours: u.CreditHours,
		LecturerID:  u.LecturerID,
		NoteCount:   counts.byUnit[u.ID],
	}
	if year, ok := snap.YearByID(u.YearID); ok {
		resp.YearName = year.Name
	}
	if u.LecturerID != nil {
		if lecturer, ok := snap.LecturerByID(*u.LecturerID); ok {
			resp.LecturerName = lecturer.Name
		}
	}
	return resp
}
