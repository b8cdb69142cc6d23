package services

import (
	"context"
	"strings"
	"time"

	"github.com/notehive/notehive-server/internal/app/catalog"
	"github.com/notehive/notehive-server/internal/app/models"
	"github.com/notehive/notehive-server/internal/app/models/dto"
	"github.com/notehive/notehive-server/internal/app/repositories"
	"github.com/notehive/notehive-server/internal/app/viewcount"
	"github.com/notehive/notehive-server/internal/pkg/apperrors"
	"github.com/notehive/notehive-server/internal/pkg/helpers"
)

// NoteService defines the student-facing note operations. Every read serves
// published notes only, no matter what the request asks for.
type NoteService interface {
	ListNotes(ctx context.Context, filter *dto.NoteFilterRequest, page, size int) (*dto.NoteListResponse, error)
	SearchNotes(ctx context.Context, filter *dto.NoteFilterRequest, page, size int) (*dto.NoteListResponse, error)
	GetNoteBySlug(ctx context.Context, slug string) (*dto.NoteDetail, error)
	RecordView(ctx context.Context, id int64) error
	RecordDownload(ctx context.Context, id int64) error
}

// noteServiceImpl implements NoteService on top of the catalog snapshot
type noteServiceImpl struct {
	catalog  *catalog.Catalog
	noteRepo *repositories.NoteRepository
	counter  *viewcount.Counter
}

// NewNoteService creates a new NoteService
func NewNoteService(cat *catalog.Catalog, noteRepo *repositories.NoteRepository, counter *viewcount.Counter) NoteService {
	return &noteServiceImpl{
		catalog:  cat,
		noteRepo: noteRepo,
		counter:  counter,
	}
}

// ListNotes returns one page of the published listing for the given filters
func (s *noteServiceImpl) ListNotes(_ context.Context, filter *dto.NoteFilterRequest, page, size int) (*dto.NoteListResponse, error) {
	snap := s.catalog.Snapshot()
	notes := listPage(snap, publicCriteria(filter), models.ParseSortKey(filter.Sort), page, size)

	summaries := make([]dto.NoteSummary, 0, len(notes.items))
	for _, n := range notes.items {
		summaries = append(summaries, newNoteSummary(snap, n))
	}

	return &dto.NoteListResponse{
		Notes:      summaries,
		Pagination: helpers.NewPaginationInfo(notes.total, page, size),
	}, nil
}

// SearchNotes runs the same listing pipeline but requires a search term
func (s *noteServiceImpl) SearchNotes(ctx context.Context, filter *dto.NoteFilterRequest, page, size int) (*dto.NoteListResponse, error) {
	if strings.TrimSpace(filter.Query) == "" {
		return nil, apperrors.NewValidationError("Search query is required")
	}
	return s.ListNotes(ctx, filter, page, size)
}

// GetNoteBySlug returns the reading view of one published note
func (s *noteServiceImpl) GetNoteBySlug(_ context.Context, slug string) (*dto.NoteDetail, error) {
	snap := s.catalog.Snapshot()

	note, ok := snap.NoteBySlug(slug)
	if !ok || !note.IsPublished {
		// Unpublished notes do not exist as far as students are concerned
		return nil, apperrors.ErrNoteNotFound
	}

	detail := newNoteDetail(snap, note)
	return &detail, nil
}

// RecordView registers one view of a published note. The count is buffered
// and applied in batches, so the caller gets an answer without waiting on the
// database.
func (s *noteServiceImpl) RecordView(_ context.Context, id int64) error {
	note, ok := s.catalog.Snapshot().NoteByID(id)
	if !ok || !note.IsPublished {
		return apperrors.ErrNoteNotFound
	}

	s.counter.RecordView(id)
	return nil
}

// RecordDownload increments the download counter of a published note.
// Downloads are far rarer than views, so this one writes through directly.
func (s *noteServiceImpl) RecordDownload(ctx context.Context, id int64) error {
	note, ok := s.catalog.Snapshot().NoteByID(id)
	if !ok || !note.IsPublished {
		return apperrors.ErrNoteNotFound
	}

	if err := s.noteRepo.IncrementDownloadCount(ctx, id); err != nil {
		return err
	}

	// Refresh failure keeps the previous snapshot and is already logged; the
	// count is safe in the database either way.
	_ = s.catalog.Refresh(ctx)
	return nil
}

// publicCriteria maps a student listing request to filter criteria, always in
// published scope.
func publicCriteria(filter *dto.NoteFilterRequest) catalog.Criteria {
	return catalog.Criteria{
		Search:       filter.Query,
		YearID:       filter.YearID,
		UnitID:       filter.UnitID,
		LecturerID:   filter.LecturerID,
		Difficulty:   models.DifficultyLevel(filter.Difficulty),
		Scope:        models.ScopePublished,
		FeaturedOnly: filter.Featured,
	}
}

// pageResult is one page of a filtered and sorted listing
type pageResult struct {
	items []models.Note
	total int64
}

// listPage filters, sorts and slices the snapshot down to one page
func listPage(snap *catalog.Snapshot, cr catalog.Criteria, sortKey models.SortKey, page, size int) pageResult {
	matched := catalog.FilterNotes(snap.Notes, cr)
	sorted := catalog.SortNotes(matched, sortKey)

	start, end := helpers.CalculateSliceIndices(page, size, len(sorted))
	return pageResult{
		items: sorted[start:end],
		total: int64(len(sorted)),
	}
}

// newNoteSummary resolves catalogue references to display names. A dangling
// reference leaves the name empty instead of failing the listing.
func newNoteSummary(snap *catalog.Snapshot, n models.Note) dto.NoteSummary {
	summary := dto.NoteSummary{
		ID:                n.ID,
		Slug:              n.Slug,
		Title:             n.Title,
		Excerpt:           n.Excerpt,
		YearID:            n.YearID,
		UnitID:            n.UnitID,
		LecturerID:        n.LecturerID,
		Difficulty:        string(n.Difficulty),
		EstimatedReadTime: n.EstimatedReadTime,
		ViewCount:         n.ViewCount,
		IsFeatured:        n.IsFeatured,
		CreatedAt:         n.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:         n.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if year, ok := snap.YearByID(n.YearID); ok {
		summary.YearName = year.Name
	}
	if unit, ok := snap.UnitByID(n.UnitID); ok {
		summary.UnitName = unit.Name
		summary.UnitCode = unit.Code
	}
	if n.LecturerID != nil {
		if lecturer, ok := snap.LecturerByID(*n.LecturerID); ok {
			summary.LecturerName = lecturer.Name
		}
	}

	return summary
}

// newNoteDetail extends the summary with the reading view fields
func newNoteDetail(snap *catalog.Snapshot, n models.Note) dto.NoteDetail {
	detail := dto.NoteDetail{
		NoteSummary:   newNoteSummary(snap, n),
		Content:       n.Content,
		DownloadCount: n.DownloadCount,
	}
	if n.LecturerID != nil {
		if lecturer, ok := snap.LecturerByID(*n.LecturerID); ok {
			detail.LecturerTitle = lecturer.Title
		}
	}
	return detail
}
