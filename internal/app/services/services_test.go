package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notehive/notehive-server/internal/app/catalog"
	"github.com/notehive/notehive-server/internal/app/models"
	"github.com/notehive/notehive-server/internal/app/models/dto"
	"github.com/notehive/notehive-server/internal/app/viewcount"
	"github.com/notehive/notehive-server/internal/pkg/apperrors"
)

type stubLoader struct {
	data *catalog.Data
}

func (l *stubLoader) LoadCatalog(context.Context) (*catalog.Data, error) {
	return l.data, nil
}

type captureSink struct {
	mu     sync.Mutex
	counts map[int64]int64
}

func (s *captureSink) AddViewCounts(_ context.Context, counts map[int64]int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.counts == nil {
		s.counts = make(map[int64]int64)
	}
	for id, n := range counts {
		s.counts[id] += n
	}
	return nil
}

func lecturerID(id int64) *int64 { return &id }

// testCatalog builds a refreshed catalog with two published notes, one draft
// and a small directory around them.
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	loader := &stubLoader{data: &catalog.Data{
		Notes: []models.Note{
			{
				ID: 1, Slug: "upper-limb-osteology", Title: "Upper Limb Osteology",
				Excerpt: "Bones of the arm.", Content: "The humerus is the longest bone of the upper limb.",
				YearID: 1, UnitID: 1, LecturerID: lecturerID(1),
				Difficulty: models.DifficultyBeginner, EstimatedReadTime: 4,
				ViewCount: 120, DownloadCount: 9, IsPublished: true, IsFeatured: true,
				CreatedAt: base.AddDate(0, 0, -4), UpdatedAt: base.AddDate(0, 0, -4),
			},
			{
				ID: 2, Slug: "cardiac-cycle", Title: "Cardiac Cycle",
				Excerpt: "Systole and diastole.", Content: "One heartbeat in detail.",
				YearID: 1, UnitID: 2, LecturerID: lecturerID(2),
				Difficulty: models.DifficultyIntermediate, EstimatedReadTime: 6,
				ViewCount: 300, IsPublished: true,
				CreatedAt: base.AddDate(0, 0, -2), UpdatedAt: base.AddDate(0, 0, -1),
			},
			{
				ID: 3, Slug: "cell-injury-basics", Title: "Cell Injury Basics",
				Excerpt: "Reversible and irreversible injury.", Content: "Draft body.",
				YearID: 2, UnitID: 3,
				Difficulty: models.DifficultyAdvanced, EstimatedReadTime: 3,
				IsPublished: false,
				CreatedAt:   base.AddDate(0, 0, -1), UpdatedAt: base.AddDate(0, 0, -1),
			},
		},
		Units: []models.Unit{
			{ID: 1, YearID: 1, Name: "Anatomy", Code: "ANA101", Semester: 1, CreditHours: 4, LecturerID: lecturerID(1)},
			{ID: 2, YearID: 1, Name: "Physiology", Code: "PHY102", Semester: 1, CreditHours: 4},
			{ID: 3, YearID: 2, Name: "Pathology", Code: "PAT201", Semester: 2, CreditHours: 3},
		},
		Years: []models.Year{
			{ID: 1, YearNumber: 1, Name: "Year 1"},
			{ID: 2, YearNumber: 2, Name: "Year 2"},
		},
		Lecturers: []models.Lecturer{
			{ID: 1, Name: "Dr. A. Mwangi", Title: "Senior Lecturer"},
			{ID: 2, Name: "Prof. K. Otieno", Title: "Professor"},
		},
	}}

	cat := catalog.New(loader)
	require.NoError(t, cat.Refresh(context.Background()))
	return cat
}

func TestListNotesServesPublishedOnly(t *testing.T) {
	svc := NewNoteService(testCatalog(t), nil, nil)

	resp, err := svc.ListNotes(context.Background(), &dto.NoteFilterRequest{}, 1, 12)
	require.NoError(t, err)

	require.Len(t, resp.Notes, 2)
	assert.Equal(t, "cardiac-cycle", resp.Notes[0].Slug, "default order is newest first")
	assert.Equal(t, "upper-limb-osteology", resp.Notes[1].Slug)
	assert.Equal(t, int64(2), resp.Pagination.TotalItems)
}

func TestListNotesFeaturedRail(t *testing.T) {
	svc := NewNoteService(testCatalog(t), nil, nil)

	resp, err := svc.ListNotes(context.Background(), &dto.NoteFilterRequest{Featured: true}, 1, 12)
	require.NoError(t, err)

	require.Len(t, resp.Notes, 1)
	assert.Equal(t, "upper-limb-osteology", resp.Notes[0].Slug)
}

func TestListNotesResolvesDirectoryNames(t *testing.T) {
	svc := NewNoteService(testCatalog(t), nil, nil)

	resp, err := svc.ListNotes(context.Background(), &dto.NoteFilterRequest{UnitID: 1}, 1, 12)
	require.NoError(t, err)

	require.Len(t, resp.Notes, 1)
	card := resp.Notes[0]
	assert.Equal(t, "Year 1", card.YearName)
	assert.Equal(t, "Anatomy", card.UnitName)
	assert.Equal(t, "ANA101", card.UnitCode)
	assert.Equal(t, "Dr. A. Mwangi", card.LecturerName)
}

func TestListNotesPaginatesInMemory(t *testing.T) {
	svc := NewNoteService(testCatalog(t), nil, nil)

	resp, err := svc.ListNotes(context.Background(), &dto.NoteFilterRequest{}, 2, 1)
	require.NoError(t, err)

	require.Len(t, resp.Notes, 1)
	assert.Equal(t, "upper-limb-osteology", resp.Notes[0].Slug)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
	assert.Equal(t, 2, resp.Pagination.CurrentPage)
}

func TestSearchNotesRequiresQuery(t *testing.T) {
	svc := NewNoteService(testCatalog(t), nil, nil)

	_, err := svc.SearchNotes(context.Background(), &dto.NoteFilterRequest{Query: "   "}, 1, 12)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.EqualError(t, err, "Search query is required")
}

func TestSearchNotesMatchesExcerpt(t *testing.T) {
	svc := NewNoteService(testCatalog(t), nil, nil)

	resp, err := svc.SearchNotes(context.Background(), &dto.NoteFilterRequest{Query: "DIASTOLE"}, 1, 12)
	require.NoError(t, err)

	require.Len(t, resp.Notes, 1)
	assert.Equal(t, "cardiac-cycle", resp.Notes[0].Slug)
}

func TestGetNoteBySlugHidesDrafts(t *testing.T) {
	svc := NewNoteService(testCatalog(t), nil, nil)

	_, err := svc.GetNoteBySlug(context.Background(), "cell-injury-basics")
	assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)

	detail, err := svc.GetNoteBySlug(context.Background(), "upper-limb-osteology")
	require.NoError(t, err)
	assert.Equal(t, "The humerus is the longest bone of the upper limb.", detail.Content)
	assert.Equal(t, "Senior Lecturer", detail.LecturerTitle)
	assert.Equal(t, int64(9), detail.DownloadCount)
}

func TestRecordViewBuffersPublishedNotes(t *testing.T) {
	sink := &captureSink{}
	counter := viewcount.NewMemoryCounter(sink, time.Hour, nil)
	svc := NewNoteService(testCatalog(t), nil, counter)

	require.NoError(t, svc.RecordView(context.Background(), 1))
	require.NoError(t, svc.RecordView(context.Background(), 1))

	assert.ErrorIs(t, svc.RecordView(context.Background(), 3), apperrors.ErrNoteNotFound, "drafts cannot be viewed")
	assert.ErrorIs(t, svc.RecordView(context.Background(), 99), apperrors.ErrNoteNotFound)

	counter.Close()
	assert.Equal(t, map[int64]int64{1: 2}, sink.counts)
}

func TestAdminListingIncludesDrafts(t *testing.T) {
	svc := NewAdminNoteService(nil, testCatalog(t))

	all, err := svc.ListAllNotes(context.Background(), &dto.AdminNoteFilterRequest{}, 1, 12)
	require.NoError(t, err)
	assert.Len(t, all.Notes, 3)

	draftsOnly, err := svc.ListAllNotes(context.Background(), &dto.AdminNoteFilterRequest{Status: "draft"}, 1, 12)
	require.NoError(t, err)
	require.Len(t, draftsOnly.Notes, 1)
	assert.Equal(t, "cell-injury-basics", draftsOnly.Notes[0].Slug)
	assert.False(t, draftsOnly.Notes[0].IsPublished)
}

func TestDeriveDraftAppliesFormRules(t *testing.T) {
	svc := NewAdminNoteService(nil, nil)

	text := "Upper Limb Osteology!"
	resp, err := svc.DeriveDraft(context.Background(), &dto.DeriveDraftRequest{
		Draft:  dto.DraftState{Title: "Old", Slug: "old", YearID: 1, UnitID: 2},
		Update: dto.DraftUpdateRequest{Field: "title", Text: &text},
	})
	require.NoError(t, err)
	assert.Equal(t, "Upper Limb Osteology!", resp.Draft.Title)
	assert.Equal(t, "upper-limb-osteology", resp.Draft.Slug, "title edits rederive the slug")

	yearID := int64(2)
	resp, err = svc.DeriveDraft(context.Background(), &dto.DeriveDraftRequest{
		Draft:  dto.DraftState{YearID: 1, UnitID: 2},
		Update: dto.DraftUpdateRequest{Field: "year", ID: &yearID},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.Draft.YearID)
	assert.Zero(t, resp.Draft.UnitID, "changing the year clears the unit")
}

func TestDeriveDraftRejectsUnknownDifficulty(t *testing.T) {
	svc := NewAdminNoteService(nil, nil)

	text := "IMPOSSIBLE"
	_, err := svc.DeriveDraft(context.Background(), &dto.DeriveDraftRequest{
		Draft:  dto.DraftState{},
		Update: dto.DraftUpdateRequest{Field: "difficulty", Text: &text},
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestValidateReferences(t *testing.T) {
	snap := testCatalog(t).Snapshot()

	valid := models.Note{YearID: 1, UnitID: 1, LecturerID: lecturerID(2)}
	assert.NoError(t, validateReferences(snap, valid))

	assert.ErrorIs(t, validateReferences(snap, models.Note{YearID: 9, UnitID: 1}), apperrors.ErrYearNotFound)
	assert.ErrorIs(t, validateReferences(snap, models.Note{YearID: 1, UnitID: 9}), apperrors.ErrUnitNotFound)
	assert.ErrorIs(t, validateReferences(snap, models.Note{YearID: 2, UnitID: 1}), apperrors.ErrUnitYearMismatch,
		"unit 1 belongs to year 1")
	assert.ErrorIs(t, validateReferences(snap, models.Note{YearID: 1, UnitID: 1, LecturerID: lecturerID(9)}), apperrors.ErrLecturerNotFound)
}

func TestDirectoryCountsPublishedNotesOnly(t *testing.T) {
	svc := NewDirectoryService(testCatalog(t))

	years, err := svc.ListYears(context.Background())
	require.NoError(t, err)
	require.Len(t, years.Years, 2)
	assert.Equal(t, 2, years.Years[0].NoteCount)
	assert.Equal(t, 0, years.Years[1].NoteCount, "the only year 2 note is a draft")

	lecturers, err := svc.ListLecturers(context.Background())
	require.NoError(t, err)
	require.Len(t, lecturers.Lecturers, 2)
	assert.Equal(t, 1, lecturers.Lecturers[0].NoteCount)
}

func TestDirectoryYearDetail(t *testing.T) {
	svc := NewDirectoryService(testCatalog(t))

	year, err := svc.GetYear(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Year 1", year.Name)
	require.Len(t, year.Units, 2)
	assert.Equal(t, "ANA101", year.Units[0].Code)
	assert.Equal(t, 1, year.Units[0].NoteCount)
	assert.Equal(t, "Dr. A. Mwangi", year.Units[0].LecturerName)
	assert.Empty(t, year.Units[1].LecturerName, "unit without an assigned lecturer")

	_, err = svc.GetYear(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrYearNotFound)
}

func TestDirectoryUnitsNarrowedByYear(t *testing.T) {
	svc := NewDirectoryService(testCatalog(t))

	all, err := svc.ListUnits(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all.Units, 3)

	yearOne, err := svc.ListUnits(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, yearOne.Units, 2)

	_, err = svc.ListUnits(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrYearNotFound)
}
