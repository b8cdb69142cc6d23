package services

import (
	"context"

	"github.com/notehive/notehive-server/internal/app/catalog"
	"github.com/notehive/notehive-server/internal/app/drafts"
	"github.com/notehive/notehive-server/internal/app/models"
	"github.com/notehive/notehive-server/internal/app/models/dto"
	"github.com/notehive/notehive-server/internal/app/repositories"
	"github.com/notehive/notehive-server/internal/pkg/apperrors"
	"github.com/notehive/notehive-server/internal/pkg/helpers"
)

// AdminNoteService defines the editor-facing note operations
type AdminNoteService interface {
	ListAllNotes(ctx context.Context, filter *dto.AdminNoteFilterRequest, page, size int) (*dto.AdminNoteListResponse, error)
	GetNote(ctx context.Context, id int64) (*dto.AdminNoteResponse, error)
	CreateNote(ctx context.Context, req *dto.SaveNoteRequest) (*dto.AdminNoteResponse, error)
	UpdateNote(ctx context.Context, id int64, req *dto.SaveNoteRequest) (*dto.AdminNoteResponse, error)
	SetPublished(ctx context.Context, id int64, published bool) (*dto.AdminNoteResponse, error)
	DeleteNote(ctx context.Context, id int64) error
	DeriveDraft(ctx context.Context, req *dto.DeriveDraftRequest) (*dto.DeriveDraftResponse, error)
}

// adminNoteServiceImpl implements AdminNoteService
type adminNoteServiceImpl struct {
	noteRepo *repositories.NoteRepository
	catalog  *catalog.Catalog
}

// NewAdminNoteService creates a new AdminNoteService
func NewAdminNoteService(noteRepo *repositories.NoteRepository, cat *catalog.Catalog) AdminNoteService {
	return &adminNoteServiceImpl{
		noteRepo: noteRepo,
		catalog:  cat,
	}
}

// ListAllNotes returns one page of the editor listing. Unlike the student
// listing, drafts are visible and the status filter picks the scope.
func (s *adminNoteServiceImpl) ListAllNotes(_ context.Context, filter *dto.AdminNoteFilterRequest, page, size int) (*dto.AdminNoteListResponse, error) {
	snap := s.catalog.Snapshot()
	notes := listPage(snap, adminCriteria(filter), models.ParseSortKey(filter.Sort), page, size)

	responses := make([]dto.AdminNoteResponse, 0, len(notes.items))
	for _, n := range notes.items {
		responses = append(responses, newAdminNoteResponse(snap, n))
	}

	return &dto.AdminNoteListResponse{
		Notes:      responses,
		Pagination: helpers.NewPaginationInfo(notes.total, page, size),
	}, nil
}

// GetNote returns the editor view of one note. The note itself is read from
// the database so the editor always sees the latest write.
func (s *adminNoteServiceImpl) GetNote(ctx context.Context, id int64) (*dto.AdminNoteResponse, error) {
	note, err := s.noteRepo.GetNoteByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := newAdminNoteResponse(s.catalog.Snapshot(), *note)
	return &resp, nil
}

// CreateNote validates the payload through the draft pipeline and stores the
// note
func (s *adminNoteServiceImpl) CreateNote(ctx context.Context, req *dto.SaveNoteRequest) (*dto.AdminNoteResponse, error) {
	note, err := draftFromRequest(req).Finalize()
	if err != nil {
		return nil, err
	}
	if err := validateReferences(s.catalog.Snapshot(), note); err != nil {
		return nil, err
	}

	id, err := s.noteRepo.CreateNote(ctx, &note)
	if err != nil {
		return nil, err
	}

	s.refresh(ctx)
	return s.GetNote(ctx, id)
}

// UpdateNote replaces the stored note with the validated payload. Counters
// and creation time are untouched.
func (s *adminNoteServiceImpl) UpdateNote(ctx context.Context, id int64, req *dto.SaveNoteRequest) (*dto.AdminNoteResponse, error) {
	// A missing note is reported before any payload problem
	if _, err := s.noteRepo.GetNoteByID(ctx, id); err != nil {
		return nil, err
	}

	draft := draftFromRequest(req)
	draft.NoteID = id
	note, err := draft.Finalize()
	if err != nil {
		return nil, err
	}
	if err := validateReferences(s.catalog.Snapshot(), note); err != nil {
		return nil, err
	}

	if err := s.noteRepo.UpdateNote(ctx, &note); err != nil {
		return nil, err
	}

	s.refresh(ctx)
	return s.GetNote(ctx, id)
}

// SetPublished flips the publication state of a note
func (s *adminNoteServiceImpl) SetPublished(ctx context.Context, id int64, published bool) (*dto.AdminNoteResponse, error) {
	if err := s.noteRepo.SetPublished(ctx, id, published); err != nil {
		return nil, err
	}

	s.refresh(ctx)
	return s.GetNote(ctx, id)
}

// DeleteNote removes a note permanently
func (s *adminNoteServiceImpl) DeleteNote(ctx context.Context, id int64) error {
	if err := s.noteRepo.DeleteNote(ctx, id); err != nil {
		return err
	}

	s.refresh(ctx)
	return nil
}

// DeriveDraft applies one form edit to a draft and returns the next state.
// Nothing is stored; the endpoint exists so clients never re-implement the
// slug and read time rules.
func (s *adminNoteServiceImpl) DeriveDraft(_ context.Context, req *dto.DeriveDraftRequest) (*dto.DeriveDraftResponse, error) {
	draft := draftFromState(req.Draft)
	if err := draft.Apply(updateFromRequest(req.Update)); err != nil {
		return nil, err
	}

	return &dto.DeriveDraftResponse{Draft: stateFromDraft(draft)}, nil
}

// refresh reloads the catalog after a successful write. On failure the
// previous snapshot stays in place and the catalog has logged the cause; the
// database already holds the new state.
func (s *adminNoteServiceImpl) refresh(ctx context.Context) {
	_ = s.catalog.Refresh(ctx)
}

// adminCriteria maps an editor listing request to filter criteria
func adminCriteria(filter *dto.AdminNoteFilterRequest) catalog.Criteria {
	return catalog.Criteria{
		Search:       filter.Query,
		YearID:       filter.YearID,
		UnitID:       filter.UnitID,
		LecturerID:   filter.LecturerID,
		Difficulty:   models.DifficultyLevel(filter.Difficulty),
		Scope:        models.ParseStatusScope(filter.Status),
		FeaturedOnly: filter.Featured,
	}
}

// validateReferences checks that the note points at existing catalogue
// entries and that the unit is actually offered in the selected year.
func validateReferences(snap *catalog.Snapshot, n models.Note) error {
	if _, ok := snap.YearByID(n.YearID); !ok {
		return apperrors.ErrYearNotFound
	}

	unit, ok := snap.UnitByID(n.UnitID)
	if !ok {
		return apperrors.ErrUnitNotFound
	}
	if unit.YearID != n.YearID {
		return apperrors.ErrUnitYearMismatch
	}

	if n.LecturerID != nil {
		if _, ok := snap.LecturerByID(*n.LecturerID); !ok {
			return apperrors.ErrLecturerNotFound
		}
	}

	return nil
}

// draftFromRequest builds a draft from a complete save payload. Fields are
// assigned as given rather than routed through the setters: an explicit slug
// or read time must not be overwritten by derivation, and Finalize fills
// whatever the client left empty.
func draftFromRequest(req *dto.SaveNoteRequest) *drafts.Draft {
	d := &drafts.Draft{
		Title:             req.Title,
		Slug:              req.Slug,
		Excerpt:           req.Excerpt,
		Content:           req.Content,
		YearID:            req.YearID,
		UnitID:            req.UnitID,
		Difficulty:        models.DifficultyLevel(req.Difficulty),
		EstimatedReadTime: req.EstimatedReadTime,
		IsPublished:       req.IsPublished,
		IsFeatured:        req.IsFeatured,
	}
	if req.LecturerID != nil {
		d.LecturerID = *req.LecturerID
	}
	return d
}

// draftFromState restores a draft from its wire representation
func draftFromState(st dto.DraftState) *drafts.Draft {
	return &drafts.Draft{
		NoteID:            st.NoteID,
		Title:             st.Title,
		Slug:              st.Slug,
		Excerpt:           st.Excerpt,
		Content:           st.Content,
		YearID:            st.YearID,
		UnitID:            st.UnitID,
		LecturerID:        st.LecturerID,
		Difficulty:        models.DifficultyLevel(st.Difficulty),
		EstimatedReadTime: st.EstimatedReadTime,
		IsPublished:       st.IsPublished,
		IsFeatured:        st.IsFeatured,
	}
}

// stateFromDraft converts a draft back to its wire representation
func stateFromDraft(d *drafts.Draft) dto.DraftState {
	return dto.DraftState{
		NoteID:            d.NoteID,
		Title:             d.Title,
		Slug:              d.Slug,
		Excerpt:           d.Excerpt,
		Content:           d.Content,
		YearID:            d.YearID,
		UnitID:            d.UnitID,
		LecturerID:        d.LecturerID,
		Difficulty:        string(d.Difficulty),
		EstimatedReadTime: d.EstimatedReadTime,
		IsPublished:       d.IsPublished,
		IsFeatured:        d.IsFeatured,
	}
}

// updateFromRequest converts a form edit to its typed draft counterpart
func updateFromRequest(req dto.DraftUpdateRequest) drafts.FieldUpdate {
	u := drafts.FieldUpdate{Field: drafts.Field(req.Field)}
	if req.Text != nil {
		u.Text = *req.Text
	}
	if req.ID != nil {
		u.ID = *req.ID
	}
	if req.Flag != nil {
		u.Flag = *req.Flag
	}
	return u
}

// newAdminNoteResponse builds the editor view, which includes the publication
// state hidden from students.
func newAdminNoteResponse(snap *catalog.Snapshot, n models.Note) dto.AdminNoteResponse {
	return dto.AdminNoteResponse{
		NoteDetail:  newNoteDetail(snap, n),
		IsPublished: n.IsPublished,
	}
}
