package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notehive/notehive-server/internal/app/models/dto"
	"github.com/notehive/notehive-server/internal/app/services"
	"github.com/notehive/notehive-server/internal/pkg/apperrors"
	"github.com/notehive/notehive-server/internal/pkg/logger"
)

type stubNoteService struct {
	listFn     func(filter *dto.NoteFilterRequest, page, size int) (*dto.NoteListResponse, error)
	searchFn   func(filter *dto.NoteFilterRequest, page, size int) (*dto.NoteListResponse, error)
	bySlugFn   func(slug string) (*dto.NoteDetail, error)
	viewFn     func(id int64) error
	downloadFn func(id int64) error
}

func (s *stubNoteService) ListNotes(_ context.Context, filter *dto.NoteFilterRequest, page, size int) (*dto.NoteListResponse, error) {
	return s.listFn(filter, page, size)
}

func (s *stubNoteService) SearchNotes(_ context.Context, filter *dto.NoteFilterRequest, page, size int) (*dto.NoteListResponse, error) {
	return s.searchFn(filter, page, size)
}

func (s *stubNoteService) GetNoteBySlug(_ context.Context, slug string) (*dto.NoteDetail, error) {
	return s.bySlugFn(slug)
}

func (s *stubNoteService) RecordView(_ context.Context, id int64) error {
	return s.viewFn(id)
}

func (s *stubNoteService) RecordDownload(_ context.Context, id int64) error {
	return s.downloadFn(id)
}

func newNoteRouter(svc services.NoteService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	ctrl := NewNoteController(svc, logger.With("test"))
	router.GET("/api/v1/notes", ctrl.ListNotes)
	router.GET("/api/v1/notes/:slug", ctrl.GetNoteBySlug)
	router.GET("/api/v1/search", ctrl.SearchNotes)
	router.POST("/api/v1/notes/:id/view", ctrl.RecordView)
	router.POST("/api/v1/notes/:id/download", ctrl.RecordDownload)
	return router
}

func performRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type errorEnvelope struct {
	Error *dto.ErrorDetail `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) *dto.ErrorDetail {
	t.Helper()
	var envelope errorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	return envelope.Error
}

func TestListNotesPassesFilterAndPaging(t *testing.T) {
	var gotFilter *dto.NoteFilterRequest
	var gotPage, gotSize int

	svc := &stubNoteService{
		listFn: func(filter *dto.NoteFilterRequest, page, size int) (*dto.NoteListResponse, error) {
			gotFilter, gotPage, gotSize = filter, page, size
			return &dto.NoteListResponse{
				Notes:      []dto.NoteSummary{{ID: 1, Slug: "upper-limb-osteology"}},
				Pagination: dto.PaginationInfo{CurrentPage: page, PageSize: size, TotalItems: 1, TotalPages: 1},
			}, nil
		},
	}
	router := newNoteRouter(svc)

	w := performRequest(router, http.MethodGet, "/api/v1/notes?featured=true&yearId=2&sort=popular&page=3&size=6")
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, gotFilter)
	assert.True(t, gotFilter.Featured)
	assert.Equal(t, int64(2), gotFilter.YearID)
	assert.Equal(t, "popular", gotFilter.Sort)
	assert.Equal(t, 3, gotPage)
	assert.Equal(t, 6, gotSize)

	var envelope struct {
		Data *dto.NoteListResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Data)
	require.Len(t, envelope.Data.Notes, 1)
	assert.Equal(t, "upper-limb-osteology", envelope.Data.Notes[0].Slug)
}

func TestListNotesRejectsUnknownDifficulty(t *testing.T) {
	router := newNoteRouter(&stubNoteService{})

	w := performRequest(router, http.MethodGet, "/api/v1/notes?difficulty=IMPOSSIBLE")
	require.Equal(t, http.StatusBadRequest, w.Code)

	detail := decodeError(t, w)
	assert.Equal(t, dto.ErrorCodeValidationFailed, detail.Code)
	assert.Contains(t, detail.Message, "must be one of")
}

func TestGetNoteBySlugMapsNotFound(t *testing.T) {
	svc := &stubNoteService{
		bySlugFn: func(string) (*dto.NoteDetail, error) {
			return nil, apperrors.ErrNoteNotFound
		},
	}
	router := newNoteRouter(svc)

	w := performRequest(router, http.MethodGet, "/api/v1/notes/missing-note")
	require.Equal(t, http.StatusNotFound, w.Code)

	detail := decodeError(t, w)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, detail.Code)
	assert.Equal(t, "note not found", detail.Message)
}

func TestSearchSurfacesValidationMessage(t *testing.T) {
	svc := &stubNoteService{
		searchFn: func(*dto.NoteFilterRequest, int, int) (*dto.NoteListResponse, error) {
			return nil, apperrors.NewValidationError("Search query is required")
		},
	}
	router := newNoteRouter(svc)

	w := performRequest(router, http.MethodGet, "/api/v1/search")
	require.Equal(t, http.StatusBadRequest, w.Code)

	detail := decodeError(t, w)
	assert.Equal(t, dto.ErrorCodeValidationFailed, detail.Code)
	assert.Equal(t, "Search query is required", detail.Message, "the form rule text reaches the client unchanged")
}

func TestRecordViewAccepted(t *testing.T) {
	var recorded int64
	svc := &stubNoteService{
		viewFn: func(id int64) error {
			recorded = id
			return nil
		},
	}
	router := newNoteRouter(svc)

	w := performRequest(router, http.MethodPost, "/api/v1/notes/15/view")
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, int64(15), recorded)
}

func TestRecordViewRejectsBadID(t *testing.T) {
	router := newNoteRouter(&stubNoteService{})

	for _, path := range []string{"/api/v1/notes/abc/view", "/api/v1/notes/0/view", "/api/v1/notes/-3/view"} {
		w := performRequest(router, http.MethodPost, path)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestRecordDownloadNotFound(t *testing.T) {
	svc := &stubNoteService{
		downloadFn: func(int64) error {
			return apperrors.ErrNoteNotFound
		},
	}
	router := newNoteRouter(svc)

	w := performRequest(router, http.MethodPost, "/api/v1/notes/42/download")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
