package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notehive/notehive-server/internal/app/drafts"
	"github.com/notehive/notehive-server/internal/app/models/dto"
	"github.com/notehive/notehive-server/internal/app/services"
	"github.com/notehive/notehive-server/internal/pkg/apperrors"
	"github.com/notehive/notehive-server/internal/pkg/logger"
)

type stubAdminNoteService struct {
	listFn    func(filter *dto.AdminNoteFilterRequest, page, size int) (*dto.AdminNoteListResponse, error)
	getFn     func(id int64) (*dto.AdminNoteResponse, error)
	createFn  func(req *dto.SaveNoteRequest) (*dto.AdminNoteResponse, error)
	updateFn  func(id int64, req *dto.SaveNoteRequest) (*dto.AdminNoteResponse, error)
	publishFn func(id int64, published bool) (*dto.AdminNoteResponse, error)
	deleteFn  func(id int64) error
	deriveFn  func(req *dto.DeriveDraftRequest) (*dto.DeriveDraftResponse, error)
}

func (s *stubAdminNoteService) ListAllNotes(_ context.Context, filter *dto.AdminNoteFilterRequest, page, size int) (*dto.AdminNoteListResponse, error) {
	return s.listFn(filter, page, size)
}

func (s *stubAdminNoteService) GetNote(_ context.Context, id int64) (*dto.AdminNoteResponse, error) {
	return s.getFn(id)
}

func (s *stubAdminNoteService) CreateNote(_ context.Context, req *dto.SaveNoteRequest) (*dto.AdminNoteResponse, error) {
	return s.createFn(req)
}

func (s *stubAdminNoteService) UpdateNote(_ context.Context, id int64, req *dto.SaveNoteRequest) (*dto.AdminNoteResponse, error) {
	return s.updateFn(id, req)
}

func (s *stubAdminNoteService) SetPublished(_ context.Context, id int64, published bool) (*dto.AdminNoteResponse, error) {
	return s.publishFn(id, published)
}

func (s *stubAdminNoteService) DeleteNote(_ context.Context, id int64) error {
	return s.deleteFn(id)
}

func (s *stubAdminNoteService) DeriveDraft(_ context.Context, req *dto.DeriveDraftRequest) (*dto.DeriveDraftResponse, error) {
	return s.deriveFn(req)
}

func newAdminRouter(svc services.AdminNoteService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	ctrl := NewAdminNoteController(svc, logger.With("test"))
	router.GET("/api/v1/admin/notes", ctrl.ListNotes)
	router.POST("/api/v1/admin/notes", ctrl.CreateNote)
	router.POST("/api/v1/admin/notes/derive", ctrl.DeriveDraft)
	router.GET("/api/v1/admin/notes/:id", ctrl.GetNote)
	router.PUT("/api/v1/admin/notes/:id", ctrl.UpdateNote)
	router.PATCH("/api/v1/admin/notes/:id/publish", ctrl.SetPublished)
	router.DELETE("/api/v1/admin/notes/:id", ctrl.DeleteNote)
	return router
}

func performJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateNoteReturnsCreated(t *testing.T) {
	var gotReq *dto.SaveNoteRequest

	svc := &stubAdminNoteService{
		createFn: func(req *dto.SaveNoteRequest) (*dto.AdminNoteResponse, error) {
			gotReq = req
			resp := &dto.AdminNoteResponse{IsPublished: req.IsPublished}
			resp.ID = 42
			resp.Slug = "upper-limb-osteology"
			resp.Title = req.Title
			return resp, nil
		},
	}
	router := newAdminRouter(svc)

	body := `{"title":"Upper Limb Osteology","content":"The humerus...","yearId":1,"unitId":3}`
	w := performJSON(router, http.MethodPost, "/api/v1/admin/notes", body)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, gotReq)
	assert.Equal(t, "Upper Limb Osteology", gotReq.Title)
	assert.Equal(t, int64(1), gotReq.YearID)
	assert.False(t, gotReq.IsPublished)
}

func TestCreateNoteSurfacesFormRuleMessage(t *testing.T) {
	svc := &stubAdminNoteService{
		createFn: func(req *dto.SaveNoteRequest) (*dto.AdminNoteResponse, error) {
			return nil, &drafts.FieldError{Field: "title", Message: "Title is required"}
		},
	}
	router := newAdminRouter(svc)

	w := performJSON(router, http.MethodPost, "/api/v1/admin/notes", `{"content":"body only"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	detail := decodeError(t, w)
	assert.Equal(t, "Title is required", detail.Message)
	assert.Equal(t, "title", detail.Field)
}

func TestCreateNoteRejectsUnknownDifficulty(t *testing.T) {
	router := newAdminRouter(&stubAdminNoteService{})

	body := `{"title":"T","content":"C","yearId":1,"unitId":1,"difficultyLevel":"BRUTAL"}`
	w := performJSON(router, http.MethodPost, "/api/v1/admin/notes", body)

	require.Equal(t, http.StatusBadRequest, w.Code)
	detail := decodeError(t, w)
	assert.Contains(t, detail.Message, "must be one of")
}

func TestUpdateNoteMapsNotFound(t *testing.T) {
	svc := &stubAdminNoteService{
		updateFn: func(id int64, req *dto.SaveNoteRequest) (*dto.AdminNoteResponse, error) {
			return nil, apperrors.ErrNoteNotFound
		},
	}
	router := newAdminRouter(svc)

	body := `{"title":"T","content":"C","yearId":1,"unitId":1}`
	w := performJSON(router, http.MethodPut, "/api/v1/admin/notes/99", body)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, decodeError(t, w).Code)
}

func TestSetPublishedTogglesFlag(t *testing.T) {
	var gotID int64
	var gotFlag bool

	svc := &stubAdminNoteService{
		publishFn: func(id int64, published bool) (*dto.AdminNoteResponse, error) {
			gotID, gotFlag = id, published
			resp := &dto.AdminNoteResponse{IsPublished: published}
			resp.ID = id
			return resp, nil
		},
	}
	router := newAdminRouter(svc)

	w := performJSON(router, http.MethodPatch, "/api/v1/admin/notes/7/publish", `{"isPublished":true}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), gotID)
	assert.True(t, gotFlag)
}

func TestSetPublishedRequiresFlag(t *testing.T) {
	// An absent flag must not silently unpublish, so the field is a
	// required pointer rather than a plain bool.
	router := newAdminRouter(&stubAdminNoteService{})

	w := performJSON(router, http.MethodPatch, "/api/v1/admin/notes/7/publish", `{}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	detail := decodeError(t, w)
	assert.Equal(t, "IsPublished is required", detail.Message)
}

func TestDeleteNoteReportsSuccess(t *testing.T) {
	var gotID int64

	svc := &stubAdminNoteService{
		deleteFn: func(id int64) error {
			gotID = id
			return nil
		},
	}
	router := newAdminRouter(svc)

	w := performRequest(router, http.MethodDelete, "/api/v1/admin/notes/15")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(15), gotID)
}

func TestDeriveDraftReturnsNextState(t *testing.T) {
	var gotReq *dto.DeriveDraftRequest

	svc := &stubAdminNoteService{
		deriveFn: func(req *dto.DeriveDraftRequest) (*dto.DeriveDraftResponse, error) {
			gotReq = req
			next := req.Draft
			next.Title = *req.Update.Text
			next.Slug = "upper-limb-osteology"
			return &dto.DeriveDraftResponse{Draft: next}, nil
		},
	}
	router := newAdminRouter(svc)

	body := `{"draft":{"title":"","slug":""},"update":{"field":"title","text":"Upper Limb Osteology"}}`
	w := performJSON(router, http.MethodPost, "/api/v1/admin/notes/derive", body)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotReq)
	assert.Equal(t, "title", gotReq.Update.Field)

	var envelope struct {
		Data dto.DeriveDraftResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "upper-limb-osteology", envelope.Data.Draft.Slug)
}

func TestDeriveDraftRejectsUnknownField(t *testing.T) {
	router := newAdminRouter(&stubAdminNoteService{})

	body := `{"draft":{},"update":{"field":"colour","text":"x"}}`
	w := performJSON(router, http.MethodPost, "/api/v1/admin/notes/derive", body)

	require.Equal(t, http.StatusBadRequest, w.Code)
	detail := decodeError(t, w)
	assert.Contains(t, detail.Message, "must be one of")
}
