package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/notehive/notehive-server/internal/app/models/dto"
	"github.com/notehive/notehive-server/internal/app/services"
	"github.com/notehive/notehive-server/internal/middleware"
	"github.com/notehive/notehive-server/internal/pkg/helpers"
)

// AdminNoteController handles the editor endpoints for managing notes
type AdminNoteController struct {
	adminNoteService services.AdminNoteService
	logger           zerolog.Logger
}

// NewAdminNoteController creates a new AdminNoteController
func NewAdminNoteController(adminNoteService services.AdminNoteService, logger zerolog.Logger) *AdminNoteController {
	return &AdminNoteController{
		adminNoteService: adminNoteService,
		logger:           logger,
	}
}

// ListNotes godoc
// @Summary List all notes
// @Description Get one page of the editor listing; drafts are included and the status filter picks the scope
// @Tags admin-notes
// @Produce json
// @Security ApiKeyAuth
// @Param q query string false "Search term matched against title and excerpt"
// @Param yearId query int false "Filter by academic year ID"
// @Param unitId query int false "Filter by unit ID"
// @Param lecturerId query int false "Filter by lecturer ID"
// @Param difficulty query string false "Filter by difficulty" Enums(BEGINNER, INTERMEDIATE, ADVANCED)
// @Param status query string false "Publication scope (default: all)" Enums(all, published, draft)
// @Param sort query string false "Sort order (default: newest)" Enums(newest, oldest, popular, title)
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 12, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.AdminNoteListResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /admin/notes [get]
func (c *AdminNoteController) ListNotes(ctx *gin.Context) {
	var filter dto.AdminNoteFilterRequest
	if !middleware.BindQuery(ctx, &filter) {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	notes, err := c.adminNoteService.ListAllNotes(ctx.Request.Context(), &filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(notes))
}

// GetNote godoc
// @Summary Get a note for editing
// @Description Get the editor view of one note, published or draft
// @Tags admin-notes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Note ID"
// @Success 200 {object} dto.APIResponse{data=dto.AdminNoteResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /admin/notes/{id} [get]
func (c *AdminNoteController) GetNote(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewAPIError(dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid note ID")))
		return
	}

	note, err := c.adminNoteService.GetNote(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(note))
}

// CreateNote godoc
// @Summary Create a note
// @Description Create a note from the full editor payload. Slug and read time are derived when left empty; validation reports the first broken form rule.
// @Tags admin-notes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.SaveNoteRequest true "Note payload"
// @Success 201 {object} dto.APIResponse{data=dto.AdminNoteResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail} "Slug already in use"
// @Router /admin/notes [post]
func (c *AdminNoteController) CreateNote(ctx *gin.Context) {
	var req dto.SaveNoteRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	note, err := c.adminNoteService.CreateNote(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("noteId", note.ID).Str("slug", note.Slug).Msg("Note created")
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(note))
}

// UpdateNote godoc
// @Summary Update a note
// @Description Replace a note with the full editor payload. View and download counters are preserved.
// @Tags admin-notes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Note ID"
// @Param request body dto.SaveNoteRequest true "Note payload"
// @Success 200 {object} dto.APIResponse{data=dto.AdminNoteResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail} "Slug already in use"
// @Router /admin/notes/{id} [put]
func (c *AdminNoteController) UpdateNote(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewAPIError(dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid note ID")))
		return
	}

	var req dto.SaveNoteRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	note, err := c.adminNoteService.UpdateNote(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("noteId", id).Msg("Note updated")
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(note))
}

// SetPublished godoc
// @Summary Publish or unpublish a note
// @Description Flip the publication state without touching the content
// @Tags admin-notes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Note ID"
// @Param request body dto.PublishRequest true "Target publication state"
// @Success 200 {object} dto.APIResponse{data=dto.AdminNoteResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /admin/notes/{id}/publish [patch]
func (c *AdminNoteController) SetPublished(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewAPIError(dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid note ID")))
		return
	}

	var req dto.PublishRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	note, err := c.adminNoteService.SetPublished(ctx.Request.Context(), id, *req.IsPublished)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("noteId", id).Bool("published", *req.IsPublished).Msg("Note publication state changed")
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(note))
}

// DeleteNote godoc
// @Summary Delete a note
// @Description Remove a note permanently
// @Tags admin-notes
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Note ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /admin/notes/{id} [delete]
func (c *AdminNoteController) DeleteNote(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewAPIError(dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid note ID")))
		return
	}

	if err := c.adminNoteService.DeleteNote(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Int64("noteId", id).Msg("Note deleted")
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Note deleted successfully"}))
}

// DeriveDraft godoc
// @Summary Apply a form edit to a draft
// @Description Apply one field edit to a draft and get the next state back. Title edits rederive the slug, content edits rederive the read time, year changes clear the unit. Nothing is stored.
// @Tags admin-notes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.DeriveDraftRequest true "Draft state and the edit to apply"
// @Success 200 {object} dto.APIResponse{data=dto.DeriveDraftResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /admin/notes/derive [post]
func (c *AdminNoteController) DeriveDraft(ctx *gin.Context) {
	var req dto.DeriveDraftRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	draft, err := c.adminNoteService.DeriveDraft(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(draft))
}
