// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/notehive/notehive-server/internal/app/models/dto"
	"github.com/notehive/notehive-server/internal/app/services"
	"github.com/notehive/notehive-server/internal/middleware"
	"github.com/notehive/notehive-server/internal/pkg/helpers"
)

// parseIDParam parses an ID parameter from the request path
func parseIDParam(ctx *gin.Context, paramName string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// NoteController handles the student-facing note endpoints
type NoteController struct {
	noteService services.NoteService
	logger      zerolog.Logger
}

// NewNoteController creates a new NoteController
func NewNoteController(noteService services.NoteService, logger zerolog.Logger) *NoteController {
	return &NoteController{
		noteService: noteService,
		logger:      logger,
	}
}

// ListNotes godoc
// @Summary List published notes
// @Description Get one page of published notes, filtered and sorted. Use featured=true for the featured rail.
// @Tags notes
// @Produce json
// @Param q query string false "Search term matched against title and excerpt"
// @Param yearId query int false "Filter by academic year ID"
// @Param unitId query int false "Filter by unit ID"
// @Param lecturerId query int false "Filter by lecturer ID"
// @Param difficulty query string false "Filter by difficulty" Enums(BEGINNER, INTERMEDIATE, ADVANCED)
// @Param featured query bool false "Only notes picked for the featured rail"
// @Param sort query string false "Sort order (default: newest)" Enums(newest, oldest, popular, title)
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 12, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.NoteListResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes [get]
func (c *NoteController) ListNotes(ctx *gin.Context) {
	var filter dto.NoteFilterRequest
	if !middleware.BindQuery(ctx, &filter) {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	notes, err := c.noteService.ListNotes(ctx.Request.Context(), &filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(notes))
}

// SearchNotes godoc
// @Summary Search published notes
// @Description Full listing pipeline with a required search term
// @Tags notes
// @Produce json
// @Param q query string true "Search term"
// @Param yearId query int false "Filter by academic year ID"
// @Param unitId query int false "Filter by unit ID"
// @Param lecturerId query int false "Filter by lecturer ID"
// @Param difficulty query string false "Filter by difficulty" Enums(BEGINNER, INTERMEDIATE, ADVANCED)
// @Param sort query string false "Sort order (default: newest)" Enums(newest, oldest, popular, title)
// @Param page query int false "Page number (default: 1)"
// @Param size query int false "Page size (default: 12, max: 100)"
// @Success 200 {object} dto.APIResponse{data=dto.NoteListResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /search [get]
func (c *NoteController) SearchNotes(ctx *gin.Context) {
	var filter dto.NoteFilterRequest
	if !middleware.BindQuery(ctx, &filter) {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	notes, err := c.noteService.SearchNotes(ctx.Request.Context(), &filter, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(notes))
}

// GetNoteBySlug godoc
// @Summary Get a note by slug
// @Description Get the full reading view of one published note
// @Tags notes
// @Produce json
// @Param slug path string true "Note slug"
// @Success 200 {object} dto.APIResponse{data=dto.NoteDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes/{slug} [get]
func (c *NoteController) GetNoteBySlug(ctx *gin.Context) {
	note, err := c.noteService.GetNoteBySlug(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(note))
}

// RecordView godoc
// @Summary Record a note view
// @Description Register one view of a note. Counts are buffered and applied in batches, so the response comes back before the database is touched.
// @Tags notes
// @Produce json
// @Param id path int true "Note ID"
// @Success 202 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes/{id}/view [post]
func (c *NoteController) RecordView(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewAPIError(dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid note ID")))
		return
	}

	if err := c.noteService.RecordView(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusAccepted, dto.NewAPIResponse(dto.SuccessResponse{Message: "View recorded"}))
}

// RecordDownload godoc
// @Summary Record a note download
// @Description Increment the download counter of a note
// @Tags notes
// @Produce json
// @Param id path int true "Note ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes/{id}/download [post]
func (c *NoteController) RecordDownload(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewAPIError(dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid note ID")))
		return
	}

	if err := c.noteService.RecordDownload(ctx.Request.Context(), id); err != nil {
		c.logger.Warn().Err(err).Int64("noteId", id).Msg("Recording download failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuccessResponse{Message: "Download recorded"}))
}
