package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/notehive/notehive-server/internal/app/models/dto"
	"github.com/notehive/notehive-server/internal/app/services"
	"github.com/notehive/notehive-server/internal/middleware"
)

// DirectoryController serves the browse structure endpoints
type DirectoryController struct {
	directoryService *services.DirectoryService
}

// NewDirectoryController creates a new DirectoryController
func NewDirectoryController(directoryService *services.DirectoryService) *DirectoryController {
	return &DirectoryController{
		directoryService: directoryService,
	}
}

// ListYears godoc
// @Summary List academic years
// @Description Get every academic year with its published note count
// @Tags directory
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.YearListResponse}
// @Router /years [get]
func (c *DirectoryController) ListYears(ctx *gin.Context) {
	years, err := c.directoryService.ListYears(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(years))
}

// GetYear godoc
// @Summary Get an academic year
// @Description Get one academic year together with its units
// @Tags directory
// @Produce json
// @Param id path int true "Year ID"
// @Success 200 {object} dto.APIResponse{data=dto.YearDetailResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /years/{id} [get]
func (c *DirectoryController) GetYear(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewAPIError(dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid year ID")))
		return
	}

	year, err := c.directoryService.GetYear(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(year))
}

// ListUnits godoc
// @Summary List units
// @Description Get the teaching units, optionally narrowed to one academic year
// @Tags directory
// @Produce json
// @Param yearId query int false "Only units of this academic year"
// @Success 200 {object} dto.APIResponse{data=dto.UnitListResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /units [get]
func (c *DirectoryController) ListUnits(ctx *gin.Context) {
	var yearID int64
	if raw := ctx.Query("yearId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			ctx.JSON(http.StatusBadRequest, dto.NewAPIError(dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid year ID")))
			return
		}
		yearID = parsed
	}

	units, err := c.directoryService.ListUnits(ctx.Request.Context(), yearID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(units))
}

// ListLecturers godoc
// @Summary List lecturers
// @Description Get the lecturer directory with published note counts
// @Tags directory
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.LecturerListResponse}
// @Router /lecturers [get]
func (c *DirectoryController) ListLecturers(ctx *gin.Context) {
	lecturers, err := c.directoryService.ListLecturers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(lecturers))
}
