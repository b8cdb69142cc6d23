package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/notehive/notehive-server/internal/app/controllers"
	"github.com/notehive/notehive-server/internal/app/models/dto"
	"github.com/notehive/notehive-server/internal/middleware"
	"github.com/notehive/notehive-server/internal/pkg/websocket"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	noteController *controllers.NoteController,
	directoryController *controllers.DirectoryController,
	adminNoteController *controllers.AdminNoteController,
	authController *controllers.AuthController,
	eventsHandler *websocket.Handler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public note routes ---
	notes := v1.Group("/notes")
	{
		notes.GET("", noteController.ListNotes)
		notes.GET("/:slug", noteController.GetNoteBySlug)
		notes.POST("/:id/view", noteController.RecordView)
		notes.POST("/:id/download", noteController.RecordDownload)
	}
	v1.GET("/search", noteController.SearchNotes)

	// --- Public catalogue directory routes ---
	years := v1.Group("/years")
	{
		years.GET("", directoryController.ListYears)
		years.GET("/:id", directoryController.GetYear)
	}
	v1.GET("/units", directoryController.ListUnits)
	v1.GET("/lecturers", directoryController.ListLecturers)

	// Catalogue change events over WebSocket
	v1.GET("/events", eventsHandler.HandleConnection)

	// --- Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)

		// Routes that require a valid access token
		authProtected := auth.Group("")
		authProtected.Use(authMiddleware.RequireAdmin())
		{
			authProtected.POST("/logout", authController.Logout)
			authProtected.GET("/me", authController.GetProfile)
		}
	}

	// --- Editor routes ---
	admin := v1.Group("/admin")
	admin.Use(authMiddleware.RequireAdmin())
	{
		adminNotes := admin.Group("/notes")
		{
			adminNotes.GET("", adminNoteController.ListNotes)
			adminNotes.POST("", adminNoteController.CreateNote)
			adminNotes.POST("/derive", adminNoteController.DeriveDraft)
			adminNotes.GET("/:id", adminNoteController.GetNote)
			adminNotes.PUT("/:id", adminNoteController.UpdateNote)
			adminNotes.PATCH("/:id/publish", adminNoteController.SetPublished)
			adminNotes.DELETE("/:id", adminNoteController.DeleteNote)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"status": "ok"}))
	})
}
