package handler

import (
	"errors"
	"net/http"

	"animehub/internal/http-api/dto"
	"animehub/internal/http-api/middleware"
	"animehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type LibraryHandler struct {
	libraryService service.LibraryService
}

func NewLibraryHandler(libraryService service.LibraryService) *LibraryHandler {
	return &LibraryHandler{libraryService: libraryService}
}

// RegisterRoutes wires the personal library. Everything here is scoped to
// the session user.
func (h *LibraryHandler) RegisterRoutes(session *gin.RouterGroup) {
	session.POST("", h.Add)
	session.GET("", h.List)
	session.PUT("/:id", h.Update)
	session.DELETE("/:id", h.Remove)
}

func (h *LibraryHandler) Add(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.AddLibraryEntryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.libraryService.Add(c.Request.Context(), user.ID, req.SeasonID, req.Status, req.Progress)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidWatchStatus), errors.Is(err, service.ErrInvalidProgress):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrSeasonNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrDuplicateEntry):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add library entry"})
		}
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// List handles GET /api/library with an optional ?status= filter.
func (h *LibraryHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	entries, err := h.libraryService.List(c.Request.Context(), user.ID, c.Query("status"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidWatchStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list library"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}

func (h *LibraryHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	entryID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	var req dto.UpdateLibraryEntryDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.libraryService.Update(c.Request.Context(), user.ID, entryID, req.Status, req.Progress)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidWatchStatus), errors.Is(err, service.ErrInvalidProgress):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrEntryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update library entry"})
		}
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *LibraryHandler) Remove(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	entryID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id"})
		return
	}

	if err := h.libraryService.Remove(c.Request.Context(), user.ID, entryID); err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove library entry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "library entry removed"})
}
