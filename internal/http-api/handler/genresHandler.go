package handler

import (
	"errors"
	"net/http"

	"animehub/internal/http-api/dto"
	"animehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	genreService service.GenreService
}

func NewGenreHandler(genreService service.GenreService) *GenreHandler {
	return &GenreHandler{genreService: genreService}
}

// RegisterRoutes wires genre routes: anyone can read the list, only admins
// add to it.
func (h *GenreHandler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("", h.List)
	admin.POST("/genres", h.Create)
}

func (h *GenreHandler) List(c *gin.Context) {
	genres, err := h.genreService.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list genres"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": genres})
}

// Create upserts a genre by name, so re-posting an existing name is not an
// error.
func (h *GenreHandler) Create(c *gin.Context) {
	var req dto.CreateGenreDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	genre, err := h.genreService.Upsert(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, service.ErrGenreNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create genre"})
		return
	}

	c.JSON(http.StatusCreated, genre)
}
