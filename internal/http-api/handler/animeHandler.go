package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"animehub/internal/http-api/dto"
	"animehub/internal/http-api/middleware"
	"animehub/internal/http-api/models"
	"animehub/internal/http-api/repository"
	"animehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// maxPosterBytes caps uploaded poster size at 8 MiB.
const maxPosterBytes = 8 << 20

type AnimeHandler struct {
	animeService service.AnimeService
}

func NewAnimeHandler(animeService service.AnimeService) *AnimeHandler {
	return &AnimeHandler{animeService: animeService}
}

// RegisterRoutes wires the catalog surface. public needs no token; session
// and metadata carry the auth middleware; admin additionally requires the
// admin role.
func (h *AnimeHandler) RegisterRoutes(public, session, metadata, admin *gin.RouterGroup) {
	public.GET("", h.ListPublic)
	public.GET("/:id", h.GetDetail)
	public.GET("/:id/seasons", h.ListSeasons)

	session.POST("/submissions", h.Submit)
	metadata.GET("/search", h.SearchMetadata)
	metadata.GET("/anime/:id", h.GetMetadata)

	admin.GET("/animes", h.ListAdmin)
	admin.POST("/animes", h.Create)
	admin.PUT("/animes/:id", h.Update)
	admin.DELETE("/animes/:id", h.Delete)
	admin.PUT("/animes/:id/moderation", h.Moderate)
	admin.POST("/animes/:id/seasons", h.AddSeason)
	admin.PUT("/seasons/:id", h.UpdateSeason)
	admin.DELETE("/seasons/:id", h.DeleteSeason)
}

// ListPublic handles GET /api/animes with optional title, genre, sort,
// page and limit query parameters. Only APPROVED titles are visible here.
func (h *AnimeHandler) ListPublic(c *gin.Context) {
	filter := animeFilterFromQuery(c)

	animes, total, err := h.animeService.ListPublic(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list animes"})
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedAnimeResponse(animes, int(total), filter.Page, filter.PageSize))
}

// ListAdmin handles GET /api/admin/animes, with an optional status filter
// so moderators can pull the PENDING queue.
func (h *AnimeHandler) ListAdmin(c *gin.Context) {
	filter := animeFilterFromQuery(c)
	filter.Status = c.Query("status")

	animes, total, err := h.animeService.ListAdmin(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list animes"})
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedAnimeResponse(animes, int(total), filter.Page, filter.PageSize))
}

func (h *AnimeHandler) GetDetail(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid anime id"})
		return
	}

	detail, err := h.animeService.GetDetail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAnimeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load anime"})
		return
	}

	c.JSON(http.StatusOK, dto.AnimeDetailResponse{Anime: detail.Anime, Videos: detail.Videos})
}

// Submit handles POST /api/animes/submissions. Any signed-in user may
// propose a title; it enters the catalog as PENDING until moderated.
func (h *AnimeHandler) Submit(c *gin.Context) {
	h.create(c, models.ModerationPending)
}

// Create handles POST /api/admin/animes. Admin-created titles are published
// directly as APPROVED.
func (h *AnimeHandler) Create(c *gin.Context) {
	h.create(c, models.ModerationApproved)
}

func (h *AnimeHandler) create(c *gin.Context, initialStatus string) {
	var req dto.CreateAnimeDTO
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	poster, err := readPosterFile(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	anime := req.ToModel()
	if user, ok := middleware.CurrentUser(c); ok {
		anime.SubmittedBy = &user.ID
	}

	if err := h.animeService.Create(c.Request.Context(), &anime, req.GenreIDs, poster, initialStatus); err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields), errors.Is(err, service.ErrUnknownGenre):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrDuplicateAnime):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create anime"})
		}
		return
	}

	c.JSON(http.StatusCreated, anime)
}

func (h *AnimeHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid anime id"})
		return
	}

	var req dto.UpdateAnimeDTO
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// poster replacement is optional on update
	var poster []byte
	if _, err := c.FormFile("poster"); err == nil {
		poster, err = readPosterFile(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	anime, err := h.animeService.Update(c.Request.Context(), id, req.ApplyTo, req.GenreIDs, poster)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAnimeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrUnknownGenre):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update anime"})
		}
		return
	}

	c.JSON(http.StatusOK, anime)
}

func (h *AnimeHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid anime id"})
		return
	}

	if err := h.animeService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrAnimeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete anime"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "anime deleted"})
}

func (h *AnimeHandler) Moderate(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid anime id"})
		return
	}

	var req dto.ModerationDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.animeService.Moderate(c.Request.Context(), id, req.Decision); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDecision):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAnimeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to moderate anime"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "moderation decision recorded"})
}

func (h *AnimeHandler) AddSeason(c *gin.Context) {
	animeID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid anime id"})
		return
	}

	var req dto.CreateSeasonDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	season := req.ToModel()
	if err := h.animeService.AddSeason(c.Request.Context(), animeID, &season); err != nil {
		switch {
		case errors.Is(err, service.ErrAnimeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrDuplicateSeason):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add season"})
		}
		return
	}

	c.JSON(http.StatusCreated, season)
}

func (h *AnimeHandler) UpdateSeason(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid season id"})
		return
	}

	var req dto.UpdateSeasonDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	season, err := h.animeService.UpdateSeason(c.Request.Context(), id, req.ApplyTo)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSeasonNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrDuplicateSeason):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update season"})
		}
		return
	}

	c.JSON(http.StatusOK, season)
}

func (h *AnimeHandler) DeleteSeason(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid season id"})
		return
	}

	if err := h.animeService.DeleteSeason(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrSeasonNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete season"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "season deleted"})
}

// ListSeasons handles GET /api/animes/:id/seasons for an APPROVED anime.
func (h *AnimeHandler) ListSeasons(c *gin.Context) {
	animeID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid anime id"})
		return
	}

	seasons, err := h.animeService.ListSeasons(c.Request.Context(), animeID)
	if err != nil {
		if errors.Is(err, service.ErrAnimeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list seasons"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": seasons})
}

// GetMetadata handles GET /api/metadata/anime/:id, fetching one external
// record so a submission form can be prefilled from a search hit.
func (h *AnimeHandler) GetMetadata(c *gin.Context) {
	externalID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid external id"})
		return
	}

	data, err := h.animeService.GetMetadata(c.Request.Context(), externalID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "metadata source unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": data})
}

// SearchMetadata handles GET /api/metadata/search?q=... to pre-populate
// submission forms from the external API.
func (h *AnimeHandler) SearchMetadata(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing query parameter q"})
		return
	}

	results, err := h.animeService.SearchMetadata(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "metadata source unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": results})
}

// animeFilterFromQuery parses the shared list query parameters. Page defaults
// to 1, limit to 20 with a hard cap of 100.
func animeFilterFromQuery(c *gin.Context) repository.AnimeFilter {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	return repository.AnimeFilter{
		Title:    c.Query("title"),
		Genre:    c.Query("genre"),
		Sort:     c.Query("sort"),
		Page:     page,
		PageSize: limit,
	}
}

func parseIDParam(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// readPosterFile pulls the "poster" multipart file and reads it into memory,
// bounded by maxPosterBytes.
func readPosterFile(c *gin.Context) ([]byte, error) {
	fileHeader, err := c.FormFile("poster")
	if err != nil {
		return nil, errors.New("poster file is required")
	}
	if fileHeader.Size > maxPosterBytes {
		return nil, errors.New("poster file too large")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, errors.New("could not read poster file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxPosterBytes))
	if err != nil {
		return nil, errors.New("could not read poster file")
	}
	return data, nil
}
