package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"animehub/internal/http-api/models"
	"animehub/internal/http-api/repository"
	"animehub/internal/ingestion/jikan"

	"gorm.io/gorm"
)

var (
	ErrAnimeNotFound    = errors.New("anime not found")
	ErrSeasonNotFound   = errors.New("season not found")
	ErrInvalidDecision  = errors.New("moderation decision must be APPROVED or REJECTED")
	ErrMissingFields    = errors.New("title, synopsis, year, at least one genre and a poster are required")
	ErrDuplicateSeason  = errors.New("season number already exists for this anime")
	ErrDuplicateAnime   = errors.New("anime already in catalog")
	ErrUnknownGenre     = errors.New("unknown genre id")
	ErrMetadataFailed   = errors.New("metadata source unavailable")
)

// ImageStore is the image hosting collaborator: upload a byte buffer, get a
// stable URL back, delete by the stored URL.
type ImageStore interface {
	Upload(ctx context.Context, data []byte, name string) (string, error)
	Delete(ctx context.Context, url string) error
}

// MetadataClient is the external anime-metadata collaborator. All of its
// data is optional enrichment.
type MetadataClient interface {
	Search(ctx context.Context, query string, limit int) ([]jikan.AnimeData, error)
	GetAnime(ctx context.Context, externalID int64) (*jikan.AnimeData, error)
	GetVideos(ctx context.Context, externalID int64) ([]jikan.PromoVideo, error)
}

// AnimeDetail is a catalog entry plus its best-effort metadata enrichment.
type AnimeDetail struct {
	Anime  *models.Anime
	Videos []jikan.PromoVideo
}

type AnimeService interface {
	ListPublic(ctx context.Context, f repository.AnimeFilter) ([]models.Anime, int64, error)
	ListAdmin(ctx context.Context, f repository.AnimeFilter) ([]models.Anime, int64, error)
	GetDetail(ctx context.Context, id int64) (*AnimeDetail, error)
	Create(ctx context.Context, a *models.Anime, genreIDs []int64, poster []byte, initialStatus string) error
	Update(ctx context.Context, id int64, apply func(*models.Anime), genreIDs []int64, poster []byte) (*models.Anime, error)
	Delete(ctx context.Context, id int64) error
	Moderate(ctx context.Context, id int64, decision string) error
	AddSeason(ctx context.Context, animeID int64, season *models.Season) error
	UpdateSeason(ctx context.Context, id int64, apply func(*models.Season)) (*models.Season, error)
	DeleteSeason(ctx context.Context, id int64) error
	ListSeasons(ctx context.Context, animeID int64) ([]models.Season, error)
	SearchMetadata(ctx context.Context, query string) ([]jikan.AnimeData, error)
	GetMetadata(ctx context.Context, externalID int64) (*jikan.AnimeData, error)
}

type animeService struct {
	animeRepo  repository.AnimeRepository
	genreRepo  repository.GenreRepository
	seasonRepo repository.SeasonRepository
	images     ImageStore
	meta       MetadataClient
	log        *slog.Logger
}

func NewAnimeService(
	animeRepo repository.AnimeRepository,
	genreRepo repository.GenreRepository,
	seasonRepo repository.SeasonRepository,
	images ImageStore,
	meta MetadataClient,
	log *slog.Logger,
) AnimeService {
	return &animeService{
		animeRepo:  animeRepo,
		genreRepo:  genreRepo,
		seasonRepo: seasonRepo,
		images:     images,
		meta:       meta,
		log:        log,
	}
}

// ListPublic always restricts to APPROVED entries, regardless of caller.
func (s *animeService) ListPublic(ctx context.Context, f repository.AnimeFilter) ([]models.Anime, int64, error) {
	f.Status = models.ModerationApproved
	return s.animeRepo.GetAll(ctx, f)
}

func (s *animeService) ListAdmin(ctx context.Context, f repository.AnimeFilter) ([]models.Anime, int64, error) {
	return s.animeRepo.GetAll(ctx, f)
}

// GetDetail returns an APPROVED anime with genres, seasons and reviews, plus
// video links from the metadata API when available. Enrichment failures are
// logged and swallowed; a title hidden by moderation reads as not found.
func (s *animeService) GetDetail(ctx context.Context, id int64) (*AnimeDetail, error) {
	a, err := s.animeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnimeNotFound
		}
		return nil, err
	}
	if a.Status != models.ModerationApproved {
		return nil, ErrAnimeNotFound
	}

	detail := &AnimeDetail{Anime: a}
	if a.ExternalID != nil {
		videos, err := s.meta.GetVideos(ctx, *a.ExternalID)
		if err != nil {
			s.log.Warn("metadata enrichment failed", "anime_id", a.ID, "error", err)
		} else {
			detail.Videos = videos
		}
	}
	return detail, nil
}

// Create validates the submission, uploads the poster and persists the
// record. initialStatus is chosen at the handler boundary from the caller's
// role: admins publish straight to APPROVED, regular submitters queue as
// PENDING.
func (s *animeService) Create(ctx context.Context, a *models.Anime, genreIDs []int64, poster []byte, initialStatus string) error {
	if strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.Synopsis) == "" ||
		a.Year == 0 || len(genreIDs) == 0 || len(poster) == 0 {
		return ErrMissingFields
	}

	genres, err := s.genreRepo.GetByIDs(ctx, genreIDs)
	if err != nil {
		return err
	}
	if len(genres) != len(genreIDs) {
		return ErrUnknownGenre
	}

	posterURL, err := s.images.Upload(ctx, poster, strings.TrimSpace(a.Title))
	if err != nil {
		return err
	}
	a.PosterURL = posterURL
	a.Status = initialStatus

	if err := s.animeRepo.Create(ctx, a, genreIDs); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrDuplicateAnime
		}
		return err
	}
	return nil
}

// Update applies a partial edit. A new poster replaces the remote image;
// the old object is deleted best-effort after the new URL is stored.
func (s *animeService) Update(ctx context.Context, id int64, apply func(*models.Anime), genreIDs []int64, poster []byte) (*models.Anime, error) {
	a, err := s.animeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnimeNotFound
		}
		return nil, err
	}

	// Validate the genre set before the poster upload and the row write so
	// a bad request cannot leave a half-applied edit behind.
	if genreIDs != nil {
		genres, err := s.genreRepo.GetByIDs(ctx, genreIDs)
		if err != nil {
			return nil, err
		}
		if len(genres) != len(genreIDs) {
			return nil, ErrUnknownGenre
		}
	}

	oldPoster := ""
	if len(poster) > 0 {
		posterURL, err := s.images.Upload(ctx, poster, strings.TrimSpace(a.Title))
		if err != nil {
			return nil, err
		}
		oldPoster = a.PosterURL
		a.PosterURL = posterURL
	}

	apply(a)
	// Save with association upsert off: genre edits go through ReplaceGenres
	a.Genres = nil
	a.Seasons = nil
	a.Reviews = nil

	if err := s.animeRepo.Update(ctx, a); err != nil {
		return nil, err
	}

	if genreIDs != nil {
		if err := s.animeRepo.ReplaceGenres(ctx, id, genreIDs); err != nil {
			return nil, err
		}
	}

	if oldPoster != "" {
		if err := s.images.Delete(ctx, oldPoster); err != nil {
			s.log.Warn("failed to delete replaced poster", "anime_id", id, "error", err)
		}
	}

	return s.animeRepo.GetByID(ctx, id)
}

// Delete removes the anime; seasons, reviews and library entries cascade at
// the store. Remote images are removed best-effort afterwards.
func (s *animeService) Delete(ctx context.Context, id int64) error {
	a, err := s.animeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnimeNotFound
		}
		return err
	}

	if err := s.animeRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnimeNotFound
		}
		return err
	}

	for _, imageURL := range []string{a.PosterURL, deref(a.BannerURL)} {
		if imageURL == "" {
			continue
		}
		if err := s.images.Delete(ctx, imageURL); err != nil {
			s.log.Warn("failed to delete hosted image", "anime_id", id, "url", imageURL, "error", err)
		}
	}
	return nil
}

func (s *animeService) Moderate(ctx context.Context, id int64, decision string) error {
	if !models.ValidModerationDecision(decision) {
		return ErrInvalidDecision
	}
	if err := s.animeRepo.UpdateStatus(ctx, id, decision); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnimeNotFound
		}
		return err
	}
	return nil
}

func (s *animeService) AddSeason(ctx context.Context, animeID int64, season *models.Season) error {
	if _, err := s.animeRepo.GetByID(ctx, animeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnimeNotFound
		}
		return err
	}
	season.AnimeID = animeID
	if err := s.seasonRepo.Create(ctx, season); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrDuplicateSeason
		}
		return err
	}
	return nil
}

func (s *animeService) UpdateSeason(ctx context.Context, id int64, apply func(*models.Season)) (*models.Season, error) {
	season, err := s.seasonRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, err
	}
	apply(season)
	if err := s.seasonRepo.Update(ctx, season); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateSeason
		}
		return nil, err
	}
	return season, nil
}

func (s *animeService) DeleteSeason(ctx context.Context, id int64) error {
	if err := s.seasonRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSeasonNotFound
		}
		return err
	}
	return nil
}

// ListSeasons returns the seasons of an APPROVED anime, ordered by number.
// A title hidden by moderation reads as not found, same as GetDetail.
func (s *animeService) ListSeasons(ctx context.Context, animeID int64) ([]models.Season, error) {
	a, err := s.animeRepo.GetByID(ctx, animeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnimeNotFound
		}
		return nil, err
	}
	if a.Status != models.ModerationApproved {
		return nil, ErrAnimeNotFound
	}
	return s.seasonRepo.ListByAnime(ctx, animeID)
}

// SearchMetadata queries the external API to pre-populate submission forms.
func (s *animeService) SearchMetadata(ctx context.Context, query string) ([]jikan.AnimeData, error) {
	results, err := s.meta.Search(ctx, query, 10)
	if err != nil {
		s.log.Warn("metadata search failed", "query", query, "error", err)
		return nil, ErrMetadataFailed
	}
	return results, nil
}

// GetMetadata fetches one external record by its id so a submission form can
// be prefilled from a search hit.
func (s *animeService) GetMetadata(ctx context.Context, externalID int64) (*jikan.AnimeData, error) {
	data, err := s.meta.GetAnime(ctx, externalID)
	if err != nil {
		s.log.Warn("metadata fetch failed", "external_id", externalID, "error", err)
		return nil, ErrMetadataFailed
	}
	return data, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
