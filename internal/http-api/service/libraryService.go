package service

import (
	"context"
	"errors"

	"animehub/internal/http-api/models"
	"animehub/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrDuplicateEntry     = errors.New("season already in library")
	ErrEntryNotFound      = errors.New("library entry not found")
	ErrInvalidWatchStatus = errors.New("invalid watch status")
	ErrInvalidProgress    = errors.New("progress cannot be negative")
)

type LibraryService interface {
	Add(ctx context.Context, userID string, seasonID int64, status string, progress int) (*models.LibraryEntry, error)
	Update(ctx context.Context, userID string, entryID int64, status *string, progress *int) (*models.LibraryEntry, error)
	Remove(ctx context.Context, userID string, entryID int64) error
	List(ctx context.Context, userID string, status string) ([]models.LibraryEntry, error)
}

type libraryService struct {
	repo       repository.LibraryRepository
	seasonRepo repository.SeasonRepository
}

func NewLibraryService(repo repository.LibraryRepository, seasonRepo repository.SeasonRepository) LibraryService {
	return &libraryService{
		repo:       repo,
		seasonRepo: seasonRepo,
	}
}

func (s *libraryService) Add(ctx context.Context, userID string, seasonID int64, status string, progress int) (*models.LibraryEntry, error) {
	if !models.ValidWatchStatus(status) {
		return nil, ErrInvalidWatchStatus
	}
	if progress < 0 {
		return nil, ErrInvalidProgress
	}

	if _, err := s.seasonRepo.GetByID(ctx, seasonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeasonNotFound
		}
		return nil, err
	}

	// Check if already in library
	exists, err := s.repo.Exists(ctx, userID, seasonID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateEntry
	}

	entry := &models.LibraryEntry{
		UserID:   userID,
		SeasonID: seasonID,
		Status:   status,
		Progress: progress,
	}
	if err := s.repo.Add(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateEntry
		}
		return nil, err
	}
	return entry, nil
}

// Update mutates status and/or progress. A missing entry and someone else's
// entry report the same not-found error so callers cannot probe for other
// users' library contents.
func (s *libraryService) Update(ctx context.Context, userID string, entryID int64, status *string, progress *int) (*models.LibraryEntry, error) {
	entry, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	if entry.UserID != userID {
		return nil, ErrEntryNotFound
	}

	if status != nil {
		if !models.ValidWatchStatus(*status) {
			return nil, ErrInvalidWatchStatus
		}
		entry.Status = *status
	}
	if progress != nil {
		if *progress < 0 {
			return nil, ErrInvalidProgress
		}
		entry.Progress = *progress
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *libraryService) Remove(ctx context.Context, userID string, entryID int64) error {
	entry, err := s.repo.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		return err
	}
	if entry.UserID != userID {
		return ErrEntryNotFound
	}
	return s.repo.Remove(ctx, entryID)
}

func (s *libraryService) List(ctx context.Context, userID string, status string) ([]models.LibraryEntry, error) {
	if status != "" && !models.ValidWatchStatus(status) {
		return nil, ErrInvalidWatchStatus
	}
	return s.repo.ListByUser(ctx, userID, status)
}
