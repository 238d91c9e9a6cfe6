package repository

import (
	"context"

	"animehub/internal/http-api/models"

	"gorm.io/gorm"
)

// StatsOverview is the admin dashboard aggregate snapshot.
type StatsOverview struct {
	Users          int64            `json:"users"`
	AnimesByStatus map[string]int64 `json:"animes_by_status"`
	Reviews        int64            `json:"reviews"`
	LibraryEntries int64            `json:"library_entries"`
	TopRated       []models.Anime   `json:"top_rated"`
}

type StatsRepository interface {
	Overview(ctx context.Context) (*StatsOverview, error)
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Overview(ctx context.Context) (*StatsOverview, error) {
	out := &StatsOverview{
		AnimesByStatus: make(map[string]int64),
	}

	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&out.Users).Error; err != nil {
		return nil, err
	}

	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.db.WithContext(ctx).Model(&models.Anime{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out.AnimesByStatus[row.Status] = row.Count
	}

	if err := r.db.WithContext(ctx).Model(&models.Review{}).Count(&out.Reviews).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&models.LibraryEntry{}).Count(&out.LibraryEntries).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Where("status = ?", models.ModerationApproved).
		Order("average_rating desc").
		Limit(5).
		Find(&out.TopRated).Error; err != nil {
		return nil, err
	}

	return out, nil
}
