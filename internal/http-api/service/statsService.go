package service

import (
	"context"

	"animehub/internal/http-api/repository"
)

type StatsService interface {
	Overview(ctx context.Context) (*repository.StatsOverview, error)
}

type statsService struct {
	repo repository.StatsRepository
}

func NewStatsService(repo repository.StatsRepository) StatsService {
	return &statsService{repo: repo}
}

func (s *statsService) Overview(ctx context.Context) (*repository.StatsOverview, error) {
	return s.repo.Overview(ctx)
}
