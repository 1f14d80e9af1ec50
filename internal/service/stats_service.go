package service

import (
	"context"

	"github.com/spec-kit/rentcar-service/internal/domain"
	"github.com/spec-kit/rentcar-service/internal/presence"
	"github.com/spec-kit/rentcar-service/internal/repository"
)

// StatsService aggregates dashboard counters.
type StatsService struct {
	repos    repository.Repositories
	presence *presence.Tracker
	now      Clock
}

// NewStatsService constructs StatsService.
func NewStatsService(repos repository.Repositories, tracker *presence.Tracker, clock Clock) *StatsService {
	return &StatsService{repos: repos, presence: tracker, now: clockOrDefault(clock)}
}

// Snapshot counts records at the current time. The counters are read one
// after another, not from a single consistent view of the store.
func (s *StatsService) Snapshot(ctx context.Context) (*domain.Stats, error) {
	var (
		stats domain.Stats
		err   error
	)
	if stats.Users, err = s.repos.Users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Orders, err = s.repos.Orders.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Messages, err = s.repos.Messages.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Active, err = s.presence.CountOnline(ctx, s.now()); err != nil {
		return nil, err
	}
	if stats.Cars, err = s.repos.Orders.CountDistinctCars(ctx); err != nil {
		return nil, err
	}
	return &stats, nil
}
