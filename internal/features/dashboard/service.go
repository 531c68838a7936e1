package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/xyz-asif/awaaz-admin/internal/features/events"
	"github.com/xyz-asif/awaaz-admin/internal/pkg/logger"
	"go.uber.org/zap"
)

type UserCounter interface {
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type EventCounter interface {
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountByType(ctx context.Context) (map[string]int64, error)
	DailyCounts(ctx context.Context, since time.Time) ([]events.DailyCount, error)
}

type ReportCounter interface {
	CountOpenByType(ctx context.Context) (map[string]int64, error)
}

// Cache is satisfied by *cache.Cache
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any, expiration time.Duration) error
}

type Service struct {
	users    UserCounter
	events   EventCounter
	reports  ReportCounter
	cache    Cache
	cacheTTL time.Duration
	now      func() time.Time
}

// NewService builds the dashboard service; a nil cache or zero ttl disables caching
func NewService(users UserCounter, events EventCounter, reports ReportCounter, cache Cache, cacheTTL time.Duration) *Service {
	return &Service{
		users:    users,
		events:   events,
		reports:  reports,
		cache:    cache,
		cacheTTL: cacheTTL,
		now:      time.Now,
	}
}

func (s *Service) cacheEnabled() bool {
	return s.cache != nil && s.cacheTTL > 0
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	if s.cacheEnabled() {
		var cached Stats
		ok, err := s.cache.GetJSON(ctx, statsCacheKey, &cached)
		if err != nil {
			logger.Warn("dashboard cache read failed", zap.Error(err))
		} else if ok {
			return &cached, nil
		}
	}

	stats, err := s.computeStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.cacheEnabled() {
		if err := s.cache.SetJSON(ctx, statsCacheKey, stats, s.cacheTTL); err != nil {
			logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return stats, nil
}

func (s *Service) computeStats(ctx context.Context) (*Stats, error) {
	usersByStatus, err := s.users.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	eventsByStatus, err := s.events.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count event posts by status: %w", err)
	}
	eventsByType, err := s.events.CountByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("count event posts by type: %w", err)
	}
	openReports, err := s.reports.CountOpenByType(ctx)
	if err != nil {
		return nil, fmt.Errorf("count open reports: %w", err)
	}

	return &Stats{
		UsersByStatus:  usersByStatus,
		EventsByStatus: eventsByStatus,
		EventsByType:   eventsByType,
		OpenReports:    openReports,
		GeneratedAt:    s.now().UTC(),
	}, nil
}

// Timeline returns one point per UTC day for the last `days` days, oldest
// first, with zero counts for days that had no posts
func (s *Service) Timeline(ctx context.Context, days int) (*Timeline, error) {
	if days < 1 {
		days = DefaultTimelineDays
	}
	if days > MaxTimelineDays {
		days = MaxTimelineDays
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	since := today.AddDate(0, 0, -(days - 1))

	counts, err := s.events.DailyCounts(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("event timeline: %w", err)
	}
	byDate := make(map[string]int64, len(counts))
	for _, c := range counts {
		byDate[c.Date] = c.Count
	}

	points := make([]events.DailyCount, 0, days)
	for d := since; !d.After(today); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		points = append(points, events.DailyCount{Date: date, Count: byDate[date]})
	}
	return &Timeline{Days: days, Points: points}, nil
}
