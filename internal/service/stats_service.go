package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/caelum-portal/internal/domain"
	"github.com/spec-kit/caelum-portal/internal/repository"
)

// StatsService assembles admin dashboard counts.
type StatsService struct {
	repo   repository.StatsRepository
	cache  repository.StatsCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewStatsService builds the service. A nil cache or zero ttl disables caching.
func NewStatsService(repo repository.StatsRepository, cache repository.StatsCache, ttl time.Duration, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{repo: repo, cache: cache, ttl: ttl, logger: logger}
}

// Dashboard counts content concurrently. A failed count is reported as zero.
func (s *StatsService) Dashboard(ctx context.Context) domain.DashboardStats {
	if cached, ok := s.fromCache(ctx); ok {
		return cached
	}

	var (
		stats  domain.DashboardStats
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed bool
	)
	targets := map[string]*int64{
		repository.TableBlogs:    &stats.Blogs,
		repository.TableSeoPages: &stats.SeoPages,
		repository.TableBlogFaqs: &stats.Faqs,
		repository.TableLeads:    &stats.Leads,
	}
	for table, dst := range targets {
		wg.Add(1)
		go func(table string, dst *int64) {
			defer wg.Done()
			n, err := s.repo.Count(ctx, table)
			if err != nil {
				s.logger.Warn("count failed", zap.String("table", table), zap.Error(err))
				mu.Lock()
				failed = true
				mu.Unlock()
				return
			}
			*dst = n
		}(table, dst)
	}
	wg.Wait()

	if !failed {
		s.toCache(ctx, stats)
	}
	return stats
}

func (s *StatsService) fromCache(ctx context.Context) (domain.DashboardStats, bool) {
	if s.cache == nil || s.ttl <= 0 {
		return domain.DashboardStats{}, false
	}
	cached, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Warn("stats cache read failed", zap.Error(err))
		return domain.DashboardStats{}, false
	}
	if !ok {
		return domain.DashboardStats{}, false
	}
	return *cached, true
}

func (s *StatsService) toCache(ctx context.Context, stats domain.DashboardStats) {
	if s.cache == nil || s.ttl <= 0 {
		return
	}
	if err := s.cache.Set(ctx, stats, s.ttl); err != nil {
		s.logger.Warn("stats cache write failed", zap.Error(err))
	}
}
