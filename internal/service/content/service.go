package content

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/AaSu9/Aamcare/internal/model"
	"github.com/AaSu9/Aamcare/internal/repository"
	"github.com/AaSu9/Aamcare/pkg/clock"
)

// Service serves educational content. Listings are cached in-process: content
// changes rarely and the dashboard hits these endpoints on every load.
type Service struct {
	repo  repository.ContentRepository
	cache *cache.Cache
	clk   clock.Clock
}

func NewService(repo repository.ContentRepository, ttl time.Duration, clk clock.Clock) *Service {
	return &Service{
		repo:  repo,
		cache: cache.New(ttl, 2*ttl),
		clk:   clk,
	}
}

// List returns content matching the filter, cached per filter combination.
func (s *Service) List(ctx context.Context, filter *model.ContentFilter) ([]*model.InfoContent, error) {
	key := cacheKey(filter)
	if cached, found := s.cache.Get(key); found {
		return cached.([]*model.InfoContent), nil
	}

	items, err := s.repo.ListContent(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}

	if filter.Week != nil {
		filtered := items[:0]
		for _, item := range items {
			if item.RelevantForWeek(*filter.Week) {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	s.cache.Set(key, items, cache.DefaultExpiration)
	return items, nil
}

// ForProfile returns content targeted at the profile's current stage.
func (s *Service) ForProfile(ctx context.Context, profile *model.Profile) ([]*model.InfoContent, error) {
	today := clock.Today(s.clk)
	filter := &model.ContentFilter{}

	switch profile.Kind {
	case model.ProfileKindExpectant:
		week := profile.Expectant.PregnancyWeek(today)
		filter.TargetAudience = model.AudiencePregnant
		filter.Trimester = fmt.Sprintf("%d", profile.Expectant.Trimester(today))
		filter.Week = &week
	case model.ProfileKindPostpartum:
		filter.TargetAudience = model.AudienceMother
		filter.PostpartumStage = string(profile.Postpartum.Stage(today))
	}

	return s.List(ctx, filter)
}

// TipsForWeek returns the active dashboard tips for a pregnancy week.
func (s *Service) TipsForWeek(ctx context.Context, week int) ([]*model.PregnancyTip, error) {
	key := fmt.Sprintf("tips:%d", week)
	if cached, found := s.cache.Get(key); found {
		return cached.([]*model.PregnancyTip), nil
	}

	tips, err := s.repo.ListTips(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to load tips: %w", err)
	}

	s.cache.Set(key, tips, cache.DefaultExpiration)
	return tips, nil
}

func cacheKey(filter *model.ContentFilter) string {
	week := -1
	if filter.Week != nil {
		week = *filter.Week
	}
	return fmt.Sprintf("content:%s:%s:%s:%s:%d",
		filter.Category, filter.TargetAudience, filter.Trimester, filter.PostpartumStage, week)
}
