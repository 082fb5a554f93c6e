package recommendation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AaSu9/Aamcare/internal/model"
	"github.com/AaSu9/Aamcare/internal/repository"
	"github.com/AaSu9/Aamcare/pkg/clock"
)

// Service runs the rule engine and persists its output. Recomputing a checkup
// replaces its recommendation set wholesale; nothing is ever appended to a
// previous run.
type Service struct {
	repo repository.RecommendationRepository
	clk  clock.Clock
}

func NewService(repo repository.RecommendationRepository, clk clock.Clock) *Service {
	return &Service{repo: repo, clk: clk}
}

// GenerateForCheckup evaluates all rules for the checkup and stores the
// result, returning the new set.
func (s *Service) GenerateForCheckup(ctx context.Context, checkup *model.CheckupRecord, profile *model.Profile) ([]*model.Recommendation, error) {
	recs := Generate(checkup, profile, clock.Today(s.clk))
	if err := s.repo.ReplaceForCheckup(ctx, checkup.ID, recs); err != nil {
		return nil, fmt.Errorf("failed to store recommendations: %w", err)
	}
	return recs, nil
}

// ListForCheckup returns the stored set for one checkup.
func (s *Service) ListForCheckup(ctx context.Context, checkupID uuid.UUID) ([]*model.Recommendation, error) {
	recs, err := s.repo.ListForCheckup(ctx, checkupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recommendations: %w", err)
	}
	return recs, nil
}

// DeleteForCheckup removes a checkup's recommendation set, used when the
// checkup itself is deleted.
func (s *Service) DeleteForCheckup(ctx context.Context, checkupID uuid.UUID) error {
	if err := s.repo.DeleteForCheckup(ctx, checkupID); err != nil {
		return fmt.Errorf("failed to delete recommendations: %w", err)
	}
	return nil
}
