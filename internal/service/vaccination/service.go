package vaccination

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AaSu9/Aamcare/internal/model"
	"github.com/AaSu9/Aamcare/internal/repository"
	"github.com/AaSu9/Aamcare/pkg/clock"
)

// Service owns the vaccination schedule lifecycle: one-time generation per
// profile, overdue refresh on every read path, and user status changes.
type Service struct {
	repo repository.VaccinationRepository
	clk  clock.Clock
}

func NewService(repo repository.VaccinationRepository, clk clock.Clock) *Service {
	return &Service{repo: repo, clk: clk}
}

// GenerateForExpectant creates the pregnancy schedule for a newly registered
// profile. Generation is a no-op when records already exist, so a repeated
// call cannot duplicate the schedule.
func (s *Service) GenerateForExpectant(ctx context.Context, profile *model.ExpectantProfile) (int, error) {
	count, err := s.repo.CountForProfile(ctx, profile.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing schedule: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	records := ExpectantSchedule(profile, clock.Today(s.clk))
	if err := s.repo.CreateBatch(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to create pregnancy schedule: %w", err)
	}
	return len(records), nil
}

// GenerateForPostpartum creates the birth-anchored schedule, guarded the
// same way.
func (s *Service) GenerateForPostpartum(ctx context.Context, profile *model.PostpartumProfile) (int, error) {
	count, err := s.repo.CountForProfile(ctx, profile.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to check existing schedule: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	records := PostpartumSchedule(profile)
	if err := s.repo.CreateBatch(ctx, records); err != nil {
		return 0, fmt.Errorf("failed to create birth schedule: %w", err)
	}
	return len(records), nil
}

// Tracker returns the profile's schedule ordered by due date, after
// refreshing overdue statuses, together with summary counts.
func (s *Service) Tracker(ctx context.Context, profileID uuid.UUID) ([]*model.VaccinationRecord, *model.VaccinationStats, error) {
	records, err := s.repo.ListForProfile(ctx, profileID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load schedule: %w", err)
	}

	if changed := Refresh(records, clock.Today(s.clk)); len(changed) > 0 {
		if err := s.repo.UpdateStatuses(ctx, changed); err != nil {
			return nil, nil, fmt.Errorf("failed to persist refreshed statuses: %w", err)
		}
	}

	return records, Stats(records), nil
}

// RefreshForProfile runs the overdue refresh alone, returning how many
// records changed. The daily batch calls this before composing messages.
func (s *Service) RefreshForProfile(ctx context.Context, profileID uuid.UUID) (int, error) {
	records, err := s.repo.ListForProfile(ctx, profileID)
	if err != nil {
		return 0, fmt.Errorf("failed to load schedule: %w", err)
	}

	changed := Refresh(records, clock.Today(s.clk))
	if len(changed) == 0 {
		return 0, nil
	}
	if err := s.repo.UpdateStatuses(ctx, changed); err != nil {
		return 0, fmt.Errorf("failed to persist refreshed statuses: %w", err)
	}
	return len(changed), nil
}

// UpdateStatus applies a user-driven status change to one record.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req *model.UpdateVaccinationStatusRequest) (*model.VaccinationRecord, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	ApplyStatus(rec, req.Status, req.CompletedDate, clock.Today(s.clk))
	if req.Notes != nil {
		rec.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to update vaccination record: %w", err)
	}
	return rec, nil
}

// ListForProfile exposes the raw schedule without refreshing, for callers
// that already ran a refresh in the same pass.
func (s *Service) ListForProfile(ctx context.Context, profileID uuid.UUID) ([]*model.VaccinationRecord, error) {
	records, err := s.repo.ListForProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	return records, nil
}
