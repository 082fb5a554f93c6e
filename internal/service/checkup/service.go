package checkup

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AaSu9/Aamcare/internal/model"
	"github.com/AaSu9/Aamcare/internal/repository"
	apperrors "github.com/AaSu9/Aamcare/pkg/errors"
	"github.com/AaSu9/Aamcare/pkg/logger"
)

// recommender is the slice of the recommendation service the checkup flow
// needs.
type recommender interface {
	GenerateForCheckup(ctx context.Context, checkup *model.CheckupRecord, profile *model.Profile) ([]*model.Recommendation, error)
	ListForCheckup(ctx context.Context, checkupID uuid.UUID) ([]*model.Recommendation, error)
	DeleteForCheckup(ctx context.Context, checkupID uuid.UUID) error
}

// Service persists checkups and drives recommendation generation off each
// submission. Generation failure never fails the submission: the checkup is
// the user's data, the recommendations are derived from it.
type Service struct {
	repo   repository.CheckupRepository
	recSvc recommender
	logger *logger.Logger
}

func NewService(repo repository.CheckupRepository, recSvc recommender, logger *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		recSvc: recSvc,
		logger: logger,
	}
}

// Submit stores the checkup, then generates its recommendation set. When
// generation fails the response carries a warning instead of an error.
func (s *Service) Submit(ctx context.Context, profile *model.Profile, req *model.SubmitCheckupRequest) (*model.SubmitCheckupResponse, error) {
	checkup := &model.CheckupRecord{
		Base:        model.Base{ID: uuid.New()},
		ProfileID:   profile.ID(),
		ProfileKind: profile.Kind,
		Month:       req.Month,

		WeightKg:   req.WeightKg,
		Systolic:   req.Systolic,
		Diastolic:  req.Diastolic,
		HasFever:   req.HasFever,
		FeverTempC: req.FeverTempC,

		ChildWeightKg: req.ChildWeightKg,
		ChildHeightCm: req.ChildHeightCm,
		ChildHeadCm:   req.ChildHeadCm,
		FeedingStatus: req.FeedingStatus,

		Notes: req.Notes,
	}
	if err := s.repo.Create(ctx, checkup); err != nil {
		return nil, fmt.Errorf("failed to store checkup: %w", err)
	}

	resp := &model.SubmitCheckupResponse{Checkup: checkup}

	recs, err := s.recSvc.GenerateForCheckup(ctx, checkup, profile)
	if err != nil {
		s.logger.ZL.Warn().
			Err(err).
			Str("checkup_id", checkup.ID.String()).
			Msg("recommendation generation failed, checkup kept")
		resp.Warning = "checkup saved, but recommendations could not be generated"
		return resp, nil
	}
	resp.RecommendationCount = len(recs)
	return resp, nil
}

// Update replaces the checkup's measurements and regenerates its
// recommendation set, with the same non-fatal semantics as Submit. A checkup
// belonging to another profile reads as not found.
func (s *Service) Update(ctx context.Context, profile *model.Profile, id uuid.UUID, req *model.SubmitCheckupRequest) (*model.SubmitCheckupResponse, error) {
	checkup, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if checkup.ProfileID != profile.ID() {
		return nil, apperrors.NotFound("checkup", nil)
	}

	checkup.Month = req.Month
	checkup.WeightKg = req.WeightKg
	checkup.Systolic = req.Systolic
	checkup.Diastolic = req.Diastolic
	checkup.HasFever = req.HasFever
	checkup.FeverTempC = req.FeverTempC
	checkup.ChildWeightKg = req.ChildWeightKg
	checkup.ChildHeightCm = req.ChildHeightCm
	checkup.ChildHeadCm = req.ChildHeadCm
	checkup.FeedingStatus = req.FeedingStatus
	checkup.Notes = req.Notes

	if err := s.repo.Update(ctx, checkup); err != nil {
		return nil, fmt.Errorf("failed to update checkup: %w", err)
	}

	resp := &model.SubmitCheckupResponse{Checkup: checkup}

	recs, err := s.recSvc.GenerateForCheckup(ctx, checkup, profile)
	if err != nil {
		s.logger.ZL.Warn().
			Err(err).
			Str("checkup_id", checkup.ID.String()).
			Msg("recommendation generation failed, checkup kept")
		resp.Warning = "checkup saved, but recommendations could not be generated"
		return resp, nil
	}
	resp.RecommendationCount = len(recs)
	return resp, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.CheckupRecord, error) {
	return s.repo.Get(ctx, id)
}

// ListForProfile returns the profile's checkups, newest first.
func (s *Service) ListForProfile(ctx context.Context, profileID uuid.UUID) ([]*model.CheckupRecord, error) {
	checkups, err := s.repo.ListForProfile(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to load checkups: %w", err)
	}
	return checkups, nil
}

// Recommendations returns the stored recommendation set for one checkup.
func (s *Service) Recommendations(ctx context.Context, checkupID uuid.UUID) ([]*model.Recommendation, error) {
	if _, err := s.repo.Get(ctx, checkupID); err != nil {
		return nil, err
	}
	return s.recSvc.ListForCheckup(ctx, checkupID)
}

// Delete removes a checkup together with its recommendations.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.recSvc.DeleteForCheckup(ctx, id); err != nil {
		return fmt.Errorf("failed to delete recommendations: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete checkup: %w", err)
	}
	return nil
}
