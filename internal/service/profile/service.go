package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AaSu9/Aamcare/internal/model"
	"github.com/AaSu9/Aamcare/internal/repository"
	apperrors "github.com/AaSu9/Aamcare/pkg/errors"
	"github.com/AaSu9/Aamcare/pkg/logger"
)

// vaccinationGenerator is the slice of the vaccination service the profile
// lifecycle needs: schedule generation on create and cleanup on delete.
type vaccinationGenerator interface {
	GenerateForExpectant(ctx context.Context, profile *model.ExpectantProfile) (int, error)
	GenerateForPostpartum(ctx context.Context, profile *model.PostpartumProfile) (int, error)
}

// Service owns the profile lifecycle. An account holds at most one profile of
// either kind; the give-birth transition swaps an expectant profile for a
// postpartum one in a single call.
type Service struct {
	repo     repository.ProfileRepository
	vaccRepo repository.VaccinationRepository
	vaccSvc  vaccinationGenerator
	logger   *logger.Logger
}

func NewService(repo repository.ProfileRepository, vaccRepo repository.VaccinationRepository, vaccSvc vaccinationGenerator, logger *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		vaccRepo: vaccRepo,
		vaccSvc:  vaccSvc,
		logger:   logger,
	}
}

// CreateExpectant registers a pregnancy profile and generates its
// vaccination schedule in the same call.
func (s *Service) CreateExpectant(ctx context.Context, accountID uuid.UUID, req *model.CreateExpectantProfileRequest) (*model.ExpectantProfile, error) {
	if err := s.ensureNoProfile(ctx, accountID); err != nil {
		return nil, err
	}

	profile := &model.ExpectantProfile{
		Base:           model.Base{ID: uuid.New()},
		AccountID:      accountID,
		Name:           req.Name,
		Age:            req.Age,
		DueDate:        req.DueDate,
		MedicalHistory: req.MedicalHistory,
		Phone:          req.Phone,
	}
	if err := s.repo.CreateExpectant(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if _, err := s.vaccSvc.GenerateForExpectant(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to generate vaccination schedule: %w", err)
	}
	return profile, nil
}

// CreatePostpartum registers a postpartum profile directly, for mothers who
// sign up after giving birth.
func (s *Service) CreatePostpartum(ctx context.Context, accountID uuid.UUID, req *model.CreatePostpartumProfileRequest) (*model.PostpartumProfile, error) {
	if err := s.ensureNoProfile(ctx, accountID); err != nil {
		return nil, err
	}

	profile := &model.PostpartumProfile{
		Base:           model.Base{ID: uuid.New()},
		AccountID:      accountID,
		Name:           req.Name,
		ChildBirthDate: req.ChildBirthDate,
		HealthStatus:   req.HealthStatus,
		Phone:          req.Phone,
	}
	if err := s.repo.CreatePostpartum(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	if _, err := s.vaccSvc.GenerateForPostpartum(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to generate vaccination schedule: %w", err)
	}
	return profile, nil
}

// GetForAccount resolves the account's profile, whichever kind is on file.
func (s *Service) GetForAccount(ctx context.Context, accountID uuid.UUID) (*model.Profile, error) {
	expectant, err := s.repo.GetExpectantByAccount(ctx, accountID)
	if err == nil {
		return model.NewExpectantProfileRef(expectant), nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	postpartum, err := s.repo.GetPostpartumByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return model.NewPostpartumProfileRef(postpartum), nil
}

// Get resolves a profile by id, trying the expectant table first.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	expectant, err := s.repo.GetExpectant(ctx, id)
	if err == nil {
		return model.NewExpectantProfileRef(expectant), nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	postpartum, err := s.repo.GetPostpartum(ctx, id)
	if err != nil {
		return nil, err
	}
	return model.NewPostpartumProfileRef(postpartum), nil
}

// Update applies the non-nil request fields to whichever profile variant the
// account holds. Due and birth dates are editable; vaccination due dates
// already generated do not move.
func (s *Service) Update(ctx context.Context, accountID uuid.UUID, req *model.UpdateProfileRequest) (*model.Profile, error) {
	profile, err := s.GetForAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	switch profile.Kind {
	case model.ProfileKindExpectant:
		p := profile.Expectant
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.Age != nil {
			p.Age = *req.Age
		}
		if req.DueDate != nil {
			p.DueDate = *req.DueDate
		}
		if req.MedicalHistory != nil {
			p.MedicalHistory = *req.MedicalHistory
		}
		if req.Phone != nil {
			p.Phone = *req.Phone
		}
		if err := s.repo.UpdateExpectant(ctx, p); err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	case model.ProfileKindPostpartum:
		p := profile.Postpartum
		if req.Name != nil {
			p.Name = *req.Name
		}
		if req.ChildBirthDate != nil {
			p.ChildBirthDate = *req.ChildBirthDate
		}
		if req.HealthStatus != nil {
			p.HealthStatus = *req.HealthStatus
		}
		if req.Phone != nil {
			p.Phone = *req.Phone
		}
		if err := s.repo.UpdatePostpartum(ctx, p); err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}
	return profile, nil
}

// GiveBirth converts the account's expectant profile into a postpartum one:
// the pregnancy schedule is retired, the expectant profile removed, and a
// fresh birth-anchored schedule generated under the new profile.
func (s *Service) GiveBirth(ctx context.Context, accountID uuid.UUID, req *model.GiveBirthRequest) (*model.PostpartumProfile, error) {
	expectant, err := s.repo.GetExpectantByAccount(ctx, accountID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.BadRequest("no expectant profile to convert", err)
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	postpartum := &model.PostpartumProfile{
		Base:           model.Base{ID: uuid.New()},
		AccountID:      accountID,
		Name:           expectant.Name,
		ChildBirthDate: req.ChildBirthDate,
		Phone:          expectant.Phone,
	}
	if err := s.repo.CreatePostpartum(ctx, postpartum); err != nil {
		return nil, fmt.Errorf("failed to create postpartum profile: %w", err)
	}

	if _, err := s.vaccSvc.GenerateForPostpartum(ctx, postpartum); err != nil {
		return nil, fmt.Errorf("failed to generate vaccination schedule: %w", err)
	}

	if err := s.vaccRepo.DeleteForProfile(ctx, expectant.ID); err != nil {
		return nil, fmt.Errorf("failed to retire pregnancy schedule: %w", err)
	}
	if err := s.repo.DeleteExpectant(ctx, expectant.ID); err != nil {
		return nil, fmt.Errorf("failed to remove expectant profile: %w", err)
	}

	s.logger.ZL.Info().
		Str("account_id", accountID.String()).
		Str("profile_id", postpartum.ID.String()).
		Msg("expectant profile converted to postpartum")

	return postpartum, nil
}

// Delete removes the account's profile and its vaccination records.
func (s *Service) Delete(ctx context.Context, accountID uuid.UUID) error {
	profile, err := s.GetForAccount(ctx, accountID)
	if err != nil {
		return err
	}

	if err := s.vaccRepo.DeleteForProfile(ctx, profile.ID()); err != nil {
		return fmt.Errorf("failed to delete vaccination records: %w", err)
	}

	switch profile.Kind {
	case model.ProfileKindExpectant:
		if err := s.repo.DeleteExpectant(ctx, profile.ID()); err != nil {
			return fmt.Errorf("failed to delete profile: %w", err)
		}
	case model.ProfileKindPostpartum:
		if err := s.repo.DeletePostpartum(ctx, profile.ID()); err != nil {
			return fmt.Errorf("failed to delete profile: %w", err)
		}
	}
	return nil
}

func (s *Service) ensureNoProfile(ctx context.Context, accountID uuid.UUID) error {
	if _, err := s.GetForAccount(ctx, accountID); err == nil {
		return apperrors.Conflict("account already has a profile", nil)
	} else if !apperrors.IsNotFound(err) {
		return err
	}
	return nil
}
