package account

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/AaSu9/Aamcare/internal/model"
	"github.com/AaSu9/Aamcare/internal/repository"
	"github.com/AaSu9/Aamcare/pkg/auth"
	apperrors "github.com/AaSu9/Aamcare/pkg/errors"
	"github.com/AaSu9/Aamcare/pkg/security"
)

// Service handles registration and login. Login failures are reported
// identically whether the email is unknown or the password is wrong.
type Service struct {
	repo       repository.AccountRepository
	hasher     security.PasswordHasher
	jwtSvc     auth.JWTService
	expirySecs int
}

func NewService(repo repository.AccountRepository, hasher security.PasswordHasher, jwtSvc auth.JWTService, expirySecs int) *Service {
	return &Service{
		repo:       repo,
		hasher:     hasher,
		jwtSvc:     jwtSvc,
		expirySecs: expirySecs,
	}
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.Account, error) {
	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("email already registered", nil)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.BadRequest("password does not meet requirements", err)
	}

	account := &model.Account{
		Base:         model.Base{ID: uuid.New()},
		Email:        req.Email,
		PasswordHash: hash,
		Status:       model.AccountStatusActive,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return account, nil
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	account, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Unauthorized(nil)
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if account.Status != model.AccountStatusActive {
		return nil, apperrors.Unauthorized(nil)
	}

	if err := s.hasher.Compare(account.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized(nil)
	}

	token, err := s.jwtSvc.GenerateAccessToken(account.ID, account.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   s.expirySecs,
	}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	return s.repo.Get(ctx, id)
}
