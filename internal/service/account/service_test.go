package account

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AaSu9/Aamcare/internal/model"
	"github.com/AaSu9/Aamcare/pkg/auth"
	apperrors "github.com/AaSu9/Aamcare/pkg/errors"
	"github.com/AaSu9/Aamcare/pkg/security"
)

type fakeAccountRepo struct {
	accounts map[uuid.UUID]*model.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[uuid.UUID]*model.Account)}
}

func (f *fakeAccountRepo) Create(_ context.Context, a *model.Account) error {
	f.accounts[a.ID] = a
	return nil
}

func (f *fakeAccountRepo) Get(_ context.Context, id uuid.UUID) (*model.Account, error) {
	if a, ok := f.accounts[id]; ok {
		return a, nil
	}
	return nil, apperrors.NotFound("account", nil)
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	for _, a := range f.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, apperrors.NotFound("account", nil)
}

func (f *fakeAccountRepo) Update(_ context.Context, a *model.Account) error {
	f.accounts[a.ID] = a
	return nil
}

func newTestService() (*Service, *fakeAccountRepo) {
	repo := newFakeAccountRepo()
	svc := NewService(
		repo,
		security.NewBcryptHasher(4),
		auth.NewJWTService("test-secret", time.Hour),
		3600,
	)
	return svc, repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService()

	account, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "sita@example.np",
		Password: "strongpass",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AccountStatusActive, account.Status)
	assert.NotEqual(t, "strongpass", account.PasswordHash)

	tokens, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "sita@example.np",
		Password: "strongpass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.Equal(t, 3600, tokens.ExpiresIn)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "sita@example.np",
		Password: "strongpass",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "sita@example.np",
		Password: "otherpass1",
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestRegisterShortPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "sita@example.np",
		Password: "short",
	})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestLoginFailuresLookAlike(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "sita@example.np",
		Password: "strongpass",
	})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "sita@example.np",
		Password: "wrongpass1",
	})
	_, unknownEmail := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@example.np",
		Password: "strongpass",
	})

	require.Error(t, wrongPassword)
	require.Error(t, unknownEmail)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error(), "failure reason must not leak")
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, repo := newTestService()

	account, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email:    "sita@example.np",
		Password: "strongpass",
	})
	require.NoError(t, err)

	account.Status = model.AccountStatusDisabled
	require.NoError(t, repo.Update(context.Background(), account))

	_, err = svc.Login(context.Background(), &model.LoginRequest{
		Email:    "sita@example.np",
		Password: "strongpass",
	})
	require.Error(t, err)
}
