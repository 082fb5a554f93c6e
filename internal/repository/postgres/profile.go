package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/AaSu9/Aamcare/internal/model"
	"github.com/AaSu9/Aamcare/internal/repository"
	apperrors "github.com/AaSu9/Aamcare/pkg/errors"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) CreateExpectant(ctx context.Context, profile *model.ExpectantProfile) error {
	query := `
		INSERT INTO expectant_profiles (id, account_id, name, age, due_date, medical_history, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.AccountID,
		profile.Name,
		profile.Age,
		profile.DueDate,
		profile.MedicalHistory,
		profile.Phone,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create expectant profile: %w", err)
	}
	return nil
}

func (r *profileRepository) CreatePostpartum(ctx context.Context, profile *model.PostpartumProfile) error {
	query := `
		INSERT INTO postpartum_profiles (id, account_id, name, child_birth_date, health_status, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.AccountID,
		profile.Name,
		profile.ChildBirthDate,
		profile.HealthStatus,
		profile.Phone,
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create postpartum profile: %w", err)
	}
	return nil
}

func (r *profileRepository) GetExpectant(ctx context.Context, id uuid.UUID) (*model.ExpectantProfile, error) {
	query := `SELECT * FROM expectant_profiles WHERE id = $1`
	var profile model.ExpectantProfile
	err := r.db.GetContext(ctx, &profile, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("expectant profile", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expectant profile: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) GetPostpartum(ctx context.Context, id uuid.UUID) (*model.PostpartumProfile, error) {
	query := `SELECT * FROM postpartum_profiles WHERE id = $1`
	var profile model.PostpartumProfile
	err := r.db.GetContext(ctx, &profile, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("postpartum profile", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get postpartum profile: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) GetExpectantByAccount(ctx context.Context, accountID uuid.UUID) (*model.ExpectantProfile, error) {
	query := `SELECT * FROM expectant_profiles WHERE account_id = $1`
	var profile model.ExpectantProfile
	err := r.db.GetContext(ctx, &profile, query, accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("expectant profile", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expectant profile by account: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) GetPostpartumByAccount(ctx context.Context, accountID uuid.UUID) (*model.PostpartumProfile, error) {
	query := `SELECT * FROM postpartum_profiles WHERE account_id = $1`
	var profile model.PostpartumProfile
	err := r.db.GetContext(ctx, &profile, query, accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("postpartum profile", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get postpartum profile by account: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) UpdateExpectant(ctx context.Context, profile *model.ExpectantProfile) error {
	query := `
		UPDATE expectant_profiles
		SET name = $1, age = $2, due_date = $3, medical_history = $4, phone = $5, updated_at = $6
		WHERE id = $7
	`
	_, err := r.db.ExecContext(ctx, query,
		profile.Name,
		profile.Age,
		profile.DueDate,
		profile.MedicalHistory,
		profile.Phone,
		time.Now(),
		profile.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expectant profile: %w", err)
	}
	return nil
}

func (r *profileRepository) UpdatePostpartum(ctx context.Context, profile *model.PostpartumProfile) error {
	query := `
		UPDATE postpartum_profiles
		SET name = $1, child_birth_date = $2, health_status = $3, phone = $4, updated_at = $5
		WHERE id = $6
	`
	_, err := r.db.ExecContext(ctx, query,
		profile.Name,
		profile.ChildBirthDate,
		profile.HealthStatus,
		profile.Phone,
		time.Now(),
		profile.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update postpartum profile: %w", err)
	}
	return nil
}

func (r *profileRepository) DeleteExpectant(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM expectant_profiles WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete expectant profile: %w", err)
	}
	return nil
}

func (r *profileRepository) DeletePostpartum(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM postpartum_profiles WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete postpartum profile: %w", err)
	}
	return nil
}

func (r *profileRepository) ListExpectant(ctx context.Context) ([]*model.ExpectantProfile, error) {
	query := `SELECT * FROM expectant_profiles ORDER BY created_at`
	var profiles []*model.ExpectantProfile
	if err := r.db.SelectContext(ctx, &profiles, query); err != nil {
		return nil, fmt.Errorf("failed to list expectant profiles: %w", err)
	}
	return profiles, nil
}

func (r *profileRepository) ListPostpartum(ctx context.Context) ([]*model.PostpartumProfile, error) {
	query := `SELECT * FROM postpartum_profiles ORDER BY created_at`
	var profiles []*model.PostpartumProfile
	if err := r.db.SelectContext(ctx, &profiles, query); err != nil {
		return nil, fmt.Errorf("failed to list postpartum profiles: %w", err)
	}
	return profiles, nil
}
