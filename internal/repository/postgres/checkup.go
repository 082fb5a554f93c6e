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

type checkupRepository struct {
	db *sqlx.DB
}

func NewCheckupRepository(db *sqlx.DB) repository.CheckupRepository {
	return &checkupRepository{db: db}
}

func (r *checkupRepository) Create(ctx context.Context, checkup *model.CheckupRecord) error {
	query := `
		INSERT INTO checkup_records
			(id, profile_id, profile_kind, month, weight_kg, systolic, diastolic, has_fever, fever_temp_c,
			 child_weight_kg, child_height_cm, child_head_cm, feeding_status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`
	checkup.CreatedAt = time.Now()
	checkup.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		checkup.ID,
		checkup.ProfileID,
		checkup.ProfileKind,
		checkup.Month,
		checkup.WeightKg,
		checkup.Systolic,
		checkup.Diastolic,
		checkup.HasFever,
		checkup.FeverTempC,
		checkup.ChildWeightKg,
		checkup.ChildHeightCm,
		checkup.ChildHeadCm,
		checkup.FeedingStatus,
		checkup.Notes,
		checkup.CreatedAt,
		checkup.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create checkup: %w", err)
	}
	return nil
}

func (r *checkupRepository) Get(ctx context.Context, id uuid.UUID) (*model.CheckupRecord, error) {
	query := `SELECT * FROM checkup_records WHERE id = $1`
	var checkup model.CheckupRecord
	err := r.db.GetContext(ctx, &checkup, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("checkup", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get checkup: %w", err)
	}
	return &checkup, nil
}

func (r *checkupRepository) Update(ctx context.Context, checkup *model.CheckupRecord) error {
	query := `
		UPDATE checkup_records
		SET month = $1, weight_kg = $2, systolic = $3, diastolic = $4, has_fever = $5, fever_temp_c = $6,
		    child_weight_kg = $7, child_height_cm = $8, child_head_cm = $9, feeding_status = $10,
		    notes = $11, updated_at = $12
		WHERE id = $13
	`
	_, err := r.db.ExecContext(ctx, query,
		checkup.Month,
		checkup.WeightKg,
		checkup.Systolic,
		checkup.Diastolic,
		checkup.HasFever,
		checkup.FeverTempC,
		checkup.ChildWeightKg,
		checkup.ChildHeightCm,
		checkup.ChildHeadCm,
		checkup.FeedingStatus,
		checkup.Notes,
		time.Now(),
		checkup.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update checkup: %w", err)
	}
	return nil
}

func (r *checkupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM checkup_records WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete checkup: %w", err)
	}
	return nil
}

func (r *checkupRepository) ListForProfile(ctx context.Context, profileID uuid.UUID) ([]*model.CheckupRecord, error) {
	query := `SELECT * FROM checkup_records WHERE profile_id = $1 ORDER BY created_at DESC`
	var checkups []*model.CheckupRecord
	if err := r.db.SelectContext(ctx, &checkups, query, profileID); err != nil {
		return nil, fmt.Errorf("failed to list checkups: %w", err)
	}
	return checkups, nil
}
