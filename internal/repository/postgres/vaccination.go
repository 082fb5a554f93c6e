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

type vaccinationRepository struct {
	db *sqlx.DB
}

func NewVaccinationRepository(db *sqlx.DB) repository.VaccinationRepository {
	return &vaccinationRepository{db: db}
}

func (r *vaccinationRepository) CreateBatch(ctx context.Context, records []*model.VaccinationRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO vaccination_records
			(id, profile_id, profile_kind, vaccine_code, vaccine_name, target, due_date, completed_date, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	now := time.Now()
	for _, rec := range records {
		rec.CreatedAt = now
		rec.UpdatedAt = now
		if _, err := tx.ExecContext(ctx, query,
			rec.ID,
			rec.ProfileID,
			rec.ProfileKind,
			rec.VaccineCode,
			rec.VaccineName,
			rec.Target,
			rec.DueDate,
			rec.CompletedDate,
			rec.Status,
			rec.Notes,
			rec.CreatedAt,
			rec.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert vaccination record %s: %w", rec.VaccineCode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit vaccination batch: %w", err)
	}
	return nil
}

func (r *vaccinationRepository) Get(ctx context.Context, id uuid.UUID) (*model.VaccinationRecord, error) {
	query := `SELECT * FROM vaccination_records WHERE id = $1`
	var rec model.VaccinationRecord
	err := r.db.GetContext(ctx, &rec, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("vaccination record", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vaccination record: %w", err)
	}
	return &rec, nil
}

func (r *vaccinationRepository) ListForProfile(ctx context.Context, profileID uuid.UUID) ([]*model.VaccinationRecord, error) {
	query := `SELECT * FROM vaccination_records WHERE profile_id = $1 ORDER BY due_date, vaccine_code`
	var records []*model.VaccinationRecord
	if err := r.db.SelectContext(ctx, &records, query, profileID); err != nil {
		return nil, fmt.Errorf("failed to list vaccination records: %w", err)
	}
	return records, nil
}

func (r *vaccinationRepository) CountForProfile(ctx context.Context, profileID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM vaccination_records WHERE profile_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, profileID); err != nil {
		return 0, fmt.Errorf("failed to count vaccination records: %w", err)
	}
	return count, nil
}

func (r *vaccinationRepository) Update(ctx context.Context, record *model.VaccinationRecord) error {
	// due_date is immutable after creation; only lifecycle fields change
	query := `
		UPDATE vaccination_records
		SET status = $1, completed_date = $2, notes = $3, updated_at = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query,
		record.Status,
		record.CompletedDate,
		record.Notes,
		time.Now(),
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update vaccination record: %w", err)
	}
	return nil
}

func (r *vaccinationRepository) UpdateStatuses(ctx context.Context, records []*model.VaccinationRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE vaccination_records SET status = $1, completed_date = $2, updated_at = $3 WHERE id = $4`
	now := time.Now()
	for _, rec := range records {
		if _, err := tx.ExecContext(ctx, query, rec.Status, rec.CompletedDate, now, rec.ID); err != nil {
			return fmt.Errorf("failed to update status for %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit status updates: %w", err)
	}
	return nil
}

func (r *vaccinationRepository) DeleteForProfile(ctx context.Context, profileID uuid.UUID) error {
	query := `DELETE FROM vaccination_records WHERE profile_id = $1`
	_, err := r.db.ExecContext(ctx, query, profileID)
	if err != nil {
		return fmt.Errorf("failed to delete vaccination records: %w", err)
	}
	return nil
}
