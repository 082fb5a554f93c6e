package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/AaSu9/Aamcare/internal/model"
	"github.com/AaSu9/Aamcare/internal/repository"
)

type recommendationRepository struct {
	db *sqlx.DB
}

func NewRecommendationRepository(db *sqlx.DB) repository.RecommendationRepository {
	return &recommendationRepository{db: db}
}

func (r *recommendationRepository) ReplaceForCheckup(ctx context.Context, checkupID uuid.UUID, recs []*model.Recommendation) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM recommendations WHERE checkup_id = $1`, checkupID); err != nil {
		return fmt.Errorf("failed to delete prior recommendations: %w", err)
	}

	query := `
		INSERT INTO recommendations
			(id, checkup_id, kind, title, description, severity, medicine_name, dosage, duration,
			 calories_per_day, protein_grams, iron_mg, calcium_mg, action_required, follow_up_days,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	now := time.Now()
	for _, rec := range recs {
		rec.CreatedAt = now
		rec.UpdatedAt = now
		if _, err := tx.ExecContext(ctx, query,
			rec.ID,
			rec.CheckupID,
			rec.Kind,
			rec.Title,
			rec.Description,
			rec.Severity,
			rec.MedicineName,
			rec.Dosage,
			rec.Duration,
			rec.CaloriesPerDay,
			rec.ProteinGrams,
			rec.IronMg,
			rec.CalciumMg,
			rec.ActionRequired,
			rec.FollowUpDays,
			rec.CreatedAt,
			rec.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert recommendation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit recommendation replacement: %w", err)
	}
	return nil
}

func (r *recommendationRepository) ListForCheckup(ctx context.Context, checkupID uuid.UUID) ([]*model.Recommendation, error) {
	query := `SELECT * FROM recommendations WHERE checkup_id = $1 ORDER BY created_at`
	var recs []*model.Recommendation
	if err := r.db.SelectContext(ctx, &recs, query, checkupID); err != nil {
		return nil, fmt.Errorf("failed to list recommendations: %w", err)
	}
	return recs, nil
}

func (r *recommendationRepository) DeleteForCheckup(ctx context.Context, checkupID uuid.UUID) error {
	query := `DELETE FROM recommendations WHERE checkup_id = $1`
	_, err := r.db.ExecContext(ctx, query, checkupID)
	if err != nil {
		return fmt.Errorf("failed to delete recommendations: %w", err)
	}
	return nil
}
