package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/AaSu9/Aamcare/internal/model"
	"github.com/AaSu9/Aamcare/internal/repository"
)

type notificationLogRepository struct {
	db *sqlx.DB
}

func NewNotificationLogRepository(db *sqlx.DB) repository.NotificationLogRepository {
	return &notificationLogRepository{db: db}
}

func (r *notificationLogRepository) Create(ctx context.Context, log *model.NotificationLog) error {
	query := `
		INSERT INTO notification_logs
			(id, profile_id, profile_kind, vaccination_record_id, channel, status, message, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		log.ID,
		log.ProfileID,
		log.ProfileKind,
		log.VaccinationRecordID,
		log.Channel,
		log.Status,
		log.Message,
		log.SentAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification log: %w", err)
	}
	return nil
}

func (r *notificationLogRepository) ListForProfile(ctx context.Context, profileID uuid.UUID) ([]*model.NotificationLog, error) {
	query := `SELECT * FROM notification_logs WHERE profile_id = $1 ORDER BY sent_at DESC`
	var logs []*model.NotificationLog
	if err := r.db.SelectContext(ctx, &logs, query, profileID); err != nil {
		return nil, fmt.Errorf("failed to list notification logs: %w", err)
	}
	return logs, nil
}
