package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/AaSu9/Aamcare/internal/model"
)

type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	Get(ctx context.Context, id uuid.UUID) (*model.Account, error)
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	Update(ctx context.Context, account *model.Account) error
}

type ProfileRepository interface {
	CreateExpectant(ctx context.Context, profile *model.ExpectantProfile) error
	CreatePostpartum(ctx context.Context, profile *model.PostpartumProfile) error
	GetExpectant(ctx context.Context, id uuid.UUID) (*model.ExpectantProfile, error)
	GetPostpartum(ctx context.Context, id uuid.UUID) (*model.PostpartumProfile, error)
	GetExpectantByAccount(ctx context.Context, accountID uuid.UUID) (*model.ExpectantProfile, error)
	GetPostpartumByAccount(ctx context.Context, accountID uuid.UUID) (*model.PostpartumProfile, error)
	UpdateExpectant(ctx context.Context, profile *model.ExpectantProfile) error
	UpdatePostpartum(ctx context.Context, profile *model.PostpartumProfile) error
	DeleteExpectant(ctx context.Context, id uuid.UUID) error
	DeletePostpartum(ctx context.Context, id uuid.UUID) error
	ListExpectant(ctx context.Context) ([]*model.ExpectantProfile, error)
	ListPostpartum(ctx context.Context) ([]*model.PostpartumProfile, error)
}

type VaccinationRepository interface {
	CreateBatch(ctx context.Context, records []*model.VaccinationRecord) error
	Get(ctx context.Context, id uuid.UUID) (*model.VaccinationRecord, error)
	ListForProfile(ctx context.Context, profileID uuid.UUID) ([]*model.VaccinationRecord, error)
	CountForProfile(ctx context.Context, profileID uuid.UUID) (int, error)
	Update(ctx context.Context, record *model.VaccinationRecord) error
	UpdateStatuses(ctx context.Context, records []*model.VaccinationRecord) error
	DeleteForProfile(ctx context.Context, profileID uuid.UUID) error
}

type CheckupRepository interface {
	Create(ctx context.Context, checkup *model.CheckupRecord) error
	Get(ctx context.Context, id uuid.UUID) (*model.CheckupRecord, error)
	Update(ctx context.Context, checkup *model.CheckupRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListForProfile(ctx context.Context, profileID uuid.UUID) ([]*model.CheckupRecord, error)
}

type RecommendationRepository interface {
	// ReplaceForCheckup deletes all recommendations owned by the checkup and
	// inserts the new set within one transaction, so readers never observe an
	// empty or doubled set.
	ReplaceForCheckup(ctx context.Context, checkupID uuid.UUID, recs []*model.Recommendation) error
	ListForCheckup(ctx context.Context, checkupID uuid.UUID) ([]*model.Recommendation, error)
	DeleteForCheckup(ctx context.Context, checkupID uuid.UUID) error
}

type ContentRepository interface {
	ListContent(ctx context.Context, filter *model.ContentFilter) ([]*model.InfoContent, error)
	ListTips(ctx context.Context, week int) ([]*model.PregnancyTip, error)
}

type NotificationLogRepository interface {
	Create(ctx context.Context, log *model.NotificationLog) error
	ListForProfile(ctx context.Context, profileID uuid.UUID) ([]*model.NotificationLog, error)
}
