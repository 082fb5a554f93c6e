package checkup

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AaSu9/Aamcare/internal/model"
	apperrors "github.com/AaSu9/Aamcare/pkg/errors"
	"github.com/AaSu9/Aamcare/pkg/logger"
)

type fakeCheckupRepo struct {
	checkups map[uuid.UUID]*model.CheckupRecord
}

func newFakeCheckupRepo() *fakeCheckupRepo {
	return &fakeCheckupRepo{checkups: make(map[uuid.UUID]*model.CheckupRecord)}
}

func (f *fakeCheckupRepo) Create(_ context.Context, c *model.CheckupRecord) error {
	f.checkups[c.ID] = c
	return nil
}

func (f *fakeCheckupRepo) Get(_ context.Context, id uuid.UUID) (*model.CheckupRecord, error) {
	if c, ok := f.checkups[id]; ok {
		return c, nil
	}
	return nil, apperrors.NotFound("checkup", nil)
}

func (f *fakeCheckupRepo) Update(_ context.Context, c *model.CheckupRecord) error {
	f.checkups[c.ID] = c
	return nil
}

func (f *fakeCheckupRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.checkups, id)
	return nil
}

func (f *fakeCheckupRepo) ListForProfile(_ context.Context, profileID uuid.UUID) ([]*model.CheckupRecord, error) {
	var out []*model.CheckupRecord
	for _, c := range f.checkups {
		if c.ProfileID == profileID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeRecommender struct {
	generated map[uuid.UUID][]*model.Recommendation
	fail      bool
}

func newFakeRecommender() *fakeRecommender {
	return &fakeRecommender{generated: make(map[uuid.UUID][]*model.Recommendation)}
}

func (f *fakeRecommender) GenerateForCheckup(_ context.Context, checkup *model.CheckupRecord, _ *model.Profile) ([]*model.Recommendation, error) {
	if f.fail {
		return nil, errors.New("engine unavailable")
	}
	recs := []*model.Recommendation{
		{Base: model.Base{ID: uuid.New()}, CheckupID: checkup.ID, Kind: model.RecommendationNutrition},
		{Base: model.Base{ID: uuid.New()}, CheckupID: checkup.ID, Kind: model.RecommendationLifestyle},
	}
	f.generated[checkup.ID] = recs
	return recs, nil
}

func (f *fakeRecommender) ListForCheckup(_ context.Context, checkupID uuid.UUID) ([]*model.Recommendation, error) {
	return f.generated[checkupID], nil
}

func (f *fakeRecommender) DeleteForCheckup(_ context.Context, checkupID uuid.UUID) error {
	delete(f.generated, checkupID)
	return nil
}

func testProfile() *model.Profile {
	return model.NewExpectantProfileRef(&model.ExpectantProfile{
		Base:    model.Base{ID: uuid.New()},
		Name:    "Sita",
		DueDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
	})
}

func TestSubmitGeneratesRecommendations(t *testing.T) {
	repo := newFakeCheckupRepo()
	rec := newFakeRecommender()
	svc := NewService(repo, rec, logger.NewLogger(nil))
	profile := testProfile()

	resp, err := svc.Submit(context.Background(), profile, &model.SubmitCheckupRequest{Month: 3})
	require.NoError(t, err)
	require.NotNil(t, resp.Checkup)

	assert.Equal(t, profile.ID(), resp.Checkup.ProfileID)
	assert.Equal(t, model.ProfileKindExpectant, resp.Checkup.ProfileKind)
	assert.Equal(t, 2, resp.RecommendationCount)
	assert.Empty(t, resp.Warning)
	assert.Contains(t, repo.checkups, resp.Checkup.ID)
}

func TestSubmitKeepsCheckupWhenGenerationFails(t *testing.T) {
	repo := newFakeCheckupRepo()
	rec := newFakeRecommender()
	rec.fail = true
	svc := NewService(repo, rec, logger.NewLogger(nil))

	resp, err := svc.Submit(context.Background(), testProfile(), &model.SubmitCheckupRequest{Month: 3})
	require.NoError(t, err, "generation failure must not fail the submission")

	assert.NotEmpty(t, resp.Warning)
	assert.Zero(t, resp.RecommendationCount)
	assert.Contains(t, repo.checkups, resp.Checkup.ID, "checkup stays persisted")
}

func TestUpdateRegeneratesRecommendations(t *testing.T) {
	repo := newFakeCheckupRepo()
	rec := newFakeRecommender()
	svc := NewService(repo, rec, logger.NewLogger(nil))
	profile := testProfile()

	submitted, err := svc.Submit(context.Background(), profile, &model.SubmitCheckupRequest{Month: 3})
	require.NoError(t, err)

	temp := 39.0
	resp, err := svc.Update(context.Background(), profile, submitted.Checkup.ID, &model.SubmitCheckupRequest{
		Month:      4,
		HasFever:   true,
		FeverTempC: &temp,
	})
	require.NoError(t, err)

	assert.Equal(t, 4, resp.Checkup.Month)
	assert.True(t, resp.Checkup.HasFever)
	assert.Equal(t, 2, resp.RecommendationCount)
	assert.Equal(t, 4, repo.checkups[submitted.Checkup.ID].Month, "update is persisted")
}

func TestUpdateForeignCheckupNotFound(t *testing.T) {
	repo := newFakeCheckupRepo()
	rec := newFakeRecommender()
	svc := NewService(repo, rec, logger.NewLogger(nil))

	submitted, err := svc.Submit(context.Background(), testProfile(), &model.SubmitCheckupRequest{Month: 3})
	require.NoError(t, err)

	// A different account's profile cannot touch the checkup.
	_, err = svc.Update(context.Background(), testProfile(), submitted.Checkup.ID, &model.SubmitCheckupRequest{Month: 4})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestRecommendationsUnknownCheckup(t *testing.T) {
	svc := NewService(newFakeCheckupRepo(), newFakeRecommender(), logger.NewLogger(nil))

	_, err := svc.Recommendations(context.Background(), uuid.New())
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteCascadesRecommendations(t *testing.T) {
	repo := newFakeCheckupRepo()
	rec := newFakeRecommender()
	svc := NewService(repo, rec, logger.NewLogger(nil))

	resp, err := svc.Submit(context.Background(), testProfile(), &model.SubmitCheckupRequest{Month: 3})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), resp.Checkup.ID))
	assert.NotContains(t, repo.checkups, resp.Checkup.ID)
	assert.NotContains(t, rec.generated, resp.Checkup.ID)
}
