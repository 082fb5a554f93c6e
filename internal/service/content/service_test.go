package content

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AaSu9/Aamcare/internal/model"
	"github.com/AaSu9/Aamcare/pkg/clock"
)

type fakeContentRepo struct {
	content     []*model.InfoContent
	tips        []*model.PregnancyTip
	listCalls   int
	lastFilter  *model.ContentFilter
	tipsCalls   int
	lastTipWeek int
}

func (f *fakeContentRepo) ListContent(_ context.Context, filter *model.ContentFilter) ([]*model.InfoContent, error) {
	f.listCalls++
	f.lastFilter = filter
	return f.content, nil
}

func (f *fakeContentRepo) ListTips(_ context.Context, week int) ([]*model.PregnancyTip, error) {
	f.tipsCalls++
	f.lastTipWeek = week
	return f.tips, nil
}

var contentToday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func weekRanged(title string, start, end int) *model.InfoContent {
	return &model.InfoContent{
		Base:      model.Base{ID: uuid.New()},
		Category:  model.ContentDiet,
		Title:     title,
		WeekStart: &start,
		WeekEnd:   &end,
	}
}

func TestListCachesPerFilter(t *testing.T) {
	repo := &fakeContentRepo{content: []*model.InfoContent{
		{Base: model.Base{ID: uuid.New()}, Category: model.ContentDiet, Title: "Iron-rich foods"},
	}}
	svc := NewService(repo, time.Minute, clock.Fixed(contentToday))

	filter := &model.ContentFilter{Category: model.ContentDiet}

	first, err := svc.List(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, first, 1)

	_, err = svc.List(context.Background(), filter)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls, "second read served from cache")

	// A different filter is a different cache entry.
	_, err = svc.List(context.Background(), &model.ContentFilter{Category: model.ContentVaccine})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
}

func TestListFiltersByWeekRange(t *testing.T) {
	repo := &fakeContentRepo{content: []*model.InfoContent{
		weekRanged("Early pregnancy diet", 1, 13),
		weekRanged("Third trimester diet", 27, 40),
		{Base: model.Base{ID: uuid.New()}, Category: model.ContentDiet, Title: "General advice"},
	}}
	svc := NewService(repo, time.Minute, clock.Fixed(contentToday))

	week := 30
	items, err := svc.List(context.Background(), &model.ContentFilter{Week: &week})
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "Third trimester diet", items[0].Title)
	assert.Equal(t, "General advice", items[1].Title, "unranged content is always relevant")
}

func TestForProfileExpectantTargeting(t *testing.T) {
	repo := &fakeContentRepo{}
	svc := NewService(repo, time.Minute, clock.Fixed(contentToday))

	// Due in 70 days puts the pregnancy at week 30, third trimester.
	profile := model.NewExpectantProfileRef(&model.ExpectantProfile{
		Base:    model.Base{ID: uuid.New()},
		DueDate: contentToday.AddDate(0, 0, 70),
	})

	_, err := svc.ForProfile(context.Background(), profile)
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter)
	assert.Equal(t, model.AudiencePregnant, repo.lastFilter.TargetAudience)
	assert.Equal(t, "3", repo.lastFilter.Trimester)
	require.NotNil(t, repo.lastFilter.Week)
	assert.Equal(t, 30, *repo.lastFilter.Week)
}

func TestForProfilePostpartumTargeting(t *testing.T) {
	repo := &fakeContentRepo{}
	svc := NewService(repo, time.Minute, clock.Fixed(contentToday))

	profile := model.NewPostpartumProfileRef(&model.PostpartumProfile{
		Base:           model.Base{ID: uuid.New()},
		ChildBirthDate: contentToday.AddDate(0, 0, -60),
	})

	_, err := svc.ForProfile(context.Background(), profile)
	require.NoError(t, err)

	require.NotNil(t, repo.lastFilter)
	assert.Equal(t, model.AudienceMother, repo.lastFilter.TargetAudience)
	assert.Equal(t, string(model.PostpartumStageMid), repo.lastFilter.PostpartumStage)
	assert.Nil(t, repo.lastFilter.Week)
}

func TestTipsForWeekCaches(t *testing.T) {
	repo := &fakeContentRepo{tips: []*model.PregnancyTip{
		{Base: model.Base{ID: uuid.New()}, Title: "Stay hydrated", WeekStart: 1, WeekEnd: 40, IsActive: true},
	}}
	svc := NewService(repo, time.Minute, clock.Fixed(contentToday))

	tips, err := svc.TipsForWeek(context.Background(), 12)
	require.NoError(t, err)
	require.Len(t, tips, 1)
	assert.Equal(t, 12, repo.lastTipWeek)

	_, err = svc.TipsForWeek(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.tipsCalls, "second read served from cache")
}
