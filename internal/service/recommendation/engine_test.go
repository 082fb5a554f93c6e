package recommendation

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

var testToday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

// expectantAtWeek builds a profile whose pregnancy week on testToday equals
// the given week.
func expectantAtWeek(week int) *model.Profile {
	// conception = today - week*7 days, due = conception + 280 days
	due := testToday.AddDate(0, 0, 280-week*7)
	return model.NewExpectantProfileRef(&model.ExpectantProfile{
		Base:    model.Base{ID: uuid.New()},
		Name:    "Sita",
		Age:     27,
		DueDate: due,
	})
}

func postpartumProfile(daysSinceBirth int) *model.Profile {
	return model.NewPostpartumProfileRef(&model.PostpartumProfile{
		Base:           model.Base{ID: uuid.New()},
		Name:           "Gita",
		ChildBirthDate: testToday.AddDate(0, 0, -daysSinceBirth),
	})
}

func baseCheckup() *model.CheckupRecord {
	return &model.CheckupRecord{
		Base:  model.Base{ID: uuid.New()},
		Month: 1,
	}
}

func TestNutritionRuleTrimesters(t *testing.T) {
	tests := []struct {
		name     string
		week     int
		calories int
		calcium  float64
	}{
		{"first trimester", 8, 1800, 1000},
		{"first trimester boundary", 13, 1800, 1000},
		{"second trimester", 14, 2200, 1000},
		{"second trimester boundary", 26, 2200, 1000},
		{"third trimester", 27, 2400, 1200},
		{"term", 40, 2400, 1200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs := nutritionRule(baseCheckup(), expectantAtWeek(tt.week), testToday)
			require.Len(t, recs, 1)
			assert.Equal(t, model.RecommendationNutrition, recs[0].Kind)
			assert.Equal(t, model.SeverityLow, recs[0].Severity)
			require.NotNil(t, recs[0].CaloriesPerDay)
			assert.Equal(t, tt.calories, *recs[0].CaloriesPerDay)
			require.NotNil(t, recs[0].CalciumMg)
			assert.Equal(t, tt.calcium, *recs[0].CalciumMg)
		})
	}
}

func TestNutritionRulePostpartum(t *testing.T) {
	recs := nutritionRule(baseCheckup(), postpartumProfile(20), testToday)
	require.Len(t, recs, 1)
	assert.Equal(t, model.RecommendationNutrition, recs[0].Kind)
	require.NotNil(t, recs[0].CaloriesPerDay)
	assert.Equal(t, 2500, *recs[0].CaloriesPerDay)
}

func TestBloodPressureTiers(t *testing.T) {
	tests := []struct {
		name     string
		sys, dia int
		kind     model.RecommendationKind
		severity model.Severity
		followUp *int
		action   bool
		none     bool
	}{
		{name: "crisis systolic", sys: 180, dia: 80, kind: model.RecommendationMedicalAttention, severity: model.SeverityUrgent, followUp: intPtr(0), action: true},
		{name: "crisis diastolic", sys: 120, dia: 120, kind: model.RecommendationMedicalAttention, severity: model.SeverityUrgent, followUp: intPtr(0), action: true},
		{name: "stage two systolic", sys: 140, dia: 85, kind: model.RecommendationMedicalAttention, severity: model.SeverityUrgent, followUp: intPtr(1), action: true},
		{name: "stage two diastolic", sys: 120, dia: 90, kind: model.RecommendationMedicalAttention, severity: model.SeverityUrgent, followUp: intPtr(1), action: true},
		{name: "elevated systolic", sys: 130, dia: 75, kind: model.RecommendationLifestyle, severity: model.SeverityHigh, followUp: intPtr(3)},
		{name: "elevated diastolic", sys: 120, dia: 80, kind: model.RecommendationLifestyle, severity: model.SeverityHigh, followUp: intPtr(3)},
		{name: "low systolic", sys: 89, dia: 65, kind: model.RecommendationMedicalAttention, severity: model.SeverityMedium, followUp: intPtr(7)},
		{name: "low diastolic", sys: 100, dia: 59, kind: model.RecommendationMedicalAttention, severity: model.SeverityMedium, followUp: intPtr(7)},
		{name: "normal", sys: 110, dia: 70, none: true},
		{name: "normal lower bound", sys: 90, dia: 60, none: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkup := baseCheckup()
			checkup.Systolic = intPtr(tt.sys)
			checkup.Diastolic = intPtr(tt.dia)

			recs := bloodPressureRule(checkup, expectantAtWeek(20), testToday)
			if tt.none {
				assert.Empty(t, recs)
				return
			}
			require.Len(t, recs, 1)
			assert.Equal(t, tt.kind, recs[0].Kind)
			assert.Equal(t, tt.severity, recs[0].Severity)
			assert.Equal(t, tt.action, recs[0].ActionRequired)
			require.NotNil(t, recs[0].FollowUpDays)
			assert.Equal(t, *tt.followUp, *recs[0].FollowUpDays)
		})
	}
}

func TestBloodPressureRequiresBothReadings(t *testing.T) {
	checkup := baseCheckup()
	checkup.Systolic = intPtr(190)
	assert.Empty(t, bloodPressureRule(checkup, expectantAtWeek(20), testToday))

	checkup = baseCheckup()
	checkup.Diastolic = intPtr(130)
	assert.Empty(t, bloodPressureRule(checkup, expectantAtWeek(20), testToday))
}

func TestFeverTiers(t *testing.T) {
	tests := []struct {
		name     string
		temp     float64
		severity model.Severity
		action   bool
		none     bool
	}{
		{name: "high fever", temp: 39.0, severity: model.SeverityHigh, action: true},
		{name: "high fever boundary", temp: 38.5, severity: model.SeverityHigh, action: true},
		{name: "mild fever", temp: 38.0, severity: model.SeverityMedium},
		{name: "mild fever boundary", temp: 37.5, severity: model.SeverityMedium},
		{name: "normal temperature", temp: 37.0, none: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkup := baseCheckup()
			checkup.HasFever = true
			checkup.FeverTempC = floatPtr(tt.temp)

			recs := feverRule(checkup, expectantAtWeek(20), testToday)
			if tt.none {
				assert.Empty(t, recs)
				return
			}
			require.Len(t, recs, 1)
			assert.Equal(t, model.RecommendationMedicine, recs[0].Kind)
			assert.Equal(t, tt.severity, recs[0].Severity)
			assert.Equal(t, tt.action, recs[0].ActionRequired)
			assert.Equal(t, "Paracetamol", recs[0].MedicineName)
		})
	}
}

func TestFeverRequiresFlagAndReading(t *testing.T) {
	checkup := baseCheckup()
	checkup.FeverTempC = floatPtr(39.5)
	assert.Empty(t, feverRule(checkup, expectantAtWeek(20), testToday), "flag unset")

	checkup = baseCheckup()
	checkup.HasFever = true
	assert.Empty(t, feverRule(checkup, expectantAtWeek(20), testToday), "reading missing")
}

func TestSymptomScanMergesMatches(t *testing.T) {
	checkup := baseCheckup()
	checkup.Notes = "Severe headache since morning, vision is blurry sometimes"

	recs := symptomScanRule(checkup, expectantAtWeek(30), testToday)
	require.Len(t, recs, 1)
	assert.Equal(t, model.RecommendationMedicalAttention, recs[0].Kind)
	assert.Equal(t, model.SeverityHigh, recs[0].Severity)
	assert.True(t, recs[0].ActionRequired)
	assert.Contains(t, recs[0].Description, "Severe headache")
	assert.Contains(t, recs[0].Description, "Vision changes")
}

func TestSymptomScanWeekGate(t *testing.T) {
	checkup := baseCheckup()
	checkup.Notes = "having contractions"

	recs := symptomScanRule(checkup, expectantAtWeek(35), testToday)
	require.Len(t, recs, 1, "contractions before 37 weeks should match")

	recs = symptomScanRule(checkup, expectantAtWeek(38), testToday)
	assert.Empty(t, recs, "contractions at term are not flagged")
}

func TestSymptomScanPostpartumPatterns(t *testing.T) {
	checkup := baseCheckup()
	checkup.Notes = "heavy bleeding, feeling very sad lately"

	recs := symptomScanRule(checkup, postpartumProfile(10), testToday)
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0].Description, "Heavy postpartum bleeding")
	assert.Contains(t, recs[0].Description, "low mood")
}

func TestSymptomScanNoMatches(t *testing.T) {
	checkup := baseCheckup()
	checkup.Notes = "feeling fine, slept well"
	assert.Empty(t, symptomScanRule(checkup, expectantAtWeek(20), testToday))

	checkup.Notes = ""
	assert.Empty(t, symptomScanRule(checkup, expectantAtWeek(20), testToday))
}

func TestChildGrowthRule(t *testing.T) {
	t.Run("low weight only", func(t *testing.T) {
		checkup := baseCheckup()
		checkup.ChildWeightKg = floatPtr(2.2)
		checkup.ChildHeightCm = floatPtr(48)

		recs := childGrowthRule(checkup, postpartumProfile(5), testToday)
		require.Len(t, recs, 1)
		assert.Equal(t, model.SeverityHigh, recs[0].Severity)
		assert.True(t, recs[0].ActionRequired)
	})

	t.Run("both findings fire independently", func(t *testing.T) {
		checkup := baseCheckup()
		checkup.ChildWeightKg = floatPtr(2.2)
		checkup.ChildHeightCm = floatPtr(43)

		recs := childGrowthRule(checkup, postpartumProfile(5), testToday)
		assert.Len(t, recs, 2)
	})

	t.Run("normal measurements", func(t *testing.T) {
		checkup := baseCheckup()
		checkup.ChildWeightKg = floatPtr(3.1)
		checkup.ChildHeightCm = floatPtr(50)

		assert.Empty(t, childGrowthRule(checkup, postpartumProfile(5), testToday))
	})

	t.Run("never fires for expectant profiles", func(t *testing.T) {
		checkup := baseCheckup()
		checkup.ChildWeightKg = floatPtr(2.0)
		checkup.ChildHeightCm = floatPtr(40)

		assert.Empty(t, childGrowthRule(checkup, expectantAtWeek(20), testToday))
	})

	t.Run("requires both measurements", func(t *testing.T) {
		checkup := baseCheckup()
		checkup.ChildWeightKg = floatPtr(2.0)

		assert.Empty(t, childGrowthRule(checkup, postpartumProfile(5), testToday))
	})
}

// A week-11 pregnancy reporting 150/95 blood pressure, a 39.0 fever and
// severe headache with blurry vision produces exactly four recommendations:
// nutrition, merged symptoms, fever medicine and blood pressure.
func TestGenerateCombined(t *testing.T) {
	profile := expectantAtWeek(11)
	checkup := baseCheckup()
	checkup.Systolic = intPtr(150)
	checkup.Diastolic = intPtr(95)
	checkup.HasFever = true
	checkup.FeverTempC = floatPtr(39.0)
	checkup.Notes = "severe headache and blurry vision"

	recs := Generate(checkup, profile, testToday)
	require.Len(t, recs, 4)

	byKind := map[model.RecommendationKind]int{}
	for _, rec := range recs {
		byKind[rec.Kind]++
		assert.NotEqual(t, uuid.Nil, rec.ID)
		assert.Equal(t, checkup.ID, rec.CheckupID)
	}
	assert.Equal(t, 1, byKind[model.RecommendationNutrition])
	assert.Equal(t, 1, byKind[model.RecommendationMedicine])
	assert.Equal(t, 2, byKind[model.RecommendationMedicalAttention])
}

func TestGenerateDeterministic(t *testing.T) {
	profile := expectantAtWeek(22)
	checkup := baseCheckup()
	checkup.Systolic = intPtr(135)
	checkup.Diastolic = intPtr(85)

	first := Generate(checkup, profile, testToday)
	second := Generate(checkup, profile, testToday)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Kind, second[i].Kind)
		assert.Equal(t, first[i].Title, second[i].Title)
		assert.Equal(t, first[i].Severity, second[i].Severity)
	}
}

func TestRunRuleRecoversPanic(t *testing.T) {
	panicking := func(*model.CheckupRecord, *model.Profile, time.Time) []*model.Recommendation {
		panic("boom")
	}
	assert.NotPanics(t, func() {
		recs := runRule(panicking, baseCheckup(), expectantAtWeek(20), testToday)
		assert.Nil(t, recs)
	})
}

type fakeRecommendationRepo struct {
	sets map[uuid.UUID][]*model.Recommendation
}

func newFakeRecommendationRepo() *fakeRecommendationRepo {
	return &fakeRecommendationRepo{sets: make(map[uuid.UUID][]*model.Recommendation)}
}

func (f *fakeRecommendationRepo) ReplaceForCheckup(_ context.Context, checkupID uuid.UUID, recs []*model.Recommendation) error {
	f.sets[checkupID] = recs
	return nil
}

func (f *fakeRecommendationRepo) ListForCheckup(_ context.Context, checkupID uuid.UUID) ([]*model.Recommendation, error) {
	return f.sets[checkupID], nil
}

func (f *fakeRecommendationRepo) DeleteForCheckup(_ context.Context, checkupID uuid.UUID) error {
	delete(f.sets, checkupID)
	return nil
}

func TestServiceReplacesOnRegenerate(t *testing.T) {
	repo := newFakeRecommendationRepo()
	svc := NewService(repo, clock.Fixed(testToday))

	profile := expectantAtWeek(11)
	checkup := baseCheckup()
	checkup.Systolic = intPtr(150)
	checkup.Diastolic = intPtr(95)

	first, err := svc.GenerateForCheckup(context.Background(), checkup, profile)
	require.NoError(t, err)
	require.Len(t, first, 2)

	// Vitals return to normal; regeneration must fully replace the old set.
	checkup.Systolic = intPtr(110)
	checkup.Diastolic = intPtr(70)

	second, err := svc.GenerateForCheckup(context.Background(), checkup, profile)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, model.RecommendationNutrition, second[0].Kind)

	stored, err := svc.ListForCheckup(context.Background(), checkup.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}
