package vaccination

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AaSu9/Aamcare/internal/model"
)

var (
	scheduleToday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	scheduleDue   = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	scheduleBirth = time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
)

func TestExpectantSchedule(t *testing.T) {
	profile := &model.ExpectantProfile{
		Base:    model.Base{ID: uuid.New()},
		Name:    "Sita",
		DueDate: scheduleDue,
	}

	records := ExpectantSchedule(profile, scheduleToday)
	require.Len(t, records, 3)

	byCode := map[string]*model.VaccinationRecord{}
	for _, rec := range records {
		byCode[rec.VaccineCode] = rec

		assert.NotEqual(t, uuid.Nil, rec.ID)
		assert.Equal(t, profile.ID, rec.ProfileID)
		assert.Equal(t, model.ProfileKindExpectant, rec.ProfileKind)
		assert.Equal(t, model.VaccineTargetMother, rec.Target)
		assert.Equal(t, model.VaccinationStatusPending, rec.Status)
		assert.Nil(t, rec.CompletedDate)
	}

	require.Contains(t, byCode, "tdap")
	require.Contains(t, byCode, "influenza")
	require.Contains(t, byCode, "covid19")

	assert.Equal(t, scheduleDue.AddDate(0, 0, -70), byCode["tdap"].DueDate)
	assert.Equal(t, scheduleToday.AddDate(0, 0, 30), byCode["influenza"].DueDate)
	assert.Equal(t, scheduleToday.AddDate(0, 0, 14), byCode["covid19"].DueDate)
}

func TestExpectantScheduleTruncatesToMidnight(t *testing.T) {
	profile := &model.ExpectantProfile{
		Base:    model.Base{ID: uuid.New()},
		DueDate: scheduleDue.Add(15 * time.Hour),
	}
	now := scheduleToday.Add(23*time.Hour + 59*time.Minute)

	records := ExpectantSchedule(profile, now)
	for _, rec := range records {
		h, m, s := rec.DueDate.Clock()
		assert.Zero(t, h+m+s, "due date %s for %s is not midnight", rec.DueDate, rec.VaccineCode)
	}
}

func TestPostpartumSchedule(t *testing.T) {
	profile := &model.PostpartumProfile{
		Base:           model.Base{ID: uuid.New()},
		Name:           "Gita",
		ChildBirthDate: scheduleBirth,
	}

	records := PostpartumSchedule(profile)
	require.Len(t, records, 28)

	var mother, child int
	codes := map[string]bool{}
	for _, rec := range records {
		require.False(t, codes[rec.VaccineCode], "duplicate code %s", rec.VaccineCode)
		codes[rec.VaccineCode] = true

		assert.Equal(t, profile.ID, rec.ProfileID)
		assert.Equal(t, model.ProfileKindPostpartum, rec.ProfileKind)
		assert.Equal(t, model.VaccinationStatusPending, rec.Status)
		assert.Nil(t, rec.CompletedDate)

		switch rec.Target {
		case model.VaccineTargetMother:
			mother++
		case model.VaccineTargetChild:
			child++
		}
	}
	assert.Equal(t, 3, mother)
	assert.Equal(t, 25, child)
}

func TestPostpartumScheduleOffsets(t *testing.T) {
	profile := &model.PostpartumProfile{
		Base:           model.Base{ID: uuid.New()},
		ChildBirthDate: scheduleBirth,
	}

	byCode := map[string]*model.VaccinationRecord{}
	for _, rec := range PostpartumSchedule(profile) {
		byCode[rec.VaccineCode] = rec
	}

	tests := []struct {
		code   string
		offset int
	}{
		{"tdap_mother", 7},
		{"influenza_mother", 14},
		{"covid19_mother", 21},
		{"bcg_birth", 0},
		{"hepb_birth", 0},
		{"opv_1", 42},
		{"opv_2", 70},
		{"opv_3", 98},
		{"opv_4", 270},
		{"measles_1", 270},
		{"mmr_1", 450},
		{"dpt_booster_1", 540},
		{"typhoid_conjugate", 720},
		{"mmr_2", 1825},
	}
	for _, tt := range tests {
		rec, ok := byCode[tt.code]
		require.True(t, ok, "missing code %s", tt.code)
		assert.Equal(t, scheduleBirth.AddDate(0, 0, tt.offset), rec.DueDate, "code %s", tt.code)
	}
}
