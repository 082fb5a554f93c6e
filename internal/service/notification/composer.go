package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/AaSu9/Aamcare/internal/model"
	"github.com/AaSu9/Aamcare/pkg/clock"
)

const pregnantDiet = "🤰 *Daily Nutrition Schedule*\n\n" +
	"Morning: Warm water + banana + boiled egg\n" +
	"Breakfast: Oats + milk + dry fruits\n" +
	"Lunch: Rice + dal + spinach sabji + curd\n" +
	"Snacks: Roasted chana, fruits, coconut water\n" +
	"Dinner: Roti + mixed vegetables + paneer + turmeric milk"

const motherDiet = "🍼 *Daily Nutrition Schedule (Postpartum)*\n\n" +
	"Breakfast: Ragi porridge + almonds + milk\n" +
	"Lunch: Rice + dal + chicken curry + greens\n" +
	"Snacks: Fruit salad + herbal tea\n" +
	"Dinner: Chapati + sabji + paneer + turmeric milk"

// DueVaccinations filters the schedule down to records worth alerting on:
// pending or overdue, with a due date on or before today.
func DueVaccinations(records []*model.VaccinationRecord, today time.Time) []*model.VaccinationRecord {
	today = clock.DateOf(today)

	var due []*model.VaccinationRecord
	for _, rec := range records {
		if rec.Status != model.VaccinationStatusPending && rec.Status != model.VaccinationStatusOverdue {
			continue
		}
		if clock.DateOf(rec.DueDate).After(today) {
			continue
		}
		due = append(due, rec)
	}
	return due
}

// Compose builds the daily message for one profile: the nutrition block for
// the profile's stage, plus a vaccine alert when anything is due. The blocks
// are joined with blank lines so the message reads as sections.
func Compose(profile *model.Profile, due []*model.VaccinationRecord) string {
	var blocks []string

	switch profile.Kind {
	case model.ProfileKindExpectant:
		blocks = append(blocks, pregnantDiet)
	case model.ProfileKindPostpartum:
		blocks = append(blocks, motherDiet)
	}

	if len(due) > 0 {
		var lines []string
		for _, rec := range due {
			lines = append(lines, fmt.Sprintf("- %s (Due: %s)", rec.VaccineName, rec.DueDate.Format("2006-01-02")))
		}
		blocks = append(blocks, fmt.Sprintf(
			"⚠️ *Vaccine Alert*\nYou have overdue vaccines:\n%s\nPlease visit your health center.",
			strings.Join(lines, "\n"),
		))
	}

	return strings.Join(blocks, "\n\n")
}
