package vaccination

import (
	"time"

	"github.com/AaSu9/Aamcare/internal/model"
	"github.com/AaSu9/Aamcare/pkg/clock"
)

// Refresh flips every pending record whose due date has passed to overdue,
// in place, and returns the records it changed. The transition is one-way
// and saturating: completed and not-applicable records are never touched,
// and running Refresh again with the same day is a no-op.
func Refresh(records []*model.VaccinationRecord, today time.Time) []*model.VaccinationRecord {
	today = clock.DateOf(today)

	var changed []*model.VaccinationRecord
	for _, rec := range records {
		if rec.Status == model.VaccinationStatusPending && clock.DateOf(rec.DueDate).Before(today) {
			rec.Status = model.VaccinationStatusOverdue
			changed = append(changed, rec)
		}
	}
	return changed
}

// ApplyStatus performs a user-driven status change. Moving to completed
// defaults the completed date to today when the caller didn't supply one;
// moving to any other status clears it.
func ApplyStatus(rec *model.VaccinationRecord, status model.VaccinationStatus, completedDate *time.Time, today time.Time) {
	rec.Status = status
	if status == model.VaccinationStatusCompleted {
		if completedDate != nil {
			d := clock.DateOf(*completedDate)
			rec.CompletedDate = &d
		} else if rec.CompletedDate == nil {
			d := clock.DateOf(today)
			rec.CompletedDate = &d
		}
		return
	}
	rec.CompletedDate = nil
}

// Stats summarizes records for the tracker view, splitting mother and child
// doses by the explicit target tag.
func Stats(records []*model.VaccinationRecord) *model.VaccinationStats {
	stats := &model.VaccinationStats{Total: len(records)}
	for _, rec := range records {
		switch rec.Status {
		case model.VaccinationStatusCompleted:
			stats.Completed++
		case model.VaccinationStatusPending:
			stats.Pending++
		case model.VaccinationStatusOverdue:
			stats.Overdue++
		}
		switch rec.Target {
		case model.VaccineTargetMother:
			stats.Mother++
		case model.VaccineTargetChild:
			stats.Child++
		}
	}
	return stats
}
