package vaccination

import (
	"time"

	"github.com/google/uuid"

	"github.com/AaSu9/Aamcare/internal/model"
	"github.com/AaSu9/Aamcare/pkg/clock"
)

// scheduleEntry is one row of the fixed national immunization table,
// expressed as a day offset from the anchor date.
type scheduleEntry struct {
	code       string
	name       string
	target     model.VaccineTarget
	offsetDays int
}

// Mother doses after birth, offset from the child's birth date.
var postpartumMotherSchedule = []scheduleEntry{
	{code: "tdap_mother", name: "Tdap (Mother)", target: model.VaccineTargetMother, offsetDays: 7},
	{code: "influenza_mother", name: "Influenza (Mother)", target: model.VaccineTargetMother, offsetDays: 14},
	{code: "covid19_mother", name: "COVID-19 (Mother)", target: model.VaccineTargetMother, offsetDays: 21},
}

// Child doses per the national schedule, offset from the birth date.
var childSchedule = []scheduleEntry{
	{code: "bcg_birth", name: "BCG (Birth)", target: model.VaccineTargetChild, offsetDays: 0},
	{code: "hepb_birth", name: "Hepatitis B (Birth)", target: model.VaccineTargetChild, offsetDays: 0},
	{code: "opv_1", name: "OPV-1 (Oral Polio)", target: model.VaccineTargetChild, offsetDays: 42},
	{code: "opv_2", name: "OPV-2 (Oral Polio)", target: model.VaccineTargetChild, offsetDays: 70},
	{code: "dpt_1", name: "DPT-1 (Diphtheria, Pertussis, Tetanus)", target: model.VaccineTargetChild, offsetDays: 70},
	{code: "hepb_1", name: "Hepatitis B-1", target: model.VaccineTargetChild, offsetDays: 70},
	{code: "hib_1", name: "Hib-1 (Haemophilus influenzae type b)", target: model.VaccineTargetChild, offsetDays: 70},
	{code: "opv_3", name: "OPV-3 (Oral Polio)", target: model.VaccineTargetChild, offsetDays: 98},
	{code: "dpt_2", name: "DPT-2 (Diphtheria, Pertussis, Tetanus)", target: model.VaccineTargetChild, offsetDays: 98},
	{code: "hepb_2", name: "Hepatitis B-2", target: model.VaccineTargetChild, offsetDays: 98},
	{code: "hib_2", name: "Hib-2 (Haemophilus influenzae type b)", target: model.VaccineTargetChild, offsetDays: 98},
	{code: "opv_4", name: "OPV-4 (Oral Polio)", target: model.VaccineTargetChild, offsetDays: 270},
	{code: "dpt_3", name: "DPT-3 (Diphtheria, Pertussis, Tetanus)", target: model.VaccineTargetChild, offsetDays: 270},
	{code: "hepb_3", name: "Hepatitis B-3", target: model.VaccineTargetChild, offsetDays: 270},
	{code: "hib_3", name: "Hib-3 (Haemophilus influenzae type b)", target: model.VaccineTargetChild, offsetDays: 270},
	{code: "measles_1", name: "Measles-1", target: model.VaccineTargetChild, offsetDays: 270},
	{code: "mmr_1", name: "MMR-1 (Measles, Mumps, Rubella)", target: model.VaccineTargetChild, offsetDays: 450},
	{code: "varicella_1", name: "Varicella-1 (Chickenpox)", target: model.VaccineTargetChild, offsetDays: 450},
	{code: "dpt_booster_1", name: "DPT Booster-1", target: model.VaccineTargetChild, offsetDays: 540},
	{code: "opv_booster_1", name: "OPV Booster-1", target: model.VaccineTargetChild, offsetDays: 540},
	{code: "hib_booster_1", name: "Hib Booster-1", target: model.VaccineTargetChild, offsetDays: 540},
	{code: "typhoid_conjugate", name: "Typhoid Conjugate Vaccine", target: model.VaccineTargetChild, offsetDays: 720},
	{code: "dpt_booster_2", name: "DPT Booster-2", target: model.VaccineTargetChild, offsetDays: 1825},
	{code: "opv_booster_2", name: "OPV Booster-2", target: model.VaccineTargetChild, offsetDays: 1825},
	{code: "mmr_2", name: "MMR-2 (Measles, Mumps, Rubella)", target: model.VaccineTargetChild, offsetDays: 1825},
}

// ExpectantSchedule builds the pregnancy vaccination schedule. Tdap is
// anchored to the due date; influenza and COVID-19 are anchored to the day
// the schedule is generated. The today-relative pair is inherited behavior
// kept on purpose: the dates depend on when registration happens, not on
// the pregnancy timeline.
func ExpectantSchedule(profile *model.ExpectantProfile, today time.Time) []*model.VaccinationRecord {
	today = clock.DateOf(today)
	dueDate := clock.DateOf(profile.DueDate)

	return []*model.VaccinationRecord{
		newRecord(profile.ID, model.ProfileKindExpectant, scheduleEntry{
			code:   "tdap",
			name:   "Tdap (Tetanus, Diphtheria, Pertussis)",
			target: model.VaccineTargetMother,
		}, dueDate.AddDate(0, 0, -70)),
		newRecord(profile.ID, model.ProfileKindExpectant, scheduleEntry{
			code:   "influenza",
			name:   "Influenza Vaccine",
			target: model.VaccineTargetMother,
		}, today.AddDate(0, 0, 30)),
		newRecord(profile.ID, model.ProfileKindExpectant, scheduleEntry{
			code:   "covid19",
			name:   "COVID-19 Vaccine",
			target: model.VaccineTargetMother,
		}, today.AddDate(0, 0, 14)),
	}
}

// PostpartumSchedule builds the birth-anchored schedule: three mother doses
// plus the full child schedule. All records reference the mother's profile;
// the target tag tells mother and child doses apart.
func PostpartumSchedule(profile *model.PostpartumProfile) []*model.VaccinationRecord {
	birthDate := clock.DateOf(profile.ChildBirthDate)

	records := make([]*model.VaccinationRecord, 0, len(postpartumMotherSchedule)+len(childSchedule))
	for _, entry := range postpartumMotherSchedule {
		records = append(records, newRecord(profile.ID, model.ProfileKindPostpartum, entry, birthDate.AddDate(0, 0, entry.offsetDays)))
	}
	for _, entry := range childSchedule {
		records = append(records, newRecord(profile.ID, model.ProfileKindPostpartum, entry, birthDate.AddDate(0, 0, entry.offsetDays)))
	}
	return records
}

func newRecord(profileID uuid.UUID, kind model.ProfileKind, entry scheduleEntry, dueDate time.Time) *model.VaccinationRecord {
	return &model.VaccinationRecord{
		Base:        model.Base{ID: uuid.New()},
		ProfileID:   profileID,
		ProfileKind: kind,
		VaccineCode: entry.code,
		VaccineName: entry.name,
		Target:      entry.target,
		DueDate:     dueDate,
		Status:      model.VaccinationStatusPending,
	}
}
