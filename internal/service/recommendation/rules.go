package recommendation

import (
	"strings"
	"time"

	"github.com/AaSu9/Aamcare/internal/model"
)

// nutritionRule always fires exactly once. Expectant profiles branch on
// trimester; postpartum profiles get the fixed breastfeeding targets.
func nutritionRule(checkup *model.CheckupRecord, profile *model.Profile, today time.Time) []*model.Recommendation {
	switch profile.Kind {
	case model.ProfileKindExpectant:
		week := profile.Expectant.PregnancyWeek(today)
		switch {
		case week <= 13:
			return []*model.Recommendation{{
				Kind:           model.RecommendationNutrition,
				Title:          "First trimester nutrition plan",
				Description:    "Eat small frequent meals rich in folate: leafy greens, lentils, citrus. Take folic acid daily and drink plenty of fluids to manage nausea.",
				Severity:       model.SeverityLow,
				CaloriesPerDay: intPtr(1800),
				ProteinGrams:   floatPtr(71),
				IronMg:         floatPtr(27),
				CalciumMg:      floatPtr(1000),
			}}
		case week <= 26:
			return []*model.Recommendation{{
				Kind:           model.RecommendationNutrition,
				Title:          "Second trimester nutrition plan",
				Description:    "Increase intake with dal, eggs, dairy and seasonal fruit. Iron and calcium matter most this trimester; pair iron-rich food with vitamin C.",
				Severity:       model.SeverityLow,
				CaloriesPerDay: intPtr(2200),
				ProteinGrams:   floatPtr(71),
				IronMg:         floatPtr(27),
				CalciumMg:      floatPtr(1000),
			}}
		default:
			return []*model.Recommendation{{
				Kind:           model.RecommendationNutrition,
				Title:          "Third trimester nutrition plan",
				Description:    "Eat energy-dense meals: rice, ghee, nuts, paneer. Keep up calcium for the baby's bones and stay hydrated; smaller portions help with heartburn.",
				Severity:       model.SeverityLow,
				CaloriesPerDay: intPtr(2400),
				ProteinGrams:   floatPtr(71),
				IronMg:         floatPtr(27),
				CalciumMg:      floatPtr(1200),
			}}
		}
	case model.ProfileKindPostpartum:
		return []*model.Recommendation{{
			Kind:           model.RecommendationNutrition,
			Title:          "Breastfeeding nutrition plan",
			Description:    "Breastfeeding needs extra energy: porridge, milk, almonds, green vegetables and plenty of water. Continue iron and calcium-rich foods while recovering.",
			Severity:       model.SeverityLow,
			CaloriesPerDay: intPtr(2500),
			ProteinGrams:   floatPtr(71),
			IronMg:         floatPtr(9),
			CalciumMg:      floatPtr(1000),
		}}
	}
	return nil
}

// symptomPattern is a blunt substring test over lower-cased notes. Every
// substring in all must be present, and when any is non-empty at least one
// of those must be present too. maxWeek, when set, gates the pattern on the
// pregnancy week. No negation handling: "no bleeding" still matches
// "bleeding". Known limitation, kept as-is.
type symptomPattern struct {
	all     []string
	any     []string
	maxWeek int
	message string
}

var expectantSymptoms = []symptomPattern{
	{all: []string{"bleeding"}, message: "Vaginal bleeding reported."},
	{all: []string{"severe headache"}, message: "Severe headache reported."},
	{all: []string{"vision"}, any: []string{"blurry", "spots", "flashing"}, message: "Vision changes reported."},
	{all: []string{"swelling"}, any: []string{"face", "hands"}, message: "Swelling of the face or hands reported."},
	{all: []string{"contractions"}, maxWeek: 37, message: "Contractions before 37 weeks reported."},
	{all: []string{"decreased fetal movement"}, message: "Decreased fetal movement reported."},
	{all: []string{"severe nausea"}, message: "Severe or persistent nausea reported."},
	{all: []string{"abdominal pain"}, message: "Abdominal pain reported."},
	{all: []string{"pelvic pain"}, message: "Pelvic pain reported."},
}

var postpartumSymptoms = []symptomPattern{
	{all: []string{"bleeding"}, any: []string{"heavy", "soaking"}, message: "Heavy postpartum bleeding reported."},
	{all: []string{"fever"}, message: "Fever mentioned in notes."},
	{all: []string{"severe headache"}, message: "Severe headache reported."},
	{all: []string{"pain"}, any: []string{"incision", "c-section"}, message: "Incision or c-section pain reported."},
	{all: []string{"chest pain"}, message: "Chest pain reported."},
	{all: []string{"difficulty breathing"}, message: "Difficulty breathing reported."},
	{any: []string{"depression", "sad", "hopeless", "anxious"}, message: "Signs of low mood or anxiety reported."},
	{all: []string{"swelling"}, any: []string{"leg", "arm"}, message: "Swelling in a limb reported."},
	{all: []string{"foul discharge"}, message: "Foul-smelling discharge reported."},
	{all: []string{"not eating"}, message: "Baby not eating well."},
	{all: []string{"excessive crying"}, message: "Baby crying excessively."},
	{all: []string{"rash"}, message: "Rash on the baby reported."},
}

func (p symptomPattern) matches(notes string, week int) bool {
	for _, s := range p.all {
		if !strings.Contains(notes, s) {
			return false
		}
	}
	if len(p.any) > 0 {
		found := false
		for _, s := range p.any {
			if strings.Contains(notes, s) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if p.maxWeek > 0 && week >= p.maxWeek {
		return false
	}
	return true
}

// symptomScanRule scans free-text notes against the profile-specific pattern
// set. All matches merge into one medical-attention recommendation.
func symptomScanRule(checkup *model.CheckupRecord, profile *model.Profile, today time.Time) []*model.Recommendation {
	if checkup.Notes == "" {
		return nil
	}
	notes := strings.ToLower(checkup.Notes)

	var patterns []symptomPattern
	week := 0
	switch profile.Kind {
	case model.ProfileKindExpectant:
		patterns = expectantSymptoms
		week = profile.Expectant.PregnancyWeek(today)
	case model.ProfileKindPostpartum:
		patterns = postpartumSymptoms
	default:
		return nil
	}

	var matched []string
	for _, p := range patterns {
		if p.matches(notes, week) {
			matched = append(matched, p.message)
		}
	}
	if len(matched) == 0 {
		return nil
	}

	return []*model.Recommendation{{
		Kind:           model.RecommendationMedicalAttention,
		Title:          "Symptoms need medical review",
		Description:    strings.Join(matched, " ") + " Please contact your health worker or visit the nearest health center.",
		Severity:       model.SeverityHigh,
		ActionRequired: true,
		FollowUpDays:   intPtr(3),
	}}
}

// feverRule branches on the reported temperature. Gated on both the fever
// flag and a present reading.
func feverRule(checkup *model.CheckupRecord, _ *model.Profile, _ time.Time) []*model.Recommendation {
	if !checkup.HasFever || checkup.FeverTempC == nil {
		return nil
	}
	temp := *checkup.FeverTempC
	switch {
	case temp >= 38.5:
		return []*model.Recommendation{{
			Kind:           model.RecommendationMedicine,
			Title:          "High fever treatment",
			Description:    "Temperature is 38.5°C or above. Take paracetamol, rest, drink fluids, and see a health worker if the fever lasts more than a day.",
			Severity:       model.SeverityHigh,
			MedicineName:   "Paracetamol",
			Dosage:         "500mg every 6 hours as needed",
			Duration:       "3 days",
			ActionRequired: true,
		}}
	case temp >= 37.5:
		return []*model.Recommendation{{
			Kind:         model.RecommendationMedicine,
			Title:        "Mild fever management",
			Description:  "Temperature is mildly raised. Rest, drink fluids, and take paracetamol if uncomfortable. Recheck in a few hours.",
			Severity:     model.SeverityMedium,
			MedicineName: "Paracetamol",
			Dosage:       "500mg if needed",
		}}
	default:
		return nil
	}
}

// bloodPressureRule evaluates tiers high-to-low, first match wins. Both
// thresholds in a tier use OR. The rule is suppressed entirely unless both
// readings are present.
func bloodPressureRule(checkup *model.CheckupRecord, _ *model.Profile, _ time.Time) []*model.Recommendation {
	if checkup.Systolic == nil || checkup.Diastolic == nil {
		return nil
	}
	sys, dia := *checkup.Systolic, *checkup.Diastolic

	switch {
	case sys >= 180 || dia >= 120:
		return []*model.Recommendation{{
			Kind:           model.RecommendationMedicalAttention,
			Title:          "Hypertensive crisis",
			Description:    "Blood pressure is at a dangerous level. Go to the nearest emergency room immediately.",
			Severity:       model.SeverityUrgent,
			ActionRequired: true,
			FollowUpDays:   intPtr(0),
		}}
	case sys >= 140 || dia >= 90:
		return []*model.Recommendation{{
			Kind:           model.RecommendationMedicalAttention,
			Title:          "High blood pressure",
			Description:    "Blood pressure is in the stage-2 hypertension range. See a health worker within a day for evaluation.",
			Severity:       model.SeverityUrgent,
			ActionRequired: true,
			FollowUpDays:   intPtr(1),
		}}
	case sys >= 130 || dia >= 80:
		return []*model.Recommendation{{
			Kind:         model.RecommendationLifestyle,
			Title:        "Elevated blood pressure",
			Description:  "Blood pressure is above normal. Cut down on salt, rest on your left side, and have it rechecked within a few days.",
			Severity:     model.SeverityHigh,
			FollowUpDays: intPtr(3),
		}}
	case sys < 90 || dia < 60:
		return []*model.Recommendation{{
			Kind:         model.RecommendationMedicalAttention,
			Title:        "Low blood pressure",
			Description:  "Blood pressure is on the low side. Drink more fluids, stand up slowly, and mention it at your next visit.",
			Severity:     model.SeverityMedium,
			FollowUpDays: intPtr(7),
		}}
	default:
		return nil
	}
}

// childGrowthRule checks newborn measurements on postpartum checkups. Both
// findings can fire independently. Only evaluated when both metrics are
// present.
func childGrowthRule(checkup *model.CheckupRecord, profile *model.Profile, _ time.Time) []*model.Recommendation {
	if profile.Kind != model.ProfileKindPostpartum {
		return nil
	}
	if checkup.ChildWeightKg == nil || checkup.ChildHeightCm == nil {
		return nil
	}

	var out []*model.Recommendation
	if *checkup.ChildWeightKg < 2.5 {
		out = append(out, &model.Recommendation{
			Kind:           model.RecommendationMedicalAttention,
			Title:          "Low birth weight",
			Description:    "The baby's weight is below 2.5 kg. Frequent feeding and skin-to-skin care help; have the baby weighed again at the health post within a few days.",
			Severity:       model.SeverityHigh,
			ActionRequired: true,
			FollowUpDays:   intPtr(3),
		})
	}
	if *checkup.ChildHeightCm < 45 {
		out = append(out, &model.Recommendation{
			Kind:         model.RecommendationMedicalAttention,
			Title:        "Short birth length",
			Description:  "The baby's length is below 45 cm. Ask the health worker to track growth at the next visit.",
			Severity:     model.SeverityMedium,
			FollowUpDays: intPtr(7),
		})
	}
	return out
}
