package recommendation

import (
	"time"

	"github.com/google/uuid"

	"github.com/AaSu9/Aamcare/internal/model"
)

// rule computes zero or more recommendations from one checkup. Rules are
// independent: each gates on the presence of its own inputs and never looks
// at another rule's output.
type rule func(checkup *model.CheckupRecord, profile *model.Profile, today time.Time) []*model.Recommendation

var rules = []rule{
	nutritionRule,
	symptomScanRule,
	feverRule,
	bloodPressureRule,
	childGrowthRule,
}

// Generate evaluates every rule against the checkup and returns the combined
// set. Deterministic given (checkup, profile, today). A panic inside one rule
// drops only that rule's output; everything already computed is kept.
func Generate(checkup *model.CheckupRecord, profile *model.Profile, today time.Time) []*model.Recommendation {
	var out []*model.Recommendation
	for _, r := range rules {
		out = append(out, runRule(r, checkup, profile, today)...)
	}
	for _, rec := range out {
		rec.ID = uuid.New()
		rec.CheckupID = checkup.ID
	}
	return out
}

func runRule(r rule, checkup *model.CheckupRecord, profile *model.Profile, today time.Time) (recs []*model.Recommendation) {
	defer func() {
		if recover() != nil {
			recs = nil
		}
	}()
	return r(checkup, profile, today)
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
