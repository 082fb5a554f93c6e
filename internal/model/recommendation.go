package model

import (
	"github.com/google/uuid"
)

type RecommendationKind string

const (
	RecommendationNutrition        RecommendationKind = "nutrition"
	RecommendationMedicine         RecommendationKind = "medicine"
	RecommendationLifestyle        RecommendationKind = "lifestyle"
	RecommendationExercise         RecommendationKind = "exercise"
	RecommendationMedicalAttention RecommendationKind = "medical_attention"
)

// Severity is the ordered urgency tag: low < medium < high < urgent.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
	SeverityUrgent Severity = "urgent"
)

var severityRank = map[Severity]int{
	SeverityLow:    0,
	SeverityMedium: 1,
	SeverityHigh:   2,
	SeverityUrgent: 3,
}

// Rank returns the position of s in the severity order, -1 for unknown values.
func (s Severity) Rank() int {
	if r, ok := severityRank[s]; ok {
		return r
	}
	return -1
}

// Recommendation is one generated piece of health guidance, owned by exactly
// one checkup and replaced wholesale whenever that checkup is recomputed.
type Recommendation struct {
	Base
	CheckupID   uuid.UUID          `db:"checkup_id" json:"checkup_id"`
	Kind        RecommendationKind `db:"kind" json:"kind"`
	Title       string             `db:"title" json:"title"`
	Description string             `db:"description" json:"description"`
	Severity    Severity           `db:"severity" json:"severity"`

	MedicineName string `db:"medicine_name" json:"medicine_name,omitempty"`
	Dosage       string `db:"dosage" json:"dosage,omitempty"`
	Duration     string `db:"duration" json:"duration,omitempty"`

	CaloriesPerDay *int     `db:"calories_per_day" json:"calories_per_day,omitempty"`
	ProteinGrams   *float64 `db:"protein_grams" json:"protein_grams,omitempty"`
	IronMg         *float64 `db:"iron_mg" json:"iron_mg,omitempty"`
	CalciumMg      *float64 `db:"calcium_mg" json:"calcium_mg,omitempty"`

	ActionRequired bool `db:"action_required" json:"action_required"`
	FollowUpDays   *int `db:"follow_up_days" json:"follow_up_days,omitempty"`
}
