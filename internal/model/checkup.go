package model

import (
	"github.com/google/uuid"
)

type FeedingStatus string

const (
	FeedingBreastfeeding FeedingStatus = "breastfeeding"
	FeedingFormula       FeedingStatus = "formula"
	FeedingMixed         FeedingStatus = "mixed"
	FeedingWeaning       FeedingStatus = "weaning"
)

// CheckupRecord is a periodic health snapshot entered by the user. Child
// fields are populated only for postpartum profiles. Optional vitals are
// pointers so the recommendation rules can gate on their presence.
type CheckupRecord struct {
	Base
	ProfileID   uuid.UUID   `db:"profile_id" json:"profile_id"`
	ProfileKind ProfileKind `db:"profile_kind" json:"profile_kind"`
	Month       int         `db:"month" json:"month"`

	WeightKg   *float64 `db:"weight_kg" json:"weight_kg,omitempty"`
	Systolic   *int     `db:"systolic" json:"systolic,omitempty"`
	Diastolic  *int     `db:"diastolic" json:"diastolic,omitempty"`
	HasFever   bool     `db:"has_fever" json:"has_fever"`
	FeverTempC *float64 `db:"fever_temp_c" json:"fever_temp_c,omitempty"`

	ChildWeightKg *float64      `db:"child_weight_kg" json:"child_weight_kg,omitempty"`
	ChildHeightCm *float64      `db:"child_height_cm" json:"child_height_cm,omitempty"`
	ChildHeadCm   *float64      `db:"child_head_cm" json:"child_head_cm,omitempty"`
	FeedingStatus FeedingStatus `db:"feeding_status" json:"feeding_status,omitempty"`

	Notes string `db:"notes" json:"notes,omitempty"`
}

type SubmitCheckupRequest struct {
	Month      int      `json:"month" binding:"required,gte=1"`
	WeightKg   *float64 `json:"weight_kg" binding:"omitempty,gt=0"`
	Systolic   *int     `json:"systolic" binding:"omitempty,gt=0"`
	Diastolic  *int     `json:"diastolic" binding:"omitempty,gt=0"`
	HasFever   bool     `json:"has_fever"`
	FeverTempC *float64 `json:"fever_temp_c" binding:"omitempty,gte=30,lte=45"`

	ChildWeightKg *float64      `json:"child_weight_kg" binding:"omitempty,gt=0"`
	ChildHeightCm *float64      `json:"child_height_cm" binding:"omitempty,gt=0"`
	ChildHeadCm   *float64      `json:"child_head_cm" binding:"omitempty,gt=0"`
	FeedingStatus FeedingStatus `json:"feeding_status" binding:"omitempty,oneof=breastfeeding formula mixed weaning"`

	Notes string `json:"notes"`
}

// SubmitCheckupResponse reports the persisted checkup plus how many
// recommendations the engine produced. Warning is set when generation
// failed; the checkup itself is always kept.
type SubmitCheckupResponse struct {
	Checkup             *CheckupRecord `json:"checkup"`
	RecommendationCount int            `json:"recommendation_count"`
	Warning             string         `json:"warning,omitempty"`
}
