package model

import (
	"time"

	"github.com/google/uuid"
)

type VaccinationStatus string

const (
	VaccinationStatusPending       VaccinationStatus = "pending"
	VaccinationStatusCompleted     VaccinationStatus = "completed"
	VaccinationStatusOverdue       VaccinationStatus = "overdue"
	VaccinationStatusNotApplicable VaccinationStatus = "not_applicable"
)

// VaccineTarget says who the dose is for. Records for a postpartum profile
// cover both the mother and the child, all attached to the mother's profile.
type VaccineTarget string

const (
	VaccineTargetMother VaccineTarget = "mother"
	VaccineTargetChild  VaccineTarget = "child"
)

// VaccinationRecord is a single scheduled vaccination obligation. The due
// date is fixed at creation; only status and completed date ever change.
type VaccinationRecord struct {
	Base
	ProfileID     uuid.UUID         `db:"profile_id" json:"profile_id"`
	ProfileKind   ProfileKind       `db:"profile_kind" json:"profile_kind"`
	VaccineCode   string            `db:"vaccine_code" json:"vaccine_code"`
	VaccineName   string            `db:"vaccine_name" json:"vaccine_name"`
	Target        VaccineTarget     `db:"target" json:"target"`
	DueDate       time.Time         `db:"due_date" json:"due_date"`
	CompletedDate *time.Time        `db:"completed_date" json:"completed_date,omitempty"`
	Status        VaccinationStatus `db:"status" json:"status"`
	Notes         string            `db:"notes" json:"notes,omitempty"`
}

// VaccinationStats summarizes a profile's schedule for the tracker view.
type VaccinationStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
	Mother    int `json:"mother"`
	Child     int `json:"child"`
}

type UpdateVaccinationStatusRequest struct {
	Status        VaccinationStatus `json:"status" binding:"required,oneof=pending completed overdue not_applicable"`
	CompletedDate *time.Time        `json:"completed_date"`
	Notes         *string           `json:"notes"`
}
