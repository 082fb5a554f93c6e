package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/AaSu9/Aamcare/pkg/clock"
)

// ProfileKind distinguishes the two profile variants. Exactly one profile of
// either kind exists per account at a time; the give-birth transition replaces
// an expectant profile with a postpartum one.
type ProfileKind string

const (
	ProfileKindExpectant  ProfileKind = "expectant"
	ProfileKindPostpartum ProfileKind = "postpartum"
)

// gestation length used for week computations: 40 weeks.
const gestationDays = 280

// ExpectantProfile is a pregnant woman's profile, anchored on her due date.
type ExpectantProfile struct {
	Base
	AccountID      uuid.UUID `db:"account_id" json:"account_id"`
	Name           string    `db:"name" json:"name"`
	Age            int       `db:"age" json:"age"`
	DueDate        time.Time `db:"due_date" json:"due_date"`
	MedicalHistory string    `db:"medical_history" json:"medical_history,omitempty"`
	Phone          string    `db:"phone" json:"phone,omitempty"`
}

// PregnancyWeek computes the current pregnancy week for a given day,
// clamped to [1, 40]. Conception is taken as 40 weeks before the due date.
func (p *ExpectantProfile) PregnancyWeek(today time.Time) int {
	conception := p.DueDate.AddDate(0, 0, -gestationDays)
	week := clock.DaysBetween(conception, today) / 7
	if week < 1 {
		return 1
	}
	if week > 40 {
		return 40
	}
	return week
}

// PregnancyMonth derives the pregnancy month from the week.
func (p *ExpectantProfile) PregnancyMonth(today time.Time) int {
	return p.PregnancyWeek(today)/4 + 1
}

// Trimester returns 1, 2 or 3 for the given day.
func (p *ExpectantProfile) Trimester(today time.Time) int {
	week := p.PregnancyWeek(today)
	switch {
	case week <= 13:
		return 1
	case week <= 26:
		return 2
	default:
		return 3
	}
}

// PostpartumStage is the recovery window used by content targeting.
type PostpartumStage string

const (
	PostpartumStageEarly       PostpartumStage = "early"       // 0-6 weeks
	PostpartumStageMid         PostpartumStage = "mid"         // 6 weeks - 3 months
	PostpartumStageEstablished PostpartumStage = "established" // 3+ months
)

// PostpartumProfile is a new mother's profile, anchored on the child's
// birth date.
type PostpartumProfile struct {
	Base
	AccountID      uuid.UUID `db:"account_id" json:"account_id"`
	Name           string    `db:"name" json:"name"`
	ChildBirthDate time.Time `db:"child_birth_date" json:"child_birth_date"`
	HealthStatus   string    `db:"health_status" json:"health_status,omitempty"`
	Phone          string    `db:"phone" json:"phone,omitempty"`
}

// DaysSinceBirth returns whole days since the child's birth date.
func (p *PostpartumProfile) DaysSinceBirth(today time.Time) int {
	return clock.DaysBetween(p.ChildBirthDate, today)
}

// Stage returns the postpartum recovery stage for the given day.
func (p *PostpartumProfile) Stage(today time.Time) PostpartumStage {
	days := p.DaysSinceBirth(today)
	switch {
	case days <= 42:
		return PostpartumStageEarly
	case days <= 90:
		return PostpartumStageMid
	default:
		return PostpartumStageEstablished
	}
}

// Profile is a tagged union over the two profile variants. Engines match on
// Kind once at entry instead of re-deriving it per rule.
type Profile struct {
	Kind       ProfileKind        `json:"kind"`
	Expectant  *ExpectantProfile  `json:"expectant,omitempty"`
	Postpartum *PostpartumProfile `json:"postpartum,omitempty"`
}

func NewExpectantProfileRef(p *ExpectantProfile) *Profile {
	return &Profile{Kind: ProfileKindExpectant, Expectant: p}
}

func NewPostpartumProfileRef(p *PostpartumProfile) *Profile {
	return &Profile{Kind: ProfileKindPostpartum, Postpartum: p}
}

// AccountID returns the owning account's id.
func (p *Profile) AccountID() uuid.UUID {
	switch p.Kind {
	case ProfileKindExpectant:
		return p.Expectant.AccountID
	case ProfileKindPostpartum:
		return p.Postpartum.AccountID
	}
	return uuid.Nil
}

// ID returns the id of whichever variant is set.
func (p *Profile) ID() uuid.UUID {
	switch p.Kind {
	case ProfileKindExpectant:
		return p.Expectant.ID
	case ProfileKindPostpartum:
		return p.Postpartum.ID
	}
	return uuid.Nil
}

// Name returns the profile holder's name.
func (p *Profile) Name() string {
	switch p.Kind {
	case ProfileKindExpectant:
		return p.Expectant.Name
	case ProfileKindPostpartum:
		return p.Postpartum.Name
	}
	return ""
}

// Phone returns the notification phone number, empty when none is on file.
func (p *Profile) Phone() string {
	switch p.Kind {
	case ProfileKindExpectant:
		return p.Expectant.Phone
	case ProfileKindPostpartum:
		return p.Postpartum.Phone
	}
	return ""
}

type CreateExpectantProfileRequest struct {
	Name           string    `json:"name" binding:"required"`
	Age            int       `json:"age" binding:"required,gte=10,lte=60"`
	DueDate        time.Time `json:"due_date" binding:"required"`
	MedicalHistory string    `json:"medical_history"`
	Phone          string    `json:"phone"`
}

type CreatePostpartumProfileRequest struct {
	Name           string    `json:"name" binding:"required"`
	ChildBirthDate time.Time `json:"child_birth_date" binding:"required,notfuture"`
	HealthStatus   string    `json:"health_status"`
	Phone          string    `json:"phone"`
}

type UpdateProfileRequest struct {
	Name           *string    `json:"name"`
	Age            *int       `json:"age" binding:"omitempty,gte=10,lte=60"`
	DueDate        *time.Time `json:"due_date"`
	ChildBirthDate *time.Time `json:"child_birth_date" binding:"omitempty,notfuture"`
	MedicalHistory *string    `json:"medical_history"`
	HealthStatus   *string    `json:"health_status"`
	Phone          *string    `json:"phone"`
}

type GiveBirthRequest struct {
	ChildBirthDate time.Time `json:"child_birth_date" binding:"required,notfuture"`
}
