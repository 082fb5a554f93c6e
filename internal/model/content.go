package model

type ContentCategory string

const (
	ContentDiet          ContentCategory = "diet"
	ContentVaccine       ContentCategory = "vaccine"
	ContentExercise      ContentCategory = "exercise"
	ContentMentalHealth  ContentCategory = "mental"
	ContentBreastfeeding ContentCategory = "breastfeeding"
	ContentDangerSigns   ContentCategory = "danger_signs"
	ContentCultural      ContentCategory = "cultural"
)

type ContentAudience string

const (
	AudiencePregnant ContentAudience = "pregnant"
	AudienceMother   ContentAudience = "mother"
	AudienceBoth     ContentAudience = "both"
)

// InfoContent is a piece of validated educational content. Trimester and
// postpartum stage use "all" when the content is not stage-specific.
type InfoContent struct {
	Base
	Category        ContentCategory `db:"category" json:"category"`
	Title           string          `db:"title" json:"title"`
	Body            string          `db:"body" json:"body"`
	WeekStart       *int            `db:"week_start" json:"week_start,omitempty"`
	WeekEnd         *int            `db:"week_end" json:"week_end,omitempty"`
	Source          string          `db:"source" json:"source"`
	Trimester       string          `db:"trimester" json:"trimester"`
	PostpartumStage string          `db:"postpartum_stage" json:"postpartum_stage"`
	TargetAudience  ContentAudience `db:"target_audience" json:"target_audience"`
}

// RelevantForWeek reports whether this content applies to a pregnancy week.
// Content without a week range is always relevant.
func (c *InfoContent) RelevantForWeek(week int) bool {
	if c.WeekStart == nil || c.WeekEnd == nil {
		return true
	}
	return *c.WeekStart <= week && week <= *c.WeekEnd
}

// PregnancyTip is short week-ranged advice shown on the dashboard.
type PregnancyTip struct {
	Base
	TipType   string `db:"tip_type" json:"tip_type"`
	Title     string `db:"title" json:"title"`
	Content   string `db:"content" json:"content"`
	WeekStart int    `db:"week_start" json:"week_start"`
	WeekEnd   int    `db:"week_end" json:"week_end"`
	IsActive  bool   `db:"is_active" json:"is_active"`
}

// ContentFilter narrows content listings.
type ContentFilter struct {
	Category        ContentCategory `form:"category"`
	TargetAudience  ContentAudience `form:"audience"`
	Trimester       string          `form:"trimester"`
	PostpartumStage string          `form:"postpartum_stage"`
	Week            *int            `form:"week"`
}
