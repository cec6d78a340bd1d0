package training

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"

	"github.com/trainhub/trainhub/core"
)

type Training struct {
	ID        int       `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Domain    string    `json:"domain" db:"domain"`
	StartDate core.Date `json:"startDate" db:"start_date"`
	EndDate   core.Date `json:"endDate" db:"end_date"`
	Budget    float64   `json:"budget" db:"budget"`
	Venue     string    `json:"lieu" db:"venue"` // wire name kept from the original API
	Schedule  string    `json:"time" db:"schedule"`
}

// DurationDays returns the number of days between the start and end dates;
// 0 when either is unset.
func (t Training) DurationDays() int {
	if t.StartDate.IsZero() || t.EndDate.IsZero() {
		return 0
	}
	return t.StartDate.DaysUntil(t.EndDate)
}

func (t Training) MarshalJSON() ([]byte, error) {
	type alias Training
	return json.Marshal(struct {
		alias
		DurationDays int `json:"durationDays"`
	}{alias(t), t.DurationDays()})
}

// normalize enforces a minimum duration of one day whenever both dates are set.
func (t *Training) normalize() {
	if !t.StartDate.IsZero() && !t.EndDate.IsZero() && !t.EndDate.After(t.StartDate.Time) {
		t.EndDate = t.StartDate.AddDays(1)
	}
}

func (t Training) completed(today core.Date) bool {
	return !t.EndDate.IsZero() && t.EndDate.Before(today.Time)
}

func (t Training) current(today core.Date) bool {
	return t.StartDate.Before(today.Time) && (t.EndDate.IsZero() || t.EndDate.After(today.Time))
}

func (t Training) upcoming(today core.Date) bool {
	return t.StartDate.After(today.Time)
}

// NewTraining contains information needed to schedule a new Training.
// DurationDays may be given instead of an end date.
type NewTraining struct {
	Title        string    `json:"title" validate:"required"`
	Domain       string    `json:"domain"`
	StartDate    core.Date `json:"startDate" validate:"required"`
	EndDate      core.Date `json:"endDate"`
	DurationDays *int      `json:"durationDays"`
	Budget       float64   `json:"budget" validate:"required,gt=0"`
	Venue        string    `json:"lieu"`
	Schedule     string    `json:"time"`
}

func (nt *NewTraining) Validate(validate *validator.Validate) error {
	nt.Title = core.CleanString(nt.Title)
	nt.Domain = core.CleanString(nt.Domain)
	nt.Venue = core.CleanString(nt.Venue)
	nt.Schedule = core.CleanString(nt.Schedule)
	return validate.Struct(nt)
}

func (nt NewTraining) training() Training {
	t := Training{
		Title:     nt.Title,
		Domain:    nt.Domain,
		StartDate: nt.StartDate,
		EndDate:   nt.EndDate,
		Budget:    nt.Budget,
		Venue:     nt.Venue,
		Schedule:  nt.Schedule,
	}
	if t.EndDate.IsZero() && nt.DurationDays != nil && !t.StartDate.IsZero() {
		t.EndDate = t.StartDate.AddDays(*nt.DurationDays)
	}
	t.normalize()
	return t
}

// UpdateTraining defines what information may be provided to modify an
// existing Training. Zero-valued fields keep their current value.
type UpdateTraining struct {
	Title     string    `json:"title"`
	Domain    string    `json:"domain"`
	StartDate core.Date `json:"startDate"`
	EndDate   core.Date `json:"endDate"`
	Budget    float64   `json:"budget" validate:"omitempty,gt=0"`
	Venue     string    `json:"lieu"`
	Schedule  string    `json:"time"`
}

func (ut *UpdateTraining) Validate(validate *validator.Validate) error {
	return validate.Struct(ut)
}

func (ut UpdateTraining) fill(t *Training) {
	if v := core.CleanString(ut.Title); v != "" {
		t.Title = v
	}
	if v := core.CleanString(ut.Domain); v != "" {
		t.Domain = v
	}
	if !ut.StartDate.IsZero() {
		t.StartDate = ut.StartDate
	}
	if !ut.EndDate.IsZero() {
		t.EndDate = ut.EndDate
	}
	if ut.Budget > 0 {
		t.Budget = ut.Budget
	}
	if v := core.CleanString(ut.Venue); v != "" {
		t.Venue = v
	}
	if v := core.CleanString(ut.Schedule); v != "" {
		t.Schedule = v
	}
	t.normalize()
}

// Stats summarizes the training schedule relative to a reference day.
type Stats struct {
	Trainings int `json:"formations"`
	Completed int `json:"completed"`
	Current   int `json:"current"`
	Upcoming  int `json:"upcoming"`
}

// MonthlyStats summarizes trainings starting in a given month.
type MonthlyStats struct {
	TrainingCount     int `json:"formationCount"`
	TotalParticipants int `json:"totalParticipants"`
}
