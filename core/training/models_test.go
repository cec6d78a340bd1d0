package training

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/trainhub/trainhub/core"
)

func TestTraining_DurationDays(t *testing.T) {
	tests := []struct {
		name string
		trn  Training
		want int
	}{
		{
			name: "two weeks",
			trn: Training{
				StartDate: core.NewDate(2025, time.May, 1),
				EndDate:   core.NewDate(2025, time.May, 15),
			},
			want: 14,
		},
		{name: "no dates", trn: Training{}, want: 0},
		{
			name: "no end date",
			trn:  Training{StartDate: core.NewDate(2025, time.May, 1)},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.trn.DurationDays(); got != tt.want {
				t.Errorf("DurationDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTraining_MarshalJSON(t *testing.T) {
	trn := Training{
		ID:        1,
		Title:     "Spring Boot Advanced",
		StartDate: core.NewDate(2025, time.May, 1),
		EndDate:   core.NewDate(2025, time.May, 15),
		Budget:    2500,
		Venue:     "Online",
		Schedule:  "Full-time",
	}
	data, err := json.Marshal(trn)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	// the original API's wire names and the derived duration
	for _, want := range []string{`"lieu":"Online"`, `"time":"Full-time"`, `"durationDays":14`, `"startDate":"2025-05-01"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Marshal() = %s, missing %s", data, want)
		}
	}
}

func TestNewTraining_training(t *testing.T) {
	start := core.NewDate(2025, time.May, 1)

	t.Run("duration instead of end date", func(t *testing.T) {
		days := 14
		trn := NewTraining{Title: "T", StartDate: start, DurationDays: &days}.training()
		if want := start.AddDays(14); trn.EndDate != want {
			t.Errorf("EndDate = %v, want %v", trn.EndDate, want)
		}
	})

	t.Run("end date before start is clamped to one day", func(t *testing.T) {
		trn := NewTraining{Title: "T", StartDate: start, EndDate: core.NewDate(2025, time.April, 1)}.training()
		if want := start.AddDays(1); trn.EndDate != want {
			t.Errorf("EndDate = %v, want %v", trn.EndDate, want)
		}
	})

	t.Run("end date equal to start is clamped to one day", func(t *testing.T) {
		trn := NewTraining{Title: "T", StartDate: start, EndDate: start}.training()
		if want := start.AddDays(1); trn.EndDate != want {
			t.Errorf("EndDate = %v, want %v", trn.EndDate, want)
		}
	})

	t.Run("no end date stays open", func(t *testing.T) {
		trn := NewTraining{Title: "T", StartDate: start}.training()
		if !trn.EndDate.IsZero() {
			t.Errorf("EndDate = %v, want zero", trn.EndDate)
		}
	})
}

func TestTraining_schedulePosition(t *testing.T) {
	today := core.NewDate(2025, time.June, 10)

	past := Training{StartDate: core.NewDate(2025, time.May, 1), EndDate: core.NewDate(2025, time.May, 15)}
	running := Training{StartDate: core.NewDate(2025, time.June, 1), EndDate: core.NewDate(2025, time.June, 30)}
	future := Training{StartDate: core.NewDate(2025, time.July, 1), EndDate: core.NewDate(2025, time.July, 15)}
	open := Training{StartDate: core.NewDate(2025, time.June, 1)}

	tests := []struct {
		name                          string
		trn                           Training
		completed, current, upcoming  bool
	}{
		{name: "past", trn: past, completed: true},
		{name: "running", trn: running, current: true},
		{name: "future", trn: future, upcoming: true},
		{name: "open-ended started", trn: open, current: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.trn.completed(today); got != tt.completed {
				t.Errorf("completed() = %v, want %v", got, tt.completed)
			}
			if got := tt.trn.current(today); got != tt.current {
				t.Errorf("current() = %v, want %v", got, tt.current)
			}
			if got := tt.trn.upcoming(today); got != tt.upcoming {
				t.Errorf("upcoming() = %v, want %v", got, tt.upcoming)
			}
		})
	}
}
