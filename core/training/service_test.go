package training_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/trainhub/trainhub/core"
	"github.com/trainhub/trainhub/core/participant"
	"github.com/trainhub/trainhub/core/training"
	emailsvc "github.com/trainhub/trainhub/services/email"
	inmemdb "github.com/trainhub/trainhub/storage/database/inmem"
)

var testConf = &core.Config{AppName: "TrainHub"}

type testEnv struct {
	svc     *training.Service
	partSvc *participant.Service
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	db := inmemdb.NewDB()
	partRepo := inmemdb.NewParticipantRepository(db)
	svc := training.NewService(testConf, inmemdb.NewTrainingRepository(db), partRepo, emailsvc.NewConsoleServiceMock(testConf))
	return testEnv{svc: svc, partSvc: participant.NewService(partRepo)}
}

func createTraining(t *testing.T, svc *training.Service, title string, start, end core.Date) training.Training {
	t.Helper()
	trn, err := svc.Create(context.Background(), training.NewTraining{
		Title:     title,
		StartDate: start,
		EndDate:   end,
		Budget:    2500,
		Venue:     "Online",
		Schedule:  "Full-time",
	})
	if err != nil {
		t.Fatalf("Create(%q) error = %v", title, err)
	}
	return trn
}

func createParticipant(t *testing.T, svc *participant.Service, name, email string) participant.Participant {
	t.Helper()
	p, err := svc.Create(context.Background(), participant.NewParticipant{
		FirstName: name,
		LastName:  "Test",
		Email:     email,
		Profile:   "Participant",
	})
	if err != nil {
		t.Fatalf("Create(%q) error = %v", name, err)
	}
	return p
}

func TestService_crud(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	trn := createTraining(t, env.svc, "Spring Boot Advanced",
		core.NewDate(2025, time.May, 1), core.NewDate(2025, time.May, 15))
	if trn.ID == 0 {
		t.Error("ID = 0, want assigned")
	}
	if got := trn.DurationDays(); got != 14 {
		t.Errorf("DurationDays() = %d, want 14", got)
	}

	updated, err := env.svc.Update(ctx, trn.ID, training.UpdateTraining{Venue: "Paris", Budget: 3000})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Venue != "Paris" || updated.Budget != 3000 {
		t.Errorf("Update() = %+v", updated)
	}
	if updated.Title != trn.Title || updated.StartDate != trn.StartDate {
		t.Errorf("Update() dropped untouched fields: %+v", updated)
	}

	if err = env.svc.Delete(ctx, trn.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err = env.svc.GetByID(ctx, trn.ID); err != training.ErrNotFound {
		t.Errorf("GetByID() after delete error = %v, want %v", err, training.ErrNotFound)
	}
}

func TestService_enrollment(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	trn := createTraining(t, env.svc, "Cloud Architecture",
		core.NewDate(2025, time.July, 1), core.NewDate(2025, time.July, 15))
	jean := createParticipant(t, env.partSvc, "Jean", "jean.dupont@email.com")

	emailsvc.SentMessages = nil
	if err := env.svc.Enroll(ctx, trn.ID, jean.ID); err != nil {
		t.Fatalf("Enroll() error = %v", err)
	}

	// the participant gets notified by email
	if len(emailsvc.SentMessages) != 1 {
		t.Fatalf("sent %d emails, want 1", len(emailsvc.SentMessages))
	}
	msg := emailsvc.SentMessages[0]
	if len(msg.To) != 1 || msg.To[0].Address != jean.Email {
		t.Errorf("email To = %v, want %s", msg.To, jean.Email)
	}
	if !strings.Contains(msg.Subject, trn.Title) {
		t.Errorf("email Subject = %q, want it to name %q", msg.Subject, trn.Title)
	}

	parts, err := env.svc.Participants(ctx, trn.ID)
	if err != nil {
		t.Fatalf("Participants() error = %v", err)
	}
	if len(parts) != 1 || parts[0].ID != jean.ID {
		t.Errorf("Participants() = %+v", parts)
	}
	trns, err := env.svc.ForParticipant(ctx, jean.ID)
	if err != nil {
		t.Fatalf("ForParticipant() error = %v", err)
	}
	if len(trns) != 1 || trns[0].ID != trn.ID {
		t.Errorf("ForParticipant() = %+v", trns)
	}

	// enrolling twice keeps a single link
	if err = env.svc.Enroll(ctx, trn.ID, jean.ID); err != nil {
		t.Fatalf("Enroll() twice error = %v", err)
	}
	if parts, _ = env.svc.Participants(ctx, trn.ID); len(parts) != 1 {
		t.Errorf("Participants() after double enroll = %d, want 1", len(parts))
	}

	// both sides must exist
	if err = env.svc.Enroll(ctx, 999, jean.ID); err != training.ErrNotFound {
		t.Errorf("Enroll() unknown training error = %v, want %v", err, training.ErrNotFound)
	}
	if err = env.svc.Enroll(ctx, trn.ID, 999); err != participant.ErrNotFound {
		t.Errorf("Enroll() unknown participant error = %v, want %v", err, participant.ErrNotFound)
	}

	if err = env.svc.Withdraw(ctx, trn.ID, jean.ID); err != nil {
		t.Fatalf("Withdraw() error = %v", err)
	}
	if parts, _ = env.svc.Participants(ctx, trn.ID); len(parts) != 0 {
		t.Errorf("Participants() after withdraw = %d, want 0", len(parts))
	}
}

func TestService_GetStats(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	training.NowFunc = func() time.Time { return time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC) }
	defer func() { training.NowFunc = time.Now }()

	createTraining(t, env.svc, "Spring Boot Advanced",
		core.NewDate(2025, time.May, 1), core.NewDate(2025, time.May, 15))
	createTraining(t, env.svc, "Data Science Fundamentals",
		core.NewDate(2025, time.June, 1), core.NewDate(2025, time.June, 30))
	createTraining(t, env.svc, "Cloud Architecture",
		core.NewDate(2025, time.July, 1), core.NewDate(2025, time.July, 15))

	stats, err := env.svc.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats() error = %v", err)
	}
	want := training.Stats{Trainings: 3, Completed: 1, Current: 1, Upcoming: 1}
	if stats != want {
		t.Errorf("GetStats() = %+v, want %+v", stats, want)
	}
}

func TestService_GetMonthlyStats(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	june := createTraining(t, env.svc, "Data Science Fundamentals",
		core.NewDate(2025, time.June, 1), core.NewDate(2025, time.June, 30))
	createTraining(t, env.svc, "Cloud Architecture",
		core.NewDate(2025, time.July, 1), core.NewDate(2025, time.July, 15))

	jean := createParticipant(t, env.partSvc, "Jean", "jean.dupont@email.com")
	marie := createParticipant(t, env.partSvc, "Marie", "marie.laurent@email.com")
	for _, p := range []participant.Participant{jean, marie} {
		if err := env.svc.Enroll(ctx, june.ID, p.ID); err != nil {
			t.Fatalf("Enroll() error = %v", err)
		}
	}

	stats, err := env.svc.GetMonthlyStats(ctx, time.June, 2025)
	if err != nil {
		t.Fatalf("GetMonthlyStats() error = %v", err)
	}
	want := training.MonthlyStats{TrainingCount: 1, TotalParticipants: 2}
	if stats != want {
		t.Errorf("GetMonthlyStats() = %+v, want %+v", stats, want)
	}

	// a month with no trainings reads as zero
	if stats, err = env.svc.GetMonthlyStats(ctx, time.December, 2025); err != nil {
		t.Fatalf("GetMonthlyStats() error = %v", err)
	}
	if stats != (training.MonthlyStats{}) {
		t.Errorf("GetMonthlyStats() = %+v, want zero", stats)
	}
}
