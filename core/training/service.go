package training

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/trainhub/trainhub/core"
	"github.com/trainhub/trainhub/core/participant"
)

var (
	ErrNotFound = errors.New("training not found")

	NowFunc = time.Now // mockable
)

type (
	Repository interface {
		CreateTraining(ctx context.Context, t Training) (Training, error)
		QueryAllTrainings(ctx context.Context) ([]Training, error)
		GetTrainingByID(ctx context.Context, id int) (Training, error)
		UpdateTraining(ctx context.Context, t Training) (Training, error)
		DeleteTraining(ctx context.Context, id int) error

		// Enrollment links; both sides must exist.
		EnrollParticipant(ctx context.Context, trainingID, participantID int) error
		WithdrawParticipant(ctx context.Context, trainingID, participantID int) error
		QueryTrainingParticipants(ctx context.Context, trainingID int) ([]participant.Participant, error)
		QueryTrainingsByParticipant(ctx context.Context, participantID int) ([]Training, error)
	}

	Service struct {
		conf     *core.Config
		repo     Repository
		partRepo participant.Repository
		mailSvc  core.EmailService
	}
)

func NewService(conf *core.Config, repo Repository, partRepo participant.Repository, mailSvc core.EmailService) *Service {
	return &Service{conf: conf, repo: repo, partRepo: partRepo, mailSvc: mailSvc}
}

func (svc *Service) today() core.Date {
	now := NowFunc().UTC()
	return core.NewDate(now.Year(), now.Month(), now.Day())
}

func (svc *Service) Create(ctx context.Context, nt NewTraining) (Training, error) {
	return svc.repo.CreateTraining(ctx, nt.training())
}

func (svc *Service) QueryAll(ctx context.Context) ([]Training, error) {
	return svc.repo.QueryAllTrainings(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Training, error) {
	return svc.repo.GetTrainingByID(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, ut UpdateTraining) (Training, error) {
	orig, err := svc.repo.GetTrainingByID(ctx, id)
	if err != nil {
		return Training{}, err
	}
	ut.fill(&orig)
	return svc.repo.UpdateTraining(ctx, orig)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteTraining(ctx, id)
}

func (svc *Service) Participants(ctx context.Context, trainingID int) ([]participant.Participant, error) {
	return svc.repo.QueryTrainingParticipants(ctx, trainingID)
}

func (svc *Service) ForParticipant(ctx context.Context, participantID int) ([]Training, error) {
	return svc.repo.QueryTrainingsByParticipant(ctx, participantID)
}

// Enroll links a participant to a training and notifies them by email.
func (svc *Service) Enroll(ctx context.Context, trainingID, participantID int) error {
	trn, err := svc.repo.GetTrainingByID(ctx, trainingID)
	if err != nil {
		return err
	}
	part, err := svc.partRepo.GetParticipantByID(ctx, participantID)
	if err != nil {
		return err
	}
	if err = svc.repo.EnrollParticipant(ctx, trainingID, participantID); err != nil {
		return errors.Wrap(err, "enrolling participant")
	}
	svc.sendEnrollmentEmail(trn, part)
	return nil
}

func (svc *Service) Withdraw(ctx context.Context, trainingID, participantID int) error {
	if _, err := svc.repo.GetTrainingByID(ctx, trainingID); err != nil {
		return err
	}
	if _, err := svc.partRepo.GetParticipantByID(ctx, participantID); err != nil {
		return err
	}
	return errors.Wrap(svc.repo.WithdrawParticipant(ctx, trainingID, participantID), "withdrawing participant")
}

// GetStats counts trainings by schedule position relative to today.
func (svc *Service) GetStats(ctx context.Context) (Stats, error) {
	all, err := svc.repo.QueryAllTrainings(ctx)
	if err != nil {
		return Stats{}, err
	}

	today := svc.today()
	stats := Stats{Trainings: len(all)}
	for _, t := range all {
		switch {
		case t.completed(today):
			stats.Completed++
		case t.current(today):
			stats.Current++
		case t.upcoming(today):
			stats.Upcoming++
		}
	}
	return stats, nil
}

// GetMonthlyStats counts trainings starting in the given month and the total
// number of participants enrolled in them.
func (svc *Service) GetMonthlyStats(ctx context.Context, month time.Month, year int) (MonthlyStats, error) {
	all, err := svc.repo.QueryAllTrainings(ctx)
	if err != nil {
		return MonthlyStats{}, err
	}

	var stats MonthlyStats
	for _, t := range all {
		if t.StartDate.IsZero() || t.StartDate.Month() != month || t.StartDate.Year() != year {
			continue
		}
		stats.TrainingCount++
		parts, err := svc.repo.QueryTrainingParticipants(ctx, t.ID)
		if err != nil {
			return MonthlyStats{}, err
		}
		stats.TotalParticipants += len(parts)
	}
	return stats, nil
}

func (svc *Service) sendEnrollmentEmail(trn Training, part participant.Participant) {
	if svc.mailSvc == nil || part.Email == "" {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: part.FullName(), Address: part.Email}},
		Subject: fmt.Sprintf("[%s] Enrolled in %q", svc.conf.AppName, trn.Title),
		Body: fmt.Sprintf(
			"Hi %s,\n\nYou have been enrolled in the training %q starting on %s at %s.\n",
			part.FirstName, trn.Title, trn.StartDate, trn.Venue,
		),
	})
}
