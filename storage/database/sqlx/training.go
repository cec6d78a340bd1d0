package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trainhub/trainhub/core/participant"
	"github.com/trainhub/trainhub/core/training"
)

type trainingRepository struct {
	db *sqlx.DB
}

var _ training.Repository = (*trainingRepository)(nil) // interface compliance check

func NewTrainingRepository(db *sqlx.DB) *trainingRepository {
	return &trainingRepository{db: db}
}

func (repo trainingRepository) CreateTraining(ctx context.Context, t training.Training) (training.Training, error) {
	query := repo.db.Rebind(`
INSERT INTO training (title, domain, start_date, end_date, budget, venue, schedule)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id`)
	err := repo.db.QueryRowxContext(
		ctx, query,
		t.Title, t.Domain, t.StartDate, t.EndDate, t.Budget, t.Venue, t.Schedule,
	).Scan(&t.ID)
	if err != nil {
		return training.Training{}, errors.Wrap(err, "inserting training")
	}
	return t, nil
}

func (repo trainingRepository) QueryAllTrainings(ctx context.Context) ([]training.Training, error) {
	var trainings []training.Training
	query := `SELECT * FROM training ORDER BY id`
	if err := repo.db.SelectContext(ctx, &trainings, query); err != nil {
		return nil, errors.Wrap(err, "querying trainings")
	}
	return trainings, nil
}

func (repo trainingRepository) GetTrainingByID(ctx context.Context, id int) (training.Training, error) {
	var t training.Training
	query := repo.db.Rebind(`SELECT * FROM training WHERE id = ?`)
	if err := repo.db.GetContext(ctx, &t, query, id); err != nil {
		if err == sql.ErrNoRows {
			return training.Training{}, training.ErrNotFound
		}
		return training.Training{}, errors.Wrap(err, "getting training by ID")
	}
	return t, nil
}

func (repo trainingRepository) UpdateTraining(ctx context.Context, t training.Training) (training.Training, error) {
	query := `
UPDATE training
SET title = :title, domain = :domain, start_date = :start_date,
    end_date = :end_date, budget = :budget, venue = :venue, schedule = :schedule
WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, query, t)
	if err != nil {
		return training.Training{}, errors.Wrap(err, "updating training")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return training.Training{}, training.ErrNotFound
	}
	return t, nil
}

func (repo trainingRepository) DeleteTraining(ctx context.Context, id int) error {
	query := repo.db.Rebind(`DELETE FROM training WHERE id = ?`)
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return errors.Wrap(err, "deleting training")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return training.ErrNotFound
	}
	return nil
}

func (repo trainingRepository) EnrollParticipant(ctx context.Context, trainingID, participantID int) error {
	if err := repo.checkTrainingExists(ctx, trainingID); err != nil {
		return err
	}
	if err := repo.checkParticipantExists(ctx, participantID); err != nil {
		return err
	}

	query := repo.db.Rebind(`
INSERT INTO participant_training (participant_id, training_id)
VALUES (?, ?)
ON CONFLICT DO NOTHING`)
	if _, err := repo.db.ExecContext(ctx, query, participantID, trainingID); err != nil {
		return errors.Wrap(err, "enrolling participant")
	}
	return nil
}

func (repo trainingRepository) WithdrawParticipant(ctx context.Context, trainingID, participantID int) error {
	query := repo.db.Rebind(`DELETE FROM participant_training WHERE participant_id = ? AND training_id = ?`)
	if _, err := repo.db.ExecContext(ctx, query, participantID, trainingID); err != nil {
		return errors.Wrap(err, "withdrawing participant")
	}
	return nil
}

func (repo trainingRepository) QueryTrainingParticipants(ctx context.Context, trainingID int) ([]participant.Participant, error) {
	if err := repo.checkTrainingExists(ctx, trainingID); err != nil {
		return nil, err
	}

	var parts []participant.Participant
	query := repo.db.Rebind(`
SELECT p.*
FROM participant p
JOIN participant_training pt ON pt.participant_id = p.id
WHERE pt.training_id = ? AND NOT p.deleted
ORDER BY p.id`)
	if err := repo.db.SelectContext(ctx, &parts, query, trainingID); err != nil {
		return nil, errors.Wrap(err, "querying training participants")
	}
	return parts, nil
}

func (repo trainingRepository) QueryTrainingsByParticipant(ctx context.Context, participantID int) ([]training.Training, error) {
	if err := repo.checkParticipantExists(ctx, participantID); err != nil {
		return nil, err
	}

	var trainings []training.Training
	query := repo.db.Rebind(`
SELECT t.*
FROM training t
JOIN participant_training pt ON pt.training_id = t.id
WHERE pt.participant_id = ?
ORDER BY t.id`)
	if err := repo.db.SelectContext(ctx, &trainings, query, participantID); err != nil {
		return nil, errors.Wrap(err, "querying participant trainings")
	}
	return trainings, nil
}

func (repo trainingRepository) checkTrainingExists(ctx context.Context, id int) error {
	var exists bool
	query := repo.db.Rebind(`SELECT EXISTS (SELECT 1 FROM training WHERE id = ?)`)
	if err := repo.db.GetContext(ctx, &exists, query, id); err != nil {
		return errors.Wrap(err, "checking training")
	}
	if !exists {
		return training.ErrNotFound
	}
	return nil
}

func (repo trainingRepository) checkParticipantExists(ctx context.Context, id int) error {
	var exists bool
	query := repo.db.Rebind(`SELECT EXISTS (SELECT 1 FROM participant WHERE id = ? AND NOT deleted)`)
	if err := repo.db.GetContext(ctx, &exists, query, id); err != nil {
		return errors.Wrap(err, "checking participant")
	}
	if !exists {
		return participant.ErrNotFound
	}
	return nil
}
