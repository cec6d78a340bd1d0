package inmemdb

import (
	"context"
	"sort"

	"github.com/trainhub/trainhub/core/participant"
	"github.com/trainhub/trainhub/core/training"
)

type trainingRepository struct {
	db *DB
}

var _ training.Repository = (*trainingRepository)(nil) // interface compliance check

func NewTrainingRepository(db *DB) training.Repository {
	return &trainingRepository{db: db}
}

func (repo *trainingRepository) query() []training.Training {
	trainings := make([]training.Training, 0, len(repo.db.trainings))
	for _, t := range repo.db.trainings {
		trainings = append(trainings, *t)
	}
	sort.Slice(trainings, func(i, j int) bool { return trainings[i].ID < trainings[j].ID })
	return trainings
}

func (repo *trainingRepository) CreateTraining(_ context.Context, t training.Training) (training.Training, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.trainingPK++
	t.ID = repo.db.trainingPK
	repo.db.trainings[t.ID] = &t
	return t, nil
}

func (repo *trainingRepository) QueryAllTrainings(_ context.Context) ([]training.Training, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *trainingRepository) GetTrainingByID(_ context.Context, id int) (training.Training, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if t, ok := repo.db.trainings[id]; ok {
		return *t, nil
	}
	return training.Training{}, training.ErrNotFound
}

func (repo *trainingRepository) UpdateTraining(_ context.Context, t training.Training) (training.Training, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.trainings[t.ID]; !ok {
		return training.Training{}, training.ErrNotFound
	}
	repo.db.trainings[t.ID] = &t
	return t, nil
}

func (repo *trainingRepository) DeleteTraining(_ context.Context, id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	delete(repo.db.trainings, id)
	for link := range repo.db.enrollments {
		if link.trainingID == id {
			delete(repo.db.enrollments, link)
		}
	}
	return nil
}

func (repo *trainingRepository) EnrollParticipant(_ context.Context, trainingID, participantID int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.trainings[trainingID]; !ok {
		return training.ErrNotFound
	}
	if p, ok := repo.db.participants[participantID]; !ok || p.Deleted {
		return participant.ErrNotFound
	}
	repo.db.enrollments[enrollment{participantID: participantID, trainingID: trainingID}] = true
	return nil
}

func (repo *trainingRepository) WithdrawParticipant(_ context.Context, trainingID, participantID int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	delete(repo.db.enrollments, enrollment{participantID: participantID, trainingID: trainingID})
	return nil
}

func (repo *trainingRepository) QueryTrainingParticipants(_ context.Context, trainingID int) ([]participant.Participant, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if _, ok := repo.db.trainings[trainingID]; !ok {
		return nil, training.ErrNotFound
	}

	var parts []participant.Participant
	for link := range repo.db.enrollments {
		if link.trainingID != trainingID {
			continue
		}
		if p, ok := repo.db.participants[link.participantID]; ok && !p.Deleted {
			parts = append(parts, *p)
		}
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].ID < parts[j].ID })
	return parts, nil
}

func (repo *trainingRepository) QueryTrainingsByParticipant(_ context.Context, participantID int) ([]training.Training, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if p, ok := repo.db.participants[participantID]; !ok || p.Deleted {
		return nil, participant.ErrNotFound
	}

	var trainings []training.Training
	for link := range repo.db.enrollments {
		if link.participantID != participantID {
			continue
		}
		if t, ok := repo.db.trainings[link.trainingID]; ok {
			trainings = append(trainings, *t)
		}
	}
	sort.Slice(trainings, func(i, j int) bool { return trainings[i].ID < trainings[j].ID })
	return trainings, nil
}
