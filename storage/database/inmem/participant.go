package inmemdb

import (
	"context"
	"sort"

	"github.com/trainhub/trainhub/core/participant"
)

type participantRepository struct {
	db *DB
}

var _ participant.Repository = (*participantRepository)(nil) // interface compliance check

func NewParticipantRepository(db *DB) participant.Repository {
	return &participantRepository{db: db}
}

// query returns the live (non-deleted) participants, ordered by ID.
func (repo *participantRepository) query() []participant.Participant {
	parts := make([]participant.Participant, 0, len(repo.db.participants))
	for _, p := range repo.db.participants {
		if !p.Deleted {
			parts = append(parts, *p)
		}
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i].ID < parts[j].ID })
	return parts
}

func (repo *participantRepository) CreateParticipant(_ context.Context, p participant.Participant) (participant.Participant, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.participantPK++
	p.ID = repo.db.participantPK
	repo.db.participants[p.ID] = &p
	return p, nil
}

func (repo *participantRepository) QueryAllParticipants(_ context.Context) ([]participant.Participant, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *participantRepository) GetParticipantByID(_ context.Context, id int) (participant.Participant, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if p, ok := repo.db.participants[id]; ok && !p.Deleted {
		return *p, nil
	}
	return participant.Participant{}, participant.ErrNotFound
}

func (repo *participantRepository) FilterParticipantsByProfile(_ context.Context, profile participant.Profile) ([]participant.Participant, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var parts []participant.Participant
	for _, p := range repo.query() {
		if p.Profile == profile {
			parts = append(parts, p)
		}
	}
	return parts, nil
}

func (repo *participantRepository) UpdateParticipant(_ context.Context, p participant.Participant) (participant.Participant, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	orig, ok := repo.db.participants[p.ID]
	if !ok || orig.Deleted {
		return participant.Participant{}, participant.ErrNotFound
	}
	p.Deleted = orig.Deleted
	*orig = p
	return *orig, nil
}

func (repo *participantRepository) DeleteParticipant(_ context.Context, id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if p, ok := repo.db.participants[id]; ok {
		p.Deleted = true
	}
	return nil
}
