package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trainhub/trainhub/core/participant"
)

type participantRepository struct {
	db *sqlx.DB
}

var _ participant.Repository = (*participantRepository)(nil) // interface compliance check

func NewParticipantRepository(db *sqlx.DB) *participantRepository {
	return &participantRepository{db: db}
}

func (repo participantRepository) CreateParticipant(ctx context.Context, p participant.Participant) (participant.Participant, error) {
	query := repo.db.Rebind(`
INSERT INTO participant (first_name, last_name, email, telephone, structure, profile)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id`)
	err := repo.db.QueryRowxContext(
		ctx, query,
		p.FirstName, p.LastName, p.Email, p.Telephone, p.Structure, p.Profile,
	).Scan(&p.ID)
	if err != nil {
		return participant.Participant{}, errors.Wrap(err, "inserting participant")
	}
	return p, nil
}

func (repo participantRepository) QueryAllParticipants(ctx context.Context) ([]participant.Participant, error) {
	var parts []participant.Participant
	query := `SELECT * FROM participant WHERE NOT deleted ORDER BY id`
	if err := repo.db.SelectContext(ctx, &parts, query); err != nil {
		return nil, errors.Wrap(err, "querying participants")
	}
	return parts, nil
}

func (repo participantRepository) GetParticipantByID(ctx context.Context, id int) (participant.Participant, error) {
	var p participant.Participant
	query := repo.db.Rebind(`SELECT * FROM participant WHERE id = ? AND NOT deleted`)
	if err := repo.db.GetContext(ctx, &p, query, id); err != nil {
		if err == sql.ErrNoRows {
			return participant.Participant{}, participant.ErrNotFound
		}
		return participant.Participant{}, errors.Wrap(err, "getting participant by ID")
	}
	return p, nil
}

func (repo participantRepository) FilterParticipantsByProfile(ctx context.Context, profile participant.Profile) ([]participant.Participant, error) {
	var parts []participant.Participant
	query := repo.db.Rebind(`SELECT * FROM participant WHERE profile = ? AND NOT deleted ORDER BY id`)
	if err := repo.db.SelectContext(ctx, &parts, query, profile); err != nil {
		return nil, errors.Wrap(err, "filtering participants")
	}
	return parts, nil
}

func (repo participantRepository) UpdateParticipant(ctx context.Context, p participant.Participant) (participant.Participant, error) {
	query := `
UPDATE participant
SET first_name = :first_name, last_name = :last_name, email = :email,
    telephone = :telephone, structure = :structure, profile = :profile
WHERE id = :id AND NOT deleted`
	res, err := repo.db.NamedExecContext(ctx, query, p)
	if err != nil {
		return participant.Participant{}, errors.Wrap(err, "updating participant")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return participant.Participant{}, participant.ErrNotFound
	}
	return p, nil
}

func (repo participantRepository) DeleteParticipant(ctx context.Context, id int) error {
	query := repo.db.Rebind(`UPDATE participant SET deleted = TRUE WHERE id = ?`)
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return errors.Wrap(err, "deleting participant")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return participant.ErrNotFound
	}
	return nil
}
