package participant

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trainhub/trainhub/core"
)

var ErrNotFound = errors.New("participant not found")

type (
	Repository interface {
		CreateParticipant(ctx context.Context, p Participant) (Participant, error)
		QueryAllParticipants(ctx context.Context) ([]Participant, error)
		GetParticipantByID(ctx context.Context, id int) (Participant, error)
		FilterParticipantsByProfile(ctx context.Context, profile Profile) ([]Participant, error)
		UpdateParticipant(ctx context.Context, p Participant) (Participant, error)
		// DeleteParticipant soft-deletes; deleted participants are excluded from all queries.
		DeleteParticipant(ctx context.Context, id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, np NewParticipant) (Participant, error) {
	p := Participant{
		FirstName: np.FirstName,
		LastName:  np.LastName,
		Email:     np.Email,
		Telephone: np.Telephone,
		Structure: np.Structure,
		Profile:   ParseProfile(np.Profile),
	}
	return svc.repo.CreateParticipant(ctx, p)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Participant, error) {
	return svc.repo.QueryAllParticipants(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Participant, error) {
	return svc.repo.GetParticipantByID(ctx, id)
}

func (svc *Service) FilterByProfile(ctx context.Context, profile Profile) ([]Participant, error) {
	return svc.repo.FilterParticipantsByProfile(ctx, profile)
}

func (svc *Service) CountByProfile(ctx context.Context, profile Profile) (int, error) {
	ps, err := svc.repo.FilterParticipantsByProfile(ctx, profile)
	if err != nil {
		return 0, err
	}
	return len(ps), nil
}

func (svc *Service) Update(ctx context.Context, id int, up UpdateParticipant) (Participant, error) {
	orig, err := svc.repo.GetParticipantByID(ctx, id)
	if err != nil {
		return Participant{}, err
	}
	up.fill(&orig)
	return svc.repo.UpdateParticipant(ctx, orig)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteParticipant(ctx, id)
}

// NewParticipant contains information needed to register a new Participant.
type NewParticipant struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Telephone string `json:"telephone"`
	Structure string `json:"structure"`
	Profile   string `json:"profile" validate:"required,profile"`
}

func (np *NewParticipant) Validate(validate *validator.Validate) error {
	np.FirstName = core.CleanString(np.FirstName)
	np.LastName = core.CleanString(np.LastName)
	np.Email = core.CleanString(np.Email, true /* lower */)
	np.Telephone = core.CleanString(np.Telephone)
	np.Structure = core.CleanString(np.Structure)
	return validate.Struct(np)
}

// UpdateParticipant defines what information may be provided to modify an
// existing Participant. Zero-valued fields keep their current value.
type UpdateParticipant struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"omitempty,email"`
	Telephone string `json:"telephone"`
	Structure string `json:"structure"`
	Profile   string `json:"profile" validate:"omitempty,profile"`
}

func (up *UpdateParticipant) Validate(validate *validator.Validate) error {
	up.Email = core.CleanString(up.Email, true /* lower */)
	return validate.Struct(up)
}

func (up *UpdateParticipant) fill(p *Participant) {
	if v := core.CleanString(up.FirstName); v != "" {
		p.FirstName = v
	}
	if v := core.CleanString(up.LastName); v != "" {
		p.LastName = v
	}
	if up.Email != "" {
		p.Email = up.Email
	}
	if v := core.CleanString(up.Telephone); v != "" {
		p.Telephone = v
	}
	if v := core.CleanString(up.Structure); v != "" {
		p.Structure = v
	}
	if prof := ParseProfile(up.Profile); prof.Recognized() {
		p.Profile = prof
	}
}
