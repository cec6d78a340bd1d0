package participant

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/trainhub/trainhub/core"
)

// Profile classifies how a participant attends trainings.
type Profile uint8

const (
	ProfileUnknown Profile = iota
	ProfileParticipant
	ProfileIntern
	ProfileExtern
)

var profileNames = map[Profile]string{
	ProfileParticipant: "Participant",
	ProfileIntern:      "Intern",
	ProfileExtern:      "Extern",
}

// Profiles lists the assignable profiles, in display order.
var Profiles = []Profile{ProfileParticipant, ProfileIntern, ProfileExtern}

func ParseProfile(s string) Profile {
	for p, name := range profileNames {
		if name == s {
			return p
		}
	}
	return ProfileUnknown
}

func (p Profile) String() string { return profileNames[p] }

func (p Profile) Recognized() bool {
	_, ok := profileNames[p]
	return ok
}

func (p Profile) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Profile) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*p = ParseProfile(s)
	return nil
}

func (p Profile) Value() (driver.Value, error) {
	if !p.Recognized() {
		return nil, errors.New("cannot persist an unknown profile")
	}
	return p.String(), nil
}

func (p *Profile) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*p = ParseProfile(v)
	case []byte:
		*p = ParseProfile(string(v))
	default:
		return errors.Errorf("cannot scan %T into Profile", src)
	}
	return nil
}

type Participant struct {
	ID        int     `json:"id" db:"id"`
	FirstName string  `json:"firstName" db:"first_name"`
	LastName  string  `json:"lastName" db:"last_name"`
	Email     string  `json:"email" db:"email"`
	Telephone string  `json:"telephone" db:"telephone"`
	Structure string  `json:"structure" db:"structure"`
	Profile   Profile `json:"profile" db:"profile"`
	Deleted   bool    `json:"-" db:"deleted"`
}

func (p Participant) FullName() string {
	return core.CleanString(p.FirstName + " " + p.LastName)
}
