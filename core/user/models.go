package user

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/trainhub/trainhub/core"
)

// Role is a closed set of account roles. Any value coming from outside
// that is not one of the known names collapses to RoleUnrecognized so that
// authorization code only ever branches on the variant, never on raw strings.
type Role uint8

const (
	RoleUnrecognized Role = iota
	RoleAdmin
	RoleManager
	RoleUser
)

const (
	roleAdminName   = "ADMIN"
	roleManagerName = "MANAGER"
	roleUserName    = "USER"
)

var (
	roleNames = map[Role]string{
		RoleAdmin:   roleAdminName,
		RoleManager: roleManagerName,
		RoleUser:    roleUserName,
	}

	// Roles lists the assignable roles, in display order.
	Roles = []Role{RoleAdmin, RoleManager, RoleUser}
)

// ParseRole maps a raw role name to its variant; unknown names map to RoleUnrecognized.
func ParseRole(s string) Role {
	switch s {
	case roleAdminName:
		return RoleAdmin
	case roleManagerName:
		return RoleManager
	case roleUserName:
		return RoleUser
	}
	return RoleUnrecognized
}

func (r Role) String() string { return roleNames[r] }

// Recognized reports whether r is one of the known roles.
func (r Role) Recognized() bool {
	_, ok := roleNames[r]
	return ok
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON never fails on an unknown role name: the value becomes
// RoleUnrecognized and authorization resolves it downstream.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ParseRole(s)
	return nil
}

func (r Role) Value() (driver.Value, error) {
	if !r.Recognized() {
		return nil, errors.New("cannot persist an unrecognized role")
	}
	return r.String(), nil
}

func (r *Role) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*r = ParseRole(v)
	case []byte:
		*r = ParseRole(string(v))
	default:
		return errors.Errorf("cannot scan %T into Role", src)
	}
	return nil
}

type User struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	Role         Role      `json:"role" db:"role"`
	PasswordHash []byte    `json:"-" db:"password_hash"`
	Deleted      bool      `json:"-" db:"deleted"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u User) FullName() string {
	return core.CleanString(u.FirstName + " " + u.LastName)
}

func (u User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u User) IsManager() bool { return u.Role == RoleManager }

// IsTrainerCapable reports whether the user may manage trainings and
// participants. Admins and regular users both can; this is an intentional
// grouping, not a hierarchy.
func (u User) IsTrainerCapable() bool {
	return u.Role == RoleAdmin || u.Role == RoleUser
}

// NewUser contains information needed to create a new User.
type NewUser struct {
	Username        string `json:"username" validate:"required,min=3,alphanum_"`
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Role            string `json:"role" validate:"required,role"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"passwordConfirm" validate:"omitempty,eqfield=Password"`
}

func (nu *NewUser) Validate(validate *validator.Validate, svc *Service) error {
	nu.Username = core.CleanString(nu.Username, true /* lower */)
	nu.FirstName = core.CleanString(nu.FirstName)
	nu.LastName = core.CleanString(nu.LastName)

	if err := validate.Struct(nu); err != nil {
		return err
	}
	return svc.CheckUniqueness(nu.Username)
}

// UpdateUser defines what information may be provided to modify an existing User.
type UpdateUser struct {
	Username  string `json:"username" validate:"omitempty,min=3,alphanum_"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role" validate:"omitempty,role"`
}

func (uu *UpdateUser) Validate(origUsr User, validate *validator.Validate, svc *Service) error {
	uname := core.CleanString(uu.Username, true /* lower */)
	if uname != "" {
		uu.Username = uname
	} else {
		uu.Username = origUsr.Username
	}

	if fname := core.CleanString(uu.FirstName); fname != "" {
		uu.FirstName = fname
	} else {
		uu.FirstName = origUsr.FirstName
	}
	if lname := core.CleanString(uu.LastName); lname != "" {
		uu.LastName = lname
	} else {
		uu.LastName = origUsr.LastName
	}
	if uu.Role == "" {
		uu.Role = origUsr.Role.String()
	}

	if err := validate.Struct(uu); err != nil {
		return err
	}
	return svc.CheckUniqueness(uu.Username, origUsr)
}

type ChangePassword struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

func (cp ChangePassword) Validate(validate *validator.Validate) error { return validate.Struct(cp) }
