package entities

import (
	"fmt"
	"regexp"
	"strings"

	apperrors "github.com/nohlan/stayhub/pkg/errors"
)

const maxNameLength = 50

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9-]+(\.[A-Za-z]{2,})+$`)

// User represents a registered account. PasswordHash is opaque to the
// domain and never serialized outward.
type User struct {
	Entity
	FirstName    string `json:"first_name" db:"first_name"`
	LastName     string `json:"last_name" db:"last_name"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	IsAdmin      bool   `json:"is_admin" db:"is_admin"`
}

// UserSummary is the outward owner representation embedded in place details.
type UserSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// NewUser constructs a fully initialized, validated user. The password
// hash comes from the caller; the domain never sees plaintext.
func NewUser(firstName, lastName, email, passwordHash string, isAdmin bool) (*User, error) {
	u := &User{
		Entity:       NewEntity(),
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Email:        strings.TrimSpace(email),
		PasswordHash: passwordHash,
		IsAdmin:      isAdmin,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if passwordHash == "" {
		return nil, apperrors.NewValidationError("password is required")
	}
	return u, nil
}

// Validate enforces the per-field user invariants: presence first, then
// length, then format.
func (u User) Validate() error {
	if err := validateName("first_name", u.FirstName); err != nil {
		return err
	}
	if err := validateName("last_name", u.LastName); err != nil {
		return err
	}
	return ValidateEmail(u.Email)
}

// Rename applies a self-service profile change, all-or-nothing.
func (u *User) Rename(firstName, lastName string) error {
	next := *u
	next.FirstName = strings.TrimSpace(firstName)
	next.LastName = strings.TrimSpace(lastName)
	if err := next.Validate(); err != nil {
		return err
	}
	*u = next
	return nil
}

// SetEmail applies an email change. Only the admin path may call this;
// the uniqueness index is the repository's concern.
func (u *User) SetEmail(email string) error {
	next := *u
	next.Email = strings.TrimSpace(email)
	if err := next.Validate(); err != nil {
		return err
	}
	*u = next
	return nil
}

// Summary returns the outward owner fields.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

// ValidateEmail checks the canonical address pattern.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.NewValidationError("email is required")
	}
	if !emailPattern.MatchString(email) {
		return apperrors.NewValidationError("email is not a valid address")
	}
	return nil
}

func validateName(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.NewValidationError(fmt.Sprintf("%s must not be blank", field))
	}
	if len(value) > maxNameLength {
		return apperrors.NewValidationError(fmt.Sprintf("%s must be at most %d characters", field, maxNameLength))
	}
	return nil
}
