package auth

import (
	"errors"
	"strings"
)

var (
	ErrPasswordMismatch    = errors.New("Passwords do not match")
	ErrJobPasswordMismatch = errors.New("Passwords do not match!")
	ErrRoleRequired        = errors.New("Please select a role.")
	ErrEmailRegistered     = errors.New("This email is already registered. Please use a different one.")
	ErrInvalidCredentials  = errors.New("Invalid email or password.")
)

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupForm struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

func (f SignupForm) Validate() error {
	if f.Password != f.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}

// JobRoles maps the job portal role ids to their labels.
var JobRoles = map[string]string{
	"1": "Admin",
	"2": "User",
	"3": "Job Seeker",
}

type JobSignupForm struct {
	FullName        string `json:"fullname"`
	Email           string `json:"email"`
	Role            string `json:"role"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

func (f JobSignupForm) Validate() error {
	if f.Password != f.ConfirmPassword {
		return ErrJobPasswordMismatch
	}
	if _, ok := JobRoles[f.Role]; !ok {
		return ErrRoleRequired
	}
	return nil
}

// ClassifyMessage turns a job portal reply into an error when it reports a
// duplicate account or bad credentials.
func ClassifyMessage(msg string) error {
	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "exists"):
		return ErrEmailRegistered
	case strings.Contains(msg, "invalid"):
		return ErrInvalidCredentials
	default:
		return nil
	}
}

// IsValidation reports whether err is a form error the visitor can fix.
func IsValidation(err error) bool {
	for _, v := range []error{ErrPasswordMismatch, ErrJobPasswordMismatch, ErrRoleRequired, ErrEmailRegistered, ErrInvalidCredentials} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
