// Package login validates identity input from the login step.
package login

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/careerpath/advisor/internal/profile"
)

// Mode selects which fields are required.
type Mode string

const (
	// ModeSignUp requires a name. This is the default contract.
	ModeSignUp Mode = "signup"
	// ModeLogin accepts email (and password) only; the display name is resolved.
	ModeLogin Mode = "login"
)

// ParseMode converts a config string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeSignUp:
		return ModeSignUp, nil
	case ModeLogin:
		return ModeLogin, nil
	default:
		return "", fmt.Errorf("unknown login mode: %q", s)
	}
}

// emailPattern: non-space/non-@ run, '@', run, '.', run.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Input is the raw form submission.
type Input struct {
	Name     string
	Email    string
	Password string
}

// Validator checks login input.
type Validator struct {
	Mode Mode
	// RequirePassword rejects an empty password. The password is never
	// compared against a stored credential.
	RequirePassword bool
}

// DefaultValidator returns the sign-up validator without a password field.
func DefaultValidator() Validator {
	return Validator{Mode: ModeSignUp}
}

// Validate applies the rules in order and returns the normalized identity.
// storedName is the previously persisted display name, if any.
func (v Validator) Validate(in Input, storedName string) (profile.Identity, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)

	if v.Mode != ModeLogin && name == "" {
		return profile.Identity{}, &ValidationError{Kind: MissingName}
	}
	if email == "" {
		return profile.Identity{}, &ValidationError{Kind: MissingEmail}
	}
	if !ValidEmail(email) {
		return profile.Identity{}, &ValidationError{Kind: InvalidEmailFormat}
	}
	if v.RequirePassword && strings.TrimSpace(in.Password) == "" {
		return profile.Identity{}, &ValidationError{Kind: MissingPassword}
	}

	displayName := name
	if v.Mode == ModeLogin {
		displayName = ResolveDisplayName(storedName, name, email)
	}
	return profile.Identity{Email: email, DisplayName: displayName}, nil
}

// ValidEmail reports whether s matches the accepted email shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ResolveDisplayName picks the first non-empty of the stored name, the
// provided name, and the local part of email.
func ResolveDisplayName(stored, provided, email string) string {
	if s := strings.TrimSpace(stored); s != "" {
		return s
	}
	if p := strings.TrimSpace(provided); p != "" {
		return p
	}
	local, _, _ := strings.Cut(strings.TrimSpace(email), "@")
	return local
}
