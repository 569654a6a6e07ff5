package login

import "fmt"

// Kind classifies a login validation failure.
type Kind int

const (
	MissingName Kind = iota + 1
	MissingEmail
	MissingPassword
	InvalidEmailFormat
)

func (k Kind) String() string {
	switch k {
	case MissingName:
		return "missing_name"
	case MissingEmail:
		return "missing_email"
	case MissingPassword:
		return "missing_password"
	case InvalidEmailFormat:
		return "invalid_email_format"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ValidationError is returned when login input is rejected. It is shown
// inline by the login view and never changes the funnel step.
type ValidationError struct {
	Kind Kind
}

func (e *ValidationError) Error() string {
	return "login validation: " + e.Kind.String()
}

// Message returns the user-facing text for the failure.
func (e *ValidationError) Message() string {
	switch e.Kind {
	case MissingName:
		return "Please enter your name"
	case MissingEmail:
		return "Please enter your email"
	case MissingPassword:
		return "Please enter your password"
	case InvalidEmailFormat:
		return "Please enter a valid email address"
	default:
		return "Please check your details"
	}
}

// Is reports whether target is a ValidationError of the same kind. A target
// with a zero Kind matches any ValidationError.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Kind == 0 || t.Kind == e.Kind
}
