// Package deeplink turns inbound navigation parameters into a shortcut
// intent for the funnel.
package deeplink

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/careerpath/advisor/internal/role"
)

// Parameter names.
const (
	ParamDeepDive       = "deepDive"
	ParamRoleID         = "roleId"
	ParamRoleName       = "roleName"
	ParamPersonaContext = "personaContext"
	ParamRoleRank       = "roleRank"
	ParamSkipOnboarding = "skipOnboarding"
)

// Intent is the outcome of resolving parameters. It is one of NoShortcut,
// ShortcutToRoleDeepDive or ShortcutToQuiz.
type Intent interface {
	isIntent()
	String() string
}

// NoShortcut means the default flow applies.
type NoShortcut struct{}

// ShortcutToRoleDeepDive opens the deep dive for Role directly.
type ShortcutToRoleDeepDive struct {
	Role role.Selection
}

// ShortcutToQuiz skips onboarding and opens the quiz.
type ShortcutToQuiz struct{}

func (NoShortcut) isIntent()             {}
func (ShortcutToRoleDeepDive) isIntent() {}
func (ShortcutToQuiz) isIntent()         {}

func (NoShortcut) String() string     { return "no-shortcut" }
func (ShortcutToQuiz) String() string { return "shortcut-to-quiz" }
func (s ShortcutToRoleDeepDive) String() string {
	return fmt.Sprintf("shortcut-to-role-deep-dive(id=%q name=%q rank=%d)", s.Role.ID, s.Role.Name, s.Role.Rank)
}

// Parse reads parameters from a bare query string, a query string with a
// leading '?', or a full URL. On a malformed string it returns whatever
// pairs could be parsed together with the error.
func Parse(raw string) (url.Values, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return url.Values{}, nil
	}
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return url.Values{}, fmt.Errorf("parse deep link: %w", err)
		}
		raw = u.RawQuery
	} else if i := strings.IndexByte(raw, '?'); i >= 0 {
		raw = raw[i+1:]
	}
	vals, err := url.ParseQuery(raw)
	if err != nil {
		return vals, fmt.Errorf("parse deep link query: %w", err)
	}
	return vals, nil
}

// Resolve decides the shortcut for params. Shortcuts require an
// authenticated user; the deep-dive shortcut takes precedence over
// skipping onboarding.
func Resolve(params url.Values, authenticated bool) Intent {
	if !authenticated {
		return NoShortcut{}
	}
	if params.Get(ParamDeepDive) == "true" {
		sel := role.Selection{
			ID:             params.Get(ParamRoleID),
			Name:           params.Get(ParamRoleName),
			PersonaContext: params.Get(ParamPersonaContext),
			Rank:           role.ParseRank(params.Get(ParamRoleRank)),
		}
		if sel.Valid() {
			return ShortcutToRoleDeepDive{Role: sel}
		}
	}
	if params.Get(ParamSkipOnboarding) == "true" {
		return ShortcutToQuiz{}
	}
	return NoShortcut{}
}

// Encode builds the query string that Resolve maps back to a deep-dive
// shortcut for sel.
func Encode(sel role.Selection) string {
	v := url.Values{}
	v.Set(ParamDeepDive, "true")
	v.Set(ParamRoleID, sel.ID)
	v.Set(ParamRoleName, sel.Name)
	if sel.PersonaContext != "" {
		v.Set(ParamPersonaContext, sel.PersonaContext)
	}
	v.Set(ParamRoleRank, fmt.Sprint(sel.Normalize().Rank))
	return v.Encode()
}
