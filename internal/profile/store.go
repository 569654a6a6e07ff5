package profile

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Store is the durable profile store used by the funnel. It never returns
// storage errors: failures are logged and reads degrade to "absent", which
// routes the user to login.
type Store struct {
	backend Backend
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for degraded-mode warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Store over backend. A nil backend behaves as Unavailable.
func New(backend Backend, opts ...Option) *Store {
	if backend == nil {
		backend = Unavailable{}
	}
	s := &Store{
		backend: backend,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Get returns the value for key, or false if it is absent or unreadable.
func (s *Store) Get(key string) (string, bool) {
	v, ok, err := s.backend.Get(context.Background(), key)
	if err != nil {
		s.logger.Warn("profile read failed", "key", key, "error", err)
		return "", false
	}
	return v, ok
}

// Set stores value under key. Failures are logged and otherwise ignored.
func (s *Store) Set(key, value string) {
	if err := s.backend.Set(context.Background(), key, value); err != nil {
		s.logger.Warn("profile write failed", "key", key, "error", err)
	}
}

// Remove deletes keys in a single backend call.
func (s *Store) Remove(keys ...string) {
	_ = s.remove(keys...)
}

func (s *Store) remove(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	err := s.backend.Remove(context.Background(), keys...)
	if err != nil {
		s.logger.Warn("profile remove failed", "keys", keys, "error", err)
	}
	return err
}

// Identity returns the stored identity. Both email and name must be present
// and non-empty.
func (s *Store) Identity() (Identity, bool) {
	email, ok := s.Get(KeyEmail)
	if !ok || email == "" {
		return Identity{}, false
	}
	name, ok := s.Get(KeyName)
	if !ok || name == "" {
		return Identity{}, false
	}
	return Identity{Email: email, DisplayName: name}, true
}

// StoredName returns the persisted display name, if any.
func (s *Store) StoredName() string {
	name, _ := s.Get(KeyName)
	return strings.TrimSpace(name)
}

// SaveIdentity persists id.
func (s *Store) SaveIdentity(id Identity) {
	s.Set(KeyEmail, id.Email)
	s.Set(KeyName, id.DisplayName)
}

// SaveOnboarding persists the onboarding fields. The goal key is written only
// when HasGoal is set, and removed otherwise so an earlier goal cannot leak
// into a profile that has none.
func (s *Store) SaveOnboarding(o Onboarding) {
	s.Set(KeyLanguage, o.Language)
	s.Set(KeyRegion, o.Region)
	if goal, ok := o.GoalText(); ok {
		s.Set(KeyGoal, goal)
	} else {
		s.Remove(KeyGoal)
	}
}

// Onboarding returns the stored onboarding profile. It reports false when
// neither language nor region has been saved.
func (s *Store) Onboarding() (Onboarding, bool) {
	lang, hasLang := s.Get(KeyLanguage)
	region, hasRegion := s.Get(KeyRegion)
	if !hasLang && !hasRegion {
		return Onboarding{}, false
	}
	o := Onboarding{Language: lang, Region: region}
	if goal, ok := s.Get(KeyGoal); ok {
		o.HasGoal = true
		o.Goal = goal
	}
	return o, true
}

// Clear removes every funnel key in one call. The error is logged like any
// other storage failure; it is returned only for callers that report it.
func (s *Store) Clear() error {
	return s.remove(AllKeys...)
}
