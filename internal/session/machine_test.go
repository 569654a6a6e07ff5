package session

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/careerpath/advisor/internal/deeplink"
	"github.com/careerpath/advisor/internal/handoff"
	"github.com/careerpath/advisor/internal/login"
	"github.com/careerpath/advisor/internal/profile"
	"github.com/careerpath/advisor/internal/quiz"
	"github.com/careerpath/advisor/internal/role"
)

func authedSeed() map[string]string {
	return map[string]string{profile.KeyEmail: "a@b.com", profile.KeyName: "Ann"}
}

func newMachine(t *testing.T, seed map[string]string, query string, opts ...Option) (*Machine, *profile.MemoryBackend) {
	t.Helper()
	mem := profile.NewMemoryBackend(seed)
	params, err := deeplink.Parse(query)
	if err != nil {
		t.Fatalf("Parse(%q): %v", query, err)
	}
	return New(profile.New(mem), params, opts...), mem
}

func backendValue(t *testing.T, mem *profile.MemoryBackend, key string) (string, bool) {
	t.Helper()
	v, ok, err := mem.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("Get(%s): %v", key, err)
	}
	return v, ok
}

func TestMountScenarios(t *testing.T) {
	tests := []struct {
		name  string
		seed  map[string]string
		query string
		want  Step
	}{
		{"unauthenticated no params", nil, "", StepLogin},
		{"unauthenticated with shortcuts", nil, "deepDive=true&roleId=r&roleName=n&skipOnboarding=true", StepLogin},
		{"authenticated no params", authedSeed(), "", StepOnboarding},
		{"authenticated skip onboarding", authedSeed(), "skipOnboarding=true", StepPsychologyQuiz},
		{"authenticated deep dive", authedSeed(), "deepDive=true&roleId=role-7&roleName=Data%20Analyst", StepRoleDeepDive},
		{"deep dive wins", authedSeed(), "deepDive=true&roleId=R1&roleName=N1&skipOnboarding=true", StepRoleDeepDive},
		{"incomplete deep dive", authedSeed(), "deepDive=true&roleId=R1", StepOnboarding},
		{"name missing means unauthenticated", map[string]string{profile.KeyEmail: "a@b.com"}, "skipOnboarding=true", StepLogin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newMachine(t, tt.seed, tt.query)
			if m.Step() != tt.want {
				t.Errorf("Step() = %s, want %s", m.Step(), tt.want)
			}
			if tt.want != StepLogin && !m.Authenticated() {
				t.Error("expected an authenticated machine")
			}
		})
	}
}

func TestMountDeepDiveRole(t *testing.T) {
	m, _ := newMachine(t, authedSeed(), "deepDive=true&roleId=role-7&roleName=Data%20Analyst")
	want := role.Selection{ID: "role-7", Name: "Data Analyst", Rank: 1}
	if m.Role() != want {
		t.Errorf("Role() = %+v, want %+v", m.Role(), want)
	}
	if _, ok := m.Intent().(deeplink.ShortcutToRoleDeepDive); !ok {
		t.Errorf("Intent() = %T, want ShortcutToRoleDeepDive", m.Intent())
	}
}

func TestMountRoleRank(t *testing.T) {
	tests := []struct {
		rank string
		want int
	}{
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"-1", 1},
		{"3", 3},
	}
	for _, tt := range tests {
		q := "deepDive=true&roleId=r&roleName=n&roleRank=" + url.QueryEscape(tt.rank)
		m, _ := newMachine(t, authedSeed(), q)
		if got := m.Role().Rank; got != tt.want {
			t.Errorf("roleRank=%q: Rank = %d, want %d", tt.rank, got, tt.want)
		}
	}
}

func TestStorageUnavailableRoutesToLogin(t *testing.T) {
	params := url.Values{"skipOnboarding": {"true"}}
	m := New(profile.New(profile.Unavailable{}), params)
	if m.Step() != StepLogin {
		t.Fatalf("Step() = %s, want login", m.Step())
	}

	// Login still advances; the write is lost silently.
	step, err := m.Dispatch(LoginSubmitted{Name: "Ann", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if step != StepOnboarding {
		t.Errorf("step = %s, want onboarding", step)
	}
}

func TestLoginValidationFailureKeepsStep(t *testing.T) {
	m, mem := newMachine(t, nil, "")

	step, err := m.Dispatch(LoginSubmitted{Name: "Ann", Email: "not-an-email"})
	if step != StepLogin {
		t.Errorf("step = %s, want login", step)
	}
	if !errors.Is(err, &login.ValidationError{Kind: login.InvalidEmailFormat}) {
		t.Errorf("err = %v, want InvalidEmailFormat", err)
	}
	if le := m.LoginError(); le == nil || le.Kind != login.InvalidEmailFormat {
		t.Errorf("LoginError() = %v, want InvalidEmailFormat", le)
	}
	if mem.Len() != 0 {
		t.Errorf("store has %d keys after a rejected login", mem.Len())
	}
	if m.Authenticated() {
		t.Error("rejected login authenticated the machine")
	}

	step, err = m.Dispatch(LoginSubmitted{Name: " Ann ", Email: " a@b.com "})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if step != StepOnboarding {
		t.Errorf("step = %s, want onboarding", step)
	}
	if m.LoginError() != nil {
		t.Errorf("LoginError() = %v after success", m.LoginError())
	}

	id, ok := m.Identity()
	if want := (profile.Identity{Email: "a@b.com", DisplayName: "Ann"}); !ok || id != want {
		t.Errorf("Identity() = %+v, %v; want %+v", id, ok, want)
	}
	if v, _ := backendValue(t, mem, profile.KeyEmail); v != "a@b.com" {
		t.Errorf("stored email = %q", v)
	}
}

func TestLoginModeUsesStoredName(t *testing.T) {
	seed := map[string]string{profile.KeyName: "Stored Ann"}
	m, _ := newMachine(t, seed, "", WithValidator(login.Validator{Mode: login.ModeLogin, RequirePassword: true}))
	if m.Step() != StepLogin {
		t.Fatalf("Step() = %s, want login", m.Step())
	}

	_, err := m.Dispatch(LoginSubmitted{Email: "a@b.com"})
	if !errors.Is(err, &login.ValidationError{Kind: login.MissingPassword}) {
		t.Errorf("err = %v, want MissingPassword", err)
	}

	if _, err := m.Dispatch(LoginSubmitted{Email: "a@b.com", Password: "pw"}); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if id, _ := m.Identity(); id.DisplayName != "Stored Ann" {
		t.Errorf("DisplayName = %q, want %q", id.DisplayName, "Stored Ann")
	}
}

func TestFullFunnel(t *testing.T) {
	var navigated []string
	var transitions [][2]Step
	m, mem := newMachine(t, nil, "",
		WithNavigator(handoff.Func(func(u string) { navigated = append(navigated, u) })),
		WithObserver(func(from, to Step) { transitions = append(transitions, [2]Step{from, to}) }),
	)

	mustDispatch := func(ev Event, want Step) {
		t.Helper()
		got, err := m.Dispatch(ev)
		if err != nil {
			t.Fatalf("Dispatch(%s): %v", ev.EventName(), err)
		}
		if got != want {
			t.Fatalf("Dispatch(%s) = %s, want %s", ev.EventName(), got, want)
		}
	}

	mustDispatch(LoginSubmitted{Name: "Ann", Email: "a@b.com"}, StepOnboarding)
	mustDispatch(OnboardingCompleted{Profile: profile.Onboarding{Language: "en", Region: "KA", HasGoal: true, Goal: "analytics"}}, StepPsychologyQuiz)
	mustDispatch(Back{}, StepOnboarding)
	mustDispatch(OnboardingCompleted{Profile: profile.Onboarding{Language: "en", Region: "KA", Goal: "ignored"}}, StepPsychologyQuiz)

	answers := quiz.Answers{0: quiz.Single("plan"), 1: quiz.Multi("puzzles", "writing")}
	mustDispatch(QuizCompleted{Answers: answers}, StepResults)
	mustDispatch(Back{}, StepPsychologyQuiz)
	mustDispatch(QuizCompleted{Answers: answers}, StepResults)

	if _, err := m.Dispatch(RoleSelected{Role: role.Selection{ID: "", Name: "Analyst"}}); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("role without id: err = %v, want ErrInvalidRole", err)
	}
	if m.Step() != StepResults {
		t.Errorf("Step() = %s after rejected role, want results", m.Step())
	}

	mustDispatch(RoleSelected{Role: role.Selection{ID: "r1", Name: "Data Analyst", PersonaContext: "curious", Rank: 0}}, StepRoleDeepDive)
	if m.Role().Rank != 1 {
		t.Errorf("Rank = %d, want 1", m.Role().Rank)
	}
	mustDispatch(Back{}, StepResults)
	mustDispatch(RoleSelected{Role: role.Selection{ID: "r2", Name: "UX Designer", Rank: 2}}, StepRoleDeepDive)
	mustDispatch(StartLearning{}, StepRoleDeepDive)

	wantURL := "/skill-assessment?roleId=r2&roleName=UX%20Designer"
	if len(navigated) != 1 || navigated[0] != wantURL {
		t.Fatalf("navigated = %v, want [%s]", navigated, wantURL)
	}
	if m.LastHandoff() != wantURL {
		t.Errorf("LastHandoff() = %q", m.LastHandoff())
	}

	// Onboarding without a goal must not persist the earlier goal.
	o, ok := m.Onboarding()
	if !ok || o.HasGoal || o.Goal != "" {
		t.Errorf("Onboarding() = %+v, %v; want no goal", o, ok)
	}
	if _, hasGoal := backendValue(t, mem, profile.KeyGoal); hasGoal {
		t.Error("stale goal left in storage")
	}

	blob, ok := backendValue(t, mem, profile.KeyAnswers)
	if !ok {
		t.Fatal("answers not persisted")
	}
	stored, err := quiz.Unmarshal(blob)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !answers.Equal(stored) || !answers.Equal(m.Answers()) {
		t.Errorf("answers = %v / %v, want %v", stored, m.Answers(), answers)
	}

	if transitions[0] != [2]Step{StepLogin, StepOnboarding} {
		t.Errorf("first transition = %v", transitions[0])
	}
	if last := transitions[len(transitions)-1]; last != [2]Step{StepResults, StepRoleDeepDive} {
		t.Errorf("last transition = %v", last)
	}
}

func TestInvalidEventLeavesState(t *testing.T) {
	m, _ := newMachine(t, authedSeed(), "")
	if m.Step() != StepOnboarding {
		t.Fatalf("Step() = %s, want onboarding", m.Step())
	}

	for _, ev := range []Event{Back{}, StartLearning{}} {
		if _, err := m.Dispatch(ev); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("Dispatch(%s) err = %v, want ErrInvalidTransition", ev.EventName(), err)
		}
	}
	if m.Step() != StepOnboarding {
		t.Errorf("Step() = %s, want onboarding", m.Step())
	}
}

func TestLogoutFromEveryStep(t *testing.T) {
	full := func() map[string]string {
		seed := authedSeed()
		seed[profile.KeyLanguage] = "en"
		seed[profile.KeyRegion] = "KA"
		seed[profile.KeyGoal] = "ml"
		seed[profile.KeyAnswers] = `{"0":"a"}`
		return seed
	}
	logout := func(t *testing.T, m *Machine, mem *profile.MemoryBackend) {
		t.Helper()
		step, err := m.Dispatch(Logout{})
		if err != nil {
			t.Fatalf("Logout: %v", err)
		}
		if step != StepLogin {
			t.Errorf("step = %s, want login", step)
		}
		if mem.Len() != 0 {
			t.Errorf("%d keys left after logout", mem.Len())
		}
	}

	queries := map[Step]string{
		StepOnboarding:     "",
		StepPsychologyQuiz: "skipOnboarding=true",
		StepRoleDeepDive:   "deepDive=true&roleId=r&roleName=n",
	}
	for want, q := range queries {
		t.Run(want.String(), func(t *testing.T) {
			m, mem := newMachine(t, full(), q)
			if m.Step() != want {
				t.Fatalf("Step() = %s, want %s", m.Step(), want)
			}

			logout(t, m, mem)
			if m.Authenticated() {
				t.Error("still authenticated")
			}
			if _, ok := m.Onboarding(); ok {
				t.Error("onboarding kept in memory")
			}
			if len(m.Answers()) != 0 {
				t.Errorf("Answers() = %v", m.Answers())
			}
			if m.Role() != (role.Selection{}) {
				t.Errorf("Role() = %+v", m.Role())
			}

			// A fresh mount sees the cleared store.
			again := New(profile.New(mem), url.Values{"skipOnboarding": {"true"}})
			if again.Step() != StepLogin {
				t.Errorf("remount Step() = %s, want login", again.Step())
			}
		})
	}

	t.Run("results", func(t *testing.T) {
		m, mem := newMachine(t, full(), "skipOnboarding=true")
		if _, err := m.Dispatch(QuizCompleted{Answers: quiz.Answers{0: quiz.Single("x")}}); err != nil {
			t.Fatalf("QuizCompleted: %v", err)
		}
		if m.Step() != StepResults {
			t.Fatalf("Step() = %s, want results", m.Step())
		}
		logout(t, m, mem)
	})

	t.Run("login", func(t *testing.T) {
		m, mem := newMachine(t, map[string]string{profile.KeyLanguage: "en"}, "")
		logout(t, m, mem)
	})
}

func TestRestoreAtMount(t *testing.T) {
	seed := authedSeed()
	seed[profile.KeyLanguage] = "en"
	seed[profile.KeyRegion] = "KA"
	seed[profile.KeyAnswers] = `{"0":"plan","3":["a","b"]}`
	m, _ := newMachine(t, seed, "")

	o, ok := m.Onboarding()
	if want := (profile.Onboarding{Language: "en", Region: "KA"}); !ok || o != want {
		t.Errorf("Onboarding() = %+v, %v; want %+v", o, ok, want)
	}
	want := quiz.Answers{0: quiz.Single("plan"), 3: quiz.Multi("a", "b")}
	if !want.Equal(m.Answers()) {
		t.Errorf("Answers() = %v, want %v", m.Answers(), want)
	}
}

func TestRestoreIgnoresCorruptAnswers(t *testing.T) {
	seed := authedSeed()
	seed[profile.KeyAnswers] = `{"0":42}`
	m, _ := newMachine(t, seed, "")
	if len(m.Answers()) != 0 {
		t.Errorf("Answers() = %v, want empty", m.Answers())
	}
	if m.Step() != StepOnboarding {
		t.Errorf("Step() = %s, want onboarding", m.Step())
	}
}

func TestHandoffBase(t *testing.T) {
	var got string
	m, _ := newMachine(t, authedSeed(), "deepDive=true&roleId=r9&roleName=Cloud%20Engineer&roleRank=4",
		WithHandoffBase("https://learn.example.com/assess"),
		WithNavigator(handoff.Func(func(u string) { got = u })),
	)
	if m.Role().Rank != 4 {
		t.Errorf("Rank = %d, want 4", m.Role().Rank)
	}
	if _, err := m.Dispatch(StartLearning{}); err != nil {
		t.Fatalf("StartLearning: %v", err)
	}
	if want := "https://learn.example.com/assess?roleId=r9&roleName=Cloud%20Engineer"; got != want {
		t.Errorf("navigated to %q, want %q", got, want)
	}
}
