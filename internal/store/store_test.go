package store

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/careerpath/advisor/internal/profile"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is not checked here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{profileTable, llmEventTable} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func TestProfileBackendGetSetRemove(t *testing.T) {
	s := openTestStore(t)
	b := s.ProfileBackend()
	ctx := context.Background()

	if _, ok, err := b.Get(ctx, profile.KeyEmail); err != nil || ok {
		t.Fatalf("get on empty store = ok %v, err %v", ok, err)
	}

	if err := b.Set(ctx, profile.KeyEmail, "a@b.com"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := b.Set(ctx, profile.KeyEmail, "c@d.com"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := b.Get(ctx, profile.KeyEmail)
	if err != nil || !ok || v != "c@d.com" {
		t.Fatalf("get = %q, %v, %v; want c@d.com", v, ok, err)
	}

	// Empty values are stored, not treated as absent.
	if err := b.Set(ctx, profile.KeyGoal, ""); err != nil {
		t.Fatalf("set empty: %v", err)
	}
	if _, ok, _ := b.Get(ctx, profile.KeyGoal); !ok {
		t.Error("empty value should be present")
	}

	if err := b.Remove(ctx); err != nil {
		t.Fatalf("remove nothing: %v", err)
	}
	if err := b.Remove(ctx, profile.KeyEmail, profile.KeyGoal, "never-set"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	for _, k := range []string{profile.KeyEmail, profile.KeyGoal} {
		if _, ok, _ := b.Get(ctx, k); ok {
			t.Errorf("%s still present after remove", k)
		}
	}
}

func TestProfileStoreClearOnSQLite(t *testing.T) {
	s := openTestStore(t)
	ps := profile.New(s.ProfileBackend())

	ps.SaveIdentity(profile.Identity{Email: "a@b.com", DisplayName: "Ann"})
	ps.SaveOnboarding(profile.Onboarding{Language: "en", Region: "KA", HasGoal: true, Goal: "ml"})
	ps.Set(profile.KeyAnswers, `{"0":"a"}`)

	if _, ok := ps.Identity(); !ok {
		t.Fatal("expected identity after save")
	}

	ps.Clear()

	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM " + profileTable).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("remaining profile rows = %d, want 0", count)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for i, purpose := range []string{"role-recommendation", "other", "role-recommendation"} {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "mock",
			Model:        "mock",
			Purpose:      purpose,
			InputTokens:  10 * (i + 1),
			OutputTokens: 5,
			LatencyMs:    int64(100 + i),
			Success:      i != 1,
			ErrorMessage: map[bool]string{true: "", false: "boom"}[i != 1],
			RequestBody:  "[user]\nhello",
		})
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d events, want 3", len(all))
	}
	if all[0].InputTokens != 30 {
		t.Errorf("newest first: input tokens = %d, want 30", all[0].InputTokens)
	}

	filtered, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "role-recommendation", Limit: 1})
	if err != nil {
		t.Fatalf("filtered query: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Purpose != "role-recommendation" {
		t.Fatalf("filtered = %+v", filtered)
	}

	e, err := repo.LLMEvent(ctx, all[1].ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if e == nil || e.Success || e.ErrorMessage != "boom" {
		t.Errorf("event %d = %+v", all[1].ID, e)
	}

	missing, err := repo.LLMEvent(ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("missing event = %+v, %v; want nil, nil", missing, err)
	}
}
