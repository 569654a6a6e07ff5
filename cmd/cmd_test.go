package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerpath/advisor/internal/profile"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := executeErr(t, args...)
	require.NoError(t, err)
	return out
}

func executeErr(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags undoes flag values left over from a previous Execute, which
// cobra keeps on the package-level commands.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestVersion(t *testing.T) {
	out := execute(t, "version")
	assert.True(t, strings.HasPrefix(out, "advisor "), out)
	assert.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)
}

func TestLinkSignedOutStartsAtLogin(t *testing.T) {
	out := execute(t, "link", "--ephemeral", "deepDive=true&roleId=nurse&roleName=Nurse")
	assert.Contains(t, out, "Signed in: false")
	assert.Contains(t, out, "Intent:    no-shortcut")
	assert.Contains(t, out, "Start:     login")
}

func TestWhoamiSignedOut(t *testing.T) {
	out := execute(t, "whoami", "--ephemeral")
	assert.Contains(t, out, "Not signed in.")
}

func TestReset(t *testing.T) {
	out := execute(t, "reset", "--ephemeral")
	assert.Contains(t, out, "Signed out. Cleared saved profile from in-memory storage.")

	db := filepath.Join(t.TempDir(), "advisor.db")
	out = execute(t, "reset", "--db", db)
	assert.Contains(t, out, "Cleared saved profile from "+db)
}

func TestResetUnavailableStorage(t *testing.T) {
	// A regular file where the database directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	out, err := executeErr(t, "reset", "--db", filepath.Join(blocker, "advisor.db"))
	require.Error(t, err)
	assert.ErrorIs(t, err, profile.ErrUnavailable)
	assert.NotContains(t, out, "Cleared saved profile")
}

func TestTruncateAndFormatCost(t *testing.T) {
	assert.Equal(t, "ab…", truncate("abcdef", 3))
	assert.Equal(t, "né…", truncate("nécessaire", 3))
	assert.Equal(t, "ab", truncate("ab", 3))
	assert.Equal(t, "$0.0050", formatCost(0.005))
	assert.Equal(t, "$1.25", formatCost(1.25))
}

func TestLLMListEmpty(t *testing.T) {
	out := execute(t, "llm", "list")
	assert.Contains(t, out, "No LLM events found.")
}

func TestVersionShort(t *testing.T) {
	out := execute(t, "version", "--short")
	assert.NotContains(t, out, "advisor")
	assert.NotEmpty(t, strings.TrimSpace(out))
}
