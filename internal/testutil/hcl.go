package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFiles writes files (relative path → content) under a fresh temporary
// directory and returns it.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

// ProjectHCL is a single desktop Chrome project.
const ProjectHCL = `
project "Chrome Desktop" {
  device = "Desktop Chrome"
}
`

// LoginScenarioHCL renders the login scenario used across tests.
func LoginScenarioHCL(name, email, password, initials string) string {
	return `
scenario "` + name + `" {
  step "navigate" { url = "/" }
  step "click"    { test_id = "login-icon" }
  step "fill" {
    test_id = "login-email"
    value   = "` + email + `"
  }
  step "fill" {
    test_id = "login-password"
    value   = "` + password + `"
  }
  step "click" { test_id = "login-button" }

  expect {
    test_id  = "user-avatar"
    contains = "` + initials + `"
  }
}
`
}
