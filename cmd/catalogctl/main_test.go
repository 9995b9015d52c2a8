package main

import (
	"bytes"
	"strings"
	"testing"

	"bookcatalog/internal/auth"
	"bookcatalog/internal/ingest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestTokenCmd(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")

	out, err := run(t, "token", "--sub", "librarian", "--ttl", "1h")
	require.NoError(t, err)

	claims, err := auth.ParseToken("cli-secret", strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "librarian", claims.Sub)
	assert.Equal(t, auth.RoleEditor, claims.Role)
}

func TestTokenCmd_Errors(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")

	_, err := run(t, "token")
	assert.Error(t, err, "--sub is required")

	_, err = run(t, "token", "--sub", "x", "--role", "ADMIN")
	assert.ErrorIs(t, err, auth.ErrInvalidRole)

	t.Setenv("JWT_SECRET", "")
	_, err = run(t, "token", "--sub", "x")
	assert.EqualError(t, err, "JWT_SECRET is not set")
}

func TestImportCmd_RequiresURL(t *testing.T) {
	_, err := run(t, "import")
	assert.Error(t, err)
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	cmd := newImportCmd()
	cmd.SetOut(&buf)

	printResult(cmd, ingest.Result{Fetched: 3, Created: 1, Existing: 1, Failed: 1})
	assert.Equal(t, "Created 1 books (3 fetched, 1 already present, 1 skipped)\n", buf.String())

	buf.Reset()
	printResult(cmd, ingest.Result{Reason: "Not Found"})
	assert.Equal(t, "Created 0 books: Not Found\n", buf.String())
}
