package kindle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeSecrets(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kindle_secrets.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCredentials(t *testing.T) {
	path := writeSecrets(t, `{"username": "me@example.com", "password": "hunter2"}`)

	creds, err := LoadCredentials(path)
	require.NoError(t, err)
	require.Equal(t, "me@example.com", creds.Username)
	require.Equal(t, "hunter2", creds.Password)
}

func TestLoadCredentialsTrimsWhitespace(t *testing.T) {
	path := writeSecrets(t, `{"username": "  me@example.com ", "password": " hunter2\n"}`)

	creds, err := LoadCredentials(path)
	require.NoError(t, err)
	require.Equal(t, "me@example.com", creds.Username)
	require.Equal(t, "hunter2", creds.Password)
}

func TestLoadCredentialsNotFound(t *testing.T) {
	_, err := LoadCredentials(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, ErrCredentialsNotFound)
	// The error must tell the operator what to create.
	require.Contains(t, err.Error(), `"username"`)
	require.Contains(t, err.Error(), `"password"`)
}

func TestLoadCredentialsMalformed(t *testing.T) {
	path := writeSecrets(t, `{username: oops`)
	_, err := LoadCredentials(path)
	require.ErrorIs(t, err, ErrCredentialsMalformed)
}

func TestLoadCredentialsEmptyFields(t *testing.T) {
	cases := []string{
		`{"username": "", "password": "hunter2"}`,
		`{"username": "me@example.com", "password": ""}`,
		`{"username": "   ", "password": "hunter2"}`,
		`{}`,
	}
	for _, content := range cases {
		path := writeSecrets(t, content)
		_, err := LoadCredentials(path)
		require.ErrorIs(t, err, ErrCredentialsInvalid, "content %s", content)
	}
}
