package custom

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeQuotebook(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "custom_quotebook.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGetReturnsAuthorAndQuote(t *testing.T) {
	path := writeQuotebook(t, `{"Ursula K. Le Guin": ["The only thing that makes life possible is permanent, intolerable uncertainty."]}`)
	src := New(path)

	available, msg := src.Available()
	require.True(t, available, msg)

	q, err := src.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Ursula K. Le Guin", q.Author)
	require.NotEmpty(t, q.Text)
	require.Empty(t, q.BookTitle)
}

func TestMissingQuotebookIsUnavailableWithHint(t *testing.T) {
	src := New(filepath.Join(t.TempDir(), "missing.json"))
	available, msg := src.Available()
	require.False(t, available)
	require.Contains(t, msg, "JSON format")
}

func TestInvalidJSONIsUnavailable(t *testing.T) {
	src := New(writeQuotebook(t, `{"Author": "not-a-list"}`))
	available, msg := src.Available()
	require.False(t, available)
	require.NotEmpty(t, msg)
}

func TestAuthorWithoutQuotesIsRejected(t *testing.T) {
	src := New(writeQuotebook(t, `{"Author": []}`))
	available, msg := src.Available()
	require.False(t, available)
	require.Contains(t, msg, "no quotes")
}

func TestEmptyQuotebookIsUnavailable(t *testing.T) {
	src := New(writeQuotebook(t, `{}`))
	available, _ := src.Available()
	require.False(t, available)
}

func TestDoesNotRequireInternet(t *testing.T) {
	require.False(t, New("whatever").RequiresInternet())
}
