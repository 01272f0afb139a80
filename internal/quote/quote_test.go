package quote

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAuthorDisplay(t *testing.T) {
	require.Equal(t, "Frank Herbert", Quote{Text: "x", Author: "Frank Herbert"}.AuthorDisplay())
	require.Equal(t, "Unknown", Quote{Text: "x"}.AuthorDisplay())
}
