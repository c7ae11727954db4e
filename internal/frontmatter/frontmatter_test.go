package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	header, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, header)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsHeaderAndBody(t *testing.T) {
	input := []byte("---\nShort-URI: about\n---\n# About\n")

	header, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("Short-URI: about\n"), header)
	require.Equal(t, []byte("# About\n"), body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	input := []byte("---\nShort-URI: about\n# About\n")

	_, _, had, err := Split(input)
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF_SplitsHeaderAndBody(t *testing.T) {
	input := []byte("---\r\nShort-URI: about\r\n---\r\n# About\r\n")

	header, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("Short-URI: about\r\n"), header)
	require.Equal(t, []byte("# About\r\n"), body)
}

func TestSplit_EmptyFrontmatterBlock_HadWithEmptyHeader(t *testing.T) {
	input := []byte("---\n---\n# Title\n")

	header, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, header)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_ClosingDelimiterAtEOF_EmptyBody(t *testing.T) {
	input := []byte("---\nShort-URI: about\n---")

	header, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("Short-URI: about\n"), header)
	require.Empty(t, body)
}

func TestParseFields_ValidYAML_ReturnsMap(t *testing.T) {
	header := []byte("Short-URI: about\nLabels:\n  - go\n")

	fields, err := ParseFields(header)
	require.NoError(t, err)
	require.Equal(t, "about", fields["Short-URI"])
	require.Equal(t, []any{"go"}, fields["Labels"])
}

func TestParseFields_Empty_ReturnsEmptyMap(t *testing.T) {
	fields, err := ParseFields(nil)
	require.NoError(t, err)
	require.Empty(t, fields)
}

func TestParseFields_InvalidYAML_ReturnsError(t *testing.T) {
	_, err := ParseFields([]byte(": not yaml"))
	require.Error(t, err)
}
