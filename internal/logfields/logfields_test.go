package logfields

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError_NilError_EmptyValue(t *testing.T) {
	attr := Error(nil)
	require.Equal(t, KeyError, attr.Key)
	require.Equal(t, "", attr.Value.String())
}

func TestError_NonNil_UsesMessage(t *testing.T) {
	attr := Error(errors.New("boom"))
	require.Equal(t, "boom", attr.Value.String())
}

func TestHelpers_UseCanonicalKeys(t *testing.T) {
	require.Equal(t, KeyDocument, Document("about.md").Key)
	require.Equal(t, KeyShortURI, ShortURI("about").Key)
	require.Equal(t, KeyStage, Stage("render").Key)
	require.Equal(t, KeyCount, Count(3).Key)
	require.Equal(t, KeyOutcome, Outcome("success").Key)
}
