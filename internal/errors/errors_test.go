package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildError_Error_WithAndWithoutCause(t *testing.T) {
	plain := New(CategoryValidation, SeverityFatal, "duplicate short-uri")
	require.Equal(t, "validation (fatal): duplicate short-uri", plain.Error())

	cause := stderrors.New("underlying")
	wrapped := Wrap(cause, CategoryFileSystem, SeverityFatal, "write failed")
	require.Contains(t, wrapped.Error(), "write failed")
	require.Contains(t, wrapped.Error(), "underlying")
}

func TestBuildError_Unwrap_ExposesCause(t *testing.T) {
	cause := stderrors.New("root cause")
	wrapped := Wrap(cause, CategoryContent, SeverityError, "parse failed")
	require.True(t, stderrors.Is(wrapped, cause))
}

func TestValidation_CarriesDocumentAndFieldContext(t *testing.T) {
	err := Validation("blog/post.md", "Short-URI", "contains invalid characters")
	require.Equal(t, CategoryValidation, err.Category)
	require.Equal(t, SeverityFatal, err.Severity)
	require.Equal(t, "blog/post.md", err.Context["document"])
	require.Equal(t, "Short-URI", err.Context["field"])
	require.Contains(t, err.Error(), "Short-URI")
	require.Contains(t, err.Error(), "blog/post.md")
}

func TestIsCategory_MatchesOnlyBuildErrors(t *testing.T) {
	err := New(CategoryTemplate, SeverityFatal, "template missing")
	require.True(t, IsCategory(err, CategoryTemplate))
	require.False(t, IsCategory(err, CategoryConfig))
	require.False(t, IsCategory(stderrors.New("plain"), CategoryTemplate))
}

func TestGetCategory_DefaultsToInternal(t *testing.T) {
	require.Equal(t, CategoryInternal, GetCategory(stderrors.New("plain")))
	require.Equal(t, CategoryHierarchy, GetCategory(New(CategoryHierarchy, SeverityFatal, "cycle")))
}

func TestClassificationWalksWrappedChains(t *testing.T) {
	inner := New(CategoryValidation, SeverityFatal, "bad field")
	outer := stderrors.Join(stderrors.New("context"), inner)

	require.Equal(t, CategoryValidation, GetCategory(outer))
	require.True(t, IsCategory(outer, CategoryValidation))
	require.True(t, IsFatal(outer))
}

func TestIsFatal_SeverityDriven(t *testing.T) {
	require.True(t, IsFatal(New(CategoryValidation, SeverityFatal, "x")))
	require.False(t, IsFatal(New(CategoryRender, SeverityWarning, "x")))
	require.True(t, IsFatal(stderrors.New("unknown")))
	require.False(t, IsFatal(nil))
}
