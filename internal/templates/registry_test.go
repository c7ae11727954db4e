package templates

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hypersite/hypersite/internal/errors"
)

func TestRegistryRegisterGetHas(t *testing.T) {
	r := NewRegistry()
	require.False(t, r.Has("default"))

	r.Register("default", "<html>{{content}}</html>")
	require.True(t, r.Has("default"))

	body, ok := r.Get("default")
	require.True(t, ok)
	require.Equal(t, "<html>{{content}}</html>", body)
}

func TestRegistryNamesKeepInsertionOrder(t *testing.T) {
	r := NewRegistry()
	r.Register("default", "a")
	r.Register("post", "b")
	r.Register("landing", "c")
	require.Equal(t, []string{"default", "post", "landing"}, r.Names())

	// Re-registering replaces the body without moving the name.
	r.Register("post", "b2")
	require.Equal(t, []string{"default", "post", "landing"}, r.Names())
	body, _ := r.Get("post")
	require.Equal(t, "b2", body)
}

func TestRegistryRenderResolvesTags(t *testing.T) {
	r := NewRegistry()
	r.Register("default", "<main>{{content}}</main>")

	out, err := r.Render("default", &Context{Body: "<p>hi</p>"})
	require.NoError(t, err)
	require.Equal(t, "<main><p>hi</p></main>", out)
}

func TestRegistryRenderUnknownNameFails(t *testing.T) {
	r := NewRegistry()
	r.Register("default", "x")
	r.Register("post", "y")

	_, err := r.Render("landing", &Context{})
	require.Error(t, err)
	require.True(t, stderrors.Is(err, ErrTemplateNotFound))
	require.True(t, errors.IsCategory(err, errors.CategoryTemplate))
	require.Contains(t, err.Error(), `"landing"`)
	require.Contains(t, err.Error(), "default, post")
}

func TestRegistryRenderEmptyRegistryListsNone(t *testing.T) {
	r := NewRegistry()
	_, err := r.Render("default", &Context{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "none")
}

func TestLoadDirRegistersTemplateFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "default.html"), []byte("{{content}}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "post.html"), []byte("{{article-header}}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "partials"), 0o755))

	r := NewRegistry()
	require.NoError(t, r.LoadDir(dir))

	require.Equal(t, []string{"default", "post"}, r.Names())
	require.False(t, r.Has("notes"))
	require.False(t, r.Has("partials"))
}

func TestLoadDirMissingDirectoryYieldsEmptyRegistry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.LoadDir(filepath.Join(t.TempDir(), "does-not-exist")))
	require.Empty(t, r.Names())
}
