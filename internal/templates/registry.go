package templates

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hypersite/hypersite/internal/errors"
)

// ErrTemplateNotFound is wrapped into the lookup error Render returns for
// an unregistered template name.
var ErrTemplateNotFound = stderrors.New("template not found")

// templateExt is the file extension LoadDir treats as a template.
const templateExt = ".html"

// Registry holds named template bodies and renders them through the tag
// resolver. Names preserves registration order.
type Registry struct {
	bodies map[string]string
	order  []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{bodies: make(map[string]string)}
}

// Register stores a template body under name. Re-registering a name
// replaces the body but keeps its original position in Names.
func (r *Registry) Register(name, body string) {
	if _, exists := r.bodies[name]; !exists {
		r.order = append(r.order, name)
	}
	r.bodies[name] = body
}

// Get returns the body registered under name.
func (r *Registry) Get(name string) (string, bool) {
	body, ok := r.bodies[name]
	return body, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.bodies[name]
	return ok
}

// Names lists registered template names in insertion order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Render resolves the named template against ctx. An unregistered name is a
// fatal lookup error naming the template and listing what is available.
func (r *Registry) Render(name string, ctx *Context) (string, error) {
	body, ok := r.bodies[name]
	if !ok {
		available := "none"
		if len(r.order) > 0 {
			available = strings.Join(r.Names(), ", ")
		}
		return "", errors.Wrap(ErrTemplateNotFound, errors.CategoryTemplate, errors.SeverityFatal,
			fmt.Sprintf("template %q is not registered (available: %s)", name, available))
	}
	return Process(body, ctx), nil
}

// LoadDir registers every *.html file in dir under its base name. Other
// files are ignored. A missing directory yields an empty registry rather
// than an error.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal,
			fmt.Sprintf("reading template directory %s", dir))
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != templateExt {
			continue
		}
		body, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return errors.Wrap(err, errors.CategoryFileSystem, errors.SeverityFatal,
				fmt.Sprintf("reading template %s", entry.Name()))
		}
		r.Register(strings.TrimSuffix(entry.Name(), templateExt), string(body))
	}
	return nil
}
