// Package stub renders the text templates scaffolded files are made from.
//
// A stub is plain text with {{token}} placeholders. Rendering is a single pass
// over the template: replacement values are never rescanned for placeholders.
package stub

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/onyx-go/scaffold/internal/storage"
)

//go:embed stubs
var defaults embed.FS

// Stub names
const (
	Migration  = "migration"
	Model      = "model"
	Controller = "controller"
	Route      = "route"
	ViewIndex  = "views/index"
	ViewCreate = "views/create"
	ViewEdit   = "views/edit"
	ViewMaster = "views/master"
)

// ErrUnknownStub is returned when neither the override directory nor the
// embedded defaults contain the requested stub
var ErrUnknownStub = errors.New("unknown stub")

// Tokens maps placeholder names (without braces) to their replacement
type Tokens map[string]string

// Render substitutes every {{token}} in template. Placeholders with no entry
// in tokens are left as they are.
func Render(template string, tokens Tokens) string {
	if len(tokens) == 0 {
		return template
	}

	keys := make([]string, 0, len(tokens))
	for k := range tokens {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, "{{"+k+"}}", tokens[k])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// Loader resolves stubs, preferring files in an override directory
type Loader struct {
	files storage.Driver
	dir   string
}

// NewLoader creates a loader. dir is relative to the driver root; an empty
// dir uses only the embedded stubs.
func NewLoader(files storage.Driver, dir string) *Loader {
	return &Loader{files: files, dir: dir}
}

// Load returns the stub text for name
func (l *Loader) Load(ctx context.Context, name string) (string, error) {
	if l.dir != "" && l.files != nil {
		override := path.Join(l.dir, name+".stub")
		exists, err := l.files.Exists(ctx, override)
		if err != nil {
			return "", fmt.Errorf("failed to check stub %s: %w", override, err)
		}
		if exists {
			content, err := l.files.Get(ctx, override)
			if err != nil {
				return "", fmt.Errorf("failed to read stub %s: %w", override, err)
			}
			return string(content), nil
		}
	}

	content, err := defaults.ReadFile(path.Join("stubs", name+".stub"))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownStub, name)
	}
	return string(content), nil
}

// RenderStub loads a stub and renders it in one step
func (l *Loader) RenderStub(ctx context.Context, name string, tokens Tokens) (string, error) {
	template, err := l.Load(ctx, name)
	if err != nil {
		return "", err
	}
	return Render(template, tokens), nil
}
