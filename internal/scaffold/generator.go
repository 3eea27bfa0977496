// Package scaffold writes Laravel migrations and the resources built around
// them (controller, model, views and route) into a project tree.
package scaffold

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/onyx-go/scaffold/internal/history"
	"github.com/onyx-go/scaffold/internal/logging"
	"github.com/onyx-go/scaffold/internal/migrations"
	"github.com/onyx-go/scaffold/internal/storage"
	"github.com/onyx-go/scaffold/internal/stub"
)

var (
	// ErrMigrationExists is returned when a migration with the same name is
	// already present, whatever its timestamp
	ErrMigrationExists = errors.New("migration already exists")
	// ErrArtifactExists marks a resource file left untouched because it exists
	ErrArtifactExists = errors.New("file already exists")
	// ErrNoTable is returned for table-derived artifacts when the migration
	// name did not reveal a table
	ErrNoTable = errors.New("no table could be derived from the migration name")
	// ErrEmptyName is returned when the migration name normalizes to nothing
	ErrEmptyName = errors.New("migration name is empty")
)

// Status describes what happened to one artifact
type Status int

const (
	StatusCreated Status = iota
	StatusAppended
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusAppended:
		return "appended"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Result reports one generated artifact. Content holds what was (or in
// pretend mode would have been) written.
type Result struct {
	Kind    string
	Path    string
	Status  Status
	Content string
	Pretend bool
	Err     error
}

// Config configures a Generator
type Config struct {
	Namespace string
	AppPath   string
	StubPath  string
	Pretend   bool
	Logger    logging.Logger
	History   history.Store
	Clock     func() time.Time
}

// Generator renders stubs and writes them through a storage driver
type Generator struct {
	files     storage.Driver
	stubs     *stub.Loader
	logger    logging.Logger
	history   history.Store
	now       func() time.Time
	namespace string
	appPath   string
	pretend   bool
}

// NewGenerator creates a generator writing into files. A nil History
// disables the ledger.
func NewGenerator(files storage.Driver, config Config) *Generator {
	g := &Generator{
		files:     files,
		stubs:     stub.NewLoader(files, config.StubPath),
		logger:    config.Logger,
		history:   config.History,
		now:       config.Clock,
		namespace: config.Namespace,
		appPath:   strings.Trim(config.AppPath, "/"),
		pretend:   config.Pretend,
	}

	if g.logger == nil {
		g.logger = logging.NewNullLogger()
	}
	if g.now == nil {
		g.now = time.Now
	}
	if g.namespace == "" {
		g.namespace = "App"
	}
	if g.appPath == "" {
		g.appPath = "app"
	}

	return g
}

// Artifacts selects the resources generated next to a migration
type Artifacts struct {
	Model      bool
	Controller bool
	Views      bool
	Route      bool
}

// Scaffold generates a migration and the selected resources for its table.
// The schema is validated before anything is written. When the name reveals
// no table only the migration is generated.
func (g *Generator) Scaffold(ctx context.Context, name, schema string, artifacts Artifacts) ([]Result, error) {
	migration, err := g.Migration(ctx, name, schema)
	if err != nil {
		return nil, err
	}

	results := []Result{migration.Result}
	intent := migration.Intent

	if intent.Table == "" {
		if artifacts != (Artifacts{}) {
			g.logger.WarnContext(ctx, "skipping model, controller, views and route without a table", map[string]interface{}{
				"name": intent.Name,
			})
		}
		return results, nil
	}

	if artifacts.Model {
		result, err := g.Model(ctx, intent, migration.Fields)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	if artifacts.Controller {
		result, err := g.Controller(ctx, intent)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	if artifacts.Views {
		views, err := g.Views(ctx, intent, migration.Fields)
		if err != nil {
			return results, err
		}
		results = append(results, views...)
	}

	if artifacts.Route {
		result, err := g.Route(ctx, intent)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	return results, nil
}

// create writes a new file unless one already exists at path
func (g *Generator) create(ctx context.Context, kind, path, content string, intent migrations.Intent) (Result, error) {
	result := Result{Kind: kind, Path: path, Content: content, Pretend: g.pretend}

	exists, err := g.files.Exists(ctx, path)
	if err != nil {
		return result, fmt.Errorf("failed to check %s: %w", path, err)
	}
	if exists {
		result.Status = StatusSkipped
		result.Err = fmt.Errorf("%w: %s", ErrArtifactExists, path)
		g.logger.WarnContext(ctx, "file exists, skipping", map[string]interface{}{"kind": kind, "path": path})
		return result, nil
	}

	result.Status = StatusCreated
	return result, g.write(ctx, &result, intent)
}

func (g *Generator) write(ctx context.Context, result *Result, intent migrations.Intent) error {
	fields := map[string]interface{}{"kind": result.Kind, "path": result.Path}

	if g.pretend {
		g.logger.InfoContext(ctx, "pretend: would write file", fields)
		return nil
	}

	if err := g.makeDirectory(ctx, path.Dir(result.Path)); err != nil {
		return err
	}
	if err := g.files.Put(ctx, result.Path, []byte(result.Content)); err != nil {
		return fmt.Errorf("failed to write %s: %w", result.Path, err)
	}
	g.logger.InfoContext(ctx, "wrote file", fields)

	g.record(ctx, *result, intent)
	return nil
}

// makeDirectory creates dir unless it already exists
func (g *Generator) makeDirectory(ctx context.Context, dir string) error {
	if dir == "." || dir == "" {
		return nil
	}

	isDir, err := g.files.IsDirectory(ctx, dir)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", dir, err)
	}
	if isDir {
		return nil
	}

	if err := g.files.MakeDirectory(ctx, dir); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	g.logger.DebugContext(ctx, "created directory", map[string]interface{}{"path": dir})
	return nil
}

// record adds a written file to the ledger. The file is already on disk, so
// a ledger failure is logged rather than returned.
func (g *Generator) record(ctx context.Context, result Result, intent migrations.Intent) {
	if g.history == nil {
		return
	}

	_, err := g.history.Record(ctx, history.Entry{
		Kind:      result.Kind,
		Name:      intent.Name,
		Table:     intent.Table,
		Action:    intent.Action.String(),
		Path:      result.Path,
		CreatedAt: g.now(),
	})
	if err != nil {
		g.logger.ErrorContext(ctx, "failed to record history", map[string]interface{}{
			"path":  result.Path,
			"error": err.Error(),
		})
	}
}

// trimTrailingSpace strips whitespace left at line ends by empty placeholders
func trimTrailingSpace(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
