package scaffold

import (
	"context"
	"fmt"
	"path"
	"regexp"

	"github.com/onyx-go/scaffold/internal/history"
	"github.com/onyx-go/scaffold/internal/migrations"
	"github.com/onyx-go/scaffold/internal/stub"
)

const (
	migrationsDir   = "database/migrations"
	timestampFormat = "2006_01_02_150405"
)

var migrationFilePattern = regexp.MustCompile(`^\d{4}_\d{2}_\d{2}_\d{6}_(.+)\.php$`)

// Migration is a generated migration together with what it was built from
type Migration struct {
	Intent migrations.Intent
	Fields []migrations.Field
	Body   migrations.Body
	Result Result
}

// Migration parses name and schema and writes the migration file. A schema
// syntax error is returned as *migrations.SchemaError before anything is
// written.
func (g *Generator) Migration(ctx context.Context, name, schema string) (*Migration, error) {
	intent := migrations.ParseName(name)
	if intent.Name == "" {
		return nil, ErrEmptyName
	}

	fields, err := migrations.ParseSchema(schema)
	if err != nil {
		return nil, err
	}

	logFields := map[string]interface{}{
		"name":   intent.Name,
		"table":  intent.Table,
		"action": intent.Action.String(),
		"fields": len(fields),
	}

	if intent.Ambiguous() {
		g.logger.WarnContext(ctx, "could not derive a table from the migration name; up() and down() are left empty", logFields)
	}
	if intent.Action == migrations.ActionRemoveColumns && len(fields) == 0 {
		g.logger.WarnContext(ctx, "no schema given for removed columns; up() and down() are left empty", logFields)
	}

	existing, err := g.findMigration(ctx, intent.Name)
	if err != nil {
		return nil, err
	}
	if existing != "" {
		return nil, fmt.Errorf("%w: %s", ErrMigrationExists, existing)
	}

	body := migrations.BuildSyntax(fields, intent)
	g.logger.DebugContext(ctx, "built migration body", logFields)

	tokens := stub.Tokens{
		"class":       stub.PascalCase(intent.Name),
		"table":       intent.Table,
		"schema_up":   body.Up,
		"schema_down": body.Down,
	}
	content, err := g.stubs.RenderStub(ctx, stub.Migration, tokens)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("%s_%s.php", g.now().Format(timestampFormat), intent.Name)
	result := Result{
		Kind:    history.KindMigration,
		Path:    path.Join(migrationsDir, filename),
		Status:  StatusCreated,
		Content: trimTrailingSpace(content),
		Pretend: g.pretend,
	}
	if err := g.write(ctx, &result, intent); err != nil {
		return nil, err
	}

	return &Migration{Intent: intent, Fields: fields, Body: body, Result: result}, nil
}

// findMigration returns the path of a migration already named name
func (g *Generator) findMigration(ctx context.Context, name string) (string, error) {
	files, err := g.files.Files(ctx, migrationsDir)
	if err != nil {
		return "", fmt.Errorf("failed to list migrations: %w", err)
	}

	for _, f := range files {
		if m := migrationFilePattern.FindStringSubmatch(f.Name); m != nil && m[1] == name {
			return path.Join(migrationsDir, f.Name), nil
		}
	}
	return "", nil
}
