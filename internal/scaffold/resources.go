package scaffold

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/onyx-go/scaffold/internal/history"
	"github.com/onyx-go/scaffold/internal/migrations"
	"github.com/onyx-go/scaffold/internal/storage"
	"github.com/onyx-go/scaffold/internal/stub"
)

const (
	viewsDir   = "resources/views"
	routesFile = "routes/web.php"
)

func (g *Generator) naming(intent migrations.Intent) (stub.Naming, stub.Tokens, error) {
	if intent.Table == "" {
		return stub.Naming{}, nil, fmt.Errorf("%w: %q", ErrNoTable, intent.Name)
	}

	naming := stub.NamingFor(intent.Table)
	tokens := naming.Tokens()
	tokens["namespace"] = g.namespace
	return naming, tokens, nil
}

// Controller writes a resource controller for the intent's table
func (g *Generator) Controller(ctx context.Context, intent migrations.Intent) (Result, error) {
	naming, tokens, err := g.naming(intent)
	if err != nil {
		return Result{}, err
	}

	content, err := g.stubs.RenderStub(ctx, stub.Controller, tokens)
	if err != nil {
		return Result{}, err
	}

	target := path.Join(g.appPath, "Http", "Controllers", naming.Class+"Controller.php")
	return g.create(ctx, history.KindController, target, content, intent)
}

// Model writes an Eloquent model whose $fillable lists the schema's columns
func (g *Generator) Model(ctx context.Context, intent migrations.Intent, fields []migrations.Field) (Result, error) {
	naming, tokens, err := g.naming(intent)
	if err != nil {
		return Result{}, err
	}
	tokens["fillable"] = fillable(fields)

	content, err := g.stubs.RenderStub(ctx, stub.Model, tokens)
	if err != nil {
		return Result{}, err
	}

	target := path.Join(g.appPath, naming.Class+".php")
	return g.create(ctx, history.KindModel, target, content, intent)
}

// Views writes index, create and edit Blade views for the table, plus the
// shared master layout when the project has none
func (g *Generator) Views(ctx context.Context, intent migrations.Intent, fields []migrations.Field) ([]Result, error) {
	naming, tokens, err := g.naming(intent)
	if err != nil {
		return nil, err
	}

	views := []struct {
		stub   string
		target string
		form   string
	}{
		{stub: stub.ViewIndex, target: path.Join(viewsDir, naming.Plural, "index.blade.php")},
		{stub: stub.ViewCreate, target: path.Join(viewsDir, naming.Plural, "create.blade.php"), form: formFields(fields, "")},
		{stub: stub.ViewEdit, target: path.Join(viewsDir, naming.Plural, "edit.blade.php"), form: formFields(fields, naming.Singular)},
		{stub: stub.ViewMaster, target: path.Join(viewsDir, "master.blade.php")},
	}

	var results []Result
	for _, view := range views {
		tokens["form_fields"] = view.form

		content, err := g.stubs.RenderStub(ctx, view.stub, tokens)
		if err != nil {
			return results, err
		}

		result, err := g.create(ctx, history.KindView, view.target, trimTrailingSpace(content), intent)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}

	return results, nil
}

// Route appends a resource route for the table to routes/web.php. The file
// is created when missing; an identical route is never added twice.
func (g *Generator) Route(ctx context.Context, intent migrations.Intent) (Result, error) {
	_, tokens, err := g.naming(intent)
	if err != nil {
		return Result{}, err
	}

	rendered, err := g.stubs.RenderStub(ctx, stub.Route, tokens)
	if err != nil {
		return Result{}, err
	}
	line := strings.TrimSpace(rendered)

	result := Result{Kind: history.KindRoute, Path: routesFile, Pretend: g.pretend}

	current, err := g.files.Get(ctx, routesFile)
	switch {
	case errors.Is(err, storage.ErrFileNotFound):
		result.Status = StatusCreated
		result.Content = "<?php\n\n" + line + "\n"
	case err != nil:
		return result, fmt.Errorf("failed to read %s: %w", routesFile, err)
	case strings.Contains(string(current), line):
		result.Status = StatusSkipped
		result.Content = string(current)
		result.Err = fmt.Errorf("%w: route for %s in %s", ErrArtifactExists, intent.Table, routesFile)
		g.logger.WarnContext(ctx, "route already registered, skipping", map[string]interface{}{"table": intent.Table})
		return result, nil
	default:
		content := string(current)
		if content != "" && !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		result.Status = StatusAppended
		result.Content = content + "\n" + line + "\n"
	}

	return result, g.write(ctx, &result, intent)
}
