package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/onyx-go/scaffold/internal/config"
	"github.com/onyx-go/scaffold/internal/logging"
	"github.com/onyx-go/scaffold/internal/migrations"
	"github.com/onyx-go/scaffold/internal/scaffold"
)

// parseArgs parses flags that may appear before or after positional
// arguments and returns the positional ones
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func newFlagSet(name string, env *Env) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	return fs
}

// requireOne returns the single positional argument a command takes
func requireOne(positional []string, what string) (string, error) {
	switch len(positional) {
	case 0:
		return "", fmt.Errorf("%s is required", what)
	case 1:
		return positional[0], nil
	default:
		return "", fmt.Errorf("expected one %s, got %d arguments", what, len(positional))
	}
}

func withCommand(ctx context.Context, name string, pretend bool) context.Context {
	return logging.ContextWithFields(ctx, map[string]interface{}{"command": name, "pretend": pretend})
}

func makeMigrationSchema(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet("make:migration:schema", env)
	schema := fs.String("schema", "", "comma-separated field list")
	model := fs.Bool("model", true, "create a model")
	controller := fs.Bool("controller", true, "create a resource controller")
	views := fs.Bool("views", false, "create index, create and edit views")
	route := fs.Bool("route", false, "register a resource route")
	pretend := fs.Bool("pretend", false, "print the files instead of writing them")

	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	name, err := requireOne(positional, "migration name")
	if err != nil {
		return err
	}

	ctx = withCommand(ctx, fs.Name(), *pretend)
	generator, err := env.Generator(ctx, *pretend)
	if err != nil {
		return err
	}

	results, err := generator.Scaffold(ctx, name, *schema, scaffold.Artifacts{
		Model:      *model,
		Controller: *controller,
		Views:      *views,
		Route:      *route,
	})
	printResults(env.Stdout, results)
	return err
}

func makeMigration(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet("make:migration", env)
	schema := fs.String("schema", "", "comma-separated field list")
	pretend := fs.Bool("pretend", false, "print the file instead of writing it")

	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	name, err := requireOne(positional, "migration name")
	if err != nil {
		return err
	}

	ctx = withCommand(ctx, fs.Name(), *pretend)
	generator, err := env.Generator(ctx, *pretend)
	if err != nil {
		return err
	}

	migration, err := generator.Migration(ctx, name, *schema)
	if err != nil {
		return err
	}
	printResults(env.Stdout, []scaffold.Result{migration.Result})
	return nil
}

// tableIntent treats a bare table name as the table of a create migration
func tableIntent(table string) (migrations.Intent, error) {
	normalized := migrations.NormalizeName(table)
	if normalized == "" {
		return migrations.Intent{}, errors.New("table name is required")
	}
	return migrations.ParseName("create_" + normalized + "_table"), nil
}

// tableCommand parses "<table> [--schema] [--pretend]" and builds a generator
func tableCommand(ctx context.Context, env *Env, name string, args []string, withSchema bool) (context.Context, *scaffold.Generator, migrations.Intent, []migrations.Field, error) {
	fs := newFlagSet(name, env)
	var schema *string
	if withSchema {
		schema = fs.String("schema", "", "comma-separated field list")
	}
	pretend := fs.Bool("pretend", false, "print the files instead of writing them")

	positional, err := parseArgs(fs, args)
	if err != nil {
		return ctx, nil, migrations.Intent{}, nil, err
	}
	table, err := requireOne(positional, "table name")
	if err != nil {
		return ctx, nil, migrations.Intent{}, nil, err
	}
	intent, err := tableIntent(table)
	if err != nil {
		return ctx, nil, intent, nil, err
	}

	var fields []migrations.Field
	if schema != nil {
		if fields, err = migrations.ParseSchema(*schema); err != nil {
			return ctx, nil, intent, nil, err
		}
	}

	ctx = withCommand(ctx, name, *pretend)
	generator, err := env.Generator(ctx, *pretend)
	return ctx, generator, intent, fields, err
}

func makeController(ctx context.Context, env *Env, args []string) error {
	ctx, generator, intent, _, err := tableCommand(ctx, env, "make:controller", args, false)
	if err != nil {
		return err
	}

	result, err := generator.Controller(ctx, intent)
	if err != nil {
		return err
	}
	printResults(env.Stdout, []scaffold.Result{result})
	return nil
}

func makeModel(ctx context.Context, env *Env, args []string) error {
	ctx, generator, intent, fields, err := tableCommand(ctx, env, "make:model", args, true)
	if err != nil {
		return err
	}

	result, err := generator.Model(ctx, intent, fields)
	if err != nil {
		return err
	}
	printResults(env.Stdout, []scaffold.Result{result})
	return nil
}

func makeViews(ctx context.Context, env *Env, args []string) error {
	ctx, generator, intent, fields, err := tableCommand(ctx, env, "make:views", args, true)
	if err != nil {
		return err
	}

	results, err := generator.Views(ctx, intent, fields)
	printResults(env.Stdout, results)
	return err
}

func showHistory(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet("history", env)
	limit := fs.Int("limit", -1, "number of entries to show; 0 shows all (default scaffold_history_limit)")

	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("history takes no arguments")
	}

	store, err := env.History(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		return errors.New("history is disabled (SCAFFOLD_HISTORY=false)")
	}
	if *limit < 0 {
		settings, err := env.Settings()
		if err != nil {
			return err
		}
		*limit = settings.HistoryLimit
	}

	entries, err := store.List(ctx, *limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(env.Stdout, "No generated files recorded.")
		return nil
	}

	w := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CREATED\tKIND\tACTION\tTABLE\tPATH")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.CreatedAt.Format("2006-01-02 15:04:05"), e.Kind, e.Action, e.Table, e.Path)
	}
	return w.Flush()
}

func showConfig(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet("config", env)

	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("expected at most one configuration key, got %d arguments", len(positional))
	}

	repo, err := env.Config()
	if err != nil {
		return err
	}

	if len(positional) == 1 {
		key := config.NormalizeKey(positional[0])
		if !strings.HasPrefix(key, "scaffold_") {
			key = "scaffold_" + key
		}
		if !repo.Has(key) {
			return fmt.Errorf("configuration key %s is not set", key)
		}
		fmt.Fprintln(env.Stdout, repo.GetString(key))
		return nil
	}

	all := repo.All()
	keys := make([]string, 0, len(all))
	for key := range all {
		if strings.HasPrefix(key, "scaffold_") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)
	for _, key := range keys {
		fmt.Fprintf(w, "%s\t%v\n", key, all[key])
	}
	return w.Flush()
}

func printResults(w io.Writer, results []scaffold.Result) {
	for _, r := range results {
		switch {
		case r.Status == scaffold.StatusSkipped:
			fmt.Fprintf(w, "%-9s %s (%v)\n", r.Status, r.Path, r.Err)
		case r.Pretend:
			fmt.Fprintf(w, "%-9s %s\n", "pretend", r.Path)
			fmt.Fprintln(w, r.Content)
		default:
			fmt.Fprintf(w, "%-9s %s\n", r.Status, r.Path)
		}
	}
}
