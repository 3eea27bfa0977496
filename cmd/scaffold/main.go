package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/onyx-go/scaffold/internal/migrations"
)

type Command struct {
	Name        string
	Description string
	Usage       string
	Action      func(ctx context.Context, env *Env, args []string) error
}

var commands = []Command{
	{
		Name:        "make:migration:schema",
		Description: "Create a migration from a schema, with model, controller, views and route",
		Usage:       "make:migration:schema <name> [--schema=...] [--model=true] [--controller=true] [--views=false] [--route=false] [--pretend]",
		Action:      makeMigrationSchema,
	},
	{
		Name:        "make:migration",
		Description: "Create a migration only",
		Usage:       "make:migration <name> [--schema=...] [--pretend]",
		Action:      makeMigration,
	},
	{
		Name:        "make:controller",
		Description: "Create a resource controller for a table",
		Usage:       "make:controller <table> [--pretend]",
		Action:      makeController,
	},
	{
		Name:        "make:model",
		Description: "Create a model for a table",
		Usage:       "make:model <table> [--schema=...] [--pretend]",
		Action:      makeModel,
	},
	{
		Name:        "make:views",
		Description: "Create index, create and edit views for a table",
		Usage:       "make:views <table> [--schema=...] [--pretend]",
		Action:      makeViews,
	},
	{
		Name:        "history",
		Description: "List generated files",
		Usage:       "history [--limit=N]",
		Action:      showHistory,
	},
	{
		Name:        "config",
		Description: "Show the resolved configuration, or one key of it",
		Usage:       "config [key]",
		Action:      showConfig,
	},
}

// Exit codes
const (
	exitOK             = 0
	exitError          = 1
	exitUnknownCommand = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitError)
	}

	os.Exit(run(ctx, dir, os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command against the project in dir and returns the
// process exit code
func run(ctx context.Context, dir string, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		showHelp(stdout)
		return exitOK
	}

	commandName := args[0]
	for _, cmd := range commands {
		if cmd.Name != commandName {
			continue
		}

		env := &Env{Dir: dir, Stdout: stdout, Stderr: stderr}
		defer env.Close()

		err := cmd.Action(ctx, env, args[1:])
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stdout, "Usage: scaffold %s\n", cmd.Usage)
			return exitOK
		}
		if err != nil {
			printError(stderr, err)
			return exitError
		}
		return exitOK
	}

	fmt.Fprintf(stderr, "Unknown command: %s\n\n", commandName)
	showHelp(stderr)
	return exitUnknownCommand
}

func showHelp(w io.Writer) {
	fmt.Fprintln(w, "Laravel migration and resource scaffolding")
	fmt.Fprintln(w, "\nUsage:")
	fmt.Fprintln(w, "  scaffold [command] [arguments]")
	fmt.Fprintln(w, "\nAvailable commands:")

	width := 0
	for _, cmd := range commands {
		if len(cmd.Name) > width {
			width = len(cmd.Name)
		}
	}
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-*s  %s\n", width, cmd.Name, cmd.Description)
	}
	fmt.Fprintf(w, "  %-*s  %s\n", width, "help", "Show this help message")

	fmt.Fprintln(w, "\nSchema syntax:")
	fmt.Fprintln(w, `  --schema="name:string, email:string:unique, age:integer:nullable, user_id:unsignedInteger:foreign, timestamps"`)

	fmt.Fprintln(w, "\nUsage per command:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  scaffold %s\n", cmd.Usage)
	}
}

func printError(w io.Writer, err error) {
	var schemaErr *migrations.SchemaError
	if errors.As(err, &schemaErr) {
		fmt.Fprintln(w, "Error: invalid schema")
		for _, field := range schemaErr.Fields {
			fmt.Fprintf(w, "  - %s\n", field.Error())
		}
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
