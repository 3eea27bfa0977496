package migrations

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jinzhu/inflection"
)

// Indentation of the migration stub's up() and down() bodies
const (
	blockIndent     = "        "
	statementIndent = "            "
)

var numberPattern = regexp.MustCompile(`^-?(0|[1-9]\d*)(\.\d+)?$`)

// BuildSyntax generates the up and down bodies for the given fields and intent.
// The output depends only on its arguments.
func BuildSyntax(fields []Field, intent Intent) Body {
	switch intent.Action {
	case ActionCreate:
		return Body{
			Up:   block("create", intent.Table, addStatements(fields)),
			Down: fmt.Sprintf("Schema::drop('%s');", intent.Table),
		}
	case ActionAddColumns:
		return Body{
			Up:   block("table", intent.Table, addStatements(fields)),
			Down: block("table", intent.Table, dropStatements(fields)),
		}
	case ActionRemoveColumns:
		// Without a schema the dropped columns cannot be restored in down().
		if len(fields) == 0 {
			return Body{}
		}
		return Body{
			Up:   block("table", intent.Table, dropStatements(fields)),
			Down: block("table", intent.Table, addStatements(fields)),
		}
	default:
		return Body{}
	}
}

func block(verb, table string, statements []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Schema::%s('%s', function (Blueprint $table) {\n", verb, table)
	for _, s := range statements {
		b.WriteString(statementIndent)
		b.WriteString(s)
		b.WriteString(";\n")
	}
	b.WriteString(blockIndent)
	b.WriteString("});")
	return b.String()
}

func addStatements(fields []Field) []string {
	statements := make([]string, 0, len(fields))
	for _, f := range fields {
		statements = append(statements, ColumnStatement(f))
		if fk, ok := foreignStatement(f); ok {
			statements = append(statements, fk)
		}
	}
	return statements
}

// dropStatements undoes addStatements, last field first
func dropStatements(fields []Field) []string {
	statements := make([]string, 0, len(fields))
	for i := len(fields) - 1; i >= 0; i-- {
		statements = append(statements, DropStatements(fields[i])...)
	}
	return statements
}

// ColumnStatement renders the Blueprint call declaring a field, without the
// trailing semicolon
func ColumnStatement(f Field) string {
	if f.Convention {
		return fmt.Sprintf("$table->%s()", f.Type)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "$table->%s(%s", f.Type, quote(f.Name))
	if len(f.Arguments) > 0 {
		b.WriteString(", ")
		if f.Type == "enum" || f.Type == "set" {
			b.WriteString("[" + renderArguments(f.Arguments) + "]")
		} else {
			b.WriteString(renderArguments(f.Arguments))
		}
	}
	b.WriteString(")")

	for _, m := range f.Modifiers {
		switch m.Name {
		case ModifierForeign, ModifierOnDelete, ModifierOnUpdate:
			continue
		}
		fmt.Fprintf(&b, "->%s(%s)", m.Name, renderArguments(m.Arguments))
	}
	return b.String()
}

// DropStatements renders the calls that remove a field, foreign key first
func DropStatements(f Field) []string {
	if f.Convention {
		return []string{"$table->" + conventions[f.Type]}
	}

	var statements []string
	if _, ok := f.Modifier(ModifierForeign); ok {
		statements = append(statements, fmt.Sprintf("$table->dropForeign([%s])", quote(f.Name)))
	}

	switch f.Type {
	case "morphs", "nullableMorphs":
		statements = append(statements, fmt.Sprintf("$table->dropMorphs(%s)", quote(f.Name)))
	default:
		statements = append(statements, fmt.Sprintf("$table->dropColumn(%s)", quote(f.Name)))
	}
	return statements
}

func foreignStatement(f Field) (string, bool) {
	fk, ok := f.Modifier(ModifierForeign)
	if !ok {
		return "", false
	}

	on := inflection.Plural(strings.TrimSuffix(f.Name, "_id"))
	references := "id"
	if len(fk.Arguments) > 0 {
		on = unquote(fk.Arguments[0])
	}
	if len(fk.Arguments) > 1 {
		references = unquote(fk.Arguments[1])
	}

	var b strings.Builder
	fmt.Fprintf(&b, "$table->foreign(%s)->references(%s)->on(%s)", quote(f.Name), quote(references), quote(on))
	for _, m := range f.Modifiers {
		if m.Name == ModifierOnDelete || m.Name == ModifierOnUpdate {
			fmt.Fprintf(&b, "->%s(%s)", m.Name, renderArguments(m.Arguments))
		}
	}
	return b.String(), true
}

func renderArguments(args []string) string {
	rendered := make([]string, 0, len(args))
	for _, arg := range args {
		rendered = append(rendered, RenderArgument(arg))
	}
	return strings.Join(rendered, ", ")
}

// RenderArgument passes numbers, booleans, null and quoted literals through
// and single-quotes everything else
func RenderArgument(arg string) string {
	switch {
	case numberPattern.MatchString(arg):
		return arg
	case isKeyword(arg):
		return strings.ToLower(arg)
	case isQuoted(arg):
		return arg
	default:
		return quote(arg)
	}
}

func isKeyword(arg string) bool {
	switch strings.ToLower(arg) {
	case "true", "false", "null":
		return true
	}
	return false
}

func isQuoted(arg string) bool {
	if len(arg) < 2 {
		return false
	}
	first, last := arg[0], arg[len(arg)-1]
	return (first == '\'' || first == '"') && first == last
}

func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

func unquote(s string) string {
	if isQuoted(s) {
		return s[1 : len(s)-1]
	}
	return s
}
