package migrations

import (
	"fmt"
	"strings"
)

// Action is the structural change a migration name asks for
type Action int

const (
	ActionUnknown Action = iota
	ActionCreate
	ActionAddColumns
	ActionRemoveColumns
)

// String returns the action name used in logs and history entries
func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionAddColumns:
		return "add"
	case ActionRemoveColumns:
		return "remove"
	default:
		return "unknown"
	}
}

// Intent is the result of parsing a migration name
type Intent struct {
	Name   string
	Table  string
	Action Action
}

// Ambiguous reports whether the name matched none of the known shapes
func (i Intent) Ambiguous() bool {
	return i.Action == ActionUnknown
}

// Modifier is a chained column qualifier such as nullable or default(0)
type Modifier struct {
	Name      string
	Arguments []string
}

// Field is one column declaration of a schema string
type Field struct {
	Name       string
	Type       string
	Arguments  []string
	Modifiers  []Modifier
	Convention bool
}

// Modifier returns the first modifier with the given name
func (f Field) Modifier(name string) (Modifier, bool) {
	for _, m := range f.Modifiers {
		if m.Name == name {
			return m, true
		}
	}
	return Modifier{}, false
}

// String renders the field back into schema notation
func (f Field) String() string {
	if f.Convention {
		return f.Type
	}

	var b strings.Builder
	b.WriteString(f.Name)
	b.WriteString(":")
	b.WriteString(call(f.Type, f.Arguments))
	for _, m := range f.Modifiers {
		b.WriteString(":")
		b.WriteString(call(m.Name, m.Arguments))
	}
	return b.String()
}

func call(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(args, ", "))
}

// Body holds the generated up and down migration bodies
type Body struct {
	Up   string
	Down string
}

// Empty reports whether neither direction has any code
func (b Body) Empty() bool {
	return b.Up == "" && b.Down == ""
}

// Column types, keyed by their lower-cased spelling. Values are the Blueprint
// method names emitted into the migration.
var columnTypes = canonical(
	"bigIncrements",
	"bigInteger",
	"binary",
	"boolean",
	"char",
	"date",
	"dateTime",
	"dateTimeTz",
	"decimal",
	"double",
	"enum",
	"float",
	"foreignId",
	"geometry",
	"increments",
	"integer",
	"ipAddress",
	"json",
	"jsonb",
	"longText",
	"macAddress",
	"mediumIncrements",
	"mediumInteger",
	"mediumText",
	"morphs",
	"nullableMorphs",
	"point",
	"set",
	"smallIncrements",
	"smallInteger",
	"string",
	"text",
	"time",
	"timeTz",
	"timestamp",
	"timestampTz",
	"tinyIncrements",
	"tinyInteger",
	"tinyText",
	"unsignedBigInteger",
	"unsignedDecimal",
	"unsignedInteger",
	"unsignedMediumInteger",
	"unsignedSmallInteger",
	"unsignedTinyInteger",
	"uuid",
	"year",
)

// Table conventions are bare schema tokens. The value is the call that undoes them.
var conventions = map[string]string{
	"id":                 "dropColumn('id')",
	"timestamps":         "dropTimestamps()",
	"timestampsTz":       "dropTimestampsTz()",
	"nullableTimestamps": "dropTimestamps()",
	"softDeletes":        "dropSoftDeletes()",
	"softDeletesTz":      "dropSoftDeletesTz()",
	"rememberToken":      "dropRememberToken()",
}

var conventionNames = canonical(
	"id",
	"timestamps",
	"timestampsTz",
	"nullableTimestamps",
	"softDeletes",
	"softDeletesTz",
	"rememberToken",
)

// Modifiers accepted after a column type
const (
	ModifierForeign  = "foreign"
	ModifierOnDelete = "onDelete"
	ModifierOnUpdate = "onUpdate"
)

var modifierNames = canonical(
	"nullable",
	"default",
	"unsigned",
	"index",
	"unique",
	"primary",
	"comment",
	"after",
	"first",
	"autoIncrement",
	"charset",
	"collation",
	"useCurrent",
	"useCurrentOnUpdate",
	"storedAs",
	"virtualAs",
	ModifierForeign,
	ModifierOnDelete,
	ModifierOnUpdate,
)

// Modifiers and column types that emit broken PHP without an argument
var argumentRequired = map[string]bool{
	"default":        true,
	"comment":        true,
	"after":          true,
	"charset":        true,
	"collation":      true,
	"storedAs":       true,
	"virtualAs":      true,
	ModifierOnDelete: true,
	ModifierOnUpdate: true,
	"enum":           true,
	"set":            true,
}

func canonical(names ...string) map[string]string {
	m := make(map[string]string, len(names))
	for _, name := range names {
		m[strings.ToLower(name)] = name
	}
	return m
}

// ColumnType returns the Blueprint method name for a column type spelled in any case
func ColumnType(name string) (string, bool) {
	t, ok := columnTypes[strings.ToLower(name)]
	return t, ok
}

// IsConvention reports whether name is a whole-table convention token
func IsConvention(name string) bool {
	_, ok := conventionNames[strings.ToLower(name)]
	return ok
}
