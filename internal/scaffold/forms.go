package scaffold

import (
	"fmt"
	"strings"

	"github.com/onyx-go/scaffold/internal/migrations"
	"github.com/onyx-go/scaffold/internal/stub"
)

const formIndent = "        "

// columns lists the mass-assignable column names a schema declares.
// Conventions and auto-increment keys are left out; morphs expand to their
// _id and _type pair.
func columns(fields []migrations.Field) []string {
	var names []string
	for _, f := range fields {
		if f.Convention {
			continue
		}
		switch t := strings.ToLower(f.Type); {
		case strings.HasSuffix(t, "increments"):
			continue
		case t == "morphs" || t == "nullablemorphs":
			names = append(names, f.Name+"_id", f.Name+"_type")
		default:
			names = append(names, f.Name)
		}
	}
	return names
}

// fillable renders the body of a model's $fillable array
func fillable(fields []migrations.Field) string {
	names := columns(fields)
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = "'" + name + "'"
	}
	return strings.Join(quoted, ", ")
}

// formFields renders one labelled input per editable column. With a model
// variable the inputs are pre-filled from it (edit form).
func formFields(fields []migrations.Field, model string) string {
	var blocks []string
	for _, f := range fields {
		if f.Convention {
			continue
		}
		t := strings.ToLower(f.Type)
		if strings.HasSuffix(t, "increments") || strings.HasSuffix(t, "morphs") {
			continue
		}
		blocks = append(blocks, formField(f.Name, t, model))
	}
	return strings.Join(blocks, "\n")
}

func formField(name, columnType, model string) string {
	old := fmt.Sprintf("old('%s')", name)
	if model != "" {
		old = fmt.Sprintf("old('%s', $%s->%s)", name, model, name)
	}

	var input string
	switch kind := inputType(name, columnType); kind {
	case "textarea":
		input = fmt.Sprintf(`<textarea name="%s" id="%s">{{ %s }}</textarea>`, name, name, old)
	case "checkbox":
		input = fmt.Sprintf(`<input type="hidden" name="%s" value="0">`+"\n"+formIndent+"    "+
			`<input type="checkbox" name="%s" id="%s" value="1" @if(%s) checked @endif>`, name, name, name, old)
	case "password":
		input = fmt.Sprintf(`<input type="password" name="%s" id="%s">`, name, name)
	default:
		input = fmt.Sprintf(`<input type="%s" name="%s" id="%s" value="{{ %s }}">`, kind, name, name, old)
	}

	return formIndent + "<div>\n" +
		formIndent + "    " + fmt.Sprintf(`<label for="%s">%s</label>`, name, stub.Humanize(name)) + "\n" +
		formIndent + "    " + input + "\n" +
		formIndent + "</div>"
}

func inputType(name, columnType string) string {
	switch columnType {
	case "boolean":
		return "checkbox"
	case "text", "tinytext", "mediumtext", "longtext", "json", "jsonb":
		return "textarea"
	case "decimal", "unsigneddecimal", "float", "double", "year", "foreignid":
		return "number"
	case "date":
		return "date"
	case "datetime", "datetimetz", "timestamp", "timestamptz":
		return "datetime-local"
	case "time", "timetz":
		return "time"
	}

	switch {
	case strings.Contains(columnType, "integer"):
		return "number"
	case strings.Contains(name, "password"):
		return "password"
	case strings.Contains(name, "email"):
		return "email"
	}
	return "text"
}
