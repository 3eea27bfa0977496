package stub

import (
	"strings"

	"github.com/jinzhu/inflection"
)

// Naming holds the names derived from a table for class and view stubs
type Naming struct {
	Table    string
	Class    string
	Plural   string
	Singular string
}

// NamingFor derives class and variable names from a table name:
// "blog_posts" gives class BlogPost, plural blogposts, singular blogpost.
func NamingFor(table string) Naming {
	class := PascalCase(inflection.Singular(table))
	return Naming{
		Table:    table,
		Class:    class,
		Plural:   strings.ToLower(inflection.Plural(class)),
		Singular: strings.ToLower(class),
	}
}

// Tokens returns the naming placeholders shared by controller, model and view stubs
func (n Naming) Tokens() Tokens {
	return Tokens{
		"class":    n.Class,
		"table":    n.Table,
		"plural":   n.Plural,
		"singular": n.Singular,
	}
}

// PascalCase converts snake_case to PascalCase
func PascalCase(s string) string {
	var result strings.Builder

	for _, word := range strings.Split(s, "_") {
		if len(word) > 0 {
			result.WriteString(strings.ToUpper(word[:1]))
			if len(word) > 1 {
				result.WriteString(strings.ToLower(word[1:]))
			}
		}
	}

	return result.String()
}

// Humanize turns a column name into a form label: "first_name" gives "First name"
func Humanize(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", " "))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
