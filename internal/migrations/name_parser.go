package migrations

import (
	"regexp"
	"strings"

	"github.com/gosimple/slug"
)

type nameMatcher struct {
	action  Action
	pattern *regexp.Regexp
}

// Matchers are tried in order; the first submatch is the table.
var nameMatchers = []nameMatcher{
	{action: ActionCreate, pattern: regexp.MustCompile(`^create_(.+)_table$`)},
	{action: ActionAddColumns, pattern: regexp.MustCompile(`^add_.+_to_(.+)_table$`)},
	{action: ActionRemoveColumns, pattern: regexp.MustCompile(`^(?:remove|delete)_.+_from_(.+)_table$`)},
}

// NormalizeName lower-cases a migration name and joins its words with underscores
func NormalizeName(raw string) string {
	name := slug.Make(strings.TrimSpace(raw))
	return strings.ReplaceAll(name, "-", "_")
}

// ParseName works out the table and action a migration name refers to.
// Names that match no known shape yield ActionUnknown with an empty table.
func ParseName(raw string) Intent {
	name := NormalizeName(raw)

	for _, m := range nameMatchers {
		if matches := m.pattern.FindStringSubmatch(name); matches != nil {
			return Intent{Name: name, Table: matches[1], Action: m.action}
		}
	}

	return Intent{Name: name, Action: ActionUnknown}
}
