package migrations

import (
	"fmt"
	"regexp"
	"strings"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ParseSchema turns "name:string, age:integer:nullable" into fields.
//
// Every field is parsed on its own. When some fields are malformed the valid
// ones are still returned together with a *SchemaError naming each failure, so
// callers must check the error before using the fields.
func ParseSchema(raw string) ([]Field, error) {
	if strings.TrimSpace(raw) == "" {
		return []Field{}, nil
	}

	fields := make([]Field, 0)
	var failures []*FieldError
	seen := make(map[string]bool)

	for i, fragment := range splitTopLevel(raw, ',') {
		field, err := parseField(i+1, fragment)
		if err != nil {
			failures = append(failures, err)
			continue
		}

		key := strings.ToLower(field.Name)
		if seen[key] {
			failures = append(failures, &FieldError{
				Position: i + 1,
				Fragment: strings.TrimSpace(fragment),
				Reason:   fmt.Sprintf("duplicate column %q", field.Name),
			})
			continue
		}
		seen[key] = true
		fields = append(fields, field)
	}

	if len(failures) > 0 {
		return fields, &SchemaError{Fields: failures}
	}
	return fields, nil
}

func parseField(position int, fragment string) (Field, *FieldError) {
	fragment = strings.TrimSpace(fragment)
	fail := func(format string, args ...interface{}) (Field, *FieldError) {
		return Field{}, &FieldError{Position: position, Fragment: fragment, Reason: fmt.Sprintf(format, args...)}
	}

	if fragment == "" {
		return fail("empty field")
	}
	if reason := checkBalance(fragment); reason != "" {
		return fail("%s", reason)
	}

	segments := splitTopLevel(fragment, ':')
	if len(segments) == 1 {
		return parseConvention(fragment, fail)
	}

	name := strings.TrimSpace(segments[0])
	if name == "" {
		return fail("missing column name")
	}
	if !identifierPattern.MatchString(name) {
		return fail("invalid column name %q", name)
	}

	typeName, args, reason := parseCall(segments[1])
	if reason != "" {
		return fail("type: %s", reason)
	}
	if typeName == "" {
		return fail("missing type for column %q", name)
	}
	if IsConvention(typeName) {
		return fail("%s is a table convention and takes no column name", typeName)
	}
	canonicalType, ok := ColumnType(typeName)
	if !ok {
		return fail("unknown column type %q", typeName)
	}
	if argumentRequired[canonicalType] && len(args) == 0 {
		return fail("%s requires at least one value", canonicalType)
	}

	field := Field{Name: name, Type: canonicalType, Arguments: args}

	hasForeign := false
	for _, segment := range segments[2:] {
		modName, modArgs, reason := parseCall(segment)
		if reason != "" {
			return fail("modifier: %s", reason)
		}
		if modName == "" {
			return fail("empty modifier")
		}
		canonicalMod, ok := modifierNames[strings.ToLower(modName)]
		if !ok {
			return fail("unknown modifier %q", modName)
		}
		if argumentRequired[canonicalMod] && len(modArgs) == 0 {
			return fail("%s requires an argument", canonicalMod)
		}
		switch canonicalMod {
		case ModifierForeign:
			if len(modArgs) > 2 {
				return fail("foreign takes at most a table and a column")
			}
			hasForeign = true
		case ModifierOnDelete, ModifierOnUpdate:
			if !hasForeign {
				return fail("%s requires a preceding foreign modifier", canonicalMod)
			}
		}
		field.Modifiers = append(field.Modifiers, Modifier{Name: canonicalMod, Arguments: modArgs})
	}

	return field, nil
}

func parseConvention(fragment string, fail func(string, ...interface{}) (Field, *FieldError)) (Field, *FieldError) {
	token, args, reason := parseCall(fragment)
	if reason != "" {
		return fail("%s", reason)
	}

	canonicalName, ok := conventionNames[strings.ToLower(token)]
	if !ok {
		if identifierPattern.MatchString(token) {
			return fail("missing type for column %q", token)
		}
		return fail("invalid field")
	}
	if len(args) > 0 {
		return fail("%s takes no arguments", canonicalName)
	}

	return Field{Name: canonicalName, Type: canonicalName, Convention: true}, nil
}

// parseCall splits "name(a, b)" into its name and trimmed arguments
func parseCall(segment string) (string, []string, string) {
	segment = strings.TrimSpace(segment)

	open := strings.IndexByte(segment, '(')
	if open < 0 {
		return segment, nil, ""
	}
	if !strings.HasSuffix(segment, ")") {
		return "", nil, "unexpected text after closing parenthesis"
	}

	name := strings.TrimSpace(segment[:open])
	inner := strings.TrimSpace(segment[open+1 : len(segment)-1])
	if inner == "" {
		return name, nil, ""
	}

	var args []string
	for _, arg := range splitTopLevel(inner, ',') {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			return "", nil, fmt.Sprintf("empty argument in %q", segment)
		}
		args = append(args, arg)
	}
	return name, args, ""
}

// splitTopLevel splits on sep outside parentheses and quotes
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	var quote byte
	start := 0

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case c == sep && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}

	return append(parts, s[start:])
}

// checkBalance returns a reason when parentheses or quotes do not pair up
func checkBalance(s string) string {
	depth := 0
	var quote byte

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '(':
			if depth > 0 {
				return "nested parenthesis"
			}
			depth++
		case c == ')':
			if depth == 0 {
				return "unbalanced closing parenthesis"
			}
			depth--
		}
	}

	if quote != 0 {
		return "unterminated quote"
	}
	if depth > 0 {
		return "unterminated parenthesis"
	}
	return ""
}
