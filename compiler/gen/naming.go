package gen

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

// rules is the shared inflection ruleset used for singular and plural
// name derivation.
var rules = inflect.NewDefaultRuleset()

// acronyms are word parts rendered fully upper-cased in pascal and
// camel names.
var acronyms = map[string]bool{
	"api":  true,
	"db":   true,
	"http": true,
	"id":   true,
	"json": true,
	"sql":  true,
	"uri":  true,
	"url":  true,
	"uuid": true,
	"xml":  true,
}

// snake converts a Go identifier to snake_case. Acronym runs stay
// together: HTTPCode becomes http_code and UserIDs becomes user_ids.
func snake(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		r := rune(s[i])
		if i > 0 && unicode.IsUpper(r) {
			prev := rune(s[i-1])
			switch {
			case unicode.IsLower(prev) || unicode.IsDigit(prev):
				b.WriteByte('_')
			case unicode.IsUpper(prev) && i+1 < len(s) && unicode.IsLower(rune(s[i+1])) && s[i+1:] != "s":
				// acronym boundary, unless the tail is just a plural s
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// pascal converts a snake_case or kebab-case name to PascalCase,
// upper-casing known acronyms: user_id becomes UserID.
func pascal(s string) string {
	parts := splitWords(s)
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(capitalize(p))
	}
	return b.String()
}

// camel converts a snake_case or kebab-case name to camelCase. The
// first word is fully lower-cased even when it is an acronym:
// http_code becomes httpCode.
func camel(s string) string {
	parts := splitWords(s)
	if len(parts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.ToLower(parts[0]))
	for _, p := range parts[1:] {
		b.WriteString(capitalize(p))
	}
	return b.String()
}

func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
}

func capitalize(word string) string {
	if acronyms[strings.ToLower(word)] {
		return strings.ToUpper(word)
	}
	r := []rune(word)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// lowerFirst lowers the first rune only: EmailAddress becomes
// emailAddress.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// upperFirst raises the first rune only.
func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// receiver derives a short method receiver from a type name by taking
// the first letter of each camel-case word: UserQuery becomes uq and
// HTTPClient becomes hc.
func receiver(typeName string) string {
	name := strings.TrimFunc(typeName, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	var b strings.Builder
	for i := 0; i < len(name); i++ {
		r := rune(name[i])
		if !unicode.IsUpper(r) {
			continue
		}
		boundary := i == 0 ||
			unicode.IsLower(rune(name[i-1])) ||
			(i+1 < len(name) && unicode.IsLower(rune(name[i+1])))
		if boundary {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	if b.Len() == 0 && name != "" {
		return strings.ToLower(name[:1])
	}
	return b.String()
}

// uncountable names get a Slice suffix instead of a plural form.
var uncountable = map[string]bool{
	"data":    true,
	"info":    true,
	"series":  true,
	"species": true,
}

// plural derives a plural identifier while keeping the original name
// recognizable as its prefix: Category becomes Categories, Person
// becomes Persons. Names without a distinct plural get a Slice suffix.
func plural(name string) string {
	if uncountable[strings.ToLower(name)] || strings.EqualFold(rules.Pluralize(name), name) {
		return name + "Slice"
	}
	switch {
	case strings.HasSuffix(name, "y") && len(name) > 1 && !isVowel(name[len(name)-2]):
		return name[:len(name)-1] + "ies"
	case strings.HasSuffix(name, "s"), strings.HasSuffix(name, "x"),
		strings.HasSuffix(name, "z"), strings.HasSuffix(name, "ch"),
		strings.HasSuffix(name, "sh"):
		return name + "es"
	default:
		return name + "s"
	}
}

// singular derives the singular form of a collection property name,
// used for per-element helper methods: tags becomes tag.
func singular(name string) string {
	s := rules.Singularize(name)
	if s == "" {
		return name
	}
	return s
}

func isVowel(b byte) bool {
	switch unicode.ToLower(rune(b)) {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// getter prefixes stripped when deriving a property name from an
// accessor method.
var getterPrefixes = []string{"Get", "Is"}

// propertyName derives the logical property name from a member name.
// Field names are lowered on the first rune; accessor methods also
// lose their Get or Is prefix: GetEmailAddress becomes emailAddress.
func propertyName(member string, method bool) string {
	name := member
	if method {
		for _, p := range getterPrefixes {
			if rest, ok := strings.CutPrefix(name, p); ok && rest != "" && unicode.IsUpper(rune(rest[0])) {
				name = rest
				break
			}
		}
	}
	return lowerFirst(name)
}

// tableName derives the default table name from a type name by
// stripping configured prefixes and snake-casing the remainder:
// AbstractPerson becomes person.
func tableName(typeName string, stripPrefixes []string) string {
	name := typeName
	for _, p := range stripPrefixes {
		if rest, ok := strings.CutPrefix(name, p); ok && rest != "" && unicode.IsUpper(rune(rest[0])) {
			name = rest
			break
		}
	}
	return snake(name)
}
