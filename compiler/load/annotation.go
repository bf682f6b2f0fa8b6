package load

import (
	"reflect"
	"strings"
)

// The two annotation dialects. They are fully equivalent aliases: a
// declaration may use either (or both), and the loader merges them into
// one annotation set before the compiler core ever sees them.
const (
	// DialectNative is the karst-native dialect: //karst: directives
	// and the `karst:"..."` struct-tag key.
	DialectNative = "karst"
	// DialectStandard is the standard-persistence dialect: //persist:
	// directives and the `persist:"..."` struct-tag key.
	DialectStandard = "persist"
)

// Annotation is one typed annotation value attached to a class or
// member. Flag annotations carry an empty Value.
type Annotation struct {
	Dialect string
	Name    string
	Value   string
}

// Annotations is an ordered annotation set with typed accessors. The
// compiler core reads annotations only through these accessors, never
// through a reflection runtime.
type Annotations []Annotation

// Has reports whether an annotation with the given name is present.
func (as Annotations) Has(name string) bool {
	for _, a := range as {
		if a.Name == name {
			return true
		}
	}
	return false
}

// Value returns the first value declared for the given name. The bool
// reports presence; a present flag annotation yields an empty string.
func (as Annotations) Value(name string) (string, bool) {
	for _, a := range as {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// NonEmpty returns the first non-empty value declared for the name.
func (as Annotations) NonEmpty(name string) string {
	for _, a := range as {
		if a.Name == name && a.Value != "" {
			return a.Value
		}
	}
	return ""
}

// Count returns how many annotations with the given name are present.
func (as Annotations) Count(name string) int {
	n := 0
	for _, a := range as {
		if a.Name == name {
			n++
		}
	}
	return n
}

// Member annotation names shared by both dialects.
const (
	AnnColumn     = "column"
	AnnKey        = "key"
	AnnGenerated  = "generated"
	AnnVersion    = "version"
	AnnNullable   = "nullable"
	AnnLazy       = "lazy"
	AnnReadOnly   = "readonly"
	AnnTransient  = "transient"
	AnnOneToOne   = "one_to_one"
	AnnOneToMany  = "one_to_many"
	AnnManyToOne  = "many_to_one"
	AnnManyToMany = "many_to_many"
	AnnSkip       = "-"
)

// Class annotation names (directive arguments) shared by both dialects.
const (
	AnnTable     = "table"
	AnnName      = "name"
	AnnImmutable = "immutable"
	AnnStateless = "stateless"
	AnnView      = "view"
	AnnNameStyle = "name_style"
)

// directive marker names accepted after the dialect prefix.
var kindDirectives = map[string]Kind{
	"entity":     KindEntity,
	"superclass": KindSuperclass,
	"embeddable": KindEmbeddable,
	"view":       KindEntity,
}

// memberDirective is the marker used for member annotations on
// interface methods: //karst:attr key column=email.
const memberDirective = "attr"

// ParseClassDirectives scans doc-comment lines of a type declaration
// for kind markers of either dialect. It returns the declared kind,
// whether any marker was found, and the merged class annotation set.
// Dialects are equivalent: when both mark the same declaration, the
// arguments are merged in source order.
func ParseClassDirectives(lines []string) (Kind, bool, Annotations) {
	var (
		kind  Kind
		found bool
		anns  Annotations
	)
	for _, line := range lines {
		dialect, name, args, ok := splitDirective(line)
		if !ok {
			continue
		}
		k, ok := kindDirectives[name]
		if !ok {
			continue
		}
		if !found {
			kind = k
			found = true
		}
		if name == "view" {
			anns = append(anns, Annotation{Dialect: dialect, Name: AnnView})
		}
		anns = append(anns, parseArgs(dialect, args)...)
	}
	return kind, found, anns
}

// ParseMemberDirectives scans doc-comment lines of an interface method
// for attribute directives of either dialect.
func ParseMemberDirectives(lines []string) Annotations {
	var anns Annotations
	for _, line := range lines {
		dialect, name, args, ok := splitDirective(line)
		if !ok || name != memberDirective {
			continue
		}
		anns = append(anns, parseArgs(dialect, args)...)
	}
	return anns
}

// ParseMemberTag parses the struct-tag of a field, merging the native
// and standard tag keys into one annotation set. Tag values use the
// comma grammar: `karst:"key,generated,column=email_addr"`.
func ParseMemberTag(tag string) Annotations {
	var anns Annotations
	st := reflect.StructTag(tag)
	for _, dialect := range []string{DialectNative, DialectStandard} {
		v, ok := st.Lookup(dialect)
		if !ok {
			continue
		}
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			name, value, _ := strings.Cut(part, "=")
			anns = append(anns, Annotation{Dialect: dialect, Name: name, Value: value})
		}
	}
	return anns
}

// splitDirective parses one comment line of the form
// "//<dialect>:<name> arg arg=value ..." and reports whether the line
// is a directive of a known dialect.
func splitDirective(line string) (dialect, name, args string, ok bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "//") {
		return "", "", "", false
	}
	body := line[2:]
	for _, d := range []string{DialectNative, DialectStandard} {
		prefix := d + ":"
		if !strings.HasPrefix(body, prefix) {
			continue
		}
		rest := body[len(prefix):]
		name, args, _ := strings.Cut(rest, " ")
		if name == "" {
			return "", "", "", false
		}
		return d, name, strings.TrimSpace(args), true
	}
	return "", "", "", false
}

// parseArgs parses space-separated directive arguments: bare flags and
// key=value pairs.
func parseArgs(dialect, args string) Annotations {
	var anns Annotations
	for _, f := range strings.Fields(args) {
		name, value, _ := strings.Cut(f, "=")
		anns = append(anns, Annotation{Dialect: dialect, Name: name, Value: value})
	}
	return anns
}
