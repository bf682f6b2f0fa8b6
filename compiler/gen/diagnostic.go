package gen

import (
	"fmt"
	"strings"
)

// Severity classifies a diagnostic finding.
type Severity int

// Diagnostic severities, ordered by weight.
const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns the lower-case severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is one finding produced while building or validating the
// entity graph. Diagnostics are data, not control flow: the run
// collects them and completes regardless of how many are reported.
type Diagnostic struct {
	Severity Severity
	Entity   string // entity type name, if attributable
	Property string // property name, if attributable
	Pos      string // source position, if known
	Message  string

	// relationship marks findings on relationship declarations, so
	// strict mode can surface them as a RelationshipError.
	relationship bool
}

// String renders the diagnostic in one line suitable for logs.
func (d Diagnostic) String() string {
	var b strings.Builder
	b.WriteString(d.Severity.String())
	b.WriteString(": ")
	if d.Entity != "" {
		b.WriteString(d.Entity)
		if d.Property != "" {
			b.WriteString(".")
			b.WriteString(d.Property)
		}
		b.WriteString(": ")
	}
	b.WriteString(d.Message)
	if d.Pos != "" {
		fmt.Fprintf(&b, " (%s)", d.Pos)
	}
	return b.String()
}

// errorf appends an error diagnostic.
func errorf(ds []Diagnostic, entity, property, pos, format string, args ...any) []Diagnostic {
	return append(ds, Diagnostic{
		Severity: SeverityError,
		Entity:   entity,
		Property: property,
		Pos:      pos,
		Message:  fmt.Sprintf(format, args...),
	})
}

// relationshipErrorf appends an error diagnostic attributed to a
// relationship declaration.
func relationshipErrorf(ds []Diagnostic, entity, property, pos, format string, args ...any) []Diagnostic {
	ds = errorf(ds, entity, property, pos, format, args...)
	ds[len(ds)-1].relationship = true
	return ds
}

// warnf appends a warning diagnostic.
func warnf(ds []Diagnostic, entity, property, pos, format string, args ...any) []Diagnostic {
	return append(ds, Diagnostic{
		Severity: SeverityWarning,
		Entity:   entity,
		Property: property,
		Pos:      pos,
		Message:  fmt.Sprintf(format, args...),
	})
}

// HasErrors reports whether any diagnostic in the slice is an error.
func HasErrors(ds []Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
