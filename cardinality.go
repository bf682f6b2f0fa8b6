package karst

// Cardinality is the relationship shape between two mapped types.
type Cardinality int

// Relationship shapes.
const (
	None Cardinality = iota // Not a relationship.
	OneToOne
	OneToMany
	ManyToOne
	ManyToMany
)

// String returns the relationship name.
func (c Cardinality) String() string {
	switch c {
	case OneToOne:
		return "OneToOne"
	case OneToMany:
		return "OneToMany"
	case ManyToOne:
		return "ManyToOne"
	case ManyToMany:
		return "ManyToMany"
	}
	return "None"
}

// Many reports whether the relationship resolves to many target rows,
// i.e. whether the declaring property must be collection-shaped.
func (c Cardinality) Many() bool {
	return c == OneToMany || c == ManyToMany
}
