// Package relation infers likely foreign-key relationships between catalog
// tables from column names alone. No data sampling or declared constraints
// are consulted; the signals are naming conventions (id_/fk_ prefixes) and
// non-generic column names shared verbatim between tables.
package relation

import (
	"strings"

	"github.com/go-openapi/inflect"
)

// Table is the minimal projection of a catalog table the inference needs.
type Table struct {
	Name    string
	Columns []string
}

// Relationship is a directed link from the table holding the referencing
// column to the table it points at, labeled with that column name.
type Relationship struct {
	Source string
	Target string
	Column string
}

// Column names too generic to signal a relationship on their own. They are
// still eligible for the id_/fk_ prefix rules.
var genericColumns = map[string]bool{
	"id":   true,
	"name": true,
}

var rules = inflect.NewDefaultRuleset()

// Infer produces the candidate relationships for the given tables, in a
// deterministic order. Self-relationships are excluded, and a (source,
// target, column) triple is emitted at most once.
//
// When two tables share a non-generic column and neither side follows the
// id_/fk_ convention, the direction is ambiguous; the table earlier in the
// input order becomes the source.
func Infer(tables []Table) []Relationship {
	var out []Relationship

	seen := map[Relationship]bool{}
	add := func(rel Relationship) {
		if seen[rel] {
			return
		}

		seen[rel] = true
		out = append(out, rel)
	}

	for i, a := range tables {
		for j, b := range tables {
			if i == j {
				continue
			}

			for _, column := range a.Columns {
				switch {
				case isForeignKeyName(column) && targetMatches(b.Name, column[3:]):
					add(Relationship{Source: a.Name, Target: b.Name, Column: column})
				case i < j && !genericColumns[column] && hasColumn(b, column):
					add(Relationship{Source: a.Name, Target: b.Name, Column: column})
				}
			}
		}
	}

	return out
}

func isForeignKeyName(column string) bool {
	return strings.HasPrefix(column, "id_") || strings.HasPrefix(column, "fk_")
}

// targetMatches reports whether a table name is a plausible target for the
// base of an id_/fk_ column, accepting the exact name as well as its plural
// and singular forms, so id_client resolves to a clients table.
func targetMatches(table, base string) bool {
	if base == "" {
		return false
	}

	return table == base || table == rules.Pluralize(base) || table == rules.Singularize(base)
}

func hasColumn(t Table, column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}

	return false
}
