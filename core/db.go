package core

import (
	"context"
	"strings"
)

// DBPinger is any database handle whose readiness can be checked.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

type DBOrdering struct {
	Field     string
	Ascending bool
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}

// ParseOrderings reads a comma separated list like "-exam_year,position".
// A leading "-" means descending.
func ParseOrderings(s string) []DBOrdering {
	var ords []DBOrdering
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		descending := strings.HasPrefix(field, "-")
		if descending {
			field = strings.TrimSpace(field[1:]) // drop "-"
		}
		if field == "" {
			continue
		}
		ords = append(ords, DBOrdering{Field: field, Ascending: !descending})
	}
	return ords
}

// OrderByClause joins orderings into an ORDER BY expression, keeping only allowed fields.
func OrderByClause(ords []DBOrdering, allowed ...string) string {
	parts := make([]string, 0, len(ords))
	for _, ord := range ords {
		for _, fld := range allowed {
			if ord.Field == fld {
				parts = append(parts, ord.String())
				break
			}
		}
	}
	return strings.Join(parts, ", ")
}
