package sqlstore

import (
	"strconv"
	"strings"
)

// Dialect captures what differs between the SQL engines we run on.
type Dialect interface {
	// Name is a short identifier used in logs, e.g. "sqlite".
	Name() string

	// Rebind rewrites "?" placeholders into the engine's native form.
	Rebind(query string) string

	// IsUniqueViolation reports whether err came from a unique index.
	IsUniqueViolation(err error) bool
}

// RebindDollar turns "?" placeholders into "$1", "$2", ... Queries in this
// package never contain a literal question mark.
func RebindDollar(query string) string {
	if !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
