package mlsgrid

import (
	"strconv"
	"strings"
)

// Literal renders s as an OData string literal.
func Literal(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Eq renders `field eq 'value'`.
func Eq(field, value string) string {
	return field + " eq " + Literal(value)
}

// EqFold renders a case-insensitive equality on a string field.
func EqFold(field, value string) string {
	return "tolower(" + field + ") eq " + Literal(strings.ToLower(value))
}

// GeInt renders `field ge n`.
func GeInt(field string, n int64) string {
	return field + " ge " + strconv.FormatInt(n, 10)
}

// LeInt renders `field le n`.
func LeInt(field string, n int64) string {
	return field + " le " + strconv.FormatInt(n, 10)
}

// GeFloat renders `field ge x`.
func GeFloat(field string, x float64) string {
	return field + " ge " + strconv.FormatFloat(x, 'f', -1, 64)
}

// LeFloat renders `field le x`.
func LeFloat(field string, x float64) string {
	return field + " le " + strconv.FormatFloat(x, 'f', -1, 64)
}

// Or joins clauses with `or`, parenthesized when there is more than one.
func Or(clauses ...string) string {
	nonEmpty := compact(clauses)
	switch len(nonEmpty) {
	case 0:
		return ""
	case 1:
		return nonEmpty[0]
	}
	return "(" + strings.Join(nonEmpty, " or ") + ")"
}

// And joins non-empty clauses with `and`.
func And(clauses ...string) string {
	return strings.Join(compact(clauses), " and ")
}

func compact(clauses []string) []string {
	out := make([]string, 0, len(clauses))
	for _, c := range clauses {
		if strings.TrimSpace(c) != "" {
			out = append(out, c)
		}
	}
	return out
}
