package mlsgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLiteral(t *testing.T) {
	assert.Equal(t, "'Waxhaw'", Literal("Waxhaw"))
	assert.Equal(t, "'O''Neal''s'", Literal("O'Neal's"))
	assert.Equal(t, "''", Literal(""))
}

func TestClauses(t *testing.T) {
	assert.Equal(t, "City eq 'Tryon'", Eq("City", "Tryon"))
	assert.Equal(t, "tolower(City) eq 'mill spring'", EqFold("City", "Mill Spring"))
	assert.Equal(t, "ListPrice ge 500000", GeInt("ListPrice", 500000))
	assert.Equal(t, "ListPrice le 900000", LeInt("ListPrice", 900000))
	assert.Equal(t, "LotSizeAcres ge 10.5", GeFloat("LotSizeAcres", 10.5))
	assert.Equal(t, "LotSizeAcres le 40", LeFloat("LotSizeAcres", 40))
}

func TestAndOr(t *testing.T) {
	assert.Equal(t, "", And())
	assert.Equal(t, "a eq 1", And("", "a eq 1", " "))
	assert.Equal(t, "a and b", And("a", "b"))

	assert.Equal(t, "", Or())
	assert.Equal(t, "a", Or("a", ""))
	assert.Equal(t, "(a or b)", Or("a", "b"))
	assert.Equal(t, "s and (a or b)", And("s", Or("a", "b")))
}

func TestQueryValues(t *testing.T) {
	v := Query{Filter: "x", OrderBy: "y desc", Top: 5, Select: []string{"A", "B"}, Count: true}.Values()
	assert.Equal(t, "x", v.Get("$filter"))
	assert.Equal(t, "y desc", v.Get("$orderby"))
	assert.Equal(t, "5", v.Get("$top"))
	assert.Equal(t, "A,B", v.Get("$select"))
	assert.Equal(t, "true", v.Get("$count"))

	assert.Empty(t, Query{}.Values())
}
