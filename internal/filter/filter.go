// Package filter narrows and orders listing collections.
package filter

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/chfrealty/horsefarm/internal/model"
)

var fold = cases.Fold()

// FoldCity normalizes a city name for comparison.
func FoldCity(s string) string {
	return fold.String(strings.TrimSpace(s))
}

// Predicate reports whether a listing passes one constraint.
type Predicate func(model.Property) bool

// Predicates returns one predicate per present field in f. An empty filter
// yields no predicates.
func Predicates(f model.PropertyFilters) []Predicate {
	var preds []Predicate

	if f.MinPrice != nil {
		v := *f.MinPrice
		preds = append(preds, func(p model.Property) bool { return p.Price >= v })
	}
	if f.MaxPrice != nil {
		v := *f.MaxPrice
		preds = append(preds, func(p model.Property) bool { return p.Price <= v })
	}
	if f.MinAcreage != nil {
		v := *f.MinAcreage
		preds = append(preds, func(p model.Property) bool { return p.Acreage >= v })
	}
	if f.MaxAcreage != nil {
		v := *f.MaxAcreage
		preds = append(preds, func(p model.Property) bool { return p.Acreage <= v })
	}
	if f.MinStalls != nil {
		v := *f.MinStalls
		preds = append(preds, func(p model.Property) bool { return p.EquestrianAmenities.Stalls >= v })
	}
	if f.City != nil {
		want := FoldCity(*f.City)
		preds = append(preds, func(p model.Property) bool { return FoldCity(p.City) == want })
	}
	// A false flag never excludes.
	if f.HasIndoorArena != nil && *f.HasIndoorArena {
		preds = append(preds, func(p model.Property) bool { return p.EquestrianAmenities.HasIndoorArena })
	}
	if f.HasOutdoorArena != nil && *f.HasOutdoorArena {
		preds = append(preds, func(p model.Property) bool { return p.EquestrianAmenities.HasOutdoorArena })
	}
	if f.PropertyType != nil {
		v := *f.PropertyType
		preds = append(preds, func(p model.Property) bool { return p.PropertyType == v })
	}

	return preds
}

// Matches reports whether p satisfies every present field of f.
func Matches(p model.Property, f model.PropertyFilters) bool {
	for _, pred := range Predicates(f) {
		if !pred(p) {
			return false
		}
	}
	return true
}

// Apply returns the listings that satisfy f, in input order. The input slice
// is not modified.
func Apply(props []model.Property, f model.PropertyFilters) []model.Property {
	preds := Predicates(f)
	out := make([]model.Property, 0, len(props))
next:
	for _, p := range props {
		for _, pred := range preds {
			if !pred(p) {
				continue next
			}
		}
		out = append(out, p)
	}
	return out
}

// Sort orders props in place by key. Equal elements keep their relative
// order. SortNone and unknown keys leave the slice untouched.
func Sort(props []model.Property, key model.SortKey) {
	var less func(a, b model.Property) int
	switch key {
	case model.SortPriceDesc:
		less = func(a, b model.Property) int { return cmp.Compare(b.Price, a.Price) }
	case model.SortPriceAsc:
		less = func(a, b model.Property) int { return cmp.Compare(a.Price, b.Price) }
	case model.SortNewest:
		less = func(a, b model.Property) int { return b.ListedAt().Compare(a.ListedAt()) }
	case model.SortAcreage:
		less = func(a, b model.Property) int { return cmp.Compare(b.Acreage, a.Acreage) }
	default:
		return
	}
	slices.SortStableFunc(props, less)
}

// Search filters then sorts, returning a new slice.
func Search(props []model.Property, f model.PropertyFilters, key model.SortKey) []model.Property {
	out := Apply(props, f)
	Sort(out, key)
	return out
}
