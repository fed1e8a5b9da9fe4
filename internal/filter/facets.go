package filter

import (
	"slices"
	"strings"

	"github.com/chfrealty/horsefarm/internal/model"
)

// Range is an inclusive numeric span.
type Range[T int64 | float64] struct {
	Min T `json:"min"`
	Max T `json:"max"`
}

// Cities returns the distinct non-empty city names in props, sorted. The
// first spelling seen for a case-folded name wins.
func Cities(props []model.Property) []string {
	seen := make(map[string]struct{}, len(props))
	out := make([]string, 0)
	for _, p := range props {
		name := strings.TrimSpace(p.City)
		if name == "" {
			continue
		}
		k := FoldCity(name)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, name)
	}
	slices.SortFunc(out, func(a, b string) int {
		return strings.Compare(FoldCity(a), FoldCity(b))
	})
	return out
}

// PriceRange returns the price span over listings with a positive price.
func PriceRange(props []model.Property) Range[int64] {
	var r Range[int64]
	first := true
	for _, p := range props {
		if p.Price <= 0 {
			continue
		}
		if first {
			r.Min, r.Max = p.Price, p.Price
			first = false
			continue
		}
		r.Min = min(r.Min, p.Price)
		r.Max = max(r.Max, p.Price)
	}
	return r
}

// AcreageRange returns the acreage span over listings with positive acreage.
func AcreageRange(props []model.Property) Range[float64] {
	var r Range[float64]
	first := true
	for _, p := range props {
		if !(p.Acreage > 0) {
			continue
		}
		if first {
			r.Min, r.Max = p.Acreage, p.Acreage
			first = false
			continue
		}
		r.Min = min(r.Min, p.Acreage)
		r.Max = max(r.Max, p.Acreage)
	}
	return r
}
