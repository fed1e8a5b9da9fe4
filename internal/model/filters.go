package model

// PropertyFilters is a search request. Every field is optional; nil imposes
// no constraint.
type PropertyFilters struct {
	MinPrice        *int64        `json:"min_price,omitempty"`
	MaxPrice        *int64        `json:"max_price,omitempty"`
	MinAcreage      *float64      `json:"min_acreage,omitempty"`
	MaxAcreage      *float64      `json:"max_acreage,omitempty"`
	MinStalls       *int          `json:"min_stalls,omitempty"`
	City            *string       `json:"city,omitempty"`
	HasIndoorArena  *bool         `json:"has_indoor_arena,omitempty"`
	HasOutdoorArena *bool         `json:"has_outdoor_arena,omitempty"`
	PropertyType    *PropertyType `json:"property_type,omitempty"`
}

// IsEmpty reports whether no filter field is set.
func (f PropertyFilters) IsEmpty() bool {
	return f.MinPrice == nil && f.MaxPrice == nil &&
		f.MinAcreage == nil && f.MaxAcreage == nil &&
		f.MinStalls == nil && f.City == nil &&
		f.HasIndoorArena == nil && f.HasOutdoorArena == nil &&
		f.PropertyType == nil
}

// SortKey selects the single ordering applied after filtering.
type SortKey string

const (
	SortNone      SortKey = ""
	SortPriceDesc SortKey = "price-high"
	SortPriceAsc  SortKey = "price-low"
	SortNewest    SortKey = "newest"
	SortAcreage   SortKey = "acreage"
)

// Valid reports whether k is a supported sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortNone, SortPriceDesc, SortPriceAsc, SortNewest, SortAcreage:
		return true
	default:
		return false
	}
}

// Ptr returns a pointer to v. Handy for building filters.
func Ptr[T any](v T) *T {
	return &v
}
