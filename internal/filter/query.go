package filter

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/chfrealty/horsefarm/internal/model"
)

// Query parameter names accepted by ParseQuery.
const (
	ParamMinPrice        = "minPrice"
	ParamMaxPrice        = "maxPrice"
	ParamMinAcreage      = "minAcreage"
	ParamMaxAcreage      = "maxAcreage"
	ParamMinStalls       = "minStalls"
	ParamCity            = "city"
	ParamHasIndoorArena  = "hasIndoorArena"
	ParamHasOutdoorArena = "hasOutdoorArena"
	ParamPropertyType    = "propertyType"
	ParamSort            = "sort"
)

// ParseQuery reads filters and a sort key from URL query values. Malformed
// or out-of-vocabulary values are treated as absent.
func ParseQuery(q url.Values) (model.PropertyFilters, model.SortKey) {
	var f model.PropertyFilters

	if v, ok := parseInt64(q.Get(ParamMinPrice)); ok {
		f.MinPrice = &v
	}
	if v, ok := parseInt64(q.Get(ParamMaxPrice)); ok {
		f.MaxPrice = &v
	}
	if v, ok := parseFloat(q.Get(ParamMinAcreage)); ok {
		f.MinAcreage = &v
	}
	if v, ok := parseFloat(q.Get(ParamMaxAcreage)); ok {
		f.MaxAcreage = &v
	}
	if v, ok := parseInt64(q.Get(ParamMinStalls)); ok && v <= math.MaxInt32 {
		n := int(v)
		f.MinStalls = &n
	}
	if city := strings.TrimSpace(q.Get(ParamCity)); city != "" {
		f.City = &city
	}
	if v, err := strconv.ParseBool(q.Get(ParamHasIndoorArena)); err == nil {
		f.HasIndoorArena = &v
	}
	if v, err := strconv.ParseBool(q.Get(ParamHasOutdoorArena)); err == nil {
		f.HasOutdoorArena = &v
	}
	if pt := model.PropertyType(strings.ToLower(strings.TrimSpace(q.Get(ParamPropertyType)))); pt.Valid() {
		f.PropertyType = &pt
	}

	key := model.SortKey(strings.TrimSpace(q.Get(ParamSort)))
	if !key.Valid() {
		key = model.SortNone
	}

	return f, key
}

// Encode renders filters and sort key back into query values.
func Encode(f model.PropertyFilters, key model.SortKey) url.Values {
	q := url.Values{}
	if f.MinPrice != nil {
		q.Set(ParamMinPrice, strconv.FormatInt(*f.MinPrice, 10))
	}
	if f.MaxPrice != nil {
		q.Set(ParamMaxPrice, strconv.FormatInt(*f.MaxPrice, 10))
	}
	if f.MinAcreage != nil {
		q.Set(ParamMinAcreage, strconv.FormatFloat(*f.MinAcreage, 'f', -1, 64))
	}
	if f.MaxAcreage != nil {
		q.Set(ParamMaxAcreage, strconv.FormatFloat(*f.MaxAcreage, 'f', -1, 64))
	}
	if f.MinStalls != nil {
		q.Set(ParamMinStalls, strconv.Itoa(*f.MinStalls))
	}
	if f.City != nil {
		q.Set(ParamCity, *f.City)
	}
	if f.HasIndoorArena != nil {
		q.Set(ParamHasIndoorArena, strconv.FormatBool(*f.HasIndoorArena))
	}
	if f.HasOutdoorArena != nil {
		q.Set(ParamHasOutdoorArena, strconv.FormatBool(*f.HasOutdoorArena))
	}
	if f.PropertyType != nil {
		q.Set(ParamPropertyType, string(*f.PropertyType))
	}
	if key != model.SortNone {
		q.Set(ParamSort, string(key))
	}
	return q
}

func parseInt64(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
