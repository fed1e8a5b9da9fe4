// Package amenity infers equestrian facility attributes from listing data.
//
// Structured values always win. Fields left empty by the structured source
// are filled from free text by an ordered table of pattern rules.
package amenity

import (
	"slices"
	"strconv"
	"strings"

	"github.com/chfrealty/horsefarm/internal/model"
)

// Raw is the amenity-bearing part of an external listing record.
type Raw struct {
	Stalls               int
	IndoorArena          bool
	OutdoorArena         bool
	Pastures             int
	PastureAcreage       float64
	TackRoom             bool
	FeedRoom             bool
	WashRack             bool
	RoundPen             bool
	Fencing              []string
	WaterSource          []string
	BarnSquareFeet       *int
	AdditionalStructures []string

	// Remarks is the public marketing text of the listing.
	Remarks string
	// Amenities is a supplementary free-text amenity list, often comma separated.
	Amenities string
}

// Extract produces a fully defaulted EquestrianAmenities value from raw.
// It is pure and deterministic.
func Extract(raw Raw) model.EquestrianAmenities {
	return DefaultRules().Extract(raw)
}

// Rules is an ordered rule table.
type Rules []Rule

// Extract applies the structured values of raw, then every rule whose target
// field is still unset by the structured source.
func (rs Rules) Extract(raw Raw) model.EquestrianAmenities {
	out, structured := fromStructured(raw)

	text := strings.ToLower(raw.Remarks + " " + raw.Amenities)
	if strings.TrimSpace(text) != "" {
		for _, r := range rs {
			if structured[r.Field] {
				continue
			}
			r.apply(&out, text)
		}
	}

	return out.Normalize()
}

// fromStructured copies the structured fields and reports which fields were
// supplied with a non-zero value.
func fromStructured(raw Raw) (model.EquestrianAmenities, map[Field]bool) {
	out := model.EquestrianAmenities{
		Stalls:               max(raw.Stalls, 0),
		HasIndoorArena:       raw.IndoorArena,
		HasOutdoorArena:      raw.OutdoorArena,
		Pastures:             max(raw.Pastures, 0),
		PastureAcreage:       max(raw.PastureAcreage, 0),
		HasTackRoom:          raw.TackRoom,
		HasFeedRoom:          raw.FeedRoom,
		HasWashRack:          raw.WashRack,
		HasRoundPen:          raw.RoundPen,
		FencingType:          cleanList(raw.Fencing),
		WaterSource:          cleanList(raw.WaterSource),
		AdditionalStructures: cleanList(raw.AdditionalStructures),
	}
	if raw.BarnSquareFeet != nil && *raw.BarnSquareFeet > 0 {
		v := *raw.BarnSquareFeet
		out.BarnSquareFeet = &v
	}

	return out, map[Field]bool{
		FieldStalls:       out.Stalls > 0,
		FieldIndoorArena:  out.HasIndoorArena,
		FieldOutdoorArena: out.HasOutdoorArena,
		FieldPastures:     out.Pastures > 0,
		FieldTackRoom:     out.HasTackRoom,
		FieldFeedRoom:     out.HasFeedRoom,
		FieldWashRack:     out.HasWashRack,
		FieldRoundPen:     out.HasRoundPen,
		FieldFencing:      len(out.FencingType) > 0,
		FieldStructures:   len(out.AdditionalStructures) > 0,
	}
}

// cleanList trims entries, drops blanks and duplicates, and never returns nil.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" || slices.Contains(out, s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// firstInt parses the first capture group of m. Values that overflow or do not
// parse are treated as absent.
func firstInt(m []string) (int, bool) {
	if len(m) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
