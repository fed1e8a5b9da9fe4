package amenity

import (
	"regexp"
	"slices"

	"github.com/chfrealty/horsefarm/internal/model"
)

// Field names an EquestrianAmenities attribute a rule may fill.
type Field string

const (
	FieldStalls       Field = "stalls"
	FieldIndoorArena  Field = "indoor_arena"
	FieldOutdoorArena Field = "outdoor_arena"
	FieldPastures     Field = "pastures"
	FieldTackRoom     Field = "tack_room"
	FieldFeedRoom     Field = "feed_room"
	FieldWashRack     Field = "wash_rack"
	FieldRoundPen     Field = "round_pen"
	FieldFencing      Field = "fencing"
	FieldStructures   Field = "additional_structures"
)

// Kind selects how a rule's match is written to its field.
type Kind int

const (
	// Count stores the first captured integer if the field is still zero.
	Count Kind = iota
	// Flag sets a boolean field when the pattern matches.
	Flag
	// Label appends Label to a list field when the pattern matches.
	Label
)

// Rule is one entry of the extraction table.
type Rule struct {
	Field   Field
	Kind    Kind
	Pattern *regexp.Regexp
	// Label is the canonical list entry for Label rules.
	Label string
}

func (r Rule) apply(a *model.EquestrianAmenities, text string) {
	switch r.Kind {
	case Count:
		target := r.countTarget(a)
		if target == nil || *target != 0 {
			return
		}
		if n, ok := firstInt(r.Pattern.FindStringSubmatch(text)); ok {
			*target = n
		}
	case Flag:
		target := r.flagTarget(a)
		if target == nil || *target {
			return
		}
		*target = r.Pattern.MatchString(text)
	case Label:
		target := r.listTarget(a)
		if target == nil || slices.Contains(*target, r.Label) {
			return
		}
		if r.Pattern.MatchString(text) {
			*target = append(*target, r.Label)
		}
	}
}

func (r Rule) countTarget(a *model.EquestrianAmenities) *int {
	switch r.Field {
	case FieldStalls:
		return &a.Stalls
	case FieldPastures:
		return &a.Pastures
	}
	return nil
}

func (r Rule) flagTarget(a *model.EquestrianAmenities) *bool {
	switch r.Field {
	case FieldIndoorArena:
		return &a.HasIndoorArena
	case FieldOutdoorArena:
		return &a.HasOutdoorArena
	case FieldTackRoom:
		return &a.HasTackRoom
	case FieldFeedRoom:
		return &a.HasFeedRoom
	case FieldWashRack:
		return &a.HasWashRack
	case FieldRoundPen:
		return &a.HasRoundPen
	}
	return nil
}

func (r Rule) listTarget(a *model.EquestrianAmenities) *[]string {
	switch r.Field {
	case FieldFencing:
		return &a.FencingType
	case FieldStructures:
		return &a.AdditionalStructures
	}
	return nil
}

// Text is matched lower-cased, so patterns are written in lower case.
var defaultRules = Rules{
	{Field: FieldStalls, Kind: Count, Pattern: regexp.MustCompile(`(\d+)[\s-]*(?:horse\s*)?stalls?\b`)},
	{Field: FieldIndoorArena, Kind: Flag, Pattern: regexp.MustCompile(`indoor\s*(?:riding\s*)?arena`)},
	{Field: FieldOutdoorArena, Kind: Flag, Pattern: regexp.MustCompile(`outdoor\s*(?:riding\s*)?arena`)},
	{Field: FieldOutdoorArena, Kind: Flag, Pattern: regexp.MustCompile(`riding\s*ring`)},
	{Field: FieldTackRoom, Kind: Flag, Pattern: regexp.MustCompile(`tack\s*room`)},
	{Field: FieldFeedRoom, Kind: Flag, Pattern: regexp.MustCompile(`feed\s*room`)},
	{Field: FieldWashRack, Kind: Flag, Pattern: regexp.MustCompile(`wash\s*(?:rack|stall)`)},
	{Field: FieldRoundPen, Kind: Flag, Pattern: regexp.MustCompile(`round\s*pen`)},
	{Field: FieldPastures, Kind: Count, Pattern: regexp.MustCompile(`(\d+)[\s-]*pastures?\b`)},

	{Field: FieldFencing, Kind: Label, Label: "Board", Pattern: regexp.MustCompile(`board\s*fenc`)},
	{Field: FieldFencing, Kind: Label, Label: "Vinyl", Pattern: regexp.MustCompile(`vinyl\s*fenc`)},
	{Field: FieldFencing, Kind: Label, Label: "Electric", Pattern: regexp.MustCompile(`electric\s*fenc`)},
	{Field: FieldFencing, Kind: Label, Label: "Wire", Pattern: regexp.MustCompile(`wire\s*fenc`)},
	{Field: FieldFencing, Kind: Label, Label: "Post & Rail", Pattern: regexp.MustCompile(`post\s*(?:and|&)?\s*rail`)},

	{Field: FieldStructures, Kind: Label, Label: "Hay Barn", Pattern: regexp.MustCompile(`hay\s*barn`)},
	{Field: FieldStructures, Kind: Label, Label: "Equipment Storage", Pattern: regexp.MustCompile(`equipment\s*(?:barn|shed)`)},
	{Field: FieldStructures, Kind: Label, Label: "Run-in Shed", Pattern: regexp.MustCompile(`run.?in\s*shed`)},
	{Field: FieldStructures, Kind: Label, Label: "Groom's Quarters", Pattern: regexp.MustCompile(`groom(?:'s|s)?\s*(?:quarters|apartment)`)},
	{Field: FieldStructures, Kind: Label, Label: "Guest House", Pattern: regexp.MustCompile(`guest\s*(?:house|cottage)`)},
}

// DefaultRules returns a copy of the built-in rule table. Callers may append
// rules to the copy without affecting the package default.
func DefaultRules() Rules {
	return slices.Clone(defaultRules)
}
