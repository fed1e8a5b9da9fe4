package listings

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/chfrealty/horsefarm/internal/amenity"
	"github.com/chfrealty/horsefarm/internal/model"
	"github.com/chfrealty/horsefarm/pkg/mlsgrid"
)

const (
	placeholderImage = "/images/properties/placeholder.jpg"
	defaultAgentPic  = "/images/team/default-agent.jpg"
	noAddress        = "Address Not Available"
	noDescription    = "No description available."
	maxFeatures      = 10
)

var typeLookup = map[string]model.PropertyType{
	"Farm":          model.TypeFarm,
	"Farm/Ranch":    model.TypeFarm,
	"Ranch":         model.TypeRanch,
	"Residential":   model.TypeEstate,
	"Single Family": model.TypeEstate,
	"Land":          model.TypeLand,
	"Lots/Land":     model.TypeLand,
}

// mlsTypeFor is the reverse of typeLookup used when querying.
var mlsTypeFor = map[model.PropertyType]string{
	model.TypeFarm:   "Farm",
	model.TypeRanch:  "Ranch",
	model.TypeEstate: "Residential",
	model.TypeLand:   "Land",
}

var statusLookup = map[string]model.PropertyStatus{
	"Active":                model.StatusActive,
	"Active Under Contract": model.StatusPending,
	"Pending":               model.StatusPending,
	"Closed":                model.StatusSold,
	"Sold":                  model.StatusSold,
}

// MapType translates RESO PropertyType, then PropertySubType, defaulting to farm.
func MapType(propertyType, subType string) model.PropertyType {
	if t, ok := typeLookup[strings.TrimSpace(propertyType)]; ok {
		return t
	}
	if t, ok := typeLookup[strings.TrimSpace(subType)]; ok {
		return t
	}
	return model.TypeFarm
}

// MapStatus translates RESO StandardStatus, defaulting to active.
func MapStatus(s string) model.PropertyStatus {
	if st, ok := statusLookup[strings.TrimSpace(s)]; ok {
		return st
	}
	return model.StatusActive
}

// Mapper converts RESO listings into domain properties.
type Mapper struct {
	// State fills StateOrProvince when the record has none.
	State string
	// Agent is used when the record names no listing agent.
	Agent model.Agent
	// Now supplies today's date for records without a contract date.
	Now func() time.Time
}

// Map converts one RESO listing. It never fails; missing or malformed fields
// take their documented defaults.
func (m Mapper) Map(l mlsgrid.Listing) model.Property {
	ea := amenity.Extract(amenityRaw(l))

	p := model.Property{
		ID:                  l.ListingKey,
		MLSNumber:           firstNonEmpty(l.ListingID, l.ListingKey),
		Title:               Title(l, ea),
		Address:             address(l),
		City:                firstNonEmpty(strings.TrimSpace(l.City), "Unknown"),
		State:               firstNonEmpty(strings.TrimSpace(l.StateOrProvince), m.State, "NC"),
		ZipCode:             strings.TrimSpace(l.PostalCode),
		Price:               nonNegInt64(l.ListPrice.Float()),
		Acreage:             max(l.LotSizeAcres.Float(), 0),
		Bedrooms:            max(l.BedroomsTotal.Int(), 0),
		Bathrooms:           bathrooms(l),
		SquareFeet:          int(nonNegInt64(l.LivingArea.Float())),
		YearBuilt:           max(l.YearBuilt.Int(), 0),
		Description:         firstNonEmpty(strings.TrimSpace(l.PublicRemarks), noDescription),
		Images:              images(l),
		Features:            features(l),
		EquestrianAmenities: ea,
		ListingAgent:        m.agent(l),
		Status:              MapStatus(l.StandardStatus),
		ListDate:            m.listDate(l),
		PropertyType:        MapType(l.PropertyType, l.PropertySubType),
	}

	lat, lng := l.Latitude.Float(), l.Longitude.Float()
	if lat != 0 && lng != 0 {
		p.Coordinates = &model.Coordinates{Lat: lat, Lng: lng}
	}

	return p
}

func amenityRaw(l mlsgrid.Listing) amenity.Raw {
	raw := amenity.Raw{
		Stalls:               l.HorseStalls.Int(),
		IndoorArena:          l.HorseIndoorArena.Bool(),
		OutdoorArena:         l.HorseOutdoorArena.Bool(),
		Pastures:             l.HorsePastures.Int(),
		PastureAcreage:       l.HorsePastureAcreage.Float(),
		TackRoom:             l.HorseTackRoom.Bool(),
		FeedRoom:             l.HorseFeedRoom.Bool(),
		WashRack:             l.HorseWashRack.Bool(),
		RoundPen:             l.HorseRoundPen.Bool(),
		Fencing:              l.HorseFencing,
		WaterSource:          l.WaterSource,
		AdditionalStructures: l.HorseStructures,
		Remarks:              l.PublicRemarks,
		Amenities:            l.HorseAmenities,
	}
	if len(raw.Fencing) == 0 {
		raw.Fencing = l.Fencing
	}
	if l.HorseBarnSqFt.Valid && l.HorseBarnSqFt.Value > 0 {
		n := l.HorseBarnSqFt.Int()
		raw.BarnSquareFeet = &n
	}
	return raw
}

// Title builds a display title such as "12-Stall Indoor Arena Horse Farm in Tryon"
// from the listing and its resolved amenities.
func Title(l mlsgrid.Listing, ea model.EquestrianAmenities) string {
	var parts []string

	stalls := ea.Stalls
	acres := l.LotSizeAcres.Float()
	switch {
	case stalls > 0:
		parts = append(parts, strconv.Itoa(stalls)+"-Stall")
	case acres >= 5:
		parts = append(parts, strconv.Itoa(int(math.Round(acres)))+"-Acre")
	}

	if ea.HasIndoorArena {
		parts = append(parts, "Indoor Arena")
	}

	switch {
	case l.PropertyType == "Land" || (l.BedroomsTotal.Valid && l.BedroomsTotal.Value == 0):
		parts = append(parts, "Horse Property")
	case l.LivingArea.Float() > 5000:
		parts = append(parts, "Equestrian Estate")
	default:
		parts = append(parts, "Horse Farm")
	}

	if city := strings.TrimSpace(l.City); city != "" {
		parts = append(parts, "in "+city)
	}

	return strings.Join(parts, " ")
}

func address(l mlsgrid.Listing) string {
	var parts []string
	for _, s := range []string{l.StreetNumber, l.StreetName, l.StreetSuffix} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return noAddress
	}
	return strings.Join(parts, " ")
}

func bathrooms(l mlsgrid.Listing) float64 {
	if b := l.BathroomsTotalDecimal.Float(); b > 0 {
		return b
	}
	return float64(max(l.BathroomsTotalInteger.Int(), 0))
}

func images(l mlsgrid.Listing) []string {
	out := make([]string, 0, len(l.Media))
	for _, m := range l.Media {
		if u := strings.TrimSpace(m.MediaURL); u != "" {
			out = append(out, u)
		}
	}
	if len(out) == 0 {
		return []string{placeholderImage}
	}
	return out
}

func features(l mlsgrid.Listing) []string {
	out := make([]string, 0, maxFeatures)
	for _, group := range [][]string{l.InteriorFeatures, l.ExteriorFeatures, l.PoolFeatures, l.View} {
		for _, f := range group {
			if len(out) == maxFeatures {
				return out
			}
			out = append(out, f)
		}
	}
	return out
}

func (m Mapper) agent(l mlsgrid.Listing) model.Agent {
	name := strings.TrimSpace(l.ListAgentFullName)
	if name == "" {
		return m.Agent
	}
	return model.Agent{
		ID:            firstNonEmpty(l.ListAgentKey, "mls-agent"),
		Name:          name,
		Title:         "REALTOR",
		Phone:         l.ListAgentDirectPhone,
		Email:         l.ListAgentEmail,
		Photo:         defaultAgentPic,
		Specialties:   []string{"Equestrian Properties"},
		LicenseNumber: l.ListAgentMlsID,
	}
}

func (m Mapper) listDate(l mlsgrid.Listing) string {
	if d := strings.TrimSpace(l.ListingContractDate); d != "" {
		if t, err := time.Parse(time.DateOnly, d); err == nil {
			return t.Format(time.DateOnly)
		}
		// RESO timestamps sometimes arrive in full.
		if t, err := time.Parse(time.RFC3339, d); err == nil {
			return t.UTC().Format(time.DateOnly)
		}
	}
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	return now().UTC().Format(time.DateOnly)
}

func nonNegInt64(x float64) int64 {
	if !(x > 0) || math.IsInf(x, 1) || x > math.MaxInt64/2 {
		return 0
	}
	return int64(math.Round(x))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
