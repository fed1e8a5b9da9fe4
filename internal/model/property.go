package model

import "time"

// PropertyStatus is the listing lifecycle state.
type PropertyStatus string

const (
	StatusActive  PropertyStatus = "active"
	StatusPending PropertyStatus = "pending"
	StatusSold    PropertyStatus = "sold"
)

// Valid reports whether s is one of the enumerated statuses.
func (s PropertyStatus) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusSold:
		return true
	default:
		return false
	}
}

// PropertyType classifies a listing for search and display.
type PropertyType string

const (
	TypeFarm   PropertyType = "farm"
	TypeRanch  PropertyType = "ranch"
	TypeEstate PropertyType = "estate"
	TypeLand   PropertyType = "land"
)

// Valid reports whether t is one of the enumerated property types.
func (t PropertyType) Valid() bool {
	switch t {
	case TypeFarm, TypeRanch, TypeEstate, TypeLand:
		return true
	default:
		return false
	}
}

// PropertyTypes lists every supported property type in display order.
func PropertyTypes() []PropertyType {
	return []PropertyType{TypeFarm, TypeRanch, TypeEstate, TypeLand}
}

// Property is a real-estate listing as rendered by the site.
type Property struct {
	ID                  string              `json:"id" yaml:"id"`
	MLSNumber           string              `json:"mls_number" yaml:"mls_number"`
	Title               string              `json:"title" yaml:"title"`
	Address             string              `json:"address" yaml:"address"`
	City                string              `json:"city" yaml:"city"`
	State               string              `json:"state" yaml:"state"`
	ZipCode             string              `json:"zip_code" yaml:"zip_code"`
	Price               int64               `json:"price" yaml:"price"`
	Acreage             float64             `json:"acreage" yaml:"acreage"`
	Bedrooms            int                 `json:"bedrooms" yaml:"bedrooms"`
	Bathrooms           float64             `json:"bathrooms" yaml:"bathrooms"`
	SquareFeet          int                 `json:"square_feet" yaml:"square_feet"`
	YearBuilt           int                 `json:"year_built" yaml:"year_built"`
	Description         string              `json:"description" yaml:"description"`
	Images              []string            `json:"images" yaml:"images"`
	Features            []string            `json:"features" yaml:"features"`
	EquestrianAmenities EquestrianAmenities `json:"equestrian_amenities" yaml:"equestrian_amenities"`
	ListingAgent        Agent               `json:"listing_agent" yaml:"listing_agent"`
	Status              PropertyStatus      `json:"status" yaml:"status"`
	ListDate            string              `json:"list_date" yaml:"list_date"` // YYYY-MM-DD
	PropertyType        PropertyType        `json:"property_type" yaml:"property_type"`
	Coordinates         *Coordinates        `json:"coordinates,omitempty" yaml:"coordinates,omitempty"`
}

// ListedAt parses ListDate. Unparseable dates yield the zero time.
func (p Property) ListedAt() time.Time {
	t, err := time.Parse(time.DateOnly, p.ListDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// EquestrianAmenities describes horse-keeping facilities. Lists are never nil
// once produced by the amenity extractor or the fallback dataset.
type EquestrianAmenities struct {
	Stalls               int      `json:"stalls" yaml:"stalls"`
	HasIndoorArena       bool     `json:"has_indoor_arena" yaml:"has_indoor_arena"`
	HasOutdoorArena      bool     `json:"has_outdoor_arena" yaml:"has_outdoor_arena"`
	Pastures             int      `json:"pastures" yaml:"pastures"`
	PastureAcreage       float64  `json:"pasture_acreage" yaml:"pasture_acreage"`
	HasTackRoom          bool     `json:"has_tack_room" yaml:"has_tack_room"`
	HasFeedRoom          bool     `json:"has_feed_room" yaml:"has_feed_room"`
	HasWashRack          bool     `json:"has_wash_rack" yaml:"has_wash_rack"`
	HasRoundPen          bool     `json:"has_round_pen" yaml:"has_round_pen"`
	FencingType          []string `json:"fencing_type" yaml:"fencing_type"`
	WaterSource          []string `json:"water_source" yaml:"water_source"`
	BarnSquareFeet       *int     `json:"barn_square_feet,omitempty" yaml:"barn_square_feet,omitempty"`
	AdditionalStructures []string `json:"additional_structures" yaml:"additional_structures"`
}

// Normalize replaces nil lists with empty ones.
func (a EquestrianAmenities) Normalize() EquestrianAmenities {
	if a.FencingType == nil {
		a.FencingType = []string{}
	}
	if a.WaterSource == nil {
		a.WaterSource = []string{}
	}
	if a.AdditionalStructures == nil {
		a.AdditionalStructures = []string{}
	}
	return a
}

// Agent is a listing agent. Agents are shared across many properties.
type Agent struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Title         string   `json:"title" yaml:"title"`
	Phone         string   `json:"phone" yaml:"phone"`
	Email         string   `json:"email" yaml:"email"`
	Photo         string   `json:"photo" yaml:"photo"`
	Bio           string   `json:"bio" yaml:"bio"`
	Specialties   []string `json:"specialties" yaml:"specialties"`
	LicenseNumber string   `json:"license_number" yaml:"license_number"`
}
