package mlsgrid

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Listing is a RESO Data Dictionary Property record. Numeric and boolean
// fields tolerate string encodings; unparseable values decode as absent.
type Listing struct {
	ListingKey            string    `json:"ListingKey"`
	ListingID             string    `json:"ListingId,omitempty"`
	ModificationTimestamp string    `json:"ModificationTimestamp,omitempty"`
	ListPrice             FlexFloat `json:"ListPrice"`
	PropertyType          string    `json:"PropertyType,omitempty"`
	PropertySubType       string    `json:"PropertySubType,omitempty"`
	StandardStatus        string    `json:"StandardStatus,omitempty"`

	StreetNumber    string    `json:"StreetNumber,omitempty"`
	StreetName      string    `json:"StreetName,omitempty"`
	StreetSuffix    string    `json:"StreetSuffix,omitempty"`
	City            string    `json:"City,omitempty"`
	StateOrProvince string    `json:"StateOrProvince,omitempty"`
	PostalCode      string    `json:"PostalCode,omitempty"`
	County          string    `json:"CountyOrParish,omitempty"`
	Latitude        FlexFloat `json:"Latitude"`
	Longitude       FlexFloat `json:"Longitude"`

	BedroomsTotal         FlexInt   `json:"BedroomsTotal"`
	BathroomsTotalInteger FlexInt   `json:"BathroomsTotalInteger"`
	BathroomsTotalDecimal FlexFloat `json:"BathroomsTotalDecimal"`
	LivingArea            FlexFloat `json:"LivingArea"`
	LotSizeAcres          FlexFloat `json:"LotSizeAcres"`
	YearBuilt             FlexInt   `json:"YearBuilt"`

	PublicRemarks string  `json:"PublicRemarks,omitempty"`
	Media         []Media `json:"Media,omitempty"`

	ListAgentKey         string `json:"ListAgentKey,omitempty"`
	ListAgentMlsID       string `json:"ListAgentMlsId,omitempty"`
	ListAgentFullName    string `json:"ListAgentFullName,omitempty"`
	ListAgentDirectPhone string `json:"ListAgentDirectPhone,omitempty"`
	ListAgentEmail       string `json:"ListAgentEmail,omitempty"`

	ListingContractDate string `json:"ListingContractDate,omitempty"`

	InteriorFeatures StringList `json:"InteriorFeatures,omitempty"`
	ExteriorFeatures StringList `json:"ExteriorFeatures,omitempty"`
	PoolFeatures     StringList `json:"PoolFeatures,omitempty"`
	View             StringList `json:"View,omitempty"`
	WaterSource      StringList `json:"WaterSource,omitempty"`
	Fencing          StringList `json:"Fencing,omitempty"`

	// Local equestrian fields.
	HorseStalls         FlexInt    `json:"HorseStalls"`
	HorseIndoorArena    FlexBool   `json:"HorseIndoorArena"`
	HorseOutdoorArena   FlexBool   `json:"HorseOutdoorArena"`
	HorsePastures       FlexInt    `json:"HorsePastures"`
	HorsePastureAcreage FlexFloat  `json:"HorsePastureAcreage"`
	HorseTackRoom       FlexBool   `json:"HorseTackRoom"`
	HorseFeedRoom       FlexBool   `json:"HorseFeedRoom"`
	HorseWashRack       FlexBool   `json:"HorseWashRack"`
	HorseRoundPen       FlexBool   `json:"HorseRoundPen"`
	HorseFencing        StringList `json:"HorseFencing,omitempty"`
	HorseBarnSqFt       FlexInt    `json:"HorseBarnSqFt"`
	HorseStructures     StringList `json:"HorseStructures,omitempty"`
	HorseAmenities      string     `json:"HorseAmenities,omitempty"`
}

// Media is a listing photo or tour.
type Media struct {
	MediaKey         string  `json:"MediaKey"`
	MediaURL         string  `json:"MediaURL"`
	MediaType        string  `json:"MediaType,omitempty"`
	Order            FlexInt `json:"Order"`
	ShortDescription string  `json:"ShortDescription,omitempty"`
}

// DefaultSelect is the field list requested for listing queries.
var DefaultSelect = []string{
	"ListingKey", "ListingId", "ListPrice", "PropertyType", "PropertySubType", "StandardStatus",
	"StreetNumber", "StreetName", "StreetSuffix", "City", "StateOrProvince", "PostalCode",
	"BedroomsTotal", "BathroomsTotalInteger", "BathroomsTotalDecimal", "LotSizeAcres",
	"LivingArea", "YearBuilt", "PublicRemarks", "ListAgentKey", "ListAgentMlsId",
	"ListAgentFullName", "ListAgentDirectPhone", "ListAgentEmail", "ListingContractDate",
	"Latitude", "Longitude", "InteriorFeatures", "ExteriorFeatures", "PoolFeatures", "View",
	"WaterSource", "Fencing", "ModificationTimestamp",
}

var null = []byte("null")

// unquote strips a JSON string wrapper. ok is false for null.
func unquote(b []byte) (string, bool) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, null) {
		return "", false
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", false
		}
		return strings.TrimSpace(s), true
	}
	return string(b), true
}

// FlexInt is an integer that may arrive as a number or a numeric string.
type FlexInt struct {
	Value int64
	Valid bool
}

// UnmarshalJSON never fails; bad input leaves the value absent.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	*f = FlexInt{}
	s, ok := unquote(b)
	if !ok || s == "" {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*f = FlexInt{Value: n, Valid: true}
		return nil
	}
	// Some feeds send integral counts as decimals.
	if x, err := strconv.ParseFloat(s, 64); err == nil && x == float64(int64(x)) {
		*f = FlexInt{Value: int64(x), Valid: true}
	}
	return nil
}

// MarshalJSON renders absent values as null.
func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return null, nil
	}
	return []byte(strconv.FormatInt(f.Value, 10)), nil
}

// Int returns the value or 0 when absent.
func (f FlexInt) Int() int {
	if !f.Valid {
		return 0
	}
	return int(f.Value)
}

// FlexFloat is a decimal that may arrive as a number or a numeric string.
type FlexFloat struct {
	Value float64
	Valid bool
}

// UnmarshalJSON never fails; bad input leaves the value absent.
func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	*f = FlexFloat{}
	s, ok := unquote(b)
	if !ok || s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	if x, err := strconv.ParseFloat(s, 64); err == nil {
		*f = FlexFloat{Value: x, Valid: true}
	}
	return nil
}

// MarshalJSON renders absent values as null.
func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return null, nil
	}
	return []byte(strconv.FormatFloat(f.Value, 'f', -1, 64)), nil
}

// Float returns the value or 0 when absent.
func (f FlexFloat) Float() float64 {
	if !f.Valid {
		return 0
	}
	return f.Value
}

// FlexBool is a boolean that may arrive as true/false, "Y"/"N", "yes"/"no" or 0/1.
type FlexBool struct {
	Value bool
	Valid bool
}

// UnmarshalJSON never fails; bad input leaves the value absent.
func (f *FlexBool) UnmarshalJSON(b []byte) error {
	*f = FlexBool{}
	s, ok := unquote(b)
	if !ok {
		return nil
	}
	switch strings.ToLower(s) {
	case "true", "t", "y", "yes", "1":
		*f = FlexBool{Value: true, Valid: true}
	case "false", "f", "n", "no", "0":
		*f = FlexBool{Value: false, Valid: true}
	}
	return nil
}

// MarshalJSON renders absent values as null.
func (f FlexBool) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return null, nil
	}
	return []byte(strconv.FormatBool(f.Value)), nil
}

// Bool returns the value or false when absent.
func (f FlexBool) Bool() bool {
	return f.Valid && f.Value
}

// StringList is a RESO lookup list. Arrays and comma-separated strings are
// both accepted.
type StringList []string

// UnmarshalJSON never fails; bad input leaves the list empty.
func (l *StringList) UnmarshalJSON(b []byte) error {
	*l = nil
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, null) {
		return nil
	}

	var arr []string
	if b[0] == '[' {
		if err := json.Unmarshal(b, &arr); err != nil {
			return nil
		}
	} else {
		s, ok := unquote(b)
		if !ok {
			return nil
		}
		arr = strings.Split(s, ",")
	}

	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	*l = out
	return nil
}
