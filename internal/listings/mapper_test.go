package listings

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chfrealty/horsefarm/internal/amenity"
	"github.com/chfrealty/horsefarm/internal/model"
	"github.com/chfrealty/horsefarm/pkg/mlsgrid"
)

func decodeListing(t *testing.T, raw string) mlsgrid.Listing {
	t.Helper()
	var l mlsgrid.Listing
	require.NoError(t, json.Unmarshal([]byte(raw), &l))
	return l
}

func testMapper() Mapper {
	return Mapper{
		State: "NC",
		Agent: model.Agent{ID: "1", Name: "Lara Murphy"},
		Now:   func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func TestMap_FullRecord(t *testing.T) {
	l := decodeListing(t, `{
		"ListingKey": "K100",
		"ListingId": "CAR4100",
		"ListPrice": 1250000,
		"PropertyType": "Farm",
		"StandardStatus": "Active Under Contract",
		"StreetNumber": "12",
		"StreetName": "Bridle",
		"StreetSuffix": "Path",
		"City": "Waxhaw",
		"StateOrProvince": "NC",
		"PostalCode": "28173",
		"BedroomsTotal": 4,
		"BathroomsTotalInteger": 3,
		"BathroomsTotalDecimal": 3.5,
		"LivingArea": "3400",
		"LotSizeAcres": 22.4,
		"YearBuilt": 2008,
		"PublicRemarks": "Beautiful 10 acre farm with 6 stalls, indoor arena, and board fencing. Tack room included.",
		"Media": [{"MediaKey":"a","MediaURL":"https://img/1.jpg"},{"MediaKey":"b","MediaURL":" "}],
		"InteriorFeatures": ["Fireplace"],
		"View": ["Mountain"],
		"ListAgentFullName": "Pat Rider",
		"ListAgentKey": "AG1",
		"ListAgentMlsId": "NC-999",
		"ListingContractDate": "2025-04-15",
		"Latitude": 34.92,
		"Longitude": -80.74
	}`)

	p := testMapper().Map(l)

	assert.Equal(t, "K100", p.ID)
	assert.Equal(t, "CAR4100", p.MLSNumber)
	assert.Equal(t, "6-Stall Indoor Arena Horse Farm in Waxhaw", p.Title)
	assert.Equal(t, "12 Bridle Path", p.Address)
	assert.Equal(t, int64(1250000), p.Price)
	assert.InDelta(t, 22.4, p.Acreage, 1e-9)
	assert.InDelta(t, 3.5, p.Bathrooms, 1e-9)
	assert.Equal(t, 3400, p.SquareFeet)
	assert.Equal(t, model.StatusPending, p.Status)
	assert.Equal(t, model.TypeFarm, p.PropertyType)
	assert.Equal(t, "2025-04-15", p.ListDate)
	assert.Equal(t, []string{"https://img/1.jpg"}, p.Images)
	assert.Equal(t, []string{"Fireplace", "Mountain"}, p.Features)
	require.NotNil(t, p.Coordinates)
	assert.InDelta(t, 34.92, p.Coordinates.Lat, 1e-9)

	assert.Equal(t, "Pat Rider", p.ListingAgent.Name)
	assert.Equal(t, "AG1", p.ListingAgent.ID)
	assert.Equal(t, "REALTOR", p.ListingAgent.Title)
	assert.Equal(t, "NC-999", p.ListingAgent.LicenseNumber)

	ea := p.EquestrianAmenities
	assert.Equal(t, 6, ea.Stalls)
	assert.True(t, ea.HasIndoorArena)
	assert.False(t, ea.HasOutdoorArena)
	assert.True(t, ea.HasTackRoom)
	assert.Equal(t, []string{"Board"}, ea.FencingType)
}

func TestMap_Defaults(t *testing.T) {
	p := testMapper().Map(decodeListing(t, `{"ListingKey": "K1"}`))

	assert.Equal(t, "K1", p.MLSNumber)
	assert.Equal(t, noAddress, p.Address)
	assert.Equal(t, "Unknown", p.City)
	assert.Equal(t, "NC", p.State)
	assert.Equal(t, noDescription, p.Description)
	assert.Equal(t, []string{placeholderImage}, p.Images)
	assert.NotNil(t, p.Features)
	assert.Empty(t, p.Features)
	assert.Equal(t, model.StatusActive, p.Status)
	assert.Equal(t, model.TypeFarm, p.PropertyType)
	assert.Equal(t, "2025-06-01", p.ListDate)
	assert.Nil(t, p.Coordinates)
	assert.Equal(t, "Lara Murphy", p.ListingAgent.Name)
	assert.Equal(t, "Horse Farm", p.Title)
	assert.Zero(t, p.Price)
	assert.NotNil(t, p.EquestrianAmenities.FencingType)
}

func TestMap_MalformedNumbersAreAbsent(t *testing.T) {
	p := testMapper().Map(decodeListing(t, `{
		"ListingKey": "K2",
		"ListPrice": "call agent",
		"LotSizeAcres": "approx. 10",
		"BedroomsTotal": "three",
		"HorseStalls": "many",
		"Latitude": "34.9",
		"Longitude": 0
	}`))

	assert.Zero(t, p.Price)
	assert.Zero(t, p.Acreage)
	assert.Zero(t, p.Bedrooms)
	assert.Zero(t, p.EquestrianAmenities.Stalls)
	assert.Nil(t, p.Coordinates)
}

func TestMap_StructuredAmenitiesWin(t *testing.T) {
	p := testMapper().Map(decodeListing(t, `{
		"ListingKey": "K3",
		"HorseStalls": 10,
		"HorseFencing": ["Vinyl"],
		"Fencing": ["Wire"],
		"HorseBarnSqFt": "4800",
		"PublicRemarks": "3 stalls with board fencing"
	}`))

	ea := p.EquestrianAmenities
	assert.Equal(t, 10, ea.Stalls)
	assert.Equal(t, []string{"Vinyl"}, ea.FencingType)
	require.NotNil(t, ea.BarnSquareFeet)
	assert.Equal(t, 4800, *ea.BarnSquareFeet)
}

func TestMap_ResoFencingWhenNoHorseFencing(t *testing.T) {
	p := testMapper().Map(decodeListing(t, `{"ListingKey": "K4", "Fencing": "Wire, Electric"}`))
	assert.Equal(t, []string{"Wire", "Electric"}, p.EquestrianAmenities.FencingType)
}

func TestMap_FeaturesCapped(t *testing.T) {
	p := testMapper().Map(decodeListing(t, `{
		"ListingKey": "K5",
		"InteriorFeatures": ["a","b","c","d","e","f"],
		"ExteriorFeatures": ["g","h","i","j","k","l"]
	}`))
	assert.Len(t, p.Features, maxFeatures)
	assert.Equal(t, "j", p.Features[9])
}

func TestMap_DateVariants(t *testing.T) {
	m := testMapper()
	assert.Equal(t, "2024-03-09", m.Map(decodeListing(t, `{"ListingContractDate":"2024-03-09T10:00:00Z"}`)).ListDate)
	assert.Equal(t, "2025-06-01", m.Map(decodeListing(t, `{"ListingContractDate":"last week"}`)).ListDate)
}

func TestMapType(t *testing.T) {
	tests := []struct {
		typ, sub string
		want     model.PropertyType
	}{
		{"Farm", "", model.TypeFarm},
		{"Farm/Ranch", "", model.TypeFarm},
		{"Ranch", "", model.TypeRanch},
		{"Residential", "", model.TypeEstate},
		{"Single Family", "", model.TypeEstate},
		{"Land", "", model.TypeLand},
		{"Lots/Land", "", model.TypeLand},
		{"Commercial", "Ranch", model.TypeRanch},
		{"Commercial", "Office", model.TypeFarm},
		{"", "", model.TypeFarm},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapType(tt.typ, tt.sub), "%q/%q", tt.typ, tt.sub)
	}
}

func TestMapStatus(t *testing.T) {
	assert.Equal(t, model.StatusActive, MapStatus("Active"))
	assert.Equal(t, model.StatusPending, MapStatus("Active Under Contract"))
	assert.Equal(t, model.StatusPending, MapStatus("Pending"))
	assert.Equal(t, model.StatusSold, MapStatus("Closed"))
	assert.Equal(t, model.StatusSold, MapStatus("Sold"))
	assert.Equal(t, model.StatusActive, MapStatus("Coming Soon"))
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"acreage", `{"LotSizeAcres": 24.6, "BedroomsTotal": 3, "City": "Tryon"}`, "25-Acre Horse Farm in Tryon"},
		{"small lot", `{"LotSizeAcres": 3, "BedroomsTotal": 3}`, "Horse Farm"},
		{"land", `{"PropertyType": "Land", "LotSizeAcres": 15, "City": "Mill Spring"}`, "15-Acre Horse Property in Mill Spring"},
		{"no bedrooms", `{"BedroomsTotal": 0}`, "Horse Property"},
		{"estate", `{"HorseStalls": 12, "LivingArea": 6500, "BedroomsTotal": 5}`, "12-Stall Equestrian Estate"},
		{"indoor only", `{"HorseIndoorArena": true, "BedroomsTotal": 2}`, "Indoor Arena Horse Farm"},
		{"from remarks", `{"PublicRemarks": "8 stall barn and indoor riding arena", "BedroomsTotal": 3}`, "8-Stall Indoor Arena Horse Farm"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := decodeListing(t, tt.raw)
			assert.Equal(t, tt.want, Title(l, amenity.Extract(amenityRaw(l))))
		})
	}
}
