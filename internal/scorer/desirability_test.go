package scorer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chfrealty/horsefarm/internal/amenity"
	"github.com/chfrealty/horsefarm/internal/config"
	"github.com/chfrealty/horsefarm/internal/model"
)

func richFarm() model.Property {
	return model.Property{
		ID:      "a",
		Acreage: 18,
		EquestrianAmenities: model.EquestrianAmenities{
			Stalls:               12,
			HasIndoorArena:       true,
			HasOutdoorArena:      true,
			Pastures:             4,
			HasTackRoom:          true,
			HasFeedRoom:          true,
			HasWashRack:          true,
			HasRoundPen:          true,
			FencingType:          []string{"Board", "Electric"},
			AdditionalStructures: []string{"Hay Barn", "Run-in Shed", "Guest House"},
		},
	}
}

func bareLot() model.Property {
	return model.Property{ID: "b", Acreage: 1}
}

func TestScore_RichFarmBeatsBareLot(t *testing.T) {
	a, b := richFarm(), bareLot()

	// 24 stalls + 45 arenas + 20 amenities + 12 pastures + 18 acres + 10 fencing + 9 structures.
	assert.Equal(t, 138, Score(a))
	assert.Equal(t, 1, Score(b))
	assert.Greater(t, Score(a), Score(b))
}

func TestScore_Breakdown(t *testing.T) {
	b := New(DefaultScorerConfig()).Breakdown(richFarm())
	assert.Equal(t, Breakdown{
		Stalls:     24,
		Arenas:     45,
		Amenities:  20,
		Pastures:   12,
		Acreage:    18,
		Fencing:    10,
		Structures: 9,
	}, b)
	assert.Equal(t, 138, b.Total())
}

func TestScore_Caps(t *testing.T) {
	p := model.Property{
		Acreage: 400,
		EquestrianAmenities: model.EquestrianAmenities{
			Stalls:   80,
			Pastures: 25,
		},
	}
	b := New(config.ScorerConfig{}).Breakdown(p)
	assert.Equal(t, 50, b.Stalls)
	assert.Equal(t, 30, b.Pastures)
	assert.Equal(t, 50, b.Acreage)
}

func TestScore_CapsHugeCounts(t *testing.T) {
	p := model.Property{
		EquestrianAmenities: model.EquestrianAmenities{
			Stalls:   1 << 62,
			Pastures: 1 << 62,
		},
	}
	b := New(DefaultScorerConfig()).Breakdown(p)
	assert.Equal(t, 50, b.Stalls)
	assert.Equal(t, 30, b.Pastures)

	small := model.Property{EquestrianAmenities: model.EquestrianAmenities{Stalls: 30}}
	assert.GreaterOrEqual(t, Score(p), Score(small))
}

func TestScore_CapsHugeRemarksCount(t *testing.T) {
	ea := amenity.Extract(amenity.Raw{Remarks: "4611686018427387904 stalls and 4611686018427387904 pastures"})
	b := New(DefaultScorerConfig()).Breakdown(model.Property{EquestrianAmenities: ea})
	assert.Equal(t, 50, b.Stalls)
	assert.Equal(t, 30, b.Pastures)
}

func TestScore_MonotonicInStalls(t *testing.T) {
	prev := -1
	for stalls := 0; stalls <= 40; stalls++ {
		p := model.Property{EquestrianAmenities: model.EquestrianAmenities{Stalls: stalls}}
		got := Score(p)
		assert.GreaterOrEqual(t, got, prev, "stalls=%d", stalls)
		prev = got
	}
	assert.Equal(t, 50, prev)
}

func TestScore_AcreageFloorAndGuards(t *testing.T) {
	assert.Equal(t, 10, Score(model.Property{Acreage: 10.9}))
	assert.Equal(t, 0, Score(model.Property{Acreage: -5}))
	assert.Equal(t, 0, Score(model.Property{Acreage: math.NaN()}))
	assert.Equal(t, 50, Score(model.Property{Acreage: math.Inf(1)}))
	assert.Equal(t, 50, Score(model.Property{Acreage: 1e300}))
}

func TestScore_FencingCountsDistinctTypes(t *testing.T) {
	same := model.Property{EquestrianAmenities: model.EquestrianAmenities{
		FencingType: []string{"Board", "board", " Board "},
	}}
	assert.Equal(t, 0, Score(same))

	mixed := model.Property{EquestrianAmenities: model.EquestrianAmenities{
		FencingType: []string{"Board", "Vinyl"},
	}}
	assert.Equal(t, 10, Score(mixed))
}

func TestScore_StructuresDistinctUncapped(t *testing.T) {
	p := model.Property{EquestrianAmenities: model.EquestrianAmenities{
		AdditionalStructures: []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "A", ""},
	}}
	assert.Equal(t, 30, Score(p))
}

func TestScore_NegativeCountsIgnored(t *testing.T) {
	p := model.Property{EquestrianAmenities: model.EquestrianAmenities{Stalls: -4, Pastures: -2}}
	assert.Equal(t, 0, Score(p))
}

func TestFeatured_TopNStable(t *testing.T) {
	props := []model.Property{
		{ID: "low", Acreage: 1},
		{ID: "tie1", Acreage: 5},
		{ID: "high", Acreage: 40},
		{ID: "tie2", Acreage: 5},
	}

	s := New(DefaultScorerConfig())
	got := s.Featured(props, 3)
	require.Len(t, got, 3)
	assert.Equal(t, "high", got[0].ID)
	assert.Equal(t, "tie1", got[1].ID)
	assert.Equal(t, "tie2", got[2].ID)

	// Input untouched.
	assert.Equal(t, "low", props[0].ID)
}

func TestFeatured_DefaultLimit(t *testing.T) {
	props := make([]model.Property, 10)
	for i := range props {
		props[i] = model.Property{ID: string(rune('a' + i)), Acreage: float64(i)}
	}

	got := New(DefaultScorerConfig()).Featured(props, 0)
	require.Len(t, got, DefaultFeaturedLimit)
	assert.Equal(t, "j", got[0].ID)
}

func TestFeatured_FewerThanN(t *testing.T) {
	got := New(DefaultScorerConfig()).Featured([]model.Property{bareLot()}, 6)
	assert.Len(t, got, 1)

	assert.Empty(t, New(DefaultScorerConfig()).Featured(nil, 6))
}

func TestValidateConfig(t *testing.T) {
	require.NoError(t, ValidateConfig(DefaultScorerConfig()))

	bad := DefaultScorerConfig()
	bad.StallCap = -1
	bad.FencingMinTypes = 0
	err := ValidateConfig(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stall_cap must be >= 0")
	assert.Contains(t, err.Error(), "fencing_min_types must be >= 1")
}

func TestCustomWeights(t *testing.T) {
	cfg := DefaultScorerConfig()
	cfg.IndoorArenaPoints = 100
	s := New(cfg)

	p := model.Property{EquestrianAmenities: model.EquestrianAmenities{HasIndoorArena: true}}
	assert.Equal(t, 100, s.Score(p))
	assert.Equal(t, 25, Score(p))
}
