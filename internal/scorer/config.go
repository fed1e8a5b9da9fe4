// Package scorer ranks listings by equestrian desirability.
package scorer

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/chfrealty/horsefarm/internal/config"
)

// DefaultFeaturedLimit is the number of featured listings when the caller
// does not supply one.
const DefaultFeaturedLimit = 6

// DefaultScorerConfig returns the standard weights.
func DefaultScorerConfig() config.ScorerConfig {
	return config.ScorerConfig{
		PointsPerStall:     2,
		StallCap:           50,
		IndoorArenaPoints:  25,
		OutdoorArenaPoints: 20,
		AmenityPoints:      5,
		PointsPerPasture:   3,
		PastureCap:         30,
		PointsPerAcre:      1,
		AcreageCap:         50,
		FencingBonus:       10,
		FencingMinTypes:    2,
		PointsPerStructure: 3,
		FeaturedLimit:      DefaultFeaturedLimit,
	}
}

// ValidateConfig checks that a ScorerConfig is internally consistent.
func ValidateConfig(c config.ScorerConfig) error {
	var errs []string

	weights := []struct {
		name string
		val  int
	}{
		{"points_per_stall", c.PointsPerStall},
		{"stall_cap", c.StallCap},
		{"indoor_arena_points", c.IndoorArenaPoints},
		{"outdoor_arena_points", c.OutdoorArenaPoints},
		{"amenity_points", c.AmenityPoints},
		{"points_per_pasture", c.PointsPerPasture},
		{"pasture_cap", c.PastureCap},
		{"points_per_acre", c.PointsPerAcre},
		{"acreage_cap", c.AcreageCap},
		{"fencing_bonus", c.FencingBonus},
		{"points_per_structure", c.PointsPerStructure},
	}
	for _, w := range weights {
		if w.val < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", w.name))
		}
	}

	if c.FencingMinTypes < 1 {
		errs = append(errs, "fencing_min_types must be >= 1")
	}
	if c.FeaturedLimit < 0 {
		errs = append(errs, "featured_limit must be >= 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
