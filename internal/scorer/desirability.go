package scorer

import (
	"math"
	"slices"
	"strings"

	"github.com/chfrealty/horsefarm/internal/config"
	"github.com/chfrealty/horsefarm/internal/model"
)

// Scorer computes a cumulative integer desirability score per listing.
// Each contribution is capped independently so no single factor dominates.
type Scorer struct {
	cfg config.ScorerConfig
}

// New creates a Scorer. A zero-value config falls back to the defaults.
func New(cfg config.ScorerConfig) *Scorer {
	if cfg == (config.ScorerConfig{}) {
		cfg = DefaultScorerConfig()
	}
	return &Scorer{cfg: cfg}
}

// Score returns the desirability of p, always >= 0.
func Score(p model.Property) int {
	return New(DefaultScorerConfig()).Score(p)
}

// Breakdown is the per-factor contribution to a score.
type Breakdown struct {
	Stalls     int `json:"stalls"`
	Arenas     int `json:"arenas"`
	Amenities  int `json:"amenities"`
	Pastures   int `json:"pastures"`
	Acreage    int `json:"acreage"`
	Fencing    int `json:"fencing"`
	Structures int `json:"structures"`
}

// Total sums the contributions.
func (b Breakdown) Total() int {
	return b.Stalls + b.Arenas + b.Amenities + b.Pastures + b.Acreage + b.Fencing + b.Structures
}

// Score returns the desirability of p, always >= 0.
func (s *Scorer) Score(p model.Property) int {
	return s.Breakdown(p).Total()
}

// Breakdown returns the per-factor contributions for p.
func (s *Scorer) Breakdown(p model.Property) Breakdown {
	ea := p.EquestrianAmenities
	c := s.cfg

	var b Breakdown
	b.Stalls = capped(clampCount(ea.Stalls, c.StallCap)*c.PointsPerStall, c.StallCap)

	if ea.HasIndoorArena {
		b.Arenas += c.IndoorArenaPoints
	}
	if ea.HasOutdoorArena {
		b.Arenas += c.OutdoorArenaPoints
	}

	for _, has := range []bool{ea.HasTackRoom, ea.HasFeedRoom, ea.HasWashRack, ea.HasRoundPen} {
		if has {
			b.Amenities += c.AmenityPoints
		}
	}

	b.Pastures = capped(clampCount(ea.Pastures, c.PastureCap)*c.PointsPerPasture, c.PastureCap)

	// Whole acres only; NaN and negative acreage contribute nothing.
	acres := 0
	if p.Acreage > 0 && !math.IsNaN(p.Acreage) {
		acres = int(math.Min(math.Floor(p.Acreage), float64(c.AcreageCap)+1))
	}
	b.Acreage = capped(acres*c.PointsPerAcre, c.AcreageCap)

	if distinct(ea.FencingType) >= c.FencingMinTypes {
		b.Fencing = c.FencingBonus
	}

	b.Structures = distinct(ea.AdditionalStructures) * c.PointsPerStructure

	return b
}

// Ranked pairs a listing with its score.
type Ranked struct {
	Property model.Property `json:"property"`
	Score    int            `json:"score"`
}

// Rank orders props by descending score. Equal scores keep input order.
func (s *Scorer) Rank(props []model.Property) []Ranked {
	ranked := make([]Ranked, len(props))
	for i, p := range props {
		ranked[i] = Ranked{Property: p, Score: s.Score(p)}
	}
	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		return b.Score - a.Score
	})
	return ranked
}

// Featured returns the top n listings by score. n <= 0 selects the
// configured featured limit.
func (s *Scorer) Featured(props []model.Property, n int) []model.Property {
	if n <= 0 {
		n = s.cfg.FeaturedLimit
	}
	if n <= 0 {
		n = DefaultFeaturedLimit
	}

	ranked := s.Rank(props)
	if len(ranked) > n {
		ranked = ranked[:n]
	}

	out := make([]model.Property, len(ranked))
	for i, r := range ranked {
		out[i] = r.Property
	}
	return out
}

// Limit returns the configured featured limit.
func (s *Scorer) Limit() int {
	if s.cfg.FeaturedLimit > 0 {
		return s.cfg.FeaturedLimit
	}
	return DefaultFeaturedLimit
}

// clampCount bounds a count to [0, limit+1] so the points product cannot
// overflow; any count past limit already earns the full cap.
func clampCount(n, limit int) int {
	return min(max(n, 0), max(limit, 0)+1)
}

func capped(v, limit int) int {
	if v < 0 {
		return 0
	}
	return min(v, limit)
}

// distinct counts case-insensitively unique, non-blank entries.
func distinct(items []string) int {
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		k := strings.ToLower(strings.TrimSpace(it))
		if k == "" {
			continue
		}
		seen[k] = struct{}{}
	}
	return len(seen)
}
