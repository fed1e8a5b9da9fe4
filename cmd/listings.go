package main

import (
	"net/url"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chfrealty/horsefarm/internal/filter"
	"github.com/chfrealty/horsefarm/internal/model"
	"github.com/chfrealty/horsefarm/internal/source"
)

var (
	listingsFeatured int
	listingsID       string
	listingsFormat   string
)

// listingFilterFlags maps CLI flags onto the query parameters understood by
// filter.ParseQuery.
var listingFilterFlags = map[string]string{
	"min-price":     filter.ParamMinPrice,
	"max-price":     filter.ParamMaxPrice,
	"min-acreage":   filter.ParamMinAcreage,
	"max-acreage":   filter.ParamMaxAcreage,
	"min-stalls":    filter.ParamMinStalls,
	"city":          filter.ParamCity,
	"indoor-arena":  filter.ParamHasIndoorArena,
	"outdoor-arena": filter.ParamHasOutdoorArena,
	"type":          filter.ParamPropertyType,
	"sort":          filter.ParamSort,
}

var listingsCmd = &cobra.Command{
	Use:   "listings",
	Short: "Print listings (live from MLS Grid, or the fallback dataset)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		var res source.Result[[]model.Property]
		switch {
		case listingsID != "":
			one, ok := a.listings.Get(ctx, listingsID)
			if !ok {
				return one.Reason
			}
			res = source.Map(one, func(p model.Property) []model.Property { return []model.Property{p} })
		case listingsFeatured > 0:
			res = a.listings.Featured(ctx, listingsFeatured)
		default:
			f, key := filter.ParseQuery(listingQuery(cmd))
			res = a.listings.Search(ctx, f, key)
		}

		zap.L().Info("listings",
			zap.String("origin", string(res.Origin)),
			zap.Int("count", len(res.Value)),
		)
		return printListings(out, listingsFormat, res.Value, a.scorer)
	},
}

// listingQuery collects the filter flags the user actually set.
func listingQuery(cmd *cobra.Command) url.Values {
	q := url.Values{}
	for flag, param := range listingFilterFlags {
		f := cmd.Flags().Lookup(flag)
		if f != nil && f.Changed {
			q.Set(param, f.Value.String())
		}
	}
	return q
}

func init() {
	f := listingsCmd.Flags()
	f.IntVar(&listingsFeatured, "featured", 0, "print the N highest-scoring listings")
	f.StringVar(&listingsID, "id", "", "print one listing by listing key or MLS number")
	f.StringVar(&listingsFormat, "format", formatJSON, "output format: json, csv or table")
	f.Int64("min-price", 0, "minimum list price")
	f.Int64("max-price", 0, "maximum list price")
	f.Float64("min-acreage", 0, "minimum acreage")
	f.Float64("max-acreage", 0, "maximum acreage")
	f.Int("min-stalls", 0, "minimum stall count")
	f.String("city", "", "city (case-insensitive)")
	f.Bool("indoor-arena", false, "require an indoor arena")
	f.Bool("outdoor-arena", false, "require an outdoor arena")
	f.String("type", "", "property type: farm, ranch, estate or land")
	f.String("sort", "", "sort: price-high, price-low, newest or acreage")
	rootCmd.AddCommand(listingsCmd)
}
