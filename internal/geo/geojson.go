// Package geo renders listings as a GeoJSON layer for the map view.
package geo

import (
	"math"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/chfrealty/horsefarm/internal/model"
)

// Features converts every listing with valid coordinates into a point
// feature. Listings without coordinates are skipped. The collection carries
// a bounding box when at least one point is present.
func Features(props []model.Property) (*geojson.FeatureCollection, error) {
	fc := &geojson.FeatureCollection{Features: []*geojson.Feature{}}
	var bounds *geom.Bounds

	for _, p := range props {
		if !Valid(p.Coordinates) {
			continue
		}

		pt, err := geom.NewPoint(geom.XY).SetCoords(geom.Coord{p.Coordinates.Lng, p.Coordinates.Lat})
		if err != nil {
			return nil, eris.Wrapf(err, "geo: point for %s", p.ID)
		}

		if bounds == nil {
			bounds = geom.NewBounds(geom.XY)
		}
		bounds.Extend(pt)

		fc.Features = append(fc.Features, &geojson.Feature{
			ID:         p.ID,
			Geometry:   pt,
			Properties: properties(p),
		})
	}

	fc.BBox = bounds
	return fc, nil
}

// Valid reports whether c is a usable WGS84 point. The origin is treated as
// missing data.
func Valid(c *model.Coordinates) bool {
	if c == nil {
		return false
	}
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) {
		return false
	}
	if c.Lat == 0 && c.Lng == 0 {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

func properties(p model.Property) map[string]any {
	m := map[string]any{
		"title":         p.Title,
		"price":         p.Price,
		"acreage":       p.Acreage,
		"city":          p.City,
		"status":        string(p.Status),
		"property_type": string(p.PropertyType),
		"stalls":        p.EquestrianAmenities.Stalls,
		"url":           "/properties/" + p.ID,
	}
	if len(p.Images) > 0 {
		m["image"] = p.Images[0]
	}
	return m
}
