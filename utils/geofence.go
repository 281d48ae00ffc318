package utils

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// ParseBoundary decodes a farm boundary given as a GeoJSON Polygon
// geometry. The boundary is optional on farms; callers pass only non-empty
// payloads here.
func ParseBoundary(raw []byte) (orb.Polygon, error) {
	geom, err := geojson.UnmarshalGeometry(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid boundary GeoJSON: %w", err)
	}

	poly, ok := geom.Geometry().(orb.Polygon)
	if !ok {
		return nil, errors.New("boundary must be a GeoJSON Polygon")
	}
	// A closed ring repeats its first point, so a triangle has 4 entries
	if len(poly) == 0 || len(poly[0]) < 4 {
		return nil, errors.New("boundary ring needs at least 3 distinct points")
	}

	for _, ring := range poly {
		for i, pt := range ring {
			if err := validatePoint(pt); err != nil {
				return nil, fmt.Errorf("invalid boundary coordinate at index %d: %w", i, err)
			}
		}
	}
	return poly, nil
}

func validatePoint(pt orb.Point) error {
	if pt.Lon() < -180 || pt.Lon() > 180 {
		return fmt.Errorf("longitude %.6f is out of valid range [-180, 180]", pt.Lon())
	}
	if pt.Lat() < -90 || pt.Lat() > 90 {
		return fmt.Errorf("latitude %.6f is out of valid range [-90, 90]", pt.Lat())
	}
	return nil
}

// BoundaryStats returns the planar area and centroid of a boundary polygon
// for display alongside farm listings.
func BoundaryStats(poly orb.Polygon) (area float64, centroid orb.Point) {
	centroid, area = planar.CentroidArea(poly)
	if area < 0 {
		area = -area
	}
	return area, centroid
}
