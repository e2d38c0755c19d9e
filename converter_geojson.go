package osmnet

import (
	"fmt"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
)

// PrepareGeoJSON returns GeoJSON representation of geometry
func PrepareGeoJSON(geom orb.Geometry) (string, error) {
	prepared, err := geoJSONGeometry(geom)
	if err != nil {
		return "", err
	}
	b, err := prepared.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func geoJSONGeometry(geom orb.Geometry) (*geojson.Geometry, error) {
	switch g := geom.(type) {
	case orb.Point:
		return geojson.NewPointGeometry(pointCoords(g)), nil
	case orb.MultiPoint:
		return geojson.NewMultiPointGeometry(lineCoords(orb.LineString(g))...), nil
	case orb.LineString:
		return geojson.NewLineStringGeometry(lineCoords(g)), nil
	case orb.MultiLineString:
		lines := make([][][]float64, len(g))
		for i := range g {
			lines[i] = lineCoords(g[i])
		}
		return geojson.NewMultiLineStringGeometry(lines...), nil
	case orb.Ring:
		return geojson.NewPolygonGeometry(polygonCoords(orb.Polygon{g})), nil
	case orb.Polygon:
		return geojson.NewPolygonGeometry(polygonCoords(g)), nil
	case orb.MultiPolygon:
		polygons := make([][][][]float64, len(g))
		for i := range g {
			polygons[i] = polygonCoords(g[i])
		}
		return geojson.NewMultiPolygonGeometry(polygons...), nil
	case orb.Collection:
		children := make([]*geojson.Geometry, 0, len(g))
		for _, child := range g {
			prepared, err := geoJSONGeometry(child)
			if err != nil {
				return nil, err
			}
			children = append(children, prepared)
		}
		return geojson.NewCollectionGeometry(children...), nil
	}
	return nil, fmt.Errorf("Can not convert geometry of type %T to geojson format", geom)
}

func pointCoords(pt orb.Point) []float64 {
	return []float64{pt.Lon(), pt.Lat()}
}

func lineCoords(line orb.LineString) [][]float64 {
	pts2d := make([][]float64, len(line))
	for i := range line {
		pts2d[i] = pointCoords(line[i])
	}
	return pts2d
}

func polygonCoords(polygon orb.Polygon) [][][]float64 {
	rings := make([][][]float64, len(polygon))
	for i := range polygon {
		rings[i] = lineCoords(orb.LineString(polygon[i]))
	}
	return rings
}
