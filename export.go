package osmnet

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

// GeomFormat Geometry encoding used in CSV export
type GeomFormat uint16

const (
	GEOM_WKT = GeomFormat(iota + 1)
	GEOM_GEOJSON
	GEOM_UNDEFINED = GeomFormat(0)
)

func (iotaIdx GeomFormat) String() string {
	if int(iotaIdx) >= len(geomFormatNames) {
		return fmt.Sprintf("GeomFormat(%d)", uint16(iotaIdx))
	}
	return geomFormatNames[iotaIdx]
}

var geomFormatNames = [...]string{"undefined", "wkt", "geojson"}

// ParseGeomFormat returns geometry format by name
func ParseGeomFormat(str string) (GeomFormat, error) {
	switch strings.ToLower(str) {
	case "wkt":
		return GEOM_WKT, nil
	case "geojson":
		return GEOM_GEOJSON, nil
	default:
		return GEOM_UNDEFINED, fmt.Errorf("unknown geometry format '%s'", str)
	}
}

// ToGeoJSON converts features into GeoJSON FeatureCollection
/*
	Properties are OSM tags, materialized columns (null for missing tags) and 'osm_id', 'osm_type', 'geom_type'.
*/
func ToGeoJSON(features FeatureCollection) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, feature := range features {
		prepared := geojson.NewFeature(feature.Geometry)
		prepared.ID = fmt.Sprintf("%s/%d", feature.Provenance, feature.ID)
		for key, value := range feature.Tags {
			prepared.Properties[key] = value
		}
		for key, value := range feature.Columns {
			if value == nil {
				prepared.Properties[key] = nil
				continue
			}
			prepared.Properties[key] = *value
		}
		prepared.Properties["osm_id"] = feature.ID
		prepared.Properties[FieldOSMType] = feature.Provenance.String()
		prepared.Properties[FieldGeomType] = feature.geomType()
		fc.Append(prepared)
	}
	return fc
}

// ExportGeoJSON writes features as GeoJSON FeatureCollection
func ExportGeoJSON(w io.Writer, features FeatureCollection) error {
	b, err := ToGeoJSON(features).MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Can't marshal features")
	}
	if _, err = w.Write(b); err != nil {
		return errors.Wrap(err, "Can't write features")
	}
	return nil
}

// ExportCSV writes features as ';'-separated values
/*
	Header: osm_id;osm_type;geom_type;<materialized columns in order of appearance>;tags;geom
	Tags are written as sorted 'key=value' pairs joined by ','
*/
func ExportCSV(w io.Writer, features FeatureCollection, geomFormat GeomFormat) error {
	writer := csv.NewWriter(w)
	writer.Comma = ';'

	columns := []string{}
	seen := make(map[string]struct{})
	for _, feature := range features {
		keys := make([]string, 0, len(feature.Columns))
		for key := range feature.Columns {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			columns = append(columns, key)
		}
	}

	header := []string{"osm_id", FieldOSMType, FieldGeomType}
	header = append(header, columns...)
	header = append(header, "tags", "geom")
	err := writer.Write(header)
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, feature := range features {
		geomStr := ""
		switch geomFormat {
		case GEOM_GEOJSON:
			geomStr, err = PrepareGeoJSON(feature.Geometry)
			if err != nil {
				return errors.Wrapf(err, "Can't prepare geometry for %s", feature)
			}
		default:
			geomStr = PrepareWKT(feature.Geometry)
		}
		record := make([]string, 0, len(header))
		record = append(record, fmt.Sprintf("%d", feature.ID), feature.Provenance.String(), feature.geomType())
		for _, column := range columns {
			value := feature.Column(column)
			if value == nil {
				record = append(record, "")
				continue
			}
			record = append(record, *value)
		}
		record = append(record, joinTags(feature.Tags), geomStr)
		err = writer.Write(record)
		if err != nil {
			return errors.Wrapf(err, "Can't write %s", feature)
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "Can't flush")
}

func joinTags(tags map[string]string) string {
	pairs := make([]string, 0, len(tags))
	for key, value := range tags {
		pairs = append(pairs, key+"="+value)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}
