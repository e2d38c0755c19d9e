package osmnet

const (
	FieldGeomType = "geom_type"
	FieldOSMType  = "osm_type"
)

// LabelGeomType Returns copies of features with GeomType set to structural type of the geometry
/*
	Possible values: Point, MultiPoint, LineString, MultiLineString, Polygon, MultiPolygon, GeometryCollection.
	Features without geometry get empty label.
*/
func LabelGeomType(features FeatureCollection) FeatureCollection {
	labeled := make(FeatureCollection, len(features))
	for i, feature := range features {
		prepared := feature.shallowCopy()
		prepared.GeomType = ""
		if feature.Geometry != nil {
			prepared.GeomType = feature.Geometry.GeoJSONType()
		}
		labeled[i] = prepared
	}
	return labeled
}

// CountBy Frequency table over values of given field
/*
	Field is resolved in order: 'geom_type', 'osm_type', materialized column, raw tag.
	Features without value for the field are not counted.
*/
func CountBy(features FeatureCollection, field string) map[string]int {
	counts := make(map[string]int)
	for _, feature := range features {
		value, ok := fieldValue(feature, field)
		if !ok {
			continue
		}
		counts[value]++
	}
	return counts
}

func fieldValue(feature *Feature, field string) (string, bool) {
	switch field {
	case FieldGeomType:
		geomType := feature.geomType()
		return geomType, geomType != ""
	case FieldOSMType:
		return feature.Provenance.String(), feature.Provenance != PROVENANCE_UNDEFINED
	}
	if column, ok := feature.Columns[field]; ok {
		if column == nil {
			return "", false
		}
		return *column, true
	}
	return feature.Tag(field)
}

// Concat Joins collections preserving order
func Concat(collections ...FeatureCollection) FeatureCollection {
	total := 0
	for _, collection := range collections {
		total += len(collection)
	}
	result := make(FeatureCollection, 0, total)
	for _, collection := range collections {
		result = append(result, collection...)
	}
	return result
}
