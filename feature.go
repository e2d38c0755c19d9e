package osmnet

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Provenance OSM element kind a feature has been built from
type Provenance uint16

const (
	PROVENANCE_NODE = Provenance(iota + 1)
	PROVENANCE_WAY
	PROVENANCE_RELATION
	PROVENANCE_UNDEFINED = Provenance(0)
)

func (iotaIdx Provenance) String() string {
	if int(iotaIdx) >= len(provenanceNames) {
		return fmt.Sprintf("Provenance(%d)", uint16(iotaIdx))
	}
	return provenanceNames[iotaIdx]
}

var provenanceNames = [...]string{"undefined", "node", "way", "relation"}

// Feature Single tagged OSM element with its geometry
type Feature struct {
	Geometry orb.Geometry
	// Tags Raw OSM tags. Absent key and empty value are different things
	Tags map[string]string
	// Columns Tags materialized as first-class fields. Nil value means null
	Columns    map[string]*string
	GeomType   string
	ID         int64
	Provenance Provenance
}

// FeatureCollection Ordered sequence of features
type FeatureCollection []*Feature

func (f *Feature) String() string {
	return fmt.Sprintf("%s/%d (%s)", f.Provenance, f.ID, f.geomType())
}

// Tag returns tag value and whether the tag is present
func (f *Feature) Tag(key string) (string, bool) {
	value, ok := f.Tags[key]
	return value, ok
}

// Column returns materialized column value. Nil is returned for null or missing column
func (f *Feature) Column(key string) *string {
	if f.Columns == nil {
		return nil
	}
	return f.Columns[key]
}

// geomType returns labeled geometry type or derives it from geometry when feature hasn't been labeled yet
func (f *Feature) geomType() string {
	if f.GeomType != "" {
		return f.GeomType
	}
	if f.Geometry == nil {
		return ""
	}
	return f.Geometry.GeoJSONType()
}

// shallowCopy returns copy of feature sharing geometry and tags with the original one.
// Columns map is copied so the copy could be extended without touching the original.
func (f *Feature) shallowCopy() *Feature {
	cp := *f
	if f.Columns != nil {
		cp.Columns = make(map[string]*string, len(f.Columns))
		for k, v := range f.Columns {
			cp.Columns[k] = v
		}
	}
	return &cp
}
