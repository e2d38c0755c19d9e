package osmnet

import (
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

func newFeature(id int64, provenance Provenance, geom orb.Geometry, tags ...string) *Feature {
	tagMap := make(map[string]string, len(tags)/2)
	for i := 0; i+1 < len(tags); i += 2 {
		tagMap[tags[i]] = tags[i+1]
	}
	return &Feature{
		ID:         id,
		Provenance: provenance,
		Geometry:   geom,
		Tags:       tagMap,
	}
}

var sampleLine = orb.LineString{{-1.55, 53.80}, {-1.54, 53.80}}

func ids(features FeatureCollection) []int64 {
	result := make([]int64, len(features))
	for i := range features {
		result[i] = features[i].ID
	}
	return result
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyFilterExcludeHighways(t *testing.T) {
	features := FeatureCollection{
		newFeature(1, PROVENANCE_WAY, sampleLine, "highway", "motorway"),
		newFeature(2, PROVENANCE_WAY, sampleLine, "highway", "residential"),
		newFeature(3, PROVENANCE_WAY, sampleLine, "highway", "footway"),
		newFeature(4, PROVENANCE_WAY, sampleLine, "highway", "cycleway"),
		newFeature(5, PROVENANCE_WAY, sampleLine, "highway", "service"),
	}
	spec := FilterSpec{
		Criteria:  NewCriteria(map[string][]string{"highway": {"footway", "cycleway"}}),
		Mode:      FILTER_EXCLUDE,
		KeepNodes: true,
	}
	result, err := ApplyFilter(features, spec)
	if err != nil {
		t.Error(err)
		return
	}
	expected := []int64{1, 2, 5}
	if !equalIDs(ids(result), expected) {
		t.Errorf("Filtered features must be %v, but got %v", expected, ids(result))
	}
	for i, feature := range result {
		if feature.Geometry.(orb.LineString)[0] != features[expected[i]-1].Geometry.(orb.LineString)[0] {
			t.Errorf("Geometry of feature %d must be preserved", feature.ID)
		}
	}
}

func TestApplyFilterIncludeRoutes(t *testing.T) {
	features := FeatureCollection{
		newFeature(10, PROVENANCE_RELATION, orb.MultiLineString{sampleLine}, "type", "route", "route", "bus"),
		newFeature(11, PROVENANCE_RELATION, orb.MultiLineString{sampleLine}, "type", "route", "route", "bus"),
		newFeature(12, PROVENANCE_RELATION, orb.MultiLineString{sampleLine}, "type", "route", "route", "tram"),
	}
	spec := FilterSpec{
		Criteria:      NewCriteria(map[string][]string{"route": {"bus"}}),
		Mode:          FILTER_INCLUDE,
		KeepRelations: true,
	}
	result, err := ApplyFilter(features, spec)
	if err != nil {
		t.Error(err)
		return
	}
	if !equalIDs(ids(result), []int64{10, 11}) {
		t.Errorf("Filtered features must be [10 11], but got %v", ids(result))
	}
	counts := CountBy(result, "route")
	if len(counts) != 1 || counts["bus"] != 2 {
		t.Errorf("Route counts must be map[bus:2], but got %v", counts)
	}
}

func TestApplyFilterInvalidSpec(t *testing.T) {
	features := FeatureCollection{
		newFeature(1, PROVENANCE_WAY, sampleLine, "highway", "primary"),
	}
	specs := map[string]FilterSpec{
		"include without criteria": {Mode: FILTER_INCLUDE},
		"undefined mode":           {Mode: FILTER_UNDEFINED, Criteria: NewCriteria(map[string][]string{"highway": {"primary"}})},
		"unknown mode":             {Mode: FilterMode(42), Criteria: NewCriteria(map[string][]string{"highway": {"primary"}})},
	}
	for name, spec := range specs {
		result, err := ApplyFilter(features, spec)
		if !errors.Is(err, ErrInvalidSpec) {
			t.Errorf("%s: error must be ErrInvalidSpec, but got %v", name, err)
		}
		if result != nil {
			t.Errorf("%s: result must be nil, but got %v", name, result)
		}
	}
}

func TestApplyFilterExcludeWithoutCriteria(t *testing.T) {
	features := FeatureCollection{
		newFeature(1, PROVENANCE_NODE, orb.Point{-1.55, 53.80}, "highway", "bus_stop"),
		newFeature(2, PROVENANCE_WAY, sampleLine, "highway", "primary"),
	}
	result, err := ApplyFilter(features, FilterSpec{Mode: FILTER_EXCLUDE})
	if err != nil {
		t.Error(err)
		return
	}
	if !equalIDs(ids(result), []int64{2}) {
		t.Errorf("Only non-point features must survive, but got %v", ids(result))
	}
}

func TestApplyFilterNodesAndRelations(t *testing.T) {
	features := FeatureCollection{
		newFeature(1, PROVENANCE_NODE, orb.Point{-1.55, 53.80}, "highway", "bus_stop"),
		newFeature(2, PROVENANCE_WAY, sampleLine, "highway", "primary"),
		newFeature(3, PROVENANCE_RELATION, orb.MultiLineString{sampleLine}, "route", "bus"),
		// Labeled with other case: must not be treated as a point
		{ID: 4, Provenance: PROVENANCE_NODE, Geometry: orb.Point{-1.55, 53.80}, GeomType: "point", Tags: map[string]string{"highway": "crossing"}},
	}
	tests := []struct {
		spec     FilterSpec
		expected []int64
	}{
		{FilterSpec{Mode: FILTER_EXCLUDE, KeepNodes: true, KeepRelations: true}, []int64{1, 2, 3, 4}},
		{FilterSpec{Mode: FILTER_EXCLUDE, KeepNodes: false, KeepRelations: true}, []int64{2, 3, 4}},
		{FilterSpec{Mode: FILTER_EXCLUDE, KeepNodes: true, KeepRelations: false}, []int64{1, 2, 4}},
		{FilterSpec{Mode: FILTER_EXCLUDE, KeepNodes: false, KeepRelations: false}, []int64{2, 4}},
	}
	for i, test := range tests {
		result, err := ApplyFilter(features, test.spec)
		if err != nil {
			t.Error(err)
			continue
		}
		if !equalIDs(ids(result), test.expected) {
			t.Errorf("Test %d: features must be %v, but got %v", i, test.expected, ids(result))
		}
	}
}

func TestApplyFilterAbsentAndEmptyValues(t *testing.T) {
	features := FeatureCollection{
		newFeature(1, PROVENANCE_WAY, sampleLine, "highway", ""),
		newFeature(2, PROVENANCE_WAY, sampleLine, "name", "Briggate"),
	}
	spec := FilterSpec{
		Criteria: NewCriteria(map[string][]string{"highway": {""}}),
		Mode:     FILTER_INCLUDE,
	}
	result, err := ApplyFilter(features, spec)
	if err != nil {
		t.Error(err)
		return
	}
	if !equalIDs(ids(result), []int64{1}) {
		t.Errorf("Only feature with empty `highway` must match, but got %v", ids(result))
	}
}

func TestApplyFilterColumns(t *testing.T) {
	features := FeatureCollection{
		newFeature(1, PROVENANCE_WAY, sampleLine, "highway", "primary", "route", "bus"),
		newFeature(2, PROVENANCE_WAY, sampleLine, "highway", "primary"),
		newFeature(3, PROVENANCE_WAY, sampleLine, "railway", "rail"),
	}
	spec := FilterSpec{
		Criteria:      make(Criteria),
		KeysToKeep:    []string{"highway"},
		TagsAsColumns: []string{"route"},
		Mode:          FILTER_EXCLUDE,
	}
	result, err := ApplyFilter(features, spec)
	if err != nil {
		t.Error(err)
		return
	}
	if !equalIDs(ids(result), []int64{1, 2}) {
		t.Errorf("Features without kept keys must be dropped, but got %v", ids(result))
		return
	}
	if route := result[0].Column("route"); route == nil || *route != "bus" {
		t.Errorf("Column `route` of feature 1 must be 'bus', but got %v", route)
	}
	if route, ok := result[1].Columns["route"]; !ok || route != nil {
		t.Errorf("Column `route` of feature 2 must be present and null, but got %v (present: %t)", route, ok)
	}
	if highway := result[1].Column("highway"); highway == nil || *highway != "primary" {
		t.Errorf("Column `highway` of feature 2 must be 'primary', but got %v", highway)
	}
	if features[0].Columns != nil {
		t.Errorf("Input features must not be modified")
	}
}

func randomCollection(rnd *rand.Rand, n int) FeatureCollection {
	highways := []string{"motorway", "primary", "residential", "footway", "cycleway", "service"}
	services := []string{"parking", "driveway", "private"}
	features := make(FeatureCollection, 0, n)
	for i := 0; i < n; i++ {
		tags := []string{}
		if rnd.Intn(5) != 0 {
			tags = append(tags, "highway", highways[rnd.Intn(len(highways))])
		}
		if rnd.Intn(3) == 0 {
			tags = append(tags, "service", services[rnd.Intn(len(services))])
		}
		provenance := Provenance(rnd.Intn(3) + 1)
		var geom orb.Geometry = sampleLine
		switch provenance {
		case PROVENANCE_NODE:
			geom = orb.Point{-1.55, 53.80}
		case PROVENANCE_RELATION:
			geom = orb.MultiLineString{sampleLine}
		}
		features = append(features, newFeature(int64(i), provenance, geom, tags...))
	}
	return features
}

func TestApplyFilterProperties(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	criteria := NewCriteria(map[string][]string{
		"highway": {"footway", "cycleway"},
		"service": {"private"},
	})
	for round := 0; round < 50; round++ {
		features := randomCollection(rnd, 40)
		for _, mode := range []FilterMode{FILTER_EXCLUDE, FILTER_INCLUDE} {
			spec := FilterSpec{
				Criteria:      criteria,
				Mode:          mode,
				KeepNodes:     rnd.Intn(2) == 0,
				KeepRelations: rnd.Intn(2) == 0,
			}
			result, err := ApplyFilter(features, spec)
			if err != nil {
				t.Error(err)
				return
			}
			// Subset and order
			position := -1
			for _, feature := range result {
				found := -1
				for i := position + 1; i < len(features); i++ {
					if features[i].ID == feature.ID {
						found = i
						break
					}
				}
				if found < 0 {
					t.Errorf("Round %d (%s): feature %d is not an ordered subset member", round, mode, feature.ID)
					return
				}
				position = found
				matched := criteria.matches(feature.Tags)
				if mode == FILTER_EXCLUDE && matched {
					t.Errorf("Round %d: feature %d matches excluded criteria", round, feature.ID)
				}
				if mode == FILTER_INCLUDE && !matched {
					t.Errorf("Round %d: feature %d doesn't match included criteria", round, feature.ID)
				}
				if !spec.KeepNodes && feature.geomType() == "Point" {
					t.Errorf("Round %d: point feature %d must be dropped", round, feature.ID)
				}
				if !spec.KeepRelations && feature.Provenance == PROVENANCE_RELATION {
					t.Errorf("Round %d: relation feature %d must be dropped", round, feature.ID)
				}
			}
			// Idempotence
			again, err := ApplyFilter(result, spec)
			if err != nil {
				t.Error(err)
				return
			}
			if !equalIDs(ids(again), ids(result)) {
				t.Errorf("Round %d (%s): filter must be idempotent: %v != %v", round, mode, ids(again), ids(result))
			}
		}
	}
}
