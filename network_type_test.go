package osmnet

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestParseNetworkType(t *testing.T) {
	for _, networkType := range NetworkTypes() {
		parsed, err := ParseNetworkType(networkType.String())
		if err != nil {
			t.Error(err)
			continue
		}
		if parsed != networkType {
			t.Errorf("Parsed network type must be %s, but got %s", networkType, parsed)
		}
	}
	if _, err := ParseNetworkType("flying"); err == nil {
		t.Errorf("Unknown network type must produce an error")
	}
}

func TestPresetFilters(t *testing.T) {
	for _, networkType := range NetworkTypes() {
		spec, err := PresetFilter(networkType)
		if err != nil {
			t.Error(err)
			continue
		}
		if err := spec.Validate(); err != nil {
			t.Errorf("Preset '%s' must be valid: %v", networkType, err)
		}
		if spec.Mode != FILTER_EXCLUDE {
			t.Errorf("Preset '%s' must be exclusion filter, but got %s", networkType, spec.Mode)
		}
	}
	if _, err := PresetFilter(NETWORK_UNDEFINED); err == nil {
		t.Errorf("Undefined network type must produce an error")
	}
}

func TestDrivingNetwork(t *testing.T) {
	features := FeatureCollection{
		newFeature(1, PROVENANCE_WAY, sampleLine, "highway", "primary"),
		newFeature(2, PROVENANCE_WAY, sampleLine, "highway", "footway"),
		newFeature(3, PROVENANCE_WAY, sampleLine, "highway", "residential", "service", "parking_aisle"),
		newFeature(4, PROVENANCE_WAY, sampleLine, "highway", "tertiary", "motor_vehicle", "no"),
		newFeature(5, PROVENANCE_WAY, sampleLine, "highway", "motorway"),
		newFeature(6, PROVENANCE_WAY, sampleLine, "railway", "rail"),
		newFeature(7, PROVENANCE_WAY, sampleLine, "highway", "pedestrian", "area", "yes"),
	}
	tests := map[NetworkType][]int64{
		NETWORK_DRIVING: {1, 5},
		NETWORK_WALKING: {1, 2, 3, 4},
		NETWORK_CYCLING: {1, 3, 4},
		NETWORK_ALL:     {1, 2, 3, 4, 5},
	}
	for networkType, expected := range tests {
		spec, err := PresetFilter(networkType)
		if err != nil {
			t.Error(err)
			continue
		}
		result, err := ApplyFilter(features, spec)
		if err != nil {
			t.Error(err)
			continue
		}
		if !equalIDs(ids(result), expected) {
			t.Errorf("Network '%s' must be %v, but got %v", networkType, expected, ids(result))
		}
	}
}

func TestBusRoutes(t *testing.T) {
	features := LabelGeomType(FeatureCollection{
		newFeature(1, PROVENANCE_NODE, sampleLine[0], "highway", "bus_stop"),
		newFeature(2, PROVENANCE_WAY, sampleLine, "highway", "primary"),
		newFeature(3, PROVENANCE_WAY, sampleLine, "highway", "footway"),
		newFeature(4, PROVENANCE_RELATION, orb.MultiLineString{sampleLine}, "type", "route", "route", "bus"),
		newFeature(5, PROVENANCE_RELATION, orb.MultiLineString{sampleLine}, "type", "route", "route", "tram"),
		newFeature(6, PROVENANCE_RELATION, orb.MultiLineString{sampleLine}, "type", "route", "route", "bus"),
	})
	network, err := ApplyFilter(features, BusRoutesFilter())
	if err != nil {
		t.Error(err)
		return
	}
	if !equalIDs(ids(network), []int64{2, 4, 5, 6}) {
		t.Errorf("Custom driving network must be [2 4 5 6], but got %v", ids(network))
	}
	routes := CountBy(network, "route")
	if routes["bus"] != 2 || routes["tram"] != 1 || len(routes) != 2 {
		t.Errorf("Route counts must be map[bus:2 tram:1], but got %v", routes)
	}
	buses, err := ApplyFilter(network, RouteFilter("bus"))
	if err != nil {
		t.Error(err)
		return
	}
	if !equalIDs(ids(buses), []int64{4, 6}) {
		t.Errorf("Bus routes must be [4 6], but got %v", ids(buses))
	}
	if _, err := ApplyFilter(network, RouteFilter()); err == nil {
		t.Errorf("Route filter without routes must be invalid")
	}
}
