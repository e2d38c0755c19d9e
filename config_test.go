package osmnet

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

const sampleConfig = `
filters:
  leeds_driving:
    mode: exclude
    keys_to_keep: [highway, route]
    tags_as_columns: [route]
    keep_nodes: false
    keep_relations: true
    criteria:
      area: ["yes"]
      highway: [cycleway, footway, path, pedestrian, steps]
      motor_vehicle: ["no"]
      service: [parking, parking_aisle, private, emergency_access]
  trams:
    mode: Include
    keep_relations: true
    criteria:
      route: [tram]
`

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader(sampleConfig))
	if err != nil {
		t.Error(err)
		return
	}
	if len(cfg.Filters) != 2 {
		t.Errorf("Number of filters must be 2, but got %d", len(cfg.Filters))
	}

	spec, err := cfg.Filter("leeds_driving")
	if err != nil {
		t.Error(err)
		return
	}
	if spec.Mode != FILTER_EXCLUDE {
		t.Errorf("Mode must be exclude, but got %s", spec.Mode)
	}
	if !spec.KeepRelations || spec.KeepNodes {
		t.Errorf("Expected keep_relations=true and keep_nodes=false, but got %t and %t", spec.KeepRelations, spec.KeepNodes)
	}
	if _, ok := spec.Criteria["highway"]["footway"]; !ok {
		t.Errorf("Criteria must exclude highway=footway, got %v", spec.Criteria.Lists())
	}
	if _, ok := spec.Criteria["area"]["yes"]; !ok {
		t.Errorf("Criteria must exclude area=yes, got %v", spec.Criteria.Lists())
	}
	if len(spec.TagsAsColumns) != 1 || spec.TagsAsColumns[0] != "route" {
		t.Errorf("Tags as columns must be [route], but got %v", spec.TagsAsColumns)
	}

	trams, err := cfg.Filter("trams")
	if err != nil {
		t.Error(err)
		return
	}
	if trams.Mode != FILTER_INCLUDE {
		t.Errorf("Mode must be include, but got %s", trams.Mode)
	}
}

func TestConfigFallbackToPresets(t *testing.T) {
	var cfg *Config
	spec, err := cfg.Filter("walking")
	if err != nil {
		t.Error(err)
		return
	}
	if _, ok := spec.Criteria["foot"]["no"]; !ok {
		t.Errorf("Walking preset must exclude foot=no, got %v", spec.Criteria.Lists())
	}
	busRoutes, err := cfg.Filter("bus_routes")
	if err != nil {
		t.Error(err)
		return
	}
	if !busRoutes.KeepRelations {
		t.Errorf("Bus routes filter must keep relations")
	}
	if _, err := cfg.Filter("no_such_filter"); err == nil {
		t.Errorf("Unknown filter must produce an error")
	}
}

func TestParseConfigInvalid(t *testing.T) {
	configs := map[string]string{
		"unknown mode": `
filters:
  broken:
    mode: maybe
    criteria:
      highway: [footway]
`,
		"include without criteria": `
filters:
  broken:
    mode: include
`,
	}
	for name, text := range configs {
		_, err := ParseConfig(strings.NewReader(text))
		if !errors.Is(err, ErrInvalidSpec) {
			t.Errorf("%s: error must be ErrInvalidSpec, but got %v", name, err)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "filters.yaml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0644); err != nil {
		t.Error(err)
		return
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Error(err)
		return
	}
	if _, ok := cfg.Filters["trams"]; !ok {
		t.Errorf("Filter 'trams' must be loaded")
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Missing config must produce an error")
	}
}
