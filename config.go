package osmnet

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config Named user-defined filters
type Config struct {
	Filters map[string]FilterConfig `yaml:"filters"`
}

// FilterConfig YAML representation of FilterSpec
type FilterConfig struct {
	Criteria      map[string][]string `yaml:"criteria"`
	Mode          string              `yaml:"mode"`
	KeysToKeep    []string            `yaml:"keys_to_keep,omitempty"`
	TagsAsColumns []string            `yaml:"tags_as_columns,omitempty"`
	KeepNodes     bool                `yaml:"keep_nodes"`
	KeepRelations bool                `yaml:"keep_relations"`
}

// LoadConfig reads and parses YAML configuration file
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "Can't open config")
	}
	defer file.Close()
	return ParseConfig(file)
}

// ParseConfig parses YAML configuration. Every filter is validated
func ParseConfig(r io.Reader) (*Config, error) {
	var cfg Config
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "Can't decode config")
	}
	for name, filter := range cfg.Filters {
		if _, err := filter.Spec(); err != nil {
			return nil, errors.Wrapf(err, "Filter '%s'", name)
		}
	}
	return &cfg, nil
}

// Spec converts configuration into validated FilterSpec
func (fc FilterConfig) Spec() (FilterSpec, error) {
	mode, err := ParseFilterMode(fc.Mode)
	if err != nil {
		return FilterSpec{}, errors.Wrap(ErrInvalidSpec, err.Error())
	}
	spec := FilterSpec{
		Criteria:      NewCriteria(fc.Criteria),
		KeysToKeep:    fc.KeysToKeep,
		TagsAsColumns: fc.TagsAsColumns,
		Mode:          mode,
		KeepNodes:     fc.KeepNodes,
		KeepRelations: fc.KeepRelations,
	}
	if err := spec.Validate(); err != nil {
		return FilterSpec{}, err
	}
	return spec, nil
}

// Filter resolves filter by name: user-defined filters first, then predefined networks and 'bus_routes'
func (cfg *Config) Filter(name string) (FilterSpec, error) {
	if cfg != nil {
		if filter, ok := cfg.Filters[name]; ok {
			return filter.Spec()
		}
	}
	if name == busRoutesFilterName {
		return BusRoutesFilter(), nil
	}
	networkType, err := ParseNetworkType(name)
	if err != nil {
		return FilterSpec{}, errors.Wrapf(err, "No filter named '%s'", name)
	}
	return PresetFilter(networkType)
}

const busRoutesFilterName = "bus_routes"
