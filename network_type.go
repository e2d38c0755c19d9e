package osmnet

import (
	"fmt"
	"strings"
)

// NetworkType Predefined transport network
type NetworkType uint16

const (
	NETWORK_ALL = NetworkType(iota + 1)
	NETWORK_DRIVING
	NETWORK_DRIVING_SERVICE
	NETWORK_DRIVING_PSV
	NETWORK_WALKING
	NETWORK_CYCLING
	NETWORK_UNDEFINED = NetworkType(0)
)

func (iotaIdx NetworkType) String() string {
	if int(iotaIdx) >= len(networkTypeNames) {
		return fmt.Sprintf("NetworkType(%d)", uint16(iotaIdx))
	}
	return networkTypeNames[iotaIdx]
}

var networkTypeNames = [...]string{"undefined", "all", "driving", "driving+service", "driving_psv", "walking", "cycling"}

// NetworkTypes returns all predefined networks
func NetworkTypes() []NetworkType {
	return []NetworkType{NETWORK_ALL, NETWORK_DRIVING, NETWORK_DRIVING_SERVICE, NETWORK_DRIVING_PSV, NETWORK_WALKING, NETWORK_CYCLING}
}

// ParseNetworkType returns network type by its name
func ParseNetworkType(str string) (NetworkType, error) {
	name := strings.ToLower(strings.TrimSpace(str))
	for _, networkType := range NetworkTypes() {
		if networkType.String() == name {
			return networkType, nil
		}
	}
	return NETWORK_UNDEFINED, fmt.Errorf("unknown network type '%s'", str)
}

// PresetFilter Returns exclusion filter for predefined network
/*
	Only ways carrying `highway` tag are considered. Nodes and relations are dropped.
*/
func PresetFilter(networkType NetworkType) (FilterSpec, error) {
	exclude, ok := networkFiltersExclude[networkType]
	if !ok {
		return FilterSpec{}, fmt.Errorf("no filter for network type '%s'", networkType)
	}
	return FilterSpec{
		Criteria:      criteriaFromAccess(exclude),
		KeysToKeep:    []string{ACCESS_HIGHWAY.String()},
		Mode:          FILTER_EXCLUDE,
		KeepNodes:     false,
		KeepRelations: false,
	}, nil
}

// BusRoutesFilter Returns driving filter which keeps route relations and exposes `route` tag as column
/*
	Apply RouteFilter on top of it to extract particular routes (e.g. 'bus').
*/
func BusRoutesFilter() FilterSpec {
	return FilterSpec{
		Criteria:      criteriaFromAccess(busRoutesFilterExclude),
		KeysToKeep:    []string{ACCESS_HIGHWAY.String(), ACCESS_ROUTE.String()},
		TagsAsColumns: []string{ACCESS_ROUTE.String()},
		Mode:          FILTER_EXCLUDE,
		KeepNodes:     false,
		KeepRelations: true,
	}
}

// RouteFilter Returns inclusion filter on `route` tag
func RouteFilter(routes ...string) FilterSpec {
	criteria := make(Criteria)
	if len(routes) != 0 {
		criteria.Add(ACCESS_ROUTE.String(), routes...)
	}
	return FilterSpec{
		Criteria:      criteria,
		TagsAsColumns: []string{ACCESS_ROUTE.String()},
		Mode:          FILTER_INCLUDE,
		KeepNodes:     false,
		KeepRelations: true,
	}
}

func criteriaFromAccess(table map[AccessType]map[string]struct{}) Criteria {
	criteria := make(Criteria, len(table))
	for accessType, values := range table {
		set := make(map[string]struct{}, len(values))
		for value := range values {
			set[value] = struct{}{}
		}
		criteria[accessType.String()] = set
	}
	return criteria
}
