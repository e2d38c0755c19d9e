package osmnet

import (
	"fmt"
	"strings"
)

// FilterMode Whether criteria lists values to keep or values to drop
type FilterMode uint16

const (
	FILTER_INCLUDE = FilterMode(iota + 1)
	FILTER_EXCLUDE
	FILTER_UNDEFINED = FilterMode(0)
)

func (iotaIdx FilterMode) String() string {
	if int(iotaIdx) >= len(filterModeNames) {
		return fmt.Sprintf("FilterMode(%d)", uint16(iotaIdx))
	}
	return filterModeNames[iotaIdx]
}

var filterModeNames = [...]string{"undefined", "include", "exclude"}

// ParseFilterMode returns filter mode for given text (case-insensitive)
func ParseFilterMode(str string) (FilterMode, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "include":
		return FILTER_INCLUDE, nil
	case "exclude":
		return FILTER_EXCLUDE, nil
	default:
		return FILTER_UNDEFINED, fmt.Errorf("unknown filter mode '%s'", str)
	}
}
