package osmnet

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Criteria Tag key -> set of tag values
type Criteria map[string]map[string]struct{}

// NewCriteria builds criteria from key -> list of values
func NewCriteria(lists map[string][]string) Criteria {
	criteria := make(Criteria, len(lists))
	for key, values := range lists {
		criteria.Add(key, values...)
	}
	return criteria
}

// Add appends values to the set of given key
func (criteria Criteria) Add(key string, values ...string) {
	set, ok := criteria[key]
	if !ok {
		set = make(map[string]struct{}, len(values))
		criteria[key] = set
	}
	for _, value := range values {
		set[value] = struct{}{}
	}
}

// Lists returns criteria as key -> sorted list of values
func (criteria Criteria) Lists() map[string][]string {
	lists := make(map[string][]string, len(criteria))
	for key, set := range criteria {
		values := make([]string, 0, len(set))
		for value := range set {
			values = append(values, value)
		}
		sort.Strings(values)
		lists[key] = values
	}
	return lists
}

// matches returns true if at least one of tags has value listed for its key
func (criteria Criteria) matches(tags map[string]string) bool {
	for key, values := range criteria {
		value, ok := tags[key]
		if !ok {
			continue
		}
		if _, ok := values[value]; ok {
			return true
		}
	}
	return false
}

// FilterSpec Describes which features should survive filtering
type FilterSpec struct {
	Criteria      Criteria
	KeysToKeep    []string
	TagsAsColumns []string
	Mode          FilterMode
	KeepNodes     bool
	KeepRelations bool
}

// Validate checks whether spec could be applied
func (spec *FilterSpec) Validate() error {
	switch spec.Mode {
	case FILTER_INCLUDE:
		if len(spec.Criteria) == 0 {
			return errors.Wrap(ErrInvalidSpec, "include mode requires at least one criterion")
		}
	case FILTER_EXCLUDE:
	default:
		return errors.Wrapf(ErrInvalidSpec, "mode should be either include or exclude, got '%s'", spec.Mode)
	}
	return nil
}

func (spec *FilterSpec) String() string {
	lists := spec.Criteria.Lists()
	keys := make([]string, 0, len(lists))
	for key := range lists {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	criteria := make([]string, len(keys))
	for i, key := range keys {
		criteria[i] = fmt.Sprintf("%s=%s", key, strings.Join(lists[key], "|"))
	}
	return fmt.Sprintf(`
Filter parameters:
	mode: '%s'
	criteria: '%s'
	keys_to_keep: '%s'
	tags_as_columns: '%s'
	keep nodes?: %t
	keep relations?: %t
	`,
		spec.Mode,
		strings.Join(criteria, ";"),
		strings.Join(spec.KeysToKeep, ","),
		strings.Join(spec.TagsAsColumns, ","),
		spec.KeepNodes,
		spec.KeepRelations,
	)
}
