package osmnet

import (
	"github.com/pkg/errors"
)

const geomTypePoint = "Point"

// ApplyFilter Returns features passing given filter spec
/*
	Criteria keys are OR-ed: feature matches when its value of at least one key is listed.
	EXCLUDE keeps features which don't match, INCLUDE keeps the ones which do.
	Input collection is never modified: survivors are copies sharing geometry (and identity) with the input features.
*/
func ApplyFilter(features FeatureCollection, spec FilterSpec) (FeatureCollection, error) {
	if err := spec.Validate(); err != nil {
		return nil, errors.Wrap(err, "Can't apply filter")
	}

	columns := make([]string, 0, len(spec.KeysToKeep)+len(spec.TagsAsColumns))
	columns = append(columns, spec.KeysToKeep...)
	columns = append(columns, spec.TagsAsColumns...)

	result := make(FeatureCollection, 0, len(features))
	for _, feature := range features {
		if len(spec.KeysToKeep) != 0 && !hasAnyKey(feature.Tags, spec.KeysToKeep) {
			continue
		}
		matched := spec.Criteria.matches(feature.Tags)
		if spec.Mode == FILTER_EXCLUDE && matched {
			continue
		}
		if spec.Mode == FILTER_INCLUDE && !matched {
			continue
		}
		if !spec.KeepNodes && feature.geomType() == geomTypePoint {
			continue
		}
		if !spec.KeepRelations && feature.Provenance == PROVENANCE_RELATION {
			continue
		}
		prepared := feature.shallowCopy()
		if len(columns) != 0 && prepared.Columns == nil {
			prepared.Columns = make(map[string]*string, len(columns))
		}
		for _, key := range columns {
			if value, ok := feature.Tags[key]; ok {
				prepared.Columns[key] = &value
			} else {
				prepared.Columns[key] = nil
			}
		}
		result = append(result, prepared)
	}
	return result, nil
}

func hasAnyKey(tags map[string]string, keys []string) bool {
	for _, key := range keys {
		if _, ok := tags[key]; ok {
			return true
		}
	}
	return false
}
