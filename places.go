package osmnet

import (
	"context"
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Place Named query area, e.g. Local Authority District boundary
type Place struct {
	Geometry orb.Geometry
	Name     string
}

// LoadPlaces reads places from GeoJSON FeatureCollection. Name is taken from given property.
// Repeated names get numeric suffix: "Newport", "Newport_2", ...
func LoadPlaces(r io.Reader, nameProperty string) ([]Place, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read places")
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "Can't decode places")
	}
	places := make([]Place, 0, len(fc.Features))
	used := make(map[string]struct{}, len(fc.Features))
	for i, feature := range fc.Features {
		name := feature.Properties.MustString(nameProperty, "")
		if name == "" {
			name = fmt.Sprintf("place_%d", i)
		}
		if _, ok := used[name]; ok {
			base := name
			for n := 2; ; n++ {
				name = fmt.Sprintf("%s_%d", base, n)
				if _, ok := used[name]; !ok {
					break
				}
			}
			log.Warn().Str("place", base).Str("renamed", name).Msg("Duplicate place name")
		}
		used[name] = struct{}{}
		places = append(places, Place{
			Name:     name,
			Geometry: feature.Geometry,
		})
	}
	return places, nil
}

// SkippedPlace Place which has not been processed and why
type SkippedPlace struct {
	Err    error
	Name   string
	Reason string
}

// BatchResult Per-place networks in place order plus skip report
type BatchResult struct {
	Networks map[string]FeatureCollection
	Names    []string
	Skipped  []SkippedPlace
}

// Combined joins all place networks in place order
func (result *BatchResult) Combined() FeatureCollection {
	collections := make([]FeatureCollection, 0, len(result.Names))
	for _, name := range result.Names {
		collections = append(collections, result.Networks[name])
	}
	return Concat(collections...)
}

const (
	SkipReasonGeometry  = "unsupported geometry"
	SkipReasonFetch     = "fetch failure"
	SkipReasonDuplicate = "duplicate name"
)

type batchOptions struct {
	filter       *FilterSpec
	skipFailures bool
}

// WithFilter applies filter spec to every fetched place
func WithFilter(spec FilterSpec) func(*batchOptions) {
	return func(opts *batchOptions) {
		opts.filter = &spec
	}
}

// WithSkipFailures sets whether fetch failures are skipped (true) or abort the batch (false)
func WithSkipFailures(skip bool) func(*batchOptions) {
	return func(opts *batchOptions) {
		opts.skipFailures = skip
	}
}

// FetchPlaces Fetches (and optionally filters) network for every place
/*
	Places with geometry other than Polygon/MultiPolygon are skipped and reported.
	Place with the name already processed is skipped and reported.
	Fetch failures are skipped and reported when WithSkipFailures(true) given, otherwise the batch is aborted.
	Filter spec errors are always fatal.
	Every returned network is labeled with geometry types.
*/
func FetchPlaces(ctx context.Context, source Source, places []Place, tags TagQuery, options ...func(*batchOptions)) (*BatchResult, error) {
	opts := batchOptions{}
	for _, option := range options {
		option(&opts)
	}
	if opts.filter != nil {
		if err := opts.filter.Validate(); err != nil {
			return nil, err
		}
	}
	result := &BatchResult{
		Networks: make(map[string]FeatureCollection, len(places)),
		Names:    make([]string, 0, len(places)),
		Skipped:  []SkippedPlace{},
	}
	for _, place := range places {
		if _, seen := result.Networks[place.Name]; seen {
			log.Warn().Str("place", place.Name).Msg("Place with the same name has been processed already. Skip it")
			result.Skipped = append(result.Skipped, SkippedPlace{
				Name:   place.Name,
				Reason: SkipReasonDuplicate,
				Err:    errors.Errorf("duplicate place name '%s'", place.Name),
			})
			continue
		}
		if _, ok := areaContains(place.Geometry); !ok {
			geomType := "nil"
			if place.Geometry != nil {
				geomType = place.Geometry.GeoJSONType()
			}
			log.Warn().Str("place", place.Name).Str("geom_type", geomType).Msg("Place is not an accepted geometry type (MultiPolygon or Polygon). Skip it")
			result.Skipped = append(result.Skipped, SkippedPlace{
				Name:   place.Name,
				Reason: SkipReasonGeometry,
				Err:    errors.Wrapf(ErrUnsupportedGeometry, "place '%s' of type '%s'", place.Name, geomType),
			})
			continue
		}
		features, err := source.Fetch(ctx, Query{Area: place.Geometry, Tags: tags})
		if err != nil {
			if !opts.skipFailures {
				return result, errors.Wrapf(err, "Can't fetch place '%s'", place.Name)
			}
			log.Error().Err(err).Str("place", place.Name).Msg("Can't fetch place. Skip it")
			result.Skipped = append(result.Skipped, SkippedPlace{
				Name:   place.Name,
				Reason: SkipReasonFetch,
				Err:    err,
			})
			continue
		}
		features = LabelGeomType(features)
		if opts.filter != nil {
			features, err = ApplyFilter(features, *opts.filter)
			if err != nil {
				return result, errors.Wrapf(err, "Can't filter place '%s'", place.Name)
			}
		}
		result.Names = append(result.Names, place.Name)
		result.Networks[place.Name] = features
		log.Info().Str("place", place.Name).Int("features", len(features)).Int("done", len(result.Names)).Msg("Place processed")
	}
	log.Info().Int("places", len(result.Names)).Int("skipped", len(result.Skipped)).Msg("Finished obtaining networks")
	return result, nil
}
