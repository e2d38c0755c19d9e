package osmnet

import (
	"context"
	"os"
	"sort"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// TagQuery Tag key -> whether it is wanted
/*
	Keys set to true: element must carry at least one of them (any value).
	Keys set to false: element must carry none of them.
	Empty query accepts every tagged element.
*/
type TagQuery map[string]bool

func (query TagQuery) accepts(tags map[string]string) bool {
	wanted := false
	found := false
	for key, want := range query {
		_, ok := tags[key]
		if !want {
			if ok {
				return false
			}
			continue
		}
		wanted = true
		if ok {
			found = true
		}
	}
	return !wanted || found
}

// key returns canonical representation of query
func (query TagQuery) key() string {
	parts := make([]string, 0, len(query))
	for key, want := range query {
		if want {
			parts = append(parts, "+"+key)
		} else {
			parts = append(parts, "-"+key)
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

// Query What to fetch
type Query struct {
	// Area Polygon or MultiPolygon bounding the features. Nil means whole extract
	Area orb.Geometry
	Tags TagQuery
}

// Source Provides raw features
type Source interface {
	Fetch(ctx context.Context, query Query) (FeatureCollection, error)
}

const (
	defaultCacheSize = 4
	defaultProcs     = 4
)

// FileSource Reads features from OSM extract file (*.osm, *.osm.pbf)
/*
	Parsed extracts are kept in LRU cache keyed by tag query, so fetching many places out of one extract parses it once.
*/
type FileSource struct {
	path   string
	format Format
	procs     int
	cacheSize int
	cache     *lru.Cache[string, FeatureCollection]
}

// NewFileSource prepares source for given file. Format is guessed by extension
func NewFileSource(path string, options ...func(*FileSource)) (*FileSource, error) {
	format, err := FormatFromFilename(path)
	if err != nil {
		return nil, errors.Wrap(ErrFetchFailure, err.Error())
	}
	source := &FileSource{
		path:      path,
		format:    format,
		procs:     defaultProcs,
		cacheSize: defaultCacheSize,
	}
	for _, option := range options {
		option(source)
	}
	source.cache, err = lru.New[string, FeatureCollection](source.cacheSize)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't prepare cache of size %d", source.cacheSize)
	}
	return source, nil
}

// WithProcs sets number of PBF decoding goroutines
func WithProcs(procs int) func(*FileSource) {
	return func(source *FileSource) {
		source.procs = procs
	}
}

// WithCacheSize sets number of parsed extracts (one per tag query) to keep. Must be positive
func WithCacheSize(size int) func(*FileSource) {
	return func(source *FileSource) {
		source.cacheSize = size
	}
}

// Fetch reads the extract (or takes it from cache) and keeps features intersecting query area
func (source *FileSource) Fetch(ctx context.Context, query Query) (FeatureCollection, error) {
	var contains func(orb.Point) bool
	if query.Area != nil {
		var ok bool
		contains, ok = areaContains(query.Area)
		if !ok {
			return nil, errors.Wrapf(ErrUnsupportedGeometry, "area of type '%s'", query.Area.GeoJSONType())
		}
	}

	features, err := source.load(ctx, query.Tags)
	if err != nil {
		return nil, err
	}
	if contains == nil {
		return features, nil
	}
	bound := query.Area.Bound()
	clipped := make(FeatureCollection, 0)
	for _, feature := range features {
		if !bound.Intersects(feature.Geometry.Bound()) {
			continue
		}
		if intersectsArea(query.Area, contains, feature.Geometry) {
			clipped = append(clipped, feature)
		}
	}
	return clipped, nil
}

func (source *FileSource) load(ctx context.Context, tags TagQuery) (FeatureCollection, error) {
	cacheKey := tags.key()
	if features, ok := source.cache.Get(cacheKey); ok {
		return features, nil
	}
	file, err := os.Open(source.path)
	if err != nil {
		return nil, errors.Wrap(ErrFetchFailure, err.Error())
	}
	defer file.Close()

	st := time.Now()
	features, err := ReadFeatures(ctx, file, source.format, source.procs, tags)
	if err != nil {
		return nil, errors.Wrapf(ErrFetchFailure, "Can't read '%s': %s", source.path, err.Error())
	}
	log.Info().Str("file", source.path).Int("features", len(features)).Dur("took", time.Since(st)).Msg("Extract loaded")
	source.cache.Add(cacheKey, features)
	return features, nil
}
