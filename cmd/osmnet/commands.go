package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/udsleeds/osmnet"
)

// Output Export options shared by commands
type Output struct {
	Out        string `short:"o" long:"out"    description:"Output file (directory for 'places')" required:"true"`
	Format     string `long:"format"           description:"Output format" choice:"geojson" choice:"csv" choice:"html" default:"geojson"`
	GeomFormat string `long:"geomf"            description:"Geometry format of CSV output" choice:"wkt" choice:"geojson" default:"wkt"`
	Color      string `long:"color"            description:"Line color of HTML map" default:"blue"`
	Zoom       int    `long:"zoom"             description:"Initial zoom of HTML map" default:"13"`
}

func (out Output) write(path string, title string, features osmnet.FeatureCollection) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "Can't create output file")
	}
	defer file.Close()

	switch out.Format {
	case "csv":
		var geomFormat osmnet.GeomFormat
		geomFormat, err = osmnet.ParseGeomFormat(out.GeomFormat)
		if err != nil {
			return err
		}
		err = osmnet.ExportCSV(file, features, geomFormat)
	case "html":
		mapOpts := osmnet.DefaultMapOptions()
		mapOpts.Title = title
		mapOpts.Color = out.Color
		mapOpts.Zoom = out.Zoom
		err = osmnet.ExportHTML(file, features, mapOpts)
	default:
		err = osmnet.ExportGeoJSON(file, features)
	}
	if err != nil {
		return err
	}
	log.Info().Str("file", path).Int("features", len(features)).Msg("Saved")
	return nil
}

func (out Output) extension() string {
	if out.Format == "geojson" || out.Format == "" {
		return ".geojson"
	}
	return "." + out.Format
}

// parseTagQuery turns 'highway,-building' into {highway: true, building: false}
func parseTagQuery(keys []string) osmnet.TagQuery {
	query := make(osmnet.TagQuery, len(keys))
	for _, key := range keys {
		for _, part := range strings.Split(key, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if strings.HasPrefix(part, "-") {
				query[strings.TrimPrefix(part, "-")] = false
				continue
			}
			query[part] = true
		}
	}
	return query
}

func loadFilter(name string) (osmnet.FilterSpec, error) {
	var cfg *osmnet.Config
	if opts.ConfigFile != "" {
		var err error
		cfg, err = osmnet.LoadConfig(opts.ConfigFile)
		if err != nil {
			return osmnet.FilterSpec{}, err
		}
	}
	return cfg.Filter(name)
}

func logCounts(features osmnet.FeatureCollection, field string) {
	counts := osmnet.CountBy(features, field)
	values := make([]string, 0, len(counts))
	for value := range counts {
		values = append(values, value)
	}
	sort.Slice(values, func(i, j int) bool {
		if counts[values[i]] == counts[values[j]] {
			return values[i] < values[j]
		}
		return counts[values[i]] > counts[values[j]]
	})
	for _, value := range values {
		log.Info().Str("field", field).Str("value", value).Int("count", counts[value]).Msg("Value counts")
	}
}

type networkCommand struct {
	Output
	File    string   `short:"f" long:"file"    description:"Filename of *.osm or *.osm.pbf extract" required:"true"`
	Network string   `short:"n" long:"network" description:"Predefined network (all, driving, driving+service, driving_psv, walking, cycling, bus_routes) or custom filter name from config" default:"driving"`
	Tags    []string `short:"t" long:"tags"    description:"Tag query: keys which should (or with '-' prefix should not) be present, e.g. 'highway,-building'"`
}

func (cmd *networkCommand) Execute(args []string) error {
	spec, err := loadFilter(cmd.Network)
	if err != nil {
		return err
	}
	log.Debug().Msg(spec.String())
	source, err := osmnet.NewFileSource(cmd.File, osmnet.WithProcs(opts.Procs))
	if err != nil {
		return err
	}
	features, err := source.Fetch(context.Background(), osmnet.Query{Tags: parseTagQuery(cmd.Tags)})
	if err != nil {
		return err
	}
	network, err := osmnet.ApplyFilter(osmnet.LabelGeomType(features), spec)
	if err != nil {
		return err
	}
	log.Info().Str("network", cmd.Network).Int("raw", len(features)).Int("filtered", len(network)).Msg("Network obtained")
	logCounts(network, osmnet.FieldGeomType)
	return cmd.write(cmd.Out, cmd.Network, network)
}

type routesCommand struct {
	Output
	File   string   `short:"f" long:"file"   description:"Filename of *.osm or *.osm.pbf extract" required:"true"`
	Routes []string `short:"r" long:"route"  description:"Route values to keep (repeatable)" default:"bus"`
	Filter string   `long:"filter"           description:"Base filter name" default:"bus_routes"`
}

func (cmd *routesCommand) Execute(args []string) error {
	base, err := loadFilter(cmd.Filter)
	if err != nil {
		return err
	}
	source, err := osmnet.NewFileSource(cmd.File, osmnet.WithProcs(opts.Procs))
	if err != nil {
		return err
	}
	features, err := source.Fetch(context.Background(), osmnet.Query{})
	if err != nil {
		return err
	}
	network, err := osmnet.ApplyFilter(osmnet.LabelGeomType(features), base)
	if err != nil {
		return err
	}
	logCounts(network, osmnet.FieldGeomType)
	logCounts(network, "route")

	routes, err := osmnet.ApplyFilter(network, osmnet.RouteFilter(cmd.Routes...))
	if err != nil {
		return err
	}
	log.Info().Strs("routes", cmd.Routes).Int("features", len(routes)).Msg("Routes obtained")
	return cmd.write(cmd.Out, strings.Join(cmd.Routes, ","), routes)
}

type placesCommand struct {
	Output
	File         string   `short:"f" long:"file"          description:"Filename of *.osm or *.osm.pbf extract covering all places" required:"true"`
	Boundaries   string   `short:"b" long:"boundaries"    description:"GeoJSON FeatureCollection of place boundaries" required:"true"`
	NameProperty string   `long:"name-property"           description:"Feature property holding place name" default:"LAD21NM"`
	Tags         []string `short:"t" long:"tags"          description:"Tag query, e.g. 'highway,-building'" default:"highway"`
	Network      string   `short:"n" long:"network"       description:"Filter applied to every place. Without it only Point features are dropped"`
	Strict       bool     `long:"strict"                  description:"Abort on first fetch failure instead of skipping the place"`
	Combined     bool     `long:"combined"                description:"Also write all places joined into one file"`
}

func (cmd *placesCommand) Execute(args []string) error {
	spec := osmnet.FilterSpec{Mode: osmnet.FILTER_EXCLUDE, KeepRelations: true}
	if cmd.Network != "" {
		var err error
		spec, err = loadFilter(cmd.Network)
		if err != nil {
			return err
		}
	}

	boundaries, err := os.Open(cmd.Boundaries)
	if err != nil {
		return errors.Wrap(err, "Can't open boundaries")
	}
	places, err := osmnet.LoadPlaces(boundaries, cmd.NameProperty)
	boundaries.Close()
	if err != nil {
		return err
	}

	source, err := osmnet.NewFileSource(cmd.File, osmnet.WithProcs(opts.Procs))
	if err != nil {
		return err
	}
	result, err := osmnet.FetchPlaces(
		context.Background(),
		source,
		places,
		parseTagQuery(cmd.Tags),
		osmnet.WithFilter(spec),
		osmnet.WithSkipFailures(!cmd.Strict),
	)
	if err != nil {
		return err
	}
	for _, skipped := range result.Skipped {
		log.Warn().Str("place", skipped.Name).Str("reason", skipped.Reason).Err(skipped.Err).Msg("Skipped")
	}

	if err := os.MkdirAll(cmd.Out, 0755); err != nil {
		return errors.Wrap(err, "Can't create output directory")
	}
	for _, name := range result.Names {
		path := filepath.Join(cmd.Out, fileSafe(name)+cmd.extension())
		if err := cmd.write(path, name, result.Networks[name]); err != nil {
			return errors.Wrapf(err, "Can't save place '%s'", name)
		}
	}
	if cmd.Combined {
		combined := result.Combined()
		logCounts(combined, osmnet.FieldGeomType)
		path := filepath.Join(cmd.Out, "combined"+cmd.extension())
		if err := cmd.write(path, "combined", combined); err != nil {
			return err
		}
	}
	fmt.Printf("Finished obtaining networks for %d places. Skipped %d places\n", len(result.Names), len(result.Skipped))
	return nil
}

func fileSafe(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, name)
}
