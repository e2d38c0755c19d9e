package osmnet

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// OSMScanner Common interface of XML and PBF scanners
type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

// Format OSM extract encoding
type Format uint16

const (
	FORMAT_XML = Format(iota + 1)
	FORMAT_PBF
	FORMAT_UNDEFINED = Format(0)
)

func (iotaIdx Format) String() string {
	if int(iotaIdx) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", uint16(iotaIdx))
	}
	return formatNames[iotaIdx]
}

var formatNames = [...]string{"undefined", "xml", "pbf"}

// FormatFromFilename guesses extract encoding by file extension
func FormatFromFilename(filename string) (Format, error) {
	ext := filepath.Ext(filename)
	switch strings.ToLower(ext) {
	case ".osm", ".xml":
		return FORMAT_XML, nil
	case ".pbf":
		return FORMAT_PBF, nil
	default:
		return FORMAT_UNDEFINED, fmt.Errorf("File extension '%s' for file '%s' is not handled yet", ext, filename)
	}
}

func newScanner(ctx context.Context, r io.Reader, format Format, procs int, objectType osm.Type) (OSMScanner, error) {
	switch format {
	case FORMAT_XML:
		return osmxml.New(ctx, r), nil
	case FORMAT_PBF:
		scanner := osmpbf.New(ctx, r, procs)
		scanner.SkipNodes = objectType != osm.TypeNode
		scanner.SkipWays = objectType != osm.TypeWay
		scanner.SkipRelations = objectType != osm.TypeRelation
		return scanner, nil
	default:
		return nil, fmt.Errorf("Format '%s' is not handled", format)
	}
}

type relationData struct {
	ID      osm.RelationID
	Tags    map[string]string
	Members osm.Members
	Kind    string
}

type wayData struct {
	ID    osm.WayID
	Tags  map[string]string
	Nodes []osm.NodeID
}

type nodeData struct {
	ID    osm.NodeID
	Tags  map[string]string
	Point orb.Point
}

// ReadFeatures Builds features from OSM extract
/*
	Three passes are made over the reader (it is seeked back to the start between them):
		1. relations: route and multipolygon relations are remembered together with their member ways;
		2. ways: tagged ways and relation member ways are remembered together with their node references;
		3. nodes: coordinates of referenced nodes are collected, tagged nodes become Point features.
	Only elements accepted by tag query become features. Output order: nodes, ways, relations.
*/
func ReadFeatures(ctx context.Context, r io.ReadSeeker, format Format, procs int, query TagQuery) (FeatureCollection, error) {
	if procs <= 0 {
		procs = 1
	}

	/* Process relations */
	st := time.Now()
	relations := []*relationData{}
	memberWays := make(map[osm.WayID]struct{})
	{
		scannerRelations, err := newScanner(ctx, r, format, procs, osm.TypeRelation)
		if err != nil {
			return nil, err
		}
		defer scannerRelations.Close()
		for scannerRelations.Scan() {
			relation, ok := scannerRelations.Object().(*osm.Relation)
			if !ok {
				continue
			}
			if len(relation.Tags) == 0 {
				continue
			}
			tags := relation.Tags.Map()
			if !query.accepts(tags) {
				continue
			}
			kind := tags["type"]
			if kind != relationTypeRoute && kind != relationTypeMultipolygon && kind != relationTypeBoundary {
				continue
			}
			for _, member := range relation.Members {
				if member.Type == osm.TypeWay {
					memberWays[osm.WayID(member.Ref)] = struct{}{}
				}
			}
			relations = append(relations, &relationData{
				ID:      relation.ID,
				Tags:    tags,
				Members: relation.Members,
				Kind:    kind,
			})
		}
		if err := scannerRelations.Err(); err != nil {
			return nil, errors.Wrap(err, "Scanner error on Relations")
		}
	}
	log.Debug().Dur("took", time.Since(st)).Int("relations", len(relations)).Msg("Relations scanned")

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking after relations scanning")
	}

	/* Process ways */
	st = time.Now()
	ways := []*wayData{}
	waysByID := make(map[osm.WayID]*wayData)
	nodesSeen := make(map[osm.NodeID]struct{})
	{
		scannerWays, err := newScanner(ctx, r, format, procs, osm.TypeWay)
		if err != nil {
			return nil, err
		}
		defer scannerWays.Close()
		for scannerWays.Scan() {
			way, ok := scannerWays.Object().(*osm.Way)
			if !ok {
				continue
			}
			_, isMember := memberWays[way.ID]
			tags := way.Tags.Map()
			isFeature := len(tags) != 0 && query.accepts(tags)
			if !isMember && !isFeature {
				continue
			}
			prepared := &wayData{
				ID:    way.ID,
				Tags:  tags,
				Nodes: make([]osm.NodeID, 0, len(way.Nodes)),
			}
			for _, node := range way.Nodes {
				nodesSeen[node.ID] = struct{}{}
				prepared.Nodes = append(prepared.Nodes, node.ID)
			}
			if isMember {
				waysByID[way.ID] = prepared
			}
			if isFeature {
				ways = append(ways, prepared)
			}
		}
		if err := scannerWays.Err(); err != nil {
			return nil, errors.Wrap(err, "Scanner error on Ways")
		}
	}
	log.Debug().Dur("took", time.Since(st)).Int("ways", len(ways)).Int("member_ways", len(waysByID)).Msg("Ways scanned")

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking after ways scanning")
	}

	/* Process nodes */
	st = time.Now()
	nodes := []*nodeData{}
	coordinates := make(map[osm.NodeID]orb.Point, len(nodesSeen))
	{
		scannerNodes, err := newScanner(ctx, r, format, procs, osm.TypeNode)
		if err != nil {
			return nil, err
		}
		defer scannerNodes.Close()
		for scannerNodes.Scan() {
			node, ok := scannerNodes.Object().(*osm.Node)
			if !ok {
				continue
			}
			point := orb.Point{node.Lon, node.Lat}
			if _, ok := nodesSeen[node.ID]; ok {
				coordinates[node.ID] = point
			}
			if len(node.Tags) == 0 {
				continue
			}
			tags := node.Tags.Map()
			if !query.accepts(tags) {
				continue
			}
			nodes = append(nodes, &nodeData{
				ID:    node.ID,
				Tags:  tags,
				Point: point,
			})
		}
		if err := scannerNodes.Err(); err != nil {
			return nil, errors.Wrap(err, "Scanner error on Nodes")
		}
	}
	log.Debug().Dur("took", time.Since(st)).Int("nodes", len(nodes)).Int("coordinates", len(coordinates)).Msg("Nodes scanned")

	/* Assemble features */
	features := make(FeatureCollection, 0, len(nodes)+len(ways)+len(relations))
	for _, node := range nodes {
		features = append(features, &Feature{
			ID:         int64(node.ID),
			Provenance: PROVENANCE_NODE,
			Geometry:   node.Point,
			Tags:       node.Tags,
		})
	}
	skippedWays := 0
	for _, way := range ways {
		line := way.lineString(coordinates)
		if len(line) < 2 {
			skippedWays++
			continue
		}
		var geom orb.Geometry = line
		if isClosed(line) && isAreaWay(way.Tags) {
			geom = orb.Polygon{orb.Ring(line)}
		}
		features = append(features, &Feature{
			ID:         int64(way.ID),
			Provenance: PROVENANCE_WAY,
			Geometry:   geom,
			Tags:       way.Tags,
		})
	}
	skippedRelations := 0
	for _, relation := range relations {
		geom := relation.geometry(waysByID, coordinates)
		if geom == nil {
			skippedRelations++
			continue
		}
		features = append(features, &Feature{
			ID:         int64(relation.ID),
			Provenance: PROVENANCE_RELATION,
			Geometry:   geom,
			Tags:       relation.Tags,
		})
	}
	if skippedWays != 0 || skippedRelations != 0 {
		log.Warn().Int("ways", skippedWays).Int("relations", skippedRelations).Msg("Elements without resolvable geometry have been skipped")
	}
	return features, nil
}

// lineString resolves node coordinates. Nodes missing from extract are omitted
func (way *wayData) lineString(coordinates map[osm.NodeID]orb.Point) orb.LineString {
	line := make(orb.LineString, 0, len(way.Nodes))
	for _, nodeID := range way.Nodes {
		if pt, ok := coordinates[nodeID]; ok {
			line = append(line, pt)
		}
	}
	return line
}

// geometry returns MultiLineString for route relations and MultiPolygon for multipolygon/boundary ones.
// Nil is returned when none of member ways could be resolved.
func (relation *relationData) geometry(waysByID map[osm.WayID]*wayData, coordinates map[osm.NodeID]orb.Point) orb.Geometry {
	var outer, inner []orb.LineString
	lines := orb.MultiLineString{}
	for _, member := range relation.Members {
		if member.Type != osm.TypeWay {
			continue
		}
		way, ok := waysByID[osm.WayID(member.Ref)]
		if !ok {
			continue
		}
		line := way.lineString(coordinates)
		if len(line) < 2 {
			continue
		}
		switch relation.Kind {
		case relationTypeRoute:
			lines = append(lines, line)
		default:
			if member.Role == "inner" {
				inner = append(inner, line)
			} else {
				outer = append(outer, line)
			}
		}
	}
	if relation.Kind == relationTypeRoute {
		if len(lines) == 0 {
			return nil
		}
		return lines
	}
	mp := assembleMultiPolygon(outer, inner)
	if len(mp) == 0 {
		return nil
	}
	return mp
}
