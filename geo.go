package osmnet

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// isClosed returns true if line has at least 4 points and ends where it starts
func isClosed(line orb.LineString) bool {
	return len(line) >= 4 && line[0].Equal(line[len(line)-1])
}

// isAreaWay decides whether closed way should become a Polygon
func isAreaWay(tags map[string]string) bool {
	if area, ok := tags[ACCESS_AREA.String()]; ok {
		return area != "no"
	}
	if _, ok := areaHighwayTags[tags[ACCESS_HIGHWAY.String()]]; ok {
		return true
	}
	for key := range tags {
		if _, ok := areaKeys[key]; ok {
			return true
		}
	}
	return false
}

// stitchRings joins line pieces sharing end points into closed rings.
// Pieces which can't be closed are dropped.
func stitchRings(lines []orb.LineString) []orb.Ring {
	rings := []orb.Ring{}
	pending := make([]orb.LineString, 0, len(lines))
	for _, line := range lines {
		if len(line) < 2 {
			continue
		}
		if isClosed(line) {
			rings = append(rings, orb.Ring(line))
			continue
		}
		pending = append(pending, line)
	}
	for len(pending) > 0 {
		current := append(orb.LineString{}, pending[0]...)
		pending = pending[1:]
		for !isClosed(current) {
			joined := false
			for i, piece := range pending {
				next, ok := joinLines(current, piece)
				if !ok {
					continue
				}
				current = next
				pending = append(pending[:i], pending[i+1:]...)
				joined = true
				break
			}
			if !joined {
				break
			}
		}
		if isClosed(current) {
			rings = append(rings, orb.Ring(current))
		}
	}
	return rings
}

// joinLines appends piece to the end of line (reversing either of them if needed)
func joinLines(line, piece orb.LineString) (orb.LineString, bool) {
	first, last := line[0], line[len(line)-1]
	pieceFirst, pieceLast := piece[0], piece[len(piece)-1]
	switch {
	case last.Equal(pieceFirst):
		return append(line, piece[1:]...), true
	case last.Equal(pieceLast):
		return append(line, reversed(piece)[1:]...), true
	case first.Equal(pieceLast):
		return append(append(orb.LineString{}, piece...), line[1:]...), true
	case first.Equal(pieceFirst):
		return append(reversed(piece), line[1:]...), true
	}
	return nil, false
}

func reversed(line orb.LineString) orb.LineString {
	out := make(orb.LineString, len(line))
	for i := range line {
		out[len(line)-1-i] = line[i]
	}
	return out
}

// assembleMultiPolygon builds MultiPolygon from outer and inner member lines.
// Each inner ring goes to the first outer ring containing its first vertex.
func assembleMultiPolygon(outer, inner []orb.LineString) orb.MultiPolygon {
	outerRings := stitchRings(outer)
	if len(outerRings) == 0 {
		return nil
	}
	mp := make(orb.MultiPolygon, len(outerRings))
	for i, ring := range outerRings {
		mp[i] = orb.Polygon{ring}
	}
	for _, hole := range stitchRings(inner) {
		for i := range mp {
			if planar.RingContains(mp[i][0], hole[0]) {
				mp[i] = append(mp[i], hole)
				break
			}
		}
	}
	return mp
}

// anyVertex reports whether fn holds for at least one vertex of the geometry
func anyVertex(geom orb.Geometry, fn func(orb.Point) bool) bool {
	switch g := geom.(type) {
	case orb.Point:
		return fn(g)
	case orb.MultiPoint:
		for _, pt := range g {
			if fn(pt) {
				return true
			}
		}
	case orb.LineString:
		return anyVertex(orb.MultiPoint(g), fn)
	case orb.Ring:
		return anyVertex(orb.MultiPoint(g), fn)
	case orb.MultiLineString:
		for _, line := range g {
			if anyVertex(line, fn) {
				return true
			}
		}
	case orb.Polygon:
		for _, ring := range g {
			if anyVertex(ring, fn) {
				return true
			}
		}
	case orb.MultiPolygon:
		for _, polygon := range g {
			if anyVertex(polygon, fn) {
				return true
			}
		}
	case orb.Collection:
		for _, child := range g {
			if anyVertex(child, fn) {
				return true
			}
		}
	}
	return false
}

// areaContains returns function checking whether point lies within Polygon or MultiPolygon area.
// Other area geometries are not supported.
func areaContains(area orb.Geometry) (func(orb.Point) bool, bool) {
	switch g := area.(type) {
	case orb.Polygon:
		return func(pt orb.Point) bool { return planar.PolygonContains(g, pt) }, true
	case orb.MultiPolygon:
		return func(pt orb.Point) bool { return planar.MultiPolygonContains(g, pt) }, true
	}
	return nil, false
}

// intersectsArea reports whether geometry shares at least one point with the area (Polygon or MultiPolygon)
func intersectsArea(area orb.Geometry, contains func(orb.Point) bool, geom orb.Geometry) bool {
	if anyVertex(geom, contains) {
		return true
	}
	areaEdges := segmentLines(area)
	for _, line := range segmentLines(geom) {
		for i := 1; i < len(line); i++ {
			for _, edge := range areaEdges {
				for j := 1; j < len(edge); j++ {
					if segmentsIntersect(line[i-1], line[i], edge[j-1], edge[j]) {
						return true
					}
				}
			}
		}
	}
	// Area lies entirely within polygon feature
	featureContains, ok := areaContains(geom)
	if !ok {
		return false
	}
	return anyVertex(area, featureContains)
}

// segmentLines returns every line string (including polygon rings) of the geometry
func segmentLines(geom orb.Geometry) []orb.LineString {
	switch g := geom.(type) {
	case orb.LineString:
		return []orb.LineString{g}
	case orb.Ring:
		return []orb.LineString{orb.LineString(g)}
	case orb.MultiLineString:
		return []orb.LineString(g)
	case orb.Polygon:
		lines := make([]orb.LineString, 0, len(g))
		for _, ring := range g {
			lines = append(lines, orb.LineString(ring))
		}
		return lines
	case orb.MultiPolygon:
		lines := []orb.LineString{}
		for _, polygon := range g {
			lines = append(lines, segmentLines(polygon)...)
		}
		return lines
	case orb.Collection:
		lines := []orb.LineString{}
		for _, child := range g {
			lines = append(lines, segmentLines(child)...)
		}
		return lines
	}
	return nil
}

func orientation(a, b, c orb.Point) int {
	cross := (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
	switch {
	case cross > 0:
		return 1
	case cross < 0:
		return -1
	}
	return 0
}

// onSegment assumes p is collinear with a-b
func onSegment(a, b, p orb.Point) bool {
	return p[0] >= min(a[0], b[0]) && p[0] <= max(a[0], b[0]) &&
		p[1] >= min(a[1], b[1]) && p[1] <= max(a[1], b[1])
}

// segmentsIntersect reports whether segments p1-p2 and q1-q2 touch or cross
func segmentsIntersect(p1, p2, q1, q2 orb.Point) bool {
	o1 := orientation(p1, p2, q1)
	o2 := orientation(p1, p2, q2)
	o3 := orientation(q1, q2, p1)
	o4 := orientation(q1, q2, p2)
	if o1 != o2 && o3 != o4 {
		return true
	}
	return (o1 == 0 && onSegment(p1, p2, q1)) ||
		(o2 == 0 && onSegment(p1, p2, q2)) ||
		(o3 == 0 && onSegment(q1, q2, p1)) ||
		(o4 == 0 && onSegment(q1, q2, p2))
}
