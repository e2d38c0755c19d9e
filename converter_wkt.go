package osmnet

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// PrepareWKT returns WKT representation of geometry
func PrepareWKT(geom orb.Geometry) string {
	if geom == nil {
		return ""
	}
	return wkt.MarshalString(geom)
}
