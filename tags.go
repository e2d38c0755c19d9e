package osmnet

var (
	networkFiltersExclude = map[NetworkType]map[AccessType]map[string]struct{}{
		NETWORK_ALL: {
			ACCESS_AREA: {
				"yes": {},
			},
			ACCESS_HIGHWAY: {
				"proposed":     {},
				"construction": {},
				"abandoned":    {},
				"platform":     {},
				"raceway":      {},
			},
		},
		NETWORK_DRIVING: {
			ACCESS_AREA: {
				"yes": {},
			},
			ACCESS_HIGHWAY: {
				"cycleway":     {},
				"footway":      {},
				"path":         {},
				"pedestrian":   {},
				"steps":        {},
				"track":        {},
				"corridor":     {},
				"elevator":     {},
				"escalator":    {},
				"proposed":     {},
				"construction": {},
				"bridleway":    {},
				"abandoned":    {},
				"platform":     {},
				"raceway":      {},
				"service":      {},
			},
			ACCESS_MOTOR_VEHICLE: {
				"no": {},
			},
			ACCESS_MOTORCAR: {
				"no": {},
			},
			ACCESS_SERVICE: {
				"parking":          {},
				"parking_aisle":    {},
				"private":          {},
				"emergency_access": {},
			},
		},
		NETWORK_DRIVING_SERVICE: {
			ACCESS_AREA: {
				"yes": {},
			},
			ACCESS_HIGHWAY: {
				"cycleway":     {},
				"footway":      {},
				"path":         {},
				"pedestrian":   {},
				"steps":        {},
				"track":        {},
				"corridor":     {},
				"elevator":     {},
				"escalator":    {},
				"proposed":     {},
				"construction": {},
				"bridleway":    {},
				"abandoned":    {},
				"platform":     {},
				"raceway":      {},
			},
			ACCESS_MOTOR_VEHICLE: {
				"no": {},
			},
			ACCESS_MOTORCAR: {
				"no": {},
			},
			ACCESS_SERVICE: {
				"private":          {},
				"emergency_access": {},
			},
		},
		NETWORK_DRIVING_PSV: {
			ACCESS_AREA: {
				"yes": {},
			},
			ACCESS_HIGHWAY: {
				"cycleway":     {},
				"footway":      {},
				"path":         {},
				"pedestrian":   {},
				"steps":        {},
				"track":        {},
				"corridor":     {},
				"elevator":     {},
				"escalator":    {},
				"proposed":     {},
				"construction": {},
				"bridleway":    {},
				"abandoned":    {},
				"platform":     {},
				"raceway":      {},
			},
			ACCESS_PSV: {
				"no": {},
			},
			ACCESS_SERVICE: {
				"parking":          {},
				"parking_aisle":    {},
				"private":          {},
				"emergency_access": {},
			},
		},
		NETWORK_WALKING: {
			ACCESS_AREA: {
				"yes": {},
			},
			ACCESS_HIGHWAY: {
				"cycleway":      {},
				"motor":         {},
				"proposed":      {},
				"construction":  {},
				"abandoned":     {},
				"platform":      {},
				"raceway":       {},
				"motorway":      {},
				"motorway_link": {},
			},
			ACCESS_FOOT: {
				"no": {},
			},
			ACCESS_SERVICE: {
				"private": {},
			},
		},
		NETWORK_CYCLING: {
			ACCESS_AREA: {
				"yes": {},
			},
			ACCESS_HIGHWAY: {
				"footway":       {},
				"steps":         {},
				"corridor":      {},
				"elevator":      {},
				"escalator":     {},
				"motor":         {},
				"proposed":      {},
				"construction":  {},
				"abandoned":     {},
				"platform":      {},
				"raceway":       {},
				"motorway":      {},
				"motorway_link": {},
			},
			ACCESS_BICYCLE: {
				"no": {},
			},
			ACCESS_SERVICE: {
				"private": {},
			},
		},
	}

	// Driving network without `highway=service` exclusion
	busRoutesFilterExclude = map[AccessType]map[string]struct{}{
		ACCESS_AREA: {
			"yes": {},
		},
		ACCESS_HIGHWAY: {
			"cycleway":     {},
			"footway":      {},
			"path":         {},
			"pedestrian":   {},
			"steps":        {},
			"track":        {},
			"corridor":     {},
			"elevator":     {},
			"escalator":    {},
			"proposed":     {},
			"construction": {},
			"bridleway":    {},
			"abandoned":    {},
			"platform":     {},
			"raceway":      {},
		},
		ACCESS_MOTOR_VEHICLE: {
			"no": {},
		},
		ACCESS_MOTORCAR: {
			"no": {},
		},
		ACCESS_SERVICE: {
			"parking":          {},
			"parking_aisle":    {},
			"private":          {},
			"emergency_access": {},
		},
	}

	// Closed ways carrying one of these keys are treated as polygons
	areaKeys = map[string]struct{}{
		"amenity":  {},
		"building": {},
		"landuse":  {},
		"leisure":  {},
		"natural":  {},
		"place":    {},
		"boundary": {},
		"water":    {},
	}

	// Closed highways of these kinds are treated as polygons even without `area=yes`
	areaHighwayTags = map[string]struct{}{
		"services":  {},
		"rest_area": {},
	}
)

const (
	relationTypeRoute        = "route"
	relationTypeMultipolygon = "multipolygon"
	relationTypeBoundary     = "boundary"
)
