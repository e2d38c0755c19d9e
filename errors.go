package osmnet

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidSpec Filter specification is malformed or self-contradictory
	ErrInvalidSpec = errors.New("invalid filter spec")
	// ErrUnsupportedGeometry Place geometry is neither Polygon nor MultiPolygon
	ErrUnsupportedGeometry = errors.New("unsupported geometry type")
	// ErrFetchFailure Extract could not be read or parsed
	ErrFetchFailure = errors.New("fetch failure")
)
