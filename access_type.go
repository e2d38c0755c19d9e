package osmnet

import "fmt"

// AccessType OSM tag keys which are used by network filters
type AccessType uint16

const (
	ACCESS_HIGHWAY = AccessType(iota + 1)
	ACCESS_MOTOR_VEHICLE
	ACCESS_MOTORCAR
	ACCESS_OSM_ACCESS
	ACCESS_SERVICE
	ACCESS_BICYCLE
	ACCESS_FOOT
	ACCESS_AREA
	ACCESS_PSV
	ACCESS_ROUTE
	ACCESS_UNDEFINED = AccessType(0)
)

func (iotaIdx AccessType) String() string {
	if int(iotaIdx) >= len(accessTypeNames) {
		return fmt.Sprintf("AccessType(%d)", uint16(iotaIdx))
	}
	return accessTypeNames[iotaIdx]
}

var accessTypeNames = [...]string{"undefined", "highway", "motor_vehicle", "motorcar", "access", "service", "bicycle", "foot", "area", "psv", "route"}
