package timezone

import (
	"fmt"
	"time"
)

// Fallback for venues that predate timezone capture; those rows were created
// before the venue form had a timezone field and are all US east coast.
const DefaultZone = "America/New_York"

// Zone resolves an IANA timezone name against the zone database.
func Zone(name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("timezone.Zone: name is blank")
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("timezone.Zone: %w", err)
	}
	return loc, nil
}

// Whether the instant falls in daylight-saving time for its location. The
// standard offset is the smaller of the January/July offsets, which holds for
// both hemispheres; zones without DST report false.
func inDST(t time.Time) bool {
	loc := t.Location()
	_, jan := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, loc).Zone()
	_, jul := time.Date(t.Year(), time.July, 1, 0, 0, 0, 0, loc).Zone()
	std := jan
	if jul < std {
		std = jul
	}
	_, off := t.Zone()
	return off > std
}
