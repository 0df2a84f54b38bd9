package timezone

import "time"

// Display is the nested display object added to serialized events.
type Display struct {
	StartTime    string  `json:"startTime"`
	EndTime      *string `json:"endTime"`
	Timezone     string  `json:"timezone"`
	TimezoneAbbr string  `json:"timezoneAbbr"`
	UTCOffset    int     `json:"utcOffset"`
	IsDST        bool    `json:"isDST"`
}

// EventDisplayFields carries both generations of display field names: the
// flat legacy names the first web client reads, and the venue*/nested display
// shape the current clients read. Embed it in event response bodies.
type EventDisplayFields struct {
	DisplayStartTime string  `json:"displayStartTime,omitempty"`
	DisplayEndTime   *string `json:"displayEndTime,omitempty"`
	TimezoneAbbr     string  `json:"timezoneAbbr,omitempty"`
	UTCOffset        int     `json:"utcOffset"`
	IsDST            bool    `json:"isDST"`
	HasTimezoneData  bool    `json:"hasTimezoneData"`

	VenueStartDisplay string  `json:"venueStartDisplay,omitempty"`
	VenueEndDisplay   *string `json:"venueEndDisplay,omitempty"`
	VenueAbbr         string  `json:"venueAbbr,omitempty"`
	VenueTZ           string  `json:"venueTZ,omitempty"`

	Display *Display `json:"display,omitempty"`
}

// EnrichFields computes the display fields for one event's start/end instants
// in the venue zone. A nil end instant leaves the end fields null. When the
// zone is unknown the result only carries HasTimezoneData=false, so a venue
// with bad timezone data degrades to an event without localized display
// instead of failing the listing.
func (r *Resolver) EnrichFields(start time.Time, end *time.Time, zone string) EventDisplayFields {
	startDisplay := r.Resolve(start, zone)
	if startDisplay == nil {
		return EventDisplayFields{HasTimezoneData: false}
	}

	var endLocal *string
	if end != nil {
		if endDisplay := r.Resolve(*end, zone); endDisplay != nil {
			endLocal = &endDisplay.LocalTime
		}
	}

	return EventDisplayFields{
		DisplayStartTime: startDisplay.LocalTime,
		DisplayEndTime:   endLocal,
		TimezoneAbbr:     startDisplay.TimezoneAbbr,
		UTCOffset:        startDisplay.UTCOffset,
		IsDST:            startDisplay.IsDST,
		HasTimezoneData:  true,

		VenueStartDisplay: startDisplay.LocalTime,
		VenueEndDisplay:   endLocal,
		VenueAbbr:         startDisplay.TimezoneAbbr,
		VenueTZ:           zone,

		Display: &Display{
			StartTime:    startDisplay.LocalTime,
			EndTime:      endLocal,
			Timezone:     startDisplay.Timezone,
			TimezoneAbbr: startDisplay.TimezoneAbbr,
			UTCOffset:    startDisplay.UTCOffset,
			IsDST:        startDisplay.IsDST,
		},
	}
}
