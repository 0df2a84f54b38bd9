package timezone

import (
	"time"
)

const localTimeLayout = "2006-01-02T15:04:05"

// Marker for instants whose naive local reading fell in a DST spring-forward
// gap and was nudged one hour forward.
const DisambiguationGapAdjusted = "gap-adjusted"

// DisplayTime is the venue-local rendering of a UTC instant. UTC stays the
// source of truth in the database; these fields are derived on every read and
// never persisted.
type DisplayTime struct {
	LocalTime      string `json:"localTime"`
	Timezone       string `json:"timezone"`
	TimezoneAbbr   string `json:"timezoneAbbr"`
	UTCOffset      int    `json:"utcOffset"`
	IsDST          bool   `json:"isDST"`
	Disambiguation string `json:"disambiguation,omitempty"`
}

// Resolver converts UTC instants into venue-local display data, backed by an
// injected cache so tests don't share state through a package global.
type Resolver struct {
	cache *DisplayCache
}

func NewResolver(cache *DisplayCache) *Resolver {
	if cache == nil {
		cache = NewDisplayCache(DisplayCacheCapacity, DisplayCacheTTL)
	}
	return &Resolver{cache: cache}
}

func (r *Resolver) Cache() *DisplayCache {
	return r.cache
}

// Resolve computes the venue-local wall clock for a UTC instant. It returns
// nil when the instant is zero or the zone is blank or unknown; callers treat
// nil as "timezone data unavailable" and omit display fields instead of
// failing the response.
func (r *Resolver) Resolve(utc time.Time, zone string) *DisplayTime {
	if utc.IsZero() || zone == "" {
		return nil
	}
	loc, err := Zone(zone)
	if err != nil {
		return nil
	}

	if cached := r.cache.get(utc, zone); cached != nil {
		return cached
	}

	utc = utc.UTC()
	local := utc.In(loc)
	abbr, offsetSec := local.Zone()

	result := DisplayTime{
		LocalTime:    local.Format(localTimeLayout),
		Timezone:     zone,
		TimezoneAbbr: abbr,
		UTCOffset:    offsetSec / 60,
		IsDST:        inDST(local),
	}

	// Spring-forward shadow: if the offset grew within the trailing hour, the
	// pre-transition reading of this wall clock falls in the skipped interval.
	// The local time shown is that naive reading plus one hour, the same nudge
	// the legacy service applied; flag it so consumers can tell.
	_, offsetBefore := utc.Add(-time.Hour).In(loc).Zone()
	if offsetSec > offsetBefore {
		result.IsDST = true
		result.Disambiguation = DisambiguationGapAdjusted
	}

	r.cache.set(utc, zone, result)
	return &result
}
