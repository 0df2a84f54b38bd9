package timezone

import "strings"

// US state codes to IANA zones. States split across zones map to the zone
// covering the bulk of their population.
var stateZones = map[string]string{
	"CT": "America/New_York", "DC": "America/New_York", "DE": "America/New_York",
	"FL": "America/New_York", "GA": "America/New_York", "IN": "America/Indiana/Indianapolis",
	"KY": "America/New_York", "MA": "America/New_York", "MD": "America/New_York",
	"ME": "America/New_York", "MI": "America/Detroit", "NC": "America/New_York",
	"NH": "America/New_York", "NJ": "America/New_York", "NY": "America/New_York",
	"OH": "America/New_York", "PA": "America/New_York", "RI": "America/New_York",
	"SC": "America/New_York", "VA": "America/New_York", "VT": "America/New_York",
	"WV": "America/New_York",
	"AL": "America/Chicago", "AR": "America/Chicago", "IA": "America/Chicago",
	"IL": "America/Chicago", "KS": "America/Chicago", "LA": "America/Chicago",
	"MN": "America/Chicago", "MO": "America/Chicago", "MS": "America/Chicago",
	"ND": "America/Chicago", "NE": "America/Chicago", "OK": "America/Chicago",
	"SD": "America/Chicago", "TN": "America/Chicago", "TX": "America/Chicago",
	"WI": "America/Chicago",
	"CO": "America/Denver", "ID": "America/Boise", "MT": "America/Denver",
	"NM": "America/Denver", "UT": "America/Denver", "WY": "America/Denver",
	"AZ": "America/Phoenix",
	"CA": "America/Los_Angeles", "NV": "America/Los_Angeles",
	"OR": "America/Los_Angeles", "WA": "America/Los_Angeles",
	"AK": "America/Anchorage",
	"HI": "Pacific/Honolulu",
}

var cityZones = map[string]string{
	"boston": "America/New_York", "new york": "America/New_York",
	"new york city": "America/New_York", "nyc": "America/New_York",
	"philadelphia": "America/New_York", "washington": "America/New_York",
	"washington dc": "America/New_York", "miami": "America/New_York",
	"atlanta": "America/New_York", "chicago": "America/Chicago",
	"dallas": "America/Chicago", "houston": "America/Chicago",
	"austin": "America/Chicago", "denver": "America/Denver",
	"phoenix": "America/Phoenix", "los angeles": "America/Los_Angeles",
	"san francisco": "America/Los_Angeles", "seattle": "America/Los_Angeles",
	"portland": "America/Los_Angeles", "las vegas": "America/Los_Angeles",
	"san diego": "America/Los_Angeles", "cambridge": "America/New_York",
	"somerville": "America/New_York", "brooklyn": "America/New_York",
	"queens": "America/New_York", "bronx": "America/New_York",
	"arlington": "America/New_York", "alexandria": "America/New_York",
	"buenos aires": "America/Argentina/Buenos_Aires",
	"montreal":     "America/Toronto", "toronto": "America/Toronto",
	"london": "Europe/London", "paris": "Europe/Paris",
	"berlin": "Europe/Berlin",
}

var countryZones = map[string]string{
	"US": "America/New_York", "CA": "America/Toronto",
	"MX": "America/Mexico_City", "GB": "Europe/London",
	"FR": "Europe/Paris", "DE": "Europe/Berlin",
	"ES": "Europe/Madrid", "IT": "Europe/Rome",
	"JP": "Asia/Tokyo", "CN": "Asia/Shanghai",
	"AU": "Australia/Sydney", "BR": "America/Sao_Paulo",
	"AR": "America/Argentina/Buenos_Aires",
}

// ForLocation guesses the IANA zone for a venue location.
// Priority: city name, then state, then country, then DefaultZone.
func ForLocation(city, state, country string) string {
	if city != "" {
		if zone, ok := cityZones[strings.ToLower(strings.TrimSpace(city))]; ok {
			return zone
		}
	}
	if state != "" {
		if zone, ok := stateZones[strings.ToUpper(strings.TrimSpace(state))]; ok {
			return zone
		}
	}
	if country != "" {
		if zone, ok := countryZones[strings.ToUpper(strings.TrimSpace(country))]; ok {
			return zone
		}
	}
	return DefaultZone
}
