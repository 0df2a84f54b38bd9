package recur

import "strings"

var weekdayNames = map[string]string{
	"SU": "Sunday", "MO": "Monday", "TU": "Tuesday", "WE": "Wednesday",
	"TH": "Thursday", "FR": "Friday", "SA": "Saturday",
}

var frequencyNames = map[string]string{
	"DAILY": "Daily", "WEEKLY": "Weekly", "MONTHLY": "Monthly", "YEARLY": "Yearly",
}

// Describe renders an RRULE string into a short human-readable recurrence
// description for voice responses, e.g. "Weekly on Tuesday". It also returns
// the raw UNTIL value when present. Unknown tokens pass through verbatim; a
// blank rule yields an empty description.
func Describe(rule string) (description string, until string) {
	if strings.TrimSpace(rule) == "" {
		return "", ""
	}

	var freq string
	var days []string
	for _, part := range strings.Split(rule, ";") {
		key, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		switch key {
		case "FREQ":
			if name, ok := frequencyNames[value]; ok {
				freq = name
			} else {
				freq = value
			}
		case "BYDAY":
			for _, day := range strings.Split(value, ",") {
				if name, ok := weekdayNames[day]; ok {
					days = append(days, name)
				} else {
					days = append(days, day)
				}
			}
		case "UNTIL":
			until = value
		}
	}

	description = freq
	if len(days) > 0 {
		description += " on " + strings.Join(days, ", ")
	}
	return description, until
}
