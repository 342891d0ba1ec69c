// Package countdown computes the time left until a New Year.
package countdown

import "time"

// Remaining is the broken-down time left until midnight on 1 January.
type Remaining struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
	Done    bool `json:"done"`
}

// Target returns 00:00:00 on 1 January of year in the location of now.
func Target(now time.Time, year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, now.Location())
}

// Until returns the time left from now until 1 January of year.
// Targets at or before now yield zeros with Done set.
func Until(now time.Time, year int) Remaining {
	diff := Target(now, year).Sub(now)
	if diff <= 0 {
		return Remaining{Done: true}
	}

	total := int64(diff / time.Second)
	return Remaining{
		Days:    int(total / 86400),
		Hours:   int(total % 86400 / 3600),
		Minutes: int(total % 3600 / 60),
		Seconds: int(total % 60),
	}
}

// NextYear returns the calendar year after now.
func NextYear(now time.Time) int {
	return now.Year() + 1
}
