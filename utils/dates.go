// utils/dates.go
package utils

import "time"

// BusinessTimezone is the fixed timezone every "day" boundary is computed in,
// regardless of server locale, so daily reports line up with shop hours.
const BusinessTimezone = "Europe/Warsaw"

const dayLayout = "2006-01-02"

var businessLocation *time.Location

func init() {
	loc, err := time.LoadLocation(BusinessTimezone)
	if err != nil {
		panic("failed to load business timezone: " + err.Error())
	}
	businessLocation = loc
}

func BusinessLocation() *time.Location {
	return businessLocation
}

// BeginningOfDay returns midnight of t's calendar day in the business timezone.
func BeginningOfDay(t time.Time) time.Time {
	year, month, day := t.In(businessLocation).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, businessLocation)
}

// DayRange returns the half-open interval [start, end) covering t's calendar
// day in the business timezone. AddDate keeps DST transition days correct.
func DayRange(t time.Time) (start, end time.Time) {
	start = BeginningOfDay(t)
	end = start.AddDate(0, 0, 1)
	return
}

// DayKey formats t's calendar day in the business timezone as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.In(businessLocation).Format(dayLayout)
}

// MonthKey formats t's calendar month in the business timezone as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.In(businessLocation).Format("2006-01")
}

// ParseDay parses a YYYY-MM-DD string as midnight in the business timezone.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(dayLayout, s, businessLocation)
}
