package report

import "time"

const dateLayout = "2006-01-02"

// WeekBounds returns the report week containing date. Weeks run from
// Wednesday 00:00 (inclusive) to the following Wednesday 00:00 (exclusive),
// in date's location.
func WeekBounds(date time.Time) (start, end time.Time) {
	sinceWednesday := (int(date.Weekday()) - int(time.Wednesday) + 7) % 7
	y, m, d := date.Date()
	start = time.Date(y, m, d-sinceWednesday, 0, 0, 0, 0, date.Location())
	end = start.AddDate(0, 0, 7)
	return start, end
}

// weekOf returns the week label fields for date: start and the inclusive
// display end (start + 6 days)
func weekOf(date time.Time) (start, displayEnd string) {
	s, e := WeekBounds(date)
	return s.Format(dateLayout), e.AddDate(0, 0, -1).Format(dateLayout)
}
