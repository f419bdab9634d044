package timeline

import "time"

// MonthThreshold is the span a range must exceed before month markers are drawn.
const MonthThreshold = 30 * 24 * time.Hour

const monthLabel = "Jan 06"

// MonthMarker is a gridline at the first of a month.
type MonthMarker struct {
	Date     time.Time
	Label    string
	Position float64
}

// Months returns one marker per calendar month from the month containing
// r.Start through r.End. Ranges no longer than MonthThreshold get none.
func Months(r Range) []MonthMarker {
	r = r.Normalize()
	if r.Span() <= MonthThreshold {
		return nil
	}
	loc := r.Start.Location()
	cur := time.Date(r.Start.Year(), r.Start.Month(), 1, 0, 0, 0, 0, loc)
	var out []MonthMarker
	for !cur.After(r.End) {
		out = append(out, MonthMarker{
			Date:     cur,
			Label:    cur.Format(monthLabel),
			Position: Position(cur, r),
		})
		// time.Date normalises month 13 into January of the next year.
		cur = time.Date(cur.Year(), cur.Month()+1, 1, 0, 0, 0, 0, loc)
	}
	return out
}
