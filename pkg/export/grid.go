package export

// WeekGrid is a timetable laid out for rendering: one section per weekday
// that has at least one session, sections in week order, rows ordered by
// start time. Row values line up positionally with Columns.
type WeekGrid struct {
	Title   string
	Columns []string
	Days    []DaySection
}

// DaySection groups the sessions of a single weekday.
type DaySection struct {
	Day  string
	Rows [][]string
}
