// Package datetree derives the navigable year/month/day hierarchy shown by
// the date picker.
package datetree

import (
	"sort"
	"time"

	"github.com/bilgisen/newsnexus/internal/models"
)

// StartYear, StartMonth and StartDay mark the first day the feed has data for.
const (
	StartYear  = 2024
	StartMonth = time.July
	StartDay   = 14
)

// DateTreeMonth holds the days of one month, most recent first.
type DateTreeMonth struct {
	Month int              `json:"month"`
	Days  []models.IsoDate `json:"days"`
}

// DateTreeYear holds the months of one year, most recent first.
type DateTreeYear struct {
	Year   int             `json:"year"`
	Months []DateTreeMonth `json:"months"`
}

// DateTree is every navigable date grouped by year and month.
type DateTree struct {
	Years []DateTreeYear `json:"years"`
}

// Build returns the tree from the fixed start date through now's calendar
// date, evaluated in now's location.
func Build(now time.Time) DateTree {
	start := time.Date(StartYear, StartMonth, StartDay, 0, 0, 0, 0, now.Location())
	return BuildFrom(start, now)
}

// BuildFrom returns the tree covering every calendar day from start through
// end inclusive. Both ends are truncated to their calendar dates in end's
// location. An empty tree is returned when start is after end.
func BuildFrom(start, end time.Time) DateTree {
	loc := end.Location()
	sy, sm, sd := start.In(loc).Date()
	ey, em, ed := end.Date()
	last := time.Date(ey, em, ed, 0, 0, 0, 0, loc)

	buckets := make(map[int]map[int][]models.IsoDate)
	for day := 0; ; day++ {
		current := time.Date(sy, sm, sd+day, 0, 0, 0, 0, loc)
		if current.After(last) {
			break
		}
		year, month := current.Year(), int(current.Month())
		if buckets[year] == nil {
			buckets[year] = make(map[int][]models.IsoDate)
		}
		buckets[year][month] = append(buckets[year][month], models.FormatIsoDate(current))
	}

	tree := DateTree{Years: make([]DateTreeYear, 0, len(buckets))}
	for year, months := range buckets {
		y := DateTreeYear{Year: year, Months: make([]DateTreeMonth, 0, len(months))}
		for month, days := range months {
			sort.Sort(sort.Reverse(sort.StringSlice(days)))
			y.Months = append(y.Months, DateTreeMonth{Month: month, Days: days})
		}
		sort.Slice(y.Months, func(i, j int) bool { return y.Months[i].Month > y.Months[j].Month })
		tree.Years = append(tree.Years, y)
	}
	sort.Slice(tree.Years, func(i, j int) bool { return tree.Years[i].Year > tree.Years[j].Year })

	return tree
}

// Contains reports whether date is one of the tree's days.
func (t DateTree) Contains(date models.IsoDate) bool {
	for _, y := range t.Years {
		for _, m := range y.Months {
			for _, d := range m.Days {
				if d == date {
					return true
				}
			}
		}
	}
	return false
}

// DayCount returns the total number of days in the tree.
func (t DateTree) DayCount() int {
	n := 0
	for _, y := range t.Years {
		for _, m := range y.Months {
			n += len(m.Days)
		}
	}
	return n
}
