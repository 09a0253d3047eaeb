package course

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Seasons
const (
	SeasonSpring = "Spring"
	SeasonSummer = "Summer"
	SeasonFall   = "Fall"
)

var (
	NowFunc = time.Now // mockable

	errInvalidSemester = fmt.Errorf("semester must look like %q", "Fall 2024")

	// fixed per-season end dates (month, day)
	seasonEnds = map[string]time.Month{
		SeasonSpring: time.May,
		SeasonSummer: time.August,
		SeasonFall:   time.December,
	}
)

// Semester is a season+year enrollment period ("Fall 2024").
type Semester struct {
	Season string
	Year   int
}

// ParseSemester parses a "Season YYYY" semester string.
func ParseSemester(s string) (Semester, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Semester{}, errInvalidSemester
	}
	season := strings.Title(strings.ToLower(parts[0]))
	if _, ok := seasonEnds[season]; !ok {
		return Semester{}, errInvalidSemester
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil || year < 1900 {
		return Semester{}, errInvalidSemester
	}
	return Semester{Season: season, Year: year}, nil
}

func (s Semester) String() string {
	return s.Season + " " + strconv.Itoa(s.Year)
}

// End returns the last instant of the semester:
// Spring ends May 31, Summer Aug 31, Fall Dec 31.
func (s Semester) End() time.Time {
	month := seasonEnds[s.Season]
	// first day of the next month minus a second
	return time.Date(s.Year, month+1, 1, 0, 0, 0, 0, time.UTC).Add(-time.Second)
}

func (s Semester) IsPast() bool {
	return NowFunc().After(s.End())
}

// CurrentSemester derives the ongoing semester from the server date.
func CurrentSemester() Semester {
	now := NowFunc()
	year, month := now.Year(), now.Month()
	switch {
	case month <= time.May:
		return Semester{Season: SeasonSpring, Year: year}
	case month <= time.August:
		return Semester{Season: SeasonSummer, Year: year}
	default:
		return Semester{Season: SeasonFall, Year: year}
	}
}
