package services

import (
	"time"

	"github.com/fhvi/provider-directory/internal/domain/entities"
)

// OpenHoursEvaluator decides whether a provider is open at a given weekday
// and hour. The check instant is always the midpoint of the requested hour
// (hh:30), so a "workHour" filter answers "plausibly open throughout this
// hour" rather than exact boundary semantics.
type OpenHoursEvaluator struct {
	now func() time.Time
}

// NewOpenHoursEvaluator creates an evaluator using the system clock.
func NewOpenHoursEvaluator() *OpenHoursEvaluator {
	return &OpenHoursEvaluator{now: time.Now}
}

// NewOpenHoursEvaluatorWithClock allows injecting a clock (used for tests).
func NewOpenHoursEvaluatorWithClock(now func() time.Time) *OpenHoursEvaluator {
	return &OpenHoursEvaluator{now: now}
}

// IsOpenAt reports whether the provider is open on the given day (0=Monday ..
// 6=Sunday) at the given hour (0..23). A nil day or hour falls back to the
// current wall-clock value. Providers without any work-hour blocks are
// treated as having unknown hours and are never reported open.
func (e *OpenHoursEvaluator) IsOpenAt(p *entities.Provider, day, hour *int) bool {
	if len(p.WorkHours) == 0 {
		return false
	}

	now := e.now()

	checkDay := mondayIndexedWeekday(now.Weekday())
	if day != nil {
		checkDay = *day
	}

	checkHour := now.Hour()
	if hour != nil {
		checkHour = *hour
	}
	checkMinutes := checkHour*60 + 30

	for _, wh := range p.WorkHours {
		if !containsDay(wh.Days, checkDay) {
			continue
		}
		for _, oh := range wh.OperationHours {
			start := minutesOfDay(oh.StartTime)
			end := minutesOfDay(oh.EndTime)
			if checkMinutes >= start && checkMinutes <= end {
				return true
			}
		}
	}

	return false
}

// mondayIndexedWeekday maps Go's Sunday-first weekday to the dataset's
// Monday=0 convention.
func mondayIndexedWeekday(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// minutesOfDay extracts the wall-clock minute of day, ignoring the date.
func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
