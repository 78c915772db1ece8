package schedule

import (
	"fmt"
	"time"
)

// Schedule determines when a recurring job should run next.
type Schedule interface {
	Next(from time.Time) time.Time
	String() string
}

// dailySchedule runs once per day at the specified wall-clock time.
type dailySchedule struct {
	hour   int
	minute int
}

func (s dailySchedule) Next(from time.Time) time.Time {
	next := time.Date(
		from.Year(), from.Month(), from.Day(),
		s.hour, s.minute, 0, 0, from.Location(),
	)
	if !next.After(from) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (s dailySchedule) String() string {
	return fmt.Sprintf("daily at %02d:%02d", s.hour, s.minute)
}

// intervalSchedule runs at fixed intervals.
type intervalSchedule struct {
	every time.Duration
}

func (s intervalSchedule) Next(from time.Time) time.Time {
	return from.Add(s.every)
}

func (s intervalSchedule) String() string {
	return fmt.Sprintf("every %v", s.every)
}

// DailyAt creates a schedule that runs daily at the specified time.
// Panics on out-of-range values to fail fast at configuration time.
func DailyAt(hour, minute int) Schedule {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		panic(fmt.Sprintf("schedule: invalid daily time %02d:%02d", hour, minute))
	}
	return dailySchedule{hour: hour, minute: minute}
}

// EveryInterval creates a schedule that runs at fixed intervals.
func EveryInterval(d time.Duration) Schedule {
	if d <= 0 {
		panic(fmt.Sprintf("schedule: invalid interval %v", d))
	}
	return intervalSchedule{every: d}
}
