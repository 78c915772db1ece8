package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/subtrack/pkg/schedule"
)

func TestDailyAt(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+2", 2*3600)

	t.Run("before fire time runs same day", func(t *testing.T) {
		t.Parallel()

		s := schedule.DailyAt(10, 0)
		from := time.Date(2026, 3, 14, 8, 30, 0, 0, loc)
		next := s.Next(from)
		assert.Equal(t, time.Date(2026, 3, 14, 10, 0, 0, 0, loc), next)
	})

	t.Run("after fire time runs next day", func(t *testing.T) {
		t.Parallel()

		s := schedule.DailyAt(10, 0)
		from := time.Date(2026, 3, 14, 10, 0, 1, 0, loc)
		next := s.Next(from)
		assert.Equal(t, time.Date(2026, 3, 15, 10, 0, 0, 0, loc), next)
	})

	t.Run("exactly at fire time runs next day", func(t *testing.T) {
		t.Parallel()

		s := schedule.DailyAt(10, 0)
		from := time.Date(2026, 3, 14, 10, 0, 0, 0, loc)
		next := s.Next(from)
		assert.Equal(t, time.Date(2026, 3, 15, 10, 0, 0, 0, loc), next)
	})

	t.Run("month boundary", func(t *testing.T) {
		t.Parallel()

		s := schedule.DailyAt(0, 5)
		from := time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC)
		next := s.Next(from)
		assert.Equal(t, time.Date(2026, 2, 1, 0, 5, 0, 0, time.UTC), next)
	})

	t.Run("invalid time panics", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { schedule.DailyAt(24, 0) })
		assert.Panics(t, func() { schedule.DailyAt(10, 60) })
	})

	t.Run("string", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "daily at 10:00", schedule.DailyAt(10, 0).String())
	})
}

func TestEveryInterval(t *testing.T) {
	t.Parallel()

	s := schedule.EveryInterval(15 * time.Minute)
	from := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, from.Add(15*time.Minute), s.Next(from))

	assert.Panics(t, func() { schedule.EveryInterval(0) })
}
