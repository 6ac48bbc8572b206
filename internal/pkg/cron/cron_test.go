package cron

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUntilNextWeekday(t *testing.T) {
	// 2026-08-19 是周三
	wednesday := time.Date(2026, 8, 19, 10, 0, 0, 0, time.UTC)

	d := untilNextWeekday(wednesday, time.Monday, 9)
	next := wednesday.Add(d)
	assert.Equal(t, time.Monday, next.Weekday())
	assert.Equal(t, 9, next.Hour())
	assert.Equal(t, time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC), next)
}

func TestUntilNextWeekdaySameDayBeforeHour(t *testing.T) {
	monday := time.Date(2026, 8, 24, 7, 30, 0, 0, time.UTC)

	d := untilNextWeekday(monday, time.Monday, 9)
	assert.Equal(t, time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC), monday.Add(d))
}

func TestUntilNextWeekdaySameDayAfterHour(t *testing.T) {
	// 周一 9 点已过，排到下周一
	monday := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)

	d := untilNextWeekday(monday, time.Monday, 9)
	assert.Equal(t, time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC), monday.Add(d))
}

func TestUntilNextHour(t *testing.T) {
	before := time.Date(2026, 8, 19, 6, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 19, 9, 0, 0, 0, time.UTC), before.Add(untilNextHour(before, 9)))

	after := time.Date(2026, 8, 19, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC), after.Add(untilNextHour(after, 9)))

	exact := time.Date(2026, 8, 19, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC), exact.Add(untilNextHour(exact, 9)))
}
