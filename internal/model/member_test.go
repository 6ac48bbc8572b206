package model

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpiryFromType(t *testing.T) {
	since := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		membershipType string
		wantDays       int
	}{
		{"weekly", "weekly", 7},
		{"monthly", "monthly", 30},
		{"quarterly", "quarterly", 90},
		{"annual", "annual", 365},
		{"unknown type falls back to monthly", "platinum", 30},
		{"empty type falls back to monthly", "", 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expiry := ExpiryFromType(since, tt.membershipType)
			assert.Equal(t, since.AddDate(0, 0, tt.wantDays), expiry)
		})
	}
}

func TestExpiryFromTypeTruncatesTime(t *testing.T) {
	since := time.Date(2026, 3, 1, 18, 45, 12, 0, time.UTC)
	expiry := ExpiryFromType(since, "weekly")

	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), expiry)
}

func TestIsMembershipExpired(t *testing.T) {
	expiry := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	member := &Member{ExpiryDate: &expiry}

	// 到期日当天不算过期
	assert.False(t, member.IsMembershipExpired(time.Date(2026, 3, 31, 23, 0, 0, 0, time.UTC)))
	assert.False(t, member.IsMembershipExpired(time.Date(2026, 3, 30, 0, 0, 0, 0, time.UTC)))
	// 次日起算
	assert.True(t, member.IsMembershipExpired(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))
}

func TestIsMembershipExpiredWithoutExpiryDate(t *testing.T) {
	member := &Member{}
	assert.False(t, member.IsMembershipExpired(time.Now()))
}

func TestDaysUntilExpiry(t *testing.T) {
	expiry := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	member := &Member{ExpiryDate: &expiry}

	assert.Equal(t, 7, member.DaysUntilExpiry(time.Date(2026, 3, 24, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, 0, member.DaysUntilExpiry(time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -3, member.DaysUntilExpiry(time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC)))
}

func TestDaysUntilExpiryAcrossDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 区间跨 2026-03-08 的夏令时切换，日历天数不受影响
	expiry := time.Date(2026, 3, 31, 0, 0, 0, 0, loc)
	member := &Member{ExpiryDate: &expiry}

	assert.Equal(t, 30, member.DaysUntilExpiry(time.Date(2026, 3, 1, 0, 0, 0, 0, loc)))
	assert.Equal(t, 7, member.DaysUntilExpiry(time.Date(2026, 3, 24, 10, 0, 0, 0, loc)))
}

func TestDaysBetween(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{"same day", time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC), time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC), 0},
		{"reversed is negative", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC), -3},
		{"across spring forward", time.Date(2026, 3, 7, 0, 0, 0, 0, loc), time.Date(2026, 3, 9, 0, 0, 0, 0, loc), 2},
		{"across fall back", time.Date(2026, 10, 31, 0, 0, 0, 0, loc), time.Date(2026, 11, 2, 0, 0, 0, 0, loc), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.from, tt.to))
		})
	}
}

func TestAge(t *testing.T) {
	dob := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)
	member := &Member{DateOfBirth: &dob}

	age, ok := member.Age(time.Date(2026, 6, 14, 0, 0, 0, 0, time.UTC))
	assert.True(t, ok)
	assert.Equal(t, 35, age) // 生日前一天还没满

	age, ok = member.Age(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC))
	assert.True(t, ok)
	assert.Equal(t, 36, age)
}

func TestAgeWithoutDateOfBirth(t *testing.T) {
	member := &Member{}
	_, ok := member.Age(time.Now())
	assert.False(t, ok)
}

func TestHasPendingPayment(t *testing.T) {
	assert.False(t, (&Member{PendingAmount: 0}).HasPendingPayment())
	assert.True(t, (&Member{PendingAmount: 0.01}).HasPendingPayment())
}
