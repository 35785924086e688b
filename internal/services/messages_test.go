package services

import (
	"testing"
	"time"

	"onboarding_poll_system/internal/db/models"

	"github.com/stretchr/testify/assert"
)

func TestPluralRu(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{n: 1, expected: "опрос"},
		{n: 2, expected: "опроса"},
		{n: 4, expected: "опроса"},
		{n: 5, expected: "опросов"},
		{n: 11, expected: "опросов"},
		{n: 14, expected: "опросов"},
		{n: 21, expected: "опрос"},
		{n: 22, expected: "опроса"},
		{n: 111, expected: "опросов"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, pluralRu(tt.n, "опрос", "опроса", "опросов"), "n=%d", tt.n)
	}
}

func TestPendingSummaryText(t *testing.T) {
	assert.Equal(t, "У вас есть 1 непройденный опрос испытательного срока",
		pendingSummaryText(1, models.PollTypeOnboarding, models.TimeOfDayMorning))
	assert.Equal(t, "У вас есть 3 непройденных опроса испытательного срока (конец дня)",
		pendingSummaryText(3, models.PollTypeOnboarding, models.TimeOfDayEvening))
	assert.Equal(t, "У вас есть 5 непройденных опросов оффбординга",
		pendingSummaryText(5, models.PollTypeOffboarding, ""))
}

func TestExpiredReminderText(t *testing.T) {
	assert.Equal(t, "У вас есть 1 просроченный опрос", expiredReminderText(1))
	assert.Equal(t, "У вас есть 5 просроченных опросов", expiredReminderText(5))
}

func TestDaysBetween(t *testing.T) {
	from := time.Date(2024, time.March, 12, 23, 30, 0, 0, time.UTC)
	to := time.Date(2024, time.June, 10, 1, 0, 0, 0, time.UTC)

	assert.Equal(t, 90, daysBetween(from, to))
	assert.Equal(t, -90, daysBetween(to, from))
	assert.True(t, addDays(Day(from), 90).Equal(Day(to)))
}
