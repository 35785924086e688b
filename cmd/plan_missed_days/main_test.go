package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

func TestDayRange_Default(t *testing.T) {
	days, err := dayRange("", "", today)
	require.NoError(t, err)
	assert.Equal(t, []time.Time{today.AddDate(0, 0, -1), today}, days)
}

func TestDayRange_Explicit(t *testing.T) {
	days, err := dayRange("2024-06-01", "2024-06-03", today)
	require.NoError(t, err)
	require.Len(t, days, 3)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), days[0])
	assert.Equal(t, time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC), days[2])
}

func TestDayRange_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
	}{
		{name: "bad from", from: "01.06.2024"},
		{name: "bad to", to: "tomorrow"},
		{name: "reversed", from: "2024-06-05", to: "2024-06-01"},
		{name: "too long", from: "2020-01-01", to: "2024-06-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dayRange(tt.from, tt.to, today)
			assert.Error(t, err)
		})
	}
}
