package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseISOTime(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
		wantErr  bool
	}{
		{
			name:     "RFC3339",
			input:    "2024-03-04T09:30:00Z",
			expected: time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC),
		},
		{
			name:     "space separated",
			input:    "2024-03-04 09:30:00",
			expected: time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC),
		},
		{
			name:     "date only",
			input:    "2024-03-04",
			expected: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "garbage",
			input:   "yesterday",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseISOTime(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, got.Equal(tt.expected))
		})
	}
}

func TestParseClock(t *testing.T) {
	got, err := ParseClock("09:05")
	assert.NoError(t, err)
	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 5, got.Minute())

	got, err = ParseClock("17:30:15")
	assert.NoError(t, err)
	assert.Equal(t, 15, got.Second())

	_, err = ParseClock("not a time")
	assert.Error(t, err)
}

func TestCombineDateClock(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.Local)
	clock, _ := ParseClock("09:00")
	combined := CombineDateClock(day, clock)
	assert.Equal(t, "2024-03-04 09:00:00", combined.Format(TimestampLayout))
}
