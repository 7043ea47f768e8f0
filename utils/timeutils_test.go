package utils

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurveyTimestamp_RollsPastMidnight(t *testing.T) {
	ts, err := SurveyTimestamp("05/06/2008", "25:10:00")
	require.NoError(t, err)
	assert.Equal(t, "06/06/2008", FormatSurveyDay(ts))
	assert.Equal(t, "01:10:00", FormatSurveyClock(ts))
}

func TestSurveyTimestamp_RollsAcrossMonthAndYear(t *testing.T) {
	tests := []struct {
		day, clock string
		want       time.Time
	}{
		{"31/05/2008", "24:00:00", time.Date(2008, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"31/12/2007", "26:30:00", time.Date(2008, 1, 1, 2, 30, 0, 0, time.UTC)},
		{"28/02/2008", "24:05:00", time.Date(2008, 2, 29, 0, 5, 0, 0, time.UTC)},
		{"05/06/2008", "49:00:00", time.Date(2008, 6, 7, 1, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.day+" "+tt.clock, func(t *testing.T) {
			ts, err := SurveyTimestamp(tt.day, tt.clock)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(ts), "got %s", ts)
		})
	}
}

func TestSurveyTimestamp_Sentinels(t *testing.T) {
	ts, err := SurveyTimestamp("05/06/2008", "")
	require.NoError(t, err)
	assert.Equal(t, "00:00:01", FormatSurveyClock(ts))

	ts, err = SurveyTimestamp("", "10:00:00")
	require.NoError(t, err)
	assert.Equal(t, UnknownDay, FormatSurveyDay(ts))
}

func TestSurveyTimestamp_ShortClock(t *testing.T) {
	ts, err := SurveyTimestamp("05/06/2008", "8:05")
	require.NoError(t, err)
	assert.Equal(t, "08:05:00", FormatSurveyClock(ts))
}

func TestParseClock_Invalid(t *testing.T) {
	for _, c := range []string{"abc", "10", "10:70:00", "1:2:3:4", "-1:00:00"} {
		_, _, _, err := ParseClock(c)
		assert.Error(t, err, c)
	}
}

func TestElapsedSeconds_KeepsSentinelDigit(t *testing.T) {
	origin, err := ParseSurveyDay("05/06/2008")
	require.NoError(t, err)
	ts, err := SurveyTimestamp("05/06/2008", "")
	require.NoError(t, err)

	elapsed := ElapsedSeconds(origin, ts)
	assert.Equal(t, 1.0, elapsed)
	assert.True(t, IsUnknownTimeSentinel(elapsed))

	ts, err = SurveyTimestamp("", "10:00:00")
	require.NoError(t, err)
	assert.Less(t, ElapsedSeconds(origin, ts), 0.0)
}

func TestIsUnknownTimeSentinel(t *testing.T) {
	assert.True(t, IsUnknownTimeSentinel(1))
	assert.True(t, IsUnknownTimeSentinel(86401))
	assert.True(t, IsUnknownTimeSentinel(-9))
	assert.False(t, IsUnknownTimeSentinel(-1))
	assert.False(t, IsUnknownTimeSentinel(0))
	assert.False(t, IsUnknownTimeSentinel(36000))
	assert.False(t, IsUnknownTimeSentinel(math.NaN()))
}
